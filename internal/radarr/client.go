package radarr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"radarrtagger/internal/logging"
	"radarrtagger/internal/services"
)

const (
	apiPrefix      = "/api/v3"
	component      = "radarr"
	maxErrorBody   = 2048
	defaultTimeout = 30 * time.Second
)

// HTTPDoer describes the HTTP client used by the Radarr client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to a single Radarr instance. One HTTP client is reused for
// every call.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient HTTPDoer
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client HTTPDoer) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// WithLogger attaches a logger used for failures that are reported by return
// value rather than error.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Radarr client.
func New(baseURL, apiKey string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, services.Wrap(services.ErrConfiguration, component, "new client", "base url required", nil)
	}
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, services.Wrap(services.ErrConfiguration, component, "new client", "api key required", nil)
	}
	client := &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	client.logger = client.logger.With(logging.String(logging.FieldComponent, component))
	return client, nil
}

// ListMovies returns every movie in the library.
func (c *Client) ListMovies(ctx context.Context) ([]Movie, error) {
	var movies []Movie
	if err := c.do(ctx, http.MethodGet, "/movie", nil, &movies); err != nil {
		return nil, fmt.Errorf("radarr list movies: %w", err)
	}
	return movies, nil
}

// ListTags returns every tag defined on the server.
func (c *Client) ListTags(ctx context.Context) ([]Tag, error) {
	var tags []Tag
	if err := c.do(ctx, http.MethodGet, "/tag", nil, &tags); err != nil {
		return nil, fmt.Errorf("radarr list tags: %w", err)
	}
	return tags, nil
}

// CreateTag creates a tag. Callers must check for an existing label first;
// the server does not reject duplicates.
func (c *Client) CreateTag(ctx context.Context, label, color string) (Tag, error) {
	body := Tag{Label: label, Color: color}
	var created Tag
	if err := c.do(ctx, http.MethodPost, "/tag", body, &created); err != nil {
		return Tag{}, fmt.Errorf("radarr create tag %q: %w", label, err)
	}
	return created, nil
}

// MovieFile fetches a movie file by id.
func (c *Client) MovieFile(ctx context.Context, id int64) (MovieFile, error) {
	var file MovieFile
	path := "/moviefile/" + strconv.FormatInt(id, 10)
	if err := c.do(ctx, http.MethodGet, path, nil, &file); err != nil {
		return MovieFile{}, fmt.Errorf("radarr get movie file %d: %w", id, err)
	}
	return file, nil
}

// UpdateMovie replaces the movie record on the server. The movie must carry
// its full payload. Failures are logged and reported as false.
func (c *Client) UpdateMovie(ctx context.Context, movie Movie) bool {
	path := "/movie/" + strconv.FormatInt(movie.ID, 10)
	if err := c.do(ctx, http.MethodPut, path, movie, nil); err != nil {
		attrs := []logging.Attr{
			logging.Int64(logging.FieldMovieID, movie.ID),
			logging.String(logging.FieldTitle, movie.Title),
			logging.Error(err),
		}
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			attrs = append(attrs, logging.Int("status", apiErr.StatusCode))
		}
		logging.WithContext(ctx, c.logger).Error("update movie failed", logging.Args(attrs...)...)
		return false
	}
	return true
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return services.Wrap(services.ErrValidation, "", "encode request", "", err)
		}
		reader = bytes.NewReader(encoded)
	}

	endpoint := c.baseURL + apiPrefix + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return services.Wrap(services.ErrTransient, "", "execute request", fmt.Sprintf("latency=%v", latency), err)
	}
	defer resp.Body.Close()

	logging.WithContext(ctx, c.logger).Debug("radarr request",
		logging.String("method", method),
		logging.String("path", apiPrefix+path),
		logging.Int("status", resp.StatusCode),
		logging.Duration("latency", latency),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{
			Method:     method,
			Path:       apiPrefix + path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(excerpt)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return services.Wrap(services.ErrValidation, "", "decode response", apiPrefix+path, err)
	}
	return nil
}
