package radarr

import (
	"fmt"
	"net/http"
	"strings"

	"radarrtagger/internal/services"
)

// APIError describes a non-2xx response from Radarr.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("radarr %s %s returned %d", e.Method, e.Path, e.StatusCode)
	if body := strings.TrimSpace(e.Body); body != "" {
		msg += ": " + body
	}
	return msg
}

// Unwrap maps the status code onto a services marker so callers can use
// errors.Is without knowing HTTP details.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return services.ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return services.ErrConfiguration
	default:
		return services.ErrTransient
	}
}
