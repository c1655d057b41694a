package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"radarrtagger/internal/config"
)

const userAgent = "radarr-tagger/1.0.0"

// Event identifies a notification type.
type Event string

const (
	EventCycleFailed Event = "cycle_failed"
	EventTagsUpdated Event = "tags_updated"
	EventTest        Event = "test"
)

// Payload carries event specific values.
type Payload map[string]any

// Service publishes events.
type Service interface {
	Publish(ctx context.Context, event Event, payload Payload) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	if cfg == nil {
		return noopService{}
	}
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint:    topic,
		client:      &http.Client{Timeout: timeout},
		cycleErrors: cfg.Notifications.CycleErrors,
		updates:     cfg.Notifications.Updates,
	}
}

type message struct {
	title    string
	body     string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint    string
	client      *http.Client
	cycleErrors bool
	updates     bool
}

func (n *ntfyService) Publish(ctx context.Context, event Event, payload Payload) error {
	msg, ok := n.format(event, payload)
	if !ok {
		return nil
	}
	return n.send(ctx, msg)
}

func (n *ntfyService) format(event Event, payload Payload) (message, bool) {
	switch event {
	case EventCycleFailed:
		if !n.cycleErrors {
			return message{}, false
		}
		var builder strings.Builder
		builder.WriteString("Tag update cycle failed")
		if retry := durationValue(payload, "retryIn"); retry > 0 {
			builder.WriteString(", retrying in ")
			builder.WriteString(retry.String())
		}
		builder.WriteString(": ")
		if err, ok := payload["error"].(error); ok && err != nil {
			builder.WriteString(strings.TrimSpace(err.Error()))
		} else if text := strings.TrimSpace(stringValue(payload, "error")); text != "" {
			builder.WriteString(text)
		} else {
			builder.WriteString("unknown")
		}
		return message{
			title:    "Radarr Tagger - Cycle Failed",
			body:     builder.String(),
			tags:     []string{"radarr", "error", "alert"},
			priority: "high",
		}, true
	case EventTagsUpdated:
		if !n.updates {
			return message{}, false
		}
		updated := intValue(payload, "updated")
		if updated <= 0 {
			return message{}, false
		}
		movies := intValue(payload, "movies")
		failed := intValue(payload, "failed")
		body := fmt.Sprintf("Updated tags on %d of %d movies", updated, movies)
		title := "Radarr Tagger - Tags Updated"
		if failed > 0 {
			body = fmt.Sprintf("%s, %d updates rejected", body, failed)
			title = "Radarr Tagger - Tags Updated (with errors)"
		}
		return message{
			title: title,
			body:  body,
			tags:  []string{"radarr", "tags", "updated"},
		}, true
	case EventTest:
		return message{
			title:    "Radarr Tagger - Test",
			body:     "Notification system test",
			tags:     []string{"radarr", "test"},
			priority: "low",
		}, true
	default:
		return message{}, false
	}
}

func (n *ntfyService) send(ctx context.Context, msg message) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(msg.body))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if msg.title != "" {
		req.Header.Set("Title", msg.title)
	}
	if len(msg.tags) > 0 {
		req.Header.Set("Tags", strings.Join(msg.tags, ","))
	}
	if msg.priority != "" && msg.priority != "default" {
		req.Header.Set("Priority", msg.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func stringValue(payload Payload, key string) string {
	switch v := payload[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func intValue(payload Payload, key string) int {
	switch v := payload[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(strings.TrimSpace(v))
		return n
	default:
		return 0
	}
}

func durationValue(payload Payload, key string) time.Duration {
	if v, ok := payload[key].(time.Duration); ok {
		return v
	}
	return 0
}

type noopService struct{}

func (noopService) Publish(context.Context, Event, Payload) error { return nil }
