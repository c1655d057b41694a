package services

import "context"

type contextKey string

const (
	cycleIDKey contextKey = "cycle_id"
	movieIDKey contextKey = "movie_id"
)

// WithCycleID annotates context with the reconciliation cycle correlation id.
func WithCycleID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, cycleIDKey, id)
}

// CycleIDFromContext extracts the cycle correlation id if present.
func CycleIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(cycleIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithMovieID annotates context with the movie currently being reconciled.
func WithMovieID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, movieIDKey, id)
}

// MovieIDFromContext extracts the movie identifier if present.
func MovieIDFromContext(ctx context.Context) (int64, bool) {
	v := ctx.Value(movieIDKey)
	if v == nil {
		return 0, false
	}
	switch val := v.(type) {
	case int64:
		return val, true
	case int:
		return int64(val), true
	default:
		return 0, false
	}
}
