package logging

import (
	"context"
	"log/slog"

	"radarrtagger/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldCycleID is the standardized key for reconciliation cycle correlation ids.
	FieldCycleID = "cycle_id"
	// FieldMovieID is the standardized key for Radarr movie identifiers.
	FieldMovieID = "movie_id"
	// FieldTitle is the standardized key for movie titles.
	FieldTitle = "title"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if id, ok := services.CycleIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldCycleID, id))
	}
	if id, ok := services.MovieIDFromContext(ctx); ok {
		fields = append(fields, slog.Int64(FieldMovieID, id))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}
