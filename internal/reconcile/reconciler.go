package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"radarrtagger/internal/logging"
	"radarrtagger/internal/radarr"
	"radarrtagger/internal/services"
	"radarrtagger/internal/tagging"
)

// API is the Radarr surface used by a cycle.
type API interface {
	TagCreator
	ListMovies(ctx context.Context) ([]radarr.Movie, error)
	ListTags(ctx context.Context) ([]radarr.Tag, error)
	MovieFile(ctx context.Context, id int64) (radarr.MovieFile, error)
	UpdateMovie(ctx context.Context, movie radarr.Movie) bool
}

// Options tunes a reconciler.
type Options struct {
	// ScoreThreshold is the score above which a file is positive_score.
	ScoreThreshold int
	// Limit processes only the first Limit movies when positive.
	Limit int
	// DryRun computes changes without updating Radarr.
	DryRun bool
}

// Change describes a movie whose tag set differs from the desired set.
type Change struct {
	MovieID   int64
	Title     string
	Score     *int
	FileError bool
	Before    []string
	After     []string
	Added     []string
	Removed   []string
	Updated   bool
}

// Result summarizes one cycle.
type Result struct {
	CycleID        string
	Movies         int
	Changed        int
	Updated        int
	UpdateFailures int
	FileErrors     int
	TagsCreated    int
	Changes        []Change
	Duration       time.Duration
}

// Reconciler applies the well-known tags to every movie.
type Reconciler struct {
	api     API
	opts    Options
	logger  *slog.Logger
	nowFunc func() time.Time
}

// New constructs a reconciler.
func New(api API, opts Options, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		api:     api,
		opts:    opts,
		logger:  logging.NewComponentLogger(logger, "reconcile"),
		nowFunc: time.Now,
	}
}

// RunCycle performs one reconciliation pass. Listing and provisioning errors
// abort the cycle; the partial result is still returned.
func (r *Reconciler) RunCycle(ctx context.Context) (Result, error) {
	start := r.nowFunc()
	result := Result{}
	if id, ok := services.CycleIDFromContext(ctx); ok {
		result.CycleID = id
	}
	logger := logging.WithContext(ctx, r.logger)

	movies, err := r.api.ListMovies(ctx)
	if err != nil {
		return r.finish(result, start), fmt.Errorf("bootstrap: %w", err)
	}
	tags, err := r.api.ListTags(ctx)
	if err != nil {
		return r.finish(result, start), fmt.Errorf("bootstrap: %w", err)
	}
	logger.Debug("fetched library", logging.Int("movies", len(movies)), logging.Int("tags", len(tags)))

	idx, created, err := Provision(ctx, r.api, tags)
	result.TagsCreated = created
	if created > 0 {
		logger.Info("created well-known tags", logging.Int("count", created))
	}
	if err != nil {
		return r.finish(result, start), err
	}

	if r.opts.Limit > 0 && len(movies) > r.opts.Limit {
		logger.Info("limiting cycle", logging.Int("limit", r.opts.Limit), logging.Int("available", len(movies)))
		movies = movies[:r.opts.Limit]
	}

	for _, movie := range movies {
		if err := ctx.Err(); err != nil {
			return r.finish(result, start), err
		}
		result.Movies++
		change, changed, err := r.reconcileMovie(ctx, movie, idx)
		if err != nil {
			return r.finish(result, start), err
		}
		if change.FileError {
			result.FileErrors++
		}
		if !changed {
			continue
		}
		result.Changed++
		if change.Updated {
			result.Updated++
		} else if !r.opts.DryRun {
			result.UpdateFailures++
		}
		result.Changes = append(result.Changes, change)
	}

	result = r.finish(result, start)
	logger.Info("tag update cycle complete",
		logging.Int("movies", result.Movies),
		logging.Int("changed", result.Changed),
		logging.Int("updated", result.Updated),
		logging.Int("update_failures", result.UpdateFailures),
		logging.Int("file_errors", result.FileErrors),
		logging.Bool("dry_run", r.opts.DryRun),
		logging.Duration("duration", result.Duration),
	)
	return result, nil
}

func (r *Reconciler) finish(result Result, start time.Time) Result {
	result.Duration = r.nowFunc().Sub(start)
	return result
}

func (r *Reconciler) reconcileMovie(ctx context.Context, movie radarr.Movie, idx Index) (Change, bool, error) {
	ctx = services.WithMovieID(ctx, movie.ID)
	logger := logging.WithContext(ctx, r.logger).With(logging.String(logging.FieldTitle, movie.Title))

	change := Change{MovieID: movie.ID, Title: movie.Title}
	var file *radarr.MovieFile
	if movie.HasFile() {
		fetched, err := r.api.MovieFile(ctx, movie.MovieFileID)
		if err != nil {
			change.FileError = true
			logger.Warn("movie file unavailable",
				logging.Int64("movie_file_id", movie.MovieFileID),
				logging.Error(err),
			)
		} else {
			file = &fetched
		}
	}
	change.Score = tagging.FileScore(file)

	desired, err := Desired(movie, file, idx, r.opts.ScoreThreshold)
	if err != nil {
		return change, false, err
	}
	if SameSet(movie.Tags, desired) {
		return change, false, nil
	}

	added, removed := diff(movie.Tags, desired)
	change.Before = idx.Labels(movie.Tags)
	change.After = idx.Labels(desired)
	change.Added = idx.Labels(added)
	change.Removed = idx.Labels(removed)

	if r.opts.DryRun {
		logger.Debug("tag change pending", logging.Any("added", change.Added), logging.Any("removed", change.Removed))
		return change, true, nil
	}

	if r.api.UpdateMovie(ctx, movie.WithTags(desired)) {
		change.Updated = true
		logger.Info("updated movie tags", logging.Any("added", change.Added), logging.Any("removed", change.Removed))
	}
	return change, true, nil
}
