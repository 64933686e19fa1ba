package repair

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"seasonfix/internal/library"
	"seasonfix/internal/logging"
	"seasonfix/internal/services"
)

// Lookup resolves the canonical name for one season of a show.
type Lookup interface {
	SeasonName(ctx context.Context, showID int64, seasonNumber int) (string, error)
}

// Config holds the settings for one repair pass.
type Config struct {
	LibraryDir string
	// DryRun walks and looks up everything but writes nothing.
	DryRun bool
}

// Runner executes repair passes. Construct with New; zero value is not
// usable.
type Runner struct {
	cfg    Config
	lookup Lookup
	logger *slog.Logger
}

// New creates a Runner. A nil logger disables log output.
func New(cfg Config, lookup Lookup, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{cfg: cfg, lookup: lookup, logger: logger}
}

// Run walks the library once. The returned summary is valid even when err is
// non-nil and reflects the work completed before the failure.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	logger := r.logger.With(logging.FieldComponent, "repair", "run_id", uuid.NewString())
	if r.cfg.DryRun {
		logger.Info("dry run: no files will be modified")
	}

	summary := &Summary{}

	shows, err := library.FindShows(r.cfg.LibraryDir)
	if err != nil {
		return summary, err
	}

	for _, showDir := range shows {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if err := r.processShow(ctx, logger, showDir, summary); err != nil {
			return summary, err
		}
	}

	logger.Info("run complete",
		"shows", summary.Shows,
		"seasons", summary.Seasons,
		"patched", summary.Patched,
		"unchanged", summary.Unchanged,
		"skipped", len(summary.Skipped))
	return summary, nil
}

func (r *Runner) processShow(ctx context.Context, logger *slog.Logger, showDir string, summary *Summary) error {
	show, err := library.ReadShow(showDir)
	if err != nil {
		if services.Fatal(err) {
			return err
		}
		logger.Warn("skipping show", "path", showDir, "reason", services.SkipReason(err), "error", err)
		summary.Skipped = append(summary.Skipped, Skip{Path: showDir, Reason: services.SkipReason(err)})
		return nil
	}
	summary.Shows++

	showLog := logger.With("show", show.Title, "tmdb_id", show.TMDBID)

	seasons, err := library.FindSeasons(showDir)
	if err != nil {
		return err
	}
	for _, seasonDir := range seasons {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.processSeason(ctx, showLog, show, seasonDir, summary); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) processSeason(ctx context.Context, logger *slog.Logger, show *library.ShowRecord, seasonDir string, summary *Summary) error {
	season, err := library.ReadSeason(seasonDir)
	if err != nil {
		if services.Fatal(err) {
			return err
		}
		logger.Warn("skipping season", "path", seasonDir, "reason", services.SkipReason(err), "error", err)
		summary.Skipped = append(summary.Skipped, Skip{Path: seasonDir, Reason: services.SkipReason(err)})
		return nil
	}
	summary.Seasons++

	canonical, err := r.lookup.SeasonName(ctx, show.TMDBID, season.Number)
	if err != nil {
		if services.Fatal(err) {
			return err
		}
		logger.Warn("skipping season", "path", season.Path, "season", season.Number,
			"reason", services.SkipReason(err), "error", err)
		summary.Skipped = append(summary.Skipped, Skip{Path: season.Path, Reason: services.SkipReason(err)})
		return nil
	}

	if canonical == season.Name() {
		summary.Unchanged++
		logger.Debug("season name already canonical", "path", season.Path, "name", canonical)
		return nil
	}

	if r.cfg.DryRun {
		summary.Patched++
		logger.Info("would rename season", "path", season.Path, "from", season.Name(), "to", canonical)
		return nil
	}

	previous := season.Name()
	if err := season.Rename(canonical); err != nil {
		logger.Warn("skipping season", "path", season.Path, "reason", services.SkipReason(err), "error", err)
		summary.Skipped = append(summary.Skipped, Skip{Path: season.Path, Reason: services.SkipReason(err)})
		return nil
	}
	if err := season.WriteFile(); err != nil {
		logger.Warn("skipping season", "path", season.Path, "reason", services.SkipReason(err), "error", err)
		summary.Skipped = append(summary.Skipped, Skip{Path: season.Path, Reason: services.SkipReason(err)})
		return nil
	}

	summary.Patched++
	logger.Info("renamed season", "path", season.Path, "from", previous, "to", canonical)
	return nil
}
