package backfill

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/flock"

	"waxcrate/internal/discogs"
	"waxcrate/internal/projection"
	"waxcrate/internal/release"
	"waxcrate/internal/store"
)

// ErrLocked is returned when another backfill run holds the lock file.
var ErrLocked = errors.New("another backfill run is in progress")

// Looker is the lookup operation the runner needs.
type Looker interface {
	ByReleaseID(ctx context.Context, id int64, addedFrom string) (release.Formatted, error)
}

// Options selects what a run processes and how.
type Options struct {
	// DryRun fetches and compares without writing to the database.
	DryRun bool
	// Limit caps the number of records processed. Zero means all.
	Limit int
	// UserID scopes the run to one user's records.
	UserID string
	// RecordID restricts the run to a single record.
	RecordID string
	// RequestInterval is the pause between records.
	RequestInterval time.Duration
	// CSVDir receives the dry-run report files.
	CSVDir string
	// LockPath is the exclusive run lock file.
	LockPath string
}

// Summary reports what a run did.
type Summary struct {
	Processed      int
	Updated        int
	ComparisonPath string
	FullDataPath   string
}

// Runner executes backfill passes over the stored collection.
type Runner struct {
	store  *store.Store
	looker Looker
	logger *slog.Logger
	opts   Options
}

// NewRunner creates a backfill runner.
func NewRunner(st *store.Store, looker Looker, logger *slog.Logger, opts Options) (*Runner, error) {
	if st == nil {
		return nil, errors.New("store required")
	}
	if looker == nil {
		return nil, errors.New("lookup service required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{store: st, looker: looker, logger: logger, opts: opts}, nil
}

// Run processes the selected records. The first failure halts the run
// with the failing record's context so a re-run can pick up where it
// stopped; records already updated stay updated.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	summary := Summary{}

	if r.opts.LockPath != "" {
		lock := flock.New(r.opts.LockPath)
		locked, err := lock.TryLock()
		if err != nil {
			return summary, fmt.Errorf("acquire backfill lock: %w", err)
		}
		if !locked {
			return summary, ErrLocked
		}
		defer func() { _ = lock.Unlock() }()
	}

	records, err := r.selectRecords(ctx)
	if err != nil {
		return summary, err
	}
	if len(records) == 0 {
		r.logger.Info("no records to process")
		return summary, nil
	}
	r.logger.Info("backfill starting",
		"records", len(records), "dry_run", r.opts.DryRun)

	var report *report
	if r.opts.DryRun {
		report = newReport(r.opts.CSVDir)
	}

	for i, record := range records {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		r.logger.Info("processing record",
			"position", fmt.Sprintf("%d/%d", i+1, len(records)),
			"artist", record.Artist, "album", record.Album)

		fresh, err := r.refetch(ctx, record)
		if err != nil {
			return summary, fmt.Errorf(
				"record %s (%s - %s, url %s) after %d updates: %w",
				record.ID, record.Artist, record.Album, record.CurrentReleaseURL,
				summary.Updated, err,
			)
		}

		if r.opts.DryRun {
			report.add(record, fresh)
		} else {
			if err := r.apply(ctx, record, fresh); err != nil {
				return summary, fmt.Errorf(
					"record %s (%s - %s) after %d updates: %w",
					record.ID, record.Artist, record.Album, summary.Updated, err,
				)
			}
			summary.Updated++
		}
		summary.Processed++

		if r.opts.RequestInterval > 0 && i < len(records)-1 {
			select {
			case <-time.After(r.opts.RequestInterval):
			case <-ctx.Done():
				return summary, ctx.Err()
			}
		}
	}

	if report != nil {
		comparisonPath, fullPath, err := report.write()
		if err != nil {
			return summary, err
		}
		summary.ComparisonPath = comparisonPath
		summary.FullDataPath = fullPath
		r.logger.Info("dry run reports written",
			"comparison", comparisonPath, "full_data", fullPath)
	}

	r.logger.Info("backfill finished",
		"processed", summary.Processed, "updated", summary.Updated)
	return summary, nil
}

func (r *Runner) selectRecords(ctx context.Context) ([]*store.Record, error) {
	if r.opts.RecordID != "" {
		record, err := r.store.GetRecord(ctx, r.opts.RecordID)
		if err != nil {
			return nil, err
		}
		if record == nil {
			return nil, fmt.Errorf("record %s not found", r.opts.RecordID)
		}
		return []*store.Record{record}, nil
	}
	return r.store.ListRecords(ctx, r.opts.UserID, r.opts.Limit)
}

// refetch resolves the stored provenance URL back to a release id and
// runs a fresh lookup, keeping the record's original provenance tag.
func (r *Runner) refetch(ctx context.Context, record *store.Record) (release.Formatted, error) {
	if record.CurrentReleaseURL == "" {
		return release.Formatted{}, errors.New("record has no current release url")
	}
	id, err := discogs.ExtractReleaseID(record.CurrentReleaseURL)
	if err != nil {
		return release.Formatted{}, err
	}
	addedFrom := record.AddedFrom
	if addedFrom == "" {
		addedFrom = release.AddedFromManual
	}
	return r.looker.ByReleaseID(ctx, id, addedFrom)
}

// apply writes fresh data to one record. The stored musicians column is
// kept as-is while the relational tables are rebuilt from the fresh
// credits, and the user-owned columns are never part of the update.
func (r *Runner) apply(ctx context.Context, record *store.Record, fresh release.Formatted) error {
	freshMusicians := fresh.Musicians
	storedMusicians := record.Musicians

	record.ApplyFormatted(fresh)
	record.Musicians = storedMusicians
	if err := r.store.UpdateRecordFields(ctx, record); err != nil {
		return err
	}

	if len(freshMusicians) > 0 {
		if _, err := r.store.DeleteContributions(ctx, record.ID, record.UserID); err != nil {
			return err
		}
		result, err := projection.Project(ctx, r.store, freshMusicians, record.ID, record.UserID, r.logger)
		if err != nil {
			return err
		}
		r.logger.Info("contributions rebuilt",
			"record_id", record.ID,
			"contributors_created", result.ContributorsCreated,
			"contributions", result.ContributionsWritten)
	}
	return nil
}
