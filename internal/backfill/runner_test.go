package backfill_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/gofrs/flock"

	"waxcrate/internal/backfill"
	"waxcrate/internal/credits"
	"waxcrate/internal/logging"
	"waxcrate/internal/release"
	"waxcrate/internal/store"
	"waxcrate/internal/testsupport"
)

type fakeLooker struct {
	formatted map[int64]release.Formatted
	failID    int64
	calls     int
}

func (f *fakeLooker) ByReleaseID(_ context.Context, id int64, addedFrom string) (release.Formatted, error) {
	f.calls++
	if id == f.failID {
		return release.Formatted{}, errors.New("provider unavailable")
	}
	out, ok := f.formatted[id]
	if !ok {
		return release.Formatted{}, fmt.Errorf("no fixture for release %d", id)
	}
	out.AddedFrom = addedFrom
	return out, nil
}

func seedBackfillRecord(t *testing.T, st *store.Store, currentID int64) *store.Record {
	t.Helper()
	record := store.NewRecord("user-1", release.Formatted{
		Artist:            "Makaya McCraven",
		Album:             "In These Times",
		Year:              2022,
		Country:           "UK",
		Genres:            []string{"Pop"},
		Musicians:         credits.Categorized{"Other": {"General": {"Legacy Entry"}}},
		CurrentReleaseID:  currentID,
		CurrentReleaseURL: fmt.Sprintf("https://www.discogs.com/release/%d-Makaya-McCraven", currentID),
		AddedFrom:         release.AddedFromBarcode,
	})
	record.Notes = "blue vinyl"
	record.CustomValues = map[string]any{"shelf": "B1"}
	if err := st.SaveRecord(context.Background(), record); err != nil {
		t.Fatalf("SaveRecord: %v", err)
	}
	return record
}

func freshData(currentID int64) release.Formatted {
	return release.Formatted{
		Artist:        "Makaya McCraven",
		Album:         "In These Times",
		Year:          2018,
		Country:       "US",
		Label:         "International Anthem",
		CatalogNumber: "IARC0051",
		Genres:        []string{"Jazz"},
		Musicians: credits.Categorized{
			"Instruments": {"Percussion": {"Makaya McCraven (Drums, Producer)"}},
		},
		OriginalReleaseID:  200,
		OriginalReleaseURL: "https://www.discogs.com/release/200",
		CurrentReleaseID:   currentID,
		CurrentReleaseURL:  fmt.Sprintf("https://www.discogs.com/release/%d", currentID),
		Original: release.EditionFields{
			Year:          2018,
			Country:       "US",
			Label:         "International Anthem",
			CatalogNumber: "IARC0051",
		},
		Current: release.EditionFields{
			Year:          2022,
			ReleaseDate:   "2022-09-23",
			Country:       "UK",
			Label:         "XL Recordings",
			CatalogNumber: "XL-1300",
			Formats:       []string{"Vinyl", "LP"},
		},
	}
}

func TestDryRunWritesReportsWithoutDBChanges(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()
	record := seedBackfillRecord(t, st, 300)

	fresh := freshData(300)
	fresh.Musicians = credits.Categorized{
		"Instruments": {"Percussion": {"Makaya McCraven (Drums, Producer)"}},
		"Credits":     {"Production": {"Jeff Parker (Mixed By)"}},
	}
	looker := &fakeLooker{formatted: map[int64]release.Formatted{300: fresh}}
	runner, err := backfill.NewRunner(st, looker, logging.NewNop(), backfill.Options{
		DryRun: true,
		UserID: "user-1",
		CSVDir: cfg.Backfill.CSVDir,
	})
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}

	summary, err := runner.Run(ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Processed != 1 || summary.Updated != 0 {
		t.Errorf("summary = %+v", summary)
	}

	for _, path := range []string{summary.ComparisonPath, summary.FullDataPath} {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read report %s: %v", path, err)
		}
		content := string(data)
		if !strings.Contains(content, record.ID) {
			t.Errorf("report %s does not mention the record", filepath.Base(path))
		}
	}
	comparison, err := os.ReadFile(summary.ComparisonPath)
	if err != nil {
		t.Fatalf("read comparison: %v", err)
	}
	if !strings.Contains(string(comparison), "CHANGED: 2022 -> 2018") {
		t.Errorf("comparison missing year change: %s", comparison)
	}
	if !strings.Contains(string(comparison), "CHANGED: 1 -> 2 credits (column preserved)") {
		t.Errorf("comparison missing credit drift: %s", comparison)
	}
	for _, want := range []string{"IARC0051", "XL Recordings", "XL-1300"} {
		if !strings.Contains(string(comparison), want) {
			t.Errorf("comparison missing per-edition field %q: %s", want, comparison)
		}
	}
	fullData, err := os.ReadFile(summary.FullDataPath)
	if err != nil {
		t.Fatalf("read full data: %v", err)
	}
	for _, want := range []string{"2022-09-23", "Vinyl; LP", "XL-1300"} {
		if !strings.Contains(string(fullData), want) {
			t.Errorf("full data missing per-edition field %q: %s", want, fullData)
		}
	}

	// The database was not touched.
	got, err := st.GetRecord(ctx, record.ID)
	if err != nil {
		t.Fatalf("GetRecord: %v", err)
	}
	if got.Year != 2022 || got.Country != "UK" {
		t.Errorf("dry run modified the record: %d %q", got.Year, got.Country)
	}
	counts, err := st.Counts(ctx, "")
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if counts.Contributions != 0 {
		t.Errorf("dry run wrote %d contributions", counts.Contributions)
	}
}

func TestLiveRunUpdatesAndPreserves(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	testsupport.MustSeedCategories(t, st)
	ctx := context.Background()
	record := seedBackfillRecord(t, st, 300)

	looker := &fakeLooker{formatted: map[int64]release.Formatted{300: freshData(300)}}
	runner, err := backfill.NewRunner(st, looker, logging.NewNop(), backfill.Options{
		UserID: "user-1",
	})
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}

	summary, err := runner.Run(ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Updated != 1 {
		t.Errorf("Updated = %d, want 1", summary.Updated)
	}

	got, err := st.GetRecord(ctx, record.ID)
	if err != nil {
		t.Fatalf("GetRecord: %v", err)
	}
	if got.Year != 2018 || got.Country != "US" || got.Label != "International Anthem" {
		t.Errorf("refreshed fields = %d %q %q", got.Year, got.Country, got.Label)
	}
	if !reflect.DeepEqual(got.Genres, []string{"Jazz"}) {
		t.Errorf("Genres = %v", got.Genres)
	}
	// User-owned columns and the stored musicians structure survive.
	if got.Notes != "blue vinyl" || got.CustomValues["shelf"] != "B1" {
		t.Errorf("user columns clobbered: %q %#v", got.Notes, got.CustomValues)
	}
	if got.AddedFrom != release.AddedFromBarcode {
		t.Errorf("AddedFrom = %q", got.AddedFrom)
	}
	if !reflect.DeepEqual(got.Musicians, credits.Categorized{"Other": {"General": {"Legacy Entry"}}}) {
		t.Errorf("Musicians = %#v, want preserved", got.Musicians)
	}

	// The relational tables were rebuilt from the fresh credits.
	rows, err := st.ContributionsForRecord(ctx, record.ID)
	if err != nil {
		t.Fatalf("ContributionsForRecord: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	if !reflect.DeepEqual(rows[0].Instruments, []string{"Drums"}) || !reflect.DeepEqual(rows[0].Roles, []string{"Producer"}) {
		t.Errorf("contribution = %v / %v", rows[0].Roles, rows[0].Instruments)
	}
}

func TestRunHaltsOnFirstError(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	testsupport.MustSeedCategories(t, st)
	ctx := context.Background()

	seedBackfillRecord(t, st, 300)
	failing := seedBackfillRecord(t, st, 301)

	looker := &fakeLooker{
		formatted: map[int64]release.Formatted{300: freshData(300)},
		failID:    301,
	}
	runner, err := backfill.NewRunner(st, looker, logging.NewNop(), backfill.Options{
		UserID: "user-1",
	})
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}

	summary, err := runner.Run(ctx)
	if err == nil {
		t.Fatal("expected error from failing record")
	}
	if !strings.Contains(err.Error(), failing.ID) {
		t.Errorf("error %q does not name the failing record", err)
	}
	if summary.Updated != 1 {
		t.Errorf("Updated = %d, want 1 before the halt", summary.Updated)
	}
}

func TestRunLimit(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()
	seedBackfillRecord(t, st, 300)
	seedBackfillRecord(t, st, 301)

	looker := &fakeLooker{formatted: map[int64]release.Formatted{
		300: freshData(300),
		301: freshData(301),
	}}
	runner, err := backfill.NewRunner(st, looker, logging.NewNop(), backfill.Options{
		DryRun: true,
		UserID: "user-1",
		Limit:  1,
		CSVDir: cfg.Backfill.CSVDir,
	})
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}

	summary, err := runner.Run(ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Processed != 1 || looker.calls != 1 {
		t.Errorf("processed = %d, calls = %d, want 1 each", summary.Processed, looker.calls)
	}
}

func TestRunLockExclusion(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	seedBackfillRecord(t, st, 300)

	lockPath := filepath.Join(t.TempDir(), "backfill.lock")
	held := flock.New(lockPath)
	locked, err := held.TryLock()
	if err != nil || !locked {
		t.Fatalf("prepare lock: %v %v", locked, err)
	}
	t.Cleanup(func() { _ = held.Unlock() })

	looker := &fakeLooker{formatted: map[int64]release.Formatted{300: freshData(300)}}
	runner, err := backfill.NewRunner(st, looker, logging.NewNop(), backfill.Options{
		DryRun:   true,
		UserID:   "user-1",
		CSVDir:   cfg.Backfill.CSVDir,
		LockPath: lockPath,
	})
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}

	if _, err := runner.Run(context.Background()); !errors.Is(err, backfill.ErrLocked) {
		t.Fatalf("err = %v, want ErrLocked", err)
	}
	if looker.calls != 0 {
		t.Errorf("locked run performed %d lookups", looker.calls)
	}
}
