package backfill

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"waxcrate/internal/release"
	"waxcrate/internal/store"
)

var comparisonHeader = []string{
	"record_id", "artist", "album",
	"year", "country", "label", "catalog_number",
	"genres", "styles", "tracklist_new",
	"original_catno_new", "current_label_new", "current_catno_new", "current_country_new",
	"master_url_new", "original_release_url_new", "musicians",
}

var fullDataHeader = []string{
	"record_id", "artist", "album",
	"year", "country", "label", "catalog_number",
	"genres", "styles", "tracks",
	"release_date", "formats",
	"original_catno", "current_label", "current_catno", "current_country",
	"master_url", "original_release_url", "current_release_url", "barcode",
}

// report accumulates dry-run rows and writes the two CSV files.
type report struct {
	dir        string
	comparison [][]string
	fullData   [][]string
}

func newReport(dir string) *report {
	return &report{dir: dir}
}

func (r *report) add(record *store.Record, fresh release.Formatted) {
	r.comparison = append(r.comparison, []string{
		record.ID,
		record.Artist,
		record.Album,
		compareInts(record.Year, fresh.Year),
		compareStrings(record.Country, fresh.Country),
		compareStrings(record.Label, fresh.Label),
		compareStrings(record.CatalogNumber, fresh.CatalogNumber),
		compareLists(record.Genres, fresh.Genres),
		compareLists(record.Styles, fresh.Styles),
		trackSummary(fresh.Tracklist),
		fresh.Original.CatalogNumber,
		fresh.Current.Label,
		fresh.Current.CatalogNumber,
		fresh.Current.Country,
		fresh.MasterURL,
		fresh.OriginalReleaseURL,
		compareCredits(record.Musicians, fresh.Musicians),
	})
	r.fullData = append(r.fullData, []string{
		record.ID,
		fresh.Artist,
		fresh.Album,
		strconv.Itoa(fresh.Year),
		fresh.Country,
		fresh.Label,
		fresh.CatalogNumber,
		strings.Join(fresh.Genres, "; "),
		strings.Join(fresh.Styles, "; "),
		trackSummary(fresh.Tracklist),
		fresh.Current.ReleaseDate,
		strings.Join(fresh.Current.Formats, "; "),
		fresh.Original.CatalogNumber,
		fresh.Current.Label,
		fresh.Current.CatalogNumber,
		fresh.Current.Country,
		fresh.MasterURL,
		fresh.OriginalReleaseURL,
		fresh.CurrentReleaseURL,
		fresh.Barcode,
	})
}

func (r *report) write() (string, string, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", "", fmt.Errorf("create report dir: %w", err)
	}
	stamp := time.Now().Format("20060102_150405")
	comparisonPath := filepath.Join(r.dir, "backfill_comparison_"+stamp+".csv")
	fullPath := filepath.Join(r.dir, "backfill_full_data_"+stamp+".csv")

	if err := writeCSV(comparisonPath, comparisonHeader, r.comparison); err != nil {
		return "", "", err
	}
	if err := writeCSV(fullPath, fullDataHeader, r.fullData); err != nil {
		return "", "", err
	}
	return comparisonPath, fullPath, nil
}

func writeCSV(path string, header []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func trackSummary(tracks []release.Track) string {
	if len(tracks) == 0 {
		return ""
	}
	return fmt.Sprintf("%d tracks", len(tracks))
}
