package store

import (
	"context"
	"database/sql"
	"fmt"
)

// TableCounts summarizes row counts across the collection tables.
type TableCounts struct {
	Records       int64
	Contributors  int64
	Categories    int64
	Contributions int64
}

// Counts returns the row count of every collection table. A non-empty
// userID restricts records and contributions to that owner; contributors
// and categories are shared across owners and always counted in full.
func (s *Store) Counts(ctx context.Context, userID string) (TableCounts, error) {
	counts := TableCounts{}
	queries := []struct {
		table   string
		userCol bool
		dest    *int64
	}{
		{"vinyl_records", true, &counts.Records},
		{"contributors", false, &counts.Contributors},
		{"contribution_categories", false, &counts.Categories},
		{"contributions", true, &counts.Contributions},
	}
	for _, q := range queries {
		query := "SELECT COUNT(*) FROM " + q.table
		args := []any{}
		if q.userCol && userID != "" {
			query += " WHERE user_id = ?"
			args = append(args, userID)
		}
		row := s.db.QueryRowContext(ctx, query, args...)
		if err := row.Scan(q.dest); err != nil {
			return counts, fmt.Errorf("count %s: %w", q.table, err)
		}
	}
	return counts, nil
}

// ContributionSample is one joined contribution row for inspection.
type ContributionSample struct {
	Artist       string
	Album        string
	Contributor  string
	MainCategory string
	SubCategory  string
	Roles        []string
	Instruments  []string
}

// SampleContributions returns joined contribution rows for spot checks.
// A non-empty userID restricts the sample to that owner's records.
func (s *Store) SampleContributions(ctx context.Context, userID string, limit int) ([]ContributionSample, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `SELECT r.artist, r.album, p.name, c.main_category, c.sub_category, n.roles, n.instruments
         FROM contributions n
         JOIN vinyl_records r ON r.id = n.record_id
         JOIN contributors p ON p.id = n.contributor_id
         JOIN contribution_categories c ON c.id = n.category_id`
	args := []any{}
	if userID != "" {
		query += " WHERE n.user_id = ?"
		args = append(args, userID)
	}
	query += " ORDER BY n.id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sample contributions: %w", err)
	}
	defer rows.Close()

	var samples []ContributionSample
	for rows.Next() {
		var (
			sample         ContributionSample
			artist         sql.NullString
			album          sql.NullString
			rolesRaw       sql.NullString
			instrumentsRaw sql.NullString
		)
		if err := rows.Scan(&artist, &album, &sample.Contributor, &sample.MainCategory, &sample.SubCategory, &rolesRaw, &instrumentsRaw); err != nil {
			return nil, err
		}
		sample.Artist = artist.String
		sample.Album = album.String
		if err := unmarshalJSON(rolesRaw, &sample.Roles); err != nil {
			return nil, err
		}
		if err := unmarshalJSON(instrumentsRaw, &sample.Instruments); err != nil {
			return nil, err
		}
		samples = append(samples, sample)
	}
	return samples, rows.Err()
}
