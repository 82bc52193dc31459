package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"waxcrate/internal/credits"
)

// SeedCategories inserts the category table rows, ignoring pairs that
// already exist, so fresh databases always have a populated lookup.
func (s *Store) SeedCategories(ctx context.Context, table *credits.Table) (int64, error) {
	if table == nil {
		return 0, errors.New("category table is nil")
	}
	seen := make(map[CategoryKey]struct{})
	var inserted int64
	for _, entry := range table.Entries() {
		key := CategoryKey{Main: entry.Heading, Sub: entry.Subheading}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		res, err := s.db.ExecContext(
			ctx,
			`INSERT INTO contribution_categories (main_category, sub_category)
             VALUES (?, ?) ON CONFLICT(main_category, sub_category) DO NOTHING`,
			key.Main, key.Sub,
		)
		if err != nil {
			return inserted, fmt.Errorf("seed category %s/%s: %w", key.Main, key.Sub, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return inserted, fmt.Errorf("rows affected: %w", err)
		}
		inserted += affected
	}

	// The catch-all bucket is not part of the role table but every
	// projection needs it.
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO contribution_categories (main_category, sub_category)
         VALUES (?, ?) ON CONFLICT(main_category, sub_category) DO NOTHING`,
		credits.HeadingOther, credits.SubheadingGeneral,
	)
	if err != nil {
		return inserted, fmt.Errorf("seed fallback category: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return inserted, fmt.Errorf("rows affected: %w", err)
	}
	return inserted + affected, nil
}

// CategoryMap loads the full category lookup keyed by heading pair.
func (s *Store) CategoryMap(ctx context.Context) (map[CategoryKey]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, main_category, sub_category FROM contribution_categories`)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	defer rows.Close()

	lookup := make(map[CategoryKey]int64)
	for rows.Next() {
		var cat Category
		if err := rows.Scan(&cat.ID, &cat.MainCategory, &cat.SubCategory); err != nil {
			return nil, err
		}
		lookup[CategoryKey{Main: cat.MainCategory, Sub: cat.SubCategory}] = cat.ID
	}
	return lookup, rows.Err()
}

// UpsertContributorByName returns the contributor with the given name,
// creating it when absent. Names are matched exactly after trimming.
func (s *Store) UpsertContributorByName(ctx context.Context, name string) (*Contributor, bool, error) {
	name = normalizeName(name)
	if name == "" {
		return nil, false, errors.New("contributor name is empty")
	}

	row := s.db.QueryRowContext(ctx, `SELECT id, name, created_at FROM contributors WHERE name = ?`, name)
	contributor, err := scanContributor(row)
	if err == nil {
		return contributor, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("get contributor: %w", err)
	}

	created := time.Now().UTC()
	id := uuid.NewString()
	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO contributors (id, name, created_at) VALUES (?, ?, ?)
         ON CONFLICT(name) DO NOTHING`,
		id, name, timestamp(created),
	)
	if err != nil {
		return nil, false, fmt.Errorf("insert contributor: %w", err)
	}

	// Re-read in case a concurrent writer won the conflict.
	row = s.db.QueryRowContext(ctx, `SELECT id, name, created_at FROM contributors WHERE name = ?`, name)
	contributor, err = scanContributor(row)
	if err != nil {
		return nil, false, fmt.Errorf("reread contributor: %w", err)
	}
	return contributor, contributor.ID == id, nil
}

// UpsertContribution writes a contribution row, replacing the role and
// instrument lists when the (record, contributor, category) triple
// already exists.
func (s *Store) UpsertContribution(ctx context.Context, contribution *Contribution) error {
	if contribution == nil {
		return errors.New("contribution is nil")
	}
	roles, err := marshalJSON(contribution.Roles)
	if err != nil {
		return err
	}
	instruments, err := marshalJSON(contribution.Instruments)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO contributions (record_id, user_id, contributor_id, category_id, roles, instruments, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)
         ON CONFLICT(record_id, contributor_id, category_id)
         DO UPDATE SET roles = excluded.roles, instruments = excluded.instruments`,
		contribution.RecordID,
		contribution.UserID,
		contribution.ContributorID,
		contribution.CategoryID,
		roles,
		instruments,
		timestamp(time.Now().UTC()),
	)
	if err != nil {
		return fmt.Errorf("upsert contribution: %w", err)
	}
	return nil
}

// ContributionsForRecord returns a record's contribution rows.
func (s *Store) ContributionsForRecord(ctx context.Context, recordID string) ([]*Contribution, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, record_id, user_id, contributor_id, category_id, roles, instruments, created_at
         FROM contributions WHERE record_id = ? ORDER BY id`,
		recordID,
	)
	if err != nil {
		return nil, fmt.Errorf("list contributions: %w", err)
	}
	defer rows.Close()

	var contributions []*Contribution
	for rows.Next() {
		contribution, err := scanContribution(rows)
		if err != nil {
			return nil, err
		}
		contributions = append(contributions, contribution)
	}
	return contributions, rows.Err()
}

// DeleteContributions removes a record's contribution rows ahead of a
// re-projection.
func (s *Store) DeleteContributions(ctx context.Context, recordID, userID string) (int64, error) {
	res, err := s.db.ExecContext(
		ctx,
		`DELETE FROM contributions WHERE record_id = ? AND user_id = ?`,
		recordID, userID,
	)
	if err != nil {
		return 0, fmt.Errorf("delete contributions: %w", err)
	}
	return res.RowsAffected()
}

// GetContributorByName fetches a contributor without creating one. A
// missing contributor returns (nil, nil).
func (s *Store) GetContributorByName(ctx context.Context, name string) (*Contributor, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, name, created_at FROM contributors WHERE name = ?`, normalizeName(name))
	contributor, err := scanContributor(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get contributor: %w", err)
	}
	return contributor, nil
}

func scanContributor(scanner interface{ Scan(dest ...any) error }) (*Contributor, error) {
	var (
		id         string
		name       string
		createdRaw sql.NullString
	)
	if err := scanner.Scan(&id, &name, &createdRaw); err != nil {
		return nil, err
	}
	contributor := &Contributor{ID: id, Name: name}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		contributor.CreatedAt = created
	}
	return contributor, nil
}

func scanContribution(scanner interface{ Scan(dest ...any) error }) (*Contribution, error) {
	var (
		id             int64
		recordID       string
		userID         string
		contributorID  string
		categoryID     int64
		rolesRaw       sql.NullString
		instrumentsRaw sql.NullString
		createdRaw     sql.NullString
	)
	if err := scanner.Scan(&id, &recordID, &userID, &contributorID, &categoryID, &rolesRaw, &instrumentsRaw, &createdRaw); err != nil {
		return nil, err
	}
	contribution := &Contribution{
		ID:            id,
		RecordID:      recordID,
		UserID:        userID,
		ContributorID: contributorID,
		CategoryID:    categoryID,
	}
	if err := unmarshalJSON(rolesRaw, &contribution.Roles); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(instrumentsRaw, &contribution.Instruments); err != nil {
		return nil, err
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		contribution.CreatedAt = created
	}
	return contribution, nil
}
