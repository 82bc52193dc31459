package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"waxcrate/internal/credits"
)

const recordColumns = "id, user_id, artist, album, year, country, label, catalog_number, genres, styles, musicians, tracklist, master_id, master_url, original_release_id, original_release_url, current_release_id, current_release_url, added_from, barcode, notes, custom_values, created_at, updated_at"

// SaveRecord inserts a new record into the collection.
func (s *Store) SaveRecord(ctx context.Context, record *Record) error {
	if record == nil {
		return errors.New("record is nil")
	}
	if record.ID == "" {
		return errors.New("record id is empty")
	}
	now := time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now

	genres, err := marshalJSON(record.Genres)
	if err != nil {
		return err
	}
	styles, err := marshalJSON(record.Styles)
	if err != nil {
		return err
	}
	musicians, err := marshalJSON(record.Musicians)
	if err != nil {
		return err
	}
	tracklist, err := marshalJSON(record.Tracklist)
	if err != nil {
		return err
	}
	customValues, err := marshalJSON(record.CustomValues)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO vinyl_records (`+recordColumns+`)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.UserID,
		nullableString(record.Artist),
		nullableString(record.Album),
		nullableInt64(int64(record.Year)),
		nullableString(record.Country),
		nullableString(record.Label),
		nullableString(record.CatalogNumber),
		genres,
		styles,
		musicians,
		tracklist,
		nullableInt64(record.MasterID),
		nullableString(record.MasterURL),
		nullableInt64(record.OriginalReleaseID),
		nullableString(record.OriginalReleaseURL),
		nullableInt64(record.CurrentReleaseID),
		nullableString(record.CurrentReleaseURL),
		nullableString(record.AddedFrom),
		nullableString(record.Barcode),
		nullableString(record.Notes),
		customValues,
		timestamp(record.CreatedAt),
		timestamp(record.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

// GetRecord fetches a record by id. A missing record returns (nil, nil).
func (s *Store) GetRecord(ctx context.Context, id string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+recordColumns+` FROM vinyl_records WHERE id = ?`, id)
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	return record, nil
}

// ListRecords returns a user's records ordered by creation time. A zero
// limit returns all records.
func (s *Store) ListRecords(ctx context.Context, userID string, limit int) ([]*Record, error) {
	query := `SELECT ` + recordColumns + ` FROM vinyl_records WHERE user_id = ? ORDER BY created_at`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// UpdateRecordFields persists the reconciled metadata columns of an
// existing record. The user-owned columns (added_from, notes, custom
// values, created_at) are deliberately left out of the statement so a
// refresh can never clobber them.
func (s *Store) UpdateRecordFields(ctx context.Context, record *Record) error {
	if record == nil {
		return errors.New("record is nil")
	}
	record.UpdatedAt = time.Now().UTC()

	genres, err := marshalJSON(record.Genres)
	if err != nil {
		return err
	}
	styles, err := marshalJSON(record.Styles)
	if err != nil {
		return err
	}
	musicians, err := marshalJSON(record.Musicians)
	if err != nil {
		return err
	}
	tracklist, err := marshalJSON(record.Tracklist)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(
		ctx,
		`UPDATE vinyl_records
         SET artist = ?, album = ?, year = ?, country = ?, label = ?, catalog_number = ?,
             genres = ?, styles = ?, musicians = ?, tracklist = ?,
             master_id = ?, master_url = ?, original_release_id = ?, original_release_url = ?,
             current_release_id = ?, current_release_url = ?, barcode = ?, updated_at = ?
         WHERE id = ?`,
		nullableString(record.Artist),
		nullableString(record.Album),
		nullableInt64(int64(record.Year)),
		nullableString(record.Country),
		nullableString(record.Label),
		nullableString(record.CatalogNumber),
		genres,
		styles,
		musicians,
		tracklist,
		nullableInt64(record.MasterID),
		nullableString(record.MasterURL),
		nullableInt64(record.OriginalReleaseID),
		nullableString(record.OriginalReleaseURL),
		nullableInt64(record.CurrentReleaseID),
		nullableString(record.CurrentReleaseURL),
		nullableString(record.Barcode),
		timestamp(record.UpdatedAt),
		record.ID,
	)
	if err != nil {
		return fmt.Errorf("update record: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("record %s not found", record.ID)
	}
	return nil
}

// DeleteRecord removes a record and, via the foreign key cascade, its
// contributions.
func (s *Store) DeleteRecord(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM vinyl_records WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete record: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

func scanRecord(scanner interface{ Scan(dest ...any) error }) (*Record, error) {
	var (
		id            string
		userID        string
		artist        sql.NullString
		album         sql.NullString
		year          sql.NullInt64
		country       sql.NullString
		label         sql.NullString
		catalogNumber sql.NullString
		genresRaw     sql.NullString
		stylesRaw     sql.NullString
		musiciansRaw  sql.NullString
		tracklistRaw  sql.NullString
		masterID      sql.NullInt64
		masterURL     sql.NullString
		originalID    sql.NullInt64
		originalURL   sql.NullString
		currentID     sql.NullInt64
		currentURL    sql.NullString
		addedFrom     sql.NullString
		barcode       sql.NullString
		notes         sql.NullString
		customRaw     sql.NullString
		createdRaw    sql.NullString
		updatedRaw    sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&userID,
		&artist,
		&album,
		&year,
		&country,
		&label,
		&catalogNumber,
		&genresRaw,
		&stylesRaw,
		&musiciansRaw,
		&tracklistRaw,
		&masterID,
		&masterURL,
		&originalID,
		&originalURL,
		&currentID,
		&currentURL,
		&addedFrom,
		&barcode,
		&notes,
		&customRaw,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	record := &Record{
		ID:            id,
		UserID:        userID,
		Artist:        artist.String,
		Album:         album.String,
		Year:          int(year.Int64),
		Country:       country.String,
		Label:         label.String,
		CatalogNumber: catalogNumber.String,

		MasterID:           masterID.Int64,
		MasterURL:          masterURL.String,
		OriginalReleaseID:  originalID.Int64,
		OriginalReleaseURL: originalURL.String,
		CurrentReleaseID:   currentID.Int64,
		CurrentReleaseURL:  currentURL.String,

		AddedFrom: addedFrom.String,
		Barcode:   barcode.String,
		Notes:     notes.String,
	}

	if err := unmarshalJSON(genresRaw, &record.Genres); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(stylesRaw, &record.Styles); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(tracklistRaw, &record.Tracklist); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(customRaw, &record.CustomValues); err != nil {
		return nil, err
	}
	if musiciansRaw.Valid {
		musicians, err := credits.DecodeMusicians([]byte(musiciansRaw.String))
		if err != nil {
			return nil, err
		}
		record.Musicians = musicians
	}

	if created, err := parseTimeString(createdRaw.String); err == nil {
		record.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		record.UpdatedAt = updated
	}
	return record, nil
}
