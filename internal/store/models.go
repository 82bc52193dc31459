package store

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"waxcrate/internal/credits"
	"waxcrate/internal/release"
)

// Record is one vinyl record in a user's collection, carrying the
// reconciled metadata plus per-edition provenance.
type Record struct {
	ID            string
	UserID        string
	Artist        string
	Album         string
	Year          int
	Country       string
	Label         string
	CatalogNumber string
	Genres        []string
	Styles        []string
	Musicians     credits.Categorized
	Tracklist     []release.Track

	MasterID           int64
	MasterURL          string
	OriginalReleaseID  int64
	OriginalReleaseURL string
	CurrentReleaseID   int64
	CurrentReleaseURL  string

	AddedFrom    string
	Barcode      string
	Notes        string
	CustomValues map[string]any

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewRecord builds a Record from a formatted lookup result, assigning a
// fresh id.
func NewRecord(userID string, formatted release.Formatted) *Record {
	return &Record{
		ID:            uuid.NewString(),
		UserID:        userID,
		Artist:        formatted.Artist,
		Album:         formatted.Album,
		Year:          formatted.Year,
		Country:       formatted.Country,
		Label:         formatted.Label,
		CatalogNumber: formatted.CatalogNumber,
		Genres:        formatted.Genres,
		Styles:        formatted.Styles,
		Musicians:     formatted.Musicians,
		Tracklist:     formatted.Tracklist,

		MasterID:           formatted.MasterID,
		MasterURL:          formatted.MasterURL,
		OriginalReleaseID:  formatted.OriginalReleaseID,
		OriginalReleaseURL: formatted.OriginalReleaseURL,
		CurrentReleaseID:   formatted.CurrentReleaseID,
		CurrentReleaseURL:  formatted.CurrentReleaseURL,

		AddedFrom: formatted.AddedFrom,
		Barcode:   formatted.Barcode,
	}
}

// ApplyFormatted overwrites the record's reconciled fields from a fresh
// lookup while leaving the user-owned columns (notes, custom values,
// provenance tag, timestamps) untouched.
func (r *Record) ApplyFormatted(formatted release.Formatted) {
	r.Artist = formatted.Artist
	r.Album = formatted.Album
	r.Year = formatted.Year
	r.Country = formatted.Country
	r.Label = formatted.Label
	r.CatalogNumber = formatted.CatalogNumber
	r.Genres = formatted.Genres
	r.Styles = formatted.Styles
	r.Musicians = formatted.Musicians
	r.Tracklist = formatted.Tracklist
	r.MasterID = formatted.MasterID
	r.MasterURL = formatted.MasterURL
	r.OriginalReleaseID = formatted.OriginalReleaseID
	r.OriginalReleaseURL = formatted.OriginalReleaseURL
	r.CurrentReleaseID = formatted.CurrentReleaseID
	r.CurrentReleaseURL = formatted.CurrentReleaseURL
	if r.Barcode == "" {
		r.Barcode = formatted.Barcode
	}
}

// Contributor is a named credit recipient, shared across records.
type Contributor struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Category is one row of the contribution category lookup.
type Category struct {
	ID           int64
	MainCategory string
	SubCategory  string
}

// CategoryKey identifies a category by its heading pair.
type CategoryKey struct {
	Main string
	Sub  string
}

// Contribution links a contributor to a record under one category, with
// the split role and instrument lists stored as JSON.
type Contribution struct {
	ID            int64
	RecordID      string
	UserID        string
	ContributorID string
	CategoryID    int64
	Roles         []string
	Instruments   []string
	CreatedAt     time.Time
}

func normalizeName(name string) string {
	return strings.TrimSpace(name)
}
