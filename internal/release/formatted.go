package release

import "waxcrate/internal/credits"

// Provenance tags recorded on every stored record.
const (
	AddedFromBarcode     = "barcode"
	AddedFromURL         = "discogs_url"
	AddedFromManual      = "manual"
	AddedFromSpotifySync = "spotify_sync"
)

// Formatted is the final reconciled record for one lookup: identity
// fields from the scanned pressing, the priority-resolved fields, the
// categorized credit structure, and the per-edition provenance ids.
type Formatted struct {
	Artist        string       `json:"artist"`
	Album         string       `json:"album"`
	Year          int          `json:"year,omitempty"`
	Country       string       `json:"country,omitempty"`
	Label         string       `json:"label,omitempty"`
	CatalogNumber string       `json:"catalog_number,omitempty"`
	Genres        []string     `json:"genres,omitempty"`
	Styles        []string     `json:"styles,omitempty"`
	Tracklist     []Track      `json:"tracklist,omitempty"`
	Identifiers   []Identifier `json:"identifiers,omitempty"`

	MasterID           int64  `json:"master_id,omitempty"`
	MasterURL          string `json:"master_url,omitempty"`
	OriginalReleaseID  int64  `json:"original_release_id,omitempty"`
	OriginalReleaseURL string `json:"original_release_url,omitempty"`
	CurrentReleaseID   int64  `json:"current_release_id,omitempty"`
	CurrentReleaseURL  string `json:"current_release_url,omitempty"`

	Master   EditionFields `json:"master"`
	Original EditionFields `json:"original"`
	Current  EditionFields `json:"current"`

	Musicians credits.Categorized `json:"musicians"`
	AddedFrom string              `json:"added_from,omitempty"`
	Barcode   string              `json:"barcode,omitempty"`
}

// Format reconciles the editions and attaches identity, credits and
// provenance. Identity and identifiers always come from the current
// pressing, which is the thing the user actually holds.
func Format(master, original, current *Edition, musicians credits.Categorized, addedFrom string) (Formatted, error) {
	reconciled, err := Reconcile(master, original, current)
	if err != nil {
		return Formatted{}, err
	}
	if musicians == nil {
		musicians = credits.Categorized{}
	}
	return Formatted{
		Artist:        current.Artist(),
		Album:         current.Title,
		Year:          reconciled.Year,
		Country:       reconciled.Country,
		Label:         reconciled.Label,
		CatalogNumber: reconciled.CatalogNumber,
		Genres:        reconciled.Genres,
		Styles:        reconciled.Styles,
		Tracklist:     reconciled.Tracklist,
		Identifiers:   current.Identifiers,

		MasterID:           reconciled.MasterID,
		MasterURL:          reconciled.MasterURL,
		OriginalReleaseID:  reconciled.OriginalReleaseID,
		OriginalReleaseURL: reconciled.OriginalReleaseURL,
		CurrentReleaseID:   reconciled.CurrentReleaseID,
		CurrentReleaseURL:  reconciled.CurrentReleaseURL,

		Master:   reconciled.Master,
		Original: reconciled.Original,
		Current:  reconciled.Current,

		Musicians: musicians,
		AddedFrom: addedFrom,
		Barcode:   current.Barcode(),
	}, nil
}
