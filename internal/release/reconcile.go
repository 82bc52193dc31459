package release

import "errors"

// ErrNoCurrentEdition is returned when reconciliation is attempted
// without the pressing that anchored the lookup.
var ErrNoCurrentEdition = errors.New("release: current edition is required")

// EditionFields preserves one edition's own descriptive fields exactly
// as the provider returned them, with no reconciliation applied. The
// edition ids and urls ride separately as the *_release_id and
// *_release_url provenance fields.
type EditionFields struct {
	Year          int          `json:"year,omitempty"`
	ReleaseDate   string       `json:"release_date,omitempty"`
	Country       string       `json:"country,omitempty"`
	Label         string       `json:"label,omitempty"`
	CatalogNumber string       `json:"catno,omitempty"`
	Formats       []string     `json:"formats,omitempty"`
	Identifiers   []Identifier `json:"identifiers,omitempty"`
}

// Reconciled holds the priority-resolved fields plus the identifying
// fields of each contributing edition, kept separate so provenance is
// never lost.
type Reconciled struct {
	Genres        []string
	Styles        []string
	Year          int
	Label         string
	CatalogNumber string
	Country       string
	Tracklist     []Track

	MasterID           int64
	MasterURL          string
	OriginalReleaseID  int64
	OriginalReleaseURL string
	CurrentReleaseID   int64
	CurrentReleaseURL  string

	Master   EditionFields
	Original EditionFields
	Current  EditionFields
}

// Reconcile resolves each field across the master, original and current
// editions. Genres and styles prefer the master, the scalar pressing
// fields prefer the original release, and the tracklist comes from the
// master alone. An empty list from a higher-priority edition never
// shadows a populated one below it. When no distinct original release
// exists the current pressing stands in as its own original, ids
// included.
func Reconcile(master, original, current *Edition) (Reconciled, error) {
	if current == nil {
		return Reconciled{}, ErrNoCurrentEdition
	}
	if original == nil {
		original = current
	}

	out := Reconciled{
		Genres:        firstNonEmptyList(editionGenres(master), original.Genres, current.Genres),
		Styles:        firstNonEmptyList(editionStyles(master), original.Styles, current.Styles),
		Year:          firstNonZero(original.Year, current.Year),
		Label:         firstNonEmpty(original.Label, current.Label),
		CatalogNumber: firstNonEmpty(original.CatalogNumber, current.CatalogNumber),
		Country:       firstNonEmpty(original.Country, current.Country),

		OriginalReleaseID:  original.ID,
		OriginalReleaseURL: original.URL,
		CurrentReleaseID:   current.ID,
		CurrentReleaseURL:  current.URL,

		Master:   editionFields(master),
		Original: editionFields(original),
		Current:  editionFields(current),
	}
	if master != nil {
		out.MasterID = master.ID
		out.MasterURL = master.URL
		out.Tracklist = master.Tracklist
	}
	return out, nil
}

func editionFields(e *Edition) EditionFields {
	if e == nil {
		return EditionFields{}
	}
	return EditionFields{
		Year:          e.Year,
		ReleaseDate:   e.ReleaseDate,
		Country:       e.Country,
		Label:         e.Label,
		CatalogNumber: e.CatalogNumber,
		Formats:       e.Formats,
		Identifiers:   e.Identifiers,
	}
}

func editionGenres(e *Edition) []string {
	if e == nil {
		return nil
	}
	return e.Genres
}

func editionStyles(e *Edition) []string {
	if e == nil {
		return nil
	}
	return e.Styles
}

func firstNonEmptyList(candidates ...[]string) []string {
	for _, c := range candidates {
		if len(c) > 0 {
			return c
		}
	}
	return nil
}

func firstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}

func firstNonZero(candidates ...int) int {
	for _, c := range candidates {
		if c != 0 {
			return c
		}
	}
	return 0
}
