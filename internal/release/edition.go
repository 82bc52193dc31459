package release

import (
	"strings"

	"waxcrate/internal/credits"
)

// Track is one tracklist entry. Track-level credits ride along so the
// aggregator can fold them into the release-level pool.
type Track struct {
	Position     string           `json:"position"`
	Title        string           `json:"title"`
	Duration     string           `json:"duration"`
	ExtraArtists []credits.Credit `json:"extra_artists,omitempty"`
}

// Identifier is a provider identifier such as a barcode or matrix code.
type Identifier struct {
	Type        string `json:"type"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

// Edition is one edition of a release as returned by the provider. Not
// every field is populated on every edition: masters rarely carry
// identifiers or country, and some releases have no master at all.
type Edition struct {
	ID            int64
	URL           string
	Title         string
	Artists       []string
	Year          int
	Country       string
	Label         string
	CatalogNumber string
	ReleaseDate   string
	Formats       []string
	Identifiers   []Identifier
	Genres        []string
	Styles        []string
	Tracklist     []Track
	ExtraArtists  []credits.Credit
}

// Artist joins the edition's artist names for display.
func (e *Edition) Artist() string {
	if e == nil {
		return ""
	}
	return strings.Join(e.Artists, ", ")
}

// Barcode returns the first barcode identifier value, if any.
func (e *Edition) Barcode() string {
	if e == nil {
		return ""
	}
	for _, id := range e.Identifiers {
		if strings.EqualFold(id.Type, "Barcode") {
			return strings.TrimSpace(id.Value)
		}
	}
	return ""
}

func (e *Edition) trackCredits() [][]credits.Credit {
	if e == nil {
		return nil
	}
	out := make([][]credits.Credit, 0, len(e.Tracklist))
	for _, track := range e.Tracklist {
		if len(track.ExtraArtists) > 0 {
			out = append(out, track.ExtraArtists)
		}
	}
	return out
}

// CreditSources assembles the tiered credit pool for the aggregator.
// When the original edition is the current one (no distinct original
// release exists) the current tier is left empty so credits are not
// counted twice.
func CreditSources(original, current *Edition) credits.SourceSet {
	sources := credits.SourceSet{}
	if original != nil {
		sources.OriginalRelease = original.ExtraArtists
		sources.OriginalTracks = original.trackCredits()
	}
	if current != nil && (original == nil || original.ID != current.ID) {
		sources.CurrentRelease = current.ExtraArtists
		sources.CurrentTracks = current.trackCredits()
	}
	return sources
}
