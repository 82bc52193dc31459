package discogs

import (
	"waxcrate/internal/credits"
	"waxcrate/internal/release"
)

// Edition converts a release payload into the edition model the
// reconciler consumes. The first label wins; Discogs lists repress
// labels after the primary one.
func (r *Release) Edition() *release.Edition {
	if r == nil {
		return nil
	}
	edition := &release.Edition{
		ID:           r.ID,
		URL:          r.URI,
		Title:        r.Title,
		Artists:      artistNames(r.Artists),
		Year:         r.Year,
		Country:      r.Country,
		ReleaseDate:  r.Released,
		Formats:      formatNames(r.Formats),
		Identifiers:  identifiers(r.Identifiers),
		Genres:       r.Genres,
		Styles:       r.Styles,
		Tracklist:    tracklist(r.Tracklist),
		ExtraArtists: extraCredits(r.ExtraArtists),
	}
	if len(r.Labels) > 0 {
		edition.Label = r.Labels[0].Name
		edition.CatalogNumber = r.Labels[0].Catno
	}
	return edition
}

// Edition converts a master payload. Masters carry no pressing fields,
// only title-level ones.
func (m *Master) Edition() *release.Edition {
	if m == nil {
		return nil
	}
	return &release.Edition{
		ID:        m.ID,
		URL:       m.URI,
		Title:     m.Title,
		Artists:   artistNames(m.Artists),
		Year:      m.Year,
		Genres:    m.Genres,
		Styles:    m.Styles,
		Tracklist: tracklist(m.Tracklist),
	}
}

func artistNames(artists []Artist) []string {
	out := make([]string, 0, len(artists))
	for _, a := range artists {
		name := a.Name
		if a.ANV != "" {
			name = a.ANV
		}
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}

func formatNames(formats []Format) []string {
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		if f.Name != "" {
			out = append(out, f.Name)
		}
	}
	return out
}

func identifiers(ids []Identifier) []release.Identifier {
	out := make([]release.Identifier, 0, len(ids))
	for _, id := range ids {
		out = append(out, release.Identifier{
			Type:        id.Type,
			Value:       id.Value,
			Description: id.Description,
		})
	}
	return out
}

func tracklist(tracks []Track) []release.Track {
	out := make([]release.Track, 0, len(tracks))
	for _, t := range tracks {
		out = append(out, release.Track{
			Position:     t.Position,
			Title:        t.Title,
			Duration:     t.Duration,
			ExtraArtists: extraCredits(t.ExtraArtists),
		})
	}
	return out
}

func extraCredits(artists []Artist) []credits.Credit {
	out := make([]credits.Credit, 0, len(artists))
	for _, a := range artists {
		if a.Name == "" {
			continue
		}
		out = append(out, credits.Credit{Name: a.Name, Role: a.Role})
	}
	return out
}
