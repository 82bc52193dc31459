package release

import (
	"errors"
	"reflect"
	"testing"

	"waxcrate/internal/credits"
)

func TestReconcilePriority(t *testing.T) {
	master := &Edition{
		ID:     100,
		URL:    "https://www.discogs.com/master/100",
		Genres: []string{"Jazz"},
		Styles: []string{"Contemporary Jazz"},
		Tracklist: []Track{
			{Position: "A1", Title: "Seventh String", Duration: "4:04"},
		},
	}
	original := &Edition{
		ID:            200,
		URL:           "https://www.discogs.com/release/200",
		Year:          2018,
		Country:       "US",
		Label:         "International Anthem",
		CatalogNumber: "IARC0021",
		Genres:        []string{"Electronic"},
	}
	current := &Edition{
		ID:            300,
		URL:           "https://www.discogs.com/release/300",
		Year:          2022,
		Country:       "UK",
		Label:         "Reissue Label",
		CatalogNumber: "RL-300",
		Genres:        []string{"Pop"},
		Styles:        []string{"Synth-pop"},
	}

	got, err := Reconcile(master, original, current)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	if !reflect.DeepEqual(got.Genres, []string{"Jazz"}) {
		t.Errorf("Genres = %v", got.Genres)
	}
	if !reflect.DeepEqual(got.Styles, []string{"Contemporary Jazz"}) {
		t.Errorf("Styles = %v", got.Styles)
	}
	if got.Year != 2018 {
		t.Errorf("Year = %d, want 2018", got.Year)
	}
	if got.Label != "International Anthem" || got.CatalogNumber != "IARC0021" || got.Country != "US" {
		t.Errorf("pressing fields = %q %q %q", got.Label, got.CatalogNumber, got.Country)
	}
	if len(got.Tracklist) != 1 || got.Tracklist[0].Title != "Seventh String" {
		t.Errorf("Tracklist = %v", got.Tracklist)
	}
	if got.MasterID != 100 || got.OriginalReleaseID != 200 || got.CurrentReleaseID != 300 {
		t.Errorf("ids = %d %d %d", got.MasterID, got.OriginalReleaseID, got.CurrentReleaseID)
	}
}

func TestReconcilePreservesEditionFields(t *testing.T) {
	master := &Edition{ID: 100, Genres: []string{"Jazz"}, Formats: []string{"Album"}}
	original := &Edition{
		ID:            200,
		Year:          2018,
		Country:       "US",
		Label:         "International Anthem",
		CatalogNumber: "IARC0021",
		ReleaseDate:   "2018-07-27",
		Formats:       []string{"Vinyl", "LP"},
		Identifiers:   []Identifier{{Type: "Barcode", Value: "789993992126"}},
	}
	current := &Edition{
		ID:            300,
		Year:          2022,
		Country:       "UK",
		Label:         "Reissue Label",
		CatalogNumber: "RL-300",
		ReleaseDate:   "2022-09-23",
		Formats:       []string{"Vinyl", "Reissue"},
		Identifiers:   []Identifier{{Type: "Barcode", Value: "0789993992126"}},
	}

	got, err := Reconcile(master, original, current)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	// Reconciliation picks the original's pressing fields, but every
	// edition's own values survive in the snapshots.
	if got.Label != "International Anthem" {
		t.Errorf("Label = %q", got.Label)
	}
	if got.Current.Label != "Reissue Label" || got.Current.CatalogNumber != "RL-300" || got.Current.Country != "UK" {
		t.Errorf("current snapshot = %+v", got.Current)
	}
	if got.Current.ReleaseDate != "2022-09-23" || !reflect.DeepEqual(got.Current.Formats, []string{"Vinyl", "Reissue"}) {
		t.Errorf("current release date / formats = %q %v", got.Current.ReleaseDate, got.Current.Formats)
	}
	if got.Original.Year != 2018 || got.Original.ReleaseDate != "2018-07-27" {
		t.Errorf("original snapshot = %+v", got.Original)
	}
	if len(got.Original.Identifiers) != 1 || got.Original.Identifiers[0].Value != "789993992126" {
		t.Errorf("original identifiers = %v", got.Original.Identifiers)
	}
	if len(got.Current.Identifiers) != 1 || got.Current.Identifiers[0].Value != "0789993992126" {
		t.Errorf("current identifiers = %v", got.Current.Identifiers)
	}
	if !reflect.DeepEqual(got.Master.Formats, []string{"Album"}) {
		t.Errorf("master formats = %v", got.Master.Formats)
	}

	t.Run("missing editions leave empty or stand-in snapshots", func(t *testing.T) {
		got, err := Reconcile(nil, nil, current)
		if err != nil {
			t.Fatalf("Reconcile: %v", err)
		}
		if !reflect.DeepEqual(got.Master, EditionFields{}) {
			t.Errorf("master snapshot = %+v, want zero", got.Master)
		}
		// The pressing stands in as its own original.
		if got.Original.CatalogNumber != "RL-300" || got.Original.ReleaseDate != "2022-09-23" {
			t.Errorf("original snapshot = %+v", got.Original)
		}
	})
}

func TestReconcileEmptyListDoesNotWin(t *testing.T) {
	master := &Edition{ID: 100, Genres: []string{}}
	original := &Edition{ID: 200, Genres: []string{"Jazz"}}
	current := &Edition{ID: 300, Genres: []string{"Pop"}}

	got, err := Reconcile(master, original, current)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if !reflect.DeepEqual(got.Genres, []string{"Jazz"}) {
		t.Errorf("Genres = %v, want [Jazz]", got.Genres)
	}
}

func TestReconcileMissingEditions(t *testing.T) {
	current := &Edition{
		ID:      300,
		URL:     "https://www.discogs.com/release/300",
		Year:    2022,
		Country: "UK",
		Genres:  []string{"Jazz"},
	}

	t.Run("no master or original", func(t *testing.T) {
		got, err := Reconcile(nil, nil, current)
		if err != nil {
			t.Fatalf("Reconcile: %v", err)
		}
		// The pressing stands in as its own original.
		if got.OriginalReleaseID != current.ID {
			t.Errorf("OriginalReleaseID = %d, want %d", got.OriginalReleaseID, current.ID)
		}
		if got.OriginalReleaseURL != current.URL {
			t.Errorf("OriginalReleaseURL = %q", got.OriginalReleaseURL)
		}
		if got.MasterID != 0 || got.MasterURL != "" {
			t.Errorf("master fields = %d %q, want zero", got.MasterID, got.MasterURL)
		}
		if got.Tracklist != nil {
			t.Errorf("Tracklist = %v, want nil without a master", got.Tracklist)
		}
		if got.Year != 2022 || got.Country != "UK" {
			t.Errorf("fields = %d %q", got.Year, got.Country)
		}
	})

	t.Run("no current", func(t *testing.T) {
		if _, err := Reconcile(nil, nil, nil); !errors.Is(err, ErrNoCurrentEdition) {
			t.Errorf("err = %v, want ErrNoCurrentEdition", err)
		}
	})
}

func TestCreditSources(t *testing.T) {
	original := &Edition{
		ID:           200,
		ExtraArtists: []credits.Credit{{Name: "A", Role: "Drums"}},
		Tracklist: []Track{
			{Position: "A1", ExtraArtists: []credits.Credit{{Name: "B", Role: "Harp"}}},
			{Position: "A2"},
		},
	}
	current := &Edition{
		ID:           300,
		ExtraArtists: []credits.Credit{{Name: "C", Role: "Remastered By"}},
	}

	t.Run("distinct editions", func(t *testing.T) {
		got := CreditSources(original, current)
		if len(got.OriginalRelease) != 1 || len(got.OriginalTracks) != 1 {
			t.Errorf("original tier = %v / %v", got.OriginalRelease, got.OriginalTracks)
		}
		if len(got.CurrentRelease) != 1 {
			t.Errorf("current tier = %v", got.CurrentRelease)
		}
	})

	t.Run("current is the original", func(t *testing.T) {
		got := CreditSources(original, original)
		if len(got.CurrentRelease) != 0 || len(got.CurrentTracks) != 0 {
			t.Errorf("current tier should be empty, got %v / %v", got.CurrentRelease, got.CurrentTracks)
		}
	})
}

func TestFormat(t *testing.T) {
	current := &Edition{
		ID:      300,
		URL:     "https://www.discogs.com/release/300",
		Title:   "In These Times",
		Artists: []string{"Makaya McCraven"},
		Year:    2022,
		Country: "US",
		Identifiers: []Identifier{
			{Type: "Barcode", Value: "0789993992126"},
			{Type: "Matrix / Runout", Value: "IARC0051-A"},
		},
	}

	got, err := Format(nil, nil, current, nil, AddedFromBarcode)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if got.Artist != "Makaya McCraven" || got.Album != "In These Times" {
		t.Errorf("identity = %q / %q", got.Artist, got.Album)
	}
	if got.Barcode != "0789993992126" {
		t.Errorf("Barcode = %q", got.Barcode)
	}
	if got.AddedFrom != AddedFromBarcode {
		t.Errorf("AddedFrom = %q", got.AddedFrom)
	}
	if got.Musicians == nil || len(got.Musicians) != 0 {
		t.Errorf("Musicians = %#v, want empty map", got.Musicians)
	}
	if got.Current.Country != "US" || len(got.Current.Identifiers) != 2 {
		t.Errorf("current snapshot = %+v", got.Current)
	}
}
