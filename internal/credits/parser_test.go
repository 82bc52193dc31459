package credits

import (
	"reflect"
	"testing"
)

func TestParseCredit(t *testing.T) {
	tests := []struct {
		input string
		name  string
		roles []string
	}{
		{"Makaya McCraven (Drums, Producer, Mixed By)", "Makaya McCraven", []string{"Drums", "Producer", "Mixed By"}},
		{"Joel Ross (3) (Performer, Vibraphone)", "Joel Ross (3)", []string{"Performer", "Vibraphone"}},
		{"Brandee Younger (Harp)", "Brandee Younger", []string{"Harp"}},
		{"Joel Ross (3)", "Joel Ross (3)", nil},
		{"Plain Name", "Plain Name", nil},
		{"  Padded Name (Bass)  ", "Padded Name", []string{"Bass"}},
		{"", "", nil},
		{"Name (Mixed By [Tracks: 3,7])", "Name", []string{"Mixed By [Tracks: 3", "7]"}},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			name, roles := ParseCredit(tc.input)
			if name != tc.name {
				t.Errorf("name = %q, want %q", name, tc.name)
			}
			if !reflect.DeepEqual(roles, tc.roles) {
				t.Errorf("roles = %#v, want %#v", roles, tc.roles)
			}
		})
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	cases := []struct {
		name  string
		roles []string
	}{
		{"Makaya McCraven", []string{"Drums", "Producer"}},
		{"Jeff Parker", []string{"Guitar"}},
		{"Joel Ross (3)", []string{"Vibraphone"}},
	}
	for _, tc := range cases {
		formatted := FormatCredit(tc.name, tc.roles)
		name, roles := ParseCredit(formatted)
		if name != tc.name {
			t.Errorf("round trip name = %q, want %q", name, tc.name)
		}
		if !reflect.DeepEqual(roles, tc.roles) {
			t.Errorf("round trip roles = %#v, want %#v", roles, tc.roles)
		}
	}
}

func TestCleanDisplayName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Joel Ross (3)", "Joel Ross"},
		{"Joel Ross", "Joel Ross"},
		{"Madlib (2) ", "Madlib"},
		{"Quartet (West)", "Quartet (West)"},
	}
	for _, tc := range tests {
		if got := CleanDisplayName(tc.input); got != tc.want {
			t.Errorf("CleanDisplayName(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestFormatCreditNoRoles(t *testing.T) {
	if got := FormatCredit("Solo Artist", nil); got != "Solo Artist" {
		t.Errorf("FormatCredit = %q", got)
	}
}
