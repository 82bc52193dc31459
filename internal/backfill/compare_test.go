package backfill

import (
	"testing"

	"waxcrate/internal/credits"
)

func TestCompareStrings(t *testing.T) {
	tests := []struct {
		oldVal, newVal, want string
	}{
		{"US", "US", "unchanged"},
		{"", "US", "NEW: US"},
		{"US", "", "REMOVED: US"},
		{"US", "UK", "CHANGED: US -> UK"},
	}
	for _, tc := range tests {
		if got := compareStrings(tc.oldVal, tc.newVal); got != tc.want {
			t.Errorf("compareStrings(%q, %q) = %q, want %q", tc.oldVal, tc.newVal, got, tc.want)
		}
	}
}

func TestCompareInts(t *testing.T) {
	tests := []struct {
		oldVal, newVal int
		want           string
	}{
		{2022, 2022, "unchanged"},
		{0, 2018, "NEW: 2018"},
		{2018, 0, "REMOVED: 2018"},
		{2022, 2018, "CHANGED: 2022 -> 2018"},
	}
	for _, tc := range tests {
		if got := compareInts(tc.oldVal, tc.newVal); got != tc.want {
			t.Errorf("compareInts(%d, %d) = %q, want %q", tc.oldVal, tc.newVal, got, tc.want)
		}
	}
}

func TestCompareCredits(t *testing.T) {
	stored := credits.Categorized{"Other": {"General": {"Legacy Entry"}}}
	tests := []struct {
		name string
		old  credits.Categorized
		new  credits.Categorized
		want string
	}{
		{"both empty", nil, nil, "unchanged (column preserved)"},
		{"same count", stored, credits.Categorized{"Instruments": {"Strings": {"Jeff Parker (Guitar)"}}}, "unchanged (column preserved)"},
		{"drift", stored, credits.Categorized{
			"Instruments": {"Strings": {"Jeff Parker (Guitar)"}},
			"Credits":     {"Production": {"Jeff Parker (Mixed By)"}},
		}, "CHANGED: 1 -> 2 credits (column preserved)"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := compareCredits(tc.old, tc.new); got != tc.want {
				t.Errorf("compareCredits = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCompareLists(t *testing.T) {
	tests := []struct {
		name           string
		oldVal, newVal []string
		want           string
	}{
		{"both empty", nil, nil, "unchanged"},
		{"new values", nil, []string{"Jazz"}, "NEW: Jazz"},
		{"removed", []string{"Jazz"}, nil, "REMOVED: Jazz"},
		{"reordered is unchanged", []string{"Jazz", "Funk"}, []string{"Funk", "Jazz"}, "unchanged (same items)"},
		{"different items", []string{"Jazz"}, []string{"Jazz", "Funk"}, "CHANGED: 1 -> 2 items"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := compareLists(tc.oldVal, tc.newVal); got != tc.want {
				t.Errorf("compareLists = %q, want %q", got, tc.want)
			}
		})
	}
}
