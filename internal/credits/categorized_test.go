package credits

import (
	"reflect"
	"testing"
)

func TestDecodeMusicians(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Categorized
	}{
		{
			name: "nested object",
			raw:  `{"Instruments": {"Percussion": ["Makaya McCraven (Drums)"]}}`,
			want: Categorized{"Instruments": {"Percussion": {"Makaya McCraven (Drums)"}}},
		},
		{
			name: "legacy flat array",
			raw:  `["Jeff Parker (Guitar)", "Brandee Younger (Harp)"]`,
			want: Categorized{"Other": {"General": {"Brandee Younger (Harp)", "Jeff Parker (Guitar)"}}},
		},
		{
			name: "legacy array deduplicates",
			raw:  `["Jeff Parker (Guitar)", "Jeff Parker (Guitar)"]`,
			want: Categorized{"Other": {"General": {"Jeff Parker (Guitar)"}}},
		},
		{
			name: "null",
			raw:  `null`,
			want: Categorized{},
		},
		{
			name: "empty payload",
			raw:  ``,
			want: Categorized{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeMusicians([]byte(tc.raw))
			if err != nil {
				t.Fatalf("DecodeMusicians: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("got %#v, want %#v", got, tc.want)
			}
		})
	}
}

func TestDecodeMusiciansRejectsScalar(t *testing.T) {
	if _, err := DecodeMusicians([]byte(`42`)); err == nil {
		t.Error("expected error for scalar payload")
	}
	if _, err := DecodeMusicians([]byte(`not json`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestCategorizedCount(t *testing.T) {
	c := Categorized{}
	c.Add("Instruments", "Percussion", "A (Drums)")
	c.Add("Instruments", "Percussion", "A (Drums)")
	c.Add("Credits", "Production", "B (Producer)")
	if got := c.Count(); got != 2 {
		t.Errorf("Count = %d, want 2", got)
	}
}
