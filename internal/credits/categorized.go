package credits

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Categorized is the nested credit structure: heading to subheading to a
// sorted, deduplicated list of formatted "Name (Role)" strings. Buckets
// are never empty; unmatched roles live under Other/General.
type Categorized map[string]map[string][]string

// Add inserts a formatted credit into a bucket, ignoring duplicates.
// Entries stay sorted via Sort before the structure is handed out.
func (c Categorized) Add(heading, subheading, formatted string) {
	if formatted == "" {
		return
	}
	bucket, ok := c[heading]
	if !ok {
		bucket = make(map[string][]string)
		c[heading] = bucket
	}
	for _, existing := range bucket[subheading] {
		if existing == formatted {
			return
		}
	}
	bucket[subheading] = append(bucket[subheading], formatted)
}

// Sort orders every bucket for deterministic output.
func (c Categorized) Sort() {
	for _, bucket := range c {
		for _, entries := range bucket {
			sort.Strings(entries)
		}
	}
}

// Count returns the total number of formatted entries.
func (c Categorized) Count() int {
	total := 0
	for _, bucket := range c {
		for _, entries := range bucket {
			total += len(entries)
		}
	}
	return total
}

// DecodeMusicians normalizes a stored musicians field into Categorized.
//
// Older records persisted a flat JSON array of formatted strings; newer
// records persist the nested object. The flat form is folded into
// Other/General so downstream code only ever sees the canonical shape.
// Null and empty payloads decode to an empty structure.
func DecodeMusicians(raw []byte) (Categorized, error) {
	if len(raw) == 0 {
		return Categorized{}, nil
	}

	var shape any
	if err := json.Unmarshal(raw, &shape); err != nil {
		return nil, fmt.Errorf("decode musicians: %w", err)
	}

	switch shape.(type) {
	case nil:
		return Categorized{}, nil
	case []any:
		var legacy []string
		if err := json.Unmarshal(raw, &legacy); err != nil {
			return nil, fmt.Errorf("decode legacy musicians: %w", err)
		}
		out := Categorized{}
		for _, entry := range legacy {
			out.Add(HeadingOther, SubheadingGeneral, entry)
		}
		out.Sort()
		return out, nil
	case map[string]any:
		var nested Categorized
		if err := json.Unmarshal(raw, &nested); err != nil {
			return nil, fmt.Errorf("decode categorized musicians: %w", err)
		}
		if nested == nil {
			nested = Categorized{}
		}
		nested.Sort()
		return nested, nil
	default:
		return nil, fmt.Errorf("decode musicians: unsupported shape %T", shape)
	}
}
