package credits

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed categories.json
var embeddedCategories []byte

// Reserved category for roles that match no table entry.
const (
	HeadingOther      = "Other"
	SubheadingGeneral = "General"

	// HeadingInstruments wins the tie-break when a composite role has
	// parts matching several headings.
	HeadingInstruments = "Instruments"
)

// Entry is one row of the static category lookup table.
type Entry struct {
	Role       string `json:"role"`
	Heading    string `json:"heading"`
	Subheading string `json:"subheading"`
}

// Category identifies a (heading, subheading) pair in the credit hierarchy.
type Category struct {
	Heading    string
	Subheading string
}

// Table maps lowercased role strings onto categories. It is built once at
// startup and read-only afterwards.
type Table struct {
	entries map[string]Category
	rows    []Entry
}

var bracketQualifier = regexp.MustCompile(`\s*\[.*?\]`)

// NewTable builds a lookup table from entries. Role keys are lowercased;
// heading and subheading casing is normalized so external tables with
// inconsistent casing still group together.
func NewTable(entries []Entry) (*Table, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("category table is empty")
	}
	titler := cases.Title(language.Und)
	index := make(map[string]Category, len(entries))
	rows := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		key := strings.ToLower(strings.TrimSpace(entry.Role))
		heading := strings.TrimSpace(entry.Heading)
		subheading := strings.TrimSpace(entry.Subheading)
		if key == "" || heading == "" || subheading == "" {
			return nil, fmt.Errorf("category table entry %q is incomplete", entry.Role)
		}
		if heading == strings.ToLower(heading) {
			heading = titler.String(heading)
		}
		if subheading == strings.ToLower(subheading) {
			subheading = titler.String(subheading)
		}
		cat := Category{Heading: heading, Subheading: subheading}
		index[key] = cat
		rows = append(rows, Entry{Role: key, Heading: heading, Subheading: subheading})
	}
	return &Table{entries: index, rows: rows}, nil
}

// LoadTable parses a JSON category table.
func LoadTable(data []byte) (*Table, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse category table: %w", err)
	}
	return NewTable(entries)
}

// LoadTableFile reads a category table from path, or the embedded table
// when path is empty.
func LoadTableFile(path string) (*Table, error) {
	if strings.TrimSpace(path) == "" {
		return LoadTable(embeddedCategories)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read category table: %w", err)
	}
	return LoadTable(data)
}

// Entries returns the normalized table rows, for seeding the persistence
// layer's category lookup.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.rows))
	copy(out, t.rows)
	return out
}

// Classify maps a free-text role onto its category.
//
// Bracketed qualifiers ("Mixed By [Tracks: 3,7]") are stripped before
// lookup and matching is case-insensitive. When the full string misses,
// comma-separated parts are looked up individually: a part under the
// Instruments heading wins over parts under any other heading, otherwise
// the first matching part wins. A complete miss returns false and the
// caller files the credit under Other/General.
func (t *Table) Classify(role string) (Category, bool) {
	cleaned := strings.TrimSpace(bracketQualifier.ReplaceAllString(role, ""))
	if cleaned == "" {
		return Category{}, false
	}

	if cat, ok := t.entries[strings.ToLower(cleaned)]; ok {
		return cat, true
	}

	var first *Category
	for _, part := range strings.Split(cleaned, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		cat, ok := t.entries[strings.ToLower(part)]
		if !ok {
			continue
		}
		if cat.Heading == HeadingInstruments {
			return cat, true
		}
		if first == nil {
			c := cat
			first = &c
		}
	}
	if first != nil {
		return *first, true
	}
	return Category{}, false
}
