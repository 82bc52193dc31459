package credits

// Credit is one raw extra-artist entry from the metadata provider. Role
// is free text and may contain comma-separated sub-roles and bracketed
// qualifiers.
type Credit struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// SourceSet carries the credit groups available for one lookup, split by
// edition and by level. The original (main) release is the preferred
// tier; the current pressing only contributes when the original tier is
// entirely empty.
type SourceSet struct {
	OriginalRelease []Credit
	OriginalTracks  [][]Credit
	CurrentRelease  []Credit
	CurrentTracks   [][]Credit
}

// Aggregate selects the highest-priority non-empty credit tier,
// classifies every credit in it, and builds the categorized structure.
//
// The tier fallback is all-or-nothing: a partially populated original
// tier is never supplemented with current-release credits. Within a
// bucket the formatted "Name (Role)" string is the dedup key, so the
// same person with distinct roles stays distinct while repeats across
// tracks collapse. Classification runs on the raw role string, commas
// included, so composite roles route through the table's per-part
// fallback. A record with no credits anywhere yields an empty structure.
func Aggregate(table *Table, sources SourceSet) Categorized {
	selected := flatten(sources.OriginalRelease, sources.OriginalTracks)
	if len(selected) == 0 {
		selected = flatten(sources.CurrentRelease, sources.CurrentTracks)
	}

	out := Categorized{}
	for _, credit := range selected {
		if credit.Name == "" {
			continue
		}
		formatted := credit.Name
		if credit.Role != "" {
			formatted = credit.Name + " (" + credit.Role + ")"
		}
		if cat, ok := table.Classify(credit.Role); ok {
			out.Add(cat.Heading, cat.Subheading, formatted)
			continue
		}
		out.Add(HeadingOther, SubheadingGeneral, formatted)
	}
	out.Sort()
	return out
}

func flatten(release []Credit, tracks [][]Credit) []Credit {
	merged := make([]Credit, 0, len(release))
	merged = append(merged, release...)
	for _, track := range tracks {
		merged = append(merged, track...)
	}
	return merged
}
