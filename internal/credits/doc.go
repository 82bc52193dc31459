// Package credits turns raw Discogs "extra artist" entries into a clean,
// hierarchically categorized contributor structure.
//
// The pipeline has three pure stages: ParseCredit splits "Name (Role1,
// Role2)" strings while preserving Discogs disambiguation suffixes like
// "(3)"; Table.Classify maps a free-text role onto a (heading,
// subheading) category using a static lookup table; Aggregate collects
// credits from the available release editions with an all-or-nothing
// source-priority fallback, deduplicates them, and builds the nested
// Categorized structure. Roles that match no table entry land under
// Other/General rather than being dropped.
package credits
