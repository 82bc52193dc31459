package backfill

import (
	"fmt"
	"sort"
	"strings"

	"waxcrate/internal/credits"
)

// compareStrings summarizes the difference between an old and new
// scalar field value for the comparison report.
func compareStrings(oldVal, newVal string) string {
	switch {
	case oldVal == newVal:
		return "unchanged"
	case oldVal == "":
		return "NEW: " + newVal
	case newVal == "":
		return "REMOVED: " + oldVal
	default:
		return fmt.Sprintf("CHANGED: %s -> %s", oldVal, newVal)
	}
}

// compareInts summarizes an integer field where zero means unset.
func compareInts(oldVal, newVal int) string {
	switch {
	case oldVal == newVal:
		return "unchanged"
	case oldVal == 0:
		return fmt.Sprintf("NEW: %d", newVal)
	case newVal == 0:
		return fmt.Sprintf("REMOVED: %d", oldVal)
	default:
		return fmt.Sprintf("CHANGED: %d -> %d", oldVal, newVal)
	}
}

// compareLists treats lists as sets: reordering is not a change.
func compareLists(oldVal, newVal []string) string {
	switch {
	case len(oldVal) == 0 && len(newVal) == 0:
		return "unchanged"
	case len(oldVal) == 0:
		return "NEW: " + strings.Join(newVal, "; ")
	case len(newVal) == 0:
		return fmt.Sprintf("REMOVED: %s", strings.Join(oldVal, "; "))
	case sameItems(oldVal, newVal):
		return "unchanged (same items)"
	default:
		return fmt.Sprintf("CHANGED: %d -> %d items", len(oldVal), len(newVal))
	}
}

// compareCredits reports credit drift between the stored musicians
// column and a fresh fetch. The column itself is never rewritten by a
// backfill, so the summary always notes the preservation; only the
// relational tables are rebuilt from the fresh credits.
func compareCredits(oldVal, newVal credits.Categorized) string {
	oldCount, newCount := oldVal.Count(), newVal.Count()
	if oldCount == newCount {
		return "unchanged (column preserved)"
	}
	return fmt.Sprintf("CHANGED: %d -> %d credits (column preserved)", oldCount, newCount)
}

func sameItems(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
