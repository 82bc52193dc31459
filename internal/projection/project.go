package projection

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"waxcrate/internal/credits"
	"waxcrate/internal/store"
)

// Result summarizes one projection run.
type Result struct {
	ContributorsCreated  int
	ContributionsWritten int
	SkippedCategories    []string
}

type pending struct {
	name        string
	categoryID  int64
	roles       []string
	instruments []string
}

// Project writes a record's categorized credits into the relational
// tables. Formatted strings are re-parsed into (name, roles), the roles
// split into named roles and instruments, and the category resolved
// against the database lookup. Buckets whose category is missing from
// the lookup are logged and skipped rather than failing the record.
//
// Contributions keyed by the same (record, contributor, category)
// triple are merged before writing, and the underlying upserts make a
// repeat run over the same credits a no-op.
func Project(ctx context.Context, st *store.Store, categorized credits.Categorized, recordID, userID string, logger *slog.Logger) (Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	result := Result{}
	if len(categorized) == 0 {
		return result, nil
	}

	lookup, err := st.CategoryMap(ctx)
	if err != nil {
		return result, fmt.Errorf("load category map: %w", err)
	}

	merged := make(map[string]*pending)
	var order []string
	for _, heading := range sortedKeys(categorized) {
		bucket := categorized[heading]
		for _, subheading := range sortedKeys(bucket) {
			categoryID, ok := lookup[store.CategoryKey{Main: heading, Sub: subheading}]
			if !ok {
				label := heading + "/" + subheading
				logger.Warn("unknown contribution category, skipping bucket",
					"category", label, "record_id", recordID)
				result.SkippedCategories = append(result.SkippedCategories, label)
				continue
			}
			for _, formatted := range bucket[subheading] {
				name, roles := credits.ParseCredit(formatted)
				if name == "" {
					continue
				}
				pure, instruments := SplitRoles(roles)

				key := fmt.Sprintf("%s\x00%d", name, categoryID)
				entry, ok := merged[key]
				if !ok {
					entry = &pending{name: name, categoryID: categoryID}
					merged[key] = entry
					order = append(order, key)
				}
				entry.roles = appendUnique(entry.roles, pure)
				entry.instruments = appendUnique(entry.instruments, instruments)
			}
		}
	}

	for _, key := range order {
		entry := merged[key]
		contributor, created, err := st.UpsertContributorByName(ctx, entry.name)
		if err != nil {
			return result, fmt.Errorf("upsert contributor %q: %w", entry.name, err)
		}
		if created {
			result.ContributorsCreated++
		}
		err = st.UpsertContribution(ctx, &store.Contribution{
			RecordID:      recordID,
			UserID:        userID,
			ContributorID: contributor.ID,
			CategoryID:    entry.categoryID,
			Roles:         entry.roles,
			Instruments:   entry.instruments,
		})
		if err != nil {
			return result, fmt.Errorf("upsert contribution for %q: %w", entry.name, err)
		}
		result.ContributionsWritten++
	}
	return result, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func appendUnique(existing []string, add []string) []string {
	for _, candidate := range add {
		found := false
		for _, have := range existing {
			if have == candidate {
				found = true
				break
			}
		}
		if !found {
			existing = append(existing, candidate)
		}
	}
	return existing
}
