package testsupport

import (
	"context"
	"testing"

	"waxcrate/internal/config"
	"waxcrate/internal/credits"
	"waxcrate/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// MustSeedCategories loads the embedded category table into the store.
func MustSeedCategories(t testing.TB, st *store.Store) *credits.Table {
	t.Helper()

	table, err := credits.LoadTableFile("")
	if err != nil {
		t.Fatalf("credits.LoadTableFile: %v", err)
	}
	if _, err := st.SeedCategories(context.Background(), table); err != nil {
		t.Fatalf("store.SeedCategories: %v", err)
	}
	return table
}
