// Package store persists the record collection in SQLite: the vinyl
// records themselves plus the relational credit tables (contributors,
// contribution categories and contributions). JSON-shaped fields such
// as the categorized musicians structure are stored as text columns.
package store
