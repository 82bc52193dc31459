// Package backfill refreshes stored records against the metadata
// provider. A dry run fetches fresh data and writes comparison CSVs
// without touching the database; a live run updates the reconciled
// columns and re-projects the relational credit tables while preserving
// every user-owned field. A lock file keeps runs exclusive.
package backfill
