// Package lookup drives the full identification pipeline for one
// pressing: fetch the scanned release, walk the master chain to find
// the original main release, aggregate and categorize the credits, and
// reconcile the edition fields into a formatted record.
package lookup
