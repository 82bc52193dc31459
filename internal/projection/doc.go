// Package projection flattens a categorized credit structure into the
// relational contribution tables: formatted credit strings are parsed
// back into names and roles, roles are split from instruments, and each
// (record, contributor, category) triple becomes one contribution row.
package projection
