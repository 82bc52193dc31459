// Package release models the editions of a pressing returned by the
// metadata provider and reconciles their fields into one record. Up to
// three editions feed a lookup (the master, the original main release,
// and the pressing that was actually scanned) and each output field has
// a fixed priority order across them.
package release
