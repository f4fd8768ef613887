// Package query answers filter selections against a prepared table.
//
// Every function here is pure: it reads the immutable table (or a view derived
// from it) and returns fresh values. Re-running a query on every selection
// change is the intended usage; there is no cache and no incremental state.
//
// Empty inputs never produce errors. They produce empty views, zero counts and
// absent (null) means, so callers can tell "no data" apart from a true zero.
package query
