// Package savedsearch persists named search queries in SQLite, keyed by
// their hash.
//
// The registry stores the canonical query string of each saved search, never
// search results. Two queries that hash the same are the same saved search:
// saving an equivalent query again returns the existing entry.
//
// Entries list in creation order. The order is tracked by a sequence column
// rather than timestamps so that listings are reproducible.
package savedsearch
