// Package search converts search queries between their representations:
// the typed query string, the parsed SearchQueryJSON, the flattened filter
// map and the advanced-filter form.
//
// Serialization is canonical. Root clauses come first in a fixed order,
// filter fragments follow in filter-key order, and every value passes
// through SanitizeSearchValue. BuildSearchQueryHash fingerprints a query so
// that reordered but equivalent queries hash the same.
//
// Every function is synchronous and returns new values. Inputs, including
// directory snapshots, are never modified.
package search
