// Package directory defines the read-only lookup directories that query
// conversions consult: personal details, cards, reports, tax rates,
// currencies and policy categories/tags.
//
// Each directory is a small interface with an explicit (value, ok) not-found
// result. Conversions never cache or mutate a directory; callers pass one
// consistent snapshot for a whole conversion.
//
// Snapshot is the map-backed implementation. It can be built in code or
// loaded from a YAML or CUE file with Load.
package directory
