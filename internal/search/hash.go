package search

import (
	"slices"
	"strings"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/searchquery/internal/queryir"
)

// BuildSearchQueryHash fingerprints q.
//
// The canonical text is the root clauses followed by every filter key in
// lexicographic order, each key's entries sorted by case-folded value. The text is NFC
// normalized and lower-cased before hashing, so queries that differ only in
// clause order, value order or letter case share a hash. q is not modified.
func BuildSearchQueryHash(q *queryir.SearchQueryJSON) uint32 {
	if q == nil {
		return 0
	}
	return stringHash(foldCase(canonicalString(q)))
}

// foldCase is the text form the hash is computed over.
func foldCase(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}

// compareFolded orders entries numerically when both are numbers, otherwise
// by their case-folded text, so the order matches the hashed text.
func compareFolded(a, b queryir.QueryFilter) int {
	if a.Value.IsNumber() && b.Value.IsNumber() {
		return queryir.CompareValues(a.Value, b.Value)
	}
	return strings.Compare(foldCase(a.Value.String()), foldCase(b.Value.String()))
}

func canonicalString(q *queryir.SearchQueryJSON) string {
	var b strings.Builder
	if q.PolicyID != "" {
		b.WriteString(string(queryir.RootKeyPolicyID) + ":" + q.PolicyID + " ")
	}
	b.WriteString(string(queryir.RootKeyType) + ":" + string(q.Type))
	b.WriteString(" " + string(queryir.RootKeyStatus) + ":" + q.Status)
	b.WriteString(" " + string(queryir.RootKeySortBy) + ":" + q.SortBy)
	b.WriteString(" " + string(queryir.RootKeySortOrder) + ":" + q.SortOrder)

	flat := flatFiltersOf(q)
	for _, key := range flat.SortedKeys() {
		entries := slices.Clone(flat[key])
		slices.SortStableFunc(entries, compareFolded)
		b.WriteString(" " + BuildFilterValuesString(key, entries))
	}
	return b.String()
}

// stringHash is the 31-multiplier polynomial hash over UTF-16 code units in
// signed 32-bit arithmetic. The absolute value is taken in 64 bits so that
// the minimum int32 maps to 2^31.
func stringHash(s string) uint32 {
	var h int32
	for _, unit := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(unit)
	}
	abs := int64(h)
	if abs < 0 {
		abs = -abs
	}
	return uint32(abs % (1 << 32))
}
