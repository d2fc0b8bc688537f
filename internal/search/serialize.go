package search

import (
	"strings"

	"github.com/roach88/searchquery/internal/queryir"
)

// rootDefaults holds the values serialized for empty root fields.
var rootDefaults = map[queryir.RootKey]string{
	queryir.RootKeyType:      string(queryir.DefaultType),
	queryir.RootKeyStatus:    queryir.DefaultStatus,
	queryir.RootKeySortBy:    queryir.DefaultSortBy,
	queryir.RootKeySortOrder: queryir.DefaultSortOrder,
}

// BuildFilterValuesString renders the entries of one filter key.
//
// An entry joins the previous clause when both are equality or both are
// inequality comparisons, separated by a comma. Any other entry opens a new
// key<op>value clause. Keyword entries are always written as bare values
// separated by spaces.
//
//	merchant [eq A, eq B, neq C] -> "merchant:A,B merchant!=C"
//	keyword  [eq lunch, eq "team offsite"] -> `lunch "team offsite"`
func BuildFilterValuesString(key queryir.FilterKey, filters []queryir.QueryFilter) string {
	delimiter := ","
	if key == queryir.FilterKeyKeyword {
		delimiter = " "
	}

	var b strings.Builder
	for i, f := range filters {
		value := SanitizeSearchValue(f.Value.String())
		if key == queryir.FilterKeyKeyword || (i > 0 && mergesWith(filters[i-1].Operator, f.Operator)) {
			b.WriteString(delimiter)
			b.WriteString(value)
			continue
		}
		b.WriteString(" ")
		b.WriteString(string(key))
		b.WriteString(f.Operator.Token())
		b.WriteString(value)
	}
	return strings.TrimSpace(b.String())
}

func mergesWith(prev, cur queryir.Operator) bool {
	return (prev == queryir.OperatorEqualTo && cur == queryir.OperatorEqualTo) ||
		(prev == queryir.OperatorNotEqualTo && cur == queryir.OperatorNotEqualTo)
}

// BuildSearchQueryString serializes q into its canonical query string: root
// clauses in root-key order, then one fragment per filter key in filter-key
// order. Empty root fields are written with their defaults; an empty
// policyID is omitted.
func BuildSearchQueryString(q *queryir.SearchQueryJSON) string {
	if q == nil {
		q = queryir.DefaultSearchQueryJSON()
	}

	parts := make([]string, 0, len(queryir.RootKeys)+len(queryir.FilterKeys))
	for _, key := range queryir.RootKeys {
		value := q.RootValue(key)
		if value == "" {
			value = rootDefaults[key]
		}
		if value == "" {
			continue
		}
		parts = append(parts, string(key)+":"+SanitizeSearchValue(value))
	}

	flat := flatFiltersOf(q)
	for _, key := range flat.Keys() {
		if fragment := BuildFilterValuesString(key, flat[key]); fragment != "" {
			parts = append(parts, fragment)
		}
	}
	return strings.Join(parts, " ")
}
