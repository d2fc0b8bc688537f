package search

import (
	"strings"

	"github.com/roach88/searchquery/internal/directory"
	"github.com/roach88/searchquery/internal/queryir"
)

// BuildUserReadableQueryString renders q for display: type and status, then
// each filter key's fragment with identifiers replaced by readable names.
//
//   - from, to: account ID -> login
//   - cardID:   card ID -> bank
//   - in:       report ID -> report name
//   - taxRate:  tax-rate ID -> every name carrying it, one entry per name
//
// Identifiers the directories do not know are shown as-is.
func BuildUserReadableQueryString(q *queryir.SearchQueryJSON, dirs directory.Directories) string {
	if q == nil {
		return ""
	}

	parts := []string{
		string(queryir.RootKeyType) + ":" + string(q.Type),
		string(queryir.RootKeyStatus) + ":" + q.Status,
	}

	flat := flatFiltersOf(q)
	for _, key := range flat.Keys() {
		entries := displayEntries(key, flat[key], dirs)
		if fragment := BuildFilterValuesString(key, entries); fragment != "" {
			parts = append(parts, fragment)
		}
	}
	return strings.Join(parts, " ")
}

func displayEntries(key queryir.FilterKey, entries []queryir.QueryFilter, dirs directory.Directories) []queryir.QueryFilter {
	out := make([]queryir.QueryFilter, 0, len(entries))
	for _, e := range entries {
		id := e.Value.String()
		switch key {
		case queryir.FilterKeyFrom, queryir.FilterKeyTo:
			if pd, ok := dirs.LookupPersonalDetails(id); ok && pd.Login != "" {
				e.Value = queryir.StringValue(pd.Login)
			}
		case queryir.FilterKeyCardID:
			if card, ok := dirs.LookupCard(id); ok && card.Bank != "" {
				e.Value = queryir.StringValue(card.Bank)
			}
		case queryir.FilterKeyIn:
			if report, ok := dirs.LookupReport(id); ok && report.Name != "" {
				e.Value = queryir.StringValue(report.Name)
			}
		case queryir.FilterKeyTaxRate:
			names := dirs.LookupTaxRateNames(id)
			if len(names) > 0 {
				for _, name := range names {
					out = append(out, queryir.QueryFilter{Operator: e.Operator, Value: queryir.StringValue(name)})
				}
				continue
			}
		}
		out = append(out, e)
	}
	return out
}
