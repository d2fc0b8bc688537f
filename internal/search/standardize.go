package search

import (
	"github.com/roach88/searchquery/internal/directory"
	"github.com/roach88/searchquery/internal/queryir"
)

// StandardizeQueryJSON returns a copy of q whose from, to, taxRate and cardID
// values are rewritten from display values to identifiers:
//
//   - from, to: login -> account ID, case-insensitively
//   - taxRate:  tax-rate name -> every ID carrying that name
//   - cardID:   bank name -> card ID
//
// Values the directories do not know are kept. FlatFilters is recomputed
// from the rewritten tree; Hash and every other field are copied unchanged.
// q is not modified.
func StandardizeQueryJSON(q *queryir.SearchQueryJSON, dirs directory.Directories) *queryir.SearchQueryJSON {
	if q == nil {
		return nil
	}

	out := *q
	out.Filters = queryir.Rewrite(q.Filters, func(key queryir.Key, right queryir.Operand) queryir.Operand {
		resolve := identifierResolver(queryir.FilterKey(key), dirs)
		if resolve == nil {
			return right
		}
		switch r := right.(type) {
		case queryir.Value:
			ids := resolve(r)
			if len(ids) == 1 {
				return ids[0]
			}
			return ids
		case queryir.List:
			var ids queryir.List
			for _, v := range r {
				ids = append(ids, resolve(v)...)
			}
			return ids
		default:
			return right
		}
	})
	out.FlatFilters = GetFilters(out.Filters)
	return &out
}

// identifierResolver returns the display-to-identifier mapping for key, or
// nil when key holds no display values.
func identifierResolver(key queryir.FilterKey, dirs directory.Directories) func(queryir.Value) queryir.List {
	switch key {
	case queryir.FilterKeyFrom, queryir.FilterKeyTo:
		return func(v queryir.Value) queryir.List {
			if pd, ok := dirs.LookupLogin(v.String()); ok {
				return queryir.List{queryir.StringValue(pd.AccountID)}
			}
			return queryir.List{v}
		}
	case queryir.FilterKeyTaxRate:
		return func(v queryir.Value) queryir.List {
			if ids, ok := dirs.LookupTaxRateIDs(v.String()); ok && len(ids) > 0 {
				return queryir.StringList(ids...)
			}
			return queryir.List{v}
		}
	case queryir.FilterKeyCardID:
		return func(v queryir.Value) queryir.List {
			if card, ok := dirs.LookupCardByBank(v.String()); ok {
				return queryir.List{queryir.StringValue(card.CardID)}
			}
			return queryir.List{v}
		}
	default:
		return nil
	}
}
