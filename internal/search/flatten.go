package search

import "github.com/roach88/searchquery/internal/queryir"

// GetFilters flattens an AST into one QueryFilter per compared value.
//
// Nodes are visited left subtree, right subtree, then the node, so entries
// for a key appear in the order they occur in the query. Logical nodes and
// nodes whose key is not a filter key contribute nothing. A nil root yields
// an empty map.
func GetFilters(root *queryir.Node) queryir.QueryFilters {
	filters := queryir.QueryFilters{}
	queryir.PostOrder(root, func(n *queryir.Node) {
		key, ok := n.FilterKey()
		if !ok {
			return
		}
		for _, v := range n.Values() {
			filters[key] = append(filters[key], queryir.QueryFilter{Operator: n.Operator, Value: v})
		}
	})
	return filters
}

// flatFiltersOf returns q's flat filters, deriving them from the AST when
// they have not been computed.
func flatFiltersOf(q *queryir.SearchQueryJSON) queryir.QueryFilters {
	if q.FlatFilters != nil {
		return q.FlatFilters
	}
	return GetFilters(q.Filters)
}
