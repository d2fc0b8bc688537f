package parser

import (
	"regexp"

	"github.com/roach88/searchquery/internal/queryir"
)

// amountPattern matches the bare amount literals that become numeric values.
var amountPattern = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)

// Parser is the default query-string parser. The zero value is ready to use.
type Parser struct{}

// Parse implements the search package's Parser interface.
func (Parser) Parse(query string) (*queryir.SearchQueryJSON, error) {
	return Parse(query)
}

// Parse converts a query string into a SearchQueryJSON carrying the root
// fields and the Filters tree. FlatFilters, InputQuery and Hash are left for
// the caller to derive. Absent root fields take their defaults.
func Parse(query string) (*queryir.SearchQueryJSON, error) {
	out := queryir.DefaultSearchQueryJSON()
	s := &scanner{src: query}

	var keywords, filters []*queryir.Node
	for {
		s.skipSpace()
		if s.eof() {
			break
		}
		start := s.pos

		name, tok, ok := s.key(isClauseKey)
		if !ok {
			words, err := s.words()
			if err != nil {
				return nil, err
			}
			for _, w := range words {
				keywords = append(keywords, queryir.NewFilter(queryir.OperatorEqualTo, queryir.FilterKeyKeyword, queryir.StringValue(w.text)))
			}
			continue
		}

		op, err := queryir.ParseOperatorToken(tok)
		if err != nil {
			return nil, errorf(start, "%v", err)
		}
		items, err := s.values()
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			return nil, errorf(s.pos, "missing value for %s", name)
		}

		if root, ok := queryir.ParseRootKey(name); ok {
			if op != queryir.OperatorEqualTo {
				return nil, errorf(start, "%s only supports %q", name, ":")
			}
			if len(items) > 1 {
				return nil, errorf(items[1].pos, "%s takes a single value", name)
			}
			out.SetRootValue(root, items[0].text)
			continue
		}

		key, _ := queryir.ParseFilterKey(name)
		node := queryir.NewFilter(op, key, rightOperand(key, items))
		if key == queryir.FilterKeyKeyword {
			keywords = append(keywords, node)
		} else {
			filters = append(filters, node)
		}
	}

	kw := chain(queryir.OperatorOr, keywords)
	rest := chain(queryir.OperatorAnd, filters)
	switch {
	case kw != nil && rest != nil:
		out.Filters = queryir.NewLogical(queryir.OperatorAnd, kw, rest)
	case kw != nil:
		out.Filters = kw
	default:
		out.Filters = rest
	}
	return out, nil
}

func isClauseKey(name string) bool {
	if _, ok := queryir.ParseRootKey(name); ok {
		return true
	}
	_, ok := queryir.ParseFilterKey(name)
	return ok
}

// rightOperand returns a scalar for one item and a list otherwise.
func rightOperand(key queryir.FilterKey, items []item) queryir.Operand {
	values := make(queryir.List, len(items))
	for i, it := range items {
		values[i] = literal(key, it)
	}
	if len(values) == 1 {
		return values[0]
	}
	return values
}

// literal turns an item into a Value. Unquoted amounts are numbers.
func literal(key queryir.FilterKey, it item) queryir.Value {
	if key == queryir.FilterKeyAmount && !it.quoted && amountPattern.MatchString(it.text) {
		if n, ok := queryir.NumberLiteral(it.text); ok {
			return n
		}
	}
	return queryir.StringValue(it.text)
}

// chain joins nodes left-deep with op: ((n0 op n1) op n2) ...
func chain(op queryir.Operator, nodes []*queryir.Node) *queryir.Node {
	if len(nodes) == 0 {
		return nil
	}
	acc := nodes[0]
	for _, n := range nodes[1:] {
		acc = queryir.NewLogical(op, acc, n)
	}
	return acc
}
