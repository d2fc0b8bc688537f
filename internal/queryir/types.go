package queryir

import (
	"cmp"
	"encoding/json"
	"slices"
	"strconv"
)

// Operand is one side of an AST node.
//
// This is a sealed interface - only Key, Value, List and *Node implement it.
// Left operands are a Key or a *Node. Right operands are a Value, a List or
// a *Node.
type Operand interface {
	operand() // Marker method - seals interface to this package
}

// Key is a left operand naming the attribute being compared.
// It is usually a FilterKey, but the parser may produce other names.
type Key string

func (Key) operand() {}

// Value is a scalar right operand: a string, or a number.
//
// Numbers keep their decimal text so that String never depends on float
// formatting at the call site. A number built from a literal keeps the
// literal unchanged, trailing zeros included.
type Value struct {
	text   string
	number bool
}

func (Value) operand() {}

// StringValue creates a string Value.
func StringValue(s string) Value {
	return Value{text: s}
}

// NumberValue creates a numeric Value.
func NumberValue(f float64) Value {
	return Value{text: strconv.FormatFloat(f, 'f', -1, 64), number: true}
}

// NumberLiteral creates a numeric Value that keeps text verbatim. ok is false
// when text is not a JSON number that parses as a float64.
func NumberLiteral(text string) (v Value, ok bool) {
	if !json.Valid([]byte(text)) || (text[0] != '-' && (text[0] < '0' || text[0] > '9')) {
		return Value{}, false
	}
	if _, err := strconv.ParseFloat(text, 64); err != nil {
		return Value{}, false
	}
	return Value{text: text, number: true}, true
}

// String returns the value as it appears in a query string, before sanitizing.
func (v Value) String() string {
	return v.text
}

// IsNumber reports whether v was created as a number.
func (v Value) IsNumber() bool {
	return v.number
}

// Float returns the numeric value of v. ok is false for string values.
func (v Value) Float() (f float64, ok bool) {
	if !v.number {
		return 0, false
	}
	f, err := strconv.ParseFloat(v.text, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// CompareValues orders two values: numerically when both are numbers,
// otherwise by their string form.
func CompareValues(a, b Value) int {
	if af, ok := a.Float(); ok {
		if bf, ok := b.Float(); ok {
			return cmp.Compare(af, bf)
		}
	}
	return cmp.Compare(a.text, b.text)
}

// List is a right operand holding several values, e.g. category:a,b,c.
type List []Value

func (List) operand() {}

// StringList builds a List of string values.
func StringList(values ...string) List {
	l := make(List, len(values))
	for i, s := range values {
		l[i] = StringValue(s)
	}
	return l
}

// Node is a binary expression in the query AST.
//
// A filter node compares a Key with a Value or List, e.g.
//
//	Node{Operator: OperatorEqualTo, Left: Key("merchant"), Right: StringValue("Acme")}
//
// A structural node joins two sub-expressions with OperatorAnd or OperatorOr.
// A node without an operator is a value leaf: it has no children and is
// never traversed.
type Node struct {
	Operator Operator
	Left     Operand
	Right    Operand
}

func (*Node) operand() {}

// NewFilter creates a filter node comparing key with a value or list.
func NewFilter(op Operator, key FilterKey, right Operand) *Node {
	return &Node{Operator: op, Left: Key(key), Right: right}
}

// NewLogical joins two sub-expressions.
func NewLogical(op Operator, left, right *Node) *Node {
	return &Node{Operator: op, Left: left, Right: right}
}

// FilterKey returns the node's left operand as a recognized filter key.
func (n *Node) FilterKey() (FilterKey, bool) {
	if n == nil {
		return "", false
	}
	key, ok := n.Left.(Key)
	if !ok {
		return "", false
	}
	return ParseFilterKey(string(key))
}

// Values returns the scalar right operands of a filter node in order.
// Nested nodes and missing operands yield nil.
func (n *Node) Values() []Value {
	if n == nil {
		return nil
	}
	switch right := n.Right.(type) {
	case Value:
		return []Value{right}
	case List:
		return slices.Clone(right)
	default:
		return nil
	}
}

// QueryFilter is one atomic comparison.
type QueryFilter struct {
	Operator Operator `json:"operator"`
	Value    Value    `json:"value"`
}

// QueryFilters maps each filter key to its comparisons.
// Order within a key follows AST encounter order; it carries no meaning
// except for the serializer's merge rule.
type QueryFilters map[FilterKey][]QueryFilter

// Keys returns the keys present in f in serialization order.
func (f QueryFilters) Keys() []FilterKey {
	keys := make([]FilterKey, 0, len(f))
	for _, k := range FilterKeys {
		if _, ok := f[k]; ok {
			keys = append(keys, k)
		}
	}
	return keys
}

// SortedKeys returns the keys present in f in lexicographic order.
// Unlike Keys, this also includes keys outside the FilterKeys enumeration.
func (f QueryFilters) SortedKeys() []FilterKey {
	keys := make([]FilterKey, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Clone returns a copy of f that shares no slices with it.
func (f QueryFilters) Clone() QueryFilters {
	if f == nil {
		return nil
	}
	out := make(QueryFilters, len(f))
	for k, v := range f {
		out[k] = slices.Clone(v)
	}
	return out
}

// SearchQueryJSON is the structured form of a query string.
//
// Type, Status, SortBy, SortOrder and PolicyID come from the root clauses.
// Filters is the parsed AST; nil means the query is a canned query.
// FlatFilters, InputQuery and Hash are derived by the search package.
type SearchQueryJSON struct {
	Type        DataType     `json:"type"`
	Status      string       `json:"status"`
	SortBy      string       `json:"sortBy"`
	SortOrder   string       `json:"sortOrder"`
	PolicyID    string       `json:"policyID,omitempty"`
	Filters     *Node        `json:"filters,omitempty"`
	FlatFilters QueryFilters `json:"flatFilters"`
	InputQuery  string       `json:"inputQuery"`
	Hash        uint32       `json:"hash"`
}

// RootValue returns the value of a root field.
func (q *SearchQueryJSON) RootValue(key RootKey) string {
	switch key {
	case RootKeyPolicyID:
		return q.PolicyID
	case RootKeyType:
		return string(q.Type)
	case RootKeyStatus:
		return q.Status
	case RootKeySortBy:
		return q.SortBy
	case RootKeySortOrder:
		return q.SortOrder
	default:
		return ""
	}
}

// SetRootValue assigns a root field.
func (q *SearchQueryJSON) SetRootValue(key RootKey, value string) {
	switch key {
	case RootKeyPolicyID:
		q.PolicyID = value
	case RootKeyType:
		q.Type = DataType(value)
	case RootKeyStatus:
		q.Status = value
	case RootKeySortBy:
		q.SortBy = value
	case RootKeySortOrder:
		q.SortOrder = value
	}
}

// DefaultSearchQueryJSON returns the root fields of an empty query.
func DefaultSearchQueryJSON() *SearchQueryJSON {
	return &SearchQueryJSON{
		Type:        DefaultType,
		Status:      DefaultStatus,
		SortBy:      DefaultSortBy,
		SortOrder:   DefaultSortOrder,
		FlatFilters: QueryFilters{},
	}
}
