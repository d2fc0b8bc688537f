// Package queryir defines the data model shared by every search-query
// conversion: the closed enumerations (operators, filter keys, root keys,
// data types), the AST produced by the grammar parser, the flattened filter
// map, the query JSON object and the advanced-filter form.
//
// SEALED OPERANDS:
//
// AST operands are a sealed interface using the marker method pattern. Only
// Key, Value, List and *Node implement Operand, so conversions can switch
// exhaustively:
//
//	switch right := node.Right.(type) {
//	case Value:
//	    // single comparison
//	case List:
//	    // one comparison per element
//	case *Node:
//	    // nested boolean expression
//	}
//
// TRAVERSAL:
//
// Queries come from user input, so nesting depth is not trusted. PostOrder
// and Rewrite walk the tree with an explicit stack instead of the call stack.
// Visitation order is part of the contract: left subtree, right subtree, then
// the node itself. Nodes without an operator are value leaves and are never
// traversed.
//
// ENUMERATIONS:
//
// Every enumeration has an ordered slice (FilterKeys, RootKeys, Operators,
// DataTypes) that fixes its serialization order. Serializers iterate these
// slices, never Go maps, so output is deterministic.
package queryir
