package queryir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filterNode(key FilterKey, value string) *Node {
	return NewFilter(OperatorEqualTo, key, StringValue(value))
}

func TestPostOrderVisitsLeftRightThenNode(t *testing.T) {
	a := filterNode(FilterKeyMerchant, "a")
	b := filterNode(FilterKeyCategory, "b")
	c := filterNode(FilterKeyTag, "c")
	inner := NewLogical(OperatorAnd, a, b)
	root := NewLogical(OperatorAnd, inner, c)

	var visited []*Node
	PostOrder(root, func(n *Node) { visited = append(visited, n) })

	assert.Equal(t, []*Node{a, b, inner, c, root}, visited)
}

func TestPostOrderSkipsOperatorlessNodes(t *testing.T) {
	leaf := &Node{}
	root := &Node{Operator: OperatorOr, Left: filterNode(FilterKeyKeyword, "x"), Right: leaf}

	count := 0
	PostOrder(root, func(n *Node) {
		assert.NotSame(t, leaf, n)
		count++
	})
	assert.Equal(t, 2, count)

	PostOrder(&Node{}, func(*Node) { t.Fatal("operatorless root must not be visited") })
	PostOrder(nil, func(*Node) { t.Fatal("nil root must not be visited") })
}

func TestPostOrderDeepNesting(t *testing.T) {
	const depth = 200000
	root := filterNode(FilterKeyKeyword, "k0")
	for i := 1; i < depth; i++ {
		root = NewLogical(OperatorOr, root, filterNode(FilterKeyKeyword, "k"))
	}

	count := 0
	PostOrder(root, func(*Node) { count++ })
	assert.Equal(t, 2*depth-1, count)
}

func TestRewriteDoesNotMutateInput(t *testing.T) {
	list := StringList("a@example.com", "b@example.com")
	from := NewFilter(OperatorEqualTo, FilterKeyFrom, list)
	merchant := filterNode(FilterKeyMerchant, "Acme")
	root := NewLogical(OperatorAnd, from, merchant)

	out := Rewrite(root, func(key Key, right Operand) Operand {
		if key != Key(FilterKeyFrom) {
			return right
		}
		return StringList("1", "2")
	})

	require.NotSame(t, root, out)
	assert.Equal(t, StringList("a@example.com", "b@example.com"), from.Right, "input untouched")
	assert.Equal(t, StringList("1", "2"), out.Left.(*Node).Right)
	assert.Equal(t, StringValue("Acme"), out.Right.(*Node).Right)
	assert.NotSame(t, merchant, out.Right.(*Node))
}

func TestCloneIsDeep(t *testing.T) {
	list := StringList("x", "y")
	root := NewLogical(OperatorAnd,
		NewFilter(OperatorEqualTo, FilterKeyCategory, list),
		filterNode(FilterKeyTag, "t"),
	)

	clone := Clone(root)
	require.Equal(t, root, clone)

	clone.Left.(*Node).Right.(List)[0] = StringValue("changed")
	assert.Equal(t, "x", list[0].String())

	assert.Nil(t, Clone(nil))
	leaf := &Node{}
	assert.NotSame(t, leaf, Clone(leaf))
}
