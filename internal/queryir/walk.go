package queryir

import "slices"

// PostOrder visits every operator-bearing node reachable from root: the left
// subtree first, then the right subtree, then the node itself.
//
// Traversal uses an explicit stack, so deeply nested input cannot exhaust
// the goroutine stack. List right operands are never descended into, and
// nodes without an operator are skipped along with anything below them.
func PostOrder(root *Node, visit func(*Node)) {
	if !traversable(root) {
		return
	}

	type frame struct {
		node     *Node
		expanded bool
	}
	stack := []frame{{node: root}}

	for len(stack) > 0 {
		top := len(stack) - 1
		f := stack[top]
		if f.expanded {
			stack = stack[:top]
			visit(f.node)
			continue
		}
		stack[top].expanded = true

		// Right is pushed first so the left subtree is popped first.
		if right, ok := f.node.Right.(*Node); ok && traversable(right) {
			stack = append(stack, frame{node: right})
		}
		if left, ok := f.node.Left.(*Node); ok && traversable(left) {
			stack = append(stack, frame{node: left})
		}
	}
}

func traversable(n *Node) bool {
	return n != nil && n.Operator != ""
}

// LeafRewriter computes the replacement right operand for a filter node whose
// left operand is key and whose right operand is a Value or List.
type LeafRewriter func(key Key, right Operand) Operand

// Rewrite returns a copy of root in which every filter leaf's right operand
// has been replaced by rewrite. root is not modified and the result shares
// no mutable state with it.
func Rewrite(root *Node, rewrite LeafRewriter) *Node {
	if root == nil {
		return nil
	}

	rebuilt := make(map[*Node]*Node)
	copyOperand := func(o Operand) Operand {
		switch val := o.(type) {
		case *Node:
			if val == nil {
				return nil
			}
			if n, ok := rebuilt[val]; ok {
				return n
			}
			// Value leaf: not traversed, copied as-is.
			cp := *val
			return &cp
		case List:
			return slices.Clone(val)
		default:
			return o
		}
	}

	PostOrder(root, func(n *Node) {
		out := &Node{
			Operator: n.Operator,
			Left:     copyOperand(n.Left),
			Right:    copyOperand(n.Right),
		}
		if key, ok := out.Left.(Key); ok && isLeafOperand(out.Right) {
			out.Right = rewrite(key, out.Right)
		}
		rebuilt[n] = out
	})

	if out, ok := rebuilt[root]; ok {
		return out
	}
	cp := *root
	return &cp
}

func isLeafOperand(o Operand) bool {
	switch o.(type) {
	case Value, List:
		return true
	default:
		return false
	}
}

// Clone returns a deep copy of root.
func Clone(root *Node) *Node {
	return Rewrite(root, func(_ Key, right Operand) Operand { return right })
}
