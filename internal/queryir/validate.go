package queryir

import "fmt"

// ValidationResult lists shape problems found in an AST.
type ValidationResult struct {
	// Valid is true when Problems is empty.
	Valid bool

	// Problems describes each violation with the path of the offending node,
	// e.g. "root.left.right: filter node has no value".
	Problems []string
}

// Validate checks that an AST has the shape the conversions rely on:
//  1. Operators are known.
//  2. A node without an operator has no children.
//  3. A logical node joins two nodes.
//  4. A comparison node has a Key on the left and a Value or non-empty List
//     on the right.
//
// A nil root is valid (a canned query). Validate is a pure function.
func Validate(root *Node) ValidationResult {
	v := &validator{}
	v.walk(root)
	return ValidationResult{
		Valid:    len(v.problems) == 0,
		Problems: v.problems,
	}
}

// validator accumulates problems during traversal.
type validator struct {
	problems []string
}

func (v *validator) addProblem(path, format string, args ...any) {
	v.problems = append(v.problems, path+": "+fmt.Sprintf(format, args...))
}

func (v *validator) walk(root *Node) {
	if root == nil {
		return
	}

	type item struct {
		node *Node
		path string
	}
	stack := []item{{node: root, path: "root"}}

	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := it.node

		if n.Operator == "" {
			if n.Left != nil || n.Right != nil {
				v.addProblem(it.path, "value leaf must not have children")
			}
			continue
		}
		if !n.Operator.Valid() {
			v.addProblem(it.path, "unknown operator %q", n.Operator)
			continue
		}

		if n.Operator.IsLogical() {
			left, lok := n.Left.(*Node)
			right, rok := n.Right.(*Node)
			if !lok || left == nil || !rok || right == nil {
				v.addProblem(it.path, "%s node must join two nodes", n.Operator)
				continue
			}
			stack = append(stack, item{node: right, path: it.path + ".right"}, item{node: left, path: it.path + ".left"})
			continue
		}

		if _, ok := n.Left.(Key); !ok {
			v.addProblem(it.path, "%s node must have a key on the left, got %T", n.Operator, n.Left)
		}
		switch right := n.Right.(type) {
		case Value:
		case List:
			if len(right) == 0 {
				v.addProblem(it.path, "filter node has an empty value list")
			}
		case nil:
			v.addProblem(it.path, "filter node has no value")
		default:
			v.addProblem(it.path, "filter node value must be a scalar or list, got %T", n.Right)
		}
	}
}
