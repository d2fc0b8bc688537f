package queryir

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalJSON encodes a Value as a JSON string or number.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.number {
		return []byte(v.text), nil
	}
	return marshalUnescaped(v.text)
}

// UnmarshalJSON decodes a JSON string or number into a Value.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty JSON value")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = StringValue(s)
		return nil
	}
	n, ok := NumberLiteral(string(data))
	if !ok {
		return fmt.Errorf("value must be a string or number: %s", data)
	}
	*v = n
	return nil
}

// nodeJSON is the wire shape of a Node.
type nodeJSON struct {
	Operator Operator        `json:"operator,omitempty"`
	Left     json.RawMessage `json:"left,omitempty"`
	Right    json.RawMessage `json:"right,omitempty"`
}

// MarshalJSON encodes a Node with left as a string or object and right as a
// string, number, array or object.
func (n *Node) MarshalJSON() ([]byte, error) {
	if n == nil {
		return []byte("null"), nil
	}
	left, err := marshalOperand(n.Left)
	if err != nil {
		return nil, fmt.Errorf("left: %w", err)
	}
	right, err := marshalOperand(n.Right)
	if err != nil {
		return nil, fmt.Errorf("right: %w", err)
	}
	return marshalUnescaped(nodeJSON{Operator: n.Operator, Left: left, Right: right})
}

// marshalUnescaped is json.Marshal without HTML escaping, so operators and
// values such as a&b or amount<5 keep their text.
func marshalUnescaped(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func marshalOperand(o Operand) (json.RawMessage, error) {
	switch val := o.(type) {
	case nil:
		return nil, nil
	case Key:
		return marshalUnescaped(string(val))
	case Value:
		return val.MarshalJSON()
	case List:
		return marshalUnescaped([]Value(val))
	case *Node:
		if val == nil {
			return nil, nil
		}
		return val.MarshalJSON()
	default:
		return nil, fmt.Errorf("unsupported operand type: %T", o)
	}
}

// UnmarshalJSON decodes a Node. A string left operand becomes a Key.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw nodeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	n.Operator = raw.Operator

	left, err := unmarshalOperand(raw.Left, true)
	if err != nil {
		return fmt.Errorf("left: %w", err)
	}
	right, err := unmarshalOperand(raw.Right, false)
	if err != nil {
		return fmt.Errorf("right: %w", err)
	}
	n.Left, n.Right = left, right
	return nil
}

func unmarshalOperand(data json.RawMessage, left bool) (Operand, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	switch data[0] {
	case '{':
		child := &Node{}
		if err := child.UnmarshalJSON(data); err != nil {
			return nil, err
		}
		return child, nil
	case '[':
		if left {
			return nil, fmt.Errorf("left operand cannot be a list")
		}
		var l []Value
		if err := json.Unmarshal(data, &l); err != nil {
			return nil, err
		}
		return List(l), nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		if left {
			return Key(s), nil
		}
		return StringValue(s), nil
	default:
		if left {
			return nil, fmt.Errorf("left operand must be a key or node, got %s", data)
		}
		var v Value
		if err := v.UnmarshalJSON(data); err != nil {
			return nil, err
		}
		return v, nil
	}
}
