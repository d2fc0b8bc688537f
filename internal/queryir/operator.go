package queryir

import "fmt"

// Operator is a comparison or boolean connective in a query AST.
type Operator string

const (
	OperatorEqualTo            Operator = "eq"
	OperatorNotEqualTo         Operator = "neq"
	OperatorLowerThan          Operator = "lt"
	OperatorLowerThanOrEqualTo Operator = "lte"
	OperatorGreaterThan        Operator = "gt"
	OperatorGreaterThanOrEqual Operator = "gte"
	OperatorAnd                Operator = "and"
	OperatorOr                 Operator = "or"
)

// Operators lists every operator in serialization order.
var Operators = []Operator{
	OperatorEqualTo,
	OperatorNotEqualTo,
	OperatorLowerThan,
	OperatorLowerThanOrEqualTo,
	OperatorGreaterThan,
	OperatorGreaterThanOrEqual,
	OperatorAnd,
	OperatorOr,
}

// Token returns the query-string token for the operator.
// Unknown operators return an empty string.
func (o Operator) Token() string {
	switch o {
	case OperatorEqualTo:
		return ":"
	case OperatorNotEqualTo:
		return "!="
	case OperatorLowerThan:
		return "<"
	case OperatorLowerThanOrEqualTo:
		return "<="
	case OperatorGreaterThan:
		return ">"
	case OperatorGreaterThanOrEqual:
		return ">="
	case OperatorAnd:
		return ","
	case OperatorOr:
		return " "
	default:
		return ""
	}
}

// Valid reports whether o is one of the known operators.
func (o Operator) Valid() bool {
	return o.Token() != ""
}

// IsLogical reports whether o joins sub-expressions rather than comparing a value.
func (o Operator) IsLogical() bool {
	return o == OperatorAnd || o == OperatorOr
}

func (o Operator) String() string {
	return string(o)
}

// ParseOperatorToken maps a comparison token from a query string to its operator.
// "=" is accepted as an alias of ":".
func ParseOperatorToken(token string) (Operator, error) {
	switch token {
	case ":", "=":
		return OperatorEqualTo, nil
	case "!=":
		return OperatorNotEqualTo, nil
	case "<":
		return OperatorLowerThan, nil
	case "<=":
		return OperatorLowerThanOrEqualTo, nil
	case ">":
		return OperatorGreaterThan, nil
	case ">=":
		return OperatorGreaterThanOrEqual, nil
	default:
		return "", fmt.Errorf("unknown operator token %q", token)
	}
}
