package queryir

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeJSONShape(t *testing.T) {
	root := NewLogical(OperatorAnd,
		NewFilter(OperatorEqualTo, FilterKeyCategory, StringList("Food", "Travel")),
		NewFilter(OperatorGreaterThan, FilterKeyAmount, NumberValue(12.5)),
	)

	data, err := json.Marshal(root)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"operator": "and",
		"left": {"operator": "eq", "left": "category", "right": ["Food", "Travel"]},
		"right": {"operator": "gt", "left": "amount", "right": 12.5}
	}`, string(data))

	var decoded Node
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, root, &decoded)
}

func TestNodeJSONKeepsSymbols(t *testing.T) {
	root := NewFilter(OperatorEqualTo, FilterKeyMerchant, StringList("a&b", "<c>"))

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	require.NoError(t, enc.Encode(root))
	assert.Contains(t, buf.String(), `["a&b","<c>"]`)
}

func TestValueJSONKeepsLiteralText(t *testing.T) {
	var v Value
	require.NoError(t, json.Unmarshal([]byte(`100.50`), &v))
	assert.True(t, v.IsNumber())
	assert.Equal(t, "100.50", v.String())

	data, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, "100.50", string(data))
}

func TestNodeJSONRejectsListOnLeft(t *testing.T) {
	var n Node
	err := json.Unmarshal([]byte(`{"operator":"eq","left":["a"],"right":"b"}`), &n)
	assert.ErrorContains(t, err, "left operand cannot be a list")
}

func TestSearchQueryJSONOmitsCannedFilters(t *testing.T) {
	q := DefaultSearchQueryJSON()
	data, err := json.Marshal(q)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"filters"`)
	assert.NotContains(t, string(data), `"policyID"`)
}
