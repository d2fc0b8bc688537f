package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/searchquery/internal/queryir"
	"github.com/roach88/searchquery/internal/testutil"
)

// execute runs the root command with args and returns what it wrote to
// stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// decodeData unmarshals the data field of a JSON success response into v.
func decodeData(t *testing.T, out string, v any) {
	t.Helper()
	var resp struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Equal(t, "ok", resp.Status, out)
	require.NoError(t, json.Unmarshal(resp.Data, v))
}

// decodeError unmarshals the error field of a JSON error response.
func decodeError(t *testing.T, out string) CLIError {
	t.Helper()
	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Equal(t, "error", resp.Status, out)
	require.NotNil(t, resp.Error)
	return *resp.Error
}

func TestParseCommandJSON(t *testing.T) {
	out, err := execute(t, "--format", "json", "parse", "merchant:Acme", "category:Travel,Meals")
	require.NoError(t, err)

	var q queryir.SearchQueryJSON
	decodeData(t, out, &q)
	assert.Equal(t, queryir.DataTypeExpense, q.Type)
	assert.Equal(t, "merchant:Acme category:Travel,Meals", q.InputQuery)
	assert.Equal(t, uint32(345799035), q.Hash)
	require.NotNil(t, q.Filters)
	assert.Equal(t, queryir.OperatorAnd, q.Filters.Operator)
	assert.Len(t, q.FlatFilters[queryir.FilterKeyCategory], 2)
}

func TestParseCommandText(t *testing.T) {
	out, err := execute(t, "parse", "amount<100")
	require.NoError(t, err)
	assert.Contains(t, out, `"inputQuery": "amount<100"`)
	assert.Contains(t, out, `"flatFilters"`)
	assert.NotContains(t, out, `\u003c`)
}

func TestIndentJSON(t *testing.T) {
	got, err := indentJSON(map[string]string{"q": "amount>5 a&b"})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"q\": \"amount>5 a&b\"\n}", got)
}

func TestParseCommandInvalidQuery(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		out, err := execute(t, "parse", `merchant:"Acme`)
		require.Error(t, err)
		assert.Equal(t, ExitFailure, GetExitCode(err))
		assert.True(t, IsReported(err))
		assert.Contains(t, out, "Error [E010]: invalid search query")
	})

	t.Run("json", func(t *testing.T) {
		out, err := execute(t, "--format", "json", "parse", `merchant:"Acme`)
		require.Error(t, err)

		cliErr := decodeError(t, out)
		assert.Equal(t, CodeInvalidQuery, cliErr.Code)
		assert.Contains(t, cliErr.Details, "unterminated quoted string")
	})
}

func TestNormalizeCommand(t *testing.T) {
	a, err := execute(t, "normalize", "category:Travel", "merchant:Acme")
	require.NoError(t, err)
	b, err := execute(t, "normalize", "merchant:Acme", "category:Travel")
	require.NoError(t, err)

	assert.Equal(t, "type:expense status:all sortBy:date sortOrder:desc merchant:Acme category:Travel\n", a)
	assert.Equal(t, a, b)
}

func TestHashCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"empty query", nil, "243428839"},
		{"merchant and categories", []string{"merchant:Acme", "category:Travel,Meals"}, "345799035"},
		{"reordered", []string{"category:Meals,Travel", "merchant:Acme"}, "345799035"},
		{"single argument", []string{"type:invoice status:paid policyID:P1 amount<100 amount>5"}, "630204813"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, append([]string{"hash"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want+"\n", out)
		})
	}
}

func TestHashCommandJSON(t *testing.T) {
	out, err := execute(t, "--format", "json", "hash", "category:Meals,Travel", "merchant:Acme")
	require.NoError(t, err)

	var got QueryOutput
	decodeData(t, out, &got)
	assert.Equal(t, "category:Meals,Travel merchant:Acme", got.Input)
	assert.Equal(t, "type:expense status:all sortBy:date sortOrder:desc merchant:Acme category:Meals,Travel", got.Query)
	assert.Equal(t, uint32(345799035), got.Hash)
}

func TestDisplayCommand(t *testing.T) {
	dirFile := testutil.WriteSnapshotYAML(t, t.TempDir())

	out, err := execute(t, "display", "from:12", "cardID:100", "--directory", dirFile)
	require.NoError(t, err)
	assert.Equal(t, "type:expense status:all from:alice@example.com cardID:Chase\n", out)

	// Without a directory, ids pass through.
	out, err = execute(t, "display", "from:12", "cardID:100")
	require.NoError(t, err)
	assert.Equal(t, "type:expense status:all from:12 cardID:100\n", out)
}

func TestDisplayCommandDirectoryFromEnvironment(t *testing.T) {
	t.Setenv("SEARCHQ_DIRECTORY", testutil.WriteSnapshotYAML(t, t.TempDir()))

	out, err := execute(t, "display", "in:R1")
	require.NoError(t, err)
	assert.Equal(t, "type:expense status:all in:\"Q3 travel\"\n", out)
}

func TestDisplayCommandMissingDirectory(t *testing.T) {
	out, err := execute(t, "--format", "json", "display", "from:12", "--directory", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	cliErr := decodeError(t, out)
	assert.Equal(t, CodeDirectoryLoad, cliErr.Code)
	assert.Contains(t, cliErr.Details, "E101")
}

func TestStandardizeCommand(t *testing.T) {
	dirFile := testutil.WriteSnapshotYAML(t, t.TempDir())

	out, err := execute(t, "standardize", "from:ALICE@example.com", "cardID:Chase", "taxRate:VAT",
		"--policy-id", "P2", "--directory", dirFile)
	require.NoError(t, err)
	assert.Equal(t, "policyID:P2 type:expense status:all sortBy:date sortOrder:desc from:12 taxRate:id_TAX_1,id_TAX_2 cardID:100\n", out)
}

func TestStandardizeCommandHashMatchesOutput(t *testing.T) {
	dirFile := testutil.WriteSnapshotYAML(t, t.TempDir())

	out, err := execute(t, "--format", "json", "standardize", "from:alice@example.com", "--directory", dirFile)
	require.NoError(t, err)
	var std QueryOutput
	decodeData(t, out, &std)

	out, err = execute(t, "--format", "json", "hash", std.Query)
	require.NoError(t, err)
	var hashed QueryOutput
	decodeData(t, out, &hashed)

	assert.Equal(t, hashed.Hash, std.Hash)
	assert.Equal(t, std.Query, hashed.Query)
}

func TestCannedCommand(t *testing.T) {
	out, err := execute(t, "canned", "--type", "invoice", "--status", "paid")
	require.NoError(t, err)
	assert.Equal(t, "type:invoice status:paid sortBy:date sortOrder:desc\n", out)

	out, err = execute(t, "canned")
	require.NoError(t, err)
	assert.Equal(t, "type:expense status:all sortBy:date sortOrder:desc\n", out)

	out, err = execute(t, "--format", "json", "canned")
	require.NoError(t, err)
	var got QueryOutput
	decodeData(t, out, &got)
	assert.Equal(t, uint32(243428839), got.Hash)
}

func TestCannedCommandUnknownType(t *testing.T) {
	out, err := execute(t, "canned", "--type", "receipt")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, `unknown type "receipt"`)
}

func TestQueryArg(t *testing.T) {
	assert.Equal(t, "", queryArg(nil))
	assert.Equal(t, "merchant:Acme amount>5", queryArg([]string{"merchant:Acme", "amount>5"}))
	assert.Equal(t, `merchant:"Big Co"`, queryArg([]string{`merchant:"Big`, `Co"`}))
}

func TestCannedCommandSuggestions(t *testing.T) {
	out, err := execute(t, "canned", "--type", "invoce")
	require.Error(t, err)
	assert.Contains(t, out, `did you mean "invoice"?`)

	out, err = execute(t, "canned", "--type", "trip", "--status", "paid")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, `unknown trip status "paid": did you mean "past"?`)
}
