package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "searchq", cmd.Use)
	assert.Contains(t, cmd.Long, "saved searches")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := [][]string{
		{"parse"},
		{"normalize"},
		{"hash"},
		{"display"},
		{"standardize"},
		{"canned"},
		{"form", "from-query"},
		{"form", "to-query"},
		{"saved", "add"},
		{"saved", "list"},
		{"saved", "get"},
		{"saved", "delete"},
		{"test"},
	}

	for _, path := range commands {
		name := path[len(path)-1]
		t.Run(name, func(t *testing.T) {
			subCmd, _, err := cmd.Find(path)
			require.NoError(t, err, "Command %v should exist", path)
			require.NotNil(t, subCmd)
			assert.Equal(t, name, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	dirFlag := cmd.PersistentFlags().Lookup("directory")
	require.NotNil(t, dirFlag)
	assert.Equal(t, "d", dirFlag.Shorthand)

	require.NotNil(t, cmd.PersistentFlags().Lookup("db"))
	require.NotNil(t, cmd.PersistentFlags().Lookup("config"))
}

func TestStandardizeCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	stdCmd, _, err := cmd.Find([]string{"standardize"})
	require.NoError(t, err)

	policyFlag := stdCmd.Flags().Lookup("policy-id")
	require.NotNil(t, policyFlag)
	assert.Equal(t, "", policyFlag.DefValue)
}

func TestSavedAddCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	addCmd, _, err := cmd.Find([]string{"saved", "add"})
	require.NoError(t, err)

	require.NotNil(t, addCmd.Flags().Lookup("name"))
}

func TestTestCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	testCmd, _, err := cmd.Find([]string{"test"})
	require.NoError(t, err)

	updateFlag := testCmd.Flags().Lookup("update")
	require.NotNil(t, updateFlag)
	assert.Equal(t, "false", updateFlag.DefValue)

	filterFlag := testCmd.Flags().Lookup("filter")
	require.NotNil(t, filterFlag)
}

func TestFormatValidation(t *testing.T) {
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))

	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))
	assert.False(t, isValidFormat("TEXT"))
}

func TestFormatValidationIntegration(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--format", "invalid", "hash", "merchant:Acme"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestFormatFromEnvironment(t *testing.T) {
	t.Setenv("SEARCHQ_FORMAT", "json")

	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"hash", "merchant:Acme", "category:Travel,Meals"})
	require.NoError(t, cmd.Execute())

	var resp struct {
		Status string      `json:"status"`
		Data   QueryOutput `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, uint32(345799035), resp.Data.Hash)
}

func TestFlagOverridesEnvironment(t *testing.T) {
	t.Setenv("SEARCHQ_FORMAT", "json")

	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--format", "text", "hash", "merchant:Acme", "category:Travel,Meals"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "345799035\n", buf.String())
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "searches.db")
	configPath := filepath.Join(dir, "searchq.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("format: json\ndb: "+dbPath+"\n"), 0644))

	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--config", configPath, "saved", "add", "merchant:Acme"})
	require.NoError(t, cmd.Execute())

	var resp struct {
		Status string         `json:"status"`
		Data   SavedAddResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.Created)

	_, err := os.Stat(dbPath)
	assert.NoError(t, err, "registry database is created at the configured path")
}

func TestMissingConfigFile(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml"), "hash"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestVerboseLogsToStderr(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs([]string{"-v", "normalize", "merchant:Acme"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "type:expense status:all sortBy:date sortOrder:desc merchant:Acme\n", out.String())
	assert.Contains(t, errOut.String(), "built search query")
}
