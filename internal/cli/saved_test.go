package cli

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/searchquery/internal/savedsearch"
)

func TestSavedLifecycle(t *testing.T) {
	db := filepath.Join(t.TempDir(), "searches.db")

	// Add a search, then the same search with its clauses reordered.
	out, err := execute(t, "--format", "json", "--db", db, "saved", "add", "merchant:Acme", "category:Travel,Meals", "--name", "Acme travel")
	require.NoError(t, err)
	var first SavedAddResult
	decodeData(t, out, &first)
	assert.True(t, first.Created)
	assert.Equal(t, "Acme travel", first.Name)
	assert.Equal(t, uint32(345799035), first.Hash)
	assert.Equal(t, "type:expense status:all sortBy:date sortOrder:desc merchant:Acme category:Travel,Meals", first.Query)

	out, err = execute(t, "--db", db, "saved", "add", "category:Meals,Travel", "merchant:Acme")
	require.NoError(t, err)
	assert.Equal(t, "already saved as "+first.ID+" (hash 345799035)\n", out)

	out, err = execute(t, "--format", "json", "--db", db, "saved", "add")
	require.NoError(t, err)
	var canned SavedAddResult
	decodeData(t, out, &canned)
	assert.True(t, canned.Created)
	assert.Equal(t, "type:expense status:all sortBy:date sortOrder:desc", canned.Name)

	// List in save order.
	out, err = execute(t, "--format", "json", "--db", db, "saved", "list")
	require.NoError(t, err)
	var list []savedsearch.SavedSearch
	decodeData(t, out, &list)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, canned.ID, list[1].ID)

	out, err = execute(t, "--db", db, "saved", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "HASH")
	assert.Contains(t, out, "Acme travel")
	assert.Contains(t, out, "345799035")

	// Get and delete by hash.
	hash := strconv.FormatUint(uint64(first.Hash), 10)
	out, err = execute(t, "--format", "json", "--db", db, "saved", "get", hash)
	require.NoError(t, err)
	var got savedsearch.SavedSearch
	decodeData(t, out, &got)
	assert.Equal(t, first.SavedSearch, got)

	out, err = execute(t, "--db", db, "saved", "delete", hash)
	require.NoError(t, err)
	assert.Equal(t, "deleted 345799035\n", out)

	out, err = execute(t, "--format", "json", "--db", db, "saved", "get", hash)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, CodeNotFound, decodeError(t, out).Code)

	_, err = execute(t, "--db", db, "saved", "delete", hash)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestSavedListEmpty(t *testing.T) {
	db := filepath.Join(t.TempDir(), "searches.db")

	out, err := execute(t, "--db", db, "saved", "list")
	require.NoError(t, err)
	assert.Equal(t, "No saved searches.\n", out)

	out, err = execute(t, "--format", "json", "--db", db, "saved", "list")
	require.NoError(t, err)
	var list []savedsearch.SavedSearch
	decodeData(t, out, &list)
	assert.Empty(t, list)
}

func TestSavedRequiresDB(t *testing.T) {
	out, err := execute(t, "--format", "json", "saved", "list")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	cliErr := decodeError(t, out)
	assert.Equal(t, CodeRegistry, cliErr.Code)
	assert.Contains(t, cliErr.Message, "SEARCHQ_DB")
}

func TestSavedAddInvalidQuery(t *testing.T) {
	db := filepath.Join(t.TempDir(), "searches.db")

	out, err := execute(t, "--db", db, "saved", "add", `merchant:"Acme`)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [E010]")
}

func TestSavedGetInvalidHash(t *testing.T) {
	tests := []string{"abc", "-1", "4294967296"}

	for _, arg := range tests {
		t.Run(arg, func(t *testing.T) {
			out, err := execute(t, "--db", filepath.Join(t.TempDir(), "searches.db"), "saved", "get", "--", arg)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, out, "invalid hash")
		})
	}
}
