package savedsearch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/searchquery/internal/queryir"
	"github.com/roach88/searchquery/internal/search"
)

func openTestRegistry(t *testing.T, opts ...Option) *Registry {
	t.Helper()
	r, err := Open(filepath.Join(t.TempDir(), "saved.db"), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func build(t *testing.T, query string) *queryir.SearchQueryJSON {
	t.Helper()
	q := search.BuildSearchQueryJSON(query)
	require.NotNil(t, q)
	return q
}

func TestOpen_CreatesAndMigrates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.db")

	for i := 0; i < 3; i++ {
		r, err := Open(path)
		require.NoError(t, err, "open iteration %d", i)

		version, err := r.schemaVersion()
		require.NoError(t, err)
		assert.Equal(t, currentSchemaVersion, version)
		require.NoError(t, r.Close())
	}

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestOpen_JournalModeIsWAL(t *testing.T) {
	r := openTestRegistry(t)

	var mode string
	require.NoError(t, r.db.QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestSave_NewAndDuplicate(t *testing.T) {
	ctx := context.Background()
	r := openTestRegistry(t, WithIDGenerator(NewFixedGenerator("s-1", "s-2")))

	q := build(t, "merchant:Acme category:Travel,Meals")
	saved, created, err := r.Save(ctx, "Acme travel", q)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, SavedSearch{
		ID:    "s-1",
		Hash:  q.Hash,
		Name:  "Acme travel",
		Query: "type:expense status:all sortBy:date sortOrder:desc merchant:Acme category:Travel,Meals",
		Seq:   1,
	}, saved)

	// Same hash, different clause order and name.
	again, created, err := r.Save(ctx, "other name", build(t, "category:Meals,Travel merchant:Acme"))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, saved, again)

	second, created, err := r.Save(ctx, "", build(t, "type:trip"))
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "s-2", second.ID)
	assert.Equal(t, int64(2), second.Seq)
	assert.Equal(t, "type:trip status:all sortBy:date sortOrder:desc", second.Name, "empty name defaults to the query")
}

func TestSave_NilQuery(t *testing.T) {
	r := openTestRegistry(t)
	_, _, err := r.Save(context.Background(), "x", nil)
	assert.Error(t, err)
}

func TestSave_DefaultIDsAreUUIDv7(t *testing.T) {
	r := openTestRegistry(t)

	saved, _, err := r.Save(context.Background(), "", build(t, "lunch"))
	require.NoError(t, err)

	id, err := uuid.Parse(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	r := openTestRegistry(t)

	q := build(t, "from:12")
	saved, _, err := r.Save(ctx, "mine", q)
	require.NoError(t, err)

	got, err := r.Get(ctx, q.Hash)
	require.NoError(t, err)
	assert.Equal(t, saved, got)

	_, err = r.Get(ctx, q.Hash+1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList_CreationOrder(t *testing.T) {
	ctx := context.Background()
	r := openTestRegistry(t, WithIDGenerator(NewFixedGenerator("z", "a", "m")))

	empty, err := r.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, query := range []string{"type:trip", "type:chat", "type:invoice"} {
		_, _, err := r.Save(ctx, "", build(t, query))
		require.NoError(t, err)
	}

	all, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"z", "a", "m"}, []string{all[0].ID, all[1].ID, all[2].ID})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	r := openTestRegistry(t)

	q := build(t, "tag:none")
	_, _, err := r.Save(ctx, "", q)
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, q.Hash))
	_, err = r.Get(ctx, q.Hash)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, r.Delete(ctx, q.Hash), ErrNotFound)
}

func TestHashesAboveInt32RoundTrip(t *testing.T) {
	ctx := context.Background()
	r := openTestRegistry(t)

	q := build(t, "merchant:Acme")
	q.Hash = 0xFFFFFFF0

	_, _, err := r.Save(ctx, "", q)
	require.NoError(t, err)

	got, err := r.Get(ctx, 0xFFFFFFF0)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xFFFFFFF0), got.Hash)
}

func TestFixedGenerator_PanicsWhenExhausted(t *testing.T) {
	g := NewFixedGenerator("only")
	assert.Equal(t, "only", g.Generate())
	assert.Panics(t, func() { g.Generate() })
}
