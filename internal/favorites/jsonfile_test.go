package favorites

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "favorites.json")
	store, err := NewJSONStore(path)
	require.NoError(t, err)
	return store, path
}

func TestNewJSONStore_SeedsEmptyFile(t *testing.T) {
	store, path := newTestStore(t)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.JSONEq(t, `{}`, string(raw))

	all := store.Load(context.Background())
	require.Empty(t, all)
}

func TestNewJSONStore_RequiresPath(t *testing.T) {
	_, err := NewJSONStore(" ")
	require.Error(t, err)
}

func TestJSONStore_AddAndList(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	added, err := store.Add(ctx, 42, "Inception")
	require.NoError(t, err)
	require.True(t, added)

	added, err = store.Add(ctx, 42, "The Matrix")
	require.NoError(t, err)
	require.True(t, added)

	require.Equal(t, []string{"Inception", "The Matrix"}, store.List(ctx, 42))
}

func TestJSONStore_AddDuplicateCaseInsensitive(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	added, err := store.Add(ctx, 42, "Inception")
	require.NoError(t, err)
	require.True(t, added)

	added, err = store.Add(ctx, 42, "inCEPtion")
	require.NoError(t, err)
	require.False(t, added)

	// the first spelling wins and stays the only entry
	require.Equal(t, []string{"Inception"}, store.List(ctx, 42))
}

func TestJSONStore_UsersAreIsolated(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.Add(ctx, 1, "Alien")
	require.NoError(t, err)
	_, err = store.Add(ctx, 2, "Aliens")
	require.NoError(t, err)

	require.Equal(t, []string{"Alien"}, store.List(ctx, 1))
	require.Equal(t, []string{"Aliens"}, store.List(ctx, 2))
	require.Empty(t, store.List(ctx, 3))
}

func TestJSONStore_LoadMissingFileFailsOpen(t *testing.T) {
	store, path := newTestStore(t)
	require.NoError(t, os.Remove(path))

	all := store.Load(context.Background())
	require.NotNil(t, all)
	require.Empty(t, all)
}

func TestJSONStore_LoadCorruptFileFailsOpen(t *testing.T) {
	store, path := newTestStore(t)
	require.NoError(t, os.WriteFile(path, []byte(`{broken`), 0o644))

	all := store.Load(context.Background())
	require.NotNil(t, all)
	require.Empty(t, all)

	// a later add starts over from the empty mapping
	added, err := store.Add(context.Background(), 42, "Inception")
	require.NoError(t, err)
	require.True(t, added)
	require.Equal(t, []string{"Inception"}, store.List(context.Background(), 42))
}

func TestJSONStore_SaveReplacesWholeMapping(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.Add(ctx, 42, "Inception")
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, map[string][]string{
		"7": {"Heat", "Ronin"},
	}))

	require.Empty(t, store.List(ctx, 42))
	require.Equal(t, []string{"Heat", "Ronin"}, store.List(ctx, 7))
}

func TestJSONStore_PersistsAcrossInstances(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	_, err := store.Add(ctx, 42, "Inception")
	require.NoError(t, err)

	reopened, err := NewJSONStore(path)
	require.NoError(t, err)
	require.Equal(t, []string{"Inception"}, reopened.List(ctx, 42))
}
