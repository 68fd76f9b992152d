package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	librisErrors "github.com/alexisbeaulieu97/libris/pkg/errors"
)

func TestFileStoreMissingFileStartsEmpty(t *testing.T) {
	t.Parallel()

	store, err := NewFileStore(filepath.Join(t.TempDir(), "state", "state.yaml"))
	require.NoError(t, err)

	_, ok := store.Get("token")
	assert.False(t, ok)
	assert.Empty(t, store.Keys())
}

func TestFileStoreSurvivesReload(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.yaml")
	store, err := NewFileStore(path)
	require.NoError(t, err)

	require.NoError(t, store.SetMany(map[string]string{"token": "abc", "username": "ayse"}))
	require.NoError(t, store.Set("theme", "dark"))

	reloaded, err := NewFileStore(path)
	require.NoError(t, err)

	token, ok := reloaded.Get("token")
	require.True(t, ok)
	assert.Equal(t, "abc", token)
	assert.Equal(t, []string{"theme", "token", "username"}, reloaded.Keys())

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temporary file should be renamed away")
}

func TestFileStoreDeletePersists(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.yaml")
	store, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.SetMany(map[string]string{"token": "abc", "username": "ayse", "theme": "light"}))

	require.NoError(t, store.Delete("token", "username", "missing"))

	reloaded, err := NewFileStore(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"theme"}, reloaded.Keys())
}

func TestFileStoreRejectsCorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.yaml")
	require.NoError(t, os.WriteFile(path, []byte("token: [unterminated"), 0o600))

	_, err := NewFileStore(path)
	var parseErr *librisErrors.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, path, parseErr.Path)
}

func TestMemoryStoreCopiesSeed(t *testing.T) {
	t.Parallel()

	seed := map[string]string{"theme": "dark"}
	store := NewMemoryStore(seed)
	seed["theme"] = "light"

	value, ok := store.Get("theme")
	require.True(t, ok)
	assert.Equal(t, "dark", value)

	require.NoError(t, store.Delete("theme"))
	_, ok = store.Get("theme")
	assert.False(t, ok)
}
