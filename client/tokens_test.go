package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	access, refresh := store.Tokens()
	assert.Empty(t, access)
	assert.Empty(t, refresh)
	assert.False(t, store.HasPair())

	require.NoError(t, store.Save("a1", "r1"))
	access, refresh = store.Tokens()
	assert.Equal(t, "a1", access)
	assert.Equal(t, "r1", refresh)
	assert.True(t, store.HasPair())

	require.NoError(t, store.Clear())
	access, refresh = store.Tokens()
	assert.Empty(t, access)
	assert.Empty(t, refresh)
	assert.False(t, store.HasPair())
}

func TestMemoryStore_HasPairNeedsBothTokens(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.Save("a1", ""))
	assert.False(t, store.HasPair())

	require.NoError(t, store.Save("", "r1"))
	assert.False(t, store.HasPair())
}

func TestNoopStore(t *testing.T) {
	store := NoopStore{}

	require.NoError(t, store.Save("a1", "r1"))
	access, refresh := store.Tokens()
	assert.Empty(t, access)
	assert.Empty(t, refresh)
	assert.False(t, store.HasPair())
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)

	// Missing file reads as an empty session.
	access, refresh := store.Tokens()
	assert.Empty(t, access)
	assert.Empty(t, refresh)
	assert.False(t, store.HasPair())

	require.NoError(t, store.Save("a1", "r1"))

	// A fresh store over the same path sees the session.
	reopened := NewFileStore(path)
	access, refresh = reopened.Tokens()
	assert.Equal(t, "a1", access)
	assert.Equal(t, "r1", refresh)
	assert.True(t, reopened.HasPair())
}

func TestFileStore_Permissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)
	require.NoError(t, store.Save("a1", "r1"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)
	require.NoError(t, store.Save("a1", "r1"))

	require.NoError(t, store.Clear())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Clearing an already-empty session is not an error.
	require.NoError(t, store.Clear())
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := NewFileStore(path)
	access, refresh := store.Tokens()
	assert.Empty(t, access)
	assert.Empty(t, refresh)
}
