package cache

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSQLiteStorePutGetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	rec := Record{QualifiedName: "widget.abc123", Version: 1, Members: map[string]string{"X": "int"}}
	data, err := Encode(rec)
	require.NoError(t, err)
	require.NoError(t, store.Put(rec.QualifiedName, data))

	got, ok, err := store.Get(rec.QualifiedName)
	require.NoError(t, err)
	require.True(t, ok)

	decoded, err := Decode(got)
	require.NoError(t, err)
	require.Equal(t, rec, decoded)
}

func TestSQLiteStoreGetMissReturnsFalse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	_, ok, err := store.Get("nonexistent")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSQLiteStorePutOverwritesExistingEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Put("widget", []byte("v1")))
	require.NoError(t, store.Put("widget", []byte("v2")))

	got, ok, err := store.Get("widget")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("v2"), got)
}
