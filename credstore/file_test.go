package credstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials")
	store := NewFile(path, []byte("passphrase"))

	_, found, err := store.Get("access_token")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, store.Set("access_token", "T1"))
	require.NoError(t, store.Set("refresh_token", "R1"))

	v, found, err := store.Get("access_token")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "T1", v)

	// A fresh instance over the same file sees the same values.
	reopened := NewFile(path, []byte("passphrase"))
	v, found, err = reopened.Get("refresh_token")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "R1", v)

	require.NoError(t, reopened.Delete("access_token"))
	_, found, err = reopened.Get("access_token")
	require.NoError(t, err)
	require.False(t, found)
}

func TestFile_TokensNotStoredInPlaintext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials")
	store := NewFile(path, []byte("passphrase"))
	require.NoError(t, store.Set("access_token", "super-secret-token"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "super-secret-token")
}

func TestFile_WrongPassphrase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials")
	require.NoError(t, NewFile(path, []byte("right")).Set("access_token", "T1"))

	_, _, err := NewFile(path, []byte("wrong")).Get("access_token")
	require.Error(t, err)
}

func TestFile_TruncatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials")
	require.NoError(t, os.WriteFile(path, []byte("short"), 0o600))

	_, _, err := NewFile(path, []byte("k")).Get("access_token")
	require.Error(t, err)
}

func TestMemory(t *testing.T) {
	store := NewMemory()

	_, found, err := store.Get("k")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, store.Set("k", "v"))
	v, found, err := store.Get("k")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "v", v)

	require.NoError(t, store.Delete("k"))
	_, found, _ = store.Get("k")
	require.False(t, found)
}
