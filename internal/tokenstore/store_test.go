package tokenstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestFile_RoundTripAndDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "session.toml")
	store := File{Path: path}

	_, err := store.Load()
	require.ErrorIs(t, err, ErrNoToken)

	require.NoError(t, store.Save("abc123"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	token, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	require.NoError(t, store.Delete())
	_, err = store.Load()
	require.ErrorIs(t, err, ErrNoToken)

	// Deleting twice is fine.
	require.NoError(t, store.Delete())
}

func TestFile_BlankTokenIsMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	require.NoError(t, os.WriteFile(path, []byte("access_token = \"  \"\n"), 0o600))

	_, err := File{Path: path}.Load()
	require.ErrorIs(t, err, ErrNoToken)
}

func TestFile_CorruptFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	require.NoError(t, os.WriteFile(path, []byte("access_token = [\n"), 0o600))

	_, err := File{Path: path}.Load()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoToken)
	assert.Contains(t, err.Error(), "parse session file")
}

func TestMemory(t *testing.T) {
	m := NewMemory("")
	_, err := m.Load()
	require.ErrorIs(t, err, ErrNoToken)

	require.NoError(t, m.Save("t"))
	got, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, "t", got)

	require.NoError(t, m.Delete())
	_, err = m.Load()
	require.ErrorIs(t, err, ErrNoToken)
}

func TestKeyring_UsesMockProvider(t *testing.T) {
	keyring.MockInit()

	k := Keyring{Profile: "127.0.0.1:5000"}
	_, err := k.Load()
	require.ErrorIs(t, err, ErrNoToken)

	require.NoError(t, k.Save("abc123"))
	got, err := k.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc123", got)

	require.NoError(t, k.Delete())
	require.NoError(t, k.Delete())
	_, err = k.Load()
	require.ErrorIs(t, err, ErrNoToken)
}
