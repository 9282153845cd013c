package localstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type user struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func TestStore_SetGetRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	s := New(path)

	var tok string
	ok, err := s.Get(KeyAuthToken, &tok)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(KeyAuthToken, "abc"))
	require.NoError(t, s.Set(KeyUser, user{ID: "u1", Username: "admin"}))

	ok, err = s.Get(KeyAuthToken, &tok)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", tok)

	var u user
	ok, err = New(path).Get(KeyUser, &u)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "admin", u.Username)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(filePerm), info.Mode().Perm())

	require.NoError(t, s.Remove(KeyAuthToken, KeyUser, "missing"))
	has, err := s.Has(KeyUser)
	require.NoError(t, err)
	assert.False(t, has)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files are cleaned up")
}

func TestStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := New(path).Has(KeyAuthToken)
	require.Error(t, err)
}

func TestStore_EmptyFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	has, err := New(path).Has(KeyAuthToken)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("HOME", "/tmp/home")
	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "session.json", filepath.Base(p))
	assert.Equal(t, "adminctl", filepath.Base(filepath.Dir(p)))
}
