package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	seed := map[string]string{KeyViewerHandle: "octocat"}
	s := NewMemoryStore(seed)
	seed[KeyViewerHandle] = "mutated"

	assert.Equal(t, "octocat", ViewerHandle(s))
	assert.Equal(t, "", Token(s))

	require.NoError(t, s.Set(KeyToken, "abc"))
	v, ok := s.Get(KeyToken)
	assert.True(t, ok)
	assert.Equal(t, "abc", v)
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "preferences.json")

	s, err := OpenFileStore(path)
	require.NoError(t, err)
	_, ok := s.Get(KeyToken)
	assert.False(t, ok, "new store should be empty")

	require.NoError(t, s.Set(KeyToken, "ghp_secret"))
	require.NoError(t, s.Set(KeyViewerHandle, "octocat"))

	reopened, err := OpenFileStore(path)
	require.NoError(t, err)
	assert.Equal(t, "ghp_secret", Token(reopened))
	assert.Equal(t, "octocat", ViewerHandle(reopened))
}

func TestFileStoreEncodesToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")
	s, err := OpenFileStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(KeyToken, "ghp_secret"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "ghp_secret")

	var raw map[string]string
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, encodeCredentials("ghp_secret"), raw[KeyToken])

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestFileStoreLeavesNoTemporaryFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenFileStore(filepath.Join(dir, "preferences.json"))
	require.NoError(t, err)

	for _, v := range []string{"a", "b", "c"} {
		require.NoError(t, s.Set(KeyToken, v))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "preferences.json", entries[0].Name())
}

func TestOpenFileStoreRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0600))

	_, err := OpenFileStore(path)
	assert.Error(t, err)
}

func TestOpenFileStoreRejectsUndecodableToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"token":"%%%"}`), 0600))

	_, err := OpenFileStore(path)
	assert.Error(t, err)
}
