package file

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/ponto/internal/storage"
	"github.com/mcoot/ponto/internal/storage/storagetest"
)

func TestStorageSuite(t *testing.T) {
	dir := t.TempDir()
	n := 0
	suite.Run(t, &storagetest.StoreSuite{
		NewStore: func() storage.Store {
			n++
			s, err := New(filepath.Join(dir, "sub", fmt.Sprintf("credentials-%d.json", n)))
			require.NoError(t, err)
			return s
		},
	})
}

func TestNewRequiresPath(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}

func TestValuesSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")

	first, err := New(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(t.Context(), storage.KeyToken, "abc"))

	second, err := New(path)
	require.NoError(t, err)
	value, ok, err := second.Get(t.Context(), storage.KeyToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", value)
}

func TestFileIsOwnerOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	s, err := New(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(t.Context(), storage.KeyToken, "abc"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestCorruptFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	s, err := New(path)
	require.NoError(t, err)

	_, _, err = s.Get(t.Context(), storage.KeyToken)
	assert.Error(t, err)
}

func TestRemoveAbsentKeyDoesNotCreateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	s, err := New(path)
	require.NoError(t, err)

	require.NoError(t, s.Remove(t.Context(), storage.KeyToken))

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
