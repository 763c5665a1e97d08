package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalDirPutWritesFile(t *testing.T) {
	dir := t.TempDir()
	dest := NewLocalDir(filepath.Join(dir, "nested"))

	loc, err := dest.Put("example.srt", []byte("content"))
	require.NoError(t, err)

	got, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.Equal(t, "content", string(got))
}

func TestRemoteDestinationsAreNotConfigured(t *testing.T) {
	_, err := RemoteBlob{}.Put("name", nil)
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = RemoteObjectStore{}.Put("name", nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}
