package localfs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLister_ListDocuments(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.kra", "a.kra", "notes.txt", ".hidden.kra"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".batchman"), 0o700))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "subdir"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "subdir", "nested.kra"), []byte("x"), 0o644))

	lister := NewLister(".kra")
	docs, err := lister.ListDocuments(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, docs, 2)
	assert.Equal(t, "a.kra", docs[0].Name)
	assert.Equal(t, "b.kra", docs[1].Name)
	assert.Equal(t, filepath.Join(dir, "a.kra"), docs[0].Path)
	assert.False(t, docs[0].ModTime.IsZero())
}

func TestLister_ExtensionCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "UPPER.KRA"), []byte("x"), 0o644))

	lister := NewLister("kra")
	docs, err := lister.ListDocuments(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "UPPER.KRA", docs[0].Name)
}

func TestLister_MissingDirectory(t *testing.T) {
	lister := NewLister(".kra")
	_, err := lister.ListDocuments(context.Background(), filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestLister_EmptyDirectory(t *testing.T) {
	lister := NewLister(".kra")
	docs, err := lister.ListDocuments(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, docs)
}
