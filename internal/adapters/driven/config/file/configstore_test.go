package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestNewConfigStore_Path(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot determine home directory")
	}

	store, err := NewConfigStore("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".batchman", "config.toml"), store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("documents.extension", ".kra"))

	val, ok := store.Get("documents.extension")
	assert.True(t, ok)
	assert.Equal(t, ".kra", val)

	_, ok = store.Get("nonexistent")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("host.render_command", "krita {source}"))
	require.NoError(t, store.Set("export.workers", 4))
	require.NoError(t, store.Set("export.optimize", true))

	assert.Equal(t, "krita {source}", store.GetString("host.render_command"))
	assert.Equal(t, 4, store.GetInt("export.workers"))
	assert.True(t, store.GetBool("export.optimize"))

	// Missing keys yield zero values.
	assert.Equal(t, "", store.GetString("missing"))
	assert.Equal(t, 0, store.GetInt("missing"))
	assert.False(t, store.GetBool("missing"))

	// Type mismatches yield zero values.
	assert.Equal(t, "", store.GetString("export.workers"))
	assert.Equal(t, 0, store.GetInt("host.render_command"))
	assert.False(t, store.GetBool("host.render_command"))
}

func TestConfigStore_GetStringSlice(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("import.extensions", []string{".png", ".jpg"}))
	assert.Equal(t, []string{".png", ".jpg"}, store.GetStringSlice("import.extensions"))
	assert.Nil(t, store.GetStringSlice("missing"))
}

func TestConfigStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()

	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store1.Set("documents.extension", ".ora"))
	require.NoError(t, store1.Set("export.workers", 3))

	// A second store over the same directory sees the saved values.
	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, ".ora", store2.GetString("documents.extension"))
	assert.Equal(t, 3, store2.GetInt("export.workers"))
}

func TestConfigStore_LoadFlattensNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(tmpDir, "config.toml"),
		[]byte("[host]\nrender_command = \"krita {source}\"\n"),
		0o600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "krita {source}", store.GetString("host.render_command"))
}

func TestConfigStore_LoadMalformedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(tmpDir, "config.toml"),
		[]byte("not [valid toml"),
		0o600))

	_, err := NewConfigStore(tmpDir)
	assert.Error(t, err)
}
