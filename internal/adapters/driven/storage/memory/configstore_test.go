package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("documents.extension", ".kra"))

	val, ok := store.Get("documents.extension")
	assert.True(t, ok)
	assert.Equal(t, ".kra", val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("host.render_command", "krita {source}"))
	require.NoError(t, store.Set("export.workers", 2))
	require.NoError(t, store.Set("export.optimize", true))
	require.NoError(t, store.Set("import.extensions", []string{".png"}))

	assert.Equal(t, "krita {source}", store.GetString("host.render_command"))
	assert.Equal(t, 2, store.GetInt("export.workers"))
	assert.True(t, store.GetBool("export.optimize"))
	assert.Equal(t, []string{".png"}, store.GetStringSlice("import.extensions"))

	assert.Equal(t, "", store.GetString("missing"))
	assert.Equal(t, 0, store.GetInt("missing"))
	assert.False(t, store.GetBool("missing"))
	assert.Nil(t, store.GetStringSlice("missing"))
}

func TestConfigStore_SaveAndLoadAreNoOps(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("export.workers", 2))
	require.NoError(t, store.Save())
	require.NoError(t, store.Load())

	assert.Equal(t, 2, store.GetInt("export.workers"))
}

func TestConfigStore_Path(t *testing.T) {
	assert.Equal(t, ":memory:", NewConfigStore().Path())
}
