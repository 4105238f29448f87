package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "batchman", rootCmd.Use)
}

func TestResolveDir_Default(t *testing.T) {
	dir, err := resolveDir(nil)
	require.NoError(t, err)
	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, wd, dir)
}

func TestResolveDir_Explicit(t *testing.T) {
	tmp := t.TempDir()
	dir, err := resolveDir([]string{tmp})
	require.NoError(t, err)
	assert.Equal(t, tmp, dir)
}

func TestResolveDir_NotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := resolveDir([]string{file})
	assert.Error(t, err)
}

func TestResolveDir_Missing(t *testing.T) {
	_, err := resolveDir([]string{filepath.Join(t.TempDir(), "absent")})
	assert.Error(t, err)
}
