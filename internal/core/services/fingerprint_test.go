package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier-tools/batchman/internal/core/domain"
)

func TestFingerprintFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.kra")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	fp, err := FingerprintFile(path)
	require.NoError(t, err)
	assert.Equal(t, domain.FingerprintBytes([]byte("hello")), fp)

	// Same content elsewhere hashes identically.
	other := filepath.Join(dir, "copy.kra")
	require.NoError(t, os.WriteFile(other, []byte("hello"), 0o644))
	fp2, err := FingerprintFile(other)
	require.NoError(t, err)
	assert.Equal(t, fp, fp2)

	// Different content does not.
	require.NoError(t, os.WriteFile(other, []byte("hello!"), 0o644))
	fp3, err := FingerprintFile(other)
	require.NoError(t, err)
	assert.NotEqual(t, fp, fp3)
}

func TestFingerprintFile_Missing(t *testing.T) {
	_, err := FingerprintFile(filepath.Join(t.TempDir(), "absent.kra"))
	assert.Error(t, err)
}
