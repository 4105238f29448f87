package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsImportable(t *testing.T) {
	assert.True(t, IsImportable("/pics/photo.png"))
	assert.True(t, IsImportable("/pics/PHOTO.JPG"))
	assert.True(t, IsImportable("scan.tiff"))
	assert.False(t, IsImportable("notes.txt"))
	assert.False(t, IsImportable("drawing.kra"))
	assert.False(t, IsImportable("extensionless"))
}

func TestImportResult_OK(t *testing.T) {
	assert.True(t, ImportResult{Source: "a.png", Dest: "a.kra"}.OK())
	assert.False(t, ImportResult{Source: "a.txt", Err: ErrUnsupportedFormat}.OK())
}
