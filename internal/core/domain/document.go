package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Document represents an editable source file inside a tracked directory.
// Documents are discovered by the host's directory listing and identified
// by their path; content identity is carried separately as a Fingerprint.
type Document struct {
	// Path is the absolute path of the document.
	Path string

	// Name is the base file name, including extension.
	Name string

	// Size is the file size in bytes at listing time.
	Size int64

	// ModTime is the modification time at listing time.
	// Informational only: staleness decisions use content fingerprints,
	// so a touch without an edit never forces a re-export.
	ModTime time.Time
}

// Fingerprint is a comparable content-derived identity.
// Two reads of an unmodified file produce equal fingerprints; any
// modification that changes exported output changes the fingerprint
// with overwhelming probability.
type Fingerprint string

// FingerprintBytes computes the fingerprint of raw content (SHA-256, hex).
func FingerprintBytes(data []byte) Fingerprint {
	sum := sha256.Sum256(data)
	return Fingerprint(hex.EncodeToString(sum[:]))
}

// IsZero reports whether the fingerprint is unset.
func (f Fingerprint) IsZero() bool {
	return f == ""
}

// String returns the string representation.
func (f Fingerprint) String() string {
	return string(f)
}
