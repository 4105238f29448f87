package services

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/atelier-tools/batchman/internal/core/domain"
)

// FingerprintFile computes the content fingerprint of a file by streaming
// it through SHA-256. Content hashing keeps incremental export correct:
// a touch without an edit never re-exports, and an edit within the same
// second never slips through.
func FingerprintFile(path string) (domain.Fingerprint, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return domain.Fingerprint(hex.EncodeToString(h.Sum(nil))), nil
}
