// Package checksum fingerprints document content so writers and watchers
// can tell real changes from rewrites of identical bytes.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
)

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// File returns the digest of the file at path, or "" if it cannot be read.
// A missing file and an unreadable file fingerprint the same on purpose;
// callers only compare digests for equality.
func File(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return Sum(data)
}
