// Package checksum computes content digests used for change detection and
// optimistic concurrency.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// FromETag strips the surrounding quotes of a standard ETag header value.
func FromETag(etag string) string {
	return strings.Trim(etag, `"`)
}

// ToETag wraps a digest in quotes for use as an ETag header value.
func ToETag(sum string) string {
	return `"` + sum + `"`
}
