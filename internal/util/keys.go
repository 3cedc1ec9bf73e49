package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Checksum returns a short deterministic digest of s (first 8 hex chars of
// its sha256). Collision resistance only has to cover workspace paths that
// share a sanitized prefix.
func Checksum(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:8]
}

// Sanitize maps s onto the namespace-safe alphabet [a-zA-Z0-9_-],
// replacing every other byte with '-'.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_', c == '-':
			b.WriteByte(c)
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}
