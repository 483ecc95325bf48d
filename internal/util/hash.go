package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashSHA256 returns the hex sha256 digest of value.
func HashSHA256(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

// HashParts hashes the parts joined with a 0x1f separator so that
// ("ab", "c") and ("a", "bc") produce different digests.
func HashParts(parts ...string) string {
	return HashSHA256(strings.Join(parts, "\x1f"))
}
