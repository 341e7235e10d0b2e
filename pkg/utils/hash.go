package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashString lowercases and trims the input, then returns its hex-encoded
// SHA-256 digest
func HashString(input string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(input))))
	return hex.EncodeToString(sum[:])
}

// MaskMiddle keeps the first head and last tail characters of s and replaces
// the rest with four asterisks. Values too short to mask are fully hidden.
func MaskMiddle(s string, head, tail int) string {
	if len(s) <= head+tail {
		return strings.Repeat("*", len(s))
	}
	return s[:head] + "****" + s[len(s)-tail:]
}
