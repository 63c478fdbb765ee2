package cryptox

import (
	"crypto/sha256"
	"encoding/hex"
)

// Truncated digest lengths, in hex characters.
const (
	emailHashLen = 16
	phoneHashLen = 12
)

// HashEmail returns a truncated unsalted SHA-256 digest of the email, used
// only for coarse identity correlation. Identical inputs always produce
// identical digests — a documented linkability tradeoff.
func HashEmail(email string) string {
	return truncatedDigest(email, emailHashLen)
}

// HashPhone returns a truncated unsalted SHA-256 digest of the phone number.
func HashPhone(phone string) string {
	return truncatedDigest(phone, phoneHashLen)
}

func truncatedDigest(s string, n int) string {
	if s == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:n]
}
