package boxes

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashPassword returns the lowercase hex encoded SHA-256 digest of the
// secret. This is the form a box password must be created with.
func HashPassword(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// passwordMatches compares the digest of the secret with the stored
// digest. Comparison is case sensitive, so a box created with an upper
// case digest can never be opened.
func passwordMatches(box *Box, secret string) bool {
	digest := HashPassword(secret)
	return subtle.ConstantTimeCompare([]byte(digest), []byte(box.HashedPassword)) == 1
}
