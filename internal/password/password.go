package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrHash is returned when the hashing primitive rejects the input.
// It is distinct from a verification mismatch.
var ErrHash = errors.New("password hashing failed")

// Hash produces a salted bcrypt digest of the plaintext. The digest embeds
// the salt and cost, so two calls with the same input yield different
// digests and Verify needs no auxiliary state.
func Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHash, err)
	}
	return string(digest), nil
}

// Verify reports whether the plaintext matches the digest, using bcrypt's
// constant-time comparison.
func Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
