// Package crypto implements server-side password hashing and verification.
package crypto

import "golang.org/x/crypto/bcrypt"

// bcryptCost is the fixed work factor for password hashing.
const bcryptCost = 10

// HashPassword returns a bcrypt hash of password. The salt is random per
// call, so two hashes of the same password never compare equal.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// VerifyPassword verifies password against a stored bcrypt hash. The
// comparison is constant-time inside bcrypt; a malformed hash is treated as a
// plain mismatch, never an error.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
