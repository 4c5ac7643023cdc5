// Package service defines the domain-facing contracts implemented in infra:
// credential hashing, authorization and account event publishing.
package service

// PasswordHasher turns plaintext passwords into the password_hash stored on a
// user record and verifies candidates against it.
type PasswordHasher interface {
	// Hash returns a salted hash; hashing the same password twice yields two
	// different strings. Passwords longer than the algorithm accepts fail with
	// ErrPasswordTooLong instead of being silently truncated.
	Hash(password string) (string, error)

	// Check reports whether password matches hash. Empty or malformed hashes
	// never match.
	Check(password, hash string) bool
}
