package services

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// passwordCost is the bcrypt work factor used for all stored credentials
const passwordCost = bcrypt.DefaultCost

// hashPassword turns a plaintext password into a storage-safe bcrypt hash.
// The salt is embedded in the output, so two hashes of the same input differ.
func hashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), passwordCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// verifyPassword reports whether plaintext matches the stored hash. An empty
// stored hash always fails: users created through an external identity
// provider have no local password, and that account separation is
// intentional. The guard also keeps bcrypt from being handed a value it
// would reject as malformed.
func verifyPassword(plaintext, storedHash string) bool {
	if storedHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(plaintext)) == nil
}
