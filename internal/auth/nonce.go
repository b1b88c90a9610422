package auth

import "github.com/google/uuid"

// GenerateNonce returns a fresh single-use challenge for wallet login.
// UUIDv4 carries 122 bits of randomness, enough to make guessing infeasible.
func GenerateNonce() string {
	return uuid.NewString()
}
