package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("secret1", MinBcryptCost)
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotContains(t, hash, "secret1", "digest must not embed the plaintext")

	assert.True(t, VerifyPassword(hash, "secret1"))
}

// Verification must accept exactly the original password and reject
// every single-character mutation of it.
func TestVerifyPasswordRejectsMutations(t *testing.T) {
	const password = "secret1"
	hash, err := HashPassword(password, MinBcryptCost)
	require.NoError(t, err)

	for i := 0; i < len(password); i++ {
		mutated := []byte(password)
		mutated[i] ^= 0x01 // flip one bit of one character
		assert.False(t, VerifyPassword(hash, string(mutated)),
			"mutation at position %d must not verify", i)
	}

	assert.False(t, VerifyPassword(hash, ""))
	assert.False(t, VerifyPassword(hash, password+"x"))
	assert.False(t, VerifyPassword(hash, password[:len(password)-1]))
}

func TestVerifyPasswordMalformedDigest(t *testing.T) {
	// Never panics or errors out to the caller, just false.
	assert.False(t, VerifyPassword("not-a-bcrypt-digest", "secret1"))
	assert.False(t, VerifyPassword("", "secret1"))
}

func TestHashPasswordClampsCost(t *testing.T) {
	// A cost below the window must still produce a digest at the
	// minimum cost, not a cheap one.
	hash, err := HashPassword("secret1", 1)
	require.NoError(t, err)
	assert.Contains(t, hash, "$10$", "cost must be clamped up to %d", MinBcryptCost)
	assert.True(t, VerifyPassword(hash, "secret1"))
}

func TestNewSessionTokenOpaqueAndUnique(t *testing.T) {
	a := NewSessionToken()
	b := NewSessionToken()
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 64, "two uuids, hex, dashes stripped")
}
