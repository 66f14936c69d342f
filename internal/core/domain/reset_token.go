package domain

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

const (
	// ResetTokenBytes is the entropy of a reset token: 32 bytes, 64 hex chars.
	ResetTokenBytes = 32
	// ResetTokenTTL is how long a requested reset stays redeemable.
	ResetTokenTTL = 10 * time.Minute
)

// GenerateResetToken returns a random plaintext token and the digest to store.
// Only the digest is ever persisted.
func GenerateResetToken() (token, hash string, err error) {
	b := make([]byte, ResetTokenBytes)
	if _, err = rand.Read(b); err != nil {
		return "", "", fmt.Errorf("generate reset token: %w", err)
	}
	token = hex.EncodeToString(b)
	return token, HashResetToken(token), nil
}

// HashResetToken is the deterministic digest used for lookup. Tokens carry
// full entropy, so no salt is needed.
func HashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
