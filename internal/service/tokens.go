package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// temporaryTokenTTL bounds how long email verification and password reset
// tokens stay valid.
const temporaryTokenTTL = 3 * time.Minute

// generateTemporaryToken returns a random token to send to the user and the
// SHA-256 hex digest to store. Only the digest ever touches the database.
func generateTemporaryToken() (plain, hashed string, err error) {
	buf := make([]byte, 20)
	if _, err = rand.Read(buf); err != nil {
		return "", "", err
	}
	plain = hex.EncodeToString(buf)
	return plain, hashTemporaryToken(plain), nil
}

func hashTemporaryToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
