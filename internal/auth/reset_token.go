package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// ResetTokenTTL is how long a password-reset token stays valid.
const ResetTokenTTL = 10 * time.Minute

// NewResetToken returns the raw token to send out of band and the SHA-256
// hex digest to store. Only the digest ever touches the database.
func NewResetToken() (raw string, hashed string, err error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}

	raw = hex.EncodeToString(buf)
	return raw, HashResetToken(raw), nil
}

func HashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// ResetTokenValid matches a caller-supplied raw token against the stored
// digest and its expiry.
func ResetTokenValid(raw, storedHash string, expire *time.Time, now time.Time) bool {
	if storedHash == "" || expire == nil {
		return false
	}
	if now.After(*expire) {
		return false
	}
	return HashResetToken(raw) == storedHash
}
