package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base32"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

const (
	sessionTokenBytes = 20
	userIDBytes       = 15
)

var lowerBase32 = base32.StdEncoding.WithPadding(base32.NoPadding)

// GenerateSessionToken returns a fresh opaque session token: 20 random bytes
// encoded as lower-case base32 without padding. Only its hash is persisted.
func GenerateSessionToken() (string, error) {
	return randomBase32(sessionTokenBytes)
}

// GenerateUserID returns a random user identifier (15 bytes, lower-case base32).
func GenerateUserID() (string, error) {
	return randomBase32(userIDBytes)
}

// SessionIDFromToken derives the stored session id: hex(sha256(token)).
func SessionIDFromToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func randomBase32(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return strings.ToLower(lowerBase32.EncodeToString(buf)), nil
}
