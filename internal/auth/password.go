package auth

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// Stored format is "saltHex:hashHex": pbkdf2-sha512 over the password with
// 100000 iterations and a 64-byte derived key. Existing rows use the same
// parameters, so hashes remain verifiable across releases.
const (
	passwordSaltBytes = 16
	passwordIters     = 100_000
	passwordKeyLen    = 64
)

// HashPassword derives a fresh salted hash for storage.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password is empty")
	}
	salt := make([]byte, passwordSaltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("rand: %w", err)
	}
	key := pbkdf2.Key([]byte(password), salt, passwordIters, passwordKeyLen, sha512.New)
	return hex.EncodeToString(salt) + ":" + hex.EncodeToString(key), nil
}

// VerifyPassword checks a password against a stored "salt:hash" value.
func VerifyPassword(stored, password string) bool {
	parts := strings.SplitN(stored, ":", 2)
	if len(parts) != 2 {
		return false
	}
	salt, err := hex.DecodeString(parts[0])
	if err != nil {
		return false
	}
	want, err := hex.DecodeString(parts[1])
	if err != nil {
		return false
	}
	got := pbkdf2.Key([]byte(password), salt, passwordIters, passwordKeyLen, sha512.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}
