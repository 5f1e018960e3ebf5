// Package password hashes and verifies employee passwords with scrypt.
//
// Encoded hashes have the form "<salt>:<key>" where both parts are lowercase hex.
// The hex salt string itself is fed to the KDF, so hashes written by earlier
// deployments of the site keep verifying.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

const (
	saltBytes = 16
	keyLen    = 64

	// scrypt cost parameters. Changing any of them invalidates every stored hash.
	costN = 1 << 14
	costR = 8
	costP = 1

	separator = ":"
)

// Hash returns a freshly salted scrypt hash of password.
func Hash(password string) string {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		panic(fmt.Sprintf("password: reading random salt: %v", err))
	}
	saltHex := hex.EncodeToString(salt)

	return saltHex + separator + hex.EncodeToString(derive(password, saltHex))
}

// Verify reports whether password matches the encoded hash. Malformed hashes
// never match.
func Verify(password, encoded string) bool {
	saltHex, keyHex, ok := split(encoded)
	if !ok {
		return false
	}

	stored, err := hex.DecodeString(keyHex)
	if err != nil || len(stored) != keyLen {
		return false
	}

	return subtle.ConstantTimeCompare(derive(password, saltHex), stored) == 1
}

// WellFormed reports whether encoded has the "<salt>:<key>" shape Verify expects.
func WellFormed(encoded string) bool {
	_, keyHex, ok := split(encoded)
	if !ok {
		return false
	}
	key, err := hex.DecodeString(keyHex)
	return err == nil && len(key) == keyLen
}

func split(encoded string) (salt, key string, ok bool) {
	parts := strings.Split(encoded, separator)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

func derive(password, salt string) []byte {
	key, err := scrypt.Key([]byte(password), []byte(salt), costN, costR, costP, keyLen)
	if err != nil {
		// Only reachable with invalid cost constants.
		panic(fmt.Sprintf("password: scrypt: %v", err))
	}
	return key
}
