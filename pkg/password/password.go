// Package password hashes and verifies user passwords with PBKDF2-SHA256.
//
// An encoded hash is the base64 standard encoding of a random salt followed
// by the derived key.
package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"

	"golang.org/x/crypto/pbkdf2"
)

const (
	SaltSize   = 16
	KeySize    = 32
	Iterations = 10000
)

// ErrEmptyPassword indicates Hash was called with an empty password.
var ErrEmptyPassword = errors.New("password cannot be empty")

// Hash derives a key from plain using a fresh random salt.
func Hash(plain string) (string, error) {
	if plain == "" {
		return "", ErrEmptyPassword
	}

	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	key := derive(plain, salt)

	encoded := make([]byte, 0, SaltSize+KeySize)
	encoded = append(encoded, salt...)
	encoded = append(encoded, key...)

	return base64.StdEncoding.EncodeToString(encoded), nil
}

// Verify reports whether plain matches the encoded hash. Malformed input
// yields false.
func Verify(plain, hash string) bool {
	if plain == "" || hash == "" {
		return false
	}

	decoded, err := base64.StdEncoding.DecodeString(hash)
	if err != nil || len(decoded) != SaltSize+KeySize {
		return false
	}

	salt := decoded[:SaltSize]
	stored := decoded[SaltSize:]

	return subtle.ConstantTimeCompare(derive(plain, salt), stored) == 1
}

// Hasher adapts the package functions to an injectable collaborator.
type Hasher struct{}

func (Hasher) Hash(plain string) (string, error) { return Hash(plain) }

func (Hasher) Verify(plain, hash string) bool { return Verify(plain, hash) }

func derive(plain string, salt []byte) []byte {
	return pbkdf2.Key([]byte(plain), salt, Iterations, KeySize, sha256.New)
}
