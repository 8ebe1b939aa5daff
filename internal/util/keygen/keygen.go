// Package keygen provides utilities for generating credentials.
//
// Passwords are drawn from crypto/rand and always contain at least one
// character of each class, so they satisfy the database engine's
// complexity rules without a retry loop.
package keygen

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// DefaultPasswordLength is the length of generated master passwords.
const DefaultPasswordLength = 32

// Character classes. The symbol set omits '/', '@', '"' and space, which the
// database engine rejects in master passwords.
const (
	lowercase = "abcdefghijklmnopqrstuvwxyz"
	uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits    = "0123456789"
	symbols   = "!#$%^&*"
)

var classes = []string{lowercase, uppercase, digits, symbols}

// Generator produces a new password on each call.
type Generator func() (string, error)

// DefaultGenerator returns DefaultPasswordLength passwords.
func DefaultGenerator() (string, error) {
	return GeneratePassword(DefaultPasswordLength)
}

// GeneratePassword returns a random password of the given length containing
// at least one lowercase letter, uppercase letter, digit, and symbol.
func GeneratePassword(length int) (string, error) {
	if length < len(classes) {
		return "", fmt.Errorf("password length must be at least %d, got %d", len(classes), length)
	}

	all := strings.Join(classes, "")
	out := make([]byte, 0, length)
	for _, class := range classes {
		c, err := pick(class)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}
	for len(out) < length {
		c, err := pick(all)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}

	// Fisher-Yates so the guaranteed characters are not always first.
	for i := len(out) - 1; i > 0; i-- {
		j, err := randInt(i + 1)
		if err != nil {
			return "", err
		}
		out[i], out[j] = out[j], out[i]
	}
	return string(out), nil
}

func pick(alphabet string) (byte, error) {
	i, err := randInt(len(alphabet))
	if err != nil {
		return 0, err
	}
	return alphabet[i], nil
}

func randInt(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("failed to read random bytes: %w", err)
	}
	return int(v.Int64()), nil
}
