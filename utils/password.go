package utils

import (
	"fmt"

	"github.com/matthewhartstonge/argon2"
)

// HashPassword returns an encoded argon2id hash of password.
func HashPassword(password string) (string, error) {
	argon := argon2.DefaultConfig()
	encoded, err := argon.HashEncoded([]byte(password))
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(encoded), nil
}

// VerifyPassword reports whether password matches the encoded hash. A
// malformed hash is reported as a mismatch together with the error.
func VerifyPassword(encodedHash, password string) (bool, error) {
	if encodedHash == "" {
		return false, nil
	}
	ok, err := argon2.VerifyEncoded([]byte(password), []byte(encodedHash))
	if err != nil {
		return false, fmt.Errorf("verify password: %w", err)
	}
	return ok, nil
}
