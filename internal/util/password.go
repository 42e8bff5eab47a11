package util

import (
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost trades hash strength against login latency; 8 keeps a login
// round under ~25ms on commodity hardware.
const bcryptCost = 8

// HashPassword returns the bcrypt hash stored in users.password_hash.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword reports whether password matches the stored hash. Callers
// treat a mismatch the same as an unknown account.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
