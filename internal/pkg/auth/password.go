package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the hashing cost used for all stored passwords.
const BcryptCost = 12

// dummyHash is compared against when a login targets a non-existent account,
// so the request costs the same as a real password check.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("escuela-dummy-password"), BcryptCost)

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword verifies a plaintext password against a stored hash.
func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// CheckDummyPassword burns the same bcrypt work as a real check and always
// fails. Called on logins for unknown emails to blunt timing probes.
func CheckDummyPassword(password string) bool {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
	return false
}
