package security

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPasscode hashes a group passcode with bcrypt
func HashPasscode(passcode string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPasscode reports whether a passcode matches its stored hash
func CheckPasscode(hash, passcode string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(passcode)) == nil
}
