package auth

import (
	"crypto/subtle"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

const (
	bcryptCost        = 12
	minPasswordLength = 8
)

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// CheckPassword compares a password with its hash
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// AdminAccount is the single back-office login configured through the environment
type AdminAccount struct {
	Email        string
	PasswordHash string
}

// Authenticate checks email (case-insensitive) and password.
// An account without a password hash rejects every login.
func (a AdminAccount) Authenticate(email, password string) error {
	if a.Email == "" || a.PasswordHash == "" {
		return ErrInvalidCredentials
	}
	emailOK := subtle.ConstantTimeCompare(
		[]byte(strings.ToLower(strings.TrimSpace(email))),
		[]byte(strings.ToLower(a.Email)),
	) == 1
	passwordOK := CheckPassword(password, a.PasswordHash)
	if !emailOK || !passwordOK {
		return ErrInvalidCredentials
	}
	return nil
}
