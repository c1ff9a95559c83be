package services

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/campusfound/campusfound/services/guard/domain"
)

// AuthService authenticates the shared guard account. The configured
// password is bcrypt-hashed once at startup so only the hash lives in
// process memory afterwards.
type AuthService struct {
	username     string
	passwordHash []byte
}

// NewAuthService hashes the configured password and returns the service.
func NewAuthService(username, password string) (*AuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash guard password: %w", err)
	}
	return &AuthService{username: username, passwordHash: hash}, nil
}

// Authenticate checks a username/password pair against the guard account.
// Both halves are always checked so response timing does not reveal whether
// the username matched. Returns ErrInvalidCredentials on any mismatch.
func (s *AuthService) Authenticate(username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(s.username), []byte(username)) == 1
	passErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password))
	if !userOK || passErr != nil {
		return domain.ErrInvalidCredentials
	}
	return nil
}

// Username returns the configured guard username.
func (s *AuthService) Username() string {
	return s.username
}
