package domain

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	ProviderPassword = "password"
	ProviderGoogle   = "google"

	MinPasswordLength = 6
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUserAlreadyExists   = errors.New("email already in use")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidEmail        = errors.New("invalid email")
	ErrWeakPassword        = errors.New("password must be at least 6 characters")
	ErrProviderMismatch    = errors.New("account uses a different sign-in method")
	ErrUnsupportedProvider = errors.New("unsupported provider")
	ErrInvalidMode         = errors.New("mode must be popup or redirect")
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenRevoked        = errors.New("token revoked")
	ErrMissingDevice       = errors.New("device id is required")
)

// User is an account of the identity provider. A user signs in with a
// password, with Google, or with both once linked.
type User struct {
	ID            uuid.UUID
	Email         string
	DisplayName   string
	PhotoURL      string
	PasswordHash  string
	GoogleSubject string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Methods lists the sign-in methods enabled for the account.
func (u *User) Methods() []string {
	var m []string
	if u.PasswordHash != "" {
		m = append(m, ProviderPassword)
	}
	if u.GoogleSubject != "" {
		m = append(m, ProviderGoogle)
	}
	return m
}

// NormalizeEmail trims and lower-cases email and checks its shape.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}
	return email, nil
}

func ValidatePassword(password string) error {
	if len([]rune(password)) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}
