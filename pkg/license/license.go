// Package license holds the shared rules for one-time access codes.
package license

import (
	"errors"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	ErrInvalidCode      = errors.New("license code not found")
	ErrAlreadyUsed      = errors.New("license code already used")
	ErrNotAuthenticated = errors.New("sign in to activate a license")
	ErrTransient        = errors.New("license activation conflicted, try again")
)

// Normalize trims and upper-cases a code the way it is keyed in the registry.
// Casers keep state, so one is built per call.
func Normalize(code string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(code))
}
