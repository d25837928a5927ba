package domain

import (
	"errors"
	"strings"
	"unicode/utf8"

	"heroacademy/pkg/hero"
)

var (
	ErrProfileNotFound  = errors.New("profile not found")
	ErrInvalidHeroName  = errors.New("hero name must be 1 to 40 characters")
	ErrInvalidGender    = errors.New("gender must be boy or girl")
	ErrInvalidAvatar    = errors.New("avatar must be between 1 and 10")
	ErrInvalidTimeLimit = errors.New("time limit must be 15 to 120 minutes in steps of 15")
	ErrInvalidPin       = errors.New("pin must be 4 digits")
	ErrPinNotSet        = errors.New("parent pin is not set")
	ErrPinMismatch      = errors.New("parent pin does not match")
	ErrPhotoTooLarge    = errors.New("photo exceeds 5 MB")
	ErrUnsupportedImage = errors.New("photo must be a jpeg, png, gif or webp image")
	ErrEventIDReused    = errors.New("completion event id belongs to another user")
)

const MaxHeroNameRunes = 40

// HeroUpdate is a validated change to the hero setup.
type HeroUpdate struct {
	Name   string
	Gender hero.Gender
	Avatar int
}

// Validate trims the name and checks every field.
func (u *HeroUpdate) Validate() error {
	u.Name = strings.TrimSpace(u.Name)
	n := utf8.RuneCountInString(u.Name)
	if n == 0 || n > MaxHeroNameRunes {
		return ErrInvalidHeroName
	}
	if !hero.ValidGender(u.Gender) {
		return ErrInvalidGender
	}
	if u.Avatar < 1 || u.Avatar > hero.MaxAvatar {
		return ErrInvalidAvatar
	}
	return nil
}

// ValidPin reports whether pin is exactly four ASCII digits.
func ValidPin(pin string) bool {
	if len(pin) != 4 {
		return false
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
