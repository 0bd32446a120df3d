// Package validator provides input validation and sanitization functions
// for the recipe API request layer.
package validator

import (
	"errors"
	"net/mail"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Validation errors
var (
	ErrInvalidEmail     = errors.New("enter a valid email address")
	ErrInputTooLong     = errors.New("input exceeds maximum length")
	ErrEmptyInput       = errors.New("input cannot be empty")
	ErrPasswordTooShort = errors.New("password must be at least 5 characters")
	ErrInvalidFlag      = errors.New("flag must be an integer or a boolean")
	ErrInvalidIDList    = errors.New("ids must be a comma separated list of positive integers")
)

// Field limits
const (
	MinPasswordLength = 5
	MaxNameLength     = 255
	MaxEmailLength    = 254
)

// ValidateEmail validates email address format according to RFC 5322.
// Returns nil if valid, or an appropriate error.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)

	if email == "" {
		return ErrEmptyInput
	}

	// RFC 5321 specifies max email length of 254 characters
	if utf8.RuneCountInString(email) > MaxEmailLength {
		return ErrInputTooLong
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrInvalidEmail
	}

	return nil
}

// ValidatePassword enforces the minimum password length
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// ValidateName sanitizes a tag or ingredient name and rejects empty or
// over-long values. The sanitized name is returned.
func ValidateName(name string) (string, error) {
	name = SanitizeString(name, 0)
	if name == "" {
		return "", ErrEmptyInput
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return "", ErrInputTooLong
	}
	return name, nil
}

// ParseFlag interprets a query flag such as assigned_only. Integers are true
// when non-zero; boolean spellings accepted by strconv.ParseBool are also
// allowed. An empty value is false.
func ParseFlag(raw string) (bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n != 0, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, ErrInvalidFlag
	}
	return b, nil
}

// ParseIDList parses a comma separated id list such as "1,2,3".
// An empty value yields nil.
func ParseIDList(raw string) ([]uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64)
		if err != nil || n == 0 {
			return nil, ErrInvalidIDList
		}
		ids = append(ids, uint(n))
	}
	return ids, nil
}

// SanitizeString removes potentially dangerous characters and enforces length limits.
// Removes control characters and trims whitespace.
func SanitizeString(input string, maxLength int) string {
	// Remove control characters (ASCII 0-31 and 127)
	input = strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, input)

	input = strings.TrimSpace(input)

	if maxLength > 0 && utf8.RuneCountInString(input) > maxLength {
		runes := []rune(input)
		input = string(runes[:maxLength])
	}

	return input
}
