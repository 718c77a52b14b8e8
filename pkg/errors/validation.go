package errors

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseInt parses a decimal integer for the named field.
// The returned error names the field so the user can find the bad argument.
func ParseInt(field, s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, New(ErrCodeInvalidInput, "%s must be an integer, got %q", field, s)
	}
	return v, nil
}

// ValidateRange checks lo <= v <= hi for the named field.
// A negative hi means no upper bound.
func ValidateRange(field string, v, lo, hi int) error {
	if v < lo {
		return New(ErrCodeInvalidInput, "%s must be at least %d, got %d", field, lo, v)
	}
	if hi >= 0 && v > hi {
		return New(ErrCodeInvalidInput, "%s must be at most %d, got %d", field, hi, v)
	}
	return nil
}

// ValidateMultiple checks that v is a positive multiple of m.
func ValidateMultiple(field string, v, m int) error {
	if m <= 0 {
		return Internal("multiple of non-positive base %d", m)
	}
	if v%m != 0 {
		return New(ErrCodeInvalidPeriod, "%s %d is not a multiple of the rhythm period %d", field, v, m)
	}
	return nil
}

// ValidatePatternText performs a cheap safety check on pattern text before parsing.
//
// The validation rules are intentionally conservative:
//   - No empty text
//   - No control characters
//   - Maximum length of 1024 characters
//
// Grammar errors are reported by the notation parser.
func ValidatePatternText(text string) error {
	if strings.TrimSpace(text) == "" {
		return New(ErrCodeInvalidPattern, "pattern cannot be empty")
	}

	const maxPatternLength = 1024
	if len(text) > maxPatternLength {
		return New(ErrCodeInvalidPattern, "pattern too long (max %d characters)", maxPatternLength)
	}

	for _, r := range text {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPattern, "pattern contains invalid control characters")
		}
	}

	return nil
}

// ValidateAddr validates a listen address of the form host:port or :port.
func ValidateAddr(addr string) error {
	if addr == "" {
		return New(ErrCodeInvalidInput, "listen address cannot be empty")
	}
	i := strings.LastIndex(addr, ":")
	if i < 0 {
		return New(ErrCodeInvalidInput, "listen address %q must include a port", addr)
	}
	port, err := strconv.Atoi(addr[i+1:])
	if err != nil || port < 0 || port > 65535 {
		return New(ErrCodeInvalidInput, "listen address %q has an invalid port", addr)
	}
	return nil
}
