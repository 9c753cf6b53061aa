package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^[0-9]{8,15}$`)
)

const (
	// MinPasswordLength matches what the platform's register endpoint enforces.
	MinPasswordLength = 6
	// MaxKeywords is the keyword-tag cap on forum threads.
	MaxKeywords = 3
)

// ValidateEmail checks the address shape before any network call.
func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("email is required")
	}
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

// ValidatePhone accepts 8 to 15 digits, nothing else.
func ValidatePhone(phone string) error {
	if strings.TrimSpace(phone) == "" {
		return fmt.Errorf("phone number is required")
	}
	if !phonePattern.MatchString(phone) {
		return fmt.Errorf("phone number must be 8-15 digits")
	}
	return nil
}

// ValidatePassword enforces the minimum length.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password is required")
	}
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}

// Field pairs a form field name with its raw value.
type Field struct {
	Name  string
	Value string
}

// ValidateRequired reports the first empty field by name, in the order
// the fields appear on the form.
func ValidateRequired(fields ...Field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			return fmt.Errorf("%s is required", f.Name)
		}
	}
	return nil
}

// ParseKeywords splits a comma-separated keyword string, trims each
// entry, discards empties, and rejects more than MaxKeywords tags.
func ParseKeywords(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		if kw := strings.TrimSpace(p); kw != "" {
			keywords = append(keywords, kw)
		}
	}

	if len(keywords) > MaxKeywords {
		return nil, fmt.Errorf("you can only add up to %d keywords", MaxKeywords)
	}
	return keywords, nil
}
