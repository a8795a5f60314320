package regwizard

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

// Field names the wizard's inputs. Validation errors are keyed by field.
type Field string

const (
	FieldFirstName       Field = "firstName"
	FieldLastName        Field = "lastName"
	FieldPhone           Field = "phone"
	FieldEmail           Field = "email"
	FieldDOB             Field = "dob"
	FieldPassword        Field = "password"
	FieldConfirmPassword Field = "confirmPassword"
	FieldOTP             Field = "otp"
	FieldPreferences     Field = "articlePreferences"
)

var (
	nameRe  = regexp.MustCompile(`^[A-Za-z\s'-]+$`)
	phoneRe = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ValidateName checks a first or last name: trimmed length at least 2,
// letters, spaces, hyphens, and apostrophes only. Returns "" when valid.
func ValidateName(label, value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return label + " is required"
	}
	if len(trimmed) < 2 {
		return label + " must be at least 2 characters"
	}
	if !nameRe.MatchString(trimmed) {
		return label + " can only contain letters, spaces, hyphens, and apostrophes"
	}
	return ""
}

// ValidatePhone checks a phone number after stripping spaces, dashes, and
// parentheses: 10-15 digits with an optional leading +.
func ValidatePhone(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Phone number is required"
	}
	normalized := NormalizePhone(value)
	if !phoneRe.MatchString(normalized) {
		return "Enter a valid phone number (10-15 digits)"
	}
	return ""
}

// NormalizePhone strips the separators people type into phone fields.
func NormalizePhone(value string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')':
			return -1
		}
		return r
	}, value)
}

// ValidateEmail checks the address against a pragmatic pattern: something, an
// @, something, a dot, something. Full RFC 5322 is the server's problem.
func ValidateEmail(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Email is required"
	}
	if !emailRe.MatchString(value) {
		return "Enter a valid email address"
	}
	return ""
}

// ValidateDOB checks the date of birth parses as "2006-01-02", is not in the
// future, and implies an age between 13 and 120.
func ValidateDOB(value string) string {
	return validateDOBAt(value, time.Now())
}

func validateDOBAt(value string, now time.Time) string {
	if strings.TrimSpace(value) == "" {
		return "Date of birth is required"
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return "Enter a valid date"
	}
	if t.After(now) {
		return "Date of birth cannot be in the future"
	}

	age := now.Year() - t.Year()
	if now.Month() < t.Month() || (now.Month() == t.Month() && now.Day() < t.Day()) {
		age--
	}
	if age < 13 {
		return "You must be at least 13 years old"
	}
	if age > 120 {
		return "Enter a valid date of birth"
	}
	return ""
}

// ValidatePassword requires at least 8 characters with an uppercase letter, a
// lowercase letter, a digit, and a symbol.
func ValidatePassword(value string) string {
	if value == "" {
		return "Password is required"
	}
	if len(value) < 8 {
		return "Password must be at least 8 characters"
	}

	var upper, lower, digit, symbol bool
	for _, r := range value {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	switch {
	case !upper:
		return "Password must contain an uppercase letter"
	case !lower:
		return "Password must contain a lowercase letter"
	case !digit:
		return "Password must contain a number"
	case !symbol:
		return "Password must contain a symbol"
	}
	return ""
}

// ValidateConfirmPassword requires a non-empty value equal to the password.
func ValidateConfirmPassword(password, confirm string) string {
	if confirm == "" {
		return "Confirm your password"
	}
	if confirm != password {
		return "Passwords do not match"
	}
	return ""
}

// ValidatePreferences requires between 1 and 3 category selections.
func ValidatePreferences(prefs []string) string {
	if len(prefs) == 0 {
		return "Select at least one category"
	}
	if len(prefs) > MaxPreferences {
		return "Select at most 3 categories"
	}
	return ""
}
