package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/knowaria/knowaria/internal/platform/domain"
	"github.com/knowaria/knowaria/internal/platform/store"
	"github.com/knowaria/knowaria/pkg/cryptox"
	"github.com/knowaria/knowaria/pkg/idx"
)

const (
	minSignupAge = 13
	maxSignupAge = 120

	minPreferences = 1
	maxPreferences = 3
)

var (
	ErrEmailNotVerified   = errors.New("email is not verified")
	ErrAccountExists      = errors.New("an account with this email or phone already exists")
	ErrInvalidName        = errors.New("name must be at least 2 letters")
	ErrInvalidPhone       = errors.New("phone number must be 10-15 digits")
	ErrInvalidDOB         = errors.New("date of birth is invalid")
	ErrWeakPassword       = errors.New("password does not meet strength requirements")
	ErrInvalidPreferences = errors.New("select between 1 and 3 article categories")
)

var (
	nameRe  = regexp.MustCompile(`^[A-Za-z\s'-]+$`)
	phoneRe = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
)

type SignupParams struct {
	FirstName          string
	LastName           string
	Phone              string
	Email              string
	DOB                string // "2006-01-02"
	Password           string
	ArticlePreferences []string
}

type SignupService struct {
	Store store.Store
}

// Signup creates a new account from a completed registration. The email must
// have passed verification first; the pending verification record is consumed
// atomically with the user insert.
func (s *SignupService) Signup(ctx context.Context, p SignupParams) (domain.User, error) {
	if err := validateSignup(p); err != nil {
		return domain.User{}, err
	}

	v, err := s.Store.Verifications().GetVerificationByEmail(ctx, p.Email)
	if errors.Is(err, store.ErrNotFound) || (err == nil && !v.Verified) {
		return domain.User{}, ErrEmailNotVerified
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to load verification: %w", err)
	}

	hash, err := cryptox.HashPassword(p.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.User{
		ID:                 idx.New().String(),
		FirstName:          strings.TrimSpace(p.FirstName),
		LastName:           strings.TrimSpace(p.LastName),
		Phone:              normalizePhone(p.Phone),
		Email:              p.Email,
		DOB:                p.DOB,
		PasswordHash:       hash,
		ArticlePreferences: p.ArticlePreferences,
		IsEmailVerified:    true,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrAccountExists
			}
			return fmt.Errorf("failed to create user: %w", err)
		}
		if err := tx.Verifications().DeleteVerification(ctx, v.ID); err != nil {
			return fmt.Errorf("failed to consume verification: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}

	return user, nil
}

func validateSignup(p SignupParams) error {
	if !validName(p.FirstName) || !validName(p.LastName) {
		return ErrInvalidName
	}
	if !ValidPhone(p.Phone) {
		return ErrInvalidPhone
	}
	if err := ValidateDOB(p.DOB); err != nil {
		return err
	}
	if !StrongPassword(p.Password) {
		return ErrWeakPassword
	}
	if len(p.ArticlePreferences) < minPreferences || len(p.ArticlePreferences) > maxPreferences {
		return ErrInvalidPreferences
	}
	for _, id := range p.ArticlePreferences {
		if !domain.ValidCategoryID(id) {
			return ErrInvalidPreferences
		}
	}
	return nil
}

func validName(name string) bool {
	name = strings.TrimSpace(name)
	return len(name) >= 2 && nameRe.MatchString(name)
}

// ValidPhone accepts 10-15 digits with an optional leading +, ignoring the
// spaces, dashes, and parentheses people type into phone fields.
func ValidPhone(phone string) bool {
	return phoneRe.MatchString(normalizePhone(phone))
}

func normalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')':
			return -1
		}
		return r
	}, phone)
}

// ValidateDOB checks the date parses, is not in the future, and implies an
// age between 13 and 120 years.
func ValidateDOB(dob string) error {
	t, err := time.Parse("2006-01-02", dob)
	if err != nil {
		return ErrInvalidDOB
	}
	now := time.Now()
	if t.After(now) {
		return ErrInvalidDOB
	}
	age := now.Year() - t.Year()
	if now.Month() < t.Month() || (now.Month() == t.Month() && now.Day() < t.Day()) {
		age--
	}
	if age < minSignupAge || age > maxSignupAge {
		return ErrInvalidDOB
	}
	return nil
}

// StrongPassword requires at least 8 characters with an uppercase letter, a
// lowercase letter, a digit, and a symbol.
func StrongPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var upper, lower, digit, symbol bool
	for _, r := range password {
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
	return upper && lower && digit && symbol
}
