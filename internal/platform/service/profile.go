package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/knowaria/knowaria/internal/platform/domain"
	"github.com/knowaria/knowaria/internal/platform/store"
	"github.com/knowaria/knowaria/pkg/cryptox"
)

var ErrWrongPassword = errors.New("current password is incorrect")

type ProfileService struct {
	Store store.Store
}

type ProfileParams struct {
	FirstName string
	LastName  string
	Phone     string
	DOB       string
}

// UpdateProfile edits the mutable profile fields. Email is immutable, it is
// the verified identity the account was created with.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, p ProfileParams) (domain.User, error) {
	if !validName(p.FirstName) || !validName(p.LastName) {
		return domain.User{}, ErrInvalidName
	}
	if !ValidPhone(p.Phone) {
		return domain.User{}, ErrInvalidPhone
	}
	if err := ValidateDOB(p.DOB); err != nil {
		return domain.User{}, err
	}

	err := s.Store.Users().UpdateProfile(ctx, userID, p.FirstName, p.LastName, normalizePhone(p.Phone), p.DOB)
	if errors.Is(err, store.ErrAlreadyExists) {
		return domain.User{}, ErrAccountExists
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to update profile: %w", err)
	}
	return s.Store.Users().GetUserByID(ctx, userID)
}

// ChangePassword swaps the password after checking the current one and the
// strength rules for the replacement.
func (s *ProfileService) ChangePassword(ctx context.Context, userID, current, next string) error {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}

	if err := cryptox.VerifyPassword(current, user.PasswordHash); err != nil {
		return ErrWrongPassword
	}
	if !StrongPassword(next) {
		return ErrWeakPassword
	}

	hash, err := cryptox.HashPassword(next)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.Store.Users().UpdatePasswordHash(ctx, userID, hash); err != nil {
		return fmt.Errorf("failed to store password: %w", err)
	}
	return nil
}

// UpdatePreferences replaces the user's article category preferences.
func (s *ProfileService) UpdatePreferences(ctx context.Context, userID string, prefs []string) (domain.User, error) {
	if len(prefs) < minPreferences || len(prefs) > maxPreferences {
		return domain.User{}, ErrInvalidPreferences
	}
	for _, id := range prefs {
		if !domain.ValidCategoryID(id) {
			return domain.User{}, ErrInvalidPreferences
		}
	}

	if err := s.Store.Users().UpdatePreferences(ctx, userID, prefs); err != nil {
		return domain.User{}, fmt.Errorf("failed to update preferences: %w", err)
	}
	return s.Store.Users().GetUserByID(ctx, userID)
}
