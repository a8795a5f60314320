package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/knowaria/knowaria/internal/platform/domain"
	"github.com/knowaria/knowaria/internal/platform/store"
	"github.com/knowaria/knowaria/pkg/cryptox"
	"github.com/knowaria/knowaria/pkg/jwtx"
)

var ErrInvalidCredentials = errors.New("invalid email/phone or password")

type AuthService struct {
	Store      store.Store
	Keypair    *jwtx.EdDSAKeypair
	SessionTTL time.Duration
}

// Login authenticates by email or phone and returns the user together with a
// signed session token. Lookup and verify failures collapse into one error so
// responses don't reveal which identifiers exist.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (domain.User, string, error) {
	user, err := s.Store.Users().GetUserByEmailOrPhone(ctx, normalizePhone(identifier))
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, "", ErrInvalidCredentials
	}
	if err != nil {
		return domain.User{}, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		return domain.User{}, "", ErrInvalidCredentials
	}

	token, err := s.issueSession(user)
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}

// IssueSession signs a fresh session token for an already-authenticated user,
// which is how signup logs the new account straight in.
func (s *AuthService) IssueSession(user domain.User) (string, error) {
	return s.issueSession(user)
}

// GetUserByID resolves the authenticated user behind a session.
func (s *AuthService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

func (s *AuthService) issueSession(user domain.User) (string, error) {
	ttl := s.SessionTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}
	claims := jwtx.NewSessionClaims(user.ID, user.Email, user.Name(), s.Keypair.Issuer(), ttl, time.Now())
	token, err := s.Keypair.Sign(claims)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, nil
}
