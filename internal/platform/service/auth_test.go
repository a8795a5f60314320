package service

import (
	"context"
	"testing"
	"time"

	"github.com/knowaria/knowaria/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t)

	keypair, err := jwtx.NewEphemeralKeypair("test-key", "knowaria-test")
	require.NoError(t, err)

	svc := &AuthService{Store: s, Keypair: keypair, SessionTTL: time.Hour}

	user := createTestUser(t, s, "ada@example.com", "+61400000001", "Engine#42x")

	t.Run("by email", func(t *testing.T) {
		got, token, err := svc.Login(ctx, "ada@example.com", "Engine#42x")
		require.NoError(t, err)
		require.Equal(t, user.ID, got.ID)

		claims, err := keypair.Verify(token)
		require.NoError(t, err)
		require.Equal(t, user.ID, claims.Subject)
		require.Equal(t, "ada@example.com", claims.Email)
		require.Equal(t, "Ada Lovelace", claims.Name)
	})

	t.Run("by phone", func(t *testing.T) {
		got, _, err := svc.Login(ctx, "+61 400 000 001", "Engine#42x")
		require.NoError(t, err)
		require.Equal(t, user.ID, got.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "ada@example.com", "not-the-password")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown identifier", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "ghost@example.com", "Engine#42x")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestIssueSessionRoundTrips(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	keypair, err := jwtx.NewEphemeralKeypair("test-key", "knowaria-test")
	require.NoError(t, err)

	svc := &AuthService{Store: s, Keypair: keypair}
	user := createTestUser(t, s, "sess@example.com", "+61400000002", "Engine#42x")

	token, err := svc.IssueSession(user)
	require.NoError(t, err)

	claims, err := keypair.Verify(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.Subject)
	require.WithinDuration(t, time.Now().Add(jwtx.DefaultSessionTTL), claims.ExpiresAt.Time, time.Minute)
}
