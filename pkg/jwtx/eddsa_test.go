package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignAndVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	kp, err := NewEphemeralKeypair("session-key-001", "knowaria")
	require.NoError(t, err)

	claims := NewSessionClaims("user-1", "jane@example.com", "Jane Reader", "knowaria", time.Hour, time.Now())
	token, err := kp.Sign(claims)
	require.NoError(t, err)

	got, err := kp.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", got.Subject)
	require.Equal(t, "jane@example.com", got.Email)
	require.Equal(t, "Jane Reader", got.Name)
	require.NotEmpty(t, got.ID)
}

func TestVerifyRejectsForeignKey(t *testing.T) {
	t.Parallel()

	signer, err := NewEphemeralKeypair("key-a", "knowaria")
	require.NoError(t, err)
	other, err := NewEphemeralKeypair("key-a", "knowaria")
	require.NoError(t, err)

	token, err := signer.Sign(NewSessionClaims("u", "e@x.com", "E", "knowaria", time.Hour, time.Now()))
	require.NoError(t, err)

	_, err = other.Verify(token)
	require.Error(t, err)
}

func TestVerifyRejectsExpired(t *testing.T) {
	t.Parallel()

	kp, err := NewEphemeralKeypair("key", "knowaria")
	require.NoError(t, err)

	claims := NewSessionClaims("u", "e@x.com", "E", "knowaria", time.Minute, time.Now().Add(-time.Hour))
	token, err := kp.Sign(claims)
	require.NoError(t, err)

	_, err = kp.Verify(token)
	require.Error(t, err)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	t.Parallel()

	signer, err := NewEphemeralKeypair("key", "other-issuer")
	require.NoError(t, err)

	token, err := signer.Sign(NewSessionClaims("u", "e@x.com", "E", "not-knowaria", time.Hour, time.Now()))
	require.NoError(t, err)

	_, err = signer.Verify(token)
	require.ErrorIs(t, err, ErrIssuer)
}
