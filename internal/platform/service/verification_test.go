package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
)

// captureSender records codes instead of delivering them.
type captureSender struct {
	mu    sync.Mutex
	codes []string
}

func (c *captureSender) SendVerificationCode(_ context.Context, _ string, code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.codes = append(c.codes, code)
	return nil
}

func (c *captureSender) last() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.codes) == 0 {
		return ""
	}
	return c.codes[len(c.codes)-1]
}

func TestVerificationFlow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t)
	sender := &captureSender{}
	svc := &VerificationService{Store: s, Issuer: "Knowaria", Sender: sender}

	require.NoError(t, svc.StartVerification(ctx, "new@example.com"))

	code := sender.last()
	require.Len(t, code, 4)

	ok, err := svc.IsVerified(ctx, "new@example.com")
	require.NoError(t, err)
	require.False(t, ok)

	t.Run("wrong code rejected", func(t *testing.T) {
		wrong := "0000"
		if wrong == code {
			wrong = "0001"
		}
		require.ErrorIs(t, svc.ConfirmVerification(ctx, "new@example.com", wrong), ErrInvalidVerificationOTP)
	})

	require.NoError(t, svc.ConfirmVerification(ctx, "new@example.com", code))

	ok, err = svc.IsVerified(ctx, "new@example.com")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestStartVerificationRefusesRegisteredEmail(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t)
	svc := &VerificationService{Store: s, Issuer: "Knowaria", Sender: &captureSender{}}

	createTestUser(t, s, "taken@example.com", "+61400000003", "Engine#42x")

	require.ErrorIs(t, svc.StartVerification(ctx, "taken@example.com"), ErrEmailInUse)
}

func TestResendCooldown(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t)
	sender := &captureSender{}
	svc := &VerificationService{Store: s, Issuer: "Knowaria", Sender: sender}

	require.NoError(t, svc.StartVerification(ctx, "slow@example.com"))
	require.Len(t, sender.codes, 1)

	// Immediately resending trips the cooldown.
	require.ErrorIs(t, svc.ResendVerification(ctx, "slow@example.com"), ErrResendTooSoon)
	require.Len(t, sender.codes, 1)
}

func TestResendAfterCooldownDeliversValidCode(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t)
	sender := &captureSender{}
	svc := &VerificationService{Store: s, Issuer: "Knowaria", Sender: sender}

	require.NoError(t, svc.StartVerification(ctx, "again@example.com"))

	// Backdate the send so the cooldown has elapsed.
	v, err := s.Verifications().GetVerificationByEmail(ctx, "again@example.com")
	require.NoError(t, err)
	backdated := v
	backdated.LastSentAt = time.Now().Add(-time.Minute)
	require.NoError(t, s.Verifications().CreateVerification(ctx, backdated))

	require.NoError(t, svc.ResendVerification(ctx, "again@example.com"))
	require.Len(t, sender.codes, 2)
	require.NoError(t, svc.ConfirmVerification(ctx, "again@example.com", sender.last()))
}

func TestConfirmVerificationExpired(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t)
	sender := &captureSender{}
	svc := &VerificationService{Store: s, Issuer: "Knowaria", Sender: sender}

	require.NoError(t, svc.StartVerification(ctx, "late@example.com"))

	v, err := s.Verifications().GetVerificationByEmail(ctx, "late@example.com")
	require.NoError(t, err)
	expired := v
	expired.ExpiresAt = time.Now().Add(-time.Minute)
	require.NoError(t, s.Verifications().CreateVerification(ctx, expired))

	err = svc.ConfirmVerification(ctx, "late@example.com", sender.last())
	require.ErrorIs(t, err, ErrVerificationExpired)
}

func TestIssuedCodeMatchesSecret(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t)
	sender := &captureSender{}
	svc := &VerificationService{Store: s, Issuer: "Knowaria", Sender: sender}

	require.NoError(t, svc.StartVerification(ctx, "check@example.com"))

	v, err := s.Verifications().GetVerificationByEmail(ctx, "check@example.com")
	require.NoError(t, err)

	valid, err := totp.ValidateCustom(sender.last(), v.Secret, time.Now(), totp.ValidateOpts{
		Period:    300,
		Skew:      1,
		Digits:    otp.Digits(4),
		Algorithm: otp.AlgorithmSHA1,
	})
	require.NoError(t, err)
	require.True(t, valid)
}
