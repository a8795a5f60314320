package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/knowaria/knowaria/internal/platform/domain"
	"github.com/knowaria/knowaria/internal/platform/store"
	"github.com/knowaria/knowaria/pkg/idx"
	"github.com/knowaria/knowaria/pkg/slogx"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const (
	// Codes are 4 digits and stay valid for one full period, so a code read
	// from an email remains usable for up to 5 minutes.
	verificationCodeDigits = otp.Digits(4)
	verificationCodePeriod = 300 * time.Second

	// ResendCooldown is the minimum gap between two code deliveries for the
	// same email address.
	ResendCooldown = 30 * time.Second

	verificationTTL = 15 * time.Minute
)

var (
	ErrEmailInUse             = errors.New("email already registered")
	ErrVerificationNotFound   = errors.New("no pending verification for this email")
	ErrVerificationExpired    = errors.New("verification expired, request a new code")
	ErrInvalidVerificationOTP = errors.New("invalid verification code")
	ErrResendTooSoon          = errors.New("verification code was sent recently")
)

// CodeSender delivers a verification code to an email address. Production
// wires an email provider; everywhere else LogSender makes the code readable
// from the service logs.
type CodeSender interface {
	SendVerificationCode(ctx context.Context, email, code string) error
}

// LogSender writes the code to the structured log instead of sending mail.
type LogSender struct{}

func (LogSender) SendVerificationCode(ctx context.Context, email, code string) error {
	slogx.FromContext(ctx).Info("verification code issued",
		slog.String("email", email),
		slog.String("code", code),
	)
	return nil
}

type VerificationService struct {
	Store  store.Store
	Issuer string // label on generated secrets, e.g. "Knowaria"
	Sender CodeSender
}

// StartVerification begins email verification for a signup in progress: it
// mints a fresh secret, stores the pending record, and delivers the first
// code. Restarting replaces any earlier pending verification for the email.
func (s *VerificationService) StartVerification(ctx context.Context, email string) error {
	// Refuse emails that already belong to an account before sending mail.
	_, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err == nil {
		return ErrEmailInUse
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("failed to check email: %w", err)
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.Issuer,
		AccountName: email,
		Period:      uint(verificationCodePeriod.Seconds()),
		Digits:      verificationCodeDigits,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return fmt.Errorf("failed to generate verification secret: %w", err)
	}

	now := time.Now()
	v := domain.EmailVerification{
		ID:         idx.New().String(),
		Email:      email,
		Secret:     key.Secret(),
		LastSentAt: now,
		ExpiresAt:  now.Add(verificationTTL),
	}
	if err := s.Store.Verifications().CreateVerification(ctx, v); err != nil {
		return fmt.Errorf("failed to store verification: %w", err)
	}

	return s.sendCode(ctx, v)
}

// ConfirmVerification checks a submitted code against the pending
// verification and marks the email verified on success.
func (s *VerificationService) ConfirmVerification(ctx context.Context, email, code string) error {
	v, err := s.pending(ctx, email)
	if err != nil {
		return err
	}

	valid, err := totp.ValidateCustom(code, v.Secret, time.Now(), totp.ValidateOpts{
		Period:    uint(verificationCodePeriod.Seconds()),
		Skew:      1,
		Digits:    verificationCodeDigits,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		return fmt.Errorf("failed to validate code: %w", err)
	}
	if !valid {
		return ErrInvalidVerificationOTP
	}

	if err := s.Store.Verifications().MarkVerified(ctx, v.ID); err != nil {
		return fmt.Errorf("failed to mark verified: %w", err)
	}
	return nil
}

// ResendVerification delivers a fresh code for a pending verification,
// subject to the 30 second cooldown.
func (s *VerificationService) ResendVerification(ctx context.Context, email string) error {
	v, err := s.pending(ctx, email)
	if err != nil {
		return err
	}
	if v.Verified {
		// Nothing to resend once verified.
		return nil
	}
	if time.Since(v.LastSentAt) < ResendCooldown {
		return ErrResendTooSoon
	}
	return s.sendCode(ctx, v)
}

// IsVerified reports whether the email has a completed verification that
// signup may consume.
func (s *VerificationService) IsVerified(ctx context.Context, email string) (bool, error) {
	v, err := s.Store.Verifications().GetVerificationByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return v.Verified, nil
}

func (s *VerificationService) pending(ctx context.Context, email string) (domain.EmailVerification, error) {
	v, err := s.Store.Verifications().GetVerificationByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return domain.EmailVerification{}, ErrVerificationNotFound
	}
	if err != nil {
		return domain.EmailVerification{}, fmt.Errorf("failed to load verification: %w", err)
	}
	if !v.Verified && time.Now().After(v.ExpiresAt) {
		return domain.EmailVerification{}, ErrVerificationExpired
	}
	return v, nil
}

func (s *VerificationService) sendCode(ctx context.Context, v domain.EmailVerification) error {
	code, err := totp.GenerateCodeCustom(v.Secret, time.Now(), totp.ValidateOpts{
		Period:    uint(verificationCodePeriod.Seconds()),
		Skew:      1,
		Digits:    verificationCodeDigits,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		return fmt.Errorf("failed to derive verification code: %w", err)
	}
	if err := s.Sender.SendVerificationCode(ctx, v.Email, code); err != nil {
		return fmt.Errorf("failed to deliver verification code: %w", err)
	}
	if err := s.Store.Verifications().MarkVerificationSent(ctx, v.ID); err != nil {
		return fmt.Errorf("failed to record send: %w", err)
	}
	return nil
}
