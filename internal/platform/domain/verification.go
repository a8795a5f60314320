package domain

import "time"

// EmailVerification tracks one pending email verification: a per-signup TOTP
// secret from which 4-digit codes are derived, plus resend bookkeeping.
type EmailVerification struct {
	ID         string
	Email      string
	Secret     string // TOTP secret, base32 encoded
	Verified   bool
	LastSentAt time.Time
	ExpiresAt  time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
