package sqlite

import (
	"context"

	"github.com/knowaria/knowaria/internal/platform/domain"
)

type verificationsRepo struct {
	q dbtx
}

func (r *verificationsRepo) GetVerificationByEmail(ctx context.Context, email string) (domain.EmailVerification, error) {
	var v domain.EmailVerification
	err := r.q.QueryRowContext(ctx,
		`SELECT id, email, secret, verified, last_sent_at, expires_at, created_at, updated_at
		 FROM email_verifications WHERE email = ?`, email,
	).Scan(&v.ID, &v.Email, &v.Secret, &v.Verified, &v.LastSentAt, &v.ExpiresAt, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return domain.EmailVerification{}, mapNotFound(err)
	}
	return v, nil
}

func (r *verificationsRepo) CreateVerification(ctx context.Context, v domain.EmailVerification) error {
	// A fresh start discards any previous pending verification for the email.
	if _, err := r.q.ExecContext(ctx,
		`DELETE FROM email_verifications WHERE email = ?`, v.Email); err != nil {
		return err
	}

	_, err := r.q.ExecContext(ctx,
		`INSERT INTO email_verifications (id, email, secret, verified, last_sent_at, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		v.ID, v.Email, v.Secret, v.Verified, v.LastSentAt, v.ExpiresAt,
	)
	return mapConstraint(err)
}

func (r *verificationsRepo) MarkVerificationSent(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE email_verifications
		 SET last_sent_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *verificationsRepo) MarkVerified(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE email_verifications
		 SET verified = 1, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *verificationsRepo) DeleteVerification(ctx context.Context, id string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM email_verifications WHERE id = ?`, id)
	return err
}

func (r *verificationsRepo) DeleteExpiredVerifications(ctx context.Context) error {
	// Verified records survive until signup consumes them; only expired
	// unverified ones are purged.
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM email_verifications
		 WHERE verified = 0 AND expires_at < CURRENT_TIMESTAMP`)
	return err
}
