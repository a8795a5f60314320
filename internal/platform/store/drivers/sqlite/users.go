package sqlite

import (
	"context"

	"github.com/knowaria/knowaria/internal/platform/domain"
)

type usersRepo struct {
	q dbtx
}

const userColumns = `id, first_name, last_name, phone, email, dob, password_hash,
	preferences, is_email_verified, created_at, updated_at`

func (r *usersRepo) scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var u domain.User
	var prefs string
	err := row.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Phone, &u.Email, &u.DOB,
		&u.PasswordHash, &prefs, &u.IsEmailVerified, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.ArticlePreferences = decodeJSON(prefs)
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return r.scanUser(row)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return r.scanUser(row)
}

func (r *usersRepo) GetUserByEmailOrPhone(ctx context.Context, identifier string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ? OR phone = ?`,
		identifier, identifier)
	return r.scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO users (id, first_name, last_name, phone, email, dob,
			password_hash, preferences, is_email_verified)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.FirstName, u.LastName, u.Phone, u.Email, u.DOB,
		u.PasswordHash, encodeJSON(u.ArticlePreferences), u.IsEmailVerified,
	)
	return mapConstraint(err)
}

func (r *usersRepo) UpdateProfile(ctx context.Context, userID, firstName, lastName, phone, dob string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE users SET first_name = ?, last_name = ?, phone = ?, dob = ?,
			updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		firstName, lastName, phone, dob, userID,
	)
	if err != nil {
		return mapConstraint(err)
	}
	return requireRowAffected(res)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID, newHash string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		newHash, userID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *usersRepo) UpdatePreferences(ctx context.Context, userID string, prefs []string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE users SET preferences = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		encodeJSON(prefs), userID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *usersRepo) DeleteStaleUnverified(ctx context.Context) error {
	// Unverified accounts cannot exist (signup requires a verified email),
	// but guard against partial writes from older schema versions.
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM users
		 WHERE is_email_verified = 0
		   AND created_at < datetime('now', '-7 days')`)
	return err
}
