package store

import (
	"context"
	"errors"

	"github.com/knowaria/knowaria/internal/platform/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// ReactionKind is the stored reaction discriminator.
type ReactionKind string

const (
	ReactionLike    ReactionKind = "like"
	ReactionDislike ReactionKind = "dislike"
	ReactionBlock   ReactionKind = "block"
)

// Store is the root data access interface. Concrete drivers (sqlite)
// implement this. Sub-repositories keep concerns tidy and testable, and make
// it harder to accidentally nest transactions.
type Store interface {
	Users() Users
	Verifications() Verifications
	Articles() Articles
	Reactions() Reactions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction: rollback when fn errors,
	// commit otherwise. This is the recommended entry point for multi-step
	// mutations that must be atomic (e.g. reaction toggles).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store with Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during signup uniqueness checks and login.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// GetUserByEmailOrPhone resolves the login identifier, which may be
	// either an email address or a phone number.
	GetUserByEmailOrPhone(ctx context.Context, identifier string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateProfile mutates the editable profile fields and bumps updated_at.
	UpdateProfile(ctx context.Context, userID, firstName, lastName, phone, dob string) error

	// UpdatePasswordHash sets the password_hash (argon2) and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID, newHash string) error

	// UpdatePreferences replaces the article preference category ids.
	UpdatePreferences(ctx context.Context, userID string, prefs []string) error

	// DeleteStaleUnverified removes unverified accounts older than the cutoff.
	DeleteStaleUnverified(ctx context.Context) error
}

type Verifications interface {
	// GetVerificationByEmail returns the pending verification for an email.
	GetVerificationByEmail(ctx context.Context, email string) (domain.EmailVerification, error)

	// CreateVerification inserts a new verification record, replacing any
	// previous record for the same email.
	CreateVerification(ctx context.Context, v domain.EmailVerification) error

	// MarkVerificationSent updates last_sent_at after a (re)send.
	MarkVerificationSent(ctx context.Context, id string) error

	// MarkVerified flags the record as verified.
	MarkVerified(ctx context.Context, id string) error

	// DeleteVerification removes a record once signup has consumed it.
	DeleteVerification(ctx context.Context, id string) error

	// DeleteExpiredVerifications removes records past their expiry.
	DeleteExpiredVerifications(ctx context.Context) error
}

type Articles interface {
	// GetArticleByID returns an article with its reaction and view sets loaded.
	GetArticleByID(ctx context.Context, id string) (domain.Article, error)

	// CreateArticle inserts a new article (id is ULID).
	CreateArticle(ctx context.Context, a domain.Article) error

	// UpdateArticle mutates the authored fields and publication state.
	UpdateArticle(ctx context.Context, a domain.Article) error

	// DeleteArticle removes the article and cascades to reactions/views.
	DeleteArticle(ctx context.Context, id string) error

	// ListArticles returns one page of articles matching the filter, newest
	// first. Articles blocked by filter.ViewerID are excluded, as are
	// unpublished articles unless filter.AuthorID requests them.
	ListArticles(ctx context.Context, f domain.ArticleFilter) (domain.ArticlePage, error)
}

type Reactions interface {
	// HasReaction reports whether (articleID, userID, kind) is present.
	HasReaction(ctx context.Context, articleID, userID string, kind ReactionKind) (bool, error)

	// AddReaction inserts a reaction row. Adding an existing row is an error.
	AddReaction(ctx context.Context, articleID, userID string, kind ReactionKind) error

	// RemoveReaction deletes a reaction row if present.
	RemoveReaction(ctx context.Context, articleID, userID string, kind ReactionKind) error

	// AddView records a view; repeated views are ignored.
	AddView(ctx context.Context, articleID, userID string) error
}
