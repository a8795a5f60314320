package sqlite

import (
	"context"

	"github.com/knowaria/knowaria/internal/platform/store"
)

type reactionsRepo struct {
	q dbtx
}

func (r *reactionsRepo) HasReaction(ctx context.Context, articleID, userID string, kind store.ReactionKind) (bool, error) {
	var n int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reactions
		 WHERE article_id = ? AND user_id = ? AND kind = ?`,
		articleID, userID, string(kind),
	).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *reactionsRepo) AddReaction(ctx context.Context, articleID, userID string, kind store.ReactionKind) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO reactions (article_id, user_id, kind) VALUES (?, ?, ?)`,
		articleID, userID, string(kind),
	)
	return mapConstraint(err)
}

func (r *reactionsRepo) RemoveReaction(ctx context.Context, articleID, userID string, kind store.ReactionKind) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM reactions
		 WHERE article_id = ? AND user_id = ? AND kind = ?`,
		articleID, userID, string(kind),
	)
	return err
}

// AddView records a view once per user, further views are no-ops.
func (r *reactionsRepo) AddView(ctx context.Context, articleID, userID string) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT OR IGNORE INTO views (article_id, user_id) VALUES (?, ?)`,
		articleID, userID,
	)
	return err
}
