package sqlite

import (
	"context"
	"database/sql"

	"github.com/knowaria/knowaria/internal/platform/domain"
	"github.com/knowaria/knowaria/internal/platform/store"
)

type articlesRepo struct {
	q dbtx
}

const articleColumns = `id, title, content, category, image, tags, read_time,
	author_id, published_at, is_published, created_at, updated_at`

func (r *articlesRepo) scanArticle(row interface{ Scan(...any) error }) (domain.Article, error) {
	var a domain.Article
	var tags string
	var publishedAt sql.NullTime
	err := row.Scan(
		&a.ID, &a.Title, &a.Content, &a.Category, &a.Image, &tags, &a.ReadTime,
		&a.AuthorID, &publishedAt, &a.IsPublished, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return domain.Article{}, mapNotFound(err)
	}
	a.Tags = decodeJSON(tags)
	if publishedAt.Valid {
		a.PublishedAt = publishedAt.Time
	}
	return a, nil
}

// loadSets populates the reaction and view id sets for one article.
func (r *articlesRepo) loadSets(ctx context.Context, a *domain.Article) error {
	a.Likes = []string{}
	a.Dislikes = []string{}
	a.BlockedBy = []string{}
	a.Views = []string{}

	rows, err := r.q.QueryContext(ctx,
		`SELECT user_id, kind FROM reactions WHERE article_id = ? ORDER BY created_at`, a.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var userID, kind string
		if err := rows.Scan(&userID, &kind); err != nil {
			return err
		}
		switch store.ReactionKind(kind) {
		case store.ReactionLike:
			a.Likes = append(a.Likes, userID)
		case store.ReactionDislike:
			a.Dislikes = append(a.Dislikes, userID)
		case store.ReactionBlock:
			a.BlockedBy = append(a.BlockedBy, userID)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	viewRows, err := r.q.QueryContext(ctx,
		`SELECT user_id FROM views WHERE article_id = ? ORDER BY created_at`, a.ID)
	if err != nil {
		return err
	}
	defer viewRows.Close()

	for viewRows.Next() {
		var userID string
		if err := viewRows.Scan(&userID); err != nil {
			return err
		}
		a.Views = append(a.Views, userID)
	}
	return viewRows.Err()
}

func (r *articlesRepo) GetArticleByID(ctx context.Context, id string) (domain.Article, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+articleColumns+` FROM articles WHERE id = ?`, id)
	a, err := r.scanArticle(row)
	if err != nil {
		return domain.Article{}, err
	}
	if err := r.loadSets(ctx, &a); err != nil {
		return domain.Article{}, err
	}
	return a, nil
}

func (r *articlesRepo) CreateArticle(ctx context.Context, a domain.Article) error {
	var publishedAt any
	if !a.PublishedAt.IsZero() {
		publishedAt = a.PublishedAt
	}

	_, err := r.q.ExecContext(ctx,
		`INSERT INTO articles (id, title, content, category, image, tags,
			read_time, author_id, published_at, is_published)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Title, a.Content, a.Category, a.Image, encodeJSON(a.Tags),
		a.ReadTime, a.AuthorID, publishedAt, a.IsPublished,
	)
	return mapConstraint(err)
}

func (r *articlesRepo) UpdateArticle(ctx context.Context, a domain.Article) error {
	var publishedAt any
	if !a.PublishedAt.IsZero() {
		publishedAt = a.PublishedAt
	}

	res, err := r.q.ExecContext(ctx,
		`UPDATE articles
		 SET title = ?, content = ?, category = ?, image = ?, tags = ?,
			read_time = ?, published_at = ?, is_published = ?,
			updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		a.Title, a.Content, a.Category, a.Image, encodeJSON(a.Tags),
		a.ReadTime, publishedAt, a.IsPublished, a.ID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *articlesRepo) DeleteArticle(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM articles WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *articlesRepo) ListArticles(ctx context.Context, f domain.ArticleFilter) (domain.ArticlePage, error) {
	where := `WHERE 1=1`
	var args []any

	if f.AuthorID != "" {
		// "my articles" view includes drafts
		where += ` AND author_id = ?`
		args = append(args, f.AuthorID)
	} else {
		where += ` AND is_published = 1`
	}

	if f.Category != "" {
		where += ` AND category = ?`
		args = append(args, f.Category)
	}

	if f.Search != "" {
		where += ` AND (title LIKE ? OR content LIKE ?)`
		pattern := "%" + f.Search + "%"
		args = append(args, pattern, pattern)
	}

	if f.ViewerID != "" {
		// Block is a read-time feed filter, not a deletion.
		where += ` AND id NOT IN (
			SELECT article_id FROM reactions WHERE user_id = ? AND kind = 'block')`
		args = append(args, f.ViewerID)
	}

	var total int
	if err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM articles `+where, args...,
	).Scan(&total); err != nil {
		return domain.ArticlePage{}, err
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 8
	}
	page := f.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	rows, err := r.q.QueryContext(ctx,
		`SELECT `+articleColumns+` FROM articles `+where+
			` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		append(args, limit, offset)...,
	)
	if err != nil {
		return domain.ArticlePage{}, err
	}
	defer rows.Close()

	articles := []domain.Article{}
	for rows.Next() {
		a, err := r.scanArticle(rows)
		if err != nil {
			return domain.ArticlePage{}, err
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return domain.ArticlePage{}, err
	}

	for i := range articles {
		if err := r.loadSets(ctx, &articles[i]); err != nil {
			return domain.ArticlePage{}, err
		}
	}

	totalPages := (total + limit - 1) / limit

	return domain.ArticlePage{
		Articles:   articles,
		TotalCount: total,
		TotalPages: totalPages,
	}, nil
}
