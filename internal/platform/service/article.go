package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/knowaria/knowaria/internal/platform/domain"
	"github.com/knowaria/knowaria/internal/platform/store"
	"github.com/knowaria/knowaria/pkg/idx"
)

const (
	// wordsPerMinute drives the estimated read time shown on article cards.
	wordsPerMinute = 200

	defaultPageSize = 8
	maxPageSize     = 50
)

var (
	ErrArticleNotFound = errors.New("article not found")
	ErrInvalidArticle  = errors.New("article is missing required fields")
	ErrNotAuthor       = errors.New("only the author can modify this article")
)

type ArticleParams struct {
	Title    string
	Content  string
	Category string
	Image    string
	Tags     []string
	Publish  bool
}

type ArticleService struct {
	Store store.Store
}

// CreateArticle stores a new article owned by authorID. Read time is derived
// from the content length, publishing stamps published_at.
func (s *ArticleService) CreateArticle(ctx context.Context, authorID string, p ArticleParams) (domain.Article, error) {
	if err := validateArticle(p); err != nil {
		return domain.Article{}, err
	}

	a := domain.Article{
		ID:          idx.New().String(),
		Title:       strings.TrimSpace(p.Title),
		Content:     p.Content,
		Category:    p.Category,
		Image:       p.Image,
		Tags:        dedupeTags(p.Tags),
		ReadTime:    EstimateReadTime(p.Content),
		AuthorID:    authorID,
		IsPublished: p.Publish,
	}
	if p.Publish {
		a.PublishedAt = time.Now()
	}

	if err := s.Store.Articles().CreateArticle(ctx, a); err != nil {
		return domain.Article{}, fmt.Errorf("failed to create article: %w", err)
	}
	return s.GetArticle(ctx, a.ID)
}

// GetArticle returns one article with its reaction sets.
func (s *ArticleService) GetArticle(ctx context.Context, id string) (domain.Article, error) {
	a, err := s.Store.Articles().GetArticleByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Article{}, ErrArticleNotFound
	}
	if err != nil {
		return domain.Article{}, fmt.Errorf("failed to load article: %w", err)
	}
	return a, nil
}

// UpdateArticle replaces the authored fields. Only the author may update, and
// first-time publishing stamps published_at.
func (s *ArticleService) UpdateArticle(ctx context.Context, id, userID string, p ArticleParams) (domain.Article, error) {
	if err := validateArticle(p); err != nil {
		return domain.Article{}, err
	}

	a, err := s.GetArticle(ctx, id)
	if err != nil {
		return domain.Article{}, err
	}
	if a.AuthorID != userID {
		return domain.Article{}, ErrNotAuthor
	}

	a.Title = strings.TrimSpace(p.Title)
	a.Content = p.Content
	a.Category = p.Category
	a.Image = p.Image
	a.Tags = dedupeTags(p.Tags)
	a.ReadTime = EstimateReadTime(p.Content)
	if p.Publish && !a.IsPublished {
		a.PublishedAt = time.Now()
	}
	a.IsPublished = p.Publish

	if err := s.Store.Articles().UpdateArticle(ctx, a); err != nil {
		return domain.Article{}, fmt.Errorf("failed to update article: %w", err)
	}
	return s.GetArticle(ctx, id)
}

// DeleteArticle removes an article owned by userID.
func (s *ArticleService) DeleteArticle(ctx context.Context, id, userID string) error {
	a, err := s.GetArticle(ctx, id)
	if err != nil {
		return err
	}
	if a.AuthorID != userID {
		return ErrNotAuthor
	}
	if err := s.Store.Articles().DeleteArticle(ctx, id); err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	return nil
}

// ListArticles returns one feed page. Page and limit are clamped to sane
// values so pagination inputs can't be abused.
func (s *ArticleService) ListArticles(ctx context.Context, f domain.ArticleFilter) (domain.ArticlePage, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = defaultPageSize
	}
	if f.Limit > maxPageSize {
		f.Limit = maxPageSize
	}
	if f.Category != "" && !domain.ValidCategoryID(f.Category) {
		return domain.ArticlePage{Articles: []domain.Article{}}, nil
	}

	page, err := s.Store.Articles().ListArticles(ctx, f)
	if err != nil {
		return domain.ArticlePage{}, fmt.Errorf("failed to list articles: %w", err)
	}
	return page, nil
}

// Categories returns the fixed category catalogue.
func (s *ArticleService) Categories() []domain.Category {
	return domain.Categories
}

// EstimateReadTime returns the estimated minutes to read the content at 200
// words per minute, rounded up to half a minute.
func EstimateReadTime(content string) float64 {
	words := len(strings.Fields(content))
	if words == 0 {
		return 0.5
	}
	minutes := float64(words) / wordsPerMinute
	halves := int(minutes * 2)
	if minutes*2 > float64(halves) {
		halves++
	}
	if halves == 0 {
		halves = 1
	}
	return float64(halves) / 2
}

func validateArticle(p ArticleParams) error {
	if strings.TrimSpace(p.Title) == "" || strings.TrimSpace(p.Content) == "" {
		return ErrInvalidArticle
	}
	if !domain.ValidCategoryID(p.Category) {
		return ErrInvalidArticle
	}
	return nil
}

func dedupeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
