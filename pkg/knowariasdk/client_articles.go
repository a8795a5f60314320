package knowariasdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ListArticlesOptions narrow a feed listing. Zero values mean "no filter";
// page defaults to 1 and limit to the server default.
type ListArticlesOptions struct {
	Page     int
	Limit    int
	Search   string
	Category string
	Mine     bool // only articles authored by the session user, drafts included
}

// ListArticles fetches one page of the feed. Articles the session user has
// blocked are excluded server-side.
func (c *Client) ListArticles(ctx context.Context, opts ListArticlesOptions) (*ArticlePage, error) {
	q := url.Values{}
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Search != "" {
		q.Set("search", opts.Search)
	}
	if opts.Category != "" {
		q.Set("category", opts.Category)
	}
	if opts.Mine {
		q.Set("mine", "true")
	}

	path := "/v1/articles"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	resp, err := c.doJSON(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var page ArticlePage
	if err := decodeEnvelope(resp, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetArticle fetches a single article by id.
func (c *Client) GetArticle(ctx context.Context, id string) (*Article, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/v1/articles/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var a Article
	if err := decodeEnvelope(resp, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateArticle publishes (or drafts) a new article by the session user.
func (c *Client) CreateArticle(ctx context.Context, req ArticleRequest) (*Article, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/articles", req)
	if err != nil {
		return nil, err
	}

	var a Article
	if err := decodeEnvelope(resp, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateArticle replaces the authored fields of an article the session user
// owns.
func (c *Client) UpdateArticle(ctx context.Context, id string, req ArticleRequest) (*Article, error) {
	resp, err := c.doJSON(ctx, http.MethodPut, "/v1/articles/"+url.PathEscape(id), req)
	if err != nil {
		return nil, err
	}

	var a Article
	if err := decodeEnvelope(resp, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// DeleteArticle removes an article the session user owns.
func (c *Client) DeleteArticle(ctx context.Context, id string) error {
	resp, err := c.doJSON(ctx, http.MethodDelete, "/v1/articles/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	return decodeEnvelope(resp, nil)
}

// LikeArticle toggles the session user's like and returns the fresh article.
func (c *Client) LikeArticle(ctx context.Context, id string) (*Article, error) {
	return c.react(ctx, id, "like")
}

// DislikeArticle toggles the session user's dislike.
func (c *Client) DislikeArticle(ctx context.Context, id string) (*Article, error) {
	return c.react(ctx, id, "dislike")
}

// BlockArticle toggles whether the article is hidden from the session user's
// feed.
func (c *Client) BlockArticle(ctx context.Context, id string) (*Article, error) {
	return c.react(ctx, id, "block")
}

// ViewArticle records that the session user viewed the article.
func (c *Client) ViewArticle(ctx context.Context, id string) (*Article, error) {
	return c.react(ctx, id, "view")
}

func (c *Client) react(ctx context.Context, id, action string) (*Article, error) {
	path := fmt.Sprintf("/v1/articles/%s/%s", url.PathEscape(id), action)
	resp, err := c.doJSON(ctx, http.MethodPatch, path, nil)
	if err != nil {
		return nil, err
	}

	var a Article
	if err := decodeEnvelope(resp, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Categories returns the fixed article category catalogue.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/v1/articles/categories", nil)
	if err != nil {
		return nil, err
	}

	var cats []Category
	if err := decodeEnvelope(resp, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}
