package domain

import (
	"slices"
	"time"
)

// Article is the canonical article shape: reactions are sets of user ids, a
// user id appears in at most one of Likes/Dislikes at any time.
type Article struct {
	ID          string
	Title       string
	Content     string
	Category    string
	Image       string
	Tags        []string // ordered, no duplicates
	ReadTime    float64  // minutes, may be fractional
	AuthorID    string
	Likes       []string
	Dislikes    []string
	BlockedBy   []string
	Views       []string
	PublishedAt time.Time
	IsPublished bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LikedBy reports whether the user currently likes the article.
func (a Article) LikedBy(userID string) bool { return slices.Contains(a.Likes, userID) }

// DislikedBy reports whether the user currently dislikes the article.
func (a Article) DislikedBy(userID string) bool { return slices.Contains(a.Dislikes, userID) }

// BlockedFor reports whether the user has blocked the article from their feed.
func (a Article) BlockedFor(userID string) bool { return slices.Contains(a.BlockedBy, userID) }

// ViewedBy reports whether the user has viewed the article.
func (a Article) ViewedBy(userID string) bool { return slices.Contains(a.Views, userID) }

// ArticleFilter narrows article listings.
type ArticleFilter struct {
	Page     int
	Limit    int
	Search   string
	Category string
	AuthorID string // restrict to a single author ("my articles")
	ViewerID string // excludes articles this user blocked
}

// ArticlePage is one page of a listing.
type ArticlePage struct {
	Articles   []Article
	TotalCount int
	TotalPages int
}
