package feed

import (
	"context"
	"errors"
	"sync"

	"github.com/knowaria/knowaria/pkg/knowariasdk"
)

var (
	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New("feed: closed")

	// ErrUnknownArticle is returned when a reaction targets an article that
	// is not in the local listing.
	ErrUnknownArticle = errors.New("feed: article not in feed")
)

// ArticleAPI is the server surface the feed reconciles against. Every
// reaction call returns the article's fresh authoritative state.
// *knowariasdk.Client satisfies it.
type ArticleAPI interface {
	ListArticles(ctx context.Context, opts knowariasdk.ListArticlesOptions) (*knowariasdk.ArticlePage, error)
	GetArticle(ctx context.Context, id string) (*knowariasdk.Article, error)
	LikeArticle(ctx context.Context, id string) (*knowariasdk.Article, error)
	DislikeArticle(ctx context.Context, id string) (*knowariasdk.Article, error)
	BlockArticle(ctx context.Context, id string) (*knowariasdk.Article, error)
	ViewArticle(ctx context.Context, id string) (*knowariasdk.Article, error)
}

// Severity classifies a user-facing message.
type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityError Severity = "error"
)

// Notifier surfaces rejected reactions to the user. Fire-and-forget.
type Notifier interface {
	ShowMessage(text string, severity Severity)
}

// NopNotifier discards every message.
type NopNotifier struct{}

func (NopNotifier) ShowMessage(string, Severity) {}

// Feed holds one user's local article listing.
type Feed struct {
	api      ArticleAPI
	userID   string
	notifier Notifier

	mu         sync.Mutex
	closed     bool
	articles   []knowariasdk.Article
	seq        map[string]uint64
	opts       knowariasdk.ListArticlesOptions
	page       int
	totalCount int
	totalPages int
}

// New builds an empty feed for the given user. Pass a nil notifier to
// discard messages. Call Load to populate it.
func New(api ArticleAPI, userID string, notifier Notifier) *Feed {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Feed{
		api:      api,
		userID:   userID,
		notifier: notifier,
		seq:      make(map[string]uint64),
	}
}

// Load fetches a page of the listing and replaces the local state wholesale.
// The options are remembered for Refresh.
func (f *Feed) Load(ctx context.Context, opts knowariasdk.ListArticlesOptions) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrClosed
	}
	f.opts = opts
	f.mu.Unlock()

	page, err := f.api.ListArticles(ctx, opts)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	f.articles = page.Articles
	f.page = page.Page
	f.totalCount = page.TotalCount
	f.totalPages = page.TotalPages
	// Fresh authoritative state: outstanding reaction tokens are void.
	f.seq = make(map[string]uint64)
	return nil
}

// Refresh re-runs the last Load with the same options.
func (f *Feed) Refresh(ctx context.Context) error {
	f.mu.Lock()
	opts := f.opts
	f.mu.Unlock()
	return f.Load(ctx, opts)
}

// Reload replaces one article's local state with the server's authoritative
// copy. Outstanding reaction resolutions for that article are voided.
func (f *Feed) Reload(ctx context.Context, articleID string) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrClosed
	}
	if f.find(articleID) < 0 {
		f.mu.Unlock()
		return ErrUnknownArticle
	}
	f.mu.Unlock()

	fresh, err := f.api.GetArticle(ctx, articleID)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	if i := f.find(articleID); i >= 0 {
		f.articles[i] = *fresh
		f.seq[articleID]++
	}
	return nil
}

// Close drops the feed. Outstanding reaction resolutions are discarded and
// every further operation fails with ErrClosed.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

// Articles returns a copy of the full local listing, blocked entries
// included.
func (f *Feed) Articles() []knowariasdk.Article {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]knowariasdk.Article, len(f.articles))
	for i, a := range f.articles {
		out[i] = cloneArticle(a)
	}
	return out
}

// Visible returns the listing with articles the user has blocked filtered
// out. Blocking hides at read time; the entry stays in the feed so the
// toggle can be undone.
func (f *Feed) Visible() []knowariasdk.Article {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]knowariasdk.Article, 0, len(f.articles))
	for _, a := range f.articles {
		if !contains(a.BlockedBy, f.userID) {
			out = append(out, cloneArticle(a))
		}
	}
	return out
}

// Get returns the local copy of one article.
func (f *Feed) Get(id string) (knowariasdk.Article, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i := f.find(id); i >= 0 {
		return cloneArticle(f.articles[i]), true
	}
	return knowariasdk.Article{}, false
}

// Page returns the pagination state of the last Load.
func (f *Feed) Page() (page, totalCount, totalPages int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.page, f.totalCount, f.totalPages
}

func (f *Feed) find(id string) int {
	for i := range f.articles {
		if f.articles[i].ID == id {
			return i
		}
	}
	return -1
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func remove(ids []string, id string) []string {
	out := ids[:0:len(ids)]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func toggle(ids []string, id string) []string {
	if contains(ids, id) {
		return remove(ids, id)
	}
	return append(ids, id)
}

func cloneArticle(a knowariasdk.Article) knowariasdk.Article {
	a.Tags = append([]string(nil), a.Tags...)
	a.Likes = append([]string(nil), a.Likes...)
	a.Dislikes = append([]string(nil), a.Dislikes...)
	a.BlockedBy = append([]string(nil), a.BlockedBy...)
	a.Views = append([]string(nil), a.Views...)
	return a
}
