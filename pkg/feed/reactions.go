package feed

import (
	"context"
	"errors"

	"github.com/knowaria/knowaria/pkg/knowariasdk"
)

// Like toggles the user's like on an article. A standing dislike is cleared
// first so at most one of the two sets holds the user.
func (f *Feed) Like(ctx context.Context, articleID string) error {
	return f.react(ctx, articleID, f.api.LikeArticle, func(a *knowariasdk.Article) {
		a.Dislikes = remove(a.Dislikes, f.userID)
		a.Likes = toggle(a.Likes, f.userID)
	})
}

// Dislike toggles the user's dislike, clearing a standing like.
func (f *Feed) Dislike(ctx context.Context, articleID string) error {
	return f.react(ctx, articleID, f.api.DislikeArticle, func(a *knowariasdk.Article) {
		a.Likes = remove(a.Likes, f.userID)
		a.Dislikes = toggle(a.Dislikes, f.userID)
	})
}

// Block toggles whether the article is hidden from the user's feed. The
// article's other reaction sets are untouched.
func (f *Feed) Block(ctx context.Context, articleID string) error {
	return f.react(ctx, articleID, f.api.BlockArticle, func(a *knowariasdk.Article) {
		a.BlockedBy = toggle(a.BlockedBy, f.userID)
	})
}

// View records that the user opened the article. Add-only and idempotent;
// nothing ever removes a view.
func (f *Feed) View(ctx context.Context, articleID string) error {
	return f.react(ctx, articleID, f.api.ViewArticle, func(a *knowariasdk.Article) {
		if !contains(a.Views, f.userID) {
			a.Views = append(a.Views, f.userID)
		}
	})
}

// react applies the optimistic mutation, dispatches the server call, and
// reconciles the resolution. A resolution whose sequence token has been
// superseded by a later action on the same article is discarded, whether it
// succeeded or not; its optimistic state was already overwritten.
func (f *Feed) react(
	ctx context.Context,
	articleID string,
	call func(context.Context, string) (*knowariasdk.Article, error),
	mutate func(*knowariasdk.Article),
) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrClosed
	}
	i := f.find(articleID)
	if i < 0 {
		f.mu.Unlock()
		return ErrUnknownArticle
	}
	snapshot := cloneArticle(f.articles[i])
	mutate(&f.articles[i])
	f.seq[articleID]++
	token := f.seq[articleID]
	f.mu.Unlock()

	fresh, err := call(ctx, articleID)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed || f.seq[articleID] != token {
		return nil
	}
	i = f.find(articleID)
	if i < 0 {
		return nil
	}
	if err != nil {
		f.articles[i] = snapshot
		f.notifier.ShowMessage(rejectionMessage(err), SeverityError)
		return err
	}
	f.articles[i] = *fresh
	return nil
}

func rejectionMessage(err error) string {
	var apiErr *knowariasdk.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "Could not update the article, please try again"
}
