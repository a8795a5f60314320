package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/knowaria/knowaria/internal/platform/domain"
	"github.com/knowaria/knowaria/internal/platform/store"
)

// ReactionService applies the toggle semantics for likes, dislikes, and
// blocks. Like and dislike are mutually exclusive: adding one removes the
// other in the same transaction, so a user id never appears in both sets.
type ReactionService struct {
	Store store.Store
}

// ToggleLike flips the user's like on the article. Adding a like clears any
// standing dislike.
func (s *ReactionService) ToggleLike(ctx context.Context, articleID, userID string) (domain.Article, error) {
	return s.toggle(ctx, articleID, userID, store.ReactionLike, store.ReactionDislike)
}

// ToggleDislike flips the user's dislike on the article. Adding a dislike
// clears any standing like.
func (s *ReactionService) ToggleDislike(ctx context.Context, articleID, userID string) (domain.Article, error) {
	return s.toggle(ctx, articleID, userID, store.ReactionDislike, store.ReactionLike)
}

// ToggleBlock flips whether the article is hidden from the user's feed.
// Blocking leaves likes and dislikes untouched.
func (s *ReactionService) ToggleBlock(ctx context.Context, articleID, userID string) (domain.Article, error) {
	return s.toggle(ctx, articleID, userID, store.ReactionBlock, "")
}

// RecordView marks the article as viewed by the user. Views only ever grow;
// repeat views are no-ops.
func (s *ReactionService) RecordView(ctx context.Context, articleID, userID string) (domain.Article, error) {
	if _, err := s.article(ctx, articleID); err != nil {
		return domain.Article{}, err
	}
	if err := s.Store.Reactions().AddView(ctx, articleID, userID); err != nil {
		return domain.Article{}, fmt.Errorf("failed to record view: %w", err)
	}
	return s.article(ctx, articleID)
}

func (s *ReactionService) toggle(ctx context.Context, articleID, userID string, kind, exclusive store.ReactionKind) (domain.Article, error) {
	if _, err := s.article(ctx, articleID); err != nil {
		return domain.Article{}, err
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		has, err := tx.Reactions().HasReaction(ctx, articleID, userID, kind)
		if err != nil {
			return fmt.Errorf("failed to check reaction: %w", err)
		}
		if has {
			return tx.Reactions().RemoveReaction(ctx, articleID, userID, kind)
		}
		if exclusive != "" {
			if err := tx.Reactions().RemoveReaction(ctx, articleID, userID, exclusive); err != nil {
				return fmt.Errorf("failed to clear opposing reaction: %w", err)
			}
		}
		return tx.Reactions().AddReaction(ctx, articleID, userID, kind)
	})
	if err != nil {
		return domain.Article{}, err
	}

	return s.article(ctx, articleID)
}

func (s *ReactionService) article(ctx context.Context, id string) (domain.Article, error) {
	a, err := s.Store.Articles().GetArticleByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Article{}, ErrArticleNotFound
	}
	if err != nil {
		return domain.Article{}, fmt.Errorf("failed to load article: %w", err)
	}
	return a, nil
}
