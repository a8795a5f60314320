package http

import (
	"context"
	"net/http"

	"github.com/knowaria/knowaria/internal/platform/domain"
	"github.com/knowaria/knowaria/internal/platform/service"
	"github.com/knowaria/knowaria/pkg/httpx"
	"github.com/knowaria/knowaria/pkg/slogx"
)

type ReactionsHandler struct {
	ReactionService *service.ReactionService
}

// HandleLike toggles the session user's like and returns the fresh article,
// the source of truth the client reconciles its optimistic state against.
func (h *ReactionsHandler) HandleLike(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, h.ReactionService.ToggleLike)
}

// HandleDislike toggles the session user's dislike.
func (h *ReactionsHandler) HandleDislike(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, h.ReactionService.ToggleDislike)
}

// HandleBlock toggles whether the article is hidden from the session user's
// feed.
func (h *ReactionsHandler) HandleBlock(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, h.ReactionService.ToggleBlock)
}

// HandleView records a view. Repeat views are no-ops.
func (h *ReactionsHandler) HandleView(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, h.ReactionService.RecordView)
}

func (h *ReactionsHandler) apply(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, articleID, userID string) (domain.Article, error),
) {
	ctx := r.Context()
	articleID := r.PathValue("id")
	userID := httpx.UserIDFromContext(ctx)

	article, err := op(ctx, articleID, userID)
	if err != nil {
		slogx.FromContext(ctx).Warn("reaction rejected",
			"article_id", articleID, "user_id", userID, "err", err)
		writeServiceError(w, err)
		return
	}

	httpx.WriteData(w, http.StatusOK, toSDKArticle(article), "")
}
