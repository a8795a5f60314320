package http

import (
	"net/http"
	"strconv"

	"github.com/knowaria/knowaria/internal/platform/domain"
	"github.com/knowaria/knowaria/internal/platform/service"
	"github.com/knowaria/knowaria/pkg/httpx"
	"github.com/knowaria/knowaria/pkg/knowariasdk"
	"github.com/knowaria/knowaria/pkg/slogx"
)

type ArticlesHandler struct {
	ArticleService *service.ArticleService
}

// HandleList serves the feed: published articles minus the ones the session
// user has blocked, optionally filtered by search, category, or authorship.
func (h *ArticlesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromContext(ctx)

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	filter := domain.ArticleFilter{
		Page:     page,
		Limit:    limit,
		Search:   q.Get("search"),
		Category: q.Get("category"),
		ViewerID: userID,
	}
	if q.Get("mine") == "true" {
		filter.AuthorID = userID
		filter.ViewerID = ""
	}

	result, err := h.ArticleService.ListArticles(ctx, filter)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list articles", "err", err)
		writeServiceError(w, err)
		return
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	httpx.WriteData(w, http.StatusOK, toSDKArticlePage(result, filter.Page, filter.Limit), "")
}

// HandleGet serves one article by id.
func (h *ArticlesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	article, err := h.ArticleService.GetArticle(ctx, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteData(w, http.StatusOK, toSDKArticle(article), "")
}

// HandleCreate stores a new article authored by the session user.
func (h *ArticlesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	userID := httpx.UserIDFromContext(ctx)

	var req knowariasdk.ArticleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	article, err := h.ArticleService.CreateArticle(ctx, userID, service.ArticleParams{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Image:    req.Image,
		Tags:     req.Tags,
		Publish:  req.Publish,
	})
	if err != nil {
		log.Warn("article create rejected", "user_id", userID, "err", err)
		writeServiceError(w, err)
		return
	}

	log.Info("article created", "article_id", article.ID, "user_id", userID)
	httpx.WriteData(w, http.StatusCreated, toSDKArticle(article), "Article created successfully")
}

// HandleUpdate replaces the authored fields of the session user's article.
func (h *ArticlesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	userID := httpx.UserIDFromContext(ctx)

	var req knowariasdk.ArticleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	article, err := h.ArticleService.UpdateArticle(ctx, r.PathValue("id"), userID, service.ArticleParams{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Image:    req.Image,
		Tags:     req.Tags,
		Publish:  req.Publish,
	})
	if err != nil {
		log.Warn("article update rejected", "article_id", r.PathValue("id"), "user_id", userID, "err", err)
		writeServiceError(w, err)
		return
	}

	httpx.WriteData(w, http.StatusOK, toSDKArticle(article), "Article updated successfully")
}

// HandleDelete removes the session user's article.
func (h *ArticlesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromContext(ctx)

	if err := h.ArticleService.DeleteArticle(ctx, r.PathValue("id"), userID); err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteData(w, http.StatusOK, map[string]any{}, "Article deleted successfully")
}

// HandleCategories serves the fixed category catalogue.
func (h *ArticlesHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	cats := h.ArticleService.Categories()
	out := make([]knowariasdk.Category, 0, len(cats))
	for _, c := range cats {
		out = append(out, knowariasdk.Category{ID: c.ID, Name: c.Name, Description: c.Description})
	}
	httpx.WriteData(w, http.StatusOK, out, "")
}
