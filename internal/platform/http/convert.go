package http

import (
	"errors"
	"net/http"

	"github.com/knowaria/knowaria/internal/platform/domain"
	"github.com/knowaria/knowaria/internal/platform/service"
	"github.com/knowaria/knowaria/pkg/httpx"
	"github.com/knowaria/knowaria/pkg/knowariasdk"
)

func toSDKUser(u domain.User) knowariasdk.User {
	prefs := u.ArticlePreferences
	if prefs == nil {
		prefs = []string{}
	}
	return knowariasdk.User{
		ID:                 u.ID,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		Phone:              u.Phone,
		Email:              u.Email,
		DOB:                u.DOB,
		ArticlePreferences: prefs,
		IsEmailVerified:    u.IsEmailVerified,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

func toSDKArticle(a domain.Article) knowariasdk.Article {
	tags := a.Tags
	if tags == nil {
		tags = []string{}
	}
	return knowariasdk.Article{
		ID:          a.ID,
		Title:       a.Title,
		Content:     a.Content,
		Category:    a.Category,
		Image:       a.Image,
		Tags:        tags,
		ReadTime:    a.ReadTime,
		AuthorID:    a.AuthorID,
		Likes:       a.Likes,
		Dislikes:    a.Dislikes,
		BlockedBy:   a.BlockedBy,
		Views:       a.Views,
		PublishedAt: a.PublishedAt,
		IsPublished: a.IsPublished,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func toSDKArticlePage(p domain.ArticlePage, page, limit int) knowariasdk.ArticlePage {
	articles := make([]knowariasdk.Article, 0, len(p.Articles))
	for _, a := range p.Articles {
		articles = append(articles, toSDKArticle(a))
	}
	return knowariasdk.ArticlePage{
		Articles:   articles,
		Page:       page,
		Limit:      limit,
		TotalCount: p.TotalCount,
		TotalPages: p.TotalPages,
	}
}

func writeBadRequest(w http.ResponseWriter, message string) {
	httpx.WriteError(w, http.StatusBadRequest, message)
}

// writeServiceError maps known service failures onto envelope responses and
// everything else onto a generic 500.
func writeServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := ""

	switch {
	case isOneOf(err,
		service.ErrInvalidName, service.ErrInvalidPhone, service.ErrInvalidDOB,
		service.ErrWeakPassword, service.ErrInvalidPreferences,
		service.ErrEmailNotVerified, service.ErrInvalidArticle):
		status = http.StatusBadRequest
		message = err.Error()
	case isOneOf(err, service.ErrInvalidCredentials, service.ErrWrongPassword,
		service.ErrInvalidVerificationOTP):
		status = http.StatusUnauthorized
		message = err.Error()
	case isOneOf(err, service.ErrNotAuthor):
		status = http.StatusForbidden
		message = err.Error()
	case isOneOf(err, service.ErrArticleNotFound, service.ErrVerificationNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case isOneOf(err, service.ErrAccountExists, service.ErrEmailInUse):
		status = http.StatusConflict
		message = err.Error()
	case isOneOf(err, service.ErrResendTooSoon):
		status = http.StatusTooManyRequests
		message = err.Error()
	case isOneOf(err, service.ErrVerificationExpired):
		status = http.StatusGone
		message = err.Error()
	}

	httpx.WriteError(w, status, message)
}

func isOneOf(err error, targets ...error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}
