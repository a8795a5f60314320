package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/knowaria/knowaria/internal/platform/domain"
	"github.com/knowaria/knowaria/internal/platform/store"
	"github.com/knowaria/knowaria/internal/platform/store/drivers/sqlite"
	"github.com/knowaria/knowaria/pkg/cryptox"
	"github.com/knowaria/knowaria/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	cryptox.SetPepperPath(filepath.Join(t.TempDir(), "pepper"))

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func createTestUser(t *testing.T, s store.Store, email, phone, password string) domain.User {
	t.Helper()

	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)

	user := domain.User{
		ID:                 idx.New().String(),
		FirstName:          "Ada",
		LastName:           "Lovelace",
		Phone:              phone,
		Email:              email,
		DOB:                "1990-12-10",
		PasswordHash:       hash,
		ArticlePreferences: []string{"tech", "science"},
		IsEmailVerified:    true,
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), user))
	return user
}

func articleFilterFor(viewerID string) domain.ArticleFilter {
	return domain.ArticleFilter{Page: 1, Limit: 10, ViewerID: viewerID}
}

func createTestArticle(t *testing.T, s store.Store, authorID string) domain.Article {
	t.Helper()

	a := domain.Article{
		ID:          idx.New().String(),
		Title:       "On Analytical Engines",
		Content:     "Numbers can represent more than quantity.",
		Category:    "tech",
		Tags:        []string{"computing"},
		ReadTime:    0.5,
		AuthorID:    authorID,
		PublishedAt: time.Now(),
		IsPublished: true,
	}
	require.NoError(t, s.Articles().CreateArticle(context.Background(), a))
	return a
}
