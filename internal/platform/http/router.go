// Package http wires the platform's REST API: registration and sessions,
// email verification, the article feed with its reaction endpoints, and
// profile management. Every response uses the {data, message, success}
// envelope.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/knowaria/knowaria/internal/platform/service"
	"github.com/knowaria/knowaria/internal/platform/store"
	"github.com/knowaria/knowaria/pkg/httpx"
	"github.com/knowaria/knowaria/pkg/jwtx"
	"github.com/knowaria/knowaria/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier      jwtx.Verifier
	buildVersion  string
	secureCookies bool
	startTime     time.Time
	logger        *slog.Logger

	store               store.Store
	AuthService         *service.AuthService
	SignupService       *service.SignupService
	VerificationService *service.VerificationService
	ArticleService      *service.ArticleService
	ReactionService     *service.ReactionService
	ProfileService      *service.ProfileService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	secureCookies bool,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:           http.NewServeMux(),
		verifier:      verifier,
		buildVersion:  buildVersion,
		secureCookies: secureCookies,
		startTime:     time.Now(),
		store:         st,
		logger:        logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerVerification()
	r.registerArticles()
	r.registerProfile()
	r.registerSystem()
}

// ServeHTTP implements http.Handler and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// POST /v1/signup - strict rate limit by IP (account creation)
	signupHandler := &SignupHandler{
		SignupService: r.SignupService,
		AuthService:   r.AuthService,
		SecureCookies: r.secureCookies,
	}
	r.Mux.Handle("POST /v1/signup",
		httpx.Chain(signupHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /v1/login - strict rate limit by IP (credential guessing)
	loginHandler := &LoginHandler{AuthService: r.AuthService, SecureCookies: r.secureCookies}
	r.Mux.Handle("POST /v1/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /v1/logout - works with or without a valid session
	r.Mux.Handle("POST /v1/logout",
		httpx.Chain(&LogoutHandler{SecureCookies: r.secureCookies},
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// GET /v1/me - session required
	meHandler := &MeHandler{AuthService: r.AuthService}
	r.Mux.Handle("GET /v1/me",
		httpx.Chain(meHandler,
			httpx.SessionMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerVerification() {
	h := &VerifyHandler{VerificationService: r.VerificationService}

	// All three endpoints are unauthenticated (they run during signup) and
	// strictly rate limited by IP.
	r.Mux.Handle("POST /v1/verify/start",
		httpx.Chain(http.HandlerFunc(h.HandleStart),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/verify/confirm",
		httpx.Chain(http.HandlerFunc(h.HandleConfirm),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/verify/resend",
		httpx.Chain(http.HandlerFunc(h.HandleResend),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerArticles() {
	articles := &ArticlesHandler{ArticleService: r.ArticleService}
	reactions := &ReactionsHandler{ReactionService: r.ReactionService}

	secured := func(h http.HandlerFunc) http.Handler {
		return httpx.Chain(h,
			httpx.SessionMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("GET /v1/articles", secured(articles.HandleList))
	r.Mux.Handle("POST /v1/articles", secured(articles.HandleCreate))

	// Categories before the {id} routes so the literal segment wins. Public:
	// the registration form needs the catalogue before any session exists.
	r.Mux.Handle("GET /v1/articles/categories",
		httpx.Chain(http.HandlerFunc(articles.HandleCategories),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	r.Mux.Handle("GET /v1/articles/{id}", secured(articles.HandleGet))
	r.Mux.Handle("PUT /v1/articles/{id}", secured(articles.HandleUpdate))
	r.Mux.Handle("DELETE /v1/articles/{id}", secured(articles.HandleDelete))

	r.Mux.Handle("PATCH /v1/articles/{id}/like", secured(reactions.HandleLike))
	r.Mux.Handle("PATCH /v1/articles/{id}/dislike", secured(reactions.HandleDislike))
	r.Mux.Handle("PATCH /v1/articles/{id}/block", secured(reactions.HandleBlock))
	r.Mux.Handle("PATCH /v1/articles/{id}/view", secured(reactions.HandleView))
}

func (r *Router) registerProfile() {
	h := &ProfileHandler{ProfileService: r.ProfileService}

	secured := func(hf http.HandlerFunc) http.Handler {
		return httpx.Chain(hf,
			httpx.SessionMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("PUT /v1/profile", secured(h.HandleUpdate))
	r.Mux.Handle("POST /v1/profile/password", secured(h.HandlePassword))
	r.Mux.Handle("PATCH /v1/profile/preferences", secured(h.HandlePreferences))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}
