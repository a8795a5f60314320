package httpx

import (
	"context"
	"net/http"

	"github.com/knowaria/knowaria/pkg/jwtx"
	"github.com/knowaria/knowaria/pkg/slogx"
)

// SessionCookieName is the cookie the platform sets at login and reads on
// every authenticated request.
const SessionCookieName = "knowaria_session"

// SessionMiddleware authenticates requests by verifying the session cookie.
// Unauthenticated requests get a 401 envelope.
func SessionMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				WriteError(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			claims, err := v.Verify(cookie.Value)
			if err != nil {
				log.Warn("session verify failed", "err", err)
				WriteError(w, http.StatusUnauthorized, "Session is invalid or expired")
				return
			}

			ctx = context.WithValue(ctx, CtxKeyUserID, claims.Subject)
			ctx = context.WithValue(ctx, CtxKeyClaims, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
