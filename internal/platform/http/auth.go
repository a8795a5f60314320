package http

import (
	"net/http"

	"github.com/knowaria/knowaria/internal/platform/service"
	"github.com/knowaria/knowaria/pkg/httpx"
	"github.com/knowaria/knowaria/pkg/knowariasdk"
	"github.com/knowaria/knowaria/pkg/slogx"
)

type LoginHandler struct {
	AuthService   *service.AuthService
	SecureCookies bool
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req knowariasdk.LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, token, err := h.AuthService.Login(ctx, req.Identifier, req.Password)
	if err != nil {
		log.Warn("login failed", "err", err)
		writeServiceError(w, err)
		return
	}

	setSessionCookie(w, token, h.AuthService.SessionTTL, h.SecureCookies)
	log.Info("login succeeded", "user_id", user.ID)
	httpx.WriteData(w, http.StatusOK, toSDKUser(user), "Logged in successfully")
}

type LogoutHandler struct {
	SecureCookies bool
}

func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w, h.SecureCookies)
	httpx.WriteData(w, http.StatusOK, map[string]any{}, "Logged out successfully")
}

type MeHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP returns the account behind the verified session cookie.
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		knowariasdk.ErrUnauthorized.WriteError(w)
		return
	}

	user, err := h.AuthService.GetUserByID(ctx, userID)
	if err != nil {
		log.Warn("failed to load session user", "user_id", userID, "err", err)
		knowariasdk.ErrUnauthorized.WriteError(w)
		return
	}

	httpx.WriteData(w, http.StatusOK, toSDKUser(user), "")
}
