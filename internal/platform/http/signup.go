package http

import (
	"net/http"

	"github.com/knowaria/knowaria/internal/platform/service"
	"github.com/knowaria/knowaria/pkg/httpx"
	"github.com/knowaria/knowaria/pkg/knowariasdk"
	"github.com/knowaria/knowaria/pkg/slogx"
)

type SignupHandler struct {
	SignupService *service.SignupService
	AuthService   *service.AuthService
	SecureCookies bool
}

// ServeHTTP completes registration and logs the new account straight in by
// setting the session cookie on the response.
func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req knowariasdk.SignupRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.SignupService.Signup(ctx, service.SignupParams{
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Phone:              req.Phone,
		Email:              req.Email,
		DOB:                req.DOB,
		Password:           req.Password,
		ArticlePreferences: req.ArticlePreferences,
	})
	if err != nil {
		log.Warn("signup rejected", "email", req.Email, "err", err)
		writeServiceError(w, err)
		return
	}

	token, err := h.AuthService.IssueSession(user)
	if err != nil {
		log.Error("failed to issue session after signup", "user_id", user.ID, "err", err)
		knowariasdk.ErrServerError.WriteError(w)
		return
	}

	setSessionCookie(w, token, h.AuthService.SessionTTL, h.SecureCookies)
	log.Info("account created", "user_id", user.ID)
	httpx.WriteData(w, http.StatusCreated, toSDKUser(user), "Account created successfully")
}
