package http

import (
	"net/http"

	"github.com/knowaria/knowaria/internal/platform/service"
	"github.com/knowaria/knowaria/pkg/httpx"
	"github.com/knowaria/knowaria/pkg/knowariasdk"
	"github.com/knowaria/knowaria/pkg/slogx"
)

type ProfileHandler struct {
	ProfileService *service.ProfileService
}

// HandleUpdate edits the session user's profile fields.
func (h *ProfileHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	userID := httpx.UserIDFromContext(ctx)

	var req knowariasdk.ProfileUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.ProfileService.UpdateProfile(ctx, userID, service.ProfileParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		DOB:       req.DOB,
	})
	if err != nil {
		log.Warn("profile update rejected", "user_id", userID, "err", err)
		writeServiceError(w, err)
		return
	}

	httpx.WriteData(w, http.StatusOK, toSDKUser(user), "Profile updated successfully")
}

// HandlePassword changes the session user's password.
func (h *ProfileHandler) HandlePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	userID := httpx.UserIDFromContext(ctx)

	var req knowariasdk.PasswordChangeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.ProfileService.ChangePassword(ctx, userID, req.CurrentPassword, req.NewPassword); err != nil {
		log.Warn("password change rejected", "user_id", userID, "err", err)
		writeServiceError(w, err)
		return
	}

	log.Info("password changed", "user_id", userID)
	httpx.WriteData(w, http.StatusOK, map[string]any{}, "Password changed successfully")
}

// HandlePreferences replaces the session user's article preferences.
func (h *ProfileHandler) HandlePreferences(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	userID := httpx.UserIDFromContext(ctx)

	var req knowariasdk.PreferencesRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.ProfileService.UpdatePreferences(ctx, userID, req.ArticlePreferences)
	if err != nil {
		log.Warn("preferences update rejected", "user_id", userID, "err", err)
		writeServiceError(w, err)
		return
	}

	httpx.WriteData(w, http.StatusOK, toSDKUser(user), "Preferences updated successfully")
}
