package http

import (
	"net/http"

	"github.com/knowaria/knowaria/internal/platform/service"
	"github.com/knowaria/knowaria/pkg/httpx"
	"github.com/knowaria/knowaria/pkg/knowariasdk"
	"github.com/knowaria/knowaria/pkg/slogx"
)

type VerifyHandler struct {
	VerificationService *service.VerificationService
}

// HandleStart begins email verification and sends the first code.
func (h *VerifyHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req knowariasdk.VerifyStartRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.VerificationService.StartVerification(ctx, req.Email); err != nil {
		log.Warn("verification start rejected", "email", req.Email, "err", err)
		writeServiceError(w, err)
		return
	}

	httpx.WriteData(w, http.StatusOK, map[string]any{}, "Verification code sent")
}

// HandleConfirm checks the submitted 4-digit code.
func (h *VerifyHandler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req knowariasdk.VerifyConfirmRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.VerificationService.ConfirmVerification(ctx, req.Email, req.Code); err != nil {
		log.Warn("verification confirm rejected", "email", req.Email, "err", err)
		writeServiceError(w, err)
		return
	}

	httpx.WriteData(w, http.StatusOK, map[string]any{"verified": true}, "Email verified successfully")
}

// HandleResend sends a fresh code, subject to the server-side cooldown.
func (h *VerifyHandler) HandleResend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req knowariasdk.VerifyResendRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.VerificationService.ResendVerification(ctx, req.Email); err != nil {
		log.Warn("verification resend rejected", "email", req.Email, "err", err)
		writeServiceError(w, err)
		return
	}

	httpx.WriteData(w, http.StatusOK, map[string]any{}, "Verification code resent")
}
