package knowariasdk

import (
	"context"
	"net/http"
)

// StartVerification begins email verification for a signup in progress. The
// server emails (or in dev, logs) a 4-digit code.
func (c *Client) StartVerification(ctx context.Context, email string) error {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/verify/start", VerifyStartRequest{Email: email})
	if err != nil {
		return err
	}
	return decodeEnvelope(resp, nil)
}

// ConfirmVerification submits the 4-digit code the user received.
func (c *Client) ConfirmVerification(ctx context.Context, email, code string) error {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/verify/confirm", VerifyConfirmRequest{Email: email, Code: code})
	if err != nil {
		return err
	}
	return decodeEnvelope(resp, nil)
}

// ResendVerification requests a fresh code. The server enforces a 30 second
// cooldown between sends.
func (c *Client) ResendVerification(ctx context.Context, email string) error {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/verify/resend", VerifyResendRequest{Email: email})
	if err != nil {
		return err
	}
	return decodeEnvelope(resp, nil)
}
