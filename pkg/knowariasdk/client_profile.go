package knowariasdk

import (
	"context"
	"net/http"
)

// UpdateProfile edits the session user's name, phone, and date of birth.
// Email is immutable.
func (c *Client) UpdateProfile(ctx context.Context, req ProfileUpdateRequest) (*User, error) {
	resp, err := c.doJSON(ctx, http.MethodPut, "/v1/profile", req)
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeEnvelope(resp, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword swaps the session user's password after the server checks
// the current one.
func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/profile/password", PasswordChangeRequest{
		CurrentPassword: currentPassword,
		NewPassword:     newPassword,
	})
	if err != nil {
		return err
	}
	return decodeEnvelope(resp, nil)
}

// UpdatePreferences replaces the session user's article category preferences.
func (c *Client) UpdatePreferences(ctx context.Context, preferences []string) (*User, error) {
	resp, err := c.doJSON(ctx, http.MethodPatch, "/v1/profile/preferences", PreferencesRequest{
		ArticlePreferences: preferences,
	})
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeEnvelope(resp, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
