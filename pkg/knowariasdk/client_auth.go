package knowariasdk

import (
	"context"
	"net/http"
)

// Signup completes registration and logs the new account in: the response
// sets the session cookie alongside the created user.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*User, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/signup", req)
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeEnvelope(resp, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates with an email address or phone number plus password.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*User, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/login", req)
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeEnvelope(resp, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout clears the session cookie server-side.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/logout", nil)
	if err != nil {
		return err
	}
	return decodeEnvelope(resp, nil)
}

// Me returns the account behind the current session.
func (c *Client) Me(ctx context.Context) (*User, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/v1/me", nil)
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeEnvelope(resp, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
