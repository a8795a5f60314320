package platform_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/knowaria/knowaria/pkg/knowariasdk"
)

func TestSignupFlow(t *testing.T) {
	baseURL, container := setupPlatformContainer(t)
	client := knowariasdk.NewClient(baseURL)
	ctx := context.Background()

	user := registerUser(t, client, container, "ada@example.com", "+61412000001")
	require.Equal(t, "Ada", user.FirstName)
	require.Equal(t, "ada@example.com", user.Email)
	require.True(t, user.IsEmailVerified)
	require.ElementsMatch(t, []string{"tech", "science"}, user.ArticlePreferences)

	// Signup left a session cookie behind.
	me, err := client.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, user.ID, me.ID)
}

func TestSignupRejectsWrongCode(t *testing.T) {
	baseURL, container := setupPlatformContainer(t)
	client := knowariasdk.NewClient(baseURL)
	ctx := context.Background()

	email := "wrongcode@example.com"
	require.NoError(t, client.StartVerification(ctx, email))

	code := fetchVerificationCode(t, container, email)
	wrong := "0000"
	if code == wrong {
		wrong = "0001"
	}

	err := client.ConfirmVerification(ctx, email, wrong)
	require.Error(t, err)
	var apiErr *knowariasdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 401, apiErr.StatusCode)

	// The right code still works afterwards.
	require.NoError(t, client.ConfirmVerification(ctx, email, code))
}

func TestSignupRequiresVerifiedEmail(t *testing.T) {
	baseURL, _ := setupPlatformContainer(t)
	client := knowariasdk.NewClient(baseURL)
	ctx := context.Background()

	_, err := client.Signup(ctx, knowariasdk.SignupRequest{
		FirstName:          "Ada",
		LastName:           "Lovelace",
		Phone:              "+61412000002",
		Email:              "unverified@example.com",
		DOB:                "1990-12-10",
		Password:           testPassword,
		ArticlePreferences: []string{"tech"},
	})
	require.Error(t, err)
	var apiErr *knowariasdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 400, apiErr.StatusCode)
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	baseURL, container := setupPlatformContainer(t)
	ctx := context.Background()

	first := knowariasdk.NewClient(baseURL)
	registerUser(t, first, container, "dup@example.com", "+61412000003")

	// The same address can no longer even start verification.
	second := knowariasdk.NewClient(baseURL)
	err := second.StartVerification(ctx, "dup@example.com")
	require.Error(t, err)
	var apiErr *knowariasdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 409, apiErr.StatusCode)
}

func TestResendCooldown(t *testing.T) {
	baseURL, _ := setupPlatformContainer(t)
	client := knowariasdk.NewClient(baseURL)
	ctx := context.Background()

	email := "resend@example.com"
	require.NoError(t, client.StartVerification(ctx, email))

	// A resend right after the initial send is inside the cooldown window.
	err := client.ResendVerification(ctx, email)
	require.Error(t, err)
	var apiErr *knowariasdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 429, apiErr.StatusCode)
}

func TestLoginAndLogout(t *testing.T) {
	baseURL, container := setupPlatformContainer(t)
	ctx := context.Background()

	signup := knowariasdk.NewClient(baseURL)
	registerUser(t, signup, container, "login@example.com", "+61412000004")

	// A fresh client has no session until it logs in.
	client := knowariasdk.NewClient(baseURL)
	_, err := client.Me(ctx)
	require.Error(t, err)

	user, err := client.Login(ctx, knowariasdk.LoginRequest{Identifier: "login@example.com", Password: testPassword})
	require.NoError(t, err)
	require.Equal(t, "login@example.com", user.Email)

	// Login works by phone too, spacing ignored.
	byPhone := knowariasdk.NewClient(baseURL)
	_, err = byPhone.Login(ctx, knowariasdk.LoginRequest{Identifier: "+61 412 000 004", Password: testPassword})
	require.NoError(t, err)

	_, err = client.Login(ctx, knowariasdk.LoginRequest{Identifier: "login@example.com", Password: "WrongPass1!"})
	require.Error(t, err)
	var apiErr *knowariasdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 401, apiErr.StatusCode)

	require.NoError(t, client.Logout(ctx))
	_, err = client.Me(ctx)
	require.Error(t, err, "session cookie is cleared on logout")
}
