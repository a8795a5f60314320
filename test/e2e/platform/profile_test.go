package platform_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/knowaria/knowaria/pkg/knowariasdk"
)

func TestUpdateProfile(t *testing.T) {
	baseURL, container := setupPlatformContainer(t)
	client := knowariasdk.NewClient(baseURL)
	ctx := context.Background()

	registerUser(t, client, container, "profile@example.com", "+61412000030")

	updated, err := client.UpdateProfile(ctx, knowariasdk.ProfileUpdateRequest{
		FirstName: "Augusta",
		LastName:  "King",
		Phone:     "+61 412 000 031",
		DOB:       "1990-12-10",
	})
	require.NoError(t, err)
	require.Equal(t, "Augusta", updated.FirstName)
	require.Equal(t, "+61412000031", updated.Phone, "phone is stored normalized")
	require.Equal(t, "profile@example.com", updated.Email, "email never changes here")

	me, err := client.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "Augusta", me.FirstName)
}

func TestChangePassword(t *testing.T) {
	baseURL, container := setupPlatformContainer(t)
	client := knowariasdk.NewClient(baseURL)
	ctx := context.Background()

	registerUser(t, client, container, "passwd@example.com", "+61412000032")

	// The current password must match.
	err := client.ChangePassword(ctx, "NotThePassword1!", "Changed1!pass")
	var apiErr *knowariasdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 401, apiErr.StatusCode)

	require.NoError(t, client.ChangePassword(ctx, testPassword, "Changed1!pass"))

	// Only the new password logs in now.
	fresh := knowariasdk.NewClient(baseURL)
	_, err = fresh.Login(ctx, knowariasdk.LoginRequest{Identifier: "passwd@example.com", Password: testPassword})
	require.Error(t, err)
	_, err = fresh.Login(ctx, knowariasdk.LoginRequest{Identifier: "passwd@example.com", Password: "Changed1!pass"})
	require.NoError(t, err)
}

func TestUpdatePreferences(t *testing.T) {
	baseURL, container := setupPlatformContainer(t)
	client := knowariasdk.NewClient(baseURL)
	ctx := context.Background()

	registerUser(t, client, container, "prefs@example.com", "+61412000033")

	updated, err := client.UpdatePreferences(ctx, []string{"travel", "food", "sports"})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"travel", "food", "sports"}, updated.ArticlePreferences)

	// More than three picks is rejected before it reaches the store.
	_, err = client.UpdatePreferences(ctx, []string{"travel", "food", "sports", "tech"})
	var apiErr *knowariasdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 400, apiErr.StatusCode)
}
