package platform_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/knowaria/knowaria/pkg/knowariasdk"
)

func TestHealthEndpoints(t *testing.T) {
	baseURL, _ := setupPlatformContainer(t)
	client := knowariasdk.NewClient(baseURL)
	ctx := context.Background()

	live, err := client.Livez(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.NotEmpty(t, live.Version)
	require.NotEmpty(t, live.Uptime)

	ready, err := client.Readyz(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.NotNil(t, ready.Checks)
	require.Equal(t, "ok", ready.Checks.Database)
}
