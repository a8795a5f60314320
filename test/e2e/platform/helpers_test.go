package platform_test

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/knowaria/knowaria/pkg/knowariasdk"
)

/*
 * Common constants and helper functions for platform end-to-end tests.
 * This includes container setup, log scraping for verification codes, and
 * full registration flows through the SDK.
 */

const (
	testImageName = "knowaria-platform-test:latest"

	testPassword = "Strong1!@pass"
)

// TestMain manages the test lifecycle, builds the Docker image once before
// all tests and cleans it up after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Knowaria platform Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Knowaria platform Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/knowaria/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// setupPlatformContainer starts the platform in a container with relaxed
// rate limits and returns the base URL plus the container for log access.
func setupPlatformContainer(t *testing.T) (string, testcontainers.Container) {
	return startContainer(t, map[string]string{
		// Tests make many rapid requests which would otherwise hit the
		// strict production limits.
		"RATELIMIT_STRICT_REQUESTS":   "1000",
		"RATELIMIT_STRICT_WINDOW_SEC": "60",
		"RATELIMIT_STRICT_BURST":      "1000",
		"RATELIMIT_MODERATE_REQUESTS": "1000",
		"RATELIMIT_MODERATE_BURST":    "1000",
		"RATELIMIT_PUBLIC_REQUESTS":   "1000",
		"RATELIMIT_PUBLIC_BURST":      "1000",
	})
}

// setupPlatformContainerWithDefaultRateLimits starts the platform with the
// production rate limits. Only for tests that exercise the limiter itself.
func setupPlatformContainerWithDefaultRateLimits(t *testing.T) (string, testcontainers.Container) {
	return startContainer(t, nil)
}

func startContainer(t *testing.T, extraEnv map[string]string) (string, testcontainers.Container) {
	t.Helper()
	ctx := context.Background()

	env := map[string]string{
		"KNOWARIA_ISSUER":        "knowaria-test",
		"KNOWARIA_DATABASE_FILE": "/tmp/knowaria.db",
		"KNOWARIA_PEPPER_FILE":   "/tmp/pepper",
		"ENV":                    "test",
		"LOG_LEVEL":              "info",
		"LOG_FORMAT":             "json",
	}
	for k, v := range extraEnv {
		env[k] = v
	}

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env:          env,
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	return fmt.Sprintf("http://%s:%s", host, mappedPort.Port()), container
}

// fetchVerificationCode scrapes the container's structured log for the last
// verification code issued to the given email. The log sender stands in for
// an email provider outside production.
func fetchVerificationCode(t *testing.T, container testcontainers.Container, email string) string {
	t.Helper()

	re := regexp.MustCompile(`"email":"` + regexp.QuoteMeta(email) + `".*?"code":"(\d{4})"`)

	var code string
	require.Eventually(t, func() bool {
		rc, err := container.Logs(context.Background())
		if err != nil {
			return false
		}
		defer rc.Close()

		data, err := io.ReadAll(rc)
		if err != nil {
			return false
		}

		matches := re.FindAllSubmatch(data, -1)
		if len(matches) == 0 {
			return false
		}
		code = string(matches[len(matches)-1][1])
		return true
	}, 10*time.Second, 100*time.Millisecond, "verification code for %s should appear in the log", email)

	return code
}

// verifyEmail drives the start/confirm verification loop for an address.
func verifyEmail(t *testing.T, client *knowariasdk.Client, container testcontainers.Container, email string) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, client.StartVerification(ctx, email))
	code := fetchVerificationCode(t, container, email)
	require.NoError(t, client.ConfirmVerification(ctx, email, code))
}

// registerUser signs up a fresh account end to end and leaves the client's
// cookie jar holding its session.
func registerUser(t *testing.T, client *knowariasdk.Client, container testcontainers.Container, email, phone string) *knowariasdk.User {
	t.Helper()
	ctx := context.Background()

	verifyEmail(t, client, container, email)

	user, err := client.Signup(ctx, knowariasdk.SignupRequest{
		FirstName:          "Ada",
		LastName:           "Lovelace",
		Phone:              phone,
		Email:              email,
		DOB:                "1990-12-10",
		Password:           testPassword,
		ArticlePreferences: []string{"tech", "science"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)

	return user
}
