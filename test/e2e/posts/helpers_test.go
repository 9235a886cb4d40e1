package posts_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/aussiebroadwan/postboard/pkg/postsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Container setup and shared helpers for the postboard end-to-end tests.
 */

const (
	testImageName = "postboard-test:latest"

	deleteSecret = "e2e-delete-token-secret"
	testPassword = "Correct-Horse-1"
)

// TestMain builds the image once for the whole suite and removes it after.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building postboard Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up postboard Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/postboard/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run()
}

// setupContainer starts postboard with extra environment on top of relaxed
// rate limits, and returns an SDK client pointed at it.
func setupContainer(t *testing.T, env map[string]string) *postsdk.Client {
	t.Helper()
	ctx := context.Background()

	containerEnv := map[string]string{
		"POSTBOARD_ISSUER":     "postboard-e2e",
		"ENV":                  "test",
		"LOG_LEVEL":            "info",
		"LOG_FORMAT":           "json",
		"DELETE_TOKEN_MAX_AGE": "300",
		// Tests hammer register and login far harder than any person would.
		"RATELIMIT_STRICT_REQUESTS":   "1000",
		"RATELIMIT_STRICT_WINDOW_SEC": "60",
		"RATELIMIT_STRICT_BURST":      "1000",
		"RATELIMIT_MODERATE_REQUESTS": "1000",
		"RATELIMIT_MODERATE_BURST":    "1000",
	}
	for k, v := range env {
		containerEnv[k] = v
	}

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env:          containerEnv,
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
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	return postsdk.NewClient(fmt.Sprintf("http://%s:%s", host, mappedPort.Port()))
}

// registerAndLogin creates an account and returns a logged-in session.
func registerAndLogin(t *testing.T, client *postsdk.Client, username string) *postsdk.Session {
	t.Helper()
	ctx := context.Background()

	_, err := client.Register(ctx, postsdk.RegisterRequest{
		Username:    username,
		DisplayName: username + " display",
		Password:    testPassword,
	})
	require.NoError(t, err)

	session, err := client.Login(ctx, username, testPassword, "")
	require.NoError(t, err)
	require.NotEmpty(t, session.Token())
	return session
}

// createOwnedPost creates a post and returns it as seen by its author, delete
// token included.
func createOwnedPost(t *testing.T, session *postsdk.Session) *postsdk.PostResponse {
	t.Helper()
	ctx := context.Background()

	created, err := session.CreatePost(ctx, "e2e post", "content")
	require.NoError(t, err)

	post, err := session.GetPost(ctx, created.ID)
	require.NoError(t, err)
	require.NotEmpty(t, post.DeleteToken)
	return post
}
