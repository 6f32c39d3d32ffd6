package main

import (
	"bytes"
	"context"
	"fmt"
	accountfetcher "fortstats/fetcher/data/account"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAccountsServer(t *testing.T) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username := strings.TrimPrefix(r.URL.Path, "/")
		if strings.HasPrefix(username, "invalid") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if strings.HasPrefix(username, "broken") {
			fmt.Fprint(w, `{"username":`)
			return
		}
		fmt.Fprintf(w, `{"username":%q,"level":%d,"wins":%d}`, username, len(username), 5)
	}))
	t.Cleanup(server.Close)

	return server
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("ENVIRONMENT", "docker")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPrintAccounts(t *testing.T) {
	var out bytes.Buffer
	printAccounts(&out, []accountfetcher.Account{
		{Username: "user1", Level: 10, Wins: 5},
		{Username: "user2", Level: 20, Wins: 15},
	})

	assert.Equal(t, "Username: user1, Level: 10, Wins: 5\nUsername: user2, Level: 20, Wins: 15\n", out.String())
}

func TestFetchCommand(t *testing.T) {
	server := newTestAccountsServer(t)

	out, err := runCommand(t, "--base-url", server.URL, "user1", "invalid_user", "player3")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "skipping account: API returned status code 404 for invalid_user")
	assert.Equal(t, "Username: user1, Level: 5, Wins: 5", lines[1])
	assert.Equal(t, "Username: player3, Level: 7, Wins: 5", lines[2])
}

func TestFetchCommandWithoutUsernames(t *testing.T) {
	_, err := runCommand(t)
	assert.ErrorIs(t, err, accountfetcher.ErrNoUsernames)
}

// setLogBucket points the log bucket at a fake S3 endpoint and returns the uploaded objects by path.
func setLogBucket(t *testing.T, status int) func() map[string]string {
	t.Helper()

	var mu sync.Mutex
	uploads := map[string]string{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if status != http.StatusOK {
			w.WriteHeader(status)
			fmt.Fprint(w, `<Error><Code>AccessDenied</Code><Message>Access Denied</Message></Error>`)
			return
		}

		mu.Lock()
		uploads[r.Method+" "+r.URL.Path] = string(body)
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	t.Setenv("BUCKET_REGION", "us-east-1")
	t.Setenv("BUCKET_ENDPOINT", server.URL)
	t.Setenv("BUCKET_ACCESS_KEY", "key")
	t.Setenv("BUCKET_ACCESS_SECRET", "secret")
	t.Setenv("BUCKET_LOG_BUCKET", "logs")

	return func() map[string]string {
		mu.Lock()
		defer mu.Unlock()
		return uploads
	}
}

func TestFetchCommandUploadsLog(t *testing.T) {
	t.Run("successful run", func(t *testing.T) {
		server := newTestAccountsServer(t)
		uploads := setLogBucket(t, http.StatusOK)

		_, err := runCommand(t, "--base-url", server.URL, "--upload-log", "runs/cli.log", "user1", "invalid_user")
		require.NoError(t, err)

		body, ok := uploads()["PUT /logs/runs/cli.log"]
		require.True(t, ok)
		assert.Contains(t, body, "API returned status code 404 for invalid_user")
	})

	t.Run("failed run is still uploaded", func(t *testing.T) {
		server := newTestAccountsServer(t)
		uploads := setLogBucket(t, http.StatusOK)

		_, err := runCommand(t, "--base-url", server.URL, "--upload-log", "runs/cli.log", "invalid_user", "broken_user")
		require.ErrorIs(t, err, accountfetcher.ErrMalformedResponse)

		body, ok := uploads()["PUT /logs/runs/cli.log"]
		require.True(t, ok)
		assert.Contains(t, body, "API returned status code 404 for invalid_user")
		assert.Contains(t, body, "fetch failed")
	})

	t.Run("failed upload keeps the run error", func(t *testing.T) {
		server := newTestAccountsServer(t)
		setLogBucket(t, http.StatusForbidden)

		_, err := runCommand(t, "--base-url", server.URL, "--upload-log", "runs/cli.log", "broken_user")
		require.Error(t, err)
		assert.ErrorIs(t, err, accountfetcher.ErrMalformedResponse)
		assert.ErrorContains(t, err, "failed to upload runs/cli.log to S3 bucket")
	})
}
