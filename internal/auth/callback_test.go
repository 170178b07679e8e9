package auth

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freePort(t *testing.T) int {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())
	return port
}

// getCallback retries until the transient listener is accepting connections.
func getCallback(t *testing.T, port int, state, code string) *http.Response {
	t.Helper()
	target := fmt.Sprintf("http://127.0.0.1:%d/callback?code=%s&state=%s",
		port, url.QueryEscape(code), url.QueryEscape(state))

	var resp *http.Response
	var err error
	for i := 0; i < 50; i++ {
		resp, err = http.Get(target)
		if err == nil {
			return resp
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("callback endpoint never came up: %v", err)
	return nil
}

type awaitResult struct {
	code string
	err  error
}

func TestAwaitCallbackMatchingState(t *testing.T) {
	port := freePort(t)
	server := NewCallbackServer(port)

	results := make(chan awaitResult, 1)
	go func() {
		code, err := server.AwaitCallback(context.Background(), "expected-state")
		results <- awaitResult{code, err}
	}()

	resp := getCallback(t, port, "expected-state", "the-code")
	body, _ := io.ReadAll(resp.Body)
	require.NoError(t, resp.Body.Close())

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Login Successful")

	result := <-results
	require.NoError(t, result.err)
	assert.Equal(t, "the-code", result.code)
}

func TestAwaitCallbackStateMismatchKeepsWaiting(t *testing.T) {
	port := freePort(t)
	server := NewCallbackServer(port)

	results := make(chan awaitResult, 1)
	go func() {
		code, err := server.AwaitCallback(context.Background(), "expected-state")
		results <- awaitResult{code, err}
	}()

	// A forged callback gets the failure page and completes nothing.
	resp := getCallback(t, port, "forged-state", "attacker-code")
	body, _ := io.ReadAll(resp.Body)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Login Failed")

	select {
	case result := <-results:
		t.Fatalf("wait completed on mismatched state: %+v", result)
	case <-time.After(200 * time.Millisecond):
	}

	// The genuine callback still completes the same wait.
	resp = getCallback(t, port, "expected-state", "real-code")
	require.NoError(t, resp.Body.Close())

	result := <-results
	require.NoError(t, result.err)
	assert.Equal(t, "real-code", result.code)
}

func TestAwaitCallbackTimeoutReleasesPort(t *testing.T) {
	port := freePort(t)
	server := NewCallbackServer(port)
	server.Timeout = 100 * time.Millisecond

	_, err := server.AwaitCallback(context.Background(), "expected-state")
	require.ErrorIs(t, err, ErrCallbackTimeout)

	// The socket must be free for a retried login.
	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	require.NoError(t, err)
	require.NoError(t, listener.Close())
}

func TestAwaitCallbackContextCancelled(t *testing.T) {
	port := freePort(t)
	server := NewCallbackServer(port)

	ctx, cancel := context.WithCancel(context.Background())
	results := make(chan awaitResult, 1)
	go func() {
		code, err := server.AwaitCallback(ctx, "expected-state")
		results <- awaitResult{code, err}
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	result := <-results
	require.ErrorIs(t, result.err, context.Canceled)

	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	require.NoError(t, err)
	require.NoError(t, listener.Close())
}

func TestAwaitCallbackPortInUse(t *testing.T) {
	port := freePort(t)
	blocker, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	require.NoError(t, err)
	defer func() {
		_ = blocker.Close()
	}()

	server := NewCallbackServer(port)
	_, err = server.AwaitCallback(context.Background(), "expected-state")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "callback listener")
}

func TestAwaitCallbackOnlyFirstCodeWins(t *testing.T) {
	port := freePort(t)
	server := NewCallbackServer(port)

	results := make(chan awaitResult, 1)
	go func() {
		code, err := server.AwaitCallback(context.Background(), "expected-state")
		results <- awaitResult{code, err}
	}()

	resp := getCallback(t, port, "expected-state", "first-code")
	require.NoError(t, resp.Body.Close())

	result := <-results
	require.NoError(t, result.err)
	assert.Equal(t, "first-code", result.code)
}
