package auth

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spendwise/spendwise/internal/logger"
	"go.uber.org/zap"
)

const callbackPath = "/callback"

// DefaultCallbackTimeout bounds the whole browser round-trip.
const DefaultCallbackTimeout = 5 * time.Minute

// CallbackServer is a transient loopback HTTP listener that captures the
// provider's redirect. It lives for a single AwaitCallback call.
type CallbackServer struct {
	Port    int
	Timeout time.Duration

	// Response bodies are injectable presentation assets.
	SuccessHTML string
	FailureHTML string
}

func NewCallbackServer(port int) *CallbackServer {
	return &CallbackServer{
		Port:        port,
		Timeout:     DefaultCallbackTimeout,
		SuccessHTML: successHTML,
		FailureHTML: failureHTML,
	}
}

// AwaitCallback binds the loopback listener and blocks until a request with
// the expected state arrives, the timeout elapses, or ctx is cancelled. The
// socket is released on every return path. Only the first state-matching
// request completes the wait; every request is answered with 200 and a
// static page either way, since exchange failures are reported to the
// waiting process, not the browser.
func (s *CallbackServer) AwaitCallback(ctx context.Context, expectedState string) (string, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", s.Port))
	if err != nil {
		return "", fmt.Errorf("failed to start callback listener on port %d: %w", s.Port, err)
	}

	// One-slot rendezvous: the first matching send wins, the rest drop.
	codeCh := make(chan string, 1)

	server := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != callbackPath {
				http.NotFound(w, r)
				return
			}
			query := r.URL.Query()
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			if query.Get("state") != expectedState {
				logger.Warn("callback received with mismatched state")
				fmt.Fprint(w, s.FailureHTML)
				return
			}
			select {
			case codeCh <- query.Get("code"):
			default:
			}
			fmt.Fprint(w, s.SuccessHTML)
		}),
	}

	go func() {
		_ = server.Serve(listener)
	}()
	defer func() {
		_ = server.Close()
	}()

	logger.Info("waiting for OAuth callback", zap.Int("port", s.Port))

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultCallbackTimeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-timer.C:
		return "", ErrCallbackTimeout
	case code := <-codeCh:
		logger.Info("OAuth callback received")
		return code, nil
	}
}
