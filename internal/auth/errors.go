package auth

import (
	"errors"
	"fmt"
)

var (
	// ErrCallbackTimeout indicates no matching callback arrived in time.
	ErrCallbackTimeout = errors.New("timed out waiting for OAuth callback")

	// ErrNoSession indicates an operation that requires a signed-in user.
	ErrNoSession = errors.New("no user logged in")
)

// AuthError is a provider-side authentication failure. Status and Body carry
// the provider's response for diagnostics; user-facing surfaces should show
// only the message.
type AuthError struct {
	Op     string
	Status int
	Body   string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s failed with status %d: %s", e.Op, e.Status, e.Body)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s failed", e.Op)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}
