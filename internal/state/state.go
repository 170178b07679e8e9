// Package state holds the mutable per-process application state: the
// currently signed-in user. The TUI and CLI commands read it, the
// authenticator's callers write it.
package state

import (
	"sync"

	"github.com/spendwise/spendwise/internal/models"
)

// CurrentUser is a concurrency-safe cell for the signed-in user. The zero
// value is ready to use and means "nobody signed in".
type CurrentUser struct {
	mu   sync.RWMutex
	user *models.User
}

func NewCurrentUser() *CurrentUser {
	return &CurrentUser{}
}

// Set publishes user as the signed-in user. A nil user is equivalent to Clear.
func (c *CurrentUser) Set(user *models.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if user == nil {
		c.user = nil
		return
	}
	copied := *user
	c.user = &copied
}

// Get returns a copy of the signed-in user, or nil when nobody is signed in.
// Callers may mutate the returned value freely.
func (c *CurrentUser) Get() *models.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return nil
	}
	copied := *c.user
	return &copied
}

// Clear forgets the signed-in user.
func (c *CurrentUser) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.user = nil
}

// IsSignedIn reports whether a user is currently set.
func (c *CurrentUser) IsSignedIn() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user != nil
}
