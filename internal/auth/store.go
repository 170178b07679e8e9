package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "spendwise"
	keyringAccount = "google-oauth"
)

// SessionStore is durable persistence for at most one StoredSession. The
// orchestrator depends only on this interface so the OS vault can be swapped
// for an in-memory fake in tests.
type SessionStore interface {
	// Save serializes and writes the session, replacing any prior record
	Save(session StoredSession) error

	// Load returns (nil, nil) when no record exists. An error means the
	// record exists but could not be read or decoded.
	Load() (*StoredSession, error)

	// Clear removes the record; clearing an absent record is a no-op success
	Clear() error

	// Exists is a cheap probe that avoids deserializing
	Exists() bool
}

// KeyringStore persists the session in the OS credential vault: Keychain on
// macOS, Credential Manager on Windows, Secret Service on Linux.
type KeyringStore struct {
	service string
	account string
}

func NewKeyringStore() *KeyringStore {
	return &KeyringStore{service: keyringService, account: keyringAccount}
}

func (s *KeyringStore) Save(session StoredSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to serialize session: %w", err)
	}
	if err := keyring.Set(s.service, s.account, string(payload)); err != nil {
		return fmt.Errorf("failed to store session in keyring: %w", err)
	}
	return nil
}

func (s *KeyringStore) Load() (*StoredSession, error) {
	payload, err := keyring.Get(s.service, s.account)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session from keyring: %w", err)
	}
	var session StoredSession
	if err := json.Unmarshal([]byte(payload), &session); err != nil {
		// A record exists but is unreadable; distinct from "no record".
		return nil, fmt.Errorf("stored session invalid: %w", err)
	}
	return &session, nil
}

func (s *KeyringStore) Clear() error {
	err := keyring.Delete(s.service, s.account)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to clear session from keyring: %w", err)
	}
	return nil
}

func (s *KeyringStore) Exists() bool {
	_, err := keyring.Get(s.service, s.account)
	return err == nil
}

// MemoryStore is an in-process SessionStore used in tests and available as a
// fallback when no OS vault is reachable.
type MemoryStore struct {
	mu      sync.Mutex
	session *StoredSession

	// Error injection for orchestrator tests.
	saveErr error
	loadErr error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(session StoredSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	copied := session
	s.session = &copied
	return nil
}

func (s *MemoryStore) Load() (*StoredSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if s.session == nil {
		return nil, nil
	}
	copied := *s.session
	return &copied, nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	return nil
}

func (s *MemoryStore) Exists() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session != nil
}
