package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/spendwise/spendwise/internal/logger"
	"github.com/spendwise/spendwise/internal/models"
	"go.uber.org/zap"
)

// UserResolver is the narrow slice of the user repository the authenticator
// needs: linking a provider identity to a local account.
type UserResolver interface {
	FindOrCreateByGoogleID(ctx context.Context, in models.CreateUser) (*models.User, error)
	FindByGoogleID(ctx context.Context, googleID string) (*models.User, error)
}

// Authenticator sequences the login, restore, logout, and token-access flows.
// It owns no long-lived state beyond its collaborators; the current-user cell
// is published by the caller.
type Authenticator struct {
	provider Provider
	store    SessionStore
	users    UserResolver
	callback *CallbackServer

	// Seams for tests and alternative front ends.
	openBrowser   func(url string) error
	awaitCallback func(ctx context.Context, expectedState string) (string, error)
	now           func() time.Time

	// AuthURLHandler, when set, receives the authorization URL before the
	// browser opens so the caller can surface a manual fallback.
	AuthURLHandler func(url string)
}

func NewAuthenticator(provider Provider, store SessionStore, users UserResolver, callbackPort int) *Authenticator {
	callback := NewCallbackServer(callbackPort)
	return &Authenticator{
		provider:      provider,
		store:         store,
		users:         users,
		callback:      callback,
		openBrowser:   openBrowser,
		awaitCallback: callback.AwaitCallback,
		now:           time.Now,
	}
}

// Login runs the full authorization-code flow: build request, open browser,
// wait for the callback, exchange the code, fetch identity, resolve the
// local user, persist the session. No step is retried within one attempt —
// authorization codes and PKCE verifiers are single-use, so a failed attempt
// must start over.
func (a *Authenticator) Login(ctx context.Context) (*models.User, error) {
	authReq, err := a.provider.AuthorizationRequest()
	if err != nil {
		return nil, err
	}

	if a.AuthURLHandler != nil {
		a.AuthURLHandler(authReq.URL)
	}
	logger.Info("opening browser for Google login")
	if err := a.openBrowser(authReq.URL); err != nil {
		return nil, fmt.Errorf("failed to open browser: %v; open the URL manually: %s", err, authReq.URL)
	}

	code, err := a.awaitCallback(ctx, authReq.State)
	if err != nil {
		return nil, err
	}

	tokens, err := a.provider.ExchangeCode(ctx, code, authReq.PKCEVerifier)
	if err != nil {
		return nil, err
	}

	identity, err := a.provider.FetchIdentity(ctx, tokens.AccessToken)
	if err != nil {
		return nil, err
	}
	logger.Info("authenticated with provider",
		zap.String("email", identity.Email),
		zap.String("sub", identity.Sub),
	)

	user, err := a.users.FindOrCreateByGoogleID(ctx, createUserFromIdentity(identity))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve local user: %w", err)
	}

	session := StoredSession{
		Tokens:   tokens,
		UserID:   user.ID.String(),
		GoogleID: identity.Sub,
		Email:    identity.Email,
	}
	if err := a.store.Save(session); err != nil {
		return nil, err
	}

	logger.Info("login complete", zap.String("user_id", session.UserID))
	return user, nil
}

// TryRestoreSession silently revives a previous session. It returns
// (nil, nil) when there is nothing to restore; any doubt about the stored
// session's validity clears the store — the system forgets a session it
// cannot verify rather than trusting it.
func (a *Authenticator) TryRestoreSession(ctx context.Context) (*models.User, error) {
	session, err := a.store.Load()
	if err != nil {
		// Unreadable record: log for diagnosis, then fail closed.
		logger.Warn("stored session unreadable, clearing", zap.Error(err))
		_ = a.store.Clear()
		return nil, nil
	}
	if session == nil {
		logger.Debug("no stored session found")
		return nil, nil
	}

	logger.Info("found stored session", zap.String("email", session.Email))

	tokens := session.Tokens
	if tokens.IsExpired(a.now()) {
		if tokens.RefreshToken == "" {
			logger.Warn("token expired with no refresh token, clearing session")
			_ = a.store.Clear()
			return nil, nil
		}
		refreshed, err := a.provider.Refresh(ctx, tokens.RefreshToken)
		if err != nil {
			logger.Warn("token refresh failed, clearing session", zap.Error(err))
			_ = a.store.Clear()
			return nil, nil
		}
		tokens = refreshed
		session.Tokens = refreshed
		if err := a.store.Save(*session); err != nil {
			return nil, err
		}
		logger.Info("tokens refreshed")
	}

	// Re-verify liveness: a non-expired token may still have been revoked
	// server-side, and the provider sends no signal we would otherwise see.
	if _, err := a.provider.FetchIdentity(ctx, tokens.AccessToken); err != nil {
		logger.Warn("token verification failed, clearing session", zap.Error(err))
		_ = a.store.Clear()
		return nil, nil
	}

	user, err := a.users.FindByGoogleID(ctx, session.GoogleID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up local user: %w", err)
	}
	if user == nil {
		logger.Warn("stored session has no matching local user, clearing")
		_ = a.store.Clear()
		return nil, nil
	}

	logger.Info("session restored", zap.String("email", user.Email))
	return user, nil
}

// Logout discards the stored session. Always succeeds.
func (a *Authenticator) Logout() error {
	if err := a.store.Clear(); err != nil {
		return err
	}
	logger.Info("user logged out")
	return nil
}

// IsLoggedIn reports whether a stored session exists, without deserializing.
func (a *Authenticator) IsLoggedIn() bool {
	return a.store.Exists()
}

// GetAccessToken returns a currently valid access token, refreshing and
// re-persisting when needed. It returns "" with no error when no session
// exists or the session cannot be repaired; unlike restore it does not
// re-verify identity, making it cheap enough for per-request use.
func (a *Authenticator) GetAccessToken(ctx context.Context) (string, error) {
	session, err := a.store.Load()
	if err != nil {
		return "", err
	}
	if session == nil {
		return "", nil
	}

	if !session.Tokens.IsExpired(a.now()) {
		return session.Tokens.AccessToken, nil
	}
	if session.Tokens.RefreshToken == "" {
		return "", nil
	}

	refreshed, err := a.provider.Refresh(ctx, session.Tokens.RefreshToken)
	if err != nil {
		return "", err
	}
	session.Tokens = refreshed
	if err := a.store.Save(*session); err != nil {
		return "", err
	}
	return refreshed.AccessToken, nil
}

func createUserFromIdentity(info *IdentityInfo) models.CreateUser {
	firstName := info.GivenName
	if firstName == "" {
		firstName = "Unknown"
	}
	var photoURL *string
	if info.Picture != "" {
		picture := info.Picture
		photoURL = &picture
	}
	return models.CreateUser{
		GoogleID:  info.Sub,
		Email:     info.Email,
		FirstName: firstName,
		LastName:  info.FamilyName,
		PhotoURL:  photoURL,
	}
}
