package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/spendwise/spendwise/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	authReq     *AuthorizationRequest
	authReqErr  error
	exchange    TokenBundle
	exchangeErr error
	refreshed   TokenBundle
	refreshErr  error
	identity    *IdentityInfo
	identityErr error

	exchangeCalls int
	refreshCalls  int
	identityCalls int

	gotCode     string
	gotVerifier string
}

func (f *fakeProvider) AuthorizationRequest() (*AuthorizationRequest, error) {
	if f.authReqErr != nil {
		return nil, f.authReqErr
	}
	if f.authReq != nil {
		return f.authReq, nil
	}
	return &AuthorizationRequest{
		URL:          "https://accounts.example.com/auth?state=s",
		State:        "state-1",
		PKCEVerifier: "verifier-1",
	}, nil
}

func (f *fakeProvider) ExchangeCode(ctx context.Context, code, pkceVerifier string) (TokenBundle, error) {
	f.exchangeCalls++
	f.gotCode = code
	f.gotVerifier = pkceVerifier
	return f.exchange, f.exchangeErr
}

func (f *fakeProvider) Refresh(ctx context.Context, refreshToken string) (TokenBundle, error) {
	f.refreshCalls++
	return f.refreshed, f.refreshErr
}

func (f *fakeProvider) FetchIdentity(ctx context.Context, accessToken string) (*IdentityInfo, error) {
	f.identityCalls++
	if f.identityErr != nil {
		return nil, f.identityErr
	}
	if f.identity != nil {
		return f.identity, nil
	}
	return &IdentityInfo{
		Sub:        "google-123",
		Email:      "jane@example.com",
		GivenName:  "Jane",
		FamilyName: "Doe",
		Picture:    "https://example.com/jane.png",
	}, nil
}

type fakeUsers struct {
	users        map[string]*models.User
	createCalls  int
	resolveInput models.CreateUser
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[string]*models.User{}}
}

func (f *fakeUsers) FindOrCreateByGoogleID(ctx context.Context, in models.CreateUser) (*models.User, error) {
	f.createCalls++
	f.resolveInput = in
	if user, ok := f.users[in.GoogleID]; ok {
		return user, nil
	}
	user := &models.User{
		ID:        uuid.New(),
		GoogleID:  in.GoogleID,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		PhotoURL:  in.PhotoURL,
	}
	f.users[in.GoogleID] = user
	return user, nil
}

func (f *fakeUsers) FindByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	return f.users[googleID], nil
}

func newTestAuthenticator(provider *fakeProvider, store SessionStore, users UserResolver) *Authenticator {
	a := NewAuthenticator(provider, store, users, 0)
	a.openBrowser = func(string) error { return nil }
	a.awaitCallback = func(ctx context.Context, expectedState string) (string, error) {
		return "callback-code", nil
	}
	return a
}

func TestLoginHappyPath(t *testing.T) {
	expiresAt := time.Now().Add(time.Hour)
	provider := &fakeProvider{
		exchange: TokenBundle{
			AccessToken:  "access-1",
			RefreshToken: "refresh-1",
			ExpiresAt:    &expiresAt,
			TokenType:    "Bearer",
		},
	}
	store := NewMemoryStore()
	users := newFakeUsers()
	a := newTestAuthenticator(provider, store, users)

	var seenURL string
	a.AuthURLHandler = func(url string) { seenURL = url }

	user, err := a.Login(context.Background())
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.Equal(t, "https://accounts.example.com/auth?state=s", seenURL)
	assert.Equal(t, "callback-code", provider.gotCode)
	assert.Equal(t, "verifier-1", provider.gotVerifier)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, "Jane", user.FirstName)

	session, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "access-1", session.Tokens.AccessToken)
	assert.Equal(t, "google-123", session.GoogleID)
	assert.Equal(t, user.ID.String(), session.UserID)
}

func TestLoginDefaultsMissingNameParts(t *testing.T) {
	provider := &fakeProvider{
		exchange: TokenBundle{AccessToken: "access-1", TokenType: "Bearer"},
		identity: &IdentityInfo{Sub: "google-456", Email: "anon@example.com"},
	}
	store := NewMemoryStore()
	users := newFakeUsers()
	a := newTestAuthenticator(provider, store, users)

	user, err := a.Login(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Unknown", user.FirstName)
	assert.Equal(t, "", user.LastName)
	assert.Nil(t, users.resolveInput.PhotoURL)
}

func TestLoginBrowserFailureEchoesURL(t *testing.T) {
	provider := &fakeProvider{}
	a := newTestAuthenticator(provider, NewMemoryStore(), newFakeUsers())
	a.openBrowser = func(string) error { return errors.New("no display") }

	_, err := a.Login(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "https://accounts.example.com/auth?state=s")
}

func TestLoginExchangeFailureStoresNothing(t *testing.T) {
	provider := &fakeProvider{
		exchangeErr: &AuthError{Op: "token exchange", Status: 400, Body: "invalid_grant"},
	}
	store := NewMemoryStore()
	a := newTestAuthenticator(provider, store, newFakeUsers())

	_, err := a.Login(context.Background())
	require.Error(t, err)
	assert.False(t, store.Exists())
}

func TestLoginCallbackTimeout(t *testing.T) {
	provider := &fakeProvider{}
	store := NewMemoryStore()
	a := newTestAuthenticator(provider, store, newFakeUsers())
	a.awaitCallback = func(ctx context.Context, expectedState string) (string, error) {
		return "", ErrCallbackTimeout
	}

	_, err := a.Login(context.Background())
	require.ErrorIs(t, err, ErrCallbackTimeout)
	assert.Zero(t, provider.exchangeCalls)
	assert.False(t, store.Exists())
}

func TestTryRestoreSessionNoStoredSession(t *testing.T) {
	provider := &fakeProvider{}
	a := newTestAuthenticator(provider, NewMemoryStore(), newFakeUsers())

	user, err := a.TryRestoreSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.Zero(t, provider.refreshCalls)
	assert.Zero(t, provider.identityCalls)
}

func seedSession(t *testing.T, store SessionStore, users *fakeUsers, bundle TokenBundle) *models.User {
	t.Helper()
	user, err := users.FindOrCreateByGoogleID(context.Background(), models.CreateUser{
		GoogleID:  "google-123",
		Email:     "jane@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
	})
	require.NoError(t, err)
	require.NoError(t, store.Save(StoredSession{
		Tokens:   bundle,
		UserID:   user.ID.String(),
		GoogleID: "google-123",
		Email:    "jane@example.com",
	}))
	return user
}

func TestTryRestoreSessionValidToken(t *testing.T) {
	provider := &fakeProvider{}
	store := NewMemoryStore()
	users := newFakeUsers()
	a := newTestAuthenticator(provider, store, users)

	expiresAt := time.Now().Add(time.Hour)
	want := seedSession(t, store, users, TokenBundle{
		AccessToken: "access-1", RefreshToken: "refresh-1", ExpiresAt: &expiresAt, TokenType: "Bearer",
	})

	user, err := a.TryRestoreSession(context.Background())
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, want.ID, user.ID)
	assert.Zero(t, provider.refreshCalls)
	// Liveness is always re-verified, even for a non-expired token.
	assert.Equal(t, 1, provider.identityCalls)
}

func TestTryRestoreSessionRefreshesExpiredToken(t *testing.T) {
	newExpiry := time.Now().Add(time.Hour)
	provider := &fakeProvider{
		refreshed: TokenBundle{
			AccessToken: "access-2", RefreshToken: "refresh-1", ExpiresAt: &newExpiry, TokenType: "Bearer",
		},
	}
	store := NewMemoryStore()
	users := newFakeUsers()
	a := newTestAuthenticator(provider, store, users)

	past := time.Now().Add(-time.Hour)
	seedSession(t, store, users, TokenBundle{
		AccessToken: "access-1", RefreshToken: "refresh-1", ExpiresAt: &past, TokenType: "Bearer",
	})

	user, err := a.TryRestoreSession(context.Background())
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, 1, provider.refreshCalls)

	session, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "access-2", session.Tokens.AccessToken)
}

func TestTryRestoreSessionRefreshFailureClearsStore(t *testing.T) {
	provider := &fakeProvider{refreshErr: errors.New("invalid_grant")}
	store := NewMemoryStore()
	users := newFakeUsers()
	a := newTestAuthenticator(provider, store, users)

	past := time.Now().Add(-time.Hour)
	seedSession(t, store, users, TokenBundle{
		AccessToken: "access-1", RefreshToken: "refresh-1", ExpiresAt: &past, TokenType: "Bearer",
	})

	user, err := a.TryRestoreSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.False(t, store.Exists())
}

func TestTryRestoreSessionExpiredWithoutRefreshToken(t *testing.T) {
	provider := &fakeProvider{}
	store := NewMemoryStore()
	users := newFakeUsers()
	a := newTestAuthenticator(provider, store, users)

	past := time.Now().Add(-time.Hour)
	seedSession(t, store, users, TokenBundle{
		AccessToken: "access-1", ExpiresAt: &past, TokenType: "Bearer",
	})

	user, err := a.TryRestoreSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.False(t, store.Exists())
	// Irreparable sessions must not trigger any network call.
	assert.Zero(t, provider.refreshCalls)
	assert.Zero(t, provider.identityCalls)
}

func TestTryRestoreSessionVerificationFailureClearsStore(t *testing.T) {
	provider := &fakeProvider{
		identityErr: &AuthError{Op: "userinfo request", Status: 401, Body: "revoked"},
	}
	store := NewMemoryStore()
	users := newFakeUsers()
	a := newTestAuthenticator(provider, store, users)

	expiresAt := time.Now().Add(time.Hour)
	seedSession(t, store, users, TokenBundle{
		AccessToken: "access-1", RefreshToken: "refresh-1", ExpiresAt: &expiresAt, TokenType: "Bearer",
	})

	user, err := a.TryRestoreSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.False(t, store.Exists())
}

func TestTryRestoreSessionMissingLocalUserClearsStore(t *testing.T) {
	provider := &fakeProvider{}
	store := NewMemoryStore()
	a := newTestAuthenticator(provider, store, newFakeUsers())

	expiresAt := time.Now().Add(time.Hour)
	require.NoError(t, store.Save(StoredSession{
		Tokens:   TokenBundle{AccessToken: "access-1", ExpiresAt: &expiresAt, TokenType: "Bearer"},
		UserID:   uuid.NewString(),
		GoogleID: "google-unknown",
		Email:    "ghost@example.com",
	}))

	user, err := a.TryRestoreSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.False(t, store.Exists())
}

func TestTryRestoreSessionUnreadableRecordClearsStore(t *testing.T) {
	provider := &fakeProvider{}
	store := NewMemoryStore()
	store.loadErr = errors.New("stored session invalid: bad json")
	a := newTestAuthenticator(provider, store, newFakeUsers())

	user, err := a.TryRestoreSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestLogoutIdempotent(t *testing.T) {
	a := newTestAuthenticator(&fakeProvider{}, NewMemoryStore(), newFakeUsers())
	require.NoError(t, a.Logout())
	require.NoError(t, a.Logout())
	assert.False(t, a.IsLoggedIn())
}

func TestGetAccessTokenNoSession(t *testing.T) {
	provider := &fakeProvider{}
	a := newTestAuthenticator(provider, NewMemoryStore(), newFakeUsers())

	token, err := a.GetAccessToken(context.Background())
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Zero(t, provider.refreshCalls)
}

func TestGetAccessTokenValid(t *testing.T) {
	provider := &fakeProvider{}
	store := NewMemoryStore()
	users := newFakeUsers()
	a := newTestAuthenticator(provider, store, users)

	expiresAt := time.Now().Add(time.Hour)
	seedSession(t, store, users, TokenBundle{
		AccessToken: "access-1", RefreshToken: "refresh-1", ExpiresAt: &expiresAt, TokenType: "Bearer",
	})

	token, err := a.GetAccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "access-1", token)
	assert.Zero(t, provider.refreshCalls)
	assert.Zero(t, provider.identityCalls)
}

func TestGetAccessTokenRefreshesAndPersists(t *testing.T) {
	newExpiry := time.Now().Add(time.Hour)
	provider := &fakeProvider{
		refreshed: TokenBundle{
			AccessToken: "access-2", RefreshToken: "refresh-1", ExpiresAt: &newExpiry, TokenType: "Bearer",
		},
	}
	store := NewMemoryStore()
	users := newFakeUsers()
	a := newTestAuthenticator(provider, store, users)

	past := time.Now().Add(-time.Hour)
	seedSession(t, store, users, TokenBundle{
		AccessToken: "access-1", RefreshToken: "refresh-1", ExpiresAt: &past, TokenType: "Bearer",
	})

	token, err := a.GetAccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "access-2", token)

	session, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "access-2", session.Tokens.AccessToken)
}

func TestGetAccessTokenExpiredWithoutRefreshToken(t *testing.T) {
	provider := &fakeProvider{}
	store := NewMemoryStore()
	users := newFakeUsers()
	a := newTestAuthenticator(provider, store, users)

	past := time.Now().Add(-time.Hour)
	seedSession(t, store, users, TokenBundle{
		AccessToken: "access-1", ExpiresAt: &past, TokenType: "Bearer",
	})

	token, err := a.GetAccessToken(context.Background())
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Zero(t, provider.refreshCalls)
}
