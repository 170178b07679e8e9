package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserinfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

// requestTimeout bounds each provider call, distinct from the overall
// callback wait.
const requestTimeout = 30 * time.Second

// Provider abstracts the identity provider so the orchestrator can be tested
// against a fake.
type Provider interface {
	// AuthorizationRequest builds the one-shot login request. Pure
	// construction; it performs no network call.
	AuthorizationRequest() (*AuthorizationRequest, error)

	// ExchangeCode trades an authorization code for tokens
	ExchangeCode(ctx context.Context, code, pkceVerifier string) (TokenBundle, error)

	// Refresh obtains a fresh bundle using the refresh grant
	Refresh(ctx context.Context, refreshToken string) (TokenBundle, error)

	// FetchIdentity resolves the identity behind an access token
	FetchIdentity(ctx context.Context, accessToken string) (*IdentityInfo, error)
}

// AuthorizationRequest holds the pieces needed to complete one login attempt.
// It is consumed exactly once and never persisted.
type AuthorizationRequest struct {
	URL          string
	State        string
	PKCEVerifier string
}

// IdentityInfo is the provider's view of the signed-in user. Ephemeral; it is
// mapped to a local user and discarded.
type IdentityInfo struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
}

// GoogleAuth talks to Google's OAuth2 and userinfo endpoints.
type GoogleAuth struct {
	oauth2Config *oauth2.Config
	httpClient   *http.Client
	userinfoURL  string
}

// NewGoogleAuth creates the provider client. Both credentials are required.
func NewGoogleAuth(clientID, clientSecret, redirectURL string) (*GoogleAuth, error) {
	if clientID == "" || clientSecret == "" {
		return nil, errors.New("google OAuth credentials not configured: set GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET")
	}

	return &GoogleAuth{
		oauth2Config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     google.Endpoint,
			RedirectURL:  redirectURL,
			Scopes: []string{
				"openid",
				"email",
				"profile",
				"https://www.googleapis.com/auth/gmail.readonly",
			},
		},
		httpClient:  &http.Client{Timeout: requestTimeout},
		userinfoURL: googleUserinfoURL,
	}, nil
}

// AuthorizationRequest generates a PKCE verifier/challenge pair and CSRF
// state, and composes the authorization URL. access_type=offline plus
// prompt=consent guarantees a refresh token even on repeat logins.
func (g *GoogleAuth) AuthorizationRequest() (*AuthorizationRequest, error) {
	verifier, challenge, err := newPKCEPair()
	if err != nil {
		return nil, err
	}
	state, err := randomToken(24)
	if err != nil {
		return nil, err
	}

	authURL := g.oauth2Config.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
		oauth2.SetAuthURLParam("code_challenge", challenge),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
	)

	return &AuthorizationRequest{
		URL:          authURL,
		State:        state,
		PKCEVerifier: verifier,
	}, nil
}

// ExchangeCode trades the authorization code for a token bundle. The provider
// rejects expired or reused codes and mismatched verifiers.
func (g *GoogleAuth) ExchangeCode(ctx context.Context, code, pkceVerifier string) (TokenBundle, error) {
	token, err := g.oauth2Config.Exchange(g.clientContext(ctx), code,
		oauth2.SetAuthURLParam("code_verifier", pkceVerifier),
	)
	if err != nil {
		return TokenBundle{}, wrapTokenEndpointError("token exchange", err)
	}
	return bundleFromToken(token, ""), nil
}

// Refresh uses the refresh grant. Providers commonly omit the refresh token
// on refresh responses; the previous one is carried over so the session stays
// repairable.
func (g *GoogleAuth) Refresh(ctx context.Context, refreshToken string) (TokenBundle, error) {
	src := g.oauth2Config.TokenSource(g.clientContext(ctx), &oauth2.Token{
		RefreshToken: refreshToken,
	})
	token, err := src.Token()
	if err != nil {
		return TokenBundle{}, wrapTokenEndpointError("token refresh", err)
	}
	return bundleFromToken(token, refreshToken), nil
}

// FetchIdentity calls the userinfo endpoint with the access token.
func (g *GoogleAuth) FetchIdentity(ctx context.Context, accessToken string) (*IdentityInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.userinfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &AuthError{Op: "userinfo request", Status: resp.StatusCode, Body: string(body)}
	}

	var info IdentityInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo response: %w", err)
	}
	return &info, nil
}

// clientContext pins the oauth2 transport to our timeout-bearing client.
func (g *GoogleAuth) clientContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, g.httpClient)
}

func bundleFromToken(token *oauth2.Token, previousRefreshToken string) TokenBundle {
	bundle := TokenBundle{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.Type(),
	}
	if bundle.RefreshToken == "" {
		bundle.RefreshToken = previousRefreshToken
	}
	if !token.Expiry.IsZero() {
		expiresAt := token.Expiry
		bundle.ExpiresAt = &expiresAt
	}
	return bundle
}

func wrapTokenEndpointError(op string, err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
		return &AuthError{
			Op:     op,
			Status: retrieveErr.Response.StatusCode,
			Body:   string(retrieveErr.Body),
			Err:    err,
		}
	}
	return &AuthError{Op: op, Err: err}
}

func newPKCEPair() (string, string, error) {
	verifier, err := randomToken(43)
	if err != nil {
		return "", "", err
	}
	sum := sha256.Sum256([]byte(verifier))
	challenge := base64.RawURLEncoding.EncodeToString(sum[:])
	return verifier, challenge, nil
}

func randomToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}
