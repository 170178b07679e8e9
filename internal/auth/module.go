package auth

import (
	"go.uber.org/fx"

	"github.com/spendwise/spendwise/internal/config"
)

// Module provides the auth module dependencies
var Module = fx.Options(
	fx.Provide(
		fx.Annotate(
			newProviderFromConfig,
			fx.As(new(Provider)),
		),
		fx.Annotate(
			NewKeyringStore,
			fx.As(new(SessionStore)),
		),
		newAuthenticatorFromConfig,
	),
)

func newProviderFromConfig(cfg *config.Config) (*GoogleAuth, error) {
	return NewGoogleAuth(cfg.Google.ClientID, cfg.Google.ClientSecret, cfg.Google.RedirectURL())
}

func newAuthenticatorFromConfig(cfg *config.Config, provider Provider, store SessionStore, users UserResolver) *Authenticator {
	return NewAuthenticator(provider, store, users, cfg.Google.CallbackPort)
}
