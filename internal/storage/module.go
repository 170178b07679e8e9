package storage

import (
	"go.uber.org/fx"

	"github.com/spendwise/spendwise/internal/auth"
)

// Module provides the storage module dependencies
var Module = fx.Options(
	fx.Provide(
		Open,
		fx.Annotate(
			NewUserRepository,
			fx.As(new(auth.UserResolver)),
		),
		NewUserRepository,
		NewCategoryRepository,
		NewTransactionRepository,
	),
)
