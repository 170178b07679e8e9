package service

import (
	"go.uber.org/fx"
)

// Module provides the service module dependencies
var Module = fx.Options(
	fx.Provide(
		NewUserService,
		NewCategoryService,
		NewTransactionService,
	),
)
