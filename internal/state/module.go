package state

import (
	"go.uber.org/fx"
)

// Module provides the application state dependencies
var Module = fx.Options(
	fx.Provide(NewCurrentUser),
)
