// Package app assembles the dependency graph. Commands hand Run a function
// whose parameters fx resolves from the module graph.
package app

import (
	"context"

	"go.uber.org/fx"

	"github.com/spendwise/spendwise/internal/auth"
	"github.com/spendwise/spendwise/internal/config"
	"github.com/spendwise/spendwise/internal/logger"
	"github.com/spendwise/spendwise/internal/service"
	"github.com/spendwise/spendwise/internal/state"
	"github.com/spendwise/spendwise/internal/storage"
)

// Options is the full module graph.
func Options() fx.Option {
	return fx.Options(
		config.Module,
		logger.Module,
		auth.Module,
		storage.Module,
		service.Module,
		state.Module,
	)
}

// Run builds the graph, invokes fn with its resolved dependencies, and tears
// everything down. fn may return an error to fail the command.
func Run(fn any) error {
	fxApp := fx.New(
		fx.NopLogger,
		Options(),
		fx.Invoke(fn),
	)
	if err := fxApp.Err(); err != nil {
		return err
	}

	ctx := context.Background()
	if err := fxApp.Start(ctx); err != nil {
		return err
	}
	return fxApp.Stop(ctx)
}
