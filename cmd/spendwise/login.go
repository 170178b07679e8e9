package main

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/spendwise/spendwise/internal/app"
	"github.com/spendwise/spendwise/internal/auth"
	"github.com/spendwise/spendwise/internal/models"
	"github.com/spendwise/spendwise/internal/service"
	"github.com/spendwise/spendwise/internal/state"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with your Google account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(func(authenticator *auth.Authenticator, categories *service.CategoryService, current *state.CurrentUser) error {
			authenticator.AuthURLHandler = func(url string) {
				pterm.Info.Println("If the browser does not open, visit:")
				pterm.Println(url)
			}

			pterm.Info.Println("Opening your browser to sign in with Google…")
			user, err := authenticator.Login(cmd.Context())
			if err != nil {
				return err
			}
			current.Set(user)

			// First sign-in gets the starter categories.
			if err := categories.SeedDefaults(cmd.Context(), user.ID); err != nil {
				pterm.Warning.Printf("Could not seed default categories: %v\n", err)
			}

			pterm.Success.Printf("Signed in as %s <%s>\n", user.FullName(), user.Email)
			return nil
		})
	},
}

// requireUser restores the stored session or tells the user to sign in.
func requireUser(ctx context.Context, authenticator *auth.Authenticator) (*models.User, error) {
	user, err := authenticator.TryRestoreSession(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: run `spendwise login` first", auth.ErrNoSession)
	}
	return user, nil
}

func init() {
	rootCmd.AddCommand(loginCmd)
}
