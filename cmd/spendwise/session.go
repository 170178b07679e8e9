package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/spendwise/spendwise/internal/app"
	"github.com/spendwise/spendwise/internal/auth"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(func(authenticator *auth.Authenticator) error {
			if err := authenticator.Logout(); err != nil {
				return err
			}
			pterm.Success.Println("Signed out")
			return nil
		})
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(func(authenticator *auth.Authenticator) error {
			user, err := requireUser(cmd.Context(), authenticator)
			if err != nil {
				return err
			}
			pterm.Info.Printf("%s <%s>\n", user.FullName(), user.Email)
			return nil
		})
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a valid access token for scripting",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(func(authenticator *auth.Authenticator) error {
			token, err := authenticator.GetAccessToken(cmd.Context())
			if err != nil {
				return err
			}
			if token == "" {
				return fmt.Errorf("%w: run `spendwise login` first", auth.ErrNoSession)
			}
			pterm.Println(token)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(tokenCmd)
}
