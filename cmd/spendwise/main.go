package main

import (
	"os"
	"runtime/debug"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/spendwise/spendwise/internal/app"
	"github.com/spendwise/spendwise/internal/auth"
	"github.com/spendwise/spendwise/internal/config"
	"github.com/spendwise/spendwise/internal/service"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/spendwise/spendwise/internal/tui"
)

func main() {
	Execute()
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "spendwise",
	Short: "A personal finance tracker with Google sign-in",
	Long: `SpendWise tracks your spending in a local SQLite ledger.
Sign in once with your Google account; the session is kept in the OS keychain
and restored silently on the next run.`,
	Run: runTUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	// Place version check in PreRun to ensure flags are parsed first
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		versionFlag, _ := cmd.Flags().GetBool("version")
		if versionFlag {
			pterm.Info.Println(config.GetVersionInfo())
			os.Exit(0)
		}
	}

	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func init() {
	config.InitFlags()
	rootCmd.PersistentFlags().AddFlagSet(pflag.CommandLine)
	rootCmd.PersistentFlags().BoolP("version", "v", false, "Show version information")
}

// runTUI restores the session and starts the interactive ledger.
func runTUI(cmd *cobra.Command, args []string) {
	defer func() {
		if r := recover(); r != nil {
			pterm.Error.Printf("\nCaught panic: %v\n", r)
			pterm.Error.Printf("%s\n", debug.Stack())
			os.Exit(2)
		}
	}()

	err := app.Run(func(authenticator *auth.Authenticator, transactions *service.TransactionService, categories *service.CategoryService) error {
		user, err := requireUser(cmd.Context(), authenticator)
		if err != nil {
			return err
		}

		p := tea.NewProgram(tui.NewAppModel(transactions, categories, user), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
