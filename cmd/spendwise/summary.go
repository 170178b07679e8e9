package main

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/spendwise/spendwise/internal/app"
	"github.com/spendwise/spendwise/internal/auth"
	"github.com/spendwise/spendwise/internal/service"
)

var summaryMonth string

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show income, spending, and per-category totals for a month",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(func(authenticator *auth.Authenticator, transactions *service.TransactionService) error {
			user, err := requireUser(cmd.Context(), authenticator)
			if err != nil {
				return err
			}

			ref, err := resolveMonth(summaryMonth)
			if err != nil {
				return err
			}
			summary, err := transactions.Summary(cmd.Context(), user.ID, ref)
			if err != nil {
				return err
			}

			pterm.DefaultSection.Printf("%s %d", summary.Month, summary.Year)
			pterm.Info.Printf("Income   %s\n", summary.Income.StringFixed(2))
			pterm.Info.Printf("Spending %s\n", summary.Expenses.StringFixed(2))
			pterm.Info.Printf("Net      %s\n", summary.Net.StringFixed(2))

			if len(summary.Categories) == 0 {
				return nil
			}
			rows := pterm.TableData{{"Category", "Total", "Entries"}}
			for _, c := range summary.Categories {
				rows = append(rows, []string{
					c.CategoryName,
					c.Total.StringFixed(2),
					pterm.Sprintf("%d", c.Count),
				})
			}
			return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
		})
	},
}

func init() {
	summaryCmd.Flags().StringVar(&summaryMonth, "month", "", "Month as YYYY-MM (default current)")
	rootCmd.AddCommand(summaryCmd)
}
