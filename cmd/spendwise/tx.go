package main

import (
	"time"

	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/spendwise/spendwise/internal/app"
	"github.com/spendwise/spendwise/internal/auth"
	"github.com/spendwise/spendwise/internal/service"
)

var txCmd = &cobra.Command{
	Use:   "tx",
	Short: "Manage ledger entries",
}

var (
	txAddCategory string
	txAddStore    string
	txAddNote     string
	txAddDate     string
)

var txAddCmd = &cobra.Command{
	Use:   "add <amount>",
	Short: "Record an entry; negative amounts are spending",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(func(authenticator *auth.Authenticator, transactions *service.TransactionService) error {
			user, err := requireUser(cmd.Context(), authenticator)
			if err != nil {
				return err
			}

			amount, err := decimal.NewFromString(args[0])
			if err != nil {
				return err
			}
			var date time.Time
			if txAddDate != "" {
				date, err = time.Parse("2006-01-02", txAddDate)
				if err != nil {
					return err
				}
			}

			entry, err := transactions.Add(cmd.Context(), user.ID, service.AddTransaction{
				Amount:       amount,
				CategoryName: txAddCategory,
				Store:        txAddStore,
				Description:  txAddNote,
				Date:         date,
			})
			if err != nil {
				return err
			}
			pterm.Success.Printf("Recorded %s on %s\n",
				entry.Amount.StringFixed(2), entry.TransactionDate.Format("2006-01-02"))
			return nil
		})
	},
}

var txListMonth string

var txListCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries for a month (default: current)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(func(authenticator *auth.Authenticator, transactions *service.TransactionService) error {
			user, err := requireUser(cmd.Context(), authenticator)
			if err != nil {
				return err
			}

			ref, err := resolveMonth(txListMonth)
			if err != nil {
				return err
			}
			entries, err := transactions.ListMonth(cmd.Context(), user.ID, ref)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				pterm.Info.Printf("No entries in %s\n", ref.Format("January 2006"))
				return nil
			}

			rows := pterm.TableData{{"Date", "Amount", "Store", "ID"}}
			for _, e := range entries {
				store := ""
				if e.Store != nil {
					store = *e.Store
				}
				rows = append(rows, []string{
					e.TransactionDate.Format("2006-01-02"),
					e.Amount.StringFixed(2),
					store,
					e.ID.String(),
				})
			}
			return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
		})
	},
}

var (
	txEditAmount   string
	txEditCategory string
	txEditStore    string
	txEditNote     string
	txEditDate     string
)

var txEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit an entry; only the given flags change",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(func(authenticator *auth.Authenticator, transactions *service.TransactionService) error {
			user, err := requireUser(cmd.Context(), authenticator)
			if err != nil {
				return err
			}
			id, err := uuid.Parse(args[0])
			if err != nil {
				return err
			}

			var update service.UpdateTransaction
			if cmd.Flags().Changed("amount") {
				amount, err := decimal.NewFromString(txEditAmount)
				if err != nil {
					return err
				}
				update.Amount = &amount
			}
			if cmd.Flags().Changed("category") {
				update.CategoryName = &txEditCategory
			}
			if cmd.Flags().Changed("store") {
				update.Store = &txEditStore
			}
			if cmd.Flags().Changed("note") {
				update.Description = &txEditNote
			}
			if cmd.Flags().Changed("date") {
				date, err := time.Parse("2006-01-02", txEditDate)
				if err != nil {
					return err
				}
				update.Date = &date
			}

			entry, err := transactions.Update(cmd.Context(), user.ID, id, update)
			if err != nil {
				return err
			}
			pterm.Success.Printf("Updated entry: %s on %s\n",
				entry.Amount.StringFixed(2), entry.TransactionDate.Format("2006-01-02"))
			return nil
		})
	},
}

var txRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete an entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(func(authenticator *auth.Authenticator, transactions *service.TransactionService) error {
			user, err := requireUser(cmd.Context(), authenticator)
			if err != nil {
				return err
			}
			id, err := uuid.Parse(args[0])
			if err != nil {
				return err
			}
			if err := transactions.Delete(cmd.Context(), user.ID, id); err != nil {
				return err
			}
			pterm.Success.Println("Entry deleted")
			return nil
		})
	},
}

// resolveMonth parses a YYYY-MM month flag, defaulting to the current month.
func resolveMonth(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now().UTC(), nil
	}
	return time.Parse("2006-01", raw)
}

func init() {
	txAddCmd.Flags().StringVar(&txAddCategory, "category", "", "Category name")
	txAddCmd.Flags().StringVar(&txAddStore, "store", "", "Store or merchant")
	txAddCmd.Flags().StringVar(&txAddNote, "note", "", "Free-form note")
	txAddCmd.Flags().StringVar(&txAddDate, "date", "", "Date as YYYY-MM-DD (default today)")
	txListCmd.Flags().StringVar(&txListMonth, "month", "", "Month as YYYY-MM (default current)")
	txEditCmd.Flags().StringVar(&txEditAmount, "amount", "", "New amount")
	txEditCmd.Flags().StringVar(&txEditCategory, "category", "", "New category name (empty detaches)")
	txEditCmd.Flags().StringVar(&txEditStore, "store", "", "New store or merchant")
	txEditCmd.Flags().StringVar(&txEditNote, "note", "", "New note")
	txEditCmd.Flags().StringVar(&txEditDate, "date", "", "New date as YYYY-MM-DD")
	txCmd.AddCommand(txAddCmd)
	txCmd.AddCommand(txListCmd)
	txCmd.AddCommand(txEditCmd)
	txCmd.AddCommand(txRmCmd)
	rootCmd.AddCommand(txCmd)
}
