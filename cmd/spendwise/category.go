package main

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/spendwise/spendwise/internal/app"
	"github.com/spendwise/spendwise/internal/auth"
	"github.com/spendwise/spendwise/internal/service"
)

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage transaction categories",
}

var categoryAddIncome bool
var categoryAddIcon string

var categoryAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(func(authenticator *auth.Authenticator, categories *service.CategoryService) error {
			user, err := requireUser(cmd.Context(), authenticator)
			if err != nil {
				return err
			}
			created, err := categories.Create(cmd.Context(), user.ID, args[0], categoryAddIcon, categoryAddIncome)
			if err != nil {
				return err
			}
			pterm.Success.Printf("Added category %s\n", created.Name)
			return nil
		})
	},
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(func(authenticator *auth.Authenticator, categories *service.CategoryService) error {
			user, err := requireUser(cmd.Context(), authenticator)
			if err != nil {
				return err
			}
			listed, err := categories.List(cmd.Context(), user.ID)
			if err != nil {
				return err
			}
			if len(listed) == 0 {
				pterm.Info.Println("No categories yet")
				return nil
			}

			rows := pterm.TableData{{"Name", "Kind", "ID"}}
			for _, c := range listed {
				kind := "expense"
				if c.IsIncome {
					kind = "income"
				}
				rows = append(rows, []string{c.Name, kind, c.ID.String()})
			}
			return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
		})
	},
}

func init() {
	categoryAddCmd.Flags().BoolVar(&categoryAddIncome, "income", false, "Mark the category as income")
	categoryAddCmd.Flags().StringVar(&categoryAddIcon, "icon", "", "Icon name for the category")
	categoryCmd.AddCommand(categoryAddCmd)
	categoryCmd.AddCommand(categoryListCmd)
	rootCmd.AddCommand(categoryCmd)
}
