package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/travelmate/internal/client/models"
	"github.com/dmitrijs2005/travelmate/internal/netx"
	"github.com/spf13/cobra"
)

func newExpensesCmd(app appFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expenses",
		Short: "Track trip expenses",
	}
	cmd.AddCommand(newExpensesListCmd(app), newExpensesAddCmd(app))
	return cmd
}

func newExpensesListCmd(app appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "list TRIP_ID",
		Short: "List the expenses of a trip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			if err := a.requireLogin(); err != nil {
				return err
			}
			tripID, err := parseID(args[0], "trip")
			if err != nil {
				return err
			}
			ex, err := a.api.ListExpenses(cmd.Context(), tripID)
			if err != nil {
				return a.checkAuth(cmd.Context(), err)
			}
			return a.render(ex, func(w io.Writer) {
				fmt.Fprintln(w, "ID\tDATE\tCATEGORY\tAMOUNT\tDESCRIPTION\tRECEIPT")
				for _, e := range ex {
					fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%s\t%s\n",
						e.ID, e.Date, e.Category, e.Amount, deref(e.Description), deref(e.ReceiptImage))
				}
			})
		},
	}
}

func newExpensesAddCmd(app appFunc) *cobra.Command {
	var (
		in      models.ExpenseInput
		desc    string
		receipt string
	)

	cmd := &cobra.Command{
		Use:   "add TRIP_ID",
		Short: "Record an expense, optionally with a receipt photo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			if err := a.requireLogin(); err != nil {
				return err
			}
			tripID, err := parseID(args[0], "trip")
			if err != nil {
				return err
			}
			if desc != "" {
				in.Description = &desc
			}

			var part *netx.FilePart
			if receipt != "" {
				f, err := os.Open(receipt)
				if err != nil {
					return err
				}
				defer f.Close()
				part = &netx.FilePart{Name: receipt, Body: f}
			}

			e, err := a.api.AddExpense(cmd.Context(), tripID, in, part)
			if err != nil {
				return a.checkAuth(cmd.Context(), err)
			}
			a.printf("Added expense %d: %.2f %s\n", e.ID, e.Amount, e.Category)
			return nil
		},
	}

	f := cmd.Flags()
	f.Float64Var(&in.Amount, "amount", 0, "amount spent")
	f.StringVar(&in.Category, "category", "", "Food, Transport, Accommodation, Activities, Shopping or Other")
	f.StringVar(&in.Date, "date", "", "date, YYYY-MM-DD")
	f.StringVar(&desc, "description", "", "description")
	f.StringVar(&receipt, "receipt", "", "receipt image file")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}
