package cli

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/dmitrijs2005/travelmate/internal/client/models"
	"github.com/spf13/cobra"
)

func parseID(s, what string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", what, s)
	}
	return id, nil
}

func money(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

func newTripsCmd(app appFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trips",
		Short: "Manage your trips",
	}
	cmd.AddCommand(
		newTripsListCmd(app),
		newTripsShowCmd(app),
		newTripsCreateCmd(app),
		newTripsDeleteCmd(app),
		newTripsSummaryCmd(app),
	)
	return cmd
}

func newTripsListCmd(app appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your trips, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()
			if err := a.requireLogin(); err != nil {
				return err
			}
			trips, err := a.api.ListTrips(cmd.Context())
			if err != nil {
				return a.checkAuth(cmd.Context(), err)
			}
			return a.render(trips, func(w io.Writer) {
				fmt.Fprintln(w, "ID\tNAME\tDESTINATION\tDATES\tDAYS\tSTATUS\tBUDGET\tSPENT")
				for _, t := range trips {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s..%s\t%d\t%s\t%s\t%.2f\n",
						t.ID, t.Name, t.Destination, t.StartDate, t.EndDate, t.Days, t.Status, money(t.Budget), t.TotalExpenses)
				}
			})
		},
	}
}

func newTripsShowCmd(app appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "show TRIP_ID",
		Short: "Show a trip with its expenses and images",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			if err := a.requireLogin(); err != nil {
				return err
			}
			id, err := parseID(args[0], "trip")
			if err != nil {
				return err
			}
			t, err := a.api.GetTrip(cmd.Context(), id)
			if err != nil {
				return a.checkAuth(cmd.Context(), err)
			}
			return a.render(t, func(w io.Writer) {
				fmt.Fprintf(w, "Trip:\t%s (#%d)\n", t.Name, t.ID)
				fmt.Fprintf(w, "Destination:\t%s\n", t.Destination)
				fmt.Fprintf(w, "Dates:\t%s..%s (%d days)\n", t.StartDate, t.EndDate, t.Days)
				fmt.Fprintf(w, "Status:\t%s\n", t.Status)
				fmt.Fprintf(w, "Budget:\t%s\n", money(t.Budget))
				fmt.Fprintf(w, "Spent:\t%.2f in %d expenses\n", t.TotalExpenses, len(t.Expenses))
				fmt.Fprintf(w, "Images:\t%d\n", len(t.Images))
			})
		},
	}
}

func newTripsCreateCmd(app appFunc) *cobra.Command {
	var (
		in     models.TripInput
		budget float64
		desc   string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Plan a new trip",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()
			if err := a.requireLogin(); err != nil {
				return err
			}
			if cmd.Flags().Changed("budget") {
				in.Budget = &budget
			}
			if desc != "" {
				in.Description = &desc
			}
			t, err := a.api.CreateTrip(cmd.Context(), in)
			if err != nil {
				return a.checkAuth(cmd.Context(), err)
			}
			a.printf("Created trip %d: %s\n", t.ID, t.Name)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.Name, "name", "", "trip name")
	f.StringVar(&in.Destination, "destination", "", "destination")
	f.StringVar(&in.StartDate, "start", "", "start date, YYYY-MM-DD")
	f.StringVar(&in.EndDate, "end", "", "end date, YYYY-MM-DD")
	f.Float64Var(&budget, "budget", 0, "budget")
	f.StringVar(&desc, "description", "", "description")
	f.StringVar(&in.Status, "status", "", "planning, ongoing or completed")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("destination")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func newTripsDeleteCmd(app appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "delete TRIP_ID",
		Short: "Delete a trip and everything attached to it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			if err := a.requireLogin(); err != nil {
				return err
			}
			id, err := parseID(args[0], "trip")
			if err != nil {
				return err
			}
			if err := a.api.DeleteTrip(cmd.Context(), id); err != nil {
				return a.checkAuth(cmd.Context(), err)
			}
			a.printf("Deleted trip %d\n", id)
			return nil
		},
	}
}

func newTripsSummaryCmd(app appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "summary TRIP_ID",
		Short: "Show spending against the budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			if err := a.requireLogin(); err != nil {
				return err
			}
			id, err := parseID(args[0], "trip")
			if err != nil {
				return err
			}
			s, err := a.api.TripSummary(cmd.Context(), id)
			if err != nil {
				return a.checkAuth(cmd.Context(), err)
			}
			return a.render(s, func(w io.Writer) {
				fmt.Fprintf(w, "Total:\t%.2f (%d expenses, %d days)\n", s.TotalExpenses, s.ExpenseCount, s.Days)
				fmt.Fprintf(w, "Remaining:\t%s\n", money(s.RemainingBudget))
				cats := make([]string, 0, len(s.ExpensesByCategory))
				for c := range s.ExpensesByCategory {
					cats = append(cats, c)
				}
				sort.Strings(cats)
				for _, c := range cats {
					fmt.Fprintf(w, "  %s\t%.2f\n", c, s.ExpensesByCategory[c])
				}
			})
		},
	}
}
