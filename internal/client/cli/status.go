package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/travelmate/internal/client/client"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type statusReport struct {
	API        string `json:"api"`
	APIError   string `json:"api_error,omitempty"`
	Health     string `json:"health,omitempty"`
	HealthErr  string `json:"health_error,omitempty"`
	LoggedInAs string `json:"logged_in_as,omitempty"`
}

func newStatusCmd(app appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check that the server is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()
			ctx, cancel := context.WithTimeout(cmd.Context(), a.config.Timeout)
			defer cancel()

			var rep statusReport
			var g errgroup.Group
			g.Go(func() error {
				msg, err := a.api.Ping(ctx)
				if err != nil {
					rep.APIError = err.Error()
					return err
				}
				rep.API = msg
				return nil
			})
			if a.config.HealthAddr != "" {
				g.Go(func() error {
					st, err := client.CheckHealth(ctx, a.config.HealthAddr, client.HealthServiceName)
					if err != nil {
						rep.HealthErr = err.Error()
						return err
					}
					rep.Health = st
					return nil
				})
			}
			failed := g.Wait()

			if a.session != nil {
				rep.LoggedInAs = a.session.Username
			}

			if err := a.render(rep, func(w io.Writer) {
				fmt.Fprintf(w, "API:\t%s\n", orElse(rep.API, rep.APIError))
				if a.config.HealthAddr != "" {
					fmt.Fprintf(w, "Health:\t%s\n", orElse(rep.Health, rep.HealthErr))
				}
				fmt.Fprintf(w, "Session:\t%s\n", orElse(rep.LoggedInAs, "not logged in"))
			}); err != nil {
				return err
			}
			if failed != nil {
				return errors.New("server is not healthy")
			}
			return nil
		},
	}
}

func orElse(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
