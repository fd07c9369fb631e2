package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/travelmate/internal/client/config"
	"github.com/spf13/cobra"
)

// Execute runs the CLI and returns the process exit code.
func Execute(ctx context.Context) int {
	cmd := NewRootCmd(os.Stdin, os.Stdout)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// NewRootCmd builds the command tree. Commands read from in and write to out.
func NewRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	var (
		configFile  string
		serverURL   string
		healthAddr  string
		sessionFile string
		output      string
		timeout     time.Duration
		app         *App
	)

	rootCmd := &cobra.Command{
		Use:           "travelmate",
		Short:         "TravelMate command-line client",
		Long:          "Command-line client for the TravelMate trip planning API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if output != outputTable && output != outputJSON {
				return fmt.Errorf("unsupported output format %q: use 'table' or 'json'", output)
			}

			cfg, err := config.LoadConfig(configFile)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("server") {
				cfg.ServerURL = serverURL
			}
			if flags.Changed("health-addr") {
				cfg.HealthAddr = healthAddr
			}
			if flags.Changed("session") {
				cfg.SessionFile = sessionFile
			}
			if flags.Changed("timeout") {
				cfg.Timeout = timeout
			}

			app, err = newApp(cmd.Context(), cfg, in, out, output)
			return err
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if app == nil {
				return nil
			}
			return app.Close()
		},
	}
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configFile, "config", "c", "", "JSON config file")
	pf.StringVarP(&serverURL, "server", "s", "", "API base URL (default http://localhost:5000)")
	pf.StringVar(&healthAddr, "health-addr", "", "gRPC health address, empty to skip")
	pf.StringVar(&sessionFile, "session", "", "session database file")
	pf.StringVarP(&output, "output", "o", outputTable, "output format (table, json)")
	pf.DurationVar(&timeout, "timeout", 0, "request timeout")

	// Subcommands get the App lazily: it only exists after PersistentPreRunE.
	get := func() *App { return app }

	rootCmd.AddCommand(
		newRegisterCmd(get),
		newLoginCmd(get),
		newLogoutCmd(get),
		newWhoamiCmd(get),
		newStatusCmd(get),
		newTripsCmd(get),
		newExpensesCmd(get),
		newImagesCmd(get),
		newCommentsCmd(get),
	)
	return rootCmd
}
