package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dmitrijs2005/travelmate/internal/client/client"
	"github.com/dmitrijs2005/travelmate/internal/client/config"
	"github.com/dmitrijs2005/travelmate/internal/client/session"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

var errNotLoggedIn = errors.New("not logged in, run 'travelmate login' first")

// App is the state shared by the commands of one invocation.
type App struct {
	config   *config.Config
	api      *client.HTTPClient
	sessions *session.Store
	session  *session.Session
	reader   *bufio.Reader
	out      io.Writer
	output   string
}

func newApp(ctx context.Context, c *config.Config, in io.Reader, out io.Writer, output string) (*App, error) {
	store, err := session.Open(ctx, c.SessionFile)
	if err != nil {
		return nil, err
	}

	a := &App{
		config:   c,
		api:      client.NewHTTPClient(c.ServerURL, c.Timeout),
		sessions: store,
		reader:   bufio.NewReader(in),
		out:      out,
		output:   output,
	}

	sess, err := store.Load(ctx)
	switch {
	case errors.Is(err, session.ErrNoSession):
	case err != nil:
		_ = store.Close()
		return nil, err
	case sess.ServerURL == a.api.BaseURL():
		a.session = sess
		a.api.SetToken(sess.Token)
	}
	return a, nil
}

func (a *App) Close() error {
	return a.sessions.Close()
}

func (a *App) requireLogin() error {
	if a.session == nil {
		return errNotLoggedIn
	}
	return nil
}

// checkAuth turns a 401 into a hint to log in again and forgets the
// stale session.
func (a *App) checkAuth(ctx context.Context, err error) error {
	if errors.Is(err, client.ErrUnauthorized) && a.session != nil {
		_ = a.sessions.Clear(ctx)
		a.session = nil
		return fmt.Errorf("%w (session expired, run 'travelmate login')", err)
	}
	return err
}

func (a *App) password() ([]byte, error) {
	if stdinIsTerminal() {
		return GetPassword(a.out)
	}
	pw, err := GetSimpleText(a.reader, "Enter password", a.out)
	if err != nil {
		return nil, err
	}
	return []byte(pw), nil
}

// prompt returns v, or asks for it when v is empty.
func (a *App) prompt(v, label string) (string, error) {
	if v != "" {
		return v, nil
	}
	return GetSimpleText(a.reader, label, a.out)
}

func (a *App) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.out, format, args...)
}

// render prints v as JSON, or calls table with a tabwriter.
func (a *App) render(v any, table func(w io.Writer)) error {
	if a.output == outputJSON {
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	table(tw)
	return tw.Flush()
}
