package cli

import (
	"fmt"
	"io"

	"github.com/dmitrijs2005/travelmate/internal/client/session"
	"github.com/dmitrijs2005/travelmate/internal/common"
	"github.com/spf13/cobra"
)

type appFunc func() *App

func newRegisterCmd(app appFunc) *cobra.Command {
	var username, email, fullName string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()
			var err error
			if username, err = a.prompt(username, "Enter username"); err != nil {
				return err
			}
			if email, err = a.prompt(email, "Enter email"); err != nil {
				return err
			}

			password, err := a.password()
			if err != nil {
				return err
			}
			defer common.WipeByteArray(password)

			var name *string
			if fullName != "" {
				name = &fullName
			}
			u, err := a.api.Register(cmd.Context(), username, email, password, name)
			if err != nil {
				return err
			}
			a.printf("Registered %s (id %d). Run 'travelmate login' to sign in.\n", u.Username, u.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "username (3-50 characters)")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&fullName, "full-name", "", "full name")
	return cmd
}

func newLoginCmd(app appFunc) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()
			var err error
			if email, err = a.prompt(email, "Enter email"); err != nil {
				return err
			}

			password, err := a.password()
			if err != nil {
				return err
			}
			defer common.WipeByteArray(password)

			res, err := a.api.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			sess := session.Session{
				ServerURL: a.api.BaseURL(),
				Token:     res.Token,
				UserID:    res.User.ID,
				Username:  res.User.Username,
				Email:     res.User.Email,
			}
			if err := a.sessions.Save(cmd.Context(), sess); err != nil {
				return fmt.Errorf("save session: %w", err)
			}
			a.session = &sess
			a.printf("Logged in as %s\n", res.User.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	return cmd
}

func newLogoutCmd(app appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()
			if err := a.sessions.Clear(cmd.Context()); err != nil {
				return err
			}
			a.session = nil
			a.printf("Logged out\n")
			return nil
		},
	}
}

func newWhoamiCmd(app appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()
			if err := a.requireLogin(); err != nil {
				return err
			}
			u, err := a.api.Me(cmd.Context())
			if err != nil {
				return a.checkAuth(cmd.Context(), err)
			}
			return a.render(u, func(w io.Writer) {
				fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tFULL NAME")
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", u.ID, u.Username, u.Email, deref(u.FullName))
			})
		},
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
