package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newCommentsCmd(app appFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comments",
		Short: "Read and write trip comments",
	}
	cmd.AddCommand(newCommentsListCmd(app), newCommentsAddCmd(app))
	return cmd
}

// Reading comments does not need a login.
func newCommentsListCmd(app appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "list TRIP_ID",
		Short: "List the comments on a trip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			tripID, err := parseID(args[0], "trip")
			if err != nil {
				return err
			}
			cs, err := a.api.ListTripComments(cmd.Context(), tripID)
			if err != nil {
				return err
			}
			return a.render(cs, func(w io.Writer) {
				fmt.Fprintln(w, "ID\tAUTHOR\tWHEN\tTEXT")
				for _, c := range cs {
					author := ""
					if c.User != nil {
						author = c.User.Username
					}
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", c.ID, author, c.CreatedAt.Format("2006-01-02 15:04"), c.CommentText)
				}
			})
		},
	}
}

func newCommentsAddCmd(app appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "add TRIP_ID [TEXT...]",
		Short: "Comment on a trip; the text is prompted for when not given",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			if err := a.requireLogin(); err != nil {
				return err
			}
			tripID, err := parseID(args[0], "trip")
			if err != nil {
				return err
			}

			text := strings.Join(args[1:], " ")
			if text == "" {
				if text, err = GetMultiline(a.reader, "Enter comment", a.out); err != nil {
					return err
				}
			}

			c, err := a.api.AddTripComment(cmd.Context(), tripID, text)
			if err != nil {
				return a.checkAuth(cmd.Context(), err)
			}
			a.printf("Added comment %d\n", c.ID)
			return nil
		},
	}
}
