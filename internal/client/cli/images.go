package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/travelmate/internal/netx"
	"github.com/spf13/cobra"
)

func newImagesCmd(app appFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "images",
		Short: "Manage trip photos",
	}
	cmd.AddCommand(newImagesListCmd(app), newImagesUploadCmd(app))
	return cmd
}

func newImagesListCmd(app appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "list TRIP_ID",
		Short: "List the photos of a trip",
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
			imgs, err := a.api.ListImages(cmd.Context(), tripID)
			if err != nil {
				return a.checkAuth(cmd.Context(), err)
			}
			return a.render(imgs, func(w io.Writer) {
				fmt.Fprintln(w, "ID\tCAPTION\tURL")
				for _, img := range imgs {
					fmt.Fprintf(w, "%d\t%s\t%s\n", img.ID, deref(img.Caption), img.ImageURL)
				}
			})
		},
	}
}

func newImagesUploadCmd(app appFunc) *cobra.Command {
	var caption string

	cmd := &cobra.Command{
		Use:   "upload TRIP_ID FILE",
		Short: "Upload a photo (jpeg, png, gif or webp)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			if err := a.requireLogin(); err != nil {
				return err
			}
			tripID, err := parseID(args[0], "trip")
			if err != nil {
				return err
			}

			f, err := os.Open(args[1])
			if err != nil {
				return err
			}
			defer f.Close()

			var c *string
			if cmd.Flags().Changed("caption") {
				c = &caption
			}
			img, err := a.api.UploadImage(cmd.Context(), tripID, netx.FilePart{Name: args[1], Body: f}, c)
			if err != nil {
				return a.checkAuth(cmd.Context(), err)
			}
			a.printf("Uploaded image %d: %s\n", img.ID, img.ImageURL)
			return nil
		},
	}

	cmd.Flags().StringVar(&caption, "caption", "", "caption, up to 255 characters")
	return cmd
}
