package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/polaroidwall/polaroidwall/pkg/client"
	"github.com/polaroidwall/polaroidwall/pkg/models"
)

func List(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List the polaroids on the wall",
		Example: "polaroids list",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}

			polaroids, err := c.ListPolaroids(context.Background())
			if err != nil {
				return errors.Wrap(err, "Could not fetch polaroids")
			}

			for _, p := range polaroids {
				printPolaroid(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
}

func Add(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "add",
		Short: "Upload a photo as a new polaroid",
		Example: `
polaroids add [file] [caption] [date]

[file] path to the image to upload
[date] free text, conventionally YYYY-MM-DD`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}

			file, err := os.Open(args[0])
			if err != nil {
				return errors.Wrap(err, "Could not open image")
			}
			defer file.Close()

			polaroid, err := c.CreatePolaroid(
				context.Background(),
				client.Upload{Filename: args[0], Content: file},
				args[1],
				args[2],
			)
			if err != nil {
				return errors.Wrap(err, "Could not create polaroid")
			}

			printPolaroid(cmd.OutOrStdout(), polaroid)
			return nil
		},
	}
}

func Edit(opts *options) *cobra.Command {
	var caption, date string

	c := &cobra.Command{
		Use:     "edit",
		Short:   "Change the caption or date of a polaroid",
		Example: `polaroids edit [id] --caption "Beach Day"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var update models.PolaroidUpdate
			if cmd.Flags().Changed("caption") {
				update.Caption = &caption
			}
			if cmd.Flags().Changed("date") {
				update.Date = &date
			}
			if update.Caption == nil && update.Date == nil {
				return errors.New("Nothing to change: pass --caption and/or --date")
			}

			apiClient, err := opts.client()
			if err != nil {
				return err
			}

			polaroid, err := apiClient.UpdatePolaroid(context.Background(), args[0], update)
			if err != nil {
				return errors.Wrap(err, "Could not update polaroid")
			}

			printPolaroid(cmd.OutOrStdout(), polaroid)
			return nil
		},
	}

	c.Flags().StringVar(&caption, "caption", "", "New caption")
	c.Flags().StringVar(&date, "date", "", "New date")
	return c
}

func Delete(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "delete",
		Short:   "Remove a polaroid and its image",
		Example: "polaroids delete [id]",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}

			if err := c.DestroyPolaroid(context.Background(), args[0]); err != nil {
				return errors.Wrap(err, "Could not delete polaroid")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}
