package cmd

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/polaroidwall/polaroidwall/pkg/client/config"
)

func Config(opts *options) *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Get and set configuration options",
	}
	c.AddCommand(ConfigShow(opts))
	c.AddCommand(ConfigSet(opts))
	return c
}

func ConfigShow(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "show",
		Short:   "Show the current configuration",
		Example: "polaroids config show",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "URL: %s\n", cfg.URL)
			return nil
		},
	}
}

func ConfigSet(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "set",
		Short: "Set a config value",
		Example: `
polaroids config set [key] [value]

[key] can take the following values:
    url: The base URL of the polaroids server, e.g. http://localhost:5000`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			val := args[1]

			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			switch strings.ToLower(key) {
			case "url":
				cfg.URL = strings.TrimRight(val, "/")
			default:
				return errors.New("Invalid key")
			}

			path, err := opts.path()
			if err != nil {
				return err
			}

			err = config.Store(cfg, path)
			if err != nil {
				return errors.Wrap(err, "Could not store configuration")
			}
			return nil
		},
	}
}
