package cmd

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/prometheus/common/log"
	"github.com/spf13/cobra"

	"github.com/polaroidwall/polaroidwall/pkg/client"
	"github.com/polaroidwall/polaroidwall/pkg/client/config"
	"github.com/polaroidwall/polaroidwall/pkg/models"
	"github.com/polaroidwall/polaroidwall/pkg/version"
)

const quickStart string = `
  # Run the server against a local database
  DATABASE_URL=postgres://localhost/polaroids polaroids server

  # Pin a photo to the wall and look at it
  polaroids add beach.jpg "Beach" 2024-01-01
  polaroids list
`

// options are shared by every client command
type options struct {
	configPath string
}

func (o *options) loadConfig() (config.Config, error) {
	path, err := o.path()
	if err != nil {
		return config.Config{}, err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return cfg, errors.Wrap(err, "Could not load configuration")
	}
	return cfg, nil
}

func (o *options) path() (string, error) {
	if o.configPath != "" {
		return o.configPath, nil
	}
	return config.DefaultPath()
}

func (o *options) client() (client.Client, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return client.Client{}, err
	}
	return client.Client{URL: cfg.URL}, nil
}

func Root() *cobra.Command {
	logger := log.With("app", "polaroids")

	command := &cobra.Command{
		Use:          "polaroids",
		Version:      version.Version,
		Short:        "A wall of captioned, dated photos",
		Example:      quickStart,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
	}

	opts := &options{}
	command.PersistentFlags().StringVar(&opts.configPath, "config", "", "Client configuration file (default ~/.polaroids.toml)")

	command.AddCommand(Server(logger))
	command.AddCommand(Config(opts))
	command.AddCommand(List(opts))
	command.AddCommand(Add(opts))
	command.AddCommand(Edit(opts))
	command.AddCommand(Delete(opts))

	return command
}

func printPolaroid(w io.Writer, p models.Polaroid) {
	fmt.Fprintf(w, "%s [%s] %s %s\n", p.ID, p.Date, p.Caption, p.Image)
}
