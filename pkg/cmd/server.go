package cmd

import (
	"github.com/prometheus/common/log"
	"github.com/spf13/cobra"

	"github.com/polaroidwall/polaroidwall/pkg/server"
)

func Server(logger log.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Start the polaroids server",
		Long:  "Start the polaroids server. It is configured through environment variables, see DATABASE_URL, PORT and UPLOAD_DIR.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := server.Run(logger)
			if err != nil {
				logger.With("error", err.Error()).Fatal("Failed to start server")
			}
			return nil
		},
	}
}
