package main

import (
	"github.com/spf13/cobra"

	"github.com/equinor/fmu-settings-api/internal/config"
	"github.com/equinor/fmu-settings-api/internal/server"
	"github.com/equinor/fmu-settings-api/pkg/logging"
	"github.com/equinor/fmu-settings-api/pkg/schema"
)

// newServeCmd creates the serve command.
func newServeCmd(flags *rootFlags) *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the fmu-settings API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(flags.configFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("host") {
				cfg.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}

			schemas, err := schema.New()
			if err != nil {
				return err
			}

			logger := logging.Default()
			srv := server.New(schemas, cfg, logger)
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&host, "host", "localhost", "interface to listen on")
	cmd.Flags().IntVar(&port, "port", 8001, "port to listen on")

	return cmd
}
