package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// rootFlags holds flags shared by all subcommands.
type rootFlags struct {
	configFile string
}

// newRootCmd creates the root command.
func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "fmu-settings-api",
		Short: "API server for FMU project settings",
		Long: `fmu-settings-api serves the settings of an FMU project over HTTP:
session management, resource cache revisions, restore previews, and
masterdata mappings.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flags.configFile, "config", "", "path to a config file")

	root.AddCommand(newServeCmd(flags))
	root.AddCommand(newVersionCmd())

	return root
}

// newVersionCmd creates the version command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fmu-settings-api %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}
