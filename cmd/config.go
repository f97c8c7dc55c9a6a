package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/molotov-go/internal/app"
)

var (
	//nolint:gochecknoglobals // Cobra command requires a global definition.
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Configuration management commands",
		Long: `Manage the molotov configuration file.

Use 'config init' to write a configuration file filled with the defaults.`,
		// The configuration file may not exist yet, so it is not loaded.
		PersistentPreRun: func(*cobra.Command, []string) {},
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Writes the default configuration to the path given by --config,
or to .molotov.yaml in the current folder.

An existing file is never overwritten.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			app.ExecuteConfigInitCommand(cmd.Context(), configFilenameFromFlag)
		},
	}
)

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	// Add init subcommand to config command.
	configCmd.AddCommand(configInitCmd)

	// Add config command to root command.
	rootCmd.AddCommand(configCmd)
}
