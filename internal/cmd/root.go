package cmd

import (
	"github.com/spf13/cobra"

	"github.com/shellpack/cli/internal/config"
	"github.com/shellpack/cli/internal/output"
	"github.com/shellpack/cli/internal/version"
)

var (
	// Global flags
	configFlag     string
	verboseFlag    bool
	timestampsFlag bool

	// Loaded configuration (set during PersistentPreRunE)
	packConfig *config.Config
)

// NewRootCmd creates the root command for the shellpack CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "shellpack",
		Short: "Desktop application packaging CLI",
		Long: `shellpack packages a desktop-shell application for distribution.

It bundles the web client, the server runtime script, and the desktop
main-process script into a single output directory, ready to hand to the
desktop-shell packager.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeGlobals(cmd)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Path to config file (env: SHELLPACK_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", false, "Show timestamps in log output")

	// Add subcommands
	rootCmd.AddCommand(NewPackCmd())
	rootCmd.AddCommand(NewCleanCmd())
	rootCmd.AddCommand(NewWatchCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initializeGlobals sets up logging and loads configuration.
func initializeGlobals(cmd *cobra.Command) error {
	logCfg := output.LogConfig{
		Verbose: verboseFlag,
	}
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(timestampsFlag)
	}
	output.SetupLogging(logCfg)

	info := version.Get()
	output.Debug("shellpack started", "version", info.Version)

	loaded, err := config.NewLoader().LoadWithDefaults(configFlag)
	if err != nil {
		return WrapValidation(err, "loading configuration")
	}
	packConfig = loaded

	output.Debug("configuration loaded",
		"output", packConfig.Output,
		"server", packConfig.Server.Entry,
		"main", packConfig.Main.Entry,
		"externals", len(packConfig.Externals),
	)

	return nil
}

// GetConfig returns the loaded configuration.
func GetConfig() *config.Config {
	return packConfig
}
