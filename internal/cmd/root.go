// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/opmodel/relkit/internal/config"
	"github.com/opmodel/relkit/internal/lifecycle"
	"github.com/opmodel/relkit/internal/output"
	"github.com/opmodel/relkit/internal/version"
)

// NewRootCmd creates the root command for the relkit CLI.
func NewRootCmd() *cobra.Command {
	gc := &config.GlobalConfig{}

	rootCmd := &cobra.Command{
		Use:   "relkit",
		Short: "Build, install and release Python desktop packages",
		Long: `relkit drives the packaging lifecycle of a Python desktop application.

It provides commands to:
  - Compile Qt resources into importable modules
  - Install the package, normally or in editable mode
  - Build, upload and tag a release
  - Print the resolved setup declaration and dependency set`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeGlobals(cmd, gc)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&gc.Flags.Project, "project", "C", "", "Project directory (env: RELKIT_PROJECT)")
	rootCmd.PersistentFlags().StringVar(&gc.Flags.Config, "config", "", "Path to config file (env: RELKIT_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&gc.Flags.Verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&gc.Flags.Timestamps, "timestamps", true, "Show timestamps in log output")

	table := lifecycle.DefaultTable()
	for _, entry := range table {
		rootCmd.AddCommand(NewLifecycleCmd(gc, entry))
	}
	rootCmd.AddCommand(NewMetadataCmd(gc, table))
	rootCmd.AddCommand(NewDepsCmd(gc))
	rootCmd.AddCommand(NewPackagesCmd(gc))
	rootCmd.AddCommand(NewCommandsCmd(table))
	rootCmd.AddCommand(NewConfigCmd(gc))
	rootCmd.AddCommand(NewVersionCmd(gc))

	return rootCmd
}

// initializeGlobals loads configuration and sets up logging.
func initializeGlobals(cmd *cobra.Command, gc *config.GlobalConfig) error {
	configPath, err := config.ResolveConfigPath(gc.Flags.Config)
	if err != nil {
		return err
	}
	gc.ConfigPath = configPath.Value

	// A broken config file must not block `config init` or `version`;
	// `config vet` reports it.
	cfg, err := config.NewLoader().LoadWithDefaults(gc.ConfigPath)
	if err != nil {
		output.Debug("config load error", "error", err)
		cfg = config.DefaultConfig()
	}
	gc.Config = cfg

	// Resolve timestamps: flag (if explicitly set) > config > default (nil = true)
	logCfg := output.LogConfig{Verbose: gc.Flags.Verbose}
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(gc.Flags.Timestamps)
	} else if cfg.Log.Timestamps != nil {
		logCfg.Timestamps = cfg.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	projectDir := config.ResolveProjectDir(gc.Flags.Project)
	gc.ProjectDir = projectDir.Value

	if gc.Flags.Verbose {
		info := version.Get()
		output.Debug("relkit started", "version", info.Version, "commit", info.GitCommit)
		config.LogResolvedValues([]config.ResolvedValue{configPath, projectDir})
	}

	return nil
}
