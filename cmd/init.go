package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/revfix/run"
)

// initCmd: revfix init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	// the config file may not exist yet, so skip loading it
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = newLogger(verbose)
		return err
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			path = run.DefaultConfigFile
		}
		if err := run.WriteConfig(path, run.DefaultConfig()); err != nil {
			return fmt.Errorf("initializing config file: %w", err)
		}
		logger.Debug("Config written", zap.String("path", path))
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created/updated: %s\n", path)
		return nil
	},
}
