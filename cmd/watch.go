package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/revfix/internal/watch"
	"github.com/gnolang/revfix/run"
)

var watchCmd = &cobra.Command{
	Use:   "watch [procedures...]",
	Short: "Re-run procedures whenever the config file changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			path = run.DefaultConfigFile
		}
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("watch needs a config file (try `revfix init`): %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		out := cmd.OutOrStdout()
		rerun := func() {
			cfg, err := run.LoadConfig(path)
			if err == nil {
				cfg, err = applyFlags(cmd, cfg)
			}
			if err != nil {
				logger.Error("Reloading config failed", zap.String("path", path), zap.Error(err))
				return
			}
			if err := runProcedures(ctx, logger, args, cfg, out); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("Run failed", zap.Error(err))
			}
		}

		// initial pass with the config already loaded by the root command
		if err := runProcedures(ctx, logger, args, config, out); err != nil {
			return err
		}

		w, err := watch.New(path, logger, rerun)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "watching %s (Ctrl-C to stop)\n", path)
		return w.Run(ctx)
	},
}
