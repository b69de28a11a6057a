package cmd

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/revfix/run"
)

var fibCmd = &cobra.Command{
	Use:   "fib",
	Short: "Run the reversible Fibonacci sequence",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNamed(cmd, []string{"fib"})
	},
}

var counterCmd = &cobra.Command{
	Use:   "counter",
	Short: "Run the counter walker",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNamed(cmd, []string{"counter"})
	},
}

var runCmd = &cobra.Command{
	Use:   "run [procedures...]",
	Short: "Run the named procedures in order (all when none are given)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNamed(cmd, args)
	},
}

func runNamed(cmd *cobra.Command, names []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()
	return runProcedures(ctx, logger, names, config, cmd.OutOrStdout())
}

func runProcedures(ctx context.Context, logger *zap.Logger, names []string, cfg run.Config, w io.Writer) error {
	procs, err := run.Resolve(names)
	if err != nil {
		return err
	}
	_, err = run.ProcessAll(ctx, logger, procs, cfg, w)
	return err
}
