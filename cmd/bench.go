package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/revfix/formatter"
	"github.com/gnolang/revfix/internal/probe"
	"github.com/gnolang/revfix/run"
)

var repeat int

var benchCmd = &cobra.Command{
	Use:   "bench [procedures...]",
	Short: "Run procedures repeatedly and report timing spread",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()
		return runBench(ctx, logger, args, config, repeat, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	benchCmd.Flags().IntVarP(&repeat, "repeat", "n", 10, "Number of runs per procedure")
}

func runBench(ctx context.Context, logger *zap.Logger, names []string, cfg run.Config, repeat int, w, progress io.Writer) error {
	procs, err := run.Resolve(names)
	if err != nil {
		return err
	}
	memProbe, err := probe.ByName(cfg.Probe, logger)
	if err != nil {
		return err
	}

	for _, proc := range procs {
		result, err := run.Bench(ctx, logger, proc, run.Options{Steps: cfg.Steps, Probe: memProbe}, repeat, progress)
		if err != nil {
			return err
		}
		fmt.Fprint(w, formatter.FormatBench(result))
	}
	return nil
}
