// Package run measures fixture procedures and reports their results.
package run

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gnolang/revfix/formatter"
	"github.com/gnolang/revfix/internal/probe"
	"github.com/gnolang/revfix/internal/stats"
	tt "github.com/gnolang/revfix/internal/types"
)

// Options configures a single measured run.
type Options struct {
	Steps int
	// Probe reads process memory before and after the run. Defaults to probe.Heap.
	Probe probe.Func
	// Out receives the procedure's progress lines. Nil discards them.
	Out io.Writer
}

// Execute runs proc once, timing it and sampling memory on either side.
// Procedures cannot fail; the only error is a context that is already done.
func Execute(ctx context.Context, logger *zap.Logger, proc Procedure, opts Options) (tt.Summary, error) {
	if err := ctx.Err(); err != nil {
		return tt.Summary{}, err
	}

	memProbe := opts.Probe
	if memProbe == nil {
		memProbe = probe.Heap
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	bw := bufio.NewWriter(out)

	summary := tt.Summary{
		RunID:     uuid.NewString(),
		Procedure: proc.Name(),
		Steps:     opts.Steps,
	}
	if logger != nil {
		logger.Debug("Starting procedure",
			zap.String("run_id", summary.RunID),
			zap.String("procedure", summary.Procedure),
			zap.Int("steps", summary.Steps))
	}

	var st stats.Stats
	startMemory := memProbe()
	startTime := time.Now()

	summary.Outcome = proc.Run(opts.Steps, bw, &st)
	flushErr := bw.Flush()

	summary.Elapsed = time.Since(startTime)
	summary.MemoryDelta = probe.Delta(startMemory, memProbe())
	summary.Assignments = st.Assignments
	summary.Evaluations = st.Evaluations

	if logger != nil {
		if flushErr != nil {
			logger.Warn("Failed to write procedure output",
				zap.String("run_id", summary.RunID), zap.Error(flushErr))
		}
		logger.Info("Procedure finished",
			zap.String("run_id", summary.RunID),
			zap.String("procedure", summary.Procedure),
			zap.String("status", string(summary.Outcome.Status)),
			zap.String("detail", summary.Outcome.Detail),
			zap.Duration("elapsed", summary.Elapsed),
			zap.Int64("memory_delta", summary.MemoryDelta),
			zap.Int("assignments", summary.Assignments),
			zap.Int("evaluations", summary.Evaluations))
	}
	return summary, nil
}

// ProcessAll executes procs in order against config, writing their output
// and summaries to w. In JSON mode procedure lines are dropped and each run
// is written as one JSON object.
func ProcessAll(
	ctx context.Context,
	logger *zap.Logger,
	procs []Procedure,
	config Config,
	w io.Writer,
) ([]tt.Summary, error) {
	memProbe, err := probe.ByName(config.Probe, logger)
	if err != nil {
		return nil, err
	}

	isJSON := config.Output.Format == FormatJSON
	summaries := make([]tt.Summary, 0, len(procs))
	for _, proc := range procs {
		opts := Options{Steps: config.Steps, Probe: memProbe, Out: w}
		if isJSON {
			opts.Out = nil
		}

		summary, err := Execute(ctx, logger, proc, opts)
		if err != nil {
			return summaries, fmt.Errorf("running %s: %w", proc.Name(), err)
		}
		summaries = append(summaries, summary)

		if isJSON {
			if err := formatter.WriteJSON(w, summary); err != nil {
				return summaries, fmt.Errorf("writing %s summary: %w", proc.Name(), err)
			}
			continue
		}
		if _, err := io.WriteString(w, formatter.FormatSummary(summary)); err != nil {
			return summaries, fmt.Errorf("writing %s summary: %w", proc.Name(), err)
		}
	}
	return summaries, nil
}
