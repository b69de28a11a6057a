package run

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	tt "github.com/gnolang/revfix/internal/types"
)

// Bench executes proc repeat times with its output discarded and aggregates
// the elapsed times. Progress is drawn on progress when it is non-nil.
func Bench(
	ctx context.Context,
	logger *zap.Logger,
	proc Procedure,
	opts Options,
	repeat int,
	progress io.Writer,
) (tt.BenchResult, error) {
	if repeat < 1 {
		return tt.BenchResult{}, fmt.Errorf("repeat must be at least 1, got %d", repeat)
	}
	if progress == nil {
		progress = io.Discard
	}
	opts.Out = nil

	bar := progressbar.NewOptions(repeat,
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription(proc.Name()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	result := tt.BenchResult{Procedure: proc.Name(), Steps: opts.Steps}
	var total time.Duration
	for i := 0; i < repeat; i++ {
		summary, err := Execute(ctx, nil, proc, opts)
		if err != nil {
			return result, fmt.Errorf("bench %s run %d: %w", proc.Name(), i+1, err)
		}

		if i == 0 {
			result.Min, result.Max = summary.Elapsed, summary.Elapsed
			result.Assignments, result.Evaluations = summary.Assignments, summary.Evaluations
		}
		result.Min = min(result.Min, summary.Elapsed)
		result.Max = max(result.Max, summary.Elapsed)
		total += summary.Elapsed
		result.Repeat++

		_ = bar.Add(1)
	}
	_ = bar.Finish()
	fmt.Fprintln(progress)

	result.Mean = total / time.Duration(result.Repeat)
	if logger != nil {
		logger.Info("Bench finished",
			zap.String("procedure", result.Procedure),
			zap.Int("repeat", result.Repeat),
			zap.Duration("mean", result.Mean))
	}
	return result, nil
}
