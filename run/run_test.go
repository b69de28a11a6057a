package run

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gnolang/revfix/internal/probe"
	tt "github.com/gnolang/revfix/internal/types"
)

func init() {
	color.NoColor = true
}

// readings returns a probe that yields values in order, repeating the last.
func readings(values ...uint64) probe.Func {
	i := 0
	return func() uint64 {
		v := values[i]
		if i < len(values)-1 {
			i++
		}
		return v
	}
}

func TestExecute(t *testing.T) {
	t.Parallel()
	logger, _ := zap.NewProduction()
	proc, err := Lookup("counter")
	require.NoError(t, err)

	var buf bytes.Buffer
	summary, err := Execute(context.Background(), logger, proc, Options{
		Steps: 1000,
		Probe: readings(4<<20, 5<<20),
		Out:   &buf,
	})
	require.NoError(t, err)

	_, err = uuid.Parse(summary.RunID)
	assert.NoError(t, err)
	assert.Equal(t, "counter", summary.Procedure)
	assert.Equal(t, 1000, summary.Steps)
	assert.Equal(t, int64(1<<20), summary.MemoryDelta)
	assert.Equal(t, 10005, summary.Assignments)
	assert.Equal(t, 10000, summary.Evaluations)
	assert.Positive(t, summary.Elapsed)
	assert.Equal(t, tt.StatusCompleted, summary.Outcome.Status)
	assert.Equal(t, 8000, strings.Count(buf.String(), "\n"))
}

func TestExecuteProbeMiss(t *testing.T) {
	t.Parallel()
	proc, err := Lookup("fib")
	require.NoError(t, err)

	summary, err := Execute(context.Background(), nil, proc, Options{
		Steps: 10,
		Probe: readings(0, 0),
	})
	require.NoError(t, err)
	assert.Zero(t, summary.MemoryDelta)
	assert.Equal(t, tt.StatusCompleted, summary.Outcome.Status)
}

func TestExecuteCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	proc, err := Lookup("fib")
	require.NoError(t, err)
	_, err = Execute(ctx, nil, proc, Options{Steps: 10})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProcessAllFibEndToEnd(t *testing.T) {
	t.Parallel()
	logger, _ := zap.NewProduction()
	procs, err := Resolve([]string{"fib"})
	require.NoError(t, err)

	var buf bytes.Buffer
	summaries, err := ProcessAll(context.Background(), logger, procs, DefaultConfig(), &buf)
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	var forward, reversedA, reversedB int
	var lastA string
	var summaryLines []string
	scanner := bufio.NewScanner(&buf)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	inSummary := false
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			inSummary = true
		case inSummary:
			summaryLines = append(summaryLines, line)
		case strings.HasPrefix(line, "Reversed value of a: "):
			reversedA++
			lastA = strings.TrimPrefix(line, "Reversed value of a: ")
		case strings.HasPrefix(line, "Reversed value of b: "):
			reversedB++
		default:
			require.Zero(t, reversedA, "forward value after reverse block: %s", line)
			forward++
		}
	}
	require.NoError(t, scanner.Err())

	assert.Equal(t, 998, forward)
	assert.Equal(t, 998, reversedA)
	assert.Equal(t, 998, reversedB)
	assert.Equal(t, "0", lastA)

	require.Len(t, summaryLines, 4)
	assert.True(t, strings.HasPrefix(summaryLines[0], "Execution Time: "))
	assert.True(t, strings.HasPrefix(summaryLines[1], "Memory Used: "))
	assert.Equal(t, "Total Assignments: 6992", summaryLines[2])
	assert.Equal(t, "Total Evaluations: 7985", summaryLines[3])
}

func TestProcessAllCounterText(t *testing.T) {
	t.Parallel()
	procs, err := Resolve([]string{"counter"})
	require.NoError(t, err)

	config := DefaultConfig()
	config.Steps = 3

	var buf bytes.Buffer
	_, err = ProcessAll(context.Background(), nil, procs, config, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Reverse Iteration 3 - Step 2: y = 20\nFinal x: 10\nFinal y: 20\n\nExecution Time: ")
	assert.Contains(t, out, "Total Assignments: 35\nTotal Evaluations: 30\n")
}

func TestProcessAllJSON(t *testing.T) {
	t.Parallel()
	config := DefaultConfig()
	config.Steps = 20
	config.Output.Format = FormatJSON

	var buf bytes.Buffer
	summaries, err := ProcessAll(context.Background(), nil, Procedures(), config, &buf)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	decoder := json.NewDecoder(&buf)
	for _, want := range summaries {
		var got map[string]any
		require.NoError(t, decoder.Decode(&got))
		assert.Equal(t, want.RunID, got["run_id"])
		assert.Equal(t, want.Procedure, got["procedure"])
		assert.Equal(t, float64(want.Assignments), got["assignments"])
	}
	assert.False(t, decoder.More())
}

func TestProcessAllBadProbe(t *testing.T) {
	t.Parallel()
	config := DefaultConfig()
	config.Probe = "swap"

	_, err := ProcessAll(context.Background(), nil, Procedures(), config, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestBench(t *testing.T) {
	t.Parallel()
	proc, err := Lookup("fib")
	require.NoError(t, err)

	var progress bytes.Buffer
	result, err := Bench(context.Background(), nil, proc, Options{Steps: 100}, 5, &progress)
	require.NoError(t, err)

	assert.Equal(t, "fib", result.Procedure)
	assert.Equal(t, 5, result.Repeat)
	assert.Equal(t, 100, result.Steps)
	assert.LessOrEqual(t, result.Min, result.Mean)
	assert.LessOrEqual(t, result.Mean, result.Max)
	assert.Equal(t, 6+7*98, result.Assignments)
	assert.Equal(t, 8*98+1, result.Evaluations)
	assert.NotEmpty(t, progress.String())
}

func TestBenchInvalidRepeat(t *testing.T) {
	t.Parallel()
	proc, err := Lookup("counter")
	require.NoError(t, err)

	_, err = Bench(context.Background(), nil, proc, Options{Steps: 10}, 0, nil)
	assert.Error(t, err)
}
