package run

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/gnolang/revfix/formatter"
	"github.com/gnolang/revfix/internal/counter"
	"github.com/gnolang/revfix/internal/sequence"
	"github.com/gnolang/revfix/internal/stats"
	tt "github.com/gnolang/revfix/internal/types"
)

var ErrUnknownProcedure = errors.New("unknown procedure")

// Procedure is a self-contained fixture that writes its progress lines to
// out and tallies its operations into st.
type Procedure interface {
	Name() string
	Description() string
	Run(steps int, out io.Writer, st *stats.Stats) tt.Outcome
}

type fibProcedure struct{}

func (fibProcedure) Name() string { return "fib" }

func (fibProcedure) Description() string {
	return "Build a big-integer Fibonacci history, then reverse it back to zero"
}

func (fibProcedure) Run(steps int, out io.Writer, st *stats.Stats) tt.Outcome {
	res := sequence.Run(steps, formatter.NewLines(out), st)

	detail := fmt.Sprintf("produced %d values, history exhausted after %d reversals", res.Produced, res.Reverse.Popped)
	if res.Reverse.ReachedZero {
		detail = fmt.Sprintf("produced %d values, reached zero after %d reversals", res.Produced, res.Reverse.Popped)
	}
	return tt.Outcome{Status: tt.StatusCompleted, Detail: detail}
}

type counterProcedure struct{}

func (counterProcedure) Name() string { return "counter" }

func (counterProcedure) Description() string {
	return "Advance two counters by fixed steps, then walk them back with an underflow guard"
}

func (counterProcedure) Run(steps int, out io.Writer, st *stats.Stats) tt.Outcome {
	counters := counter.Defaults()
	res := counter.Walk(steps, counters, formatter.NewLines(out), st)

	outcome := tt.Outcome{Status: tt.StatusCompleted}
	if !res.Completed() {
		outcome.Status = tt.StatusHalted
		outcome.Detail = res.Halt.Reason()
	} else {
		outcome.Detail = fmt.Sprintf("reversed %d iterations", res.Iterations)
	}
	for _, c := range counters {
		outcome.Finals = append(outcome.Finals, tt.Final{Name: c.Name, Value: strconv.FormatUint(c.Value, 10)})
	}
	return outcome
}

// procedures in the order `run` executes them by default
var procedures = []Procedure{
	fibProcedure{},
	counterProcedure{},
}

// Procedures returns every registered procedure.
func Procedures() []Procedure {
	return slices.Clone(procedures)
}

// Names returns the registered procedure names in default order.
func Names() []string {
	names := make([]string, len(procedures))
	for i, p := range procedures {
		names[i] = p.Name()
	}
	return names
}

func Lookup(name string) (Procedure, error) {
	for _, p := range procedures {
		if p.Name() == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownProcedure, name, Names())
}

// Resolve looks up every name, defaulting to all procedures when names is empty.
func Resolve(names []string) ([]Procedure, error) {
	if len(names) == 0 {
		return Procedures(), nil
	}
	procs := make([]Procedure, 0, len(names))
	for _, name := range names {
		p, err := Lookup(name)
		if err != nil {
			return nil, err
		}
		procs = append(procs, p)
	}
	return procs, nil
}
