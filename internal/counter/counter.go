// Package counter implements the counter walker fixture: a set of unsigned
// counters advanced by fixed steps, then walked back with an underflow guard.
package counter

import (
	"fmt"

	"github.com/gnolang/revfix/internal/stats"
)

// Phase identifies the walk direction.
type Phase int

const (
	Forward Phase = iota
	Reverse
)

func (p Phase) String() string {
	if p == Reverse {
		return "reverse"
	}
	return "forward"
}

// Counter is a named unsigned value with two forward and two reverse
// sub-steps per iteration.
type Counter struct {
	Name    string
	Value   uint64
	Advance [2]uint64
	Retreat [2]uint64
}

// Defaults returns the fixture counters x and y.
func Defaults() []*Counter {
	return []*Counter{
		{Name: "x", Value: 10, Advance: [2]uint64{15, 20}, Retreat: [2]uint64{15, 20}},
		{Name: "y", Value: 20, Advance: [2]uint64{25, 30}, Retreat: [2]uint64{25, 30}},
	}
}

// Observer receives every counter update. Iteration and step are 1-based.
type Observer interface {
	Stepped(phase Phase, iteration, step int, c *Counter)
	Halted(iteration, step int, c *Counter)
}

type nopObserver struct{}

func (nopObserver) Stepped(Phase, int, int, *Counter) {}
func (nopObserver) Halted(int, int, *Counter) {}

// Halt records the update that failed its underflow guard.
type Halt struct {
	Iteration  int
	Step       int
	Counter    string
	Value      uint64
	Subtrahend uint64
}

func (h Halt) Reason() string {
	return fmt.Sprintf("iteration %d step %d: %s=%d cannot be reduced by %d",
		h.Iteration, h.Step, h.Counter, h.Value, h.Subtrahend)
}

// Result is the outcome of the reverse phase.
type Result struct {
	// Iterations counts fully completed reverse iterations.
	Iterations int
	// Halt is nil when every iteration completed.
	Halt *Halt
}

func (r Result) Completed() bool { return r.Halt == nil }

// Walker drives a set of counters through both phases.
type Walker struct {
	Counters []*Counter

	obs   Observer
	stats *stats.Stats
}

// NewWalker wraps counters for walking. A nil observer discards updates
// and a nil st discards tallies.
func NewWalker(counters []*Counter, obs Observer, st *stats.Stats) *Walker {
	if obs == nil {
		obs = nopObserver{}
	}
	if st == nil {
		st = &stats.Stats{}
	}
	// one assignment per counter initialisation
	st.Assign(len(counters))
	return &Walker{Counters: counters, obs: obs, stats: st}
}

// Walk runs the forward phase for bound iterations and then the reverse phase.
func Walk(bound int, counters []*Counter, obs Observer, st *stats.Stats) Result {
	w := NewWalker(counters, obs, st)
	w.Forward(bound)
	return w.Reverse(bound)
}

// Forward applies every advance step unconditionally, bound times.
func (w *Walker) Forward(bound int) {
	// the bound and the loop index
	w.stats.Assign(2)

	for i := 0; i < bound; i++ {
		for _, c := range w.Counters {
			for step, delta := range c.Advance {
				c.Value += delta
				w.stats.Step()
				w.obs.Stepped(Forward, i+1, step+1, c)
			}
		}
		// loop index increment
		w.stats.Step()
	}
}

// Reverse applies the retreat steps in order for up to bound iterations.
// Each subtraction is applied only when the counter holds at least the
// subtrahend; the first failing guard ends the whole phase.
func (w *Walker) Reverse(bound int) Result {
	// loop index reset
	w.stats.Assign(1)

	var res Result
	for i := 0; i < bound; i++ {
		for _, c := range w.Counters {
			for step, delta := range c.Retreat {
				if !CanRetreat(c.Value, delta) {
					w.obs.Halted(i+1, step+1, c)
					res.Halt = &Halt{
						Iteration:  i + 1,
						Step:       step + 1,
						Counter:    c.Name,
						Value:      c.Value,
						Subtrahend: delta,
					}
					return res
				}
				c.Value -= delta
				w.stats.Step()
				w.obs.Stepped(Reverse, i+1, step+1, c)
			}
		}
		w.stats.Step()
		res.Iterations++
	}
	return res
}

// CanRetreat reports whether subtracting s from v stays in range.
func CanRetreat(v, s uint64) bool {
	return v >= s
}
