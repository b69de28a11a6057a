// Package sequence implements the reversible Fibonacci fixture.
//
// The forward phase grows an additive sequence from the seeds 0 and 1,
// recording every produced value. The reverse phase pops that history
// and reconstructs each predecessor with the inverse relation
// a = b - a until a reaches zero. Values are arbitrary precision since
// a thousand-term sequence is far beyond any fixed-width integer.
package sequence

import (
	"math/big"

	"github.com/gnolang/revfix/internal/stats"
)

// Start is the loop index the forward phase begins at; the two seeds
// count as the first two terms.
const Start = 2

// Observer receives values as they are produced.
type Observer interface {
	Produced(v *big.Int)
	Reversed(a, b *big.Int)
}

type nopObserver struct{}

func (nopObserver) Produced(*big.Int) {}
func (nopObserver) Reversed(*big.Int, *big.Int) {}

// Sequence holds the live pair of values and the forward history.
type Sequence struct {
	Prev    *big.Int
	Curr    *big.Int
	History []*big.Int

	obs   Observer
	stats *stats.Stats
}

// New seeds a sequence with 0 and 1. A nil observer discards values and
// a nil st discards tallies.
func New(obs Observer, st *stats.Stats) *Sequence {
	if obs == nil {
		obs = nopObserver{}
	}
	if st == nil {
		st = &stats.Stats{}
	}
	s := &Sequence{
		Prev:  big.NewInt(0),
		Curr:  big.NewInt(1),
		obs:   obs,
		stats: st,
	}
	// a, b, the scratch fib value and the history list
	st.Assign(4)
	return s
}

// ReverseResult reports how the reverse phase ended.
type ReverseResult struct {
	Popped      int
	ReachedZero bool
}

// Result combines both phases of a run.
type Result struct {
	Produced int
	Reverse  ReverseResult
}

// Run executes the forward phase up to bound and then the reverse phase.
func Run(bound int, obs Observer, st *stats.Stats) Result {
	s := New(obs, st)
	produced := s.Forward(bound)
	return Result{Produced: produced, Reverse: s.Reverse()}
}

// Forward advances the sequence until the loop index reaches bound,
// appending each new value to the history. It returns the number of
// values produced, which is bound-Start for bound >= Start and 0 otherwise.
func (s *Sequence) Forward(bound int) int {
	// the bound and the loop index
	s.stats.Assign(2)

	n := 0
	for i := Start; i < bound; i++ {
		next := new(big.Int).Add(s.Prev, s.Curr)
		s.stats.Eval(1)
		s.stats.Assign(1)

		s.obs.Produced(next)
		s.stats.Eval(1)

		s.Prev.Set(s.Curr)
		s.Curr.Set(next)
		s.stats.Assign(2)

		s.History = append(s.History, new(big.Int).Set(s.Curr))
		s.stats.Eval(1)
		s.stats.Assign(1)

		// loop index increment
		s.stats.Assign(1)
		n++
	}
	return n
}

// Reverse consumes the history newest first. Each popped value becomes b
// and a is rebuilt as b - a. The phase stops as soon as a is zero, or
// when the history is exhausted.
func (s *Sequence) Reverse() ReverseResult {
	var res ReverseResult
	for len(s.History) > 0 {
		s.stats.Eval(1)

		last := len(s.History) - 1
		s.Curr.Set(s.History[last])
		s.History[last] = nil
		s.History = s.History[:last]
		s.stats.Eval(1)
		s.stats.Assign(1)
		res.Popped++

		s.Prev.Sub(s.Curr, s.Prev)
		s.stats.Eval(1)
		s.stats.Assign(1)

		s.obs.Reversed(s.Prev, s.Curr)
		s.stats.Eval(2)

		if s.Prev.Sign() == 0 {
			s.stats.Eval(1)
			res.ReachedZero = true
			break
		}
	}
	return res
}
