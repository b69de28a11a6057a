// Package stats tallies the assignment and evaluation operations a
// procedure performs. Each procedure owns one Stats value for the
// duration of a run and bumps it at the same points the reference
// fixtures do, so totals are reproducible for a given step bound.
package stats

// Stats accumulates operation counts. The zero value is ready to use.
type Stats struct {
	Assignments int
	Evaluations int
}

// Assign records n value assignments.
func (s *Stats) Assign(n int) {
	s.Assignments += n
}

// Eval records n evaluations (arithmetic, comparisons, list operations and output).
func (s *Stats) Eval(n int) {
	s.Evaluations += n
}

// Step records one assignment and one evaluation, the cost of a
// compound update such as `x += 15`.
func (s *Stats) Step() {
	s.Assignments++
	s.Evaluations++
}

func (s *Stats) Reset() {
	s.Assignments = 0
	s.Evaluations = 0
}
