package types

import "time"

// Status is the terminal state of a procedure's last phase.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusHalted    Status = "halted"
)

// Final is a named value reported after a procedure finishes,
// e.g. the resting value of a counter.
type Final struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Outcome describes how a procedure ended.
type Outcome struct {
	Status Status  `json:"status"`
	Detail string  `json:"detail,omitempty"`
	Finals []Final `json:"finals,omitempty"`
}

// Summary is the measured result of a single procedure run.
type Summary struct {
	RunID       string
	Procedure   string
	Steps       int
	Elapsed     time.Duration
	MemoryDelta int64 // bytes, end reading minus start reading
	Assignments int
	Evaluations int
	Outcome     Outcome
}

// BenchResult aggregates repeated runs of the same procedure.
type BenchResult struct {
	Procedure   string
	Steps       int
	Repeat      int
	Min         time.Duration
	Mean        time.Duration
	Max         time.Duration
	Assignments int
	Evaluations int
}
