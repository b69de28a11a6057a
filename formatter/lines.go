package formatter

import (
	"fmt"
	"io"
	"math/big"

	"github.com/gnolang/revfix/internal/counter"
)

// Lines writes procedure progress to w, one line per produced value or
// counter update. It satisfies both sequence.Observer and counter.Observer.
type Lines struct {
	w io.Writer
}

func NewLines(w io.Writer) *Lines {
	return &Lines{w: w}
}

func (l *Lines) Produced(v *big.Int) {
	fmt.Fprintln(l.w, v)
}

func (l *Lines) Reversed(a, b *big.Int) {
	fmt.Fprintf(l.w, "Reversed value of a: %v\n", a)
	fmt.Fprintf(l.w, "Reversed value of b: %v\n", b)
}

func (l *Lines) Stepped(phase counter.Phase, iteration, step int, c *counter.Counter) {
	fmt.Fprintf(l.w, "%s %d - Step %d: %s = %d\n", iterationLabel(phase), iteration, step, c.Name, c.Value)
}

func (l *Lines) Halted(iteration, step int, c *counter.Counter) {
	fmt.Fprintf(l.w, "%s %d - Step %d: %s cannot be reduced further\n", iterationLabel(counter.Reverse), iteration, step, c.Name)
}

func iterationLabel(phase counter.Phase) string {
	if phase == counter.Reverse {
		return "Reverse Iteration"
	}
	return "Iteration"
}
