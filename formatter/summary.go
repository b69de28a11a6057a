package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/fatih/color"

	"github.com/gnolang/revfix/internal/probe"
	tt "github.com/gnolang/revfix/internal/types"
)

var (
	labelStyle = color.New(color.FgCyan, color.Bold)
	finalStyle = color.New(color.FgGreen, color.Bold)
)

const summaryTemplate = `
{{label "Execution Time:"}} {{seconds .Elapsed}} seconds
{{label "Memory Used:"}} {{megabytes .MemoryDelta}} MB
{{label "Total Assignments:"}} {{.Assignments}}
{{label "Total Evaluations:"}} {{.Evaluations}}
`

const benchTemplate = `
{{label "Procedure:"}} {{.Procedure}} ({{.Steps}} steps, {{.Repeat}} runs)
{{label "Min Time:"}} {{seconds .Min}} seconds
{{label "Mean Time:"}} {{seconds .Mean}} seconds
{{label "Max Time:"}} {{seconds .Max}} seconds
{{label "Total Assignments:"}} {{.Assignments}}
{{label "Total Evaluations:"}} {{.Evaluations}}
`

var funcMap = template.FuncMap{
	"label":     labelStyle.Sprint,
	"seconds":   seconds,
	"megabytes": megabytes,
}

var (
	summaryTmpl = template.Must(template.New("summary").Funcs(funcMap).Parse(summaryTemplate))
	benchTmpl   = template.Must(template.New("bench").Funcs(funcMap).Parse(benchTemplate))
)

func seconds(d time.Duration) string {
	return fmt.Sprintf("%.6f", d.Seconds())
}

func megabytes(bytes int64) string {
	return fmt.Sprintf("%.6f", probe.Megabytes(bytes))
}

func render(tmpl *template.Template, data any) string {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Sprintf("Error formatting %s: %v\n", tmpl.Name(), err)
	}
	return buf.String()
}

// FormatSummary renders the closing block of a run: the procedure's final
// values followed by timing, memory and operation totals.
func FormatSummary(s tt.Summary) string {
	var builder strings.Builder
	builder.WriteString(FormatFinals(s.Outcome.Finals))
	builder.WriteString(render(summaryTmpl, s))
	return builder.String()
}

// FormatFinals renders one "Final <name>: <value>" line per final value.
func FormatFinals(finals []tt.Final) string {
	var builder strings.Builder
	for _, f := range finals {
		builder.WriteString(finalStyle.Sprintf("Final %s:", f.Name))
		builder.WriteString(" " + f.Value + "\n")
	}
	return builder.String()
}

func FormatBench(b tt.BenchResult) string {
	return render(benchTmpl, b)
}

type jsonSummary struct {
	RunID          string     `json:"run_id"`
	Procedure      string     `json:"procedure"`
	Steps          int        `json:"steps"`
	ElapsedSeconds float64    `json:"elapsed_seconds"`
	MemoryMB       float64    `json:"memory_mb"`
	Assignments    int        `json:"assignments"`
	Evaluations    int        `json:"evaluations"`
	Outcome        tt.Outcome `json:"outcome"`
}

// WriteJSON encodes s as a single JSON object followed by a newline.
func WriteJSON(w io.Writer, s tt.Summary) error {
	return json.NewEncoder(w).Encode(jsonSummary{
		RunID:          s.RunID,
		Procedure:      s.Procedure,
		Steps:          s.Steps,
		ElapsedSeconds: s.Elapsed.Seconds(),
		MemoryMB:       probe.Megabytes(s.MemoryDelta),
		Assignments:    s.Assignments,
		Evaluations:    s.Evaluations,
		Outcome:        s.Outcome,
	})
}
