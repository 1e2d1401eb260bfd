package harness

import (
	"fmt"
	"strings"
)

// Mismatch records one observed-vs-expected divergence.
type Mismatch struct {
	// Index is the zero-based stimulus vector index.
	Index int `json:"index"`

	// Signal is the output port that diverged.
	Signal string `json:"signal"`

	Got  uint64 `json:"got"`
	Want uint64 `json:"want"`

	// Inputs is the stimulus vector that exposed the mismatch.
	Inputs Vector `json:"inputs"`
}

func (m Mismatch) String() string {
	return fmt.Sprintf("vector %d: %s=%d (expected %d) inputs: %s",
		m.Index, m.Signal, m.Got, m.Want, m.Inputs)
}

// Result is the aggregated verdict of one run.
//
// Pass is initialized true and cleared on the first mismatch; it is never
// reset within a run. Checking continues after a mismatch so a single run
// surfaces every failing vector.
type Result struct {
	Bench      string     `json:"bench"`
	Pass       bool       `json:"pass"`
	Checked    int        `json:"checked"`
	Mismatches []Mismatch `json:"mismatches,omitempty"`
}

// NewResult creates a passing result for the named bench.
func NewResult(bench string) *Result {
	return &Result{Bench: bench, Pass: true}
}

// AddMismatch records a mismatch and clears the verdict.
func (r *Result) AddMismatch(m Mismatch) {
	r.Mismatches = append(r.Mismatches, m)
	r.Pass = false
}

// Summary returns the single pass/fail line printed at end of run.
func (r *Result) Summary() string {
	verdict := "PASS"
	if !r.Pass {
		verdict = "FAIL"
	}
	return fmt.Sprintf("%s: %d vectors, %d mismatches: %s",
		r.Bench, r.Checked, len(r.Mismatches), verdict)
}

// Report renders the full human-readable diagnostic: one line per
// mismatch followed by the summary. Not a stable parseable format.
func (r *Result) Report() string {
	var b strings.Builder
	for _, m := range r.Mismatches {
		b.WriteString(m.String())
		b.WriteByte('\n')
	}
	b.WriteString(r.Summary())
	b.WriteByte('\n')
	return b.String()
}
