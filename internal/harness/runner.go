package harness

import (
	"fmt"
	"io"
	"log/slog"
)

// phase tracks the runner's position in its INIT → RESET → RUNNING → DONE
// state machine. DONE is terminal; there are no retries.
type phase int

const (
	phaseInit phase = iota
	phaseReset
	phaseRunning
	phaseDone
)

func (p phase) String() string {
	switch p {
	case phaseInit:
		return "init"
	case phaseReset:
		return "reset"
	case phaseRunning:
		return "running"
	case phaseDone:
		return "done"
	}
	return "unknown"
}

// Runner replays a stimulus sequence through a driver and compares every
// observed output against its expected value.
type Runner struct {
	// Driver owns the model under test.
	Driver *Driver

	// Oracle computes expected outputs. If nil, each Step's literal
	// Expect vector is used instead.
	Oracle Oracle

	// ResetCycles is the number of power-on reset clock periods applied
	// before the first stimulus vector. Ignored for combinational models.
	ResetCycles int

	// ResetSignal names the model's power-on reset input.
	// Defaults to "reset".
	ResetSignal string

	// Logger receives per-phase debug logs. Defaults to a discard logger.
	Logger *slog.Logger
}

// Run executes the full stimulus sequence and returns the verdict. An
// error means the harness itself was misused (unknown signal, clockless
// model cycled); mismatches are not errors, they are recorded in the
// Result and the run continues to completion.
func (r *Runner) Run(steps []Step) (*Result, error) {
	log := r.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	d := r.Driver
	result := NewResult(d.Model().Name())

	p := phaseInit
	log.Debug("run starting", "phase", p.String(), "model", d.Model().Name(), "vectors", len(steps))
	if r.Oracle != nil {
		r.Oracle.Reset()
	}

	if d.Sequential() && r.ResetCycles > 0 {
		p = phaseReset
		log.Debug("applying power-on reset", "phase", p.String(), "cycles", r.ResetCycles)

		rs := r.ResetSignal
		if rs == "" {
			rs = "reset"
		}
		for i := 0; i < r.ResetCycles; i++ {
			if err := d.Cycle(Vector{rs: 1}); err != nil {
				return nil, fmt.Errorf("power-on reset: %w", err)
			}
		}
		if err := d.Apply(Vector{rs: 0}); err != nil {
			return nil, fmt.Errorf("power-on reset release: %w", err)
		}
	}

	p = phaseRunning
	for i, step := range steps {
		var err error
		if d.Sequential() {
			err = d.Cycle(step.Inputs)
		} else {
			err = d.Eval(step.Inputs)
		}
		if err != nil {
			return nil, fmt.Errorf("vector %d: %w", i, err)
		}

		want := step.Expect
		if r.Oracle != nil {
			want = r.Oracle.Step(step.Inputs)
		}
		if want == nil {
			continue
		}

		result.Checked++
		for _, sig := range sortedNames(want) {
			got, err := d.Model().Peek(sig)
			if err != nil {
				return nil, fmt.Errorf("vector %d: %w", i, err)
			}
			if got != want[sig] {
				m := Mismatch{
					Index:  i,
					Signal: sig,
					Got:    got,
					Want:   want[sig],
					Inputs: step.Inputs.Clone(),
				}
				result.AddMismatch(m)
				log.Debug("mismatch", "phase", p.String(), "detail", m.String())
			}
		}
	}

	p = phaseDone
	log.Debug("run finished", "phase", p.String(), "pass", result.Pass,
		"checked", result.Checked, "mismatches", len(result.Mismatches))
	return result, nil
}
