// Package sim defines the simulation-model contract consumed by the
// harness, plus reference models for the circuits under test.
//
// The contract mirrors a Verilator-generated model: inputs are written by
// name, Eval propagates combinational logic and commits register updates
// when it observes a rising clock edge, and outputs are read back by name.
// Models track the previous clock level themselves, so a full clock period
// is driven as poke(clock,1); Eval(); poke(clock,0); Eval().
package sim

import "fmt"

// Signal describes one named port of a model with its bit width.
type Signal struct {
	Name  string
	Width uint
}

// Mask returns v truncated to the signal's width.
func (s Signal) Mask(v uint64) uint64 {
	return v & (1<<s.Width - 1)
}

// Model is one simulated circuit instance. A model is exclusively owned by
// a single test run; none of its methods are safe for concurrent use.
type Model interface {
	// Name returns the circuit name, matching the generated model's name.
	Name() string

	// Inputs lists the writable input ports, including clock and reset
	// for sequential models.
	Inputs() []Signal

	// Outputs lists the readable output ports.
	Outputs() []Signal

	// Poke writes an input port. The value is masked to the port width.
	// Returns an error for unknown port names.
	Poke(name string, value uint64) error

	// Peek reads an output port. Returns an error for unknown port names.
	Peek(name string) (uint64, error)

	// Eval propagates combinational logic. Sequential models commit
	// register updates when the clock input has risen since the last Eval.
	Eval()
}

// Sequential is implemented by clocked models.
type Sequential interface {
	Model

	// Clock returns the name of the clock input.
	Clock() string
}

func errUnknownInput(model, name string) error {
	return fmt.Errorf("%s: unknown input signal %q", model, name)
}

func errUnknownOutput(model, name string) error {
	return fmt.Errorf("%s: unknown output signal %q", model, name)
}

// risingEdge reports a 0→1 transition.
func risingEdge(prev, cur uint64) bool {
	return prev == 0 && cur == 1
}
