package harness

import (
	"fmt"

	"github.com/silence-breaker/vtbench/internal/sim"
)

// Recorder accepts timestamped waveform samples. Implementations must be
// explicitly closed by their owner before process exit to flush buffered
// samples; the Driver only produces samples, it never closes the recorder.
type Recorder interface {
	Sample(t uint64, values map[string]uint64)
}

// Driver applies stimulus vectors to a model. It owns the model
// exclusively for the lifetime of a run.
//
// Combinational models are advanced with Eval (set inputs, one
// evaluation). Sequential models are advanced with Cycle (set inputs,
// clock high plus evaluation, clock low plus evaluation), matching the
// register's rising-edge sensitivity.
type Driver struct {
	model  sim.Model
	seq    sim.Sequential // nil for combinational models
	rec    Recorder
	tb     *Timebase
	inputs Vector // last applied input values, including the clock
}

// NewDriver wraps a model. Sequential capability is detected from the
// model's interface.
func NewDriver(m sim.Model) *Driver {
	d := &Driver{
		model:  m,
		tb:     NewTimebase(),
		inputs: Vector{},
	}
	if s, ok := m.(sim.Sequential); ok {
		d.seq = s
		d.inputs[s.Clock()] = 0
	}
	return d
}

// Attach sets the waveform recorder. A nil recorder disables tracing.
func (d *Driver) Attach(rec Recorder) {
	d.rec = rec
}

// Model returns the wrapped model.
func (d *Driver) Model() sim.Model {
	return d.model
}

// Sequential reports whether the model is clocked.
func (d *Driver) Sequential() bool {
	return d.seq != nil
}

// Apply pokes each input in the vector without evaluating.
func (d *Driver) Apply(in Vector) error {
	for name, v := range in {
		if err := d.model.Poke(name, v); err != nil {
			return err
		}
		d.inputs[name] = v
	}
	return nil
}

// Eval applies the inputs and settles combinational logic once. Used for
// purely combinational models; no clock is toggled.
func (d *Driver) Eval(in Vector) error {
	if err := d.Apply(in); err != nil {
		return err
	}
	d.model.Eval()
	d.sample()
	return nil
}

// Cycle applies the inputs and drives one full clock period: clock high
// then evaluate (committing register updates), clock low then evaluate.
// One trace sample is dumped per edge.
func (d *Driver) Cycle(in Vector) error {
	if d.seq == nil {
		return fmt.Errorf("%s: model has no clock", d.model.Name())
	}
	if err := d.Apply(in); err != nil {
		return err
	}

	clock := d.seq.Clock()
	if err := d.Apply(Vector{clock: 1}); err != nil {
		return err
	}
	d.model.Eval()
	d.sample()

	if err := d.Apply(Vector{clock: 0}); err != nil {
		return err
	}
	d.model.Eval()
	d.sample()
	return nil
}

// Outputs reads back every output port.
func (d *Driver) Outputs() (Vector, error) {
	out := make(Vector)
	for _, s := range d.model.Outputs() {
		v, err := d.model.Peek(s.Name)
		if err != nil {
			return nil, err
		}
		out[s.Name] = v
	}
	return out, nil
}

// sample dumps one timestamped snapshot of all inputs and outputs.
func (d *Driver) sample() {
	if d.rec == nil {
		return
	}
	values := d.inputs.Clone()
	for _, s := range d.model.Outputs() {
		// Outputs of the model's own ports cannot fail to Peek.
		v, _ := d.model.Peek(s.Name)
		values[s.Name] = v
	}
	d.rec.Sample(d.tb.Next(), values)
}
