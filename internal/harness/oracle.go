package harness

// Oracle computes the expected output vector for each stimulus step.
//
// For sequential circuits the oracle mirrors the circuit's register state
// and must be stepped in the same order as the simulated clock edges, or
// it desynchronizes from the model. The Runner guarantees this: Step is
// called exactly once per applied vector, after the clock period.
type Oracle interface {
	// Reset restores the oracle's mirrored state to the power-on value.
	Reset()

	// Step consumes one input vector and returns the expected outputs
	// observed after the corresponding evaluation or clock period.
	Step(in Vector) Vector
}
