// Package testutil provides deterministic helpers shared by tests.
package testutil

// Sample is one captured waveform sample.
type Sample struct {
	Time   uint64
	Values map[string]uint64
}

// Recorder captures samples in memory so tests can assert on the exact
// trace a driver produced. It implements harness.Recorder.
type Recorder struct {
	Samples []Sample
	Closed  bool
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Sample stores a copy of the values so later pokes don't mutate history.
func (r *Recorder) Sample(t uint64, values map[string]uint64) {
	c := make(map[string]uint64, len(values))
	for k, v := range values {
		c[k] = v
	}
	r.Samples = append(r.Samples, Sample{Time: t, Values: c})
}

// Close marks the recorder closed, mirroring the flush contract real
// waveform writers have.
func (r *Recorder) Close() error {
	r.Closed = true
	return nil
}
