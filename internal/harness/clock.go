package harness

import "sync/atomic"

// Timebase is the monotonic sample clock for waveform traces. Every dumped
// sample is stamped with a strictly increasing time so that replaying a
// run produces an identical trace.
//
// Thread-safety: atomic, though a Driver owns its timebase exclusively.
type Timebase struct {
	t atomic.Uint64
}

// NewTimebase returns a timebase starting at 0.
func NewTimebase() *Timebase {
	return &Timebase{}
}

// Next returns the current sample time and advances by one.
func (tb *Timebase) Next() uint64 {
	return tb.t.Add(1) - 1
}

// Current returns the time the next sample will be stamped with.
func (tb *Timebase) Current() uint64 {
	return tb.t.Load()
}
