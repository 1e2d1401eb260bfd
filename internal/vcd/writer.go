// Package vcd writes and reads Value Change Dump waveform files, and
// converts them to WaveDrom JSON for browser-side rendering.
//
// Only the VCD subset produced by Verilator-style tracing is supported:
// one module scope, wire variables, scalar and binary vector value
// changes. That is all the harness ever emits or consumes.
package vcd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/silence-breaker/vtbench/internal/sim"
)

// idAlphabet starts at '!' per the VCD identifier convention.
const idBase = 33

// Writer emits a VCD file incrementally. It implements harness.Recorder:
// each Sample dumps a timestamped snapshot, writing only the signals that
// changed. Writers buffer output and must be closed to flush.
type Writer struct {
	w       *bufio.Writer
	signals []sim.Signal
	ids     map[string]string
	last    map[string]uint64
	started bool
	closed  bool
}

// Option configures a Writer.
type Option func(*config)

type config struct {
	now       func() time.Time
	timescale string
}

// WithNow overrides the header timestamp source, for deterministic tests.
func WithNow(now func() time.Time) Option {
	return func(c *config) { c.now = now }
}

// WithTimescale overrides the default 1ns timescale.
func WithTimescale(ts string) Option {
	return func(c *config) { c.timescale = ts }
}

// NewWriter writes the VCD header for one module scope declaring the
// given signals, and returns a Writer ready to accept samples.
func NewWriter(w io.Writer, scope string, signals []sim.Signal, opts ...Option) (*Writer, error) {
	if len(signals) == 0 {
		return nil, fmt.Errorf("vcd: no signals to trace")
	}
	if len(signals) > 94 {
		return nil, fmt.Errorf("vcd: too many signals (%d)", len(signals))
	}

	cfg := config{now: time.Now, timescale: "1ns"}
	for _, o := range opts {
		o(&cfg)
	}

	vw := &Writer{
		w:       bufio.NewWriter(w),
		signals: signals,
		ids:     make(map[string]string, len(signals)),
		last:    make(map[string]uint64, len(signals)),
	}

	fmt.Fprintf(vw.w, "$date\n\t%s\n$end\n", cfg.now().Format(time.ANSIC))
	fmt.Fprintf(vw.w, "$version\n\tvtbench\n$end\n")
	fmt.Fprintf(vw.w, "$timescale\n\t%s\n$end\n", cfg.timescale)
	fmt.Fprintf(vw.w, "$scope module %s $end\n", scope)
	for i, s := range vw.signals {
		id := string(rune(idBase + i))
		vw.ids[s.Name] = id
		if s.Width > 1 {
			fmt.Fprintf(vw.w, "$var wire %d %s %s [%d:0] $end\n", s.Width, id, s.Name, s.Width-1)
		} else {
			fmt.Fprintf(vw.w, "$var wire 1 %s %s $end\n", id, s.Name)
		}
	}
	fmt.Fprintf(vw.w, "$upscope $end\n$enddefinitions $end\n")

	return vw, nil
}

// Sample dumps one timestamped sample. The first sample emits a full
// $dumpvars snapshot; later samples emit only changed signals. Signals
// missing from values hold their previous value; extra names are ignored.
func (vw *Writer) Sample(t uint64, values map[string]uint64) {
	if vw.closed {
		return
	}

	if !vw.started {
		fmt.Fprintf(vw.w, "#%d\n$dumpvars\n", t)
		for _, s := range vw.signals {
			v := s.Mask(values[s.Name])
			vw.emit(s, v)
			vw.last[s.Name] = v
		}
		fmt.Fprintf(vw.w, "$end\n")
		vw.started = true
		return
	}

	headerDone := false
	for _, s := range vw.signals {
		v, ok := values[s.Name]
		if !ok {
			continue
		}
		v = s.Mask(v)
		if v == vw.last[s.Name] {
			continue
		}
		if !headerDone {
			fmt.Fprintf(vw.w, "#%d\n", t)
			headerDone = true
		}
		vw.emit(s, v)
		vw.last[s.Name] = v
	}
}

func (vw *Writer) emit(s sim.Signal, v uint64) {
	if s.Width > 1 {
		fmt.Fprintf(vw.w, "b%s %s\n", strconv.FormatUint(v, 2), vw.ids[s.Name])
	} else {
		fmt.Fprintf(vw.w, "%d%s\n", v, vw.ids[s.Name])
	}
}

// Close flushes buffered samples. The file is incomplete until Close
// returns. Close is idempotent.
func (vw *Writer) Close() error {
	if vw.closed {
		return nil
	}
	vw.closed = true
	return vw.w.Flush()
}
