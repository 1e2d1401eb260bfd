package vcd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Change is one recorded value change. Value is the raw bit string
// ("1010"), which may contain x or z from real simulator dumps.
type Change struct {
	Time  uint64
	Value string
}

// SignalDump is the full change history of one signal.
type SignalDump struct {
	// Name is the signal's short name, e.g. "io_count".
	Name string

	// FullName includes the scope path, e.g. "TenTimer.io_count".
	FullName string

	ID      string
	Width   uint
	Changes []Change
}

// ValueAt returns the signal's value at time t: the last change at or
// before t. ok is false before the first change.
func (d *SignalDump) ValueAt(t uint64) (string, bool) {
	v, ok := "", false
	for _, c := range d.Changes {
		if c.Time > t {
			break
		}
		v, ok = c.Value, true
	}
	return v, ok
}

// File is a parsed VCD dump.
type File struct {
	Timescale string
	Signals   []*SignalDump
}

// Signal finds a dump by full hierarchical name, falling back to the
// short name. Returns nil if absent.
func (f *File) Signal(name string) *SignalDump {
	for _, s := range f.Signals {
		if s.FullName == name {
			return s
		}
	}
	for _, s := range f.Signals {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Times returns the sorted distinct timestamps at which any signal
// changed.
func (f *File) Times() []uint64 {
	seen := map[uint64]bool{}
	var times []uint64
	for _, s := range f.Signals {
		for _, c := range s.Changes {
			if !seen[c.Time] {
				seen[c.Time] = true
				times = append(times, c.Time)
			}
		}
	}
	for i := 1; i < len(times); i++ {
		for j := i; j > 0 && times[j] < times[j-1]; j-- {
			times[j], times[j-1] = times[j-1], times[j]
		}
	}
	return times
}

// Parse reads a VCD stream. Duplicate declarations of the same signal at
// different hierarchy depths (as Verilator emits for flattened modules)
// share one identifier and collapse into one dump.
func Parse(r io.Reader) (*File, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	f := &File{}
	byID := map[string]*SignalDump{}
	var scope []string
	var now uint64

	next := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		return sc.Text(), true
	}

	// skipDirective consumes tokens until $end.
	skipDirective := func(collect bool) string {
		var parts []string
		for {
			tok, ok := next()
			if !ok || tok == "$end" {
				break
			}
			if collect {
				parts = append(parts, tok)
			}
		}
		return strings.Join(parts, " ")
	}

	for {
		tok, ok := next()
		if !ok {
			break
		}

		switch {
		case tok == "$timescale":
			f.Timescale = skipDirective(true)

		case tok == "$scope":
			// "$scope module <name> $end"
			body := skipDirective(true)
			parts := strings.Fields(body)
			if len(parts) >= 2 {
				scope = append(scope, parts[1])
			}

		case tok == "$upscope":
			skipDirective(false)
			if len(scope) > 0 {
				scope = scope[:len(scope)-1]
			}

		case tok == "$var":
			// "$var wire <width> <id> <name> [msb:lsb]? $end"
			body := skipDirective(true)
			parts := strings.Fields(body)
			if len(parts) < 4 {
				return nil, fmt.Errorf("vcd: malformed $var: %q", body)
			}
			width, err := strconv.ParseUint(parts[1], 10, 16)
			if err != nil {
				return nil, fmt.Errorf("vcd: bad $var width %q: %w", parts[1], err)
			}
			id, name := parts[2], parts[3]
			if _, dup := byID[id]; dup {
				continue
			}
			d := &SignalDump{
				Name:     name,
				FullName: strings.Join(append(append([]string{}, scope...), name), "."),
				ID:       id,
				Width:    uint(width),
			}
			byID[id] = d
			f.Signals = append(f.Signals, d)

		case strings.HasPrefix(tok, "$"):
			// $date, $version, $comment, $dumpvars, a bare $end, ...
			if tok != "$end" && tok != "$dumpvars" && tok != "$dumpall" &&
				tok != "$dumpon" && tok != "$dumpoff" {
				skipDirective(false)
			}

		case strings.HasPrefix(tok, "#"):
			t, err := strconv.ParseUint(tok[1:], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("vcd: bad timestamp %q: %w", tok, err)
			}
			now = t

		case strings.HasPrefix(tok, "b") || strings.HasPrefix(tok, "B"):
			id, ok := next()
			if !ok {
				return nil, fmt.Errorf("vcd: vector change %q missing identifier", tok)
			}
			if d := byID[id]; d != nil {
				d.Changes = append(d.Changes, Change{Time: now, Value: strings.ToLower(tok[1:])})
			}

		case len(tok) >= 2 && strings.ContainsAny(tok[:1], "01xzXZ"):
			if d := byID[tok[1:]]; d != nil {
				d.Changes = append(d.Changes, Change{Time: now, Value: strings.ToLower(tok[:1])})
			}

		default:
			return nil, fmt.Errorf("vcd: unexpected token %q", tok)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("vcd: read: %w", err)
	}
	return f, nil
}
