package harness

import (
	"fmt"
	"sort"
	"strings"
)

// Vector is one assignment of values to named signals.
type Vector map[string]uint64

// Clone returns an independent copy of v.
func (v Vector) Clone() Vector {
	c := make(Vector, len(v))
	for k, val := range v {
		c[k] = val
	}
	return c
}

// sortedNames returns the vector's signal names in sorted order, so that
// diagnostics and comparisons are deterministic.
func sortedNames(v Vector) []string {
	names := make([]string, 0, len(v))
	for n := range v {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// String renders the vector as "a=3, b=2" with keys in sorted order, for
// stable diagnostics.
func (v Vector) String() string {
	var b strings.Builder
	for _, n := range sortedNames(v) {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%d", n, v[n])
	}
	return b.String()
}

// Step is one stimulus step: the inputs to apply and, for literal tables,
// the expected outputs. Expect is nil when an Oracle computes expectations.
type Step struct {
	Inputs Vector
	Expect Vector
}

// Field describes one input dimension of an exhaustive sweep.
// Values range over [0, Max] inclusive.
type Field struct {
	Name string
	Max  uint64
}

// Exhaustive generates steps for every combination of the given fields,
// e.g. two 4-bit operands yield 256 steps. The last field varies fastest.
func Exhaustive(fields ...Field) []Step {
	if len(fields) == 0 {
		return nil
	}

	total := 1
	for _, f := range fields {
		total *= int(f.Max) + 1
	}

	steps := make([]Step, 0, total)
	cur := make([]uint64, len(fields))
	for {
		in := make(Vector, len(fields))
		for i, f := range fields {
			in[f.Name] = cur[i]
		}
		steps = append(steps, Step{Inputs: in})

		// Odometer increment, last field fastest.
		i := len(fields) - 1
		for i >= 0 {
			cur[i]++
			if cur[i] <= fields[i].Max {
				break
			}
			cur[i] = 0
			i--
		}
		if i < 0 {
			return steps
		}
	}
}
