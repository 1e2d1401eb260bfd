// Package bench defines the directed and exhaustive testbenches shipped
// with vtbench, one per circuit model, and the registry the CLI runs
// them from.
package bench

import (
	"sort"

	"github.com/silence-breaker/vtbench/internal/harness"
	"github.com/silence-breaker/vtbench/internal/sim"
)

// Instance is one ready-to-run testbench: a fresh model plus its stimulus
// and expectation source. Oracle and per-step Expect vectors are the two
// expectation modes; a bench uses one of them.
type Instance struct {
	Model       sim.Model
	Oracle      harness.Oracle
	Steps       []harness.Step
	ResetCycles int
}

// Bench is a registered testbench definition. New builds a fresh Instance
// so each run exclusively owns its model.
type Bench struct {
	Name        string
	Description string
	New         func() Instance
}

var registry = map[string]Bench{
	adder4.Name:        adder4,
	syncResetReg4.Name: syncResetReg4,
	tenTimer.Name:      tenTimer,
}

// modelFactories resolves scenario "model:" names to fresh instances.
var modelFactories = map[string]func() sim.Model{
	"Adder4":           func() sim.Model { return sim.NewAdder4() },
	"SyncReset4BitReg": func() sim.Model { return sim.NewSyncResetReg4() },
	"TenTimer":         func() sim.Model { return sim.NewTenTimer() },
}

// All returns every registered bench, sorted by name.
func All() []Bench {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)

	out := make([]Bench, len(names))
	for i, n := range names {
		out[i] = registry[n]
	}
	return out
}

// Lookup returns the bench registered under name.
func Lookup(name string) (Bench, bool) {
	b, ok := registry[name]
	return b, ok
}

// NewModel returns a fresh model instance for a scenario's model name.
func NewModel(name string) (sim.Model, bool) {
	f, ok := modelFactories[name]
	if !ok {
		return nil, false
	}
	return f(), true
}

// ModelNames returns the scenario-resolvable model names, sorted.
func ModelNames() []string {
	names := make([]string, 0, len(modelFactories))
	for n := range modelFactories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
