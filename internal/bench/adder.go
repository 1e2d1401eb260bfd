package bench

import (
	"github.com/silence-breaker/vtbench/internal/harness"
	"github.com/silence-breaker/vtbench/internal/sim"
)

// AdderOracle computes (a + b) mod 2^4. Stateless.
type AdderOracle struct{}

func (AdderOracle) Reset() {}

func (AdderOracle) Step(in harness.Vector) harness.Vector {
	return harness.Vector{"io_c": (in["io_a"] + in["io_b"]) & 0xF}
}

var adder4 = Bench{
	Name:        "adder4",
	Description: "4-bit adder, exhaustive over all 256 operand pairs",
	New: func() Instance {
		return Instance{
			Model:  sim.NewAdder4(),
			Oracle: AdderOracle{},
			Steps: harness.Exhaustive(
				harness.Field{Name: "io_a", Max: 15},
				harness.Field{Name: "io_b", Max: 15},
			),
		}
	},
}
