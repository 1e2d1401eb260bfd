package bench

import (
	"github.com/silence-breaker/vtbench/internal/harness"
	"github.com/silence-breaker/vtbench/internal/sim"
)

// RegisterOracle mirrors SyncReset4BitReg: q clears to zero on any edge
// with reset or io_reset asserted, otherwise q latches io_d.
type RegisterOracle struct {
	q uint64
}

func (o *RegisterOracle) Reset() { o.q = 0 }

func (o *RegisterOracle) Step(in harness.Vector) harness.Vector {
	if in["reset"] == 1 || in["io_reset"] == 1 {
		o.q = 0
	} else {
		o.q = in["io_d"] & 0xF
	}
	return harness.Vector{"io_q": o.q}
}

// syncResetReg4 uses the literal expectation mode: a fixed ordered table
// covering reset-active, reset-inactive and representative data values,
// after one power-on reset cycle.
var syncResetReg4 = Bench{
	Name:        "sync_reset_reg4",
	Description: "4-bit register with synchronous reset, directed vector table",
	New: func() Instance {
		return Instance{
			Model:       sim.NewSyncResetReg4(),
			ResetCycles: 1,
			Steps: []harness.Step{
				{Inputs: harness.Vector{"io_reset": 1, "io_d": 0xA}, Expect: harness.Vector{"io_q": 0x0}},
				{Inputs: harness.Vector{"io_reset": 0, "io_d": 0xA}, Expect: harness.Vector{"io_q": 0xA}},
				{Inputs: harness.Vector{"io_reset": 1, "io_d": 0x5}, Expect: harness.Vector{"io_q": 0x0}},
				{Inputs: harness.Vector{"io_reset": 0, "io_d": 0x5}, Expect: harness.Vector{"io_q": 0x5}},
			},
		}
	},
}
