package bench

import (
	"github.com/silence-breaker/vtbench/internal/harness"
	"github.com/silence-breaker/vtbench/internal/sim"
)

// TimerOracle mirrors TenTimer's registers: a decimal count and a
// one-cycle overflow flag raised on the enabled 9→0 wrap. Its state
// advances once per clock period, in lockstep with the driver.
type TimerOracle struct {
	count, overflow uint64
}

func (o *TimerOracle) Reset() {
	o.count, o.overflow = 0, 0
}

func (o *TimerOracle) Step(in harness.Vector) harness.Vector {
	switch {
	case in["reset"] == 1 || in["io_reset_count"] == 1:
		o.count, o.overflow = 0, 0
	case in["io_enable"] == 1:
		if o.count == 9 {
			o.count, o.overflow = 0, 1
		} else {
			o.count++
			o.overflow = 0
		}
	default:
		o.overflow = 0
	}
	return harness.Vector{"io_count": o.count, "io_overflow": o.overflow}
}

var tenTimer = Bench{
	Name:        "ten_timer",
	Description: "decimal counter: decade count, enable hold, counter reset, overflow pulse",
	New: func() Instance {
		return Instance{
			Model:       sim.NewTenTimer(),
			Oracle:      &TimerOracle{},
			ResetCycles: 1,
			Steps:       tenTimerSteps(),
		}
	},
}

// tenTimerSteps walks the counter through a full decade and beyond,
// freezes it with enable low, clears it mid-run, then counts a second
// decade so the overflow pulse is crossed twice.
func tenTimerSteps() []harness.Step {
	var steps []harness.Step
	add := func(n int, enable, resetCount uint64) {
		for i := 0; i < n; i++ {
			steps = append(steps, harness.Step{
				Inputs: harness.Vector{"io_enable": enable, "io_reset_count": resetCount},
			})
		}
	}

	add(12, 1, 0) // count 0→9, wrap with overflow, continue to 2
	add(5, 0, 0)  // disabled: count holds at 2
	add(1, 1, 1)  // synchronous counter reset back to 0
	add(10, 1, 0) // second decade, overflow again on the 10th edge
	return steps
}
