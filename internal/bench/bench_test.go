package bench

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silence-breaker/vtbench/internal/harness"
)

func runBench(t *testing.T, b Bench) *harness.Result {
	t.Helper()
	inst := b.New()
	r := &harness.Runner{
		Driver:      harness.NewDriver(inst.Model),
		Oracle:      inst.Oracle,
		ResetCycles: inst.ResetCycles,
	}
	result, err := r.Run(inst.Steps)
	require.NoError(t, err)
	return result
}

func TestRegistry(t *testing.T) {
	all := All()
	require.Len(t, all, 3)
	assert.Equal(t, "adder4", all[0].Name)
	assert.Equal(t, "sync_reset_reg4", all[1].Name)
	assert.Equal(t, "ten_timer", all[2].Name)

	_, ok := Lookup("adder4")
	assert.True(t, ok)
	_, ok = Lookup("missing")
	assert.False(t, ok)
}

func TestNewModel(t *testing.T) {
	for _, name := range ModelNames() {
		m, ok := NewModel(name)
		require.True(t, ok, name)
		assert.Equal(t, name, m.Name())
	}
	_, ok := NewModel("NotACircuit")
	assert.False(t, ok)
}

func TestAdder4BenchPasses(t *testing.T) {
	result := runBench(t, adder4)
	assert.True(t, result.Pass, result.Report())
	assert.Equal(t, 256, result.Checked)
}

func TestSyncResetReg4BenchPasses(t *testing.T) {
	result := runBench(t, syncResetReg4)
	assert.True(t, result.Pass, result.Report())
	assert.Equal(t, 4, result.Checked)
}

func TestTenTimerBenchPasses(t *testing.T) {
	result := runBench(t, tenTimer)
	assert.True(t, result.Pass, result.Report())
	assert.Equal(t, 28, result.Checked)
}

func TestBenchInstancesAreFresh(t *testing.T) {
	// Two runs of the same bench must not share model or oracle state.
	first := runBench(t, tenTimer)
	second := runBench(t, tenTimer)
	assert.True(t, first.Pass)
	assert.True(t, second.Pass)
}

func TestAdderOracle(t *testing.T) {
	o := AdderOracle{}
	assert.Equal(t, harness.Vector{"io_c": 0}, o.Step(harness.Vector{"io_a": 7, "io_b": 9}))
	assert.Equal(t, harness.Vector{"io_c": 5}, o.Step(harness.Vector{"io_a": 3, "io_b": 2}))
}

func TestRegisterOracle(t *testing.T) {
	o := &RegisterOracle{}
	o.Reset()
	assert.Equal(t, harness.Vector{"io_q": 0}, o.Step(harness.Vector{"io_reset": 1, "io_d": 0xA}))
	assert.Equal(t, harness.Vector{"io_q": 0xA}, o.Step(harness.Vector{"io_reset": 0, "io_d": 0xA}))
	assert.Equal(t, harness.Vector{"io_q": 0}, o.Step(harness.Vector{"io_reset": 1, "io_d": 0xA}))
}

func TestTimerOracle_OverflowPulse(t *testing.T) {
	o := &TimerOracle{}
	o.Reset()

	enabled := harness.Vector{"io_enable": 1, "io_reset_count": 0}
	for i := 0; i < 9; i++ {
		out := o.Step(enabled)
		assert.Equal(t, uint64(i+1), out["io_count"])
		assert.Equal(t, uint64(0), out["io_overflow"])
	}

	out := o.Step(enabled)
	assert.Equal(t, uint64(0), out["io_count"])
	assert.Equal(t, uint64(1), out["io_overflow"], "overflow on the 10th edge")

	out = o.Step(enabled)
	assert.Equal(t, uint64(1), out["io_count"])
	assert.Equal(t, uint64(0), out["io_overflow"], "overflow lasts one cycle")
}
