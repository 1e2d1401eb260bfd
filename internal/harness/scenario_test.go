package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silence-breaker/vtbench/internal/sim"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenario_ValidFile(t *testing.T) {
	path := writeScenario(t, `
name: reg_sync_reset
description: "Reset-active and reset-inactive loads"
model: SyncReset4BitReg
reset_cycles: 1
vectors:
  - inputs: { io_reset: 1, io_d: 10 }
    expect: { io_q: 0 }
  - inputs: { io_reset: 0, io_d: 10 }
    expect: { io_q: 10 }
`)

	s, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "reg_sync_reset", s.Name)
	assert.Equal(t, "SyncReset4BitReg", s.Model)
	assert.Equal(t, 1, s.ResetCycles)
	require.Len(t, s.Vectors, 2)
	assert.Equal(t, uint64(10), s.Vectors[0].Inputs["io_d"])
	assert.Equal(t, uint64(0), s.Vectors[0].Expect["io_q"])

	steps := s.Steps()
	require.Len(t, steps, 2)
	assert.Equal(t, Vector{"io_reset": 0, "io_d": 10}, steps[1].Inputs)
	assert.Equal(t, Vector{"io_q": 10}, steps[1].Expect)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("/nonexistent/scenario.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_UnknownFieldRejected(t *testing.T) {
	path := writeScenario(t, `
name: x
description: "typo'd field"
model: Adder4
vector:
  - inputs: { io_a: 1 }
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenario_MissingName(t *testing.T) {
	path := writeScenario(t, `
description: "no name"
model: Adder4
vectors:
  - inputs: { io_a: 1 }
    expect: { io_c: 1 }
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

func TestLoadScenario_MissingModel(t *testing.T) {
	path := writeScenario(t, `
name: x
description: "no model"
vectors:
  - inputs: { io_a: 1 }
    expect: { io_c: 1 }
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model is required")
}

func TestLoadScenario_EmptyVectors(t *testing.T) {
	path := writeScenario(t, `
name: x
description: "no vectors"
model: Adder4
vectors: []
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vectors list is required")
}

func TestLoadScenario_RequiresAnExpectSomewhere(t *testing.T) {
	path := writeScenario(t, `
name: x
description: "stimulus only, nothing checked"
model: Adder4
vectors:
  - inputs: { io_a: 1, io_b: 1 }
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expect clause")
}

func TestLoadScenario_NegativeValueRejected(t *testing.T) {
	path := writeScenario(t, `
name: x
description: "negative input"
model: Adder4
vectors:
  - inputs: { io_a: -1 }
    expect: { io_c: 0 }
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestScenarioBind_UnknownInput(t *testing.T) {
	s := &Scenario{
		Name: "x", Description: "d", Model: "Adder4",
		Vectors: []ScenarioVector{
			{Inputs: map[string]uint64{"io_x": 1}, Expect: map[string]uint64{"io_c": 1}},
		},
	}
	err := s.Bind(sim.NewAdder4())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no input "io_x"`)
}

func TestScenarioBind_ValueExceedsWidth(t *testing.T) {
	s := &Scenario{
		Name: "x", Description: "d", Model: "Adder4",
		Vectors: []ScenarioVector{
			{Inputs: map[string]uint64{"io_a": 16}, Expect: map[string]uint64{"io_c": 0}},
		},
	}
	err := s.Bind(sim.NewAdder4())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds 4-bit width")
}

func TestScenarioBind_WrongModel(t *testing.T) {
	s := &Scenario{
		Name: "x", Description: "d", Model: "TenTimer",
		Vectors: []ScenarioVector{
			{Inputs: map[string]uint64{"io_a": 1}, Expect: map[string]uint64{"io_c": 1}},
		},
	}
	err := s.Bind(sim.NewAdder4())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "targets model")
}

func TestScenario_EndToEndRun(t *testing.T) {
	path := writeScenario(t, `
name: timer_hold
description: "Count three then hold with enable low"
model: TenTimer
reset_cycles: 1
vectors:
  - inputs: { io_enable: 1, io_reset_count: 0 }
  - inputs: { io_enable: 1, io_reset_count: 0 }
  - inputs: { io_enable: 1, io_reset_count: 0 }
    expect: { io_count: 3, io_overflow: 0 }
  - inputs: { io_enable: 0, io_reset_count: 0 }
    expect: { io_count: 3 }
`)
	s, err := LoadScenario(path)
	require.NoError(t, err)

	m := sim.NewTenTimer()
	require.NoError(t, s.Bind(m))

	r := &Runner{Driver: NewDriver(m), ResetCycles: s.ResetCycles}
	result, err := r.Run(s.Steps())
	require.NoError(t, err)
	assert.True(t, result.Pass)
	assert.Equal(t, 2, result.Checked)
}
