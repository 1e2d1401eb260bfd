package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/silence-breaker/vtbench/internal/sim"
)

// Scenario is a literal stimulus table loaded from a YAML file. It names
// the model it drives; the caller resolves the name to a model instance
// and binds the scenario against its signal interface before running.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario exercises.
	Description string `yaml:"description"`

	// Model is the circuit name the vectors target, e.g. "TenTimer".
	Model string `yaml:"model"`

	// ResetCycles is the number of power-on reset clock periods applied
	// before the first vector. Defaults to 0.
	ResetCycles int `yaml:"reset_cycles,omitempty"`

	// Vectors is the ordered stimulus table.
	Vectors []ScenarioVector `yaml:"vectors"`
}

// ScenarioVector is one (input, expected-output) pair. Expect is a subset
// match: only the listed outputs are checked. A vector with no expect is
// applied but not checked (useful for walking a sequential circuit into a
// known state).
type ScenarioVector struct {
	Inputs map[string]uint64 `yaml:"inputs"`
	Expect map[string]uint64 `yaml:"expect,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file. Unknown fields
// (typos) and missing required fields are rejected.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var s Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&s); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &s, nil
}

// Steps converts the scenario's vector table into harness steps.
func (s *Scenario) Steps() []Step {
	steps := make([]Step, len(s.Vectors))
	for i, v := range s.Vectors {
		steps[i] = Step{Inputs: Vector(v.Inputs)}
		if v.Expect != nil {
			steps[i].Expect = Vector(v.Expect)
		}
	}
	return steps
}

// Bind checks the scenario against a model's signal interface: every
// input name must be a model input, every expect name a model output, and
// every value must fit the signal's width.
func (s *Scenario) Bind(m sim.Model) error {
	if s.Model != m.Name() {
		return fmt.Errorf("scenario %s targets model %q, got %q", s.Name, s.Model, m.Name())
	}

	inputs := signalsByName(m.Inputs())
	outputs := signalsByName(m.Outputs())

	for i, v := range s.Vectors {
		for name, val := range v.Inputs {
			sig, ok := inputs[name]
			if !ok {
				return fmt.Errorf("vectors[%d]: %s has no input %q", i, m.Name(), name)
			}
			if sig.Mask(val) != val {
				return fmt.Errorf("vectors[%d]: %s=%d exceeds %d-bit width", i, name, val, sig.Width)
			}
		}
		for name, val := range v.Expect {
			sig, ok := outputs[name]
			if !ok {
				return fmt.Errorf("vectors[%d]: %s has no output %q", i, m.Name(), name)
			}
			if sig.Mask(val) != val {
				return fmt.Errorf("vectors[%d]: expect %s=%d exceeds %d-bit width", i, name, val, sig.Width)
			}
		}
	}
	return nil
}

func signalsByName(sigs []sim.Signal) map[string]sim.Signal {
	m := make(map[string]sim.Signal, len(sigs))
	for _, s := range sigs {
		m[s.Name] = s
	}
	return m
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Model == "" {
		return fmt.Errorf("model is required")
	}
	if s.ResetCycles < 0 {
		return fmt.Errorf("reset_cycles must be non-negative")
	}
	if len(s.Vectors) == 0 {
		return fmt.Errorf("vectors list is required and must be non-empty")
	}

	checked := false
	for i, v := range s.Vectors {
		if len(v.Inputs) == 0 {
			return fmt.Errorf("vectors[%d]: inputs is required", i)
		}
		if len(v.Expect) > 0 {
			checked = true
		}
	}
	if !checked {
		return fmt.Errorf("at least one vector must have an expect clause")
	}
	return nil
}
