package sim

// Adder4 is a purely combinational 4-bit adder: io_c = (io_a + io_b) mod 16.
// The carry out of bit 3 is discarded, matching the generated model.
type Adder4 struct {
	a, b, c uint64
}

// NewAdder4 returns a powered-up adder with all inputs at zero.
func NewAdder4() *Adder4 {
	return &Adder4{}
}

func (m *Adder4) Name() string { return "Adder4" }

func (m *Adder4) Inputs() []Signal {
	return []Signal{
		{Name: "io_a", Width: 4},
		{Name: "io_b", Width: 4},
	}
}

func (m *Adder4) Outputs() []Signal {
	return []Signal{
		{Name: "io_c", Width: 4},
	}
}

func (m *Adder4) Poke(name string, value uint64) error {
	switch name {
	case "io_a":
		m.a = value & 0xF
	case "io_b":
		m.b = value & 0xF
	default:
		return errUnknownInput(m.Name(), name)
	}
	return nil
}

func (m *Adder4) Peek(name string) (uint64, error) {
	if name != "io_c" {
		return 0, errUnknownOutput(m.Name(), name)
	}
	return m.c, nil
}

func (m *Adder4) Eval() {
	m.c = (m.a + m.b) & 0xF
}
