package sim

// TenTimer is a decade counter. While io_enable is high it counts rising
// clock edges 0..9 and wraps to 0. io_reset_count synchronously clears the
// count. io_overflow is registered and asserts for exactly one cycle, on
// the edge where the count wraps from 9 to 0; it is not sustained while
// the count sits at 9.
type TenTimer struct {
	clk, prevClk uint64
	reset        uint64
	enable       uint64
	resetCount   uint64
	count        uint64
	overflow     uint64
}

// NewTenTimer returns a counter at zero, overflow deasserted, clock low.
func NewTenTimer() *TenTimer {
	return &TenTimer{}
}

func (m *TenTimer) Name() string  { return "TenTimer" }
func (m *TenTimer) Clock() string { return "clock" }

func (m *TenTimer) Inputs() []Signal {
	return []Signal{
		{Name: "clock", Width: 1},
		{Name: "reset", Width: 1},
		{Name: "io_enable", Width: 1},
		{Name: "io_reset_count", Width: 1},
	}
}

func (m *TenTimer) Outputs() []Signal {
	return []Signal{
		{Name: "io_count", Width: 4},
		{Name: "io_overflow", Width: 1},
	}
}

func (m *TenTimer) Poke(name string, value uint64) error {
	switch name {
	case "clock":
		m.clk = value & 1
	case "reset":
		m.reset = value & 1
	case "io_enable":
		m.enable = value & 1
	case "io_reset_count":
		m.resetCount = value & 1
	default:
		return errUnknownInput(m.Name(), name)
	}
	return nil
}

func (m *TenTimer) Peek(name string) (uint64, error) {
	switch name {
	case "io_count":
		return m.count, nil
	case "io_overflow":
		return m.overflow, nil
	default:
		return 0, errUnknownOutput(m.Name(), name)
	}
}

func (m *TenTimer) Eval() {
	if risingEdge(m.prevClk, m.clk) {
		switch {
		case m.reset == 1 || m.resetCount == 1:
			m.count = 0
			m.overflow = 0
		case m.enable == 1:
			if m.count == 9 {
				m.count = 0
				m.overflow = 1
			} else {
				m.count++
				m.overflow = 0
			}
		default:
			// Disabled edge: count holds, overflow still deasserts so it
			// only ever lasts a single cycle.
			m.overflow = 0
		}
	}
	m.prevClk = m.clk
}
