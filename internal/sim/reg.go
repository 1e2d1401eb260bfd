package sim

// SyncResetReg4 is a 4-bit register with a synchronous, active-high reset.
// On each rising clock edge it latches io_d, unless reset or io_reset is
// asserted, in which case io_q clears to zero on that edge. reset is the
// module-level power-on reset; io_reset is the user-facing reset port. Both
// clear synchronously.
type SyncResetReg4 struct {
	clk, prevClk uint64
	reset        uint64
	ioReset      uint64
	d            uint64
	q            uint64
}

// NewSyncResetReg4 returns a register holding zero, clock low.
func NewSyncResetReg4() *SyncResetReg4 {
	return &SyncResetReg4{}
}

func (m *SyncResetReg4) Name() string  { return "SyncReset4BitReg" }
func (m *SyncResetReg4) Clock() string { return "clock" }

func (m *SyncResetReg4) Inputs() []Signal {
	return []Signal{
		{Name: "clock", Width: 1},
		{Name: "reset", Width: 1},
		{Name: "io_reset", Width: 1},
		{Name: "io_d", Width: 4},
	}
}

func (m *SyncResetReg4) Outputs() []Signal {
	return []Signal{
		{Name: "io_q", Width: 4},
	}
}

func (m *SyncResetReg4) Poke(name string, value uint64) error {
	switch name {
	case "clock":
		m.clk = value & 1
	case "reset":
		m.reset = value & 1
	case "io_reset":
		m.ioReset = value & 1
	case "io_d":
		m.d = value & 0xF
	default:
		return errUnknownInput(m.Name(), name)
	}
	return nil
}

func (m *SyncResetReg4) Peek(name string) (uint64, error) {
	if name != "io_q" {
		return 0, errUnknownOutput(m.Name(), name)
	}
	return m.q, nil
}

func (m *SyncResetReg4) Eval() {
	if risingEdge(m.prevClk, m.clk) {
		if m.reset == 1 || m.ioReset == 1 {
			m.q = 0
		} else {
			m.q = m.d
		}
	}
	m.prevClk = m.clk
}
