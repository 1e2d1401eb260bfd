package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tick drives one full clock period: rising edge then falling edge.
func tick(t *testing.T, m Sequential) {
	t.Helper()
	require.NoError(t, m.Poke(m.Clock(), 1))
	m.Eval()
	require.NoError(t, m.Poke(m.Clock(), 0))
	m.Eval()
}

func TestAdder4_Exhaustive(t *testing.T) {
	m := NewAdder4()
	for a := uint64(0); a < 16; a++ {
		for b := uint64(0); b < 16; b++ {
			require.NoError(t, m.Poke("io_a", a))
			require.NoError(t, m.Poke("io_b", b))
			m.Eval()
			c, err := m.Peek("io_c")
			require.NoError(t, err)
			assert.Equal(t, (a+b)&0xF, c, "a=%d b=%d", a, b)
		}
	}
}

func TestAdder4_MasksOperands(t *testing.T) {
	m := NewAdder4()
	require.NoError(t, m.Poke("io_a", 0x17)) // masked to 7
	require.NoError(t, m.Poke("io_b", 9))
	m.Eval()
	c, err := m.Peek("io_c")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), c)
}

func TestAdder4_UnknownSignals(t *testing.T) {
	m := NewAdder4()
	assert.Error(t, m.Poke("io_x", 1))
	_, err := m.Peek("io_y")
	assert.Error(t, err)
}

func TestSyncResetReg4_LatchesOnRisingEdge(t *testing.T) {
	m := NewSyncResetReg4()
	require.NoError(t, m.Poke("io_d", 0xA))
	m.Eval() // no edge, q must hold
	q, err := m.Peek("io_q")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), q)

	tick(t, m)
	q, err = m.Peek("io_q")
	require.NoError(t, err)
	assert.Equal(t, uint64(0xA), q)
}

func TestSyncResetReg4_SyncReset(t *testing.T) {
	m := NewSyncResetReg4()
	require.NoError(t, m.Poke("io_d", 0xA))
	tick(t, m)

	// Reset asserted: q clears on the edge even though io_d is still 0xA.
	require.NoError(t, m.Poke("io_reset", 1))
	tick(t, m)
	q, err := m.Peek("io_q")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), q)

	require.NoError(t, m.Poke("io_reset", 0))
	require.NoError(t, m.Poke("io_d", 0x5))
	tick(t, m)
	q, err = m.Peek("io_q")
	require.NoError(t, err)
	assert.Equal(t, uint64(0x5), q)
}

func TestSyncResetReg4_ClockHeldHighIsNotAnEdge(t *testing.T) {
	m := NewSyncResetReg4()
	require.NoError(t, m.Poke("io_d", 0x3))
	require.NoError(t, m.Poke("clock", 1))
	m.Eval()
	require.NoError(t, m.Poke("io_d", 0xC))
	m.Eval() // clock still high, no new edge
	q, err := m.Peek("io_q")
	require.NoError(t, err)
	assert.Equal(t, uint64(0x3), q)
}

func TestTenTimer_CountsDecimalAndWraps(t *testing.T) {
	m := NewTenTimer()
	require.NoError(t, m.Poke("io_enable", 1))

	overflows := 0
	for i := 0; i < 10; i++ {
		tick(t, m)
		count, err := m.Peek("io_count")
		require.NoError(t, err)
		assert.Equal(t, uint64(i+1)%10, count, "cycle %d", i)

		ovf, err := m.Peek("io_overflow")
		require.NoError(t, err)
		if ovf == 1 {
			overflows++
			// Overflow must coincide with the wrap back to zero.
			assert.Equal(t, uint64(0), count, "cycle %d", i)
		}
	}
	assert.Equal(t, 1, overflows, "overflow must assert exactly once per decade")
}

func TestTenTimer_OverflowLastsOneCycle(t *testing.T) {
	m := NewTenTimer()
	require.NoError(t, m.Poke("io_enable", 1))
	for i := 0; i < 10; i++ {
		tick(t, m)
	}
	ovf, err := m.Peek("io_overflow")
	require.NoError(t, err)
	require.Equal(t, uint64(1), ovf)

	// Next edge, enabled or not, deasserts it.
	require.NoError(t, m.Poke("io_enable", 0))
	tick(t, m)
	ovf, err = m.Peek("io_overflow")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), ovf)
}

func TestTenTimer_DisabledHoldsCount(t *testing.T) {
	m := NewTenTimer()
	require.NoError(t, m.Poke("io_enable", 1))
	for i := 0; i < 4; i++ {
		tick(t, m)
	}
	require.NoError(t, m.Poke("io_enable", 0))
	for i := 0; i < 5; i++ {
		tick(t, m)
		count, err := m.Peek("io_count")
		require.NoError(t, err)
		assert.Equal(t, uint64(4), count)
	}
}

func TestTenTimer_ResetCountClears(t *testing.T) {
	m := NewTenTimer()
	require.NoError(t, m.Poke("io_enable", 1))
	for i := 0; i < 7; i++ {
		tick(t, m)
	}

	require.NoError(t, m.Poke("io_reset_count", 1))
	tick(t, m)
	count, err := m.Peek("io_count")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
	ovf, err := m.Peek("io_overflow")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), ovf)

	// Counting resumes from zero once released.
	require.NoError(t, m.Poke("io_reset_count", 0))
	tick(t, m)
	count, err = m.Peek("io_count")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestTenTimer_ResetCountWinsOverEnableAtNine(t *testing.T) {
	m := NewTenTimer()
	require.NoError(t, m.Poke("io_enable", 1))
	for i := 0; i < 9; i++ {
		tick(t, m)
	}
	count, err := m.Peek("io_count")
	require.NoError(t, err)
	require.Equal(t, uint64(9), count)

	// A reset edge out of 9 is a clear, not an increment: no overflow.
	require.NoError(t, m.Poke("io_reset_count", 1))
	tick(t, m)
	count, err = m.Peek("io_count")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
	ovf, err := m.Peek("io_overflow")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), ovf)
}
