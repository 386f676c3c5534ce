package regalloc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func word(name uint64, start, end Lifetime) Interval {
	return Interval{
		Name:    name,
		Type:    TypeInfo{Size: 8, Align: 8},
		Start:   start,
		End:     end,
		Purpose: Purpose{Kind: PurposeSpilled, Size: 3, Align: 3},
	}
}

// requireNoOverlappingRegisters checks that no two intervals whose ranges
// overlap, closed on both ends, share an allocated register.
func requireNoOverlappingRegisters(t *testing.T, intervals []Interval) {
	t.Helper()
	for i := range intervals {
		for j := i + 1; j < len(intervals); j++ {
			a, b := &intervals[i], &intervals[j]
			if a.Purpose.Kind != PurposeAllocated || b.Purpose.Kind != PurposeAllocated {
				continue
			}
			if a.Start <= b.End && b.Start <= a.End {
				require.NotEqual(t, a.Purpose.Reg, b.Purpose.Reg,
					"intervals %#x and %#x overlap on %s", a.Name, b.Name, a.Purpose.Reg)
			}
		}
	}
}

func TestRunExpiresAndReuses(t *testing.T) {
	a := NewAllocator(2, nil)
	a.Add(word(1<<8, 0, 10))
	a.Add(word(2<<8, 1, 3))
	a.Add(word(3<<8, 4, 20))
	require.NoError(t, a.Run())

	// The middle interval expires before the third starts, releasing its
	// register, so nothing spills.
	for _, iv := range a.live {
		require.Equal(t, PurposeAllocated, iv.Purpose.Kind, "interval %#x", iv.Name)
	}
	requireNoOverlappingRegisters(t, a.live)
	require.Zero(t, a.FrameSize())

	// The freed register is the one reused.
	first, _ := a.Export().Lookup(2 << 8)
	third, _ := a.Export().Lookup(3 << 8)
	require.Equal(t, first.Purpose.Reg, third.Purpose.Reg)
}

func TestRunSpills(t *testing.T) {
	a := NewAllocator(2, nil)
	for i := uint64(1); i <= 4; i++ {
		a.Add(word(i<<8, 0, 10))
	}
	require.NoError(t, a.Run())

	var allocated, spilled int
	var offsets []uint64
	for _, iv := range a.live {
		switch iv.Purpose.Kind {
		case PurposeAllocated:
			allocated++
		case PurposeSpilled:
			spilled++
			offsets = append(offsets, iv.Purpose.Offset)
		}
	}
	require.Equal(t, 2, allocated)
	require.Equal(t, 2, spilled)
	require.Equal(t, []uint64{8, 16}, offsets)
	require.Equal(t, uint64(16), a.FrameSize())
	requireNoOverlappingRegisters(t, a.live)
}

func TestRunPreassigned(t *testing.T) {
	t.Run("hit", func(t *testing.T) {
		a := NewAllocator(2, nil)
		reserved := word(1<<8|1, -1, 20)
		reserved.Reserved = true
		reserved.Reg = 1
		a.Add(reserved)
		a.Add(word(2<<8, 0, 5))
		require.NoError(t, a.Run())

		entry, ok := a.Export().Lookup(1<<8 | 1)
		require.True(t, ok)
		require.Equal(t, Reg(1), entry.Purpose.Reg)
		other, ok := a.Export().Lookup(2 << 8)
		require.True(t, ok)
		require.Equal(t, PurposeAllocated, other.Purpose.Kind)
		require.NotEqual(t, Reg(1), other.Purpose.Reg)
	})

	t.Run("collision", func(t *testing.T) {
		a := NewAllocator(2, nil)
		for i := uint64(0); i < 2; i++ {
			reserved := word(i<<8|1, -1, 10)
			reserved.Reserved = true
			reserved.Reg = 1
			a.Add(reserved)
		}
		err := a.Run()
		require.Error(t, err)
		collision, ok := err.(*NoRegisterAvailableError)
		require.True(t, ok)
		require.Equal(t, Reg(1), collision.Register)
		require.Equal(t, "cannot find a free register with this name: 1", err.Error())
	})

	t.Run("collision leaves earlier assignments", func(t *testing.T) {
		a := NewAllocator(1, nil)
		a.Add(word(1<<8, 0, 10))
		reserved := word(2<<8, 1, 10)
		reserved.Reserved = true
		reserved.Reg = 0
		a.Add(reserved)
		require.Error(t, a.Run())

		first, ok := a.Export().Lookup(1 << 8)
		require.True(t, ok)
		require.Equal(t, PurposeAllocated, first.Purpose.Kind)
	})
}

func TestAddRoutesToStack(t *testing.T) {
	a := NewAllocator(1, nil)

	forced := word(1<<8, 0, 4)
	forced.ForceStack = true
	a.Add(forced)

	wide := word(2<<8, 0, 4)
	wide.Type = TypeInfo{Size: 16, Align: 16}
	a.Add(wide)

	a.Add(word(3<<8, 0, 4))
	require.NoError(t, a.Run())

	// Stack intervals never compete for the register pool.
	require.Equal(t, 2, len(a.stack))
	require.Equal(t, 1, len(a.live))
	require.Equal(t, PurposeAllocated, a.live[0].Purpose.Kind)
	for _, iv := range a.stack {
		require.Equal(t, PurposeSpilled, iv.Purpose.Kind)
		require.Zero(t, iv.Purpose.Offset)
	}
}

func TestRunAllIntervalsDecided(t *testing.T) {
	a := NewAllocator(3, nil)
	intervals := []Interval{
		word(1<<8, 0, 3), word(2<<8, 0, 9), word(3<<8, 2, 4),
		word(4<<8, 4, 8), word(5<<8, 5, 6), word(6<<8, 7, 12),
	}
	for _, iv := range intervals {
		a.Add(iv)
	}
	require.NoError(t, a.Run())

	var decided int
	for _, iv := range a.live {
		switch iv.Purpose.Kind {
		case PurposeAllocated, PurposeSpilled:
			decided++
		}
		if iv.Purpose.Kind == PurposeSpilled {
			require.NotZero(t, iv.Purpose.Offset)
		}
	}
	require.Equal(t, len(intervals), decided)
	requireNoOverlappingRegisters(t, a.live)
}

func TestPurposeString(t *testing.T) {
	require.Equal(t, "r3.8", Purpose{Kind: PurposeAllocated, Reg: 3, Size: 3}.String())
	require.Equal(t, "[sp-16]", Purpose{Kind: PurposeSpilled, Offset: 16}.String())
}
