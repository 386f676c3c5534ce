package regalloc

import "sort"

// variableTableSize bounds the transient register name space of the
// instruction stream. Register names are 8 bits wide, so at most 256 named
// temporaries can be simultaneously live; this is a hard limit of the IR.
const variableTableSize = 256

// Allocator accumulates live intervals for one function and assigns each a
// physical register or a stack slot. The zero value is not usable;
// construct allocators with NewAllocator.
type Allocator struct {
	// free is the pool of unheld physical registers. Expired registers
	// return to the tail and allocation pops from the tail, so the most
	// recently released register is reused first.
	free []Reg
	// params are the parameter-passing registers in parameter order.
	params []Reg
	// live are the intervals competing for registers, in insertion order
	// until Run sorts them by start.
	live []Interval
	// stack are the intervals that bypass the scan: ForceStack ones and
	// any wider than a machine word.
	stack []Interval
	// active are the intervals currently holding a register.
	active []activeInterval
	// variables maps a transient register number to the index of its
	// current live interval, rebound on every definition. -1 is unbound.
	variables [variableTableSize]int
	// counter is the definition ordinal packed into interval names.
	counter uint64
	// offset is the running spill frame offset in bytes.
	offset uint64
}

type activeInterval struct {
	index int
	reg   Reg
}

// NewAllocator returns an allocator over a machine with regCount physical
// general registers numbered 0..regCount-1, of which paramRegs, in order,
// carry the leading formal parameters.
func NewAllocator(regCount int, paramRegs []Reg) *Allocator {
	a := &Allocator{
		free:   make([]Reg, regCount),
		params: make([]Reg, len(paramRegs)),
	}
	for i := range a.free {
		a.free[i] = Reg(i)
	}
	copy(a.params, paramRegs)
	for i := range a.variables {
		a.variables[i] = -1
	}
	return a
}

// Add inserts an interval ahead of Run. Intervals marked ForceStack, and
// any whose value exceeds 8 bytes, join the stack list and never compete
// for registers; the rest join the live list.
func (a *Allocator) Add(interval Interval) {
	if interval.ForceStack || interval.Type.Size > 8 {
		a.stack = append(a.stack, interval)
	} else {
		a.live = append(a.live, interval)
	}
}

// FrameSize returns the bytes of spill frame consumed so far. Valid after
// Run.
func (a *Allocator) FrameSize() uint64 {
	return a.offset
}

// Run performs the linear scan. Intervals are visited in start order; at
// each, actives whose end precedes the start expire and release their
// registers, then the interval either consumes its preassigned register,
// pops a free one, or spills to a fresh 8-byte slot. The decision is
// committed to the interval's Purpose before the next interval is visited.
//
// The only fatal outcome is a preassigned register that is not free.
// Intervals already assigned keep their assignment when Run fails.
func (a *Allocator) Run() error {
	sort.SliceStable(a.live, func(i, j int) bool {
		return a.live[i].Start < a.live[j].Start
	})

	for idx := range a.live {
		i := &a.live[idx]
		a.expire(i.Start)

		switch {
		case i.Reserved:
			j := -1
			for k, r := range a.free {
				if r == i.Reg {
					j = k
					break
				}
			}
			if j < 0 {
				return &NoRegisterAvailableError{Register: i.Reg}
			}
			a.free = append(a.free[:j], a.free[j+1:]...)
			i.Purpose = Purpose{Kind: PurposeAllocated, Reg: i.Reg, Size: log2(i.Type.Size)}
			a.active = append(a.active, activeInterval{index: idx, reg: i.Reg})
		case len(a.free) == 0:
			a.offset += 8
			i.Purpose.Kind = PurposeSpilled
			i.Purpose.Offset = a.offset
		default:
			reg := a.free[len(a.free)-1]
			a.free = a.free[:len(a.free)-1]
			i.Purpose = Purpose{Kind: PurposeAllocated, Reg: reg, Size: log2(i.Type.Size)}
			a.active = append(a.active, activeInterval{index: idx, reg: reg})
		}
	}
	return nil
}

// expire removes every active interval ending before start and returns its
// register to the free pool.
func (a *Allocator) expire(start Lifetime) {
	sort.SliceStable(a.active, func(i, j int) bool {
		return a.live[a.active[i].index].End < a.live[a.active[j].index].End
	})
	cut := 0
	for _, act := range a.active {
		if a.live[act.index].End >= start {
			break
		}
		a.free = append(a.free, act.reg)
		cut++
	}
	a.active = append(a.active[:0], a.active[cut:]...)
}
