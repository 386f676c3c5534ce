package regalloc

import (
	"fmt"
	"math/bits"
)

// Lifetime is a byte offset into a code buffer, a monotonic proxy for the
// instruction index. The sentinel -1 marks values live from function entry.
type Lifetime = int64

// TypeInfo carries the byte size and alignment of an interval's value.
type TypeInfo struct {
	Size  uint64
	Align uint64
}

// PurposeKind tags where an interval's value lives after allocation.
type PurposeKind uint8

const (
	// PurposeSpilled places the value in a stack slot. It is also the
	// pre-allocation placeholder, with offset zero.
	PurposeSpilled PurposeKind = iota
	// PurposeAllocated places the value in a physical register.
	PurposeAllocated
)

// Purpose is the allocation outcome of one interval. Reg carries meaning
// for PurposeAllocated, Offset and Align for PurposeSpilled; Size is the
// log2 byte width in both cases.
type Purpose struct {
	Kind   PurposeKind
	Reg    Reg
	Offset uint64
	Size   uint8
	Align  uint8
}

// String implements fmt.Stringer.
func (p Purpose) String() string {
	if p.Kind == PurposeAllocated {
		return fmt.Sprintf("%s.%d", p.Reg, uint(1)<<p.Size)
	}
	return fmt.Sprintf("[sp-%d]", p.Offset)
}

// Interval is the contiguous range of instruction offsets during which one
// named value is needed.
//
// Name packs a definition ordinal in the upper bits with the transient
// register number of the defining instruction in the low 8; parameters use
// their parameter index as ordinal. ForceStack intervals, like any whose
// size exceeds a machine word, bypass the scan and stay spilled. Reserved
// intervals carry a preassigned register in Reg and fail the run if it is
// taken.
type Interval struct {
	Name       uint64
	Type       TypeInfo
	Start, End Lifetime
	ForceStack bool
	Reserved   bool
	Reg        Reg
	Purpose    Purpose
}

// log2 truncates to the floor binary logarithm, mapping a byte size to the
// size-class encoding used by Purpose.
func log2(v uint64) uint8 {
	if v == 0 {
		return 0
	}
	return uint8(bits.Len64(v) - 1)
}
