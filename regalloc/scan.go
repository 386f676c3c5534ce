package regalloc

import (
	"fmt"

	"github.com/tetratelabs/rtlasm"
)

// Scan synthesizes live intervals from buf in a single forward pass.
//
// It first seeds one interval per formal parameter: parameter i is
// preassigned the ith parameter register when one exists, otherwise forced
// to the stack. Parameter intervals carry the sentinel lifetime -1, live
// from entry. The walk then decodes each instruction, extends the interval
// bound to every operand the opcode reads, and opens a fresh interval for
// every destination the opcode writes, rebinding the variable table.
//
// Scan may be called once per buffer before Run; intervals accumulate
// across calls in emission order.
func (a *Allocator) Scan(buf *rtlasm.Buffer) error {
	for i := 0; i < buf.Params(); i++ {
		// Arguments are word-size.
		iv := Interval{
			Type:    TypeInfo{Size: 8, Align: 8},
			Start:   -1,
			End:     -1,
			Purpose: Purpose{Kind: PurposeSpilled, Size: 3, Align: 3},
		}
		if i < len(a.params) {
			iv.Name = uint64(i)<<8 | uint64(a.params[i])
			iv.Reserved = true
			iv.Reg = a.params[i]
		} else {
			iv.Name = uint64(i) << 8
			iv.ForceStack = true
		}
		a.Add(iv)
	}
	a.counter = uint64(buf.Params())

	code := buf.Bytes()
	for off := 0; off < len(code); {
		inst, n, err := rtlasm.Decode(code[off:])
		if err != nil {
			return fmt.Errorf("offset %d: %w", off, err)
		}
		a.instruction(&inst, Lifetime(off))
		off += n
	}
	return nil
}

// instruction applies one decoded instruction at byte offset idx: the use
// side first, then the def side, so an instruction reading and rewriting
// the same transient register closes the old interval before opening the
// new one.
func (a *Allocator) instruction(inst *rtlasm.Inst, idx Lifetime) {
	switch uses(inst.Opcode) {
	case 1:
		a.touch(inst.Dest, idx)
	case 2:
		a.touch(inst.Dest, idx)
		a.touch(inst.Src1, idx)
	case 3:
		a.touch(inst.Dest, idx)
		a.touch(inst.Src1, idx)
		a.touch(inst.Src2, idx)
	}

	if defines(inst.Opcode) {
		a.variables[inst.Dest] = len(a.live)
		a.live = append(a.live, Interval{
			Name:    a.counter<<8 | uint64(inst.Dest),
			Type:    TypeInfo{Size: 1 << inst.Size, Align: 1 << inst.Size},
			Start:   idx,
			End:     idx,
			Purpose: Purpose{Kind: PurposeSpilled, Size: uint8(inst.Size), Align: uint8(inst.Size)},
		})
		a.counter++
	}
}

// touch extends the interval currently bound to the transient register reg.
// Registers with no live binding are ignored.
func (a *Allocator) touch(reg uint8, idx Lifetime) {
	if v := a.variables[reg]; v >= 0 && v < len(a.live) {
		a.live[v].End = idx
	}
}

// uses returns how many operand fields the opcode reads: its destination
// counts as a use, so a register triple reads all three.
func uses(op rtlasm.Opcode) int {
	switch op {
	case rtlasm.OpCallIndirect, rtlasm.OpIMoveImmediate,
		rtlasm.OpIPop, rtlasm.OpIPush, rtlasm.OpFPop, rtlasm.OpFPush,
		rtlasm.OpExtend, rtlasm.OpVTruncate:
		return 1
	case rtlasm.OpIMoveUnsigned, rtlasm.OpIMoveSigned, rtlasm.OpFMove,
		rtlasm.OpF2I, rtlasm.OpI2F, rtlasm.OpF2Bits, rtlasm.OpBits2F,
		rtlasm.OpVExtend:
		return 2
	case rtlasm.OpIAdd, rtlasm.OpIAddCarry, rtlasm.OpIAnd, rtlasm.OpIOr,
		rtlasm.OpIXor, rtlasm.OpISubtract, rtlasm.OpICompare,
		rtlasm.OpIMultiplyUnsigned, rtlasm.OpIMultiplySigned,
		rtlasm.OpIDivideUnsigned, rtlasm.OpIDivideSigned,
		rtlasm.OpIModuloUnsigned, rtlasm.OpIModuloSigned,
		rtlasm.OpILoad, rtlasm.OpIStore,
		rtlasm.OpFAdd, rtlasm.OpFSubtract, rtlasm.OpFCompare,
		rtlasm.OpFMultiply, rtlasm.OpFDivide, rtlasm.OpFLoad, rtlasm.OpFStore,
		rtlasm.OpVAdd, rtlasm.OpVSubtract, rtlasm.OpVMultiplyF,
		rtlasm.OpVDivideF, rtlasm.OpVMultiply, rtlasm.OpVDivide,
		rtlasm.OpVDot, rtlasm.OpVCross, rtlasm.OpVLoad, rtlasm.OpVStore:
		return 3
	default:
		return 0
	}
}

// defines reports whether the opcode opens a fresh interval for its
// destination register field. Every opcode with register uses does, stores
// included, except indirect calls and pushes, which consume values without
// defining one; direct calls and branches have no register uses.
func defines(op rtlasm.Opcode) bool {
	switch op {
	case rtlasm.OpCallIndirect, rtlasm.OpIPush, rtlasm.OpFPush:
		return false
	default:
		return uses(op) > 0
	}
}
