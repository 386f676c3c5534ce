package rtlasm

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReturn(t *testing.T) {
	b := NewBuffer()
	require.NoError(t, b.Return())
	require.Equal(t, 4, b.Len())
	require.Equal(t, []byte{byte(OpReturn), 0, 0, 0}, b.Bytes())
	require.Zero(t, len(b.Matrix()))
}

func TestEnter(t *testing.T) {
	b := NewBuffer()
	require.NoError(t, b.Enter(0x123456))
	require.Equal(t, []byte{byte(OpEnter), 0x56, 0x34, 0x12}, b.Bytes())

	// The immediate field is 24 bits wide; the top byte is dropped.
	b = NewBuffer()
	require.NoError(t, b.Leave(0xff123456))
	i, _, err := Decode(b.Bytes())
	require.NoError(t, err)
	require.Equal(t, uint32(0x123456), i.Imm)
}

func TestIMoveImmediate(t *testing.T) {
	b := NewBuffer()
	require.NoError(t, b.IMoveImmediate(ISize32, 3, 0xaa))
	require.Equal(t, []byte{byte(OpIMoveImmediate) | byte(ISize32)<<6, 3, 1, 0, 0xaa}, b.Bytes())

	require.Equal(t, 1, len(b.Matrix()))
	elem := b.Matrix()[0]
	assert.Equal(t, Element{
		Offset: 5,
		Place:  OperandGPReg,
		Value:  OperandImmediate,
		V1:     Operand{Reg: 3, Size: ISize32},
		V2:     Operand{Imm: 0xaa},
	}, elem)
}

// TestRelTailLen checks the encoded length of a trailing immediate is the
// minimum of 0, 1, 2, 4 or 8 bytes holding the value.
func TestRelTailLen(t *testing.T) {
	for _, c := range []struct {
		value uint64
		exp   int
	}{
		{0, 0},
		{1, 1},
		{0xff, 1},
		{0x100, 2},
		{0xffff, 2},
		{0x10000, 4},
		{0xffffffff, 4},
		{0x100000000, 8},
		{0xffffffffffffffff, 8},
	} {
		t.Run(fmt.Sprintf("%#x", c.value), func(t *testing.T) {
			b := NewBuffer()
			require.NoError(t, b.Call(c.value))
			require.Equal(t, 4+c.exp, b.Len())
			i, n, err := Decode(b.Bytes())
			require.NoError(t, err)
			require.Equal(t, b.Len(), n)
			require.Equal(t, c.value, i.Tail)
		})
	}
}

func TestCallIndirectPatchWindow(t *testing.T) {
	b := NewBuffer()
	require.NoError(t, b.CallIndirect(5))
	// The zero value would encode in zero bytes, but an indirect call
	// always reserves the full 8-byte window for the linker.
	require.Equal(t, 12, b.Len())
	require.Equal(t, []byte{byte(OpCallIndirect) | byte(ISize64)<<6, 5, 8, 0}, b.Bytes()[:4])
	require.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 0}, b.Bytes()[4:])
}

func TestInvalidSizeClass(t *testing.T) {
	for i, c := range []func(b *Buffer) error{
		func(b *Buffer) error { return b.IAdd(4, 1, 2, 3) },
		func(b *Buffer) error { return b.IMoveImmediate(4, 1, 9) },
		func(b *Buffer) error { return b.IMoveUnsigned(ISize64, 1, 2, 5) },
		func(b *Buffer) error { return b.FAdd(2, 1, 2, 3) },
		func(b *Buffer) error { return b.FMove(3, 1, 2) },
		func(b *Buffer) error { return b.F2I(ISize64, 1, 2, 2) },
		func(b *Buffer) error { return b.I2F(2, 1, 2, ISize8) },
		func(b *Buffer) error { return b.VAdd(4, 1, 2, 3) },
		func(b *Buffer) error { return b.VTruncate(5, 1) },
	} {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			b := NewBuffer()
			err := c(b)
			require.ErrorIs(t, err, ErrInvalidSizeClass)
			// A rejected emit leaves the buffer untouched.
			require.Zero(t, b.Len())
			require.Zero(t, len(b.Matrix()))
		})
	}
}

// TestMatrixMirrorsDataMovingEmits checks the matrix gains exactly one
// element per data-moving instruction, with the offset just past it.
func TestMatrixMirrorsDataMovingEmits(t *testing.T) {
	b := NewBuffer()
	require.NoError(t, b.Enter(0))                        // no element
	require.NoError(t, b.IMoveImmediate(ISize64, 0, 1))   // element, ends at 9
	require.NoError(t, b.IAdd(ISize64, 1, 0, 0))          // no element
	require.NoError(t, b.ILoad(ISize32, 2, 1, 0))         // element, ends at 17
	require.NoError(t, b.IStore(ISize32, 2, 1, 0))        // element, ends at 21
	require.NoError(t, b.IPush(2))                        // element, ends at 25
	require.NoError(t, b.IPop(3))                         // element, ends at 29
	require.NoError(t, b.FMove(FSize64, 1, 0))            // element, ends at 33
	require.NoError(t, b.FLoad(FSize32, 0, 1, 2))         // element, ends at 37
	require.NoError(t, b.FStore(FSize32, 0, 1, 2))        // element, ends at 41
	require.NoError(t, b.FPush(0))                        // element, ends at 45
	require.NoError(t, b.FPop(0))                         // element, ends at 49
	require.NoError(t, b.IMoveSigned(ISize64, 1, 2, ISize8)) // element, ends at 53
	require.NoError(t, b.VLoad(VSize4, 0, 1, 2))          // element, ends at 57
	require.NoError(t, b.VStore(VSize4, 0, 1, 2))         // element, ends at 61
	require.NoError(t, b.Return())                        // no element

	m := b.Matrix()
	require.Equal(t, 13, len(m))
	exp := []int{9, 17, 21, 25, 29, 33, 37, 41, 45, 49, 53, 57, 61}
	for i := range m {
		require.Equal(t, exp[i], m[i].Offset, "element %d", i)
	}

	// Push and pop address the stack through the reserved registers.
	push := m[3]
	require.Equal(t, OperandMemIndirect, push.Place)
	require.Equal(t, Operand{Base: RSP, Off: 0}, push.V1)
	require.Equal(t, Operand{Reg: 2, Size: ISize64}, push.V2)
	pop := m[4]
	require.Equal(t, OperandMemBase, pop.Value)
	require.Equal(t, Operand{Base: RSP, Off: -8}, pop.V2)

	// Sign extension is recorded on the source operand.
	mov := m[10]
	require.Equal(t, Operand{Reg: 2, Size: ISize8, Ext: true}, mov.V2)
}

func TestExtendTruncateShareOpcode(t *testing.T) {
	b := NewBuffer()
	require.NoError(t, b.Extend(1))
	require.NoError(t, b.Truncate(1))
	ext, n, err := Decode(b.Bytes())
	require.NoError(t, err)
	trunc, _, err := Decode(b.Bytes()[n:])
	require.NoError(t, err)
	require.Equal(t, ext.Opcode, trunc.Opcode)
	require.Equal(t, FSize32, ext.Size)
	require.Equal(t, FSize64, trunc.Size)
}

func TestVTruncateOpcode(t *testing.T) {
	b := NewBuffer()
	require.NoError(t, b.VTruncate(VSize2, 6))
	i, _, err := Decode(b.Bytes())
	require.NoError(t, err)
	require.Equal(t, OpVTruncate, i.Opcode)
	require.Equal(t, uint8(6), i.Dest)
}

func TestBufferGrowth(t *testing.T) {
	b := NewBuffer()
	const n = 600 // 2400 bytes, past the initial capacity
	for i := 0; i < n; i++ {
		require.NoError(t, b.IAdd(ISize64, uint8(i), uint8(i+1), uint8(i+2)))
	}
	require.Equal(t, 4*n, b.Len())
	last, _, err := Decode(b.Bytes()[4*(n-1):])
	require.NoError(t, err)
	require.Equal(t, uint8((n-1)%256), last.Dest)
}

func TestSetParams(t *testing.T) {
	b := NewBuffer()
	require.Zero(t, b.Params())
	b.SetParams(3)
	require.Equal(t, 3, b.Params())
}
