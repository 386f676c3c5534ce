package rtlasm

import "fmt"

const (
	defaultBufferCap = 1024
	defaultMatrixCap = 256
)

// Buffer is an ordered byte stream of encoded instructions together with
// its side tables: the operand matrix, the local symbol table, the pending
// relocation list, and the formal parameter count consumed by the register
// allocator.
//
// The zero value is not usable; construct buffers with NewBuffer. Once
// registered in a Context via AddBuffer the buffer is owned by that context
// and must not be shared with another one.
type Buffer struct {
	code   []byte
	matrix []Element
	local  SymbolTable
	relocs []Relocation
	params int
}

// NewBuffer returns an empty code buffer.
func NewBuffer() *Buffer {
	return &Buffer{
		code:   make([]byte, 0, defaultBufferCap),
		matrix: make([]Element, 0, defaultMatrixCap),
	}
}

// Bytes returns the encoded instruction stream. The returned slice remains
// valid until the next emit, and is written in place by Context.Link.
func (b *Buffer) Bytes() []byte {
	return b.code
}

// Len returns the length of the encoded instruction stream in bytes.
func (b *Buffer) Len() int {
	return len(b.code)
}

// Matrix returns the operand descriptors recorded so far, one per
// data-moving instruction, in emission order.
func (b *Buffer) Matrix() []Element {
	return b.matrix
}

// Params returns the formal parameter count declared with SetParams.
func (b *Buffer) Params() int {
	return b.params
}

// SetParams declares how many formal parameters the function encoded in
// this buffer receives. The register allocator seeds one live interval per
// parameter.
func (b *Buffer) SetParams(n int) {
	b.params = n
}

// grow ensures capacity for n more code bytes, doubling the backing array
// when exceeded.
func (b *Buffer) grow(n int) {
	if len(b.code)+n <= cap(b.code) {
		return
	}
	size := cap(b.code)
	if size == 0 {
		size = defaultBufferCap
	}
	for size < len(b.code)+n {
		size *= 2
	}
	code := make([]byte, len(b.code), size)
	copy(code, b.code)
	b.code = code
}

func (b *Buffer) write4Bytes(x0, x1, x2, x3 byte) {
	b.grow(4)
	b.code = append(b.code, x0, x1, x2, x3)
}

// emitNone appends a header with zero payload bytes.
func (b *Buffer) emitNone(op Opcode) error {
	b.write4Bytes(byte(op), 0, 0, 0)
	return nil
}

// emitArith appends a dest/src1/src2 register triple header.
func (b *Buffer) emitArith(op Opcode, size SizeClass, dest, src1, src2 uint8) error {
	b.write4Bytes(byte(op)|byte(size)<<6, dest, src1, src2)
	return nil
}

// emitArithB appends a dest/src register pair header whose third payload
// byte is a second size class.
func (b *Buffer) emitArithB(op Opcode, size SizeClass, dest, src uint8, size2 SizeClass) error {
	b.write4Bytes(byte(op)|byte(size)<<6, dest, src, byte(size2))
	return nil
}

// emitImm appends a header carrying a 24-bit little-endian immediate.
func (b *Buffer) emitImm(op Opcode, value uint32) error {
	b.write4Bytes(byte(op), byte(value), byte(value>>8), byte(value>>16))
	return nil
}

// emitRel appends a header plus the shortest trailing immediate that holds
// value: 0, 1, 2, 4 or 8 little-endian low-order bytes.
func (b *Buffer) emitRel(op Opcode, size SizeClass, dest uint8, value uint64) error {
	return b.emitRelN(op, size, dest, value, relTailLen(value))
}

// emitRelN is emitRel with a caller-chosen tail length, used where a fixed
// patch window must exist regardless of the value.
func (b *Buffer) emitRelN(op Opcode, size SizeClass, dest uint8, value uint64, tailLen uint8) error {
	b.grow(headerSize + int(tailLen))
	b.write4Bytes(byte(op)|byte(size)<<6, dest, tailLen, 0)
	for j := uint8(0); j < tailLen; j++ {
		b.code = append(b.code, byte(value>>(8*j)))
	}
	return nil
}

func relTailLen(value uint64) uint8 {
	switch {
	case value == 0:
		return 0
	case value <= 0xff:
		return 1
	case value <= 0xffff:
		return 2
	case value <= 0xffffffff:
		return 4
	default:
		return 8
	}
}

// appendElement records one operand descriptor in the matrix.
func (b *Buffer) appendElement(e Element) {
	b.matrix = append(b.matrix, e)
}

func checkISize(size SizeClass) error {
	if size > ISize64 {
		return fmt.Errorf("%w: integer size %d", ErrInvalidSizeClass, size)
	}
	return nil
}

func checkFSize(size SizeClass) error {
	if size > FSize64 {
		return fmt.Errorf("%w: float size %d", ErrInvalidSizeClass, size)
	}
	return nil
}

func checkVSize(size SizeClass) error {
	if size > VSize4 {
		return fmt.Errorf("%w: vector size %d", ErrInvalidSizeClass, size)
	}
	return nil
}
