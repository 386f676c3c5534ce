// Package rtlasm is an in-memory assembler for a small fixed-width RTL
// instruction set: clients build code buffers by calling one constructor
// per opcode, declare local and global symbols, then link the buffers of a
// Context into a single self-consistent binary image.
//
// The package never lowers to a native ISA, never executes code and never
// reads or writes file formats. Register allocation for assembled buffers
// lives in the regalloc subpackage.
//
// A Context and the buffers registered in it are not safe for concurrent
// use; distinct contexts are independent.
package rtlasm

import (
	"errors"
	"fmt"
)

// ErrInvalidSizeClass is returned by instruction constructors when the
// operand width does not fit the register class. No bytes are emitted in
// that case.
var ErrInvalidSizeClass = errors.New("invalid size class")

// UnresolvedSymbolError is returned by Context.Link when a relocation
// names a symbol absent from its scope, unless the link was configured
// with WithUnresolvedSymbolsIgnored.
type UnresolvedSymbolError struct {
	Scope Scope
	Name  string
}

// Error implements error.
func (e *UnresolvedSymbolError) Error() string {
	return fmt.Sprintf("unresolved %s symbol %q", e.Scope, e.Name)
}
