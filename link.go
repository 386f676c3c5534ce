package rtlasm

import (
	"encoding/binary"
	"fmt"
)

// Link resolves every pending relocation of every registered buffer with
// the default strict configuration.
func (c *Context) Link() error {
	return c.LinkWithConfig(NewLinkConfig())
}

// LinkWithConfig walks every buffer's pending relocations in registration
// order. A local relocation resolves against the buffer's own table, a
// global one against the context's. Each resolved relocation records its
// address and patches the 8-byte little-endian window at its offset under
// its mask. Linking is idempotent: patching with the same addresses again
// leaves the bytes unchanged.
func (c *Context) LinkWithConfig(config *LinkConfig) error {
	for _, buf := range c.buffers {
		for i := range buf.relocs {
			rel := &buf.relocs[i]
			var addr uint64
			var ok bool
			if rel.Scope == ScopeGlobal {
				addr, ok = c.global.Lookup(rel.Name)
			} else {
				addr, ok = buf.local.Lookup(rel.Name)
			}
			if !ok {
				if config.ignoreUnresolved {
					continue
				}
				return &UnresolvedSymbolError{Scope: rel.Scope, Name: rel.Name}
			}
			rel.Addr = addr
			if err := buf.patch(rel.Offset, rel.Mask, addr); err != nil {
				return err
			}
		}
	}
	return nil
}

// patch rewrites the 8-byte window at off to (window &^ mask) | (addr & mask).
func (b *Buffer) patch(off int, mask, addr uint64) error {
	if off < 0 || off+8 > len(b.code) {
		return fmt.Errorf("relocation window [%d,%d) outside buffer of %d bytes", off, off+8, len(b.code))
	}
	current := binary.LittleEndian.Uint64(b.code[off:])
	current &^= mask
	current |= addr & mask
	binary.LittleEndian.PutUint64(b.code[off:], current)
	return nil
}
