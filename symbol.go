package rtlasm

// Scope selects the symbol table a relocation resolves against: the local
// table of the buffer that registered it, or the global table of the
// containing context.
type Scope uint8

const (
	ScopeLocal Scope = iota
	ScopeGlobal
)

// String implements fmt.Stringer.
func (s Scope) String() string {
	if s == ScopeGlobal {
		return "global"
	}
	return "local"
}

// SymbolEntry maps a name to a 64-bit address. For a local label the
// address is a byte offset into its buffer; for a global it is the buffer
// index assigned by AddBuffer, or an arbitrary value from DeclareGlobal.
type SymbolEntry struct {
	Name string
	Addr uint64
}

// SymbolTable is an append-only name to address mapping. Entries are
// immutable after insertion and lookup returns the first declaration of a
// name.
type SymbolTable struct {
	entries []SymbolEntry
}

// Declare appends an entry. Redeclaring a name does not replace the
// earlier entry.
func (t *SymbolTable) Declare(name string, addr uint64) {
	t.entries = append(t.entries, SymbolEntry{Name: name, Addr: addr})
}

// Lookup returns the address of the first entry named name.
func (t *SymbolTable) Lookup(name string) (uint64, bool) {
	for i := range t.entries {
		if t.entries[i].Name == name {
			return t.entries[i].Addr, true
		}
	}
	return 0, false
}

// Len returns the number of declared entries.
func (t *SymbolTable) Len() int {
	return len(t.entries)
}

// Relocation is a deferred byte-level patch keyed by a symbolic name. The
// linker ORs the resolved address under Mask into the 8-byte little-endian
// window at Offset.
type Relocation struct {
	Scope  Scope
	Name   string
	Offset int
	Mask   uint64
	// Addr is the resolved address, recorded by Context.Link.
	Addr uint64
}

// DeclareLocal declares a label in the buffer's local symbol table. addr is
// conventionally a byte offset into this buffer.
func (b *Buffer) DeclareLocal(name string, addr uint64) {
	b.local.Declare(name, addr)
}

// Locals returns the buffer's local symbol table.
func (b *Buffer) Locals() *SymbolTable {
	return &b.local
}

// DeclareSymbol registers a pending relocation against name. The patch
// window is the 8 bytes starting just past the header of the next emitted
// instruction, so a declaration is conventionally followed by an
// instruction carrying an 8-byte trailing immediate, such as CallIndirect
// or a wide IMoveImmediate placeholder. The default mask selects the whole
// window; narrow it for partial-word patching.
func (b *Buffer) DeclareSymbol(scope Scope, name string) {
	b.relocs = append(b.relocs, Relocation{
		Scope:  scope,
		Name:   name,
		Offset: len(b.code) + headerSize,
		Mask:   ^uint64(0),
	})
}

// Relocations returns the buffer's pending relocations in registration
// order. Entries record their resolved address after linking.
func (b *Buffer) Relocations() []Relocation {
	return b.relocs
}
