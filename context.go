package rtlasm

// Context is a sequence of named code buffers plus a global symbol table.
// A context owns every buffer registered in it, and buffers resolve their
// global relocations against the context's table.
type Context struct {
	buffers []*Buffer
	global  SymbolTable
}

// NewContext returns an empty compilation context.
func NewContext() *Context {
	return &Context{}
}

// AddBuffer registers buf under name and transfers ownership to the
// context. The name becomes a global symbol whose address is the buffer's
// index in registration order, so cross-buffer calls resolve to indices,
// never to back-pointers.
func (c *Context) AddBuffer(name string, buf *Buffer) {
	c.global.Declare(name, uint64(len(c.buffers)))
	c.buffers = append(c.buffers, buf)
}

// DeclareGlobal declares a context-wide symbol with an arbitrary address,
// typically the runtime address of an external.
func (c *Context) DeclareGlobal(name string, addr uint64) {
	c.global.Declare(name, addr)
}

// Globals returns the context's global symbol table.
func (c *Context) Globals() *SymbolTable {
	return &c.global
}

// Buffers returns the registered buffers in registration order. The
// returned slice is owned by the context.
func (c *Context) Buffers() []*Buffer {
	return c.buffers
}

// Close releases every buffer and symbol owned by the context. The context
// is empty and reusable afterwards.
func (c *Context) Close() error {
	c.buffers = nil
	c.global = SymbolTable{}
	return nil
}
