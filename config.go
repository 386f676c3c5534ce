package rtlasm

// LinkConfig controls Context.LinkWithConfig. The zero configuration
// returned by NewLinkConfig resolves strictly: any relocation whose name
// is missing from its scope fails the link.
type LinkConfig struct {
	ignoreUnresolved bool
}

// NewLinkConfig returns the default, strict link configuration.
func NewLinkConfig() *LinkConfig {
	return &LinkConfig{}
}

// clone ensures all fields are copied even when new ones are added.
func (c *LinkConfig) clone() *LinkConfig {
	return &LinkConfig{ignoreUnresolved: c.ignoreUnresolved}
}

// WithUnresolvedSymbolsIgnored makes the link leave the patch window of an
// unresolved relocation untouched instead of failing. This exists for
// compatibility with toolchains that declare symbols they never define;
// prefer the strict default.
func (c *LinkConfig) WithUnresolvedSymbolsIgnored() *LinkConfig {
	ret := c.clone()
	ret.ignoreUnresolved = true
	return ret
}
