package defs

// EnumDefinition maps an enum hash to its display value.
type EnumDefinition struct {
	Hash  uint32 `json:"hash" yaml:"hash"`
	Value string `json:"value" yaml:"value"`
}

// EnumCache is an immutable hash -> enum definition index.
type EnumCache struct {
	entries map[uint32]EnumDefinition
}

// NewEnumCache indexes definitions by hash; later duplicates win.
func NewEnumCache(definitions []EnumDefinition) *EnumCache {
	c := &EnumCache{entries: make(map[uint32]EnumDefinition, len(definitions))}
	for _, d := range definitions {
		c.entries[d.Hash] = d
	}
	return c
}

func (c *EnumCache) Get(hash uint32) (EnumDefinition, bool) {
	d, ok := c.entries[hash]
	return d, ok
}

func (c *EnumCache) Has(hash uint32) bool {
	_, ok := c.entries[hash]
	return ok
}

func (c *EnumCache) Len() int {
	return len(c.entries)
}
