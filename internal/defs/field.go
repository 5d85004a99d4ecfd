package defs

// FieldDefinition describes one known save field.
type FieldDefinition struct {
	ID   string `json:"id" yaml:"id"`
	Hash uint32 `json:"hash" yaml:"hash"`
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// FieldCache is an immutable hash -> definition index. It is safe for
// concurrent reads once built.
type FieldCache struct {
	entries map[uint32]FieldDefinition
	order   []uint32
}

// NewFieldCache indexes definitions by hash. A later duplicate hash replaces
// the earlier definition but keeps the earlier position in Values order.
func NewFieldCache(definitions []FieldDefinition) *FieldCache {
	c := &FieldCache{
		entries: make(map[uint32]FieldDefinition, len(definitions)),
		order:   make([]uint32, 0, len(definitions)),
	}
	for _, d := range definitions {
		if _, seen := c.entries[d.Hash]; !seen {
			c.order = append(c.order, d.Hash)
		}
		c.entries[d.Hash] = d
	}
	return c
}

// Get returns the definition for hash.
func (c *FieldCache) Get(hash uint32) (FieldDefinition, bool) {
	d, ok := c.entries[hash]
	return d, ok
}

func (c *FieldCache) Has(hash uint32) bool {
	_, ok := c.entries[hash]
	return ok
}

func (c *FieldCache) Len() int {
	return len(c.order)
}

// Hashes returns the known hashes in construction order.
func (c *FieldCache) Hashes() []uint32 {
	out := make([]uint32, len(c.order))
	copy(out, c.order)
	return out
}

// Values returns the definitions in construction order.
func (c *FieldCache) Values() []FieldDefinition {
	out := make([]FieldDefinition, len(c.order))
	for i, h := range c.order {
		out[i] = c.entries[h]
	}
	return out
}
