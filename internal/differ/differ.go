// Package differ compares two save snapshots field by field.
package differ

import (
	"totktools/internal/savedata"
	"totktools/internal/value"
)

// Entry holds the two sides of a changed field. A nil side means the field
// was absent from that snapshot.
type Entry struct {
	A value.Value
	B value.Value
}

// Swap returns the entry with its sides exchanged.
func (e Entry) Swap() Entry {
	return Entry{A: e.B, B: e.A}
}

// Result maps each changed field hash to its pair of values.
type Result map[uint32]Entry

// Diff compares a and b over the union of their keys. A key missing from
// one snapshot compares as nil. Only unequal pairs are kept. Diff never
// fails and does not modify its inputs.
func Diff(a, b savedata.Snapshot) Result {
	out := make(Result)
	for h, av := range a {
		bv := b[h]
		if !value.Equal(av, bv) {
			out[h] = Entry{A: av, B: bv}
		}
	}
	for h, bv := range b {
		if _, seen := a[h]; seen {
			continue
		}
		if bv != nil {
			out[h] = Entry{A: nil, B: bv}
		}
	}
	return out
}

// Hashes returns the changed field hashes in no particular order. Printers
// sort them with printers.OrderHashes.
func (r Result) Hashes() []uint32 {
	out := make([]uint32, 0, len(r))
	for h := range r {
		out = append(out, h)
	}
	return out
}
