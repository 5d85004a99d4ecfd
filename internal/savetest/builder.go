// Package savetest builds synthetic save images for tests.
package savetest

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf16"

	"totktools/internal/sav"
)

// DefaultHeapBase is where pointer targets are placed unless overridden.
// Records start at sav.ScanStart, so the default leaves room for 123 records.
const DefaultHeapBase = 0x400

// Builder lays out records in the scan window and pointer targets in a heap
// area that follows it.
type Builder struct {
	start    int
	heapBase int
	records  []byte
	heap     []byte
	padTo    int
}

// NewBuilder starts an image with records at sav.ScanStart.
func NewBuilder() *Builder {
	return &Builder{start: sav.ScanStart, heapBase: DefaultHeapBase}
}

// WithHeapBase moves the heap to base. Call before adding pointer records.
func (b *Builder) WithHeapBase(base int) *Builder {
	b.heapBase = base
	return b
}

// PadTo makes the final image at least n bytes long.
func (b *Builder) PadTo(n int) *Builder {
	b.padTo = n
	return b
}

// RecordOffset returns the absolute offset of the next record.
func (b *Builder) RecordOffset() int {
	return b.start + len(b.records)
}

// Record appends [hash][slot].
func (b *Builder) Record(hash, slot uint32) *Builder {
	b.records = binary.LittleEndian.AppendUint32(b.records, hash)
	b.records = binary.LittleEndian.AppendUint32(b.records, slot)
	return b
}

// Sentinel appends the end-of-records marker.
func (b *Builder) Sentinel() *Builder {
	return b.Record(sav.SentinelHash, 0)
}

// Pointer appends a record whose slot points at payload, placed in the heap.
// It returns the payload's absolute offset.
func (b *Builder) Pointer(hash uint32, payload []byte) int {
	at := b.Alloc(payload)
	b.Record(hash, uint32(at))
	return at
}

// Alloc places payload in the heap, 4-byte aligned, and returns its offset.
func (b *Builder) Alloc(payload []byte) int {
	for len(b.heap)%4 != 0 {
		b.heap = append(b.heap, 0)
	}
	at := b.heapBase + len(b.heap)
	b.heap = append(b.heap, payload...)
	return at
}

// InlineBinary appends [hash][u32 len][data] and pads to the next stride.
func (b *Builder) InlineBinary(hash uint32, data []byte) *Builder {
	b.records = binary.LittleEndian.AppendUint32(b.records, hash)
	b.records = binary.LittleEndian.AppendUint32(b.records, uint32(len(data)))
	b.records = append(b.records, data...)
	for len(b.records)%sav.ScanStride != 0 {
		b.records = append(b.records, 0)
	}
	return b
}

// Bytes renders the image. It panics if the records run into the heap.
func (b *Builder) Bytes() []byte {
	end := b.start + len(b.records)
	if len(b.heap) > 0 && end > b.heapBase {
		panic(fmt.Sprintf("savetest: records end at 0x%X past heap base 0x%X", end, b.heapBase))
	}
	size := end
	if len(b.heap) > 0 {
		size = b.heapBase + len(b.heap)
	}
	if size < b.padTo {
		size = b.padTo
	}
	out := make([]byte, size)
	copy(out[b.start:], b.records)
	if len(b.heap) > 0 {
		copy(out[b.heapBase:], b.heap)
	}
	return out
}

// Payload encoders (little-endian)

func U16(v uint16) []byte {
	return binary.LittleEndian.AppendUint16(nil, v)
}

// Units encodes raw UTF-16 code units, zero-padded to width units.
func Units(width int, units ...uint16) []byte {
	out := make([]byte, 2*width)
	for i, u := range units {
		if i >= width {
			break
		}
		binary.LittleEndian.PutUint16(out[2*i:], u)
	}
	return out
}

func U32(v uint32) []byte {
	return binary.LittleEndian.AppendUint32(nil, v)
}

func U64(v uint64) []byte {
	return binary.LittleEndian.AppendUint64(nil, v)
}

func F32(f float32) []byte {
	return U32(math.Float32bits(f))
}

// Str encodes s as single bytes, zero-padded to width. s is truncated to width.
func Str(s string, width int) []byte {
	out := make([]byte, width)
	copy(out, s)
	return out
}

// WStr encodes s as UTF-16LE, zero-padded to units code units.
func WStr(s string, units int) []byte {
	out := make([]byte, 2*units)
	for i, u := range utf16.Encode([]rune(s)) {
		if i >= units {
			break
		}
		binary.LittleEndian.PutUint16(out[2*i:], u)
	}
	return out
}

// Counted prefixes the concatenated elements with a u32 count.
func Counted(count uint32, elems ...[]byte) []byte {
	out := U32(count)
	for _, e := range elems {
		out = append(out, e...)
	}
	return out
}

// Concat joins byte slices.
func Concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
