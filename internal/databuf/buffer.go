package databuf

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"golang.org/x/text/encoding/charmap"

	"totktools/internal/common"
	"totktools/internal/sav"
)

// Buffer is an endian-aware, bounds-checked view over a save file image.
// It owns its bytes; readers hold a *Buffer and never slice into it directly.
type Buffer struct {
	data  []byte
	order binary.ByteOrder
}

// New wraps data with the given byte order.
func New(data []byte, order binary.ByteOrder) *Buffer {
	if order == nil {
		order = binary.LittleEndian
	}
	return &Buffer{data: data, order: order}
}

// NewLittleEndian wraps data using the save format's byte order.
func NewLittleEndian(data []byte) *Buffer {
	return New(data, binary.LittleEndian)
}

// Open reads a whole save file into a little-endian buffer.
func Open(path string) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, common.NewErrorMsg(sav.ErrSevError, sav.ErrFileError, fmt.Sprintf("read %s: %v", path, err))
	}
	return NewLittleEndian(data), nil
}

// Size returns the total byte length.
func (b *Buffer) Size() int {
	return len(b.data)
}

// ByteOrder returns the configured byte order.
func (b *Buffer) ByteOrder() binary.ByteOrder {
	return b.order
}

// Contains reports whether [offset, offset+width) lies inside the buffer.
func (b *Buffer) Contains(offset, width int) bool {
	return offset >= 0 && width >= 0 && offset <= len(b.data) && width <= len(b.data)-offset
}

func (b *Buffer) window(offset, width int) ([]byte, error) {
	if !b.Contains(offset, width) {
		return nil, common.NewErrorWithOffset(sav.ErrSevError, sav.ErrOutOfRange, offset,
			fmt.Sprintf("read of %d bytes exceeds buffer size 0x%X", width, len(b.data)))
	}
	return b.data[offset : offset+width], nil
}

func (b *Buffer) ReadUint8(offset int) (uint8, error) {
	w, err := b.window(offset, 1)
	if err != nil {
		return 0, err
	}
	return w[0], nil
}

func (b *Buffer) ReadUint16(offset int) (uint16, error) {
	w, err := b.window(offset, 2)
	if err != nil {
		return 0, err
	}
	return b.order.Uint16(w), nil
}

func (b *Buffer) ReadUint32(offset int) (uint32, error) {
	w, err := b.window(offset, 4)
	if err != nil {
		return 0, err
	}
	return b.order.Uint32(w), nil
}

func (b *Buffer) ReadInt32(offset int) (int32, error) {
	v, err := b.ReadUint32(offset)
	return int32(v), err
}

func (b *Buffer) ReadUint64(offset int) (uint64, error) {
	w, err := b.window(offset, 8)
	if err != nil {
		return 0, err
	}
	return b.order.Uint64(w), nil
}

func (b *Buffer) ReadFloat32(offset int) (float32, error) {
	v, err := b.ReadUint32(offset)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadBytes returns a copy of length bytes starting at offset.
func (b *Buffer) ReadBytes(offset, length int) ([]byte, error) {
	w, err := b.window(offset, length)
	if err != nil {
		return nil, err
	}
	out := make([]byte, length)
	copy(out, w)
	return out, nil
}

// ReadString reads at most length single-byte characters, stopping at the
// first zero byte. The length is clamped to the end of the buffer so this
// never fails; an offset outside the buffer yields "".
func (b *Buffer) ReadString(offset, length int) string {
	if offset < 0 || offset >= len(b.data) || length <= 0 {
		return ""
	}
	if avail := len(b.data) - offset; length > avail {
		length = avail
	}
	raw := b.data[offset : offset+length]
	for i, c := range raw {
		if c == 0 {
			raw = raw[:i]
			break
		}
	}
	return decodeLatin1(raw)
}

func decodeLatin1(raw []byte) string {
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		// ISO-8859-1 maps every byte, so this is unreachable in practice.
		return string(raw)
	}
	return string(s)
}
