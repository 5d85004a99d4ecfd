package savedata

import (
	"fmt"

	"totktools/internal/common"
	"totktools/internal/databuf"
	"totktools/internal/defs"
	"totktools/internal/sav"
	"totktools/internal/value"
)

// Element strides of the fixed-size array layouts.
const (
	strideWord      = 0x04
	strideUInt64    = 0x08
	strideVector2   = 0x08
	strideVector3   = 0x0C
	strideString64  = 0x40
	strideWString16 = 0x20

	string32Len = 32
	string64Len = 64

	wstring16Units = strideWString16 / 2
)

// Reader decodes single field values from a save buffer. Scalar reads take
// the offset of the value slot; indirect types first follow the 4-byte
// pointer stored there.
type Reader struct {
	buf *databuf.Buffer
}

// NewReader returns a reader over buf. The reader does not copy the buffer.
func NewReader(buf *databuf.Buffer) *Reader {
	return &Reader{buf: buf}
}

// ReadAuto decodes the value at offset according to the declared type tag.
// An unknown tag fails with sav.ErrUnsupportedType before any byte is read.
func (r *Reader) ReadAuto(typeName string, offset int) (value.Value, error) {
	if !defs.IsValid(typeName) {
		return nil, common.NewErrorMsg(sav.ErrSevError, sav.ErrUnsupportedType,
			fmt.Sprintf("Unknown data type '%s'", typeName))
	}

	switch defs.DataType(typeName) {
	case defs.Binary:
		return wrap(r.ReadBinary(offset))
	case defs.BinaryArray:
		return wrap(r.ReadBinaryArray(offset))
	case defs.Bool:
		return wrap(r.ReadBool(offset))
	case defs.BoolArray:
		return wrap(r.ReadBoolArray(offset))
	case defs.Enum:
		return wrap(r.ReadEnum(offset))
	case defs.EnumArray:
		return wrap(r.ReadEnumArray(offset))
	case defs.Float:
		return wrap(r.ReadFloat(offset))
	case defs.FloatArray:
		return wrap(r.ReadFloatArray(offset))
	case defs.Int:
		return wrap(r.ReadInt(offset))
	case defs.IntArray:
		return wrap(r.ReadIntArray(offset))
	case defs.String32:
		return wrap(r.ReadString32(offset))
	case defs.String64:
		return wrap(r.ReadString64(offset))
	case defs.String64Array:
		return wrap(r.ReadString64Array(offset))
	case defs.UInt:
		return wrap(r.ReadUInt(offset))
	case defs.UIntArray:
		return wrap(r.ReadUIntArray(offset))
	case defs.UInt64:
		return wrap(r.ReadUInt64(offset))
	case defs.UInt64Array:
		return wrap(r.ReadUInt64Array(offset))
	case defs.Vector2:
		return wrap(r.ReadVector2(offset))
	case defs.Vector2Array:
		return wrap(r.ReadVector2Array(offset))
	case defs.Vector3:
		return wrap(r.ReadVector3(offset))
	case defs.Vector3Array:
		return wrap(r.ReadVector3Array(offset))
	case defs.WString16:
		return wrap(r.ReadWString16(offset))
	case defs.WString16Array:
		return wrap(r.ReadWString16Array(offset))
	}

	// IsValid and the switch above cover the same tag set.
	return nil, common.NewErrorMsg(sav.ErrSevError, sav.ErrUnsupportedType,
		fmt.Sprintf("Unhandled data type '%s'", typeName))
}

// wrap drops the concrete variant to the Value interface, keeping a nil
// Value (not a typed nil) on error.
func wrap[T value.Value](v T, err error) (value.Value, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Direct scalars

// ReadBinary reads an inline [u32 length][length bytes] run. Unlike the other
// variable-size scalars it is not behind a pointer.
func (r *Reader) ReadBinary(offset int) (value.Binary, error) {
	length, err := r.buf.ReadUint32(offset)
	if err != nil {
		return nil, err
	}
	b, err := r.buf.ReadBytes(offset+4, int(length))
	return value.Binary(b), err
}

func (r *Reader) ReadBool(offset int) (value.Bool, error) {
	v, err := r.buf.ReadUint32(offset)
	return value.Bool(v != 0), err
}

func (r *Reader) ReadEnum(offset int) (value.Enum, error) {
	v, err := r.buf.ReadUint32(offset)
	return value.Enum(v), err
}

func (r *Reader) ReadFloat(offset int) (value.Float, error) {
	v, err := r.buf.ReadFloat32(offset)
	return value.Float(v), err
}

// ReadInt reads an unsigned 32-bit value; Int and UInt share one encoding.
func (r *Reader) ReadInt(offset int) (value.Int, error) {
	v, err := r.buf.ReadUint32(offset)
	return value.Int(v), err
}

func (r *Reader) ReadUInt(offset int) (value.UInt, error) {
	v, err := r.buf.ReadUint32(offset)
	return value.UInt(v), err
}

func (r *Reader) ReadUInt64(offset int) (value.UInt64, error) {
	v, err := r.buf.ReadUint64(offset)
	return value.UInt64(v), err
}

// Indirect scalars

func (r *Reader) ReadString32(offset int) (value.String32, error) {
	target, err := r.resolve(offset)
	if err != nil {
		return "", err
	}
	return value.String32(r.buf.ReadString(target, string32Len)), nil
}

func (r *Reader) ReadString64(offset int) (value.String64, error) {
	target, err := r.resolve(offset)
	if err != nil {
		return "", err
	}
	return value.String64(r.buf.ReadString(target, string64Len)), nil
}

func (r *Reader) ReadWString16(offset int) (value.WString16, error) {
	target, err := r.resolve(offset)
	if err != nil {
		return nil, err
	}
	return r.wstring16At(target)
}

func (r *Reader) ReadVector2(offset int) (value.Vector2, error) {
	target, err := r.resolve(offset)
	if err != nil {
		return value.Vector2{}, err
	}
	v, err := r.vec2At(target)
	return value.Vector2(v), err
}

func (r *Reader) ReadVector3(offset int) (value.Vector3, error) {
	target, err := r.resolve(offset)
	if err != nil {
		return value.Vector3{}, err
	}
	v, err := r.vec3At(target)
	return value.Vector3(v), err
}

// Arrays

// ReadBinaryArray walks variable-size [u32 length][bytes] elements packed
// back to back after the count.
func (r *Reader) ReadBinaryArray(offset int) (value.BinaryArray, error) {
	start, n, err := r.arrayHeader(offset, 4)
	if err != nil {
		return nil, err
	}
	out := make(value.BinaryArray, n)
	pos := start
	for i := range out {
		elem, err := r.ReadBinary(pos)
		if err != nil {
			return nil, err
		}
		out[i] = elem
		pos += 4 + len(elem)
	}
	return out, nil
}

// ReadBoolArray reads n bits, LSB first within each byte.
func (r *Reader) ReadBoolArray(offset int) (value.BoolArray, error) {
	target, err := r.resolve(offset)
	if err != nil {
		return nil, err
	}
	n, err := r.buf.ReadUint32(target)
	if err != nil {
		return nil, err
	}
	start := target + 4
	nBytes := (uint64(n) + 7) / 8
	if !r.fits(start, nBytes) {
		return nil, outOfRange(start, nBytes, r.buf.Size())
	}
	bits, err := r.buf.ReadBytes(start, int(nBytes))
	if err != nil {
		return nil, err
	}
	out := make(value.BoolArray, n)
	for i := range out {
		out[i] = (bits[i/8]>>(i%8))&0x01 != 0
	}
	return out, nil
}

func (r *Reader) ReadEnumArray(offset int) (value.EnumArray, error) {
	return readFixed(r, offset, strideWord, r.buf.ReadUint32)
}

func (r *Reader) ReadFloatArray(offset int) (value.FloatArray, error) {
	return readFixed(r, offset, strideWord, r.buf.ReadFloat32)
}

func (r *Reader) ReadIntArray(offset int) (value.IntArray, error) {
	return readFixed(r, offset, strideWord, r.buf.ReadUint32)
}

func (r *Reader) ReadUIntArray(offset int) (value.UIntArray, error) {
	return readFixed(r, offset, strideWord, r.buf.ReadUint32)
}

func (r *Reader) ReadUInt64Array(offset int) (value.UInt64Array, error) {
	return readFixed(r, offset, strideUInt64, r.buf.ReadUint64)
}

func (r *Reader) ReadString64Array(offset int) (value.String64Array, error) {
	return readFixed(r, offset, strideString64, func(pos int) (string, error) {
		return r.buf.ReadString(pos, string64Len), nil
	})
}

func (r *Reader) ReadWString16Array(offset int) (value.WString16Array, error) {
	return readFixed(r, offset, strideWString16, r.wstring16At)
}

func (r *Reader) ReadVector2Array(offset int) (value.Vector2Array, error) {
	return readFixed(r, offset, strideVector2, r.vec2At)
}

func (r *Reader) ReadVector3Array(offset int) (value.Vector3Array, error) {
	return readFixed(r, offset, strideVector3, r.vec3At)
}

// readFixed resolves the array pointer and decodes n elements at a fixed
// stride, each directly at its slot.
func readFixed[T any](r *Reader, offset, stride int, elem func(pos int) (T, error)) ([]T, error) {
	start, n, err := r.arrayHeader(offset, stride)
	if err != nil {
		return nil, err
	}
	out := make([]T, n)
	for i := range out {
		v, err := elem(start + i*stride)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// arrayHeader follows the pointer at offset, reads the element count and
// checks that n elements of at least minStride bytes fit in the buffer.
// It returns the offset of the first element.
func (r *Reader) arrayHeader(offset, minStride int) (start, n int, err error) {
	target, err := r.resolve(offset)
	if err != nil {
		return 0, 0, err
	}
	count, err := r.buf.ReadUint32(target)
	if err != nil {
		return 0, 0, err
	}
	start = target + 4
	need := uint64(count) * uint64(minStride)
	if !r.fits(start, need) {
		return 0, 0, outOfRange(start, need, r.buf.Size())
	}
	return start, int(count), nil
}

// resolve reads the absolute offset stored in the value slot.
func (r *Reader) resolve(offset int) (int, error) {
	ptr, err := r.buf.ReadUint32(offset)
	if err != nil {
		return 0, err
	}
	return int(ptr), nil
}

func (r *Reader) fits(start int, width uint64) bool {
	if start < 0 || start > r.buf.Size() {
		return false
	}
	return width <= uint64(r.buf.Size()-start)
}

// Element decoders at a resolved position

func (r *Reader) vec2At(pos int) (value.Vec2, error) {
	var v value.Vec2
	for i := range v {
		f, err := r.buf.ReadFloat32(pos + 4*i)
		if err != nil {
			return value.Vec2{}, err
		}
		v[i] = f
	}
	return v, nil
}

func (r *Reader) vec3At(pos int) (value.Vec3, error) {
	var v value.Vec3
	for i := range v {
		f, err := r.buf.ReadFloat32(pos + 4*i)
		if err != nil {
			return value.Vec3{}, err
		}
		v[i] = f
	}
	return v, nil
}

// wstring16At reads up to 16 UTF-16 code units, stopping at the first zero
// unit. Units are kept as stored, unpaired surrogates included.
func (r *Reader) wstring16At(pos int) (value.WString16, error) {
	units := make(value.WString16, 0, wstring16Units)
	for i := 0; i < wstring16Units; i++ {
		u, err := r.buf.ReadUint16(pos + 2*i)
		if err != nil {
			return nil, err
		}
		if u == 0 {
			break
		}
		units = append(units, u)
	}
	return units, nil
}

func outOfRange(offset int, width uint64, size int) error {
	return common.NewErrorWithOffset(sav.ErrSevError, sav.ErrOutOfRange, offset,
		fmt.Sprintf("array body of %d bytes exceeds buffer size 0x%X", width, size))
}
