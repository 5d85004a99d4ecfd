// Package value holds the decoded field values of a save snapshot.
//
// Each type tag has its own named Go type, and Value is implemented only by
// those types, so a switch over Value is a switch over the closed tag set.
// A nil Value means the field is not present in the save file.
package value

import (
	"encoding/binary"
	"unicode/utf16"

	"golang.org/x/text/encoding/unicode"

	"totktools/internal/defs"
)

// Value is a decoded field value.
type Value interface {
	Type() defs.DataType
	isValue()
}

type (
	Vec2 [2]float32
	Vec3 [3]float32
)

type (
	Binary         []byte
	BinaryArray    [][]byte
	Bool           bool
	BoolArray      []bool
	Enum           uint32
	EnumArray      []uint32
	Float          float32
	FloatArray     []float32
	Int            uint32
	IntArray       []uint32
	String32       string
	String64       string
	String64Array  []string
	UInt           uint32
	UIntArray      []uint32
	UInt64         uint64
	UInt64Array    []uint64
	Vector2        Vec2
	Vector2Array   []Vec2
	Vector3        Vec3
	Vector3Array   []Vec3
	WString16      []uint16 // raw code units; lone surrogates are kept
	WString16Array []WString16
)

func (Binary) Type() defs.DataType         { return defs.Binary }
func (BinaryArray) Type() defs.DataType    { return defs.BinaryArray }
func (Bool) Type() defs.DataType           { return defs.Bool }
func (BoolArray) Type() defs.DataType      { return defs.BoolArray }
func (Enum) Type() defs.DataType           { return defs.Enum }
func (EnumArray) Type() defs.DataType      { return defs.EnumArray }
func (Float) Type() defs.DataType          { return defs.Float }
func (FloatArray) Type() defs.DataType     { return defs.FloatArray }
func (Int) Type() defs.DataType            { return defs.Int }
func (IntArray) Type() defs.DataType       { return defs.IntArray }
func (String32) Type() defs.DataType       { return defs.String32 }
func (String64) Type() defs.DataType       { return defs.String64 }
func (String64Array) Type() defs.DataType  { return defs.String64Array }
func (UInt) Type() defs.DataType           { return defs.UInt }
func (UIntArray) Type() defs.DataType      { return defs.UIntArray }
func (UInt64) Type() defs.DataType         { return defs.UInt64 }
func (UInt64Array) Type() defs.DataType    { return defs.UInt64Array }
func (Vector2) Type() defs.DataType        { return defs.Vector2 }
func (Vector2Array) Type() defs.DataType   { return defs.Vector2Array }
func (Vector3) Type() defs.DataType        { return defs.Vector3 }
func (Vector3Array) Type() defs.DataType   { return defs.Vector3Array }
func (WString16) Type() defs.DataType      { return defs.WString16 }
func (WString16Array) Type() defs.DataType { return defs.WString16Array }

func (Binary) isValue()         {}
func (BinaryArray) isValue()    {}
func (Bool) isValue()           {}
func (BoolArray) isValue()      {}
func (Enum) isValue()           {}
func (EnumArray) isValue()      {}
func (Float) isValue()          {}
func (FloatArray) isValue()     {}
func (Int) isValue()            {}
func (IntArray) isValue()       {}
func (String32) isValue()       {}
func (String64) isValue()       {}
func (String64Array) isValue()  {}
func (UInt) isValue()           {}
func (UIntArray) isValue()      {}
func (UInt64) isValue()         {}
func (UInt64Array) isValue()    {}
func (Vector2) isValue()        {}
func (Vector2Array) isValue()   {}
func (Vector3) isValue()        {}
func (Vector3Array) isValue()   {}
func (WString16) isValue()      {}
func (WString16Array) isValue() {}

// Len returns the element count of arrays, the byte count of Binary and the
// UTF-16 code unit count of strings. ok is false for fixed-size values.
func Len(v Value) (n int, ok bool) {
	switch v := v.(type) {
	case Binary:
		return len(v), true
	case BinaryArray:
		return len(v), true
	case BoolArray:
		return len(v), true
	case EnumArray:
		return len(v), true
	case FloatArray:
		return len(v), true
	case IntArray:
		return len(v), true
	case String32:
		return utf16Len(string(v)), true
	case String64:
		return utf16Len(string(v)), true
	case String64Array:
		return len(v), true
	case UIntArray:
		return len(v), true
	case UInt64Array:
		return len(v), true
	case Vector2Array:
		return len(v), true
	case Vector3Array:
		return len(v), true
	case WString16:
		return len(v), true
	case WString16Array:
		return len(v), true
	}
	return 0, false
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// WString16Of encodes s as UTF-16 code units.
func WString16Of(s string) WString16 {
	return WString16(utf16.Encode([]rune(s)))
}

// WString16ArrayOf encodes each of ss as UTF-16 code units.
func WString16ArrayOf(ss ...string) WString16Array {
	out := make(WString16Array, len(ss))
	for i, s := range ss {
		out[i] = WString16Of(s)
	}
	return out
}

// String decodes the units for display. Lone surrogates become U+FFFD, so
// compare values with Equal, not by their String form.
func (w WString16) String() string {
	raw := make([]byte, 0, 2*len(w))
	for _, u := range w {
		raw = binary.LittleEndian.AppendUint16(raw, u)
	}
	s, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Bytes(raw)
	if err != nil {
		return string(utf16.Decode(w))
	}
	return string(s)
}
