package value

import "math"

// Equal reports structural equality: both nil, or the same variant with equal
// payloads. Sequences compare element-wise and floats by value with no
// tolerance, except that NaN equals NaN so a snapshot always equals itself.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch a := a.(type) {
	case Binary:
		b, ok := b.(Binary)
		return ok && bytesEqual(a, b)
	case BinaryArray:
		b, ok := b.(BinaryArray)
		return ok && sliceEqual(a, b, func(x, y []byte) bool { return bytesEqual(x, y) })
	case Bool:
		b, ok := b.(Bool)
		return ok && a == b
	case BoolArray:
		b, ok := b.(BoolArray)
		return ok && sliceEqual(a, b, eq[bool])
	case Enum:
		b, ok := b.(Enum)
		return ok && a == b
	case EnumArray:
		b, ok := b.(EnumArray)
		return ok && sliceEqual(a, b, eq[uint32])
	case Float:
		b, ok := b.(Float)
		return ok && floatEqual(float32(a), float32(b))
	case FloatArray:
		b, ok := b.(FloatArray)
		return ok && sliceEqual(a, b, floatEqual)
	case Int:
		b, ok := b.(Int)
		return ok && a == b
	case IntArray:
		b, ok := b.(IntArray)
		return ok && sliceEqual(a, b, eq[uint32])
	case String32:
		b, ok := b.(String32)
		return ok && a == b
	case String64:
		b, ok := b.(String64)
		return ok && a == b
	case String64Array:
		b, ok := b.(String64Array)
		return ok && sliceEqual(a, b, eq[string])
	case UInt:
		b, ok := b.(UInt)
		return ok && a == b
	case UIntArray:
		b, ok := b.(UIntArray)
		return ok && sliceEqual(a, b, eq[uint32])
	case UInt64:
		b, ok := b.(UInt64)
		return ok && a == b
	case UInt64Array:
		b, ok := b.(UInt64Array)
		return ok && sliceEqual(a, b, eq[uint64])
	case Vector2:
		b, ok := b.(Vector2)
		return ok && vec2Equal(Vec2(a), Vec2(b))
	case Vector2Array:
		b, ok := b.(Vector2Array)
		return ok && sliceEqual(a, b, vec2Equal)
	case Vector3:
		b, ok := b.(Vector3)
		return ok && vec3Equal(Vec3(a), Vec3(b))
	case Vector3Array:
		b, ok := b.(Vector3Array)
		return ok && sliceEqual(a, b, vec3Equal)
	case WString16:
		b, ok := b.(WString16)
		return ok && unitsEqual(a, b)
	case WString16Array:
		b, ok := b.(WString16Array)
		return ok && sliceEqual(a, b, unitsEqual)
	}
	return false
}

func eq[T comparable](x, y T) bool { return x == y }

func sliceEqual[T any](a, b []T, elemEqual func(x, y T) bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !elemEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func unitsEqual(a, b WString16) bool {
	return sliceEqual(a, b, eq[uint16])
}

func bytesEqual(a, b []byte) bool {
	return sliceEqual(a, b, eq[byte])
}

func floatEqual(x, y float32) bool {
	if x == y {
		return true
	}
	return math.IsNaN(float64(x)) && math.IsNaN(float64(y))
}

func vec2Equal(a, b Vec2) bool {
	return floatEqual(a[0], b[0]) && floatEqual(a[1], b[1])
}

func vec3Equal(a, b Vec3) bool {
	return floatEqual(a[0], b[0]) && floatEqual(a[1], b[1]) && floatEqual(a[2], b[2])
}
