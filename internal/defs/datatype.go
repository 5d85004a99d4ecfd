package defs

// DataType is the declared type tag of a save field. The set is closed:
// the field reader rejects any tag outside it.
type DataType string

const (
	Binary         DataType = "Binary"
	BinaryArray    DataType = "BinaryArray"
	Bool           DataType = "Bool"
	BoolArray      DataType = "BoolArray"
	Enum           DataType = "Enum"
	EnumArray      DataType = "EnumArray"
	Float          DataType = "Float"
	FloatArray     DataType = "FloatArray"
	Int            DataType = "Int"
	IntArray       DataType = "IntArray"
	String32       DataType = "String32"
	String64       DataType = "String64"
	String64Array  DataType = "String64Array"
	UInt           DataType = "UInt"
	UIntArray      DataType = "UIntArray"
	UInt64         DataType = "UInt64"
	UInt64Array    DataType = "UInt64Array"
	Vector2        DataType = "Vector2"
	Vector2Array   DataType = "Vector2Array"
	Vector3        DataType = "Vector3"
	Vector3Array   DataType = "Vector3Array"
	WString16      DataType = "WString16"
	WString16Array DataType = "WString16Array"
)

// AllTypes lists every valid tag in declaration order.
var AllTypes = []DataType{
	Binary, BinaryArray,
	Bool, BoolArray,
	Enum, EnumArray,
	Float, FloatArray,
	Int, IntArray,
	String32,
	String64, String64Array,
	UInt, UIntArray,
	UInt64, UInt64Array,
	Vector2, Vector2Array,
	Vector3, Vector3Array,
	WString16, WString16Array,
}

func (t DataType) String() string {
	return string(t)
}

// IsValid reports whether name is one of the closed set of type tags.
func IsValid(name string) bool {
	switch DataType(name) {
	case Binary, BinaryArray,
		Bool, BoolArray,
		Enum, EnumArray,
		Float, FloatArray,
		Int, IntArray,
		String32,
		String64, String64Array,
		UInt, UIntArray,
		UInt64, UInt64Array,
		Vector2, Vector2Array,
		Vector3, Vector3Array,
		WString16, WString16Array:
		return true
	default:
		return false
	}
}

// IsArray reports whether t is one of the *Array tags.
func IsArray(t DataType) bool {
	switch t {
	case BinaryArray, BoolArray, EnumArray, FloatArray, IntArray,
		String64Array, UIntArray, UInt64Array,
		Vector2Array, Vector3Array, WString16Array:
		return true
	default:
		return false
	}
}

// ElementType returns the element tag of an array tag, or t itself for scalars.
// There is no String32Array in the format.
func ElementType(t DataType) DataType {
	switch t {
	case BinaryArray:
		return Binary
	case BoolArray:
		return Bool
	case EnumArray:
		return Enum
	case FloatArray:
		return Float
	case IntArray:
		return Int
	case String64Array:
		return String64
	case UIntArray:
		return UInt
	case UInt64Array:
		return UInt64
	case Vector2Array:
		return Vector2
	case Vector3Array:
		return Vector3
	case WString16Array:
		return WString16
	}
	return t
}

// IsDynamicallySized reports whether values of t carry a length that the
// printer appends to the type tag.
func IsDynamicallySized(t DataType) bool {
	if IsArray(t) {
		return true
	}
	switch t {
	case Binary, String32, String64, WString16:
		return true
	default:
		return false
	}
}
