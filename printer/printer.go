// Package printer renders decoded save values and field names as text.
package printer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	"totktools/internal/defs"
	"totktools/internal/value"
)

// NullText renders an absent value.
const NullText = "<null>"

// UnknownText renders a hash missing from the field or enum table.
func UnknownText(hash uint32) string {
	return fmt.Sprintf("<Unknown (%d)>", hash)
}

// Printer formats values using an enum table for Enum names and a field
// table for field names. It only reads the tables and is safe for
// concurrent use.
type Printer struct {
	enums  *defs.EnumCache
	fields *defs.FieldCache
}

// New returns a printer over the given tables. A nil table resolves nothing.
func New(enums *defs.EnumCache, fields *defs.FieldCache) *Printer {
	if enums == nil {
		enums = defs.NewEnumCache(nil)
	}
	if fields == nil {
		fields = defs.NewFieldCache(nil)
	}
	return &Printer{enums: enums, fields: fields}
}

// PrintData formats v as "(Type) value", or "(Type[n]) value" for
// variable-length types. A nil value prints as NullText.
func (p *Printer) PrintData(v value.Value) string {
	if v == nil {
		return NullText
	}

	typeStr := string(v.Type())
	if defs.IsDynamicallySized(v.Type()) {
		if n, ok := value.Len(v); ok {
			typeStr += fmt.Sprintf("[%d]", n)
		}
	}
	return fmt.Sprintf("(%s) %s", typeStr, p.formatValue(v))
}

// PrintFieldName returns the declared field name for hash.
func (p *Printer) PrintFieldName(hash uint32) string {
	if f, ok := p.fields.Get(hash); ok {
		return f.Name
	}
	return UnknownText(hash)
}

// PrintEnumValue returns the enum name for hash.
func (p *Printer) PrintEnumValue(hash uint32) string {
	if e, ok := p.enums.Get(hash); ok {
		return e.Value
	}
	return UnknownText(hash)
}

// formatValue renders the payload: enum names for Enum and EnumArray, JSON
// text for everything else.
func (p *Printer) formatValue(v value.Value) string {
	switch tv := v.(type) {
	case value.Enum:
		return p.PrintEnumValue(uint32(tv))
	case value.EnumArray:
		return "[" + join(tv, func(h uint32) string { return p.PrintEnumValue(h) }) + "]"

	case value.Binary:
		return jsonBytes(tv)
	case value.BinaryArray:
		return jsonArray(tv, func(b []byte) string { return jsonBytes(b) })
	case value.Bool:
		return strconv.FormatBool(bool(tv))
	case value.BoolArray:
		return jsonArray(tv, strconv.FormatBool)
	case value.Float:
		return jsonFloat(float32(tv))
	case value.FloatArray:
		return jsonArray(tv, jsonFloat)
	case value.Int:
		return formatUint32(uint32(tv))
	case value.IntArray:
		return jsonArray(tv, formatUint32)
	case value.UInt:
		return formatUint32(uint32(tv))
	case value.UIntArray:
		return jsonArray(tv, formatUint32)
	case value.UInt64:
		return jsonUint64(uint64(tv))
	case value.UInt64Array:
		return jsonArray(tv, jsonUint64)
	case value.String32:
		return jsonString(string(tv))
	case value.String64:
		return jsonString(string(tv))
	case value.String64Array:
		return jsonArray(tv, jsonString)
	case value.WString16:
		return jsonUnits(tv)
	case value.WString16Array:
		return jsonArray(tv, jsonUnits)
	case value.Vector2:
		return jsonVec2(value.Vec2(tv))
	case value.Vector2Array:
		return jsonArray(tv, jsonVec2)
	case value.Vector3:
		return jsonVec3(value.Vec3(tv))
	case value.Vector3Array:
		return jsonArray(tv, jsonVec3)
	}
	return fmt.Sprintf("%v", v)
}

// JSON text helpers

func join[T any](xs []T, f func(T) string) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = f(x)
	}
	return strings.Join(parts, ",")
}

func jsonArray[T any](xs []T, f func(T) string) string {
	return "[" + join(xs, f) + "]"
}

func formatUint32(v uint32) string {
	return strconv.FormatUint(uint64(v), 10)
}

// jsonUint64 quotes the value; 64-bit integers are not safe JSON numbers.
func jsonUint64(v uint64) string {
	return `"` + strconv.FormatUint(v, 10) + `"`
}

func jsonBytes(b []byte) string {
	return jsonArray(b, func(c byte) string { return strconv.Itoa(int(c)) })
}

// jsonFloat renders f widened to float64 as a JSON number. NaN and the
// infinities have no JSON form and render as null; negative zero renders
// as 0.
func jsonFloat(f float32) string {
	d := float64(f)
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return "null"
	}
	if d == 0 {
		return "0"
	}
	out, err := json.Marshal(d)
	if err != nil {
		return "null"
	}
	return string(out)
}

func jsonVec2(v value.Vec2) string {
	return jsonArray(v[:], jsonFloat)
}

func jsonVec3(v value.Vec3) string {
	return jsonArray(v[:], jsonFloat)
}

// jsonString quotes s the way JSON.stringify does: no HTML escaping, and
// U+2028 and U+2029 left as literal characters.
func jsonString(s string) string {
	return `"` + jsonStringBody(s) + `"`
}

func jsonStringBody(s string) string {
	var sb strings.Builder
	from := 0
	for i, r := range s {
		if r == '\u2028' || r == '\u2029' {
			sb.WriteString(encodeStringBody(s[from:i]))
			sb.WriteRune(r)
			from = i + utf8.RuneLen(r)
		}
	}
	sb.WriteString(encodeStringBody(s[from:]))
	return sb.String()
}

// encodeStringBody returns the JSON encoding of s without the quotes.
func encodeStringBody(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		q := strconv.Quote(s)
		return q[1 : len(q)-1]
	}
	out := strings.TrimSuffix(buf.String(), "\n")
	return out[1 : len(out)-1]
}

// jsonUnits quotes UTF-16 code units. Surrogate pairs are combined; an
// unpaired surrogate is written as a lowercase \uXXXX escape so distinct
// units never print alike.
func jsonUnits(units value.WString16) string {
	var sb strings.Builder
	sb.WriteByte('"')
	run := make([]rune, 0, len(units))
	for i := 0; i < len(units); i++ {
		u := rune(units[i])
		if !utf16.IsSurrogate(u) {
			run = append(run, u)
			continue
		}
		if i+1 < len(units) {
			if r := utf16.DecodeRune(u, rune(units[i+1])); r != unicode.ReplacementChar {
				run = append(run, r)
				i++
				continue
			}
		}
		sb.WriteString(jsonStringBody(string(run)))
		run = run[:0]
		fmt.Fprintf(&sb, `\u%04x`, u)
	}
	sb.WriteString(jsonStringBody(string(run)))
	sb.WriteByte('"')
	return sb.String()
}
