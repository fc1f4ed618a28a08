// Package column implements typed, nullable columns stored over a
// sequence.Sequence, with optional string interning for String columns.
package column

import "fmt"

// Type enumerates the value types a Column may hold.
type Type int

const (
	TypeInt32 Type = iota
	TypeInt64
	TypeFloat32
	TypeFloat64
	TypeString
	TypeBool
)

func (t Type) String() string {
	switch t {
	case TypeInt32:
		return "Int32"
	case TypeInt64:
		return "Int64"
	case TypeFloat32:
		return "Float32"
	case TypeFloat64:
		return "Float64"
	case TypeString:
		return "String"
	case TypeBool:
		return "Bool"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Value is a tagged union over the column value types, plus Null.
type Value struct {
	typ     Type
	isNull  bool
	i32     int32
	i64     int64
	f32     float32
	f64     float64
	str     string
	boolean bool
}

// Null returns a null value.
func Null() Value { return Value{isNull: true} }

func Int32(v int32) Value   { return Value{typ: TypeInt32, i32: v} }
func Int64(v int64) Value   { return Value{typ: TypeInt64, i64: v} }
func Float32(v float32) Value { return Value{typ: TypeFloat32, f32: v} }
func Float64(v float64) Value { return Value{typ: TypeFloat64, f64: v} }
func String(v string) Value { return Value{typ: TypeString, str: v} }
func Bool(v bool) Value     { return Value{typ: TypeBool, boolean: v} }

// IsNull reports whether v holds the null sentinel.
func (v Value) IsNull() bool { return v.isNull }

// Type returns v's type. Meaningless if IsNull.
func (v Value) Type() Type { return v.typ }

func (v Value) AsInt32() (int32, bool) {
	if v.isNull || v.typ != TypeInt32 {
		return 0, false
	}
	return v.i32, true
}

func (v Value) AsInt64() (int64, bool) {
	if v.isNull || v.typ != TypeInt64 {
		return 0, false
	}
	return v.i64, true
}

func (v Value) AsFloat32() (float32, bool) {
	if v.isNull || v.typ != TypeFloat32 {
		return 0, false
	}
	return v.f32, true
}

func (v Value) AsFloat64() (float64, bool) {
	if v.isNull || v.typ != TypeFloat64 {
		return 0, false
	}
	return v.f64, true
}

func (v Value) AsString() (string, bool) {
	if v.isNull || v.typ != TypeString {
		return "", false
	}
	return v.str, true
}

func (v Value) AsBool() (bool, bool) {
	if v.isNull || v.typ != TypeBool {
		return false, false
	}
	return v.boolean, true
}

// AsFloat64Numeric coerces any numeric Value (Int32/Int64/Float32/
// Float64) to float64, returning false for Null, String, Bool, or an
// unrecognized type. Used by aggregation-style code paths that don't
// care which numeric subtype they're looking at.
func (v Value) AsFloat64Numeric() (float64, bool) {
	if v.isNull {
		return 0, false
	}
	switch v.typ {
	case TypeInt32:
		return float64(v.i32), true
	case TypeInt64:
		return float64(v.i64), true
	case TypeFloat32:
		return float64(v.f32), true
	case TypeFloat64:
		return v.f64, true
	default:
		return 0, false
	}
}

// Equal reports whether two values carry the same type tag and
// content (Null equals Null regardless of type tag).
func (v Value) Equal(other Value) bool {
	if v.isNull || other.isNull {
		return v.isNull == other.isNull
	}
	if v.typ != other.typ {
		return false
	}
	switch v.typ {
	case TypeInt32:
		return v.i32 == other.i32
	case TypeInt64:
		return v.i64 == other.i64
	case TypeFloat32:
		return v.f32 == other.f32
	case TypeFloat64:
		return v.f64 == other.f64
	case TypeString:
		return v.str == other.str
	case TypeBool:
		return v.boolean == other.boolean
	default:
		return false
	}
}

// matchesType reports whether v's type tag matches t. Null always
// matches (nullability is validated separately).
func (v Value) matchesType(t Type) bool {
	return v.isNull || v.typ == t
}

func defaultValueFor(t Type) Value {
	switch t {
	case TypeInt32:
		return Int32(0)
	case TypeInt64:
		return Int64(0)
	case TypeFloat32:
		return Float32(0)
	case TypeFloat64:
		return Float64(0)
	case TypeString:
		return String("")
	case TypeBool:
		return Bool(false)
	default:
		return Value{}
	}
}
