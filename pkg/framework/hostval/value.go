// Package hostval defines the host-native value variant and the marshalling
// between host values and record field values.
package hostval

import (
	"fmt"
	"strconv"
)

// Kind tags a host value.
type Kind uint8

const (
	// KindNil is the zero value: no payload at all.
	KindNil Kind = iota
	// KindImpulse is an event whose presence is the payload.
	KindImpulse
	KindFloat
	KindInt
	KindBool
	KindString
	KindVec2
	KindVec3
	KindVec4
	// KindBytes is a raw byte payload (MIDI and the like).
	KindBytes
)

// Value is one host-native value. It is a small variant; which member is
// meaningful depends on Kind.
type Value struct {
	Kind  Kind
	F     float64
	I     int64
	B     bool
	S     string
	V     [4]float32
	Bytes []byte
}

// Impulse builds an impulse value.
func Impulse() Value { return Value{Kind: KindImpulse} }

// Float builds a float value.
func Float(v float64) Value { return Value{Kind: KindFloat, F: v} }

// Int builds an int value.
func Int(v int64) Value { return Value{Kind: KindInt, I: v} }

// Bool builds a bool value.
func Bool(v bool) Value { return Value{Kind: KindBool, B: v} }

// String builds a string value.
func String(s string) Value { return Value{Kind: KindString, S: s} }

// Vec2 builds a two-component vector value.
func Vec2(x, y float32) Value { return Value{Kind: KindVec2, V: [4]float32{x, y}} }

// Vec3 builds a three-component vector value.
func Vec3(x, y, z float32) Value { return Value{Kind: KindVec3, V: [4]float32{x, y, z}} }

// Vec4 builds a four-component vector value.
func Vec4(x, y, z, w float32) Value { return Value{Kind: KindVec4, V: [4]float32{x, y, z, w}} }

// Bytes builds a raw byte value.
func Bytes(b []byte) Value { return Value{Kind: KindBytes, Bytes: b} }

// IsNumeric reports whether the value carries a numeric scalar.
func (v Value) IsNumeric() bool { return v.Kind == KindFloat || v.Kind == KindInt }

// AsFloat converts the value to a float following the host conversion rules:
// numbers convert directly, bools map to 0/1, strings parse, anything else
// is 0.
func (v Value) AsFloat() float64 {
	switch v.Kind {
	case KindFloat:
		return v.F
	case KindInt:
		return float64(v.I)
	case KindBool:
		if v.B {
			return 1
		}
		return 0
	case KindString:
		f, err := strconv.ParseFloat(v.S, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// AsInt converts the value to an integer, truncating toward zero for floats.
func (v Value) AsInt() int64 {
	switch v.Kind {
	case KindInt:
		return v.I
	case KindFloat:
		return int64(v.F)
	case KindBool:
		if v.B {
			return 1
		}
		return 0
	case KindString:
		i, err := strconv.ParseInt(v.S, 10, 64)
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}

// AsBool converts the value with host truthiness: non-zero numbers and the
// literal "true" are true.
func (v Value) AsBool() bool {
	switch v.Kind {
	case KindBool:
		return v.B
	case KindFloat:
		return v.F != 0
	case KindInt:
		return v.I != 0
	case KindString:
		return v.S == "true"
	default:
		return false
	}
}

// AsString converts the value to its host string representation.
func (v Value) AsString() string {
	switch v.Kind {
	case KindString:
		return v.S
	case KindFloat:
		return strconv.FormatFloat(v.F, 'g', -1, 64)
	case KindInt:
		return strconv.FormatInt(v.I, 10)
	case KindBool:
		return strconv.FormatBool(v.B)
	default:
		return ""
	}
}

// AsVec converts the value to a small vector. Scalars splat across the first
// n components.
func (v Value) AsVec(n int) [4]float32 {
	switch v.Kind {
	case KindVec2, KindVec3, KindVec4:
		return v.V
	case KindFloat, KindInt:
		var out [4]float32
		s := float32(v.AsFloat())
		for i := 0; i < n; i++ {
			out[i] = s
		}
		return out
	default:
		return [4]float32{}
	}
}

func (v Value) String() string {
	switch v.Kind {
	case KindNil:
		return "nil"
	case KindImpulse:
		return "impulse"
	case KindFloat:
		return strconv.FormatFloat(v.F, 'g', -1, 64)
	case KindInt:
		return strconv.FormatInt(v.I, 10)
	case KindBool:
		return strconv.FormatBool(v.B)
	case KindString:
		return strconv.Quote(v.S)
	case KindVec2:
		return fmt.Sprintf("[%g %g]", v.V[0], v.V[1])
	case KindVec3:
		return fmt.Sprintf("[%g %g %g]", v.V[0], v.V[1], v.V[2])
	case KindVec4:
		return fmt.Sprintf("[%g %g %g %g]", v.V[0], v.V[1], v.V[2], v.V[3])
	case KindBytes:
		return fmt.Sprintf("%X", v.Bytes)
	default:
		return "?"
	}
}
