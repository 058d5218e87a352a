package hostval

import (
	"github.com/ErkEntonio/avendish/pkg/framework/field"
)

// Assign converts a host value into the field's native value, dispatching on
// the field's declared shape. It never allocates except where the shape is
// inherently heap-backed.
//
// Two cases leave the field unchanged: a value landing on a shape it cannot
// convert to (e.g. bytes on a float), and a string on a choice field that
// matches no declared label.
//
// Choice fields never silently discard convertible data: a string matches a
// declared label exactly, a number is truncated to an index and clamped to
// [0, len(choices)). The field stores the resulting choice index.
func Assign(f *field.Field, v Value, dst *field.FieldValue) {
	if v.Kind == KindNil {
		return
	}
	if f.IsChoice() {
		assignChoice(f, v, dst)
		return
	}
	switch f.Shape {
	case field.ShapeImpulse:
		// Presence is the payload.
	case field.ShapeFloat:
		dst.Float = v.AsFloat()
	case field.ShapeInt:
		dst.Int = v.AsInt()
	case field.ShapeBool:
		dst.Bool = v.AsBool()
	case field.ShapeString:
		dst.Str = v.AsString()
	case field.ShapeVec2:
		dst.Vec = v.AsVec(2)
	case field.ShapeVec3:
		dst.Vec = v.AsVec(3)
	case field.ShapeVec4:
		dst.Vec = v.AsVec(4)
	case field.ShapeAudioSample:
		dst.Sample = float32(v.AsFloat())
	case field.ShapeSoundfile:
		// Load requests are the host binding's job; the path is recorded
		// so it can pick it up off the real-time path.
		if v.Kind == KindString {
			dst.Str = v.S
		}
	default:
		// Audio buffers, MIDI, textures and callbacks are bound through
		// their own port types, not through discrete values.
	}
}

// assignChoice maps a host value onto a choice field. The stored value is
// the choice index, in dst.Int; dst.Str mirrors the selected label.
func assignChoice(f *field.Field, v Value, dst *field.FieldValue) {
	switch v.Kind {
	case KindString:
		for i, label := range f.Choices {
			if label == v.S {
				dst.Int = int64(i)
				dst.Str = label
				return
			}
		}
		// No matching label: field unchanged.
	case KindFloat, KindInt, KindBool:
		idx := v.AsInt()
		if idx < 0 {
			idx = 0
		}
		if max := int64(len(f.Choices)) - 1; idx > max {
			idx = max
		}
		dst.Int = idx
		dst.Str = f.Choices[idx]
	}
}
