package introspect

import (
	"github.com/ErkEntonio/avendish/pkg/framework/field"
)

// The named capabilities. Each is a structural predicate over a field's
// shape and metadata; a field may match several value capabilities, but the
// audio capabilities partition the record-level processing protocol choice.

// IsParameter matches control fields carrying a discrete host value:
// scalars, strings, vectors, impulses and choice lists.
func IsParameter(f *field.Field) bool {
	if !f.Control {
		return false
	}
	switch f.Shape {
	case field.ShapeFloat, field.ShapeInt, field.ShapeBool, field.ShapeString,
		field.ShapeVec2, field.ShapeVec3, field.ShapeVec4, field.ShapeImpulse:
		return true
	default:
		return false
	}
}

// IsValue matches every field carrying a discrete host value, control or not.
func IsValue(f *field.Field) bool {
	switch f.Shape {
	case field.ShapeFloat, field.ShapeInt, field.ShapeBool, field.ShapeString,
		field.ShapeVec2, field.ShapeVec3, field.ShapeVec4, field.ShapeImpulse:
		return true
	default:
		return false
	}
}

// IsAudioSample matches single-sample audio ports.
func IsAudioSample(f *field.Field) bool {
	return f.Shape == field.ShapeAudioSample
}

// IsAudioBuffer matches whole-block audio buffer ports.
func IsAudioBuffer(f *field.Field) bool {
	return f.Shape == field.ShapeAudioBuffer
}

// IsMIDI matches both MIDI container variants.
func IsMIDI(f *field.Field) bool {
	return f.Shape == field.ShapeMIDI || f.Shape == field.ShapeMIDIRaw
}

// IsDynamicMIDI matches the growable MIDI container variant.
func IsDynamicMIDI(f *field.Field) bool {
	return f.Shape == field.ShapeMIDI
}

// IsRawMIDI matches the fixed-capacity MIDI container variant.
func IsRawMIDI(f *field.Field) bool {
	return f.Shape == field.ShapeMIDIRaw
}

// IsTexture matches opaque texture ports.
func IsTexture(f *field.Field) bool {
	return f.Shape == field.ShapeTexture
}

// IsCallback matches output callback ports.
func IsCallback(f *field.Field) bool {
	return f.Shape == field.ShapeCallback
}

// IsSoundfile matches soundfile reference ports.
func IsSoundfile(f *field.Field) bool {
	return f.Shape == field.ShapeSoundfile
}

// IsSampleAccurate matches parameters with any sample-accurate delivery mode.
func IsSampleAccurate(f *field.Field) bool {
	return f.Accurate != field.AccurateNone && IsParameter(f)
}
