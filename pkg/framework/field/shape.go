// Package field describes processor records: the ordered, typed fields of a
// processor's input and output sides. A record has no required base type;
// authors declare its layout once through a SchemaBuilder and the rest of the
// framework works from that declaration.
package field

// Shape is the declared value shape of a field. Every field carries exactly
// one shape tag, fixed at schema build time.
type Shape uint8

const (
	// ShapeInvalid is the zero value; never valid in a built schema.
	ShapeInvalid Shape = iota

	// ShapeFloat is a floating-point scalar.
	ShapeFloat
	// ShapeInt is an integral scalar.
	ShapeInt
	// ShapeBool is a boolean.
	ShapeBool
	// ShapeString is a string-like value.
	ShapeString
	// ShapeVec2, ShapeVec3, ShapeVec4 are small fixed-size float vectors.
	ShapeVec2
	ShapeVec3
	ShapeVec4
	// ShapeImpulse is a zero-field record: the presence of an event is
	// itself the payload, there is no value to convert.
	ShapeImpulse

	// ShapeAudioSample is a single audio sample, refreshed every frame.
	ShapeAudioSample
	// ShapeAudioBuffer is a whole per-block audio buffer.
	ShapeAudioBuffer

	// ShapeMIDI is a dynamic, growable MIDI message list.
	ShapeMIDI
	// ShapeMIDIRaw is a fixed-capacity MIDI message buffer.
	ShapeMIDIRaw

	// ShapeTexture is an opaque texture handle, passed through untouched.
	ShapeTexture
	// ShapeCallback is an output callback the processor invokes to emit
	// discrete values.
	ShapeCallback
	// ShapeSoundfile is a soundfile reference; assigning a string to it
	// becomes a load request to the host.
	ShapeSoundfile
)

// String returns the shape name, for diagnostics.
func (s Shape) String() string {
	switch s {
	case ShapeFloat:
		return "float"
	case ShapeInt:
		return "int"
	case ShapeBool:
		return "bool"
	case ShapeString:
		return "string"
	case ShapeVec2:
		return "vec2"
	case ShapeVec3:
		return "vec3"
	case ShapeVec4:
		return "vec4"
	case ShapeImpulse:
		return "impulse"
	case ShapeAudioSample:
		return "audio.sample"
	case ShapeAudioBuffer:
		return "audio.buffer"
	case ShapeMIDI:
		return "midi"
	case ShapeMIDIRaw:
		return "midi.raw"
	case ShapeTexture:
		return "texture"
	case ShapeCallback:
		return "callback"
	case ShapeSoundfile:
		return "soundfile"
	default:
		return "invalid"
	}
}

// VecArity returns the component count for vector shapes, 0 otherwise.
func (s Shape) VecArity() int {
	switch s {
	case ShapeVec2:
		return 2
	case ShapeVec3:
		return 3
	case ShapeVec4:
		return 4
	default:
		return 0
	}
}

// IsNumeric reports whether the shape holds a single numeric scalar.
func (s Shape) IsNumeric() bool {
	return s == ShapeFloat || s == ShapeInt
}

// AccurateMode selects how a sample-accurate parameter receives its values
// within a block.
type AccurateMode uint8

const (
	// AccurateNone: plain control, last value wins for the whole block.
	AccurateNone AccurateMode = iota
	// AccurateLinear: timestamped values, linearly interpolated between points.
	AccurateLinear
	// AccurateSpan: timestamped values holding until the next point.
	AccurateSpan
	// AccurateDynamic: raw timestamped value list handed to the processor.
	AccurateDynamic
)
