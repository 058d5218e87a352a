package field

import (
	"github.com/ErkEntonio/avendish/pkg/midi"
)

// Emitter receives discrete values produced by a callback field. Host
// bindings implement it; processors call the bound emitter directly.
type Emitter interface {
	EmitFloat(v float64)
	EmitString(s string)
	EmitBang()
}

// AutomationPoint is one timestamped control value within a block, used by
// sample-accurate parameters. Offset is relative to the block start.
type AutomationPoint struct {
	Offset int32
	Value  float64
}

// FieldValue is the native value of one field in a live record instance.
// Which members are meaningful is fixed by the field's shape tag.
type FieldValue struct {
	Shape Shape

	Float  float64
	Int    int64
	Bool   bool
	Str    string
	Vec    [4]float32
	Sample float32

	// Buffer is the host span bound for the current block (buffer-wise
	// protocol only). It aliases host memory and must not be retained.
	Buffer []float32

	// MIDI and MIDIRaw are the message containers for MIDI shapes.
	MIDI    *midi.List
	MIDIRaw *midi.RawBuffer

	// Texture is an opaque handle, assigned off the real-time path.
	Texture any

	// Emit is the bound emitter for callback fields; nil until ports exist.
	Emit Emitter

	// Automation holds the timestamped values received this block for
	// sample-accurate parameters, in timestamp order.
	Automation []AutomationPoint
}

// Frame holds the live values of one record side, indexed by declaration
// position. A Frame is owned by exactly one processor instance (or one
// per-channel replica) and is never shared between callers.
type Frame struct {
	schema *Schema
	values []FieldValue
}

// NewFrame allocates a frame for the schema, with containers for heap-backed
// shapes created up front so the processing path never allocates them.
func NewFrame(s *Schema) *Frame {
	f := &Frame{
		schema: s,
		values: make([]FieldValue, s.Count()),
	}
	for i := range f.values {
		fv := &f.values[i]
		fv.Shape = s.At(i).Shape
		switch fv.Shape {
		case ShapeMIDI:
			fv.MIDI = midi.NewList()
		case ShapeMIDIRaw:
			fv.MIDIRaw = midi.NewRawBuffer()
		}
	}
	return f
}

// Schema returns the schema this frame was built from.
func (f *Frame) Schema() *Schema { return f.schema }

// Count returns the field count.
func (f *Frame) Count() int { return len(f.values) }

// Value returns the value slot at declaration position n.
func (f *Frame) Value(n int) *FieldValue { return &f.values[n] }

// Float returns the float scalar at position n.
func (f *Frame) Float(n int) float64 { return f.values[n].Float }

// SetFloat stores a float scalar at position n.
func (f *Frame) SetFloat(n int, v float64) { f.values[n].Float = v }

// Sample returns the audio sample at position n.
func (f *Frame) Sample(n int) float32 { return f.values[n].Sample }

// SetSample stores an audio sample at position n.
func (f *Frame) SetSample(n int, v float32) { f.values[n].Sample = v }

// Buffer returns the bound audio buffer at position n.
func (f *Frame) Buffer(n int) []float32 { return f.values[n].Buffer }

// SetBuffer binds a host span to the buffer field at position n.
func (f *Frame) SetBuffer(n int, buf []float32) { f.values[n].Buffer = buf }

// Str returns the string value at position n.
func (f *Frame) Str(n int) string { return f.values[n].Str }

// SetStr stores a string value at position n.
func (f *Frame) SetStr(n int, s string) { f.values[n].Str = s }

// ClearBlockState drops per-block state: MIDI containers and automation
// timelines. Capacity is kept so the next block appends without growing.
func (f *Frame) ClearBlockState() {
	for i := range f.values {
		fv := &f.values[i]
		if fv.MIDI != nil {
			fv.MIDI.Clear()
		}
		if fv.MIDIRaw != nil {
			fv.MIDIRaw.Clear()
		}
		if fv.Automation != nil {
			fv.Automation = fv.Automation[:0]
		}
	}
}
