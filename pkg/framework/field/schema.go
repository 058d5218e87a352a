package field

import (
	"errors"
	"fmt"
)

// MaxFields is the largest supported field count per record side. Schemas
// beyond it are rejected at build time, before any instance exists.
const MaxFields = 256

var (
	// ErrTooManyFields is returned when a schema exceeds MaxFields.
	ErrTooManyFields = errors.New("field: schema exceeds supported field count")
	// ErrDuplicateField is returned when two fields share a name.
	ErrDuplicateField = errors.New("field: duplicate field name")
	// ErrInvalidShape is returned for a field without a valid shape tag.
	ErrInvalidShape = errors.New("field: invalid shape")
)

// Schema is the immutable, ordered field list of one record side.
// The zero-field case is represented by Empty; enumerating it is a no-op and
// callers never need to branch on emptiness.
type Schema struct {
	fields []Field
}

// Empty is the distinguished zero-field schema. Records without an inputs or
// outputs side use it so that generic code can enumerate unconditionally.
var Empty = &Schema{}

// Count returns the number of declared fields.
func (s *Schema) Count() int { return len(s.fields) }

// At returns the field at declaration position n. It panics on an
// out-of-range index; positions come from the schema itself, so an invalid
// one is a programming error, not input.
func (s *Schema) At(n int) *Field { return &s.fields[n] }

// ForAll invokes fn on every field in declaration order.
func (s *Schema) ForAll(fn func(f *Field)) {
	for i := range s.fields {
		fn(&s.fields[i])
	}
}

// ForNth invokes fn on the field at position n if it exists, otherwise does
// nothing.
func (s *Schema) ForNth(n int, fn func(f *Field)) {
	if n >= 0 && n < len(s.fields) {
		fn(&s.fields[n])
	}
}

// Lookup returns the field with the given name, or nil.
func (s *Schema) Lookup(name string) *Field {
	for i := range s.fields {
		if s.fields[i].Name == name {
			return &s.fields[i]
		}
	}
	return nil
}

// Option customizes a field being added to a SchemaBuilder.
type Option func(*Field)

// WithControl marks the field as a control with the given range and initial
// value.
func WithControl(min, max, init float64) Option {
	return func(f *Field) {
		f.Control = true
		f.Range = &Range{Min: min, Max: max, Init: init}
	}
}

// WithWidget sets the UI widget hint.
func WithWidget(name string) Option {
	return func(f *Field) { f.Widget = name }
}

// WithChoices makes the field enumeration-like.
func WithChoices(choices ...string) Option {
	return func(f *Field) { f.Choices = choices }
}

// WithAccurate selects sample-accurate value delivery.
func WithAccurate(mode AccurateMode) Option {
	return func(f *Field) { f.Accurate = mode }
}

// SchemaBuilder provides a fluent API for declaring a record side.
// Errors are collected and reported once by Build.
type SchemaBuilder struct {
	fields []Field
	err    error
}

// NewSchema creates a new schema builder.
func NewSchema() *SchemaBuilder {
	return &SchemaBuilder{}
}

func (b *SchemaBuilder) add(name string, shape Shape, opts []Option) *SchemaBuilder {
	if b.err != nil {
		return b
	}
	if shape == ShapeInvalid {
		b.err = fmt.Errorf("%w: %q", ErrInvalidShape, name)
		return b
	}
	for i := range b.fields {
		if b.fields[i].Name == name {
			b.err = fmt.Errorf("%w: %q", ErrDuplicateField, name)
			return b
		}
	}
	f := Field{Name: name, Index: len(b.fields), Shape: shape}
	for _, opt := range opts {
		opt(&f)
	}
	b.fields = append(b.fields, f)
	return b
}

// Field adds a field with an explicit shape.
func (b *SchemaBuilder) Field(name string, shape Shape, opts ...Option) *SchemaBuilder {
	return b.add(name, shape, opts)
}

// Float adds a floating-point scalar field.
func (b *SchemaBuilder) Float(name string, opts ...Option) *SchemaBuilder {
	return b.add(name, ShapeFloat, opts)
}

// Int adds an integral scalar field.
func (b *SchemaBuilder) Int(name string, opts ...Option) *SchemaBuilder {
	return b.add(name, ShapeInt, opts)
}

// Bool adds a boolean field.
func (b *SchemaBuilder) Bool(name string, opts ...Option) *SchemaBuilder {
	return b.add(name, ShapeBool, opts)
}

// String adds a string field.
func (b *SchemaBuilder) String(name string, opts ...Option) *SchemaBuilder {
	return b.add(name, ShapeString, opts)
}

// Vec2 adds a two-component float vector field.
func (b *SchemaBuilder) Vec2(name string, opts ...Option) *SchemaBuilder {
	return b.add(name, ShapeVec2, opts)
}

// Vec3 adds a three-component float vector field.
func (b *SchemaBuilder) Vec3(name string, opts ...Option) *SchemaBuilder {
	return b.add(name, ShapeVec3, opts)
}

// Vec4 adds a four-component float vector field.
func (b *SchemaBuilder) Vec4(name string, opts ...Option) *SchemaBuilder {
	return b.add(name, ShapeVec4, opts)
}

// Impulse adds an impulse (zero-payload event) field.
func (b *SchemaBuilder) Impulse(name string, opts ...Option) *SchemaBuilder {
	return b.add(name, ShapeImpulse, opts)
}

// AudioSample adds a single-sample audio field.
func (b *SchemaBuilder) AudioSample(name string, opts ...Option) *SchemaBuilder {
	return b.add(name, ShapeAudioSample, opts)
}

// AudioBuffer adds a whole-block audio buffer field.
func (b *SchemaBuilder) AudioBuffer(name string, opts ...Option) *SchemaBuilder {
	return b.add(name, ShapeAudioBuffer, opts)
}

// MIDI adds a dynamic MIDI message list field.
func (b *SchemaBuilder) MIDI(name string, opts ...Option) *SchemaBuilder {
	return b.add(name, ShapeMIDI, opts)
}

// MIDIRaw adds a fixed-capacity MIDI message buffer field.
func (b *SchemaBuilder) MIDIRaw(name string, opts ...Option) *SchemaBuilder {
	return b.add(name, ShapeMIDIRaw, opts)
}

// Texture adds an opaque texture field.
func (b *SchemaBuilder) Texture(name string, opts ...Option) *SchemaBuilder {
	return b.add(name, ShapeTexture, opts)
}

// Callback adds an output callback field.
func (b *SchemaBuilder) Callback(name string, opts ...Option) *SchemaBuilder {
	return b.add(name, ShapeCallback, opts)
}

// Soundfile adds a soundfile reference field.
func (b *SchemaBuilder) Soundfile(name string, opts ...Option) *SchemaBuilder {
	return b.add(name, ShapeSoundfile, opts)
}

// Build validates the declaration and returns the immutable schema.
func (b *SchemaBuilder) Build() (*Schema, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.fields) > MaxFields {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyFields, len(b.fields), MaxFields)
	}
	if len(b.fields) == 0 {
		return Empty, nil
	}
	fields := make([]Field, len(b.fields))
	copy(fields, b.fields)
	return &Schema{fields: fields}, nil
}
