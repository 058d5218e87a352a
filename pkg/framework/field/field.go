package field

// Range describes the value range and initial value of a control field.
type Range struct {
	Min  float64
	Max  float64
	Init float64
}

// Clamp restricts v to [Min, Max].
func (r Range) Clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Normalize converts a plain value to [0, 1].
func (r Range) Normalize(plain float64) float64 {
	if r.Max <= r.Min {
		return 0
	}
	n := (plain - r.Min) / (r.Max - r.Min)
	if n < 0 {
		return 0
	}
	if n > 1 {
		return 1
	}
	return n
}

// Denormalize converts a normalized [0, 1] value back to the plain range.
func (r Range) Denormalize(normalized float64) float64 {
	return r.Min + normalized*(r.Max-r.Min)
}

// Field is one declared member of a record side. Index is the declaration
// position within its schema; it is stable for the lifetime of the schema and
// is the canonical order for every enumeration and port binding.
type Field struct {
	Name  string
	Index int
	Shape Shape

	// Control marks the field as a user-facing control/parameter.
	Control bool
	// Range applies to control fields; nil means unbounded with init 0.
	Range *Range
	// Widget is a UI hint ("knob", "slider", "toggle", ...). The engine
	// never interprets it, host bindings may.
	Widget string
	// Choices makes the field enumeration-like: incoming values are mapped
	// to an index into this list.
	Choices []string
	// Accurate selects sample-accurate value delivery for control fields.
	Accurate AccurateMode
}

// IsChoice reports whether the field is enumeration-like.
func (f *Field) IsChoice() bool {
	return len(f.Choices) > 0
}

// InitValue returns the declared initial value, or 0.
func (f *Field) InitValue() float64 {
	if f.Range != nil {
		return f.Range.Init
	}
	return 0
}
