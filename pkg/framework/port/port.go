// Package port provides the host-side handles bound to record fields for
// the duration of a processing session. A port carries either a time series
// of discrete values or a MIDI event queue; audio travels through the
// process call's channel spans directly and has no explicit port object.
package port

import (
	"github.com/ErkEntonio/avendish/pkg/framework/hostval"
	"github.com/ErkEntonio/avendish/pkg/midi"
)

// Direction tells which side of the record a port is bound to.
type Direction int32

const (
	// DirectionInput binds the port to an input field.
	DirectionInput Direction = 0
	// DirectionOutput binds the port to an output field.
	DirectionOutput Direction = 1
)

// TimedValue is one discrete value with a sample offset relative to the
// current block start.
type TimedValue struct {
	Value  hostval.Value
	Offset int32
}

// Value is a discrete-value port: a time series of host values for one
// block. The i-th value port of a capability subset is bound to the field at
// index_map[i] in the full record.
type Value struct {
	name string
	dir  Direction
	data []TimedValue
}

// NewValue creates a value port.
func NewValue(name string, dir Direction) *Value {
	return &Value{name: name, dir: dir}
}

// Name returns the bound field's name.
func (p *Value) Name() string { return p.name }

// Dir returns the port direction.
func (p *Value) Dir() Direction { return p.dir }

// Write appends a value at block offset 0.
func (p *Value) Write(v hostval.Value) { p.WriteAt(v, 0) }

// WriteAt appends a value at the given sample offset.
func (p *Value) WriteAt(v hostval.Value, offset int32) {
	p.data = append(p.data, TimedValue{Value: v, Offset: offset})
}

// Data returns this block's values in arrival order.
func (p *Value) Data() []TimedValue { return p.data }

// Last returns the most recent value, if any.
func (p *Value) Last() (hostval.Value, bool) {
	if len(p.data) == 0 {
		return hostval.Value{}, false
	}
	return p.data[len(p.data)-1].Value, true
}

// Clear empties the port for the next block, keeping capacity.
func (p *Value) Clear() { p.data = p.data[:0] }

// EmitFloat implements field.Emitter: callback fields bound to this port
// publish floats through it.
func (p *Value) EmitFloat(v float64) { p.Write(hostval.Float(v)) }

// EmitString implements field.Emitter.
func (p *Value) EmitString(s string) { p.Write(hostval.String(s)) }

// EmitBang implements field.Emitter.
func (p *Value) EmitBang() { p.Write(hostval.Impulse()) }

// MIDI is a MIDI event port backed by a host queue.
type MIDI struct {
	name string
	dir  Direction

	// Queue is the host-filled (input) or engine-filled (output) buffer.
	Queue *midi.Queue
}

// NewMIDI creates a MIDI port with its own queue.
func NewMIDI(name string, dir Direction) *MIDI {
	return &MIDI{name: name, dir: dir, Queue: midi.NewQueue()}
}

// Name returns the bound field's name.
func (p *MIDI) Name() string { return p.name }

// Dir returns the port direction.
func (p *MIDI) Dir() Direction { return p.dir }
