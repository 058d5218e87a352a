// Package registry ties the framework together: it validates a record
// declaration once, caches its capability classifications, selects the
// processing protocol, and exposes the host-facing contract
// (Init / CreatePorts / Process / ProcessMessage / Destroy).
package registry

import (
	"github.com/ErkEntonio/avendish/pkg/framework/field"
	"github.com/ErkEntonio/avendish/pkg/framework/hostval"
	"github.com/ErkEntonio/avendish/pkg/framework/process"
)

// MsgFunc is an author-declared message handler. It receives the instance's
// frames and the event's argument list.
type MsgFunc func(ins, outs *field.Frame, args []hostval.Value)

// Ops declares the processing operation in whichever signature the author
// writes it. Exactly one member should be set; when several are, the first
// in priority order wins: ProcessTick, Process, InTick, In, OutTick, Out,
// TickOnly, Bare. The chain is resolved once at registration into a single
// bound closure.
type Ops struct {
	ProcessTick func(ins, outs *field.Frame, t process.Tick)
	Process     func(ins, outs *field.Frame)
	InTick      func(ins *field.Frame, t process.Tick)
	In          func(ins *field.Frame)
	OutTick     func(outs *field.Frame, t process.Tick)
	Out         func(outs *field.Frame)
	TickOnly    func(t process.Tick)
	Bare        func()
}

// resolve binds the declared signature to the canonical form, or nil when
// no operation was declared (legal for message-only records).
func (o Ops) resolve() process.Op {
	switch {
	case o.ProcessTick != nil:
		return o.ProcessTick
	case o.Process != nil:
		return func(ins, outs *field.Frame, _ process.Tick) { o.Process(ins, outs) }
	case o.InTick != nil:
		return func(ins, _ *field.Frame, t process.Tick) { o.InTick(ins, t) }
	case o.In != nil:
		return func(ins, _ *field.Frame, _ process.Tick) { o.In(ins) }
	case o.OutTick != nil:
		return func(_, outs *field.Frame, t process.Tick) { o.OutTick(outs, t) }
	case o.Out != nil:
		return func(_, outs *field.Frame, _ process.Tick) { o.Out(outs) }
	case o.TickOnly != nil:
		return func(_, _ *field.Frame, t process.Tick) { o.TickOnly(t) }
	case o.Bare != nil:
		return func(_, _ *field.Frame, _ process.Tick) { o.Bare() }
	default:
		return nil
	}
}

// Record is the author-defined processor declaration: a display name, the
// input and output schemas, the processing operation, and optional message
// handlers and lifecycle hooks. Membership in the framework is established
// purely by this declaration; there is no required base type.
type Record struct {
	// Name is the display name. It doubles as the host symbol after
	// sanitization unless CName overrides it.
	Name string
	// CName optionally fixes the host registration symbol.
	CName string
	// ID is a stable reverse-DNS identifier used to derive the UID.
	// Defaults to the sanitized name.
	ID string

	// Inputs and Outputs declare the record sides; nil means no fields.
	Inputs  *field.Schema
	Outputs *field.Schema

	// Ops declares the processing operation.
	Ops Ops

	// Init runs once at instance creation, off the real-time path, with
	// the host's ordered creation arguments. May allocate freely.
	Init func(ins *field.Frame, args []hostval.Value)

	// Messages declares explicit handlers by event name. A matched
	// handler replaces the default routing entirely.
	Messages map[string]MsgFunc

	// SoundfileLoad receives load requests when a string lands on a
	// soundfile field. The engine never performs I/O itself. fieldIndex
	// is the field's full-record position.
	SoundfileLoad func(path string, fieldIndex int)
}
