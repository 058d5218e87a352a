package registry

import (
	"go.uber.org/zap"

	"github.com/ErkEntonio/avendish/pkg/framework/field"
	"github.com/ErkEntonio/avendish/pkg/framework/hostval"
	"github.com/ErkEntonio/avendish/pkg/framework/message"
	"github.com/ErkEntonio/avendish/pkg/framework/param"
	"github.com/ErkEntonio/avendish/pkg/framework/port"
	"github.com/ErkEntonio/avendish/pkg/framework/process"
)

// Ports holds the host-side handles created for one instance. Within each
// slice, index i binds to the field at index_map[i] of the matching
// capability subset, so ordering always follows field declaration order.
type Ports struct {
	In      []*port.Value
	Out     []*port.Value
	MIDIIn  []*port.MIDI
	MIDIOut []*port.MIDI
}

// Instance is one live allocation of a record: its frames, its runtime-only
// companions (changed-flags bitset, bound adapter and router), and its
// ports. An instance is exclusively owned by its host wrapper and never
// accessed concurrently by two callers.
type Instance struct {
	reg       *Registered
	ins, outs *field.Frame
	changed   *param.Bitset
	adapter   process.Adapter
	router    *message.Router
	ports     *Ports
}

// NewArena allocates n instances of the record. The caller owns the returned
// slice and iterates it itself; the instances never reference each other.
func (r *Registered) NewArena(n int) []*Instance {
	arena := make([]*Instance, n)
	for i := range arena {
		arena[i] = r.NewInstance()
	}
	return arena
}

// NewInstance allocates an instance with its dispatch adapter and message
// router bound. Call Init before any processing.
func (r *Registered) NewInstance() *Instance {
	ins := field.NewFrame(r.rec.Inputs)
	outs := field.NewFrame(r.rec.Outputs)

	inst := &Instance{
		reg:     r,
		ins:     ins,
		outs:    outs,
		changed: param.NewBitset(r.in.Parameters.Size()),
		adapter: process.New(r.protocol, ins, outs, r.op),
	}

	var invoke func()
	if r.op != nil {
		invoke = func() { r.op(ins, outs, process.Tick{}) }
	}
	inst.router = message.NewRouter(ins, invoke, inst.Commit, inst.notify)
	for name, h := range r.rec.Messages {
		h := h
		inst.router.Handle(name, func(args []hostval.Value) { h(ins, outs, args) })
	}
	return inst
}

// Ins returns the input frame.
func (i *Instance) Ins() *field.Frame { return i.ins }

// Outs returns the output frame.
func (i *Instance) Outs() *field.Frame { return i.outs }

// Changed returns the control changed-flags bitset, indexed by
// parameter-subset position.
func (i *Instance) Changed() *param.Bitset { return i.changed }

// ClearChanged resets the changed-flags bitset. Authors call it after
// consuming the flags.
func (i *Instance) ClearChanged() { i.changed.Reset() }

// Registered returns the record type this instance belongs to.
func (i *Instance) Registered() *Registered { return i.reg }

// Init applies declared control initial values and runs the record's init
// hook with the host's creation arguments. Runs once, before any processing
// call, off the real-time path.
func (i *Instance) Init(args []hostval.Value) {
	param.InitControls(i.ins, i.reg.in.Parameters)
	if i.reg.rec.Init != nil {
		i.reg.rec.Init(i.ins, args)
	}
	i.reg.log.Debug("instance initialized",
		zap.String("name", i.reg.rec.Name),
		zap.Int("args", len(args)),
	)
}

// CreatePorts creates one port per capability-classified field, in subset
// order, and binds callback fields to their output ports. The returned
// Ports are host-owned; Destroy never frees them.
func (i *Instance) CreatePorts() *Ports {
	p := &Ports{}

	i.reg.in.ValuePorted.ForAll(func(f *field.Field) {
		p.In = append(p.In, port.NewValue(f.Name, port.DirectionInput))
	})
	i.reg.out.ValuePorted.ForAllValuesN(i.outs, func(k int, f *field.Field, v *field.FieldValue) {
		out := port.NewValue(f.Name, port.DirectionOutput)
		p.Out = append(p.Out, out)
		if f.Shape == field.ShapeCallback {
			v.Emit = out
		}
	})
	i.reg.in.MIDI.ForAll(func(f *field.Field) {
		p.MIDIIn = append(p.MIDIIn, port.NewMIDI(f.Name, port.DirectionInput))
	})
	i.reg.out.MIDI.ForAll(func(f *field.Field) {
		p.MIDIOut = append(p.MIDIOut, port.NewMIDI(f.Name, port.DirectionOutput))
	})

	i.ports = p
	i.reg.log.Debug("ports created",
		zap.String("name", i.reg.rec.Name),
		zap.Int("in", len(p.In)),
		zap.Int("out", len(p.Out)),
		zap.Int("midiIn", len(p.MIDIIn)),
		zap.Int("midiOut", len(p.MIDIOut)),
	)
	return p
}

// Ports returns the handles created by CreatePorts, or nil.
func (i *Instance) Ports() *Ports { return i.ports }

// Prepare readies the adapter for the given channel count. Off the
// real-time path; for the mono protocol this replicates the record per
// channel.
func (i *Instance) Prepare(channels int) {
	i.adapter.Prepare(channels)
}

// Process is the real-time entry point: drain input ports into fields, run
// the dispatch loop, commit outputs.
func (i *Instance) Process(in, out [][]float32, n int32) {
	i.ApplyInputs()
	i.adapter.Process(in, out, n)
	i.Commit()
}

// ProcessMessage is the discrete-event entry point.
func (i *Instance) ProcessMessage(name string, args []hostval.Value) {
	i.router.Dispatch(name, args)
}

// ApplyInputs drains this block's host port data into the input fields:
// discrete values are marshalled into their fields (marking changed flags
// and capturing sample-accurate timelines), soundfile paths become load
// requests, and MIDI queues are copied into their containers with one
// up-front reservation.
func (i *Instance) ApplyInputs() {
	if i.ports == nil {
		return
	}
	i.ins.ClearBlockState()

	caps := i.reg.in
	caps.ValuePorted.ForAllValuesN(i.ins, func(k int, f *field.Field, v *field.FieldValue) {
		p := i.ports.In[k]
		data := p.Data()
		if len(data) == 0 {
			return
		}
		last := data[len(data)-1].Value

		if f.Shape == field.ShapeSoundfile {
			if last.Kind == hostval.KindString && i.reg.rec.SoundfileLoad != nil {
				i.reg.rec.SoundfileLoad(last.S, f.Index)
			}
			p.Clear()
			return
		}

		hostval.Assign(f, last, v)
		if pi := caps.Parameters.Unmap(f.Index); pi >= 0 {
			i.changed.Set(pi)
			if f.Accurate != field.AccurateNone {
				// Reserve once for the whole timeline, as the MIDI
				// containers do.
				if need := len(v.Automation) + len(data); need > cap(v.Automation) {
					grown := make([]field.AutomationPoint, len(v.Automation), need)
					copy(grown, v.Automation)
					v.Automation = grown
				}
				for _, tv := range data {
					v.Automation = append(v.Automation, field.AutomationPoint{
						Offset: tv.Offset,
						Value:  tv.Value.AsFloat(),
					})
				}
			}
		}
		p.Clear()
	})

	caps.MIDI.ForAllValuesN(i.ins, func(k int, f *field.Field, v *field.FieldValue) {
		q := i.ports.MIDIIn[k].Queue
		switch f.Shape {
		case field.ShapeMIDI:
			v.MIDI.CopyFrom(q)
		case field.ShapeMIDIRaw:
			v.MIDIRaw.CopyFrom(q)
		}
		q.Clear()
	})
}

// Commit drains the output fields to the host output ports, in output-field
// declaration order. Callback fields emit directly and are skipped here.
func (i *Instance) Commit() {
	if i.ports == nil {
		return
	}

	i.reg.out.ValuePorted.ForAllValuesN(i.outs, func(k int, f *field.Field, v *field.FieldValue) {
		if f.Shape == field.ShapeCallback {
			return
		}
		i.ports.Out[k].Write(toHost(f, v))
	})

	i.reg.out.MIDI.ForAllValuesN(i.outs, func(k int, f *field.Field, v *field.FieldValue) {
		q := i.ports.MIDIOut[k].Queue
		switch f.Shape {
		case field.ShapeMIDI:
			for _, m := range v.MIDI.Messages() {
				q.Push(m)
			}
			v.MIDI.Clear()
		case field.ShapeMIDIRaw:
			for n := 0; n < v.MIDIRaw.Len(); n++ {
				q.Push(v.MIDIRaw.At(n))
			}
			v.MIDIRaw.Clear()
		}
	})
}

// Destroy releases the instance's runtime-only state. It never frees the
// host-owned port handles themselves.
func (i *Instance) Destroy() {
	i.ports = nil
	i.changed = param.NewBitset(0)
	i.reg.log.Debug("instance destroyed", zap.String("name", i.reg.rec.Name))
}

func (i *Instance) notify(name string) {
	i.reg.log.Debug("unhandled message",
		zap.String("name", i.reg.rec.Name),
		zap.String("message", name),
	)
}

// toHost converts a field's native value back to a host value for commit.
func toHost(f *field.Field, v *field.FieldValue) hostval.Value {
	if f.IsChoice() {
		return hostval.Int(v.Int)
	}
	switch f.Shape {
	case field.ShapeFloat:
		return hostval.Float(v.Float)
	case field.ShapeInt:
		return hostval.Int(v.Int)
	case field.ShapeBool:
		return hostval.Bool(v.Bool)
	case field.ShapeString:
		return hostval.String(v.Str)
	case field.ShapeVec2:
		return hostval.Vec2(v.Vec[0], v.Vec[1])
	case field.ShapeVec3:
		return hostval.Vec3(v.Vec[0], v.Vec[1], v.Vec[2])
	case field.ShapeVec4:
		return hostval.Vec4(v.Vec[0], v.Vec[1], v.Vec[2], v.Vec[3])
	case field.ShapeImpulse:
		return hostval.Impulse()
	default:
		return hostval.Value{}
	}
}
