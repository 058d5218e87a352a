package process

import (
	"github.com/ErkEntonio/avendish/pkg/framework/field"
	"github.com/ErkEntonio/avendish/pkg/framework/introspect"
)

// polyAdapter runs the poly per-sample protocol: a single shared record
// instance, with channel k bound to the k-th audio-sample field on each side
// in declaration order.
type polyAdapter struct {
	op        Op
	ins, outs *field.Frame
	inIdx     []int
	outIdx    []int
	tick      Tick
}

func newPolyAdapter(ins, outs *field.Frame, op Op) *polyAdapter {
	a := &polyAdapter{op: op, ins: ins, outs: outs}
	introspect.Classify(ins.Schema(), introspect.IsAudioSample).ForAll(func(f *field.Field) {
		a.inIdx = append(a.inIdx, f.Index)
	})
	introspect.Classify(outs.Schema(), introspect.IsAudioSample).ForAll(func(f *field.Field) {
		a.outIdx = append(a.outIdx, f.Index)
	})
	return a
}

func (a *polyAdapter) Protocol() Protocol { return PolyPerSample }

func (a *polyAdapter) Prepare(channels int) {}

// Process copies channel samples into the audio-sample input fields, invokes
// the operation exactly once per frame, then copies the audio-sample output
// fields back out. All input reads for a frame complete before any output
// write, so aliased host buffers stay correct. Channels beyond the field
// count, and fields beyond the channel count, are ignored.
func (a *polyAdapter) Process(in, out [][]float32, n int32) {
	for i := int32(0); i < n; i++ {
		for k := 0; k < len(a.inIdx) && k < len(in); k++ {
			a.ins.SetSample(a.inIdx[k], in[k][i])
		}

		a.op(a.ins, a.outs, a.tick)

		for k := 0; k < len(a.outIdx) && k < len(out); k++ {
			out[k][i] = a.outs.Sample(a.outIdx[k])
		}
		a.tick.Frame++
	}
}

func (a *polyAdapter) ForEachState(fn func(ins, outs *field.Frame)) {
	fn(a.ins, a.outs)
}
