package process

import (
	"github.com/ErkEntonio/avendish/pkg/framework/field"
	"github.com/ErkEntonio/avendish/pkg/framework/introspect"
)

// bufferAdapter runs the buffer-wise protocol: host channel spans are bound
// directly to whole-buffer audio fields and the operation runs once per
// block. The operation reads and writes host memory in place; there is no
// per-sample copy loop.
type bufferAdapter struct {
	op        Op
	ins, outs *field.Frame
	inIdx     []int
	outIdx    []int
	tick      Tick
}

func newBufferAdapter(ins, outs *field.Frame, op Op) *bufferAdapter {
	a := &bufferAdapter{op: op, ins: ins, outs: outs}
	introspect.Classify(ins.Schema(), introspect.IsAudioBuffer).ForAll(func(f *field.Field) {
		a.inIdx = append(a.inIdx, f.Index)
	})
	introspect.Classify(outs.Schema(), introspect.IsAudioBuffer).ForAll(func(f *field.Field) {
		a.outIdx = append(a.outIdx, f.Index)
	})
	return a
}

func (a *bufferAdapter) Protocol() Protocol { return Bufferwise }

func (a *bufferAdapter) Prepare(channels int) {}

// Process binds the k-th channel span to the k-th buffer field on each side
// and invokes the operation once. Fields without a matching channel are
// bound to nil for the block so the operation can tell.
func (a *bufferAdapter) Process(in, out [][]float32, n int32) {
	for k, idx := range a.inIdx {
		if k < len(in) {
			a.ins.SetBuffer(idx, in[k][:n])
		} else {
			a.ins.SetBuffer(idx, nil)
		}
	}
	for k, idx := range a.outIdx {
		if k < len(out) {
			a.outs.SetBuffer(idx, out[k][:n])
		} else {
			a.outs.SetBuffer(idx, nil)
		}
	}

	a.op(a.ins, a.outs, a.tick)
	a.tick.Frame += int64(n)

	// Host spans must not outlive the call.
	for _, idx := range a.inIdx {
		a.ins.SetBuffer(idx, nil)
	}
	for _, idx := range a.outIdx {
		a.outs.SetBuffer(idx, nil)
	}
}

func (a *bufferAdapter) ForEachState(fn func(ins, outs *field.Frame)) {
	fn(a.ins, a.outs)
}
