package process

import (
	"fmt"

	"github.com/ErkEntonio/avendish/pkg/framework/field"
)

// monoAdapter runs the single-sample mono protocol: one record replica per
// channel ("full state" replication), so N-channel polyphony falls out of
// running the same mono processor N times.
type monoAdapter struct {
	op     Op
	inIdx  int
	outIdx int

	// states[c] is the replica processing channel c. states[0] reuses the
	// instance's own frames so message and control routing reach it.
	states  []monoState
	scratch []float32
	tick    Tick
}

type monoState struct {
	ins, outs *field.Frame
}

func newMonoAdapter(ins, outs *field.Frame, op Op) *monoAdapter {
	return &monoAdapter{
		op: op,
		// Protocol selection guarantees exactly one field per side.
		inIdx:  0,
		outIdx: 0,
		states: []monoState{{ins: ins, outs: outs}},
	}
}

func (a *monoAdapter) Protocol() Protocol { return MonoPerSample }

// Prepare replicates the record for the given channel count and sizes the
// copy-in scratch buffer. Off the real-time path; replicas are kept across
// blocks.
func (a *monoAdapter) Prepare(channels int) {
	for len(a.states) < channels {
		a.states = append(a.states, monoState{
			ins:  field.NewFrame(a.states[0].ins.Schema()),
			outs: field.NewFrame(a.states[0].outs.Schema()),
		})
	}
	if cap(a.scratch) < channels {
		a.scratch = make([]float32, channels)
	}
}

// Process runs the per-sample loop. Hosts may back input and output
// channels with the same storage, so every input sample of a frame is
// fetched into the scratch buffer before any output sample is written;
// interleaving per-channel read/write would corrupt not-yet-read input.
//
// Channels beyond the prepared replica count are not processed; preparing
// enough replicas is the caller's responsibility.
func (a *monoAdapter) Process(in, out [][]float32, n int32) {
	if len(in) != len(out) {
		panic(fmt.Sprintf("process: input channels (%d) != output channels (%d)", len(in), len(out)))
	}
	channels := len(in)
	if cap(a.scratch) < channels {
		// At most one allocation per block, bounded by channel count.
		a.scratch = make([]float32, channels)
	}
	scratch := a.scratch[:channels]

	for i := int32(0); i < n; i++ {
		for c := 0; c < channels; c++ {
			scratch[c] = in[c][i]
		}
		for c := 0; c < channels && c < len(a.states); c++ {
			st := &a.states[c]
			st.ins.SetSample(a.inIdx, scratch[c])
			a.op(st.ins, st.outs, a.tick)
			out[c][i] = st.outs.Sample(a.outIdx)
		}
		a.tick.Frame++
	}
}

func (a *monoAdapter) ForEachState(fn func(ins, outs *field.Frame)) {
	for i := range a.states {
		fn(a.states[i].ins, a.states[i].outs)
	}
}
