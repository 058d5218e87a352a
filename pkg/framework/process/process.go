// Package process implements the real-time dispatch loop that moves audio
// between host channel spans and record fields. The protocol variant is
// chosen once, at registration, from the record's classified audio shape;
// per-call code never re-inspects shapes.
package process

import (
	"errors"
	"fmt"

	"github.com/ErkEntonio/avendish/pkg/framework/field"
	"github.com/ErkEntonio/avendish/pkg/framework/introspect"
)

// Tick carries the running frame position handed to tick-aware processors.
type Tick struct {
	// Frame is the absolute frame counter since the instance was created.
	Frame int64
}

// Op is the canonical bound processing operation. Registration resolves the
// author's accepted signature down to this one form, so the hot loop calls a
// single closure and never re-decides.
type Op func(ins, outs *field.Frame, t Tick)

// Protocol is the record-level processing protocol classification. The
// variants are mutually exclusive; a record has exactly one.
type Protocol uint8

const (
	// MessageOnly records have no audio fields; they are driven by
	// discrete messages and the audio entry point does nothing.
	MessageOnly Protocol = iota
	// MonoPerSample: exactly one single-sample audio field on each side;
	// processed per channel with one record replica per channel.
	MonoPerSample
	// PolyPerSample: one shared record instance; the k-th audio-sample
	// field maps to channel k, invoked once per frame.
	PolyPerSample
	// Bufferwise: audio fields are whole buffers; host spans are handed to
	// the operation once per block.
	Bufferwise
)

// String returns the protocol name.
func (p Protocol) String() string {
	switch p {
	case MonoPerSample:
		return "mono-per-sample"
	case PolyPerSample:
		return "poly-per-sample"
	case Bufferwise:
		return "bufferwise"
	default:
		return "message-only"
	}
}

// ErrAmbiguousProtocol is returned when a record mixes single-sample and
// whole-buffer audio fields; no protocol can serve both.
var ErrAmbiguousProtocol = errors.New("process: record mixes sample and buffer audio fields")

// Select classifies the whole record into its processing protocol. This is
// a registration-time decision; an ambiguous record never reaches instance
// creation.
func Select(ins, outs *field.Schema) (Protocol, error) {
	sampleIn := introspect.Classify(ins, introspect.IsAudioSample).Size()
	sampleOut := introspect.Classify(outs, introspect.IsAudioSample).Size()
	bufIn := introspect.Classify(ins, introspect.IsAudioBuffer).Size()
	bufOut := introspect.Classify(outs, introspect.IsAudioBuffer).Size()

	samples := sampleIn + sampleOut
	buffers := bufIn + bufOut
	switch {
	case samples > 0 && buffers > 0:
		return MessageOnly, fmt.Errorf("%w: %d sample, %d buffer", ErrAmbiguousProtocol, samples, buffers)
	case sampleIn == 1 && sampleOut == 1 && ins.Count() == 1 && outs.Count() == 1:
		return MonoPerSample, nil
	case samples > 0:
		return PolyPerSample, nil
	case buffers > 0:
		return Bufferwise, nil
	default:
		return MessageOnly, nil
	}
}

// Adapter is one bound dispatch loop. Prepare runs off the real-time path;
// Process is the real-time entry point. ForEachState visits every live
// record replica (one for most protocols, one per channel for mono), so
// control values can be applied to all of them.
type Adapter interface {
	Protocol() Protocol
	Prepare(channels int)
	Process(in, out [][]float32, n int32)
	ForEachState(fn func(ins, outs *field.Frame))
}

// New builds the adapter for the selected protocol. ins and outs are the
// instance's own frames; the mono adapter additionally replicates them per
// channel in Prepare.
func New(p Protocol, ins, outs *field.Frame, op Op) Adapter {
	switch p {
	case MonoPerSample:
		return newMonoAdapter(ins, outs, op)
	case PolyPerSample:
		return newPolyAdapter(ins, outs, op)
	case Bufferwise:
		return newBufferAdapter(ins, outs, op)
	default:
		return &messageOnlyAdapter{ins: ins, outs: outs}
	}
}

// messageOnlyAdapter serves records with no audio fields. Its audio entry
// point does nothing; absence of an audio capability is not an error.
type messageOnlyAdapter struct {
	ins, outs *field.Frame
}

func (a *messageOnlyAdapter) Protocol() Protocol { return MessageOnly }

func (a *messageOnlyAdapter) Prepare(channels int) {}

func (a *messageOnlyAdapter) Process(in, out [][]float32, n int32) {}

func (a *messageOnlyAdapter) ForEachState(fn func(ins, outs *field.Frame)) {
	fn(a.ins, a.outs)
}
