package process

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ErkEntonio/avendish/pkg/framework/field"
)

func mustSchema(t *testing.T, b *field.SchemaBuilder) *field.Schema {
	t.Helper()
	s, err := b.Build()
	require.NoError(t, err)
	return s
}

func TestSelect(t *testing.T) {
	monoSide := func() *field.SchemaBuilder { return field.NewSchema().AudioSample("s") }

	t.Run("Mono", func(t *testing.T) {
		p, err := Select(mustSchema(t, monoSide()), mustSchema(t, monoSide()))
		require.NoError(t, err)
		assert.Equal(t, MonoPerSample, p)
	})

	t.Run("PolyWhenExtraFields", func(t *testing.T) {
		ins := mustSchema(t, field.NewSchema().
			AudioSample("in").
			Float("gain", field.WithControl(0, 1, 1)))
		outs := mustSchema(t, monoSide())
		p, err := Select(ins, outs)
		require.NoError(t, err)
		assert.Equal(t, PolyPerSample, p)
	})

	t.Run("PolyMultiSample", func(t *testing.T) {
		ins := mustSchema(t, field.NewSchema().AudioSample("l").AudioSample("r"))
		outs := mustSchema(t, field.NewSchema().AudioSample("m"))
		p, err := Select(ins, outs)
		require.NoError(t, err)
		assert.Equal(t, PolyPerSample, p)
	})

	t.Run("Bufferwise", func(t *testing.T) {
		ins := mustSchema(t, field.NewSchema().AudioBuffer("in"))
		outs := mustSchema(t, field.NewSchema().AudioBuffer("out"))
		p, err := Select(ins, outs)
		require.NoError(t, err)
		assert.Equal(t, Bufferwise, p)
	})

	t.Run("MessageOnly", func(t *testing.T) {
		ins := mustSchema(t, field.NewSchema().Float("x"))
		p, err := Select(ins, field.Empty)
		require.NoError(t, err)
		assert.Equal(t, MessageOnly, p)
	})

	t.Run("AmbiguousMix", func(t *testing.T) {
		ins := mustSchema(t, field.NewSchema().AudioSample("s").AudioBuffer("b"))
		_, err := Select(ins, field.Empty)
		require.ErrorIs(t, err, ErrAmbiguousProtocol)
	})
}

func monoFrames(t *testing.T) (*field.Frame, *field.Frame) {
	t.Helper()
	ins := field.NewFrame(mustSchema(t, field.NewSchema().AudioSample("in")))
	outs := field.NewFrame(mustSchema(t, field.NewSchema().AudioSample("out")))
	return ins, outs
}

func identity(ins, outs *field.Frame, _ Tick) {
	outs.SetSample(0, ins.Sample(0))
}

func TestMonoIdentityRoundTrip(t *testing.T) {
	ins, outs := monoFrames(t)
	a := New(MonoPerSample, ins, outs, identity)
	a.Prepare(2)

	in := [][]float32{{1, 2, 3, 4}, {5, 6, 7, 8}}
	out := [][]float32{make([]float32, 4), make([]float32, 4)}
	a.Process(in, out, 4)

	assert.Equal(t, [][]float32{{1, 2, 3, 4}, {5, 6, 7, 8}}, out)
}

func TestMonoAliasedBuffers(t *testing.T) {
	ins, outs := monoFrames(t)
	// Output spans alias the input spans in memory. Inputs for a frame
	// must be read into scratch before any output write lands.
	a := New(MonoPerSample, ins, outs, identity)
	a.Prepare(2)

	buf0 := []float32{1, 2, 3, 4}
	buf1 := []float32{5, 6, 7, 8}
	in := [][]float32{buf0, buf1}
	out := [][]float32{buf0, buf1} // same backing storage
	a.Process(in, out, 4)

	assert.Equal(t, []float32{1, 2, 3, 4}, buf0)
	assert.Equal(t, []float32{5, 6, 7, 8}, buf1)
}

func TestMonoSkipsUnpreparedChannels(t *testing.T) {
	ins, outs := monoFrames(t)
	a := New(MonoPerSample, ins, outs, identity)
	a.Prepare(1)

	in := [][]float32{{1, 2}, {3, 4}}
	out := [][]float32{make([]float32, 2), make([]float32, 2)}
	a.Process(in, out, 2)

	assert.Equal(t, []float32{1, 2}, out[0])
	// Channel 1 has no replica: nothing written.
	assert.Equal(t, []float32{0, 0}, out[1])
}

func TestMonoChannelMismatchPanics(t *testing.T) {
	ins, outs := monoFrames(t)
	a := New(MonoPerSample, ins, outs, identity)
	a.Prepare(2)

	assert.Panics(t, func() {
		a.Process([][]float32{{1}, {2}}, [][]float32{{0}}, 1)
	})
}

func TestMonoTick(t *testing.T) {
	ins, outs := monoFrames(t)
	var ticks []int64
	op := func(ins, outs *field.Frame, tk Tick) {
		ticks = append(ticks, tk.Frame)
		outs.SetSample(0, ins.Sample(0))
	}
	a := New(MonoPerSample, ins, outs, op)
	a.Prepare(1)

	buf := [][]float32{make([]float32, 3)}
	a.Process(buf, [][]float32{make([]float32, 3)}, 3)
	a.Process(buf, [][]float32{make([]float32, 3)}, 2)

	assert.Equal(t, []int64{0, 1, 2, 3, 4}, ticks)
}

func TestPolyChannelMapping(t *testing.T) {
	ins := field.NewFrame(mustSchema(t, field.NewSchema().
		AudioSample("a").
		Float("gain", field.WithControl(0, 1, 1)).
		AudioSample("b").
		AudioSample("c")))
	outs := field.NewFrame(mustSchema(t, field.NewSchema().
		AudioSample("l").
		AudioSample("r")))

	// Sum the three inputs into out 0, negate input 0 into out 1. Audio
	// fields sit at full positions 0, 2, 3 (in) and 0, 1 (out).
	op := func(ins, outs *field.Frame, _ Tick) {
		outs.SetSample(0, ins.Sample(0)+ins.Sample(2)+ins.Sample(3))
		outs.SetSample(1, -ins.Sample(0))
	}
	a := New(PolyPerSample, ins, outs, op)

	in := [][]float32{{1, 1}, {10, 10}, {100, 100}, {9999, 9999}} // 4th channel ignored
	out := [][]float32{make([]float32, 2), make([]float32, 2)}
	a.Process(in, out, 2)

	assert.Equal(t, []float32{111, 111}, out[0])
	assert.Equal(t, []float32{-1, -1}, out[1])
}

func TestPolyFewerChannelsThanFields(t *testing.T) {
	ins := field.NewFrame(mustSchema(t, field.NewSchema().
		AudioSample("a").AudioSample("b")))
	outs := field.NewFrame(mustSchema(t, field.NewSchema().AudioSample("m")))

	op := func(ins, outs *field.Frame, _ Tick) {
		outs.SetSample(0, ins.Sample(0)+ins.Sample(1))
	}
	a := New(PolyPerSample, ins, outs, op)

	// Only one input channel: field b keeps its previous (zero) value.
	in := [][]float32{{2, 4}}
	out := [][]float32{make([]float32, 2)}
	a.Process(in, out, 2)

	assert.Equal(t, []float32{2, 4}, out[0])
}

func TestBufferwise(t *testing.T) {
	ins := field.NewFrame(mustSchema(t, field.NewSchema().AudioBuffer("in")))
	outs := field.NewFrame(mustSchema(t, field.NewSchema().AudioBuffer("out")))

	var tickAt int64
	op := func(ins, outs *field.Frame, tk Tick) {
		tickAt = tk.Frame
		src := ins.Buffer(0)
		dst := outs.Buffer(0)
		for i := range src {
			dst[i] = src[i] * 2
		}
	}
	a := New(Bufferwise, ins, outs, op)

	in := [][]float32{{1, 2, 3, 4}}
	out := [][]float32{make([]float32, 4)}
	a.Process(in, out, 4)
	assert.Equal(t, []float32{2, 4, 6, 8}, out[0])

	a.Process(in, out, 4)
	assert.Equal(t, int64(4), tickAt)

	// Spans are unbound between blocks.
	assert.Nil(t, ins.Buffer(0))
	assert.Nil(t, outs.Buffer(0))
}

func TestMessageOnlyAdapterIsNoOp(t *testing.T) {
	ins := field.NewFrame(mustSchema(t, field.NewSchema().Float("x")))
	a := New(MessageOnly, ins, field.NewFrame(field.Empty), nil)
	a.Prepare(2)

	out := [][]float32{{7, 7}}
	a.Process([][]float32{{1, 2}}, out, 2)
	assert.Equal(t, []float32{7, 7}, out[0])

	states := 0
	a.ForEachState(func(ins, outs *field.Frame) { states++ })
	assert.Equal(t, 1, states)
}
