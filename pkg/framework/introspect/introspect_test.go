package introspect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ErkEntonio/avendish/pkg/framework/field"
)

func mixedSchema(t *testing.T) *field.Schema {
	t.Helper()
	s, err := field.NewSchema().
		Float("gain", field.WithControl(0, 1, 0.5)).  // 0: parameter
		AudioSample("in").                            // 1: audio
		Int("steps", field.WithControl(1, 16, 4)).    // 2: parameter
		MIDI("notes").                                // 3: midi
		AudioSample("side").                          // 4: audio
		String("name").                               // 5: value, not control
		Build()
	require.NoError(t, err)
	return s
}

func TestClassify(t *testing.T) {
	s := mixedSchema(t)

	t.Run("MapUnmapRoundTrip", func(t *testing.T) {
		params := Classify(s, IsParameter)
		require.Equal(t, 2, params.Size())
		assert.Equal(t, []int{0, 2}, []int{params.Map(0), params.Map(1)})

		for i := 0; i < params.Size(); i++ {
			assert.Equal(t, i, params.Unmap(params.Map(i)))
		}
		assert.Equal(t, -1, params.Unmap(1))
		assert.Equal(t, -1, params.Unmap(5))
	})

	t.Run("StrictlyIncreasing", func(t *testing.T) {
		audio := Classify(s, IsAudioSample)
		require.Equal(t, 2, audio.Size())
		for i := 1; i < audio.Size(); i++ {
			assert.Greater(t, audio.Map(i), audio.Map(i-1))
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		a := Classify(s, IsParameter)
		b := Classify(s, IsParameter)
		require.Equal(t, a.Size(), b.Size())
		for i := 0; i < a.Size(); i++ {
			assert.Equal(t, a.Map(i), b.Map(i))
		}
	})

	t.Run("ForAllN", func(t *testing.T) {
		params := Classify(s, IsParameter)
		var locals []int
		var names []string
		params.ForAllN(func(i int, f *field.Field) {
			locals = append(locals, i)
			names = append(names, f.Name)
		})
		assert.Equal(t, []int{0, 1}, locals)
		assert.Equal(t, []string{"gain", "steps"}, names)
	})

	t.Run("ForNthRaw", func(t *testing.T) {
		params := Classify(s, IsParameter)

		hit := ""
		params.ForNthRaw(2, func(f *field.Field) { hit = f.Name })
		assert.Equal(t, "steps", hit)

		// Full index 1 is audio, not a parameter: no-op.
		called := false
		params.ForNthRaw(1, func(f *field.Field) { called = true })
		assert.False(t, called)
	})

	t.Run("ForNthMapped", func(t *testing.T) {
		params := Classify(s, IsParameter)

		hit := ""
		params.ForNthMapped(1, func(f *field.Field) { hit = f.Name })
		assert.Equal(t, "steps", hit)

		called := false
		params.ForNthMapped(2, func(f *field.Field) { called = true })
		assert.False(t, called)
		params.ForNthMapped(-1, func(f *field.Field) { called = true })
		assert.False(t, called)
	})

	t.Run("Values", func(t *testing.T) {
		fr := field.NewFrame(s)
		fr.SetFloat(0, 0.75)

		params := Classify(s, IsParameter)
		var got float64
		params.ForAllValuesN(fr, func(i int, f *field.Field, v *field.FieldValue) {
			if i == 0 {
				got = v.Float
			}
		})
		assert.Equal(t, 0.75, got)
	})
}

func TestClassifyEmpty(t *testing.T) {
	in := Classify(field.Empty, IsParameter)
	assert.Same(t, Empty, in)
	assert.Equal(t, 0, in.Size())

	calls := 0
	in.ForAll(func(f *field.Field) { calls++ })
	in.ForAllN(func(i int, f *field.Field) { calls++ })
	in.ForNthRaw(0, func(f *field.Field) { calls++ })
	in.ForNthMapped(0, func(f *field.Field) { calls++ })
	assert.Zero(t, calls)
	assert.Equal(t, -1, in.Unmap(0))
}

func TestNoMatches(t *testing.T) {
	s, err := field.NewSchema().AudioSample("in").Build()
	require.NoError(t, err)

	params := Classify(s, IsParameter)
	assert.Equal(t, 0, params.Size())
	called := false
	params.ForAll(func(f *field.Field) { called = true })
	assert.False(t, called)
}

func TestCapabilityPredicates(t *testing.T) {
	s, err := field.NewSchema().
		Float("plain").
		Float("ctl", field.WithControl(0, 1, 0)).
		Float("acc", field.WithControl(0, 1, 0), field.WithAccurate(field.AccurateDynamic)).
		AudioBuffer("buf").
		MIDIRaw("raw").
		Soundfile("sample").
		Callback("onpeak").
		Texture("tex").
		Build()
	require.NoError(t, err)

	assert.False(t, IsParameter(s.At(0)))
	assert.True(t, IsValue(s.At(0)))
	assert.True(t, IsParameter(s.At(1)))
	assert.False(t, IsSampleAccurate(s.At(1)))
	assert.True(t, IsSampleAccurate(s.At(2)))
	assert.True(t, IsAudioBuffer(s.At(3)))
	assert.True(t, IsMIDI(s.At(4)))
	assert.True(t, IsRawMIDI(s.At(4)))
	assert.False(t, IsDynamicMIDI(s.At(4)))
	assert.True(t, IsSoundfile(s.At(5)))
	assert.True(t, IsCallback(s.At(6)))
	assert.True(t, IsTexture(s.At(7)))
}
