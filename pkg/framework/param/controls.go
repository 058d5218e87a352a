package param

import (
	"github.com/ErkEntonio/avendish/pkg/framework/field"
	"github.com/ErkEntonio/avendish/pkg/framework/introspect"
)

// InitControls applies every control field's declared initial value to the
// frame. Runs at instance init, off the real-time path.
func InitControls(fr *field.Frame, params *introspect.Introspection) {
	params.ForAllValues(fr, func(f *field.Field, v *field.FieldValue) {
		init := f.InitValue()
		switch f.Shape {
		case field.ShapeFloat:
			v.Float = init
		case field.ShapeInt:
			v.Int = int64(init)
		case field.ShapeBool:
			v.Bool = init != 0
		case field.ShapeVec2, field.ShapeVec3, field.ShapeVec4:
			for i := 0; i < f.Shape.VecArity(); i++ {
				v.Vec[i] = float32(init)
			}
		}
		if f.IsChoice() {
			idx := int64(init)
			if idx < 0 || idx >= int64(len(f.Choices)) {
				idx = 0
			}
			v.Int = idx
			v.Str = f.Choices[idx]
		}
	})
}

// ValueAt resolves a sample-accurate parameter's value at frame offset i
// within the block, given the timeline captured for this block and the value
// the parameter held entering the block.
//
// AccurateLinear interpolates linearly between points; AccurateSpan holds
// each point's value until the next; AccurateDynamic returns the entering
// value, since the processor consumes the raw timeline itself.
func ValueAt(mode field.AccurateMode, entering float64, points []field.AutomationPoint, i int32) float64 {
	if len(points) == 0 || mode == field.AccurateDynamic {
		return entering
	}

	// Find the last point at or before i; points are in timestamp order.
	prev := -1
	for k := range points {
		if points[k].Offset > i {
			break
		}
		prev = k
	}

	switch mode {
	case field.AccurateSpan:
		if prev < 0 {
			return entering
		}
		return points[prev].Value

	case field.AccurateLinear:
		prevVal, prevOff := entering, int32(0)
		if prev >= 0 {
			prevVal, prevOff = points[prev].Value, points[prev].Offset
		}
		next := prev + 1
		if next >= len(points) {
			return prevVal
		}
		nextVal, nextOff := points[next].Value, points[next].Offset
		if nextOff <= prevOff {
			return nextVal
		}
		t := float64(i-prevOff) / float64(nextOff-prevOff)
		return prevVal + t*(nextVal-prevVal)

	default:
		return entering
	}
}
