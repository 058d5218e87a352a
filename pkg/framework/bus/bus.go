// Package bus describes host-side channel layouts for a processing session.
// The engine itself only sees channel spans; hosts use a layout to size them.
package bus

import "fmt"

// Layout is a named channel arrangement.
type Layout struct {
	Name     string
	Channels int
}

// Standard layouts.
var (
	Mono   = Layout{Name: "mono", Channels: 1}
	Stereo = Layout{Name: "stereo", Channels: 2}
	Quad   = Layout{Name: "quad", Channels: 4}
)

// Of returns a layout with an arbitrary channel count.
func Of(channels int) Layout {
	return Layout{Name: fmt.Sprintf("%dch", channels), Channels: channels}
}

// Alloc allocates one span per channel, each frames samples long. Hosts call
// it once per session, off the real-time path.
func (l Layout) Alloc(frames int) [][]float32 {
	spans := make([][]float32, l.Channels)
	for i := range spans {
		spans[i] = make([]float32, frames)
	}
	return spans
}

func (l Layout) String() string { return l.Name }

// Config pairs the input and output layouts of a session.
type Config struct {
	In  Layout
	Out Layout
}

// Matched returns a config with the same layout on both sides.
func Matched(l Layout) Config {
	return Config{In: l, Out: l}
}

// Alloc allocates both sides' spans.
func (c Config) Alloc(frames int) (in, out [][]float32) {
	return c.In.Alloc(frames), c.Out.Alloc(frames)
}
