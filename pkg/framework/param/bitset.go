// Package param provides the runtime companions of control fields: the
// changed-flags bitset, control initialization, and sample-accurate value
// timelines.
package param

// Bitset is a fixed-size bitset indexed by parameter-subset position (the
// i-th control of the record, not the i-th field). One lives in every
// processor instance to track which controls the host touched this block.
type Bitset struct {
	words []uint64
	size  int
}

// NewBitset creates a bitset for n parameters.
func NewBitset(n int) *Bitset {
	return &Bitset{
		words: make([]uint64, (n+63)/64),
		size:  n,
	}
}

// Len returns the parameter count the bitset was sized for.
func (b *Bitset) Len() int { return b.size }

// Set marks parameter i as changed.
func (b *Bitset) Set(i int) {
	b.words[i>>6] |= 1 << (uint(i) & 63)
}

// Test reports whether parameter i changed.
func (b *Bitset) Test(i int) bool {
	return b.words[i>>6]&(1<<(uint(i)&63)) != 0
}

// Clear unmarks parameter i.
func (b *Bitset) Clear(i int) {
	b.words[i>>6] &^= 1 << (uint(i) & 63)
}

// Any reports whether any parameter changed.
func (b *Bitset) Any() bool {
	for _, w := range b.words {
		if w != 0 {
			return true
		}
	}
	return false
}

// Reset clears all flags.
func (b *Bitset) Reset() {
	for i := range b.words {
		b.words[i] = 0
	}
}
