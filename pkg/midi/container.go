package midi

// List is the dynamic message container bound to a ShapeMIDI field. It grows
// as needed, but CopyFrom reserves the full capacity once per block before
// appending so the hot path never reallocates incrementally.
type List struct {
	messages []Message
}

// NewList creates an empty dynamic container.
func NewList() *List {
	return &List{}
}

// Len returns the number of messages in the list.
func (l *List) Len() int { return len(l.messages) }

// At returns the i-th message.
func (l *List) At(i int) Message { return l.messages[i] }

// Messages returns the backing slice for iteration. Callers must not retain
// it past the current block.
func (l *List) Messages() []Message { return l.messages }

// Append adds one message.
func (l *List) Append(m Message) {
	l.messages = append(l.messages, m)
}

// Reserve grows capacity to hold at least n more messages.
func (l *List) Reserve(n int) {
	if need := len(l.messages) + n; need > cap(l.messages) {
		grown := make([]Message, len(l.messages), need)
		copy(grown, l.messages)
		l.messages = grown
	}
}

// CopyFrom drains the host queue into the list, reserving once up front
// based on the queue's reported size.
func (l *List) CopyFrom(q *Queue) {
	n := q.Len()
	if n == 0 {
		return
	}
	l.Reserve(n)
	for i := 0; i < n; i++ {
		l.messages = append(l.messages, q.At(i))
	}
}

// Clear empties the list, keeping capacity for the next block.
func (l *List) Clear() {
	l.messages = l.messages[:0]
}

// RawCapacity is the message capacity of a RawBuffer.
const RawCapacity = 64

// RawBuffer is the fixed-capacity message container bound to a ShapeMIDIRaw
// field. Messages beyond capacity are dropped; the drop is counted so hosts
// can surface it off the real-time path.
type RawBuffer struct {
	messages [RawCapacity]Message
	length   int
	dropped  int
}

// NewRawBuffer creates an empty fixed-capacity container.
func NewRawBuffer() *RawBuffer {
	return &RawBuffer{}
}

// Len returns the number of stored messages.
func (b *RawBuffer) Len() int { return b.length }

// At returns the i-th message.
func (b *RawBuffer) At(i int) Message { return b.messages[i] }

// Dropped returns how many messages were discarded since the last Clear.
func (b *RawBuffer) Dropped() int { return b.dropped }

// Append adds one message, dropping it if the buffer is full.
func (b *RawBuffer) Append(m Message) {
	if b.length == RawCapacity {
		b.dropped++
		return
	}
	b.messages[b.length] = m
	b.length++
}

// CopyFrom drains the host queue into the buffer.
func (b *RawBuffer) CopyFrom(q *Queue) {
	n := q.Len()
	for i := 0; i < n; i++ {
		b.Append(q.At(i))
	}
}

// Clear empties the buffer and resets the drop counter.
func (b *RawBuffer) Clear() {
	b.length = 0
	b.dropped = 0
}
