package midi

import (
	"sort"
	"sync"
)

// Queue is the host-side MIDI port buffer. Hosts may fill it from a MIDI
// thread, so it locks; the record-side containers drain it once per block on
// the processing thread.
type Queue struct {
	messages []Message
	mu       sync.RWMutex
	sorted   bool
}

// NewQueue creates an empty queue with room for a typical block's events.
func NewQueue() *Queue {
	return &Queue{
		messages: make([]Message, 0, 128),
		sorted:   true,
	}
}

// Push adds a message to the queue.
func (q *Queue) Push(m Message) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.messages = append(q.messages, m)
	q.sorted = false
}

// Len returns the number of queued messages.
func (q *Queue) Len() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.messages)
}

// At returns the i-th message in timestamp order.
func (q *Queue) At(i int) Message {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.sorted {
		q.sort()
	}
	return q.messages[i]
}

// InRange returns the queued messages with timestamps in [start, end),
// copied out in timestamp order.
func (q *Queue) InRange(start, end int32) []Message {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.sorted {
		q.sort()
	}
	lo := sort.Search(len(q.messages), func(i int) bool {
		return q.messages[i].Timestamp >= start
	})
	hi := lo
	for hi < len(q.messages) && q.messages[hi].Timestamp < end {
		hi++
	}
	if lo == hi {
		return nil
	}
	out := make([]Message, hi-lo)
	copy(out, q.messages[lo:hi])
	return out
}

// Clear empties the queue, keeping capacity.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.messages = q.messages[:0]
	q.sorted = true
}

func (q *Queue) sort() {
	sort.SliceStable(q.messages, func(i, j int) bool {
		return q.messages[i].Timestamp < q.messages[j].Timestamp
	})
	q.sorted = true
}
