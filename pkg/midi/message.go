// Package midi provides the raw MIDI message containers bound to record
// fields and the host-side event queue they are filled from.
package midi

import "fmt"

// Status bytes for channel voice messages.
const (
	StatusNoteOff         uint8 = 0x80
	StatusNoteOn          uint8 = 0x90
	StatusPolyPressure    uint8 = 0xA0
	StatusControlChange   uint8 = 0xB0
	StatusProgramChange   uint8 = 0xC0
	StatusChannelPressure uint8 = 0xD0
	StatusPitchBend       uint8 = 0xE0
)

// Message is one raw MIDI message with a sample-accurate timestamp relative
// to the start of the current block.
type Message struct {
	Bytes     []byte
	Timestamp int32
}

// Status returns the status byte with the channel nibble masked off, or 0
// for an empty message.
func (m Message) Status() uint8 {
	if len(m.Bytes) == 0 {
		return 0
	}
	return m.Bytes[0] & 0xF0
}

// Channel returns the channel nibble of the status byte.
func (m Message) Channel() uint8 {
	if len(m.Bytes) == 0 {
		return 0
	}
	return m.Bytes[0] & 0x0F
}

func (m Message) String() string {
	return fmt.Sprintf("midi{%X @%d}", m.Bytes, m.Timestamp)
}

// NoteOn builds a note-on message.
func NoteOn(channel, key, velocity uint8, timestamp int32) Message {
	return Message{
		Bytes:     []byte{StatusNoteOn | channel&0x0F, key & 0x7F, velocity & 0x7F},
		Timestamp: timestamp,
	}
}

// NoteOff builds a note-off message.
func NoteOff(channel, key, velocity uint8, timestamp int32) Message {
	return Message{
		Bytes:     []byte{StatusNoteOff | channel&0x0F, key & 0x7F, velocity & 0x7F},
		Timestamp: timestamp,
	}
}

// ControlChange builds a control-change message.
func ControlChange(channel, controller, value uint8, timestamp int32) Message {
	return Message{
		Bytes:     []byte{StatusControlChange | channel&0x0F, controller & 0x7F, value & 0x7F},
		Timestamp: timestamp,
	}
}

// PitchBend builds a pitch-bend message from a 14-bit value (8192 is center).
func PitchBend(channel uint8, value uint16, timestamp int32) Message {
	return Message{
		Bytes:     []byte{StatusPitchBend | channel&0x0F, uint8(value & 0x7F), uint8(value >> 7 & 0x7F)},
		Timestamp: timestamp,
	}
}
