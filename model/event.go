package model

type EventKind uint8

const (
	NoteEvent EventKind = iota
	ControllerEvent
	PitchBendEvent
	LyricEvent
)

// Event is one write-once entry of a song document. Times are in beats.
type Event struct {
	Kind    EventKind
	Track   int
	Channel uint8
	Time    float64

	// NoteEvent
	Key      uint8
	Duration float64
	Velocity uint8

	// ControllerEvent
	Controller uint8
	// ControllerEvent value (0-127) or PitchBendEvent value (0-16383, center 8192)
	Value uint16

	// LyricEvent
	Text string
}
