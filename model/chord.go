package model

// Chord is a triad as (root, third, fifth) MIDI keys.
type Chord [3]uint8

func (c Chord) Root() uint8  { return c[0] }
func (c Chord) Third() uint8 { return c[1] }
func (c Chord) Fifth() uint8 { return c[2] }

// Transpose shifts every note by semitones; results wrap like uint8 does, so
// keep offsets within the keyboard.
func (c Chord) Transpose(semitones int) Chord {
	return Chord{
		uint8(int(c[0]) + semitones),
		uint8(int(c[1]) + semitones),
		uint8(int(c[2]) + semitones),
	}
}

func (c Chord) Notes() []uint8 {
	return []uint8{c[0], c[1], c[2]}
}
