// Package phrase plays notes with articulation curves onto one track of a
// song document.
package phrase

import (
	"github.com/jsphweid/danseband/constants"
	"github.com/jsphweid/danseband/curve"
	"github.com/jsphweid/danseband/song"
)

// Articulation builds the curve to lay over a note that starts at start and
// lasts duration beats.
type Articulation func(start, duration float64) curve.Spec

type Note struct {
	Key           uint8
	Start         float64
	Duration      float64
	Velocity      int
	Articulations []Articulation
}

type Builder struct {
	Doc     *song.Document
	Track   int
	Channel uint8
}

func (b Builder) Play(n Note) {
	b.Doc.AddNote(b.Track, b.Channel, n.Key, n.Start, n.Duration, n.Velocity)
	for _, art := range n.Articulations {
		b.Apply(art(n.Start, n.Duration))
	}
}

func (b Builder) Note(key uint8, start, duration float64, velocity int, arts ...Articulation) {
	b.Play(Note{Key: key, Start: start, Duration: duration, Velocity: velocity, Articulations: arts})
}

func (b Builder) Chord(keys []uint8, start, duration float64, velocity int) {
	for _, key := range keys {
		b.Note(key, start, duration, velocity)
	}
}

// Apply writes a curve without a note, e.g. a swell ahead of a phrase.
func (b Builder) Apply(spec curve.Spec) {
	it := curve.New(spec)
	for {
		s, ok := it.Next()
		if !ok {
			return
		}
		if spec.Target == curve.PitchBend {
			b.Doc.AddPitchBend(b.Track, b.Channel, s.Time, s.Value)
		} else {
			b.Doc.AddController(b.Track, b.Channel, s.Time, uint8(spec.Target), s.Value)
		}
	}
}

func (b Builder) Control(time float64, controller uint8, value int) {
	b.Doc.AddController(b.Track, b.Channel, time, controller, value)
}

func (b Builder) Lyric(time float64, text string) {
	b.Doc.AddLyric(b.Track, time, text)
}

func Scoop(start, duration float64) curve.Spec {
	return curve.Default(curve.Scoop, start, duration)
}

func CountryBend(start, duration float64) curve.Spec {
	return curve.Default(curve.CountryBend, start, duration)
}

func Vibrato(start, duration float64) curve.Spec {
	return curve.Default(curve.Vibrato, start, duration)
}

func Fall(start, duration float64) curve.Spec {
	return curve.Default(curve.Fall, start, duration)
}

func BendRelease(start, duration float64) curve.Spec {
	return curve.Default(curve.BendRelease, start, duration)
}

// WideVibrato is the slower 5 Hz-style vibrato with 32 samples per beat.
func WideVibrato(speed float64, depth int) Articulation {
	return func(start, duration float64) curve.Spec {
		s := curve.Default(curve.Vibrato, start, duration)
		s.Steps = int(duration * 32)
		s.Speed = speed
		s.Depth = depth
		return s
	}
}

// SaxVibrato is a gentle modulation vibrato.
var SaxVibrato = WideVibrato(5.5, 15)

// SteelVibrato spans a whole 4 beat bar regardless of note length.
func SteelVibrato(depth int) Articulation {
	return func(start, _ float64) curve.Spec {
		s := curve.Default(curve.Vibrato, start, 4)
		s.Steps = 64
		s.Depth = depth
		return s
	}
}

// Swell ramps channel volume from silence over one beat.
func Swell(intensity float64) curve.Spec {
	s := curve.Default(curve.Swell, 0, 1)
	s.Depth = int(127 * intensity)
	return s
}

func SwellAt(start, intensity float64) curve.Spec {
	s := Swell(intensity)
	s.Start = start
	return s
}

// Bellows is the accordion's expression pulse over one beat.
func Bellows(start float64) curve.Spec {
	return curve.Spec{
		Kind:     curve.Vibrato,
		Start:    start,
		Duration: 1,
		Steps:    16,
		Center:   100,
		Depth:    20,
		Speed:    1,
		Target:   constants.CCExpression,
	}
}
