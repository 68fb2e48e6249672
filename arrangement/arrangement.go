// Package arrangement walks a song structure bar by bar and hands each bar to
// the pattern function of every instrument playing in it.
package arrangement

import (
	"log/slog"

	"github.com/jsphweid/danseband/constants"
	"github.com/jsphweid/danseband/model"
	"github.com/jsphweid/danseband/phrase"
	"github.com/jsphweid/danseband/song"
	"github.com/jsphweid/danseband/util"
)

type Kind string

const (
	Intro  Kind = "intro"
	Verse  Kind = "verse"
	Chorus Kind = "chorus"
	Bridge Kind = "bridge"
	Outro  Kind = "outro"
)

// DefaultIntensity is the velocity scale a section kind gets when the song
// does not set one.
func DefaultIntensity(kind Kind) float64 {
	switch kind {
	case Chorus:
		return 1.2
	case Bridge:
		return 1.1
	case Outro:
		return 0.9
	}
	return 1.0
}

// Fade lowers intensity linearly by Step per bar, never below Floor.
type Fade struct {
	Step  float64 `yaml:"step" json:"step"`
	Floor float64 `yaml:"floor" json:"floor"`
}

type Section struct {
	Kind Kind
	// e.g. "verse_first"; patterns use it to vary repeats
	Label       string
	Bars        int
	Chords      []model.Chord
	Instruments []model.Role
	// local bar at which a role starts playing
	Enter     map[model.Role]int
	Intensity float64
	Fade      *Fade
}

func (s Section) intensityAt(local int) float64 {
	intensity := s.Intensity
	if intensity == 0 {
		intensity = DefaultIntensity(s.Kind)
	}
	if s.Fade != nil {
		intensity *= util.Max(s.Fade.Floor, 1-float64(local)*s.Fade.Step)
	}
	return intensity
}

// Bar is what a pattern function gets to work with.
type Bar struct {
	Chord model.Chord
	Next  model.Chord
	// absolute bar number in the song
	Index int
	// bar number inside the section
	Local     int
	Kind      Kind
	Label     string
	Intensity float64
	Beats     float64
}

// Start is the first beat of the bar.
func (b Bar) Start() float64 {
	return float64(b.Index) * b.Beats
}

// At returns the absolute beat of an offset inside the bar.
func (b Bar) At(offset float64) float64 {
	return b.Start() + offset
}

// Velocity scales a base velocity by the bar's intensity.
func (b Bar) Velocity(base int) int {
	return util.Scale(base, b.Intensity)
}

type PatternFunc func(p phrase.Builder, bar Bar)

type Sequencer struct {
	Doc      *song.Document
	Patterns map[model.Role]PatternFunc
	// beats per bar, defaults to 4
	Beats float64
	// first bar to write to
	Offset int
}

func (s *Sequencer) builder(role model.Role) (phrase.Builder, bool) {
	track, ok := s.Doc.TrackFor(role)
	if !ok {
		return phrase.Builder{}, false
	}
	return phrase.Builder{Doc: s.Doc, Track: track, Channel: s.Doc.Tracks[track].Channel}, true
}

// Run sequences the sections in order and returns the number of bars written.
func (s *Sequencer) Run(sections []Section) int {
	beats := s.Beats
	if beats == 0 {
		beats = constants.BeatsPerBar
	}

	bar := s.Offset
	for _, sec := range sections {
		if len(sec.Chords) == 0 || sec.Bars <= 0 {
			slog.Debug("skipping empty section", "kind", sec.Kind, "label", sec.Label)
			bar += util.Max(sec.Bars, 0)
			continue
		}
		label := sec.Label
		if label == "" {
			label = string(sec.Kind)
		}

		for local := 0; local < sec.Bars; local++ {
			b := Bar{
				Chord:     sec.Chords[local%len(sec.Chords)],
				Next:      sec.Chords[(local+1)%len(sec.Chords)],
				Index:     bar + local,
				Local:     local,
				Kind:      sec.Kind,
				Label:     label,
				Intensity: sec.intensityAt(local),
				Beats:     beats,
			}
			for _, role := range sec.Instruments {
				if local < sec.Enter[role] {
					continue
				}
				pattern, ok := s.Patterns[role]
				if !ok {
					continue
				}
				p, ok := s.builder(role)
				if !ok {
					slog.Debug("no track for role", "role", role)
					continue
				}
				pattern(p, b)
			}
		}
		bar += sec.Bars
	}
	return bar - s.Offset
}
