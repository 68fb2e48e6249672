// Package pattern holds the per-instrument bar patterns the arrangements are
// built from. Patterns are looked up by name from song definitions.
package pattern

import (
	"github.com/jsphweid/danseband/arrangement"
	"github.com/jsphweid/danseband/util"
)

type Registry map[string]arrangement.PatternFunc

var builtin = Registry{
	"bass-walk":      BassWalk,
	"bass-template":  BassTemplate,
	"bass-lookahead": BassLookahead,
	"bass-root":      BassRoot,
	"bass-12-8":      Bass128,

	"rhythm-guitar":     RhythmGuitar,
	"rhythm-boom-chick": RhythmBoomChick,
	"rhythm-muted":      RhythmMuted,
	"rhythm-12-8":       Rhythm128,
	"rhythm-eighths":    RhythmEighths,

	"drums":       Drums,
	"drums-fill":  DrumsFill,
	"drums-basic": DrumsBasic,
	"drums-plain": DrumsTemplate,
	"drums-12-8":  Drums128,
	"edm-rhythm":  EDMRhythm,
	"pad":         Pad,

	"accordion":          Accordion,
	"accordion-template": AccordionTemplate,
	"accordion-run":      AccordionRun,
	"accordion-offbeat":  AccordionOffbeat,
	"accordion-12-8":     Accordion128,

	"steel":          Steel,
	"steel-template": SteelTemplate,
	"steel-melody":   SteelMelody,

	"vocal":          Vocal,
	"vocal-template": VocalTemplate,
	"vocal-plain":    VocalPlain,
	"vocal-12-8":     Vocal128,
	"vocal-himmelen": VocalHimmelen,
	"vocal-melody":   VocalMelody,

	"sax-tenor":      SaxPart(false),
	"sax-alto":       SaxPart(true),
	"sax-tenor-12-8": TenorSax128,
	"sax-alto-12-8":  AltoSax128,
	"sax-tenor-lead": SaxLead(false),
	"sax-alto-lead":  SaxLead(true),
}

// Default returns a copy of the built-in patterns that callers may extend.
func Default() Registry {
	res := make(Registry, len(builtin))
	for name, fn := range builtin {
		res[name] = fn
	}
	return res
}

func (r Registry) Lookup(name string) (arrangement.PatternFunc, bool) {
	fn, ok := r[name]
	return fn, ok
}

func (r Registry) Names() []string {
	return util.SortedKeys(r)
}

func key(n int) uint8 {
	return uint8(util.Clamp(n, 0, 127))
}

// triad returns the bar chord as ints shifted by offset semitones.
func triad(bar arrangement.Bar, offset int) (root, third, fifth int) {
	return int(bar.Chord.Root()) + offset, int(bar.Chord.Third()) + offset, int(bar.Chord.Fifth()) + offset
}

func chordKeys(bar arrangement.Bar, offset int) []uint8 {
	r, t, f := triad(bar, offset)
	return []uint8{key(r), key(t), key(f)}
}

// step is a note relative to the bar start.
type step struct {
	key      int
	offset   float64
	duration float64
	velocity int
}

// sequence lays out (key, duration, velocity) notes back to back from the bar
// start.
func sequence(notes ...[3]float64) []step {
	var res []step
	var t float64
	for _, n := range notes {
		res = append(res, step{key: int(n[0]), offset: t, duration: n[1], velocity: int(n[2])})
		t += n[1]
	}
	return res
}
