package pattern

import (
	"github.com/jsphweid/danseband/arrangement"
	"github.com/jsphweid/danseband/constants"
	"github.com/jsphweid/danseband/curve"
	"github.com/jsphweid/danseband/phrase"
)

// settle bends a note down into pitch over its first tenth of a beat.
func settle(depth int) phrase.Articulation {
	return func(start, _ float64) curve.Spec {
		return curve.Spec{
			Kind:     curve.Fall,
			Start:    start,
			Duration: 0.1,
			Window:   0.1,
			Steps:    8,
			Center:   constants.PitchBendCenter + depth,
			Depth:    depth,
			Target:   curve.PitchBend,
		}
	}
}

// gentleVibrato samples 32 times per beat and completes one cycle every
// period samples.
func gentleVibrato(depth int, period float64) phrase.Articulation {
	return func(start, duration float64) curve.Spec {
		s := curve.Default(curve.Vibrato, start, duration)
		s.Steps = int(duration * 32)
		s.Depth = depth
		s.Speed = float64(s.Steps) / period
		return s
	}
}

func delayed(offset float64, art phrase.Articulation) phrase.Articulation {
	return func(start, duration float64) curve.Spec {
		return art(start+offset, duration)
	}
}

var saxVibrato = phrase.WideVibrato(6, 20)

func saxFall(start, duration float64) curve.Spec {
	s := curve.Default(curve.Fall, start, duration)
	s.Window, s.Steps, s.Depth = 0.15, 24, 1536
	return s
}

// noteSwell fades a single steel note in over its first beat.
func noteSwell(start, _ float64) curve.Spec {
	s := curve.Default(curve.Swell, start, 1)
	s.Steps = 16
	return s
}

// Accordion pumps the bellows on the downbeat under two held chords.
func Accordion(p phrase.Builder, bar arrangement.Bar) {
	p.Apply(phrase.Bellows(bar.At(0)))
	p.Chord(chordKeys(bar, 0), bar.At(0), 1.5, bar.Velocity(85))
	p.Chord(chordKeys(bar, 0), bar.At(2), 1.5, bar.Velocity(80))
}

func AccordionTemplate(p phrase.Builder, bar arrangement.Bar) {
	p.Chord(chordKeys(bar, 0), bar.At(0), 2, bar.Velocity(80))
	p.Chord(chordKeys(bar, 0), bar.At(2), 2, bar.Velocity(75))
}

// AccordionRun keeps to half notes in the verse and runs up and down the
// chord in the second half of chorus bars.
func AccordionRun(p phrase.Builder, bar arrangement.Bar) {
	base := bar.Velocity(85)
	root, third, fifth := triad(bar, 0)
	switch bar.Kind {
	case arrangement.Verse:
		p.Chord(chordKeys(bar, 0), bar.At(0), 1, base)
		p.Chord(chordKeys(bar, 0), bar.At(2), 1, base)
	case arrangement.Chorus:
		p.Chord(chordKeys(bar, 0), bar.At(0), 2, base)
		run := []int{root, third, fifth, third, root + 12, fifth, third, root}
		for i, n := range run {
			p.Note(key(n), bar.At(2+float64(i)*0.25), 0.25, base)
		}
	}
	p.Apply(phrase.Bellows(bar.At(0)))
}

// AccordionOffbeat answers the chords on 1 and 3 with octave off-beats and a
// bar-long bellows swing.
func AccordionOffbeat(p phrase.Builder, bar arrangement.Bar) {
	base := bar.Velocity(90)
	for beat := 0; beat < 4; beat++ {
		t := bar.At(float64(beat))
		if beat%2 == 0 {
			p.Chord(chordKeys(bar, 0), t, 0.75, base)
		} else {
			p.Chord(chordKeys(bar, 12), t+0.5, 0.5, base-10)
		}
	}
	p.Apply(curve.Spec{
		Kind:     curve.Vibrato,
		Start:    bar.At(0),
		Duration: 4,
		Steps:    32,
		Center:   100,
		Depth:    25,
		Speed:    2,
		Target:   constants.CCExpression,
	})
}

func Accordion128(p phrase.Builder, bar arrangement.Bar) {
	base := bar.Velocity(90)
	_, third, fifth := triad(bar, 0)
	for beat := 0; beat < 4; beat++ {
		t := bar.At(float64(beat))
		p.Chord(chordKeys(bar, 0), t, 0.75, base)
		if beat%2 == 1 {
			p.Note(key(third), t+0.5, 0.25, base-15)
			p.Note(key(fifth), t+0.5, 0.25, base-15)
		}
	}
}

// Steel sets expression by section, then plays a swelled phrase under a
// bar-long vibrato.
func Steel(p phrase.Builder, bar arrangement.Bar) {
	expression := 110
	switch bar.Kind {
	case arrangement.Chorus:
		expression = 120
	case arrangement.Bridge:
		expression = 127
	}
	p.Control(bar.At(0), constants.CCExpression, expression)

	root, third, fifth := triad(bar, 0)
	depth := 32
	switch bar.Kind {
	case arrangement.Verse:
		p.Apply(phrase.SwellAt(bar.At(0), 1))
		p.Note(key(root), bar.At(0), 2, 85)
		p.Note(key(third), bar.At(2), 2, 80)
	case arrangement.Chorus:
		depth = 48
		p.Apply(phrase.SwellAt(bar.At(0), 1.2))
		line := []step{
			{root + 12, 0, 1, 95},
			{fifth + 12, 1, 1, 90},
			{third + 12, 2, 1, 90},
			{root + 12, 3, 1, 85},
		}
		for _, s := range line {
			p.Note(key(s.key), bar.At(s.offset), s.duration, s.velocity)
		}
	case arrangement.Bridge:
		p.Note(key(fifth+12), bar.At(0), 4, 90)
	default:
		return
	}
	p.Apply(phrase.SteelVibrato(depth)(bar.At(0), 4))
}

// SteelTemplate bends into a long root and answers with swelled third and
// fifth.
func SteelTemplate(p phrase.Builder, bar arrangement.Bar) {
	root, third, fifth := triad(bar, 0)
	p.Apply(phrase.SwellAt(bar.At(0), 1))
	p.Note(key(root), bar.At(0), 2, 90, phrase.BendRelease, phrase.WideVibrato(5, 32))
	p.Note(key(third), bar.At(2), 1, 85, noteSwell, phrase.BendRelease)
	p.Note(key(fifth), bar.At(3), 1, 85, noteSwell, phrase.BendRelease)
}

// SteelMelody is the plain lead: chord tones on the downbeat, octave up on 3.
func SteelMelody(p phrase.Builder, bar arrangement.Bar) {
	for _, k := range chordKeys(bar, 0) {
		p.Note(k, bar.At(0), 1, 100)
		p.Note(key(int(k)+12), bar.At(2), 1, 80)
	}
}

type sung struct {
	key      int
	offset   float64
	duration float64
	velocity int
	arts     []phrase.Articulation
}

func scoop(k int, offset, duration float64) sung {
	return sung{k, offset, duration, 90, []phrase.Articulation{phrase.Scoop}}
}

func bend(k int, offset, duration float64) sung {
	return sung{k, offset, duration, 95, []phrase.Articulation{phrase.CountryBend}}
}

func vib(k int, offset, duration float64) sung {
	return sung{k, offset, duration, 85, []phrase.Articulation{phrase.Vibrato}}
}

func fall(k int, offset, duration float64) sung {
	return sung{k, offset, duration, 85, []phrase.Articulation{phrase.Fall}}
}

func plain(k int, offset, duration float64, velocity int) sung {
	return sung{k, offset, duration, velocity, nil}
}

func sing(p phrase.Builder, bar arrangement.Bar, line ...sung) {
	for _, n := range line {
		p.Note(key(n.key), bar.At(n.offset), n.duration, n.velocity, n.arts...)
	}
}

// Vocal alternates two-bar phrases in the verse and chorus an octave above
// the chord.
func Vocal(p phrase.Builder, bar arrangement.Bar) {
	root, third, fifth := triad(bar, 12)
	even := bar.Local%2 == 0
	switch bar.Kind {
	case arrangement.Verse:
		if even {
			sing(p, bar, scoop(root, 0, 2), bend(third, 2, 2))
		} else {
			sing(p, bar, vib(fifth, 0, 2), fall(root, 2, 2))
		}
	case arrangement.Chorus:
		if even {
			sing(p, bar, bend(fifth, 0, 1.5), vib(third, 1.5, 1.5), scoop(root, 3, 1))
		} else {
			sing(p, bar, bend(third, 0, 2), fall(root, 2, 2))
		}
	case arrangement.Bridge:
		sing(p, bar, vib(fifth, 0, 3), fall(third, 3, 1))
	}
}

// VocalTemplate cycles through four phrases regardless of section.
func VocalTemplate(p phrase.Builder, bar arrangement.Bar) {
	root, third, fifth := triad(bar, 12)
	switch bar.Local % 4 {
	case 0:
		sing(p, bar, scoop(root, 0, 1), vib(third, 1, 1), bend(fifth, 2, 2))
	case 1:
		sing(p, bar, bend(fifth, 0, 1), vib(third, 1, 1), fall(root, 2, 2))
	case 2:
		sing(p, bar, bend(fifth, 0, 1.5), scoop(third, 1.5, 1), vib(root, 2.5, 1.5))
	case 3:
		sing(p, bar, bend(third, 0, 1), vib(root, 1, 2), fall(root, 3, 1))
	}
}

// VocalPlain is Vocal without scoops and bends.
func VocalPlain(p phrase.Builder, bar arrangement.Bar) {
	root, third, fifth := triad(bar, 12)
	even := bar.Local%2 == 0
	switch bar.Kind {
	case arrangement.Verse:
		if even {
			sing(p, bar, vib(root, 0, 2), plain(third, 2, 2, 90))
		} else {
			sing(p, bar, vib(fifth, 0, 2), fall(root, 2, 2))
		}
	case arrangement.Chorus:
		if even {
			sing(p, bar, vib(fifth, 0, 1.5), vib(third, 1.5, 1.5), plain(root, 3, 1, 90))
		} else {
			sing(p, bar, vib(third, 0, 2), fall(root, 2, 2))
		}
	case arrangement.Bridge:
		sing(p, bar, vib(fifth, 0, 3), fall(third, 3, 1))
	}
}

// melody is a fixed line of (key, duration, velocity) played back to back.
func melody(p phrase.Builder, bar arrangement.Bar, line []step, arts ...phrase.Articulation) {
	for _, s := range line {
		p.Note(key(s.key), bar.At(s.offset), s.duration, s.velocity, arts...)
	}
}

var (
	ballad128Verse = sequence(
		[3]float64{71, 0.33, 100},
		[3]float64{71, 0.33, 95},
		[3]float64{71, 0.33, 90},
		[3]float64{69, 0.33, 95},
		[3]float64{67, 0.33, 90},
		[3]float64{69, 0.33, 95},
		[3]float64{71, 0.33, 100},
		[3]float64{72, 0.33, 95},
		[3]float64{74, 1, 100},
	)
	ballad128Chorus = sequence(
		[3]float64{74, 0.5, 100},
		[3]float64{72, 0.5, 95},
		[3]float64{71, 0.5, 95},
		[3]float64{69, 0.5, 90},
		[3]float64{67, 1, 100},
		[3]float64{69, 1, 95},
	)
)

// Vocal128 sings the written 12/8 melody with a slow vibrato on every note.
func Vocal128(p phrase.Builder, bar arrangement.Bar) {
	switch bar.Kind {
	case arrangement.Verse:
		melody(p, bar, ballad128Verse, gentleVibrato(20, 16))
	case arrangement.Chorus:
		melody(p, bar, ballad128Chorus, gentleVibrato(20, 16))
	}
}

var (
	leadVerse = sequence(
		[3]float64{74, 1, 100},
		[3]float64{72, 1, 100},
		[3]float64{71, 1, 100},
		[3]float64{69, 1, 100},
		[3]float64{67, 2, 100},
		[3]float64{69, 2, 100},
	)
	leadChorus = sequence(
		[3]float64{74, 1, 100},
		[3]float64{76, 1, 100},
		[3]float64{77, 2, 100},
		[3]float64{76, 1, 100},
		[3]float64{74, 1, 100},
		[3]float64{72, 2, 100},
	)
)

// VocalMelody sings a two-bar line starting in every bar, settling into each
// note before the vibrato starts.
func VocalMelody(p phrase.Builder, bar arrangement.Bar) {
	arts := []phrase.Articulation{settle(1024), delayed(0.1, phrase.WideVibrato(5.5, 25))}
	switch bar.Kind {
	case arrangement.Verse:
		melody(p, bar, leadVerse, arts...)
	case arrangement.Chorus:
		melody(p, bar, leadChorus, arts...)
	}
}

type syllable struct {
	step
	text string
}

func lyricLine(words []string, notes ...[3]float64) []syllable {
	var res []syllable
	for i, s := range sequence(notes...) {
		res = append(res, syllable{step: s, text: words[i]})
	}
	return res
}

var (
	himmelenPickup = lyricLine(
		[]string{"jag", "trod", "de", "äng", "lar", "na", "fans"},
		[3]float64{67, 0.5, 100},
		[3]float64{71, 0.5, 100},
		[3]float64{71, 0.5, 100},
		[3]float64{71, 0.5, 100},
		[3]float64{69, 0.5, 100},
		[3]float64{67, 0.5, 100},
		[3]float64{69, 0.5, 100},
	)
	himmelenAnswer = lyricLine(
		[]string{"ba", "ra", "ba", "ra", "i", "him-me-len"},
		[3]float64{71, 0.5, 100},
		[3]float64{72, 0.5, 100},
		[3]float64{74, 1, 100},
		[3]float64{71, 0.5, 100},
		[3]float64{69, 0.5, 100},
		[3]float64{67, 1, 100},
	)
	himmelenChorus = lyricLine(
		[]string{"nu", "har", "jag", "en", "äng", "el"},
		[3]float64{74, 0.5, 100},
		[3]float64{72, 0.5, 100},
		[3]float64{71, 0.5, 100},
		[3]float64{69, 0.5, 100},
		[3]float64{67, 1, 100},
		[3]float64{69, 1, 100},
	)
)

func singWords(p phrase.Builder, bar arrangement.Bar, from float64, line []syllable) {
	for _, s := range line {
		at := bar.At(from + s.offset)
		var arts []phrase.Articulation
		if s.duration >= 1 {
			arts = append(arts, settle(512))
		}
		if s.duration > 0.5 {
			arts = append(arts, gentleVibrato(20, 8))
		}
		p.Note(key(s.key), at, s.duration, s.velocity, arts...)
		p.Lyric(at, s.text)
	}
}

// VocalHimmelen sings the lyric lines, the verse opening on an eighth-note
// pickup before the bar.
func VocalHimmelen(p phrase.Builder, bar arrangement.Bar) {
	switch {
	case bar.Kind == arrangement.Verse && bar.Local%4 == 0:
		singWords(p, bar, -0.5, himmelenPickup)
	case bar.Kind == arrangement.Verse && bar.Local%4 == 1:
		singWords(p, bar, 0, himmelenAnswer)
	case bar.Kind == arrangement.Chorus && bar.Local%4 == 0:
		singWords(p, bar, 0, himmelenChorus)
	}
}

// SaxPart returns the tenor or, an octave up and a little softer, the alto
// line: backing phrases in the verse, riffs in the chorus, a held third in
// the bridge.
func SaxPart(alto bool) arrangement.PatternFunc {
	base, octave := 90, 0
	if alto {
		base, octave = 85, 12
	}
	backing := func(p phrase.Builder, bar arrangement.Bar, velocity int) {
		root, third, fifth := triad(bar, octave)
		p.Note(key(third), bar.At(0), 2, velocity)
		p.Note(key(root), bar.At(2), 1, velocity-5)
		p.Note(key(fifth), bar.At(3), 1, velocity-5)
	}
	return func(p phrase.Builder, bar arrangement.Bar) {
		root, third, fifth := triad(bar, octave)
		even := bar.Local%2 == 0
		switch bar.Kind {
		case arrangement.Verse:
			if even {
				backing(p, bar, base)
			}
		case arrangement.Chorus:
			if !even {
				backing(p, bar, base-5)
				return
			}
			riff := []int{root, third, fifth, third, root + 12, fifth, third, root}
			for i, n := range riff {
				p.Note(key(n), bar.At(float64(i)*0.5), 0.5, base, saxVibrato)
			}
		case arrangement.Bridge:
			p.Note(key(third), bar.At(0), 4, base, saxVibrato)
		}
	}
}

// SaxLead walks up the chord with a fall on the last beat in the chorus and
// holds third and root elsewhere.
func SaxLead(alto bool) arrangement.PatternFunc {
	base, octave := 90, 0
	if alto {
		base, octave = 85, 12
	}
	return func(p phrase.Builder, bar arrangement.Bar) {
		root, third, fifth := triad(bar, octave)
		if bar.Kind == arrangement.Chorus {
			p.Note(key(root), bar.At(0), 1, base, saxVibrato)
			p.Note(key(third), bar.At(1), 1, base-5, saxVibrato)
			p.Note(key(fifth), bar.At(2), 1, base-5, saxVibrato)
			p.Note(key(third), bar.At(3), 1, base-10, saxFall)
			return
		}
		p.Note(key(third), bar.At(0), 2, base-10, saxVibrato)
		p.Note(key(root), bar.At(2), 2, base-15, saxVibrato)
	}
}

// TenorSax128 doubles third and fifth an octave up.
func TenorSax128(p phrase.Builder, bar arrangement.Bar) {
	base := bar.Velocity(85)
	_, third, fifth := triad(bar, 12)
	p.Note(key(third), bar.At(0), 2, base-10, phrase.SaxVibrato)
	p.Note(key(fifth), bar.At(0), 2, base-10, phrase.SaxVibrato)
}

func AltoSax128(p phrase.Builder, bar arrangement.Bar) {
	base := bar.Velocity(85)
	_, _, fifth := triad(bar, 24)
	p.Note(key(fifth), bar.At(0), 2, base-15, phrase.SaxVibrato)
}
