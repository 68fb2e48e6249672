package pattern

import (
	"github.com/jsphweid/danseband/arrangement"
	"github.com/jsphweid/danseband/constants"
	"github.com/jsphweid/danseband/phrase"
	"github.com/jsphweid/danseband/util"
)

// BassWalk is the two-octave-down walking bass of the full arrangement.
func BassWalk(p phrase.Builder, bar arrangement.Bar) {
	root, third, fifth := triad(bar, -24)
	line := []step{
		{root, 0, 0.5, 100},
		{root + 7, 0.5, 0.5, 85},
		{third, 1, 0.5, 90},
		{fifth, 1.5, 0.5, 85},
		{root, 2, 0.5, 95},
		{root + 5, 2.5, 0.5, 85},
		{root + 3, 3, 0.5, 85},
		{root + 5, 3.5, 0.5, 85},
	}
	for _, s := range line {
		p.Note(key(s.key), bar.At(s.offset), s.duration, bar.Velocity(s.velocity))
	}
}

// BassTemplate walks up or down into the next bar's root.
func BassTemplate(p phrase.Builder, bar arrangement.Bar) {
	root, third, fifth := triad(bar, -24)
	next := int(bar.Next.Root()) - 24
	line := []step{
		{root, 0, 0.5, 100},
		{root + 7, 0.5, 0.5, 85},
		{third, 1, 0.5, 90},
		{fifth, 1.5, 0.5, 85},
		{root, 2, 0.5, 95},
		{root + 5, 2.5, 0.5, 85},
	}
	if next > root {
		line = append(line, step{root + 3, 3, 0.5, 85}, step{root + 5, 3.5, 0.5, 85})
	} else {
		line = append(line, step{root - 2, 3, 0.5, 85}, step{root - 4, 3.5, 0.5, 85})
	}
	for _, s := range line {
		p.Note(key(s.key), bar.At(s.offset), s.duration, bar.Velocity(s.velocity))
	}
}

// walkingSteps connects two bass notes in at most four sixteenths.
func walkingSteps(from, to int) []int {
	switch {
	case util.Max(from-to, to-from) <= 3:
		return []int{from, to}
	case to > from:
		return []int{from, from + 2, from + 4, to}
	default:
		return []int{from, from - 2, from - 4, to}
	}
}

// BassLookahead plays root, fifth and octave-fifth, then walks to the next
// chord on the last beat.
func BassLookahead(p phrase.Builder, bar arrangement.Bar) {
	root, _, fifth := triad(bar, -24)
	next := int(bar.Next.Root()) - 24

	p.Note(key(root), bar.At(0), 1, bar.Velocity(100))
	p.Note(key(fifth), bar.At(1), 1, bar.Velocity(85))
	p.Note(key(root+7), bar.At(2), 1, bar.Velocity(90))
	for i, n := range walkingSteps(root+7, next) {
		p.Note(key(n), bar.At(3+float64(i)*0.25), 0.25, bar.Velocity(85))
	}
}

// BassRoot is the plain root and fifth half-note bass.
func BassRoot(p phrase.Builder, bar arrangement.Bar) {
	root, _, _ := triad(bar, -24)
	p.Note(key(root), bar.At(0), 2, bar.Velocity(100))
	p.Note(key(root+7), bar.At(2), 2, bar.Velocity(90))
}

// Bass128 is the quarter-eighth shuffle bass for 12/8 songs.
func Bass128(p phrase.Builder, bar arrangement.Bar) {
	root, _, fifth := triad(bar, -24)
	base := bar.Velocity(95)
	line := sequence(
		[3]float64{float64(root), 1, float64(base)},
		[3]float64{float64(fifth), 0.5, float64(base - 10)},
		[3]float64{float64(root), 1, float64(base - 5)},
		[3]float64{float64(fifth), 0.5, float64(base - 10)},
		[3]float64{float64(root), 0.5, float64(base - 5)},
		[3]float64{float64(root + 2), 0.5, float64(base - 10)},
	)
	for _, s := range line {
		p.Note(key(s.key), bar.At(s.offset), s.duration, s.velocity)
	}
}

// RhythmGuitar strums the chord on every beat, accenting 2 and 4.
func RhythmGuitar(p phrase.Builder, bar arrangement.Bar) {
	base := bar.Velocity(75)
	accent := bar.Velocity(85)
	for beat := 0; beat < 4; beat++ {
		velocity := base
		if beat%2 == 1 {
			velocity = accent
		}
		p.Chord(chordKeys(bar, 0), bar.At(float64(beat)), 1, velocity)
	}
}

// RhythmBoomChick plays a low root on 1 and 3 and the chord on 2 and 4.
func RhythmBoomChick(p phrase.Builder, bar arrangement.Bar) {
	base := bar.Velocity(70)
	accent := bar.Velocity(90)
	root, _, _ := triad(bar, 0)
	for beat := 0; beat < 4; beat++ {
		t := bar.At(float64(beat))
		if beat%2 == 0 {
			p.Note(key(root-12), t, 0.5, base)
			continue
		}
		for _, k := range chordKeys(bar, 0) {
			p.Note(k, t, 0.5, accent)
			p.Note(k, t+0.5, 0.5, base-10)
		}
	}
}

// RhythmMuted is the boom-chick with muted strokes after every hit.
func RhythmMuted(p phrase.Builder, bar arrangement.Bar) {
	base := bar.Velocity(75)
	accent := bar.Velocity(95)
	root, _, _ := triad(bar, 0)
	for beat := 0; beat < 4; beat++ {
		t := bar.At(float64(beat))
		if beat%2 == 0 {
			p.Note(key(root-12), t, 0.45, accent)
			p.Chord(chordKeys(bar, 0), t+0.45, 0.05, base-20)
			continue
		}
		for _, k := range chordKeys(bar, 0) {
			p.Note(k, t, 0.4, accent)
			p.Note(k, t+0.4, 0.1, base-15)
		}
	}
}

// Rhythm128 strums down on the beat and up on the off-beat.
func Rhythm128(p phrase.Builder, bar arrangement.Bar) {
	base := bar.Velocity(85)
	for beat := 0; beat < 4; beat++ {
		t := bar.At(float64(beat))
		p.Chord(chordKeys(bar, 0), t, 0.3, base)
		p.Chord(chordKeys(bar, 0), t+0.5, 0.2, base-10)
	}
}

// RhythmEighths is a short chord stab on each beat.
func RhythmEighths(p phrase.Builder, bar arrangement.Bar) {
	for beat := 0; beat < 4; beat++ {
		p.Chord(chordKeys(bar, 0), bar.At(float64(beat)), 0.5, bar.Velocity(70))
	}
}

func backbeat(p phrase.Builder, bar arrangement.Bar, kickVel, snareVel int, length float64) {
	p.Note(constants.Kick, bar.At(0), length, kickVel)
	p.Note(constants.Kick, bar.At(2), length, kickVel-5)
	p.Note(constants.Snare, bar.At(1), length, snareVel)
	p.Note(constants.Snare, bar.At(3), length, snareVel)
}

func eighths(p phrase.Builder, bar arrangement.Bar, drum uint8, velocity func(i int) int) {
	for i := 0; i < 8; i++ {
		p.Note(drum, bar.At(float64(i)*0.5), 0.5, velocity(i))
	}
}

// Drums varies the cymbal by section: driving hats in the chorus with a
// crash every other bar, ride in the bridge.
func Drums(p phrase.Builder, bar arrangement.Bar) {
	kick := bar.Velocity(100)
	snare := bar.Velocity(90)
	hat := bar.Velocity(70)
	backbeat(p, bar, kick, snare, 1)

	switch bar.Kind {
	case arrangement.Chorus:
		eighths(p, bar, constants.HiHat, func(i int) int {
			if i%2 == 0 {
				return hat
			}
			return hat - 10
		})
		if bar.Local%2 == 0 {
			p.Note(constants.Crash, bar.At(0), 1, kick)
		}
	case arrangement.Bridge:
		eighths(p, bar, constants.Ride, func(int) int { return hat - 5 })
	default:
		eighths(p, bar, constants.HiHat, func(i int) int {
			if i%2 == 0 {
				return hat - 5
			}
			return hat - 15
		})
	}
}

// DrumsFill adds a tom fill into a crash at the end of every four bars.
func DrumsFill(p phrase.Builder, bar arrangement.Bar) {
	kick := bar.Velocity(100)
	snare := bar.Velocity(95)
	hat := bar.Velocity(75)
	backbeat(p, bar, kick, snare, 1)

	switch bar.Kind {
	case arrangement.Chorus:
		eighths(p, bar, constants.HiHat, func(i int) int {
			if i%2 == 0 {
				return hat
			}
			return hat - 10
		})
		if bar.Local%4 == 0 {
			p.Note(constants.Crash, bar.At(0), 1, kick)
		}
	case arrangement.Bridge:
		eighths(p, bar, constants.Ride, func(int) int { return hat - 5 })
	default:
		eighths(p, bar, constants.HiHat, func(i int) int {
			if i%2 == 0 {
				return hat - 5
			}
			return hat - 15
		})
	}

	if (bar.Local+1)%4 == 0 {
		fill := bar.Velocity(90)
		for i, tom := range []uint8{constants.HighTom, constants.MidTom, constants.LowTom} {
			p.Note(tom, bar.At(3+float64(i)*0.25), 0.25, fill)
		}
		// lands on the next downbeat
		p.Note(constants.Crash, bar.At(4), 1, bar.Velocity(100))
	}
}

// DrumsTemplate is the plain backbeat under straight eighth hats.
func DrumsTemplate(p phrase.Builder, bar arrangement.Bar) {
	backbeat(p, bar, bar.Velocity(100), bar.Velocity(90), 1)
	eighths(p, bar, constants.HiHat, func(int) int { return bar.Velocity(70) })
}

// DrumsBasic is kick on 1 and the and of 3, snare on 2 and 4, quarter hats.
func DrumsBasic(p phrase.Builder, bar arrangement.Bar) {
	p.Note(constants.Kick, bar.At(0), 1, bar.Velocity(100))
	p.Note(constants.Kick, bar.At(2.5), 1, bar.Velocity(100))
	p.Note(constants.Snare, bar.At(1), 1, bar.Velocity(90))
	p.Note(constants.Snare, bar.At(3), 1, bar.Velocity(90))
	for beat := 0; beat < 4; beat++ {
		p.Note(constants.HiHat, bar.At(float64(beat)), 0.5, bar.Velocity(80))
	}
}

// Drums128 plays triplet hats over a half-length backbeat.
func Drums128(p phrase.Builder, bar arrangement.Bar) {
	base := bar.Velocity(90)
	backbeat(p, bar, base, base, 0.5)
	for i := 0; i < 12; i++ {
		p.Note(constants.HiHat, bar.At(float64(i)*0.333), 0.3, base-20)
	}
}

// EDMRhythm pulses middle C on every third eighth.
func EDMRhythm(p phrase.Builder, bar arrangement.Bar) {
	for i := 0; i < 8; i++ {
		if i%3 == 0 {
			p.Note(60, bar.At(float64(i)*0.5), 0.5, bar.Velocity(90))
		}
	}
}

// Pad holds the chord for the whole bar, quietly.
func Pad(p phrase.Builder, bar arrangement.Bar) {
	p.Chord(chordKeys(bar, 0), bar.At(0), bar.Beats, bar.Velocity(60))
}
