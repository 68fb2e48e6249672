package arrangement

import (
	"testing"

	"github.com/jsphweid/danseband/model"
	"github.com/jsphweid/danseband/phrase"
	"github.com/jsphweid/danseband/song"
	"github.com/stretchr/testify/assert"
)

var (
	cMajor = model.Chord{60, 64, 67}
	aMinor = model.Chord{57, 60, 64}
	fMajor = model.Chord{53, 57, 60}
)

func newDoc() *song.Document {
	return song.New("arrangement", 112, song.CommonTime, []model.Instrument{
		{Role: model.Bass, Name: "Bass", Channel: 0},
		{Role: model.Accordion, Name: "Accordion", Channel: 1},
	})
}

func rootBass(p phrase.Builder, bar Bar) {
	p.Note(bar.Chord.Root()-24, bar.At(0), 1, 100)
}

func TestRunPlaysOneRootPerBar(t *testing.T) {
	doc := newDoc()
	seq := Sequencer{Doc: doc, Patterns: map[model.Role]PatternFunc{model.Bass: rootBass}}
	bars := seq.Run([]Section{{Kind: Verse, Bars: 4, Chords: []model.Chord{cMajor}, Instruments: []model.Role{model.Bass}}})

	notes := doc.Notes(0)
	assert := assert.New(t)
	assert.Equal(4, bars)
	assert.Len(notes, 4)
	for i, n := range notes {
		assert.Equal(uint8(36), n.Key)
		assert.Equal(float64(i*4), n.Time)
		assert.Equal(uint8(100), n.Velocity)
	}
}

func TestRunCyclesChordsAndLooksAhead(t *testing.T) {
	var got []Bar
	record := func(_ phrase.Builder, bar Bar) { got = append(got, bar) }

	seq := Sequencer{Doc: newDoc(), Patterns: map[model.Role]PatternFunc{model.Bass: record}}
	seq.Run([]Section{{Kind: Chorus, Bars: 4, Chords: []model.Chord{cMajor, aMinor, fMajor}, Instruments: []model.Role{model.Bass}}})

	assert := assert.New(t)
	assert.Len(got, 4)
	assert.Equal([]model.Chord{cMajor, aMinor, fMajor, cMajor}, []model.Chord{got[0].Chord, got[1].Chord, got[2].Chord, got[3].Chord})
	assert.Equal(aMinor, got[0].Next)
	assert.Equal(cMajor, got[2].Next)
	assert.Equal(aMinor, got[3].Next)
	assert.Equal(1.2, got[0].Intensity)
}

func TestRunCallsEveryInstrumentEveryBar(t *testing.T) {
	calls := map[model.Role]int{}
	count := func(role model.Role) PatternFunc {
		return func(p phrase.Builder, bar Bar) { calls[role]++ }
	}
	seq := Sequencer{Doc: newDoc(), Patterns: map[model.Role]PatternFunc{
		model.Bass:      count(model.Bass),
		model.Accordion: count(model.Accordion),
	}}
	seq.Run([]Section{
		{Kind: Intro, Bars: 2, Chords: []model.Chord{cMajor}, Instruments: []model.Role{model.Accordion}},
		{Kind: Verse, Bars: 3, Chords: []model.Chord{cMajor}, Instruments: []model.Role{model.Bass, model.Accordion}},
	})

	assert.Equal(t, map[model.Role]int{model.Bass: 3, model.Accordion: 5}, calls)
}

func TestRunPassesTrackAndChannel(t *testing.T) {
	doc := newDoc()
	seq := Sequencer{Doc: doc, Patterns: map[model.Role]PatternFunc{model.Accordion: rootBass}}
	seq.Run([]Section{{Kind: Verse, Bars: 1, Chords: []model.Chord{cMajor}, Instruments: []model.Role{model.Accordion}}})

	assert := assert.New(t)
	assert.Len(doc.Events, 1)
	assert.Equal(1, doc.Events[0].Track)
	assert.Equal(uint8(1), doc.Events[0].Channel)
}

func TestRunSkipsEmptySectionsButKeepsTime(t *testing.T) {
	doc := newDoc()
	seq := Sequencer{Doc: doc, Patterns: map[model.Role]PatternFunc{model.Bass: rootBass}}
	bars := seq.Run([]Section{
		{Kind: Intro, Bars: 2, Instruments: []model.Role{model.Bass}},
		{Kind: Verse, Bars: 0, Chords: []model.Chord{cMajor}, Instruments: []model.Role{model.Bass}},
		{Kind: Verse, Bars: 1, Chords: []model.Chord{cMajor}, Instruments: []model.Role{model.Bass}},
	})

	assert := assert.New(t)
	assert.Equal(3, bars)
	assert.Len(doc.Events, 1)
	assert.Equal(8.0, doc.Events[0].Time)
}

func TestRunHonoursEntryBar(t *testing.T) {
	doc := newDoc()
	seq := Sequencer{Doc: doc, Patterns: map[model.Role]PatternFunc{model.Bass: rootBass}}
	seq.Run([]Section{{
		Kind:        Intro,
		Bars:        4,
		Chords:      []model.Chord{cMajor},
		Instruments: []model.Role{model.Bass},
		Enter:       map[model.Role]int{model.Bass: 2},
	}})

	notes := doc.Notes(0)
	assert.Len(t, notes, 2)
	assert.Equal(t, 8.0, notes[0].Time)
}

func TestRunIgnoresRolesWithoutTrackOrPattern(t *testing.T) {
	doc := newDoc()
	seq := Sequencer{Doc: doc, Patterns: map[model.Role]PatternFunc{model.Drums: rootBass}}
	bars := seq.Run([]Section{{Kind: Verse, Bars: 2, Chords: []model.Chord{cMajor}, Instruments: []model.Role{model.Drums, model.Bass}}})

	assert.Equal(t, 2, bars)
	assert.Empty(t, doc.Events)
}

func TestRunOffset(t *testing.T) {
	doc := newDoc()
	seq := Sequencer{Doc: doc, Patterns: map[model.Role]PatternFunc{model.Bass: rootBass}, Offset: 3}
	seq.Run([]Section{{Kind: Verse, Bars: 1, Chords: []model.Chord{cMajor}, Instruments: []model.Role{model.Bass}}})
	assert.Equal(t, 12.0, doc.Events[0].Time)
}

func TestIntensity(t *testing.T) {
	tests := []struct {
		name    string
		section Section
		local   int
		want    float64
	}{
		{name: "verse default", section: Section{Kind: Verse}, want: 1.0},
		{name: "chorus default", section: Section{Kind: Chorus}, want: 1.2},
		{name: "bridge default", section: Section{Kind: Bridge}, want: 1.1},
		{name: "outro default", section: Section{Kind: Outro}, want: 0.9},
		{name: "explicit", section: Section{Kind: Chorus, Intensity: 1.0}, want: 1.0},
		{name: "fading", section: Section{Kind: Verse, Fade: &Fade{Step: 0.25, Floor: 0.5}}, local: 1, want: 0.75},
		{name: "fade floor", section: Section{Kind: Verse, Fade: &Fade{Step: 0.25, Floor: 0.5}}, local: 3, want: 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.section.intensityAt(tt.local), 1e-9)
		})
	}
}

func TestBarVelocity(t *testing.T) {
	bar := Bar{Index: 2, Beats: 4, Intensity: 0.9}
	assert := assert.New(t)
	assert.Equal(8.0, bar.Start())
	assert.Equal(9.5, bar.At(1.5))
	assert.Equal(76, bar.Velocity(85))
}
