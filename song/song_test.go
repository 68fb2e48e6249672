package song

import (
	"testing"

	"github.com/jsphweid/danseband/constants"
	"github.com/jsphweid/danseband/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func twoTracks() *Document {
	return New("test", 116, Meter{}, []model.Instrument{
		{Role: model.Bass, Name: "Bass", Program: 34, Volume: 100, Pan: 64},
		{Role: model.Drums, Name: "Drums", Channel: constants.DrumChannel, Volume: 95, Pan: 64},
	})
}

func TestClampOnWrite(t *testing.T) {
	d := twoTracks()
	d.AddNote(0, 0, 40, 0, 1, 200)
	d.AddNote(0, 0, 40, 1, -1, -3)
	d.AddController(0, 0, 0, constants.CCModulation, 160)
	d.AddController(0, 0, 0, constants.CCModulation, -12)
	d.AddPitchBend(0, 0, 0, 20000)
	d.AddPitchBend(0, 0, 0, -1)

	assert := assert.New(t)
	assert.Equal(uint8(127), d.Events[0].Velocity)
	assert.Equal(uint8(1), d.Events[1].Velocity)
	assert.Equal(0.0, d.Events[1].Duration)
	assert.Equal(uint16(127), d.Events[2].Value)
	assert.Equal(uint16(0), d.Events[3].Value)
	assert.Equal(uint16(constants.PitchBendMax), d.Events[4].Value)
	assert.Equal(uint16(0), d.Events[5].Value)
}

func TestSMFPutsSetupBeforeEvents(t *testing.T) {
	d := twoTracks()
	d.AddNote(0, 0, 36, 0, 0.5, 100)
	d.AddNote(1, constants.DrumChannel, constants.Kick, 0, 1, 100)

	s, err := d.SMF()
	require.NoError(t, err)
	require.Len(t, s.Tracks, 2)

	assert := assert.New(t)
	for i, track := range s.Tracks {
		var tempos, programs int
		seenNote := false
		for _, ev := range track {
			var bpm float64
			var ch, prog uint8
			switch {
			case ev.Message.GetMetaTempo(&bpm):
				assert.False(seenNote)
				assert.InDelta(116.0, bpm, 0.01)
				tempos++
			case midi.Message(ev.Message).GetProgramChange(&ch, &prog):
				assert.False(seenNote)
				assert.Equal(d.Tracks[i].Program, prog)
				assert.Equal(d.Tracks[i].Channel, ch)
				programs++
			case midi.Message(ev.Message).Is(midi.NoteOnMsg):
				seenNote = true
			}
		}
		assert.Equal(1, tempos, "track %d", i)
		assert.Equal(1, programs, "track %d", i)
		assert.True(seenNote)
	}
}

func TestNoteOffBeforeNoteOnAtSameTick(t *testing.T) {
	d := twoTracks()
	d.AddNote(0, 0, 40, 0, 1, 90)
	d.AddNote(0, 0, 40, 1, 1, 90)

	msgs := d.trackMessages(0)
	var kinds []string
	var ticks []uint32
	for _, m := range msgs {
		var ch, key, vel uint8
		switch {
		case midi.Message(m.msg).GetNoteStart(&ch, &key, &vel):
			kinds = append(kinds, "on")
			ticks = append(ticks, m.tick)
		case midi.Message(m.msg).GetNoteEnd(&ch, &key):
			kinds = append(kinds, "off")
			ticks = append(ticks, m.tick)
		}
	}
	assert.Equal(t, []string{"on", "off", "on", "off"}, kinds)
	assert.Equal(t, []uint32{0, 960, 960, 1920}, ticks)
}

func TestZeroLengthNotesAreLeftOut(t *testing.T) {
	d := twoTracks()
	d.AddNote(0, 0, 40, 2, -1, 100)
	d.AddNote(0, 0, 41, -0.5, 0.5, 100)
	d.AddNote(0, 0, 42, -0.5, 1, 100)

	assert := assert.New(t)
	assert.Equal(0.0, d.Events[1].Time)
	assert.Equal(0.0, d.Events[1].Duration)
	assert.Equal(0.0, d.Events[2].Time)
	assert.Equal(0.5, d.Events[2].Duration)
	assert.Equal(1, d.Stats()[0].Notes)

	s, err := d.SMF()
	require.NoError(t, err)

	type noteMsg struct {
		on   bool
		key  uint8
		tick uint32
	}
	var got []noteMsg
	var tick uint32
	for _, ev := range s.Tracks[0] {
		tick += ev.Delta
		var ch, key, vel uint8
		switch msg := midi.Message(ev.Message); {
		case msg.GetNoteStart(&ch, &key, &vel):
			got = append(got, noteMsg{true, key, tick})
		case msg.GetNoteEnd(&ch, &key):
			got = append(got, noteMsg{false, key, tick})
		}
	}
	assert.Equal([]noteMsg{{true, 42, 0}, {false, 42, 480}}, got)
}

func TestPitchBendIsCentered(t *testing.T) {
	d := twoTracks()
	d.AddPitchBend(0, 0, 0.5, constants.PitchBendCenter+2048)

	var rel int16
	var abs uint16
	found := false
	for _, m := range d.trackMessages(0) {
		var ch uint8
		if m.tick == 480 && midi.Message(m.msg).GetPitchBend(&ch, &rel, &abs) {
			found = true
		}
	}
	assert := assert.New(t)
	assert.True(found)
	assert.Equal(int16(2048), rel)
	assert.Equal(uint16(constants.PitchBendCenter+2048), abs)
}

func TestNegativeStartIsClampedToZero(t *testing.T) {
	assert.Equal(t, uint32(0), toTicks(-0.5))
	assert.Equal(t, uint32(320), toTicks(1.0/3))
}

func TestSMFRejectsEmptySong(t *testing.T) {
	_, err := New("empty", 120, Meter{}, nil).SMF()
	assert.Error(t, err)
}

func TestStatsAndBars(t *testing.T) {
	d := twoTracks()
	d.AddNote(0, 0, 36, 0, 0.5, 100)
	d.AddNote(0, 0, 43, 7, 1, 100)
	d.AddController(0, 0, 1, constants.CCExpression, 100)
	d.AddPitchBend(1, 9, 1, constants.PitchBendCenter)
	d.AddLyric(0, 0, "hav")

	stats := d.Stats()
	assert := assert.New(t)
	assert.Equal(model.TrackStats{Name: "Bass", Notes: 2, Controllers: 1, Lyrics: 1}, stats[0])
	assert.Equal(model.TrackStats{Name: "Drums", PitchBends: 1}, stats[1])
	assert.Equal(2, d.Bars())
}

func TestMetricTicks(t *testing.T) {
	d := twoTracks()
	s, err := d.SMF()
	require.NoError(t, err)
	assert.Equal(t, smf.MetricTicks(constants.TicksPerQuarter), s.TimeFormat)
}
