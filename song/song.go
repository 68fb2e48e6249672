// Package song holds the in-memory event collection of one arrangement and
// turns it into a Standard MIDI File.
package song

import (
	"log/slog"
	"math"
	"sort"

	"github.com/jsphweid/danseband/constants"
	"github.com/jsphweid/danseband/model"
	"github.com/jsphweid/danseband/util"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

type Meter struct {
	Numerator   uint8 `yaml:"numerator" json:"numerator"`
	Denominator uint8 `yaml:"denominator" json:"denominator"`
}

var CommonTime = Meter{4, 4}

type Document struct {
	Name   string
	Tempo  float64
	Meter  Meter
	Tracks []model.Instrument
	Events []model.Event
}

func New(name string, tempo float64, meter Meter, tracks []model.Instrument) *Document {
	if meter.Numerator == 0 {
		meter = CommonTime
	}
	return &Document{Name: name, Tempo: tempo, Meter: meter, Tracks: tracks}
}

func (d *Document) TrackFor(role model.Role) (int, bool) {
	for i, inst := range d.Tracks {
		if inst.Role == role {
			return i, true
		}
	}
	return 0, false
}

// AddNote records a note. A note starting before the song start is cut to
// begin at beat 0.
func (d *Document) AddNote(track int, channel uint8, key uint8, start, duration float64, velocity int) {
	if start < 0 {
		duration += start
		start = 0
	}
	if duration < 0 {
		slog.Debug("negative note duration clamped", "track", track, "key", key, "start", start)
		duration = 0
	}
	d.Events = append(d.Events, model.Event{
		Kind:     model.NoteEvent,
		Track:    track,
		Channel:  channel,
		Time:     start,
		Key:      util.Min(key, 127),
		Duration: duration,
		Velocity: uint8(util.Clamp(velocity, 1, 127)),
	})
}

func (d *Document) AddController(track int, channel uint8, time float64, controller uint8, value int) {
	d.Events = append(d.Events, model.Event{
		Kind:       model.ControllerEvent,
		Track:      track,
		Channel:    channel,
		Time:       time,
		Controller: controller,
		Value:      uint16(util.Clamp(value, 0, constants.ControllerMax)),
	})
}

func (d *Document) AddPitchBend(track int, channel uint8, time float64, value int) {
	d.Events = append(d.Events, model.Event{
		Kind:    model.PitchBendEvent,
		Track:   track,
		Channel: channel,
		Time:    time,
		Value:   uint16(util.Clamp(value, 0, constants.PitchBendMax)),
	})
}

func (d *Document) AddLyric(track int, time float64, text string) {
	d.Events = append(d.Events, model.Event{
		Kind:  model.LyricEvent,
		Track: track,
		Time:  time,
		Text:  text,
	})
}

func toTicks(beats float64) uint32 {
	if beats <= 0 {
		return 0
	}
	return uint32(math.Round(beats * constants.TicksPerQuarter))
}

// audible reports whether a note lasts at least one tick once placed on the
// grid. Shorter notes are left out of the file.
func audible(evt model.Event) bool {
	return toTicks(evt.Time+evt.Duration) > toTicks(evt.Time)
}

// wire message at an absolute tick; order breaks ties so note-offs land
// before note-ons on the same tick
type timed struct {
	tick  uint32
	order int
	msg   []byte
}

const (
	orderSetup = iota
	orderNoteOff
	orderControl
	orderNoteOn
)

func (d *Document) setupMessages(inst model.Instrument) [][]byte {
	ch := inst.Channel
	msgs := [][]byte{
		smf.MetaTrackSequenceName(inst.Name),
		smf.MetaTempo(d.Tempo),
		smf.MetaMeter(d.Meter.Numerator, d.Meter.Denominator),
		midi.ControlChange(ch, constants.CCVolume, inst.Volume),
		midi.ControlChange(ch, constants.CCPan, inst.Pan),
		midi.ProgramChange(ch, inst.Program),
	}
	if inst.Expressive {
		msgs = append(msgs,
			midi.ControlChange(ch, constants.CCModulation, 0),
			midi.ControlChange(ch, constants.CCExpression, 127),
			midi.Pitchbend(ch, 0),
		)
	}
	return msgs
}

func (d *Document) trackMessages(track int) []timed {
	var res []timed
	for _, msg := range d.setupMessages(d.Tracks[track]) {
		res = append(res, timed{0, orderSetup, msg})
	}

	for _, evt := range d.Events {
		if evt.Track != track {
			continue
		}
		start := toTicks(evt.Time)
		switch evt.Kind {
		case model.NoteEvent:
			if !audible(evt) {
				continue
			}
			end := toTicks(evt.Time + evt.Duration)
			res = append(res,
				timed{start, orderNoteOn, midi.NoteOn(evt.Channel, evt.Key, evt.Velocity)},
				timed{end, orderNoteOff, midi.NoteOff(evt.Channel, evt.Key)},
			)
		case model.ControllerEvent:
			res = append(res, timed{start, orderControl, midi.ControlChange(evt.Channel, evt.Controller, uint8(evt.Value))})
		case model.PitchBendEvent:
			rel := int16(int(evt.Value) - constants.PitchBendCenter)
			res = append(res, timed{start, orderControl, midi.Pitchbend(evt.Channel, rel)})
		case model.LyricEvent:
			res = append(res, timed{start, orderControl, smf.MetaLyric(evt.Text)})
		}
	}

	sort.SliceStable(res, func(i, j int) bool {
		if res[i].tick != res[j].tick {
			return res[i].tick < res[j].tick
		}
		return res[i].order < res[j].order
	})
	return res
}

// SMF builds a format 1 file with one track chunk per instrument.
func (d *Document) SMF() (*smf.SMF, error) {
	if len(d.Tracks) == 0 {
		return nil, errors.New("song has no tracks")
	}
	if d.Tempo <= 0 {
		return nil, errors.Errorf("invalid tempo %v", d.Tempo)
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(constants.TicksPerQuarter)

	for i := range d.Tracks {
		var track smf.Track
		var last uint32
		for _, m := range d.trackMessages(i) {
			track.Add(m.tick-last, m.msg)
			last = m.tick
		}
		track.Close(0)
		if err := s.Add(track); err != nil {
			return nil, errors.Wrapf(err, "could not add track %d", i)
		}
	}
	return s, nil
}

// Bars is the length of the song rounded up to whole bars.
func (d *Document) Bars() int {
	var end float64
	for _, evt := range d.Events {
		end = math.Max(end, evt.Time+evt.Duration)
	}
	return int(math.Ceil(end / constants.BeatsPerBar))
}

// Stats counts what each track will contain once written.
func (d *Document) Stats() []model.TrackStats {
	res := make([]model.TrackStats, len(d.Tracks))
	for i, inst := range d.Tracks {
		res[i].Name = inst.Name
	}
	for _, evt := range d.Events {
		if evt.Track < 0 || evt.Track >= len(res) {
			continue
		}
		st := &res[evt.Track]
		switch evt.Kind {
		case model.NoteEvent:
			if audible(evt) {
				st.Notes++
			}
		case model.ControllerEvent:
			st.Controllers++
		case model.PitchBendEvent:
			st.PitchBends++
		case model.LyricEvent:
			st.Lyrics++
		}
	}
	return res
}

// Notes returns the note events of one track in insertion order.
func (d *Document) Notes(track int) []model.Event {
	var res []model.Event
	for _, evt := range d.Events {
		if evt.Kind == model.NoteEvent && evt.Track == track {
			res = append(res, evt)
		}
	}
	return res
}
