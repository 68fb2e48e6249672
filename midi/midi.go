package midi

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/jsphweid/danseband/constants"
	"github.com/jsphweid/danseband/model"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func ReadMidiFile(filepath string) (*smf.SMF, error) {
	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, errors.Wrap(err, "error reading midi file")
	}
	return Read(bytes.NewReader(dat))
}

func Read(r io.Reader) (s *smf.SMF, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if rec := recover(); rec != nil {
			s, e = nil, errors.Errorf("error parsing midi file... %v", rec)
		}
	}()

	res, err := smf.ReadFrom(r)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing midi file")
	}
	return res, nil
}

func resolution(s *smf.SMF) uint32 {
	if mt, ok := s.TimeFormat.(smf.MetricTicks); ok && mt.Resolution() > 0 {
		return uint32(mt.Resolution())
	}
	return constants.TicksPerQuarter
}

// Summarize counts what each track of a file contains.
func Summarize(s *smf.SMF) model.FileSummary {
	var res model.FileSummary
	for i, track := range s.Tracks {
		stats := model.TrackStats{Name: fmt.Sprintf("Track %d", i)}
		var ticks uint32
		for _, ev := range track {
			ticks += ev.Delta
			msg := midi.Message(ev.Message)

			var bpm float64
			var text string
			var ch, key, vel, cc, val uint8
			var rel int16
			var abs uint16
			switch {
			case ev.Message.GetMetaTempo(&bpm):
				if res.Tempo == 0 {
					res.Tempo = bpm
				}
			case ev.Message.GetMetaTrackName(&text):
				stats.Name = text
			case ev.Message.GetMetaLyric(&text):
				stats.Lyrics++
			case msg.GetNoteStart(&ch, &key, &vel):
				stats.Notes++
			case msg.GetControlChange(&ch, &cc, &val):
				stats.Controllers++
			case msg.GetPitchBend(&ch, &rel, &abs):
				stats.PitchBends++
			}
		}
		if ticks > res.Ticks {
			res.Ticks = ticks
		}
		res.Tracks = append(res.Tracks, stats)
	}

	perBar := resolution(s) * constants.BeatsPerBar
	res.Bars = int((res.Ticks + perBar - 1) / perBar)
	return res
}

// SummarizeFile reads path and summarizes it.
func SummarizeFile(path string) (model.FileSummary, error) {
	s, err := ReadMidiFile(path)
	if err != nil {
		return model.FileSummary{}, err
	}
	res := Summarize(s)
	res.Path = path
	return res, nil
}
