package sample

import (
	"sort"

	"github.com/jsphweid/danseband/constants"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Create cuts a preview of the first bars of a file. Events at tick 0 that
// set a track up are always kept, notes still sounding at the cut-off are
// released there, and every track is closed.
func Create(mf *smf.SMF, bars int, ticksPerBar uint32) *smf.SMF {
	res := smf.New()
	res.TimeFormat = mf.TimeFormat
	cutoff := uint64(bars) * uint64(ticksPerBar)

	for _, track := range mf.Tracks {
		var newTrack smf.Track
		var absTicks, lastKept uint64
		sounding := map[[2]uint8]bool{}

		for _, evt := range track {
			absTicks += uint64(evt.Delta)
			if absTicks >= cutoff && absTicks > 0 {
				break
			}
			if isEndOfTrack(evt.Message) {
				continue
			}

			var ch, key, vel uint8
			msg := midi.Message(evt.Message)
			switch {
			case msg.GetNoteStart(&ch, &key, &vel):
				sounding[[2]uint8{ch, key}] = true
			case msg.GetNoteEnd(&ch, &key):
				delete(sounding, [2]uint8{ch, key})
			}
			newTrack.Add(uint32(absTicks-lastKept), evt.Message)
			lastKept = absTicks
		}

		end := cutoff
		if end < lastKept {
			end = lastKept
		}
		delta := uint32(end - lastKept)
		for _, k := range releaseOrder(sounding) {
			newTrack.Add(delta, midi.NoteOff(k[0], k[1]))
			delta = 0
		}
		newTrack.Close(delta)
		res.Tracks = append(res.Tracks, newTrack)
	}

	return res
}

// releaseOrder sorts sounding notes by channel, then key.
func releaseOrder(sounding map[[2]uint8]bool) [][2]uint8 {
	res := make([][2]uint8, 0, len(sounding))
	for k := range sounding {
		res = append(res, k)
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i][0] != res[j][0] {
			return res[i][0] < res[j][0]
		}
		return res[i][1] < res[j][1]
	})
	return res
}

func isEndOfTrack(m smf.Message) bool {
	return len(m) >= 2 && m[0] == 0xFF && m[1] == 0x2F
}

// TicksPerBar is the length of a 4/4 bar at the file's resolution.
func TicksPerBar(mf *smf.SMF) uint32 {
	if mt, ok := mf.TimeFormat.(smf.MetricTicks); ok && mt.Resolution() > 0 {
		return uint32(mt.Resolution()) * constants.BeatsPerBar
	}
	return constants.TicksPerQuarter * constants.BeatsPerBar
}
