package chord

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jsphweid/danseband/model"
	"github.com/pkg/errors"
)

// C4 is MIDI key 60
const DefaultOctave = 4

var pitchClasses = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

var qualities = map[string][2]int{
	"":    {4, 7},
	"m":   {3, 7},
	"dim": {3, 6},
	"aug": {4, 8},
}

func CreateChordKey(notes []uint8) string {
	sorted := append([]uint8(nil), notes...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})
	var res string
	for i, note := range sorted {
		res += fmt.Sprintf("%v", note)
		if i < len(sorted)-1 {
			res += "-"
		}
	}
	return res
}

func Key(c model.Chord) string {
	return CreateChordKey(c.Notes())
}

// Parse turns a symbol like "Db", "Bbm3" or "F#dim" into a root-position
// triad. The trailing digit is the octave of the root (default 4).
func Parse(symbol string) (model.Chord, error) {
	var c model.Chord
	s := strings.TrimSpace(symbol)
	if s == "" {
		return c, errors.New("empty chord symbol")
	}

	pc, ok := pitchClasses[s[0]]
	if !ok {
		return c, errors.Errorf("unknown chord root in %q", symbol)
	}
	s = s[1:]

	switch {
	case strings.HasPrefix(s, "#"), strings.HasPrefix(s, "♯"):
		pc++
		s = strings.TrimPrefix(strings.TrimPrefix(s, "#"), "♯")
	case strings.HasPrefix(s, "b"), strings.HasPrefix(s, "♭"):
		pc--
		s = strings.TrimPrefix(strings.TrimPrefix(s, "b"), "♭")
	}

	octave := DefaultOctave
	if i := strings.IndexAny(s, "0123456789"); i >= 0 {
		o, err := strconv.Atoi(s[i:])
		if err != nil {
			return c, errors.Wrapf(err, "bad octave in %q", symbol)
		}
		octave = o
		s = s[:i]
	}

	intervals, ok := qualities[s]
	if !ok {
		return c, errors.Errorf("unknown chord quality %q in %q", s, symbol)
	}

	root := (octave+1)*12 + pc
	if root < 0 || root+intervals[1] > 127 {
		return c, errors.Errorf("chord %q is outside the MIDI key range", symbol)
	}
	return model.Chord{uint8(root), uint8(root + intervals[0]), uint8(root + intervals[1])}, nil
}

func MustParse(symbol string) model.Chord {
	c, err := Parse(symbol)
	if err != nil {
		panic(err)
	}
	return c
}
