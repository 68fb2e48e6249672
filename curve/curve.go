// Package curve generates controller and pitch-bend curves that approximate
// playing articulations. A curve is a fixed number of evenly spaced samples
// over a window of beats.
package curve

import (
	"math"

	"github.com/jsphweid/danseband/constants"
	"github.com/jsphweid/danseband/util"
)

type Kind uint8

const (
	Vibrato Kind = iota
	Scoop
	CountryBend
	Fall
	Swell
	BendRelease
)

func (k Kind) String() string {
	switch k {
	case Vibrato:
		return "vibrato"
	case Scoop:
		return "scoop"
	case CountryBend:
		return "country-bend"
	case Fall:
		return "fall"
	case Swell:
		return "swell"
	case BendRelease:
		return "bend-release"
	}
	return "unknown"
}

// PitchBend as a Target sends samples to the pitch wheel instead of a
// controller.
const PitchBend = -1

type Spec struct {
	Kind     Kind
	Start    float64
	Duration float64
	Steps    int

	Center int
	// amplitude for oscillating kinds, total travel for ramps
	Depth int
	// full cycles over the whole curve
	Speed float64
	// length in beats of scoops, falls and swells; zero means Duration
	Window float64

	// controller number or PitchBend
	Target int
}

type Sample struct {
	Time  float64
	Value int
}

// Default returns the articulation settings the arrangements were tuned with.
func Default(kind Kind, start, duration float64) Spec {
	s := Spec{Kind: kind, Start: start, Duration: duration, Steps: 32}
	switch kind {
	case Vibrato:
		s.Center, s.Depth, s.Speed = 64, 32, 4
		s.Target = constants.CCModulation
	case Scoop:
		s.Center, s.Depth, s.Window = constants.PitchBendCenter, 2048, 0.1
		s.Target = PitchBend
	case CountryBend:
		s.Center, s.Depth, s.Speed, s.Steps = constants.PitchBendCenter, 1024, 4, 64
		s.Target = PitchBend
	case Fall:
		s.Center, s.Depth, s.Window = constants.PitchBendCenter, 2048, 0.2
		s.Target = PitchBend
	case Swell:
		s.Center, s.Depth, s.Window = 0, 127, 1
		s.Target = constants.CCVolume
	case BendRelease:
		s.Center, s.Depth = constants.PitchBendCenter, 1024
		s.Target = PitchBend
	}
	return s
}

// Max is the largest value the target accepts.
func (s Spec) Max() int {
	if s.Target == PitchBend {
		return constants.PitchBendMax
	}
	return constants.ControllerMax
}

func (s Spec) span() float64 {
	if s.Window > 0 && (s.Kind == Scoop || s.Kind == Fall || s.Kind == Swell) {
		return s.Window
	}
	return s.Duration
}

func (s Spec) origin() float64 {
	if s.Kind == Fall && s.Window > 0 {
		return s.Start + s.Duration - s.Window
	}
	return s.Start
}

// Iterator yields the samples of one curve. It cannot be rewound.
type Iterator struct {
	spec Spec
	i    int
}

func New(spec Spec) *Iterator {
	return &Iterator{spec: spec}
}

func (it *Iterator) Next() (Sample, bool) {
	s := it.spec
	if it.i >= s.Steps {
		return Sample{}, false
	}
	i := it.i
	it.i++

	n := float64(s.Steps)
	t := s.origin() + float64(i)*s.span()/n
	v := util.Clamp(s.value(i), 0, s.Max())
	return Sample{Time: t, Value: v}, true
}

// ramp runs 0..1 over the samples, reaching 1 on the last one
func ramp(i, steps int) float64 {
	if steps < 2 {
		return 0
	}
	return float64(i) / float64(steps-1)
}

func (s Spec) value(i int) int {
	n := float64(s.Steps)
	center := float64(s.Center)
	depth := float64(s.Depth)

	switch s.Kind {
	case Vibrato, CountryBend:
		return s.Center + int(depth*math.Sin(2*math.Pi*s.Speed*float64(i)/n))
	case Scoop:
		if i == s.Steps-1 {
			return s.Center
		}
		return int(center + depth*ramp(i, s.Steps))
	case Fall:
		return int(center - depth*ramp(i, s.Steps))
	case Swell:
		return int(center + depth*ramp(i, s.Steps))
	case BendRelease:
		half := n / 2
		x := float64(i) / half
		if float64(i) >= half {
			x = 2 - x
		}
		return s.Center + int(x*depth)
	}
	return s.Center
}

func Collect(spec Spec) []Sample {
	var res []Sample
	it := New(spec)
	for {
		sample, ok := it.Next()
		if !ok {
			return res
		}
		res = append(res, sample)
	}
}
