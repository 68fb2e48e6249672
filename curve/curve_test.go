package curve

import (
	"fmt"
	"testing"

	"github.com/jsphweid/danseband/constants"
	"github.com/stretchr/testify/assert"
)

var allKinds = []Kind{Vibrato, Scoop, CountryBend, Fall, Swell, BendRelease}

func TestSampleCountAndSpan(t *testing.T) {
	for _, kind := range allKinds {
		for _, steps := range []int{1, 2, 16, 32, 64} {
			for _, duration := range []float64{0.5, 1, 2, 4} {
				name := fmt.Sprintf("%v/%d/%v", kind, steps, duration)
				t.Run(name, func(t *testing.T) {
					spec := Default(kind, 8, duration)
					spec.Steps = steps
					samples := Collect(spec)

					assert := assert.New(t)
					assert.Len(samples, steps)

					lo := spec.origin()
					hi := lo + spec.span()
					for i, s := range samples {
						assert.GreaterOrEqual(s.Time, lo)
						assert.Less(s.Time, hi)
						if i > 0 {
							assert.GreaterOrEqual(s.Time, samples[i-1].Time)
						}
						assert.GreaterOrEqual(s.Value, 0)
						assert.LessOrEqual(s.Value, spec.Max())
					}
				})
			}
		}
	}
}

func TestIteratorIsNotRestartable(t *testing.T) {
	it := New(Default(Vibrato, 0, 1))
	count := 0
	for {
		if _, ok := it.Next(); !ok {
			break
		}
		count++
	}
	assert.Equal(t, 32, count)
	_, ok := it.Next()
	assert.False(t, ok)
}

func TestScoopResetsToCenter(t *testing.T) {
	samples := Collect(Default(Scoop, 4, 1))
	assert := assert.New(t)
	assert.Equal(constants.PitchBendCenter, samples[0].Value)
	assert.Equal(constants.PitchBendCenter, samples[len(samples)-1].Value)
	assert.Greater(samples[len(samples)-2].Value, constants.PitchBendCenter)
	assert.Less(samples[len(samples)-1].Time, 4.1)
}

func TestFallEndsAtCenterMinusRange(t *testing.T) {
	spec := Default(Fall, 2, 2)
	samples := Collect(spec)
	assert := assert.New(t)
	assert.Equal(constants.PitchBendCenter-2048, samples[len(samples)-1].Value)
	assert.InDelta(3.8, samples[0].Time, 1e-9)
}

func TestVibratoFormula(t *testing.T) {
	samples := Collect(Default(Vibrato, 0, 2))
	assert := assert.New(t)
	// sin(2π*4*i/32) peaks at i=2
	assert.Equal(64, samples[0].Value)
	assert.Equal(96, samples[2].Value)
	assert.Equal(32, samples[6].Value)
	assert.InDelta(2.0/32, samples[1].Time, 1e-9)
}

func TestCountryBendWavers(t *testing.T) {
	samples := Collect(Default(CountryBend, 0, 1))
	assert := assert.New(t)
	assert.Len(samples, 64)
	assert.Equal(constants.PitchBendCenter+1024, samples[4].Value)
	assert.Equal(constants.PitchBendCenter-1024, samples[12].Value)
}

func TestSwellClampsAboveRange(t *testing.T) {
	spec := Default(Swell, 0, 4)
	scale := 1.2
	spec.Depth = int(127 * scale)
	samples := Collect(spec)
	assert := assert.New(t)
	assert.Equal(0, samples[0].Value)
	assert.Equal(127, samples[len(samples)-1].Value)
	assert.InDelta(31.0/32, samples[len(samples)-1].Time, 1e-9)
}

func TestVibratoClampsBelowZero(t *testing.T) {
	spec := Default(Vibrato, 0, 1)
	spec.Depth = 100
	for _, s := range Collect(spec) {
		assert.GreaterOrEqual(t, s.Value, 0)
		assert.LessOrEqual(t, s.Value, 127)
	}
}

func TestBendReleaseGoesUpAndBack(t *testing.T) {
	samples := Collect(Default(BendRelease, 0, 2))
	assert := assert.New(t)
	assert.Equal(constants.PitchBendCenter, samples[0].Value)
	assert.Equal(constants.PitchBendCenter+1024, samples[16].Value)
	assert.Less(samples[31].Value, samples[16].Value)
}

func TestZeroStepsIsEmpty(t *testing.T) {
	spec := Default(Vibrato, 0, 1)
	spec.Steps = 0
	assert.Empty(t, Collect(spec))
}
