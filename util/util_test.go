package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(0, Clamp(-5, 0, 127))
	assert.Equal(127, Clamp(140, 0, 127))
	assert.Equal(64, Clamp(64, 0, 127))
	assert.Equal(0.5, Clamp(0.5, 0.0, 1.0))
}

func TestSortedKeys(t *testing.T) {
	m := map[string]int{"verse": 1, "chorus": 2, "bridge": 3}
	assert.Equal(t, []string{"bridge", "chorus", "verse"}, SortedKeys(m))
}

func TestSum(t *testing.T) {
	assert.Equal(t, uint64(10), Sum([]uint8{1, 2, 3, 4}))
}

func TestScale(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(100, Scale(100, 1.0))
	assert.Equal(132, Scale(100, 1.32))
	assert.Equal(76, Scale(85, 0.9))
}
