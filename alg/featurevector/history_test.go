package featurevector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryVectorAverage(t *testing.T) {
	var h *HistoryVector

	// single value over one generation
	h = NewHistoryVector(1)
	h.Add(0, 0, 1)
	assert.Equal(t, 1.0, h.AveragedValue(1, 0))

	// value of 4 set at generation 2, average over 2 generations is 0
	h = NewHistoryVector(1)
	for i := 0; i < 4; i++ {
		h.Add(2, 0, 1)
	}
	assert.Equal(t, 0.0, h.AveragedValue(2, 0))
	// and over 4 generations it is 2
	assert.Equal(t, 2.0, h.AveragedValue(4, 0))

	// [0 x4, 20 x2, 40 x2] = 15
	h = NewHistoryVector(1)
	h.Add(4, 0, 20)
	h.Add(6, 0, 20)
	assert.Equal(t, int64(120), h.IntegratedValue(8, 0))
	assert.Equal(t, 15.0, h.AveragedValue(8, 0))

	h.Integrate(8)
	assert.Equal(t, int64(120), h.Totals[0])
	assert.Equal(t, 8, h.Stamps[0])
	assert.Equal(t, 15.0, h.AveragedValue(8, 0))
}

func TestHistoryVectorIndependentIndices(t *testing.T) {
	h := NewHistoryVector(0)
	// index 3: [2 x5, -1 x5] = 0.5
	h.Add(0, 3, 2)
	h.Add(5, 3, -3)
	// index 7: [0 x2, 1 x8] = 0.8
	h.Add(2, 7, 1)

	assert.Equal(t, 0.5, h.AveragedValue(10, 3))
	assert.Equal(t, 0.8, h.AveragedValue(10, 7))
	assert.Equal(t, 0.0, h.AveragedValue(10, 0))
}

func TestHistoryVectorGrow(t *testing.T) {
	h := NewHistoryVector(0)
	assert.Equal(t, 0, h.Len())

	h.Add(1, 2, 5)
	require.Equal(t, BASE_SIZE, h.Len())

	h.Add(3, BASE_SIZE, 1)
	assert.Equal(t, 2*BASE_SIZE, h.Len())
	assert.Equal(t, int64(5), h.Value(2))
	assert.Equal(t, int64(10), h.IntegratedValue(3, 2))

	h.Grow(5*BASE_SIZE + 1)
	assert.Equal(t, 8*BASE_SIZE, h.Len())
	assert.Equal(t, int64(5), h.Value(2))

	h.Grow(1)
	assert.Equal(t, 8*BASE_SIZE, h.Len(), "never shrinks")
	assert.Equal(t, int64(0), h.Value(-1))
	assert.Equal(t, int64(0), h.Value(1000))
}

func TestHistoryVectorCopy(t *testing.T) {
	h := NewHistoryVector(2)
	h.Add(0, 1, 3)
	c := h.Copy()
	c.Add(1, 1, 1)
	assert.Equal(t, int64(3), h.Value(1))
	assert.Equal(t, int64(4), c.Value(1))
}
