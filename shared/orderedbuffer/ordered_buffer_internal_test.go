package orderedbuffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderedBoundedBuffer_EvictsInPlace(t *testing.T) {
	buf := NewOrderedBoundedBuffer(4, func(a, b int) int { return a - b })
	for _, v := range []int{5, 1, 9, 3} {
		require.True(t, buf.Insert(v))
	}
	backing := &buf.data[0]

	for v := 10; v < 1000; v++ {
		require.True(t, buf.Insert(v))
		require.Same(t, backing, &buf.data[0], "inserting %d reallocated", v)
	}
	assert.Equal(t, 4, cap(buf.data))
	assert.Equal(t, []int{996, 997, 998, 999}, buf.data)

	// a value landing in the middle shifts only the smaller ones
	require.True(t, buf.Insert(998))
	assert.Equal(t, []int{997, 998, 998, 999}, buf.data)
	assert.False(t, buf.Insert(997))
}
