package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParallelMapKeepsOrder(t *testing.T) {
	items := make([]int, 257)
	for i := range items {
		items[i] = i
	}
	var calls SafeCounter
	got := ParallelMap(items, func(v int) int {
		calls.Increment()
		return v * v
	})

	assert.Len(t, got, len(items))
	for i, v := range got {
		assert.Equal(t, i*i, v)
	}
	assert.EqualValues(t, len(items), calls.Get())
}

func TestParallelMapEmpty(t *testing.T) {
	assert.Nil(t, ParallelMap(nil, func(v int) int { return v }))
}

func TestParallelMapCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var calls SafeCounter
	got := ParallelMapWithContext(ctx, []int{1, 2, 3}, func(v int) int {
		calls.Increment()
		return v
	})
	assert.Len(t, got, 3)
	assert.Zero(t, calls.Get())
	assert.Equal(t, []int{0, 0, 0}, got)
}
