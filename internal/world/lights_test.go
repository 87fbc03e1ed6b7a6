package world

import (
	"testing"

	"dungeonfx/internal/geom"

	"github.com/stretchr/testify/assert"
)

func TestLights_ReuseAndIgnoreStale(t *testing.T) {
	lights := NewLights()
	a := lights.AddLight(geom.Point{X: 1, Y: 1}, 3)
	b := lights.AddLight(geom.Point{X: 2, Y: 2}, 5)
	assert.Equal(t, 2, lights.Count())

	lights.DeleteLight(a)
	lights.DeleteLight(a)
	assert.Equal(t, 1, lights.Count())

	lights.ChangeLight(a, geom.Point{X: 9, Y: 9}, 1)
	_, ok := lights.Get(a)
	assert.False(t, ok)

	c := lights.AddLight(geom.Point{X: 4, Y: 4}, 2)
	assert.Equal(t, a, c, "freed ids are reused")

	lights.ChangeLightOffset(b, geom.Displacement{DeltaX: 3})
	got, ok := lights.Get(b)
	assert.True(t, ok)
	assert.Equal(t, 3, got.Offset.DeltaX)

	lights.DeleteLight(NoLight)
	assert.Equal(t, 2, lights.Count())
}
