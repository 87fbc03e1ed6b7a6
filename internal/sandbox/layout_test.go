package sandbox

import (
	"testing"

	"dungeonfx/internal/combat"
	"dungeonfx/internal/config"
	"dungeonfx/internal/geom"
	"dungeonfx/internal/missiles"
	"dungeonfx/internal/spells"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHotbar(t *testing.T) {
	table := config.MustLoadDefaultSpellTable()

	got, err := ParseHotbar([]string{"firebolt", "nova"}, table)
	require.NoError(t, err)
	assert.Equal(t, []spells.SpellID{spells.SpellFirebolt, spells.SpellNova}, got)

	_, err = ParseHotbar([]string{"frost_nova"}, table)
	assert.ErrorIs(t, err, spells.ErrUnknownSpell)

	_, err = ParseHotbar(make([]string, maxHotbar+1), table)
	assert.Error(t, err)

	// the shipped hotbar must load
	_, err = ParseHotbar(config.Default().Sandbox.Hotbar, table)
	assert.NoError(t, err)
}

func TestScreenToTile(t *testing.T) {
	assert.Equal(t, geom.Point{X: 0, Y: 0}, screenToTile(0, 0, 20))
	assert.Equal(t, geom.Point{X: 0, Y: 0}, screenToTile(19, 19, 20))
	assert.Equal(t, geom.Point{X: 2, Y: 1}, screenToTile(45, 20, 20))
	assert.Equal(t, geom.Point{X: -1, Y: 0}, screenToTile(-3, 5, 20))
}

func TestEffectCenterFollowsOffset(t *testing.T) {
	mis := &missiles.Missile{}
	mis.Position.TileForRendering = geom.Point{X: 3, Y: 2}
	x, y := effectCenter(mis, 20)
	assert.InDelta(t, 70, x, 0.001)
	assert.InDelta(t, 50, y, 0.001)

	mis.Position.OffsetForRendering = geom.Displacement{DeltaX: 16, DeltaY: -8}
	x, y = effectCenter(mis, 20)
	assert.InDelta(t, 80, x, 0.001)
	assert.InDelta(t, 45, y, 0.001)
}

func TestColorsAndBars(t *testing.T) {
	assert.NotEqual(t, damageColor(combat.DamageFire), damageColor(combat.DamageLightning))
	assert.Greater(t, effectRadius(missiles.GfxBigExplosion, 20), effectRadius(missiles.GfxArrow, 20))

	assert.Zero(t, lifeFraction(0, 10))
	assert.Zero(t, lifeFraction(5, 0))
	assert.Equal(t, float32(1), lifeFraction(12, 10))
	assert.InDelta(t, 0.5, lifeFraction(5, 10), 0.0001)
}

func TestCueLogKeepsLatest(t *testing.T) {
	var c cueLog
	for i := 0; i < maxCues+2; i++ {
		c.PlaySfxLoc("cast_fire", geom.Point{X: i, Y: 0})
	}
	require.Len(t, c.cues, maxCues)
	assert.Equal(t, "cast_fire@5,0", c.cues[maxCues-1])
}
