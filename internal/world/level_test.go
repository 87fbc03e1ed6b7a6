package world

import (
	"testing"

	"dungeonfx/internal/combat"
	"dungeonfx/internal/config"
	"dungeonfx/internal/geom"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMonster(x, y int) *Monster {
	return &Monster{
		Name:         "dummy",
		HitPoints:    10 << combat.HitPointShift,
		MaxHitPoints: 10 << combat.HitPointShift,
		Tile:         geom.Point{X: x, Y: y},
	}
}

func TestLevel_OccupancyAndBounds(t *testing.T) {
	level := NewLevel("t", 6, 4)
	level.SetTile(geom.Point{X: 3, Y: 1}, TileWall)

	assert.True(t, level.IsTileBlocking(3, 1))
	assert.True(t, level.IsTileBlocking(-1, 0), "outside reads as wall")
	assert.False(t, level.IsTileBlocking(0, 0))

	_, err := level.AddMonster(newTestMonster(3, 1))
	assert.ErrorIs(t, err, ErrTileBlocked)

	idx, err := level.AddMonster(newTestMonster(1, 1))
	require.NoError(t, err)
	got, ok := level.MonsterAt(geom.Point{X: 1, Y: 1})
	assert.True(t, ok)
	assert.Equal(t, idx, got)

	_, err = level.AddMonster(newTestMonster(1, 1))
	assert.ErrorIs(t, err, ErrTileOccupied)

	_, ok = level.MonsterAt(geom.Point{X: 10, Y: 10})
	assert.False(t, ok)
}

func TestLevel_WalkingMonsterHoldsTwoTiles(t *testing.T) {
	level := NewLevel("t", 6, 4)
	idx, err := level.AddMonster(newTestMonster(1, 1))
	require.NoError(t, err)

	require.NoError(t, level.StartWalk(idx, geom.Point{X: 2, Y: 1}))
	a, okA := level.MonsterAt(geom.Point{X: 1, Y: 1})
	b, okB := level.MonsterAt(geom.Point{X: 2, Y: 1})
	assert.True(t, okA && okB)
	assert.Equal(t, a, b)

	level.FinishWalk(idx)
	_, okA = level.MonsterAt(geom.Point{X: 1, Y: 1})
	assert.False(t, okA)
	assert.Equal(t, geom.Point{X: 2, Y: 1}, level.Monsters[idx].Tile)
}

func TestLevel_KillClearsBothTiles(t *testing.T) {
	level := NewLevel("t", 6, 4)
	idx, _ := level.AddMonster(newTestMonster(1, 1))
	require.NoError(t, level.StartWalk(idx, geom.Point{X: 1, Y: 2}))

	level.KillMonster(idx)

	_, ok := level.MonsterAt(geom.Point{X: 1, Y: 1})
	assert.False(t, ok)
	_, ok = level.MonsterAt(geom.Point{X: 1, Y: 2})
	assert.False(t, ok)
	assert.Equal(t, 0, level.LiveMonsters())
}

func TestLevel_MovePlayer(t *testing.T) {
	level := NewLevel("t", 6, 4)
	p := NewPlayer("p", ClassRogue, 3)
	p.SetHitPoints(10)
	p.Tile = geom.Point{X: 0, Y: 0}
	idx, err := level.AddPlayer(p)
	require.NoError(t, err)
	level.AddMonster(newTestMonster(2, 2))

	assert.ErrorIs(t, level.MovePlayer(idx, geom.Point{X: 2, Y: 2}), ErrTileOccupied)
	assert.ErrorIs(t, level.MovePlayer(idx, geom.Point{X: 9, Y: 0}), ErrOutOfBounds)
	require.NoError(t, level.MovePlayer(idx, geom.Point{X: 4, Y: 3}))

	_, ok := level.PlayerAt(geom.Point{X: 0, Y: 0})
	assert.False(t, ok)
	got, ok := level.PlayerAt(geom.Point{X: 4, Y: 3})
	assert.True(t, ok)
	assert.Equal(t, idx, got)
}

func TestLevel_ToggleDoor(t *testing.T) {
	level := NewLevel("t", 3, 3)
	door := geom.Point{X: 1, Y: 1}
	level.SetTile(door, TileDoorClosed)
	assert.True(t, level.IsTileBlocking(1, 1))

	assert.True(t, level.ToggleDoor(door))
	assert.False(t, level.IsTileBlocking(1, 1))

	level.AddMonster(newTestMonster(1, 1))
	assert.False(t, level.ToggleDoor(door), "occupied doorway stays open")
}

func TestPlayer_ManaShieldAbsorbs(t *testing.T) {
	p := NewPlayer("p", ClassSorcerer, 10)
	p.SetHitPoints(20)
	p.SetMana(5)
	p.ManaShield = true

	killed := p.ApplyDamage(8 << combat.HitPointShift)

	assert.False(t, killed)
	assert.Zero(t, p.Mana)
	assert.False(t, p.ManaShield)
	assert.Equal(t, 17<<combat.HitPointShift, p.HitPoints)
}

func TestPlayer_HealCapsAtMax(t *testing.T) {
	p := NewPlayer("p", ClassMonk, 1)
	p.SetHitPoints(10)
	p.HitPoints = 1 << combat.HitPointShift

	p.Heal(100 << combat.HitPointShift)
	assert.Equal(t, p.MaxHitPoints, p.HitPoints)
}

func TestPlayer_AttackerCarriesItemBonuses(t *testing.T) {
	p, err := NewPlayerFromConfig(config.HeroConfig{
		Name:           "archer",
		Class:          "rogue",
		Level:          12,
		HitPoints:      40,
		ToHit:          80,
		MagicToHit:     30,
		ArmorPierce:    7,
		BonusDamagePct: 25,
		DamageMod:      3,
	})
	require.NoError(t, err)

	att := p.AsAttacker()
	assert.Equal(t, 12, att.Level)
	assert.Equal(t, 80, att.ToHit)
	assert.Equal(t, 30, att.MagicToHit)
	assert.Equal(t, 7, att.ArmorPierce)
	assert.Equal(t, 25, att.BonusDamagePct)
	assert.Equal(t, 3, att.DamageMod)
}
