package missiles

import (
	"io"
	"log"
	"testing"

	"dungeonfx/internal/collision"
	"dungeonfx/internal/combat"
	"dungeonfx/internal/geom"
	"dungeonfx/internal/rng"
	"dungeonfx/internal/threading/monitoring"
	"dungeonfx/internal/world"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	level   *world.Level
	rolls   *rng.Sequence
	manager *Manager
	kills   []collision.ActorRef
}

// newFixture builds a 30x20 open level with the caster parked in a corner.
// Every roll is zero unless the test replaces the sequence values.
func newFixture(t *testing.T, capacity int) *fixture {
	t.Helper()
	f := &fixture{
		level: world.NewLevel("test", 30, 20),
		rolls: &rng.Sequence{Values: []int{0}},
	}
	hero := world.NewPlayer("hero", world.ClassSorcerer, 10)
	hero.SetHitPoints(50)
	hero.Tile = geom.Point{X: 2, Y: 2}
	_, err := f.level.AddPlayer(hero)
	require.NoError(t, err)

	f.manager = NewManager(capacity, Env{
		Actors: f.level,
		RNG:    f.rolls,
		Lights: f.level.Lights,
		Logger: log.New(io.Discard, "", 0),
		OnKill: func(ref collision.ActorRef, _ *Missile) {
			f.kills = append(f.kills, ref)
		},
		Depth: 3,
	})
	return f
}

func (f *fixture) addMonster(t *testing.T, x, y, hp int) int {
	t.Helper()
	idx, err := f.level.AddMonster(&world.Monster{
		Name:         "target",
		HitPoints:    hp << combat.HitPointShift,
		MaxHitPoints: hp << combat.HitPointShift,
		Tile:         geom.Point{X: x, Y: y},
	})
	require.NoError(t, err)
	return idx
}

func (f *fixture) cast(t *testing.T, kind Kind, src, dst geom.Point, damage combat.DamageRange) Handle {
	t.Helper()
	h, err := f.manager.CreateEffect(CreateRequest{
		Src:    src,
		Dst:    dst,
		Dir:    geom.GetDirection(src, dst),
		Kind:   kind,
		Caster: collision.TargetMonsters,
		Source: 0,
		Damage: damage,
	})
	require.NoError(t, err)
	return h
}

func (f *fixture) advance(n int) {
	for i := 0; i < n; i++ {
		f.manager.AdvanceAll()
	}
}

func pt(x, y int) geom.Point { return geom.Point{X: x, Y: y} }

func TestArrowTravelsOneTilePerTick(t *testing.T) {
	f := newFixture(t, 0)
	h := f.cast(t, KindArrow, pt(10, 10), pt(20, 10), combat.DamageRange{})
	mis, ok := f.manager.Get(h)
	require.True(t, ok)
	mis.Range = 20

	f.advance(5)

	mis, ok = f.manager.Get(h)
	require.True(t, ok)
	assert.Equal(t, pt(15, 10), mis.Position.Tile)
	assert.Equal(t, geom.Displacement{}, mis.Position.Offset)
	assert.Equal(t, pt(14, 10), mis.Position.TileForRendering)
	assert.Equal(t, 15, mis.Range)
}

func TestRangeExpiryRemovesEntry(t *testing.T) {
	f := newFixture(t, 0)
	h := f.cast(t, KindArrow, pt(10, 10), pt(20, 10), combat.DamageRange{})
	mis, _ := f.manager.Get(h)
	mis.Range = 3

	f.advance(2)
	_, ok := f.manager.Get(h)
	assert.True(t, ok)

	f.advance(1)
	_, ok = f.manager.Get(h)
	assert.False(t, ok)
	assert.Equal(t, 0, f.manager.Count())
}

func TestEveryKindExpiresWithItsRange(t *testing.T) {
	for _, kind := range Kinds() {
		t.Run(kind.String(), func(t *testing.T) {
			f := newFixture(t, 0)
			f.addMonster(t, 20, 15, 100)
			friend := world.NewPlayer("friend", world.ClassWarrior, 5)
			friend.SetHitPoints(20)
			friend.Tile = pt(4, 4)
			_, err := f.level.AddPlayer(friend)
			require.NoError(t, err)

			dst := pt(14, 10)
			switch kind {
			case KindStoneCurse:
				dst = pt(20, 14)
			case KindHealOther:
				dst = friend.Tile
			case KindTeleport:
				dst = pt(8, 8)
			}
			h := f.cast(t, kind, pt(10, 10), dst, combat.DamageRange{Min: 1, Max: 2})
			require.True(t, h.Valid())
			mis, ok := f.manager.Get(h)
			require.True(t, ok)
			mis.Range = 1

			f.advance(1)
			_, ok = f.manager.Get(h)
			assert.False(t, ok)
			f.manager.ForEachActive(func(mis *Missile) bool {
				assert.NotEqual(t, h, mis.handle)
				return true
			})
		})
	}
}

func TestProjectileOutOfRangeFadesWithoutImpact(t *testing.T) {
	f := newFixture(t, 0)
	h := f.cast(t, KindFirebolt, pt(10, 10), pt(25, 10), combat.DamageRange{Min: 1, Max: 1})
	mis, ok := f.manager.Get(h)
	require.True(t, ok)
	mis.Range = 2

	f.advance(3)
	_, ok = f.manager.Get(h)
	assert.False(t, ok)
	assert.Equal(t, 0, f.manager.CountKind(KindMissileExplosion))

	f.level.SetTile(pt(12, 10), world.TileWall)
	f.cast(t, KindFirebolt, pt(10, 10), pt(25, 10), combat.DamageRange{Min: 1, Max: 1})
	for i := 0; i < 20 && f.manager.CountKind(KindMissileExplosion) == 0; i++ {
		f.advance(1)
	}
	assert.Equal(t, 1, f.manager.CountKind(KindMissileExplosion))
}

func TestArrowStopsAtWall(t *testing.T) {
	f := newFixture(t, 0)
	f.level.SetTile(pt(13, 10), world.TileWall)
	h := f.cast(t, KindArrow, pt(10, 10), pt(20, 10), combat.DamageRange{})

	f.advance(2)
	mis, ok := f.manager.Get(h)
	require.True(t, ok)
	assert.Equal(t, pt(12, 10), mis.Position.Tile)

	f.advance(1)
	_, ok = f.manager.Get(h)
	assert.False(t, ok)
}

func TestArrowKillsMonster(t *testing.T) {
	f := newFixture(t, 0)
	idx := f.addMonster(t, 14, 10, 10)
	f.cast(t, KindArrow, pt(10, 10), pt(20, 10), combat.DamageRange{Min: 20, Max: 20})

	f.advance(6)

	mon := f.level.Monsters[idx]
	assert.True(t, mon.Dead)
	_, occupied := f.level.MonsterAt(pt(14, 10))
	assert.False(t, occupied)
	require.Len(t, f.kills, 1)
	assert.Equal(t, collision.ActorRef{Kind: collision.ActorMonster, Index: idx}, f.kills[0])
	assert.Equal(t, 0, f.manager.CountKind(KindArrow))
}

func TestTrapArrowUsesDepthDamage(t *testing.T) {
	f := newFixture(t, 0)
	h, err := f.manager.CreateEffect(CreateRequest{
		Src:    pt(5, 5),
		Dst:    pt(5, 15),
		Kind:   KindArrow,
		Caster: collision.TargetBoth,
		Source: TrapSource,
	})
	require.NoError(t, err)
	mis, ok := f.manager.Get(h)
	require.True(t, ok)
	assert.Equal(t, SourceTrap, mis.SourceType())
	assert.Equal(t, combat.DamageRange{Min: 3, Max: 6}, mis.Damage)
}

func TestWalkingMonsterIsTestedOnce(t *testing.T) {
	f := newFixture(t, 0)
	idx := f.addMonster(t, 13, 10, 10)
	require.NoError(t, f.level.StartWalk(idx, pt(14, 10)))
	// every hit roll misses
	f.rolls.Values = []int{99}

	h := f.cast(t, KindArrow, pt(10, 10), pt(25, 10), combat.DamageRange{Min: 1, Max: 1})
	f.advance(6)

	mis, ok := f.manager.Get(h)
	require.True(t, ok, "a missed arrow keeps flying")
	assert.Equal(t, pt(16, 10), mis.Position.Tile)
	assert.Equal(t, 1, f.rolls.Consumed())
	assert.Equal(t, 10<<combat.HitPointShift, f.level.Monsters[idx].HitPoints)
}

func TestChildrenWaitForNextTick(t *testing.T) {
	f := newFixture(t, 0)
	f.cast(t, KindLightningControl, pt(10, 10), pt(20, 10), combat.DamageRange{Min: 1, Max: 2})

	assert.Equal(t, 2, f.manager.Count())
	assert.Equal(t, 0, f.manager.Pool().ActiveLen())
	assert.Equal(t, 2, f.manager.Pool().PendingLen())

	f.advance(1)
	assert.Equal(t, 2, f.manager.Pool().ActiveLen())
	assert.Equal(t, 1, f.manager.Pool().PendingLen(), "segment laid this tick is not yet active")
	assert.Equal(t, 2, f.manager.CountKind(KindLightning))
}

func TestSweepIsIdempotent(t *testing.T) {
	f := newFixture(t, 0)
	h := f.cast(t, KindArrow, pt(10, 10), pt(20, 10), combat.DamageRange{})
	f.cast(t, KindArrow, pt(10, 12), pt(20, 12), combat.DamageRange{})
	f.advance(1)

	require.True(t, f.manager.Cancel(h))
	assert.False(t, f.manager.Cancel(h), "already marked")
	assert.Equal(t, 1, f.manager.Sweep())
	assert.Equal(t, 0, f.manager.Sweep())

	_, ok := f.manager.Get(h)
	assert.False(t, ok)
	assert.Equal(t, 1, f.manager.Count())
}

func TestStaleHandleDoesNotResolveAfterReuse(t *testing.T) {
	f := newFixture(t, 1)
	h := f.cast(t, KindArrow, pt(10, 10), pt(20, 10), combat.DamageRange{})
	f.advance(1)
	f.manager.Cancel(h)
	f.manager.Sweep()

	h2 := f.cast(t, KindArrow, pt(10, 12), pt(20, 12), combat.DamageRange{})
	_, ok := f.manager.Get(h)
	assert.False(t, ok)
	_, ok = f.manager.Get(h2)
	assert.True(t, ok)
	assert.NotEqual(t, h, h2)
}

func TestVetoLeavesNoEntries(t *testing.T) {
	f := newFixture(t, 0)
	f.level.SetTile(pt(8, 8), world.TileWall)

	h, err := f.manager.CreateEffect(CreateRequest{
		Src:    pt(2, 2),
		Dst:    pt(8, 8),
		Kind:   KindTeleport,
		Caster: collision.TargetMonsters,
	})
	require.NoError(t, err)
	assert.False(t, h.Valid())

	h, err = f.manager.CreateEffect(CreateRequest{
		Src:    pt(10, 10),
		Dst:    pt(8, 8),
		Kind:   KindFireWallControl,
		Caster: collision.TargetMonsters,
	})
	require.NoError(t, err)
	assert.False(t, h.Valid())

	assert.Equal(t, 0, f.manager.Count())
	assert.Equal(t, 0, f.level.Lights.Count())
}

func TestPoolExhaustion(t *testing.T) {
	f := newFixture(t, 2)
	f.cast(t, KindArrow, pt(10, 10), pt(20, 10), combat.DamageRange{})
	f.cast(t, KindArrow, pt(10, 11), pt(20, 11), combat.DamageRange{})

	h, err := f.manager.CreateEffect(CreateRequest{
		Src:    pt(10, 12),
		Dst:    pt(20, 12),
		Kind:   KindArrow,
		Caster: collision.TargetMonsters,
	})
	assert.ErrorIs(t, err, ErrPoolExhausted)
	assert.False(t, h.Valid())
	assert.Equal(t, 2, f.manager.Count())
}

func TestUnknownKindIsRejected(t *testing.T) {
	f := newFixture(t, 0)
	_, err := f.manager.CreateEffect(CreateRequest{Kind: kindCount})
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestForEachActiveSkipsPending(t *testing.T) {
	f := newFixture(t, 0)
	f.cast(t, KindArrow, pt(10, 10), pt(20, 10), combat.DamageRange{})
	h := f.cast(t, KindArrow, pt(10, 12), pt(20, 12), combat.DamageRange{})

	visited := 0
	f.manager.ForEachActive(func(*Missile) bool { visited++; return true })
	assert.Equal(t, 0, visited)

	f.advance(1)
	f.manager.Cancel(h)

	var kinds []Kind
	deleted := 0
	f.manager.ForEachActive(func(mis *Missile) bool {
		kinds = append(kinds, mis.Kind)
		if mis.Deleted() {
			deleted++
		}
		return true
	})
	assert.Equal(t, []Kind{KindArrow, KindArrow}, kinds)
	assert.Equal(t, 1, deleted, "marked entries stay visible until swept")

	visited = 0
	f.manager.ForEachActive(func(*Missile) bool { visited++; return false })
	assert.Equal(t, 1, visited)
}

func TestClearReleasesLights(t *testing.T) {
	f := newFixture(t, 0)
	f.cast(t, KindFirebolt, pt(10, 10), pt(20, 10), combat.DamageRange{Min: 1, Max: 3})
	f.cast(t, KindFireball, pt(10, 12), pt(20, 12), combat.DamageRange{Min: 1, Max: 3})
	f.advance(1)
	f.cast(t, KindFirebolt, pt(10, 14), pt(20, 14), combat.DamageRange{Min: 1, Max: 3})
	assert.Equal(t, 3, f.level.Lights.Count())

	f.manager.Clear()
	assert.Equal(t, 0, f.manager.Count())
	assert.Equal(t, 0, f.level.Lights.Count())
}

func TestSourceAccessors(t *testing.T) {
	f := newFixture(t, 0)
	monIdx := f.addMonster(t, 20, 15, 10)

	fromPlayer := &Missile{Caster: collision.TargetMonsters, Source: 0}
	_, ok := fromPlayer.SourceMonster(f.level)
	assert.False(t, ok)
	p, ok := fromPlayer.SourcePlayer(f.level)
	assert.True(t, ok)
	assert.Equal(t, "hero", p.Name)

	fromMonster := &Missile{Caster: collision.TargetPlayers, Source: monIdx}
	assert.Equal(t, SourceMonster, fromMonster.SourceType())
	_, ok = fromMonster.SourcePlayer(f.level)
	assert.False(t, ok)
	_, ok = fromMonster.SourceMonster(f.level)
	assert.True(t, ok)

	fromTrap := &Missile{Caster: collision.TargetBoth, Source: TrapSource}
	_, ok = fromTrap.SourcePlayer(f.level)
	assert.False(t, ok)
	_, ok = fromTrap.SourceMonster(f.level)
	assert.False(t, ok)
	assert.True(t, fromTrap.IsTrap())
}

func TestMonitorCountsCreationsAndVetoes(t *testing.T) {
	f := newFixture(t, 0)
	mon := monitoring.NewPerformanceMonitor()
	f.manager.env.Monitor = mon

	f.cast(t, KindArrow, pt(10, 10), pt(20, 10), combat.DamageRange{})
	// nobody stands on the destination
	h := f.cast(t, KindHealOther, pt(2, 2), pt(5, 5), combat.DamageRange{})
	assert.False(t, h.Valid())
	f.advance(1)

	metrics := mon.GetCurrentMetrics()
	assert.Equal(t, uint64(1), metrics.EffectsCreated)
	assert.Equal(t, uint64(1), metrics.EffectsVetoed)
	assert.Equal(t, uint64(1), metrics.Ticks)
	assert.Equal(t, int32(1), metrics.EffectsActive)
}
