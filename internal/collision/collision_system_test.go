package collision

import (
	"testing"

	"dungeonfx/internal/geom"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockTileChecker implements TileChecker for testing
type mockTileChecker struct {
	width, height int
	blockingTiles map[int]map[int]bool
}

func newMockTileChecker(width, height int) *mockTileChecker {
	return &mockTileChecker{
		width:         width,
		height:        height,
		blockingTiles: make(map[int]map[int]bool),
	}
}

func (m *mockTileChecker) IsTileBlocking(tileX, tileY int) bool {
	if row, ok := m.blockingTiles[tileY]; ok {
		return row[tileX]
	}
	return false
}

func (m *mockTileChecker) GetWorldBounds() (width, height int) {
	return m.width, m.height
}

func (m *mockTileChecker) setBlocking(tileX, tileY int, blocking bool) {
	if m.blockingTiles[tileY] == nil {
		m.blockingTiles[tileY] = make(map[int]bool)
	}
	m.blockingTiles[tileY][tileX] = blocking
}

type mockOccupancy struct {
	monsters map[geom.Point]int
	players  map[geom.Point]int
}

func newMockOccupancy() *mockOccupancy {
	return &mockOccupancy{monsters: map[geom.Point]int{}, players: map[geom.Point]int{}}
}

func (m *mockOccupancy) MonsterAt(p geom.Point) (int, bool) {
	idx, ok := m.monsters[p]
	return idx, ok
}

func (m *mockOccupancy) PlayerAt(p geom.Point) (int, bool) {
	idx, ok := m.players[p]
	return idx, ok
}

func TestIsPathBlocked(t *testing.T) {
	checker := newMockTileChecker(10, 10)
	cs := NewCollisionSystem(checker, newMockOccupancy())

	assert.False(t, cs.IsPathBlocked(geom.Point{X: 3, Y: 3}))
	checker.setBlocking(3, 3, true)
	assert.True(t, cs.IsPathBlocked(geom.Point{X: 3, Y: 3}))
	assert.True(t, cs.IsPathBlocked(geom.Point{X: -1, Y: 3}), "out of bounds blocks")
	assert.True(t, cs.IsPathBlocked(geom.Point{X: 3, Y: 10}))
}

func TestResolveActorHitMask(t *testing.T) {
	occ := newMockOccupancy()
	tile := geom.Point{X: 4, Y: 4}
	occ.monsters[tile] = 2
	occ.players[tile] = 0
	cs := NewCollisionSystem(newMockTileChecker(10, 10), occ)

	ref, ok := cs.ResolveActorHit(HitQuery{Tile: tile, Targets: TargetMonsters})
	require.True(t, ok)
	assert.Equal(t, ActorRef{Kind: ActorMonster, Index: 2}, ref)

	ref, ok = cs.ResolveActorHit(HitQuery{Tile: tile, Targets: TargetPlayers})
	require.True(t, ok)
	assert.Equal(t, ActorRef{Kind: ActorPlayer, Index: 0}, ref)

	_, ok = cs.ResolveActorHit(HitQuery{Tile: geom.Point{X: 5, Y: 5}, Targets: TargetBoth})
	assert.False(t, ok)
}

func TestResolveActorHitExclusions(t *testing.T) {
	occ := newMockOccupancy()
	tile := geom.Point{X: 1, Y: 1}
	occ.players[tile] = 3
	cs := NewCollisionSystem(newMockTileChecker(10, 10), occ)
	owner := ActorRef{Kind: ActorPlayer, Index: 3}

	_, ok := cs.ResolveActorHit(HitQuery{Tile: tile, Targets: TargetBoth, Owner: owner, ExcludeOwner: true})
	assert.False(t, ok, "caster is skipped")

	_, ok = cs.ResolveActorHit(HitQuery{Tile: tile, Targets: TargetBoth, LastHash: owner.Hash()})
	assert.False(t, ok, "already tested actor is skipped")

	_, ok = cs.ResolveActorHit(HitQuery{Tile: tile, Targets: TargetBoth})
	assert.True(t, ok)
}

func TestActorHash(t *testing.T) {
	assert.Equal(t, int16(1), ActorRef{Kind: ActorMonster, Index: 0}.Hash())
	assert.Equal(t, int16(-5), ActorRef{Kind: ActorPlayer, Index: 4}.Hash())
	assert.Equal(t, int16(0), ActorRef{}.Hash())
}

func TestHasLineOfSight(t *testing.T) {
	checker := newMockTileChecker(20, 20)
	cs := NewCollisionSystem(checker, newMockOccupancy())
	a, b := geom.Point{X: 2, Y: 5}, geom.Point{X: 12, Y: 5}

	assert.True(t, cs.HasLineOfSight(a, b))
	checker.setBlocking(7, 5, true)
	assert.False(t, cs.HasLineOfSight(a, b))
	assert.True(t, cs.HasLineOfSight(a, geom.Point{X: 2, Y: 12}))
	assert.True(t, cs.HasLineOfSight(a, a))
}

func TestNearestMonster(t *testing.T) {
	occ := newMockOccupancy()
	occ.monsters[geom.Point{X: 8, Y: 5}] = 0
	occ.monsters[geom.Point{X: 6, Y: 6}] = 1
	checker := newMockTileChecker(20, 20)
	cs := NewCollisionSystem(checker, occ)
	from := geom.Point{X: 5, Y: 5}

	idx, tile, ok := cs.NearestMonster(from, 6, false)
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, geom.Point{X: 6, Y: 6}, tile)

	_, _, ok = cs.NearestMonster(from, 0, false)
	assert.False(t, ok)

	assert.Len(t, cs.MonstersInRadius(from, 3), 2)
}

func TestIsFreeTile(t *testing.T) {
	occ := newMockOccupancy()
	occ.players[geom.Point{X: 2, Y: 2}] = 0
	cs := NewCollisionSystem(newMockTileChecker(5, 5), occ)

	assert.False(t, cs.IsFreeTile(geom.Point{X: 2, Y: 2}))
	assert.True(t, cs.IsFreeTile(geom.Point{X: 3, Y: 2}))
	assert.False(t, cs.IsFreeTile(geom.Point{X: 9, Y: 2}))
}
