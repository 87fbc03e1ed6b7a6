package collision

import (
	"dungeonfx/internal/geom"
	"dungeonfx/internal/mathutil"
)

// TileChecker interface for checking if tiles block missiles
type TileChecker interface {
	IsTileBlocking(tileX, tileY int) bool
	GetWorldBounds() (width, height int)
}

// Occupancy answers which actor stands on a tile.
type Occupancy interface {
	MonsterAt(p geom.Point) (int, bool)
	PlayerAt(p geom.Point) (int, bool)
}

// Target is the 2-bit mask of actor categories an effect can hit.
type Target uint8

const (
	TargetMonsters Target = 1 << iota
	TargetPlayers
	TargetBoth = TargetMonsters | TargetPlayers
)

func (t Target) String() string {
	switch t {
	case TargetMonsters:
		return "monsters"
	case TargetPlayers:
		return "players"
	case TargetBoth:
		return "both"
	default:
		return "none"
	}
}

// ActorKind tells which table an ActorRef indexes.
type ActorKind uint8

const (
	ActorNone ActorKind = iota
	ActorMonster
	ActorPlayer
)

// ActorRef identifies one actor.
type ActorRef struct {
	Kind  ActorKind
	Index int
}

// Hash packs the reference into the value stored in an effect's
// last-collision field. Monsters are positive, players negative, 0 is none.
func (a ActorRef) Hash() int16 {
	switch a.Kind {
	case ActorMonster:
		return int16(a.Index + 1)
	case ActorPlayer:
		return -int16(a.Index + 1)
	}
	return 0
}

// HitQuery describes one actor lookup on a tile.
type HitQuery struct {
	Tile    geom.Point
	Targets Target
	// Owner is the caster; it is skipped when ExcludeOwner is set.
	Owner        ActorRef
	ExcludeOwner bool
	// LastHash is the actor already tested during this sweep.
	LastHash int16
}

// CollisionSystem answers tile and actor questions for moving effects.
type CollisionSystem struct {
	tileChecker TileChecker
	occupancy   Occupancy
}

// NewCollisionSystem creates a new collision system
func NewCollisionSystem(tileChecker TileChecker, occupancy Occupancy) *CollisionSystem {
	return &CollisionSystem{
		tileChecker: tileChecker,
		occupancy:   occupancy,
	}
}

// UpdateTileChecker updates the tile checker (used when switching levels)
func (cs *CollisionSystem) UpdateTileChecker(tileChecker TileChecker, occupancy Occupancy) {
	cs.tileChecker = tileChecker
	cs.occupancy = occupancy
}

// InBounds reports whether p lies on the level.
func (cs *CollisionSystem) InBounds(p geom.Point) bool {
	width, height := cs.tileChecker.GetWorldBounds()
	return p.X >= 0 && p.Y >= 0 && p.X < width && p.Y < height
}

// IsPathBlocked reports whether an effect may not enter p: out of bounds, or a
// wall / closed door.
func (cs *CollisionSystem) IsPathBlocked(p geom.Point) bool {
	if !cs.InBounds(p) {
		return true
	}
	return cs.tileChecker.IsTileBlocking(p.X, p.Y)
}

// ResolveActorHit returns the actor on q.Tile that the query may hit.
// Monsters are tested before players.
func (cs *CollisionSystem) ResolveActorHit(q HitQuery) (ActorRef, bool) {
	if !cs.InBounds(q.Tile) {
		return ActorRef{}, false
	}
	if q.Targets&TargetMonsters != 0 {
		if idx, ok := cs.occupancy.MonsterAt(q.Tile); ok {
			ref := ActorRef{Kind: ActorMonster, Index: idx}
			if cs.acceptable(q, ref) {
				return ref, true
			}
		}
	}
	if q.Targets&TargetPlayers != 0 {
		if idx, ok := cs.occupancy.PlayerAt(q.Tile); ok {
			ref := ActorRef{Kind: ActorPlayer, Index: idx}
			if cs.acceptable(q, ref) {
				return ref, true
			}
		}
	}
	return ActorRef{}, false
}

func (cs *CollisionSystem) acceptable(q HitQuery, ref ActorRef) bool {
	if q.ExcludeOwner && ref == q.Owner {
		return false
	}
	return q.LastHash == 0 || ref.Hash() != q.LastHash
}

// HasLineOfSight steps from a to b one tile at a time and fails on the first
// blocking tile between them. The end points themselves are not tested.
func (cs *CollisionSystem) HasLineOfSight(a, b geom.Point) bool {
	dx := mathutil.IntAbs(b.X - a.X)
	dy := -mathutil.IntAbs(b.Y - a.Y)
	sx, sy := mathutil.IntSign(b.X-a.X), mathutil.IntSign(b.Y-a.Y)
	errAcc := dx + dy

	p := a
	for p != b {
		e2 := 2 * errAcc
		if e2 >= dy {
			errAcc += dy
			p.X += sx
		}
		if e2 <= dx {
			errAcc += dx
			p.Y += sy
		}
		if p == b {
			break
		}
		if cs.IsPathBlocked(p) {
			return false
		}
	}
	return true
}

// NearestMonster finds the closest monster within radius of from. Ties keep
// the first tile in row-major scan order so results are deterministic.
func (cs *CollisionSystem) NearestMonster(from geom.Point, radius int, needSight bool) (int, geom.Point, bool) {
	bestIdx, bestDist := -1, radius+1
	var bestTile geom.Point
	for y := from.Y - radius; y <= from.Y+radius; y++ {
		for x := from.X - radius; x <= from.X+radius; x++ {
			p := geom.Point{X: x, Y: y}
			if !cs.InBounds(p) {
				continue
			}
			idx, ok := cs.occupancy.MonsterAt(p)
			if !ok {
				continue
			}
			dist := from.ApproxDistance(p)
			if dist >= bestDist {
				continue
			}
			if needSight && !cs.HasLineOfSight(from, p) {
				continue
			}
			bestIdx, bestDist, bestTile = idx, dist, p
		}
	}
	return bestIdx, bestTile, bestIdx >= 0
}

// MonstersInRadius lists monster tiles within radius, row-major. A monster
// standing on two tiles appears once, at the first tile scanned.
func (cs *CollisionSystem) MonstersInRadius(from geom.Point, radius int) []geom.Point {
	var out []geom.Point
	seen := make(map[int]bool)
	for y := from.Y - radius; y <= from.Y+radius; y++ {
		for x := from.X - radius; x <= from.X+radius; x++ {
			p := geom.Point{X: x, Y: y}
			if !cs.InBounds(p) {
				continue
			}
			if idx, ok := cs.occupancy.MonsterAt(p); ok && !seen[idx] {
				seen[idx] = true
				out = append(out, p)
			}
		}
	}
	return out
}

// IsFreeTile reports whether an actor could be placed on p.
func (cs *CollisionSystem) IsFreeTile(p geom.Point) bool {
	if cs.IsPathBlocked(p) {
		return false
	}
	if _, ok := cs.occupancy.MonsterAt(p); ok {
		return false
	}
	_, ok := cs.occupancy.PlayerAt(p)
	return !ok
}
