package missiles

import (
	"dungeonfx/internal/collision"
	"dungeonfx/internal/geom"
	"dungeonfx/internal/mathutil"
)

const (
	novaRadius       = 4
	guardianReach    = 6
	guardianCooldown = 8
	apocalypseRadius = 8
)

// addNova sends a ball toward every tile on the border of a square around
// the caster.
func addNova(m *Manager, mis *Missile, param *AddParameter) {
	src := mis.Position.Tile
	for dy := -novaRadius; dy <= novaRadius; dy++ {
		for dx := -novaRadius; dx <= novaRadius; dx++ {
			if mathutil.IntMax(mathutil.IntAbs(dx), mathutil.IntAbs(dy)) != novaRadius {
				continue
			}
			dst := geom.Point{X: src.X + dx, Y: src.Y + dy}
			m.spawn(mis, KindNovaBall, src, dst, geom.GetDirection(src, dst), mis.Damage)
		}
	}
}

// addGuardian summons a turret at the destination. It needs a free tile in
// sight of the caster.
func addGuardian(m *Manager, mis *Missile, param *AddParameter) {
	src := mis.Position.Tile
	if m.collision.IsPathBlocked(param.Dst) || !m.collision.HasLineOfSight(src, param.Dst) {
		param.SpellFizzled = true
		return
	}
	mis.Position.Tile = param.Dst
	mis.Position.Start = param.Dst
	// rising and sinking both come out of the lifetime
	mis.Range += mis.SpellLevel + 2*mis.Anim.playTicks()
	mis.State = &GuardianState{Phase: guardianRising}
}

// processGuardian rises, fires bolts at the nearest visible monster while
// its lifetime lasts, and sinks back into the floor. Sinking starts when
// the remaining range equals the length of the sink animation, so the
// last frame and the end of the range fall on the same tick.
func processGuardian(m *Manager, mis *Missile) {
	st := mis.State.(*GuardianState)
	mis.Range--
	if st.Phase != guardianSinking && mis.Range <= mis.Anim.playTicks() {
		st.Phase = guardianSinking
		mis.Anim.Add = -1
		mis.Anim.Frame = mis.Anim.Length - 1
		mis.Anim.Counter = 0
	}
	switch st.Phase {
	case guardianRising:
		if mis.Anim.Finished() {
			st.Phase = guardianActive
		}
	case guardianActive:
		st.Cooldown--
		if st.Cooldown <= 0 {
			tile := mis.Position.Tile
			if _, target, ok := m.collision.NearestMonster(tile, guardianReach, true); ok {
				m.spawn(mis, KindFirebolt, tile, target, geom.GetDirection(tile, target), mis.Damage)
				st.Shots++
				st.Cooldown = guardianCooldown
			}
		}
	}
	if mis.Range <= 0 {
		mis.Delete()
	}
}

// addApocalypse scans the square around the caster one row per tick.
func addApocalypse(m *Manager, mis *Missile, param *AddParameter) {
	src := mis.Position.Tile
	width, height := m.env.Actors.GetWorldBounds()
	st := &ApocalypseState{
		Min: geom.Point{
			X: mathutil.IntMax(src.X-apocalypseRadius, 0),
			Y: mathutil.IntMax(src.Y-apocalypseRadius, 0),
		},
		Max: geom.Point{
			X: mathutil.IntMin(src.X+apocalypseRadius, width-1),
			Y: mathutil.IntMin(src.Y+apocalypseRadius, height-1),
		},
		Origin: src,
	}
	st.Row = st.Min.Y
	mis.State = st
}

func processApocalypse(m *Manager, mis *Missile) {
	st := mis.State.(*ApocalypseState)
	mis.Range--
	for x := st.Min.X; x <= st.Max.X; x++ {
		p := geom.Point{X: x, Y: st.Row}
		ref, ok := m.collision.ResolveActorHit(m.hitQuery(mis, p))
		if !ok || !m.primaryTile(ref, p) {
			continue
		}
		if !m.collision.HasLineOfSight(st.Origin, p) {
			continue
		}
		m.spawn(mis, KindApocalypseBoom, p, p, geom.South, mis.Damage)
	}
	st.Row++
	if st.Row > st.Max.Y || mis.Range <= 0 {
		mis.Delete()
	}
}

// primaryTile reports whether p is the tile an actor stands on, as opposed
// to the tile it is walking into.
func (m *Manager) primaryTile(ref collision.ActorRef, p geom.Point) bool {
	if ref.Kind != collision.ActorMonster {
		return true
	}
	mon, ok := m.env.Actors.Monster(ref.Index)
	return ok && mon.Tile == p
}
