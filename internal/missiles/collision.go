package missiles

import (
	"dungeonfx/internal/collision"
	"dungeonfx/internal/combat"
	"dungeonfx/internal/geom"
)

// stationaryHitPeriod is the number of ticks between two strikes of an
// effect that sits on one tile.
const stationaryHitPeriod = 4

// attackFor builds the resolver input for mis.
func attackFor(mis *Missile) combat.Attack {
	data := GetData(mis.Kind)
	return combat.Attack{
		MinDamage:   mis.Damage.Min,
		MaxDamage:   mis.Damage.Max,
		Distance:    mis.Dist,
		Type:        data.DamageType,
		Arrow:       data.IsArrow(),
		Unblockable: !data.Blockable(),
	}
}

func (m *Manager) defender(ref collision.ActorRef) (combat.Defender, bool) {
	switch ref.Kind {
	case collision.ActorMonster:
		if mon, ok := m.env.Actors.Monster(ref.Index); ok {
			return mon, true
		}
	case collision.ActorPlayer:
		if p, ok := m.env.Actors.Player(ref.Index); ok {
			return p, true
		}
	}
	return nil, false
}

func (m *Manager) attacker(mis *Missile) *combat.Attacker {
	if p, ok := mis.SourcePlayer(m.env.Actors); ok {
		return p.AsAttacker()
	}
	if mon, ok := mis.SourceMonster(m.env.Actors); ok {
		return mon.AsAttacker()
	}
	return nil
}

// hitActor resolves atk from mis against ref and handles a kill.
func (m *Manager) hitActor(mis *Missile, ref collision.ActorRef, atk combat.Attack) combat.Outcome {
	def, ok := m.defender(ref)
	if !ok {
		return combat.Outcome{}
	}

	var out combat.Outcome
	if mis.IsTrap() {
		out = m.env.Resolver.ComputeTrapHit(def, atk)
	} else {
		out = m.env.Resolver.ComputeHit(m.attacker(mis), def, atk)
	}
	m.env.Monitor.HitResolved(out.Hit, out.Killed)

	if out.Hit {
		m.playHit(mis, mis.Position.Tile)
	}
	if out.Killed {
		if ref.Kind == collision.ActorMonster {
			m.env.Actors.KillMonster(ref.Index)
		}
		if m.env.OnKill != nil {
			m.env.OnKill(ref, mis)
		}
	}
	return out
}

func (m *Manager) hitQuery(mis *Missile, p geom.Point) collision.HitQuery {
	return collision.HitQuery{
		Tile:         p,
		Targets:      mis.Caster,
		Owner:        mis.sourceRef(),
		ExcludeOwner: !mis.IsTrap(),
	}
}

// checkMissileCol tests the actor on p against a moving effect. The same
// actor is only tested once while it stays the last one seen, so a walker
// spanning two tiles is not hit twice. An empty tile resets the memory.
// accept may reject an actor; the effect then passes without a roll.
// It reports whether the attack hit.
func (m *Manager) checkMissileCol(mis *Missile, p geom.Point, atk combat.Attack, accept func(collision.ActorRef) bool) bool {
	ref, ok := m.collision.ResolveActorHit(m.hitQuery(mis, p))
	if !ok {
		mis.LastCollisionTargetHash = 0
		return false
	}
	if ref.Hash() == mis.LastCollisionTargetHash {
		return false
	}
	mis.LastCollisionTargetHash = ref.Hash()
	if accept != nil && !accept(ref) {
		return false
	}
	return m.hitActor(mis, ref, atk).Hit
}

// hitTile attacks whatever actor stands on p, once, ignoring the
// last-collision memory. Used by explosions and area effects.
func (m *Manager) hitTile(mis *Missile, p geom.Point, atk combat.Attack, seen map[int16]bool) bool {
	ref, ok := m.collision.ResolveActorHit(m.hitQuery(mis, p))
	if !ok {
		return false
	}
	if seen != nil {
		if seen[ref.Hash()] {
			return false
		}
		seen[ref.Hash()] = true
	}
	return m.hitActor(mis, ref, atk).Hit
}

// burnTile strikes whoever stands on the tile of a stationary effect, on
// its first update and every stationaryHitPeriod updates after that. An
// actor that stays on the tile keeps getting hit.
func (m *Manager) burnTile(mis *Missile) bool {
	if (mis.Age-1)%stationaryHitPeriod != 0 {
		return false
	}
	return m.hitTile(mis, mis.Position.Tile, attackFor(mis), nil)
}

// hitArea attacks every actor on the 3x3 block centred on p, each at most
// once. The actor with hash exclude, if any, is skipped.
func (m *Manager) hitArea(mis *Missile, p geom.Point, atk combat.Attack, exclude int16) int {
	seen := make(map[int16]bool)
	if exclude != 0 {
		seen[exclude] = true
	}
	hits := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if m.hitTile(mis, geom.Point{X: p.X + dx, Y: p.Y + dy}, atk, seen) {
				hits++
			}
		}
	}
	return hits
}
