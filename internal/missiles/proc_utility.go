package missiles

import (
	"dungeonfx/internal/geom"
)

const stoneCurseReach = 5

// addStoneCurse petrifies the nearest live monster around the destination.
func addStoneCurse(m *Manager, mis *Missile, param *AddParameter) {
	best, bestDist := -1, stoneCurseReach+1
	var bestTile geom.Point
	for _, tile := range m.collision.MonstersInRadius(param.Dst, stoneCurseReach) {
		idx, ok := m.env.Actors.MonsterAt(tile)
		if !ok {
			continue
		}
		mon, ok := m.env.Actors.Monster(idx)
		if !ok || !mon.IsAlive() || mon.Petrified {
			continue
		}
		if d := param.Dst.ApproxDistance(tile); d < bestDist {
			best, bestDist, bestTile = idx, d, mon.Tile
		}
	}
	if best < 0 {
		param.SpellFizzled = true
		return
	}
	mon, _ := m.env.Actors.Monster(best)
	mon.Petrified = true
	mis.Position.Tile = bestTile
	mis.Position.Start = bestTile
	mis.Range += 12 * mis.SpellLevel
	mis.State = &StoneCurseState{Monster: best}
}

// processStoneCurse releases the monster when the curse runs out. A monster
// killed while petrified ends the curse at once.
func processStoneCurse(m *Manager, mis *Missile) {
	st := mis.State.(*StoneCurseState)
	mon, ok := m.env.Actors.Monster(st.Monster)
	if !ok || !mon.IsAlive() {
		mis.Delete()
		return
	}
	mis.Range--
	if mis.Range <= 0 {
		mon.Petrified = false
		mis.Delete()
	}
}

// addTeleport reserves the destination. Only players teleport, and only
// onto a tile nobody stands on.
func addTeleport(m *Manager, mis *Missile, param *AddParameter) {
	if _, ok := mis.SourcePlayer(m.env.Actors); !ok || !m.collision.IsFreeTile(param.Dst) {
		param.SpellFizzled = true
		return
	}
	mis.Position.Tile = param.Dst
}

func processTeleport(m *Manager, mis *Missile) {
	if !mis.HitFlag {
		mis.HitFlag = true
		if err := m.env.Actors.MovePlayer(mis.Source, mis.Position.Tile); err != nil {
			m.env.Logger.Printf("Warning: teleport of player %d to %v failed: %v", mis.Source, mis.Position.Tile, err)
			mis.Delete()
			return
		}
		m.followLight(mis)
	}
	mis.Range--
	if mis.Range <= 0 {
		mis.Delete()
	}
}

func addHealing(m *Manager, mis *Missile, param *AddParameter) {
	p, ok := mis.SourcePlayer(m.env.Actors)
	if !ok || !p.IsAlive() {
		param.SpellFizzled = true
		return
	}
	p.Heal(HealAmount(m.env.RNG, p, mis.SpellLevel))
}

// addHealOther heals the player standing on the destination.
func addHealOther(m *Manager, mis *Missile, param *AddParameter) {
	caster, ok := mis.SourcePlayer(m.env.Actors)
	if !ok {
		param.SpellFizzled = true
		return
	}
	idx, ok := m.env.Actors.PlayerAt(param.Dst)
	if !ok {
		param.SpellFizzled = true
		return
	}
	target, ok := m.env.Actors.Player(idx)
	if !ok || !target.IsAlive() {
		param.SpellFizzled = true
		return
	}
	target.Heal(HealAmount(m.env.RNG, caster, mis.SpellLevel))
}

func addManaShield(m *Manager, mis *Missile, param *AddParameter) {
	p, ok := mis.SourcePlayer(m.env.Actors)
	if !ok || p.ManaShield {
		param.SpellFizzled = true
		return
	}
	p.ManaShield = true
}

func addInfravision(m *Manager, mis *Missile, param *AddParameter) {
	p, ok := mis.SourcePlayer(m.env.Actors)
	if !ok {
		param.SpellFizzled = true
		return
	}
	p.Infravision = true
	mis.Range += 40 * mis.SpellLevel
}

func processInfravision(m *Manager, mis *Missile) {
	mis.Range--
	if mis.Range > 0 {
		return
	}
	if p, ok := mis.SourcePlayer(m.env.Actors); ok {
		p.Infravision = false
	}
	mis.Delete()
}

// addTownPortal opens a portal at the destination.
func addTownPortal(m *Manager, mis *Missile, param *AddParameter) {
	if m.collision.IsPathBlocked(param.Dst) {
		param.SpellFizzled = true
		return
	}
	mis.Position.Tile = param.Dst
	mis.Position.Start = param.Dst
	mis.State = &TownPortalState{Phase: portalOpening}
}

// processTownPortal claims the caster's portal slot on its first update,
// closing any portal the same caster opened before, then stays open for
// its range.
func processTownPortal(m *Manager, mis *Missile) {
	st := mis.State.(*TownPortalState)
	if !st.Claimed {
		st.Claimed = true
		m.forEachLive(func(other *Missile) {
			if other == mis || other.Kind != KindTownPortal || !other.IsSameSource(mis) {
				return
			}
			if prev, ok := other.State.(*TownPortalState); ok && prev.Claimed {
				other.Delete()
			}
		})
	}
	if st.Phase == portalOpening && mis.Anim.Finished() {
		st.Phase = portalOpen
		mis.Anim.Flags = AnimNotAnimated
	}
	mis.Range--
	if mis.Range <= 0 {
		mis.Delete()
	}
}

func runePayload(k Kind) Kind {
	switch k {
	case KindRuneOfLight:
		return KindLightning
	case KindRuneOfNova:
		return KindNova
	default:
		return KindBigExplosion
	}
}

// addRune arms a rune on the destination.
func addRune(m *Manager, mis *Missile, param *AddParameter) {
	if m.collision.IsPathBlocked(param.Dst) {
		param.SpellFizzled = true
		return
	}
	mis.Position.Tile = param.Dst
	mis.Position.Start = param.Dst
	mis.State = &RuneState{Payload: runePayload(mis.Kind)}
}

// processRune waits for an enemy on or next to the rune and releases its
// payload there. An untriggered rune fades when its range runs out.
func processRune(m *Manager, mis *Missile) {
	st := mis.State.(*RuneState)
	mis.Range--
	if mis.Range <= 0 {
		mis.Delete()
		return
	}
	centre := mis.Position.Tile
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			p := geom.Point{X: centre.X + dx, Y: centre.Y + dy}
			if _, ok := m.collision.ResolveActorHit(m.hitQuery(mis, p)); !ok {
				continue
			}
			at := p
			if st.Payload == KindNova {
				at = centre
			}
			m.spawn(mis, st.Payload, at, p, geom.GetDirection(centre, p), mis.Damage)
			mis.Delete()
			return
		}
	}
}
