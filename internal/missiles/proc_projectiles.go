package missiles

import (
	"dungeonfx/internal/collision"
	"dungeonfx/internal/combat"
	"dungeonfx/internal/geom"
	"dungeonfx/internal/mathutil"
)

// seekRadius is how far homing effects look for a new target.
const seekRadius = 19

// fillSourceDamage gives weapon-style effects their author's damage when
// the request carried none. Traps scale with the dungeon depth.
func (m *Manager) fillSourceDamage(mis *Missile) {
	if mis.Damage != (combat.DamageRange{}) {
		return
	}
	switch mis.SourceType() {
	case SourcePlayer:
		if p, ok := mis.SourcePlayer(m.env.Actors); ok {
			mis.Damage = combat.DamageRange{Min: p.DamageMin, Max: p.DamageMax}
		}
	case SourceMonster:
		if mon, ok := mis.SourceMonster(m.env.Actors); ok {
			mis.Damage = combat.DamageRange{Min: mon.DamageMin, Max: mon.DamageMax}
		}
	default:
		depth := mathutil.IntMax(m.env.Depth, 1)
		mis.Damage = combat.DamageRange{Min: depth, Max: 2 * depth}
	}
}

func (m *Manager) aim(mis *Missile, dst geom.Point, speed int) {
	UpdateMissileVelocity(mis, dst, speed)
	mis.Frame = int(geom.GetDirection16(mis.Position.Tile, dst))
}

func addArrow(m *Manager, mis *Missile, param *AddParameter) {
	dst := aimPoint(mis.Position.Tile, param.Dst, param.Dir)
	m.fillSourceDamage(mis)
	m.aim(mis, dst, m.tunedSpeed(mis.Kind))
}

func processArrow(m *Manager, mis *Missile) {
	mis.Range--
	mis.Dist++
	atk := attackFor(mis)
	res := m.moveMissile(mis, func(p geom.Point) bool {
		return m.checkMissileCol(mis, p, atk, nil)
	})
	if res == moveContinued && mis.Range <= 0 {
		mis.LimitReached = true
	}
	if res != moveContinued || mis.Range <= 0 {
		mis.Delete()
	}
}

func addElementalArrow(m *Manager, mis *Missile, param *AddParameter) {
	addArrow(m, mis, param)
	lvl := mis.SpellLevel
	mis.State = &ElementalArrowState{
		Phase:         arrowFlying,
		ElementDamage: combat.DamageRange{Min: 1 + lvl, Max: 10 + 2*lvl},
	}
}

// processElementalArrow flies like a plain arrow, then spends one tick on
// the impact tile dealing its element.
func processElementalArrow(m *Manager, mis *Missile) {
	st := mis.State.(*ElementalArrowState)
	switch st.Phase {
	case arrowFlying:
		mis.Range--
		mis.Dist++
		atk := attackFor(mis)
		atk.Type = combat.DamagePhysical
		res := m.moveMissile(mis, func(p geom.Point) bool {
			return m.checkMissileCol(mis, p, atk, nil)
		})
		if res == moveContinued {
			if mis.Range <= 0 {
				mis.LimitReached = true
				mis.Delete()
				return
			}
			m.followLight(mis)
			return
		}
		st.Phase = arrowImpacting
		m.StopMissile(mis)
		mis.DrawFlag = false
		tile := mis.Position.Tile
		m.spawn(mis, KindWeaponExplosion, tile, tile, geom.Direction16(mis.Frame).ToDirection(), combat.DamageRange{})
	case arrowImpacting:
		atk := attackFor(mis)
		atk.MinDamage, atk.MaxDamage = st.ElementDamage.Min, st.ElementDamage.Max
		atk.Arrow = false
		atk.Distance = 0
		m.hitTile(mis, mis.Position.Tile, atk, nil)
		mis.Delete()
	}
}

func addProjectile(m *Manager, mis *Missile, param *AddParameter) {
	dst := aimPoint(mis.Position.Tile, param.Dst, param.Dir)
	speed := m.tunedSpeed(mis.Kind)
	if mis.Kind == KindFirebolt {
		speed = mathutil.IntMin(speed+mis.SpellLevel, 2*speed)
	}
	if mis.SourceType() != SourcePlayer {
		m.fillSourceDamage(mis)
	}
	m.aim(mis, dst, speed)
}

// flyBolt moves a non-piercing projectile. It reports whether the effect
// ended this tick, and the movement result.
func (m *Manager) flyBolt(mis *Missile, accept func(collision.ActorRef) bool) (bool, moveResult) {
	mis.Range--
	atk := attackFor(mis)
	res := m.moveMissile(mis, func(p geom.Point) bool {
		return m.checkMissileCol(mis, p, atk, accept)
	})
	if res == moveContinued && mis.Range > 0 {
		m.followLight(mis)
		return false, res
	}
	mis.LimitReached = res == moveContinued
	return true, res
}

// impact replaces a projectile with its impact visual. A projectile that
// ran out of range fades without one.
func (m *Manager) impact(mis *Missile) {
	if mis.LimitReached {
		mis.Delete()
		return
	}
	tile := mis.Position.Tile
	visual := KindMissileExplosion
	if mis.Kind == KindAcid {
		visual = KindAcidSplat
	}
	m.spawn(mis, visual, tile, tile, geom.South, mis.Damage)
	mis.Delete()
}

func processProjectile(m *Manager, mis *Missile) {
	if done, _ := m.flyBolt(mis, nil); done {
		m.impact(mis)
	}
}

func processHolyBolt(m *Manager, mis *Missile) {
	undeadOnly := func(ref collision.ActorRef) bool {
		if ref.Kind != collision.ActorMonster {
			return true
		}
		mon, ok := m.env.Actors.Monster(ref.Index)
		return ok && mon.IsUndead()
	}
	if done, _ := m.flyBolt(mis, undeadOnly); done {
		m.impact(mis)
	}
}

// processFireball splashes the eight neighbours of the impact tile. The
// actor struck directly is not hit a second time.
func processFireball(m *Manager, mis *Missile) {
	done, res := m.flyBolt(mis, nil)
	if !done {
		return
	}
	var exclude int16
	if res == moveCollided {
		exclude = mis.LastCollisionTargetHash
	}
	tile := mis.Position.Tile
	m.hitArea(mis, tile, attackFor(mis), exclude)
	m.spawn(mis, KindBigExplosion, tile, tile, geom.South, combat.DamageRange{})
	mis.Delete()
}

func addChargedBolt(m *Manager, mis *Missile, param *AddParameter) {
	dst := aimPoint(mis.Position.Tile, param.Dst, param.Dir)
	frame := m.env.RNG.Intn(15)
	if n := mis.Anim.Length; n > 0 {
		mis.Anim.Frame = frame % n
	}
	st := &ChargedBoltState{
		Target:  dst,
		Heading: geom.GetDirection(mis.Position.Tile, dst),
	}
	mis.State = st
	chargedBoltTurn(m, mis, st)
}

// chargedBoltTurn picks a new heading within 45 degrees of the target.
func chargedBoltTurn(m *Manager, mis *Missile, st *ChargedBoltState) {
	if mis.Position.Tile != st.Target {
		st.Heading = geom.GetDirection(mis.Position.Tile, st.Target)
	}
	st.Heading = st.Heading.Rotate(m.env.RNG.Intn(3) - 1)
	UpdateMissileVelocity(mis, mis.Position.Tile.Add(st.Heading.Delta().Scale(4)), m.tunedSpeed(mis.Kind))
	st.NextTurn = 3 + m.env.RNG.Intn(3)
}

func processChargedBolt(m *Manager, mis *Missile) {
	st := mis.State.(*ChargedBoltState)
	st.NextTurn--
	if st.NextTurn <= 0 {
		chargedBoltTurn(m, mis, st)
	}
	if done, _ := m.flyBolt(mis, nil); done {
		m.impact(mis)
	}
}

func addBoneSpirit(m *Manager, mis *Missile, param *AddParameter) {
	dst := aimPoint(mis.Position.Tile, param.Dst, param.Dir)
	mis.State = &SeekerState{Phase: seekHoming, Target: dst}
	m.aim(mis, dst, m.tunedSpeed(mis.Kind))
}

// processBoneSpirit flies to its target tile, then turns toward the
// nearest visible monster. A hit takes a third of the victim's life.
func processBoneSpirit(m *Manager, mis *Missile) {
	st := mis.State.(*SeekerState)
	mis.Range--
	atk := attackFor(mis)
	atk.LifeFraction = 3
	res := m.moveMissile(mis, func(p geom.Point) bool {
		return m.checkMissileCol(mis, p, atk, nil)
	})
	if res != moveContinued || mis.Range <= 0 {
		m.impact(mis)
		return
	}
	if mis.Position.Tile == st.Target {
		if _, tile, ok := m.collision.NearestMonster(mis.Position.Tile, seekRadius, true); ok && tile != mis.Position.Tile {
			st.Target = tile
			m.aim(mis, tile, m.tunedSpeed(mis.Kind))
		}
	}
}

func addElemental(m *Manager, mis *Missile, param *AddParameter) {
	dst := aimPoint(mis.Position.Tile, param.Dst, param.Dir)
	st := &SeekerState{Phase: seekRising, RiseTicks: 4, Target: dst}
	mis.Range += st.RiseTicks
	mis.State = st
	mis.Frame = int(geom.GetDirection16(mis.Position.Tile, dst))
}

// processElemental rises in place, then homes on the nearest visible
// monster and bursts over a 3x3 area on contact.
func processElemental(m *Manager, mis *Missile) {
	st := mis.State.(*SeekerState)
	mis.Range--
	if st.Phase == seekRising {
		st.RiseTicks--
		if st.RiseTicks <= 0 {
			st.Phase = seekHoming
			m.aim(mis, st.Target, m.tunedSpeed(mis.Kind))
		}
		return
	}

	if _, tile, ok := m.collision.NearestMonster(mis.Position.Tile, seekRadius, true); ok {
		if tile == mis.Position.Tile {
			m.elementalBurst(mis)
			return
		}
		st.Target = tile
		m.aim(mis, tile, m.tunedSpeed(mis.Kind))
	}

	res := m.moveMissile(mis, func(p geom.Point) bool {
		_, ok := m.collision.ResolveActorHit(m.hitQuery(mis, p))
		return ok
	})
	if res != moveContinued || mis.Range <= 0 {
		m.elementalBurst(mis)
		return
	}
	m.followLight(mis)
}

func (m *Manager) elementalBurst(mis *Missile) {
	tile := mis.Position.Tile
	m.hitArea(mis, tile, attackFor(mis), 0)
	m.spawn(mis, KindBigExplosion, tile, tile, geom.South, combat.DamageRange{})
	mis.Delete()
}

func addNovaBall(m *Manager, mis *Missile, param *AddParameter) {
	dst := aimPoint(mis.Position.Tile, param.Dst, param.Dir)
	m.aim(mis, dst, m.tunedSpeed(mis.Kind))
}

// processNovaBall pierces: every actor on its path is tested once.
func processNovaBall(m *Manager, mis *Missile) {
	mis.Range--
	atk := attackFor(mis)
	res := m.moveMissile(mis, func(p geom.Point) bool {
		m.checkMissileCol(mis, p, atk, nil)
		return false
	})
	if res == moveBlocked || mis.Range <= 0 {
		mis.Delete()
	}
}

func addAcidPuddle(m *Manager, mis *Missile, param *AddParameter) {
	if m.collision.IsPathBlocked(mis.Position.Tile) {
		param.SpellFizzled = true
		return
	}
	mis.Range += m.env.RNG.Intn(15)
	if mis.Damage == (combat.DamageRange{}) {
		mis.Damage = combat.DamageRange{Min: 1, Max: 4}
	}
}

// processAcidPuddle burns whoever stands in it.
func processAcidPuddle(m *Manager, mis *Missile) {
	mis.Range--
	m.burnTile(mis)
	if mis.Range <= 0 {
		mis.Delete()
	}
}
