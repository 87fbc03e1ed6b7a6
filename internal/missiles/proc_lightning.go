package missiles

import (
	"dungeonfx/internal/geom"
	"dungeonfx/internal/mathutil"
)

// maxChainRadius caps the search radius of chain lightning.
const maxChainRadius = 8

// addLightningControl starts an invisible mover that leaves a lightning
// segment on every tile it crosses, its starting tile included.
func addLightningControl(m *Manager, mis *Missile, param *AddParameter) {
	dst := aimPoint(mis.Position.Tile, param.Dst, param.Dir)
	UpdateMissileVelocity(mis, dst, m.tunedSpeed(mis.Kind))
	mis.State = &ControlState{LastTile: mis.Position.Tile}
	m.spawn(mis, KindLightning, mis.Position.Tile, mis.Position.Tile, param.Dir, mis.Damage)
}

func processLightningControl(m *Manager, mis *Missile) {
	st := mis.State.(*ControlState)
	mis.Range--
	res := m.moveMissile(mis, func(p geom.Point) bool {
		st.LastTile = p
		m.spawn(mis, KindLightning, p, p, geom.South, mis.Damage)
		return false
	})
	if res == moveBlocked || mis.Range <= 0 {
		mis.Delete()
	}
}

func addLightning(m *Manager, mis *Missile, param *AddParameter) {
	if param.Parent != nil && param.Parent.SourceType() == SourceMonster {
		mis.Range = mathutil.IntMax(mis.Range/2, 1)
	}
}

// processLightning zaps the actor standing in the segment.
func processLightning(m *Manager, mis *Missile) {
	mis.Range--
	m.burnTile(mis)
	if mis.Range <= 0 {
		mis.Delete()
	}
}

func addChainLightning(m *Manager, mis *Missile, param *AddParameter) {
	mis.State = &ChainState{
		Target: aimPoint(mis.Position.Tile, param.Dst, param.Dir),
		Radius: mathutil.IntMin(mis.SpellLevel+3, maxChainRadius),
	}
}

// processChainLightning fires one bolt at the target and one at every
// visible monster around the caster, then ends.
func processChainLightning(m *Manager, mis *Missile) {
	st := mis.State.(*ChainState)
	src := mis.Position.Tile
	m.spawn(mis, KindLightningControl, src, st.Target, geom.GetDirection(src, st.Target), mis.Damage)
	for _, tile := range m.collision.MonstersInRadius(src, st.Radius) {
		if tile == st.Target || tile == src {
			continue
		}
		if !m.collision.HasLineOfSight(src, tile) {
			continue
		}
		m.spawn(mis, KindLightningControl, src, tile, geom.GetDirection(src, tile), mis.Damage)
	}
	mis.Delete()
}
