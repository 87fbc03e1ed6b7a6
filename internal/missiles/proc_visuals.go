package missiles

import (
	"dungeonfx/internal/geom"
)

// addVisual sizes a one-shot sprite to the length of its animation.
func addVisual(m *Manager, mis *Missile, param *AddParameter) {
	mis.Range = GetGraphicData(mis.Anim.Graphic).Lifetime()
	from := mis.Kind
	if param.Parent != nil {
		from = param.Parent.Kind
	}
	mis.State = &VisualState{From: from}
}

func processVisual(m *Manager, mis *Missile) {
	mis.Range--
	if mis.Range <= 0 {
		mis.Delete()
	}
}

// processAcidSplat leaves a puddle where it lands.
func processAcidSplat(m *Manager, mis *Missile) {
	mis.Range--
	if mis.Range > 0 {
		return
	}
	tile := mis.Position.Tile
	m.spawn(mis, KindAcidPuddle, tile, tile, geom.South, mis.Damage)
	mis.Delete()
}

// processBigExplosion damages its 3x3 block on the first tick when it
// carries damage of its own. Explosions left behind by fireballs are
// decoration only.
func processBigExplosion(m *Manager, mis *Missile) {
	st := mis.State.(*VisualState)
	if !st.Detonated {
		st.Detonated = true
		if mis.Damage.Max > 0 {
			m.hitArea(mis, mis.Position.Tile, attackFor(mis), 0)
		}
	}
	processVisual(m, mis)
}

func addApocalypseBoom(m *Manager, mis *Missile, param *AddParameter) {
	addVisual(m, mis, param)
}

// processApocalypseBoom strikes the actor under it once, ignoring
// resistances.
func processApocalypseBoom(m *Manager, mis *Missile) {
	st := mis.State.(*VisualState)
	if !st.Detonated {
		st.Detonated = true
		atk := attackFor(mis)
		atk.IgnoreResistance = true
		m.hitTile(mis, mis.Position.Tile, atk, nil)
	}
	processVisual(m, mis)
}
