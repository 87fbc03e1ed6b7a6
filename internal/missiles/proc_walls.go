package missiles

import (
	"dungeonfx/internal/geom"
	"dungeonfx/internal/mathutil"
)

const ringOfFireRadius = 3

func wallSegmentKind(control Kind) Kind {
	if control == KindLightningWallControl {
		return KindLightningWall
	}
	return KindFireWall
}

// addWallControl plants the centre of a wall at the destination. The wall
// grows perpendicular to the cast direction.
func addWallControl(m *Manager, mis *Missile, param *AddParameter) {
	if m.collision.IsPathBlocked(param.Dst) {
		param.SpellFizzled = true
		return
	}
	dir := param.Dir
	if mis.Position.Tile != param.Dst {
		dir = geom.GetDirection(mis.Position.Tile, param.Dst)
	}
	mis.Position.Tile = param.Dst
	mis.Position.Start = param.Dst
	mis.State = &WallControlState{
		Segment: wallSegmentKind(mis.Kind),
		Left:    WallEnd{Tile: param.Dst, Dir: dir.Rotate(-2), Open: true},
		Right:   WallEnd{Tile: param.Dst, Dir: dir.Rotate(2), Open: true},
	}
}

// processWallControl lays the centre segment on its first tick and then one
// segment per open end per tick until both ends meet a wall.
func processWallControl(m *Manager, mis *Missile) {
	st := mis.State.(*WallControlState)
	mis.Range--
	if !st.Started {
		st.Started = true
		m.spawn(mis, st.Segment, mis.Position.Tile, mis.Position.Tile, st.Left.Dir, mis.Damage)
	} else {
		m.growWall(mis, st, &st.Left)
		m.growWall(mis, st, &st.Right)
	}
	if mis.Range <= 0 || (!st.Left.Open && !st.Right.Open) {
		mis.Delete()
	}
}

func (m *Manager) growWall(mis *Missile, st *WallControlState, end *WallEnd) {
	if !end.Open {
		return
	}
	next := nextTile(end.Tile, end.Dir)
	if m.collision.IsPathBlocked(next) {
		end.Open = false
		return
	}
	end.Tile = next
	m.spawn(mis, st.Segment, next, next, end.Dir, mis.Damage)
}

func addWallSegment(m *Manager, mis *Missile, param *AddParameter) {
	mis.Range += 10 * mis.SpellLevel
	mis.Frame = int(param.Dir) % GetGraphicData(mis.Anim.Graphic).Directions
}

// processWallSegment burns whoever stands in it.
func processWallSegment(m *Manager, mis *Missile) {
	mis.Range--
	m.burnTile(mis)
	if mis.Range <= 0 {
		mis.Delete()
	}
}

// addRingOfFire surrounds the destination with fire wall segments. Tiles
// out of sight of the centre stay empty.
func addRingOfFire(m *Manager, mis *Missile, param *AddParameter) {
	centre := param.Dst
	r := ringOfFireRadius
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if mathutil.IntMax(mathutil.IntAbs(dx), mathutil.IntAbs(dy)) != r {
				continue
			}
			p := geom.Point{X: centre.X + dx, Y: centre.Y + dy}
			if m.collision.IsPathBlocked(p) || !m.collision.HasLineOfSight(centre, p) {
				continue
			}
			m.spawn(mis, KindFireWall, p, p, geom.South, mis.Damage)
		}
	}
}

// processDeleteNow ends controllers whose work is done at creation.
func processDeleteNow(m *Manager, mis *Missile) {
	mis.Delete()
}

func addFlameWaveControl(m *Manager, mis *Missile, param *AddParameter) {
	dir := param.Dir
	if mis.Position.Tile != param.Dst {
		dir = geom.GetDirection(mis.Position.Tile, param.Dst)
	}
	mis.State = &FlameWaveControlState{Dir: dir}
}

// processFlameWaveControl lines up a row of flames in front of the caster,
// spreading sideways until a wall, and sends them forward.
func processFlameWaveControl(m *Manager, mis *Missile) {
	st := mis.State.(*FlameWaveControlState)
	centre := nextTile(mis.Position.Tile, st.Dir)
	if !m.collision.IsPathBlocked(centre) {
		m.launchFlame(mis, centre, st.Dir)
		width := mis.SpellLevel/2 + 2
		for _, side := range []geom.Direction{st.Dir.Rotate(-2), st.Dir.Rotate(2)} {
			p := centre
			for i := 0; i < width; i++ {
				p = nextTile(p, side)
				if m.collision.IsPathBlocked(p) {
					break
				}
				m.launchFlame(mis, p, st.Dir)
			}
		}
	}
	mis.Delete()
}

func (m *Manager) launchFlame(mis *Missile, p geom.Point, dir geom.Direction) {
	dst := p.Add(dir.Delta().Scale(16))
	m.spawn(mis, KindFlameWave, p, dst, dir, mis.Damage)
}

func addFlameWave(m *Manager, mis *Missile, param *AddParameter) {
	dst := aimPoint(mis.Position.Tile, param.Dst, param.Dir)
	UpdateMissileVelocity(mis, dst, m.tunedSpeed(mis.Kind))
	mis.Frame = int(param.Dir) % GetGraphicData(mis.Anim.Graphic).Directions
}

// processFlameWave rolls forward through actors until a wall stops it.
func processFlameWave(m *Manager, mis *Missile) {
	mis.Range--
	atk := attackFor(mis)
	m.checkMissileCol(mis, mis.Position.Tile, atk, nil)
	res := m.moveMissile(mis, func(p geom.Point) bool {
		m.checkMissileCol(mis, p, atk, nil)
		return false
	})
	if res == moveBlocked || mis.Range <= 0 {
		mis.Delete()
		return
	}
	m.followLight(mis)
}
