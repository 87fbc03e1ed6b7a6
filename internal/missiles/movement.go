package missiles

import (
	"dungeonfx/internal/geom"
	"dungeonfx/internal/mathutil"
)

const (
	// fixedShift is the number of fractional bits in velocities.
	fixedShift = 16
	// maxSubStep is the longest distance moved between two tile checks.
	maxSubStep = (geom.TilePixels / 4) << fixedShift
)

type moveResult int

const (
	moveContinued moveResult = iota
	moveBlocked
	moveCollided
)

// UpdateMissileVelocity aims mis at dst with the given speed in pixels
// per tick. A destination equal to the current tile stops the effect.
func UpdateMissileVelocity(mis *Missile, dst geom.Point, speed int) {
	mis.Position.Velocity = geom.Displacement{}
	d := dst.Sub(mis.Position.Tile)
	if d.IsZero() {
		return
	}
	dx, dy := int64(d.DeltaX), int64(d.DeltaY)
	length := mathutil.ISqrt((dx*dx + dy*dy) << (2 * fixedShift))
	if length == 0 {
		return
	}
	s := int64(speed)
	mis.Position.Velocity = geom.Displacement{
		DeltaX: int((dx * s << (2 * fixedShift)) / length),
		DeltaY: int((dy * s << (2 * fixedShift)) / length),
	}
}

// setTraveled recomputes tile and offset from a fixed-point distance.
func setTraveled(pos *Position, traveled geom.Displacement) {
	pos.Traveled = traveled
	pixels := traveled.Shr(fixedShift)
	tiles := pixels.PixelsToTiles()
	pos.Tile = pos.Start.Add(tiles)
	pos.Offset = pixels.Sub(tiles.TilesToPixels())
}

// moveMissile advances mis by one tick of velocity in sub-steps of at most
// a quarter tile. Each newly entered tile is checked: every moving effect
// stops in front of walls, and onEnter may stop it by returning true.
func (m *Manager) moveMissile(mis *Missile, onEnter func(p geom.Point) bool) moveResult {
	v := mis.Position.Velocity
	if v.IsZero() {
		return moveContinued
	}

	major := mathutil.IntMax(mathutil.IntAbs(v.DeltaX), mathutil.IntAbs(v.DeltaY))
	steps := mathutil.IntMax(1, (major+maxSubStep-1)/maxSubStep)
	base := mis.Position.Traveled

	for i := 1; i <= steps; i++ {
		prev := mis.Position.Traveled
		prevTile := mis.Position.Tile
		setTraveled(&mis.Position, base.Add(geom.Displacement{
			DeltaX: v.DeltaX * i / steps,
			DeltaY: v.DeltaY * i / steps,
		}))
		p := mis.Position.Tile
		if p == prevTile {
			continue
		}
		if m.collision.IsPathBlocked(p) {
			setTraveled(&mis.Position, prev)
			return moveBlocked
		}
		if !m.collision.InBounds(p) {
			return moveContinued
		}
		if onEnter != nil && onEnter(p) {
			return moveCollided
		}
	}
	return moveContinued
}

// nextTile is the tile one step from mis along dir.
func nextTile(p geom.Point, dir geom.Direction) geom.Point {
	return p.Add(dir.Delta())
}

// aimPoint returns dst, or the tile in front of src when both coincide.
func aimPoint(src, dst geom.Point, dir geom.Direction) geom.Point {
	if src == dst {
		return nextTile(src, dir)
	}
	return dst
}
