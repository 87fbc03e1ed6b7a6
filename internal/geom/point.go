package geom

import (
	"fmt"

	"dungeonfx/internal/mathutil"
)

// TilePixels is the edge length of one tile in sub-tile pixels.
const TilePixels = 32

// Point is a tile coordinate on the level grid.
type Point struct {
	X, Y int
}

// Displacement is a difference between two points, or a pixel offset.
type Displacement struct {
	DeltaX, DeltaY int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Add moves the point by d.
func (p Point) Add(d Displacement) Point {
	return Point{X: p.X + d.DeltaX, Y: p.Y + d.DeltaY}
}

// Sub returns the displacement from q to p.
func (p Point) Sub(q Point) Displacement {
	return Displacement{DeltaX: p.X - q.X, DeltaY: p.Y - q.Y}
}

// WalkingDistance is the number of king moves between two points.
func (p Point) WalkingDistance(q Point) int {
	d := p.Sub(q)
	return mathutil.IntMax(mathutil.IntAbs(d.DeltaX), mathutil.IntAbs(d.DeltaY))
}

// ManhattanDistance is |dx| + |dy|.
func (p Point) ManhattanDistance(q Point) int {
	d := p.Sub(q)
	return mathutil.IntAbs(d.DeltaX) + mathutil.IntAbs(d.DeltaY)
}

// ApproxDistance is the octagonal distance approximation used for
// range checks: max + min/2.
func (p Point) ApproxDistance(q Point) int {
	d := p.Sub(q)
	a, b := mathutil.IntAbs(d.DeltaX), mathutil.IntAbs(d.DeltaY)
	if a < b {
		a, b = b, a
	}
	return a + b/2
}

func (d Displacement) Add(o Displacement) Displacement {
	return Displacement{DeltaX: d.DeltaX + o.DeltaX, DeltaY: d.DeltaY + o.DeltaY}
}

func (d Displacement) Sub(o Displacement) Displacement {
	return Displacement{DeltaX: d.DeltaX - o.DeltaX, DeltaY: d.DeltaY - o.DeltaY}
}

// Scale multiplies both components by n.
func (d Displacement) Scale(n int) Displacement {
	return Displacement{DeltaX: d.DeltaX * n, DeltaY: d.DeltaY * n}
}

// Shr shifts both components right (arithmetic, rounds toward negative infinity).
func (d Displacement) Shr(n uint) Displacement {
	return Displacement{DeltaX: d.DeltaX >> n, DeltaY: d.DeltaY >> n}
}

func (d Displacement) IsZero() bool {
	return d.DeltaX == 0 && d.DeltaY == 0
}

// PixelsToTiles converts a pixel displacement into the whole-tile part,
// rounding to the nearest tile so the tile changes when the centre of the
// sprite crosses a tile edge.
func (d Displacement) PixelsToTiles() Displacement {
	half := TilePixels / 2
	return Displacement{
		DeltaX: mathutil.FloorDiv(d.DeltaX+half, TilePixels),
		DeltaY: mathutil.FloorDiv(d.DeltaY+half, TilePixels),
	}
}

// TilesToPixels is the inverse of PixelsToTiles for whole tiles.
func (d Displacement) TilesToPixels() Displacement {
	return d.Scale(TilePixels)
}
