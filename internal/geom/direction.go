package geom

import "dungeonfx/internal/mathutil"

// Direction is one of the eight facings, clockwise from South. The grid is
// top-down with y growing southward.
type Direction uint8

const (
	South Direction = iota
	SouthWest
	West
	NorthWest
	North
	NorthEast
	East
	SouthEast
)

var directionNames = [...]string{"South", "SouthWest", "West", "NorthWest", "North", "NorthEast", "East", "SouthEast"}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "Unknown"
}

var directionDeltas = [...]Displacement{
	South:     {0, 1},
	SouthWest: {-1, 1},
	West:      {-1, 0},
	NorthWest: {-1, -1},
	North:     {0, -1},
	NorthEast: {1, -1},
	East:      {1, 0},
	SouthEast: {1, 1},
}

// Delta is the unit step for the direction.
func (d Direction) Delta() Displacement {
	return directionDeltas[d&7]
}

// Rotate turns the direction by n eighths (positive is clockwise).
func (d Direction) Rotate(n int) Direction {
	return Direction(((int(d)+n)%8 + 8) % 8)
}

// Opposite returns the direction rotated by half a turn.
func (d Direction) Opposite() Direction {
	return d.Rotate(4)
}

// GetDirection returns the 8-way facing from start toward destination.
// An axis is chosen when the minor/major ratio is at most 0.4, an integer
// approximation of tan(22.5 degrees); otherwise the diagonal is used.
func GetDirection(start, destination Point) Direction {
	mx := destination.X - start.X
	my := destination.Y - start.Y
	ax, ay := mathutil.IntAbs(mx), mathutil.IntAbs(my)

	vertical, horizontal := South, East
	if my < 0 {
		vertical = North
	}
	if mx < 0 {
		horizontal = West
	}

	if 5*ax <= 2*ay {
		return vertical
	}
	if 5*ay <= 2*ax {
		return horizontal
	}
	switch {
	case mx >= 0 && my >= 0:
		return SouthEast
	case mx < 0 && my >= 0:
		return SouthWest
	case mx < 0:
		return NorthWest
	default:
		return NorthEast
	}
}

// Direction16 is a finer facing used to pick sprites of 16-frame effects.
//
//	            N
//	       NNW     NNE
//	    NW             NE
//	  WNW                ENE
//	W                       E
//	  WSW                ESE
//	    SW             SE
//	       SSW     SSE
//	            S
type Direction16 uint8

const (
	South16 Direction16 = iota
	SouthSouthWest16
	SouthWest16
	WestSouthWest16
	West16
	WestNorthWest16
	NorthWest16
	NorthNorthWest16
	North16
	NorthNorthEast16
	NorthEast16
	EastNorthEast16
	East16
	EastSouthEast16
	SouthEast16
	SouthSouthEast16
)

// ToDirection rounds the facing to the nearest 8-way direction, favouring
// the clockwise neighbour on ties.
func (d Direction16) ToDirection() Direction {
	return Direction(((int(d) + 1) / 2) % 8)
}

// GetDirection16 returns the 16-way facing from p1 toward p2. Within an
// octant the facing sits on the axis when minor/major < 0.2 (tan 11.25),
// one step off when it is at most 2/3 (tan 33.75), and on the diagonal
// otherwise.
func GetDirection16(p1, p2 Point) Direction16 {
	d := p2.Sub(p1)
	ax, ay := mathutil.IntAbs(d.DeltaX), mathutil.IntAbs(d.DeltaY)

	major, minor := ay, ax
	verticalMajor := true
	if ax > ay {
		major, minor = ax, ay
		verticalMajor = false
	}

	var steps int
	switch {
	case 5*minor < major:
		steps = 0
	case 3*minor <= 2*major:
		steps = 1
	default:
		steps = 2
	}

	var base, dir int
	if verticalMajor {
		if d.DeltaY >= 0 {
			base = int(South16)
			dir = 1 // toward SouthWest
			if d.DeltaX > 0 {
				dir = -1
			}
		} else {
			base = int(North16)
			dir = 1 // toward NorthEast
			if d.DeltaX < 0 {
				dir = -1
			}
		}
	} else {
		if d.DeltaX < 0 {
			base = int(West16)
			dir = 1 // toward NorthWest
			if d.DeltaY > 0 {
				dir = -1
			}
		} else {
			base = int(East16)
			dir = 1 // toward SouthEast
			if d.DeltaY < 0 {
				dir = -1
			}
		}
	}
	return Direction16(((base+dir*steps)%16 + 16) % 16)
}
