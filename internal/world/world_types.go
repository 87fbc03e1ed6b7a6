package world

// TileType is the kind of one level cell.
type TileType int

const (
	TileFloor      TileType = iota // walkable, lets effects through
	TileWall                       // blocks actors and effects
	TileDoorClosed                 // blocks until opened
	TileDoorOpen                   // walkable doorway
)

func (t TileType) String() string {
	switch t {
	case TileFloor:
		return "floor"
	case TileWall:
		return "wall"
	case TileDoorClosed:
		return "closed door"
	case TileDoorOpen:
		return "open door"
	default:
		return "unknown"
	}
}

// BlocksMissile reports whether effects stop at this tile.
func (t TileType) BlocksMissile() bool {
	return t == TileWall || t == TileDoorClosed
}

// Walkable reports whether an actor may stand on this tile.
func (t TileType) Walkable() bool {
	return t == TileFloor || t == TileDoorOpen
}

// Letter is the map character for the tile.
func (t TileType) Letter() rune {
	switch t {
	case TileWall:
		return '#'
	case TileDoorClosed:
		return '+'
	case TileDoorOpen:
		return '/'
	default:
		return '.'
	}
}
