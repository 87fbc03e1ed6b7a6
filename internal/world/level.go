package world

import (
	"errors"
	"fmt"

	"dungeonfx/internal/geom"
)

var (
	ErrOutOfBounds  = errors.New("tile out of bounds")
	ErrTileBlocked  = errors.New("tile is not walkable")
	ErrTileOccupied = errors.New("tile is occupied")
)

// Trap is a wall fixture that fires an effect in its facing direction.
type Trap struct {
	Tile   geom.Point
	Facing geom.Direction
	// Missile is the effect kind name the trap fires.
	Missile string
	// Period is the number of ticks between shots.
	Period int
}

// Level is one dungeon floor: tiles, actors standing on them and the
// light table. It satisfies collision.TileChecker and collision.Occupancy.
type Level struct {
	Name   string
	Width  int
	Height int
	Depth  int
	Tiles  [][]TileType

	Players  []*Player
	Monsters []*Monster
	Traps    []Trap
	Lights   *Lights

	// occupancy grids hold index+1, 0 for empty
	monsterGrid [][]int
	playerGrid  [][]int
}

// NewLevel creates an all-floor level.
func NewLevel(name string, width, height int) *Level {
	l := &Level{
		Name:        name,
		Width:       width,
		Height:      height,
		Tiles:       make([][]TileType, height),
		Lights:      NewLights(),
		monsterGrid: make([][]int, height),
		playerGrid:  make([][]int, height),
	}
	for y := 0; y < height; y++ {
		l.Tiles[y] = make([]TileType, width)
		l.monsterGrid[y] = make([]int, width)
		l.playerGrid[y] = make([]int, width)
	}
	return l
}

func (l *Level) InBounds(p geom.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < l.Width && p.Y < l.Height
}

// TileAt returns the tile at p; out of bounds reads as wall.
func (l *Level) TileAt(p geom.Point) TileType {
	if !l.InBounds(p) {
		return TileWall
	}
	return l.Tiles[p.Y][p.X]
}

func (l *Level) SetTile(p geom.Point, t TileType) {
	if l.InBounds(p) {
		l.Tiles[p.Y][p.X] = t
	}
}

// IsTileBlocking implements collision.TileChecker.
func (l *Level) IsTileBlocking(tileX, tileY int) bool {
	return l.TileAt(geom.Point{X: tileX, Y: tileY}).BlocksMissile()
}

// GetWorldBounds implements collision.TileChecker.
func (l *Level) GetWorldBounds() (width, height int) {
	return l.Width, l.Height
}

// MonsterAt implements collision.Occupancy. Dead monsters never occupy.
func (l *Level) MonsterAt(p geom.Point) (int, bool) {
	if !l.InBounds(p) {
		return 0, false
	}
	v := l.monsterGrid[p.Y][p.X]
	return v - 1, v > 0
}

// PlayerAt implements collision.Occupancy.
func (l *Level) PlayerAt(p geom.Point) (int, bool) {
	if !l.InBounds(p) {
		return 0, false
	}
	v := l.playerGrid[p.Y][p.X]
	return v - 1, v > 0
}

func (l *Level) Player(idx int) (*Player, bool) {
	if idx < 0 || idx >= len(l.Players) {
		return nil, false
	}
	return l.Players[idx], true
}

func (l *Level) Monster(idx int) (*Monster, bool) {
	if idx < 0 || idx >= len(l.Monsters) {
		return nil, false
	}
	return l.Monsters[idx], true
}

func (l *Level) PlayerCount() int  { return len(l.Players) }
func (l *Level) MonsterCount() int { return len(l.Monsters) }

func (l *Level) checkFree(p geom.Point) error {
	if !l.InBounds(p) {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, p)
	}
	if !l.Tiles[p.Y][p.X].Walkable() {
		return fmt.Errorf("%w: %v", ErrTileBlocked, p)
	}
	if l.monsterGrid[p.Y][p.X] != 0 || l.playerGrid[p.Y][p.X] != 0 {
		return fmt.Errorf("%w: %v", ErrTileOccupied, p)
	}
	return nil
}

// AddPlayer places p on p.Tile and returns its index.
func (l *Level) AddPlayer(p *Player) (int, error) {
	if err := l.checkFree(p.Tile); err != nil {
		return -1, err
	}
	l.Players = append(l.Players, p)
	idx := len(l.Players) - 1
	l.playerGrid[p.Tile.Y][p.Tile.X] = idx + 1
	return idx, nil
}

// AddMonster places m on m.Tile and returns its index.
func (l *Level) AddMonster(m *Monster) (int, error) {
	if err := l.checkFree(m.Tile); err != nil {
		return -1, err
	}
	l.Monsters = append(l.Monsters, m)
	idx := len(l.Monsters) - 1
	m.Future = m.Tile
	l.monsterGrid[m.Tile.Y][m.Tile.X] = idx + 1
	return idx, nil
}

// MovePlayer relocates a player at once, as teleport does.
func (l *Level) MovePlayer(idx int, to geom.Point) error {
	p, ok := l.Player(idx)
	if !ok {
		return fmt.Errorf("no player %d", idx)
	}
	if err := l.checkFree(to); err != nil {
		return err
	}
	l.playerGrid[p.Tile.Y][p.Tile.X] = 0
	p.Tile = to
	l.playerGrid[to.Y][to.X] = idx + 1
	return nil
}

// StartWalk marks next as occupied by monster idx while it keeps its
// current tile. FinishWalk completes the step.
func (l *Level) StartWalk(idx int, next geom.Point) error {
	m, ok := l.Monster(idx)
	if !ok || !m.IsAlive() {
		return fmt.Errorf("no live monster %d", idx)
	}
	if m.Walking {
		return fmt.Errorf("monster %d is already walking", idx)
	}
	if err := l.checkFree(next); err != nil {
		return err
	}
	m.Walking = true
	m.Future = next
	l.monsterGrid[next.Y][next.X] = idx + 1
	return nil
}

// FinishWalk moves a walking monster onto its future tile.
func (l *Level) FinishWalk(idx int) {
	m, ok := l.Monster(idx)
	if !ok || !m.Walking {
		return
	}
	if l.monsterGrid[m.Tile.Y][m.Tile.X] == idx+1 {
		l.monsterGrid[m.Tile.Y][m.Tile.X] = 0
	}
	m.Tile = m.Future
	m.Walking = false
}

// KillMonster removes a monster from the occupancy grid.
func (l *Level) KillMonster(idx int) {
	m, ok := l.Monster(idx)
	if !ok || m.Dead {
		return
	}
	m.Dead = true
	m.Petrified = false
	for _, p := range []geom.Point{m.Tile, m.Future} {
		if l.InBounds(p) && l.monsterGrid[p.Y][p.X] == idx+1 {
			l.monsterGrid[p.Y][p.X] = 0
		}
	}
}

// LiveMonsters counts monsters still standing.
func (l *Level) LiveMonsters() int {
	n := 0
	for _, m := range l.Monsters {
		if m.IsAlive() {
			n++
		}
	}
	return n
}

// ToggleDoor opens a closed door or closes an empty open one.
func (l *Level) ToggleDoor(p geom.Point) bool {
	switch l.TileAt(p) {
	case TileDoorClosed:
		l.SetTile(p, TileDoorOpen)
		return true
	case TileDoorOpen:
		if l.monsterGrid[p.Y][p.X] != 0 || l.playerGrid[p.Y][p.X] != 0 {
			return false
		}
		l.SetTile(p, TileDoorClosed)
		return true
	}
	return false
}
