package world

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"log"
	"strings"

	"dungeonfx/internal/config"
	"dungeonfx/internal/geom"
)

// DefaultTrapPeriod is the number of ticks between trap shots.
const DefaultTrapPeriod = 30

// MonsterSpawn represents a monster spawn point from the map
type MonsterSpawn struct {
	X, Y       int
	MonsterKey string // YAML monster key
}

// TrapSpawn is an arrow trap read from the map.
type TrapSpawn struct {
	X, Y   int
	Facing geom.Direction
}

// MapData contains the loaded map information
type MapData struct {
	Name          string
	Width         int
	Height        int
	Tiles         [][]TileType
	MonsterSpawns []MonsterSpawn
	TrapSpawns    []TrapSpawn
	StartX        int
	StartY        int
}

// MapLoader handles loading ASCII level maps
type MapLoader struct {
	monsters *config.MonsterTable
	logger   *log.Logger
}

// NewMapLoader creates a new map loader. Monster letters are resolved
// through monsters; nil disables monster placement.
func NewMapLoader(monsters *config.MonsterTable) *MapLoader {
	return &MapLoader{monsters: monsters, logger: log.Default()}
}

// LoadMap loads a map from fsys.
func (ml *MapLoader) LoadMap(fsys fs.FS, name string) (*MapData, error) {
	file, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open map file %s: %w", name, err)
	}
	defer file.Close()
	return ml.ParseMap(file, name)
}

// ParseMap reads map rows from r. Lines starting with ';' are comments.
func (ml *MapLoader) ParseMap(r io.Reader, name string) (*MapData, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading map file: %w", err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("map file contains no valid map data")
	}

	height := len(lines)
	width := len(lines[0])
	for i, line := range lines {
		if len(line) != width {
			return nil, fmt.Errorf("line %d has inconsistent width: expected %d, got %d", i+1, width, len(line))
		}
	}

	mapData := &MapData{
		Name:   name,
		Width:  width,
		Height: height,
		Tiles:  make([][]TileType, height),
		StartX: -1, // No default start position - must be set explicitly with P
		StartY: -1,
	}

	for y, line := range lines {
		mapData.Tiles[y] = make([]TileType, width)
		for x, char := range line {
			mapData.Tiles[y][x] = ml.parseMapCharacter(mapData, x, y, char)
		}
	}
	return mapData, nil
}

// parseMapCharacter converts a map character to a tile type and records
// spawns found on it.
func (ml *MapLoader) parseMapCharacter(md *MapData, x, y int, char rune) TileType {
	switch char {
	case '#':
		return TileWall
	case '+':
		return TileDoorClosed
	case '/':
		return TileDoorOpen
	case '.', ' ':
		return TileFloor
	case 'P':
		md.StartX, md.StartY = x, y
		return TileFloor
	case '>', '<', '^', 'v':
		facing := map[rune]geom.Direction{'>': geom.East, '<': geom.West, '^': geom.North, 'v': geom.South}[char]
		md.TrapSpawns = append(md.TrapSpawns, TrapSpawn{X: x, Y: y, Facing: facing})
		return TileWall
	}

	if ml.monsters != nil {
		if key, _, ok := ml.monsters.GetMonsterByLetter(string(char)); ok {
			md.MonsterSpawns = append(md.MonsterSpawns, MonsterSpawn{X: x, Y: y, MonsterKey: key})
			return TileFloor
		}
	}
	ml.logger.Printf("Warning: unknown map character %q at (%d,%d), using floor", char, x, y)
	return TileFloor
}

// BuildLevel instantiates a level from map data: tiles, traps, monsters and
// the hero at the start position.
func (ml *MapLoader) BuildLevel(md *MapData, hero *Player, depth int) (*Level, error) {
	level := NewLevel(md.Name, md.Width, md.Height)
	level.Depth = depth
	for y := range md.Tiles {
		copy(level.Tiles[y], md.Tiles[y])
	}

	for _, ts := range md.TrapSpawns {
		level.Traps = append(level.Traps, Trap{
			Tile:    geom.Point{X: ts.X, Y: ts.Y},
			Facing:  ts.Facing,
			Missile: "arrow",
			Period:  DefaultTrapPeriod,
		})
	}

	for _, spawn := range md.MonsterSpawns {
		def, err := ml.monsters.GetMonsterByKey(spawn.MonsterKey)
		if err != nil {
			return nil, err
		}
		m, err := NewMonsterFromConfig(spawn.MonsterKey, def, geom.Point{X: spawn.X, Y: spawn.Y})
		if err != nil {
			return nil, err
		}
		if _, err := level.AddMonster(m); err != nil {
			return nil, fmt.Errorf("placing %s: %w", spawn.MonsterKey, err)
		}
	}

	if hero != nil {
		if md.StartX < 0 {
			return nil, fmt.Errorf("map %s has no start position", md.Name)
		}
		hero.Tile = geom.Point{X: md.StartX, Y: md.StartY}
		if _, err := level.AddPlayer(hero); err != nil {
			return nil, fmt.Errorf("placing hero: %w", err)
		}
	}
	return level, nil
}
