package world

import "dungeonfx/internal/geom"

// NoLight is the id of "no light source".
const NoLight = -1

// Light is one dynamic light source.
type Light struct {
	Tile   geom.Point
	Offset geom.Displacement
	Radius int
	active bool
}

// Lights is the dynamic light table. Ids are reused after DeleteLight.
type Lights struct {
	entries []Light
	free    []int
	active  int
}

func NewLights() *Lights {
	return &Lights{}
}

// AddLight registers a light and returns its id.
func (l *Lights) AddLight(p geom.Point, radius int) int {
	light := Light{Tile: p, Radius: radius, active: true}
	l.active++
	if n := len(l.free); n > 0 {
		id := l.free[n-1]
		l.free = l.free[:n-1]
		l.entries[id] = light
		return id
	}
	l.entries = append(l.entries, light)
	return len(l.entries) - 1
}

func (l *Lights) valid(id int) bool {
	return id >= 0 && id < len(l.entries) && l.entries[id].active
}

// ChangeLight moves a light and sets its radius.
func (l *Lights) ChangeLight(id int, p geom.Point, radius int) {
	if !l.valid(id) {
		return
	}
	l.entries[id].Tile = p
	l.entries[id].Radius = radius
}

// ChangeLightOffset sets the sub-tile offset of a light.
func (l *Lights) ChangeLightOffset(id int, off geom.Displacement) {
	if !l.valid(id) {
		return
	}
	l.entries[id].Offset = off
}

// DeleteLight frees id. Unknown ids are ignored.
func (l *Lights) DeleteLight(id int) {
	if !l.valid(id) {
		return
	}
	l.entries[id].active = false
	l.free = append(l.free, id)
	l.active--
}

// Get returns the light with id.
func (l *Lights) Get(id int) (Light, bool) {
	if !l.valid(id) {
		return Light{}, false
	}
	return l.entries[id], true
}

// Count is the number of live lights.
func (l *Lights) Count() int {
	return l.active
}

// ForEach calls fn for every live light.
func (l *Lights) ForEach(fn func(id int, light Light)) {
	for id, light := range l.entries {
		if light.active {
			fn(id, light)
		}
	}
}

// Reset removes every light.
func (l *Lights) Reset() {
	l.entries = l.entries[:0]
	l.free = l.free[:0]
	l.active = 0
}
