package missiles

import (
	"dungeonfx/internal/collision"
	"dungeonfx/internal/combat"
	"dungeonfx/internal/geom"
	"dungeonfx/internal/world"
)

// TrapSource is the Source of effects fired by traps.
const TrapSource = -1

// SourceType tells who launched an effect.
type SourceType int

const (
	SourcePlayer SourceType = iota
	SourceMonster
	SourceTrap
)

func (s SourceType) String() string {
	switch s {
	case SourcePlayer:
		return "player"
	case SourceMonster:
		return "monster"
	default:
		return "trap"
	}
}

// Position tracks an effect in tiles and sub-tile pixels. Velocity and
// Traveled are fixed point with 16 fractional bits.
type Position struct {
	Tile     geom.Point
	Start    geom.Point
	Offset   geom.Displacement
	Velocity geom.Displacement
	Traveled geom.Displacement

	TileForRendering   geom.Point
	OffsetForRendering geom.Displacement
}

// AnimFlags control how the frame counter wraps.
type AnimFlags uint8

const (
	AnimLoops AnimFlags = 1 << iota
	AnimStopsAtEnd
	AnimNotAnimated
)

// Animation is the sprite state advanced by the manager after each update.
type Animation struct {
	Graphic Graphic
	Flags   AnimFlags
	Frame   int
	Counter int
	Delay   int
	Length  int
	// Add is the frame step, -1 plays the sequence backwards.
	Add int
}

// Finished reports whether a stop-at-end animation has shown its last frame.
func (a *Animation) Finished() bool {
	if a.Flags&AnimStopsAtEnd == 0 {
		return false
	}
	if a.Add < 0 {
		return a.Frame == 0
	}
	return a.Frame >= a.Length-1
}

// playTicks is the number of updates a stop-at-end animation needs to run
// from one end of its sequence to the other.
func (a *Animation) playTicks() int {
	if a.Flags&AnimNotAnimated != 0 || a.Length <= 1 {
		return 0
	}
	return (a.Length - 1) * a.Delay
}

func (a *Animation) advance() {
	if a.Flags&AnimNotAnimated != 0 || a.Length <= 1 {
		return
	}
	a.Counter++
	if a.Counter < a.Delay {
		return
	}
	a.Counter = 0
	a.Frame += a.Add
	switch {
	case a.Frame >= a.Length:
		if a.Flags&AnimLoops != 0 {
			a.Frame = 0
		} else {
			a.Frame = a.Length - 1
		}
	case a.Frame < 0:
		if a.Flags&AnimLoops != 0 {
			a.Frame = a.Length - 1
		} else {
			a.Frame = 0
		}
	}
}

// Missile is one live effect instance. Pointers handed out by the manager
// stay valid until the entry is swept.
type Missile struct {
	handle Handle

	Kind     Kind
	Position Position
	Anim     Animation
	// Frame is the direction index into the graphic.
	Frame int

	// Range is the remaining lifetime in ticks.
	Range int
	// LimitReached is set when a travelling effect used up its range
	// without striking anything.
	LimitReached bool
	// Age counts the updates the entry has received.
	Age     int
	deleted bool

	LightID int
	// PreFlag effects lie on the ground and are drawn beneath actors.
	PreFlag  bool
	DrawFlag bool

	Caster     collision.Target
	Source     int
	SpellLevel int
	Damage     combat.DamageRange
	// Dist is the distance travelled in tiles, used for accuracy falloff.
	Dist    int
	HitFlag bool

	// LastCollisionTargetHash is the last actor a moving effect tested, so a
	// walking actor spanning two tiles is not hit twice.
	LastCollisionTargetHash int16

	State Payload
}

// Handle returns the stable handle of this entry.
func (m *Missile) Handle() Handle {
	return m.handle
}

// Deleted reports whether the entry is marked for removal.
func (m *Missile) Deleted() bool {
	return m.deleted
}

// Delete marks the entry for removal at the end of the tick. Calling it
// again has no effect.
func (m *Missile) Delete() {
	m.deleted = true
}

// Data returns the static data of the entry's kind.
func (m *Missile) Data() *Data {
	return GetData(m.Kind)
}

// IsTrap reports whether the effect was fired by a trap.
func (m *Missile) IsTrap() bool {
	return m.Source == TrapSource
}

// SourceType classifies the effect's author.
func (m *Missile) SourceType() SourceType {
	if m.Source == TrapSource {
		return SourceTrap
	}
	if m.Caster == collision.TargetPlayers {
		return SourceMonster
	}
	return SourcePlayer
}

// IsSameSource reports whether both entries were launched by the same actor.
func (m *Missile) IsSameSource(other *Missile) bool {
	return m.SourceType() == other.SourceType() && m.Source == other.Source
}

// SourcePlayer returns the player who cast the effect. ok is false when the
// author is not a player.
func (m *Missile) SourcePlayer(actors Actors) (*world.Player, bool) {
	if m.SourceType() != SourcePlayer {
		return nil, false
	}
	return actors.Player(m.Source)
}

// SourceMonster returns the monster that cast the effect. ok is false when
// the author is not a monster.
func (m *Missile) SourceMonster(actors Actors) (*world.Monster, bool) {
	if m.SourceType() != SourceMonster {
		return nil, false
	}
	return actors.Monster(m.Source)
}

func (m *Missile) sourceRef() collision.ActorRef {
	switch m.SourceType() {
	case SourcePlayer:
		return collision.ActorRef{Kind: collision.ActorPlayer, Index: m.Source}
	case SourceMonster:
		return collision.ActorRef{Kind: collision.ActorMonster, Index: m.Source}
	}
	return collision.ActorRef{}
}
