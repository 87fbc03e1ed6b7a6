package missiles

import (
	"dungeonfx/internal/combat"
	"dungeonfx/internal/geom"
)

// Payload is the per-kind scratch state of an effect. The set of
// implementations is closed to this package.
type Payload interface {
	isPayload()
}

type arrowPhase uint8

const (
	arrowFlying arrowPhase = iota
	arrowImpacting
)

// ElementalArrowState carries the two phases of fire and lightning arrows.
type ElementalArrowState struct {
	Phase         arrowPhase
	ElementDamage combat.DamageRange
}

// ChargedBoltState is the wandering heading of a charged bolt.
type ChargedBoltState struct {
	Target   geom.Point
	Heading  geom.Direction
	NextTurn int
}

type seekPhase uint8

const (
	seekRising seekPhase = iota
	seekHoming
)

// SeekerState is shared by bone spirits and elementals.
type SeekerState struct {
	Phase     seekPhase
	RiseTicks int
	Target    geom.Point
}

// ControlState remembers the last tile a lightning control seeded.
type ControlState struct {
	LastTile geom.Point
}

// ChainState holds the targets of a chain lightning cast.
type ChainState struct {
	Target geom.Point
	Radius int
}

// WallEnd is one growing end of a wall.
type WallEnd struct {
	Tile geom.Point
	Dir  geom.Direction
	Open bool
}

// WallControlState grows a wall from its centre in both directions.
type WallControlState struct {
	Segment Kind
	Left    WallEnd
	Right   WallEnd
	Started bool
}

// FlameWaveControlState is the heading of a flame wave row.
type FlameWaveControlState struct {
	Dir geom.Direction
}

type guardianPhase uint8

const (
	guardianRising guardianPhase = iota
	guardianActive
	guardianSinking
)

// GuardianState drives the turret life cycle.
type GuardianState struct {
	Phase    guardianPhase
	Cooldown int
	Shots    int
}

// ApocalypseState is the area scanned by an apocalypse, one row per tick.
type ApocalypseState struct {
	Min    geom.Point
	Max    geom.Point
	Row    int
	Origin geom.Point
}

// StoneCurseState points at the petrified monster.
type StoneCurseState struct {
	Monster int
}

type portalPhase uint8

const (
	portalOpening portalPhase = iota
	portalOpen
)

// TownPortalState tracks the portal animation phase. Claimed is set once
// the portal has closed its caster's older portals.
type TownPortalState struct {
	Phase   portalPhase
	Claimed bool
}

// RuneState names the effect a rune releases.
type RuneState struct {
	Payload Kind
}

// VisualState remembers which effect a visual belongs to.
type VisualState struct {
	From      Kind
	Detonated bool
}

func (*ElementalArrowState) isPayload()   {}
func (*ChargedBoltState) isPayload()      {}
func (*SeekerState) isPayload()           {}
func (*ControlState) isPayload()          {}
func (*ChainState) isPayload()            {}
func (*WallControlState) isPayload()      {}
func (*FlameWaveControlState) isPayload() {}
func (*GuardianState) isPayload()         {}
func (*ApocalypseState) isPayload()       {}
func (*StoneCurseState) isPayload()       {}
func (*TownPortalState) isPayload()       {}
func (*RuneState) isPayload()             {}
func (*VisualState) isPayload()           {}
