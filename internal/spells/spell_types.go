package spells

import (
	"errors"
)

// ErrUnknownSpell is returned when a spell id has no descriptor.
var ErrUnknownSpell = errors.New("unknown spell")

// ErrNoCaster is returned when the casting player does not exist.
var ErrNoCaster = errors.New("no such caster")

// SpellID is the key of a spell in the descriptor table.
type SpellID string

const (
	SpellFirebolt       SpellID = "firebolt"
	SpellHealing        SpellID = "healing"
	SpellLightning      SpellID = "lightning"
	SpellFireWall       SpellID = "fire_wall"
	SpellTownPortal     SpellID = "town_portal"
	SpellStoneCurse     SpellID = "stone_curse"
	SpellInfravision    SpellID = "infravision"
	SpellManaShield     SpellID = "mana_shield"
	SpellFireball       SpellID = "fireball"
	SpellGuardian       SpellID = "guardian"
	SpellChainLightning SpellID = "chain_lightning"
	SpellFlameWave      SpellID = "flame_wave"
	SpellNova           SpellID = "nova"
	SpellTeleport       SpellID = "teleport"
	SpellApocalypse     SpellID = "apocalypse"
	SpellHealOther      SpellID = "heal_other"
	SpellHolyBolt       SpellID = "holy_bolt"
	SpellChargedBolt    SpellID = "charged_bolt"
	SpellElemental      SpellID = "elemental"
	SpellBloodStar      SpellID = "blood_star"
	SpellBoneSpirit     SpellID = "bone_spirit"
	SpellLightningWall  SpellID = "lightning_wall"
	SpellRingOfFire     SpellID = "ring_of_fire"
	SpellRuneOfFire     SpellID = "rune_of_fire"
	SpellRuneOfLight    SpellID = "rune_of_light"
	SpellRuneOfNova     SpellID = "rune_of_nova"
)

func (s SpellID) String() string {
	return string(s)
}

// ResourceType says what a cast is paid with.
type ResourceType int

const (
	// ResourceSpell costs mana.
	ResourceSpell ResourceType = iota
	// ResourceScroll uses up one scroll.
	ResourceScroll
	// ResourceCharges uses one charge of the equipped staff.
	ResourceCharges
	// ResourceSkill is free.
	ResourceSkill
)

func (r ResourceType) String() string {
	switch r {
	case ResourceSpell:
		return "spell"
	case ResourceScroll:
		return "scroll"
	case ResourceCharges:
		return "charges"
	case ResourceSkill:
		return "skill"
	default:
		return "unknown"
	}
}

// CheckResult is the outcome of the pre-cast checks.
type CheckResult int

const (
	CheckSuccess CheckResult = iota
	CheckFailLevel0
	CheckFailNoMana
	CheckFailNoScroll
	CheckFailNoCharges
)

func (c CheckResult) String() string {
	switch c {
	case CheckSuccess:
		return "success"
	case CheckFailLevel0:
		return "spell not learned"
	case CheckFailNoMana:
		return "not enough mana"
	case CheckFailNoScroll:
		return "no scroll"
	case CheckFailNoCharges:
		return "no charges"
	default:
		return "unknown"
	}
}
