package missiles

import (
	"errors"
	"fmt"
)

// ErrUnknownKind is returned when a name does not match any effect kind.
var ErrUnknownKind = errors.New("unknown missile kind")

// Kind identifies an effect type. The set is closed; every kind has an
// entry in the data table.
type Kind uint8

const (
	KindArrow Kind = iota
	KindFireArrow
	KindLightningArrow
	KindFirebolt
	KindMagmaBall
	KindBloodStar
	KindAcid
	KindAcidSplat
	KindAcidPuddle
	KindFireball
	KindHolyBolt
	KindChargedBolt
	KindBoneSpirit
	KindElemental
	KindLightningControl
	KindLightning
	KindChainLightning
	KindFireWallControl
	KindFireWall
	KindLightningWallControl
	KindLightningWall
	KindRingOfFire
	KindFlameWaveControl
	KindFlameWave
	KindNova
	KindNovaBall
	KindGuardian
	KindApocalypse
	KindApocalypseBoom
	KindStoneCurse
	KindTeleport
	KindHealing
	KindHealOther
	KindManaShield
	KindInfravision
	KindTownPortal
	KindRuneOfFire
	KindRuneOfLight
	KindRuneOfNova
	KindMissileExplosion
	KindBigExplosion
	KindWeaponExplosion

	kindCount
)

var kindNames = [kindCount]string{
	KindArrow:                "arrow",
	KindFireArrow:            "fire_arrow",
	KindLightningArrow:       "lightning_arrow",
	KindFirebolt:             "firebolt",
	KindMagmaBall:            "magma_ball",
	KindBloodStar:            "blood_star",
	KindAcid:                 "acid",
	KindAcidSplat:            "acid_splat",
	KindAcidPuddle:           "acid_puddle",
	KindFireball:             "fireball",
	KindHolyBolt:             "holy_bolt",
	KindChargedBolt:          "charged_bolt",
	KindBoneSpirit:           "bone_spirit",
	KindElemental:            "elemental",
	KindLightningControl:     "lightning_control",
	KindLightning:            "lightning",
	KindChainLightning:       "chain_lightning",
	KindFireWallControl:      "fire_wall_control",
	KindFireWall:             "fire_wall",
	KindLightningWallControl: "lightning_wall_control",
	KindLightningWall:        "lightning_wall",
	KindRingOfFire:           "ring_of_fire",
	KindFlameWaveControl:     "flame_wave_control",
	KindFlameWave:            "flame_wave",
	KindNova:                 "nova",
	KindNovaBall:             "nova_ball",
	KindGuardian:             "guardian",
	KindApocalypse:           "apocalypse",
	KindApocalypseBoom:       "apocalypse_boom",
	KindStoneCurse:           "stone_curse",
	KindTeleport:             "teleport",
	KindHealing:              "healing",
	KindHealOther:            "heal_other",
	KindManaShield:           "mana_shield",
	KindInfravision:          "infravision",
	KindTownPortal:           "town_portal",
	KindRuneOfFire:           "rune_of_fire",
	KindRuneOfLight:          "rune_of_light",
	KindRuneOfNova:           "rune_of_nova",
	KindMissileExplosion:     "missile_explosion",
	KindBigExplosion:         "big_explosion",
	KindWeaponExplosion:      "weapon_explosion",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k < kindCount
}

// ParseKind returns the kind with the given snake_case name.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, kindCount)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}
