package combat

import (
	"fmt"
	"strings"
)

// DamageType is the element of an attack, matched against resistances.
type DamageType int

const (
	DamagePhysical DamageType = iota
	DamageFire
	DamageLightning
	DamageMagic
	DamageAcid
)

func (d DamageType) String() string {
	switch d {
	case DamagePhysical:
		return "physical"
	case DamageFire:
		return "fire"
	case DamageLightning:
		return "lightning"
	case DamageMagic:
		return "magic"
	case DamageAcid:
		return "acid"
	default:
		return "unknown"
	}
}

// ParseDamageType maps YAML keys to damage types.
func ParseDamageType(s string) (DamageType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "physical", "":
		return DamagePhysical, nil
	case "fire":
		return DamageFire, nil
	case "lightning":
		return DamageLightning, nil
	case "magic":
		return DamageMagic, nil
	case "acid":
		return DamageAcid, nil
	}
	return DamagePhysical, fmt.Errorf("unknown damage type %q", s)
}

// DamageRange is an inclusive (min, max) pair of whole hit points.
type DamageRange struct {
	Min int
	Max int
}

// Valid reports whether the range describes damage at all. Utility spells
// report {-1, -1}.
func (r DamageRange) Valid() bool {
	return r.Min >= 0 && r.Max >= r.Min
}

// HitPointShift converts whole hit points into the 1/64 units actors store.
const HitPointShift = 6
