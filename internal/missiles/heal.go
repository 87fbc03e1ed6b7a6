package missiles

import (
	"dungeonfx/internal/combat"
	"dungeonfx/internal/rng"
	"dungeonfx/internal/world"
)

// HealAmount rolls the life restored by a healing spell cast by caster at
// spellLevel, in shifted hit points. Fighters heal more than casters.
func HealAmount(src rng.Source, caster *world.Player, spellLevel int) int {
	hp := src.Intn(10) + 1
	for i := 0; i < caster.Level; i++ {
		hp += src.Intn(4) + 1
	}
	for i := 0; i < spellLevel; i++ {
		hp += src.Intn(6) + 1
	}
	hp <<= combat.HitPointShift

	switch caster.Class {
	case world.ClassWarrior, world.ClassBarbarian:
		hp *= 2
	case world.ClassRogue, world.ClassBard:
		hp += hp / 2
	case world.ClassMonk:
		hp *= 3
	}
	return hp
}
