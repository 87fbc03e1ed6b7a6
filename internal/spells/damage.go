package spells

import (
	"dungeonfx/internal/combat"
	"dungeonfx/internal/world"
)

// ScaleSpellEffect grows base by an eighth per spell level.
func ScaleSpellEffect(base, level int) int {
	for i := 0; i < level; i++ {
		base += base >> 3
	}
	return base
}

func scaled(lo, hi, level int) combat.DamageRange {
	return combat.DamageRange{Min: ScaleSpellEffect(lo, level), Max: ScaleSpellEffect(hi, level)}
}

// GetDamageAmt returns the whole-point damage range of spell cast by p at
// level. Spells that deal no damage return the zero range.
func GetDamageAmt(spell SpellID, p *world.Player, level int) combat.DamageRange {
	clvl := p.Level
	switch spell {
	case SpellFirebolt, SpellGuardian:
		base := p.Magic/8 + level + 1
		return combat.DamageRange{Min: base, Max: base + 9}
	case SpellHolyBolt:
		return combat.DamageRange{Min: clvl + 9, Max: clvl + 18}
	case SpellFireball, SpellElemental, SpellRuneOfFire:
		return scaled(2*clvl+4, 2*clvl+40, level)
	case SpellLightning, SpellChainLightning, SpellRuneOfLight:
		return combat.DamageRange{Min: 2, Max: clvl + 2}
	case SpellChargedBolt:
		return combat.DamageRange{Min: 1, Max: p.Magic/4 + 1}
	case SpellFireWall, SpellLightningWall, SpellRingOfFire:
		return scaled(clvl/4+2, clvl/2+20, level)
	case SpellFlameWave:
		return combat.DamageRange{Min: 6 * (level + 1), Max: 6*(level+1) + clvl}
	case SpellNova, SpellRuneOfNova:
		return scaled((clvl+10)/2, (clvl+35)/2, level)
	case SpellBloodStar:
		return combat.DamageRange{Min: 3*level + 1, Max: 3*level + p.Magic/8 + 20}
	case SpellApocalypse:
		return combat.DamageRange{Min: clvl, Max: 6 * clvl}
	}
	return combat.DamageRange{}
}
