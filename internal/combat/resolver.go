package combat

import (
	"dungeonfx/internal/mathutil"
	"dungeonfx/internal/rng"
)

// Attacker holds the caster-side numbers the resolver needs. Traps have no
// attacker.
type Attacker struct {
	Level          int
	ToHit          int // ranged accuracy, percent
	MagicToHit     int
	ArmorPierce    int
	BonusDamagePct int
	DamageMod      int
}

// Defender is the target-side view of a player or monster.
type Defender interface {
	Armor() int
	CharacterLevel() int
	// BlockChance is the percent chance to block; 0 when the defender cannot block.
	BlockChance() int
	Resistance(t DamageType) int
	Vulnerable(t DamageType) bool
	CanBeHit() bool
	// AlwaysHit is true for defenders that cannot dodge (petrified monsters).
	AlwaysHit() bool
	// Life is the current hit points in 1/64 units.
	Life() int
	// ApplyDamage removes amount (1/64 units) and reports whether this call
	// took the defender from alive to dead.
	ApplyDamage(amount int) bool
}

// Attack describes one attempt.
type Attack struct {
	MinDamage int
	MaxDamage int
	Distance  int
	Type      DamageType
	Arrow     bool
	// Shifted damage values are already in 1/64 units. Shifted attacks cannot be blocked.
	Shifted          bool
	IgnoreResistance bool
	Unblockable      bool
	// LifeFraction > 0 replaces the damage roll with Life()/LifeFraction.
	LifeFraction int
}

// Outcome is the result of one attempt.
type Outcome struct {
	Hit     bool
	Blocked bool
	Killed  bool
	Amount  int
}

// Rules are the tunable bounds of the resolver.
type Rules struct {
	MaxResistance int
	MinHitChance  int
	MaxHitChance  int
}

// DefaultRules caps resistance at 100% and keeps hit chance in [5, 95].
var DefaultRules = Rules{MaxResistance: 100, MinHitChance: 5, MaxHitChance: 95}

// Resolver computes hit and damage for single attacks.
type Resolver struct {
	rng   rng.Source
	rules Rules
}

// NewResolver creates a resolver drawing from src.
func NewResolver(src rng.Source, rules Rules) *Resolver {
	if rules.MaxHitChance <= 0 {
		rules.MaxHitChance = DefaultRules.MaxHitChance
	}
	return &Resolver{rng: src, rules: rules}
}

// Rules returns the active bounds.
func (r *Resolver) Rules() Rules {
	return r.rules
}

// ComputeHit resolves one attack. The hit roll is always drawn before the
// damage roll. A miss leaves the defender untouched.
func (r *Resolver) ComputeHit(att *Attacker, def Defender, atk Attack) Outcome {
	if def == nil || !def.CanBeHit() {
		return Outcome{}
	}

	roll := r.rng.Intn(100)
	if def.AlwaysHit() {
		roll = 0
	}
	if roll >= r.HitChance(att, def, atk) {
		return Outcome{}
	}

	amount := r.rollDamage(att, def, atk)

	if bc := def.BlockChance(); bc > 0 && !atk.Shifted && !atk.Unblockable {
		if r.rng.Intn(100) < bc {
			return Outcome{Hit: true, Blocked: true}
		}
	}

	out := Outcome{Hit: true, Amount: amount}
	if amount > 0 {
		out.Killed = def.ApplyDamage(amount)
	}
	return out
}

// ComputeTrapHit resolves an attack with no owning actor.
func (r *Resolver) ComputeTrapHit(def Defender, atk Attack) Outcome {
	return r.ComputeHit(nil, def, atk)
}

// HitChance is the percent chance for att to hit def, after clamping.
func (r *Resolver) HitChance(att *Attacker, def Defender, atk Attack) int {
	var chance int
	switch {
	case att == nil && atk.Arrow:
		chance = 100 - def.Armor()/2 - 2*atk.Distance
	case att == nil:
		chance = 40
	case atk.Arrow:
		armor := mathutil.IntMax(def.Armor()-att.ArmorPierce, 0)
		chance = att.ToHit + 2*(att.Level-def.CharacterLevel()) - armor - atk.Distance*atk.Distance/2
	default:
		chance = att.MagicToHit + 2*(att.Level-def.CharacterLevel()) - atk.Distance
	}
	return mathutil.IntClamp(chance, r.rules.MinHitChance, r.rules.MaxHitChance)
}

func (r *Resolver) rollDamage(att *Attacker, def Defender, atk Attack) int {
	var dam int
	if atk.LifeFraction > 0 {
		dam = def.Life() / atk.LifeFraction
	} else {
		span := mathutil.IntMax(atk.MaxDamage-atk.MinDamage, 0)
		if atk.Shifted {
			dam = atk.MinDamage + r.rng.Intn(span+1)
		} else {
			dam = atk.MinDamage<<HitPointShift + r.rng.Intn(span<<HitPointShift+1)
		}
		if att != nil && atk.Arrow && atk.Type == DamagePhysical {
			mod := att.DamageMod
			if !atk.Shifted {
				mod <<= HitPointShift
			}
			dam += dam*att.BonusDamagePct/100 + mod
		}
	}

	if def.Vulnerable(atk.Type) {
		dam *= 2
	}
	if !atk.IgnoreResistance {
		res := mathutil.IntClamp(def.Resistance(atk.Type), 0, r.rules.MaxResistance)
		dam -= dam * res / 100
	}
	return mathutil.IntMax(dam, 0)
}
