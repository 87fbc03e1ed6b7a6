package world

import (
	"fmt"
	"strings"

	"dungeonfx/internal/combat"
	"dungeonfx/internal/geom"
	"dungeonfx/internal/mathutil"
)

// HeroClass is the character class of a player.
type HeroClass int

const (
	ClassWarrior HeroClass = iota
	ClassRogue
	ClassSorcerer
	ClassMonk
	ClassBard
	ClassBarbarian
)

func (c HeroClass) String() string {
	switch c {
	case ClassWarrior:
		return "warrior"
	case ClassRogue:
		return "rogue"
	case ClassSorcerer:
		return "sorcerer"
	case ClassMonk:
		return "monk"
	case ClassBard:
		return "bard"
	case ClassBarbarian:
		return "barbarian"
	default:
		return "unknown"
	}
}

// ParseHeroClass maps a config string to a class.
func ParseHeroClass(s string) (HeroClass, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "warrior":
		return ClassWarrior, nil
	case "rogue":
		return ClassRogue, nil
	case "sorcerer", "":
		return ClassSorcerer, nil
	case "monk":
		return ClassMonk, nil
	case "bard":
		return ClassBard, nil
	case "barbarian":
		return ClassBarbarian, nil
	}
	return ClassWarrior, fmt.Errorf("unknown hero class %q", s)
}

// MonsterClass groups monsters for effects that only hit some of them.
type MonsterClass int

const (
	MonsterUndead MonsterClass = iota
	MonsterDemon
	MonsterAnimal
)

// ParseMonsterClass maps a config string to a class.
func ParseMonsterClass(s string) (MonsterClass, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "undead":
		return MonsterUndead, nil
	case "demon":
		return MonsterDemon, nil
	case "animal", "":
		return MonsterAnimal, nil
	}
	return MonsterAnimal, fmt.Errorf("unknown monster class %q", s)
}

// Player is a hero on the level. Hit points and mana are 1/64 units.
type Player struct {
	Name  string
	Class HeroClass
	Level int
	Magic int

	HitPoints    int
	MaxHitPoints int
	Mana         int
	MaxMana      int
	// MaxManaBase is the unmodified maximum, used by all-mana spells.
	MaxManaBase int

	ArmorClass  int
	ToHit       int
	MagicToHit  int
	Block       int
	DamageMin   int
	DamageMax   int
	Resistances map[combat.DamageType]int

	// Item bonuses applied to the hero's arrows.
	ArmorPierce    int
	BonusDamagePct int
	DamageMod      int

	// SpellLevels, Scrolls keyed by spell id.
	SpellLevels  map[string]int
	Scrolls      map[string]int
	StaffSpell   string
	StaffCharges int

	Tile   geom.Point
	Facing geom.Direction

	ManaShield  bool
	Infravision bool
	// LightRadius grows while infravision is active.
	LightRadius int
}

// NewPlayer creates a player with empty spell and resistance tables.
func NewPlayer(name string, class HeroClass, level int) *Player {
	return &Player{
		Name:        name,
		Class:       class,
		Level:       level,
		Resistances: make(map[combat.DamageType]int),
		SpellLevels: make(map[string]int),
		Scrolls:     make(map[string]int),
		LightRadius: 10,
	}
}

// SetHitPoints sets current and maximum life in whole points.
func (p *Player) SetHitPoints(hp int) {
	p.HitPoints = hp << combat.HitPointShift
	p.MaxHitPoints = p.HitPoints
}

// SetMana sets current, maximum and base mana in whole points.
func (p *Player) SetMana(mana int) {
	p.Mana = mana << combat.HitPointShift
	p.MaxMana = p.Mana
	p.MaxManaBase = p.Mana
}

func (p *Player) IsAlive() bool { return p.HitPoints > 0 }

// SpellLevel returns the learned level of spell, 0 when unknown.
func (p *Player) SpellLevel(spell string) int {
	return p.SpellLevels[spell]
}

// Heal adds amount (1/64 units) up to the maximum.
func (p *Player) Heal(amount int) {
	if !p.IsAlive() {
		return
	}
	p.HitPoints = mathutil.IntMin(p.HitPoints+amount, p.MaxHitPoints)
}

// AsAttacker returns the resolver view of this player.
func (p *Player) AsAttacker() *combat.Attacker {
	return &combat.Attacker{
		Level:          p.Level,
		ToHit:          p.ToHit,
		MagicToHit:     p.MagicToHit,
		ArmorPierce:    p.ArmorPierce,
		BonusDamagePct: p.BonusDamagePct,
		DamageMod:      p.DamageMod,
	}
}

func (p *Player) Armor() int          { return p.ArmorClass }
func (p *Player) CharacterLevel() int { return p.Level }
func (p *Player) BlockChance() int    { return p.Block }
func (p *Player) Resistance(t combat.DamageType) int {
	return p.Resistances[t]
}
func (p *Player) Vulnerable(combat.DamageType) bool { return false }
func (p *Player) CanBeHit() bool                    { return p.IsAlive() }
func (p *Player) AlwaysHit() bool                   { return false }
func (p *Player) Life() int                         { return p.HitPoints }

// ApplyDamage drains mana first while the mana shield is up.
func (p *Player) ApplyDamage(amount int) bool {
	if p.ManaShield && p.Mana > 0 {
		absorbed := mathutil.IntMin(amount, p.Mana)
		p.Mana -= absorbed
		amount -= absorbed
		if p.Mana <= 0 {
			p.ManaShield = false
		}
	}
	wasAlive := p.IsAlive()
	p.HitPoints -= amount
	if p.HitPoints < 0 {
		p.HitPoints = 0
	}
	return wasAlive && p.HitPoints == 0
}

// Monster is a hostile actor. A walking monster occupies its tile and the
// tile it is stepping into.
type Monster struct {
	Key   string
	Name  string
	Class MonsterClass
	Level int

	HitPoints    int
	MaxHitPoints int
	ArmorClass   int
	ToHit        int
	DamageMin    int
	DamageMax    int
	Resistances  map[combat.DamageType]int
	Weaknesses   map[combat.DamageType]bool

	Tile    geom.Point
	Future  geom.Point
	Walking bool
	Dead    bool

	Petrified bool
}

func (m *Monster) IsAlive() bool { return !m.Dead && m.HitPoints > 0 }

// IsUndead reports whether holy effects harm this monster.
func (m *Monster) IsUndead() bool { return m.Class == MonsterUndead }

// AsAttacker returns the resolver view of this monster.
func (m *Monster) AsAttacker() *combat.Attacker {
	return &combat.Attacker{
		Level:      m.Level,
		ToHit:      m.ToHit,
		MagicToHit: m.ToHit,
	}
}

func (m *Monster) Armor() int          { return m.ArmorClass }
func (m *Monster) CharacterLevel() int { return m.Level }
func (m *Monster) BlockChance() int    { return 0 }
func (m *Monster) Resistance(t combat.DamageType) int {
	return m.Resistances[t]
}
func (m *Monster) Vulnerable(t combat.DamageType) bool { return m.Weaknesses[t] }
func (m *Monster) CanBeHit() bool                      { return m.IsAlive() }
func (m *Monster) AlwaysHit() bool                     { return m.Petrified }
func (m *Monster) Life() int                           { return m.HitPoints }

func (m *Monster) ApplyDamage(amount int) bool {
	wasAlive := m.IsAlive()
	m.HitPoints -= amount
	if m.HitPoints < 0 {
		m.HitPoints = 0
	}
	return wasAlive && m.HitPoints == 0
}
