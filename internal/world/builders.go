package world

import (
	"fmt"

	"dungeonfx/internal/combat"
	"dungeonfx/internal/config"
	"dungeonfx/internal/geom"
)

// NewPlayerFromConfig creates the hero described by cfg.
func NewPlayerFromConfig(cfg config.HeroConfig) (*Player, error) {
	class, err := ParseHeroClass(cfg.Class)
	if err != nil {
		return nil, err
	}
	p := NewPlayer(cfg.Name, class, cfg.Level)
	p.Magic = cfg.Magic
	p.SetHitPoints(cfg.HitPoints)
	p.SetMana(cfg.Mana)
	p.ArmorClass = cfg.ArmorClass
	p.ToHit = cfg.ToHit
	p.MagicToHit = cfg.MagicToHit
	p.Block = cfg.Block
	p.DamageMin = cfg.DamageMin
	p.DamageMax = cfg.DamageMax
	p.ArmorPierce = cfg.ArmorPierce
	p.BonusDamagePct = cfg.BonusDamagePct
	p.DamageMod = cfg.DamageMod
	p.StaffSpell = cfg.StaffSpell
	p.StaffCharges = cfg.StaffCharges

	for name, value := range cfg.Resistances {
		dt, err := combat.ParseDamageType(name)
		if err != nil {
			return nil, fmt.Errorf("hero resistances: %w", err)
		}
		p.Resistances[dt] = value
	}
	for spell, lvl := range cfg.SpellLevels {
		p.SpellLevels[spell] = lvl
	}
	for spell, n := range cfg.Scrolls {
		p.Scrolls[spell] = n
	}
	return p, nil
}

// NewMonsterFromConfig creates a monster of type key standing on tile.
func NewMonsterFromConfig(key string, def *config.MonsterDefinition, tile geom.Point) (*Monster, error) {
	class, err := ParseMonsterClass(def.Class)
	if err != nil {
		return nil, fmt.Errorf("monster %s: %w", key, err)
	}
	m := &Monster{
		Key:          key,
		Name:         def.Name,
		Class:        class,
		Level:        def.Level,
		HitPoints:    def.MaxHitPoints << combat.HitPointShift,
		MaxHitPoints: def.MaxHitPoints << combat.HitPointShift,
		ArmorClass:   def.ArmorClass,
		ToHit:        def.ToHit,
		DamageMin:    def.DamageMin,
		DamageMax:    def.DamageMax,
		Resistances:  make(map[combat.DamageType]int),
		Weaknesses:   make(map[combat.DamageType]bool),
		Tile:         tile,
		Future:       tile,
	}
	for name, value := range def.Resistances {
		dt, err := combat.ParseDamageType(name)
		if err != nil {
			return nil, fmt.Errorf("monster %s resistances: %w", key, err)
		}
		m.Resistances[dt] = value
	}
	for _, name := range def.Vulnerabilities {
		dt, err := combat.ParseDamageType(name)
		if err != nil {
			return nil, fmt.Errorf("monster %s vulnerabilities: %w", key, err)
		}
		m.Weaknesses[dt] = true
	}
	return m, nil
}
