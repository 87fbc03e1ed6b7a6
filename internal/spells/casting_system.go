package spells

import (
	"errors"
	"fmt"
	"log"

	"dungeonfx/internal/collision"
	"dungeonfx/internal/combat"
	"dungeonfx/internal/config"
	"dungeonfx/internal/geom"
	"dungeonfx/internal/mathutil"
	"dungeonfx/internal/missiles"
	"dungeonfx/internal/rng"
	"dungeonfx/internal/world"
)

// allBaseMana marks spells that drain the caster's whole base mana.
const allBaseMana = 255

// CastRequest describes one player cast.
type CastRequest struct {
	Player   int
	Spell    SpellID
	Resource ResourceType
	Src      geom.Point
	Dst      geom.Point
	// Dir is the caster's facing. Wall spells use TempDirection instead.
	Dir           geom.Direction
	TempDirection geom.Direction
	// SpellLevel overrides the player's learned level when positive.
	SpellLevel int
}

// CastResult reports what a cast produced and what it cost.
type CastResult struct {
	Handles []missiles.Handle
	Check   CheckResult
	// Fizzled is set when every creation was vetoed.
	Fizzled   bool
	ManaSpent int
	LifeSpent int
	Err       error
}

// Caster turns spell casts into effects and charges the caster.
type Caster struct {
	manager *missiles.Manager
	table   *config.SpellTable
	rng     rng.Source
	logger  *log.Logger
}

// NewCaster creates a caster over manager. A nil table loads the embedded
// spell data.
func NewCaster(manager *missiles.Manager, table *config.SpellTable, src rng.Source, logger *log.Logger) *Caster {
	if table == nil {
		table = config.MustLoadDefaultSpellTable()
	}
	if src == nil {
		src = rng.NewLCG(0)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Caster{
		manager: manager,
		table:   table,
		rng:     src,
		logger:  logger,
	}
}

// Table returns the spell descriptors in use.
func (c *Caster) Table() *config.SpellTable {
	return c.table
}

func (c *Caster) definition(spell SpellID) (*config.SpellDefinitionConfig, error) {
	def, ok := c.table.Get(string(spell))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSpell, spell)
	}
	return def, nil
}

// IsWallSpell reports whether spell is aimed with the temporary direction.
func (c *Caster) IsWallSpell(spell SpellID) bool {
	def, ok := c.table.Get(string(spell))
	return ok && def.Wall
}

// TargetsMonster reports whether spell is aimed at a monster under the
// cursor rather than a floor tile.
func (c *Caster) TargetsMonster(spell SpellID) bool {
	def, ok := c.table.Get(string(spell))
	return ok && def.TargetsMonster
}

// GetManaAmount returns the mana, in 1/64 units, that casting spell at
// level costs player.
func (c *Caster) GetManaAmount(p *world.Player, spell SpellID, level int) int {
	def, err := c.definition(spell)
	if err != nil {
		return 0
	}

	sl := mathutil.IntMax(level-1, 0)
	adj := 0
	if sl > 0 {
		adj = sl * def.ManaAdjust
	}
	if spell == SpellFirebolt {
		adj /= 2
	}

	var ma int
	switch {
	case spell == SpellHealing || spell == SpellHealOther:
		base := def.ManaCost
		if heal, ok := c.table.Get(string(SpellHealing)); ok {
			base = heal.ManaCost
		}
		ma = base + 2*p.Level - adj
	case def.ManaCost == allBaseMana:
		ma = p.MaxManaBase>>combat.HitPointShift - adj
	default:
		ma = def.ManaCost - adj
	}

	ma = mathutil.IntMax(ma, 0) << combat.HitPointShift

	switch p.Class {
	case world.ClassSorcerer:
		ma /= 2
	case world.ClassRogue, world.ClassMonk, world.ClassBard:
		ma -= ma / 4
	}

	if def.MinMana > ma>>combat.HitPointShift {
		ma = def.MinMana << combat.HitPointShift
	}
	return ma
}

// CheckSpell tells whether player may cast spell with the given resource.
func (c *Caster) CheckSpell(p *world.Player, spell SpellID, resource ResourceType, level int) CheckResult {
	switch resource {
	case ResourceSkill:
		return CheckSuccess
	case ResourceScroll:
		if p.Scrolls[string(spell)] <= 0 {
			return CheckFailNoScroll
		}
		return CheckSuccess
	case ResourceCharges:
		if p.StaffSpell != string(spell) || p.StaffCharges <= 0 {
			return CheckFailNoCharges
		}
		return CheckSuccess
	}
	if level <= 0 {
		return CheckFailLevel0
	}
	if p.Mana < c.GetManaAmount(p, spell, level) {
		return CheckFailNoMana
	}
	return CheckSuccess
}

// ConsumeSpell charges player for a successful cast and returns the mana
// and life spent, in 1/64 units.
func (c *Caster) ConsumeSpell(p *world.Player, spell SpellID, resource ResourceType, level int) (mana, life int) {
	switch resource {
	case ResourceScroll:
		p.Scrolls[string(spell)]--
	case ResourceCharges:
		p.StaffCharges--
	case ResourceSpell:
		mana = c.GetManaAmount(p, spell, level)
		p.Mana -= mana
	}
	if def, err := c.definition(spell); err == nil && def.LifeCost > 0 {
		life = def.LifeCost << combat.HitPointShift
		p.ApplyDamage(life)
	}
	return mana, life
}

// CastSpell checks, creates every effect the spell lists and debits the
// caster when at least one of them was created. A full pool aborts the
// cast: effects already created are cancelled and nothing is charged.
func (c *Caster) CastSpell(req CastRequest) CastResult {
	def, err := c.definition(req.Spell)
	if err != nil {
		return CastResult{Err: err}
	}
	p, ok := c.manager.Actors().Player(req.Player)
	if !ok {
		return CastResult{Err: fmt.Errorf("cast %s: %w: %d", req.Spell, ErrNoCaster, req.Player)}
	}

	level := req.SpellLevel
	if level <= 0 {
		level = p.SpellLevel(string(req.Spell))
	}
	if check := c.CheckSpell(p, req.Spell, req.Resource, level); check != CheckSuccess {
		return CastResult{Check: check}
	}

	dir := req.Dir
	if def.Wall {
		dir = req.TempDirection
	}

	kinds := make([]missiles.Kind, 0, len(def.Missiles))
	for _, name := range def.Missiles {
		k, err := missiles.ParseKind(name)
		if err != nil {
			return CastResult{Err: fmt.Errorf("cast %s: %w", req.Spell, err)}
		}
		kinds = append(kinds, k)
	}
	if req.Spell == SpellChargedBolt {
		for i := level/2 + 3; i > 0; i-- {
			kinds = append(kinds, missiles.KindChargedBolt)
		}
	}

	damage := GetDamageAmt(req.Spell, p, level)
	var result CastResult
	for _, k := range kinds {
		h, err := c.manager.CreateEffect(missiles.CreateRequest{
			Src:        req.Src,
			Dst:        req.Dst,
			Dir:        dir,
			Kind:       k,
			Caster:     collision.TargetMonsters,
			Source:     req.Player,
			Damage:     damage,
			SpellLevel: level,
			Sound:      def.CastSound,
		})
		if err != nil {
			for _, created := range result.Handles {
				c.manager.Cancel(created)
			}
			if errors.Is(err, missiles.ErrPoolExhausted) {
				c.logger.Printf("Warning: %s cast by player %d aborted: %v", req.Spell, req.Player, err)
			}
			return CastResult{Err: fmt.Errorf("cast %s: %w", req.Spell, err)}
		}
		if h.Valid() {
			result.Handles = append(result.Handles, h)
		}
	}

	if len(result.Handles) == 0 {
		result.Fizzled = true
		return result
	}
	result.ManaSpent, result.LifeSpent = c.ConsumeSpell(p, req.Spell, req.Resource, level)
	return result
}

// DoHealOther heals target with caster's heal other spell. Dead targets
// are left alone.
func DoHealOther(src rng.Source, caster, target *world.Player) {
	if target.HitPoints>>combat.HitPointShift <= 0 {
		return
	}
	level := caster.SpellLevel(string(SpellHealOther))
	target.Heal(missiles.HealAmount(src, caster, level))
}

// HealOther heals target with caster's heal other spell using the caster's
// random source.
func (c *Caster) HealOther(caster, target *world.Player) {
	DoHealOther(c.rng, caster, target)
}
