package combat

import (
	"testing"

	"dungeonfx/internal/rng"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dummy struct {
	armor       int
	level       int
	block       int
	resist      map[DamageType]int
	vulnerable  map[DamageType]bool
	petrified   bool
	unhittable  bool
	life        int
	damageCalls int
}

func newDummy(life int) *dummy {
	return &dummy{life: life << HitPointShift, resist: map[DamageType]int{}, vulnerable: map[DamageType]bool{}}
}

func (d *dummy) Armor() int                   { return d.armor }
func (d *dummy) CharacterLevel() int          { return d.level }
func (d *dummy) BlockChance() int             { return d.block }
func (d *dummy) Resistance(t DamageType) int  { return d.resist[t] }
func (d *dummy) Vulnerable(t DamageType) bool { return d.vulnerable[t] }
func (d *dummy) CanBeHit() bool               { return !d.unhittable && d.life > 0 }
func (d *dummy) AlwaysHit() bool              { return d.petrified }
func (d *dummy) Life() int                    { return d.life }
func (d *dummy) ApplyDamage(amount int) bool {
	d.damageCalls++
	wasAlive := d.life > 0
	d.life -= amount
	return wasAlive && d.life <= 0
}

func caster() *Attacker {
	return &Attacker{Level: 10, ToHit: 80, MagicToHit: 90}
}

func TestComputeHitDeterministic(t *testing.T) {
	atk := Attack{MinDamage: 3, MaxDamage: 12, Distance: 2, Type: DamageFire}
	var results []Outcome
	for i := 0; i < 3; i++ {
		r := NewResolver(rng.NewLCG(4242), DefaultRules)
		var seq []Outcome
		for j := 0; j < 20; j++ {
			seq = append(seq, r.ComputeHit(caster(), newDummy(500), atk))
		}
		if i > 0 {
			require.Equal(t, results, seq)
		}
		results = seq
	}
}

func TestHitRollPrecedesDamageRoll(t *testing.T) {
	// First draw is the hit roll (10 < 90 hits), second is the damage roll.
	src := &rng.Sequence{Values: []int{10, 5}}
	r := NewResolver(src, DefaultRules)
	def := newDummy(100)

	out := r.ComputeHit(caster(), def, Attack{MinDamage: 2, MaxDamage: 4, Type: DamageMagic})

	require.True(t, out.Hit)
	assert.Equal(t, 2<<HitPointShift+5, out.Amount)
	assert.Equal(t, 2, src.Consumed())
}

func TestMissDoesNotTouchDefender(t *testing.T) {
	src := &rng.Sequence{Values: []int{99}}
	r := NewResolver(src, DefaultRules)
	def := newDummy(100)

	out := r.ComputeHit(caster(), def, Attack{MinDamage: 10, MaxDamage: 20})

	assert.False(t, out.Hit)
	assert.Zero(t, out.Amount)
	assert.Equal(t, 100<<HitPointShift, def.life)
	assert.Zero(t, def.damageCalls)
	assert.Equal(t, 1, src.Consumed(), "a miss draws no damage roll")
}

func TestFullResistanceYieldsZero(t *testing.T) {
	src := &rng.Sequence{Values: []int{0, 50}}
	r := NewResolver(src, DefaultRules)
	def := newDummy(100)
	def.resist[DamageFire] = 100

	out := r.ComputeHit(caster(), def, Attack{MinDamage: 30, MaxDamage: 60, Type: DamageFire})

	require.True(t, out.Hit)
	assert.Equal(t, 0, out.Amount)
	assert.Equal(t, 100<<HitPointShift, def.life)
}

func TestResistanceIsCapped(t *testing.T) {
	rules := Rules{MaxResistance: 75, MinHitChance: 5, MaxHitChance: 95}
	src := &rng.Sequence{Values: []int{0, 0}}
	r := NewResolver(src, rules)
	def := newDummy(100)
	def.resist[DamageLightning] = 250

	out := r.ComputeHit(caster(), def, Attack{MinDamage: 4, MaxDamage: 4, Type: DamageLightning})

	require.True(t, out.Hit)
	assert.Equal(t, (4<<HitPointShift)/4, out.Amount)
}

func TestVulnerableAndIgnoreResistance(t *testing.T) {
	def := newDummy(100)
	def.vulnerable[DamageFire] = true
	def.resist[DamageFire] = 50

	r := NewResolver(&rng.Sequence{Values: []int{0, 0}}, DefaultRules)
	out := r.ComputeHit(caster(), def, Attack{MinDamage: 1, MaxDamage: 1, Type: DamageFire})
	assert.Equal(t, 64, out.Amount, "double then halve")

	r = NewResolver(&rng.Sequence{Values: []int{0, 0}}, DefaultRules)
	out = r.ComputeHit(caster(), def, Attack{MinDamage: 1, MaxDamage: 1, Type: DamageFire, IgnoreResistance: true})
	assert.Equal(t, 128, out.Amount)
}

func TestKillIsReportedOnce(t *testing.T) {
	r := NewResolver(&rng.Sequence{Values: []int{0, 0}}, DefaultRules)
	def := newDummy(1)

	out := r.ComputeHit(caster(), def, Attack{MinDamage: 5, MaxDamage: 5})
	assert.True(t, out.Killed)

	out = r.ComputeHit(caster(), def, Attack{MinDamage: 5, MaxDamage: 5})
	assert.False(t, out.Hit, "dead defenders cannot be hit")
}

func TestBlockDrawnAfterDamage(t *testing.T) {
	src := &rng.Sequence{Values: []int{0, 7, 3}}
	r := NewResolver(src, DefaultRules)
	def := newDummy(50)
	def.block = 40

	out := r.ComputeHit(caster(), def, Attack{MinDamage: 1, MaxDamage: 9})

	assert.True(t, out.Hit)
	assert.True(t, out.Blocked)
	assert.Zero(t, out.Amount)
	assert.Equal(t, 3, src.Consumed())
	assert.Equal(t, 50<<HitPointShift, def.life)
}

func TestTrapHitChance(t *testing.T) {
	r := NewResolver(rng.NewLCG(1), DefaultRules)
	def := newDummy(10)
	def.armor = 40

	assert.Equal(t, 40, r.HitChance(nil, def, Attack{}))
	assert.Equal(t, 70, r.HitChance(nil, def, Attack{Arrow: true, Distance: 5}))
}

func TestArrowAccuracyFallsWithDistance(t *testing.T) {
	r := NewResolver(rng.NewLCG(1), DefaultRules)
	def := newDummy(10)
	att := &Attacker{Level: 5, ToHit: 90}

	near := r.HitChance(att, def, Attack{Arrow: true, Distance: 1})
	far := r.HitChance(att, def, Attack{Arrow: true, Distance: 10})
	assert.Greater(t, near, far)
	assert.Equal(t, DefaultRules.MinHitChance, r.HitChance(att, def, Attack{Arrow: true, Distance: 40}))
}

func TestPetrifiedAlwaysHit(t *testing.T) {
	src := &rng.Sequence{Values: []int{99, 0}}
	r := NewResolver(src, DefaultRules)
	def := newDummy(20)
	def.petrified = true

	out := r.ComputeHit(caster(), def, Attack{MinDamage: 1, MaxDamage: 1})
	assert.True(t, out.Hit)
}

func TestLifeFraction(t *testing.T) {
	r := NewResolver(&rng.Sequence{Values: []int{0}}, DefaultRules)
	def := newDummy(90)

	out := r.ComputeHit(caster(), def, Attack{LifeFraction: 3, Type: DamageMagic})
	assert.Equal(t, (90<<HitPointShift)/3, out.Amount)
	assert.Equal(t, 60<<HitPointShift, def.life)
}

func TestParseDamageType(t *testing.T) {
	dt, err := ParseDamageType("Lightning")
	require.NoError(t, err)
	assert.Equal(t, DamageLightning, dt)

	_, err = ParseDamageType("frost")
	assert.Error(t, err)
}
