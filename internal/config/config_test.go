package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigLoads(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 20, cfg.GetTPS())
	assert.Equal(t, 0, cfg.GetPoolCapacity())
	assert.Equal(t, "arena.txt", cfg.Engine.Level)
	assert.NotEmpty(t, cfg.Sandbox.Hotbar)
	assert.Same(t, cfg, GlobalConfig)
	assert.Equal(t, 5, cfg.Hero.ArmorPierce)
	assert.Equal(t, 20, cfg.Hero.BonusDamagePct)
	assert.Equal(t, 1, cfg.Hero.DamageMod)
}

func TestMissileOverridesFallBack(t *testing.T) {
	cfg := &Config{Missiles: MissileConfig{Overrides: map[string]*MissileTuning{
		"arrow":    {Speed: 40},
		"firebolt": nil,
	}}}

	assert.Equal(t, 40, cfg.GetMissileSpeed("arrow", 32))
	assert.Equal(t, 256, cfg.GetMissileRange("arrow", 256))
	assert.Equal(t, 16, cfg.GetMissileSpeed("firebolt", 16))
	assert.Equal(t, 7, cfg.GetMissileRange("nova", 7))
}

func TestDefaultsForUnsetValues(t *testing.T) {
	cfg := &Config{Engine: EngineConfig{PoolCapacity: -4}}
	assert.Equal(t, 16, cfg.GetTileSize())
	assert.Equal(t, 20, cfg.GetTPS())
	assert.Equal(t, 0, cfg.GetPoolCapacity())
}

func TestSpellTableDefaultIsValid(t *testing.T) {
	table := MustLoadDefaultSpellTable()

	fb, ok := table.Get("firebolt")
	require.True(t, ok)
	assert.Equal(t, []string{"firebolt"}, fb.Missiles)

	bs, ok := table.Get("blood_star")
	require.True(t, ok)
	assert.Equal(t, 5, bs.LifeCost)

	fw, _ := table.Get("fire_wall")
	assert.True(t, fw.Wall)

	keys := table.Keys()
	assert.IsIncreasing(t, keys)
}

func TestSpellTableRejectsBadRows(t *testing.T) {
	_, err := ParseSpellTable([]byte("spells: {}\n"))
	assert.Error(t, err)

	_, err = ParseSpellTable([]byte(`
spells:
  greedy:
    missiles: [a, b, c, d]
`))
	assert.ErrorContains(t, err, "greedy")

	_, err = ParseSpellTable([]byte(`
spells:
  cheap:
    mana_cost: 3
    min_mana: 9
`))
	assert.ErrorContains(t, err, "min_mana")
}

func TestMonsterTableLetters(t *testing.T) {
	table := MustLoadDefaultMonsterTable()
	key, def, ok := table.GetMonsterByLetter("B")
	require.True(t, ok)
	assert.Equal(t, "balrog", key)
	assert.Equal(t, 100, def.Resistances["fire"])

	_, _, ok = table.GetMonsterByLetter("Q")
	assert.False(t, ok)

	_, err := ParseMonsterTable([]byte(`
monsters:
  a: {letter: x}
  b: {letter: x}
`))
	assert.Error(t, err)
}
