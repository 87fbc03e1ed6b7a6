package config

import (
	"fmt"
	"io/fs"
	"os"
	"sort"

	"dungeonfx/assets"

	"gopkg.in/yaml.v3"
)

// MaxSpellMissiles is how many effect kinds one spell may list.
const MaxSpellMissiles = 3

// SpellDefinitionConfig is one row of the spell descriptor table.
type SpellDefinitionConfig struct {
	Name           string   `yaml:"name"`
	Missiles       []string `yaml:"missiles"`
	ManaCost       int      `yaml:"mana_cost"` // 255 means "all base mana"
	ManaAdjust     int      `yaml:"mana_adjust"`
	MinMana        int      `yaml:"min_mana"`
	LifeCost       int      `yaml:"life_cost"`
	BookLevel      int      `yaml:"book_level"`
	StaffLevel     int      `yaml:"staff_level"`
	Wall           bool     `yaml:"wall"`
	TargetsMonster bool     `yaml:"targets_monster"`
	CastSound      string   `yaml:"cast_sound"`
}

// SpellTable is the static spell data keyed by spell id.
type SpellTable struct {
	Spells map[string]*SpellDefinitionConfig `yaml:"spells"`
}

// LoadSpellTable reads a spell table from disk.
func LoadSpellTable(filename string) (*SpellTable, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read spell table: %w", err)
	}
	return ParseSpellTable(data)
}

// LoadSpellTableFS reads a spell table from fsys.
func LoadSpellTableFS(fsys fs.FS, name string) (*SpellTable, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read spell table: %w", err)
	}
	return ParseSpellTable(data)
}

// ParseSpellTable decodes and validates YAML spell data.
func ParseSpellTable(data []byte) (*SpellTable, error) {
	var table SpellTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse spell table: %w", err)
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return &table, nil
}

// MustLoadDefaultSpellTable returns the embedded spell table.
func MustLoadDefaultSpellTable() *SpellTable {
	table, err := LoadSpellTableFS(assets.FS, "spells.yaml")
	if err != nil {
		panic("Failed to load embedded spell table: " + err.Error())
	}
	return table
}

// Validate checks row-level constraints.
func (t *SpellTable) Validate() error {
	if len(t.Spells) == 0 {
		return fmt.Errorf("spell table is empty")
	}
	for key, def := range t.Spells {
		if def == nil {
			return fmt.Errorf("spell %q has no definition", key)
		}
		if len(def.Missiles) > MaxSpellMissiles {
			return fmt.Errorf("spell %q lists %d missiles, max %d", key, len(def.Missiles), MaxSpellMissiles)
		}
		if def.MinMana > def.ManaCost && def.ManaCost != 255 {
			return fmt.Errorf("spell %q min_mana %d exceeds mana_cost %d", key, def.MinMana, def.ManaCost)
		}
	}
	return nil
}

// Get returns the definition for key.
func (t *SpellTable) Get(key string) (*SpellDefinitionConfig, bool) {
	def, ok := t.Spells[key]
	return def, ok
}

// Keys returns all spell keys, sorted.
func (t *SpellTable) Keys() []string {
	keys := make([]string, 0, len(t.Spells))
	for key := range t.Spells {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
