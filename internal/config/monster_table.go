package config

import (
	"fmt"
	"io/fs"
	"os"

	"dungeonfx/assets"

	"gopkg.in/yaml.v3"
)

// MonsterDefinition holds the configuration for a monster type from YAML
type MonsterDefinition struct {
	Name            string         `yaml:"name"`
	Letter          string         `yaml:"letter"`
	Class           string         `yaml:"class"` // undead, demon, animal
	Level           int            `yaml:"level"`
	MaxHitPoints    int            `yaml:"max_hit_points"`
	ArmorClass      int            `yaml:"armor_class"`
	ToHit           int            `yaml:"to_hit"`
	DamageMin       int            `yaml:"damage_min"`
	DamageMax       int            `yaml:"damage_max"`
	Resistances     map[string]int `yaml:"resistances"`
	Vulnerabilities []string       `yaml:"vulnerabilities"`
}

// MonsterTable holds the complete monster configuration from YAML
type MonsterTable struct {
	Monsters map[string]MonsterDefinition `yaml:"monsters"`
}

// LoadMonsterTable reads a monster table from disk.
func LoadMonsterTable(filename string) (*MonsterTable, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read monster table: %w", err)
	}
	return ParseMonsterTable(data)
}

// LoadMonsterTableFS reads a monster table from fsys.
func LoadMonsterTableFS(fsys fs.FS, name string) (*MonsterTable, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read monster table: %w", err)
	}
	return ParseMonsterTable(data)
}

// ParseMonsterTable decodes YAML and checks that letters are unique.
func ParseMonsterTable(data []byte) (*MonsterTable, error) {
	var table MonsterTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse monster table: %w", err)
	}

	letterToMonster := make(map[string]string)
	for key, def := range table.Monsters {
		if def.Letter == "" {
			continue
		}
		if other, dup := letterToMonster[def.Letter]; dup {
			return nil, fmt.Errorf("monsters %q and %q share letter %q", other, key, def.Letter)
		}
		letterToMonster[def.Letter] = key
	}
	return &table, nil
}

// MustLoadDefaultMonsterTable returns the embedded monster table.
func MustLoadDefaultMonsterTable() *MonsterTable {
	table, err := LoadMonsterTableFS(assets.FS, "monsters.yaml")
	if err != nil {
		panic("Failed to load embedded monster table: " + err.Error())
	}
	return table
}

// GetMonsterByKey returns a monster definition by key
func (t *MonsterTable) GetMonsterByKey(key string) (*MonsterDefinition, error) {
	def, ok := t.Monsters[key]
	if !ok {
		return nil, fmt.Errorf("monster %q not found", key)
	}
	return &def, nil
}

// GetMonsterByLetter returns the key and definition placed by a map letter.
func (t *MonsterTable) GetMonsterByLetter(letter string) (string, *MonsterDefinition, bool) {
	for key, def := range t.Monsters {
		if def.Letter == letter {
			d := def
			return key, &d, true
		}
	}
	return "", nil, false
}
