package config

import (
	"fmt"
	"io/fs"
	"os"

	"dungeonfx/assets"

	"gopkg.in/yaml.v3"
)

// Config holds all engine and sandbox configuration values
type Config struct {
	Display  DisplayConfig `yaml:"display"`
	Engine   EngineConfig  `yaml:"engine"`
	Combat   CombatConfig  `yaml:"combat"`
	Missiles MissileConfig `yaml:"missiles"`
	Hero     HeroConfig    `yaml:"hero"`
	Sandbox  SandboxConfig `yaml:"sandbox"`
	Logging  LoggingConfig `yaml:"logging"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	WindowTitle  string `yaml:"window_title"`
	Resizable    bool   `yaml:"resizable"`
	TileSize     int    `yaml:"tile_size"`
}

type EngineConfig struct {
	TPS          int    `yaml:"tps"`
	PoolCapacity int    `yaml:"pool_capacity"` // 0 means growable
	Seed         uint32 `yaml:"seed"`
	Depth        int    `yaml:"depth"` // dungeon level, feeds trap damage
	Level        string `yaml:"level"` // ASCII level file inside assets/levels
}

type CombatConfig struct {
	MaxResistance int `yaml:"max_resistance"`
	MinHitChance  int `yaml:"min_hit_chance"`
	MaxHitChance  int `yaml:"max_hit_chance"`
}

// MissileTuning overrides the built-in speed (pixels per tick) or lifetime
// (ticks) of one effect kind.
type MissileTuning struct {
	Speed int `yaml:"speed"`
	Range int `yaml:"range"`
}

type MissileConfig struct {
	Overrides map[string]*MissileTuning `yaml:"overrides"`
}

type HeroConfig struct {
	Name           string         `yaml:"name"`
	Class          string         `yaml:"class"`
	Level          int            `yaml:"level"`
	Magic          int            `yaml:"magic"`
	HitPoints      int            `yaml:"hit_points"`
	Mana           int            `yaml:"mana"`
	ArmorClass     int            `yaml:"armor_class"`
	ToHit          int            `yaml:"to_hit"`
	MagicToHit     int            `yaml:"magic_to_hit"`
	Block          int            `yaml:"block"`
	DamageMin      int            `yaml:"damage_min"`
	DamageMax      int            `yaml:"damage_max"`
	ArmorPierce    int            `yaml:"armor_pierce"`
	BonusDamagePct int            `yaml:"bonus_damage_pct"`
	DamageMod      int            `yaml:"damage_mod"`
	Resistances    map[string]int `yaml:"resistances"`
	SpellLevels    map[string]int `yaml:"spell_levels"`
	Scrolls        map[string]int `yaml:"scrolls"`
	StaffSpell     string         `yaml:"staff_spell"`
	StaffCharges   int            `yaml:"staff_charges"`
}

type SandboxConfig struct {
	Hotbar  []string `yaml:"hotbar"`
	Verbose bool     `yaml:"verbose"`
}

type LoggingConfig struct {
	Prefix string `yaml:"prefix"`
}

var GlobalConfig *Config

// LoadConfig loads the configuration from a YAML file on disk
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return parseConfig(data)
}

// LoadConfigFS loads the configuration from fsys.
func LoadConfigFS(fsys fs.FS, name string) (*Config, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Set global config for easy access
	GlobalConfig = &config

	return &config, nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	config, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return config
}

// Default returns the configuration embedded in the binary.
func Default() *Config {
	config, err := LoadConfigFS(assets.FS, "config.yaml")
	if err != nil {
		panic("Failed to load embedded config: " + err.Error())
	}
	return config
}

// Helper functions for easy access to commonly used values
func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

func (c *Config) GetTileSize() int {
	if c.Display.TileSize <= 0 {
		return 16
	}
	return c.Display.TileSize
}

func (c *Config) GetTPS() int {
	if c.Engine.TPS <= 0 {
		return 20
	}
	return c.Engine.TPS
}

func (c *Config) GetPoolCapacity() int {
	if c.Engine.PoolCapacity < 0 {
		return 0
	}
	return c.Engine.PoolCapacity
}

// GetMissileSpeed returns the configured speed for kind, or fallback.
func (c *Config) GetMissileSpeed(kind string, fallback int) int {
	if t, ok := c.Missiles.Overrides[kind]; ok && t != nil && t.Speed > 0 {
		return t.Speed
	}
	return fallback
}

// GetMissileRange returns the configured lifetime for kind, or fallback.
func (c *Config) GetMissileRange(kind string, fallback int) int {
	if t, ok := c.Missiles.Overrides[kind]; ok && t != nil && t.Range > 0 {
		return t.Range
	}
	return fallback
}
