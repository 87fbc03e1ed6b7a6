// Package sim runs the effect engine against one level at a fixed tick:
// traps fire, casts are dispatched and the manager advances.
package sim

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"log"

	"dungeonfx/assets"
	"dungeonfx/internal/collision"
	"dungeonfx/internal/combat"
	"dungeonfx/internal/config"
	"dungeonfx/internal/geom"
	"dungeonfx/internal/missiles"
	"dungeonfx/internal/rng"
	"dungeonfx/internal/spells"
	"dungeonfx/internal/threading/monitoring"
	"dungeonfx/internal/world"

	"github.com/vmihailenco/msgpack/v5"
)

// HeroIndex is the player slot of the hero on every level.
const HeroIndex = 0

// trapReach is how far ahead of the trap its arrow is aimed.
const trapReach = 8

// Options configure a simulation. Nil tables and filesystems fall back to
// the embedded assets.
type Options struct {
	Config   *config.Config
	Spells   *config.SpellTable
	Monsters *config.MonsterTable
	Levels   fs.FS
	Logger   *log.Logger
	Monitor  *monitoring.PerformanceMonitor
	Sound    missiles.SoundPlayer
	Verbose  bool
}

// Simulation owns a level, its effect manager and the spell caster.
// It is not safe for concurrent use; separate simulations are independent.
type Simulation struct {
	opts Options

	rng     *rng.LCG
	level   *world.Level
	manager *missiles.Manager
	caster  *spells.Caster

	ticks uint64
	kills int
}

// New loads the configured level and places the hero on it.
func New(opts Options) (*Simulation, error) {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Spells == nil {
		opts.Spells = config.MustLoadDefaultSpellTable()
	}
	if opts.Monsters == nil {
		opts.Monsters = config.MustLoadDefaultMonsterTable()
	}
	if opts.Levels == nil {
		sub, err := fs.Sub(assets.FS, "levels")
		if err != nil {
			return nil, fmt.Errorf("opening embedded levels: %w", err)
		}
		opts.Levels = sub
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	s := &Simulation{
		opts: opts,
		rng:  rng.NewLCG(opts.Config.Engine.Seed),
	}
	level, err := s.loadLevel()
	if err != nil {
		return nil, err
	}
	s.level = level

	cc := opts.Config.Combat
	s.manager = missiles.NewManager(opts.Config.GetPoolCapacity(), missiles.Env{
		Actors: level,
		RNG:    s.rng,
		Resolver: combat.NewResolver(s.rng, combat.Rules{
			MaxResistance: cc.MaxResistance,
			MinHitChance:  cc.MinHitChance,
			MaxHitChance:  cc.MaxHitChance,
		}),
		Lights:  level.Lights,
		Sound:   opts.Sound,
		Tuning:  opts.Config,
		Logger:  opts.Logger,
		Monitor: opts.Monitor,
		OnKill:  s.onKill,
		Depth:   level.Depth,
	})
	s.caster = spells.NewCaster(s.manager, opts.Spells, s.rng, opts.Logger)
	return s, nil
}

func (s *Simulation) loadLevel() (*world.Level, error) {
	cfg := s.opts.Config
	loader := world.NewMapLoader(s.opts.Monsters)
	md, err := loader.LoadMap(s.opts.Levels, cfg.Engine.Level)
	if err != nil {
		return nil, err
	}
	hero, err := world.NewPlayerFromConfig(cfg.Hero)
	if err != nil {
		return nil, fmt.Errorf("building hero: %w", err)
	}
	return loader.BuildLevel(md, hero, cfg.Engine.Depth)
}

func (s *Simulation) onKill(ref collision.ActorRef, by *missiles.Missile) {
	if ref.Kind != collision.ActorMonster {
		if s.opts.Verbose {
			s.opts.Logger.Printf("player %d killed by %s", ref.Index, by.Kind)
		}
		return
	}
	s.kills++
	if s.opts.Verbose {
		if m, ok := s.level.Monster(ref.Index); ok {
			s.opts.Logger.Printf("%s killed by %s", m.Name, by.Kind)
		}
	}
}

func (s *Simulation) Level() *world.Level        { return s.level }
func (s *Simulation) Manager() *missiles.Manager { return s.manager }
func (s *Simulation) Caster() *spells.Caster     { return s.caster }
func (s *Simulation) Config() *config.Config     { return s.opts.Config }
func (s *Simulation) Ticks() uint64              { return s.ticks }
func (s *Simulation) Kills() int                 { return s.kills }
func (s *Simulation) Draws() uint64              { return s.rng.Draws() }
func (s *Simulation) Seed() uint32               { return s.rng.Seed() }
func (s *Simulation) Verbose() bool              { return s.opts.Verbose }
func (s *Simulation) Logger() *log.Logger        { return s.opts.Logger }

// Monitor returns the tick metrics sink, nil when none was configured.
func (s *Simulation) Monitor() *monitoring.PerformanceMonitor {
	return s.opts.Monitor
}

// Hero returns the player the sandbox and replays cast with.
func (s *Simulation) Hero() *world.Player {
	p, _ := s.level.Player(HeroIndex)
	return p
}

// Tick fires due traps and advances every effect once.
func (s *Simulation) Tick() {
	for _, trap := range s.level.Traps {
		if trap.Period <= 0 || s.ticks%uint64(trap.Period) != 0 {
			continue
		}
		s.fireTrap(trap)
	}
	s.manager.AdvanceAll()
	s.ticks++
}

func (s *Simulation) fireTrap(trap world.Trap) {
	kind, err := missiles.ParseKind(trap.Missile)
	if err != nil {
		s.opts.Logger.Printf("Warning: trap at %v fires unknown effect: %v", trap.Tile, err)
		return
	}
	dst := trap.Tile.Add(trap.Facing.Delta().Scale(trapReach))
	if _, err := s.manager.CreateEffect(missiles.CreateRequest{
		Src:    trap.Tile,
		Dst:    dst,
		Dir:    trap.Facing,
		Kind:   kind,
		Caster: collision.TargetBoth,
		Source: missiles.TrapSource,
	}); err != nil {
		s.opts.Logger.Printf("Warning: trap at %v: %v", trap.Tile, err)
	}
}

// Cast has the hero cast spell toward dst, paid with resource.
func (s *Simulation) Cast(spell spells.SpellID, resource spells.ResourceType, dst geom.Point) spells.CastResult {
	hero := s.Hero()
	if hero == nil {
		return spells.CastResult{Err: spells.ErrNoCaster}
	}
	dir := hero.Facing
	if dst != hero.Tile {
		dir = geom.GetDirection(hero.Tile, dst)
		hero.Facing = dir
	}
	res := s.caster.CastSpell(spells.CastRequest{
		Player:        HeroIndex,
		Spell:         spell,
		Resource:      resource,
		Src:           hero.Tile,
		Dst:           dst,
		Dir:           dir,
		TempDirection: dir,
	})
	if s.opts.Verbose {
		switch {
		case res.Err != nil:
			s.opts.Logger.Printf("cast %s at %v failed: %v", spell, dst, res.Err)
		case res.Check != spells.CheckSuccess:
			s.opts.Logger.Printf("cast %s at %v refused: %s", spell, dst, res.Check)
		case res.Fizzled:
			s.opts.Logger.Printf("cast %s at %v fizzled", spell, dst)
		default:
			s.opts.Logger.Printf("cast %s at %v: %d effects, %d mana", spell, dst, len(res.Handles), res.ManaSpent>>combat.HitPointShift)
		}
	}
	return res
}

// Reset reloads the level, drops every effect and reseeds the random
// source, returning the simulation to its starting state.
func (s *Simulation) Reset() error {
	level, err := s.loadLevel()
	if err != nil {
		return err
	}
	s.level = level
	s.rng.SetSeed(s.opts.Config.Engine.Seed)
	s.manager.SetActors(level, level.Lights, level.Depth)
	s.ticks = 0
	s.kills = 0
	return nil
}

// Snapshot is the observable state folded into a digest.
type Snapshot struct {
	Tick     uint64        `msgpack:"tick"`
	Draws    uint64        `msgpack:"draws"`
	Players  []ActorState  `msgpack:"players"`
	Monsters []ActorState  `msgpack:"monsters"`
	Effects  []EffectState `msgpack:"effects"`
	// Pending lists the kinds cast since the last tick.
	Pending  []string      `msgpack:"pending,omitempty"`
}

type ActorState struct {
	Tile geom.Point `msgpack:"tile"`
	Life int        `msgpack:"life"`
	Mana int        `msgpack:"mana,omitempty"`
	Dead bool       `msgpack:"dead,omitempty"`
}

type EffectState struct {
	Kind   string            `msgpack:"kind"`
	Tile   geom.Point        `msgpack:"tile"`
	Offset geom.Displacement `msgpack:"offset"`
	Range  int               `msgpack:"range"`
}

// Snapshot captures players, monsters, active effects in creation order and
// the kinds still waiting for their first update.
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{Tick: s.ticks, Draws: s.rng.Draws()}
	for _, p := range s.level.Players {
		snap.Players = append(snap.Players, ActorState{Tile: p.Tile, Life: p.HitPoints, Mana: p.Mana, Dead: !p.IsAlive()})
	}
	for _, m := range s.level.Monsters {
		snap.Monsters = append(snap.Monsters, ActorState{Tile: m.Tile, Life: m.HitPoints, Dead: !m.IsAlive()})
	}
	s.manager.ForEachActive(func(mis *missiles.Missile) bool {
		if !mis.Deleted() {
			snap.Effects = append(snap.Effects, EffectState{
				Kind:   mis.Kind.String(),
				Tile:   mis.Position.Tile,
				Offset: mis.Position.Offset,
				Range:  mis.Range,
			})
		}
		return true
	})
	for _, k := range s.manager.PendingKinds() {
		snap.Pending = append(snap.Pending, k.String())
	}
	return snap
}

// Digest hashes the msgpack encoding of the current snapshot. Two runs with
// the same seed and casts produce the same digest.
func (s *Simulation) Digest() (string, error) {
	data, err := msgpack.Marshal(s.Snapshot())
	if err != nil {
		return "", fmt.Errorf("encoding snapshot: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
