// Package sandbox is an ebiten viewer for trying spells on a level.
package sandbox

import (
	"fmt"
	"log"

	"dungeonfx/internal/config"
	"dungeonfx/internal/geom"
	"dungeonfx/internal/replay"
	"dungeonfx/internal/sim"
	"dungeonfx/internal/spells"
	"dungeonfx/internal/threading/monitoring"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// maxCues is how many recent sound cues the HUD lists.
const maxCues = 4

// cueLog keeps the latest sound cues for display instead of playing them.
type cueLog struct {
	cues []string
}

func (c *cueLog) PlaySfxLoc(cue string, p geom.Point) {
	c.cues = append(c.cues, fmt.Sprintf("%s@%d,%d", cue, p.X, p.Y))
	if len(c.cues) > maxCues {
		c.cues = c.cues[len(c.cues)-maxCues:]
	}
}

var hotbarKeys = [maxHotbar]ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

// Sandbox implements ebiten.Game over a simulation.
type Sandbox struct {
	sim     *sim.Simulation
	monitor *monitoring.PerformanceMonitor
	sounds  *cueLog
	logger  *log.Logger

	hotbar   []spells.SpellID
	selected int
	tileSize int
	width    int
	height   int

	paused  bool
	step    bool
	message string

	// recorder is nil unless a record path was given.
	recorder   *replay.Recorder
	recordPath string
}

// New builds the simulation described by cfg and wraps it in a viewer.
// When recordPath is set, casts are recorded and K saves the session.
func New(cfg *config.Config, logger *log.Logger, recordPath string) (*Sandbox, error) {
	if logger == nil {
		logger = log.Default()
	}
	table := config.MustLoadDefaultSpellTable()
	hotbar, err := ParseHotbar(cfg.Sandbox.Hotbar, table)
	if err != nil {
		return nil, err
	}

	sb := &Sandbox{
		monitor:    monitoring.NewPerformanceMonitor(),
		sounds:     &cueLog{},
		logger:     logger,
		hotbar:     hotbar,
		tileSize:   cfg.GetTileSize(),
		recordPath: recordPath,
	}
	sb.sim, err = sim.New(sim.Options{
		Config:  cfg,
		Spells:  table,
		Logger:  logger,
		Monitor: sb.monitor,
		Sound:   sb.sounds,
		Verbose: cfg.Sandbox.Verbose,
	})
	if err != nil {
		return nil, err
	}

	if recordPath != "" {
		sb.recorder = replay.NewRecorder(sb.sim)
	}

	level := sb.sim.Level()
	sb.width = level.Width * sb.tileSize
	sb.height = level.Height*sb.tileSize + hudHeight
	return sb, nil
}

// Size is the logical screen size the viewer draws at.
func (sb *Sandbox) Size() (int, int) {
	return sb.width, sb.height
}

// Update handles input, then advances the simulation one tick.
func (sb *Sandbox) Update() error {
	sb.handleInput()
	if sb.paused && !sb.step {
		return nil
	}
	sb.step = false
	if sb.recorder != nil {
		sb.recorder.Tick()
	} else {
		sb.sim.Tick()
	}
	return nil
}

func (sb *Sandbox) handleInput() {
	for i, key := range hotbarKeys {
		if i < len(sb.hotbar) && inpututil.IsKeyJustPressed(key) {
			sb.selected = i
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		sb.paused = !sb.paused
	}
	if sb.paused && inpututil.IsKeyJustPressed(ebiten.KeyN) {
		sb.step = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := sb.sim.Reset(); err != nil {
			sb.logger.Printf("Warning: reset failed: %v", err)
		}
		sb.monitor.Reset()
		if sb.recorder != nil {
			sb.recorder = replay.NewRecorder(sb.sim)
		}
		sb.message = "level reset"
	}
	if sb.recorder != nil && inpututil.IsKeyJustPressed(ebiten.KeyK) {
		sb.message = sb.saveRecording()
	}
	if len(sb.hotbar) == 0 {
		return
	}

	var resource spells.ResourceType
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		resource = spells.ResourceSpell
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight):
		resource = spells.ResourceScroll
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle):
		resource = spells.ResourceCharges
	default:
		return
	}
	x, y := ebiten.CursorPosition()
	target := screenToTile(x, y, sb.tileSize)
	if !sb.sim.Level().InBounds(target) {
		return
	}
	sb.message = sb.cast(sb.hotbar[sb.selected], resource, target)
}

// cast issues one cast and returns the HUD line describing it.
func (sb *Sandbox) cast(spell spells.SpellID, resource spells.ResourceType, target geom.Point) string {
	var res spells.CastResult
	if sb.recorder != nil {
		res = sb.recorder.Cast(spell, resource, target)
	} else {
		res = sb.sim.Cast(spell, resource, target)
	}
	switch {
	case res.Err != nil:
		sb.logger.Printf("Warning: %v", res.Err)
		return res.Err.Error()
	case res.Check != spells.CheckSuccess:
		return fmt.Sprintf("%s: %s", spell, res.Check)
	case res.Fizzled:
		return fmt.Sprintf("%s fizzled", spell)
	}
	return fmt.Sprintf("%s (%s) -> %v", spell, resource, target)
}

func (sb *Sandbox) saveRecording() string {
	rec, err := sb.recorder.Finish()
	if err == nil {
		err = replay.Save(sb.recordPath, rec)
	}
	if err != nil {
		sb.logger.Printf("Warning: saving replay: %v", err)
		return err.Error()
	}
	return fmt.Sprintf("saved %d casts over %d ticks to %s", len(rec.Commands), rec.Ticks, sb.recordPath)
}

func (sb *Sandbox) Layout(outsideWidth, outsideHeight int) (int, int) {
	return sb.width, sb.height
}
