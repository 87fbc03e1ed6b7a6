package sandbox

import (
	"fmt"
	"image/color"
	"strings"

	"dungeonfx/internal/combat"
	"dungeonfx/internal/geom"
	"dungeonfx/internal/missiles"
	"dungeonfx/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	ebitext "github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var (
	heroColor      = color.RGBA{80, 150, 255, 255}
	monsterColor   = color.RGBA{200, 50, 50, 255}
	petrifiedColor = color.RGBA{140, 140, 140, 255}
	trapColor      = color.RGBA{230, 200, 60, 255}
	lightColor     = color.RGBA{255, 220, 140, 24}
	hudColor       = color.RGBA{220, 220, 220, 255}
	selectedColor  = color.RGBA{255, 220, 90, 255}
)

const helpText = "1-9 spell  LMB mana  RMB scroll  MMB staff  Space pause  N step  R reset"

// Draw renders the level, its actors and every visible effect.
func (sb *Sandbox) Draw(screen *ebiten.Image) {
	level := sb.sim.Level()
	ts := float32(sb.tileSize)

	for y := 0; y < level.Height; y++ {
		for x := 0; x < level.Width; x++ {
			vector.DrawFilledRect(screen, float32(x)*ts, float32(y)*ts, ts-1, ts-1, tileColor(level.Tiles[y][x]), false)
		}
	}

	level.Lights.ForEach(func(_ int, l world.Light) {
		cx, cy := sb.tileCenter(l.Tile)
		scale := ts / float32(geom.TilePixels)
		cx += float32(l.Offset.DeltaX) * scale
		cy += float32(l.Offset.DeltaY) * scale
		vector.DrawFilledCircle(screen, cx, cy, float32(l.Radius)*ts/2, lightColor, true)
	})

	for _, trap := range level.Traps {
		x, y := sb.tileCenter(trap.Tile)
		d := trap.Facing.Delta()
		vector.StrokeLine(screen, x, y, x+float32(d.DeltaX)*ts/2, y+float32(d.DeltaY)*ts/2, 2, trapColor, true)
	}

	sb.drawEffects(screen, true)

	for _, m := range level.Monsters {
		if !m.IsAlive() {
			continue
		}
		c := monsterColor
		if m.Petrified {
			c = petrifiedColor
		}
		sb.drawActor(screen, m.Tile, c, lifeFraction(m.HitPoints, m.MaxHitPoints))
	}
	for _, p := range level.Players {
		if p.IsAlive() {
			sb.drawActor(screen, p.Tile, heroColor, lifeFraction(p.HitPoints, p.MaxHitPoints))
		}
	}

	sb.drawEffects(screen, false)
	sb.drawHUD(screen)
}

// drawEffects draws the visible effects lying on the ground when ground is
// set, and the rest otherwise.
func (sb *Sandbox) drawEffects(screen *ebiten.Image, ground bool) {
	sb.sim.Manager().ForEachActive(func(mis *missiles.Missile) bool {
		if mis.Deleted() || !mis.DrawFlag || mis.PreFlag != ground {
			return true
		}
		x, y := effectCenter(mis, sb.tileSize)
		vector.DrawFilledCircle(screen, x, y, effectRadius(mis.Anim.Graphic, sb.tileSize), damageColor(mis.Data().DamageType), true)
		return true
	})
}

func (sb *Sandbox) tileCenter(p geom.Point) (float32, float32) {
	ts := float32(sb.tileSize)
	return float32(p.X)*ts + ts/2, float32(p.Y)*ts + ts/2
}

func (sb *Sandbox) drawActor(screen *ebiten.Image, p geom.Point, c color.RGBA, life float32) {
	ts := float32(sb.tileSize)
	x, y := float32(p.X)*ts, float32(p.Y)*ts
	vector.DrawFilledRect(screen, x+2, y+2, ts-5, ts-5, c, false)
	vector.DrawFilledRect(screen, x+2, y, (ts-5)*life, 2, color.RGBA{60, 220, 60, 255}, false)
}

func (sb *Sandbox) drawHUD(screen *ebiten.Image) {
	face := basicfont.Face7x13
	top := sb.sim.Level().Height * sb.tileSize
	vector.DrawFilledRect(screen, 0, float32(top), float32(sb.width), hudHeight, color.RGBA{0, 0, 0, 200}, false)

	// hotbar, selected entry highlighted
	x := 6
	for i, spell := range sb.hotbar {
		label := fmt.Sprintf("%d:%s", i+1, spell)
		c := hudColor
		if i == sb.selected {
			c = selectedColor
		}
		ebitext.Draw(screen, label, face, x, top+14, c)
		x += (len(label) + 2) * 7
	}

	hero := sb.sim.Hero()
	status := "hero down"
	if hero != nil && hero.IsAlive() {
		status = fmt.Sprintf("HP %d/%d  Mana %d/%d", hero.HitPoints>>combat.HitPointShift, hero.MaxHitPoints>>combat.HitPointShift,
			hero.Mana>>combat.HitPointShift, hero.MaxMana>>combat.HitPointShift)
	}
	m := sb.monitor.GetCurrentMetrics()
	stats := fmt.Sprintf("tick %d  effects %d (peak %d)  hits %d  kills %d", sb.sim.Ticks(), m.EffectsActive, m.PeakActive, m.Hits, sb.sim.Kills())
	if sb.paused {
		stats += "  [paused]"
	}
	ebitext.Draw(screen, status+"   "+stats, face, 6, top+30, hudColor)
	ebitext.Draw(screen, sb.message, face, 6, top+46, hudColor)
	ebitext.Draw(screen, strings.Join(sb.sounds.cues, "  "), face, 6, top+60, petrifiedColor)
	ebitenutil.DebugPrintAt(screen, helpText, 4, 2)
}
