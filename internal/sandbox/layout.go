package sandbox

import (
	"fmt"
	"image/color"

	"dungeonfx/internal/combat"
	"dungeonfx/internal/config"
	"dungeonfx/internal/geom"
	"dungeonfx/internal/mathutil"
	"dungeonfx/internal/missiles"
	"dungeonfx/internal/spells"
	"dungeonfx/internal/world"
)

// hudHeight is the strip below the map reserved for text.
const hudHeight = 64

// maxHotbar is how many spells the number keys can select.
const maxHotbar = 9

// ParseHotbar validates the configured hotbar against the spell table.
func ParseHotbar(names []string, table *config.SpellTable) ([]spells.SpellID, error) {
	if len(names) > maxHotbar {
		return nil, fmt.Errorf("hotbar has %d spells, at most %d fit", len(names), maxHotbar)
	}
	out := make([]spells.SpellID, 0, len(names))
	for _, name := range names {
		if _, ok := table.Get(name); !ok {
			return nil, fmt.Errorf("hotbar: %w: %q", spells.ErrUnknownSpell, name)
		}
		out = append(out, spells.SpellID(name))
	}
	return out, nil
}

// screenToTile maps a cursor position to the tile under it.
func screenToTile(x, y, tileSize int) geom.Point {
	if tileSize <= 0 {
		tileSize = 1
	}
	return geom.Point{X: mathutil.FloorDiv(x, tileSize), Y: mathutil.FloorDiv(y, tileSize)}
}

// effectCenter is the screen position of an effect's sprite centre, using
// the rendering snapshot taken at the start of the tick.
func effectCenter(mis *missiles.Missile, tileSize int) (float32, float32) {
	pos := mis.Position
	scale := float32(tileSize) / float32(geom.TilePixels)
	x := float32(pos.TileForRendering.X*tileSize) + float32(tileSize)/2 + float32(pos.OffsetForRendering.DeltaX)*scale
	y := float32(pos.TileForRendering.Y*tileSize) + float32(tileSize)/2 + float32(pos.OffsetForRendering.DeltaY)*scale
	return x, y
}

func tileColor(t world.TileType) color.RGBA {
	switch t {
	case world.TileWall:
		return color.RGBA{70, 64, 58, 255}
	case world.TileDoorClosed:
		return color.RGBA{120, 80, 40, 255}
	case world.TileDoorOpen:
		return color.RGBA{60, 44, 30, 255}
	default:
		return color.RGBA{24, 22, 26, 255}
	}
}

func damageColor(t combat.DamageType) color.RGBA {
	switch t {
	case combat.DamageFire:
		return color.RGBA{255, 130, 30, 255}
	case combat.DamageLightning:
		return color.RGBA{120, 180, 255, 255}
	case combat.DamageMagic:
		return color.RGBA{200, 110, 255, 255}
	case combat.DamageAcid:
		return color.RGBA{120, 230, 80, 255}
	default:
		return color.RGBA{210, 210, 200, 255}
	}
}

// effectRadius sizes an effect dot by its graphic.
func effectRadius(g missiles.Graphic, tileSize int) float32 {
	t := float32(tileSize)
	switch g {
	case missiles.GfxBigExplosion, missiles.GfxApocalypseBoom, missiles.GfxGuardian, missiles.GfxTownPortal:
		return t * 0.45
	case missiles.GfxFireWall, missiles.GfxLightningWall, missiles.GfxFlameWave, missiles.GfxExplosion, missiles.GfxWeaponExplosion, missiles.GfxAcidPuddle:
		return t * 0.35
	case missiles.GfxArrow, missiles.GfxFireArrow, missiles.GfxLightningArrow, missiles.GfxChargedBolt, missiles.GfxLightning:
		return t * 0.15
	default:
		return t * 0.25
	}
}

// lifeFraction is how full a life or mana bar is, in [0, 1].
func lifeFraction(cur, limit int) float32 {
	if limit <= 0 || cur <= 0 {
		return 0
	}
	if cur >= limit {
		return 1
	}
	return float32(cur) / float32(limit)
}
