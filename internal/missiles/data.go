package missiles

import (
	"fmt"

	"dungeonfx/internal/combat"
)

// Graphic identifies an effect sprite sequence.
type Graphic uint8

const (
	GfxNone Graphic = iota
	GfxArrow
	GfxFireArrow
	GfxLightningArrow
	GfxFirebolt
	GfxMagmaBall
	GfxBloodStar
	GfxAcid
	GfxAcidSplat
	GfxAcidPuddle
	GfxFireball
	GfxHolyBolt
	GfxChargedBolt
	GfxBoneSpirit
	GfxElemental
	GfxLightning
	GfxFireWall
	GfxLightningWall
	GfxFlameWave
	GfxNovaBall
	GfxGuardian
	GfxApocalypseBoom
	GfxStoneCurse
	GfxTownPortal
	GfxRune
	GfxExplosion
	GfxBigExplosion
	GfxWeaponExplosion
	GfxManaShield

	graphicCount
)

// GraphicData describes the frames of one sprite sequence.
type GraphicData struct {
	Name       string
	Frames     int
	Delay      int
	Directions int
	Flags      AnimFlags
}

var graphicData = [graphicCount]GraphicData{
	GfxNone:            {"none", 1, 0, 1, AnimNotAnimated},
	GfxArrow:           {"arrows", 1, 0, 16, AnimNotAnimated},
	GfxFireArrow:       {"farrow", 4, 0, 16, AnimLoops},
	GfxLightningArrow:  {"larrow", 4, 0, 16, AnimLoops},
	GfxFirebolt:        {"fireba", 14, 0, 16, AnimLoops},
	GfxMagmaBall:       {"magball", 16, 0, 8, AnimLoops},
	GfxBloodStar:       {"bloodstar", 15, 0, 16, AnimLoops},
	GfxAcid:            {"acidbf", 8, 0, 16, AnimLoops},
	GfxAcidSplat:       {"acidspla", 8, 0, 1, AnimStopsAtEnd},
	GfxAcidPuddle:      {"acidpud", 9, 1, 2, AnimLoops},
	GfxFireball:        {"fireba", 14, 0, 16, AnimLoops},
	GfxHolyBolt:        {"holy", 14, 0, 16, AnimLoops},
	GfxChargedBolt:     {"miniltng", 8, 0, 1, AnimLoops},
	GfxBoneSpirit:      {"sklball", 9, 0, 16, AnimLoops},
	GfxElemental:       {"fireba", 14, 0, 16, AnimLoops},
	GfxLightning:       {"lghning", 8, 0, 1, AnimLoops},
	GfxFireWall:        {"firewal", 13, 0, 2, AnimLoops},
	GfxLightningWall:   {"lghning", 8, 0, 1, AnimLoops},
	GfxFlameWave:       {"flamwave", 11, 0, 2, AnimLoops},
	GfxNovaBall:        {"lightball", 8, 0, 1, AnimLoops},
	GfxGuardian:        {"guard", 15, 1, 3, AnimStopsAtEnd},
	GfxApocalypseBoom:  {"newexp", 15, 0, 1, AnimStopsAtEnd},
	GfxStoneCurse:      {"stone", 1, 0, 1, AnimNotAnimated},
	GfxTownPortal:      {"portal", 16, 0, 2, AnimStopsAtEnd},
	GfxRune:            {"rglows1", 10, 1, 1, AnimLoops},
	GfxExplosion:       {"magblos", 10, 0, 1, AnimStopsAtEnd},
	GfxBigExplosion:    {"bigexp", 15, 0, 1, AnimStopsAtEnd},
	GfxWeaponExplosion: {"firerun", 8, 0, 1, AnimStopsAtEnd},
	GfxManaShield:      {"manashld", 1, 0, 1, AnimNotAnimated},
}

// GetGraphicData returns the frame table of g.
func GetGraphicData(g Graphic) GraphicData {
	if g >= graphicCount {
		return graphicData[GfxNone]
	}
	return graphicData[g]
}

// Lifetime is the number of ticks a stop-at-end sequence takes to play.
func (g GraphicData) Lifetime() int {
	return g.Frames * (g.Delay + 1)
}

// MovementDistribution says how an effect travels between tiles.
type MovementDistribution uint8

const (
	// MoveDisabled effects never move.
	MoveDisabled MovementDistribution = iota
	// MoveBlockable effects travel and can be stopped by a shield block.
	MoveBlockable
	// MoveUnblockable effects travel and cannot be blocked.
	MoveUnblockable
)

// DataFlags are static properties of a kind.
type DataFlags uint8

const (
	FlagArrow DataFlags = 1 << iota
	FlagInvisible
	// FlagGround effects are drawn beneath actors.
	FlagGround
)

type (
	addFunc     func(m *Manager, mis *Missile, param *AddParameter)
	processFunc func(m *Manager, mis *Missile)
)

// Data is the static description of one kind.
type Data struct {
	add     addFunc
	process processFunc

	CastSound  string
	HitSound   string
	Graphic    Graphic
	Flags      DataFlags
	Movement   MovementDistribution
	DamageType combat.DamageType
	// Speed in pixels per tick for moving kinds.
	Speed int
	// Range is the default lifetime in ticks.
	Range int
	// LightRadius > 0 gives the effect a light that follows it.
	LightRadius int
}

// IsArrow reports whether hit chance uses ranged accuracy.
func (d *Data) IsArrow() bool { return d.Flags&FlagArrow != 0 }

// Blockable reports whether a shield block can stop the effect. Only
// travelling blockable effects can be blocked.
func (d *Data) Blockable() bool { return d.Movement == MoveBlockable }

var missileData [kindCount]Data

// GetData returns the static data of kind k.
func GetData(k Kind) *Data {
	return &missileData[k]
}

func init() {
	missileData = [kindCount]Data{
		KindArrow:                {add: addArrow, process: processArrow, HitSound: "arrow_hit", Graphic: GfxArrow, Flags: FlagArrow, Movement: MoveBlockable, DamageType: combat.DamagePhysical, Speed: 32, Range: 256},
		KindFireArrow:            {add: addElementalArrow, process: processElementalArrow, HitSound: "arrow_hit", Graphic: GfxFireArrow, Flags: FlagArrow, Movement: MoveBlockable, DamageType: combat.DamageFire, Speed: 32, Range: 256, LightRadius: 5},
		KindLightningArrow:       {add: addElementalArrow, process: processElementalArrow, HitSound: "arrow_hit", Graphic: GfxLightningArrow, Flags: FlagArrow, Movement: MoveBlockable, DamageType: combat.DamageLightning, Speed: 32, Range: 256, LightRadius: 5},
		KindFirebolt:             {add: addProjectile, process: processProjectile, CastSound: "fire_cast", HitSound: "fire_hit", Graphic: GfxFirebolt, Movement: MoveBlockable, DamageType: combat.DamageFire, Speed: 16, Range: 256, LightRadius: 8},
		KindMagmaBall:            {add: addProjectile, process: processProjectile, CastSound: "fire_cast", HitSound: "fire_hit", Graphic: GfxMagmaBall, Movement: MoveBlockable, DamageType: combat.DamageFire, Speed: 16, Range: 256, LightRadius: 8},
		KindBloodStar:            {add: addProjectile, process: processProjectile, CastSound: "blood_cast", HitSound: "blood_hit", Graphic: GfxBloodStar, Movement: MoveBlockable, DamageType: combat.DamageMagic, Speed: 16, Range: 256, LightRadius: 8},
		KindAcid:                 {add: addProjectile, process: processProjectile, CastSound: "acid_cast", Graphic: GfxAcid, Movement: MoveBlockable, DamageType: combat.DamageAcid, Speed: 16, Range: 256},
		KindAcidSplat:            {add: addVisual, process: processAcidSplat, Graphic: GfxAcidSplat, Movement: MoveDisabled, DamageType: combat.DamageAcid},
		KindAcidPuddle:           {add: addAcidPuddle, process: processAcidPuddle, Graphic: GfxAcidPuddle, Flags: FlagGround, Movement: MoveDisabled, DamageType: combat.DamageAcid, Range: 40},
		KindFireball:             {add: addProjectile, process: processFireball, CastSound: "fire_cast", HitSound: "fire_hit", Graphic: GfxFireball, Movement: MoveBlockable, DamageType: combat.DamageFire, Speed: 16, Range: 256, LightRadius: 8},
		KindHolyBolt:             {add: addProjectile, process: processHolyBolt, CastSound: "holy_cast", HitSound: "holy_hit", Graphic: GfxHolyBolt, Movement: MoveBlockable, DamageType: combat.DamageMagic, Speed: 16, Range: 256, LightRadius: 9},
		KindChargedBolt:          {add: addChargedBolt, process: processChargedBolt, CastSound: "charged_cast", HitSound: "lightning_hit", Graphic: GfxChargedBolt, Movement: MoveBlockable, DamageType: combat.DamageLightning, Speed: 8, Range: 40, LightRadius: 5},
		KindBoneSpirit:           {add: addBoneSpirit, process: processBoneSpirit, CastSound: "bone_cast", HitSound: "bone_hit", Graphic: GfxBoneSpirit, Movement: MoveBlockable, DamageType: combat.DamageMagic, Speed: 16, Range: 256},
		KindElemental:            {add: addElemental, process: processElemental, CastSound: "elemental_cast", HitSound: "fire_hit", Graphic: GfxElemental, Movement: MoveBlockable, DamageType: combat.DamageFire, Speed: 16, Range: 256, LightRadius: 8},
		KindLightningControl:     {add: addLightningControl, process: processLightningControl, CastSound: "lightning_cast", Graphic: GfxNone, Flags: FlagInvisible, Movement: MoveBlockable, DamageType: combat.DamageLightning, Speed: 32, Range: 256},
		KindLightning:            {add: addLightning, process: processLightning, HitSound: "lightning_hit", Graphic: GfxLightning, Movement: MoveDisabled, DamageType: combat.DamageLightning, Range: 8, LightRadius: 4},
		KindChainLightning:       {add: addChainLightning, process: processChainLightning, CastSound: "lightning_cast", Graphic: GfxNone, Flags: FlagInvisible, Movement: MoveDisabled, DamageType: combat.DamageLightning, Range: 1},
		KindFireWallControl:      {add: addWallControl, process: processWallControl, CastSound: "firewall_cast", Graphic: GfxNone, Flags: FlagInvisible, Movement: MoveDisabled, DamageType: combat.DamageFire, Range: 10},
		KindFireWall:             {add: addWallSegment, process: processWallSegment, HitSound: "fire_hit", Graphic: GfxFireWall, Flags: FlagGround, Movement: MoveDisabled, DamageType: combat.DamageFire, Range: 80, LightRadius: 3},
		KindLightningWallControl: {add: addWallControl, process: processWallControl, CastSound: "lightning_cast", Graphic: GfxNone, Flags: FlagInvisible, Movement: MoveDisabled, DamageType: combat.DamageLightning, Range: 10},
		KindLightningWall:        {add: addWallSegment, process: processWallSegment, HitSound: "lightning_hit", Graphic: GfxLightningWall, Flags: FlagGround, Movement: MoveDisabled, DamageType: combat.DamageLightning, Range: 80, LightRadius: 3},
		KindRingOfFire:           {add: addRingOfFire, process: processDeleteNow, CastSound: "firewall_cast", Graphic: GfxNone, Flags: FlagInvisible, Movement: MoveDisabled, DamageType: combat.DamageFire, Range: 1},
		KindFlameWaveControl:     {add: addFlameWaveControl, process: processFlameWaveControl, CastSound: "flamewave_cast", Graphic: GfxNone, Flags: FlagInvisible, Movement: MoveDisabled, DamageType: combat.DamageFire, Range: 1},
		KindFlameWave:            {add: addFlameWave, process: processFlameWave, HitSound: "fire_hit", Graphic: GfxFlameWave, Movement: MoveUnblockable, DamageType: combat.DamageFire, Speed: 16, Range: 48, LightRadius: 3},
		KindNova:                 {add: addNova, process: processDeleteNow, CastSound: "nova_cast", Graphic: GfxNone, Flags: FlagInvisible, Movement: MoveDisabled, DamageType: combat.DamageLightning, Range: 1},
		KindNovaBall:             {add: addNovaBall, process: processNovaBall, HitSound: "lightning_hit", Graphic: GfxNovaBall, Movement: MoveUnblockable, DamageType: combat.DamageLightning, Speed: 16, Range: 16},
		KindGuardian:             {add: addGuardian, process: processGuardian, CastSound: "guardian_cast", Graphic: GfxGuardian, Movement: MoveDisabled, DamageType: combat.DamageFire, Range: 60, LightRadius: 3},
		KindApocalypse:           {add: addApocalypse, process: processApocalypse, CastSound: "apocalypse_cast", Graphic: GfxNone, Flags: FlagInvisible, Movement: MoveDisabled, DamageType: combat.DamageMagic, Range: 255},
		KindApocalypseBoom:       {add: addApocalypseBoom, process: processApocalypseBoom, HitSound: "apocalypse_hit", Graphic: GfxApocalypseBoom, Movement: MoveDisabled, DamageType: combat.DamageMagic},
		KindStoneCurse:           {add: addStoneCurse, process: processStoneCurse, CastSound: "stone_cast", Graphic: GfxStoneCurse, Movement: MoveDisabled, DamageType: combat.DamageMagic, Range: 60},
		KindTeleport:             {add: addTeleport, process: processTeleport, CastSound: "teleport_cast", Graphic: GfxNone, Flags: FlagInvisible, Movement: MoveDisabled, DamageType: combat.DamageMagic, Range: 2, LightRadius: 15},
		KindHealing:              {add: addHealing, process: processDeleteNow, CastSound: "heal_cast", Graphic: GfxNone, Flags: FlagInvisible, Movement: MoveDisabled, DamageType: combat.DamageMagic, Range: 1},
		KindHealOther:            {add: addHealOther, process: processDeleteNow, CastSound: "heal_cast", Graphic: GfxNone, Flags: FlagInvisible, Movement: MoveDisabled, DamageType: combat.DamageMagic, Range: 1},
		KindManaShield:           {add: addManaShield, process: processDeleteNow, CastSound: "manashield_cast", Graphic: GfxManaShield, Flags: FlagInvisible, Movement: MoveDisabled, DamageType: combat.DamageMagic, Range: 1},
		KindInfravision:          {add: addInfravision, process: processInfravision, CastSound: "infravision_cast", Graphic: GfxNone, Flags: FlagInvisible, Movement: MoveDisabled, DamageType: combat.DamageMagic, Range: 400},
		KindTownPortal:           {add: addTownPortal, process: processTownPortal, CastSound: "portal_cast", Graphic: GfxTownPortal, Flags: FlagGround, Movement: MoveDisabled, DamageType: combat.DamageMagic, Range: 2400, LightRadius: 15},
		KindRuneOfFire:           {add: addRune, process: processRune, CastSound: "rune_cast", Graphic: GfxRune, Flags: FlagGround, Movement: MoveDisabled, DamageType: combat.DamageFire, Range: 1200},
		KindRuneOfLight:          {add: addRune, process: processRune, CastSound: "rune_cast", Graphic: GfxRune, Flags: FlagGround, Movement: MoveDisabled, DamageType: combat.DamageLightning, Range: 1200},
		KindRuneOfNova:           {add: addRune, process: processRune, CastSound: "rune_cast", Graphic: GfxRune, Flags: FlagGround, Movement: MoveDisabled, DamageType: combat.DamageLightning, Range: 1200},
		KindMissileExplosion:     {add: addVisual, process: processVisual, Graphic: GfxExplosion, Movement: MoveDisabled, DamageType: combat.DamagePhysical},
		KindBigExplosion:         {add: addVisual, process: processBigExplosion, HitSound: "fire_hit", Graphic: GfxBigExplosion, Movement: MoveDisabled, DamageType: combat.DamageFire, LightRadius: 8},
		KindWeaponExplosion:      {add: addVisual, process: processVisual, Graphic: GfxWeaponExplosion, Movement: MoveDisabled, DamageType: combat.DamagePhysical},
	}

	for k := range missileData {
		d := &missileData[k]
		if d.add == nil || d.process == nil {
			panic(fmt.Sprintf("missiles: kind %s has no initializer or updater", Kind(k)))
		}
		if d.Graphic >= graphicCount {
			panic(fmt.Sprintf("missiles: kind %s has unknown graphic %d", Kind(k), d.Graphic))
		}
	}
}
