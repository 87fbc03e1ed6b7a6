package missiles

import (
	"errors"
	"fmt"
	"log"

	"dungeonfx/internal/collision"
	"dungeonfx/internal/combat"
	"dungeonfx/internal/geom"
	"dungeonfx/internal/rng"
	"dungeonfx/internal/threading/monitoring"
	"dungeonfx/internal/world"
)

// Actors is the level view the engine reads and mutates.
type Actors interface {
	collision.TileChecker
	collision.Occupancy
	Player(idx int) (*world.Player, bool)
	Monster(idx int) (*world.Monster, bool)
	PlayerCount() int
	MonsterCount() int
	MovePlayer(idx int, to geom.Point) error
	KillMonster(idx int)
}

// LightService manages dynamic lights attached to effects.
type LightService interface {
	AddLight(p geom.Point, radius int) int
	ChangeLight(id int, p geom.Point, radius int)
	ChangeLightOffset(id int, off geom.Displacement)
	DeleteLight(id int)
}

// SoundPlayer plays positional sound cues. Calls are fire-and-forget.
type SoundPlayer interface {
	PlaySfxLoc(cue string, p geom.Point)
}

// Tuning supplies per-kind speed and lifetime overrides.
type Tuning interface {
	GetMissileSpeed(kind string, fallback int) int
	GetMissileRange(kind string, fallback int) int
}

type nopSound struct{}

func (nopSound) PlaySfxLoc(string, geom.Point) {}

type nopLights struct{}

func (nopLights) AddLight(geom.Point, int) int             { return world.NoLight }
func (nopLights) ChangeLight(int, geom.Point, int)         {}
func (nopLights) ChangeLightOffset(int, geom.Displacement) {}
func (nopLights) DeleteLight(int)                          {}

// Env bundles the services the engine consumes.
type Env struct {
	Actors   Actors
	RNG      rng.Source
	Resolver *combat.Resolver
	Lights   LightService
	Sound    SoundPlayer
	Tuning   Tuning
	Logger   *log.Logger
	Monitor  *monitoring.PerformanceMonitor
	// OnKill runs after an actor dies from an effect.
	OnKill func(ref collision.ActorRef, by *Missile)
	// Depth is the dungeon level, used for trap damage.
	Depth int
}

// CreateRequest describes one effect to create.
type CreateRequest struct {
	Src        geom.Point
	Dst        geom.Point
	Dir        geom.Direction
	Kind       Kind
	Caster     collision.Target
	Source     int
	Damage     combat.DamageRange
	SpellLevel int
	// Parent is the effect that spawned this one, or NoHandle.
	Parent Handle
	// Sound overrides the kind's cast cue when set.
	Sound string
}

// AddParameter is passed to initializers. Setting SpellFizzled vetoes the
// creation.
type AddParameter struct {
	Dst          geom.Point
	Dir          geom.Direction
	Parent       *Missile
	SpellFizzled bool
}

// Manager owns the effect pool and runs one tick at a time. It is not safe
// for concurrent use.
type Manager struct {
	pool      *Pool
	env       Env
	collision *collision.CollisionSystem
	ticks     uint64
}

// NewManager creates a manager with a pool of the given capacity (0 grows).
func NewManager(capacity int, env Env) *Manager {
	if env.RNG == nil {
		env.RNG = rng.NewLCG(0)
	}
	if env.Resolver == nil {
		env.Resolver = combat.NewResolver(env.RNG, combat.DefaultRules)
	}
	if env.Lights == nil {
		env.Lights = nopLights{}
	}
	if env.Sound == nil {
		env.Sound = nopSound{}
	}
	if env.Logger == nil {
		env.Logger = log.Default()
	}
	return &Manager{
		pool:      NewPool(capacity),
		env:       env,
		collision: collision.NewCollisionSystem(env.Actors, env.Actors),
	}
}

// Pool exposes the entry arena.
func (m *Manager) Pool() *Pool { return m.pool }

// Collision returns the tile and actor query service.
func (m *Manager) Collision() *collision.CollisionSystem { return m.collision }

// Actors returns the current level view.
func (m *Manager) Actors() Actors { return m.env.Actors }

// Ticks counts completed AdvanceAll calls.
func (m *Manager) Ticks() uint64 { return m.ticks }

// Get resolves a handle.
func (m *Manager) Get(h Handle) (*Missile, bool) {
	return m.pool.Get(h)
}

// SetActors switches the manager to another level. Every effect of the old
// level is dropped.
func (m *Manager) SetActors(actors Actors, lights LightService, depth int) {
	m.Clear()
	m.env.Actors = actors
	if lights != nil {
		m.env.Lights = lights
	}
	m.env.Depth = depth
	m.collision.UpdateTileChecker(actors, actors)
}

func (m *Manager) tunedSpeed(k Kind) int {
	fallback := GetData(k).Speed
	if m.env.Tuning == nil {
		return fallback
	}
	return m.env.Tuning.GetMissileSpeed(k.String(), fallback)
}

func (m *Manager) tunedRange(k Kind) int {
	fallback := GetData(k).Range
	if m.env.Tuning == nil {
		return fallback
	}
	return m.env.Tuning.GetMissileRange(k.String(), fallback)
}

// CreateEffect allocates and initializes an effect. The entry joins the
// active set at the start of the next AdvanceAll. A veto by the initializer
// returns NoHandle and a nil error; a full pool returns ErrPoolExhausted.
func (m *Manager) CreateEffect(req CreateRequest) (Handle, error) {
	if !req.Kind.Valid() {
		return NoHandle, fmt.Errorf("create effect: %w: %d", ErrUnknownKind, req.Kind)
	}
	data := GetData(req.Kind)

	mark := m.pool.PendingLen()
	mis, err := m.pool.alloc()
	if err != nil {
		m.env.Monitor.PoolExhausted()
		m.env.Logger.Printf("Warning: cannot create %s at %v: %v", req.Kind, req.Src, err)
		return NoHandle, fmt.Errorf("create %s: %w", req.Kind, err)
	}

	mis.Kind = req.Kind
	mis.Position = Position{
		Tile:             req.Src,
		Start:            req.Src,
		TileForRendering: req.Src,
	}
	mis.Frame = int(req.Dir)
	mis.Range = m.tunedRange(req.Kind)
	mis.LightID = world.NoLight
	mis.DrawFlag = data.Flags&FlagInvisible == 0
	mis.PreFlag = data.Flags&FlagGround != 0
	mis.Caster = req.Caster
	mis.Source = req.Source
	mis.Damage = req.Damage
	mis.SpellLevel = req.SpellLevel
	m.setGraphic(mis, data.Graphic)

	param := AddParameter{Dst: req.Dst, Dir: req.Dir}
	if req.Parent.Valid() {
		if parent, ok := m.pool.Get(req.Parent); ok {
			param.Parent = parent
		}
	}

	data.add(m, mis, &param)

	if param.SpellFizzled {
		// drops the vetoed entry and anything its initializer spawned
		m.pool.discardPending(mark, m.releaseResources)
		m.env.Monitor.EffectVetoed()
		return NoHandle, nil
	}

	if data.LightRadius > 0 && mis.LightID == world.NoLight && !mis.deleted {
		mis.LightID = m.env.Lights.AddLight(mis.Position.Tile, data.LightRadius)
	}

	cue := req.Sound
	if cue == "" {
		cue = data.CastSound
	}
	if cue != "" {
		m.env.Sound.PlaySfxLoc(cue, req.Src)
	}
	m.env.Monitor.EffectCreated()
	return mis.handle, nil
}

// spawn creates a child effect from inside an initializer or updater,
// inheriting authorship from parent. Failures are logged, not returned.
func (m *Manager) spawn(parent *Missile, kind Kind, src, dst geom.Point, dir geom.Direction, damage combat.DamageRange) (Handle, bool) {
	h, err := m.CreateEffect(CreateRequest{
		Src:        src,
		Dst:        dst,
		Dir:        dir,
		Kind:       kind,
		Caster:     parent.Caster,
		Source:     parent.Source,
		Damage:     damage,
		SpellLevel: parent.SpellLevel,
		Parent:     parent.handle,
	})
	if err != nil {
		if errors.Is(err, ErrPoolExhausted) {
			return NoHandle, false
		}
		m.env.Logger.Printf("Warning: %s could not spawn %s: %v", parent.Kind, kind, err)
		return NoHandle, false
	}
	return h, h.Valid()
}

// AdvanceAll runs one tick: pending entries are promoted, each active
// entry's updater runs once in creation order, then deleted entries are
// swept. Entries created during the tick wait for the next call. An entry
// whose range is used up after its update never outlives the tick.
func (m *Manager) AdvanceAll() {
	timer := m.env.Monitor.StartTick()

	m.pool.promote()
	n := m.pool.ActiveLen()
	for i := 0; i < n; i++ {
		mis := m.pool.at(m.pool.active[i])
		if mis.deleted {
			continue
		}
		mis.Position.TileForRendering = mis.Position.Tile
		mis.Position.OffsetForRendering = mis.Position.Offset
		mis.Age++

		GetData(mis.Kind).process(m, mis)

		if mis.deleted {
			continue
		}
		if mis.Range <= 0 {
			mis.Delete()
			continue
		}
		if !m.collision.InBounds(mis.Position.Tile) {
			mis.Delete()
			continue
		}
		mis.Anim.advance()
	}

	swept := m.Sweep()
	m.ticks++
	timer.EndTick(m.pool.ActiveLen(), m.pool.PendingLen(), swept)
}

// Sweep removes deleted entries from the active set. Running it twice in a
// row removes nothing the second time.
func (m *Manager) Sweep() int {
	return m.pool.sweep(m.releaseResources)
}

// releaseResources runs once for every entry leaving the pool, however it
// was removed.
func (m *Manager) releaseResources(mis *Missile) {
	if mis.LightID != world.NoLight {
		m.env.Lights.DeleteLight(mis.LightID)
		mis.LightID = world.NoLight
	}
	if st, ok := mis.State.(*StoneCurseState); ok {
		if mon, ok := m.env.Actors.Monster(st.Monster); ok && mon.IsAlive() {
			mon.Petrified = false
		}
	}
}

// ForEachActive calls fn for each active entry in creation order until fn
// returns false. Entries deleted this tick but not yet swept are visited;
// pending entries are not.
func (m *Manager) ForEachActive(fn func(*Missile) bool) {
	for _, idx := range m.pool.active {
		if !fn(m.pool.at(idx)) {
			return
		}
	}
}

// PendingKinds lists the kinds created since the last tick, in creation
// order.
func (m *Manager) PendingKinds() []Kind {
	kinds := make([]Kind, 0, len(m.pool.pending))
	for _, idx := range m.pool.pending {
		if mis := m.pool.at(idx); !mis.deleted {
			kinds = append(kinds, mis.Kind)
		}
	}
	return kinds
}

// Cancel marks the entry behind h for removal.
func (m *Manager) Cancel(h Handle) bool {
	mis, ok := m.pool.Get(h)
	if !ok || mis.deleted {
		return false
	}
	mis.Delete()
	return true
}

// Clear drops every entry, active or pending, and releases their lights.
func (m *Manager) Clear() {
	m.pool.reset(m.releaseResources)
}

// Count returns active plus pending entries.
func (m *Manager) Count() int {
	return m.pool.Len()
}

// CountKind counts live entries of kind k, pending included.
func (m *Manager) CountKind(k Kind) int {
	n := 0
	m.forEachLive(func(mis *Missile) {
		if mis.Kind == k {
			n++
		}
	})
	return n
}

// forEachLive visits active and pending entries that are not deleted.
func (m *Manager) forEachLive(fn func(*Missile)) {
	for _, list := range [][]int32{m.pool.active, m.pool.pending} {
		for _, idx := range list {
			if mis := m.pool.at(idx); !mis.deleted {
				fn(mis)
			}
		}
	}
}

func (m *Manager) setGraphic(mis *Missile, g Graphic) {
	gd := GetGraphicData(g)
	mis.Anim = Animation{
		Graphic: g,
		Flags:   gd.Flags,
		Delay:   gd.Delay + 1,
		Length:  gd.Frames,
		Add:     1,
	}
}

// StopMissile halts an effect where it is drawn.
func (m *Manager) StopMissile(mis *Missile) {
	mis.Position.Velocity = geom.Displacement{}
	if mis.Position.TileForRendering == mis.Position.Tile {
		mis.Position.Offset = mis.Position.OffsetForRendering
	}
}

func (m *Manager) followLight(mis *Missile) {
	if mis.LightID == world.NoLight {
		return
	}
	m.env.Lights.ChangeLight(mis.LightID, mis.Position.Tile, GetData(mis.Kind).LightRadius)
	m.env.Lights.ChangeLightOffset(mis.LightID, mis.Position.Offset)
}

func (m *Manager) playHit(mis *Missile, p geom.Point) {
	if cue := GetData(mis.Kind).HitSound; cue != "" {
		m.env.Sound.PlaySfxLoc(cue, p)
	}
}
