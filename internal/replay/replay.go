// Package replay records cast sessions and plays them back against a fresh
// simulation to check that the engine stays deterministic.
package replay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"dungeonfx/internal/config"
	"dungeonfx/internal/geom"
	"dungeonfx/internal/sim"
	"dungeonfx/internal/spells"
	"dungeonfx/internal/threading/core"

	"github.com/vmihailenco/msgpack/v5"
)

// FormatVersion is bumped whenever Recording changes shape.
const FormatVersion = 1

// ErrDigestMismatch is returned when a playback ends in another state than
// the recording.
var ErrDigestMismatch = errors.New("replay digest mismatch")

// Command is one cast issued before the given tick runs.
type Command struct {
	Tick     uint64              `msgpack:"tick"`
	Spell    spells.SpellID      `msgpack:"spell"`
	Resource spells.ResourceType `msgpack:"resource"`
	Target   geom.Point          `msgpack:"target"`
}

// Recording is a cast session: the start state, the casts and the digest
// of the final state.
type Recording struct {
	Version  int       `msgpack:"version"`
	Seed     uint32    `msgpack:"seed"`
	Level    string    `msgpack:"level"`
	Ticks    uint64    `msgpack:"ticks"`
	Commands []Command `msgpack:"commands"`
	Digest   string    `msgpack:"digest"`
}

// Recorder captures the casts made through it while the simulation runs.
type Recorder struct {
	sim *sim.Simulation
	rec Recording
}

// NewRecorder starts a recording of s from its current tick. The
// simulation should be freshly created or reset.
func NewRecorder(s *sim.Simulation) *Recorder {
	return &Recorder{
		sim: s,
		rec: Recording{
			Version: FormatVersion,
			Seed:    s.Seed(),
			Level:   s.Config().Engine.Level,
		},
	}
}

// Cast forwards the cast to the simulation and records it.
func (r *Recorder) Cast(spell spells.SpellID, resource spells.ResourceType, target geom.Point) spells.CastResult {
	r.rec.Commands = append(r.rec.Commands, Command{
		Tick:     r.sim.Ticks(),
		Spell:    spell,
		Resource: resource,
		Target:   target,
	})
	return r.sim.Cast(spell, resource, target)
}

// Tick advances the simulation.
func (r *Recorder) Tick() {
	r.sim.Tick()
}

// Finish stamps the tick count and final digest and returns the recording.
func (r *Recorder) Finish() (*Recording, error) {
	digest, err := r.sim.Digest()
	if err != nil {
		return nil, err
	}
	rec := r.rec
	rec.Ticks = r.sim.Ticks()
	rec.Digest = digest
	rec.Commands = append([]Command(nil), r.rec.Commands...)
	return &rec, nil
}

// Encode writes rec to w in msgpack form.
func Encode(w io.Writer, rec *Recording) error {
	if err := msgpack.NewEncoder(w).Encode(rec); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}
	return nil
}

// Decode reads a recording written by Encode.
func Decode(r io.Reader) (*Recording, error) {
	var rec Recording
	if err := msgpack.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	if rec.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported replay version %d", rec.Version)
	}
	return &rec, nil
}

// Save writes rec to a file.
func Save(filename string, rec *Recording) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create replay file: %w", err)
	}
	if err := Encode(f, rec); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Load reads a recording from a file.
func Load(filename string) (*Recording, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open replay file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Result is the outcome of one playback.
type Result struct {
	Digest string
	Kills  int
	Casts  int
	Failed int
	Err    error
}

// Run plays rec on a new simulation built from base with the recording's
// seed and level. It stops early when ctx is done.
func Run(ctx context.Context, rec *Recording, base sim.Options) Result {
	opts := base
	if opts.Config != nil {
		cfg := *opts.Config
		opts.Config = &cfg
	} else {
		opts.Config = config.Default()
	}
	opts.Config.Engine.Seed = rec.Seed
	opts.Config.Engine.Level = rec.Level
	opts.Monitor = nil
	opts.Sound = nil

	s, err := sim.New(opts)
	if err != nil {
		return Result{Err: err}
	}

	cmds := append([]Command(nil), rec.Commands...)
	sort.SliceStable(cmds, func(i, j int) bool { return cmds[i].Tick < cmds[j].Tick })

	var res Result
	next := 0
	issue := func(tick uint64) {
		for next < len(cmds) && cmds[next].Tick == tick {
			c := cmds[next]
			next++
			cast := s.Cast(c.Spell, c.Resource, c.Target)
			res.Casts++
			if cast.Err != nil || cast.Check != spells.CheckSuccess || cast.Fizzled {
				res.Failed++
			}
		}
	}
	for tick := uint64(0); tick < rec.Ticks; tick++ {
		if err := ctx.Err(); err != nil {
			return Result{Err: err}
		}
		issue(tick)
		s.Tick()
	}
	// casts made after the last tick still change mana
	issue(rec.Ticks)

	res.Kills = s.Kills()
	res.Digest, res.Err = s.Digest()
	return res
}

// Verify plays rec and compares the final digest with the recorded one.
func Verify(ctx context.Context, rec *Recording, base sim.Options) error {
	res := Run(ctx, rec, base)
	if res.Err != nil {
		return res.Err
	}
	if res.Digest != rec.Digest {
		return fmt.Errorf("%w: level %s seed %d: got %s, want %s", ErrDigestMismatch, rec.Level, rec.Seed, res.Digest, rec.Digest)
	}
	return nil
}

// VerifyAll verifies recordings in parallel. The returned slice holds one
// error (nil on success) per recording, in input order, and the number of
// failures. Recordings not started before ctx is done report nil.
func VerifyAll(ctx context.Context, recs []*Recording, base sim.Options) ([]error, int) {
	// shared read-only across workers; loading the config sets a global
	if base.Config == nil {
		base.Config = config.Default()
	}
	if base.Spells == nil {
		base.Spells = config.MustLoadDefaultSpellTable()
	}
	if base.Monsters == nil {
		base.Monsters = config.MustLoadDefaultMonsterTable()
	}
	var failed core.SafeCounter
	errs := core.ParallelMapWithContext(ctx, recs, func(rec *Recording) error {
		err := Verify(ctx, rec, base)
		if err != nil {
			failed.Increment()
		}
		return err
	})
	return errs, int(failed.Get())
}
