package missiles

import (
	"errors"
	"fmt"
)

// ErrPoolExhausted is returned when a capped pool has no free slot.
var ErrPoolExhausted = errors.New("missile pool exhausted")

// Handle is a stable reference to a pool entry. A handle to a swept entry
// no longer resolves, even after its slot is reused.
type Handle struct {
	index int32
	gen   uint32
}

// NoHandle is the empty handle returned by vetoed creations.
var NoHandle = Handle{index: -1}

// Valid reports whether h was ever issued.
func (h Handle) Valid() bool {
	return h.index >= 0
}

func (h Handle) String() string {
	if !h.Valid() {
		return "handle(none)"
	}
	return fmt.Sprintf("handle(%d#%d)", h.index, h.gen)
}

type slot struct {
	missile Missile
	gen     uint32
	used    bool
}

// Pool owns every effect entry. Slots are allocated once and recycled
// through a free list, so *Missile pointers stay valid until swept.
type Pool struct {
	slots    []*slot
	free     []int32
	capacity int

	// pending holds entries created since the last promotion
	pending []int32
	active  []int32
}

// NewPool creates a pool holding at most capacity entries. Zero grows on
// demand.
func NewPool(capacity int) *Pool {
	p := &Pool{capacity: capacity}
	if capacity > 0 {
		p.slots = make([]*slot, 0, capacity)
		p.active = make([]int32, 0, capacity)
	}
	return p
}

// Capacity is the configured limit, 0 for growable.
func (p *Pool) Capacity() int {
	return p.capacity
}

// Len counts entries in use, pending ones included.
func (p *Pool) Len() int {
	return len(p.active) + len(p.pending)
}

// ActiveLen counts promoted entries.
func (p *Pool) ActiveLen() int {
	return len(p.active)
}

// PendingLen counts entries waiting for promotion.
func (p *Pool) PendingLen() int {
	return len(p.pending)
}

func (p *Pool) alloc() (*Missile, error) {
	var idx int32
	if n := len(p.free); n > 0 {
		idx = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		if p.capacity > 0 && len(p.slots) >= p.capacity {
			return nil, ErrPoolExhausted
		}
		p.slots = append(p.slots, &slot{})
		idx = int32(len(p.slots) - 1)
	}

	s := p.slots[idx]
	s.gen++
	s.used = true
	s.missile = Missile{handle: Handle{index: idx, gen: s.gen}}
	p.pending = append(p.pending, idx)
	return &s.missile, nil
}

// Get resolves a handle. Swept entries do not resolve.
func (p *Pool) Get(h Handle) (*Missile, bool) {
	if h.index < 0 || int(h.index) >= len(p.slots) {
		return nil, false
	}
	s := p.slots[h.index]
	if !s.used || s.gen != h.gen {
		return nil, false
	}
	return &s.missile, true
}

func (p *Pool) at(idx int32) *Missile {
	return &p.slots[idx].missile
}

func (p *Pool) release(idx int32) {
	s := p.slots[idx]
	s.used = false
	s.missile = Missile{}
	p.free = append(p.free, idx)
}

// discardPending releases pending entries from position from onward.
func (p *Pool) discardPending(from int, onRelease func(*Missile)) {
	for _, idx := range p.pending[from:] {
		if onRelease != nil {
			onRelease(p.at(idx))
		}
		p.release(idx)
	}
	p.pending = p.pending[:from]
}

// promote moves pending entries into the active list in creation order.
func (p *Pool) promote() {
	p.active = append(p.active, p.pending...)
	p.pending = p.pending[:0]
}

// sweep drops deleted active entries, keeping the order of the survivors.
// onRelease runs for each dropped entry before its slot is recycled.
func (p *Pool) sweep(onRelease func(*Missile)) int {
	writeIndex := 0
	removed := 0
	for _, idx := range p.active {
		m := p.at(idx)
		if m.deleted {
			if onRelease != nil {
				onRelease(m)
			}
			p.release(idx)
			removed++
			continue
		}
		p.active[writeIndex] = idx
		writeIndex++
	}
	p.active = p.active[:writeIndex]
	return removed
}

// reset drops every entry and rebuilds the free list.
func (p *Pool) reset(onRelease func(*Missile)) {
	for _, list := range [][]int32{p.active, p.pending} {
		for _, idx := range list {
			if onRelease != nil {
				onRelease(p.at(idx))
			}
			p.release(idx)
		}
	}
	p.active = p.active[:0]
	p.pending = p.pending[:0]
	p.free = p.free[:0]
	for i := len(p.slots) - 1; i >= 0; i-- {
		p.free = append(p.free, int32(i))
	}
}
