package monitoring

import (
	"sync"
	"sync/atomic"
	"time"
)

// PerformanceMonitor tracks per-tick metrics of the effect engine. Counters
// are atomic so a viewer may sample them from another goroutine.
type PerformanceMonitor struct {
	// Tick metrics
	tickCount atomic.Uint64
	tickTime  atomic.Uint64 // nanoseconds

	// Effect metrics
	effectsActive  atomic.Int32
	effectsPending atomic.Int32
	effectsCreated atomic.Uint64
	effectsVetoed  atomic.Uint64
	effectsSwept   atomic.Uint64
	poolExhausted  atomic.Uint64

	// Combat metrics
	hitsResolved atomic.Uint64
	misses       atomic.Uint64
	kills        atomic.Uint64

	// Statistics
	mutex        sync.RWMutex
	avgTickTime  float64
	peakActive   int32
	startTime    time.Time
	slowTickNano uint64
}

// NewPerformanceMonitor creates a new performance monitor
func NewPerformanceMonitor() *PerformanceMonitor {
	return &PerformanceMonitor{
		startTime:    time.Now(),
		slowTickNano: uint64(10 * time.Millisecond),
	}
}

// TickTimer measures one engine tick
type TickTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartTick begins tick timing. A nil monitor yields a timer that records
// nothing.
func (pm *PerformanceMonitor) StartTick() *TickTimer {
	return &TickTimer{
		monitor:   pm,
		startTime: time.Now(),
	}
}

// EndTick completes tick timing and stores the pool occupancy after the sweep.
func (tt *TickTimer) EndTick(active, pending, swept int) {
	pm := tt.monitor
	if pm == nil {
		return
	}
	tickTime := time.Since(tt.startTime)
	pm.tickTime.Store(uint64(tickTime.Nanoseconds()))
	count := pm.tickCount.Add(1)
	pm.effectsActive.Store(int32(active))
	pm.effectsPending.Store(int32(pending))
	pm.effectsSwept.Add(uint64(swept))

	// Running mean over all ticks
	pm.mutex.Lock()
	pm.avgTickTime += (float64(tickTime.Nanoseconds()) - pm.avgTickTime) / float64(count)
	if int32(active) > pm.peakActive {
		pm.peakActive = int32(active)
	}
	pm.mutex.Unlock()
}

// EffectCreated counts a successful creation.
func (pm *PerformanceMonitor) EffectCreated() {
	if pm != nil {
		pm.effectsCreated.Add(1)
	}
}

// EffectVetoed counts a creation refused by its initializer.
func (pm *PerformanceMonitor) EffectVetoed() {
	if pm != nil {
		pm.effectsVetoed.Add(1)
	}
}

// PoolExhausted counts a creation that found no free slot.
func (pm *PerformanceMonitor) PoolExhausted() {
	if pm != nil {
		pm.poolExhausted.Add(1)
	}
}

// HitResolved counts one resolver call.
func (pm *PerformanceMonitor) HitResolved(hit, killed bool) {
	if pm == nil {
		return
	}
	if !hit {
		pm.misses.Add(1)
		return
	}
	pm.hitsResolved.Add(1)
	if killed {
		pm.kills.Add(1)
	}
}

// EngineMetrics is a snapshot of the counters.
type EngineMetrics struct {
	Ticks          uint64
	LastTick       time.Duration
	AverageTick    time.Duration
	EffectsActive  int32
	EffectsPending int32
	PeakActive     int32
	EffectsCreated uint64
	EffectsVetoed  uint64
	EffectsSwept   uint64
	PoolExhausted  uint64
	Hits           uint64
	Misses         uint64
	Kills          uint64
}

// GetCurrentMetrics returns current performance metrics
func (pm *PerformanceMonitor) GetCurrentMetrics() EngineMetrics {
	pm.mutex.RLock()
	avg := pm.avgTickTime
	peak := pm.peakActive
	pm.mutex.RUnlock()

	return EngineMetrics{
		Ticks:          pm.tickCount.Load(),
		LastTick:       time.Duration(pm.tickTime.Load()),
		AverageTick:    time.Duration(avg),
		EffectsActive:  pm.effectsActive.Load(),
		EffectsPending: pm.effectsPending.Load(),
		PeakActive:     peak,
		EffectsCreated: pm.effectsCreated.Load(),
		EffectsVetoed:  pm.effectsVetoed.Load(),
		EffectsSwept:   pm.effectsSwept.Load(),
		PoolExhausted:  pm.poolExhausted.Load(),
		Hits:           pm.hitsResolved.Load(),
		Misses:         pm.misses.Load(),
		Kills:          pm.kills.Load(),
	}
}

// GetDetailedStats returns the metrics keyed for logging
func (pm *PerformanceMonitor) GetDetailedStats() map[string]interface{} {
	m := pm.GetCurrentMetrics()
	return map[string]interface{}{
		"uptime_seconds":   time.Since(pm.startTime).Seconds(),
		"ticks":            m.Ticks,
		"avg_tick_time_ms": float64(m.AverageTick) / float64(time.Millisecond),
		"effects_active":   m.EffectsActive,
		"effects_pending":  m.EffectsPending,
		"peak_active":      m.PeakActive,
		"effects_created":  m.EffectsCreated,
		"effects_vetoed":   m.EffectsVetoed,
		"effects_swept":    m.EffectsSwept,
		"pool_exhausted":   m.PoolExhausted,
		"hits":             m.Hits,
		"misses":           m.Misses,
		"kills":            m.Kills,
	}
}

// PerformanceAlert represents a performance warning
type PerformanceAlert struct {
	Type      string
	Message   string
	Value     float64
	Threshold float64
	Timestamp time.Time
}

// CheckPerformanceAlerts reports slow ticks and pool exhaustion.
func (pm *PerformanceMonitor) CheckPerformanceAlerts() []PerformanceAlert {
	alerts := make([]PerformanceAlert, 0)
	currentTime := time.Now()

	pm.mutex.RLock()
	threshold := pm.slowTickNano
	pm.mutex.RUnlock()

	if tickTime := pm.tickTime.Load(); tickTime > threshold {
		alerts = append(alerts, PerformanceAlert{
			Type:      "slow_tick",
			Message:   "Last tick took longer than the slow-tick threshold",
			Value:     float64(tickTime) / float64(time.Millisecond),
			Threshold: float64(threshold) / float64(time.Millisecond),
			Timestamp: currentTime,
		})
	}

	if exhausted := pm.poolExhausted.Load(); exhausted > 0 {
		alerts = append(alerts, PerformanceAlert{
			Type:      "pool_exhausted",
			Message:   "Effect pool ran out of slots",
			Value:     float64(exhausted),
			Threshold: 0,
			Timestamp: currentTime,
		})
	}

	return alerts
}

// SetSlowTickThreshold changes the slow-tick alert threshold.
func (pm *PerformanceMonitor) SetSlowTickThreshold(d time.Duration) {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()
	pm.slowTickNano = uint64(d.Nanoseconds())
}

// Reset resets all performance counters
func (pm *PerformanceMonitor) Reset() {
	pm.tickCount.Store(0)
	pm.tickTime.Store(0)
	pm.effectsActive.Store(0)
	pm.effectsPending.Store(0)
	pm.effectsCreated.Store(0)
	pm.effectsVetoed.Store(0)
	pm.effectsSwept.Store(0)
	pm.poolExhausted.Store(0)
	pm.hitsResolved.Store(0)
	pm.misses.Store(0)
	pm.kills.Store(0)

	pm.mutex.Lock()
	pm.avgTickTime = 0
	pm.peakActive = 0
	pm.startTime = time.Now()
	pm.mutex.Unlock()
}
