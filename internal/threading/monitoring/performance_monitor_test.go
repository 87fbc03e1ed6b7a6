package monitoring

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPerformanceMonitor(t *testing.T) {
	pm := NewPerformanceMonitor()
	require.NotNil(t, pm)
	assert.WithinDuration(t, time.Now(), pm.startTime, time.Second)
	assert.Zero(t, pm.GetCurrentMetrics().Ticks)
}

func TestPerformanceMonitorTickTiming(t *testing.T) {
	pm := NewPerformanceMonitor()

	timer := pm.StartTick()
	time.Sleep(2 * time.Millisecond)
	timer.EndTick(7, 2, 3)

	m := pm.GetCurrentMetrics()
	assert.Equal(t, uint64(1), m.Ticks)
	assert.GreaterOrEqual(t, m.LastTick, 2*time.Millisecond)
	assert.Equal(t, int32(7), m.EffectsActive)
	assert.Equal(t, int32(2), m.EffectsPending)
	assert.Equal(t, uint64(3), m.EffectsSwept)
	assert.Equal(t, int32(7), m.PeakActive)

	pm.StartTick().EndTick(4, 0, 0)
	assert.Equal(t, int32(7), pm.GetCurrentMetrics().PeakActive, "peak is kept")
}

func TestPerformanceMonitorCounters(t *testing.T) {
	pm := NewPerformanceMonitor()
	pm.EffectCreated()
	pm.EffectCreated()
	pm.EffectVetoed()
	pm.HitResolved(true, false)
	pm.HitResolved(true, true)
	pm.HitResolved(false, false)

	m := pm.GetCurrentMetrics()
	assert.Equal(t, uint64(2), m.EffectsCreated)
	assert.Equal(t, uint64(1), m.EffectsVetoed)
	assert.Equal(t, uint64(2), m.Hits)
	assert.Equal(t, uint64(1), m.Misses)
	assert.Equal(t, uint64(1), m.Kills)

	stats := pm.GetDetailedStats()
	assert.Equal(t, uint64(2), stats["effects_created"])
}

func TestNilMonitorIsSafe(t *testing.T) {
	var pm *PerformanceMonitor
	assert.NotPanics(t, func() {
		pm.EffectCreated()
		pm.EffectVetoed()
		pm.PoolExhausted()
		pm.HitResolved(true, true)
		pm.StartTick().EndTick(1, 1, 1)
	})
}

func TestPerformanceAlerts(t *testing.T) {
	pm := NewPerformanceMonitor()
	assert.Empty(t, pm.CheckPerformanceAlerts())

	pm.PoolExhausted()
	pm.SetSlowTickThreshold(time.Nanosecond)
	timer := pm.StartTick()
	time.Sleep(time.Millisecond)
	timer.EndTick(0, 0, 0)

	types := map[string]bool{}
	for _, a := range pm.CheckPerformanceAlerts() {
		types[a.Type] = true
	}
	assert.True(t, types["slow_tick"])
	assert.True(t, types["pool_exhausted"])

	pm.Reset()
	pm.SetSlowTickThreshold(time.Hour)
	assert.Empty(t, pm.CheckPerformanceAlerts())
}

func TestConcurrentSampling(t *testing.T) {
	pm := NewPerformanceMonitor()
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				pm.EffectCreated()
				_ = pm.GetCurrentMetrics()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, uint64(400), pm.GetCurrentMetrics().EffectsCreated)
}
