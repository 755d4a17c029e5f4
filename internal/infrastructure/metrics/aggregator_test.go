package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/reglet-dev/apmlc/internal/application/dto"
	"github.com/reglet-dev/apmlc/internal/domain/values"
	"github.com/stretchr/testify/assert"
)

func TestAggregator_Snapshot(t *testing.T) {
	a := NewAggregator()
	a.Record(dto.CompileMetrics{Strategy: values.StrategyAutomatic, Duration: 10 * time.Millisecond})
	a.Record(dto.CompileMetrics{Strategy: values.StrategyAutomatic, Duration: 30 * time.Millisecond, ComponentErrors: 2})
	a.Record(dto.CompileMetrics{Strategy: values.StrategyHybrid, FallbackCalled: true, Degraded: true, Duration: 20 * time.Millisecond})
	a.Record(dto.CompileMetrics{Failed: true, Duration: 20 * time.Millisecond})

	s := a.Snapshot()
	assert.EqualValues(t, 4, s.Total)
	assert.EqualValues(t, 2, s.Automatic)
	assert.EqualValues(t, 1, s.Hybrid)
	assert.EqualValues(t, 0, s.Manual)
	assert.EqualValues(t, 1, s.Degraded)
	assert.EqualValues(t, 1, s.Errors)
	assert.EqualValues(t, 1, s.FallbackCalls)
	assert.EqualValues(t, 2, s.ComponentErrors)
	assert.InDelta(t, 75.0, s.SuccessRate, 0.001)
	assert.InDelta(t, 50.0, s.AutomaticPercent, 0.001)
	assert.InDelta(t, 25.0, s.ManualPercent, 0.001)
	assert.Equal(t, 20*time.Millisecond, s.AvgDuration)
}

func TestAggregator_EmptyAndReset(t *testing.T) {
	a := NewAggregator()
	assert.Zero(t, a.Snapshot().SuccessRate)

	a.Record(dto.CompileMetrics{Strategy: values.StrategyManualOnly})
	a.Reset()
	assert.Equal(t, Snapshot{}, a.Snapshot())
}

func TestAggregator_Concurrent(t *testing.T) {
	a := NewAggregator()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.Record(dto.CompileMetrics{Strategy: values.StrategyAutomatic})
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 50, a.Snapshot().Automatic)
}
