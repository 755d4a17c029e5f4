// Package metrics accumulates per-compilation metrics into process-wide statistics.
package metrics

import (
	"sync"
	"time"

	"github.com/reglet-dev/apmlc/internal/application/dto"
	"github.com/reglet-dev/apmlc/internal/application/ports"
	"github.com/reglet-dev/apmlc/internal/domain/values"
)

var _ ports.MetricsSink = (*Aggregator)(nil)

// Aggregator tracks compilation statistics. It is safe for concurrent use.
type Aggregator struct {
	mu sync.RWMutex

	total          int64
	automatic      int64
	hybrid         int64
	manual         int64
	degraded       int64
	failed         int64
	fallbackCalls  int64
	repaired       int64
	componentErrs  int64
	totalDuration  time.Duration
	lastRecordedAt time.Time
}

// NewAggregator creates an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Record folds one compilation's metrics into the totals.
func (a *Aggregator) Record(m dto.CompileMetrics) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.total++
	a.totalDuration += m.Duration
	a.lastRecordedAt = time.Now()
	a.componentErrs += int64(m.ComponentErrors)
	if m.FallbackCalled {
		a.fallbackCalls++
	}
	if m.Repaired {
		a.repaired++
	}
	if m.Failed {
		a.failed++
		return
	}
	if m.Degraded {
		a.degraded++
	}

	switch m.Strategy {
	case values.StrategyAutomatic:
		a.automatic++
	case values.StrategyHybrid:
		a.hybrid++
	case values.StrategyManualOnly:
		a.manual++
	}
}

// Snapshot is a point-in-time copy of the statistics.
type Snapshot struct {
	Total            int64         `json:"total" yaml:"total"`
	Automatic        int64         `json:"automatic" yaml:"automatic"`
	Hybrid           int64         `json:"hybrid" yaml:"hybrid"`
	Manual           int64         `json:"manual" yaml:"manual"`
	Degraded         int64         `json:"degraded" yaml:"degraded"`
	Errors           int64         `json:"errors" yaml:"errors"`
	FallbackCalls    int64         `json:"fallback_calls" yaml:"fallback_calls"`
	Repaired         int64         `json:"repaired" yaml:"repaired"`
	ComponentErrors  int64         `json:"component_errors" yaml:"component_errors"`
	SuccessRate      float64       `json:"success_rate" yaml:"success_rate"`
	AutomaticPercent float64       `json:"automatic_percent" yaml:"automatic_percent"`
	ManualPercent    float64       `json:"manual_percent" yaml:"manual_percent"`
	AvgDuration      time.Duration `json:"avg_duration" yaml:"avg_duration"`
	LastRecordedAt   time.Time     `json:"last_recorded_at" yaml:"last_recorded_at"`
}

// Snapshot returns the current statistics with derived rates.
// Percentages are of all recorded compilations; manual counts hybrid and manual-only.
func (a *Aggregator) Snapshot() Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()

	s := Snapshot{
		Total:           a.total,
		Automatic:       a.automatic,
		Hybrid:          a.hybrid,
		Manual:          a.manual,
		Degraded:        a.degraded,
		Errors:          a.failed,
		FallbackCalls:   a.fallbackCalls,
		Repaired:        a.repaired,
		ComponentErrors: a.componentErrs,
		LastRecordedAt:  a.lastRecordedAt,
	}
	if a.total > 0 {
		total := float64(a.total)
		s.SuccessRate = float64(a.total-a.failed) / total * 100
		s.AutomaticPercent = float64(a.automatic) / total * 100
		s.ManualPercent = float64(a.hybrid+a.manual) / total * 100
		s.AvgDuration = a.totalDuration / time.Duration(a.total)
	}
	return s
}

// Reset clears all statistics.
func (a *Aggregator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.total, a.automatic, a.hybrid, a.manual = 0, 0, 0, 0
	a.degraded, a.failed, a.fallbackCalls, a.repaired, a.componentErrs = 0, 0, 0, 0, 0
	a.totalDuration = 0
	a.lastRecordedAt = time.Time{}
}
