package measure

import (
	"sync"
)

// DefaultMeasure keeps one metric per name. Metric is safe to call from
// concurrent fits sharing the same measure.
type DefaultMeasure struct {
	mu      sync.Mutex
	metrics map[string]Metric
}

func NewDefaultMeasure() *DefaultMeasure {
	return &DefaultMeasure{
		metrics: make(map[string]Metric),
	}
}

func (m *DefaultMeasure) Metric(name string) Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	mt, ok := m.metrics[name]
	if !ok {
		mt = &DefaultMetric{mu: &sync.Mutex{}}
		m.metrics[name] = mt
	}

	return mt
}

func (m *DefaultMeasure) AllMetrics() map[string]Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	all := make(map[string]Metric, len(m.metrics))
	for name, mt := range m.metrics {
		all[name] = mt
	}

	return all
}

var _ Measure = (*DefaultMeasure)(nil)
