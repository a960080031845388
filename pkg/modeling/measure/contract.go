package measure

import "time"

type Measure interface {
	Metric(name string) Metric
	AllMetrics() map[string]Metric
}

type Metric interface {
	AddDuration(elapsed time.Duration)
	Count() int64
	TotalDuration() time.Duration
	AVGDuration() time.Duration
}
