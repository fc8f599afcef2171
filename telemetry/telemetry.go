// Package telemetry exposes metastable sampler progress as Prometheus
// metrics and renders them in the text exposition format.
package telemetry

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/katalvlaran/hullvolt/metastable"
)

const namespace = "hullvolt"

// SamplerMetrics records sampler progress. It implements
// metastable.Observer.
type SamplerMetrics struct {
	paths   *prometheus.CounterVec
	batches prometheus.Counter
	trials  prometheus.Gauge
	delta   prometheus.Gauge
}

var _ metastable.Observer = (*SamplerMetrics)(nil)

// NewSamplerMetrics creates the sampler collectors and registers them
// with reg.
func NewSamplerMetrics(reg prometheus.Registerer) (*SamplerMetrics, error) {
	m := &SamplerMetrics{
		paths: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "metastable",
			Name:      "paths_total",
			Help:      "Sampled discharge paths by final state.",
		}, []string{"state"}),
		batches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "metastable",
			Name:      "batches_total",
			Help:      "Completed sampling batches.",
		}),
		trials: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "metastable",
			Name:      "trials",
			Help:      "Trials folded into the running average.",
		}),
		delta: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "metastable",
			Name:      "delta",
			Help:      "L1 change of the running average in the last batch.",
		}),
	}
	for _, c := range []prometheus.Collector{m.paths, m.batches, m.trials, m.delta} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("telemetry: register: %w", err)
		}
	}

	return m, nil
}

// OnPath implements metastable.Observer.
func (m *SamplerMetrics) OnPath(state metastable.PathState) {
	m.paths.WithLabelValues(state.String()).Inc()
}

// OnBatch implements metastable.Observer.
func (m *SamplerMetrics) OnBatch(trials int, delta float64) {
	m.batches.Inc()
	m.trials.Set(float64(trials))
	m.delta.Set(delta)
}

// WriteText gathers g and writes every metric family to w in the text
// exposition format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("telemetry: gather: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("telemetry: write %s: %w", mf.GetName(), err)
		}
	}

	return nil
}
