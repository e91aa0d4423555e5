package metrics

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/common/expfmt"
)

const namespace = "refalgo"

// Case outcomes recorded by RecordCase.
const (
	OutcomeMatch    = "match"
	OutcomeDiverged = "diverged"
	OutcomeFailed   = "failed"
)

// Recorder owns a private Prometheus registry. A nil *Recorder is valid and
// records nothing.
type Recorder struct {
	registry *prometheus.Registry

	opDuration     *prometheus.HistogramVec
	cases          *prometheus.CounterVec
	campaigns      prometheus.Counter
	increments     prometheus.Counter
	lostIncrements prometheus.Counter
	heapAlloc      prometheus.Gauge
}

// NewRecorder creates a Recorder with the Go runtime collector registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		opDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Wall time of one operation call.",
			Buckets:   prometheus.ExponentialBuckets(1e-7, 4, 14),
		}, []string{"operation", "impl"}),
		cases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "diff_cases_total",
			Help:      "Differential cases by outcome.",
		}, []string{"case", "outcome"}),
		campaigns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "campaigns_total",
			Help:      "Completed counter campaigns.",
		}),
		increments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "campaign_increments_total",
			Help:      "Increments observed at campaign join.",
		}),
		lostIncrements: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "campaign_lost_increments_total",
			Help:      "Increments missing from the joined value (expected minus observed).",
		}),
		heapAlloc: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "heap_alloc_bytes",
			Help:      "Heap bytes in use at the last snapshot.",
		}),
	}
	r.registry.MustRegister(
		collectors.NewGoCollector(),
		r.opDuration,
		r.cases,
		r.campaigns,
		r.increments,
		r.lostIncrements,
		r.heapAlloc,
	)
	return r
}

// ObserveOperation records one timed call of operation by impl
// ("reference" or "naive").
func (r *Recorder) ObserveOperation(operation, impl string, d time.Duration) {
	if r == nil {
		return
	}
	r.opDuration.WithLabelValues(operation, impl).Observe(d.Seconds())
}

// RecordCase counts one differential case outcome.
func (r *Recorder) RecordCase(name, outcome string) {
	if r == nil {
		return
	}
	r.cases.WithLabelValues(name, outcome).Inc()
}

// RecordCampaign records a joined campaign. Observed values above expected
// are counted as observed with no loss.
func (r *Recorder) RecordCampaign(expected, observed uint64) {
	if r == nil {
		return
	}
	r.campaigns.Inc()
	r.increments.Add(float64(observed))
	if observed < expected {
		r.lostIncrements.Add(float64(expected - observed))
	}
}

// SetMemory publishes the heap size from snap.
func (r *Recorder) SetMemory(snap MemorySnapshot) {
	if r == nil {
		return
	}
	r.heapAlloc.Set(float64(snap.HeapAlloc))
}

// WriteText writes every registered metric family in the Prometheus text
// exposition format.
func (r *Recorder) WriteText(w io.Writer) error {
	if r == nil {
		return nil
	}
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("encoding %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// WriteFile writes the text exposition to path.
func (r *Recorder) WriteFile(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating metrics file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing metrics file: %w", cerr)
		}
	}()
	return r.WriteText(f)
}
