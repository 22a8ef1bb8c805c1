// Package metrics exposes prometheus counters and histograms for the
// retargeting and proof-of-work validation path, grounded on the
// client_golang usage the corpus's own dependency set anticipates
// (github.com/prometheus/client_golang, also required by the
// blinklabs-io-cdnsd example's DNS resolver stack).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder wraps the collectors this module registers. A nil *Recorder
// is safe to call every method on: retargeting and validation stay
// pure and functional whether or not a caller wired metrics in.
type Recorder struct {
	namespace string

	retargetsTotal    *prometheus.CounterVec
	retargetDuration  prometheus.Histogram
	powChecksTotal    *prometheus.CounterVec
	minDifficultyHits prometheus.Counter
}

// Option configures a Recorder at construction time.
type Option func(*Recorder)

// WithNamespace overrides the default metric namespace prefix.
func WithNamespace(namespace string) Option {
	return func(r *Recorder) {
		r.namespace = namespace
	}
}

// New builds a Recorder and registers its collectors with reg; the
// returned error is any registration error. reg must not be nil (New
// panics on a nil registry); passing a nil *Recorder everywhere metrics
// aren't wanted is the no-metrics path instead.
func New(reg prometheus.Registerer, opts ...Option) (*Recorder, error) {
	r := &Recorder{namespace: "difficulty_core"}
	for _, opt := range opts {
		opt(r)
	}

	r.retargetsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Name:      "retargets_total",
		Help:      "Number of next-work-required computations, by formula.",
	}, []string{"formula"})

	r.retargetDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: r.namespace,
		Name:      "retarget_duration_seconds",
		Help:      "Time spent computing the next required difficulty.",
		Buckets:   prometheus.DefBuckets,
	})

	r.powChecksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Name:      "pow_checks_total",
		Help:      "Number of proof-of-work checks, by outcome.",
	}, []string{"result"})

	r.minDifficultyHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: r.namespace,
		Name:      "min_difficulty_rule_hits_total",
		Help:      "Number of times the minimum-difficulty testnet rule fired.",
	})

	collectors := []prometheus.Collector{
		r.retargetsTotal,
		r.retargetDuration,
		r.powChecksTotal,
		r.minDifficultyHits,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// ObserveRetarget records one next-work-required computation by the
// formula name that produced it (e.g. "wtema", "sma", "ema").
func (r *Recorder) ObserveRetarget(formula string, seconds float64) {
	if r == nil {
		return
	}
	r.retargetsTotal.WithLabelValues(formula).Inc()
	r.retargetDuration.Observe(seconds)
}

// ObservePowCheck records one CheckProofOfWork outcome.
func (r *Recorder) ObservePowCheck(accepted bool) {
	if r == nil {
		return
	}
	result := "rejected"
	if accepted {
		result = "accepted"
	}
	r.powChecksTotal.WithLabelValues(result).Inc()
}

// ObserveMinDifficultyHit records one firing of the minimum-difficulty
// testnet rule.
func (r *Recorder) ObserveMinDifficultyHit() {
	if r == nil {
		return
	}
	r.minDifficultyHits.Inc()
}
