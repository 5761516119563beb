// Package metrics exposes reconciliation counters to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/leasematch/internal/address"
	"github.com/leasematch/internal/report"
)

const namespace = "leasematch"

// Recorder collects run, issue and comparison metrics on its own registry
type Recorder struct {
	registry       *prometheus.Registry
	runs           prometheus.Counter
	runDuration    prometheus.Histogram
	issues         *prometheus.CounterVec
	categoryErrors *prometheus.CounterVec
	comparisons    *prometheus.CounterVec
}

// New creates a recorder with a fresh registry
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Reconciliation runs completed.",
		}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of one reconciliation run.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		issues: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "issues_total",
			Help:      "Issues reported, by category.",
		}, []string{"category"}),
		categoryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "category_errors_total",
			Help:      "Validation categories that could not be evaluated.",
		}, []string{"category"}),
		comparisons: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "address_comparisons_total",
			Help:      "Address comparisons, by outcome.",
		}, []string{"outcome"}),
	}
	r.registry.MustRegister(r.runs, r.runDuration, r.issues, r.categoryErrors, r.comparisons)
	return r
}

// Registry returns the registry the recorder publishes to
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// RunCompleted records one finished run
func (r *Recorder) RunCompleted(rep *report.Report, elapsed time.Duration) {
	r.runs.Inc()
	r.runDuration.Observe(elapsed.Seconds())

	for category, n := range rep.IssuesByCategory() {
		r.issues.WithLabelValues(category).Add(float64(n))
	}
}

// CategoryFailed records a validation category that returned an error
func (r *Recorder) CategoryFailed(category string) {
	r.categoryErrors.WithLabelValues(category).Inc()
}

// AddressComparer is the comparator surface used for bucketing
type AddressComparer interface {
	Compare(a, b string) (bool, error)
	Evaluate(a, b string) (address.Decision, error)
}

// ObservedComparator counts the outcome of every comparison made through it
type ObservedComparator struct {
	inner    AddressComparer
	recorder *Recorder
}

// Observe wraps inner so its comparisons are counted by r
func (r *Recorder) Observe(inner AddressComparer) *ObservedComparator {
	return &ObservedComparator{inner: inner, recorder: r}
}

// Compare implements bucket.Comparer
func (o *ObservedComparator) Compare(a, b string) (bool, error) {
	decision, err := o.Evaluate(a, b)
	if err != nil {
		return false, err
	}
	return decision.Match, nil
}

// Evaluate implements bucket.Evaluator
func (o *ObservedComparator) Evaluate(a, b string) (address.Decision, error) {
	decision, err := o.inner.Evaluate(a, b)
	switch {
	case err != nil:
		o.recorder.comparisons.WithLabelValues("error").Inc()
	case decision.Match:
		o.recorder.comparisons.WithLabelValues("match").Inc()
	default:
		o.recorder.comparisons.WithLabelValues("no_match").Inc()
	}
	return decision, err
}
