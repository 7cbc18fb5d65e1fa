package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	coremetrics "github.com/kilianp07/jobsched/core/metrics"
)

// PromSink records scheduling runs in Prometheus metrics.
type PromSink struct {
	runs     *prometheus.CounterVec
	late     prometheus.Histogram
	makespan *prometheus.GaugeVec
	duration *prometheus.HistogramVec
	pusher   *push.Pusher
}

// NewPromSink registers run metrics on the default Prometheus registerer.
// Nothing in this module serves that registry; callers embedding the runner
// expose it themselves. One-shot processes should use NewPushSink.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPushSink records into a private registry and pushes it to the
// Pushgateway at url after every run, grouped under job.
func NewPushSink(url, job string) (*PromSink, error) {
	if url == "" {
		return nil, errors.New("pushgateway url is required")
	}
	if job == "" {
		job = "jobsched"
	}
	reg := prometheus.NewRegistry()
	s, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		return nil, err
	}
	s.pusher = push.New(url, job).Gatherer(reg)
	return s, nil
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scheduler_runs_total",
		Help: "Total number of scheduling runs",
	}, []string{"algorithm"})
	late := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "scheduler_late_jobs",
		Help:    "Number of late jobs in Moore-Hodgson schedules",
		Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
	})
	makespan := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "scheduler_makespan",
		Help: "Makespan of the last schedule",
	}, []string{"algorithm"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "scheduler_run_duration_seconds",
		Help:    "Wall time spent computing a schedule",
		Buckets: prometheus.ExponentialBuckets(1e-6, 10, 7),
	}, []string{"algorithm"})

	var err error
	if runs, err = register(reg, runs); err != nil {
		return nil, err
	}
	if late, err = register(reg, late); err != nil {
		return nil, err
	}
	if makespan, err = register(reg, makespan); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}
	return &PromSink{runs: runs, late: late, makespan: makespan, duration: duration}, nil
}

// register adds c to reg, reusing the collector already registered under the
// same descriptor.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordRun updates the counters and gauges for one run and pushes them
// when the sink targets a Pushgateway.
func (s *PromSink) RecordRun(ev coremetrics.RunEvent) error {
	s.runs.WithLabelValues(ev.Algorithm).Inc()
	s.makespan.WithLabelValues(ev.Algorithm).Set(ev.Makespan)
	s.duration.WithLabelValues(ev.Algorithm).Observe(ev.Duration.Seconds())
	if ev.Algorithm == coremetrics.AlgorithmMoore {
		s.late.Observe(float64(ev.LateJobs))
	}
	if s.pusher != nil {
		return s.pusher.Push()
	}
	return nil
}
