// Package app wires the scheduling kernels to logging, metrics and the run
// history store.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/jobsched/config"
	coremetrics "github.com/kilianp07/jobsched/core/metrics"
	"github.com/kilianp07/jobsched/core/runlog"
	"github.com/kilianp07/jobsched/core/scheduler"
	"github.com/kilianp07/jobsched/infra/logger"
	_ "github.com/kilianp07/jobsched/infra/metrics" // registers builtin sinks
)

// MooreReport is the outcome of a Moore–Hodgson run.
type MooreReport struct {
	RunID       string                    `json:"run_id"`
	Order       []int                     `json:"order"`
	Completions []scheduler.JobOrderEntry `json:"completions"`
	Late        []int                     `json:"late"`
}

// PartitionReport is the outcome of a McNaughton run.
type PartitionReport struct {
	RunID      string               `json:"run_id"`
	Makespan   float64              `json:"makespan"`
	Assignment scheduler.Assignment `json:"assignment"`
}

// Runner executes scheduling runs and records them.
type Runner struct {
	sink   coremetrics.Sink
	store  runlog.Store
	log    logger.Logger
	strict bool
	now    func() time.Time
	newID  func() string
}

// Option configures a Runner.
type Option func(*Runner)

// WithSink sets the metrics sink.
func WithSink(s coremetrics.Sink) Option { return func(r *Runner) { r.sink = s } }

// WithStore sets the run history store.
func WithStore(s runlog.Store) Option { return func(r *Runner) { r.store = s } }

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option { return func(r *Runner) { r.log = l } }

// WithStrictPartition makes RunMcNaughton fail on machine overflow.
func WithStrictPartition(strict bool) Option { return func(r *Runner) { r.strict = strict } }

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option { return func(r *Runner) { r.now = now } }

// NewRunner returns a Runner that discards metrics and history unless
// configured otherwise.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		sink:  coremetrics.NopSink{},
		store: runlog.NopStore{},
		log:   logger.NopLogger{},
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// New creates a Runner from the configuration.
func New(cfg *config.Config) (*Runner, error) {
	if err := logger.SetLevel(cfg.Logging.Level); err != nil {
		return nil, err
	}
	sink, err := coremetrics.NewSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	store, err := runlog.Open(cfg.RunLog.Backend, cfg.RunLog.Path)
	if err != nil {
		return nil, fmt.Errorf("run log: %w", err)
	}
	return NewRunner(
		WithSink(sink),
		WithStore(store),
		WithLogger(logger.New("runner")),
		WithStrictPartition(cfg.Partition.Strict),
	), nil
}

// RunMoore validates the instance and computes the Moore–Hodgson schedule.
func (r *Runner) RunMoore(ctx context.Context, in scheduler.Instance) (*MooreReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validate(in, scheduler.KindMoore); err != nil {
		return nil, err
	}
	p, d := in.ProcessingTimes, in.DueDates

	start := r.now()
	res := scheduler.Moore(p, d)
	order := res.Order()
	rep := &MooreReport{
		RunID:       r.newID(),
		Order:       order,
		Completions: scheduler.CompletionTimes(p, order),
		Late:        res.Late,
	}
	elapsed := r.now().Sub(start)

	total := rep.Completions[len(rep.Completions)-1].Completion
	r.log.Infof("moore run %s: %d jobs, %d late", rep.RunID, len(p), len(rep.Late))
	r.log.Debugw("moore schedule", map[string]any{
		"run_id":    rep.RunID,
		"order":     rep.Order,
		"late_jobs": lateJobs(in, rep.Late),
	})

	r.record(ctx, coremetrics.RunEvent{
		RunID:     rep.RunID,
		Algorithm: coremetrics.AlgorithmMoore,
		Jobs:      len(p),
		Machines:  1,
		LateJobs:  len(rep.Late),
		Makespan:  float64(total),
		Duration:  elapsed,
		Time:      start,
	}, runlog.Record{
		RunID:       rep.RunID,
		Timestamp:   start,
		Algorithm:   coremetrics.AlgorithmMoore,
		Instance:    in,
		Order:       rep.Order,
		Late:        rep.Late,
		Completions: rep.Completions,
		Makespan:    float64(total),
	})
	return rep, nil
}

// RunMcNaughton validates the instance and computes the preemptive
// schedule on in.Machines machines.
func (r *Runner) RunMcNaughton(ctx context.Context, in scheduler.Instance) (*PartitionReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validate(in, scheduler.KindMcNaughton); err != nil {
		return nil, err
	}
	p, m := in.ProcessingTimes, in.Machines

	start := r.now()
	a, err := scheduler.PartitionStrict(p, m)
	elapsed := r.now().Sub(start)
	rep := &PartitionReport{RunID: r.newID(), Makespan: scheduler.Makespan(p, m), Assignment: a}

	rec := runlog.Record{
		RunID:      rep.RunID,
		Timestamp:  start,
		Algorithm:  coremetrics.AlgorithmMcNaughton,
		Instance:   in,
		Assignment: a,
		Makespan:   rep.Makespan,
	}
	if err != nil {
		r.log.Errorf("mcnaughton run %s: %v", rep.RunID, err)
		if r.strict {
			rec.Error = err.Error()
			r.append(ctx, rec)
			return nil, err
		}
	}

	r.log.Infof("mcnaughton run %s: %d jobs on %d machines, makespan %.3f", rep.RunID, len(p), m, rep.Makespan)
	r.log.Debugw("mcnaughton loads", map[string]any{"run_id": rep.RunID, "loads": a.Loads()})

	r.record(ctx, coremetrics.RunEvent{
		RunID:     rep.RunID,
		Algorithm: coremetrics.AlgorithmMcNaughton,
		Jobs:      len(p),
		Machines:  m,
		Makespan:  rep.Makespan,
		Chunks:    a.ChunkCount(),
		Duration:  elapsed,
		Time:      start,
	}, rec)
	return rep, nil
}

// History returns recorded runs matching q.
func (r *Runner) History(ctx context.Context, q runlog.Query) ([]runlog.Record, error) {
	return r.store.Query(ctx, q)
}

// Close releases the run log store and closable sinks.
func (r *Runner) Close() error {
	if c, ok := r.sink.(coremetrics.Closer); ok {
		c.Close()
	}
	return r.store.Close()
}

// record reports the run to the sink and the history store. Failures are
// logged; the schedule itself is still returned to the caller.
func (r *Runner) record(ctx context.Context, ev coremetrics.RunEvent, rec runlog.Record) {
	if err := r.sink.RecordRun(ev); err != nil {
		r.log.Warnf("record metrics for run %s: %v", ev.RunID, err)
	}
	r.append(ctx, rec)
}

func validate(in scheduler.Instance, kind scheduler.Kind) error {
	if err := in.Validate(kind); err != nil {
		return fmt.Errorf("%s instance: %w", kind, err)
	}
	return nil
}

// lateJobs resolves late IDs to the jobs of the instance, in removal order.
func lateJobs(in scheduler.Instance, late []int) []scheduler.Job {
	jobs := in.Jobs()
	out := make([]scheduler.Job, 0, len(late))
	for _, id := range late {
		out = append(out, jobs[id-1])
	}
	return out
}

func (r *Runner) append(ctx context.Context, rec runlog.Record) {
	if err := r.store.Append(ctx, rec); err != nil {
		r.log.Warnf("append run %s to history: %v", rec.RunID, err)
	}
}
