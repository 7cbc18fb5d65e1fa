package metrics

import "time"

// Algorithm names used as metric labels and run log keys.
const (
	AlgorithmMoore      = "moore"
	AlgorithmMcNaughton = "mcnaughton"
)

// RunEvent summarises one scheduling run.
type RunEvent struct {
	RunID     string
	Algorithm string
	Jobs      int
	// Machines is 1 for single machine runs.
	Machines int
	LateJobs int
	Makespan float64
	Chunks   int
	Duration time.Duration
	Time     time.Time
}

// Sink records scheduling runs for observability purposes.
type Sink interface {
	RecordRun(ev RunEvent) error
}

// NopSink implements Sink with a no-op method.
type NopSink struct{}

func (NopSink) RecordRun(RunEvent) error { return nil }

// MultiSink fans out run events to multiple sinks.
type MultiSink struct {
	Sinks []Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordRun forwards the event to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordRun(ev RunEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordRun(ev); err != nil {
			return err
		}
	}
	return nil
}

// Closer is implemented by sinks holding connections.
type Closer interface {
	Close()
}

// Close releases every sink implementing Closer.
func (m *MultiSink) Close() {
	for _, s := range m.Sinks {
		if c, ok := s.(Closer); ok {
			c.Close()
		}
	}
}
