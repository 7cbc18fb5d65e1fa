// Package runlog keeps a history of scheduling runs. Records can be stored
// in a JSONL file or a SQLite database and queried by time range,
// algorithm or run ID.
package runlog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kilianp07/jobsched/core/scheduler"
)

// Record captures one scheduling run: its input and its result.
type Record struct {
	RunID       string                    `json:"run_id"`
	Timestamp   time.Time                 `json:"timestamp"`
	Algorithm   string                    `json:"algorithm"`
	Instance    scheduler.Instance        `json:"instance"`
	Order       []int                     `json:"order,omitempty"`
	Late        []int                     `json:"late,omitempty"`
	Completions []scheduler.JobOrderEntry `json:"completions,omitempty"`
	Assignment  scheduler.Assignment      `json:"assignment,omitempty"`
	Makespan    float64                   `json:"makespan"`
	Error       string                    `json:"error,omitempty"`
}

// Query defines filters for retrieving records. Zero values match everything.
type Query struct {
	Start     time.Time
	End       time.Time
	Algorithm string
	RunID     string
	// Limit keeps only the most recent records when positive.
	Limit int
}

func (q Query) match(r Record) bool {
	if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Timestamp.After(q.End) {
		return false
	}
	if q.Algorithm != "" && r.Algorithm != q.Algorithm {
		return false
	}
	if q.RunID != "" && r.RunID != q.RunID {
		return false
	}
	return true
}

func (q Query) trim(res []Record) []Record {
	if q.Limit > 0 && len(res) > q.Limit {
		return res[len(res)-q.Limit:]
	}
	return res
}

// Store persists Records and supports querying.
type Store interface {
	Append(ctx context.Context, rec Record) error
	Query(ctx context.Context, q Query) ([]Record, error)
	Close() error
}

// ErrUnknownBackend is returned by Open for unsupported backends.
var ErrUnknownBackend = errors.New("unknown run log backend")

// Open returns the Store for backend ("jsonl", "sqlite" or "none").
func Open(backend, path string) (Store, error) {
	switch backend {
	case "jsonl":
		return NewJSONLStore(path)
	case "sqlite":
		return NewSQLiteStore(path)
	case "none", "":
		return NopStore{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, backend)
	}
}

// NopStore discards records.
type NopStore struct{}

func (NopStore) Append(context.Context, Record) error          { return nil }
func (NopStore) Query(context.Context, Query) ([]Record, error) { return nil, nil }
func (NopStore) Close() error                                   { return nil }
