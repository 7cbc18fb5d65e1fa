package runlog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/jobsched/core/scheduler"
)

func sampleRecords(base time.Time) []Record {
	p, d := []int{2, 5, 9, 4, 1}, []int{6, 8, 10, 12, 20}
	res := scheduler.Moore(p, d)
	return []Record{
		{
			RunID:       "r1",
			Timestamp:   base,
			Algorithm:   "moore",
			Instance:    scheduler.Instance{ProcessingTimes: p, DueDates: d},
			Order:       res.Order(),
			Late:        res.Late,
			Completions: scheduler.ComputeCompletionTimes(p, d),
			Makespan:    21,
		},
		{
			RunID:      "r2",
			Timestamp:  base.Add(time.Minute),
			Algorithm:  "mcnaughton",
			Instance:   scheduler.Instance{ProcessingTimes: []int{3, 5}, Machines: 2},
			Assignment: scheduler.Partition([]int{3, 5}, 2),
			Makespan:   5,
		},
		{
			RunID:     "r3",
			Timestamp: base.Add(2 * time.Minute),
			Algorithm: "moore",
			Instance:  scheduler.Instance{ProcessingTimes: []int{1}, DueDates: []int{0}},
			Late:      []int{1},
		},
	}
}

func TestStores_AppendQuery(t *testing.T) {
	for _, backend := range []string{"jsonl", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			store, err := Open(backend, filepath.Join(t.TempDir(), "runs."+backend))
			require.NoError(t, err)
			defer func() { _ = store.Close() }()

			base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
			for _, rec := range sampleRecords(base) {
				require.NoError(t, store.Append(ctx, rec))
			}

			all, err := store.Query(ctx, Query{})
			require.NoError(t, err)
			require.Len(t, all, 3)
			assert.Equal(t, []int{1, 2, 4, 5, 3}, all[0].Order)
			assert.Equal(t, 21, all[0].Completions[4].Completion)
			require.Len(t, all[1].Assignment, 2)
			assert.InDelta(t, 3.0, all[1].Assignment[1][0].End, 1e-9)

			moore, err := store.Query(ctx, Query{Algorithm: "moore"})
			require.NoError(t, err)
			require.Len(t, moore, 2)
			assert.Equal(t, "r3", moore[1].RunID)

			window, err := store.Query(ctx, Query{Start: base.Add(30 * time.Second), End: base.Add(90 * time.Second)})
			require.NoError(t, err)
			require.Len(t, window, 1)
			assert.Equal(t, "r2", window[0].RunID)

			byID, err := store.Query(ctx, Query{RunID: "r3"})
			require.NoError(t, err)
			require.Len(t, byID, 1)

			last, err := store.Query(ctx, Query{Limit: 2})
			require.NoError(t, err)
			require.Len(t, last, 2)
			assert.Equal(t, "r2", last[0].RunID)
		})
	}
}

func TestJSONLStore_SkipsCorruptLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.jsonl")
	store, err := NewJSONLStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Append(context.Background(), Record{RunID: "ok", Algorithm: "moore"}))

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("{not json\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	out, err := store.Query(context.Background(), Query{})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "ok", out[0].RunID)
}

func TestJSONLStore_CanceledContext(t *testing.T) {
	store, err := NewJSONLStore(filepath.Join(t.TempDir(), "runs.jsonl"))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, store.Append(ctx, Record{}), context.Canceled)
}

func TestOpen(t *testing.T) {
	s, err := Open("none", "")
	require.NoError(t, err)
	assert.IsType(t, NopStore{}, s)
	require.NoError(t, s.Append(context.Background(), Record{}))
	out, err := s.Query(context.Background(), Query{})
	require.NoError(t, err)
	assert.Empty(t, out)
	require.NoError(t, s.Close())

	_, err = Open("postgres", "x")
	assert.True(t, errors.Is(err, ErrUnknownBackend))

	_, err = NewJSONLStore(filepath.Join(t.TempDir(), "missing", "runs.jsonl"))
	assert.Error(t, err)
}
