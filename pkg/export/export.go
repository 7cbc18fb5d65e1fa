// Package export writes scheduling results as JSON, CSV or plain text.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/kilianp07/jobsched/core/scheduler"
)

// WriteJSON writes any result value to w as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteOrderCSV writes the schedule order with its completion times and
// whether each job finishes late.
func WriteOrderCSV(w io.Writer, entries []scheduler.JobOrderEntry, late []int) error {
	lateSet := make(map[int]bool, len(late))
	for _, id := range late {
		lateSet[id] = true
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"position", "job_id", "completion", "late"}); err != nil {
		return err
	}
	for i, e := range entries {
		rec := []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(e.JobID),
			strconv.Itoa(e.Completion),
			strconv.FormatBool(lateSet[e.JobID]),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteAssignmentCSV writes one row per chunk.
func WriteAssignmentCSV(w io.Writer, a scheduler.Assignment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"machine", "job_id", "start", "end"}); err != nil {
		return err
	}
	for k, chunks := range a {
		for _, c := range chunks {
			rec := []string{
				strconv.Itoa(k + 1),
				strconv.Itoa(c.JobID),
				formatTime(c.Start),
				formatTime(c.End),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteOrderText prints the schedule as "job -> completion" lines.
func WriteOrderText(w io.Writer, entries []scheduler.JobOrderEntry, late []int) error {
	lateSet := make(map[int]bool, len(late))
	for _, id := range late {
		lateSet[id] = true
	}
	for _, e := range entries {
		mark := ""
		if lateSet[e.JobID] {
			mark = " (late)"
		}
		if _, err := fmt.Fprintf(w, "J%d -> %d%s\n", e.JobID, e.Completion, mark); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "late jobs: %d\n", len(late))
	return err
}

// WriteAssignmentText prints one line per machine listing its chunks.
func WriteAssignmentText(w io.Writer, a scheduler.Assignment) error {
	for k, chunks := range a {
		parts := make([]string, len(chunks))
		for i, c := range chunks {
			parts[i] = fmt.Sprintf("J%d[%s,%s)", c.JobID, formatTime(c.Start), formatTime(c.End))
		}
		if _, err := fmt.Fprintf(w, "M%d: %s\n", k+1, strings.Join(parts, " ")); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "makespan: %s\n", formatTime(a.Span()))
	return err
}

// formatTime rounds to 6 decimals so float residue does not leak into output.
func formatTime(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e6)/1e6, 'f', -1, 64)
}
