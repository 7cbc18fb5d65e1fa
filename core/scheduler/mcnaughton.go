package scheduler

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Epsilon is the relative tolerance, scaled by the makespan, used to absorb
// floating point residue when comparing chunk boundaries against it.
const Epsilon = 1e-9

// ErrMachineOverflow is returned by PartitionStrict when the jobs do not fit
// into m machines of length Makespan(p, m).
var ErrMachineOverflow = errors.New("machine capacity exceeded")

// Makespan returns the optimal preemptive makespan max(sum(p)/m, max(p)).
// It returns 0 when m <= 0 or p is empty.
func Makespan(p []int, m int) float64 {
	if m <= 0 || len(p) == 0 {
		return 0
	}
	w := make([]float64, len(p))
	for i, v := range p {
		w[i] = float64(v)
	}
	return math.Max(floats.Sum(w)/float64(m), floats.Max(w))
}

// Partition computes McNaughton's wrap-around schedule of jobs p on m
// identical machines. Degenerate input (m <= 0 or no jobs) yields an empty
// assignment. If the machines run out of capacity the partial assignment
// built so far is returned; use PartitionStrict to detect that case.
func Partition(p []int, m int) Assignment {
	a, _ := PartitionStrict(p, m)
	return a
}

// PartitionStrict behaves like Partition but reports ErrMachineOverflow,
// alongside the partial assignment, when a job cannot be placed.
func PartitionStrict(p []int, m int) (Assignment, error) {
	if m <= 0 || len(p) == 0 {
		return Assignment{}, nil
	}
	return wrapAround(p, m, Makespan(p, m))
}

// wrapAround fills machines of length limit with the jobs in input order,
// spilling the remainder of a job onto the next machine. Job boundaries are
// tracked on the global time line [0, m*limit) so rounding does not
// accumulate across jobs; a job ending within the tolerance of a machine
// boundary stays on that machine.
func wrapAround(p []int, m int, limit float64) (Assignment, error) {
	a := make(Assignment, m)
	eps := Epsilon * math.Max(1, limit)

	k := 0
	pos := 0.0
	for j, pj := range p {
		if pj <= 0 {
			continue
		}
		start, end := pos, pos+float64(pj)
		pos = end
		for {
			if k >= m {
				return a, fmt.Errorf("job %d: %w", j+1, ErrMachineOverflow)
			}
			lo, hi := float64(k)*limit, float64(k+1)*limit
			if end <= hi+eps {
				a[k] = append(a[k], Chunk{JobID: j + 1, Start: math.Max(start, lo) - lo, End: end - lo})
				break
			}
			if start < hi-eps {
				a[k] = append(a[k], Chunk{JobID: j + 1, Start: math.Max(start, lo) - lo, End: limit})
				start = hi
			}
			k++
		}
	}
	return a, nil
}
