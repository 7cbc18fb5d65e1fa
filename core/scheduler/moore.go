package scheduler

import "sort"

// Moore runs the Moore–Hodgson pass over processing times p and due dates d.
// Processing times must be strictly positive; this is not checked.
func Moore(p, d []int) MooreResult {
	res := MooreResult{OnTime: []int{}, Late: []int{}}
	jobs := eddOrder(p, d)
	if len(jobs) == 0 {
		return res
	}

	scheduled := make([]Job, 0, len(jobs))
	t := 0
	for _, j := range jobs {
		scheduled = append(scheduled, j)
		t += j.ProcessingTime
		if t <= j.DueDate {
			continue
		}
		i := longest(scheduled)
		t -= scheduled[i].ProcessingTime
		res.Late = append(res.Late, scheduled[i].ID)
		scheduled = append(scheduled[:i], scheduled[i+1:]...)
	}

	for _, j := range scheduled {
		res.OnTime = append(res.OnTime, j.ID)
	}
	return res
}

// ComputeFinalOrder returns the job IDs in execution order: on-time jobs by
// earliest due date, then late jobs in the order they were dropped.
func ComputeFinalOrder(p, d []int) []int {
	return Moore(p, d).Order()
}

// ComputeCompletionTimes runs the jobs back to back in final order and
// reports the cumulative completion time of each one.
func ComputeCompletionTimes(p, d []int) []JobOrderEntry {
	return CompletionTimes(p, ComputeFinalOrder(p, d))
}

// CompletionTimes runs the jobs of order back to back from time zero using
// processing times p.
func CompletionTimes(p []int, order []int) []JobOrderEntry {
	out := make([]JobOrderEntry, 0, len(order))
	t := 0
	for _, id := range order {
		t += p[id-1]
		out = append(out, JobOrderEntry{JobID: id, Completion: t})
	}
	return out
}

// ComputeLateJobs returns the late job IDs in removal order.
func ComputeLateJobs(p, d []int) []int {
	return Moore(p, d).Late
}

// LateCount returns the optimal number of late jobs.
func LateCount(p, d []int) int {
	return len(Moore(p, d).Late)
}

// eddOrder packs the inputs into jobs sorted by due date. Ties keep input
// order so results are reproducible.
func eddOrder(p, d []int) []Job {
	n := min(len(p), len(d))
	jobs := make([]Job, n)
	for i := 0; i < n; i++ {
		jobs[i] = Job{ID: i + 1, ProcessingTime: p[i], DueDate: d[i]}
	}
	sort.SliceStable(jobs, func(a, b int) bool {
		return jobs[a].DueDate < jobs[b].DueDate
	})
	return jobs
}

// longest returns the index of the first job with the largest processing time.
func longest(jobs []Job) int {
	best := 0
	for i := 1; i < len(jobs); i++ {
		if jobs[i].ProcessingTime > jobs[best].ProcessingTime {
			best = i
		}
	}
	return best
}
