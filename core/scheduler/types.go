package scheduler

// Job is one unit of work. IDs are 1-based input positions and stay stable
// across every result produced by this package.
type Job struct {
	ID             int `json:"id"`
	ProcessingTime int `json:"processing_time"`
	DueDate        int `json:"due_date"`
}

// JobOrderEntry is the completion record of a job when jobs run back to back
// in schedule order starting at time zero.
type JobOrderEntry struct {
	JobID      int `json:"job_id"`
	Completion int `json:"completion"`
}

// Chunk is a contiguous piece of a job processed on one machine over
// [Start, End).
type Chunk struct {
	JobID int     `json:"job_id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Length returns End - Start.
func (c Chunk) Length() float64 { return c.End - c.Start }

// Assignment holds the ordered chunk list of every machine, indexed by
// machine number starting at 0.
type Assignment [][]Chunk

// Loads returns the busy time of each machine.
func (a Assignment) Loads() []float64 {
	loads := make([]float64, len(a))
	for k, chunks := range a {
		for _, c := range chunks {
			loads[k] += c.Length()
		}
	}
	return loads
}

// Span returns the latest chunk end over all machines.
func (a Assignment) Span() float64 {
	var span float64
	for _, chunks := range a {
		if n := len(chunks); n > 0 && chunks[n-1].End > span {
			span = chunks[n-1].End
		}
	}
	return span
}

// JobTotals sums the processed time of every job across all machines.
func (a Assignment) JobTotals() map[int]float64 {
	totals := make(map[int]float64)
	for _, chunks := range a {
		for _, c := range chunks {
			totals[c.JobID] += c.Length()
		}
	}
	return totals
}

// ChunkCount returns the number of chunks in the assignment.
func (a Assignment) ChunkCount() int {
	n := 0
	for _, chunks := range a {
		n += len(chunks)
	}
	return n
}

// MooreResult splits the jobs of a Moore–Hodgson pass into the on-time
// sequence (EDD order) and the late jobs (removal order).
type MooreResult struct {
	OnTime []int `json:"on_time"`
	Late   []int `json:"late"`
}

// Order returns the on-time jobs followed by the late jobs.
func (r MooreResult) Order() []int {
	order := make([]int, 0, len(r.OnTime)+len(r.Late))
	order = append(order, r.OnTime...)
	return append(order, r.Late...)
}
