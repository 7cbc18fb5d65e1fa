// Package scheduler implements two classical machine scheduling kernels.
//
// Moore–Hodgson minimises the number of late jobs on a single machine. Jobs
// are sequenced by earliest due date and, whenever the running completion
// time overshoots a due date, the longest job scheduled so far is moved to
// the late list.
//
// McNaughton builds an optimal preemptive schedule on identical parallel
// machines. The makespan is max(sum(p)/m, max(p)) and jobs are poured into
// machines in input order, wrapping onto the next machine when one is full.
//
// The kernels are pure functions: they never validate, log or persist.
// Instance.Validate checks the preconditions for callers that want them
// enforced upstream.
package scheduler
