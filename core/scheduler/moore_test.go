package scheduler

import (
	"math/rand"
	"reflect"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeFinalOrder(t *testing.T) {
	tests := []struct {
		name  string
		p, d  []int
		order []int
		late  []int
	}{
		{"trace", []int{2, 5, 9, 4, 1}, []int{6, 8, 10, 12, 20}, []int{1, 2, 4, 5, 3}, []int{3}},
		{"all on time", []int{1, 2, 3}, []int{10, 10, 10}, []int{1, 2, 3}, []int{}},
		{"edd ties keep input order", []int{1, 1, 1}, []int{5, 3, 5}, []int{2, 1, 3}, []int{}},
		{"longest tie drops first seen", []int{4, 4, 1}, []int{5, 5, 10}, []int{2, 3, 1}, []int{1}},
		{"negative due dates", []int{2, 1}, []int{-1, 0}, []int{1, 2}, []int{1, 2}},
		{"single late job", []int{7}, []int{3}, []int{1}, []int{1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeFinalOrder(tt.p, tt.d); !reflect.DeepEqual(got, tt.order) {
				t.Fatalf("order: expected %v got %v", tt.order, got)
			}
			if got := ComputeLateJobs(tt.p, tt.d); !reflect.DeepEqual(got, tt.late) {
				t.Fatalf("late: expected %v got %v", tt.late, got)
			}
			if got := LateCount(tt.p, tt.d); got != len(tt.late) {
				t.Fatalf("late count: expected %d got %d", len(tt.late), got)
			}
		})
	}
}

func TestMooreEmpty(t *testing.T) {
	res := Moore(nil, nil)
	assert.NotNil(t, res.OnTime)
	assert.NotNil(t, res.Late)
	assert.Empty(t, ComputeFinalOrder(nil, nil))
	assert.Empty(t, ComputeCompletionTimes([]int{}, []int{}))
	assert.Empty(t, ComputeLateJobs(nil, nil))
}

func TestComputeCompletionTimes(t *testing.T) {
	got := ComputeCompletionTimes([]int{2, 5, 9, 4, 1}, []int{6, 8, 10, 12, 20})
	want := []JobOrderEntry{
		{JobID: 1, Completion: 2},
		{JobID: 2, Completion: 7},
		{JobID: 4, Completion: 11},
		{JobID: 5, Completion: 12},
		{JobID: 3, Completion: 21},
	}
	assert.Equal(t, want, got)
}

func TestCompletionTimesFollowsGivenOrder(t *testing.T) {
	p := []int{2, 5, 9}
	assert.Equal(t, []JobOrderEntry{{3, 9}, {1, 11}, {2, 16}}, CompletionTimes(p, []int{3, 1, 2}))
	assert.Empty(t, CompletionTimes(p, nil))
}

func TestMooreDoesNotMutateInput(t *testing.T) {
	p := []int{3, 1, 2}
	d := []int{1, 2, 3}
	_ = ComputeFinalOrder(p, d)
	assert.Equal(t, []int{3, 1, 2}, p)
	assert.Equal(t, []int{1, 2, 3}, d)
}

func TestMooreProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for iter := 0; iter < 300; iter++ {
		n := rng.Intn(9)
		p := make([]int, n)
		d := make([]int, n)
		sum := 0
		for i := range p {
			p[i] = 1 + rng.Intn(10)
			d[i] = rng.Intn(40) - 5
			sum += p[i]
		}

		res := Moore(p, d)
		order := ComputeFinalOrder(p, d)
		require.Len(t, order, n)

		sorted := append([]int(nil), order...)
		sort.Ints(sorted)
		for i, id := range sorted {
			require.Equal(t, i+1, id, "order %v is not a permutation", order)
		}

		onTime := order[:len(res.OnTime)]
		require.Equal(t, res.OnTime, onTime)
		clock := 0
		for i, id := range onTime {
			clock += p[id-1]
			require.LessOrEqual(t, clock, d[id-1], "on-time job %d finishes late", id)
			if i > 0 {
				require.LessOrEqual(t, d[onTime[i-1]-1], d[id-1], "on-time prefix not in EDD order")
			}
		}

		require.ElementsMatch(t, order[len(res.OnTime):], ComputeLateJobs(p, d))

		comp := ComputeCompletionTimes(p, d)
		require.Equal(t, comp, CompletionTimes(p, res.Order()))
		if n > 0 {
			require.Equal(t, sum, comp[n-1].Completion)
		}

		require.Equal(t, bruteForceLate(p, d), len(res.Late), "p=%v d=%v", p, d)
	}
}

// bruteForceLate finds the minimum number of late jobs by checking every
// subset for EDD feasibility.
func bruteForceLate(p, d []int) int {
	n := len(p)
	jobs := eddOrder(p, d)
	best := n
	for mask := 0; mask < 1<<n; mask++ {
		t, ok, kept := 0, true, 0
		for i, j := range jobs {
			if mask&(1<<i) == 0 {
				continue
			}
			kept++
			t += j.ProcessingTime
			if t > j.DueDate {
				ok = false
				break
			}
		}
		if ok && n-kept < best {
			best = n - kept
		}
	}
	return best
}
