package parallel

import (
	"sync/atomic"
	"testing"
)

func TestParallelizeCoversAllItems(t *testing.T) {
	tests := []struct {
		name  string
		items int
	}{
		{name: "zero items", items: 0},
		{name: "single item", items: 1},
		{name: "fewer items than cores", items: 3},
		{name: "many items", items: 10000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			visited := make([]int32, tt.items)
			Parallelize(tt.items, func(start, end int) {
				for i := start; i < end; i++ {
					atomic.AddInt32(&visited[i], 1)
				}
			})

			for i, count := range visited {
				if count != 1 {
					t.Errorf("item %d visited %d times, want exactly 1", i, count)
				}
			}
		})
	}
}

func TestParallelizeWithThreshold(t *testing.T) {
	// At or below the threshold the callback must run once over the full range.
	var calls int32
	ParallelizeWithThreshold(10, 100, func(start, end int) {
		atomic.AddInt32(&calls, 1)
		if start != 0 || end != 10 {
			t.Errorf("sequential range = [%d, %d), want [0, 10)", start, end)
		}
	})
	if calls != 1 {
		t.Errorf("sequential path ran %d times, want 1", calls)
	}

	// Above the threshold every item must still be covered exactly once.
	const items = 500
	visited := make([]int32, items)
	ParallelizeWithThreshold(items, 100, func(start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt32(&visited[i], 1)
		}
	})
	for i, count := range visited {
		if count != 1 {
			t.Errorf("item %d visited %d times, want exactly 1", i, count)
		}
	}
}
