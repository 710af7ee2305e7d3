package loess

import (
	"math"
	"sort"

	"github.com/YuminosukeSato/loessgo/dataset"
)

// nearestIndices returns the indices of the k samples closest to x0 by
// |x_i - x0|, together with the distance to the farthest of them. Ties at
// equal distance are broken by original sample index (stable). The query is
// independent per evaluation point; no state is shared between points.
func nearestIndices(data dataset.Dataset, x0 float64, k int) ([]int, float64) {
	n := len(data)
	if k > n {
		k = n
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return math.Abs(data[idx[a]].X-x0) < math.Abs(data[idx[b]].X-x0)
	})

	selected := idx[:k]
	dMax := math.Abs(data[selected[k-1]].X - x0)
	return selected, dMax
}
