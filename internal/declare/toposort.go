package declare

import (
	"slices"

	"github.com/cockroachdb/errors"
)

// errCycle is returned by topoSort when the dependencies form a cycle.
var errCycle = errors.New("cycle detected")

// topoSort returns the indices 0..n-1 so that every index comes after the
// indices depsFn returns for it. Among the available nodes the smallest
// index is picked first, so the order is deterministic.
func topoSort(n int, depsFn func(i int) []int) ([]int, error) {
	if n <= 0 {
		return nil, nil
	}

	indeg := make([]int, n)
	out := make([][]int, n)

	for i := range n {
		for _, d := range depsFn(i) {
			if d < 0 || d >= n {
				return nil, errors.Newf("dependency index out of range: %d depends on %d", i, d)
			}

			indeg[i]++
			out[d] = append(out[d], i)
		}
	}

	for i := range out {
		slices.Sort(out[i])
	}

	var ready []int

	for i := range n {
		if indeg[i] == 0 {
			ready = append(ready, i)
		}
	}

	order := make([]int, 0, n)

	for len(ready) > 0 {
		i := ready[0]
		ready = ready[1:]

		order = append(order, i)

		for _, j := range out[i] {
			indeg[j]--
			if indeg[j] == 0 {
				k, _ := slices.BinarySearch(ready, j)
				ready = slices.Insert(ready, k, j)
			}
		}
	}

	if len(order) != n {
		return order, errCycle
	}

	return order, nil
}
