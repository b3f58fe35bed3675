package lof

import "sort"

// ComputeNeighborhoods computes, for every point, its k-distance and its
// tie-inclusive k-neighborhood from a distance matrix.
//
// distMatrix is flat n*n row-major. k must be in [1, n-1].
//
// The k-distance of point i is the distance to its k-th nearest neighbor,
// with equal distances ranked by point index. The neighborhood of i contains
// every other point whose distance to i is <= the k-distance, so it can hold
// more than k points when ties sit on the boundary. Neighborhoods are sorted
// by (distance, index); neighborDists[i][j] is the distance from i to
// neighbors[i][j].
func ComputeNeighborhoods(distMatrix []float64, n, k int) (kDistances []float64, neighbors [][]int, neighborDists [][]float64) {
	kDistances = make([]float64, n)
	neighbors = make([][]int, n)
	neighborDists = make([][]float64, n)

	order := make([]int, n-1)
	for i := 0; i < n; i++ {
		neighborhoodForPoint(distMatrix, n, k, i, order,
			&kDistances[i], &neighbors[i], &neighborDists[i])
	}

	return kDistances, neighbors, neighborDists
}

// neighborhoodForPoint fills in the k-distance and neighborhood of point i.
// order is scratch space of length n-1, reused across calls.
func neighborhoodForPoint(distMatrix []float64, n, k, i int, order []int, kDist *float64, nbrs *[]int, nbrDists *[]float64) {
	row := distMatrix[i*n : (i+1)*n]

	idx := 0
	for j := 0; j < n; j++ {
		if j != i {
			order[idx] = j
			idx++
		}
	}
	sort.Slice(order, func(a, b int) bool {
		if row[order[a]] != row[order[b]] {
			return row[order[a]] < row[order[b]]
		}
		return order[a] < order[b]
	})

	kd := row[order[k-1]]

	// All boundary ties are included, so the neighborhood is the prefix of
	// the sorted order with distance <= k-distance.
	size := k
	for size < len(order) && row[order[size]] <= kd {
		size++
	}

	members := make([]int, size)
	dists := make([]float64, size)
	for j := 0; j < size; j++ {
		members[j] = order[j]
		dists[j] = row[order[j]]
	}

	*kDist = kd
	*nbrs = members
	*nbrDists = dists
}
