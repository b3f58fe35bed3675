package lof

import "gonum.org/v1/gonum/floats"

// ReachabilityDistance returns the reachability distance from a point to a
// neighbor o: max(k-distance(o), dist). It smooths distances for points very
// close to their neighbors, and is asymmetric by construction.
func ReachabilityDistance(kDistO, dist float64) float64 {
	if dist < kDistO {
		return kDistO
	}
	return dist
}

// LocalReachabilityDensities computes the local reachability density of
// every point: the inverse of the mean reachability distance from the point
// to each member of its neighborhood.
//
// kDistances, neighbors and neighborDists are the per-point outputs of
// ComputeNeighborhoods (or its tree variant). When a mean reachability
// distance is exactly zero, behavior follows policy: DuplicatesError returns
// a *DegenerateDensityError for the lowest affected index; DuplicatesCap
// substitutes LRDCap.
func LocalReachabilityDensities(kDistances []float64, neighbors [][]int, neighborDists [][]float64, policy DuplicatePolicy) ([]float64, error) {
	n := len(neighbors)
	lrds := make([]float64, n)

	var reach []float64
	for i := 0; i < n; i++ {
		lrd, ok := lrdForPoint(kDistances, neighbors[i], neighborDists[i], &reach)
		if !ok {
			if policy == DuplicatesCap {
				lrd = LRDCap
			} else {
				return nil, &DegenerateDensityError{Point: i}
			}
		}
		lrds[i] = lrd
	}

	return lrds, nil
}

// lrdForPoint computes one point's local reachability density. reach is
// reusable scratch space, grown as needed. ok is false when the mean
// reachability distance is zero.
func lrdForPoint(kDistances []float64, nbrs []int, nbrDists []float64, reach *[]float64) (lrd float64, ok bool) {
	if cap(*reach) < len(nbrs) {
		*reach = make([]float64, len(nbrs))
	}
	r := (*reach)[:len(nbrs)]

	for j, o := range nbrs {
		r[j] = ReachabilityDistance(kDistances[o], nbrDists[j])
	}

	mean := floats.Sum(r) / float64(len(r))
	if mean == 0 {
		return 0, false
	}
	return 1.0 / mean, true
}
