package lof

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// LocalOutlierFactors computes the LOF score of every point: the mean ratio
// of each neighbor's local reachability density to the point's own. Scores
// near 1 mean the point's density matches its neighbors'; scores well above
// 1 flag lower density than the surrounding region.
func LocalOutlierFactors(lrds []float64, neighbors [][]int) []float64 {
	n := len(lrds)
	scores := make([]float64, n)

	var ratios []float64
	for i := 0; i < n; i++ {
		scores[i] = lofForPoint(lrds, i, neighbors[i], &ratios)
	}

	return scores
}

// lofForPoint computes one point's LOF score. ratios is reusable scratch
// space, grown as needed.
func lofForPoint(lrds []float64, i int, nbrs []int, ratios *[]float64) float64 {
	if cap(*ratios) < len(nbrs) {
		*ratios = make([]float64, len(nbrs))
	}
	r := (*ratios)[:len(nbrs)]

	for j, o := range nbrs {
		r[j] = lrds[o] / lrds[i]
	}

	return stat.Mean(r, nil)
}

// ClassifyScores labels the top ceil(contamination*n) points by LOF score as
// outliers and everything else as inliers. Returns the labels and the
// threshold (the smallest score among labeled outliers).
//
// Ranking is by descending score; among equal scores the higher insertion
// index ranks first, so when the cutoff falls inside a tie the lower index
// lands on the inlier side. This makes classification deterministic for a
// fixed input.
func ClassifyScores(scores []float64, contamination float64) ([]Label, float64) {
	n := len(scores)
	labels := make([]Label, n)

	numOutliers := int(math.Ceil(contamination * float64(n)))
	if numOutliers > n {
		numOutliers = n
	}
	if numOutliers == 0 {
		return labels, math.Inf(1)
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		if scores[order[a]] != scores[order[b]] {
			return scores[order[a]] > scores[order[b]]
		}
		return order[a] > order[b]
	})

	for _, i := range order[:numOutliers] {
		labels[i] = LabelOutlier
	}

	return labels, scores[order[numOutliers-1]]
}
