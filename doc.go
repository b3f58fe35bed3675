// Package lof implements the Local Outlier Factor (LOF) anomaly detection
// algorithm.
//
// LOF scores each point of a dataset by comparing its local density to the
// local densities of its k nearest neighbors. Points whose density matches
// their neighbors' score close to 1; points in sparser regions than their
// neighbors score well above 1 and are outlier candidates.
//
// Basic usage:
//
//	cfg := lof.DefaultConfig()
//	cfg.K = 10
//	result, err := lof.FitAndScore(data, cfg)
//	// result.Scores[i] is the LOF score for point i
//	// result.Labels[i] is lof.LabelInlier or lof.LabelOutlier
//
// For precomputed distance matrices:
//
//	result, err := lof.ScorePrecomputed(distMatrix, n, cfg)
//
// # Algorithm selection
//
// By default (Algorithm: "auto"), FitAndScore picks the neighbor-search
// strategy based on the metric and dimensionality. For the built-in metrics
// on low-dimensional data it uses a KD-tree, which avoids the O(n²) distance
// matrix. Both strategies produce identical results. Set Config.Algorithm to
// force a specific strategy:
//
//	cfg.Algorithm = lof.AlgorithmBrute  // full distance matrix
//	cfg.Algorithm = lof.AlgorithmKDTree // KD-tree neighbor queries
//
// # Determinism
//
// Scoring is fully deterministic: ties in neighbor ranking and at the
// classification cutoff are broken by the points' original insertion index,
// so identical inputs always produce bit-identical results.
package lof
