package lof

// KDTreeValidMetric reports whether the metric supports KD-tree acceleration.
// KD-trees require metrics that decompose along coordinate axes:
// Euclidean, Manhattan, Minkowski. Custom DistanceFunc metrics do not
// qualify and always run on the brute-force path.
func KDTreeValidMetric(m DistanceMetric) bool {
	switch m.(type) {
	case EuclideanMetric, ManhattanMetric, MinkowskiMetric:
		return true
	default:
		return false
	}
}

// selectAlgorithm resolves AlgorithmAuto into a concrete choice based on the
// metric and data dimensionality, and validates that user-forced choices are
// compatible with the metric. KD-tree pruning degrades in high dimensions,
// so auto falls back to brute force beyond 60 dimensions.
func selectAlgorithm(cfg Config, dims int) (Algorithm, error) {
	algo := cfg.Algorithm

	if algo == AlgorithmAuto {
		if KDTreeValidMetric(cfg.Metric) && dims <= 60 {
			return AlgorithmKDTree, nil
		}
		return AlgorithmBrute, nil
	}

	if algo == AlgorithmKDTree && !KDTreeValidMetric(cfg.Metric) {
		return "", invalidInputf("metric %T is not supported by the kdtree algorithm", cfg.Metric)
	}

	return algo, nil
}
