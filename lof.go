package lof

import (
	"math"
	"runtime"
)

// Label classifies a point as inlier or outlier.
type Label int8

const (
	LabelInlier  Label = 0
	LabelOutlier Label = 1
)

func (l Label) String() string {
	switch l {
	case LabelInlier:
		return "inlier"
	case LabelOutlier:
		return "outlier"
	default:
		return "unknown"
	}
}

// Algorithm selects the neighbor-search strategy.
type Algorithm string

const (
	AlgorithmAuto   Algorithm = "auto"
	AlgorithmBrute  Algorithm = "brute"
	AlgorithmKDTree Algorithm = "kdtree"
)

// DuplicatePolicy controls how a zero mean reachability distance (at least
// k+1 coincident points) is handled during density computation.
type DuplicatePolicy string

const (
	// DuplicatesError returns a *DegenerateDensityError naming the lowest
	// affected point index. This is the default.
	DuplicatesError DuplicatePolicy = "error"

	// DuplicatesCap substitutes LRDCap for the affected densities, so fully
	// duplicated regions score close to 1 instead of failing.
	DuplicatesCap DuplicatePolicy = "cap"
)

// LRDCap is the local reachability density assigned to points whose mean
// reachability distance is zero when DuplicatePolicy is DuplicatesCap.
const LRDCap = 1e12

// Config controls LOF scoring behavior.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// K is the neighbor count used for k-distances and neighborhoods.
	// Must be >= 1, and the dataset must contain at least K+1 points.
	// Default: 20.
	K int

	// Metric is the distance function used to measure point similarity.
	// Built-in: EuclideanMetric, ManhattanMetric, MinkowskiMetric. Use
	// DistanceFunc to wrap a custom function (brute-force path only).
	// Default: EuclideanMetric.
	Metric DistanceMetric

	// Contamination is the expected fraction of outliers in the dataset,
	// in (0, 0.5]. It only sets the classification cutoff: the top
	// ceil(Contamination*N) points by LOF score are labeled outliers.
	// Default: 0.1.
	Contamination float64

	// DuplicatePolicy selects how degenerate densities (zero mean
	// reachability distance) are handled. Default: DuplicatesError.
	DuplicatePolicy DuplicatePolicy

	// Algorithm selects the neighbor-search strategy.
	// "auto" picks based on metric and dimensionality.
	// "brute" uses the full distance matrix (O(n²) memory).
	// "kdtree" uses KD-tree queries (built-in metrics only).
	// Both produce identical results. Default: "auto".
	Algorithm Algorithm

	// LeafSize controls the maximum number of points in a KD-tree leaf node.
	// Only used with the kdtree algorithm. Default: 40.
	LeafSize int

	// Workers controls the number of goroutines for parallelizable stages
	// (pairwise distances, neighborhoods, densities, scores). Only affects
	// the brute-force algorithm path. 0 means use runtime.NumCPU().
	// Default: 0 (auto).
	Workers int
}

// Result contains the output of LOF scoring. All per-point slices align
// index-for-index with the input dataset.
type Result struct {
	// Scores is the LOF score for each point. Scores near 1 indicate
	// density matching the neighborhood; scores well above 1 indicate
	// outlier candidates.
	Scores []float64

	// Labels classifies each point as LabelInlier or LabelOutlier.
	Labels []Label

	// Threshold is the smallest LOF score among points labeled outlier.
	Threshold float64

	// KDistances is the distance from each point to its K-th nearest
	// neighbor. Exposed for diagnostics.
	KDistances []float64

	// LRDs is the local reachability density of each point. Exposed for
	// diagnostics.
	LRDs []float64
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		K:               20,
		Metric:          EuclideanMetric{},
		Contamination:   0.1,
		DuplicatePolicy: DuplicatesError,
		Algorithm:       AlgorithmAuto,
	}
}

// applyDefaults fills in zero-valued config fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.K == 0 {
		cfg.K = 20
	}
	if cfg.Metric == nil {
		cfg.Metric = EuclideanMetric{}
	}
	if cfg.Contamination == 0 {
		cfg.Contamination = 0.1
	}
	if cfg.DuplicatePolicy == "" {
		cfg.DuplicatePolicy = DuplicatesError
	}
	if cfg.Algorithm == "" {
		cfg.Algorithm = AlgorithmAuto
	}
	if cfg.LeafSize == 0 {
		cfg.LeafSize = 40
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
}

// validateConfig checks that cfg fields are valid and returns an
// *InvalidInputError describing the first violation found.
func validateConfig(cfg *Config) error {
	if cfg.K < 1 {
		return invalidInputf("K must be >= 1, got %d", cfg.K)
	}
	switch m := cfg.Metric.(type) {
	case EuclideanMetric, ManhattanMetric:
		// valid
	case DistanceFunc:
		if m == nil {
			return invalidInputf("DistanceFunc metric is nil")
		}
	case MinkowskiMetric:
		if math.IsNaN(m.P) || math.IsInf(m.P, 0) || m.P < 1 {
			return invalidInputf("Minkowski exponent must be finite and >= 1, got %v", m.P)
		}
	default:
		return invalidInputf("unsupported metric %T", cfg.Metric)
	}
	if !(cfg.Contamination > 0 && cfg.Contamination <= 0.5) {
		return invalidInputf("Contamination must be in (0, 0.5], got %v", cfg.Contamination)
	}
	switch cfg.DuplicatePolicy {
	case DuplicatesError, DuplicatesCap:
		// valid
	default:
		return invalidInputf("invalid DuplicatePolicy %q", cfg.DuplicatePolicy)
	}
	switch cfg.Algorithm {
	case AlgorithmAuto, AlgorithmBrute, AlgorithmKDTree:
		// valid
	default:
		return invalidInputf("invalid Algorithm %q", cfg.Algorithm)
	}
	if cfg.LeafSize < 1 {
		return invalidInputf("LeafSize must be >= 1, got %d", cfg.LeafSize)
	}
	if cfg.Workers < 0 {
		return invalidInputf("Workers must be >= 0, got %d", cfg.Workers)
	}
	return nil
}

// validateData checks shape and finiteness of the dataset against the
// config and returns the dimensionality.
func validateData(data [][]float64, cfg *Config) (int, error) {
	n := len(data)
	if n == 0 {
		return 0, invalidInputf("dataset is empty")
	}
	if n < cfg.K+1 {
		return 0, invalidInputf("dataset has %d points, need at least K+1 = %d", n, cfg.K+1)
	}
	dims := len(data[0])
	if dims < 1 {
		return 0, invalidInputf("points must have dimensionality >= 1")
	}
	for i, row := range data {
		if len(row) != dims {
			return 0, invalidInputf("point %d has dimensionality %d, expected %d", i, len(row), dims)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, invalidInputf("point %d has non-finite coordinate at dimension %d", i, j)
			}
		}
	}
	return dims, nil
}

// FitAndScore computes LOF scores and inlier/outlier labels for the given
// dataset. Each element is a point (float64 slice); all points must have the
// same dimensionality. The computation is pure: identical inputs yield
// bit-identical results, and data is not modified.
//
// Returns an *InvalidInputError for malformed parameters or data, or a
// *DegenerateDensityError when a neighborhood's mean reachability distance
// collapses to zero under the default DuplicatePolicy.
func FitAndScore(data [][]float64, cfg Config) (*Result, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	dims, err := validateData(data, &cfg)
	if err != nil {
		return nil, err
	}

	n := len(data)
	flatData := make([]float64, n*dims)
	for i, row := range data {
		copy(flatData[i*dims:], row)
	}

	algo, err := selectAlgorithm(cfg, dims)
	if err != nil {
		return nil, err
	}

	var kDistances []float64
	var neighbors [][]int
	var neighborDists [][]float64

	switch algo {
	case AlgorithmKDTree:
		tree := NewKDTree(flatData, n, dims, cfg.Metric, cfg.LeafSize)
		kDistances, neighbors, neighborDists = ComputeNeighborhoodsTree(tree, cfg.K)
	default:
		// AlgorithmBrute: use full distance matrix.
		distMatrix := ComputePairwiseDistancesParallel(flatData, n, dims, cfg.Metric, cfg.Workers)
		kDistances, neighbors, neighborDists = ComputeNeighborhoodsParallel(distMatrix, n, cfg.K, cfg.Workers)
	}

	return scoreFromNeighborhoods(kDistances, neighbors, neighborDists, cfg)
}

// ScorePrecomputed computes LOF scores from a precomputed distance matrix.
// distMatrix is a flat []float64 of length n*n in row-major order, where
// distMatrix[i*n+j] is the distance between points i and j. The Config.Metric
// field is ignored since distances are already computed.
func ScorePrecomputed(distMatrix []float64, n int, cfg Config) (*Result, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	if len(distMatrix) != n*n {
		return nil, invalidInputf("distMatrix length %d does not match n*n = %d (n=%d)", len(distMatrix), n*n, n)
	}
	if n < cfg.K+1 {
		return nil, invalidInputf("distance matrix has %d points, need at least K+1 = %d", n, cfg.K+1)
	}
	for i, v := range distMatrix {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, invalidInputf("distMatrix[%d][%d] is non-finite", i/n, i%n)
		}
		if v < 0 {
			return nil, invalidInputf("distMatrix[%d][%d] is negative: %v", i/n, i%n, v)
		}
	}

	kDistances, neighbors, neighborDists := ComputeNeighborhoodsParallel(distMatrix, n, cfg.K, cfg.Workers)
	return scoreFromNeighborhoods(kDistances, neighbors, neighborDists, cfg)
}

// scoreFromNeighborhoods runs the LOF pipeline from neighborhoods onward
// (densities → scores → classification). Scores only read densities, so the
// density stage forms a barrier before scoring.
func scoreFromNeighborhoods(kDistances []float64, neighbors [][]int, neighborDists [][]float64, cfg Config) (*Result, error) {
	lrds, err := LocalReachabilityDensitiesParallel(kDistances, neighbors, neighborDists, cfg.DuplicatePolicy, cfg.Workers)
	if err != nil {
		return nil, err
	}

	scores := LocalOutlierFactorsParallel(lrds, neighbors, cfg.Workers)
	labels, threshold := ClassifyScores(scores, cfg.Contamination)

	return &Result{
		Scores:     scores,
		Labels:     labels,
		Threshold:  threshold,
		KDistances: kDistances,
		LRDs:       lrds,
	}, nil
}
