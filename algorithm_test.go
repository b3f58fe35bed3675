package lof

import (
	"errors"
	"testing"
)

func TestKDTreeValidMetric(t *testing.T) {
	valid := []DistanceMetric{EuclideanMetric{}, ManhattanMetric{}, MinkowskiMetric{P: 3}}
	for _, m := range valid {
		if !KDTreeValidMetric(m) {
			t.Errorf("KDTreeValidMetric(%T) = false, want true", m)
		}
	}

	custom := DistanceFunc(func(a, b []float64) float64 { return 0 })
	if KDTreeValidMetric(custom) {
		t.Error("KDTreeValidMetric(DistanceFunc) = true, want false")
	}
}

func TestSelectAlgorithm_AutoPicksKDTreeForLowDims(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Algorithm = AlgorithmAuto

	algo, err := selectAlgorithm(cfg, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if algo != AlgorithmKDTree {
		t.Errorf("algo = %q, want %q", algo, AlgorithmKDTree)
	}
}

func TestSelectAlgorithm_AutoFallsBackForHighDims(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Algorithm = AlgorithmAuto

	algo, err := selectAlgorithm(cfg, 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if algo != AlgorithmBrute {
		t.Errorf("algo = %q, want %q", algo, AlgorithmBrute)
	}
}

func TestSelectAlgorithm_AutoFallsBackForCustomMetric(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Algorithm = AlgorithmAuto
	cfg.Metric = DistanceFunc(func(a, b []float64) float64 { return 0 })

	algo, err := selectAlgorithm(cfg, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if algo != AlgorithmBrute {
		t.Errorf("algo = %q, want %q", algo, AlgorithmBrute)
	}
}

func TestSelectAlgorithm_ForcedKDTreeWithCustomMetricFails(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Algorithm = AlgorithmKDTree
	cfg.Metric = DistanceFunc(func(a, b []float64) float64 { return 0 })

	_, err := selectAlgorithm(cfg, 2)
	var iie *InvalidInputError
	if !errors.As(err, &iie) {
		t.Fatalf("expected *InvalidInputError, got %T: %v", err, err)
	}
}

func TestSelectAlgorithm_ForcedChoicesRespected(t *testing.T) {
	cfg := DefaultConfig()

	cfg.Algorithm = AlgorithmBrute
	algo, err := selectAlgorithm(cfg, 2)
	if err != nil || algo != AlgorithmBrute {
		t.Errorf("forced brute: got (%q, %v)", algo, err)
	}

	cfg.Algorithm = AlgorithmKDTree
	algo, err = selectAlgorithm(cfg, 200)
	if err != nil || algo != AlgorithmKDTree {
		t.Errorf("forced kdtree: got (%q, %v)", algo, err)
	}
}
