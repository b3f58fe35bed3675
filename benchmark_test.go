package lof

import "testing"

func benchBlobs(n int) [][]float64 {
	per := (n + 3) / 4
	data := MakeBlobs([][]float64{{0, 0}, {50, 0}, {0, 50}, {50, 50}}, per, 2.0, 42)
	return data[:n]
}

func benchFlatBlobs(n int) []float64 {
	data := benchBlobs(n)
	flat := make([]float64, 0, n*2)
	for _, p := range data {
		flat = append(flat, p...)
	}
	return flat
}

// --- Pairwise Distances ---

func benchPairwiseDistances(b *testing.B, n int) {
	b.Helper()
	flat := benchFlatBlobs(n)
	metric := EuclideanMetric{}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ComputePairwiseDistances(flat, n, 2, metric)
	}
}

func BenchmarkPairwiseDistances_100(b *testing.B)  { benchPairwiseDistances(b, 100) }
func BenchmarkPairwiseDistances_500(b *testing.B)  { benchPairwiseDistances(b, 500) }
func BenchmarkPairwiseDistances_1000(b *testing.B) { benchPairwiseDistances(b, 1000) }

// --- Neighborhoods ---

func benchNeighborhoods(b *testing.B, n int) {
	b.Helper()
	flat := benchFlatBlobs(n)
	distMatrix := ComputePairwiseDistances(flat, n, 2, EuclideanMetric{})
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ComputeNeighborhoods(distMatrix, n, 10)
	}
}

func BenchmarkNeighborhoods_100(b *testing.B) { benchNeighborhoods(b, 100) }
func BenchmarkNeighborhoods_500(b *testing.B) { benchNeighborhoods(b, 500) }

// --- Densities and scores ---

func benchDensitiesAndScores(b *testing.B, n int) {
	b.Helper()
	flat := benchFlatBlobs(n)
	distMatrix := ComputePairwiseDistances(flat, n, 2, EuclideanMetric{})
	kd, nbrs, nd := ComputeNeighborhoods(distMatrix, n, 10)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		lrds, err := LocalReachabilityDensities(kd, nbrs, nd, DuplicatesError)
		if err != nil {
			b.Fatal(err)
		}
		LocalOutlierFactors(lrds, nbrs)
	}
}

func BenchmarkDensitiesAndScores_100(b *testing.B) { benchDensitiesAndScores(b, 100) }
func BenchmarkDensitiesAndScores_500(b *testing.B) { benchDensitiesAndScores(b, 500) }

// --- KD-tree ---

func benchKDTreeNeighborhoods(b *testing.B, n int) {
	b.Helper()
	flat := benchFlatBlobs(n)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree := NewKDTree(flat, n, 2, EuclideanMetric{}, 40)
		ComputeNeighborhoodsTree(tree, 10)
	}
}

func BenchmarkKDTreeNeighborhoods_500(b *testing.B)  { benchKDTreeNeighborhoods(b, 500) }
func BenchmarkKDTreeNeighborhoods_1000(b *testing.B) { benchKDTreeNeighborhoods(b, 1000) }

// --- Full pipeline ---

func benchFitAndScore(b *testing.B, n int, algo Algorithm) {
	b.Helper()
	data := benchBlobs(n)
	cfg := DefaultConfig()
	cfg.K = 10
	cfg.Algorithm = algo
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := FitAndScore(data, cfg); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFitAndScoreBrute_100(b *testing.B)   { benchFitAndScore(b, 100, AlgorithmBrute) }
func BenchmarkFitAndScoreBrute_500(b *testing.B)   { benchFitAndScore(b, 500, AlgorithmBrute) }
func BenchmarkFitAndScoreBrute_1000(b *testing.B)  { benchFitAndScore(b, 1000, AlgorithmBrute) }
func BenchmarkFitAndScoreKDTree_100(b *testing.B)  { benchFitAndScore(b, 100, AlgorithmKDTree) }
func BenchmarkFitAndScoreKDTree_500(b *testing.B)  { benchFitAndScore(b, 500, AlgorithmKDTree) }
func BenchmarkFitAndScoreKDTree_1000(b *testing.B) { benchFitAndScore(b, 1000, AlgorithmKDTree) }
