package lof

import "sync"

// ComputePairwiseDistancesParallel computes the full n×n distance matrix using
// multiple goroutines. data is flat row-major with n rows and dims columns.
// numWorkers controls the degree of parallelism; if <= 1, it falls back to
// single-threaded ComputePairwiseDistances.
//
// The result is bitwise identical to ComputePairwiseDistances: a flat []float64
// of length n×n in row-major order.
func ComputePairwiseDistancesParallel(data []float64, n, dims int, metric DistanceMetric, numWorkers int) []float64 {
	if numWorkers <= 1 || n <= 1 {
		return ComputePairwiseDistances(data, n, dims, metric)
	}

	result := make([]float64, n*n)

	// Split rows across workers. Each worker handles a contiguous range of
	// "source" rows and computes dist(i,j) for all j > i in that range.
	// Since row ranges don't overlap, no synchronization is needed for writes.
	var wg sync.WaitGroup

	rowsPerWorker := (n + numWorkers - 1) / numWorkers

	for w := 0; w < numWorkers; w++ {
		startRow := w * rowsPerWorker
		endRow := startRow + rowsPerWorker
		if endRow > n {
			endRow = n
		}
		if startRow >= n {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				for j := i + 1; j < n; j++ {
					d := metric.Distance(data[i*dims:(i+1)*dims], data[j*dims:(j+1)*dims])
					result[i*n+j] = d
					result[j*n+i] = d
				}
			}
		}(startRow, endRow)
	}

	wg.Wait()
	return result
}

// ComputeNeighborhoodsParallel computes k-distances and neighborhoods using
// multiple goroutines. Each worker handles a contiguous range of points
// independently. Falls back to sequential ComputeNeighborhoods if
// numWorkers <= 1. Results are bitwise identical to the sequential version.
func ComputeNeighborhoodsParallel(distMatrix []float64, n, k, numWorkers int) (kDistances []float64, neighbors [][]int, neighborDists [][]float64) {
	if numWorkers <= 1 || n <= 1 {
		return ComputeNeighborhoods(distMatrix, n, k)
	}

	kDistances = make([]float64, n)
	neighbors = make([][]int, n)
	neighborDists = make([][]float64, n)

	var wg sync.WaitGroup
	rowsPerWorker := (n + numWorkers - 1) / numWorkers

	for w := 0; w < numWorkers; w++ {
		startRow := w * rowsPerWorker
		endRow := startRow + rowsPerWorker
		if endRow > n {
			endRow = n
		}
		if startRow >= n {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			order := make([]int, n-1)
			for i := start; i < end; i++ {
				neighborhoodForPoint(distMatrix, n, k, i, order,
					&kDistances[i], &neighbors[i], &neighborDists[i])
			}
		}(startRow, endRow)
	}

	wg.Wait()
	return kDistances, neighbors, neighborDists
}

// LocalReachabilityDensitiesParallel computes local reachability densities
// using multiple goroutines. Each worker handles a contiguous range of points;
// under DuplicatesError the error reported is for the lowest affected index,
// matching the sequential version. Falls back to sequential
// LocalReachabilityDensities if numWorkers <= 1.
func LocalReachabilityDensitiesParallel(kDistances []float64, neighbors [][]int, neighborDists [][]float64, policy DuplicatePolicy, numWorkers int) ([]float64, error) {
	n := len(neighbors)
	if numWorkers <= 1 || n <= 1 {
		return LocalReachabilityDensities(kDistances, neighbors, neighborDists, policy)
	}

	lrds := make([]float64, n)

	var wg sync.WaitGroup
	rowsPerWorker := (n + numWorkers - 1) / numWorkers
	numRanges := (n + rowsPerWorker - 1) / rowsPerWorker

	// degenerate[w] is the lowest degenerate point index in worker w's
	// range, or -1. Ranges are contiguous and ascending, so the first
	// non-negative entry is the global lowest.
	degenerate := make([]int, numRanges)

	for w := 0; w < numRanges; w++ {
		startRow := w * rowsPerWorker
		endRow := startRow + rowsPerWorker
		if endRow > n {
			endRow = n
		}

		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			degenerate[w] = -1
			var reach []float64
			for i := start; i < end; i++ {
				lrd, ok := lrdForPoint(kDistances, neighbors[i], neighborDists[i], &reach)
				if !ok {
					if policy != DuplicatesCap {
						degenerate[w] = i
						return
					}
					lrd = LRDCap
				}
				lrds[i] = lrd
			}
		}(w, startRow, endRow)
	}

	wg.Wait()

	for _, idx := range degenerate {
		if idx >= 0 {
			return nil, &DegenerateDensityError{Point: idx}
		}
	}
	return lrds, nil
}

// LocalOutlierFactorsParallel computes LOF scores using multiple goroutines.
// It must only run after all densities are computed: workers read the shared
// lrds slice, which is written once and read-only here. Falls back to
// sequential LocalOutlierFactors if numWorkers <= 1. Results are bitwise
// identical to the sequential version.
func LocalOutlierFactorsParallel(lrds []float64, neighbors [][]int, numWorkers int) []float64 {
	n := len(lrds)
	if numWorkers <= 1 || n <= 1 {
		return LocalOutlierFactors(lrds, neighbors)
	}

	scores := make([]float64, n)

	var wg sync.WaitGroup
	rowsPerWorker := (n + numWorkers - 1) / numWorkers

	for w := 0; w < numWorkers; w++ {
		startRow := w * rowsPerWorker
		endRow := startRow + rowsPerWorker
		if endRow > n {
			endRow = n
		}
		if startRow >= n {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			var ratios []float64
			for i := start; i < end; i++ {
				scores[i] = lofForPoint(lrds, i, neighbors[i], &ratios)
			}
		}(startRow, endRow)
	}

	wg.Wait()
	return scores
}
