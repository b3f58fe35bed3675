package lof

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// MakeBlobs generates isotropic Gaussian blobs: pointsPerCenter points drawn
// around each center with the given standard deviation. All centers must
// share the same dimensionality. The seed fully determines the output, so
// generation is reproducible; randomness lives here, in the data source, not
// in the scoring engine.
//
// Points are emitted center by center in generation order, which keeps blob
// membership recoverable from the index: point i belongs to blob
// i/pointsPerCenter.
func MakeBlobs(centers [][]float64, pointsPerCenter int, stdDev float64, seed uint64) [][]float64 {
	if len(centers) == 0 || pointsPerCenter <= 0 {
		return nil
	}

	noise := distuv.Normal{
		Mu:    0,
		Sigma: stdDev,
		Src:   rand.NewPCG(seed, seed),
	}

	dims := len(centers[0])
	data := make([][]float64, 0, len(centers)*pointsPerCenter)
	for _, c := range centers {
		for i := 0; i < pointsPerCenter; i++ {
			p := make([]float64, dims)
			for d := 0; d < dims; d++ {
				p[d] = c[d] + noise.Rand()
			}
			data = append(data, p)
		}
	}

	return data
}
