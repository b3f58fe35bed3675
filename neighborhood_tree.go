package lof

// ComputeNeighborhoodsTree computes per-point k-distances and tie-inclusive
// neighborhoods using KD-tree queries instead of a full distance matrix.
// Results are identical to ComputeNeighborhoods on the same data: the
// k-distance comes from a (k+1)-NN query (the +1 accounts for the point
// itself), and the neighborhood from a radius query at that distance, which
// picks up all boundary ties.
func ComputeNeighborhoodsTree(tree *KDTree, k int) (kDistances []float64, neighbors [][]int, neighborDists [][]float64) {
	n := tree.NumPoints()
	dims := tree.NumFeatures()
	data := tree.Data()

	kDistances = make([]float64, n)
	neighbors = make([][]int, n)
	neighborDists = make([][]float64, n)

	knnIdx, knnDist := tree.QueryKNN(data, n, k+1)

	for i := 0; i < n; i++ {
		// The KNN result normally includes the point itself (distance 0),
		// but with enough coincident lower-index duplicates the self entry
		// can be displaced, so skip by index rather than by position.
		kd := knnDist[i][len(knnDist[i])-1]
		count := 0
		for j := range knnIdx[i] {
			if knnIdx[i][j] == i {
				continue
			}
			count++
			if count == k {
				kd = knnDist[i][j]
				break
			}
		}
		kDistances[i] = kd

		idx, dist := tree.QueryRadius(data[i*dims:(i+1)*dims], kd)

		// Drop the self entry; everything else is the neighborhood, already
		// sorted by (distance, index).
		members := make([]int, 0, len(idx)-1)
		dists := make([]float64, 0, len(idx)-1)
		for j := range idx {
			if idx[j] == i {
				continue
			}
			members = append(members, idx[j])
			dists = append(dists, dist[j])
		}
		neighbors[i] = members
		neighborDists[i] = dists
	}

	return kDistances, neighbors, neighborDists
}
