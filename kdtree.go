package lof

import (
	"container/heap"
	"math"
	"sort"
)

// NodeData describes a single node in the KD-tree.
type NodeData struct {
	IdxStart, IdxEnd int
	IsLeaf           bool
}

// KDTree is a KD-tree spatial index for nearest-neighbor and radius queries.
// Points are stored in a flat row-major array and reordered internally via
// an index permutation array.
//
// The tree is stored as a complete binary tree in array form:
//   - node i has children at 2*i+1 and 2*i+2
//   - node bounds are stored as min/max per dimension per node
type KDTree struct {
	data     []float64 // flat row-major point data (n * dims)
	n        int       // number of points
	dims     int       // dimensionality
	leafSize int
	metric   DistanceMetric
	idxArray []int      // permutation: tree-order position → original index
	nodes    []NodeData // one entry per tree node
	// nodeBoundsMin[node*dims + j] = min value of feature j in node
	nodeBoundsMin []float64
	// nodeBoundsMax[node*dims + j] = max value of feature j in node
	nodeBoundsMax []float64
}

// NewKDTree builds a KD-tree from flat row-major data with n points of
// dimensionality dims. leafSize controls the max points per leaf node.
func NewKDTree(data []float64, n, dims int, metric DistanceMetric, leafSize int) *KDTree {
	if leafSize < 1 {
		leafSize = 1
	}

	// Copy data and build identity index array.
	dataCopy := make([]float64, len(data))
	copy(dataCopy, data)
	idxArray := make([]int, n)
	for i := range idxArray {
		idxArray[i] = i
	}

	// Pre-allocate tree arrays. A complete binary tree with n leaves of
	// size leafSize needs at most 2*ceil(n/leafSize) nodes, but we use
	// a generous upper bound since the median split may not be perfectly balanced.
	maxNodes := kdMaxNodes(n, leafSize)

	t := &KDTree{
		data:          dataCopy,
		n:             n,
		dims:          dims,
		leafSize:      leafSize,
		metric:        metric,
		idxArray:      idxArray,
		nodes:         make([]NodeData, maxNodes),
		nodeBoundsMin: make([]float64, maxNodes*dims),
		nodeBoundsMax: make([]float64, maxNodes*dims),
	}

	if n > 0 {
		t.buildNode(0, 0, n)
	}

	return t
}

// kdMaxNodes returns an upper bound on the number of nodes needed for a
// binary tree with n points and the given leaf size.
func kdMaxNodes(n, leafSize int) int {
	if n == 0 {
		return 1
	}
	// Depth of tree: ceil(log2(ceil(n/leafSize))) + 1.
	// Number of nodes in a complete binary tree of depth d = 2^(d+1) - 1.
	leaves := (n + leafSize - 1) / leafSize
	depth := 0
	v := 1
	for v < leaves {
		v *= 2
		depth++
	}
	return (1 << (depth + 1)) - 1 + 2 // +2 for safety margin
}

// buildNode recursively builds the tree for points in idxArray[start:end].
func (t *KDTree) buildNode(nodeID, start, end int) {
	// Grow arrays if needed (shouldn't happen with good upper bound).
	for nodeID >= len(t.nodes) {
		t.nodes = append(t.nodes, NodeData{})
		t.nodeBoundsMin = append(t.nodeBoundsMin, make([]float64, t.dims)...)
		t.nodeBoundsMax = append(t.nodeBoundsMax, make([]float64, t.dims)...)
	}

	// Compute bounds for this node.
	t.computeNodeBounds(nodeID, start, end)

	count := end - start
	if count <= t.leafSize {
		t.nodes[nodeID] = NodeData{IdxStart: start, IdxEnd: end, IsLeaf: true}
		return
	}

	// Find dimension with greatest spread.
	splitDim := 0
	maxSpread := -1.0
	for d := 0; d < t.dims; d++ {
		spread := t.nodeBoundsMax[nodeID*t.dims+d] - t.nodeBoundsMin[nodeID*t.dims+d]
		if spread > maxSpread {
			maxSpread = spread
			splitDim = d
		}
	}

	// Sort by the split dimension and split at the median.
	t.sortByDimension(start, end, splitDim)
	mid := start + count/2

	t.nodes[nodeID] = NodeData{IdxStart: start, IdxEnd: end, IsLeaf: false}

	t.buildNode(2*nodeID+1, start, mid)
	t.buildNode(2*nodeID+2, mid, end)
}

// computeNodeBounds computes min/max per dimension for points idxArray[start:end].
func (t *KDTree) computeNodeBounds(nodeID, start, end int) {
	base := nodeID * t.dims
	for d := 0; d < t.dims; d++ {
		t.nodeBoundsMin[base+d] = math.Inf(1)
		t.nodeBoundsMax[base+d] = math.Inf(-1)
	}
	for i := start; i < end; i++ {
		ptIdx := t.idxArray[i]
		for d := 0; d < t.dims; d++ {
			v := t.data[ptIdx*t.dims+d]
			if v < t.nodeBoundsMin[base+d] {
				t.nodeBoundsMin[base+d] = v
			}
			if v > t.nodeBoundsMax[base+d] {
				t.nodeBoundsMax[base+d] = v
			}
		}
	}
}

// sortByDimension sorts idxArray[start:end] by the given dimension.
func (t *KDTree) sortByDimension(start, end, dim int) {
	sub := t.idxArray[start:end]
	dims := t.dims
	data := t.data
	sort.Slice(sub, func(i, j int) bool {
		return data[sub[i]*dims+dim] < data[sub[j]*dims+dim]
	})
}

// Data returns the flat row-major point data owned by the tree.
func (t *KDTree) Data() []float64 { return t.data }

// NumPoints returns the number of points in the tree.
func (t *KDTree) NumPoints() int { return t.n }

// NumFeatures returns the dimensionality of each point.
func (t *KDTree) NumFeatures() int { return t.dims }

// QueryKNN finds the k nearest neighbors for each row in queryData.
// Neighbor ranking breaks distance ties by point index, so results are
// deterministic. Returns per-query neighbor indices and distances, both
// sorted by (distance, index) ascending.
func (t *KDTree) QueryKNN(queryData []float64, queryRows, k int) ([][]int, [][]float64) {
	indices := make([][]int, queryRows)
	distances := make([][]float64, queryRows)

	for q := 0; q < queryRows; q++ {
		query := queryData[q*t.dims : (q+1)*t.dims]
		h := &knnHeap{}
		heap.Init(h)
		t.knnSearch(0, query, k, h)

		// Extract results sorted by (distance, index) ascending.
		nResults := h.Len()
		idx := make([]int, nResults)
		dist := make([]float64, nResults)
		for i := nResults - 1; i >= 0; i-- {
			item := heap.Pop(h).(knnItem)
			idx[i] = item.index
			dist[i] = item.dist
		}
		indices[q] = idx
		distances[q] = dist
	}

	return indices, distances
}

// knnSearch performs a single-tree KNN traversal using a max-heap of size k.
func (t *KDTree) knnSearch(nodeID int, query []float64, k int, h *knnHeap) {
	if nodeID >= len(t.nodes) {
		return
	}
	node := t.nodes[nodeID]
	if node.IdxStart == node.IdxEnd && nodeID != 0 {
		return // uninitialized node
	}

	if node.IsLeaf {
		for i := node.IdxStart; i < node.IdxEnd; i++ {
			ptIdx := t.idxArray[i]
			pt := t.data[ptIdx*t.dims : (ptIdx+1)*t.dims]
			d := t.metric.Distance(query, pt)
			cand := knnItem{index: ptIdx, dist: d}
			if h.Len() < k {
				heap.Push(h, cand)
			} else if cand.less((*h)[0]) {
				(*h)[0] = cand
				heap.Fix(h, 0)
			}
		}
		return
	}

	// Determine which child to visit first (nearer child first).
	left := 2*nodeID + 1
	right := 2*nodeID + 2

	leftRdist := t.minRdistPoint(left, query)
	rightRdist := t.minRdistPoint(right, query)

	nearChild, farChild := left, right
	farRdist := rightRdist
	if rightRdist < leftRdist {
		nearChild, farChild = right, left
		farRdist = leftRdist
	}

	t.knnSearch(nearChild, query, k, h)

	// Visit the far child unless its lower bound strictly exceeds the
	// current k-th distance. Equality must descend so boundary ties keep
	// their index-ordered ranking.
	if h.Len() < k || t.metric.DistToRdist((*h)[0].dist) >= farRdist {
		t.knnSearch(farChild, query, k, h)
	}
}

// QueryRadius finds all points within distance r (inclusive) of the query
// point. Returns indices and distances sorted by (distance, index) ascending.
func (t *KDTree) QueryRadius(query []float64, r float64) ([]int, []float64) {
	var idx []int
	var dist []float64
	t.radiusSearch(0, query, r, t.metric.DistToRdist(r), &idx, &dist)

	sort.Sort(&radiusResult{idx: idx, dist: dist})
	return idx, dist
}

// radiusSearch appends all points in the subtree within radius r of query.
// rRdist is r converted to reduced-distance space for pruning.
func (t *KDTree) radiusSearch(nodeID int, query []float64, r, rRdist float64, idx *[]int, dist *[]float64) {
	if nodeID >= len(t.nodes) {
		return
	}
	node := t.nodes[nodeID]
	if node.IdxStart == node.IdxEnd && nodeID != 0 {
		return // uninitialized node
	}

	// Prune subtrees whose bounding box is strictly farther than r.
	if t.minRdistPoint(nodeID, query) > rRdist {
		return
	}

	if node.IsLeaf {
		for i := node.IdxStart; i < node.IdxEnd; i++ {
			ptIdx := t.idxArray[i]
			pt := t.data[ptIdx*t.dims : (ptIdx+1)*t.dims]
			d := t.metric.Distance(query, pt)
			if d <= r {
				*idx = append(*idx, ptIdx)
				*dist = append(*dist, d)
			}
		}
		return
	}

	t.radiusSearch(2*nodeID+1, query, r, rRdist, idx, dist)
	t.radiusSearch(2*nodeID+2, query, r, rRdist, idx, dist)
}

// minRdistPoint returns a lower bound in reduced-distance space on the
// distance between a point and any point in the given node. For axis-aligned
// boxes this aggregates the per-dimension gap according to the metric's
// Minkowski exponent.
func (t *KDTree) minRdistPoint(node int, point []float64) float64 {
	if node >= len(t.nodes) {
		return math.Inf(1)
	}
	base := node * t.dims
	p := metricP(t.metric)

	var rdist float64
	for j := 0; j < t.dims; j++ {
		lo := t.nodeBoundsMin[base+j]
		hi := t.nodeBoundsMax[base+j]
		var d float64
		if point[j] < lo {
			d = lo - point[j]
		} else if point[j] > hi {
			d = point[j] - hi
		}
		rdist += math.Pow(d, p)
	}
	return rdist
}

// metricP returns the Minkowski exponent for the metric: 2 for Euclidean,
// 1 for Manhattan, P for Minkowski.
func metricP(m DistanceMetric) float64 {
	switch v := m.(type) {
	case ManhattanMetric:
		return 1.0
	case MinkowskiMetric:
		return v.P
	default:
		return 2.0 // Euclidean
	}
}

// --- max-heap for KNN queries ---

type knnItem struct {
	index int
	dist  float64
}

// less orders items by (distance, index) ascending, matching the brute-force
// neighbor ranking.
func (a knnItem) less(b knnItem) bool {
	if a.dist != b.dist {
		return a.dist < b.dist
	}
	return a.index < b.index
}

// knnHeap is a max-heap of knnItem (largest (distance, index) on top) used
// as a bounded priority queue for KNN queries.
type knnHeap []knnItem

func (h knnHeap) Len() int            { return len(h) }
func (h knnHeap) Less(i, j int) bool  { return h[j].less(h[i]) } // max-heap
func (h knnHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *knnHeap) Push(x interface{}) { *h = append(*h, x.(knnItem)) }
func (h *knnHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// radiusResult sorts radius-query results by (distance, index) ascending.
type radiusResult struct {
	idx  []int
	dist []float64
}

func (r *radiusResult) Len() int { return len(r.idx) }
func (r *radiusResult) Less(i, j int) bool {
	if r.dist[i] != r.dist[j] {
		return r.dist[i] < r.dist[j]
	}
	return r.idx[i] < r.idx[j]
}
func (r *radiusResult) Swap(i, j int) {
	r.idx[i], r.idx[j] = r.idx[j], r.idx[i]
	r.dist[i], r.dist[j] = r.dist[j], r.dist[i]
}
