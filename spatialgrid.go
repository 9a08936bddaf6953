package polysat

import (
	"math"
	"sort"
	"sync"

	"github.com/akmonengine/polysat/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// CellKey - coordinates of a grid cell
type CellKey struct {
	X, Y, Z int
}

// Cell - indices of the bodies overlapping a cell
type Cell struct {
	bodyIndices []int
}

// Pair - two bodies whose bounding boxes overlap
type Pair struct {
	BodyA *actor.Body
	BodyB *actor.Body
}

// SpatialGrid - uniform hashed grid used as broad phase
type SpatialGrid struct {
	cellSize float64
	cells    []Cell
	cellMask int
}

// NewSpatialGrid creates a grid of numCells buckets, rounded up to a power of two.
// A non-positive cellSize falls back to 1.
func NewSpatialGrid(cellSize float64, numCells int) *SpatialGrid {
	if !(cellSize > 0) {
		cellSize = 1
	}
	numCells = nextPowerOfTwo(numCells)

	cells := make([]Cell, numCells)
	for i := range cells {
		cells[i].bodyIndices = make([]int, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cells:    cells,
		cellMask: numCells - 1,
	}
}

func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

// Insert registers a body index in every cell its bounding box covers
func (sg *SpatialGrid) Insert(bodyIndex int, aabb actor.AABB) {
	sg.forEachCell(aabb, func(cellIdx int) {
		sg.cells[cellIdx].bodyIndices = append(sg.cells[cellIdx].bodyIndices, bodyIndex)
	})
}

func (sg *SpatialGrid) Clear() {
	for i := range sg.cells {
		sg.cells[i].bodyIndices = sg.cells[i].bodyIndices[:0]
	}
}

func (sg *SpatialGrid) SortCells() {
	for i := range sg.cells {
		if len(sg.cells[i].bodyIndices) > 1 {
			sort.Ints(sg.cells[i].bodyIndices)
		}
	}
}

// FindPairs returns every overlapping pair once, lower body index first
func (sg *SpatialGrid) FindPairs(bodies []*actor.Body, bounds []actor.AABB) []Pair {
	pairs := make([]Pair, 0, len(bodies)/2)
	seen := make([]bool, len(bodies))

	for bodyIdx := range bodies {
		clear(seen)
		sg.collectPairs(bodyIdx, bodies, bounds, seen, func(p Pair) {
			pairs = append(pairs, p)
		})
	}

	return pairs
}

// FindPairsParallel splits the bodies across numWorkers goroutines and streams the pairs.
// The channel is closed once every worker is done.
func (sg *SpatialGrid) FindPairsParallel(bodies []*actor.Body, bounds []actor.AABB, numWorkers int) <-chan Pair {
	var wg sync.WaitGroup
	pairsChan := make(chan Pair, numWorkers*10)

	bodiesPerWorker := len(bodies) / numWorkers
	if bodiesPerWorker == 0 {
		bodiesPerWorker = 1
	}

	for w := 0; w < numWorkers; w++ {
		startIdx := min(w*bodiesPerWorker, len(bodies))
		endIdx := min(startIdx+bodiesPerWorker, len(bodies))
		if w == numWorkers-1 {
			endIdx = len(bodies)
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()

			seen := make([]bool, len(bodies))
			for bodyIdx := start; bodyIdx < end; bodyIdx++ {
				clear(seen)
				sg.collectPairs(bodyIdx, bodies, bounds, seen, func(p Pair) {
					pairsChan <- p
				})
			}
		}(startIdx, endIdx)
	}

	go func() {
		wg.Wait()
		close(pairsChan)
	}()

	return pairsChan
}

// collectPairs emits the pairs (bodyIdx, other) with other > bodyIdx sharing a cell and an AABB overlap
func (sg *SpatialGrid) collectPairs(bodyIdx int, bodies []*actor.Body, bounds []actor.AABB, seen []bool, emit func(Pair)) {
	sg.forEachCell(bounds[bodyIdx], func(cellIdx int) {
		for _, otherIdx := range sg.cells[cellIdx].bodyIndices {
			// Deterministic order, avoids (A,B) and (B,A)
			if otherIdx <= bodyIdx || seen[otherIdx] {
				continue
			}
			seen[otherIdx] = true

			if bounds[bodyIdx].Overlaps(bounds[otherIdx]) {
				emit(Pair{BodyA: bodies[bodyIdx], BodyB: bodies[otherIdx]})
			}
		}
	})
}

func (sg *SpatialGrid) forEachCell(aabb actor.AABB, fn func(cellIdx int)) {
	minCell := sg.worldToCell(aabb.Min)
	maxCell := sg.worldToCell(aabb.Max)

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for z := minCell.Z; z <= maxCell.Z; z++ {
				fn(sg.hashCell(CellKey{x, y, z}))
			}
		}
	}
}

// worldToCell converts a world position to cell coordinates
func (sg *SpatialGrid) worldToCell(pos mgl64.Vec3) CellKey {
	return CellKey{
		X: int(math.Floor(pos.X() / sg.cellSize)),
		Y: int(math.Floor(pos.Y() / sg.cellSize)),
		Z: int(math.Floor(pos.Z() / sg.cellSize)),
	}
}

// hashCell maps a cell to a bucket index
func (sg *SpatialGrid) hashCell(key CellKey) int {
	h := (key.X * 73856093) ^ (key.Y * 19349663) ^ (key.Z * 83492791)
	return h & sg.cellMask
}
