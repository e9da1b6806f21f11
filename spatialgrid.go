package broadphase

import (
	"math"
	"sort"

	"github.com/akmonengine/broadphase/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// ============================================================================
// Types
// ============================================================================

// CellKey - Coordonnées d'une cellule dans le plan
type CellKey struct {
	X, Y int
}

// Cell - Conteneur d'indices de colliders dans une cellule
type Cell struct {
	colliderIndices []int
}

// SpatialGrid - Grille spatiale uniforme avec hashing
type SpatialGrid struct {
	cellSize float64
	cells    []Cell
	cellMask int

	seen []bool
}

// ============================================================================
// Constructeur
// ============================================================================

// NewSpatialGrid - Crée une nouvelle grille spatiale
// cellSize should be close to the collider size; numCells is rounded up to a power of two
func NewSpatialGrid(cellSize float64, numCells int) *SpatialGrid {
	numCells = nextPowerOfTwo(numCells)

	cells := make([]Cell, numCells)
	for i := range cells {
		cells[i].colliderIndices = make([]int, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cells:    cells,
		cellMask: numCells - 1,
	}
}

// nextPowerOfTwo - Arrondit à la puissance de 2 supérieure
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

func (sg *SpatialGrid) CheckCollisions(colliders []*actor.Collider) []Collision {
	sg.Clear()
	for i, c := range colliders {
		sg.Insert(i, c)
	}
	sg.SortCells()

	return sg.FindPairs(colliders)
}

// Insert - Insère un collider dans toutes les cellules qu'il occupe
func (sg *SpatialGrid) Insert(colliderIndex int, collider *actor.Collider) {
	aabb := collider.AABB()
	minCell := sg.worldToCell(aabb.Min)
	maxCell := sg.worldToCell(aabb.Max)

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			cellIdx := sg.hashCell(CellKey{x, y})

			cell := &sg.cells[cellIdx]
			// two cells of a large collider may hash to the same slot
			if n := len(cell.colliderIndices); n > 0 && cell.colliderIndices[n-1] == colliderIndex {
				continue
			}
			cell.colliderIndices = append(cell.colliderIndices, colliderIndex)
		}
	}
}

func (sg *SpatialGrid) Clear() {
	for i := range sg.cells {
		sg.cells[i].colliderIndices = sg.cells[i].colliderIndices[:0]
	}
}

func (sg *SpatialGrid) SortCells() {
	for i := range sg.cells {
		if len(sg.cells[i].colliderIndices) > 1 {
			sort.Ints(sg.cells[i].colliderIndices)
		}
	}
}

// FindPairs - Version séquentielle
func (sg *SpatialGrid) FindPairs(colliders []*actor.Collider) []Collision {
	collisions := make([]Collision, 0)

	if cap(sg.seen) < len(colliders) {
		sg.seen = make([]bool, len(colliders))
	}
	seen := sg.seen[:len(colliders)]
	visited := make([]int, 0, 16)

	for colliderIdx := 0; colliderIdx < len(colliders); colliderIdx++ {
		colliderA := colliders[colliderIdx]
		aabbA := colliderA.AABB()

		// Trouver cellules occupées par colliderA
		minCell := sg.worldToCell(aabbA.Min)
		maxCell := sg.worldToCell(aabbA.Max)

		for x := minCell.X; x <= maxCell.X; x++ {
			for y := minCell.Y; y <= maxCell.Y; y++ {
				cellIdx := sg.hashCell(CellKey{x, y})

				for _, otherIdx := range sg.cells[cellIdx].colliderIndices {
					// Évite doublons (A,B) et (B,A)
					if otherIdx <= colliderIdx || seen[otherIdx] {
						continue
					}
					seen[otherIdx] = true
					visited = append(visited, otherIdx)

					colliderB := colliders[otherIdx]
					if aabbA.Overlaps(colliderB.AABB()) {
						collisions = append(collisions, Collision{ColliderA: colliderA, ColliderB: colliderB})
					}
				}
			}
		}

		for _, idx := range visited {
			seen[idx] = false
		}
		visited = visited[:0]
	}

	return collisions
}

// worldToCell - Convertit une position monde en coordonnées de cellule
func (sg *SpatialGrid) worldToCell(pos mgl64.Vec2) CellKey {
	return CellKey{
		X: int(math.Floor(pos.X() / sg.cellSize)),
		Y: int(math.Floor(pos.Y() / sg.cellSize)),
	}
}

// hashCell - Hash une cellule vers un index dans l'array
func (sg *SpatialGrid) hashCell(key CellKey) int {
	h := (key.X * 73856093) ^ (key.Y * 19349663)
	return h & sg.cellMask
}
