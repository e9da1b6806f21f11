package broadphase

import (
	"testing"

	"github.com/akmonengine/broadphase/actor"
	"github.com/go-gl/mathgl/mgl64"
)

func TestWorldToCell(t *testing.T) {
	grid := NewSpatialGrid(1.0, 16)

	tests := []struct {
		name     string
		position mgl64.Vec2
		expected CellKey
	}{
		{"origine", mgl64.Vec2{0, 0}, CellKey{0, 0}},
		{"positif", mgl64.Vec2{1.5, 2.3}, CellKey{1, 2}},
		{"negatif", mgl64.Vec2{-1.5, -2.3}, CellKey{-2, -3}},
		{"fractionnaire", mgl64.Vec2{0.5, 0.5}, CellKey{0, 0}},
		{"grand", mgl64.Vec2{100.7, -200.3}, CellKey{100, -201}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := grid.worldToCell(tt.position)
			if result != tt.expected {
				t.Errorf("worldToCell(%v) = %v, want %v", tt.position, result, tt.expected)
			}
		})
	}
}

func TestHashCellRange(t *testing.T) {
	grid := NewSpatialGrid(1.0, 16)

	for x := -50; x <= 50; x++ {
		for y := -50; y <= 50; y++ {
			result := grid.hashCell(CellKey{x, y})
			if result < 0 || result >= len(grid.cells) {
				t.Fatalf("hashCell(%d, %d) = %d, out of range [0, %d)", x, y, result, len(grid.cells))
			}
		}
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	tests := []struct {
		input    int
		expected int
	}{
		{-3, 1},
		{0, 1},
		{1, 1},
		{3, 4},
		{16, 16},
		{1000, 1024},
	}

	for _, tt := range tests {
		if got := nextPowerOfTwo(tt.input); got != tt.expected {
			t.Errorf("nextPowerOfTwo(%d) = %d, want %d", tt.input, got, tt.expected)
		}
	}
}

func cellContains(grid *SpatialGrid, key CellKey, idx int) bool {
	for _, i := range grid.cells[grid.hashCell(key)].colliderIndices {
		if i == idx {
			return true
		}
	}
	return false
}

func TestInsertSingleCollider(t *testing.T) {
	grid := NewSpatialGrid(1.0, 16)
	collider := createCollider(1.5, 2.5, 0.8)

	grid.Insert(0, collider)

	if !cellContains(grid, CellKey{1, 2}, 0) {
		t.Error("Collider not found in its cell after insertion")
	}
}

func TestInsertNoDuplicateInCell(t *testing.T) {
	// 16 cells for a collider covering 9x9 cells: several cells share a slot
	grid := NewSpatialGrid(1.0, 16)
	grid.Insert(3, createCollider(0, 0, 8))

	for i, cell := range grid.cells {
		count := 0
		for _, idx := range cell.colliderIndices {
			if idx == 3 {
				count++
			}
		}
		if count > 1 {
			t.Errorf("slot %d holds the collider %d times", i, count)
		}
	}
}

func TestClear(t *testing.T) {
	grid := NewSpatialGrid(1.0, 16)
	grid.Insert(0, createCollider(0, 0, 1))
	grid.Insert(1, createCollider(5, 5, 1))

	grid.Clear()

	for i, cell := range grid.cells {
		if len(cell.colliderIndices) != 0 {
			t.Errorf("Cell %d not empty after Clear: %v", i, cell.colliderIndices)
		}
	}
}

func TestSortCells(t *testing.T) {
	grid := NewSpatialGrid(10.0, 16)
	grid.Insert(5, createCollider(1, 1, 1))
	grid.Insert(2, createCollider(2, 2, 1))
	grid.Insert(9, createCollider(3, 3, 1))

	grid.SortCells()

	indices := grid.cells[grid.hashCell(CellKey{0, 0})].colliderIndices
	for i := 1; i < len(indices); i++ {
		if indices[i] < indices[i-1] {
			t.Errorf("Cell not sorted: %v", indices)
		}
	}
}

func TestFindPairsNoCollision(t *testing.T) {
	grid := NewSpatialGrid(1.0, 64)
	colliders := []*actor.Collider{
		createCollider(0, 0, 0.8),
		createCollider(10, 10, 0.8),
	}

	if pairs := grid.CheckCollisions(colliders); len(pairs) != 0 {
		t.Errorf("Expected no pairs, got %d", len(pairs))
	}
}

func TestFindPairsWithCollision(t *testing.T) {
	grid := NewSpatialGrid(1.0, 64)
	colliders := []*actor.Collider{
		createCollider(0, 0, 1),
		createCollider(0.5, 0.5, 1),
		createCollider(20, 20, 1),
	}

	pairs := grid.CheckCollisions(colliders)
	if len(pairs) != 1 {
		t.Fatalf("Expected 1 pair, got %d", len(pairs))
	}
	if pairs[0].ColliderA != colliders[0] || pairs[0].ColliderB != colliders[1] {
		t.Errorf("Unexpected pair %+v", pairs[0])
	}
}

func TestBoundaryCases(t *testing.T) {
	grid := NewSpatialGrid(1.0, 64)

	// the shared edge lies exactly on a cell boundary
	colliders := []*actor.Collider{
		createCollider(0.5, 0.5, 1),
		createCollider(1.5, 0.5, 1),
	}

	if pairs := grid.CheckCollisions(colliders); len(pairs) != 1 {
		t.Errorf("Expected 1 pair for touching colliders, got %d", len(pairs))
	}
}

func TestLargeColliderSpanningManyCells(t *testing.T) {
	grid := NewSpatialGrid(1.0, 32)
	colliders := []*actor.Collider{createCollider(0, 0, 20)}
	for i := 0; i < 10; i++ {
		colliders = append(colliders, createCollider(float64(i*2-9), 9, 0.5))
	}

	pairs := grid.CheckCollisions(colliders)
	if len(pairs) != 10 {
		t.Errorf("Expected 10 pairs, got %d", len(pairs))
	}
	pairSet(t, "spatial grid", colliders, pairs)
}

func BenchmarkSpatialGrid(b *testing.B) {
	grid := NewSpatialGrid(2.0, 1024)
	colliders := make([]*actor.Collider, 1000)

	// Créer des colliders en grille
	for i := range colliders {
		colliders[i] = createCollider(float64(i%40)*1.5, float64(i/40)*1.5, 1.6)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		grid.CheckCollisions(colliders)
	}
}
