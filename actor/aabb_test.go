package actor

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// =============================================================================
// AABB Overlap Tests
// =============================================================================

func TestAABBOverlaps_Separated(t *testing.T) {
	tests := []struct {
		name  string
		aabb1 AABB
		aabb2 AABB
	}{
		{
			name:  "Separated on X axis (positive)",
			aabb1: AABB{Min: mgl64.Vec2{0, 0}, Max: mgl64.Vec2{1, 1}},
			aabb2: AABB{Min: mgl64.Vec2{2, 0}, Max: mgl64.Vec2{3, 1}},
		},
		{
			name:  "Separated on X axis (negative)",
			aabb1: AABB{Min: mgl64.Vec2{0, 0}, Max: mgl64.Vec2{1, 1}},
			aabb2: AABB{Min: mgl64.Vec2{-2, 0}, Max: mgl64.Vec2{-1, 1}},
		},
		{
			name:  "Separated on Y axis (positive)",
			aabb1: AABB{Min: mgl64.Vec2{0, 0}, Max: mgl64.Vec2{1, 1}},
			aabb2: AABB{Min: mgl64.Vec2{0, 2}, Max: mgl64.Vec2{1, 3}},
		},
		{
			name:  "Separated on Y axis (negative)",
			aabb1: AABB{Min: mgl64.Vec2{0, 0}, Max: mgl64.Vec2{1, 1}},
			aabb2: AABB{Min: mgl64.Vec2{0, -2}, Max: mgl64.Vec2{1, -1}},
		},
		{
			name:  "Separated by a tiny gap",
			aabb1: AABB{Min: mgl64.Vec2{0, 0}, Max: mgl64.Vec2{1, 1}},
			aabb2: AABB{Min: mgl64.Vec2{1.0001, 0}, Max: mgl64.Vec2{2, 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.aabb1.Overlaps(tt.aabb2) {
				t.Errorf("AABBs should not overlap")
			}
			// Test symmetry
			if tt.aabb2.Overlaps(tt.aabb1) {
				t.Errorf("AABBs should not overlap (symmetry test)")
			}
		})
	}
}

func TestAABBOverlaps_Overlapping(t *testing.T) {
	tests := []struct {
		name  string
		aabb1 AABB
		aabb2 AABB
	}{
		{
			name:  "Complete overlap (identical)",
			aabb1: AABB{Min: mgl64.Vec2{0, 0}, Max: mgl64.Vec2{1, 1}},
			aabb2: AABB{Min: mgl64.Vec2{0, 0}, Max: mgl64.Vec2{1, 1}},
		},
		{
			name:  "Partial overlap on X axis",
			aabb1: AABB{Min: mgl64.Vec2{0, 0}, Max: mgl64.Vec2{2, 1}},
			aabb2: AABB{Min: mgl64.Vec2{1, 0}, Max: mgl64.Vec2{3, 1}},
		},
		{
			name:  "One inside the other",
			aabb1: AABB{Min: mgl64.Vec2{0, 0}, Max: mgl64.Vec2{10, 10}},
			aabb2: AABB{Min: mgl64.Vec2{4, 4}, Max: mgl64.Vec2{5, 5}},
		},
		{
			name:  "Shared edge",
			aabb1: AABB{Min: mgl64.Vec2{0, 0}, Max: mgl64.Vec2{1, 1}},
			aabb2: AABB{Min: mgl64.Vec2{1, 0}, Max: mgl64.Vec2{2, 1}},
		},
		{
			name:  "Shared corner",
			aabb1: AABB{Min: mgl64.Vec2{0, 0}, Max: mgl64.Vec2{1, 1}},
			aabb2: AABB{Min: mgl64.Vec2{1, 1}, Max: mgl64.Vec2{2, 2}},
		},
		{
			name:  "Degenerate box on the boundary",
			aabb1: AABB{Min: mgl64.Vec2{0, 0}, Max: mgl64.Vec2{1, 1}},
			aabb2: AABB{Min: mgl64.Vec2{1, 0.5}, Max: mgl64.Vec2{1, 0.5}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.aabb1.Overlaps(tt.aabb2) {
				t.Errorf("AABBs should overlap")
			}
			if !tt.aabb2.Overlaps(tt.aabb1) {
				t.Errorf("AABBs should overlap (symmetry test)")
			}
		})
	}
}

func TestAABBOverlapsY(t *testing.T) {
	a := AABB{Min: mgl64.Vec2{0, 0}, Max: mgl64.Vec2{1, 1}}

	// X is ignored
	far := AABB{Min: mgl64.Vec2{100, 0.5}, Max: mgl64.Vec2{101, 2}}
	if !a.OverlapsY(far) {
		t.Error("OverlapsY should ignore the X axis")
	}

	touching := AABB{Min: mgl64.Vec2{0, 1}, Max: mgl64.Vec2{1, 2}}
	if !a.OverlapsY(touching) {
		t.Error("OverlapsY should include the boundary")
	}

	below := AABB{Min: mgl64.Vec2{0, -3}, Max: mgl64.Vec2{1, -2}}
	if a.OverlapsY(below) || below.OverlapsY(a) {
		t.Error("OverlapsY should be false for disjoint Y ranges")
	}
}

// =============================================================================
// AABB Utility Function Tests
// =============================================================================

func TestAABBContains(t *testing.T) {
	outer := AABB{Min: mgl64.Vec2{0, 0}, Max: mgl64.Vec2{10, 10}}

	tests := []struct {
		name     string
		inner    AABB
		expected bool
	}{
		{"strictly inside", AABB{Min: mgl64.Vec2{1, 1}, Max: mgl64.Vec2{9, 9}}, true},
		{"identical", outer, true},
		{"touching the boundary from inside", AABB{Min: mgl64.Vec2{0, 5}, Max: mgl64.Vec2{2, 10}}, true},
		{"crossing the right side", AABB{Min: mgl64.Vec2{8, 1}, Max: mgl64.Vec2{11, 2}}, false},
		{"crossing the bottom side", AABB{Min: mgl64.Vec2{1, -1}, Max: mgl64.Vec2{2, 2}}, false},
		{"enclosing", AABB{Min: mgl64.Vec2{-1, -1}, Max: mgl64.Vec2{11, 11}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outer.Contains(tt.inner); got != tt.expected {
				t.Errorf("Contains(%v) = %v, want %v", tt.inner, got, tt.expected)
			}
		})
	}
}

func TestAABBContainsPoint(t *testing.T) {
	a := AABB{Min: mgl64.Vec2{-1, -1}, Max: mgl64.Vec2{1, 1}}

	if !a.ContainsPoint(mgl64.Vec2{0, 0}) {
		t.Error("center should be inside")
	}
	if !a.ContainsPoint(mgl64.Vec2{1, -1}) {
		t.Error("corner should be inside")
	}
	if a.ContainsPoint(mgl64.Vec2{1.5, 0}) {
		t.Error("point outside should not be inside")
	}
}

func TestAABBUnion(t *testing.T) {
	a := AABB{Min: mgl64.Vec2{0, 0}, Max: mgl64.Vec2{1, 1}}
	b := AABB{Min: mgl64.Vec2{-2, 0.5}, Max: mgl64.Vec2{0.5, 3}}

	u := a.Union(b)
	expected := AABB{Min: mgl64.Vec2{-2, 0}, Max: mgl64.Vec2{1, 3}}
	if u != expected {
		t.Errorf("Union = %v, want %v", u, expected)
	}
	if b.Union(a) != expected {
		t.Errorf("Union should be commutative")
	}
	if !u.Contains(a) || !u.Contains(b) {
		t.Errorf("Union should contain both boxes")
	}
}

func TestAABBExpand(t *testing.T) {
	a := AABB{Min: mgl64.Vec2{0, 10}, Max: mgl64.Vec2{4, 12}}

	e := a.Expand(80)
	expected := AABB{Min: mgl64.Vec2{-80, -70}, Max: mgl64.Vec2{84, 92}}
	if e != expected {
		t.Errorf("Expand(80) = %v, want %v", e, expected)
	}

	// Y bounds must be expanded from the Y bounds, not from X
	if e.Min.Y()-a.Min.Y() != -80 || e.Max.Y()-a.Max.Y() != 80 {
		t.Errorf("Expand should be symmetric on the Y axis, got %v", e)
	}
}

func TestAABBArea(t *testing.T) {
	tests := []struct {
		name     string
		aabb     AABB
		expected float64
	}{
		{"unit", AABB{Min: mgl64.Vec2{0, 0}, Max: mgl64.Vec2{1, 1}}, 1},
		{"rectangle", AABB{Min: mgl64.Vec2{-1, 0}, Max: mgl64.Vec2{3, 2}}, 8},
		{"degenerate", AABB{Min: mgl64.Vec2{2, 2}, Max: mgl64.Vec2{2, 5}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.aabb.Area(); got != tt.expected {
				t.Errorf("Area() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNewAABBFromCenter(t *testing.T) {
	a := NewAABBFromCenter(mgl64.Vec2{5, 0}, 10)
	expected := AABB{Min: mgl64.Vec2{0, -5}, Max: mgl64.Vec2{10, 5}}

	if a != expected {
		t.Errorf("NewAABBFromCenter = %v, want %v", a, expected)
	}
	if a.Center() != (mgl64.Vec2{5, 0}) {
		t.Errorf("Center() = %v, want [5 0]", a.Center())
	}
}
