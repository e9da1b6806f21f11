package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min mgl64.Vec2
	Max mgl64.Vec2
}

// NewAABBFromCenter builds the square box of the given size centered on center
func NewAABBFromCenter(center mgl64.Vec2, size float64) AABB {
	half := size / 2
	return AABB{
		Min: mgl64.Vec2{center.X() - half, center.Y() - half},
		Max: mgl64.Vec2{center.X() + half, center.Y() + half},
	}
}

// ContainsPoint checks if a point is inside the AABB
func (a AABB) ContainsPoint(point mgl64.Vec2) bool {
	return point.X() >= a.Min.X() && point.X() <= a.Max.X() &&
		point.Y() >= a.Min.Y() && point.Y() <= a.Max.Y()
}

// Contains checks if other lies entirely inside a, boundaries included
func (a AABB) Contains(other AABB) bool {
	return a.Min.X() <= other.Min.X() && a.Max.X() >= other.Max.X() &&
		a.Min.Y() <= other.Min.Y() && a.Max.Y() >= other.Max.Y()
}

// Overlaps checks if two AABBs overlap.
// Boxes sharing an edge or a corner are overlapping.
func (a AABB) Overlaps(other AABB) bool {
	return a.Max.X() >= other.Min.X() && a.Min.X() <= other.Max.X() &&
		a.Max.Y() >= other.Min.Y() && a.Min.Y() <= other.Max.Y()
}

// OverlapsY only tests the Y axis, for callers that already know the X intervals intersect
func (a AABB) OverlapsY(other AABB) bool {
	return a.Max.Y() >= other.Min.Y() && a.Min.Y() <= other.Max.Y()
}

// Union returns the smallest AABB enclosing both boxes
func (a AABB) Union(other AABB) AABB {
	return AABB{
		Min: mgl64.Vec2{math.Min(a.Min.X(), other.Min.X()), math.Min(a.Min.Y(), other.Min.Y())},
		Max: mgl64.Vec2{math.Max(a.Max.X(), other.Max.X()), math.Max(a.Max.Y(), other.Max.Y())},
	}
}

// Expand grows the box by margin on all four sides
func (a AABB) Expand(margin float64) AABB {
	return AABB{
		Min: mgl64.Vec2{a.Min.X() - margin, a.Min.Y() - margin},
		Max: mgl64.Vec2{a.Max.X() + margin, a.Max.Y() + margin},
	}
}

func (a AABB) Width() float64 {
	return a.Max.X() - a.Min.X()
}

func (a AABB) Height() float64 {
	return a.Max.Y() - a.Min.Y()
}

func (a AABB) Area() float64 {
	return a.Width() * a.Height()
}

func (a AABB) Center() mgl64.Vec2 {
	return a.Min.Add(a.Max).Mul(0.5)
}
