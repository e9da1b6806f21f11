package actor

import "github.com/go-gl/mathgl/mgl64"

// Collider is a moving square body.
// Colliders are owned by the caller; checkers only keep pointers to them,
// so any change of Position is seen by the next collision check.
type Collider struct {
	Id any

	Position mgl64.Vec2
	Velocity mgl64.Vec2

	size     float64
	collided bool
}

// NewCollider creates a square collider of the given side length centered on position
func NewCollider(position mgl64.Vec2, size float64, velocity mgl64.Vec2) *Collider {
	return &Collider{
		Position: position,
		Velocity: velocity,
		size:     size,
	}
}

// Update advances the position by one tick of velocity and resets the collided flag
func (c *Collider) Update() {
	c.Position = c.Position.Add(c.Velocity)
	c.collided = false
}

// AABB returns the tight bounding box at the current position
func (c *Collider) AABB() AABB {
	return NewAABBFromCenter(c.Position, c.size)
}

func (c *Collider) Size() float64 {
	return c.size
}

func (c *Collider) SetCollided() {
	c.collided = true
}

// Collided reports whether the collider was part of a collision since its last Update
func (c *Collider) Collided() bool {
	return c.collided
}
