package actor

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestNewCollider(t *testing.T) {
	c := NewCollider(mgl64.Vec2{0, 0}, 10, mgl64.Vec2{1, -2})

	if c.Size() != 10 {
		t.Errorf("Size() = %v, want 10", c.Size())
	}
	expected := AABB{Min: mgl64.Vec2{-5, -5}, Max: mgl64.Vec2{5, 5}}
	if c.AABB() != expected {
		t.Errorf("AABB() = %v, want %v", c.AABB(), expected)
	}
	if c.Collided() {
		t.Error("a new collider should not be collided")
	}
}

func TestColliderUpdate(t *testing.T) {
	c := NewCollider(mgl64.Vec2{0, 0}, 10, mgl64.Vec2{1, -2})
	c.SetCollided()

	c.Update()

	if c.Position != (mgl64.Vec2{1, -2}) {
		t.Errorf("Position = %v, want [1 -2]", c.Position)
	}
	if c.Collided() {
		t.Error("Update should reset the collided flag")
	}
	expected := AABB{Min: mgl64.Vec2{-4, -7}, Max: mgl64.Vec2{6, 3}}
	if c.AABB() != expected {
		t.Errorf("AABB() after Update = %v, want %v", c.AABB(), expected)
	}
}

func TestColliderAABBFollowsPosition(t *testing.T) {
	c := NewCollider(mgl64.Vec2{0, 0}, 2, mgl64.Vec2{})

	// Position moved from the outside, without Update
	c.Position = mgl64.Vec2{100, 50}

	expected := AABB{Min: mgl64.Vec2{99, 49}, Max: mgl64.Vec2{101, 51}}
	if c.AABB() != expected {
		t.Errorf("AABB() = %v, want %v", c.AABB(), expected)
	}
}
