package broadphase

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/akmonengine/broadphase/actor"
)

const DEFAULT_WORKERS = 1

const (
	DEFAULT_GRID_CELL_SIZE = 160.0
	DEFAULT_GRID_CELLS     = 4096
)

// WorldOptions tunes the checkers owned by a World. Zero values select the defaults.
type WorldOptions struct {
	// a negative Margin disables the fat boxes of the tree
	Margin       float64
	GridCellSize float64
	GridCells    int
	Workers      int
}

// World owns the collider collection of a simulation and the collision checkers
// that can be selected to process it. Only one checker runs per Step.
type World struct {
	// List of all colliders in the world, modified through AddCollider and RemoveCollider
	Colliders []*actor.Collider
	// Colliders bounce off the sides of Bounds
	Bounds  actor.AABB
	Workers int

	Events Events

	kind      Kind
	checkers  map[Kind]CollisionChecker
	tree      *BoundingVolumeHierarchy
	sweep     *SweepAndPrune
	lastCheck time.Duration
}

func (o WorldOptions) withDefaults() WorldOptions {
	if o.Margin == 0 {
		o.Margin = DEFAULT_MARGIN
	}
	if o.GridCellSize <= 0 {
		o.GridCellSize = DEFAULT_GRID_CELL_SIZE
	}
	if o.GridCells <= 0 {
		o.GridCells = DEFAULT_GRID_CELLS
	}
	o.Workers = max(DEFAULT_WORKERS, o.Workers)
	return o
}

func NewWorld(bounds actor.AABB, kind Kind, options WorldOptions) (*World, error) {
	options = options.withDefaults()

	w := &World{
		Colliders: make([]*actor.Collider, 0),
		Bounds:    bounds,
		Workers:   options.Workers,
		Events:    NewEvents(),
		checkers:  make(map[Kind]CollisionChecker),
	}
	for _, k := range Kinds() {
		checker, err := NewChecker(k, options)
		if err != nil {
			return nil, err
		}
		w.checkers[k] = checker
	}
	w.tree = w.checkers[BOUNDING_VOLUME_HIERARCHY].(*BoundingVolumeHierarchy)
	w.sweep = w.checkers[SWEEP_AND_PRUNE].(*SweepAndPrune)

	if err := w.SetChecker(kind); err != nil {
		return nil, err
	}

	return w, nil
}

// AddCollider adds a collider to the world
func (w *World) AddCollider(collider *actor.Collider) {
	w.Colliders = append(w.Colliders, collider)
	w.tree.Add(collider)
	w.sweep.Invalidate()
}

// RemoveCollider removes a collider from the world
func (w *World) RemoveCollider(collider *actor.Collider) error {
	k := -1
	for i, c := range w.Colliders {
		if c == collider {
			k = i
			break
		}
	}
	if k == -1 {
		return fmt.Errorf("remove from world: %w", ErrColliderNotFound)
	}

	w.Colliders = append(w.Colliders[:k], w.Colliders[k+1:]...)

	return w.forget(collider)
}

// RemoveLast removes up to n colliders from the end of the collection and returns how many were removed
func (w *World) RemoveLast(n int) (int, error) {
	n = min(max(n, 0), len(w.Colliders))

	var errs []error
	for i := 0; i < n; i++ {
		last := len(w.Colliders) - 1
		collider := w.Colliders[last]
		w.Colliders[last] = nil
		w.Colliders = w.Colliders[:last]

		if err := w.forget(collider); err != nil {
			errs = append(errs, err)
		}
	}

	return n, errors.Join(errs...)
}

// forget unregisters a collider already taken out of Colliders.
// An error means the collider was appended to Colliders without AddCollider.
func (w *World) forget(collider *actor.Collider) error {
	w.sweep.Invalidate()
	w.Events.forget(collider)

	if err := w.tree.Remove(collider); err != nil {
		return fmt.Errorf("world and tree out of sync: %w", err)
	}
	return nil
}

// SetChecker selects the checker used by the next Steps
func (w *World) SetChecker(kind Kind) error {
	if _, ok := w.checkers[kind]; !ok {
		return fmt.Errorf("select checker: %w: %v", ErrUnknownKind, kind)
	}

	w.kind = kind
	return nil
}

func (w *World) Kind() Kind {
	return w.kind
}

func (w *World) Checker() CollisionChecker {
	return w.checkers[w.kind]
}

// Tree exposes the BVH for drawing. It must not be modified.
func (w *World) Tree() *BoundingVolumeHierarchy {
	return w.tree
}

// Sweep exposes the sweep and prune checker for drawing its intervals
func (w *World) Sweep() *SweepAndPrune {
	return w.sweep
}

// LastCheckDuration is the time spent in collision detection during the last Step
func (w *World) LastCheckDuration() time.Duration {
	return w.lastCheck
}

// Step moves every collider by one tick, detects and resolves the collisions
func (w *World) Step() []Collision {
	for _, c := range w.Colliders {
		c.Update()
		w.bounce(c)
	}

	collisions := w.DetectCollisions()

	for _, c := range collisions {
		c.ColliderA.SetCollided()
		c.ColliderB.SetCollided()
	}
	Resolve(collisions)

	w.Events.recordCollisions(collisions)
	w.Events.flush()

	return collisions
}

// DetectCollisions runs the selected checker on the current positions
func (w *World) DetectCollisions() []Collision {
	start := time.Now()

	if bf, ok := w.checkers[BRUTE_FORCE].(*BruteForce); ok {
		bf.Workers = w.Workers
	}

	// the tree is refitted every tick it is used, whatever the selection was before
	if w.kind == BOUNDING_VOLUME_HIERARCHY {
		w.tree.Update()
	}
	collisions := w.checkers[w.kind].CheckCollisions(w.Colliders)

	w.lastCheck = time.Since(start)
	return collisions
}

// bounce turns the velocity back toward the inside when the collider crosses a side of Bounds
func (w *World) bounce(c *actor.Collider) {
	aabb := c.AABB()

	if aabb.Min.X() < w.Bounds.Min.X() {
		c.Velocity[0] = math.Abs(c.Velocity[0])
	} else if aabb.Max.X() > w.Bounds.Max.X() {
		c.Velocity[0] = -math.Abs(c.Velocity[0])
	}

	if aabb.Min.Y() < w.Bounds.Min.Y() {
		c.Velocity[1] = math.Abs(c.Velocity[1])
	} else if aabb.Max.Y() > w.Bounds.Max.Y() {
		c.Velocity[1] = -math.Abs(c.Velocity[1])
	}
}
