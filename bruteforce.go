package broadphase

import "github.com/akmonengine/broadphase/actor"

// BruteForce tests every pair of colliders.
// It is O(n²) and serves as the reference the other checkers are compared with.
type BruteForce struct {
	// Workers > 1 spreads the rows of the pair triangle over goroutines
	Workers int
}

func NewBruteForce(workers int) *BruteForce {
	return &BruteForce{Workers: workers}
}

func (bf *BruteForce) CheckCollisions(colliders []*actor.Collider) []Collision {
	workers := max(DEFAULT_WORKERS, bf.Workers)
	if workers == 1 || len(colliders) < 2*workers {
		collisions := make([]Collision, 0)
		for i := 0; i < len(colliders)-1; i++ {
			collisions = bruteForceRow(colliders, i, collisions)
		}
		return collisions
	}

	rows := make([]int, len(colliders)-1)
	for i := range rows {
		rows[i] = i
	}

	// one output per worker; chunks are contiguous so concatenation keeps the sequential order
	results := make([][]Collision, workers)
	task(workers, rows, func(worker int, i int) {
		results[worker] = bruteForceRow(colliders, i, results[worker])
	})

	collisions := make([]Collision, 0)
	for _, r := range results {
		collisions = append(collisions, r...)
	}
	return collisions
}

// bruteForceRow appends the collisions between colliders[i] and every collider after it
func bruteForceRow(colliders []*actor.Collider, i int, collisions []Collision) []Collision {
	c1 := colliders[i]
	aabb1 := c1.AABB()

	for j := i + 1; j < len(colliders); j++ {
		c2 := colliders[j]
		if aabb1.Overlaps(c2.AABB()) {
			collisions = append(collisions, Collision{ColliderA: c1, ColliderB: c2})
		}
	}

	return collisions
}
