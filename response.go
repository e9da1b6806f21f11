package broadphase

// Resolve applies a simple elastic response to each colliding pair.
// Colliders have the same mass: the velocity components along the line joining
// the two centers are exchanged. Pairs already moving apart are left untouched,
// so two boxes overlapping for several ticks do not bounce back and forth.
func Resolve(collisions []Collision) {
	for _, c := range collisions {
		a, b := c.ColliderA, c.ColliderB

		delta := b.Position.Sub(a.Position)
		if delta.Len() == 0 {
			continue
		}
		normal := delta.Normalize()

		va := a.Velocity.Dot(normal)
		vb := b.Velocity.Dot(normal)
		if va-vb <= 0 {
			continue
		}

		a.Velocity = a.Velocity.Add(normal.Mul(vb - va))
		b.Velocity = b.Velocity.Add(normal.Mul(va - vb))
	}
}
