package broadphase

import "github.com/akmonengine/broadphase/actor"

// Interval is one end of a collider's projection on the X axis
type Interval struct {
	Value    float64
	Collider *actor.Collider
	Start    bool
}

// less orders endpoints by coordinate. On equal coordinates a start comes before an end,
// so boxes that only touch are still open at the same time during the sweep.
func (i Interval) less(other Interval) bool {
	if i.Value != other.Value {
		return i.Value < other.Value
	}
	return i.Start && !other.Start
}

// SweepAndPrune keeps the X intervals of every collider sorted between calls.
// Colliders barely move from one tick to the next, so the list stays almost sorted
// and the insertion sort runs in near linear time.
//
// Membership is reconciled only when the number of colliders changes: callers must
// run CheckCollisions on every tick where colliders are added or removed, or call
// Invalidate when they cannot.
type SweepAndPrune struct {
	intervals []Interval
	members   map[*actor.Collider]struct{}
	active    []*actor.Collider
	dirty     bool
}

func NewSweepAndPrune() *SweepAndPrune {
	return &SweepAndPrune{
		intervals: make([]Interval, 0),
		members:   make(map[*actor.Collider]struct{}),
		active:    make([]*actor.Collider, 0),
	}
}

func (sap *SweepAndPrune) CheckCollisions(colliders []*actor.Collider) []Collision {
	if sap.dirty || len(sap.members) != len(colliders) {
		sap.reconcile(colliders)
		sap.dirty = false
	}

	sap.refresh()
	sap.sort()

	return sap.sweep()
}

// Intervals returns a copy of the sorted endpoint list, as of the last call to CheckCollisions
func (sap *SweepAndPrune) Intervals() []Interval {
	intervals := make([]Interval, len(sap.intervals))
	copy(intervals, sap.intervals)
	return intervals
}

// Invalidate forces a full membership check on the next call
func (sap *SweepAndPrune) Invalidate() {
	sap.dirty = true
}

// reconcile drops the endpoints of colliders that left the collection
// and appends a start/end pair for each collider seen for the first time
func (sap *SweepAndPrune) reconcile(colliders []*actor.Collider) {
	if len(sap.members) > 0 {
		present := make(map[*actor.Collider]struct{}, len(colliders))
		for _, c := range colliders {
			present[c] = struct{}{}
		}

		n := 0
		for _, interval := range sap.intervals {
			if _, ok := present[interval.Collider]; ok {
				sap.intervals[n] = interval
				n++
			} else {
				delete(sap.members, interval.Collider)
			}
		}
		clear(sap.intervals[n:])
		sap.intervals = sap.intervals[:n]
	}

	for _, c := range colliders {
		if _, ok := sap.members[c]; ok {
			continue
		}
		sap.members[c] = struct{}{}

		aabb := c.AABB()
		sap.intervals = append(sap.intervals,
			Interval{Value: aabb.Min.X(), Collider: c, Start: true},
			Interval{Value: aabb.Max.X(), Collider: c, Start: false},
		)
	}
}

// refresh copies the current X bounds of every collider into its endpoints
func (sap *SweepAndPrune) refresh() {
	for i := range sap.intervals {
		aabb := sap.intervals[i].Collider.AABB()
		if sap.intervals[i].Start {
			sap.intervals[i].Value = aabb.Min.X()
		} else {
			sap.intervals[i].Value = aabb.Max.X()
		}
	}
}

// sort is an insertion sort: O(n) on the nearly sorted list of a new tick
func (sap *SweepAndPrune) sort() {
	for i := 1; i < len(sap.intervals); i++ {
		current := sap.intervals[i]
		j := i - 1
		for j >= 0 && current.less(sap.intervals[j]) {
			sap.intervals[j+1] = sap.intervals[j]
			j--
		}
		sap.intervals[j+1] = current
	}
}

func (sap *SweepAndPrune) sweep() []Collision {
	collisions := make([]Collision, 0)
	sap.active = sap.active[:0]

	for _, interval := range sap.intervals {
		if !interval.Start {
			sap.deactivate(interval.Collider)
			continue
		}

		// every active collider overlaps the new one on X
		aabb := interval.Collider.AABB()
		for _, other := range sap.active {
			if aabb.OverlapsY(other.AABB()) {
				collisions = append(collisions, Collision{ColliderA: other, ColliderB: interval.Collider})
			}
		}
		sap.active = append(sap.active, interval.Collider)
	}

	return collisions
}

func (sap *SweepAndPrune) deactivate(collider *actor.Collider) {
	for i, c := range sap.active {
		if c == collider {
			last := len(sap.active) - 1
			sap.active[i] = sap.active[last]
			sap.active[last] = nil
			sap.active = sap.active[:last]
			return
		}
	}
}
