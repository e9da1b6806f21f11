package broadphase

import (
	"fmt"

	"github.com/akmonengine/broadphase/actor"
)

// DEFAULT_MARGIN is how far a leaf's fat box extends beyond its collider, on each side
const DEFAULT_MARGIN = 80.0

// NodeID is a handle into the tree's node arena
type NodeID int32

const NULL_NODE NodeID = -1

type nodeKind uint8

const (
	nodeFree nodeKind = iota
	nodeLeaf
	nodeBranch
)

type node struct {
	kind   nodeKind
	parent NodeID

	// branch
	left  NodeID
	right NodeID

	// leaf
	collider *actor.Collider
	margin   actor.AABB

	// tight box for a leaf, union of the children's boxes for a branch
	aabb actor.AABB

	visited bool
}

// box is the AABB used for the tree structure: the fat box of a leaf, the box of a branch
func (n *node) box() actor.AABB {
	if n.kind == nodeLeaf {
		return n.margin
	}
	return n.aabb
}

// NodeView is a read-only copy of a tree node, for debugging and drawing
type NodeView struct {
	ID     NodeID
	Parent NodeID
	Left   NodeID
	Right  NodeID

	Leaf     bool
	Collider *actor.Collider
	AABB     actor.AABB
	Margin   actor.AABB
}

// Box returns the margin box of a leaf, or the AABB of a branch
func (v NodeView) Box() actor.AABB {
	if v.Leaf {
		return v.Margin
	}
	return v.AABB
}

// BoundingVolumeHierarchy is a dynamic AABB tree.
// Leaves store a box fattened by Margin, so a collider only has to be re-inserted
// once it escapes that box. Colliders must be registered with Add and Remove, and
// Update must be called once per tick after the colliders moved.
type BoundingVolumeHierarchy struct {
	Margin float64

	nodes    []node
	freeList NodeID
	root     NodeID
	leaves   map[*actor.Collider]NodeID

	moved []NodeID
}

func NewBoundingVolumeHierarchy(margin float64) *BoundingVolumeHierarchy {
	return &BoundingVolumeHierarchy{
		Margin:   max(0, margin),
		nodes:    make([]node, 0, 64),
		freeList: NULL_NODE,
		root:     NULL_NODE,
		leaves:   make(map[*actor.Collider]NodeID),
	}
}

// Len returns the number of colliders in the tree
func (t *BoundingVolumeHierarchy) Len() int {
	return len(t.leaves)
}

func (t *BoundingVolumeHierarchy) Contains(collider *actor.Collider) bool {
	_, ok := t.leaves[collider]
	return ok
}

// Root returns the root handle, NULL_NODE when the tree is empty
func (t *BoundingVolumeHierarchy) Root() NodeID {
	return t.root
}

// Node returns a copy of the node id. ok is false for a stale or invalid handle.
func (t *BoundingVolumeHierarchy) Node(id NodeID) (NodeView, bool) {
	if id < 0 || int(id) >= len(t.nodes) || t.nodes[id].kind == nodeFree {
		return NodeView{}, false
	}

	n := &t.nodes[id]
	return NodeView{
		ID:       id,
		Parent:   n.parent,
		Left:     n.left,
		Right:    n.right,
		Leaf:     n.kind == nodeLeaf,
		Collider: n.collider,
		AABB:     n.aabb,
		Margin:   n.margin,
	}, true
}

// Walk visits the tree depth first, parents before children
func (t *BoundingVolumeHierarchy) Walk(fn func(view NodeView, depth int)) {
	if t.root == NULL_NODE {
		return
	}
	t.walk(t.root, 0, fn)
}

func (t *BoundingVolumeHierarchy) walk(id NodeID, depth int, fn func(view NodeView, depth int)) {
	view, _ := t.Node(id)
	fn(view, depth)

	if !view.Leaf {
		t.walk(view.Left, depth+1, fn)
		t.walk(view.Right, depth+1, fn)
	}
}

// Add inserts a leaf for collider. Adding a collider twice is a no-op.
func (t *BoundingVolumeHierarchy) Add(collider *actor.Collider) {
	if _, ok := t.leaves[collider]; ok {
		return
	}

	aabb := collider.AABB()
	leaf := t.allocate()
	t.nodes[leaf] = node{
		kind:     nodeLeaf,
		parent:   NULL_NODE,
		left:     NULL_NODE,
		right:    NULL_NODE,
		collider: collider,
		aabb:     aabb,
		margin:   aabb.Expand(t.Margin),
	}
	t.leaves[collider] = leaf

	t.insertLeaf(leaf)
}

// Remove detaches the leaf of collider; its sibling takes the place of their parent
func (t *BoundingVolumeHierarchy) Remove(collider *actor.Collider) error {
	leaf, ok := t.leaves[collider]
	if !ok {
		return fmt.Errorf("remove from tree: %w", ErrColliderNotFound)
	}
	delete(t.leaves, collider)

	t.removeLeaf(leaf)
	t.release(leaf)

	return nil
}

// Update re-inserts every leaf whose collider left its margin box.
// Leaves are collected first, then moved, so the tree is never modified while it is scanned.
func (t *BoundingVolumeHierarchy) Update() {
	t.moved = t.moved[:0]

	for id := range t.nodes {
		n := &t.nodes[id]
		if n.kind != nodeLeaf {
			continue
		}

		n.aabb = n.collider.AABB()
		if !n.margin.Contains(n.aabb) {
			t.moved = append(t.moved, NodeID(id))
		}
	}

	for _, leaf := range t.moved {
		t.nodes[leaf].margin = t.nodes[leaf].aabb.Expand(t.Margin)
		t.removeLeaf(leaf)
		t.insertLeaf(leaf)
	}
}

// CheckCollisions returns the overlapping pairs among the colliders registered in the tree.
// The colliders argument is not read: the tree tracks its own set through Add and Remove.
func (t *BoundingVolumeHierarchy) CheckCollisions(_ []*actor.Collider) []Collision {
	collisions := make([]Collision, 0)
	if t.root == NULL_NODE || t.nodes[t.root].kind == nodeLeaf {
		return collisions
	}

	for i := range t.nodes {
		t.nodes[i].visited = false
	}
	t.checkChildren(t.root, &collisions)

	return collisions
}

// checkChildren tests the two children of a branch against each other, once per query
func (t *BoundingVolumeHierarchy) checkChildren(id NodeID, collisions *[]Collision) {
	n := &t.nodes[id]
	if n.kind != nodeBranch || n.visited {
		return
	}
	n.visited = true

	t.checkOverlap(n.left, n.right, collisions)
}

func (t *BoundingVolumeHierarchy) checkOverlap(a, b NodeID, collisions *[]Collision) {
	t.checkChildren(a, collisions)
	t.checkChildren(b, collisions)

	na, nb := &t.nodes[a], &t.nodes[b]
	if !na.box().Overlaps(nb.box()) {
		return
	}

	switch {
	case na.kind == nodeLeaf && nb.kind == nodeLeaf:
		if na.collider.AABB().Overlaps(nb.collider.AABB()) {
			*collisions = append(*collisions, Collision{ColliderA: na.collider, ColliderB: nb.collider})
		}
	case na.kind == nodeLeaf:
		t.checkOverlap(a, nb.left, collisions)
		t.checkOverlap(a, nb.right, collisions)
	case nb.kind == nodeLeaf:
		t.checkOverlap(na.left, b, collisions)
		t.checkOverlap(na.right, b, collisions)
	default:
		t.checkOverlap(na.left, nb.left, collisions)
		t.checkOverlap(na.left, nb.right, collisions)
		t.checkOverlap(na.right, nb.left, collisions)
		t.checkOverlap(na.right, nb.right, collisions)
	}
}

// insertLeaf walks down choosing the child whose area grows the least,
// then pairs the leaf with the leaf found there under a new branch
func (t *BoundingVolumeHierarchy) insertLeaf(leaf NodeID) {
	if t.root == NULL_NODE {
		t.root = leaf
		t.nodes[leaf].parent = NULL_NODE
		return
	}

	box := t.nodes[leaf].margin
	sibling := t.root
	for t.nodes[sibling].kind == nodeBranch {
		left, right := t.nodes[sibling].left, t.nodes[sibling].right
		if areaCost(t.nodes[right].box(), box) < areaCost(t.nodes[left].box(), box) {
			sibling = right
		} else {
			sibling = left
		}
	}

	oldParent := t.nodes[sibling].parent
	branch := t.allocate()
	t.nodes[branch] = node{
		kind:   nodeBranch,
		parent: oldParent,
		left:   sibling,
		right:  leaf,
	}
	t.nodes[sibling].parent = branch
	t.nodes[leaf].parent = branch

	if oldParent == NULL_NODE {
		t.root = branch
	} else {
		t.replaceChild(oldParent, sibling, branch)
	}

	t.refit(branch)
}

// removeLeaf unlinks leaf from the tree without releasing it
func (t *BoundingVolumeHierarchy) removeLeaf(leaf NodeID) {
	if leaf == t.root {
		t.root = NULL_NODE
		return
	}

	parent := t.nodes[leaf].parent
	grandParent := t.nodes[parent].parent
	sibling := t.nodes[parent].left
	if sibling == leaf {
		sibling = t.nodes[parent].right
	}

	if grandParent == NULL_NODE {
		t.root = sibling
		t.nodes[sibling].parent = NULL_NODE
	} else {
		t.replaceChild(grandParent, parent, sibling)
		t.nodes[sibling].parent = grandParent
		t.refit(grandParent)
	}

	t.release(parent)
	t.nodes[leaf].parent = NULL_NODE
}

func (t *BoundingVolumeHierarchy) replaceChild(parent, oldChild, newChild NodeID) {
	if t.nodes[parent].left == oldChild {
		t.nodes[parent].left = newChild
	} else {
		t.nodes[parent].right = newChild
	}
}

// refit recomputes the boxes from id up to the root
func (t *BoundingVolumeHierarchy) refit(id NodeID) {
	for id != NULL_NODE {
		n := &t.nodes[id]
		n.aabb = t.nodes[n.left].box().Union(t.nodes[n.right].box())
		id = n.parent
	}
}

// areaCost is how much the area of node grows when box is merged into it
func areaCost(node actor.AABB, box actor.AABB) float64 {
	return node.Union(box).Area() - node.Area()
}

func (t *BoundingVolumeHierarchy) allocate() NodeID {
	if t.freeList != NULL_NODE {
		id := t.freeList
		t.freeList = t.nodes[id].parent
		return id
	}

	t.nodes = append(t.nodes, node{})
	return NodeID(len(t.nodes) - 1)
}

func (t *BoundingVolumeHierarchy) release(id NodeID) {
	t.nodes[id] = node{
		kind:   nodeFree,
		parent: t.freeList,
		left:   NULL_NODE,
		right:  NULL_NODE,
	}
	t.freeList = id
}

// Validate checks the structure of the tree: full binary tree, consistent parent links,
// branch boxes equal to the union of their children and margins enclosing their leaves.
func (t *BoundingVolumeHierarchy) Validate() error {
	if t.root == NULL_NODE {
		if len(t.leaves) != 0 {
			return fmt.Errorf("empty tree tracks %d colliders", len(t.leaves))
		}
		return nil
	}
	if t.nodes[t.root].parent != NULL_NODE {
		return fmt.Errorf("root %d has parent %d", t.root, t.nodes[t.root].parent)
	}

	leafCount := 0
	var validate func(id NodeID) error
	validate = func(id NodeID) error {
		n := &t.nodes[id]

		switch n.kind {
		case nodeLeaf:
			leafCount++
			if indexed, ok := t.leaves[n.collider]; !ok || indexed != id {
				return fmt.Errorf("leaf %d is not indexed for its collider", id)
			}
			if !n.margin.Contains(n.aabb) {
				return fmt.Errorf("leaf %d margin %v does not contain %v", id, n.margin, n.aabb)
			}
			return nil
		case nodeBranch:
			if n.left == NULL_NODE || n.right == NULL_NODE {
				return fmt.Errorf("branch %d has a missing child", id)
			}
			for _, child := range []NodeID{n.left, n.right} {
				if t.nodes[child].parent != id {
					return fmt.Errorf("node %d has parent %d, want %d", child, t.nodes[child].parent, id)
				}
				if err := validate(child); err != nil {
					return err
				}
			}
			union := t.nodes[n.left].box().Union(t.nodes[n.right].box())
			if n.aabb != union {
				return fmt.Errorf("branch %d box %v, want %v", id, n.aabb, union)
			}
			return nil
		default:
			return fmt.Errorf("node %d is free but reachable", id)
		}
	}

	if err := validate(t.root); err != nil {
		return err
	}
	if leafCount != len(t.leaves) {
		return fmt.Errorf("tree has %d leaves, %d colliders tracked", leafCount, len(t.leaves))
	}

	return nil
}
