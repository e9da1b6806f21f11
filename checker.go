package broadphase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/akmonengine/broadphase/actor"
)

var (
	ErrColliderNotFound = errors.New("collider not found")
	ErrUnknownKind      = errors.New("unknown collision checker")
)

// Collision is an unordered pair of colliders whose AABBs overlap
type Collision struct {
	ColliderA *actor.Collider
	ColliderB *actor.Collider
}

// CollisionChecker finds every overlapping pair among colliders.
// Implementations must not report the same pair twice in one call.
type CollisionChecker interface {
	CheckCollisions(colliders []*actor.Collider) []Collision
}

// Maintainer is implemented by checkers that keep their own copy of the collider set
// and need to be told about insertions, removals and motion
type Maintainer interface {
	Add(collider *actor.Collider)
	Remove(collider *actor.Collider) error
	Update()
}

type Kind uint8

const (
	BRUTE_FORCE Kind = iota
	SWEEP_AND_PRUNE
	BOUNDING_VOLUME_HIERARCHY
	SPATIAL_GRID
)

var kindNames = map[Kind]string{
	BRUTE_FORCE:               "Brute Force",
	SWEEP_AND_PRUNE:           "Sweep and Prune",
	BOUNDING_VOLUME_HIERARCHY: "Bounding Volume Hierarchy",
	SPATIAL_GRID:              "Spatial Grid",
}

// Kinds lists every available checker, in selection order
func Kinds() []Kind {
	return []Kind{BRUTE_FORCE, SWEEP_AND_PRUNE, BOUNDING_VOLUME_HIERARCHY, SPATIAL_GRID}
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// ParseKind accepts either the display name or a short alias (bruteforce, sap, bvh, grid)
func ParseKind(s string) (Kind, error) {
	normalized := strings.ToLower(strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s))

	switch normalized {
	case "bruteforce", "brute":
		return BRUTE_FORCE, nil
	case "sweepandprune", "sap", "sweep":
		return SWEEP_AND_PRUNE, nil
	case "boundingvolumehierarchy", "bvh", "tree":
		return BOUNDING_VOLUME_HIERARCHY, nil
	case "spatialgrid", "grid":
		return SPATIAL_GRID, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// NewChecker builds a standalone checker of the given kind.
// Zero values in options select the defaults, as for NewWorld.
func NewChecker(kind Kind, options WorldOptions) (CollisionChecker, error) {
	options = options.withDefaults()

	switch kind {
	case BRUTE_FORCE:
		return NewBruteForce(options.Workers), nil
	case SWEEP_AND_PRUNE:
		return NewSweepAndPrune(), nil
	case BOUNDING_VOLUME_HIERARCHY:
		return NewBoundingVolumeHierarchy(options.Margin), nil
	case SPATIAL_GRID:
		return NewSpatialGrid(options.GridCellSize, options.GridCells), nil
	}

	return nil, fmt.Errorf("new checker: %w: %v", ErrUnknownKind, kind)
}
