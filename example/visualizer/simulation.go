package main

import (
	"math"
	"math/rand"

	"github.com/akmonengine/broadphase"
	"github.com/akmonengine/broadphase/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// Simulation drives a world of colliders spawned at random inside a square region
type Simulation struct {
	World  *broadphase.World
	config Config
	rng    *rand.Rand
	nextId int
}

func NewSimulation(cfg Config) (*Simulation, error) {
	half := cfg.RegionSize / 2
	bounds := actor.AABB{Min: mgl64.Vec2{-half, -half}, Max: mgl64.Vec2{half, half}}

	world, err := broadphase.NewWorld(bounds, cfg.Kind, broadphase.WorldOptions{
		Margin:  cfg.Margin,
		Workers: cfg.Workers,
	})
	if err != nil {
		return nil, err
	}

	s := &Simulation{
		World:  world,
		config: cfg,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
	}
	s.Spawn(cfg.Colliders)

	return s, nil
}

// Spawn adds n colliders fully inside the region, moving in a random direction
func (s *Simulation) Spawn(n int) {
	cfg := s.config
	for i := 0; i < n; i++ {
		x := s.rng.Float64()*(cfg.RegionSize-cfg.ColliderSize*2) - cfg.RegionSize/2 + cfg.ColliderSize
		y := s.rng.Float64()*(cfg.RegionSize-cfg.ColliderSize*2) - cfg.RegionSize/2 + cfg.ColliderSize

		speed := s.rng.Float64()*(cfg.SpeedMax-cfg.SpeedMin) + cfg.SpeedMin
		direction := s.rng.Float64() * 2 * math.Pi

		c := actor.NewCollider(mgl64.Vec2{x, y}, cfg.ColliderSize, mgl64.Vec2{speed * math.Cos(direction), speed * math.Sin(direction)})
		c.Id = s.nextId
		s.nextId++

		s.World.AddCollider(c)
	}
}

// Apply consumes the input gathered since the last tick
func (s *Simulation) Apply(input InputState) error {
	if input.SelectKind {
		if err := s.World.SetChecker(input.Kind); err != nil {
			return err
		}
	}
	if input.Add > 0 {
		s.Spawn(input.Add * s.config.Increment)
	}
	if input.Remove > 0 {
		if _, err := s.World.RemoveLast(input.Remove * s.config.Increment); err != nil {
			return err
		}
	}
	return nil
}

func (s *Simulation) Step() []broadphase.Collision {
	return s.World.Step()
}
