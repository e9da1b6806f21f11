package main

import (
	"time"

	"github.com/akmonengine/broadphase"
	"github.com/charmbracelet/log"
)

// Timing is the result of a headless run for one checker
type Timing struct {
	Kind       broadphase.Kind
	Ticks      int
	Colliders  int
	Collisions int
	Total      time.Duration
}

func (t Timing) Average() time.Duration {
	if t.Ticks == 0 {
		return 0
	}
	return t.Total / time.Duration(t.Ticks)
}

// RunHeadless steps the same scene once per checker and logs the time spent in collision detection
func RunHeadless(cfg Config, logger *log.Logger) ([]Timing, error) {
	timings := make([]Timing, 0, len(broadphase.Kinds()))

	for _, kind := range broadphase.Kinds() {
		runCfg := cfg
		runCfg.Kind = kind

		sim, err := NewSimulation(runCfg)
		if err != nil {
			return nil, err
		}

		timing := Timing{Kind: kind, Ticks: cfg.HeadlessTicks, Colliders: len(sim.World.Colliders)}
		for i := 0; i < cfg.HeadlessTicks; i++ {
			timing.Collisions += len(sim.Step())
			timing.Total += sim.World.LastCheckDuration()
		}
		timings = append(timings, timing)

		logger.Info("checker done",
			"algorithm", kind,
			"colliders", timing.Colliders,
			"ticks", timing.Ticks,
			"collisions", timing.Collisions,
			"average", timing.Average(),
		)
	}

	return timings, nil
}
