package main

import (
	"time"

	"github.com/akmonengine/broadphase"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	SAMPLE_RATE    = beep.SampleRate(44100)
	TONE_FREQUENCY = 880
	TONE_DURATION  = 30 * time.Millisecond
	TONE_INTERVAL  = 100 * time.Millisecond
)

// Sound plays a short tone when colliders start touching, at most once per TONE_INTERVAL
type Sound struct {
	enabled  bool
	pending  bool
	lastTone time.Time
}

func NewSound() (*Sound, error) {
	if err := speaker.Init(SAMPLE_RATE, SAMPLE_RATE.N(time.Second/10)); err != nil {
		return &Sound{}, err
	}
	return &Sound{enabled: true}, nil
}

// Listen subscribes to the collision events of world
func (s *Sound) Listen(world *broadphase.World) {
	world.Events.Subscribe(broadphase.COLLISION_ENTER, func(event broadphase.Event) {
		s.pending = true
	})
}

// Play emits the tone if a collision started since the last call
func (s *Sound) Play() {
	if !s.enabled || !s.pending || time.Since(s.lastTone) < TONE_INTERVAL {
		return
	}
	s.pending = false
	s.lastTone = time.Now()

	sine, err := generators.SineTone(SAMPLE_RATE, TONE_FREQUENCY)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(SAMPLE_RATE.N(TONE_DURATION), sine))
}

func (s *Sound) Close() {
	if s.enabled {
		speaker.Close()
	}
}
