package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"
)

type App struct {
	screen   tcell.Screen
	sim      *Simulation
	renderer *Renderer
	camera   Camera
	sound    *Sound
	logger   *log.Logger
	tick     time.Duration
}

func NewApp(cfg Config, logger *log.Logger) (*App, error) {
	sim, err := NewSimulation(cfg)
	if err != nil {
		return nil, err
	}

	sound := &Sound{}
	if cfg.Sound {
		if sound, err = NewSound(); err != nil {
			// Non-fatal, the visualizer runs without sound
			logger.Warn("audio initialization failed", "err", err)
		}
		sound.Listen(sim.World)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()

	app := &App{
		screen:   screen,
		sim:      sim,
		renderer: NewRenderer(screen),
		camera:   NewCamera(),
		sound:    sound,
		logger:   logger,
		tick:     time.Second / time.Duration(cfg.TicksPerSec),
	}

	return app, nil
}

func (a *App) Run() error {
	ticker := time.NewTicker(a.tick)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	var input InputState
	var drag dragState
	lastFrame := time.Now()

	for {
		select {
		case ev := <-eventChan:
			if _, ok := ev.(*tcell.EventResize); ok {
				a.screen.Sync()
			}
			input.HandleEvent(ev, &drag)
			if input.Quit {
				return nil
			}

		case <-ticker.C:
			if err := a.sim.Apply(input); err != nil {
				return fmt.Errorf("apply input: %w", err)
			}
			a.camera.Apply(input)
			if input.ToggleColor {
				a.renderer.Rainbow = !a.renderer.Rainbow
			}
			if input.SelectKind {
				a.logger.Debug("checker selected", "algorithm", input.Kind)
			}
			input = InputState{}

			a.sim.Step()
			a.sound.Play()

			now := time.Now()
			frameTime := now.Sub(lastFrame)
			lastFrame = now

			status := Status{
				Colliders: len(a.sim.World.Colliders),
				Kind:      a.sim.World.Kind(),
				CheckTime: a.sim.World.LastCheckDuration(),
			}
			if frameTime > 0 {
				status.FPS = float64(time.Second) / float64(frameTime)
			}
			a.renderer.Draw(a.sim.World, a.camera, status)
		}
	}
}

func (a *App) Close() {
	a.sound.Close()
	a.screen.Fini()
}

func main() {
	cfg, err := LoadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(2)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "broadphase",
		Level:           cfg.LogLevel,
	})

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger.Debug("configuration loaded", "seed", cfg.Seed, "colliders", cfg.Colliders, "algorithm", cfg.Kind)

	if cfg.Headless || !term.IsTerminal(int(os.Stdout.Fd())) {
		if _, err := RunHeadless(cfg, logger); err != nil {
			logger.Fatal("headless run failed", "err", err)
		}
		return
	}

	app, err := NewApp(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize", "err", err)
	}

	err = app.Run()
	app.Close()
	if err != nil {
		logger.Fatal("visualizer stopped", "err", err)
	}
}
