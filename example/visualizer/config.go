package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/akmonengine/broadphase"
	"github.com/charmbracelet/log"
)

const (
	REGION_SIZE        = 10000.0
	COLLIDER_SIZE      = 80.0
	COLLIDER_SPEED_MIN = 2.0
	COLLIDER_SPEED_MAX = 3.0
	INITIAL_COLLIDERS  = 1000
	COLLIDER_INCREMENT = 100
	TICKS_PER_SECOND   = 120
	HEADLESS_TICKS     = 300
)

// Config of the visualizer. Values come from the BROADPHASE_* environment variables,
// then from the command line flags.
type Config struct {
	Kind          broadphase.Kind
	RegionSize    float64
	ColliderSize  float64
	SpeedMin      float64
	SpeedMax      float64
	Colliders     int
	Increment     int
	TicksPerSec   int
	Workers       int
	Margin        float64
	Seed          int64
	Headless      bool
	HeadlessTicks int
	Sound         bool
	LogLevel      log.Level
}

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

type envReader struct {
	err error
}

func (r *envReader) float(key string, fallback float64) float64 {
	value, ok := os.LookupEnv(key)
	if !ok || r.err != nil {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		r.err = fmt.Errorf("%s: %w", key, err)
		return fallback
	}
	return f
}

func (r *envReader) int(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok || r.err != nil {
		return fallback
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		r.err = fmt.Errorf("%s: %w", key, err)
		return fallback
	}
	return i
}

func (r *envReader) bool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok || r.err != nil {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		r.err = fmt.Errorf("%s: %w", key, err)
		return fallback
	}
	return b
}

// LoadConfig reads the environment then parses args, which must not contain the program name
func LoadConfig(args []string) (Config, error) {
	env := &envReader{}
	cfg := Config{
		RegionSize:    env.float("BROADPHASE_REGION_SIZE", REGION_SIZE),
		ColliderSize:  env.float("BROADPHASE_COLLIDER_SIZE", COLLIDER_SIZE),
		SpeedMin:      env.float("BROADPHASE_SPEED_MIN", COLLIDER_SPEED_MIN),
		SpeedMax:      env.float("BROADPHASE_SPEED_MAX", COLLIDER_SPEED_MAX),
		Colliders:     env.int("BROADPHASE_COLLIDERS", INITIAL_COLLIDERS),
		Increment:     env.int("BROADPHASE_INCREMENT", COLLIDER_INCREMENT),
		TicksPerSec:   env.int("BROADPHASE_TICKS", TICKS_PER_SECOND),
		Workers:       env.int("BROADPHASE_WORKERS", broadphase.DEFAULT_WORKERS),
		Margin:        env.float("BROADPHASE_MARGIN", broadphase.DEFAULT_MARGIN),
		Seed:          int64(env.int("BROADPHASE_SEED", 0)),
		Headless:      env.bool("BROADPHASE_HEADLESS", false),
		HeadlessTicks: env.int("BROADPHASE_HEADLESS_TICKS", HEADLESS_TICKS),
		Sound:         env.bool("BROADPHASE_SOUND", false),
	}
	if env.err != nil {
		return Config{}, fmt.Errorf("environment: %w", env.err)
	}

	fs := flag.NewFlagSet("visualizer", flag.ContinueOnError)
	kind := fs.String("checker", GetEnv("BROADPHASE_CHECKER", "bruteforce"), "collision checker: bruteforce, sap, bvh or grid")
	level := fs.String("log-level", GetEnv("BROADPHASE_LOG_LEVEL", "info"), "log level: debug, info, warn or error")
	fs.Float64Var(&cfg.RegionSize, "region", cfg.RegionSize, "side of the square region")
	fs.Float64Var(&cfg.ColliderSize, "size", cfg.ColliderSize, "side of a collider")
	fs.Float64Var(&cfg.SpeedMin, "speed-min", cfg.SpeedMin, "minimum collider speed per tick")
	fs.Float64Var(&cfg.SpeedMax, "speed-max", cfg.SpeedMax, "maximum collider speed per tick")
	fs.IntVar(&cfg.Colliders, "colliders", cfg.Colliders, "initial number of colliders")
	fs.IntVar(&cfg.Increment, "increment", cfg.Increment, "colliders added or removed per key press")
	fs.IntVar(&cfg.TicksPerSec, "ticks", cfg.TicksPerSec, "simulation ticks per second")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "workers of the brute force checker")
	fs.Float64Var(&cfg.Margin, "margin", cfg.Margin, "fat margin of the tree leaves, negative to disable")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed, 0 picks one from the clock")
	fs.BoolVar(&cfg.Headless, "headless", cfg.Headless, "run every checker without a screen and log the timings")
	fs.IntVar(&cfg.HeadlessTicks, "headless-ticks", cfg.HeadlessTicks, "ticks per checker in headless mode")
	fs.BoolVar(&cfg.Sound, "sound", cfg.Sound, "play a tone when colliders start touching")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	var err error
	if cfg.Kind, err = broadphase.ParseKind(*kind); err != nil {
		return Config{}, err
	}
	if cfg.LogLevel, err = log.ParseLevel(*level); err != nil {
		return Config{}, fmt.Errorf("log level: %w", err)
	}

	return cfg, cfg.validate()
}

func (cfg Config) validate() error {
	switch {
	case cfg.RegionSize <= cfg.ColliderSize*2:
		return fmt.Errorf("region %v is too small for colliders of size %v", cfg.RegionSize, cfg.ColliderSize)
	case cfg.ColliderSize <= 0:
		return fmt.Errorf("collider size must be positive, got %v", cfg.ColliderSize)
	case cfg.SpeedMin < 0 || cfg.SpeedMax < cfg.SpeedMin:
		return fmt.Errorf("invalid speed range [%v, %v]", cfg.SpeedMin, cfg.SpeedMax)
	case cfg.Colliders < 0 || cfg.Increment < 0:
		return fmt.Errorf("collider counts must not be negative")
	case cfg.TicksPerSec <= 0:
		return fmt.Errorf("ticks per second must be positive, got %d", cfg.TicksPerSec)
	case cfg.HeadlessTicks <= 0:
		return fmt.Errorf("headless ticks must be positive, got %d", cfg.HeadlessTicks)
	}
	return nil
}
