// Package config loads the physics world settings shared by the worker and
// the binaries.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid world")

type Material struct {
	Friction    float64 `yaml:"friction"`
	Restitution float64 `yaml:"restitution"`
}

// World configures one simulated world.
type World struct {
	Gravity                [3]float64 `yaml:"gravity"`
	Iterations             int        `yaml:"iterations"`
	StepHz                 float64    `yaml:"step_hz"`
	MaxSubSteps            int        `yaml:"max_sub_steps"`
	AllowSleep             bool       `yaml:"allow_sleep"`
	DefaultContactMaterial Material   `yaml:"default_contact_material"`
	FrameBuffer            int        `yaml:"frame_buffer"`
	EventBuffer            int        `yaml:"event_buffer"`
	Debug                  bool       `yaml:"debug"`
	LogLevel               string     `yaml:"log_level"`
}

func Default() World {
	return World{
		Gravity:     [3]float64{0, -9.81, 0},
		Iterations:  10,
		StepHz:      60,
		MaxSubSteps: 10,
		DefaultContactMaterial: Material{
			Friction:    0.3,
			Restitution: 0,
		},
		FrameBuffer: 4,
		EventBuffer: 256,
		LogLevel:    "info",
	}
}

// Load reads and validates a world file. Keys missing from the file keep
// their defaults.
func Load(path string) (World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return World{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	w, err := Parse(data)
	if err != nil {
		return World{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	return w, nil
}

func Parse(data []byte) (World, error) {
	w := Default()
	if err := yaml.Unmarshal(data, &w); err != nil {
		return World{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := w.Validate(); err != nil {
		return World{}, err
	}
	return w, nil
}

func (w World) Validate() error {
	switch {
	case w.Iterations <= 0:
		return fmt.Errorf("%w: iterations must be positive, got %d", ErrInvalid, w.Iterations)
	case w.StepHz <= 0:
		return fmt.Errorf("%w: step_hz must be positive, got %v", ErrInvalid, w.StepHz)
	case w.MaxSubSteps <= 0:
		return fmt.Errorf("%w: max_sub_steps must be positive, got %d", ErrInvalid, w.MaxSubSteps)
	case w.FrameBuffer <= 0:
		return fmt.Errorf("%w: frame_buffer must be positive, got %d", ErrInvalid, w.FrameBuffer)
	case w.EventBuffer <= 0:
		return fmt.Errorf("%w: event_buffer must be positive, got %d", ErrInvalid, w.EventBuffer)
	case w.DefaultContactMaterial.Friction < 0:
		return fmt.Errorf("%w: default_contact_material.friction must not be negative", ErrInvalid)
	case w.DefaultContactMaterial.Restitution < 0:
		return fmt.Errorf("%w: default_contact_material.restitution must not be negative", ErrInvalid)
	}
	if _, err := parseLevel(w.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Dt is the fixed step length in seconds.
func (w World) Dt() float64 {
	return 1 / w.StepHz
}

func (w World) StepInterval() time.Duration {
	return time.Duration(float64(time.Second) / w.StepHz)
}

// Level returns the slog level named by LogLevel; Debug forces debug.
func (w World) Level() slog.Level {
	if w.Debug {
		return slog.LevelDebug
	}
	l, err := parseLevel(w.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return l
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log_level %q", s)
}

// NewLogger returns a text logger at the configured level.
func (w World) NewLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: w.Level()}))
}
