package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeepsDefaults(t *testing.T) {
	w, err := Parse([]byte("gravity: [0, -20, 0]\nallow_sleep: true\n"))
	require.NoError(t, err)

	want := Default()
	want.Gravity = [3]float64{0, -20, 0}
	want.AllowSleep = true
	assert.Equal(t, want, w)
	assert.InDelta(t, 1.0/60, w.Dt(), 1e-12)
	assert.Equal(t, 16666666*time.Nanosecond, w.StepInterval())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		ok   bool
	}{
		{"empty", "", true},
		{"zero_iterations", "iterations: 0", false},
		{"negative_hz", "step_hz: -1", false},
		{"no_sub_steps", "max_sub_steps: 0", false},
		{"no_frame_buffer", "frame_buffer: 0", false},
		{"no_event_buffer", "event_buffer: 0", false},
		{"negative_friction", "default_contact_material: {friction: -1}", false},
		{"bad_level", "log_level: loud", false},
		{"warn_level", "log_level: WARN", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	_, err := Parse([]byte("gravity: {x: 1"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
}

func TestLevel(t *testing.T) {
	w := Default()
	assert.Equal(t, slog.LevelInfo, w.Level())
	w.LogLevel = "error"
	assert.Equal(t, slog.LevelError, w.Level())
	w.Debug = true
	assert.Equal(t, slog.LevelDebug, w.Level())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "world.yaml")
	require.NoError(t, os.WriteFile(path, []byte("iterations: 4\n"), 0o644))

	w, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, w.Iterations)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWatched(t *testing.T) {
	assert.True(t, Watched("scenes/stack.yaml"))
	assert.True(t, Watched("a/B.YML"))
	assert.True(t, Watched("scripts/row.tengo"))
	assert.False(t, Watched("main.go"))
}

func TestWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	path := filepath.Join(dir, "world.yaml")
	require.NoError(t, os.WriteFile(path, []byte("iterations: 2\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	select {
	case got := <-w.Events:
		assert.Equal(t, path, got)
	case <-time.After(2 * time.Second):
		t.Fatal("no event for world.yaml")
	}
}
