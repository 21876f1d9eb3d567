package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "Playground", cfg.Window.Title)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.False(t, cfg.Window.VSync)
	assert.Zero(t, cfg.Window.Samples)
	assert.False(t, cfg.Window.Resizable)

	assert.Equal(t, float32(12), cfg.Player.Speed)
	assert.Equal(t, float32(2), cfg.Player.TurnRate)
	assert.Equal(t, float32(1), cfg.Player.MouseSensitivity)

	assert.Equal(t, [3]float32{4, 4, 4}, cfg.Camera.Position)
	assert.Equal(t, FogSpec{Start: 20, End: 48}, cfg.Camera.Fog)
	assert.Equal(t, float32(-1), cfg.Gizmos.DepthBias)
}

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
player:
  speed: 20
camera:
  position: [1, 2, 3]
  fog:
    end: 60
`))
	require.NoError(t, err)

	assert.Equal(t, float32(20), cfg.Player.Speed)
	assert.Equal(t, float32(2), cfg.Player.TurnRate, "untouched fields keep defaults")
	assert.Equal(t, [3]float32{1, 2, 3}, cfg.Camera.Position)
	assert.Equal(t, FogSpec{Start: 20, End: 60}, cfg.Camera.Fog)
	assert.Equal(t, "Playground", cfg.Window.Title)
}

func TestParseEmptyIsDefault(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"window", "window: {width: 0}", "window size"},
		{"fog", "camera: {fog: {start: 50, end: 10}}", "fog start"},
		{"bias", "gizmos: {depth_bias: -2}", "depth bias"},
		{"fov", "camera: {fov_degrees: 190}", "camera fov"},
		{"level", "log: {level: loud}", "log level"},
		{"format", "log: {format: xml}", "log format"},
		{"syntax", "player: [", "unmarshal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "playground.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gizmos: {line_width: 3}\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, float32(3), cfg.Gizmos.LineWidth)
}

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "playground.yaml")
	require.NoError(t, os.WriteFile(path, []byte("player: {speed: 12}\n"), 0o644))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	defer w.Close()

	// unrelated files in the same directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("player: {speed: 20}\n"), 0o644))

	select {
	case cfg := <-w.Configs:
		assert.Equal(t, float32(20), cfg.Player.Speed)
	case err := <-w.Errors:
		t.Fatalf("unexpected watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write")
	}
}

func TestWatcherReportsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "playground.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("gizmos: {depth_bias: 5}\n"), 0o644))

	select {
	case err := <-w.Errors:
		assert.Contains(t, err.Error(), "depth bias")
	case cfg := <-w.Configs:
		t.Fatalf("invalid file produced config %+v", cfg)
	case <-time.After(5 * time.Second):
		t.Fatal("no error after invalid write")
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "playground.yaml")
	w, err := NewWatcher(path)
	require.NoError(t, err)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	_, ok := <-w.Configs
	assert.False(t, ok)
}
