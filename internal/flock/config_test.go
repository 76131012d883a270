package flock

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_ValidateDefaults(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestConfig_ValidateRejects(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"zero width", func(c *Config) { c.Width = 0 }, "width"},
		{"negative height", func(c *Config) { c.Height = -1 }, "height"},
		{"negative boid count", func(c *Config) { c.NumBoids = -1 }, "num_boids"},
		{"zero vis range", func(c *Config) { c.VisRange = 0 }, "vis_range"},
		{"negative delay", func(c *Config) { c.DelaySeconds = -0.5 }, "delay"},
		{"zero trail capacity", func(c *Config) { c.MaxTrailLen = 0 }, "maxlen"},
		{"negative perception delay", func(c *Config) { c.PerceptionDelay = -1 }, "perceptionDelay"},
		{"zero max speed", func(c *Config) { c.MaxSpeed = 0 }, "maxSpeed"},
		{"min speed above max", func(c *Config) { c.MinSpeed = 99 }, "minSpeed"},
		{"unknown boundary", func(c *Config) { c.Boundary = "teleport" }, "policy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()

			require.Error(t, err)
			var ce *ConfigError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.wantField, ce.Field)
		})
	}
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_MergesOverDefaults(t *testing.T) {
	path := writeTempConfig(t, `{"numBoids": 42, "visRange": 120, "boundary": "bounce"}`)

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, 42, cfg.NumBoids)
	assert.Equal(t, 120.0, cfg.VisRange)
	assert.Equal(t, BoundaryBounce, cfg.Boundary)
	// Untouched fields keep the defaults.
	assert.Equal(t, 1024.0, cfg.Width)
	assert.Equal(t, 35, cfg.MaxTrailLen)
}

func TestLoadConfig_RejectsSchemaViolation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"negative width", `{"width": -10}`},
		{"unknown field", `{"speedOfLight": 3e8}`},
		{"wrong type", `{"numBoids": "many"}`},
		{"bad boundary", `{"boundary": "teleport"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempConfig(t, tt.content)

			_, err := LoadConfig(path)

			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadConfig_MalformedJSON(t *testing.T) {
	path := writeTempConfig(t, `{"numBoids": `)
	_, err := LoadConfig(path)
	assert.Error(t, err)
}
