package flock

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed config_schema.json
var configSchema string

// Boundary policies. Wrap is the default: a boid leaving one edge reappears
// at the opposite edge, which keeps the flock visually inside a closed world.
// Bounce reflects the velocity component at the edge instead; it changes the
// emergent behavior near edges, so it is a config choice, not a constant.
const (
	BoundaryWrap   = "wrap"
	BoundaryBounce = "bounce"
)

type Config struct {
	// Arena dimensions
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// Population
	NumBoids int `json:"numBoids"`

	// Interaction radii
	VisRange       float64 `json:"visRange"`       // Perception radius
	ProtectedRange float64 `json:"protectedRange"` // Personal space radius

	// Rule weights
	SeparationWeight float64 `json:"separationWeight"`
	AlignmentWeight  float64 `json:"alignmentWeight"`
	CohesionWeight   float64 `json:"cohesionWeight"`

	// Physics
	MaxSpeed float64 `json:"maxSpeed"`
	MinSpeed float64 `json:"minSpeed"` // 0 disables the floor

	// Trail buffer capacity per boid (render only)
	MaxTrailLen int `json:"maxTrailLen"`

	// PerceptionDelay is the number of ticks by which each boid perceives the
	// others in the past. 0 means everyone reads the tick-start snapshot.
	PerceptionDelay int `json:"perceptionDelay"`

	// DelaySeconds is the pause between frames. Consumed by the outer loop,
	// never by Step itself.
	DelaySeconds float64 `json:"delaySeconds"`

	Boundary string `json:"boundary"`

	// WindStrength scales the optional noise-field drift. 0 disables it.
	WindStrength float64 `json:"windStrength"`

	// Seed for the simulation RNG. 0 means derive one from the clock.
	Seed int64 `json:"seed"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:            1024,
		Height:           768,
		NumBoids:         100,
		VisRange:         75,
		ProtectedRange:   20,
		SeparationWeight: 1.0,
		AlignmentWeight:  0.05,
		CohesionWeight:   0.005,
		MaxSpeed:         10,
		MinSpeed:         0,
		MaxTrailLen:      35,
		PerceptionDelay:  0,
		DelaySeconds:     1,
		Boundary:         BoundaryWrap,
		WindStrength:     0,
		Seed:             0,
	}
}

// Validate checks every parameter once, before the simulation is built.
// It returns a *ConfigError naming the offending field.
func (c *Config) Validate() error {
	switch {
	case c.Width <= 0:
		return &ConfigError{Field: "width", Reason: "must be positive"}
	case c.Height <= 0:
		return &ConfigError{Field: "height", Reason: "must be positive"}
	case c.NumBoids < 0:
		return &ConfigError{Field: "num_boids", Reason: "must not be negative"}
	case c.VisRange <= 0:
		return &ConfigError{Field: "vis_range", Reason: "must be positive"}
	case c.ProtectedRange < 0:
		return &ConfigError{Field: "protectedRange", Reason: "must not be negative"}
	case c.SeparationWeight < 0:
		return &ConfigError{Field: "separationWeight", Reason: "must not be negative"}
	case c.AlignmentWeight < 0:
		return &ConfigError{Field: "alignmentWeight", Reason: "must not be negative"}
	case c.CohesionWeight < 0:
		return &ConfigError{Field: "cohesionWeight", Reason: "must not be negative"}
	case c.MaxSpeed <= 0:
		return &ConfigError{Field: "maxSpeed", Reason: "must be positive"}
	case c.MinSpeed < 0:
		return &ConfigError{Field: "minSpeed", Reason: "must not be negative"}
	case c.MinSpeed > c.MaxSpeed:
		return &ConfigError{Field: "minSpeed", Reason: "must not exceed maxSpeed"}
	case c.MaxTrailLen < 1:
		return &ConfigError{Field: "maxlen", Reason: "must be at least 1"}
	case c.PerceptionDelay < 0:
		return &ConfigError{Field: "perceptionDelay", Reason: "must not be negative"}
	case c.DelaySeconds < 0:
		return &ConfigError{Field: "delay", Reason: "must not be negative"}
	case c.WindStrength < 0:
		return &ConfigError{Field: "windStrength", Reason: "must not be negative"}
	case c.Boundary != BoundaryWrap && c.Boundary != BoundaryBounce:
		return &ConfigError{Field: "policy", Reason: "must be wrap or bounce"}
	}
	return nil
}

// LoadConfig reads a JSON configuration file, validates it against the
// embedded schema and merges it over the defaults.
func LoadConfig(configFile string) (*Config, error) {
	sch, err := jsonschema.CompileString("config_schema.json", configSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var v interface{}
	if err := json.NewDecoder(bytes.NewReader(b)).Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
