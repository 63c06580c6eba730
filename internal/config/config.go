package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultTimestep      = 0.01
	DefaultMaxIterations = 1000
	DefaultParticleCount = 100
	DefaultDimensions    = 3
	DefaultBoundarySize  = 100.0
	DefaultGravity       = 9.81
)

// Config holds every tunable simulation parameter. Values are merged from
// defaults, preset, yaml file, and CLI flags, in that order.
type Config struct {
	Timestep         float64 `yaml:"timestep"`
	MaxIterations    int     `yaml:"max_iterations"`
	ParticleCount    int     `yaml:"particle_count"`
	Dimensions       int     `yaml:"dimensions"`
	BoundarySize     float64 `yaml:"boundary_size"`
	EnableCollisions bool    `yaml:"enable_collisions"`
	EnableGravity    bool    `yaml:"enable_gravity"`
	GravityConstant  float64 `yaml:"gravity_constant"`
	StatsInterval    int     `yaml:"stats_interval"`
	Seed             int64   `yaml:"seed"`
}

// ConfigError reports an unknown parameter key or a value outside its valid
// range. The config it was applied to is left untouched.
type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Key, e.Reason)
}

func Default() *Config {
	return &Config{
		Timestep:         DefaultTimestep,
		MaxIterations:    DefaultMaxIterations,
		ParticleCount:    DefaultParticleCount,
		Dimensions:       DefaultDimensions,
		BoundarySize:     DefaultBoundarySize,
		EnableCollisions: true,
		EnableGravity:    true,
		GravityConstant:  DefaultGravity,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Update merges the supplied overrides after validating every key and value.
// Keys use their yaml names. The update is atomic: on any error the receiver
// is unchanged.
func (c *Config) Update(overrides map[string]any) error {
	next := *c
	for key, value := range overrides {
		if err := next.set(key, value); err != nil {
			return err
		}
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

func (c *Config) set(key string, value any) error {
	switch key {
	case "timestep":
		v, ok := toFloat(value)
		if !ok || v <= 0 {
			return &ConfigError{Key: key, Reason: fmt.Sprintf("want positive number, got %v", value)}
		}
		c.Timestep = v
	case "max_iterations":
		v, ok := toInt(value)
		if !ok || v <= 0 {
			return &ConfigError{Key: key, Reason: fmt.Sprintf("want positive integer, got %v", value)}
		}
		c.MaxIterations = v
	case "particle_count":
		v, ok := toInt(value)
		if !ok || v <= 0 {
			return &ConfigError{Key: key, Reason: fmt.Sprintf("want positive integer, got %v", value)}
		}
		c.ParticleCount = v
	case "dimensions":
		v, ok := toInt(value)
		if !ok || (v != 2 && v != 3) {
			return &ConfigError{Key: key, Reason: fmt.Sprintf("want 2 or 3, got %v", value)}
		}
		c.Dimensions = v
	case "boundary_size":
		v, ok := toFloat(value)
		if !ok || v <= 0 {
			return &ConfigError{Key: key, Reason: fmt.Sprintf("want positive number, got %v", value)}
		}
		c.BoundarySize = v
	case "enable_collisions":
		v, ok := value.(bool)
		if !ok {
			return &ConfigError{Key: key, Reason: fmt.Sprintf("want bool, got %v", value)}
		}
		c.EnableCollisions = v
	case "enable_gravity":
		v, ok := value.(bool)
		if !ok {
			return &ConfigError{Key: key, Reason: fmt.Sprintf("want bool, got %v", value)}
		}
		c.EnableGravity = v
	case "gravity_constant":
		v, ok := toFloat(value)
		if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
			return &ConfigError{Key: key, Reason: fmt.Sprintf("want finite number, got %v", value)}
		}
		c.GravityConstant = v
	case "stats_interval":
		v, ok := toInt(value)
		if !ok || v < 0 {
			return &ConfigError{Key: key, Reason: fmt.Sprintf("want non-negative integer, got %v", value)}
		}
		c.StatsInterval = v
	case "seed":
		v, ok := toInt(value)
		if !ok {
			return &ConfigError{Key: key, Reason: fmt.Sprintf("want integer, got %v", value)}
		}
		c.Seed = int64(v)
	default:
		return &ConfigError{Key: key, Reason: "unknown parameter"}
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Timestep <= 0 {
		return &ConfigError{Key: "timestep", Reason: fmt.Sprintf("must be positive, got %g", c.Timestep)}
	}
	if c.MaxIterations <= 0 {
		return &ConfigError{Key: "max_iterations", Reason: fmt.Sprintf("must be positive, got %d", c.MaxIterations)}
	}
	if c.ParticleCount <= 0 {
		return &ConfigError{Key: "particle_count", Reason: fmt.Sprintf("must be positive, got %d", c.ParticleCount)}
	}
	if c.Dimensions != 2 && c.Dimensions != 3 {
		return &ConfigError{Key: "dimensions", Reason: fmt.Sprintf("must be 2 or 3, got %d", c.Dimensions)}
	}
	if c.BoundarySize <= 0 {
		return &ConfigError{Key: "boundary_size", Reason: fmt.Sprintf("must be positive, got %g", c.BoundarySize)}
	}
	if math.IsNaN(c.GravityConstant) || math.IsInf(c.GravityConstant, 0) {
		return &ConfigError{Key: "gravity_constant", Reason: "must be finite"}
	}
	if c.StatsInterval < 0 {
		return &ConfigError{Key: "stats_interval", Reason: fmt.Sprintf("must be non-negative, got %d", c.StatsInterval)}
	}
	return nil
}

// Interval resolves the effective statistics interval: an explicit
// stats_interval wins, otherwise a fifth of the run.
func (c *Config) Interval() int {
	if c.StatsInterval > 0 {
		return c.StatsInterval
	}
	interval := c.MaxIterations / 5
	if interval < 1 {
		interval = 1
	}
	return interval
}

func (c *Config) Describe() string {
	return fmt.Sprintf(
		"timestep:          %g\n"+
			"max_iterations:    %d\n"+
			"particle_count:    %d\n"+
			"dimensions:        %d\n"+
			"boundary_size:     %g\n"+
			"enable_collisions: %t\n"+
			"enable_gravity:    %t\n"+
			"gravity_constant:  %g\n"+
			"stats_interval:    %d\n"+
			"seed:              %d",
		c.Timestep, c.MaxIterations, c.ParticleCount, c.Dimensions,
		c.BoundarySize, c.EnableCollisions, c.EnableGravity,
		c.GravityConstant, c.StatsInterval, c.Seed,
	)
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v == math.Trunc(v) {
			return int(v), true
		}
	}
	return 0, false
}
