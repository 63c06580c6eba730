package config

import "sort"

var Presets = map[string]*Config{
	"standard": {
		Timestep: 0.01, MaxIterations: 1000, ParticleCount: 100, Dimensions: 3,
		BoundarySize: 100.0, EnableCollisions: true, EnableGravity: true, GravityConstant: DefaultGravity,
	},
	"dense": {
		Timestep: 0.01, MaxIterations: 1000, ParticleCount: 500, Dimensions: 3,
		BoundarySize: 100.0, EnableCollisions: true, EnableGravity: true, GravityConstant: DefaultGravity,
	},
	"flat": {
		Timestep: 0.01, MaxIterations: 1000, ParticleCount: 100, Dimensions: 2,
		BoundarySize: 50.0, EnableCollisions: true, EnableGravity: true, GravityConstant: DefaultGravity,
	},
	"weightless": {
		Timestep: 0.01, MaxIterations: 2000, ParticleCount: 200, Dimensions: 3,
		BoundarySize: 100.0, EnableCollisions: true, EnableGravity: false,
	},
	"quick": {
		Timestep: 0.05, MaxIterations: 200, ParticleCount: 50, Dimensions: 3,
		BoundarySize: 100.0, EnableCollisions: true, EnableGravity: true, GravityConstant: DefaultGravity,
	},
	"moon": {
		Timestep: 0.01, MaxIterations: 1000, ParticleCount: 100, Dimensions: 3,
		BoundarySize: 100.0, EnableCollisions: true, EnableGravity: true, GravityConstant: 1.62,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	clone := *cfg
	return &clone
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
