// Package config handles culling configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/sectorcull/internal/engine/lighting"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all culling settings.
type Config struct {
	Grid    GridConfig    `yaml:"grid"`
	Culling CullingConfig `yaml:"culling"`
	Lights  []LightConfig `yaml:"lights"`
	Logging LoggingConfig `yaml:"logging"`
}

// GridConfig describes the lightmap grid.
type GridConfig struct {
	Origin   [3]float64 `yaml:"origin"`    // Minimum corner
	CellSize float64    `yaml:"cell_size"` // Edge length of a cubic cell
	Dims     [3]int     `yaml:"dims"`      // Cells per axis
}

// CullingConfig holds culling pass settings.
type CullingConfig struct {
	Workers int           `yaml:"workers"` // 0 = one per CPU
	Timeout time.Duration `yaml:"timeout"` // 0 = no limit
}

// LightConfig is a spot light as written in a config file.
// Direction wins over Yaw/Pitch when set.
type LightConfig struct {
	Name       string     `yaml:"name"`
	Position   [3]float32 `yaml:"position"`
	Direction  []float32  `yaml:"direction,omitempty"`
	Yaw        float32    `yaml:"yaw"`
	Pitch      float32    `yaml:"pitch"`
	Color      [3]float32 `yaml:"color"`
	Range      float32    `yaml:"range"`
	OuterAngle float32    `yaml:"outer_angle"` // Degrees
	Intensity  float32    `yaml:"intensity"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Grid: GridConfig{
			Origin:   [3]float64{-32, 0, -32},
			CellSize: 2,
			Dims:     [3]int{32, 8, 32},
		},
		Culling: CullingConfig{
			Workers: 0,
			Timeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// SpotLight converts the entry to a lighting.SpotLight.
func (l LightConfig) SpotLight() (lighting.SpotLight, error) {
	var dir mgl32.Vec3
	switch len(l.Direction) {
	case 0:
		dir = lighting.SpotDirection(l.Yaw, l.Pitch)
	case 3:
		dir = mgl32.Vec3{l.Direction[0], l.Direction[1], l.Direction[2]}
	default:
		return lighting.SpotLight{}, fmt.Errorf("%w: light %q direction needs 3 components, got %d",
			ErrInvalid, l.Name, len(l.Direction))
	}

	return lighting.SpotLight{
		Position:   mgl32.Vec3(l.Position),
		Direction:  dir,
		Color:      l.Color,
		Range:      l.Range,
		OuterAngle: l.OuterAngle,
		Intensity:  l.Intensity,
	}.Sanitize(), nil
}

// SpotLights converts all configured lights.
func (c *Config) SpotLights() ([]lighting.SpotLight, error) {
	lights := make([]lighting.SpotLight, 0, len(c.Lights))
	for _, lc := range c.Lights {
		l, err := lc.SpotLight()
		if err != nil {
			return nil, err
		}
		lights = append(lights, l)
	}
	return lights, nil
}

// Validate checks grid and culling settings.
func (c *Config) Validate() error {
	if c.Grid.CellSize <= 0 {
		return fmt.Errorf("%w: grid.cell_size must be positive, got %g", ErrInvalid, c.Grid.CellSize)
	}
	for axis, n := range c.Grid.Dims {
		if n <= 0 {
			return fmt.Errorf("%w: grid.dims[%d] must be positive, got %d", ErrInvalid, axis, n)
		}
	}
	if c.Culling.Workers < 0 {
		return fmt.Errorf("%w: culling.workers must not be negative", ErrInvalid)
	}
	if c.Culling.Timeout < 0 {
		return fmt.Errorf("%w: culling.timeout must not be negative", ErrInvalid)
	}
	return nil
}
