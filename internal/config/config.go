package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gbusto/overseer/internal/noise"
)

// ErrInvalid marks configuration validation failures so callers can tell bad
// parameters apart from generator faults.
var ErrInvalid = errors.New("invalid configuration")

// Config captures every tunable of a map generation run. One Config plus its
// seed fully determines the artifact.
type Config struct {
	Seed    int64         `yaml:"seed"`
	Radius  int           `yaml:"radius"`
	Noise   NoiseConfig   `yaml:"noise"`
	Terrain TerrainConfig `yaml:"terrain"`
	Dome    DomeConfig    `yaml:"dome"`
	Scatter ScatterConfig `yaml:"scatter"`
}

type NoiseConfig struct {
	Algorithm string `yaml:"algorithm"` // "perlin" or "opensimplex"
}

// FieldConfig shapes one coherent noise field.
type FieldConfig struct {
	Scale       float64 `yaml:"scale"`
	Octaves     int     `yaml:"octaves"`
	Persistence float64 `yaml:"persistence"`
	Lacunarity  float64 `yaml:"lacunarity"`
}

// Params converts the field configuration into noise parameters.
func (f FieldConfig) Params() noise.Params {
	return noise.Params{
		Scale:       f.Scale,
		Octaves:     f.Octaves,
		Persistence: f.Persistence,
		Lacunarity:  f.Lacunarity,
	}
}

// MacroFieldConfig adds the blend weight of the large-scale elevation field.
type MacroFieldConfig struct {
	FieldConfig `yaml:",inline"`
	Influence   float64 `yaml:"influence"`
}

type TerrainConfig struct {
	MinHeight      int              `yaml:"min_height"`
	MaxHeight      int              `yaml:"max_height"`
	WaterThreshold int              `yaml:"water_threshold"`
	Micro          FieldConfig      `yaml:"micro"`
	Macro          MacroFieldConfig `yaml:"macro"`
	Patch          FieldConfig      `yaml:"patch"`
}

type DomeConfig struct {
	Height       int `yaml:"height"`
	WallHeight   int `yaml:"wall_height"`
	SkipRows     int `yaml:"skip_rows"`
	MinPanels    int `yaml:"min_panels"`
	MaxPanels    int `yaml:"max_panels"`
	MinPanelSize int `yaml:"min_panel_size"`
	MaxPanelSize int `yaml:"max_panel_size"`
}

type ScatterConfig struct {
	Density float64       `yaml:"density"`
	Cluster FieldConfig   `yaml:"cluster"`
	Models  []ModelConfig `yaml:"models"`
}

type ModelConfig struct {
	URI      string  `yaml:"uri"`
	Name     string  `yaml:"name"`
	MinScale float64 `yaml:"min_scale"`
	MaxScale float64 `yaml:"max_scale"`
}

// Load reads configuration from a YAML file if provided. An empty path
// returns defaults. Partial files override only the keys they set.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Default returns the arena parameters shipped with the game: a 50 block
// radius disk under a 50 block dome.
func Default() *Config {
	return &Config{
		Seed:   42,
		Radius: 50,
		Noise: NoiseConfig{
			Algorithm: string(noise.AlgorithmPerlin),
		},
		Terrain: TerrainConfig{
			MinHeight:      0,
			MaxHeight:      5,
			WaterThreshold: 2,
			Micro: FieldConfig{
				Scale:       0.05,
				Octaves:     4,
				Persistence: 0.5,
				Lacunarity:  2.0,
			},
			Macro: MacroFieldConfig{
				FieldConfig: FieldConfig{
					Scale:       0.01,
					Octaves:     2,
					Persistence: 0.5,
					Lacunarity:  2.0,
				},
				Influence: 1.5,
			},
			Patch: FieldConfig{
				Scale:       0.1,
				Octaves:     1,
				Persistence: 0.5,
				Lacunarity:  2.0,
			},
		},
		Dome: DomeConfig{
			Height:       50,
			WallHeight:   4,
			SkipRows:     12,
			MinPanels:    20,
			MaxPanels:    25,
			MinPanelSize: 8,
			MaxPanelSize: 12,
		},
		Scatter: ScatterConfig{
			Density: 0.02,
			Cluster: FieldConfig{
				Scale:       0.03,
				Octaves:     1,
				Persistence: 0.5,
				Lacunarity:  2.0,
			},
			Models: []ModelConfig{
				{URI: "models/environment/voidtree.gltf", MinScale: 0.8, MaxScale: 1.6},
				{URI: "models/environment/shadowshroom.gltf", MinScale: 0.5, MaxScale: 1.1},
			},
		},
	}
}

// Validate checks the configuration and reports the first violation, wrapped
// in ErrInvalid.
func (c *Config) Validate() error {
	if c.Radius < 1 {
		return fmt.Errorf("%w: radius must be at least 1, got %d", ErrInvalid, c.Radius)
	}
	switch noise.Algorithm(c.Noise.Algorithm) {
	case noise.AlgorithmPerlin, noise.AlgorithmOpenSimplex, "":
	default:
		return fmt.Errorf("%w: noise.algorithm must be %q or %q, got %q",
			ErrInvalid, noise.AlgorithmPerlin, noise.AlgorithmOpenSimplex, c.Noise.Algorithm)
	}

	if c.Terrain.MinHeight < 0 {
		return fmt.Errorf("%w: terrain.min_height cannot be negative, got %d", ErrInvalid, c.Terrain.MinHeight)
	}
	if c.Terrain.MaxHeight < c.Terrain.MinHeight {
		return fmt.Errorf("%w: terrain.max_height must be >= terrain.min_height", ErrInvalid)
	}
	if err := c.Terrain.Micro.validate("terrain.micro"); err != nil {
		return err
	}
	if err := c.Terrain.Macro.FieldConfig.validate("terrain.macro"); err != nil {
		return err
	}
	if c.Terrain.Macro.Influence < 0 {
		return fmt.Errorf("%w: terrain.macro.influence cannot be negative", ErrInvalid)
	}
	if err := c.Terrain.Patch.validate("terrain.patch"); err != nil {
		return err
	}

	if c.Dome.Height < 1 {
		return fmt.Errorf("%w: dome.height must be at least 1, got %d", ErrInvalid, c.Dome.Height)
	}
	if c.Dome.WallHeight < 0 {
		return fmt.Errorf("%w: dome.wall_height cannot be negative", ErrInvalid)
	}
	if c.Dome.SkipRows < 0 {
		return fmt.Errorf("%w: dome.skip_rows cannot be negative", ErrInvalid)
	}
	if c.Dome.MinPanels < 0 {
		return fmt.Errorf("%w: dome.min_panels cannot be negative", ErrInvalid)
	}
	if c.Dome.MaxPanels < c.Dome.MinPanels {
		return fmt.Errorf("%w: dome.max_panels must be >= dome.min_panels", ErrInvalid)
	}
	if c.Dome.MaxPanels > 0 {
		if c.Dome.MinPanelSize < 1 {
			return fmt.Errorf("%w: dome.min_panel_size must be at least 1", ErrInvalid)
		}
		if c.Dome.MaxPanelSize < c.Dome.MinPanelSize {
			return fmt.Errorf("%w: dome.max_panel_size must be >= dome.min_panel_size", ErrInvalid)
		}
	}

	if c.Scatter.Density < 0 || c.Scatter.Density > 1 {
		return fmt.Errorf("%w: scatter.density must be within [0, 1], got %g", ErrInvalid, c.Scatter.Density)
	}
	if len(c.Scatter.Models) > 0 {
		if err := c.Scatter.Cluster.validate("scatter.cluster"); err != nil {
			return err
		}
	}
	for i, m := range c.Scatter.Models {
		if m.URI == "" {
			return fmt.Errorf("%w: scatter.models[%d].uri must be set", ErrInvalid, i)
		}
		if m.MinScale <= 0 {
			return fmt.Errorf("%w: scatter.models[%d].min_scale must be positive", ErrInvalid, i)
		}
		if m.MaxScale < m.MinScale {
			return fmt.Errorf("%w: scatter.models[%d].max_scale must be >= min_scale", ErrInvalid, i)
		}
	}
	return nil
}

func (f FieldConfig) validate(path string) error {
	if f.Scale <= 0 {
		return fmt.Errorf("%w: %s.scale must be positive, got %g", ErrInvalid, path, f.Scale)
	}
	if f.Octaves < 1 {
		return fmt.Errorf("%w: %s.octaves must be at least 1, got %d", ErrInvalid, path, f.Octaves)
	}
	if f.Persistence <= 0 {
		return fmt.Errorf("%w: %s.persistence must be positive, got %g", ErrInvalid, path, f.Persistence)
	}
	if f.Lacunarity <= 0 {
		return fmt.Errorf("%w: %s.lacunarity must be positive, got %g", ErrInvalid, path, f.Lacunarity)
	}
	return nil
}
