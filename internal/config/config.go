package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"voxelsim/internal/block"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// EnvPath names the environment variable consulted when Load gets no path.
const EnvPath = "VOXELSIM_CONFIG"

// Config is the root configuration.
type Config struct {
	World   World   `yaml:"world"`
	Physics Physics `yaml:"physics"`
	Player  Player  `yaml:"player"`
	Frame   Frame   `yaml:"frame"`
	Metrics Metrics `yaml:"metrics"`
}

// World holds generation and streaming parameters.
type World struct {
	Seed         int64         `yaml:"seed"`
	DrawDistance int           `yaml:"drawDistance"` // Chebyshev radius in chunks
	AsyncLoading bool          `yaml:"asyncLoading"`
	AsyncTimeout time.Duration `yaml:"asyncTimeout"` // max wait before a queued chunk is forced
	Chunk        ChunkSize     `yaml:"chunk"`
	Generator    string        `yaml:"generator"` // "terrain" or "flat"
	FlatHeight   int           `yaml:"flatHeight"`
	Noise        string        `yaml:"noise"` // "simplex" or "perlin"
	Terrain      Terrain       `yaml:"terrain"`
	Resources    []Resource    `yaml:"resources"`
}

type ChunkSize struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Terrain shapes the height field: height = H*(offset + magnitude*noise).
type Terrain struct {
	Scale     float64 `yaml:"scale"`
	Offset    float64 `yaml:"offset"`
	Magnitude float64 `yaml:"magnitude"`
}

// Resource configures one stone/ore kind of the resource pass.
type Resource struct {
	Kind     string      `yaml:"kind"`
	Scale    block.Scale `yaml:"scale"`
	Scarcity float64     `yaml:"scarcity"`
}

type Physics struct {
	SimulationRate float64 `yaml:"simulationRate"` // substeps per second
	Gravity        float64 `yaml:"gravity"`
}

type Player struct {
	Spawn     [3]float64 `yaml:"spawn"`
	Radius    float64    `yaml:"radius"`
	Height    float64    `yaml:"height"`
	MaxSpeed  float64    `yaml:"maxSpeed"`
	JumpSpeed float64    `yaml:"jumpSpeed"`
}

// Frame controls the headless frame loop.
type Frame struct {
	FPSLimit   int           `yaml:"fpsLimit"` // 0 disables limiting
	IdleBudget time.Duration `yaml:"idleBudget"`
	SlowFrame  time.Duration `yaml:"slowFrame"`
}

type Metrics struct {
	Addr string `yaml:"addr"` // empty disables the /metrics listener
}

const (
	GeneratorTerrain = "terrain"
	GeneratorFlat    = "flat"
)

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		World: World{
			Seed:         0,
			DrawDistance: 8,
			AsyncLoading: true,
			AsyncTimeout: time.Second,
			Chunk:        ChunkSize{Width: 16, Height: 16},
			Generator:    GeneratorTerrain,
			FlatHeight:   4,
			Noise:        "simplex",
			Terrain:      Terrain{Scale: 50, Offset: 0.4, Magnitude: 0.2},
			Resources:    DefaultResources(),
		},
		Physics: Physics{SimulationRate: 200, Gravity: 32},
		Player: Player{
			Spawn:     [3]float64{32, 16, 32},
			Radius:    0.5,
			Height:    1.75,
			MaxSpeed:  10,
			JumpSpeed: 10,
		},
		Frame: Frame{
			FPSLimit:   60,
			IdleBudget: 4 * time.Millisecond,
			SlowFrame:  16 * time.Millisecond,
		},
	}
}

// DefaultResources converts block.DefaultResources to config form.
func DefaultResources() []Resource {
	def := block.DefaultResources()
	out := make([]Resource, len(def))
	for i, r := range def {
		out[i] = Resource{Kind: r.Kind.String(), Scale: r.Scale, Scarcity: r.Scarcity}
	}
	return out
}

// Load reads a YAML file over the defaults.
// If path == "", it tries env VOXELSIM_CONFIG and otherwise returns defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvPath)
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.World.Validate(); err != nil {
		return err
	}
	if err := c.Physics.Validate(); err != nil {
		return err
	}
	if err := c.Player.Validate(); err != nil {
		return err
	}
	if c.Frame.FPSLimit < 0 || c.Frame.IdleBudget < 0 {
		return invalid("frame limits must not be negative")
	}
	return nil
}

// Validate rejects world settings that would break generation or streaming.
func (w World) Validate() error {
	if w.DrawDistance < 0 {
		return invalid("drawDistance %d is negative", w.DrawDistance)
	}
	if w.Chunk.Width <= 0 || w.Chunk.Height <= 0 {
		return invalid("chunk size %dx%d must be positive", w.Chunk.Width, w.Chunk.Height)
	}
	if w.AsyncLoading && w.AsyncTimeout <= 0 {
		return invalid("asyncTimeout must be positive when asyncLoading is set")
	}
	switch w.Noise {
	case "", "simplex", "perlin":
	default:
		return invalid("unknown noise %q", w.Noise)
	}
	switch w.Generator {
	case "", GeneratorTerrain:
		if w.Terrain.Scale == 0 {
			return invalid("terrain scale must be non-zero")
		}
	case GeneratorFlat:
		if w.FlatHeight < 0 || w.FlatHeight >= w.Chunk.Height {
			return invalid("flatHeight %d outside [0,%d)", w.FlatHeight, w.Chunk.Height)
		}
	default:
		return invalid("unknown generator %q", w.Generator)
	}
	for i, r := range w.Resources {
		kind, ok := block.ParseKind(r.Kind)
		if !ok || !kind.IsResource() {
			return invalid("resources[%d]: %q is not a resource kind", i, r.Kind)
		}
		if r.Scarcity <= 0 || r.Scarcity >= 1 {
			return invalid("resources[%d]: scarcity %v outside (0,1)", i, r.Scarcity)
		}
		if r.Scale.X == 0 || r.Scale.Y == 0 || r.Scale.Z == 0 {
			return invalid("resources[%d]: scale components must be non-zero", i)
		}
	}
	return nil
}

// BlockResources returns the resource table in declared order.
// It assumes Validate has passed; unknown kinds are skipped.
func (w World) BlockResources() []block.Resource {
	out := make([]block.Resource, 0, len(w.Resources))
	for _, r := range w.Resources {
		kind, ok := block.ParseKind(r.Kind)
		if !ok {
			continue
		}
		out = append(out, block.Resource{Kind: kind, Scale: r.Scale, Scarcity: r.Scarcity})
	}
	return out
}

func (p Physics) Validate() error {
	if p.SimulationRate <= 0 {
		return invalid("simulationRate %v must be positive", p.SimulationRate)
	}
	if p.Gravity < 0 {
		return invalid("gravity %v is negative", p.Gravity)
	}
	return nil
}

func (p Player) Validate() error {
	if p.Radius <= 0 || p.Height <= 0 {
		return invalid("player radius and height must be positive")
	}
	if p.MaxSpeed < 0 || p.JumpSpeed < 0 {
		return invalid("player speeds must not be negative")
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}
