package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth      = 1080
	DefaultHeight     = 1080
	DefaultRingCount  = 30
	DefaultRingGap    = 2.0
	DefaultDotGap     = 2.0
	DefaultDotRadius  = 12.0
	DefaultFPS        = 60
	DefaultHitRadius  = 20.0
	DefaultPointSize  = 10.0
	DefaultCurveWidth = 4.0
	DefaultGuideWidth = 1.0
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid value")

type ForceMode string

const (
	// ForceExclusive lets an active push overwrite the pull for that tick.
	ForceExclusive ForceMode = "exclusive"
	// ForceSum adds push and pull as independent contributions.
	ForceSum ForceMode = "sum"
)

type Config struct {
	Canvas  CanvasConfig  `yaml:"canvas"`
	Layout  LayoutConfig  `yaml:"layout"`
	Physics PhysicsConfig `yaml:"physics"`
	Curve   CurveConfig   `yaml:"curve"`
	Image   string        `yaml:"image"`
	Seed    int64         `yaml:"seed"`
	FPS     int           `yaml:"fps"`
}

type CanvasConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Background string `yaml:"background"`
	ShowImage  bool   `yaml:"show_image"`
}

type LayoutConfig struct {
	RingCount int     `yaml:"ring_count"`
	RingGap   float64 `yaml:"ring_gap"`
	DotGap    float64 `yaml:"dot_gap"`
	DotRadius float64 `yaml:"dot_radius"`
	// DecaySpacing spaces rings by the eased dot radius instead of the base one.
	DecaySpacing bool `yaml:"decay_spacing"`
}

// Range is a half-open interval [Min, Max) sampled uniformly.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

type PhysicsConfig struct {
	MinDist   Range     `yaml:"min_dist"`
	Push      Range     `yaml:"push"`
	Pull      Range     `yaml:"pull"`
	Damping   Range     `yaml:"damping"`
	ForceMode ForceMode `yaml:"force_mode"`
}

type CurveConfig struct {
	Background  string       `yaml:"background"`
	HitRadius   float64      `yaml:"hit_radius"`
	PointRadius float64      `yaml:"point_radius"`
	CurveWidth  float64      `yaml:"curve_width"`
	GuideWidth  float64      `yaml:"guide_width"`
	Seeds       [][2]float64 `yaml:"seeds"`
}

func DefaultPhysics() PhysicsConfig {
	return PhysicsConfig{
		MinDist:   Range{100, 200},
		Push:      Range{0.01, 0.02},
		Pull:      Range{0.002, 0.006},
		Damping:   Range{0.90, 0.95},
		ForceMode: ForceExclusive,
	}
}

func DefaultLayout() LayoutConfig {
	return LayoutConfig{
		RingCount: DefaultRingCount,
		RingGap:   DefaultRingGap,
		DotGap:    DefaultDotGap,
		DotRadius: DefaultDotRadius,
	}
}

func DefaultCurve() CurveConfig {
	return CurveConfig{
		Background:  "#ffffff",
		HitRadius:   DefaultHitRadius,
		PointRadius: DefaultPointSize,
		CurveWidth:  DefaultCurveWidth,
		GuideWidth:  DefaultGuideWidth,
		Seeds: [][2]float64{
			{200, 540},
			{400, 700},
			{880, 540},
			{600, 700},
			{640, 900},
		},
	}
}

func DefaultConfig() *Config {
	return &Config{
		Canvas: CanvasConfig{
			Width:      DefaultWidth,
			Height:     DefaultHeight,
			Background: "#000000",
			ShowImage:  true,
		},
		Layout:  DefaultLayout(),
		Physics: DefaultPhysics(),
		Curve:   DefaultCurve(),
		Seed:    1,
		FPS:     DefaultFPS,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
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

func (c *Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("%w: canvas %dx%d", ErrInvalid, c.Canvas.Width, c.Canvas.Height)
	}
	if c.Layout.RingCount < 1 {
		return fmt.Errorf("%w: ring_count must be at least 1, got %d", ErrInvalid, c.Layout.RingCount)
	}
	if c.Layout.DotRadius <= 0 {
		return fmt.Errorf("%w: dot_radius must be positive, got %f", ErrInvalid, c.Layout.DotRadius)
	}
	if 2*c.Layout.DotRadius+c.Layout.DotGap <= 0 {
		return fmt.Errorf("%w: dot spacing must be positive", ErrInvalid)
	}
	for name, r := range map[string]Range{
		"min_dist": c.Physics.MinDist,
		"push":     c.Physics.Push,
		"pull":     c.Physics.Pull,
		"damping":  c.Physics.Damping,
	} {
		if r.Min > r.Max || r.Min < 0 {
			return fmt.Errorf("%w: physics.%s range [%f, %f)", ErrInvalid, name, r.Min, r.Max)
		}
	}
	if c.Physics.Damping.Max >= 1 || c.Physics.Damping.Min <= 0 {
		return fmt.Errorf("%w: damping must lie inside (0, 1)", ErrInvalid)
	}
	switch c.Physics.ForceMode {
	case ForceExclusive, ForceSum:
	case "":
		c.Physics.ForceMode = ForceExclusive
	default:
		return fmt.Errorf("%w: force_mode %q", ErrInvalid, c.Physics.ForceMode)
	}
	if c.Curve.HitRadius <= 0 {
		return fmt.Errorf("%w: hit_radius must be positive", ErrInvalid)
	}
	if len(c.Curve.Seeds) == 0 {
		return fmt.Errorf("%w: curve needs at least one seed point", ErrInvalid)
	}
	if c.FPS <= 0 {
		c.FPS = DefaultFPS
	}
	return nil
}

// Sample draws a value from r using rnd, a uniform source in [0, 1).
func (r Range) Sample(rnd func() float64) float64 {
	return r.Min + rnd()*(r.Max-r.Min)
}

func (r Range) Contains(v float64) bool {
	if r.Min == r.Max {
		return v == r.Min
	}
	return v >= r.Min && v < r.Max
}
