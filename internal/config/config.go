package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultSourceURL   = "http://localhost:8787"
	DefaultSizeTier    = "medium"
	DefaultSyncSeconds = 10.0
	DefaultFrameRate   = 30
)

type Config struct {
	SourceURL   string  `yaml:"source_url"`
	Event       string  `yaml:"event"`
	SizeTier    string  `yaml:"size_tier"`
	SyncSeconds float64 `yaml:"sync_interval"`
	FrameRate   int     `yaml:"frame_rate"`
	DataDir     string  `yaml:"data_dir"`
	LogFile     string  `yaml:"log_file"`

	Physics PhysicsConfig `yaml:"physics"`
	Input   InputConfig   `yaml:"input"`
}

type PhysicsConfig struct {
	Damping           float64 `yaml:"damping"`
	Restitution       float64 `yaml:"restitution"`
	SeparationImpulse float64 `yaml:"separation_impulse"`
	JitterEpsilon     float64 `yaml:"jitter_epsilon"`
	JitterSpeed       float64 `yaml:"jitter_speed"`
	SpawnSpeed        float64 `yaml:"spawn_speed"`
}

type InputConfig struct {
	ClickDistance   float64 `yaml:"click_distance"`
	ClickTimeMs     float64 `yaml:"click_time_ms"`
	ThrowMultiplier float64 `yaml:"throw_multiplier"`
	MaxThrowSpeed   float64 `yaml:"max_throw_speed"`
}

// ClickTime is the press-duration threshold for click classification.
func (c InputConfig) ClickTime() time.Duration {
	return time.Duration(c.ClickTimeMs * float64(time.Millisecond))
}

func DefaultConfig() *Config {
	return &Config{
		SourceURL:   DefaultSourceURL,
		SizeTier:    DefaultSizeTier,
		SyncSeconds: DefaultSyncSeconds,
		FrameRate:   DefaultFrameRate,
		DataDir:     ".photowall",
		LogFile:     "photowall.log",
		Physics: PhysicsConfig{
			Damping:           0.99,
			Restitution:       0.8,
			SeparationImpulse: 0.12,
			JitterEpsilon:     0.02,
			JitterSpeed:       0.25,
			SpawnSpeed:        0.5,
		},
		Input: InputConfig{
			ClickDistance:   10,
			ClickTimeMs:     300,
			ThrowMultiplier: 1.5,
			MaxThrowSpeed:   15,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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
	if _, _, err := tileSize(c.SizeTier); err != nil {
		return err
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("frame_rate must be positive, got %d", c.FrameRate)
	}
	if c.SyncSeconds <= 0 {
		return fmt.Errorf("sync_interval must be positive, got %f", c.SyncSeconds)
	}
	if c.Physics.Damping <= 0 || c.Physics.Damping > 1 {
		return fmt.Errorf("damping must be in (0, 1], got %f", c.Physics.Damping)
	}
	if c.Physics.Restitution < 0 || c.Physics.Restitution > 1 {
		return fmt.Errorf("restitution must be in [0, 1], got %f", c.Physics.Restitution)
	}
	return nil
}

// SyncEvery is the record sync interval as a duration.
func (c *Config) SyncEvery() time.Duration {
	return time.Duration(c.SyncSeconds * float64(time.Second))
}

// TileSize maps the configured size tier to fixed tile dimensions in cells.
// The tier is set once at session start and never changes mid-session.
func (c *Config) TileSize() (float64, float64) {
	w, h, err := tileSize(c.SizeTier)
	if err != nil {
		w, h, _ = tileSize(DefaultSizeTier)
	}
	return w, h
}

func tileSize(tier string) (float64, float64, error) {
	switch tier {
	case "small":
		return 8, 4, nil
	case "medium":
		return 12, 5, nil
	case "large":
		return 16, 7, nil
	default:
		return 0, 0, fmt.Errorf("unknown size tier %q (want small, medium or large)", tier)
	}
}
