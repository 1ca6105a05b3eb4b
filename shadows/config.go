package shadows

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Carmen-Shannon/oxy-shadows/engine/renderer"
	"github.com/pelletier/go-toml/v2"
)

// DefaultBakedShadowPath is the baked shadow image applied to the ground plane.
const DefaultBakedShadowPath = "examples/assets/textures/bakedShadow.png"

// Plane material choices.
const (
	PlaneMaterialBasic    = "basic"
	PlaneMaterialStandard = "standard"
)

// Config is the application configuration. DefaultConfig holds the demo's literal
// values; a TOML file may override any of them.
type Config struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`

	// PixelRatio is the device pixel ratio used when no window reports one.
	PixelRatio    float32 `toml:"pixel_ratio"`
	MaxPixelRatio float32 `toml:"max_pixel_ratio"`

	// FrameRate is the headless tick rate, or the windowed cap (0 = vsync only).
	FrameRate float64 `toml:"frame_rate"`
	MaxFrames uint64  `toml:"max_frames"`
	VSync     bool    `toml:"vsync"`
	Workers   int     `toml:"workers"`

	// FallbackAdapter asks WebGPU for a software adapter (lavapipe, SwiftShader).
	FallbackAdapter bool `toml:"fallback_adapter"`

	ShadowMap     bool   `toml:"shadow_map"`
	ShadowMapType string `toml:"shadow_map_type"`
	PlaneMaterial string `toml:"plane_material"`

	DampingFactor float32 `toml:"damping_factor"`

	Profiling bool   `toml:"profiling"`
	LogLevel  string `toml:"log_level"`

	// Snapshot is a PNG path the last headless frame is written to.
	Snapshot string `toml:"snapshot"`

	Texture TextureConfig `toml:"texture"`
}

// TextureConfig controls loading of the baked shadow texture.
type TextureConfig struct {
	Path string `toml:"path"`

	// Await blocks startup until the texture loads or TimeoutMS elapses.
	Await     bool `toml:"await"`
	TimeoutMS int  `toml:"timeout_ms"`
	MaxSize   int  `toml:"max_size"`
}

// Timeout returns the await timeout.
func (c TextureConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// DefaultConfig returns the demo configuration.
//
// Returns:
//   - Config: the defaults
func DefaultConfig() Config {
	return Config{
		Title:         "Shadows",
		Width:         1280,
		Height:        720,
		PixelRatio:    1,
		MaxPixelRatio: 2,
		FrameRate:     60,
		VSync:         true,
		ShadowMap:     false,
		ShadowMapType: renderer.ShadowMapPCFSoft.String(),
		PlaneMaterial: PlaneMaterialBasic,
		DampingFactor: 0.05,
		LogLevel:      "info",
		Texture: TextureConfig{
			Path:      DefaultBakedShadowPath,
			Await:     true,
			TimeoutMS: 2000,
		},
	}
}

// LoadConfig reads a TOML file over the defaults and validates the result.
//
// Parameters:
//   - path: the TOML file
//
// Returns:
//   - Config: the merged configuration
//   - error: an error if the file cannot be read, parsed or validated
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes TOML over the defaults and validates the result. Unknown
// keys are rejected.
//
// Parameters:
//   - data: the TOML document
//
// Returns:
//   - Config: the merged configuration
//   - error: an error if the document is malformed or invalid
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("parse config: %s", strict.String())
		}
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid field.
//
// Returns:
//   - error: nil when the configuration is usable
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("size must be positive, got %dx%d", c.Width, c.Height))
	}
	if c.PixelRatio <= 0 {
		errs = append(errs, fmt.Errorf("pixel_ratio must be positive, got %g", c.PixelRatio))
	}
	if c.MaxPixelRatio <= 0 {
		errs = append(errs, fmt.Errorf("max_pixel_ratio must be positive, got %g", c.MaxPixelRatio))
	}
	if c.FrameRate < 0 {
		errs = append(errs, fmt.Errorf("frame_rate must not be negative, got %g", c.FrameRate))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	if _, err := c.ShadowFilter(); err != nil {
		errs = append(errs, err)
	}
	if c.PlaneMaterial != PlaneMaterialBasic && c.PlaneMaterial != PlaneMaterialStandard {
		errs = append(errs, fmt.Errorf("plane_material must be %q or %q, got %q", PlaneMaterialBasic, PlaneMaterialStandard, c.PlaneMaterial))
	}
	if c.DampingFactor <= 0 || c.DampingFactor > 1 {
		errs = append(errs, fmt.Errorf("damping_factor must be in (0, 1], got %g", c.DampingFactor))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if c.Texture.TimeoutMS < 0 {
		errs = append(errs, fmt.Errorf("texture.timeout_ms must not be negative, got %d", c.Texture.TimeoutMS))
	}
	if c.Texture.MaxSize < 0 {
		errs = append(errs, fmt.Errorf("texture.max_size must not be negative, got %d", c.Texture.MaxSize))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// ShadowFilter parses ShadowMapType.
//
// Returns:
//   - renderer.ShadowMapType: the filter
//   - error: an error for unknown names
func (c Config) ShadowFilter() (renderer.ShadowMapType, error) {
	for _, t := range []renderer.ShadowMapType{renderer.ShadowMapBasic, renderer.ShadowMapPCF, renderer.ShadowMapPCFSoft} {
		if strings.EqualFold(c.ShadowMapType, t.String()) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("shadow_map_type must be basic, pcf or pcfsoft, got %q", c.ShadowMapType)
}

// Level parses LogLevel.
//
// Returns:
//   - slog.Level: the level
//   - error: an error for unknown names
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}
