package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"pointcloud-renderer/internal/mathutil"
	"pointcloud-renderer/internal/pointcloud"
	"pointcloud-renderer/internal/scene"
)

// DefaultSpin is the model rotation per frame, in degrees.
const DefaultSpin = 1

// Config holds all render and animation settings.
type Config struct {
	// Output
	OutputDir   string `json:"output_dir" yaml:"output_dir"`
	WriteFrames bool   `json:"write_frames" yaml:"write_frames"`
	HUD         bool   `json:"hud" yaml:"hud"`

	// Viewport
	Width       int     `json:"width" yaml:"width"`
	Height      int     `json:"height" yaml:"height"`
	Supersample int     `json:"supersample" yaml:"supersample"`
	Near        float32 `json:"near" yaml:"near"`
	Far         float32 `json:"far" yaml:"far"`

	// Point cloud
	Points          int     `json:"points" yaml:"points"`
	PointSize       int     `json:"point_size" yaml:"point_size"`
	CloudScale      float32 `json:"cloud_scale" yaml:"cloud_scale"`
	RegenerateEvery int     `json:"regenerate_every" yaml:"regenerate_every"`
	Seed            uint64  `json:"seed" yaml:"seed"`
	Palette         string  `json:"palette" yaml:"palette"`

	// Animation
	Frames   int        `json:"frames" yaml:"frames"`
	FPS      int        `json:"fps" yaml:"fps"`
	Spin     *float32   `json:"spin" yaml:"spin"`           // model degrees per frame; 0 holds the model still
	SpinAxis [3]float32 `json:"spin_axis" yaml:"spin_axis"` // model spin axis, normalized by Resolve
	ViewRot  [3]float32 `json:"view_rot" yaml:"view_rot"`   // initial view rotation, degrees
	Orbit    [3]float32 `json:"orbit" yaml:"orbit"`         // view degrees per frame

	Workers int `json:"workers" yaml:"workers"`
}

// Load reads a JSON or YAML (.yaml/.yml) config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	OutputDir string
	Width     int
	Height    int
	Points    int
	Frames    int
	Workers   int
	Palette   string
	Seed      uint64
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Points > 0 {
		c.Points = flags.Points
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Palette != "" {
		c.Palette = flags.Palette
	}
	if flags.Seed != 0 {
		c.Seed = flags.Seed
	}

	if c.OutputDir == "" {
		c.OutputDir = "renders"
	}
	if c.Width <= 0 {
		c.Width = 640
	}
	if c.Height <= 0 {
		c.Height = 360
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Near == 0 {
		c.Near = scene.DefaultNear
	}
	if c.Far == 0 {
		c.Far = scene.DefaultFar
	}
	if c.Points <= 0 {
		c.Points = 100000
	}
	if c.PointSize <= 0 {
		c.PointSize = 4
	}
	if c.CloudScale == 0 {
		c.CloudScale = pointcloud.DefaultScale
	}
	if c.RegenerateEvery <= 0 {
		c.RegenerateEvery = pointcloud.DefaultRegenerateEvery
	}
	if c.Seed == 0 {
		c.Seed = 1
	}
	if c.Frames <= 0 {
		c.Frames = 120
	}
	if c.FPS <= 0 {
		c.FPS = 30
	}
	if c.Spin == nil {
		spin := float32(DefaultSpin)
		c.Spin = &spin
	}
	if c.SpinAxis == ([3]float32{}) {
		c.SpinAxis = [3]float32{0, 0, 1}
	} else {
		c.SpinAxis = mathutil.Vec3Normalize(c.SpinAxis)
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Validate reports settings that cannot be rendered. Call after Resolve.
func (c *Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("viewport %dx%d must be positive", c.Width, c.Height))
	}
	if c.Points <= 0 {
		errs = append(errs, fmt.Errorf("points must be positive, got %d", c.Points))
	}
	if c.Frames <= 0 {
		errs = append(errs, fmt.Errorf("frames must be positive, got %d", c.Frames))
	}
	if c.Near <= 0 {
		errs = append(errs, fmt.Errorf("near plane must be positive, got %g", c.Near))
	}
	if c.Far <= c.Near {
		errs = append(errs, fmt.Errorf("far plane %g must lie beyond near plane %g", c.Far, c.Near))
	}
	if !mathutil.IsUnitAxis(c.SpinAxis[0], c.SpinAxis[1], c.SpinAxis[2], 1e-4) {
		errs = append(errs, fmt.Errorf("spin axis %v has no direction", c.SpinAxis))
	}
	if c.Width > 0 && c.Height > 0 {
		aspect := float32(c.Height) / float32(c.Width)
		if err := mathutil.ValidateFrustum(-1, 1, -aspect, aspect, c.Near, c.Far); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// SpinDegrees returns the per-frame model spin. Nil means unset and yields
// DefaultSpin; call Resolve first to make that explicit.
func (c *Config) SpinDegrees() float32 {
	if c.Spin == nil {
		return DefaultSpin
	}
	return *c.Spin
}

// FrameDurationMS is the display time of one frame in milliseconds.
func (c *Config) FrameDurationMS() uint {
	return uint(1000 / c.FPS)
}
