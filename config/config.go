// Package config loads the viewer configuration: embedded defaults overlaid with an optional YAML file.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine"
	"github.com/Carmen-Shannon/oxy-viewer/engine/backdrop"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/input"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/selection"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

var (
	ErrInvalidWindow   = errors.New("invalid window config")
	ErrInvalidLog      = errors.New("invalid log config")
	ErrInvalidCamera   = errors.New("invalid camera config")
	ErrInvalidBindings = errors.New("invalid bindings config")
	ErrInvalidOverlay  = errors.New("invalid overlay config")
	ErrInvalidBackdrop = errors.New("invalid backdrop config")
	ErrInvalidTargets  = errors.New("invalid targets config")
	ErrInvalidRenderer = errors.New("invalid renderer config")
)

// Config holds all viewer configuration.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Log      LogConfig      `yaml:"log"`
	Camera   CameraConfig   `yaml:"camera"`
	Bindings BindingsConfig `yaml:"bindings"`
	Overlay  OverlayConfig  `yaml:"overlay"`
	Backdrop BackdropConfig `yaml:"backdrop"`
	Targets  TargetsConfig  `yaml:"targets"`
	Renderer RendererConfig `yaml:"renderer"`
	Profiler ProfilerConfig `yaml:"profiler"`
}

// WindowConfig holds window settings.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// CameraConfig holds the projection and the rig's placement and tuning.
type CameraConfig struct {
	Fov              float32    `yaml:"fov"` // degrees
	Near             float32    `yaml:"near"`
	Far              float32    `yaml:"far"`
	Pivot            [3]float32 `yaml:"pivot"`
	DefaultYaw       float32    `yaml:"default_yaw"`   // degrees
	DefaultPitch     float32    `yaml:"default_pitch"` // degrees
	DefaultZoom      float32    `yaml:"default_zoom"`  // distance from the pivot
	MouseSensitivity float32    `yaml:"mouse_sensitivity"`
	PanSensitivity   float32    `yaml:"pan_sensitivity"`
	PanFrameScaling  bool       `yaml:"pan_frame_scaling"` // multiply pan by frame time
	ZoomSensitivity  float32    `yaml:"zoom_sensitivity"`
	ZoomSpeed        float32    `yaml:"zoom_speed"`
	ClampPitch       bool       `yaml:"clamp_pitch"` // clamp pitch to ±90°
}

// BindingsConfig maps actions to button or key names.
type BindingsConfig map[string]string

// OverlayConfig lists the screen rectangles treated as UI.
type OverlayConfig struct {
	Regions []RectConfig `yaml:"regions"`
}

// RectConfig is a screen rectangle in pixels, origin top-left.
type RectConfig struct {
	X      float32 `yaml:"x"`
	Y      float32 `yaml:"y"`
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

// BackdropConfig holds the background colours and crossfade speed.
type BackdropConfig struct {
	SolidColor      [4]float32          `yaml:"solid_color"`
	TransitionSpeed float32             `yaml:"transition_speed"` // fades per second
	Environments    []EnvironmentConfig `yaml:"environments"`
}

// EnvironmentConfig is one selectable background.
type EnvironmentConfig struct {
	Name  string     `yaml:"name"`
	Color [4]float32 `yaml:"color"`
}

// TargetsConfig lists the targets to preload.
type TargetsConfig struct {
	Workers int            `yaml:"workers"`
	Items   []TargetConfig `yaml:"items"`
}

// TargetConfig describes one procedural target.
type TargetConfig struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Creator     string     `yaml:"creator"`
	Shape       string     `yaml:"shape"`
	Size        [3]float32 `yaml:"size"`
	Segments    int        `yaml:"segments"`
}

// RendererConfig holds GPU presentation settings.
type RendererConfig struct {
	PresentMode          string  `yaml:"present_mode"` // vsync or uncapped
	MSAA                 int     `yaml:"msaa"`         // 1 or 4
	ForceFallbackAdapter bool    `yaml:"force_fallback_adapter"`
	FrameLimit           float64 `yaml:"frame_limit"` // 0 = uncapped
	AxisLength           float32 `yaml:"axis_length"`
}

// ProfilerConfig controls the periodic frame stats log.
type ProfilerConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Interval time.Duration `yaml:"interval"`
}

// Load loads configuration from a YAML file, merging with embedded defaults, and validates the result.
// If path is empty, only embedded defaults are used.
//
// Parameters:
//   - path: the user config file, or ""
//
// Returns:
//   - *Config: the merged configuration
//   - error: a read, parse or validation error
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only fields present in the file are overwritten
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every problem found, joined into one error.
func (c *Config) Validate() error {
	var errs []error
	fail := func(sentinel error, format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{sentinel}, args...)...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		fail(ErrInvalidWindow, "size %dx%d", c.Window.Width, c.Window.Height)
	}

	if _, err := c.Log.level(); err != nil {
		fail(ErrInvalidLog, "%v", err)
	}
	if f := strings.ToLower(c.Log.Format); f != "text" && f != "json" {
		fail(ErrInvalidLog, "format %q", c.Log.Format)
	}

	cam := c.Camera
	if !positive(cam.Fov) || cam.Fov >= 180 {
		fail(ErrInvalidCamera, "fov %v", cam.Fov)
	}
	if !positive(cam.Near) || !positive(cam.Far) || cam.Far <= cam.Near {
		fail(ErrInvalidCamera, "clip planes near=%v far=%v", cam.Near, cam.Far)
	}
	if !positive(cam.DefaultZoom) {
		fail(ErrInvalidCamera, "default_zoom %v", cam.DefaultZoom)
	}
	for name, v := range map[string]float32{
		"mouse_sensitivity": cam.MouseSensitivity,
		"pan_sensitivity":   cam.PanSensitivity,
		"zoom_sensitivity":  cam.ZoomSensitivity,
		"zoom_speed":        cam.ZoomSpeed,
	} {
		if !positive(v) {
			fail(ErrInvalidCamera, "%s %v", name, v)
		}
	}

	if _, err := c.Bindings.Resolve(); err != nil {
		fail(ErrInvalidBindings, "%v", err)
	}

	for i, r := range c.Overlay.Regions {
		if !positive(r.Width) || !positive(r.Height) {
			fail(ErrInvalidOverlay, "region %d has size %vx%v", i, r.Width, r.Height)
		}
	}

	if !common.IsFinite(c.Backdrop.TransitionSpeed) || c.Backdrop.TransitionSpeed < 0 {
		fail(ErrInvalidBackdrop, "transition_speed %v", c.Backdrop.TransitionSpeed)
	}
	for i, env := range c.Backdrop.Environments {
		if env.Name == "" {
			fail(ErrInvalidBackdrop, "environment %d has no name", i)
		}
	}

	if c.Targets.Workers < 1 {
		fail(ErrInvalidTargets, "workers %d", c.Targets.Workers)
	}
	seen := make(map[string]bool, len(c.Targets.Items))
	for i, t := range c.Targets.Items {
		if t.Name == "" {
			fail(ErrInvalidTargets, "target %d has no name", i)
		} else if seen[t.Name] {
			fail(ErrInvalidTargets, "duplicate target %q", t.Name)
		}
		seen[t.Name] = true
	}

	if _, err := c.Renderer.presentMode(); err != nil {
		fail(ErrInvalidRenderer, "%v", err)
	}
	if c.Renderer.MSAA != 1 && c.Renderer.MSAA != 4 {
		fail(ErrInvalidRenderer, "msaa %d", c.Renderer.MSAA)
	}
	if c.Renderer.FrameLimit < 0 {
		fail(ErrInvalidRenderer, "frame_limit %v", c.Renderer.FrameLimit)
	}

	return errors.Join(errs...)
}

func positive(v float32) bool {
	return common.IsFinite(v) && v > 0
}

func (l LogConfig) level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, err
	}
	return lvl, nil
}

// Logger builds a logger writing to w in the configured format and level.
//
// Parameters:
//   - w: the log destination
//   - levelOverride: a level name that replaces the configured one, or ""
//
// Returns:
//   - *slog.Logger: the logger
//   - error: an error if the level name is unknown
func (l LogConfig) Logger(w io.Writer, levelOverride string) (*slog.Logger, error) {
	l.Level = common.Coalesce(levelOverride, l.Level)
	lvl, err := l.level()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLog, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(l.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// Settings converts the camera tuning.
func (c CameraConfig) Settings() camera.Settings {
	return camera.Settings{
		MouseSensitivity: c.MouseSensitivity,
		PanSensitivity:   c.PanSensitivity,
		PanFrameScaling:  c.PanFrameScaling,
		ZoomSensitivity:  c.ZoomSensitivity,
		ZoomSpeed:        c.ZoomSpeed,
		ClampPitch:       c.ClampPitch,
	}
}

// RigOptions returns the rig placement and tuning options.
func (c CameraConfig) RigOptions() []camera.CameraRigBuilderOption {
	return []camera.CameraRigBuilderOption{
		camera.WithPivot(mgl32.Vec3(c.Pivot)),
		camera.WithDefaultOrientation(c.DefaultYaw, c.DefaultPitch),
		camera.WithDefaultZoom(c.DefaultZoom),
		camera.WithSettings(c.Settings()),
	}
}

// CameraOptions returns the projection options.
func (c CameraConfig) CameraOptions() []camera.CameraBuilderOption {
	return []camera.CameraBuilderOption{
		camera.WithFov(mgl32.DegToRad(c.Fov)),
		camera.WithClipPlanes(c.Near, c.Far),
	}
}

// Resolve converts action names into input bindings.
func (b BindingsConfig) Resolve() (input.Bindings, error) {
	names := make(map[input.Action]string, len(b))
	for action, name := range b {
		names[input.Action(action)] = name
	}
	return input.ParseBindings(names)
}

// Rects converts the overlay regions.
func (o OverlayConfig) Rects() []input.Rect {
	rects := make([]input.Rect, len(o.Regions))
	for i, r := range o.Regions {
		rects[i] = input.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
	}
	return rects
}

// Options returns the backdrop options.
func (b BackdropConfig) Options() []backdrop.BackdropBuilderOption {
	envs := make([]backdrop.Environment, len(b.Environments))
	for i, env := range b.Environments {
		envs[i] = backdrop.Environment{Name: env.Name, Color: mgl32.Vec4(env.Color)}
	}
	return []backdrop.BackdropBuilderOption{
		backdrop.WithEnvironments(envs...),
		backdrop.WithSolidColor(mgl32.Vec4(b.SolidColor)),
		backdrop.WithTransitionSpeed(b.TransitionSpeed),
	}
}

// Specs converts the target list into selection specs.
func (t TargetsConfig) Specs() []selection.TargetSpec {
	specs := make([]selection.TargetSpec, len(t.Items))
	for i, item := range t.Items {
		specs[i] = selection.TargetSpec{
			Name:        item.Name,
			Description: item.Description,
			Creator:     item.Creator,
			Shape:       selection.Shape(strings.ToLower(item.Shape)),
			Size:        mgl32.Vec3(item.Size),
			Segments:    item.Segments,
		}
	}
	return specs
}

func (r RendererConfig) presentMode() (renderer.PresentMode, error) {
	switch strings.ToLower(r.PresentMode) {
	case "vsync", "":
		return renderer.PresentModeVSync, nil
	case "uncapped":
		return renderer.PresentModeUncapped, nil
	default:
		return renderer.PresentModeVSync, fmt.Errorf("present_mode %q", r.PresentMode)
	}
}

// Options returns the renderer options. Call after Validate.
func (r RendererConfig) Options() []renderer.RendererBuilderOption {
	mode, _ := r.presentMode()
	msaa := renderer.MSAA4x
	if r.MSAA == 1 {
		msaa = renderer.MSAAOff
	}
	return []renderer.RendererBuilderOption{
		renderer.WithPresentMode(mode),
		renderer.WithMSAA(msaa),
		renderer.WithForceFallbackAdapter(r.ForceFallbackAdapter),
	}
}

// Tuning extracts the settings the engine can apply while running.
//
// Returns:
//   - engine.Tuning: the live tuning
//   - error: an error if the bindings cannot be resolved
func (c *Config) Tuning() (engine.Tuning, error) {
	bindings, err := c.Bindings.Resolve()
	if err != nil {
		return engine.Tuning{}, fmt.Errorf("%w: %v", ErrInvalidBindings, err)
	}
	return engine.Tuning{
		Settings:        c.Camera.Settings(),
		Bindings:        bindings,
		OverlayRegions:  c.Overlay.Rects(),
		TransitionSpeed: c.Backdrop.TransitionSpeed,
	}, nil
}
