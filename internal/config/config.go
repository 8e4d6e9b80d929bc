// Package config loads editor settings from palmlines.cfg.json.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"palmlines/internal/curve"
	"palmlines/internal/drag"
	"palmlines/internal/render"
	"palmlines/pkg/colorutil"
	"palmlines/pkg/geometry"
)

// FileName is the config file looked up in the config directory.
const FileName = "palmlines.cfg.json"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// SurfaceConfig bounds the drawing surface.
type SurfaceConfig struct {
	MaxWidth      int `json:"maxWidth" mapstructure:"maxWidth"`
	MaxHeight     int `json:"maxHeight" mapstructure:"maxHeight"`
	InitialWidth  int `json:"initialWidth" mapstructure:"initialWidth"`
	InitialHeight int `json:"initialHeight" mapstructure:"initialHeight"`
}

// InteractionConfig holds pointer settings.
type InteractionConfig struct {
	HitRadius float64 `json:"hitRadius" mapstructure:"hitRadius"`
}

// RenderConfig holds stroke and placeholder settings.
type RenderConfig struct {
	StrokeWidth   float64 `json:"strokeWidth" mapstructure:"strokeWidth"`
	HandleRadius  float64 `json:"handleRadius" mapstructure:"handleRadius"`
	OutlineWidth  float64 `json:"outlineWidth" mapstructure:"outlineWidth"`
	ShadowBlur    int     `json:"shadowBlur" mapstructure:"shadowBlur"`
	ShadowOffsetX float64 `json:"shadowOffsetX" mapstructure:"shadowOffsetX"`
	ShadowOffsetY float64 `json:"shadowOffsetY" mapstructure:"shadowOffsetY"`
	Placeholder   string  `json:"placeholder" mapstructure:"placeholder"`
}

// PointConfig is a control point in surface fractions.
type PointConfig struct {
	X float64 `json:"x" mapstructure:"x"`
	Y float64 `json:"y" mapstructure:"y"`
}

// CurveConfig declares one curve.
type CurveConfig struct {
	Name   string        `json:"name" mapstructure:"name"`
	Color  string        `json:"color" mapstructure:"color"`
	Hidden bool          `json:"hidden" mapstructure:"hidden"`
	Points []PointConfig `json:"points" mapstructure:"points"`
}

// Config is the full settings tree.
type Config struct {
	LogLevel    string            `json:"logLevel" mapstructure:"logLevel"`
	Surface     SurfaceConfig     `json:"surface" mapstructure:"surface"`
	Interaction InteractionConfig `json:"interaction" mapstructure:"interaction"`
	Render      RenderConfig      `json:"render" mapstructure:"render"`
	Curves      []CurveConfig     `json:"curves" mapstructure:"curves"`
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("logLevel", "info")

	v.SetDefault("surface.maxWidth", 600)
	v.SetDefault("surface.maxHeight", 600)
	v.SetDefault("surface.initialWidth", 600)
	v.SetDefault("surface.initialHeight", 450)

	v.SetDefault("interaction.hitRadius", drag.DefaultHitRadius)

	style := render.DefaultStyle()
	v.SetDefault("render.strokeWidth", style.StrokeWidth)
	v.SetDefault("render.handleRadius", style.HandleRadius)
	v.SetDefault("render.outlineWidth", style.OutlineWidth)
	v.SetDefault("render.shadowBlur", style.ShadowBlur)
	v.SetDefault("render.shadowOffsetX", style.ShadowOffset.X)
	v.SetDefault("render.shadowOffsetY", style.ShadowOffset.Y)
	v.SetDefault("render.placeholder", style.Placeholder)

	v.SetEnvPrefix("PALMLINES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Default returns the built-in settings.
func Default() *Config {
	cfg, err := decode(newViper())
	if err != nil {
		// defaults are static; failing here is a programming error
		panic(err)
	}
	return cfg
}

// Load reads FileName from configDir on top of the defaults. An empty
// configDir or a missing file yields the defaults.
func Load(configDir string) (*Config, error) {
	v := newViper()
	if configDir != "" {
		v.SetConfigName(FileName)
		v.SetConfigType("json")
		v.AddConfigPath(configDir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if len(cfg.Curves) == 0 {
		cfg.Curves = defaultCurves()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func defaultCurves() []CurveConfig {
	defs := curve.DefaultDefinitions()
	out := make([]CurveConfig, len(defs))
	for i, d := range defs {
		points := make([]PointConfig, len(d.Defaults))
		for j, p := range d.Defaults {
			points[j] = PointConfig{X: p.X, Y: p.Y}
		}
		out[i] = CurveConfig{
			Name:   d.Name,
			Color:  colorutil.Hex(d.Color),
			Hidden: !d.Visible,
			Points: points,
		}
	}
	return out
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// Validate checks ranges and curve declarations.
func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return invalid("logLevel %q", c.LogLevel)
	}
	s := c.Surface
	if s.MaxWidth <= 0 || s.MaxHeight <= 0 {
		return invalid("surface max %dx%d", s.MaxWidth, s.MaxHeight)
	}
	if s.InitialWidth <= 0 || s.InitialHeight <= 0 {
		return invalid("surface initial %dx%d", s.InitialWidth, s.InitialHeight)
	}
	if c.Interaction.HitRadius <= 0 {
		return invalid("interaction.hitRadius %v", c.Interaction.HitRadius)
	}
	r := c.Render
	if r.StrokeWidth <= 0 || r.HandleRadius <= 0 {
		return invalid("render stroke %v handle %v", r.StrokeWidth, r.HandleRadius)
	}
	if r.OutlineWidth < 0 || r.ShadowBlur < 0 {
		return invalid("render outline %v blur %d", r.OutlineWidth, r.ShadowBlur)
	}
	if _, err := c.Definitions(); err != nil {
		return err
	}
	return nil
}

// Level returns the parsed log level, info when unset.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Definitions converts the configured curves.
func (c *Config) Definitions() ([]curve.Definition, error) {
	seen := make(map[string]bool, len(c.Curves))
	defs := make([]curve.Definition, 0, len(c.Curves))
	unit := geometry.NewSize(1, 1)
	for i, cc := range c.Curves {
		if cc.Name == "" {
			return nil, invalid("curves[%d] has no name", i)
		}
		if seen[cc.Name] {
			return nil, invalid("curve %q declared twice", cc.Name)
		}
		seen[cc.Name] = true

		col, err := colorutil.ParseHex(cc.Color)
		if err != nil {
			return nil, fmt.Errorf("%w: curve %q: %w", ErrInvalidConfig, cc.Name, err)
		}
		if len(cc.Points) < curve.MinPoints {
			return nil, invalid("curve %q has %d points, need %d", cc.Name, len(cc.Points), curve.MinPoints)
		}
		points := make([]geometry.Point, len(cc.Points))
		for j, p := range cc.Points {
			points[j] = geometry.Pt(p.X, p.Y)
			if !unit.Contains(points[j]) {
				return nil, invalid("curve %q point %d (%v, %v) outside [0,1]", cc.Name, j, p.X, p.Y)
			}
		}
		defs = append(defs, curve.Definition{
			Name:     cc.Name,
			Color:    col,
			Visible:  !cc.Hidden,
			Defaults: points,
		})
	}
	return defs, nil
}

// Style builds the render style from the render section.
func (c *Config) Style() render.Style {
	style := render.DefaultStyle()
	style.StrokeWidth = c.Render.StrokeWidth
	style.HandleRadius = c.Render.HandleRadius
	style.OutlineWidth = c.Render.OutlineWidth
	style.ShadowBlur = c.Render.ShadowBlur
	style.ShadowOffset = geometry.Pt(c.Render.ShadowOffsetX, c.Render.ShadowOffsetY)
	style.Placeholder = c.Render.Placeholder
	if style.ShadowBlur == 0 && style.ShadowOffset == (geometry.Point{}) {
		style.ShadowColor = color.RGBA{}
	}
	return style
}
