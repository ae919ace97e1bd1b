// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/2dChan/choropleth/geo"
	"github.com/2dChan/choropleth/scale"
	"github.com/spf13/viper"
)

// Config holds the configuration of an example program.
type Config struct {
	Render RenderConfig `mapstructure:"render"`
	Data   DataConfig   `mapstructure:"data"`
	Scale  ScaleConfig  `mapstructure:"scale"`
	Log    LogConfig    `mapstructure:"log"`
}

type RenderConfig struct {
	Width      float64 `mapstructure:"width"`
	Height     float64 `mapstructure:"height"`
	Padding    float64 `mapstructure:"padding"`
	Projection string  `mapstructure:"projection"`
	Output     string  `mapstructure:"output"`
}

type DataConfig struct {
	Regions        string  `mapstructure:"regions"`
	Bubbles        string  `mapstructure:"bubbles"`
	NameProperty   string  `mapstructure:"name_property"`
	ValueProperty  string  `mapstructure:"value_property"`
	BubbleProperty string  `mapstructure:"bubble_property"`
	MaxRadius      float64 `mapstructure:"max_radius"`
}

// ScaleConfig describes an optional threshold scale. An empty Breaks list selects the
// continuous scale.
type ScaleConfig struct {
	Breaks  []float64 `mapstructure:"breaks"`
	Colors  []string  `mapstructure:"colors"`
	Missing string    `mapstructure:"missing"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var projections = map[string]func() *geo.Projection{
	"mercator":        geo.NewMercator,
	"equirectangular": geo.NewEquirectangular,
	"orthographic":    geo.NewOrthographic,
}

// Load reads configuration from file and environment variables. program names the
// default output file.
func Load(program string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("render.width", 960)
	v.SetDefault("render.height", 500)
	v.SetDefault("render.padding", 0.95)
	v.SetDefault("render.projection", "mercator")
	v.SetDefault("render.output", program+".svg")
	v.SetDefault("data.regions", "testdata/regions.geojson")
	v.SetDefault("data.bubbles", "")
	v.SetDefault("data.name_property", "name")
	v.SetDefault("data.value_property", "value")
	v.SetDefault("data.bubble_property", "population")
	v.SetDefault("data.max_radius", 20)
	v.SetDefault("scale.breaks", []float64{})
	v.SetDefault("scale.colors", []string{})
	v.SetDefault("scale.missing", "#cccccc")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	// Environment variables: CHOROPLETH_RENDER_WIDTH → render.width
	v.SetEnvPrefix("CHOROPLETH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if !positive(c.Render.Width) {
		errs = append(errs, fmt.Sprintf("render.width must be positive, got %v", c.Render.Width))
	}
	if !positive(c.Render.Height) {
		errs = append(errs, fmt.Sprintf("render.height must be positive, got %v", c.Render.Height))
	}
	if !(c.Render.Padding > 0 && c.Render.Padding <= 1) {
		errs = append(errs, fmt.Sprintf("render.padding must be in (0, 1], got %v", c.Render.Padding))
	}
	if _, ok := projections[strings.ToLower(c.Render.Projection)]; !ok {
		errs = append(errs, fmt.Sprintf("render.projection %q is unknown", c.Render.Projection))
	}
	if c.Render.Output == "" {
		errs = append(errs, "render.output is required")
	}
	if c.Data.Regions == "" {
		errs = append(errs, "data.regions is required")
	}
	if c.Data.ValueProperty == "" {
		errs = append(errs, "data.value_property is required")
	}
	if c.Data.Bubbles != "" && c.Data.BubbleProperty == "" {
		errs = append(errs, "data.bubble_property is required with data.bubbles")
	}
	if !positive(c.Data.MaxRadius) {
		errs = append(errs, fmt.Sprintf("data.max_radius must be positive, got %v", c.Data.MaxRadius))
	}
	if len(c.Scale.Breaks) > 0 {
		if _, err := c.Scale.Threshold(); err != nil {
			errs = append(errs, err.Error())
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// NewProjection returns a new projection of the configured kind.
func (r RenderConfig) NewProjection() (*geo.Projection, error) {
	newProjection, ok := projections[strings.ToLower(r.Projection)]
	if !ok {
		return nil, fmt.Errorf("unknown projection %q", r.Projection)
	}
	return newProjection(), nil
}

// Threshold builds the threshold scale, or returns nil when no breaks are configured.
func (s ScaleConfig) Threshold() (*scale.Threshold, error) {
	if len(s.Breaks) == 0 {
		return nil, nil
	}
	return scale.NewThreshold(s.Breaks, s.Colors, s.Missing)
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
