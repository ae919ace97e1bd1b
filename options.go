// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package choropleth

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/2dChan/choropleth/geo"
	"github.com/2dChan/choropleth/path"
	"github.com/2dChan/choropleth/scale"
	"github.com/golang/geo/r2"
	geojson "github.com/paulmach/go.geojson"
)

const (
	defaultPadding       = 0.95
	defaultWidth         = 960
	defaultHeight        = 500
	defaultNameProperty  = "name"
	defaultValueProperty = "value"
)

// Projector is a projection a Map fits to its viewport and draws through. Both
// *geo.Projection and *geo.Identity satisfy it; set one with WithProjection or
// WithIdentity.
type Projector interface {
	path.Projector
	Scale() float64
	Translate() r2.Point
}

// Options holds configuration for New.
type Options struct {
	// Projection maps regions to the viewport. Defaults to a Mercator projection.
	Projection Projector
	fitExtent  func(extent r2.Rect, src geo.Source)
	// Outline is fitted to the viewport instead of the regions when set.
	Outline *geojson.Feature
	// Padding is the fraction of the viewport the fitted geometry spans.
	Padding       float64
	NameProperty  string
	ValueProperty string
	// Thresholds colors regions by bucket. Without it regions are shaded on a
	// continuous scale over the value extent.
	Thresholds *scale.Threshold
	Logger     *slog.Logger
}

// Option configures Options.
type Option func(*Options) error

func WithProjection(p *geo.Projection) Option {
	return func(o *Options) error {
		if p == nil {
			return errors.New("WithProjection: projection must not be nil")
		}
		o.Projection = p
		o.fitExtent = func(extent r2.Rect, src geo.Source) { p.FitExtent(extent, src) }
		return nil
	}
}

// WithIdentity lays out regions whose coordinates are already planar, such as
// pre-projected data. The map only scales and translates them.
func WithIdentity(p *geo.Identity) Option {
	return func(o *Options) error {
		if p == nil {
			return errors.New("WithIdentity: projection must not be nil")
		}
		o.Projection = p
		o.fitExtent = func(extent r2.Rect, src geo.Source) { p.FitExtent(extent, src) }
		return nil
	}
}

func WithOutline(f *geojson.Feature) Option {
	return func(o *Options) error {
		if f == nil || f.Geometry == nil {
			return errors.New("WithOutline: outline must have a geometry")
		}
		o.Outline = f
		return nil
	}
}

// WithPadding sets the fraction of the viewport used by the map, in (0, 1].
func WithPadding(padding float64) Option {
	return func(o *Options) error {
		if !(padding > 0 && padding <= 1) {
			return fmt.Errorf("WithPadding: padding %v must be in (0, 1]", padding)
		}
		o.Padding = padding
		return nil
	}
}

func WithNameProperty(name string) Option {
	return func(o *Options) error {
		o.NameProperty = name
		return nil
	}
}

func WithValueProperty(name string) Option {
	return func(o *Options) error {
		if name == "" {
			return errors.New("WithValueProperty: property name must not be empty")
		}
		o.ValueProperty = name
		return nil
	}
}

func WithThresholds(t *scale.Threshold) Option {
	return func(o *Options) error {
		if t == nil {
			return errors.New("WithThresholds: threshold scale must not be nil")
		}
		o.Thresholds = t
		return nil
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(o *Options) error {
		if l == nil {
			return errors.New("WithLogger: logger must not be nil")
		}
		o.Logger = l
		return nil
	}
}

func defaultOptions() Options {
	return Options{
		Padding:       defaultPadding,
		NameProperty:  defaultNameProperty,
		ValueProperty: defaultValueProperty,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}
