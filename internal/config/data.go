// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/2dChan/choropleth"
	geojson "github.com/paulmach/go.geojson"
)

// ReadFeatureCollection reads a GeoJSON feature collection from a file.
func ReadFeatureCollection(path string) (*geojson.FeatureCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return fc, nil
}

// NewMap reads the configured regions and bubbles and lays them out at the configured
// size.
func (c *Config) NewMap(logger *slog.Logger) (*choropleth.Map, error) {
	regions, err := ReadFeatureCollection(c.Data.Regions)
	if err != nil {
		return nil, err
	}
	projection, err := c.Render.NewProjection()
	if err != nil {
		return nil, err
	}

	opts := []choropleth.Option{
		choropleth.WithProjection(projection),
		choropleth.WithPadding(c.Render.Padding),
		choropleth.WithNameProperty(c.Data.NameProperty),
		choropleth.WithValueProperty(c.Data.ValueProperty),
		choropleth.WithLogger(logger),
	}
	th, err := c.Scale.Threshold()
	if err != nil {
		return nil, err
	}
	if th != nil {
		opts = append(opts, choropleth.WithThresholds(th))
	}

	m, err := choropleth.New(regions, opts...)
	if err != nil {
		return nil, err
	}
	if err := m.Resize(c.Render.Width, c.Render.Height); err != nil {
		return nil, err
	}

	if c.Data.Bubbles == "" {
		return m, nil
	}
	points, err := ReadFeatureCollection(c.Data.Bubbles)
	if err != nil {
		return nil, err
	}
	if err := m.SetBubbles(points, c.Data.BubbleProperty, c.Data.MaxRadius); err != nil {
		return nil, err
	}
	return m, nil
}
