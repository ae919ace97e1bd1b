// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package scale

import (
	"errors"
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Bucket assigns Color to values in [Start, End).
type Bucket struct {
	Start float64
	End   float64
	Color string
}

// Threshold is a discrete color scale over value buckets.
type Threshold struct {
	Buckets []Bucket
	Default string
}

// NewThreshold builds ascending buckets from breaks: (-Inf, breaks[0]),
// [breaks[0], breaks[1]), ..., [breaks[n-1], +Inf). colors holds one more entry than
// breaks and every color, including def, must be a hex color.
func NewThreshold(breaks []float64, colors []string, def string) (*Threshold, error) {
	if len(colors) != len(breaks)+1 {
		return nil, fmt.Errorf("scale: %d breaks need %d colors, got %d", len(breaks), len(breaks)+1, len(colors))
	}
	for i, b := range breaks {
		if math.IsNaN(b) {
			return nil, errors.New("scale: NaN break")
		}
		if i > 0 && b <= breaks[i-1] {
			return nil, fmt.Errorf("scale: breaks not ascending at %d", i)
		}
	}
	for _, c := range append([]string{def}, colors...) {
		if _, err := colorful.Hex(c); err != nil {
			return nil, fmt.Errorf("scale: invalid color %q: %w", c, err)
		}
	}

	buckets := make([]Bucket, len(colors))
	lo := math.Inf(-1)
	for i, c := range colors {
		hi := math.Inf(1)
		if i < len(breaks) {
			hi = breaks[i]
		}
		buckets[i] = Bucket{Start: lo, End: hi, Color: c}
		lo = hi
	}
	return &Threshold{Buckets: buckets, Default: def}, nil
}

// ColorFor returns the color of the last bucket containing v, or Default when no
// bucket does.
func (t *Threshold) ColorFor(v float64) string {
	color := t.Default
	for _, b := range t.Buckets {
		if b.Start <= v && v < b.End {
			color = b.Color
		}
	}
	return color
}
