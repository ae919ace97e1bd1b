// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package scale

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestTicks(t *testing.T) {
	tests := []struct {
		name        string
		start, stop float64
		count       int
		want        []float64
	}{
		{"tenths", 0, 1, 10, []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1}},
		{"twos", 0, 10, 5, []float64{0, 2, 4, 6, 8, 10}},
		{"reversed", 10, 0, 5, []float64{10, 8, 6, 4, 2, 0}},
		{"fives across zero", -10, 10, 4, []float64{-10, -5, 0, 5, 10}},
		{"inner ticks only", 0.5, 9.5, 3, []float64{2, 4, 6, 8}},
		{"start equals stop", 1, 1, 5, []float64{1}},
		{"zero count", 0, 1, 0, nil},
		{"negative count", 0, 1, -1, nil},
		{"NaN start", math.NaN(), 1, 5, nil},
		{"NaN stop", 0, math.NaN(), 5, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Ticks(tt.start, tt.stop, tt.count)
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
				t.Errorf("Ticks(%v, %v, %v) mismatch (-want +got):\n%s", tt.start, tt.stop, tt.count, diff)
			}
		})
	}
}

func TestTickIncrement(t *testing.T) {
	tests := []struct {
		start, stop float64
		count       int
		want        float64
	}{
		{0, 1, 10, -10},
		{0, 1, 4, -5},
		{0, 10, 5, 2},
		{0, 100, 10, 10},
		{-10, 10, 4, 5},
	}

	for _, tt := range tests {
		if got := TickIncrement(tt.start, tt.stop, tt.count); got != tt.want {
			t.Errorf("TickIncrement(%v, %v, %v) = %v, want %v", tt.start, tt.stop, tt.count, got, tt.want)
		}
	}
}

func TestTickStep(t *testing.T) {
	tests := []struct {
		name        string
		start, stop float64
		count       int
		want        float64
	}{
		{"tenths", 0, 1, 10, 0.1},
		{"tenths reversed", 1, 0, 10, -0.1},
		{"fifths", 0, 1, 4, 0.2},
		{"twos", 0, 10, 5, 2},
		{"twos reversed", 10, 0, 5, -2},
		{"tens", 0, 100, 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TickStep(tt.start, tt.stop, tt.count)
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
				t.Errorf("TickStep(%v, %v, %v) mismatch (-want +got):\n%s", tt.start, tt.stop, tt.count, diff)
			}
		})
	}
}
