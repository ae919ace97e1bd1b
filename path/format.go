// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package path

import (
	"math"
	"strconv"
	"strings"
)

// formatter writes numbers rounded to a fixed number of fractional digits.
type formatter struct {
	k     float64
	round bool
}

func newFormatter(digits int) formatter {
	if digits < 0 || digits > 15 {
		return formatter{}
	}
	return formatter{k: math.Pow(10, float64(digits)), round: true}
}

func (f formatter) number(b *strings.Builder, x float64) {
	if f.round {
		x = math.Floor(x*f.k+0.5) / f.k
	}
	if x == 0 {
		x = 0 // drops the sign of negative zero
	}
	b.WriteString(strconv.FormatFloat(x, 'f', -1, 64))
}

func (f formatter) point(b *strings.Builder, cmd byte, x, y float64) {
	b.WriteByte(cmd)
	f.number(b, x)
	b.WriteByte(',')
	f.number(b, y)
}
