/*
 * gradient.go, part of corelevels.
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package gradient maps real values to colors on a blue-grey-orange
// scale, so per-atom properties can be shown on a structure or a plot.
package gradient

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	// ErrOutOfRange is returned when the value to map is not strictly between the bounds.
	ErrOutOfRange = errors.New("value out of range")
	// ErrInvalidBounds is returned when the bounds can't define a scale.
	ErrInvalidBounds = errors.New("invalid color bounds")
)

// RGB is a color with components in [0,1]. It implements color.Color.
type RGB struct {
	R, G, B float64
}

// RGBA returns the alpha-premultiplied components of the color, with alpha 1.
func (c RGB) RGBA() (r, g, b, a uint32) {
	return channel(c.R), channel(c.G), channel(c.B), 0xffff
}

func channel(v float64) uint32 {
	return uint32(math.Round(math.Max(0, math.Min(1, v)) * 0xffff))
}

// Bytes returns the components scaled to 0-255.
func (c RGB) Bytes() (r, g, b uint8) {
	return uint8(math.Round(c.R * 255)), uint8(math.Round(c.G * 255)), uint8(math.Round(c.B * 255))
}

func (c RGB) String() string {
	return fmt.Sprintf("[%.4f, %.4f, %.4f]", c.R, c.G, c.B)
}

// The reference colors of the scale.
var (
	Low     = RGB{14.0 / 255, 118.0 / 255, 255.0 / 255}
	High    = RGB{255.0 / 255, 172.0 / 255, 14.0 / 255}
	Neutral = RGB{196.0 / 255, 196.0 / 255, 196.0 / 255}
)

// Bounds of a color scale. Values at Min are Low, at Mid Neutral and at Max High.
type Bounds struct {
	Min, Mid, Max float64
}

// NewBounds returns the Bounds for the given values, which can be
// either min and max, or min, mid and max, in any order. With two values, the
// mid point is placed halfway between them. The values must be finite and different.
func NewBounds(b ...float64) (Bounds, error) {
	if len(b) != 2 && len(b) != 3 {
		return Bounds{}, fmt.Errorf("NewBounds: %w: need 2 or 3 values, got %d", ErrInvalidBounds, len(b))
	}
	s := append([]float64(nil), b...)
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Bounds{}, fmt.Errorf("NewBounds: %w: %v", ErrInvalidBounds, b)
		}
	}
	sort.Float64s(s)
	var ret Bounds
	if len(s) == 2 {
		ret = Bounds{Min: s[0], Mid: s[0] + (s[1]-s[0])/2, Max: s[1]}
	} else {
		ret = Bounds{Min: s[0], Mid: s[1], Max: s[2]}
	}
	if err := ret.Check(); err != nil {
		return Bounds{}, fmt.Errorf("NewBounds: %w", err)
	}
	return ret, nil
}

// Check returns an error unless Min < Mid < Max.
func (B Bounds) Check() error {
	if !(B.Min < B.Mid && B.Mid < B.Max) {
		return fmt.Errorf("%w: need min < mid < max, got %g, %g, %g", ErrInvalidBounds, B.Min, B.Mid, B.Max)
	}
	return nil
}

// Contains tells whether v is strictly between B.Min and B.Max.
func (B Bounds) Contains(v float64) bool {
	return B.Min < v && v < B.Max
}

// Widen returns two-value bounds that strictly contain the range [lo, hi],
// such as the one given by corelevel.MeanRange. The limits are placed a fraction
// margin of the width of the range beyond lo and hi. lo and hi can be equal.
func Widen(lo, hi, margin float64) (Bounds, error) {
	if lo > hi {
		lo, hi = hi, lo
	}
	d := (hi - lo) * margin
	if d <= 0 {
		//all values equal, or no margin requested.
		d = math.Max(math.Abs(lo)*1e-6, 1e-6)
	}
	return NewBounds(lo-d, hi+d)
}

// Map returns the color for value in the scale given by bounds. Between
// Min and Mid the color goes linearly from Low to Neutral, and between
// Mid and Max from Neutral to High. value must be strictly between Min and Max.
// The result is not rounded.
func Map(value float64, bounds Bounds) (RGB, error) {
	if err := bounds.Check(); err != nil {
		return RGB{}, fmt.Errorf("Map: %w", err)
	}
	if !bounds.Contains(value) {
		return RGB{}, fmt.Errorf("Map: %w: %g not in (%g, %g)", ErrOutOfRange, value, bounds.Min, bounds.Max)
	}
	if value > bounds.Mid {
		r := (value - bounds.Mid) / (bounds.Max - bounds.Mid)
		return lerp(Neutral, High, r), nil
	}
	r := (value - bounds.Min) / (bounds.Mid - bounds.Min)
	return lerp(Low, Neutral, r), nil
}

// lerp returns a at r=0 and exactly b at r=1.
func lerp(a, b RGB, r float64) RGB {
	return RGB{
		R: (1-r)*a.R + r*b.R,
		G: (1-r)*a.G + r*b.G,
		B: (1-r)*a.B + r*b.B,
	}
}

// MapAll maps each value in vals with Map. It fails on the first value out of range.
func MapAll(vals []float64, bounds Bounds) ([]RGB, error) {
	ret := make([]RGB, len(vals))
	for i, v := range vals {
		c, err := Map(v, bounds)
		if err != nil {
			return nil, fmt.Errorf("MapAll: value %d: %w", i, err)
		}
		ret[i] = c
	}
	return ret, nil
}

// Array returns the components of c.
func (c RGB) Array() [3]float64 {
	return [3]float64{c.R, c.G, c.B}
}
