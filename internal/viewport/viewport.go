// MIT License
//
// Copyright (c) 2025 TTBT Enterprises LLC
// Copyright (c) 2025 Robin Thellend <rthellend@rthellend.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package viewport computes the page scale that maps CSS pixels onto device
// pixels.
package viewport

import (
	"math"
	"strconv"
)

// Ratio returns the usable device pixel ratio. Missing or non-positive
// ratios count as 1. When maxRatio is positive, the ratio is clamped to it.
func Ratio(devicePixelRatio, maxRatio float64) float64 {
	r := devicePixelRatio
	if r <= 0 || math.IsNaN(r) || math.IsInf(r, 0) {
		r = 1
	}
	if maxRatio > 0 && r > maxRatio {
		r = maxRatio
	}
	return r
}

// Scale returns width / (width * ratio), the initial-scale that makes one
// CSS pixel cover one device pixel.
func Scale(width, ratio float64) float64 {
	if ratio <= 0 {
		ratio = 1
	}
	if width == 0 {
		return 1 / ratio
	}
	return width / (width * ratio)
}

// MetaContent returns the content attribute of the viewport meta tag for the
// given scale. User scaling is disabled.
func MetaContent(scale float64) string {
	return "width=device-width, user-scalable=no, initial-scale=" + strconv.FormatFloat(scale, 'g', -1, 64)
}

// Size is a client area in CSS pixels.
type Size struct {
	Width  int
	Height int
}

// Empty reports whether either dimension is zero or negative.
func (s Size) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}
