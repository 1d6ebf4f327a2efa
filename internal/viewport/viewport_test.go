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

package viewport

import (
	"math"
	"testing"
)

func TestScale(t *testing.T) {
	for _, tc := range []struct {
		width, ratio float64
		want         float64
	}{
		{320, 2, 0.5},
		{320, 1, 1},
		{1024, 4, 0.25},
		{375, 3, 1.0 / 3},
		{0, 2, 0.5},
		{320, 0, 1},
		{320, -1, 1},
	} {
		if got := Scale(tc.width, tc.ratio); math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("Scale(%v, %v) = %v, want %v", tc.width, tc.ratio, got, tc.want)
		}
	}
}

func TestRatio(t *testing.T) {
	for _, tc := range []struct {
		dpr, max float64
		want     float64
	}{
		{2, 0, 2},
		{0, 0, 1},
		{-3, 0, 1},
		{math.NaN(), 0, 1},
		{math.Inf(1), 0, 1},
		{3.5, 2, 2},
		{1.5, 2, 1.5},
		{0, 2, 1},
	} {
		if got := Ratio(tc.dpr, tc.max); got != tc.want {
			t.Errorf("Ratio(%v, %v) = %v, want %v", tc.dpr, tc.max, got, tc.want)
		}
	}
}

func TestMetaContent(t *testing.T) {
	for _, tc := range []struct {
		scale float64
		want  string
	}{
		{0.5, "width=device-width, user-scalable=no, initial-scale=0.5"},
		{1, "width=device-width, user-scalable=no, initial-scale=1"},
		{0.25, "width=device-width, user-scalable=no, initial-scale=0.25"},
	} {
		if got := MetaContent(tc.scale); got != tc.want {
			t.Errorf("MetaContent(%v) = %q, want %q", tc.scale, got, tc.want)
		}
	}
}

func TestSizeEmpty(t *testing.T) {
	if !(Size{}).Empty() {
		t.Error("zero Size is not empty")
	}
	if !(Size{Width: 10}).Empty() {
		t.Error("Size{10, 0} is not empty")
	}
	if (Size{Width: 10, Height: 20}).Empty() {
		t.Error("Size{10, 20} is empty")
	}
}
