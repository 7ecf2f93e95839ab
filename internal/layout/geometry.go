/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package layout

// Basic 2D geometry for board component placement.
// Float values use float32 for compactness and to align with many UI libs.
// All functions here are pure; they never mutate their inputs.

import "math"

// Pt is a 2D point.
type Pt struct{ X, Y float32 }

// Size is a width/height pair.
type Size struct{ W, H float32 }

// Rect is an axis-aligned rectangle defined by min corner and size.
type Rect struct {
	X, Y float32
	W, H float32
}

func R(x, y, w, h float32) Rect { return Rect{X: x, Y: y, W: w, H: h} }

func (r Rect) Min() Pt { return Pt{r.X, r.Y} }
func (r Rect) Max() Pt { return Pt{r.X + r.W, r.Y + r.H} }

func (r Rect) Contains(p Pt) bool {
	return p.X >= r.X && p.Y >= r.Y && p.X <= r.X+r.W && p.Y <= r.Y+r.H
}

// Union returns the minimal rect containing both.
func (r Rect) Union(o Rect) Rect {
	minX := min(r.X, o.X)
	minY := min(r.Y, o.Y)
	maxX := max(r.X+r.W, o.X+o.W)
	maxY := max(r.Y+r.H, o.Y+o.H)
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Inset shrinks the rect by d on all sides. Width and height never go
// negative; over-insetting collapses to a zero-size rect at the center.
func (r Rect) Inset(d float32) Rect {
	w := r.W - 2*d
	h := r.H - 2*d
	if w < 0 {
		r.X += r.W / 2
		w = 0
	} else {
		r.X += d
	}
	if h < 0 {
		r.Y += r.H / 2
		h = 0
	} else {
		r.Y += d
	}
	return Rect{X: r.X, Y: r.Y, W: w, H: h}
}

// ComponentRect tags a Rect with the stable ID of the component it belongs to.
// Instances are built fresh per query from the current component list and are
// never stored by the engine.
type ComponentRect struct {
	ID string
	Rect
}

// Overlaps reports whether a and b intersect with positive area.
// Edge-touching rectangles do NOT overlap; adjacent placements are valid,
// which the collision search relies on.
func Overlaps(a, b Rect) bool {
	return a.X < b.X+b.W && a.X+a.W > b.X && a.Y < b.Y+b.H && a.Y+a.H > b.Y
}

// WithinBounds reports whether r lies entirely inside [0,bounds.W]x[0,bounds.H].
func WithinBounds(r Rect, bounds Size) bool {
	return r.X >= 0 && r.Y >= 0 && r.X+r.W <= bounds.W && r.Y+r.H <= bounds.H
}

// ClampToBounds shrinks r to fit the bounds if oversized, then clamps its
// position so the rect stays inside. Always returns a valid in-bounds rect.
func ClampToBounds(r Rect, bounds Size) Rect {
	if r.W > bounds.W {
		r.W = bounds.W
	}
	if r.H > bounds.H {
		r.H = bounds.H
	}
	if r.X < 0 {
		r.X = 0
	}
	if r.Y < 0 {
		r.Y = 0
	}
	if r.X+r.W > bounds.W {
		r.X = bounds.W - r.W
	}
	if r.Y+r.H > bounds.H {
		r.Y = bounds.H - r.H
	}
	return r
}

// OverlapArea returns the intersecting area of a and b. The boolean is false
// when the rects do not overlap. Diagnostic helper; not used on the hot path.
func OverlapArea(a, b Rect) (float32, bool) {
	if !Overlaps(a, b) {
		return 0, false
	}
	w := min(a.X+a.W, b.X+b.W) - max(a.X, b.X)
	h := min(a.Y+a.H, b.Y+b.H) - max(a.Y, b.Y)
	return w * h, true
}

// MinimumPushVector returns the axis-aligned translation of smallest Manhattan
// magnitude that separates moving from obstacle. Of the four candidate pushes
// the evaluation order is right, left, down, up; ties keep the earlier
// candidate. Returns the zero vector when the rects do not overlap.
func MinimumPushVector(moving, obstacle Rect) Pt {
	if !Overlaps(moving, obstacle) {
		return Pt{}
	}
	candidates := []Pt{
		{X: obstacle.X + obstacle.W - moving.X},  // push right
		{X: -(moving.X + moving.W - obstacle.X)}, // push left
		{Y: obstacle.Y + obstacle.H - moving.Y},  // push down
		{Y: -(moving.Y + moving.H - obstacle.Y)}, // push up
	}
	best := candidates[0]
	bestMag := manhattan(best)
	for _, c := range candidates[1:] {
		if m := manhattan(c); m < bestMag {
			best = c
			bestMag = m
		}
	}
	return best
}

func manhattan(p Pt) float32 { return abs(p.X) + abs(p.Y) }

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func min(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
func max(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// FloatRound rounds v to n decimal places deterministically.
func FloatRound(v float32, places int) float32 {
	if places < 0 {
		return v
	}
	pow := float32(math.Pow(10, float64(places)))
	return float32(math.Round(float64(v*pow))) / pow
}
