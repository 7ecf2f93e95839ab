/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package layout

// Alignment guides for interactive dragging. Guides are ephemeral: computed
// per pointer-move tick, discarded on drop. The two axes resolve
// independently, so at most one vertical and one horizontal guide per tick.

// Axis identifies a guide orientation.
type Axis string

const (
	AxisVertical   Axis = "vertical"
	AxisHorizontal Axis = "horizontal"
)

// GuideKind indicates which features aligned.
type GuideKind string

const (
	GuideEdge   GuideKind = "edge"
	GuideCenter GuideKind = "center"
)

// Guide describes one alignment line in board coordinates. From and To span
// only the union of the moving rect and the matched sibling on the
// perpendicular axis, not the whole container, so the rendered line covers
// just the relevant extent. Positions are rounded to 3 decimals for
// deterministic comparisons.
type Guide struct {
	Axis     Axis
	Kind     GuideKind
	Position float32
	From     Pt
	To       Pt
}

// axisMatch tracks the best candidate so far on one axis.
type axisMatch struct {
	ok    bool
	dist  float32
	value float32 // snapped X (vertical axis) or Y (horizontal axis) for the moving rect
	guide Guide
}

// consider keeps the candidate if it is within tolerance and strictly closer
// than the current best. Strict comparison makes exact ties resolve to the
// first candidate in sibling iteration order.
func (m *axisMatch) consider(delta, tolerance, value float32, g Guide) {
	d := abs(delta)
	if d > tolerance {
		return
	}
	if m.ok && d >= m.dist {
		return
	}
	m.ok = true
	m.dist = d
	m.value = value
	m.guide = g
}

// AlignmentGuides matches the moving rect's edges and centers against every
// sibling on each axis. The returned rect carries the per-axis snapped
// position; axes without a match keep the raw coordinate. Guides holds the
// 0-2 lines that matched.
func AlignmentGuides(moving Rect, siblings []ComponentRect, tolerance float32) (Rect, []Guide) {
	if tolerance <= 0 {
		tolerance = AlignTolerance
	}
	var mx, my axisMatch

	mLeft, mRight, mCX := moving.X, moving.X+moving.W, moving.X+moving.W/2
	mTop, mBottom, mCY := moving.Y, moving.Y+moving.H, moving.Y+moving.H/2

	for _, s := range siblings {
		sLeft, sRight, sCX := s.X, s.X+s.W, s.X+s.W/2
		sTop, sBottom, sCY := s.Y, s.Y+s.H, s.Y+s.H/2

		mx.consider(mLeft-sLeft, tolerance, sLeft, verticalGuide(sLeft, GuideEdge, moving, s.Rect))
		mx.consider(mRight-sRight, tolerance, sRight-moving.W, verticalGuide(sRight, GuideEdge, moving, s.Rect))
		mx.consider(mCX-sCX, tolerance, sCX-moving.W/2, verticalGuide(sCX, GuideCenter, moving, s.Rect))

		my.consider(mTop-sTop, tolerance, sTop, horizontalGuide(sTop, GuideEdge, moving, s.Rect))
		my.consider(mBottom-sBottom, tolerance, sBottom-moving.H, horizontalGuide(sBottom, GuideEdge, moving, s.Rect))
		my.consider(mCY-sCY, tolerance, sCY-moving.H/2, horizontalGuide(sCY, GuideCenter, moving, s.Rect))
	}

	snapped := moving
	var guides []Guide
	if mx.ok {
		snapped.X = FloatRound(mx.value, 3)
		guides = append(guides, mx.guide)
	}
	if my.ok {
		snapped.Y = FloatRound(my.value, 3)
		guides = append(guides, my.guide)
	}
	return snapped, guides
}

func verticalGuide(x float32, kind GuideKind, a, b Rect) Guide {
	minY := min(a.Y, b.Y)
	maxY := max(a.Y+a.H, b.Y+b.H)
	x = FloatRound(x, 3)
	return Guide{
		Axis:     AxisVertical,
		Kind:     kind,
		Position: x,
		From:     Pt{x, minY},
		To:       Pt{x, maxY},
	}
}

func horizontalGuide(y float32, kind GuideKind, a, b Rect) Guide {
	minX := min(a.X, b.X)
	maxX := max(a.X+a.W, b.X+b.W)
	y = FloatRound(y, 3)
	return Guide{
		Axis:     AxisHorizontal,
		Kind:     kind,
		Position: y,
		From:     Pt{minX, y},
		To:       Pt{maxX, y},
	}
}
