/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package layout

// SnapRequest carries one raw drag/drop position through snap resolution.
type SnapRequest struct {
	Raw      Pt
	Size     Size
	MovingID string
	Siblings []ComponentRect
	// Bypass suppresses all snapping unconditionally (held modifier key).
	Bypass bool
}

// SnapResult is the resolved position plus the guides actually applied
// (0-2 entries) for overlay rendering.
type SnapResult struct {
	Pos    Pt
	Guides []Guide
}

// ResolveSnap decides between alignment-guide snapping and grid snapping.
// Alignment wins per axis; an axis without an alignment match falls through
// to thresholded grid snap. The two axes are independent, so a component can
// sit flush against a neighbor's edge on one axis while grid-snapping on the
// other.
func ResolveSnap(req SnapRequest) SnapResult {
	if req.Bypass {
		return SnapResult{Pos: req.Raw}
	}

	siblings := req.Siblings
	if req.MovingID != "" {
		filtered := siblings[:0:0]
		for _, s := range siblings {
			if s.ID == req.MovingID {
				continue
			}
			filtered = append(filtered, s)
		}
		siblings = filtered
	}

	moving := Rect{X: req.Raw.X, Y: req.Raw.Y, W: req.Size.W, H: req.Size.H}
	aligned, guides := AlignmentGuides(moving, siblings, AlignTolerance)

	pos := Pt{X: aligned.X, Y: aligned.Y}
	if !hasAxis(guides, AxisVertical) {
		pos.X = SnapToGridWithinThreshold(req.Raw.X, GridSize, SnapThreshold)
	}
	if !hasAxis(guides, AxisHorizontal) {
		pos.Y = SnapToGridWithinThreshold(req.Raw.Y, GridSize, SnapThreshold)
	}
	return SnapResult{Pos: pos, Guides: guides}
}

func hasAxis(guides []Guide, axis Axis) bool {
	for _, g := range guides {
		if g.Axis == axis {
			return true
		}
	}
	return false
}
