/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package layout

// Collision resolution for dropped and dragged components. The search order is
// externally observable (it determines where components land when space is
// tight), so the exact candidate ordering below is part of the contract:
// unchanged position first, then an expanding perimeter scan, then a
// deterministic stacking fallback. A position is always returned.

// FindFreePosition returns a position for rect that does not overlap any
// sibling and lies within bounds. The sibling with ID excludeID is ignored,
// which lets a component be re-placed against its own siblings.
func FindFreePosition(rect Rect, siblings []ComponentRect, bounds Size, excludeID string) Pt {
	others := siblings[:0:0]
	for _, s := range siblings {
		if excludeID != "" && s.ID == excludeID {
			continue
		}
		others = append(others, s)
	}

	clamped := ClampToBounds(rect, bounds)
	if !overlapsAny(clamped, others) {
		return Pt{clamped.X, clamped.Y}
	}

	// Perimeter scan around the requested origin, radius growing in fixed
	// steps. Interior cells were already visited at a smaller radius, so only
	// cells on the square's perimeter are tried. dx is the outer loop.
	maxRadius := max(bounds.W, bounds.H)
	cand := clamped
	for radius := SearchStep; radius <= maxRadius; radius += SearchStep {
		for dx := -radius; dx <= radius; dx += SearchStep {
			for dy := -radius; dy <= radius; dy += SearchStep {
				if abs(dx) != radius && abs(dy) != radius {
					continue
				}
				cand.X = clamped.X + dx
				cand.Y = clamped.Y + dy
				if !WithinBounds(cand, bounds) {
					continue
				}
				if !overlapsAny(cand, others) {
					return Pt{cand.X, cand.Y}
				}
			}
		}
	}

	return stackBelow(clamped, others, bounds)
}

// FindInitialPosition picks a slot for a newly inserted component of the given
// size: a top-left raster scan in fixed steps, falling back to stacking below
// existing content like the resolver does.
func FindInitialPosition(size Size, siblings []ComponentRect, bounds Size) Pt {
	cand := Rect{W: size.W, H: size.H}
	for y := float32(0); y+size.H <= bounds.H; y += SearchStep {
		for x := float32(0); x+size.W <= bounds.W; x += SearchStep {
			cand.X, cand.Y = x, y
			if !overlapsAny(cand, siblings) {
				return Pt{x, y}
			}
		}
	}
	return stackBelow(cand, siblings, bounds)
}

// stackBelow places rect just below the lowest sibling bottom edge, clamping x
// into bounds. The y coordinate intentionally may exceed the bounds; the
// caller asked for a position and always gets one.
func stackBelow(rect Rect, siblings []ComponentRect, bounds Size) Pt {
	var bottom float32
	for _, s := range siblings {
		if b := s.Y + s.H; b > bottom {
			bottom = b
		}
	}
	x := rect.X
	if x+rect.W > bounds.W {
		x = bounds.W - rect.W
	}
	if x < 0 {
		x = 0
	}
	return Pt{x, bottom + SearchStep}
}

func overlapsAny(r Rect, siblings []ComponentRect) bool {
	for _, s := range siblings {
		if Overlaps(r, s.Rect) {
			return true
		}
	}
	return false
}
