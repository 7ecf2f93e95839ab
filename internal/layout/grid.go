/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package layout

import "math"

// Fixed engine tunables. Grid size and snap threshold are independent knobs,
// neither is derived from the other.
const (
	// GridSize is the spacing of the placement grid in logical pixels.
	GridSize float32 = 8
	// SnapThreshold is the maximum distance at which a value snaps to a grid line.
	SnapThreshold float32 = 5
	// AlignTolerance is the maximum distance at which an edge/center aligns to a sibling.
	AlignTolerance float32 = 5
	// SearchStep is the cell size of the collision spiral and raster scans.
	SearchStep float32 = 8
)

// SnapToGrid rounds v to the nearest multiple of gridSize. Non-finite or
// non-positive grid sizes degrade gracefully: the input is returned unchanged.
func SnapToGrid(v, gridSize float32) float32 {
	if gridSize <= 0 || math.IsNaN(float64(gridSize)) || math.IsInf(float64(gridSize), 0) {
		return v
	}
	if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
		return v
	}
	return float32(math.Round(float64(v/gridSize))) * gridSize
}

// SnapToGridWithinThreshold snaps v to the grid only when the nearest grid
// line is at most threshold away; otherwise the raw value is kept so the
// pointer does not visibly jump while far from any line.
func SnapToGridWithinThreshold(v, gridSize, threshold float32) float32 {
	snapped := SnapToGrid(v, gridSize)
	if abs(snapped-v) <= threshold {
		return snapped
	}
	return v
}
