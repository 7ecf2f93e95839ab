/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package layout

import "testing"

func TestSnapToGrid_RoundTrip(t *testing.T) {
	for _, v := range []float32{-13, -4, 0, 3.9, 4, 11.2, 100, 1001.5} {
		once := SnapToGrid(v, 8)
		twice := SnapToGrid(once, 8)
		if once != twice {
			t.Fatalf("snap not idempotent for %v: %v vs %v", v, once, twice)
		}
	}
}

func TestSnapToGrid_InvalidGridSize(t *testing.T) {
	if got := SnapToGrid(13, 0); got != 13 {
		t.Fatalf("zero grid must return input, got %v", got)
	}
	if got := SnapToGrid(13, -8); got != 13 {
		t.Fatalf("negative grid must return input, got %v", got)
	}
}

func TestSnapToGridWithinThreshold_Boundary(t *testing.T) {
	if got := SnapToGridWithinThreshold(20, 8, 5); got != 16 {
		t.Fatalf("4px from line 16 must snap, got %v", got)
	}
	if got := SnapToGridWithinThreshold(12, 8, 5); got != 16 {
		t.Fatalf("4px from line 16 must snap, got %v", got)
	}
	if got := SnapToGridWithinThreshold(90, 16, 5); got != 90 {
		t.Fatalf("6px from nearest line must not snap, got %v", got)
	}
}

func TestResolveSnap_BypassReturnsRawUnchanged(t *testing.T) {
	siblings := []ComponentRect{{ID: "a", Rect: R(100, 100, 80, 40)}}
	res := ResolveSnap(SnapRequest{
		Raw:      Pt{101, 101}, // would both align and grid-snap
		Size:     Size{W: 50, H: 30},
		Siblings: siblings,
		Bypass:   true,
	})
	if res.Pos != (Pt{101, 101}) {
		t.Fatalf("bypass must keep raw position, got %+v", res.Pos)
	}
	if len(res.Guides) != 0 {
		t.Fatalf("bypass must return no guides, got %+v", res.Guides)
	}
}

func TestResolveSnap_AlignmentBeatsGridPerAxis(t *testing.T) {
	// X is within tolerance of the sibling's left edge (101, off-grid);
	// Y has no alignment candidate and grid-snaps instead.
	siblings := []ComponentRect{{ID: "a", Rect: R(101, 400, 80, 40)}}
	res := ResolveSnap(SnapRequest{
		Raw:      Pt{103, 201},
		Size:     Size{W: 50, H: 30},
		Siblings: siblings,
	})
	if res.Pos.X != 101 {
		t.Fatalf("alignment must win on X, got %v", res.Pos.X)
	}
	if res.Pos.Y != SnapToGridWithinThreshold(201, GridSize, SnapThreshold) {
		t.Fatalf("Y must fall through to grid snap, got %v", res.Pos.Y)
	}
	if len(res.Guides) != 1 || res.Guides[0].Axis != AxisVertical {
		t.Fatalf("expected exactly the vertical guide, got %+v", res.Guides)
	}
}

func TestResolveSnap_GridOnlyWhenNoAlignment(t *testing.T) {
	res := ResolveSnap(SnapRequest{
		Raw:  Pt{13, 99},
		Size: Size{W: 50, H: 30},
	})
	if res.Pos.X != 16 || res.Pos.Y != 96 {
		t.Fatalf("expected grid-snapped {16,96}, got %+v", res.Pos)
	}
	if len(res.Guides) != 0 {
		t.Fatalf("no guides without siblings, got %+v", res.Guides)
	}
}

func TestSnapToGridWithinThreshold_TightThresholdKeepsRaw(t *testing.T) {
	// Threshold below the grid half-pitch leaves mid-cell values untouched.
	if got := SnapToGridWithinThreshold(12, 8, 3); got != 12 {
		t.Fatalf("4px from the line with threshold 3 must not snap, got %v", got)
	}
}

func TestResolveSnap_ExcludesMovingComponent(t *testing.T) {
	siblings := []ComponentRect{{ID: "me", Rect: R(50, 50, 50, 30)}}
	res := ResolveSnap(SnapRequest{
		Raw:      Pt{53, 201},
		Size:     Size{W: 50, H: 30},
		MovingID: "me",
		Siblings: siblings,
	})
	if len(res.Guides) != 0 {
		t.Fatalf("component must not align to itself, got %+v", res.Guides)
	}
}
