/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package layout

import "testing"

func TestFindFreePosition_FreeSpotIsUnchanged(t *testing.T) {
	bounds := Size{W: 400, H: 300}
	siblings := []ComponentRect{{ID: "c1", Rect: R(200, 0, 100, 100)}}
	p := FindFreePosition(R(10, 10, 50, 50), siblings, bounds, "")
	if p.X != 10 || p.Y != 10 {
		t.Fatalf("non-overlapping drop must return unchanged, got %+v", p)
	}
}

func TestFindFreePosition_ClampsBeforeChecking(t *testing.T) {
	bounds := Size{W: 400, H: 300}
	p := FindFreePosition(R(390, 290, 50, 50), nil, bounds, "")
	if p.X != 350 || p.Y != 250 {
		t.Fatalf("expected clamped position {350,250}, got %+v", p)
	}
}

func TestFindFreePosition_ExcludeSelf(t *testing.T) {
	bounds := Size{W: 400, H: 300}
	siblings := []ComponentRect{{ID: "me", Rect: R(10, 10, 50, 50)}}
	p := FindFreePosition(R(10, 10, 50, 50), siblings, bounds, "me")
	if p.X != 10 || p.Y != 10 {
		t.Fatalf("component must not collide with itself, got %+v", p)
	}
}

// The tight-drop scenario: two siblings tile the top half of a 400x300 board,
// a 100x100 rect dropped at (50,50) can only fit below y=150. The first free
// perimeter cell is reached at radius 104 with dx=-48, dy=104, giving (2,154).
func TestFindFreePosition_TightDropSpiral(t *testing.T) {
	bounds := Size{W: 400, H: 300}
	siblings := []ComponentRect{
		{ID: "a", Rect: R(0, 0, 200, 150)},
		{ID: "b", Rect: R(200, 0, 200, 150)},
	}
	p := FindFreePosition(R(50, 50, 100, 100), siblings, bounds, "")
	if p.X != 2 || p.Y != 154 {
		t.Fatalf("spiral search landed at %+v, want {2,154}", p)
	}
	got := R(p.X, p.Y, 100, 100)
	if !WithinBounds(got, bounds) {
		t.Fatalf("result out of bounds: %+v", got)
	}
	for _, s := range siblings {
		if Overlaps(got, s.Rect) {
			t.Fatalf("result overlaps sibling %s", s.ID)
		}
	}
}

func TestFindFreePosition_Idempotent(t *testing.T) {
	bounds := Size{W: 400, H: 300}
	siblings := []ComponentRect{
		{ID: "a", Rect: R(0, 0, 200, 150)},
		{ID: "b", Rect: R(200, 0, 200, 150)},
	}
	p1 := FindFreePosition(R(50, 50, 100, 100), siblings, bounds, "")
	p2 := FindFreePosition(R(50, 50, 100, 100), siblings, bounds, "")
	if p1 != p2 {
		t.Fatalf("resolver must be pure: %+v vs %+v", p1, p2)
	}
}

func TestFindFreePosition_StackingFallback(t *testing.T) {
	// Board completely covered: no spiral radius succeeds, so the rect stacks
	// below the lowest sibling bottom edge.
	bounds := Size{W: 200, H: 200}
	siblings := []ComponentRect{{ID: "full", Rect: R(0, 0, 200, 200)}}
	p := FindFreePosition(R(20, 20, 50, 50), siblings, bounds, "")
	if p.X != 20 || p.Y != 208 {
		t.Fatalf("expected stacking fallback {20,208}, got %+v", p)
	}
}

func TestFindFreePosition_NoOverlapInvariant(t *testing.T) {
	bounds := Size{W: 320, H: 240}
	siblings := []ComponentRect{
		{ID: "a", Rect: R(0, 0, 100, 100)},
		{ID: "b", Rect: R(120, 0, 100, 100)},
		{ID: "c", Rect: R(0, 120, 100, 100)},
	}
	starts := []Rect{
		R(10, 10, 80, 80),
		R(130, 10, 80, 80),
		R(10, 130, 80, 80),
		R(150, 150, 80, 80),
	}
	for _, start := range starts {
		p := FindFreePosition(start, siblings, bounds, "")
		got := R(p.X, p.Y, start.W, start.H)
		for _, s := range siblings {
			if Overlaps(got, s.Rect) {
				t.Fatalf("start %+v resolved to %+v overlapping %s", start, p, s.ID)
			}
		}
	}
}

func TestFindInitialPosition_TopLeftFirst(t *testing.T) {
	bounds := Size{W: 400, H: 300}
	p := FindInitialPosition(Size{W: 100, H: 100}, nil, bounds)
	if p.X != 0 || p.Y != 0 {
		t.Fatalf("empty board places at origin, got %+v", p)
	}
}

func TestFindInitialPosition_RasterScanSkipsOccupied(t *testing.T) {
	bounds := Size{W: 400, H: 300}
	siblings := []ComponentRect{{ID: "a", Rect: R(0, 0, 200, 100)}}
	p := FindInitialPosition(Size{W: 100, H: 100}, siblings, bounds)
	// First free raster cell in reading order is to the right of the sibling.
	if p.X != 200 || p.Y != 0 {
		t.Fatalf("expected {200,0}, got %+v", p)
	}
}

func TestFindInitialPosition_StacksWhenFull(t *testing.T) {
	bounds := Size{W: 200, H: 120}
	siblings := []ComponentRect{{ID: "a", Rect: R(0, 0, 200, 120)}}
	p := FindInitialPosition(Size{W: 100, H: 100}, siblings, bounds)
	if p.X != 0 || p.Y != 128 {
		t.Fatalf("expected stacking below content {0,128}, got %+v", p)
	}
}
