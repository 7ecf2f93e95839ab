/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package interact

import (
	"testing"

	"boardstudio/internal/layout"
)

type recorder struct {
	selects int
	lives   []*layout.Rect
	commits []layout.Rect
	guides  [][]layout.Guide
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		OnSelect: func() { r.selects++ },
		OnLive: func(rect *layout.Rect) {
			if rect == nil {
				r.lives = append(r.lives, nil)
				return
			}
			cp := *rect
			r.lives = append(r.lives, &cp)
		},
		OnGuides: func(gs []layout.Guide) { r.guides = append(r.guides, gs) },
		OnCommit: func(rect layout.Rect) { r.commits = append(r.commits, rect) },
	}
}

func newTestController(rec *recorder, cfg Config) *Controller {
	c := New("c1", cfg, rec.callbacks())
	c.SetViewport(Viewport{Scale: 1})
	c.SetBounds(layout.Size{W: 800, H: 600})
	return c
}

func TestDrag_SelectFiresOnBegin(t *testing.T) {
	rec := &recorder{}
	c := newTestController(rec, Config{})
	c.BeginDrag(ScreenPt{100, 100}, layout.R(40, 40, 80, 48))
	if rec.selects != 1 {
		t.Fatalf("expected selection side effect on begin, got %d", rec.selects)
	}
	if c.Mode() != Dragging {
		t.Fatalf("expected Dragging state")
	}
}

func TestDrag_NoMoveCommitsNothing(t *testing.T) {
	rec := &recorder{}
	c := newTestController(rec, Config{})
	c.BeginDrag(ScreenPt{100, 100}, layout.R(40, 40, 80, 48))
	c.End()
	if len(rec.commits) != 0 {
		t.Fatalf("a session without movement must not commit, got %+v", rec.commits)
	}
	if c.Mode() != Idle {
		t.Fatalf("expected Idle after release")
	}
}

func TestDrag_MoveThenCommit(t *testing.T) {
	rec := &recorder{}
	c := newTestController(rec, Config{})
	c.BeginDrag(ScreenPt{100, 100}, layout.R(40, 40, 80, 48))
	c.Move(ScreenPt{160, 120}, Modifiers{BypassSnap: true})
	c.End()
	if len(rec.commits) != 1 {
		t.Fatalf("expected one commit, got %d", len(rec.commits))
	}
	got := rec.commits[0]
	if got.X != 100 || got.Y != 60 || got.W != 80 || got.H != 48 {
		t.Fatalf("unexpected commit: %+v", got)
	}
	// session state is cleared after release
	if rec.lives[len(rec.lives)-1] != nil {
		t.Fatalf("live preview must be cleared on release")
	}
}

func TestDrag_ScaleCompensation(t *testing.T) {
	rec := &recorder{}
	c := newTestController(rec, Config{})
	c.SetViewport(Viewport{Scale: 2})
	c.BeginDrag(ScreenPt{0, 0}, layout.R(0, 0, 80, 48))
	c.Move(ScreenPt{100, 60}, Modifiers{BypassSnap: true})
	c.End()
	// 100 screen px at 2x zoom is 50 board units.
	got := rec.commits[0]
	if got.X != 50 || got.Y != 30 {
		t.Fatalf("expected scale-compensated {50,30}, got %+v", got)
	}
}

func TestDrag_LivePositionClampedToBounds(t *testing.T) {
	rec := &recorder{}
	c := newTestController(rec, Config{})
	c.BeginDrag(ScreenPt{0, 0}, layout.R(700, 500, 80, 48))
	c.Move(ScreenPt{500, 500}, Modifiers{BypassSnap: true})
	live := rec.lives[len(rec.lives)-1]
	if live == nil {
		t.Fatalf("expected live rect")
	}
	if live.X != 720 || live.Y != 552 {
		t.Fatalf("live rect must clamp to container, got %+v", live)
	}
}

func TestDrag_CommitResolvesCollision(t *testing.T) {
	rec := &recorder{}
	c := newTestController(rec, Config{})
	c.SetSiblings([]layout.ComponentRect{{ID: "other", Rect: layout.R(96, 96, 100, 100)}})
	c.BeginDrag(ScreenPt{0, 0}, layout.R(0, 0, 50, 50))
	c.Move(ScreenPt{100, 100}, Modifiers{BypassSnap: true})
	c.End()
	got := rec.commits[0]
	final := layout.R(got.X, got.Y, got.W, got.H)
	if layout.Overlaps(final, layout.R(96, 96, 100, 100)) {
		t.Fatalf("commit must be collision-resolved, got %+v", got)
	}
}

func TestDrag_SnapPublishesGuides(t *testing.T) {
	rec := &recorder{}
	c := newTestController(rec, Config{})
	c.SetSiblings([]layout.ComponentRect{{ID: "other", Rect: layout.R(200, 300, 100, 100)}})
	c.BeginDrag(ScreenPt{0, 0}, layout.R(0, 0, 50, 50))
	c.Move(ScreenPt{202, 100}, Modifiers{})
	var last []layout.Guide
	for _, gs := range rec.guides {
		if gs != nil {
			last = gs
		}
	}
	if len(last) != 1 || last[0].Axis != layout.AxisVertical || last[0].Position != 200 {
		t.Fatalf("expected vertical guide at 200, got %+v", last)
	}
	live := rec.lives[len(rec.lives)-1]
	if live.X != 200 {
		t.Fatalf("live X must snap to the sibling edge, got %v", live.X)
	}
}

func TestDrag_LockedComponentIgnoresGestures(t *testing.T) {
	rec := &recorder{}
	c := newTestController(rec, Config{Locked: true})
	c.BeginDrag(ScreenPt{0, 0}, layout.R(0, 0, 50, 50))
	if c.Mode() != Idle || rec.selects != 0 {
		t.Fatalf("locked component must not start a session")
	}
}

func TestDrag_AbortDoesNotCommit(t *testing.T) {
	rec := &recorder{}
	c := newTestController(rec, Config{})
	c.BeginDrag(ScreenPt{0, 0}, layout.R(0, 0, 50, 50))
	c.Move(ScreenPt{40, 40}, Modifiers{BypassSnap: true})
	c.Abort()
	if len(rec.commits) != 0 {
		t.Fatalf("abort must not commit, got %+v", rec.commits)
	}
	if rec.lives[len(rec.lives)-1] != nil {
		t.Fatalf("abort must clear the live preview")
	}
}

func TestDrag_OnlyLastLiveValueCommits(t *testing.T) {
	rec := &recorder{}
	c := newTestController(rec, Config{})
	c.BeginDrag(ScreenPt{0, 0}, layout.R(0, 0, 50, 50))
	c.Move(ScreenPt{200, 0}, Modifiers{BypassSnap: true})
	c.Move(ScreenPt{80, 16}, Modifiers{BypassSnap: true})
	c.End()
	got := rec.commits[0]
	if got.X != 80 || got.Y != 16 {
		t.Fatalf("only the most recent live value commits, got %+v", got)
	}
}

func TestResize_EastHandleGrowsWidth(t *testing.T) {
	rec := &recorder{}
	c := newTestController(rec, Config{})
	c.BeginResize(HandleE, ScreenPt{0, 0}, layout.R(100, 100, 80, 48))
	c.Move(ScreenPt{40, 99}, Modifiers{BypassSnap: true})
	c.End()
	got := rec.commits[0]
	if got.W != 120 || got.H != 48 || got.X != 100 || got.Y != 100 {
		t.Fatalf("east handle must only change width, got %+v", got)
	}
}

func TestResize_WestHandleMovesOriginAndShrinks(t *testing.T) {
	rec := &recorder{}
	c := newTestController(rec, Config{})
	c.BeginResize(HandleW, ScreenPt{0, 0}, layout.R(100, 100, 80, 48))
	c.Move(ScreenPt{24, 0}, Modifiers{BypassSnap: true})
	c.End()
	got := rec.commits[0]
	if got.X != 124 || got.W != 56 {
		t.Fatalf("west handle must move origin and shrink, got %+v", got)
	}
}

func TestResize_MinimumSizeEnforced(t *testing.T) {
	rec := &recorder{}
	c := newTestController(rec, Config{MinWidth: 32, MinHeight: 32})
	c.BeginResize(HandleSE, ScreenPt{0, 0}, layout.R(100, 100, 80, 48))
	c.Move(ScreenPt{-200, -200}, Modifiers{BypassSnap: true})
	c.End()
	got := rec.commits[0]
	if got.W != 32 || got.H != 32 {
		t.Fatalf("minimum size must hold, got %+v", got)
	}
}

func TestResize_AspectLockOnCorner(t *testing.T) {
	rec := &recorder{}
	c := newTestController(rec, Config{LockAspect: true})
	c.BeginResize(HandleSE, ScreenPt{0, 0}, layout.R(0, 0, 100, 50))
	c.Move(ScreenPt{100, 0}, Modifiers{BypassSnap: true})
	c.End()
	got := rec.commits[0]
	if got.W != 200 || got.H != 100 {
		t.Fatalf("aspect must stay 2:1, got %+v", got)
	}
}

func TestViewportRoundTrip(t *testing.T) {
	v := Viewport{Scale: 1.5, OriginX: 40, OriginY: 20}
	p := v.ToScreen(v.ToBoard(ScreenPt{123, 77}))
	if abs32(p.X-123) > 0.001 || abs32(p.Y-77) > 0.001 {
		t.Fatalf("round trip drifted: %+v", p)
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
