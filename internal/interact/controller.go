/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package interact drives drag and resize gestures for one component at a
// time. The controller is a small state machine (Idle -> Dragging or
// Resizing -> Idle) holding all session state itself; the geometry it calls
// into is pure. During a live gesture only bounds and snapping are applied
// for responsiveness; collision resolution runs once at commit.
package interact

import "boardstudio/internal/layout"

// Mode is the controller state.
type Mode int

const (
	Idle Mode = iota
	Dragging
	Resizing
)

// Handle identifies which of the eight resize handles is active.
type Handle int

const (
	HandleNone Handle = iota
	HandleN
	HandleNE
	HandleE
	HandleSE
	HandleS
	HandleSW
	HandleW
	HandleNW
)

// Modifiers carries the pointer modifier keys relevant to a gesture.
type Modifiers struct {
	// BypassSnap suppresses alignment and grid snapping while held.
	BypassSnap bool
}

// Callbacks are the controller's only side effects. Nil callbacks are skipped.
type Callbacks struct {
	// OnSelect fires when a gesture begins.
	OnSelect func()
	// OnLive publishes the uncommitted preview rect on every move tick;
	// nil clears the preview.
	OnLive func(*layout.Rect)
	// OnGuides publishes the alignment guides for overlay rendering.
	OnGuides func([]layout.Guide)
	// OnCommit delivers the final, collision-resolved placement on release.
	OnCommit func(layout.Rect)
}

// Config holds per-component gesture constraints.
type Config struct {
	MinWidth   float32
	MinHeight  float32
	LockAspect bool
	// Locked components never enter a gesture.
	Locked bool
}

// Controller runs drag/resize sessions for a single component. It is not
// safe for concurrent use; all calls are expected on the UI event loop.
// Concurrent drags of different components each own their own Controller.
type Controller struct {
	id  string
	cfg Config
	cb  Callbacks

	viewport Viewport
	bounds   layout.Size
	siblings []layout.ComponentRect

	mode   Mode
	handle Handle
	origin ScreenPt
	start  layout.Rect
	live   layout.Rect
	moved  bool
}

// New creates a controller for the component with the given stable ID.
func New(id string, cfg Config, cb Callbacks) *Controller {
	if cfg.MinWidth <= 0 {
		cfg.MinWidth = 16
	}
	if cfg.MinHeight <= 0 {
		cfg.MinHeight = 16
	}
	return &Controller{id: id, cfg: cfg, cb: cb}
}

// Mode returns the current state.
func (c *Controller) Mode() Mode { return c.mode }

// SetViewport updates the screen-to-board mapping (pan/zoom changed).
func (c *Controller) SetViewport(v Viewport) { c.viewport = v }

// SetBounds updates the owning container's size in board units.
func (c *Controller) SetBounds(s layout.Size) { c.bounds = s }

// SetSiblings installs a read-only snapshot of the sibling rects used for
// snapping and collision. The controller never mutates the slice.
func (c *Controller) SetSiblings(rs []layout.ComponentRect) { c.siblings = rs }

// BeginDrag starts a move gesture from the given pointer position with the
// component currently at rect. No-op when locked or already active.
func (c *Controller) BeginDrag(p ScreenPt, rect layout.Rect) {
	if c.cfg.Locked || c.mode != Idle {
		return
	}
	c.mode = Dragging
	c.handle = HandleNone
	c.begin(p, rect)
}

// BeginResize starts a resize gesture on the given handle.
func (c *Controller) BeginResize(h Handle, p ScreenPt, rect layout.Rect) {
	if c.cfg.Locked || c.mode != Idle || h == HandleNone {
		return
	}
	c.mode = Resizing
	c.handle = h
	c.begin(p, rect)
}

func (c *Controller) begin(p ScreenPt, rect layout.Rect) {
	c.origin = p
	c.start = rect
	c.live = rect
	c.moved = false
	if c.cb.OnSelect != nil {
		c.cb.OnSelect()
	}
}

// Move advances the active gesture to the given pointer position.
func (c *Controller) Move(p ScreenPt, mods Modifiers) {
	if c.mode == Idle {
		return
	}
	dx, dy := c.viewport.DeltaToBoard(p.X-c.origin.X, p.Y-c.origin.Y)
	c.moved = true

	switch c.mode {
	case Dragging:
		c.live = c.moveTo(c.start.X+dx, c.start.Y+dy, mods)
	case Resizing:
		c.live = c.resizeBy(dx, dy)
	}

	if c.cb.OnLive != nil {
		r := c.live
		c.cb.OnLive(&r)
	}
}

// moveTo snaps the raw position and constrains the result to the container.
// Collision detection deliberately does not run here.
func (c *Controller) moveTo(x, y float32, mods Modifiers) layout.Rect {
	res := layout.ResolveSnap(layout.SnapRequest{
		Raw:      layout.Pt{X: x, Y: y},
		Size:     layout.Size{W: c.start.W, H: c.start.H},
		MovingID: c.id,
		Siblings: c.siblings,
		Bypass:   mods.BypassSnap,
	})
	if c.cb.OnGuides != nil {
		c.cb.OnGuides(res.Guides)
	}
	r := layout.Rect{X: res.Pos.X, Y: res.Pos.Y, W: c.start.W, H: c.start.H}
	return layout.ClampToBounds(r, c.bounds)
}

// resizeBy applies the pointer delta to the edges owned by the active handle,
// enforcing minimum size and optional aspect lock before bounds clamping.
func (c *Controller) resizeBy(dx, dy float32) layout.Rect {
	r := c.start

	switch c.handle {
	case HandleE, HandleNE, HandleSE:
		r.W += dx
	case HandleW, HandleNW, HandleSW:
		r.X += dx
		r.W -= dx
	}
	switch c.handle {
	case HandleS, HandleSW, HandleSE:
		r.H += dy
	case HandleN, HandleNW, HandleNE:
		r.Y += dy
		r.H -= dy
	}

	if c.cfg.LockAspect && c.start.W > 0 && c.start.H > 0 && isCorner(c.handle) {
		ratio := c.start.H / c.start.W
		r.H = r.W * ratio
		if c.handle == HandleNW || c.handle == HandleNE {
			r.Y = c.start.Y + c.start.H - r.H
		}
	}

	if r.W < c.cfg.MinWidth {
		if c.handle == HandleW || c.handle == HandleNW || c.handle == HandleSW {
			r.X -= c.cfg.MinWidth - r.W
		}
		r.W = c.cfg.MinWidth
	}
	if r.H < c.cfg.MinHeight {
		if c.handle == HandleN || c.handle == HandleNW || c.handle == HandleNE {
			r.Y -= c.cfg.MinHeight - r.H
		}
		r.H = c.cfg.MinHeight
	}

	return layout.ClampToBounds(r, c.bounds)
}

func isCorner(h Handle) bool {
	switch h {
	case HandleNE, HandleSE, HandleSW, HandleNW:
		return true
	}
	return false
}

// End commits the gesture: the last live rect goes through the collision
// resolver and the result is delivered via OnCommit. A session that never
// saw a move tick commits nothing. Releasing always commits; there is no
// cancel gesture (Abort exists for teardown paths only).
func (c *Controller) End() {
	if c.mode == Idle {
		return
	}
	committed := c.moved
	final := c.live
	c.clear()
	if !committed {
		return
	}
	pos := layout.FindFreePosition(final, c.siblings, c.bounds, c.id)
	final.X, final.Y = pos.X, pos.Y
	if c.cb.OnCommit != nil {
		c.cb.OnCommit(final)
	}
}

// Abort drops the session without committing. Used when the component is
// deleted mid-drag or the hosting widget unmounts.
func (c *Controller) Abort() {
	if c.mode == Idle {
		return
	}
	c.clear()
}

func (c *Controller) clear() {
	c.mode = Idle
	c.handle = HandleNone
	c.moved = false
	if c.cb.OnLive != nil {
		c.cb.OnLive(nil)
	}
	if c.cb.OnGuides != nil {
		c.cb.OnGuides(nil)
	}
}
