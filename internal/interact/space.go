/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package interact

// Coordinate spaces are distinct types so a screen-space value can never be
// fed into board-space math without going through the viewport. Conversion
// happens in exactly one place, which removes the classic forgot-to-divide-
// by-scale class of bugs.

// ScreenPt is a pointer position in on-screen pixels.
type ScreenPt struct{ X, Y float32 }

// BoardPt is a position in board-local logical pixels.
type BoardPt struct{ X, Y float32 }

// Viewport maps between screen space and board-local space. Scale is the
// current zoom factor; OriginX/OriginY is the screen position of the board's
// top-left corner.
type Viewport struct {
	Scale   float32
	OriginX float32
	OriginY float32
}

func (v Viewport) scale() float32 {
	if v.Scale <= 0 {
		return 1
	}
	return v.Scale
}

// ToBoard converts a screen point into board-local coordinates.
func (v Viewport) ToBoard(p ScreenPt) BoardPt {
	s := v.scale()
	return BoardPt{X: (p.X - v.OriginX) / s, Y: (p.Y - v.OriginY) / s}
}

// ToScreen converts a board-local point into screen coordinates.
func (v Viewport) ToScreen(p BoardPt) ScreenPt {
	s := v.scale()
	return ScreenPt{X: v.OriginX + p.X*s, Y: v.OriginY + p.Y*s}
}

// DeltaToBoard scale-compensates a screen-space delta, so one logical pixel
// of movement means one board unit regardless of zoom.
func (v Viewport) DeltaToBoard(dx, dy float32) (float32, float32) {
	s := v.scale()
	return dx / s, dy / s
}
