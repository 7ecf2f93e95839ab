/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"fmt"
	"sort"

	"boardstudio/internal/domain"
	"boardstudio/internal/layout"
)

// Default size assigned to components added without explicit dimensions.
const (
	defaultComponentWidth  = 320
	defaultComponentHeight = 240
)

// EnsureBoard returns a pointer to a board with the given ID, creating it if it does not exist yet.
// New boards are appended with an empty component list and default dimensions.
func EnsureBoard(wh *WorkspaceHandle, boardID string) (*domain.Board, error) {
	if wh == nil {
		return nil, fmt.Errorf("workspace handle is nil")
	}
	if boardID == "" {
		return nil, fmt.Errorf("boardID must not be empty")
	}
	for i := range wh.Workspace.Boards {
		if wh.Workspace.Boards[i].ID == boardID {
			return &wh.Workspace.Boards[i], nil
		}
	}
	bd := domain.Board{ID: boardID, Width: 1920, Height: 1080, Components: []domain.Component{}}
	wh.Workspace.Boards = append(wh.Workspace.Boards, bd)
	return &wh.Workspace.Boards[len(wh.Workspace.Boards)-1], nil
}

// NextComponentID returns a unique component ID like "c1", "c2", ... not used anywhere in the workspace.
// IDs are workspace-unique so components can move between boards without renaming.
func NextComponentID(ws *domain.Workspace) string {
	if ws == nil {
		return "c1"
	}
	maxN := 0
	exists := map[string]struct{}{}
	scan := func(comps []domain.Component) {
		for _, c := range comps {
			exists[c.ID] = struct{}{}
			var n int
			if _, err := fmt.Sscanf(c.ID, "c%d", &n); err == nil {
				if n > maxN {
					maxN = n
				}
			}
		}
	}
	for _, b := range ws.Boards {
		scan(b.Components)
	}
	scan(ws.Canvas.Archived)
	for n := maxN + 1; n < maxN+10000; n++ {
		id := fmt.Sprintf("c%d", n)
		if _, ok := exists[id]; !ok {
			return id
		}
	}
	return fmt.Sprintf("c%d", maxN+1)
}

// AddComponent creates a new component on the given board and assigns a zOrder after the last.
// If comp.ID is empty, a unique one will be generated. Zero-sized components get a default size.
// The placement is resolved through the collision engine: the first non-overlapping slot in
// reading order, stacked below existing components when the board is full.
func AddComponent(wh *WorkspaceHandle, boardID string, comp domain.Component) (domain.Component, error) {
	bd, err := EnsureBoard(wh, boardID)
	if err != nil {
		return domain.Component{}, err
	}
	if comp.ID == "" {
		comp.ID = NextComponentID(&wh.Workspace)
	} else {
		// ensure unique
		for _, c := range bd.Components {
			if c.ID == comp.ID {
				return domain.Component{}, fmt.Errorf("component id %s already exists on board %s", comp.ID, boardID)
			}
		}
	}
	if comp.Placement.Width <= 0 || comp.Placement.Height <= 0 {
		comp.Placement.Width = defaultComponentWidth
		comp.Placement.Height = defaultComponentHeight
	}
	size := layout.Size{W: float32(comp.Placement.Width), H: float32(comp.Placement.Height)}
	pos := layout.FindInitialPosition(size, componentRects(bd.Components, ""), boardSize(bd))
	comp.Placement.X = float64(pos.X)
	comp.Placement.Y = float64(pos.Y)
	// zOrder: max+1
	maxZ := -1
	for _, c := range bd.Components {
		if c.Z > maxZ {
			maxZ = c.Z
		}
	}
	comp.Z = maxZ + 1
	bd.Components = append(bd.Components, comp)
	return comp, nil
}

// findComponent returns board pointer, component index and pointer, or error.
func findComponent(wh *WorkspaceHandle, boardID, componentID string) (*domain.Board, int, *domain.Component, error) {
	if wh == nil {
		return nil, -1, nil, fmt.Errorf("workspace handle is nil")
	}
	for i := range wh.Workspace.Boards {
		bd := &wh.Workspace.Boards[i]
		if bd.ID != boardID {
			continue
		}
		for k := range bd.Components {
			if bd.Components[k].ID == componentID {
				return bd, k, &bd.Components[k], nil
			}
		}
		return bd, -1, nil, fmt.Errorf("component %s not found on board %s", componentID, boardID)
	}
	return nil, -1, nil, fmt.Errorf("board %s not found", boardID)
}

// MoveComponentZ moves the component up or down in zOrder by delta (+1 moves up/top, -1 moves down/back).
// It adjusts other components' zOrder to keep a dense sequence starting at 0, then resorts slice by zOrder.
func MoveComponentZ(wh *WorkspaceHandle, boardID, componentID string, delta int) error {
	bd, _, cn, err := findComponent(wh, boardID, componentID)
	if err != nil {
		return err
	}
	// Build order list
	order := make([]*domain.Component, len(bd.Components))
	for i := range bd.Components {
		order[i] = &bd.Components[i]
	}
	// sort by z
	sort.Slice(order, func(i, j int) bool { return order[i].Z < order[j].Z })
	// find index of target in order
	idx := -1
	for i, c := range order {
		if c == cn {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("internal: component not in order list")
	}
	newIdx := idx + delta
	if newIdx < 0 {
		newIdx = 0
	}
	if newIdx >= len(order) {
		newIdx = len(order) - 1
	}
	if newIdx == idx {
		return nil
	}
	// move in slice
	c := order[idx]
	if newIdx < idx {
		copy(order[newIdx+1:idx+1], order[newIdx:idx])
		order[newIdx] = c
	} else {
		copy(order[idx:newIdx], order[idx+1:newIdx+1])
		order[newIdx] = c
	}
	// reassign zOrder 0..n-1 in new order
	for i, it := range order {
		it.Z = i
	}
	// also reorder bd.Components slice to match zOrder for deterministic serialization
	sort.Slice(bd.Components, func(i, j int) bool { return bd.Components[i].Z < bd.Components[j].Z })
	return nil
}

// UpdateComponentMeta updates component ID (if non-empty and unique) and Title. Placement and Z are preserved.
func UpdateComponentMeta(wh *WorkspaceHandle, boardID, componentID string, newID string, title string) error {
	bd, _, cn, err := findComponent(wh, boardID, componentID)
	if err != nil {
		return err
	}
	if newID != "" && newID != cn.ID {
		// ensure unique on board
		for _, c := range bd.Components {
			if c.ID == newID {
				return fmt.Errorf("component id %s already exists on board %s", newID, boardID)
			}
		}
		cn.ID = newID
	}
	cn.Title = title
	return nil
}

// SetComponentPlacement moves/resizes a component, resolving overlaps through the collision
// engine so the stored manifest never contains overlapping siblings.
func SetComponentPlacement(wh *WorkspaceHandle, boardID, componentID string, pl domain.Placement) error {
	bd, _, cn, err := findComponent(wh, boardID, componentID)
	if err != nil {
		return err
	}
	if cn.Locked {
		return fmt.Errorf("component %s is locked", componentID)
	}
	if pl.Width <= 0 || pl.Height <= 0 {
		return fmt.Errorf("placement size must be positive")
	}
	want := layout.Rect{X: float32(pl.X), Y: float32(pl.Y), W: float32(pl.Width), H: float32(pl.Height)}
	pos := layout.FindFreePosition(want, componentRects(bd.Components, componentID), boardSize(bd), componentID)
	cn.Placement = domain.Placement{X: float64(pos.X), Y: float64(pos.Y), Width: pl.Width, Height: pl.Height}
	return nil
}

// componentRects converts a board's components into engine rects, skipping excludeID.
func componentRects(comps []domain.Component, excludeID string) []layout.ComponentRect {
	out := make([]layout.ComponentRect, 0, len(comps))
	for _, c := range comps {
		if c.ID == excludeID {
			continue
		}
		out = append(out, layout.ComponentRect{
			ID: c.ID,
			Rect: layout.Rect{
				X: float32(c.Placement.X),
				Y: float32(c.Placement.Y),
				W: float32(c.Placement.Width),
				H: float32(c.Placement.Height),
			},
		})
	}
	return out
}

func boardSize(bd *domain.Board) layout.Size {
	return layout.Size{W: float32(bd.Width), H: float32(bd.Height)}
}
