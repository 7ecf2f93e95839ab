/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"log/slog"

	"boardstudio/internal/domain"
)

// Cross-container moves. A component belongs to exactly one container at any
// time (one board, or the canvas archive); each operation here is a single
// in-memory state transition with move semantics, never a copy. When the
// component is not found in its expected source collection the operation logs
// a warning and returns without mutating anything, so repeated calls with the
// same arguments are safe.

// ArchiveComponent removes a component from its board and appends it to the
// canvas archive. The given canvas-space coordinates replace the board-local
// placement; size is preserved.
func ArchiveComponent(wh *WorkspaceHandle, boardID, componentID string, canvasX, canvasY float64) {
	if wh == nil {
		return
	}
	bd := findBoard(&wh.Workspace, boardID)
	if bd == nil {
		slog.Warn("archive: board not found", slog.String("board", boardID), slog.String("component", componentID))
		return
	}
	idx := indexOfComponent(bd.Components, componentID)
	if idx < 0 {
		slog.Warn("archive: component not on board", slog.String("board", boardID), slog.String("component", componentID))
		return
	}
	c := bd.Components[idx]
	bd.Components = append(bd.Components[:idx], bd.Components[idx+1:]...)
	c.Placement.X = canvasX
	c.Placement.Y = canvasY
	wh.Workspace.Canvas.Archived = append(wh.Workspace.Canvas.Archived, c)
}

// UnarchiveComponent removes a component from the canvas archive and appends
// it to the target board with the given board-local coordinates.
func UnarchiveComponent(wh *WorkspaceHandle, componentID, boardID string, x, y float64) {
	if wh == nil {
		return
	}
	bd := findBoard(&wh.Workspace, boardID)
	if bd == nil {
		slog.Warn("unarchive: board not found", slog.String("board", boardID), slog.String("component", componentID))
		return
	}
	arch := wh.Workspace.Canvas.Archived
	idx := indexOfComponent(arch, componentID)
	if idx < 0 {
		slog.Warn("unarchive: component not in archive", slog.String("component", componentID))
		return
	}
	c := arch[idx]
	wh.Workspace.Canvas.Archived = append(arch[:idx], arch[idx+1:]...)
	c.Placement.X = x
	c.Placement.Y = y
	c.Z = nextZ(bd.Components)
	bd.Components = append(bd.Components, c)
}

// TransferComponent moves a component from one board to another in one
// combined update, assigning target-board coordinates. A transfer onto the
// same board is a no-op.
func TransferComponent(wh *WorkspaceHandle, fromBoardID, toBoardID, componentID string, x, y float64) {
	if wh == nil {
		return
	}
	if fromBoardID == toBoardID {
		return
	}
	src := findBoard(&wh.Workspace, fromBoardID)
	dst := findBoard(&wh.Workspace, toBoardID)
	if src == nil || dst == nil {
		slog.Warn("transfer: board not found",
			slog.String("from", fromBoardID), slog.String("to", toBoardID), slog.String("component", componentID))
		return
	}
	idx := indexOfComponent(src.Components, componentID)
	if idx < 0 {
		slog.Warn("transfer: component not on source board",
			slog.String("from", fromBoardID), slog.String("component", componentID))
		return
	}
	c := src.Components[idx]
	src.Components = append(src.Components[:idx], src.Components[idx+1:]...)
	c.Placement.X = x
	c.Placement.Y = y
	c.Z = nextZ(dst.Components)
	dst.Components = append(dst.Components, c)
}

func findBoard(ws *domain.Workspace, boardID string) *domain.Board {
	for i := range ws.Boards {
		if ws.Boards[i].ID == boardID {
			return &ws.Boards[i]
		}
	}
	return nil
}

func indexOfComponent(comps []domain.Component, id string) int {
	for i := range comps {
		if comps[i].ID == id {
			return i
		}
	}
	return -1
}

func nextZ(comps []domain.Component) int {
	maxZ := -1
	for _, c := range comps {
		if c.Z > maxZ {
			maxZ = c.Z
		}
	}
	return maxZ + 1
}
