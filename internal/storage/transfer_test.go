/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"testing"

	"boardstudio/internal/domain"
)

func twoBoardWorkspace() *WorkspaceHandle {
	return &WorkspaceHandle{Workspace: domain.Workspace{
		Name: "Transfer Test",
		Boards: []domain.Board{
			{ID: "a", Width: 800, Height: 600, Components: []domain.Component{
				{ID: "c1", Placement: domain.Placement{X: 0, Y: 0, Width: 100, Height: 100}, Z: 0},
				{ID: "c2", Placement: domain.Placement{X: 120, Y: 0, Width: 100, Height: 100}, Z: 1},
				{ID: "c3", Placement: domain.Placement{X: 240, Y: 0, Width: 100, Height: 100}, Z: 2},
			}},
			{ID: "b", Width: 800, Height: 600, Components: []domain.Component{
				{ID: "c9", Placement: domain.Placement{X: 0, Y: 0, Width: 100, Height: 100}, Z: 0},
			}},
		},
		Canvas: domain.Canvas{Zoom: 1},
	}}
}

func TestTransferComponentMovesOnce(t *testing.T) {
	wh := twoBoardWorkspace()

	TransferComponent(wh, "a", "b", "c2", 300, 200)
	a := wh.Workspace.Boards[0]
	b := wh.Workspace.Boards[1]
	if len(a.Components) != 2 {
		t.Fatalf("source board should have 2 components, got %d", len(a.Components))
	}
	if len(b.Components) != 2 {
		t.Fatalf("target board should have 2 components, got %d", len(b.Components))
	}
	moved := b.Components[1]
	if moved.ID != "c2" {
		t.Fatalf("expected c2 on target board, got %s", moved.ID)
	}
	if moved.Placement.X != 300 || moved.Placement.Y != 200 {
		t.Fatalf("target coordinates not applied: %+v", moved.Placement)
	}
	if moved.Placement.Width != 100 || moved.Placement.Height != 100 {
		t.Fatalf("size must be preserved: %+v", moved.Placement)
	}
	if moved.Z != 1 {
		t.Fatalf("expected z after existing components, got %d", moved.Z)
	}

	// Repeating the same call is a no-op: c2 is no longer on board a
	TransferComponent(wh, "a", "b", "c2", 300, 200)
	if len(wh.Workspace.Boards[0].Components) != 2 || len(wh.Workspace.Boards[1].Components) != 2 {
		t.Fatalf("repeated transfer mutated state: a=%d b=%d",
			len(wh.Workspace.Boards[0].Components), len(wh.Workspace.Boards[1].Components))
	}
}

func TestTransferComponentSameBoardIsNoop(t *testing.T) {
	wh := twoBoardWorkspace()
	before := wh.Workspace.Boards[0].Components[1].Placement
	TransferComponent(wh, "a", "a", "c2", 999, 999)
	after := wh.Workspace.Boards[0].Components[1].Placement
	if before != after {
		t.Fatalf("same-board transfer must not move: %+v -> %+v", before, after)
	}
}

func TestTransferComponentMissingIsNoop(t *testing.T) {
	wh := twoBoardWorkspace()
	TransferComponent(wh, "a", "b", "nope", 0, 0)
	TransferComponent(wh, "a", "missing-board", "c1", 0, 0)
	if len(wh.Workspace.Boards[0].Components) != 3 || len(wh.Workspace.Boards[1].Components) != 1 {
		t.Fatalf("missing-entity transfer mutated state")
	}
}

func TestArchiveAndUnarchiveRoundTrip(t *testing.T) {
	wh := twoBoardWorkspace()

	ArchiveComponent(wh, "a", "c3", 1500, -200)
	if len(wh.Workspace.Boards[0].Components) != 2 {
		t.Fatalf("archive did not remove from board: %d", len(wh.Workspace.Boards[0].Components))
	}
	if len(wh.Workspace.Canvas.Archived) != 1 {
		t.Fatalf("archive did not append to canvas: %d", len(wh.Workspace.Canvas.Archived))
	}
	got := wh.Workspace.Canvas.Archived[0]
	if got.ID != "c3" || got.Placement.X != 1500 || got.Placement.Y != -200 {
		t.Fatalf("canvas coordinates not applied: %+v", got)
	}

	// Archiving it again is a no-op
	ArchiveComponent(wh, "a", "c3", 0, 0)
	if len(wh.Workspace.Canvas.Archived) != 1 {
		t.Fatalf("repeated archive duplicated component")
	}

	UnarchiveComponent(wh, "c3", "b", 50, 60)
	if len(wh.Workspace.Canvas.Archived) != 0 {
		t.Fatalf("unarchive left component in canvas")
	}
	b := wh.Workspace.Boards[1]
	if len(b.Components) != 2 {
		t.Fatalf("unarchive did not append to board: %d", len(b.Components))
	}
	back := b.Components[1]
	if back.ID != "c3" || back.Placement.X != 50 || back.Placement.Y != 60 {
		t.Fatalf("board coordinates not applied: %+v", back)
	}
	if back.Z != 1 {
		t.Fatalf("expected z appended after existing components, got %d", back.Z)
	}
}
