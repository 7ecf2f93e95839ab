/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// This file defines the core data model for Board Studio workspaces.
// A workspace holds boards (bounded containers of positioned components) and
// the outer canvas, which carries pan/zoom state and archived components.
// The model serializes to a human-readable JSON manifest.

// Workspace is the root document.
type Workspace struct {
	Name     string   `json:"name"`
	Metadata Metadata `json:"metadata,omitempty"`
	Boards   []Board  `json:"boards"`
	Canvas   Canvas   `json:"canvas"`
}

// Metadata contains optional descriptive metadata for a workspace.
type Metadata struct {
	Owner string `json:"owner,omitempty"`
	Team  string `json:"team,omitempty"`
	Notes string `json:"notes,omitempty"`
}

// Board is a bounded container of components, analogous to an artboard.
// A component belongs to exactly one board (or the canvas archive) at any
// time; moving it between containers is a move, never a copy.
type Board struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Width      float64     `json:"width"`
	Height     float64     `json:"height"`
	Components []Component `json:"components"`
}

// Canvas is the infinite pan/zoom surface hosting boards. Archived components
// live here detached from any board, with canvas-space coordinates.
type Canvas struct {
	Zoom     float64     `json:"zoom"`
	OffsetX  float64     `json:"offsetX"`
	OffsetY  float64     `json:"offsetY"`
	Archived []Component `json:"archived,omitempty"`
}

// Kind identifies a component renderer. The set is closed; unknown values
// parse to KindPlaceholder and render as a placeholder box rather than
// failing at runtime.
type Kind string

const (
	KindChart       Kind = "chart"
	KindText        Kind = "text"
	KindKPI         Kind = "kpi"
	KindTable       Kind = "table"
	KindImage       Kind = "image"
	KindPlaceholder Kind = "placeholder"
)

// ParseKind maps a manifest string onto a known Kind, failing closed.
func ParseKind(s string) Kind {
	switch Kind(s) {
	case KindChart, KindText, KindKPI, KindTable, KindImage:
		return Kind(s)
	default:
		return KindPlaceholder
	}
}

// Component is one positioned element on a board or the canvas archive.
type Component struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Title     string    `json:"title,omitempty"`
	Placement Placement `json:"placement"`
	Z         int       `json:"z"`
	Rotation  float64   `json:"rotation,omitempty"`
	Locked    bool      `json:"locked,omitempty"`
	// DataRef points at the external data source feeding a chart/kpi/table.
	// Opaque to the editor.
	DataRef string `json:"dataRef,omitempty"`
}

// Placement is the durable position record of a component, in the coordinate
// space of its owning container (board-local, or canvas space for archived
// components). Width and Height are never negative.
type Placement struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Color and Stroke are shared styling primitives used by export.

type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

type Stroke struct {
	Color Color   `json:"color"`
	Width float64 `json:"width"`
}
