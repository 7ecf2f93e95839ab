/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"boardstudio/internal/domain"
	"boardstudio/internal/storage"
)

// SVGOptions controls SVG export behavior.
// - DPI defines the physical pixel size; width/height attributes use pixels derived from DPI.
// - The coordinate system matches the model (points). A viewBox is provided to scale.
//
//nolint:revive // clarity is preferred
type SVGOptions struct {
	IncludeGrid     bool
	GridSize        float64
	DPI             int
	GridColor       domain.Color
	ComponentStroke domain.Stroke
	Boards          []string // if empty, export all boards
}

// ExportBoardSVGFiles exports each selected board as a separate SVG file.
// Files will be named board-<id>.svg under outDir or the workspace's exports folder.
func ExportBoardSVGFiles(wh *storage.WorkspaceHandle, outDir string, opt SVGOptions) error {
	if wh == nil {
		return fmt.Errorf("workspace handle is nil")
	}

	// Defaults
	gridCol := opt.GridColor
	if gridCol.A == 0 && gridCol.R == 0 && gridCol.G == 0 && gridCol.B == 0 {
		gridCol = domain.Color{R: 220, G: 224, B: 230, A: 255}
	}
	compStroke := opt.ComponentStroke
	if compStroke.Width == 0 {
		compStroke = domain.Stroke{Color: domain.Color{R: 60, G: 64, B: 72, A: 255}, Width: 1}
	}
	gridSize := opt.GridSize
	if gridSize <= 0 {
		gridSize = 8
	}
	dpi := opt.DPI
	if dpi <= 0 {
		dpi = 96
	}

	// Resolve output directory
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(wh.Root, "exports", outDir)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}

	for _, bd := range selectBoards(&wh.Workspace, opt.Boards) {
		scale := float64(dpi) / 72.0
		pxW := int(math.Round(bd.Width * scale))
		pxH := int(math.Round(bd.Height * scale))

		var buf bytes.Buffer
		var werr error
		wf := func(format string, args ...any) {
			if werr != nil {
				return
			}
			_, werr = fmt.Fprintf(&buf, format, args...)
		}

		wf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
		wf("<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" width=\"%dpx\" height=\"%dpx\" viewBox=\"0 0 %g %g\">\n", pxW, pxH, bd.Width, bd.Height)
		// Board background white
		wf("  <rect x=\"0\" y=\"0\" width=\"%g\" height=\"%g\" fill=\"#ffffff\"/>\n", bd.Width, bd.Height)

		if opt.IncludeGrid {
			gc := svgColor(gridCol)
			for x := gridSize; x < bd.Width; x += gridSize {
				wf("  <line x1=\"%g\" y1=\"0\" x2=\"%g\" y2=\"%g\" stroke=\"%s\" stroke-width=\"0.2\"/>\n", x, x, bd.Height, gc)
			}
			for y := gridSize; y < bd.Height; y += gridSize {
				wf("  <line x1=\"0\" y1=\"%g\" x2=\"%g\" y2=\"%g\" stroke=\"%s\" stroke-width=\"0.2\"/>\n", y, bd.Width, y, gc)
			}
		}

		sc := svgColor(compStroke.Color)

		// Draw in z order so overlapping components stack the way the editor shows them.
		for _, c := range componentsByZ(bd.Components) {
			r := c.Placement
			fill := svgColor(kindFill(c.Kind))
			if c.Kind == domain.KindPlaceholder {
				wf("  <rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" fill=\"%s\" stroke=\"%s\" stroke-width=\"%g\" stroke-dasharray=\"4 3\"/>\n", r.X, r.Y, r.Width, r.Height, fill, sc, compStroke.Width)
			} else {
				wf("  <rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" fill=\"%s\" stroke=\"%s\" stroke-width=\"%g\"/>\n", r.X, r.Y, r.Width, r.Height, fill, sc, compStroke.Width)
			}
			if c.Title != "" {
				pad := 6.0
				wf("  <text x=\"%g\" y=\"%g\" font-family=\"Helvetica, Arial, sans-serif\" font-size=\"12\" fill=\"#000\">%s</text>\n", r.X+pad, r.Y+pad+12, escText(c.Title))
			}
		}

		wf("</svg>\n")

		if werr != nil {
			return fmt.Errorf("build svg: %w", werr)
		}

		name := filepath.Join(outDir, fmt.Sprintf("board-%s.svg", bd.ID))
		if err := os.WriteFile(name, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write svg: %w", err)
		}
	}
	return nil
}

// selectBoards returns the boards matching ids, or all boards when ids is empty.
// Unknown ids are skipped silently.
func selectBoards(ws *domain.Workspace, ids []string) []domain.Board {
	if len(ids) == 0 {
		return ws.Boards
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := make([]domain.Board, 0, len(ids))
	for _, bd := range ws.Boards {
		if want[bd.ID] {
			out = append(out, bd)
		}
	}
	return out
}

// componentsByZ returns a copy of comps sorted ascending by z so lower
// components are drawn first.
func componentsByZ(comps []domain.Component) []domain.Component {
	out := make([]domain.Component, len(comps))
	copy(out, comps)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Z < out[j].Z })
	return out
}

// kindFill maps a component kind onto its export fill color.
func kindFill(k domain.Kind) domain.Color {
	switch k {
	case domain.KindChart:
		return domain.Color{R: 219, G: 234, B: 254, A: 255}
	case domain.KindText:
		return domain.Color{R: 243, G: 244, B: 246, A: 255}
	case domain.KindKPI:
		return domain.Color{R: 220, G: 252, B: 231, A: 255}
	case domain.KindTable:
		return domain.Color{R: 237, G: 233, B: 254, A: 255}
	case domain.KindImage:
		return domain.Color{R: 255, G: 237, B: 213, A: 255}
	default:
		return domain.Color{R: 229, G: 231, B: 235, A: 255}
	}
}

func svgColor(c domain.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func escText(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch ch {
		case '&':
			out = append(out, '&', 'a', 'm', 'p', ';')
		case '<':
			out = append(out, '&', 'l', 't', ';')
		case '>':
			out = append(out, '&', 'g', 't', ';')
		default:
			out = append(out, ch)
		}
	}
	return string(out)
}
