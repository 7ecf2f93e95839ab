/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"boardstudio/internal/domain"
	"boardstudio/internal/storage"
)

// PDFOptions controls PDF export behavior.
// Units are points (pt); board model coordinates map 1:1 onto the page.
// Vector text is used whenever possible; we rely on built-in Helvetica for portability.
// In later phases, font embedding can be added using TTFs.
//
// Each exported board becomes one page sized to the board dimensions.
//
//nolint:revive // keep options grouped and explicit for clarity
type PDFOptions struct {
	IncludeGrid     bool
	GridSize        float64
	GridColor       domain.Color
	ComponentStroke domain.Stroke
	Boards          []string // if empty, export all boards
}

// ExportWorkspacePDF exports the selected boards to a single multi-page PDF placed at outPath.
func ExportWorkspacePDF(wh *storage.WorkspaceHandle, outPath string, opt PDFOptions) error {
	if wh == nil {
		return fmt.Errorf("workspace handle is nil")
	}
	boards := selectBoards(&wh.Workspace, opt.Boards)
	if len(boards) == 0 {
		return fmt.Errorf("no boards to export")
	}

	// Default styles
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

	// Use points for 1:1 mapping from model to PDF
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: boards[0].Width, Ht: boards[0].Height},
		// Orientation follows the page size
		OrientationStr: "",
	})
	pdf.SetTitle(fmt.Sprintf("%s — Boards", wh.Workspace.Name), false)
	pdf.SetAuthor("Board Studio", false)

	// Built-in Helvetica keeps text vector without embedding
	pdf.SetFont("Helvetica", "", 12)

	for _, bd := range boards {
		pdf.AddPageFormat("", gofpdf.SizeType{Wd: bd.Width, Ht: bd.Height})

		if opt.IncludeGrid {
			setDrawColor(pdf, gridCol)
			pdf.SetLineWidth(0.2)
			for x := gridSize; x < bd.Width; x += gridSize {
				pdf.Line(x, 0, x, bd.Height)
			}
			for y := gridSize; y < bd.Height; y += gridSize {
				pdf.Line(0, y, bd.Width, y)
			}
		}

		for _, c := range componentsByZ(bd.Components) {
			r := c.Placement
			setFillColor(pdf, kindFill(c.Kind))
			setDrawColor(pdf, compStroke.Color)
			pdf.SetLineWidth(compStroke.Width)
			pdf.Rect(r.X, r.Y, r.Width, r.Height, "FD")

			if c.Title != "" {
				pad := 6.0
				pdf.SetFont("Helvetica", "", 12)
				pdf.SetTextColor(0, 0, 0)
				// approx baseline offset for 12pt
				pdf.Text(r.X+pad, r.Y+pad+12, c.Title)
			}
		}
	}

	// Ensure output path is under the workspace exports folder if relative
	if !filepath.IsAbs(outPath) {
		outPath = filepath.Join(wh.Root, "exports", outPath)
	}
	// Ensure directory exists
	dir := filepath.Dir(outPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func setDrawColor(pdf *gofpdf.Fpdf, c domain.Color) {
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}

func setFillColor(pdf *gofpdf.Fpdf, c domain.Color) {
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}
