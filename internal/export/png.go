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
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"boardstudio/internal/domain"
	"boardstudio/internal/storage"
)

// PNGOptions controls PNG export behavior.
// - DPI: when > 0 overrides the default raster density
// - IncludeGrid: draw the editor grid as hairlines
// - Boards: if empty, export all
// - Styles control colors and stroke widths; reasonable defaults are applied if zero values.
//
//nolint:revive // clarity is preferred
type PNGOptions struct {
	IncludeGrid     bool
	GridSize        float64
	DPI             int
	GridColor       domain.Color
	ComponentStroke domain.Stroke
	Boards          []string
}

// ExportBoardPNGFiles exports each selected board as a separate PNG file.
// Output files are named board-<id>.png under the workspace's exports folder
// unless outDir is absolute.
func ExportBoardPNGFiles(wh *storage.WorkspaceHandle, outDir string, opt PNGOptions) error {
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

	// Pixel dimensions from points (1pt = 1/72")
	scale := float64(dpi) / 72.0

	for _, bd := range selectBoards(&wh.Workspace, opt.Boards) {
		pixW := int(math.Round(bd.Width * scale))
		pixH := int(math.Round(bd.Height * scale))

		img := image.NewRGBA(image.Rect(0, 0, pixW, pixH))
		// Background white
		draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{255, 255, 255, 255}}, image.Point{}, draw.Src)

		if opt.IncludeGrid {
			gc := toRGBA(gridCol)
			for x := gridSize; x < bd.Width; x += gridSize {
				px := int(math.Round(x * scale))
				for y := 0; y < pixH; y++ {
					img.SetRGBA(px, y, gc)
				}
			}
			for y := gridSize; y < bd.Height; y += gridSize {
				py := int(math.Round(y * scale))
				for x := 0; x < pixW; x++ {
					img.SetRGBA(x, py, gc)
				}
			}
		}

		sc := toRGBA(compStroke.Color)
		for _, c := range componentsByZ(bd.Components) {
			r := c.Placement
			x := int(math.Round(r.X * scale))
			y := int(math.Round(r.Y * scale))
			w := int(math.Round(r.Width * scale))
			h := int(math.Round(r.Height * scale))
			if w <= 0 || h <= 0 {
				continue
			}
			fillRect(img, x, y, x+w-1, y+h-1, toRGBA(kindFill(c.Kind)))
			strokeRect(img, x, y, x+w-1, y+h-1, sc)

			if c.Title != "" {
				drawLabel(img, x+6, y+16, c.Title)
			}
		}

		name := filepath.Join(outDir, fmt.Sprintf("board-%s.png", bd.ID))
		f, err := os.Create(name)
		if err != nil {
			return fmt.Errorf("create png: %w", err)
		}
		if err := png.Encode(f, img); err != nil {
			_ = f.Close()
			return fmt.Errorf("encode png: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close png: %w", err)
		}
	}
	return nil
}

func toRGBA(c domain.Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// drawLabel renders s at (x, y) using the fixed 7x13 face. The baseline
// sits at y; titles that overflow the image are clipped by the drawer.
func drawLabel(img *image.RGBA, x, y int, s string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{0, 0, 0, 255}),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// strokeRect draws a 1px axis-aligned rectangle border inclusive of endpoints.
func strokeRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	// top and bottom
	for x := x0; x <= x1; x++ {
		img.SetRGBA(x, y0, col)
		img.SetRGBA(x, y1, col)
	}
	// left and right
	for y := y0; y <= y1; y++ {
		img.SetRGBA(x0, y, col)
		img.SetRGBA(x1, y, col)
	}
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			img.SetRGBA(x, y, col)
		}
	}
}
