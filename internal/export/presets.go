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
	"path/filepath"
	"strings"

	"boardstudio/internal/storage"
)

// PresetName selects a bundled export configuration.
type PresetName string

const (
	// PresetWeb targets screen use: 96 DPI rasters, no grid overlay.
	PresetWeb PresetName = "web"
	// PresetPrint targets print proofs: 300 DPI rasters with the grid drawn.
	PresetPrint PresetName = "print"
)

// BatchOptions describes one batch export run.
// Formats may list any of "pdf", "png", "svg"; an empty list uses the
// preset's defaults. Boards selects board IDs; empty means all boards.
type BatchOptions struct {
	Preset      PresetName
	Formats     []string
	Boards      []string
	DPIOverride int
	IncludeGrid *bool // overrides the preset's grid default when non-nil
	OutDir      string
}

// BatchExport runs the selected formats for one workspace, writing under
// <root>/exports/<preset>/<format>/ unless OutDir is set.
func BatchExport(wh *storage.WorkspaceHandle, opt BatchOptions) error {
	if wh == nil {
		return fmt.Errorf("workspace handle is nil")
	}
	preset := opt.Preset
	if preset == "" {
		preset = PresetWeb
	}
	if preset != PresetWeb && preset != PresetPrint {
		return fmt.Errorf("unknown preset %q", preset)
	}

	formats := opt.Formats
	if len(formats) == 0 {
		formats = presetDefaultFormats(preset)
	}

	dpi := presetDPI(preset)
	if opt.DPIOverride > 0 {
		dpi = opt.DPIOverride
	}
	grid := preset == PresetPrint
	if opt.IncludeGrid != nil {
		grid = *opt.IncludeGrid
	}

	for _, f := range formats {
		format := strings.ToLower(strings.TrimSpace(f))
		outDir := opt.OutDir
		if outDir == "" {
			outDir = filepath.Join(string(preset), format)
		}
		switch format {
		case "pdf":
			err := ExportWorkspacePDF(wh, filepath.Join(outDir, "boards.pdf"), PDFOptions{
				IncludeGrid: grid,
				Boards:      opt.Boards,
			})
			if err != nil {
				return fmt.Errorf("preset %s pdf: %w", preset, err)
			}
		case "png":
			err := ExportBoardPNGFiles(wh, outDir, PNGOptions{
				IncludeGrid: grid,
				DPI:         dpi,
				Boards:      opt.Boards,
			})
			if err != nil {
				return fmt.Errorf("preset %s png: %w", preset, err)
			}
		case "svg":
			err := ExportBoardSVGFiles(wh, outDir, SVGOptions{
				IncludeGrid: grid,
				DPI:         dpi,
				Boards:      opt.Boards,
			})
			if err != nil {
				return fmt.Errorf("preset %s svg: %w", preset, err)
			}
		default:
			return fmt.Errorf("unknown format %q", f)
		}
	}
	return nil
}

func presetDefaultFormats(p PresetName) []string {
	switch p {
	case PresetPrint:
		return []string{"pdf", "png"}
	default:
		return []string{"png", "svg"}
	}
}

func presetDPI(p PresetName) int {
	if p == PresetPrint {
		return 300
	}
	return 96
}
