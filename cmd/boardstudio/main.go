/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"boardstudio/internal/backend"
	"boardstudio/internal/bundle"
	"boardstudio/internal/crash"
	"boardstudio/internal/domain"
	"boardstudio/internal/export"
	applog "boardstudio/internal/log"
	"boardstudio/internal/storage"
	"boardstudio/internal/ui"
	"boardstudio/internal/version"
)

func usage() {
	fmt.Println("Board Studio — visual board editor")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  boardstudio version|-v|--version          Show version")
	fmt.Println("  boardstudio init <dir> <name>              Create a new workspace at <dir> with name <name>")
	fmt.Println("  boardstudio open <dir>                      Open workspace at <dir> and print summary")
	fmt.Println("  boardstudio save <dir>                      Save workspace at <dir> (creates backup)")
	fmt.Println("  boardstudio export <dir> [web|print]        Batch-export boards under <dir>/exports")
	fmt.Println("  boardstudio search <dir> <text>             Search component titles in a workspace")
	fmt.Println("  boardstudio reindex <dir>                   Rebuild the workspace search index")
	fmt.Println("  boardstudio bundle <dir> <zip>              Zip workspace assets into <zip>")
	fmt.Println("  boardstudio install <dir> <zip>             Install an asset bundle into a workspace")
	fmt.Println("  boardstudio serve                           Run the sync backend HTTP server")
	fmt.Println("  boardstudio ui [<dir>]                      Launch desktop UI (build with -tags fyne for full UI)")
}

func main() {
	// initialize structured logging using environment defaults
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("cli")
	var wh *storage.WorkspaceHandle
	defer func() { crash.Recover(wh) }()

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println("Board Studio — visual board editor")
			fmt.Println(version.String())
			return
		case "init":
			if len(args) < 4 {
				fmt.Println("init requires <dir> and <name>")
				usage()
				os.Exit(2)
			}
			dir := args[2]
			name := args[3]
			abs, _ := filepath.Abs(dir)
			l.Info("init workspace", slog.String("root", abs), slog.String("name", name))
			ws := domain.Workspace{
				Name:   name,
				Canvas: domain.Canvas{Zoom: 1},
				Boards: []domain.Board{
					{ID: "board-1", Name: "Board 1", Width: 1920, Height: 1080},
				},
			}
			h, err := storage.InitWorkspace(abs, ws)
			if err != nil {
				l.Error("init failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			wh = h
			fmt.Println("Created workspace at", abs)
			return
		case "open":
			if len(args) < 3 {
				fmt.Println("open requires <dir>")
				usage()
				os.Exit(2)
			}
			dir := args[2]
			abs, _ := filepath.Abs(dir)
			l.Info("open workspace", slog.String("root", abs))
			h, err := storage.Open(abs)
			if err != nil {
				l.Error("open failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			wh = h
			fmt.Printf("Opened workspace: %s\n", h.Workspace.Name)
			fmt.Printf("Boards: %d\n", len(h.Workspace.Boards))
			fmt.Println("Root:", h.Root)
			return
		case "save":
			if len(args) < 3 {
				fmt.Println("save requires <dir>")
				usage()
				os.Exit(2)
			}
			dir := args[2]
			abs, _ := filepath.Abs(dir)
			l.Info("save workspace", slog.String("root", abs))
			h, err := storage.Open(abs)
			if err != nil {
				l.Error("open before save failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			wh = h
			// Touch metadata to ensure changed content for demo purposes
			h.Workspace.Metadata.Notes = fmt.Sprintf("Saved at %s", time.Now().Format(time.RFC3339))
			if err := storage.Save(h); err != nil {
				l.Error("save failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Println("Saved workspace and created a backup of previous manifest (if any).")
			return
		case "export":
			if len(args) < 3 {
				fmt.Println("export requires <dir>")
				usage()
				os.Exit(2)
			}
			dir := args[2]
			abs, _ := filepath.Abs(dir)
			preset := export.PresetWeb
			if len(args) >= 4 {
				preset = export.PresetName(args[3])
			}
			l.Info("export workspace", slog.String("root", abs), slog.String("preset", string(preset)))
			h, err := storage.Open(abs)
			if err != nil {
				l.Error("open before export failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			wh = h
			if err := export.BatchExport(h, export.BatchOptions{Preset: preset}); err != nil {
				l.Error("export failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Println("Exported boards under", filepath.Join(abs, "exports", string(preset)))
			return
		case "search":
			if len(args) < 4 {
				fmt.Println("search requires <dir> and <text>")
				usage()
				os.Exit(2)
			}
			abs, _ := filepath.Abs(args[2])
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			results, err := storage.Search(ctx, abs, storage.SearchQuery{Text: args[3], Limit: 50})
			if err != nil {
				l.Error("search failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			for _, r := range results {
				board := r.BoardID
				if board == "" {
					board = "(archived)"
				}
				fmt.Printf("%s\t%s\t[%s]\t%s\n", r.ComponentID, board, r.Kind, r.Title)
			}
			fmt.Printf("%d result(s)\n", len(results))
			return
		case "reindex":
			if len(args) < 3 {
				fmt.Println("reindex requires <dir>")
				usage()
				os.Exit(2)
			}
			abs, _ := filepath.Abs(args[2])
			h, err := storage.Open(abs)
			if err != nil {
				l.Error("open before reindex failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			wh = h
			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()
			if err := storage.RebuildIndex(ctx, abs, h.Workspace); err != nil {
				l.Error("reindex failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Println("Rebuilt index at", storage.IndexPath(abs))
			return
		case "bundle":
			if len(args) < 4 {
				fmt.Println("bundle requires <dir> and <zip>")
				usage()
				os.Exit(2)
			}
			abs, _ := filepath.Abs(args[2])
			if err := bundle.ExportWorkspaceAssets(abs, args[3]); err != nil {
				l.Error("bundle failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Println("Wrote asset bundle to", args[3])
			return
		case "install":
			if len(args) < 4 {
				fmt.Println("install requires <dir> and <zip>")
				usage()
				os.Exit(2)
			}
			abs, _ := filepath.Abs(args[2])
			n, err := bundle.InstallBundle(abs, args[3])
			if err != nil {
				l.Error("install failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Printf("Installed %d files into %s\n", n, filepath.Join(abs, "assets"))
			return
		case "serve":
			if err := backend.Start(); err != nil {
				l.Error("server failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		case "ui":
			var dir string
			if len(args) >= 3 {
				dir = args[2]
			}
			if err := ui.Run(dir); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		}
	}

	usage()
}
