//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"boardstudio/internal/crash"
	"boardstudio/internal/domain"
	"boardstudio/internal/export"
	"boardstudio/internal/interact"
	"boardstudio/internal/layout"
	applog "boardstudio/internal/log"
	"boardstudio/internal/storage"
	"boardstudio/internal/undo"
	"boardstudio/internal/version"
)

// Run starts the Fyne-based desktop UI shell with the board canvas editor.
func Run(workspaceDir string) error {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("ui")
	l.Info("starting UI")

	var wh *storage.WorkspaceHandle
	defer func() { crash.Recover(wh) }()

	fyneApp := app.NewWithID("boardstudio")
	w := fyneApp.NewWindow("Board Studio")
	// Restore window size from preferences (with sane minimums)
	prefs := fyneApp.Preferences()
	winW := prefs.IntWithFallback("window.width", 1200)
	winH := prefs.IntWithFallback("window.height", 800)
	if winW < 800 {
		winW = 800
	}
	if winH < 600 {
		winH = 600
	}
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))

	status := widget.NewLabel("Ready")
	bc := NewBoardCanvas()

	currentBoardIdx := 0

	// Undo manager with safeguards (snapshots capture one Board at a time)
	undoMgr := undo.NewManager(undo.Config{
		MaxBytes:    32 * 1024 * 1024, // 32 MiB in-memory cap
		MaxPerBoard: 20,
		MinInterval: 300 * time.Millisecond,
	})

	currentBoard := func() *domain.Board {
		if wh == nil || currentBoardIdx < 0 || currentBoardIdx >= len(wh.Workspace.Boards) {
			return nil
		}
		return &wh.Workspace.Boards[currentBoardIdx]
	}

	captureBoardSnapshot := func() ([]byte, string, error) {
		bd := currentBoard()
		if bd == nil {
			return nil, "", fmt.Errorf("no workspace/board open")
		}
		blob, err := json.Marshal(*bd)
		if err != nil {
			return nil, "", err
		}
		return blob, bd.ID, nil
	}

	var refreshBoardsList func()
	var refreshComponentsUI func()
	var showBoard func(idx int)

	applyBoardSnapshot := func(blob []byte) error {
		if wh == nil {
			return fmt.Errorf("no workspace open")
		}
		var bd domain.Board
		if err := json.Unmarshal(blob, &bd); err != nil {
			return err
		}
		if currentBoardIdx >= 0 && currentBoardIdx < len(wh.Workspace.Boards) {
			wh.Workspace.Boards[currentBoardIdx] = bd
		} else {
			wh.Workspace.Boards = append(wh.Workspace.Boards, bd)
			currentBoardIdx = len(wh.Workspace.Boards) - 1
		}
		if err := storage.Save(wh); err != nil {
			return err
		}
		refreshBoardsList()
		refreshComponentsUI()
		showBoard(currentBoardIdx)
		return nil
	}

	pushUndoSnapshot := func() {
		blob, boardID, err := captureBoardSnapshot()
		if err != nil {
			return
		}
		undoMgr.PushSnapshot(undo.Snapshot{BoardID: boardID, Blob: blob, TS: time.Now()})
	}

	// Boards navigation (left)
	boardsDisplay := []string{}
	boardsList := widget.NewList(
		func() int { return len(boardsDisplay) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			if i >= 0 && int(i) < len(boardsDisplay) {
				o.(*widget.Label).SetText(boardsDisplay[i])
			} else {
				o.(*widget.Label).SetText("")
			}
		},
	)
	left := container.NewBorder(
		container.NewVBox(widget.NewLabel("Boards"), widget.NewSeparator()), nil, nil, nil,
		boardsList,
	)

	// Component inspector (right)
	compDisplay := []string{}
	compIDs := []string{}
	selectedComp := -1
	compFilter := ""
	compList := widget.NewList(
		func() int { return len(compDisplay) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			if i >= 0 && int(i) < len(compDisplay) {
				o.(*widget.Label).SetText(compDisplay[i])
			}
		},
	)
	compList.OnSelected = func(id widget.ListItemID) {
		selectedComp = int(id)
		if selectedComp >= 0 && selectedComp < len(compIDs) {
			l.Info("component selected", slog.Int("index", selectedComp), slog.String("component_id", compIDs[selectedComp]))
			bc.HighlightComponentID(compIDs[selectedComp])
		}
	}

	refreshBoardsList = func() {
		boardsDisplay = boardsDisplay[:0]
		if wh == nil {
			boardsList.Refresh()
			return
		}
		for _, bd := range wh.Workspace.Boards {
			name := bd.Name
			if name == "" {
				name = bd.ID
			}
			boardsDisplay = append(boardsDisplay, fmt.Sprintf("%s (%d)", name, len(bd.Components)))
		}
		boardsList.Refresh()
		if currentBoardIdx >= 0 && currentBoardIdx < len(boardsDisplay) {
			boardsList.Select(currentBoardIdx)
		}
	}

	refreshComponentsUI = func() {
		compDisplay = compDisplay[:0]
		compIDs = compIDs[:0]
		selectedComp = -1
		bd := currentBoard()
		if bd == nil {
			compList.Refresh()
			return
		}
		// stable order by z
		tmp := append([]domain.Component(nil), bd.Components...)
		sort.SliceStable(tmp, func(i, j int) bool { return tmp[i].Z < tmp[j].Z })
		f := strings.ToLower(strings.TrimSpace(compFilter))
		for _, c := range tmp {
			label := fmt.Sprintf("%s  [%s] z=%d", c.ID, c.Kind, c.Z)
			if c.Title != "" {
				label = fmt.Sprintf("%s  %q [%s] z=%d", c.ID, c.Title, c.Kind, c.Z)
			}
			if c.Locked {
				label += " (locked)"
			}
			if f != "" && !strings.Contains(strings.ToLower(label), f) {
				continue
			}
			compDisplay = append(compDisplay, label)
			compIDs = append(compIDs, c.ID)
		}
		compList.Refresh()
	}

	showBoard = func(idx int) {
		if wh == nil || idx < 0 || idx >= len(wh.Workspace.Boards) {
			return
		}
		currentBoardIdx = idx
		bc.ShowBoard(wh.Workspace.Boards[idx])
		refreshComponentsUI()
	}

	boardsList.OnSelected = func(id widget.ListItemID) {
		showBoard(int(id))
	}

	// Canvas commit path: gesture results go through the collision resolver in
	// the controller; here we persist and refresh.
	bc.OnCommit = func(componentID string, r layout.Rect) {
		bd := currentBoard()
		if wh == nil || bd == nil {
			return
		}
		pushUndoSnapshot()
		pl := domain.Placement{X: float64(r.X), Y: float64(r.Y), Width: float64(r.W), Height: float64(r.H)}
		if err := storage.SetComponentPlacement(wh, bd.ID, componentID, pl); err != nil {
			status.SetText(fmt.Sprintf("Move failed: %v", err))
			return
		}
		if err := storage.Save(wh); err != nil {
			status.SetText(fmt.Sprintf("Save failed: %v", err))
			return
		}
		go func(ws domain.Workspace, root string) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := storage.UpdateIndex(ctx, root, ws); err != nil {
				l.Warn("index update failed", slog.String("error", err.Error()))
			}
		}(wh.Workspace, wh.Root)
		showBoard(currentBoardIdx)
		status.SetText(fmt.Sprintf("Moved %s to (%.0f, %.0f)", componentID, r.X, r.Y))
	}
	bc.OnSelect = func(componentID string) {
		for i, id := range compIDs {
			if id == componentID {
				compList.Select(i)
				return
			}
		}
	}

	// Palette: arming a kind places the next tap on the canvas through the
	// shared drop session, same path an external drag-in would take.
	dropSession := &interact.DropSession{}
	bc.OnPlaceDrop = func(pt layout.Pt) {
		p, ok := dropSession.Payload()
		if !ok {
			return
		}
		dropSession.End()
		bd := currentBoard()
		if wh == nil || bd == nil {
			return
		}
		pushUndoSnapshot()
		switch {
		case p.ComponentID != "" && p.SourceBoard != "":
			storage.TransferComponent(wh, p.SourceBoard, bd.ID, p.ComponentID, float64(pt.X), float64(pt.Y))
		case p.ComponentID != "":
			storage.UnarchiveComponent(wh, p.ComponentID, bd.ID, float64(pt.X), float64(pt.Y))
		default:
			comp := domain.Component{
				ID:   storage.NextComponentID(&wh.Workspace),
				Kind: domain.ParseKind(p.Kind),
				Placement: domain.Placement{
					X: float64(pt.X), Y: float64(pt.Y),
					Width: float64(p.Width), Height: float64(p.Height),
				},
			}
			if _, err := storage.AddComponent(wh, bd.ID, comp); err != nil {
				status.SetText(fmt.Sprintf("Add failed: %v", err))
				return
			}
		}
		if err := storage.Save(wh); err != nil {
			status.SetText(fmt.Sprintf("Save failed: %v", err))
			return
		}
		refreshBoardsList()
		showBoard(currentBoardIdx)
	}

	armKind := func(k domain.Kind) {
		dropSession.Begin(interact.DropPayload{Kind: string(k), Width: 320, Height: 240})
		status.SetText(fmt.Sprintf("Click the board to place a %s", k))
	}
	palette := container.NewHBox(
		widget.NewButton("Chart", func() { armKind(domain.KindChart) }),
		widget.NewButton("Text", func() { armKind(domain.KindText) }),
		widget.NewButton("KPI", func() { armKind(domain.KindKPI) }),
		widget.NewButton("Table", func() { armKind(domain.KindTable) }),
		widget.NewButton("Image", func() { armKind(domain.KindImage) }),
	)

	selectedComponentID := func() (string, bool) {
		if selectedComp >= 0 && selectedComp < len(compIDs) {
			return compIDs[selectedComp], true
		}
		return "", false
	}

	archiveBtn := widget.NewButton("Archive", func() {
		bd := currentBoard()
		id, ok := selectedComponentID()
		if wh == nil || bd == nil || !ok {
			return
		}
		pushUndoSnapshot()
		storage.ArchiveComponent(wh, bd.ID, id, wh.Workspace.Canvas.OffsetX, wh.Workspace.Canvas.OffsetY)
		if err := storage.Save(wh); err != nil {
			status.SetText(fmt.Sprintf("Save failed: %v", err))
			return
		}
		refreshBoardsList()
		showBoard(currentBoardIdx)
		status.SetText(fmt.Sprintf("Archived %s", id))
	})
	moveToBtn := widget.NewButton("Move to Board…", func() {
		bd := currentBoard()
		id, ok := selectedComponentID()
		if wh == nil || bd == nil || !ok {
			return
		}
		names := make([]string, 0, len(wh.Workspace.Boards))
		for _, b := range wh.Workspace.Boards {
			names = append(names, b.ID)
		}
		sel := widget.NewSelect(names, nil)
		dialog.ShowCustomConfirm("Move Component", "Move", "Cancel", sel, func(okd bool) {
			if !okd || sel.Selected == "" || sel.Selected == bd.ID {
				return
			}
			pushUndoSnapshot()
			storage.TransferComponent(wh, bd.ID, sel.Selected, id, 0, 0)
			if err := storage.Save(wh); err != nil {
				status.SetText(fmt.Sprintf("Save failed: %v", err))
				return
			}
			refreshBoardsList()
			showBoard(currentBoardIdx)
			status.SetText(fmt.Sprintf("Moved %s to %s", id, sel.Selected))
		}, w)
	})
	frontBtn := widget.NewButton("Raise", func() {
		bd := currentBoard()
		id, ok := selectedComponentID()
		if wh == nil || bd == nil || !ok {
			return
		}
		pushUndoSnapshot()
		if err := storage.MoveComponentZ(wh, bd.ID, id, 1); err != nil {
			status.SetText(fmt.Sprintf("Raise failed: %v", err))
			return
		}
		_ = storage.Save(wh)
		showBoard(currentBoardIdx)
	})
	backBtn := widget.NewButton("Lower", func() {
		bd := currentBoard()
		id, ok := selectedComponentID()
		if wh == nil || bd == nil || !ok {
			return
		}
		pushUndoSnapshot()
		if err := storage.MoveComponentZ(wh, bd.ID, id, -1); err != nil {
			status.SetText(fmt.Sprintf("Lower failed: %v", err))
			return
		}
		_ = storage.Save(wh)
		showBoard(currentBoardIdx)
	})

	filterEntry := widget.NewEntry()
	filterEntry.SetPlaceHolder("Filter components…")
	filterEntry.OnChanged = func(s string) {
		compFilter = s
		refreshComponentsUI()
	}

	right := container.NewBorder(
		container.NewVBox(widget.NewLabel("Components"), filterEntry, widget.NewSeparator()),
		container.NewVBox(container.NewHBox(frontBtn, backBtn), container.NewHBox(archiveBtn, moveToBtn)),
		nil, nil,
		compList,
	)

	// Grid toggle
	gridCheck := widget.NewCheck("Grid", func(v bool) {
		bc.showGrid = v
		prefs.SetBool("view.grid", v)
		bc.Refresh()
	})
	savedGrid := prefs.BoolWithFallback("view.grid", true)
	bc.showGrid = savedGrid
	gridCheck.SetChecked(savedGrid)

	openWorkspace := func(root string) {
		h, err := storage.Open(root)
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		wh = h
		currentBoardIdx = 0
		addRecentWorkspace(prefs, root)
		w.SetTitle(fmt.Sprintf("Board Studio — %s", wh.Workspace.Name))
		refreshBoardsList()
		showBoard(0)
		status.SetText(fmt.Sprintf("Opened %s", root))
		go func(ws domain.Workspace, root string) {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if _, err := storage.DetectAndRebuildIndex(ctx, root, ws); err != nil {
				l.Warn("index check failed", slog.String("error", err.Error()))
				return
			}
			if err := storage.BuildIndexIfEmpty(ctx, root, ws); err != nil {
				l.Warn("index build failed", slog.String("error", err.Error()))
			}
		}(wh.Workspace, wh.Root)
	}

	doSave := func() {
		if wh == nil {
			return
		}
		if err := storage.Save(wh); err != nil {
			dialog.ShowError(err, w)
			return
		}
		status.SetText("Saved")
	}

	doUndo := func() {
		bd := currentBoard()
		if bd == nil {
			return
		}
		if snap, ok := undoMgr.Undo(bd.ID); ok {
			if err := applyBoardSnapshot(snap.Blob); err != nil {
				status.SetText(fmt.Sprintf("Undo failed: %v", err))
				return
			}
			status.SetText("Undo")
		}
	}
	doRedo := func() {
		bd := currentBoard()
		if bd == nil {
			return
		}
		if snap, ok := undoMgr.Redo(bd.ID); ok {
			if err := applyBoardSnapshot(snap.Blob); err != nil {
				status.SetText(fmt.Sprintf("Redo failed: %v", err))
				return
			}
			status.SetText("Redo")
		}
	}

	showSearchDialog := func() {
		if wh == nil {
			return
		}
		entry := widget.NewEntry()
		entry.SetPlaceHolder("Search component titles…")
		results := widget.NewLabel("")
		results.Wrapping = fyne.TextWrapWord
		runSearch := func(text string) {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			res, err := storage.Search(ctx, wh.Root, storage.SearchQuery{Text: text, Limit: 25})
			if err != nil {
				results.SetText(fmt.Sprintf("search error: %v", err))
				return
			}
			var b strings.Builder
			for _, r := range res {
				board := r.BoardID
				if board == "" {
					board = "(archived)"
				}
				fmt.Fprintf(&b, "%s  %s  %s\n", r.ComponentID, board, r.Snippet)
			}
			if b.Len() == 0 {
				b.WriteString("no matches")
			}
			results.SetText(b.String())
		}
		entry.OnSubmitted = runSearch
		content := container.NewBorder(entry, nil, nil, nil, container.NewVScroll(results))
		d := dialog.NewCustom("Search", "Close", content, w)
		d.Resize(fyne.NewSize(520, 400))
		d.Show()
	}

	exportMenu := fyne.NewMenu("Export",
		fyne.NewMenuItem("PDF (all boards)", func() {
			if wh == nil {
				return
			}
			if err := export.ExportWorkspacePDF(wh, "boards.pdf", export.PDFOptions{}); err != nil {
				dialog.ShowError(err, w)
				return
			}
			status.SetText("Exported PDF to exports/boards.pdf")
		}),
		fyne.NewMenuItem("PNG (all boards)", func() {
			if wh == nil {
				return
			}
			if err := export.ExportBoardPNGFiles(wh, "png", export.PNGOptions{}); err != nil {
				dialog.ShowError(err, w)
				return
			}
			status.SetText("Exported PNGs to exports/png/")
		}),
		fyne.NewMenuItem("SVG (all boards)", func() {
			if wh == nil {
				return
			}
			if err := export.ExportBoardSVGFiles(wh, "svg", export.SVGOptions{}); err != nil {
				dialog.ShowError(err, w)
				return
			}
			status.SetText("Exported SVGs to exports/svg/")
		}),
		fyne.NewMenuItem("Batch: Web preset", func() {
			if wh == nil {
				return
			}
			if err := export.BatchExport(wh, export.BatchOptions{Preset: export.PresetWeb}); err != nil {
				dialog.ShowError(err, w)
				return
			}
			status.SetText("Batch export (web) done")
		}),
		fyne.NewMenuItem("Batch: Print preset", func() {
			if wh == nil {
				return
			}
			if err := export.BatchExport(wh, export.BatchOptions{Preset: export.PresetPrint}); err != nil {
				dialog.ShowError(err, w)
				return
			}
			status.SetText("Batch export (print) done")
		}),
	)

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Workspace…", func() {
			dialog.ShowFolderOpen(func(list fyne.ListableURI, err error) {
				if err != nil || list == nil {
					return
				}
				root := filepath.Join(list.Path(), "untitled-workspace")
				h, ierr := storage.InitWorkspace(root, domain.Workspace{
					Name:   "Untitled Workspace",
					Canvas: domain.Canvas{Zoom: 1},
					Boards: []domain.Board{{ID: "board-1", Name: "Board 1", Width: 1920, Height: 1080}},
				})
				if ierr != nil {
					dialog.ShowError(ierr, w)
					return
				}
				wh = h
				currentBoardIdx = 0
				addRecentWorkspace(prefs, root)
				w.SetTitle(fmt.Sprintf("Board Studio — %s", wh.Workspace.Name))
				refreshBoardsList()
				showBoard(0)
				status.SetText(fmt.Sprintf("Created %s", root))
			}, w)
		}),
		fyne.NewMenuItem("Open…", func() {
			dialog.ShowFolderOpen(func(list fyne.ListableURI, err error) {
				if err != nil || list == nil {
					return
				}
				openWorkspace(list.Path())
			}, w)
		}),
		fyne.NewMenuItem("Save", doSave),
		fyne.NewMenuItem("Save As…", func() {
			if wh == nil {
				return
			}
			dialog.ShowFolderOpen(func(list fyne.ListableURI, err error) {
				if err != nil || list == nil {
					return
				}
				newRoot := filepath.Join(list.Path(), filepath.Base(wh.Root))
				if serr := storage.SaveAs(wh, newRoot); serr != nil {
					dialog.ShowError(serr, w)
					return
				}
				addRecentWorkspace(prefs, newRoot)
				status.SetText(fmt.Sprintf("Saved as %s", newRoot))
			}, w)
		}),
	)
	// Recent workspaces
	for _, rec := range loadRecentWorkspaces(prefs) {
		rec := rec
		fileMenu.Items = append(fileMenu.Items, fyne.NewMenuItem("Recent: "+rec, func() { openWorkspace(rec) }))
	}

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", doUndo),
		fyne.NewMenuItem("Redo", doRedo),
		fyne.NewMenuItem("Find…", showSearchDialog),
	)
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			dialog.ShowInformation("Board Studio", fmt.Sprintf("Board Studio %s", version.String()), w)
		}),
	)
	w.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, exportMenu, helpMenu))

	toolbar := container.NewHBox(palette, widget.NewSeparator(), gridCheck)
	center := container.NewBorder(toolbar, status, nil, nil, bc)
	split := container.NewHSplit(left, container.NewHSplit(center, right))
	split.SetOffset(0.18)
	w.SetContent(split)

	w.SetOnClosed(func() {
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
	})

	if strings.TrimSpace(workspaceDir) != "" {
		openWorkspace(workspaceDir)
	}

	w.ShowAndRun()
	return nil
}

// BoardCanvas draws one board with its components, runs drag/resize gestures
// through the interact controller, and renders live previews, alignment
// guides, and the selection overlay. Pan with background drag, zoom with the
// wheel.
type BoardCanvas struct {
	widget.BaseWidget
	// Interaction
	zoom    float32
	offsetX float32
	offsetY float32
	// Geometry (board units)
	boardW float32
	boardH float32

	showGrid bool

	comps    []domain.Component // z-ascending draw order
	selected int                // index into comps, -1 if none

	dragMode dragMode
	ctrl     *interact.Controller
	live     *layout.Rect
	guides   []layout.Guide

	// OnCommit delivers the resolved placement after a gesture ends.
	OnCommit func(componentID string, r layout.Rect)
	// OnSelect fires when a component becomes selected on the canvas.
	OnSelect func(componentID string)
	// OnPlaceDrop fires for a tap while a drop session is armed, with the
	// tap position in board coordinates.
	OnPlaceDrop func(pt layout.Pt)
}

// dragMode separates pan from controller-owned gestures.
type dragMode int

const (
	dragNone dragMode = iota
	dragPan
	dragGesture
)

func NewBoardCanvas() *BoardCanvas {
	bcv := &BoardCanvas{
		zoom:     0.5,
		boardW:   1920,
		boardH:   1080,
		selected: -1,
		showGrid: true,
	}
	bcv.ExtendBaseWidget(bcv)
	return bcv
}

// ShowBoard renders the given board's components in z order.
func (b *BoardCanvas) ShowBoard(bd domain.Board) {
	if bd.Width > 0 {
		b.boardW = float32(bd.Width)
	}
	if bd.Height > 0 {
		b.boardH = float32(bd.Height)
	}
	tmp := append([]domain.Component(nil), bd.Components...)
	sort.SliceStable(tmp, func(i, j int) bool { return tmp[i].Z < tmp[j].Z })
	b.comps = tmp
	b.selected = -1
	b.live = nil
	b.guides = nil
	if b.ctrl != nil {
		b.ctrl.Abort()
		b.ctrl = nil
	}
	b.Refresh()
}

// HighlightComponentID selects the component with the given ID, if present.
func (b *BoardCanvas) HighlightComponentID(id string) {
	b.selected = -1
	for i, c := range b.comps {
		if c.ID == id {
			b.selected = i
			break
		}
	}
	b.Refresh()
}

// Coordinate helpers: board <-> screen mapping
func (b *BoardCanvas) boardOriginAndScale() (cx, cy, scale float32) {
	size := b.Size()
	scaledW := b.boardW * b.zoom
	scaledH := b.boardH * b.zoom
	cx = size.Width/2 - scaledW/2 + b.offsetX
	cy = size.Height/2 - scaledH/2 + b.offsetY
	return cx, cy, b.zoom
}

func (b *BoardCanvas) viewport() interact.Viewport {
	cx, cy, s := b.boardOriginAndScale()
	return interact.Viewport{Scale: s, OriginX: cx, OriginY: cy}
}

func (b *BoardCanvas) toScreen(pt layout.Pt) fyne.Position {
	p := b.viewport().ToScreen(interact.BoardPt{X: pt.X, Y: pt.Y})
	return fyne.NewPos(p.X, p.Y)
}

func (b *BoardCanvas) toBoard(pos fyne.Position) layout.Pt {
	p := b.viewport().ToBoard(interact.ScreenPt{X: pos.X, Y: pos.Y})
	return layout.Pt{X: p.X, Y: p.Y}
}

func compRect(c domain.Component) layout.Rect {
	return layout.R(float32(c.Placement.X), float32(c.Placement.Y), float32(c.Placement.Width), float32(c.Placement.Height))
}

// hitTest returns the top-most component index under the board point.
func (b *BoardCanvas) hitTest(pt layout.Pt) int {
	for i := len(b.comps) - 1; i >= 0; i-- {
		if compRect(b.comps[i]).Contains(pt) {
			return i
		}
	}
	return -1
}

// Light-weight rectangle type for handle geometry
type fRect struct{ X, Y, Width, Height float32 }

func newFRect(x, y, w, h float32) fRect { return fRect{X: x, Y: y, Width: w, Height: h} }

func (r fRect) contains(pos fyne.Position) bool {
	return pos.X >= r.X && pos.X <= r.X+r.Width && pos.Y >= r.Y && pos.Y <= r.Y+r.Height
}

// handleOrder maps handle rect slots onto interact handles.
var handleOrder = [8]interact.Handle{
	interact.HandleNW, interact.HandleN, interact.HandleNE,
	interact.HandleW, interact.HandleE,
	interact.HandleSW, interact.HandleS, interact.HandleSE,
}

// handleRects computes the selection bbox and the 8 resize handles in screen coords.
func (b *BoardCanvas) handleRects() (bbox fRect, handles [8]fRect, ok bool) {
	if b.selected < 0 || b.selected >= len(b.comps) {
		return fRect{}, [8]fRect{}, false
	}
	r := compRect(b.comps[b.selected])
	if b.live != nil {
		r = *b.live
	}
	p0 := b.toScreen(layout.Pt{X: r.X, Y: r.Y})
	p1 := b.toScreen(layout.Pt{X: r.X + r.W, Y: r.Y + r.H})
	bx, by := p0.X, p0.Y
	bw, bh := p1.X-p0.X, p1.Y-p0.Y
	bbox = newFRect(bx, by, bw, bh)
	const sz = float32(8)
	mx := bx + bw/2
	my := by + bh/2
	handles = [8]fRect{
		newFRect(bx-sz/2, by-sz/2, sz, sz),       // NW
		newFRect(mx-sz/2, by-sz/2, sz, sz),       // N
		newFRect(bx+bw-sz/2, by-sz/2, sz, sz),    // NE
		newFRect(bx-sz/2, my-sz/2, sz, sz),       // W
		newFRect(bx+bw-sz/2, my-sz/2, sz, sz),    // E
		newFRect(bx-sz/2, by+bh-sz/2, sz, sz),    // SW
		newFRect(mx-sz/2, by+bh-sz/2, sz, sz),    // S
		newFRect(bx+bw-sz/2, by+bh-sz/2, sz, sz), // SE
	}
	return bbox, handles, true
}

// newController builds a gesture controller for the selected component with
// the current board snapshot installed.
func (b *BoardCanvas) newController() *interact.Controller {
	c := b.comps[b.selected]
	siblings := make([]layout.ComponentRect, 0, len(b.comps))
	for _, s := range b.comps {
		siblings = append(siblings, layout.ComponentRect{ID: s.ID, Rect: compRect(s)})
	}
	ctrl := interact.New(c.ID, interact.Config{Locked: c.Locked}, interact.Callbacks{
		OnLive: func(r *layout.Rect) {
			b.live = r
		},
		OnGuides: func(gs []layout.Guide) {
			b.guides = gs
		},
		OnCommit: func(r layout.Rect) {
			if b.selected >= 0 && b.selected < len(b.comps) {
				b.comps[b.selected].Placement = domain.Placement{
					X: float64(r.X), Y: float64(r.Y), Width: float64(r.W), Height: float64(r.H),
				}
			}
			if b.OnCommit != nil {
				b.OnCommit(c.ID, r)
			}
		},
	})
	ctrl.SetViewport(b.viewport())
	ctrl.SetBounds(layout.Size{W: b.boardW, H: b.boardH})
	ctrl.SetSiblings(siblings)
	return ctrl
}

// Tapped selects a component using hit testing, or places an armed drop.
func (b *BoardCanvas) Tapped(e *fyne.PointEvent) {
	pt := b.toBoard(e.Position)
	if b.OnPlaceDrop != nil {
		b.OnPlaceDrop(pt)
	}
	idx := b.hitTest(pt)
	b.selected = idx
	b.dragMode = dragNone
	if idx >= 0 && b.OnSelect != nil {
		b.OnSelect(b.comps[idx].ID)
	}
	b.Refresh()
}

// Dragged routes pointer drags: handle hits start a resize, selection body
// hits start a move, anything else pans the viewport.
func (b *BoardCanvas) Dragged(e *fyne.DragEvent) {
	pos := e.Position
	if b.dragMode == dragNone {
		start := fyne.NewPos(pos.X-e.Dragged.DX, pos.Y-e.Dragged.DY)
		if b.selected >= 0 {
			_, handles, ok := b.handleRects()
			if ok {
				for i, hr := range handles {
					if hr.contains(start) {
						b.ctrl = b.newController()
						b.ctrl.BeginResize(handleOrder[i], interact.ScreenPt{X: start.X, Y: start.Y}, compRect(b.comps[b.selected]))
						b.dragMode = dragGesture
						break
					}
				}
			}
		}
		if b.dragMode == dragNone {
			pt := b.toBoard(start)
			if hit := b.hitTest(pt); hit >= 0 {
				b.selected = hit
				if b.OnSelect != nil {
					b.OnSelect(b.comps[hit].ID)
				}
				b.ctrl = b.newController()
				b.ctrl.BeginDrag(interact.ScreenPt{X: start.X, Y: start.Y}, compRect(b.comps[hit]))
				b.dragMode = dragGesture
			} else {
				b.dragMode = dragPan
			}
		}
	}

	switch b.dragMode {
	case dragPan:
		b.offsetX += e.Dragged.DX
		b.offsetY += e.Dragged.DY
	case dragGesture:
		if b.ctrl != nil {
			b.ctrl.Move(interact.ScreenPt{X: pos.X, Y: pos.Y}, interact.Modifiers{})
		}
	}
	b.Refresh()
}

// DragEnd commits an active gesture. Releasing always commits; the collision
// resolver runs inside the controller.
func (b *BoardCanvas) DragEnd() {
	if b.dragMode == dragGesture && b.ctrl != nil {
		b.ctrl.End()
		b.ctrl = nil
	}
	b.dragMode = dragNone
	b.Refresh()
}

// Scrolled zooms the board view.
func (b *BoardCanvas) Scrolled(e *fyne.ScrollEvent) {
	step := e.Scrolled.DY * 0.05
	b.zoom += step
	if b.zoom < 0.1 {
		b.zoom = 0.1
	}
	if b.zoom > 4.0 {
		b.zoom = 4.0
	}
	b.Refresh()
}

// PreferredSize sets a decent default size for the widget.
func (b *BoardCanvas) PreferredSize() fyne.Size { return fyne.NewSize(800, 600) }

func kindFillColor(k domain.Kind) color.RGBA {
	switch k {
	case domain.KindChart:
		return color.RGBA{R: 219, G: 234, B: 254, A: 255}
	case domain.KindText:
		return color.RGBA{R: 243, G: 244, B: 246, A: 255}
	case domain.KindKPI:
		return color.RGBA{R: 220, G: 252, B: 231, A: 255}
	case domain.KindTable:
		return color.RGBA{R: 237, G: 233, B: 254, A: 255}
	case domain.KindImage:
		return color.RGBA{R: 255, G: 237, B: 213, A: 255}
	default:
		return color.RGBA{R: 229, G: 231, B: 235, A: 255}
	}
}

// CreateRenderer builds the canvas objects we position manually.
func (b *BoardCanvas) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(color.RGBA{R: 30, G: 30, B: 34, A: 255})

	board := canvas.NewRectangle(color.White)
	board.StrokeColor = color.RGBA{R: 20, G: 20, B: 20, A: 255}
	board.StrokeWidth = 2

	// Live preview outline while a gesture is active
	preview := canvas.NewRectangle(color.RGBA{0, 0, 0, 0})
	preview.StrokeColor = color.RGBA{R: 0, G: 170, B: 255, A: 200}
	preview.StrokeWidth = 1
	preview.Hide()

	// One guide line per axis; the snap resolver emits at most one match
	// per axis.
	vGuide := canvas.NewLine(color.RGBA{R: 255, G: 64, B: 129, A: 255})
	vGuide.StrokeWidth = 1
	vGuide.Hide()
	hGuide := canvas.NewLine(color.RGBA{R: 255, G: 64, B: 129, A: 255})
	hGuide.StrokeWidth = 1
	hGuide.Hide()

	bbox := canvas.NewRectangle(color.RGBA{0, 0, 0, 0})
	bbox.StrokeColor = color.RGBA{R: 0, G: 170, B: 255, A: 255}
	bbox.StrokeWidth = 1
	bbox.Hide()

	var handles []*canvas.Rectangle
	for i := 0; i < 8; i++ {
		h := canvas.NewRectangle(color.RGBA{R: 0, G: 170, B: 255, A: 255})
		h.Hide()
		handles = append(handles, h)
	}

	objs := []fyne.CanvasObject{bg, board}
	objs = append(objs, preview, vGuide, hGuide, bbox)
	for _, h := range handles {
		objs = append(objs, h)
	}

	return &boardCanvasRenderer{
		bc: b, objects: objs, bg: bg, board: board,
		preview: preview, vGuide: vGuide, hGuide: hGuide,
		bbox: bbox, handles: handles,
	}
}

// boardCanvasRenderer lays out the drawable objects based on zoom/offset.
type boardCanvasRenderer struct {
	bc      *BoardCanvas
	objects []fyne.CanvasObject
	bg      *canvas.Rectangle
	board   *canvas.Rectangle
	// scene visuals, grown on demand
	rects  []*canvas.Rectangle
	labels []*canvas.Text
	grid   []*canvas.Line
	// gesture visuals
	preview        *canvas.Rectangle
	vGuide, hGuide *canvas.Line
	// selection visuals
	bbox    *canvas.Rectangle
	handles []*canvas.Rectangle
}

func (r *boardCanvasRenderer) Destroy()                     {}
func (r *boardCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *boardCanvasRenderer) MinSize() fyne.Size           { return r.bc.PreferredSize() }
func (r *boardCanvasRenderer) Refresh()                     { r.Layout(r.bc.Size()); canvas.Refresh(r.bc) }

// insertBefore grows r.objects with obj placed before marker in draw order.
func (r *boardCanvasRenderer) insertBefore(marker fyne.CanvasObject, obj fyne.CanvasObject) {
	ins := -1
	for i, o := range r.objects {
		if o == marker {
			ins = i
			break
		}
	}
	if ins < 0 {
		r.objects = append(r.objects, obj)
		return
	}
	objs := make([]fyne.CanvasObject, 0, len(r.objects)+1)
	objs = append(objs, r.objects[:ins]...)
	objs = append(objs, obj)
	objs = append(objs, r.objects[ins:]...)
	r.objects = objs
}

func (r *boardCanvasRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.bg.Move(fyne.NewPos(0, 0))

	cx, cy, s := r.bc.boardOriginAndScale()
	scaledW := r.bc.boardW * s
	scaledH := r.bc.boardH * s

	r.board.Resize(fyne.NewSize(scaledW, scaledH))
	r.board.Move(fyne.NewPos(cx, cy))

	// Grid lines
	r.layoutGrid(cx, cy, s, scaledW, scaledH)

	// Component visuals
	need := len(r.bc.comps)
	for len(r.rects) < need {
		rr := canvas.NewRectangle(color.RGBA{R: 220, G: 220, B: 220, A: 255})
		rr.StrokeColor = color.RGBA{R: 60, G: 64, B: 72, A: 255}
		rr.StrokeWidth = 1
		r.insertBefore(r.preview, rr)
		r.rects = append(r.rects, rr)

		txt := canvas.NewText("", color.RGBA{R: 20, G: 20, B: 20, A: 255})
		txt.TextSize = 12
		r.insertBefore(r.preview, txt)
		r.labels = append(r.labels, txt)
	}
	for i, c := range r.bc.comps {
		rect := compRect(c)
		if r.bc.live != nil && i == r.bc.selected {
			rect = *r.bc.live
		}
		p0 := r.bc.toScreen(layout.Pt{X: rect.X, Y: rect.Y})
		rc := r.rects[i]
		rc.Show()
		rc.Resize(fyne.NewSize(rect.W*s, rect.H*s))
		rc.Move(p0)
		rc.FillColor = kindFillColor(c.Kind)
		rc.Refresh()

		txt := r.labels[i]
		if c.Title != "" && rect.W*s > 40 {
			txt.Text = c.Title
			txt.Show()
			txt.Move(fyne.NewPos(p0.X+4, p0.Y+2))
			txt.Refresh()
		} else {
			txt.Hide()
		}
	}
	for j := need; j < len(r.rects); j++ {
		r.rects[j].Hide()
		r.labels[j].Hide()
	}

	// Live preview outline
	if r.bc.live != nil {
		lv := *r.bc.live
		p0 := r.bc.toScreen(layout.Pt{X: lv.X, Y: lv.Y})
		r.preview.Show()
		r.preview.Resize(fyne.NewSize(lv.W*s, lv.H*s))
		r.preview.Move(p0)
	} else {
		r.preview.Hide()
	}

	// Alignment guides
	r.vGuide.Hide()
	r.hGuide.Hide()
	for _, g := range r.bc.guides {
		p0 := r.bc.toScreen(g.From)
		p1 := r.bc.toScreen(g.To)
		switch g.Axis {
		case layout.AxisVertical:
			r.vGuide.Position1 = p0
			r.vGuide.Position2 = p1
			r.vGuide.Show()
			r.vGuide.Refresh()
		case layout.AxisHorizontal:
			r.hGuide.Position1 = p0
			r.hGuide.Position2 = p1
			r.hGuide.Show()
			r.hGuide.Refresh()
		}
	}

	// Selection overlay
	if bbox, handles, ok := r.bc.handleRects(); ok {
		r.bbox.Show()
		r.bbox.Resize(fyne.NewSize(bbox.Width, bbox.Height))
		r.bbox.Move(fyne.NewPos(bbox.X, bbox.Y))
		for i := range r.handles {
			r.handles[i].Show()
			r.handles[i].Resize(fyne.NewSize(handles[i].Width, handles[i].Height))
			r.handles[i].Move(fyne.NewPos(handles[i].X, handles[i].Y))
		}
	} else {
		r.bbox.Hide()
		for _, h := range r.handles {
			h.Hide()
		}
	}
}

// layoutGrid positions one line per grid step across the board area.
func (r *boardCanvasRenderer) layoutGrid(cx, cy, s, scaledW, scaledH float32) {
	if !r.bc.showGrid {
		for _, g := range r.grid {
			g.Hide()
		}
		return
	}
	step := float32(layout.GridSize) * s
	if step < 4 {
		// too dense to be useful at this zoom
		for _, g := range r.grid {
			g.Hide()
		}
		return
	}
	idx := 0
	nextLine := func() *canvas.Line {
		if idx < len(r.grid) {
			g := r.grid[idx]
			idx++
			return g
		}
		g := canvas.NewLine(color.RGBA{R: 222, G: 226, B: 232, A: 120})
		g.StrokeWidth = 1
		r.insertBefore(r.preview, g)
		r.grid = append(r.grid, g)
		idx++
		return g
	}
	for x := step; x < scaledW; x += step {
		g := nextLine()
		g.Position1 = fyne.NewPos(cx+x, cy)
		g.Position2 = fyne.NewPos(cx+x, cy+scaledH)
		g.Show()
		g.Refresh()
	}
	for y := step; y < scaledH; y += step {
		g := nextLine()
		g.Position1 = fyne.NewPos(cx, cy+y)
		g.Position2 = fyne.NewPos(cx+scaledW, cy+y)
		g.Show()
		g.Refresh()
	}
	for ; idx < len(r.grid); idx++ {
		r.grid[idx].Hide()
	}
}

// Recent workspace persistence helpers
const recentPrefsKey = "recent.workspaces"
const recentMax = 10

func loadRecentWorkspaces(p fyne.Preferences) []string {
	raw := p.StringWithFallback(recentPrefsKey, "")
	var items []string
	if strings.TrimSpace(raw) != "" {
		var tmp []string
		if err := json.Unmarshal([]byte(raw), &tmp); err == nil {
			items = tmp
		}
	}
	if items == nil {
		items = []string{}
	}
	// Filter out non-existing paths
	out := make([]string, 0, len(items))
	for _, s := range items {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, err := os.Stat(s); err == nil {
			out = append(out, s)
		}
	}
	return out
}

func saveRecentWorkspaces(p fyne.Preferences, items []string) {
	if len(items) > recentMax {
		items = items[:recentMax]
	}
	b, _ := json.Marshal(items)
	p.SetString(recentPrefsKey, string(b))
}

func addRecentWorkspace(p fyne.Preferences, path string) {
	if strings.TrimSpace(path) == "" {
		return
	}
	abs, _ := filepath.Abs(path)
	rec := loadRecentWorkspaces(p)
	out := make([]string, 0, 1+len(rec))
	out = append(out, abs)
	for _, s := range rec {
		// de-dup (case-insensitive on Windows)
		if strings.EqualFold(s, abs) {
			continue
		}
		out = append(out, s)
	}
	saveRecentWorkspaces(p, out)
}
