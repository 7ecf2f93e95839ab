/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"boardstudio/internal/domain"
	applog "boardstudio/internal/log"
	"boardstudio/internal/version"
	"log/slog"

	// Pure-Go SQLite driver (CGO-free)
	_ "modernc.org/sqlite"
)

const (
	// IndexDirName stores all per-workspace ephemeral/index data under the workspace root.
	IndexDirName  = ".bst"
	IndexFileName = "index.sqlite"

	// schemaVersion tracks the local SQLite schema for the embedded index.
	// Bump this when you perform breaking schema changes and add migrations.
	schemaVersion = 2
)

// IndexPath returns the full path to the workspace's embedded index database file.
func IndexPath(workspaceRoot string) string {
	return filepath.Join(workspaceRoot, IndexDirName, IndexFileName)
}

// InitOrOpenIndex ensures that the per-workspace SQLite index exists at .bst/index.sqlite,
// opens the database, enables WAL mode, and ensures the meta/version tables exist.
// The returned *sql.DB is ready for use. Callers may close it when no longer needed.
func InitOrOpenIndex(workspaceRoot string) (*sql.DB, error) {
	l := applog.WithOperation(applog.WithComponent("storage"), "index_init").With(
		slog.String("root", workspaceRoot),
	)
	if stringsTrim(workspaceRoot) == "" {
		return nil, errors.New("workspace root is required")
	}
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Join(workspaceRoot, IndexDirName), 0o755); err != nil {
		l.Error("create .bst dir failed", slog.Any("err", err))
		return nil, fmt.Errorf("create .bst dir: %w", err)
	}

	path := IndexPath(workspaceRoot)
	// Use a URI with shared cache and set busy timeout. Convert to forward slashes for SQLite URI.
	uriPath := filepath.ToSlash(path)
	dsn := fmt.Sprintf("file:%s?cache=shared&_pragma=busy_timeout(5000)", uriPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		l.Error("sqlite open failed", slog.Any("err", err))
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Set reasonable connection pool limits for embedded usage.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Ensure WAL mode is active.
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		l.Error("enable WAL failed", slog.Any("err", err))
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	// Enforce foreign keys just in case future schema uses them.
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON;"); err != nil {
		l.Warn("enable foreign_keys failed", slog.Any("err", err))
	}

	if err := ensureMetaAndVersion(ctx, db); err != nil {
		_ = db.Close()
		l.Error("ensure meta/version failed", slog.Any("err", err))
		return nil, err
	}
	// Ensure core index schema exists (components, FTS, snapshots)
	if err := ensureIndexSchema(ctx, db); err != nil {
		_ = db.Close()
		l.Error("ensure index schema failed", slog.Any("err", err))
		return nil, err
	}
	// Run migrations to bring DB schema up to date
	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		l.Error("run migrations failed", slog.Any("err", err))
		return nil, err
	}

	l.Info("index ready", slog.String("path", path))
	return db, nil
}

func ensureMetaAndVersion(ctx context.Context, db *sql.DB) error {
	// Create tables if not exist
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS version (
			id          INTEGER PRIMARY KEY CHECK(id=1),
			schema      INTEGER NOT NULL,
			app         TEXT,
			created_at  TEXT NOT NULL,
			updated_at  TEXT NOT NULL
		);`,
	}
	for _, q := range ddl {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	// Seed or update single-row version info
	now := time.Now().UTC().Format(time.RFC3339)
	appv := version.String()
	// Check if a version row exists
	var curSchema int
	err := db.QueryRowContext(ctx, `SELECT schema FROM version WHERE id=1`).Scan(&curSchema)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// Insert new row with current schemaVersion for a fresh DB
		if _, err := db.ExecContext(ctx, `INSERT INTO version (id, schema, app, created_at, updated_at) VALUES(1, ?, ?, ?, ?)`, schemaVersion, appv, now, now); err != nil {
			return fmt.Errorf("insert version: %w", err)
		}
	case err != nil:
		return fmt.Errorf("read version: %w", err)
	default:
		// Update app and timestamp only; keep existing schema for migrations
		if _, err := db.ExecContext(ctx, `UPDATE version SET app=?, updated_at=? WHERE id=1`, appv, now); err != nil {
			return fmt.Errorf("update version: %w", err)
		}
	}
	return nil
}

// runMigrations applies incremental schema migrations up to schemaVersion.
func runMigrations(ctx context.Context, db *sql.DB) error {
	var cur int
	if err := db.QueryRowContext(ctx, `SELECT schema FROM version WHERE id=1`).Scan(&cur); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if cur > schemaVersion {
		// Do not downgrade; just log and continue
		return nil
	}
	for cur < schemaVersion {
		next := cur + 1
		switch next {
		case 2:
			// Add lookup indexes for board/kind filters and optimize FTS
			tx, err := db.BeginTx(ctx, nil)
			if err != nil {
				return fmt.Errorf("begin migration %d: %w", next, err)
			}
			stmts := []string{
				`CREATE INDEX IF NOT EXISTS idx_components_board ON components(board_id);`,
				`CREATE INDEX IF NOT EXISTS idx_components_kind ON components(kind);`,
			}
			for _, q := range stmts {
				if _, err := tx.ExecContext(ctx, q); err != nil {
					_ = tx.Rollback()
					return fmt.Errorf("migration %d stmt failed: %w", next, err)
				}
			}
			if _, err := tx.ExecContext(ctx, `UPDATE version SET schema=?, updated_at=? WHERE id=1`, next, time.Now().UTC().Format(time.RFC3339)); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("migration %d update version: %w", next, err)
			}
			if err := tx.Commit(); err != nil {
				return fmt.Errorf("migration %d commit: %w", next, err)
			}
			// Best-effort FTS optimize (outside the tx)
			if _, err := db.ExecContext(ctx, `INSERT INTO fts_components(fts_components) VALUES('optimize')`); err != nil {
				// best-effort optimize; ignore errors
			}
		default:
			// Unknown future step; break
		}
		cur = next
	}
	return nil
}

// ensureIndexSchema creates core index tables and FTS structures if they do not exist.
func ensureIndexSchema(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		// Core components table: one row per component across all boards and the archive.
		// board_id is empty for archived components.
		`CREATE TABLE IF NOT EXISTS components (
			doc_id       INTEGER PRIMARY KEY,
			component_id TEXT    NOT NULL,
			board_id     TEXT    NOT NULL,
			kind         TEXT    NOT NULL,
			title        TEXT,
			data_ref     TEXT,
			x            REAL    NOT NULL,
			y            REAL    NOT NULL,
			width        REAL    NOT NULL,
			height       REAL    NOT NULL,
			z            INTEGER NOT NULL
		);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_components_id ON components(component_id);`,

		// Contentless FTS5 index over titles fed from components via triggers.
		`CREATE VIRTUAL TABLE IF NOT EXISTS fts_components USING fts5(
			title,
			content='',
			tokenize = 'unicode61'
		);`,

		// Placement snapshots (history of board changes)
		`CREATE TABLE IF NOT EXISTS snapshots (
			id         INTEGER PRIMARY KEY,
			board_id   TEXT    NOT NULL,
			ts         TEXT    NOT NULL,
			delta_blob BLOB    NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_board_ts ON snapshots(board_id, ts);`,
	}
	for _, q := range ddl {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("ensure index schema: %w", err)
		}
	}
	// Triggers for contentless FTS synchronization with components.title
	triggers := []string{
		`CREATE TRIGGER IF NOT EXISTS components_ai AFTER INSERT ON components BEGIN
			INSERT INTO fts_components(rowid, title) VALUES (new.doc_id, new.title);
		END;`,
		`CREATE TRIGGER IF NOT EXISTS components_ad AFTER DELETE ON components BEGIN
			INSERT INTO fts_components(fts_components, rowid, title) VALUES ('delete', old.doc_id, old.title);
		END;`,
		`CREATE TRIGGER IF NOT EXISTS components_au AFTER UPDATE OF title ON components BEGIN
			INSERT INTO fts_components(fts_components, rowid, title) VALUES ('delete', old.doc_id, old.title);
			INSERT INTO fts_components(rowid, title) VALUES (new.doc_id, new.title);
		END;`,
	}
	for _, q := range triggers {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("ensure fts triggers: %w", err)
		}
	}
	return nil
}

// DetectAndRebuildIndex checks for corruption or missing schema and rebuilds the index if needed.
// It returns true when a rebuild was performed.
func DetectAndRebuildIndex(ctx context.Context, workspaceRoot string, ws domain.Workspace) (bool, error) {
	path := IndexPath(workspaceRoot)
	// Try to open DB; if fails, attempt backup+delete+rebuild
	db, err := InitOrOpenIndex(workspaceRoot)
	if err != nil {
		backupIndexFile(path)
		_ = os.Remove(path)
		if rbErr := RebuildIndex(ctx, workspaceRoot, ws); rbErr != nil {
			return false, fmt.Errorf("rebuild after open failure: %w (open err: %v)", rbErr, err)
		}
		return true, nil
	}
	defer db.Close()
	needs := false
	// quick_check for corruption
	var chk string
	if err := db.QueryRowContext(ctx, `PRAGMA quick_check;`).Scan(&chk); err != nil || !strings.Contains(strings.ToLower(chk), "ok") {
		needs = true
	}
	// Probe core table
	if !needs {
		if _, err := db.ExecContext(ctx, `SELECT 1 FROM components LIMIT 1;`); err != nil {
			needs = true
		}
	}
	if !needs {
		return false, nil
	}
	// Backup and remove existing DB file
	backupIndexFile(path)
	_ = os.Remove(path)
	// Rebuild
	if err := RebuildIndex(ctx, workspaceRoot, ws); err != nil {
		return false, err
	}
	return true, nil
}

// backupIndexFile copies the current index file into a timestamped backup in .bst/backups.
func backupIndexFile(indexPath string) {
	bdir := filepath.Join(filepath.Dir(indexPath), "backups")
	_ = os.MkdirAll(bdir, 0o755)
	stamp := time.Now().Format("20060102-150405")
	bak := filepath.Join(bdir, fmt.Sprintf("%s.%s.bak", filepath.Base(indexPath), stamp))
	if data, err := os.ReadFile(indexPath); err == nil {
		_ = os.WriteFile(bak, data, 0o644)
	}
}

// stringsTrim is a tiny helper to avoid importing strings here just for TrimSpace.
func stringsTrim(s string) string {
	// manual trim of spaces and tabs
	i := 0
	j := len(s)
	for i < j {
		c := s[i]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			i++
			continue
		}
		break
	}
	for i < j {
		c := s[j-1]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			j--
			continue
		}
		break
	}
	return s[i:j]
}

// BuildIndexIfEmpty ensures the DB exists and, if the components table is empty,
// populates it from the given manifest.
func BuildIndexIfEmpty(ctx context.Context, workspaceRoot string, ws domain.Workspace) error {
	// Ensure the DB exists and is initialized
	db, err := InitOrOpenIndex(workspaceRoot)
	if err != nil {
		return err
	}
	defer db.Close()
	// Check if components has any rows
	var cnt int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM components;").Scan(&cnt); err != nil {
		return fmt.Errorf("check components count: %w", err)
	}
	if cnt > 0 {
		return nil // already built
	}
	return rebuildComponentsFromWorkspace(ctx, db, ws)
}

// UpdateIndex updates the embedded index with changes from the workspace manifest.
// Minimal safe implementation: replace the components content from the provided manifest.
func UpdateIndex(ctx context.Context, workspaceRoot string, ws domain.Workspace) error {
	db, err := InitOrOpenIndex(workspaceRoot)
	if err != nil {
		return err
	}
	defer db.Close()
	return rebuildComponentsFromWorkspace(ctx, db, ws)
}

// RebuildIndex drops and recreates core index tables and rebuilds content from the manifest.
// It preserves meta/version tables. This is a safe operation; the index is derived from board.json.
func RebuildIndex(ctx context.Context, workspaceRoot string, ws domain.Workspace) error {
	db, err := InitOrOpenIndex(workspaceRoot)
	if err != nil {
		return err
	}
	defer db.Close()
	// Drop core tables inside a transaction and recreate schema
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	drops := []string{
		"DROP TABLE IF EXISTS snapshots;",
		"DROP TRIGGER IF EXISTS components_ai;",
		"DROP TRIGGER IF EXISTS components_ad;",
		"DROP TRIGGER IF EXISTS components_au;",
		"DROP TABLE IF EXISTS components;",
		"DROP TABLE IF EXISTS fts_components;",
	}
	for _, q := range drops {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("drop schema: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("drop commit: %w", err)
	}
	// Recreate schema and populate
	if err := ensureIndexSchema(ctx, db); err != nil {
		return err
	}
	return rebuildComponentsFromWorkspace(ctx, db, ws)
}

// rebuildComponentsFromWorkspace replaces the components table content from the given manifest.
func rebuildComponentsFromWorkspace(ctx context.Context, db *sql.DB, ws domain.Workspace) error {
	type row struct {
		componentID string
		boardID     string
		kind        string
		title       string
		dataRef     string
		x, y, w, h  float64
		z           int
	}
	rows := make([]row, 0, 256)
	add := func(boardID string, c domain.Component) {
		rows = append(rows, row{
			componentID: c.ID,
			boardID:     boardID,
			kind:        string(c.Kind),
			title:       c.Title,
			dataRef:     c.DataRef,
			x:           c.Placement.X,
			y:           c.Placement.Y,
			w:           c.Placement.Width,
			h:           c.Placement.Height,
			z:           c.Z,
		})
	}
	for _, b := range ws.Boards {
		for _, c := range b.Components {
			add(b.ID, c)
		}
	}
	// Archived components carry an empty board_id
	for _, c := range ws.Canvas.Archived {
		add("", c)
	}
	// Write in a transaction: clear components and insert new rows.
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM components;"); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear components: %w", err)
	}
	ins, err := tx.PrepareContext(ctx, "INSERT INTO components(component_id, board_id, kind, title, data_ref, x, y, width, height, z) VALUES(?,?,?,?,?,?,?,?,?,?);")
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer ins.Close()
	for _, r := range rows {
		if _, err := ins.ExecContext(ctx, r.componentID, r.boardID, r.kind, r.title, r.dataRef, r.x, r.y, r.w, r.h, r.z); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert component: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
