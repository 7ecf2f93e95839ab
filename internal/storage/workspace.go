/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"boardstudio/internal/domain"
)

const (
	ManifestFileName = "board.json"
	BackupsDirName   = "backups"
)

// Standard subfolders scaffolded for every workspace.
var standardSubDirs = []string{
	"assets",
	"exports",
	BackupsDirName,
}

// WorkspaceHandle keeps track of the workspace state loaded/saved from disk.
// Root is the workspace directory containing board.json and subfolders.
// Workspace holds the in-memory representation of the manifest.
type WorkspaceHandle struct {
	Root         string
	ManifestPath string
	Workspace    domain.Workspace
}

// InitWorkspace creates a new workspace directory at root (creating it if it doesn't exist),
// scaffolds the standard subfolders, and writes the given manifest file transactionally.
func InitWorkspace(root string, ws domain.Workspace) (*WorkspaceHandle, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("root path is required")
	}
	// Ensure directory exists
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create workspace root: %w", err)
	}
	// Create standard subfolders
	for _, d := range standardSubDirs {
		if err := os.MkdirAll(filepath.Join(root, d), 0o755); err != nil {
			return nil, fmt.Errorf("create subdir %s: %w", d, err)
		}
	}

	wh := &WorkspaceHandle{
		Root:         root,
		ManifestPath: filepath.Join(root, ManifestFileName),
		Workspace:    ws,
	}
	if err := Save(wh); err != nil {
		return nil, err
	}
	return wh, nil
}

// Open loads an existing workspace from the given root directory.
// If the current manifest cannot be read or parsed, it will attempt last backup.
func Open(root string) (*WorkspaceHandle, error) {
	mpath := filepath.Join(root, ManifestFileName)
	b, err := os.ReadFile(mpath)
	if err != nil {
		// try backup
		ws, berr := openFromLatestBackup(root)
		if berr != nil {
			return nil, fmt.Errorf("open manifest: %w; backup attempt: %v", err, berr)
		}
		return &WorkspaceHandle{Root: root, ManifestPath: mpath, Workspace: *ws}, nil
	}
	var w domain.Workspace
	if uerr := json.Unmarshal(b, &w); uerr != nil {
		ws, berr := openFromLatestBackup(root)
		if berr != nil {
			return nil, fmt.Errorf("parse manifest: %w; backup attempt: %v", uerr, berr)
		}
		return &WorkspaceHandle{Root: root, ManifestPath: mpath, Workspace: *ws}, nil
	}
	return &WorkspaceHandle{Root: root, ManifestPath: mpath, Workspace: w}, nil
}

// Save writes the current WorkspaceHandle.Workspace to disk with transactional semantics
// and a timestamped backup of the previous manifest (if present).
func Save(wh *WorkspaceHandle) error {
	if wh == nil {
		return errors.New("nil WorkspaceHandle")
	}
	if wh.Root == "" || wh.ManifestPath == "" {
		return errors.New("invalid WorkspaceHandle: missing paths")
	}
	// Marshal in human-readable form
	data, err := json.MarshalIndent(wh.Workspace, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	data = append(data, '\n')

	// Ensure backups dir exists
	bdir := filepath.Join(wh.Root, BackupsDirName)
	if err := os.MkdirAll(bdir, 0o755); err != nil {
		return fmt.Errorf("ensure backups dir: %w", err)
	}

	// If a current manifest exists, copy it to a timestamped backup before replacing
	if _, statErr := os.Stat(wh.ManifestPath); statErr == nil {
		stamp := time.Now().Format("20060102-150405")
		bname := fmt.Sprintf("%s.%s.bak", ManifestFileName, stamp)
		bpath := filepath.Join(bdir, bname)
		if cerr := copyFile(wh.ManifestPath, bpath); cerr != nil {
			return fmt.Errorf("backup current manifest: %w", cerr)
		}
	}

	// Transactional write: to temp file in same directory, then rename over target
	dir := filepath.Dir(wh.ManifestPath)
	temp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%d-%d", ManifestFileName, os.Getpid(), rand.Int()))
	if werr := writeFileSync(temp, data); werr != nil {
		return fmt.Errorf("write temp manifest: %w", werr)
	}
	// On Windows, replace by removing destination first if needed
	if _, err := os.Stat(wh.ManifestPath); err == nil {
		_ = os.Remove(wh.ManifestPath)
	}
	if rerr := os.Rename(temp, wh.ManifestPath); rerr != nil {
		// attempt cleanup temp
		_ = os.Remove(temp)
		return fmt.Errorf("replace manifest: %w", rerr)
	}
	return nil
}

// SaveAs writes the manifest to a new root folder, scaffolding structure if needed, and updates the handle.
func SaveAs(wh *WorkspaceHandle, newRoot string) error {
	if wh == nil {
		return errors.New("nil WorkspaceHandle")
	}
	if newRoot == "" {
		return errors.New("new root is empty")
	}
	if err := os.MkdirAll(newRoot, 0o755); err != nil {
		return fmt.Errorf("create new root: %w", err)
	}
	for _, d := range standardSubDirs {
		if err := os.MkdirAll(filepath.Join(newRoot, d), 0o755); err != nil {
			return fmt.Errorf("create subdir %s: %w", d, err)
		}
	}
	wh.Root = newRoot
	wh.ManifestPath = filepath.Join(newRoot, ManifestFileName)
	return Save(wh)
}

// AutosaveCrashSnapshot writes a best-effort copy of the in-memory workspace to the
// backups folder without touching board.json. It is called from the crash handler,
// so it must not panic and must not depend on a consistent on-disk state.
// Returns the path of the written snapshot.
func AutosaveCrashSnapshot(wh *WorkspaceHandle) (string, error) {
	if wh == nil || wh.Root == "" {
		return "", errors.New("no workspace to snapshot")
	}
	data, err := json.MarshalIndent(wh.Workspace, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal crash snapshot: %w", err)
	}
	data = append(data, '\n')
	bdir := filepath.Join(wh.Root, BackupsDirName)
	if err := os.MkdirAll(bdir, 0o755); err != nil {
		return "", fmt.Errorf("ensure backups dir: %w", err)
	}
	stamp := time.Now().Format("20060102-150405")
	path := filepath.Join(bdir, fmt.Sprintf("%s.%s.crash.json", ManifestFileName, stamp))
	if err := writeFileSync(path, data); err != nil {
		return "", fmt.Errorf("write crash snapshot: %w", err)
	}
	return path, nil
}

// writeFileSync writes data to a file, ensures it is flushed to disk.
func writeFileSync(path string, data []byte) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err := f.Write(data); err != nil {
		return err
	}
	if err := f.Sync(); err != nil {
		return err
	}
	return nil
}

// copyFile copies a file from src to dst (overwrites dst if exists).
func copyFile(src, dst string) (err error) {
	sf, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sf.Close(); err == nil {
			err = cerr
		}
	}()
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	df, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := df.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err := io.Copy(df, sf); err != nil {
		return err
	}
	if err := df.Sync(); err != nil {
		return err
	}
	return nil
}

// openFromLatestBackup tries to open the latest timestamped backup.
func openFromLatestBackup(root string) (*domain.Workspace, error) {
	bdir := filepath.Join(root, BackupsDirName)
	ents, err := os.ReadDir(bdir)
	if err != nil {
		return nil, fmt.Errorf("read backups dir: %w", err)
	}
	var candidates []string
	for _, e := range ents {
		name := e.Name()
		if strings.HasPrefix(name, ManifestFileName+".") && strings.HasSuffix(name, ".bak") {
			candidates = append(candidates, filepath.Join(bdir, name))
		}
	}
	if len(candidates) == 0 {
		return nil, errors.New("no backups found")
	}
	sort.Strings(candidates) // timestamp in name yields lexicographic order
	latest := candidates[len(candidates)-1]
	b, err := os.ReadFile(latest)
	if err != nil {
		return nil, fmt.Errorf("read latest backup: %w", err)
	}
	var w domain.Workspace
	if err := json.Unmarshal(b, &w); err != nil {
		return nil, fmt.Errorf("parse latest backup: %w", err)
	}
	return &w, nil
}
