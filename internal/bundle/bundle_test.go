/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package bundle

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

func TestExportAndInstallBundle(t *testing.T) {
	// Create temp workspace with assets
	wsDir := t.TempDir()
	assetsDir := filepath.Join(wsDir, "assets")
	if err := os.MkdirAll(assetsDir, 0o755); err != nil {
		t.Fatalf("mkdir assets: %v", err)
	}
	// Create some files and subdirs
	if err := os.WriteFile(filepath.Join(assetsDir, "logo.svg"), []byte("<svg/>"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	sub := filepath.Join(assetsDir, "datasets")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir datasets: %v", err)
	}
	if err := os.WriteFile(filepath.Join(sub, "revenue.csv"), []byte("month,amount\n"), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}

	// Export bundle
	zipPath := filepath.Join(wsDir, "out.zip")
	if err := ExportWorkspaceAssets(wsDir, zipPath); err != nil {
		t.Fatalf("export bundle: %v", err)
	}
	// Basic check: zip exists and has entries
	st, err := os.Stat(zipPath)
	if err != nil || st.Size() == 0 {
		t.Fatalf("zip not created or empty: %v", err)
	}
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	_ = r.Close()

	// Install into a new workspace
	ws2 := t.TempDir()
	installed, err := InstallBundle(ws2, zipPath)
	if err != nil {
		t.Fatalf("install bundle: %v", err)
	}
	if installed == 0 {
		t.Fatalf("expected installed > 0")
	}
	// Files should exist under ws2/assets
	if _, err := os.Stat(filepath.Join(ws2, "assets", "logo.svg")); err != nil {
		t.Fatalf("expected logo.svg installed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(ws2, "assets", "datasets", "revenue.csv")); err != nil {
		t.Fatalf("expected dataset installed: %v", err)
	}
}

func TestInstallBundleSkipsExisting(t *testing.T) {
	wsDir := t.TempDir()
	assetsDir := filepath.Join(wsDir, "assets")
	if err := os.MkdirAll(assetsDir, 0o755); err != nil {
		t.Fatalf("mkdir assets: %v", err)
	}
	if err := os.WriteFile(filepath.Join(assetsDir, "logo.svg"), []byte("new"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	zipPath := filepath.Join(wsDir, "out.zip")
	if err := ExportWorkspaceAssets(wsDir, zipPath); err != nil {
		t.Fatalf("export bundle: %v", err)
	}

	ws2 := t.TempDir()
	existing := filepath.Join(ws2, "assets", "logo.svg")
	if err := os.MkdirAll(filepath.Dir(existing), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(existing, []byte("keep"), 0o644); err != nil {
		t.Fatalf("write existing: %v", err)
	}
	installed, err := InstallBundle(ws2, zipPath)
	if err != nil {
		t.Fatalf("install bundle: %v", err)
	}
	if installed != 0 {
		t.Fatalf("expected 0 installed, got %d", installed)
	}
	got, err := os.ReadFile(existing)
	if err != nil {
		t.Fatalf("read existing: %v", err)
	}
	if string(got) != "keep" {
		t.Fatalf("existing file was overwritten: %q", string(got))
	}
}

func TestExportRequiresArgs(t *testing.T) {
	if err := ExportWorkspaceAssets("", "x.zip"); err == nil {
		t.Fatal("expected error for empty workspace root")
	}
	if err := ExportWorkspaceAssets(t.TempDir(), ""); err == nil {
		t.Fatal("expected error for empty zip path")
	}
	if _, err := InstallBundle("", "x.zip"); err == nil {
		t.Fatal("expected error for empty workspace root")
	}
}
