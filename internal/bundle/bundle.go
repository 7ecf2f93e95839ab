/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0.
 */

package bundle

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	applog "boardstudio/internal/log"
)

// ExportWorkspaceAssets zips the workspace's assets directory (<workspace>/assets) into a single .zip file.
// The produced archive preserves the directory structure and adds a small manifest file at the root
// named bundle.manifest.txt for quick human inspection.
// If the assets directory does not exist or is empty, it still creates the archive with only the manifest.
func ExportWorkspaceAssets(workspaceRoot string, destZipPath string) error {
	l := applog.WithOperation(applog.WithComponent("bundle"), "export").With(slog.String("workspace", workspaceRoot))
	if strings.TrimSpace(workspaceRoot) == "" {
		return errors.New("workspaceRoot is required")
	}
	if strings.TrimSpace(destZipPath) == "" {
		return errors.New("destZipPath is required")
	}
	assetsDir := filepath.Join(workspaceRoot, "assets")
	if _, err := os.Stat(assetsDir); os.IsNotExist(err) {
		// Create empty dir semantics
		if err := os.MkdirAll(assetsDir, 0o755); err != nil {
			return fmt.Errorf("ensure assets dir: %w", err)
		}
	}

	// Ensure target directory exists
	if err := os.MkdirAll(filepath.Dir(destZipPath), 0o755); err != nil {
		return fmt.Errorf("ensure zip dir: %w", err)
	}
	// On Windows, remove destination if present before create
	_ = os.Remove(destZipPath)

	zf, err := os.Create(destZipPath)
	if err != nil {
		return fmt.Errorf("create zip: %w", err)
	}
	defer func() { _ = zf.Close() }()
	zw := zip.NewWriter(zf)
	defer func() { _ = zw.Close() }()

	// Add manifest text
	manifest := fmt.Sprintf("Board Studio Asset Bundle\nCreated: %s\nWorkspace: %s\n\nContents mirror the workspace's /assets directory.\n",
		time.Now().Format(time.RFC3339), workspaceRoot)
	w, err := zw.Create("bundle.manifest.txt")
	if err != nil {
		return fmt.Errorf("add manifest: %w", err)
	}
	if _, err := w.Write([]byte(manifest)); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	// Walk assets folder and add files
	added := 0
	err = filepath.Walk(assetsDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(workspaceRoot, path)
		if err != nil {
			return err
		}
		// Normalize to forward slashes inside the zip
		zipName := filepath.ToSlash(rel)
		fw, err := zw.Create(zipName)
		if err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		if _, err := io.Copy(fw, f); err != nil {
			return err
		}
		added++
		return nil
	})
	if err != nil {
		l.Error("zip build failed", slog.Any("err", err))
		return fmt.Errorf("build zip: %w", err)
	}
	l.Info("asset bundle exported", slog.Int("files", added), slog.String("zip", destZipPath))
	return nil
}

// InstallBundle extracts the given .zip bundle into the workspace's assets directory.
// Existing files are not overwritten; if a file already exists, it is skipped.
// Returns the count of files installed (skipped files are not counted).
func InstallBundle(workspaceRoot string, bundleZipPath string) (int, error) {
	l := applog.WithOperation(applog.WithComponent("bundle"), "install").With(slog.String("workspace", workspaceRoot))
	if strings.TrimSpace(workspaceRoot) == "" {
		return 0, errors.New("workspaceRoot is required")
	}
	if strings.TrimSpace(bundleZipPath) == "" {
		return 0, errors.New("bundleZipPath is required")
	}
	assetsDir := filepath.Join(workspaceRoot, "assets")
	if err := os.MkdirAll(assetsDir, 0o755); err != nil {
		return 0, fmt.Errorf("ensure assets dir: %w", err)
	}

	r, err := zip.OpenReader(bundleZipPath)
	if err != nil {
		return 0, fmt.Errorf("open bundle: %w", err)
	}
	defer func() { _ = r.Close() }()

	installed := 0
	for _, f := range r.File {
		name := f.Name
		// Skip top-level manifest file
		if name == "bundle.manifest.txt" {
			continue
		}
		// Only install files that target the assets directory or subfolders.
		// Paths not already under "assets/" are placed under it.
		targetRel := name
		if !strings.HasPrefix(targetRel, "assets/") {
			targetRel = filepath.ToSlash(filepath.Join("assets", targetRel))
		}
		targetPath := filepath.Join(workspaceRoot, filepath.FromSlash(targetRel))
		// If file exists, skip
		if _, err := os.Stat(targetPath); err == nil {
			l.Warn("skip existing file", slog.String("path", targetPath))
			continue
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(targetPath, 0o755); err != nil {
				return installed, err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(targetPath), 0o755); err != nil {
			return installed, err
		}
		rc, err := f.Open()
		if err != nil {
			return installed, err
		}
		out, err := os.OpenFile(targetPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			_ = rc.Close()
			return installed, err
		}
		if _, err := io.Copy(out, rc); err != nil {
			_ = out.Close()
			_ = rc.Close()
			return installed, err
		}
		_ = out.Close()
		_ = rc.Close()
		installed++
	}
	l.Info("asset bundle installed", slog.Int("files", installed))
	return installed, nil
}
