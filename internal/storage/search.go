/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0.
 */
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// SearchQuery describes the in-app component search request.
// Text uses SQLite FTS5 syntax over titles (simple terms, phrases in quotes, AND/OR/NOT).
// Filters are optional. Kinds can restrict to component kinds like: chart, text, kpi, table, image.
// BoardID restricts to one board; ArchivedOnly restricts to the canvas archive.
// Limit/Offset implement pagination; reasonable defaults applied if zero.
type SearchQuery struct {
	Text         string
	BoardID      string
	Kinds        []string
	DataRef      string
	ArchivedOnly bool
	Limit        int
	Offset       int
}

// SearchResult represents a single match row.
// Snippet is an optional highlighted excerpt using [ ] markers when FTS text is used.
// BoardID is empty for archived components.
type SearchResult struct {
	DocID       int64
	ComponentID string
	BoardID     string
	Kind        string
	Title       string
	Snippet     string
}

// Search performs full-text search with optional filters over the embedded index.
// When q.Text is empty, it falls back to a non-FTS scan over components with filters applied.
func Search(ctx context.Context, workspaceRoot string, q SearchQuery) ([]SearchResult, error) {
	if strings.TrimSpace(workspaceRoot) == "" {
		return nil, errors.New("workspace root is required")
	}
	db, err := InitOrOpenIndex(workspaceRoot)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return searchDB(ctx, db, q)
}

func searchDB(ctx context.Context, db *sql.DB, q SearchQuery) ([]SearchResult, error) {
	// Build dynamic SQL
	var args []any
	var sb strings.Builder
	useFTS := strings.TrimSpace(q.Text) != ""
	if useFTS {
		sb.WriteString("SELECT c.doc_id, c.component_id, c.board_id, c.kind, COALESCE(c.title,''), snippet(fts_components, 0, '[', ']', '…', 10)\n")
		sb.WriteString("FROM fts_components JOIN components c ON fts_components.rowid = c.doc_id\n")
		sb.WriteString("WHERE fts_components MATCH ?\n")
		args = append(args, q.Text)
	} else {
		sb.WriteString("SELECT c.doc_id, c.component_id, c.board_id, c.kind, COALESCE(c.title,''), ''\n")
		sb.WriteString("FROM components c\nWHERE 1=1\n")
	}
	// Filters
	// Kinds filter (IN list)
	if len(q.Kinds) > 0 {
		sb.WriteString(" AND c.kind IN (" + placeholders(len(q.Kinds)) + ")\n")
		for _, k := range q.Kinds {
			args = append(args, k)
		}
	}
	// Container filter: a specific board, or the archive (empty board_id)
	if q.ArchivedOnly {
		sb.WriteString(" AND c.board_id = ''\n")
	} else if s := strings.TrimSpace(q.BoardID); s != "" {
		sb.WriteString(" AND c.board_id = ?\n")
		args = append(args, s)
	}
	// DataRef filter: substring match against the opaque data source reference
	if s := strings.TrimSpace(q.DataRef); s != "" {
		sb.WriteString(" AND lower(c.data_ref) LIKE ?\n")
		args = append(args, likeContains(strings.ToLower(s)))
	}
	// Order and pagination
	limit := q.Limit
	if limit <= 0 {
		limit = 100
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	sb.WriteString("ORDER BY c.board_id, c.z, c.doc_id\n")
	sb.WriteString("LIMIT ? OFFSET ?")
	args = append(args, limit, q.Offset)

	rows, err := db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()
	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		var sn sql.NullString
		if err := rows.Scan(&r.DocID, &r.ComponentID, &r.BoardID, &r.Kind, &r.Title, &sn); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if sn.Valid {
			r.Snippet = sn.String
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// LookupComponent resolves a component by ID from the index.
// Returns a zero result and false when the component is not indexed.
func LookupComponent(ctx context.Context, workspaceRoot, componentID string) (SearchResult, bool, error) {
	if strings.TrimSpace(componentID) == "" {
		return SearchResult{}, false, errors.New("component id is required")
	}
	db, err := InitOrOpenIndex(workspaceRoot)
	if err != nil {
		return SearchResult{}, false, err
	}
	defer db.Close()
	var r SearchResult
	err = db.QueryRowContext(ctx,
		"SELECT doc_id, component_id, board_id, kind, COALESCE(title,'') FROM components WHERE component_id=?",
		componentID,
	).Scan(&r.DocID, &r.ComponentID, &r.BoardID, &r.Kind, &r.Title)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SearchResult{}, false, nil
		}
		return SearchResult{}, false, err
	}
	return r, true, nil
}

func likeContains(s string) string { return "%" + s + "%" }

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	b := strings.Builder{}
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("?")
	}
	return b.String()
}
