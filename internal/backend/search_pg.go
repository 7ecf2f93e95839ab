/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0.
 */
package backend

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"boardstudio/internal/storage"
)

// SearchPG executes a search over the Postgres components table using tsvector and filters
// and returns results mapped to storage.SearchResult to ease parity checks.
func SearchPG(ctx context.Context, db *sql.DB, workspaceID int64, q storage.SearchQuery) ([]storage.SearchResult, error) {
	var (
		args []any
		b    strings.Builder
	)
	useFTS := strings.TrimSpace(q.Text) != ""
	if useFTS {
		b.WriteString("SELECT c.id AS doc_id, c.component_id, c.board_id, c.kind, c.title, ")
		b.WriteString("COALESCE(ts_headline('simple', COALESCE(c.title,''), plainto_tsquery('simple', $1), 'StartSel=[, StopSel=], MaxFragments=1, MaxWords=10'), '') AS snippet ")
		b.WriteString("FROM components c WHERE c.workspace_id = $2 AND c.search_vector @@ plainto_tsquery('simple', $1) ")
		args = append(args, q.Text, workspaceID)
	} else {
		b.WriteString("SELECT c.id AS doc_id, c.component_id, c.board_id, c.kind, c.title, '' AS snippet ")
		b.WriteString("FROM components c WHERE c.workspace_id = $1 ")
		args = append(args, workspaceID)
	}

	// Helper to add parameter and return placeholder like $n
	place := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	// Kind filter
	if len(q.Kinds) > 0 {
		b.WriteString(" AND c.kind = ANY (" + place(q.Kinds) + ") ")
	}
	// Container filter: archived rows carry an empty board id
	if q.ArchivedOnly {
		b.WriteString(" AND c.board_id = '' ")
	} else if s := strings.TrimSpace(q.BoardID); s != "" {
		b.WriteString(" AND c.board_id = " + place(s) + " ")
	}
	// Data source filter
	if s := strings.TrimSpace(q.DataRef); s != "" {
		ss := strings.ToLower(s)
		b.WriteString(" AND lower(COALESCE(c.data_ref,'')) LIKE " + place("%"+ss+"%") + " ")
	}
	// Order and pagination
	limit := q.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	b.WriteString(" ORDER BY c.board_id, c.z, c.id ")
	b.WriteString(" LIMIT " + place(limit) + " OFFSET " + place(offset))

	rows, err := db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("search pg query: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var out []storage.SearchResult
	for rows.Next() {
		var r storage.SearchResult
		if err := rows.Scan(&r.DocID, &r.ComponentID, &r.BoardID, &r.Kind, &r.Title, &r.Snippet); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
