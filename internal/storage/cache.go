// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides a local mirror of backend list data.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/alice-tui/internal/api"
)

// =============================================================================
// CACHE
// =============================================================================

// Cache is the on-disk mirror. Safe for concurrent use (database/sql pools
// connections; writes replace whole snapshots in one transaction).
type Cache struct {
	db *sql.DB
}

// Sync kinds recorded in sync_meta.
const (
	KindConversations = "conversations"
	KindVideos        = "videos"
)

const schema = `
CREATE TABLE IF NOT EXISTS conversations (
	id            INTEGER PRIMARY KEY,
	title         TEXT,
	created_at    TEXT NOT NULL DEFAULT '',
	updated_at    TEXT NOT NULL DEFAULT '',
	message_count INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS videos (
	id           INTEGER PRIMARY KEY,
	bvid         TEXT NOT NULL DEFAULT '',
	title        TEXT NOT NULL DEFAULT '',
	author       TEXT,
	duration     INTEGER,
	status       TEXT NOT NULL DEFAULT '',
	summary      TEXT,
	created_at   TEXT NOT NULL DEFAULT '',
	processed_at TEXT
);

CREATE TABLE IF NOT EXISTS sync_meta (
	kind      TEXT PRIMARY KEY,
	synced_at TEXT NOT NULL
);
`

// Open opens (creating if necessary) the cache database at path.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	// A single writer avoids SQLITE_BUSY churn on snapshot replacement.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close releases the database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// =============================================================================
// CONVERSATIONS
// =============================================================================

// SaveConversations replaces the mirrored conversation list.
func (c *Cache) SaveConversations(ctx context.Context, convs []api.Conversation) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM conversations`); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO conversations (id, title, created_at, updated_at, message_count)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, conv := range convs {
		if _, err := stmt.ExecContext(ctx,
			conv.ID, nullable(conv.Title), conv.CreatedAt, conv.UpdatedAt, conv.MessageCount); err != nil {
			return err
		}
	}
	if err := c.touchSync(ctx, tx, KindConversations); err != nil {
		return err
	}
	return tx.Commit()
}

// LoadConversations reads the mirrored conversation list, newest first by
// update time.
func (c *Cache) LoadConversations(ctx context.Context) ([]api.Conversation, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, title, created_at, updated_at, message_count
		FROM conversations
		ORDER BY updated_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []api.Conversation
	for rows.Next() {
		var conv api.Conversation
		var title sql.NullString
		if err := rows.Scan(&conv.ID, &title, &conv.CreatedAt, &conv.UpdatedAt, &conv.MessageCount); err != nil {
			return nil, err
		}
		conv.Title = stringPtr(title)
		out = append(out, conv)
	}
	return out, rows.Err()
}

// =============================================================================
// VIDEOS
// =============================================================================

// SaveVideos replaces the mirrored video list.
func (c *Cache) SaveVideos(ctx context.Context, videos []api.Video) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM videos`); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO videos (id, bvid, title, author, duration, status, summary, created_at, processed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, v := range videos {
		if _, err := stmt.ExecContext(ctx,
			v.ID, v.BVID, v.Title, nullable(v.Author), nullableInt(v.Duration),
			v.Status, nullable(v.Summary), v.CreatedAt, nullable(v.ProcessedAt)); err != nil {
			return err
		}
	}
	if err := c.touchSync(ctx, tx, KindVideos); err != nil {
		return err
	}
	return tx.Commit()
}

// LoadVideos reads the mirrored video list, newest first.
func (c *Cache) LoadVideos(ctx context.Context) ([]api.Video, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, bvid, title, author, duration, status, summary, created_at, processed_at
		FROM videos
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []api.Video
	for rows.Next() {
		var v api.Video
		var author, summary, processedAt sql.NullString
		var duration sql.NullInt64
		if err := rows.Scan(&v.ID, &v.BVID, &v.Title, &author, &duration,
			&v.Status, &summary, &v.CreatedAt, &processedAt); err != nil {
			return nil, err
		}
		v.Author = stringPtr(author)
		v.Summary = stringPtr(summary)
		v.ProcessedAt = stringPtr(processedAt)
		if duration.Valid {
			d := duration.Int64
			v.Duration = &d
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// =============================================================================
// SYNC METADATA
// =============================================================================

// LastSync reports when a list kind ("conversations", "videos") was last
// mirrored.
func (c *Cache) LastSync(ctx context.Context, kind string) (time.Time, bool) {
	var raw string
	err := c.db.QueryRowContext(ctx,
		`SELECT synced_at FROM sync_meta WHERE kind = ?`, kind).Scan(&raw)
	if err != nil {
		return time.Time{}, false
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

func (c *Cache) touchSync(ctx context.Context, tx *sql.Tx, kind string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO sync_meta (kind, synced_at) VALUES (?, ?)
		ON CONFLICT(kind) DO UPDATE SET synced_at = excluded.synced_at`,
		kind, time.Now().UTC().Format(time.RFC3339))
	return err
}

// =============================================================================
// HELPERS
// =============================================================================

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nullableInt(i *int64) any {
	if i == nil {
		return nil
	}
	return *i
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
