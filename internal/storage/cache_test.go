// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides a local mirror of backend list data.
package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jeranaias/alice-tui/internal/api"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	cache, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { cache.Close() })
	return cache
}

// =============================================================================
// CONVERSATION MIRROR TESTS
// =============================================================================

func TestConversations_RoundTrip(t *testing.T) {
	cache := openTestCache(t)
	ctx := context.Background()

	title := "named"
	convs := []api.Conversation{
		{ID: 2, Title: &title, CreatedAt: "2025-06-01T10:00:00", UpdatedAt: "2025-06-02T10:00:00", MessageCount: 3},
		{ID: 1, UpdatedAt: "2025-06-01T09:00:00"},
	}
	if err := cache.SaveConversations(ctx, convs); err != nil {
		t.Fatalf("SaveConversations: %v", err)
	}

	got, err := cache.LoadConversations(ctx)
	if err != nil {
		t.Fatalf("LoadConversations: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d conversations, want 2", len(got))
	}
	if got[0].ID != 2 {
		t.Errorf("order: first id = %d, want 2 (newest update first)", got[0].ID)
	}
	if got[0].Title == nil || *got[0].Title != "named" {
		t.Errorf("title = %v", got[0].Title)
	}
	if got[1].Title != nil {
		t.Errorf("nil title round trip = %v", *got[1].Title)
	}
	if got[0].MessageCount != 3 {
		t.Errorf("message count = %d", got[0].MessageCount)
	}
}

func TestConversations_SaveReplacesSnapshot(t *testing.T) {
	cache := openTestCache(t)
	ctx := context.Background()

	cache.SaveConversations(ctx, []api.Conversation{{ID: 1}, {ID: 2}})
	cache.SaveConversations(ctx, []api.Conversation{{ID: 3}})

	got, err := cache.LoadConversations(ctx)
	if err != nil {
		t.Fatalf("LoadConversations: %v", err)
	}
	if len(got) != 1 || got[0].ID != 3 {
		t.Errorf("snapshot not replaced: %+v", got)
	}
}

func TestConversations_EmptyCache(t *testing.T) {
	cache := openTestCache(t)

	got, err := cache.LoadConversations(context.Background())
	if err != nil {
		t.Fatalf("LoadConversations: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("fresh cache returned %d rows", len(got))
	}
}

// =============================================================================
// VIDEO MIRROR TESTS
// =============================================================================

func TestVideos_RoundTrip(t *testing.T) {
	cache := openTestCache(t)
	ctx := context.Background()

	author := "uploader"
	duration := int64(360)
	videos := []api.Video{
		{ID: 1, BVID: "BV1abc", Title: "v1", Author: &author, Duration: &duration,
			Status: "done", CreatedAt: "2025-06-02T10:00:00"},
		{ID: 2, BVID: "BV2def", Title: "v2", Status: "pending", CreatedAt: "2025-06-01T10:00:00"},
	}
	if err := cache.SaveVideos(ctx, videos); err != nil {
		t.Fatalf("SaveVideos: %v", err)
	}

	got, err := cache.LoadVideos(ctx)
	if err != nil {
		t.Fatalf("LoadVideos: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d videos, want 2", len(got))
	}
	if got[0].ID != 1 {
		t.Errorf("order: first id = %d, want newest created first", got[0].ID)
	}
	if got[0].Author == nil || *got[0].Author != "uploader" {
		t.Errorf("author = %v", got[0].Author)
	}
	if got[0].Duration == nil || *got[0].Duration != 360 {
		t.Errorf("duration = %v", got[0].Duration)
	}
	if got[1].Author != nil || got[1].Duration != nil {
		t.Errorf("nil fields round trip: %+v", got[1])
	}
}

// =============================================================================
// SYNC METADATA TESTS
// =============================================================================

func TestLastSync(t *testing.T) {
	cache := openTestCache(t)
	ctx := context.Background()

	if _, ok := cache.LastSync(ctx, KindConversations); ok {
		t.Error("LastSync reported a sync before any save")
	}

	cache.SaveConversations(ctx, nil)
	ts, ok := cache.LastSync(ctx, KindConversations)
	if !ok {
		t.Fatal("LastSync missing after save")
	}
	if ts.IsZero() {
		t.Error("LastSync returned zero time")
	}

	if _, ok := cache.LastSync(ctx, KindVideos); ok {
		t.Error("videos sync recorded by a conversations save")
	}
}
