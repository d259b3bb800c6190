// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package mention turns @-references to videos and prior conversations
// into content-bearing context blocks for the composer.
package mention

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jeranaias/alice-tui/internal/api"
)

// =============================================================================
// FAKE FETCHER
// =============================================================================

// fakeFetcher scripts transcript fetches; a non-nil gate blocks each fetch
// until released, for exercising in-flight races.
type fakeFetcher struct {
	mu          sync.Mutex
	transcripts map[int64]string
	err         error
	gate        chan struct{}
	calls       int
}

func (f *fakeFetcher) GetTranscript(ctx context.Context, id int64) (string, error) {
	f.mu.Lock()
	f.calls++
	gate := f.gate
	err := f.err
	text := f.transcripts[id]
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return "", err
	}
	return text, nil
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// eventually polls until the condition holds or the deadline passes.
func eventually(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func findMention(r *Resolver, typ Type, id int64) (Item, bool) {
	for _, m := range r.Mentions() {
		if m.Type == typ && m.ID == id {
			return m, true
		}
	}
	return Item{}, false
}

// =============================================================================
// RESOLUTION TESTS
// =============================================================================

func TestAdd_VideoLoadsTranscript(t *testing.T) {
	fetcher := &fakeFetcher{transcripts: map[int64]string{1: "transcript text"}}
	r := NewResolver(fetcher)

	r.Add(context.Background(), Item{Type: TypeVideo, ID: 1, Title: "v"})

	// The chip appears immediately, loading.
	m, ok := findMention(r, TypeVideo, 1)
	if !ok {
		t.Fatal("mention missing right after Add")
	}
	if !m.Loading && m.Content == "" {
		t.Error("expected loading state or already-resolved content")
	}

	eventually(t, "transcript resolution", func() bool {
		m, ok := findMention(r, TypeVideo, 1)
		return ok && !m.Loading
	})
	m, _ = findMention(r, TypeVideo, 1)
	if m.Content != "transcript text" {
		t.Errorf("Content = %q", m.Content)
	}
}

func TestAdd_ConversationSettlesWithoutFetch(t *testing.T) {
	fetcher := &fakeFetcher{}
	r := NewResolver(fetcher)

	r.Add(context.Background(), Item{Type: TypeConversation, ID: 3, Title: "prior"})

	m, ok := findMention(r, TypeConversation, 3)
	if !ok {
		t.Fatal("mention missing")
	}
	if m.Loading {
		t.Error("conversation mention should settle immediately")
	}
	if m.Content != "" {
		t.Errorf("Content = %q, want empty", m.Content)
	}
	if fetcher.callCount() != 0 {
		t.Errorf("fetcher called %d times for a conversation mention", fetcher.callCount())
	}
}

func TestAdd_TruncatesToBudget(t *testing.T) {
	long := strings.Repeat("字", transcriptBudget+500)
	fetcher := &fakeFetcher{transcripts: map[int64]string{1: long}}
	r := NewResolver(fetcher)

	r.Add(context.Background(), Item{Type: TypeVideo, ID: 1})
	eventually(t, "resolution", func() bool {
		m, ok := findMention(r, TypeVideo, 1)
		return ok && !m.Loading
	})

	m, _ := findMention(r, TypeVideo, 1)
	if got := len([]rune(m.Content)); got != transcriptBudget {
		t.Errorf("content length = %d runes, want exactly %d", got, transcriptBudget)
	}

	// Shorter transcripts pass through whole.
	fetcher.mu.Lock()
	fetcher.transcripts[2] = "short"
	fetcher.mu.Unlock()
	r.Add(context.Background(), Item{Type: TypeVideo, ID: 2})
	eventually(t, "second resolution", func() bool {
		m, ok := findMention(r, TypeVideo, 2)
		return ok && !m.Loading
	})
	m, _ = findMention(r, TypeVideo, 2)
	if m.Content != "short" {
		t.Errorf("short content = %q", m.Content)
	}
}

func TestAdd_FailureUsesSentinel(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("boom")}
	r := NewResolver(fetcher)

	r.Add(context.Background(), Item{Type: TypeVideo, ID: 1})
	eventually(t, "failed resolution", func() bool {
		m, ok := findMention(r, TypeVideo, 1)
		return ok && !m.Loading
	})

	m, _ := findMention(r, TypeVideo, 1)
	if m.Content != "[Failed to load]" {
		t.Errorf("Content = %q, want the sentinel", m.Content)
	}
}

func TestRemove_DuringLoadStaysRemoved(t *testing.T) {
	gate := make(chan struct{})
	fetcher := &fakeFetcher{
		transcripts: map[int64]string{1: "late text"},
		gate:        gate,
	}
	r := NewResolver(fetcher)

	item := Item{Type: TypeVideo, ID: 1, Title: "v"}
	r.Add(context.Background(), item)
	r.Remove(item)

	if len(r.Mentions()) != 0 {
		t.Fatal("mention still present after Remove")
	}

	// Let the fetch land late; it must not re-insert the mention.
	close(gate)
	eventually(t, "fetch to land", func() bool { return fetcher.callCount() == 1 })
	time.Sleep(20 * time.Millisecond)

	if len(r.Mentions()) != 0 {
		t.Error("late resolution re-inserted a removed mention")
	}
}

func TestRemove_Idempotent(t *testing.T) {
	r := NewResolver(&fakeFetcher{})
	item := Item{Type: TypeConversation, ID: 1}
	r.Add(context.Background(), item)

	r.Remove(item)
	r.Remove(item)
	if len(r.Mentions()) != 0 {
		t.Error("mentions left after double remove")
	}
}

func TestClear(t *testing.T) {
	r := NewResolver(&fakeFetcher{})
	r.Add(context.Background(), Item{Type: TypeConversation, ID: 1})
	r.Add(context.Background(), Item{Type: TypeConversation, ID: 2})

	r.Clear()
	if len(r.Mentions()) != 0 {
		t.Error("mentions left after Clear")
	}
}

func TestTranscriptCache_AvoidsRefetch(t *testing.T) {
	fetcher := &fakeFetcher{transcripts: map[int64]string{1: "cached"}}
	r := NewResolver(fetcher)

	item := Item{Type: TypeVideo, ID: 1}
	r.Add(context.Background(), item)
	eventually(t, "first resolution", func() bool {
		m, ok := findMention(r, TypeVideo, 1)
		return ok && !m.Loading
	})
	r.cache.Wait()
	r.Remove(item)

	r.Add(context.Background(), item)
	eventually(t, "second resolution", func() bool {
		m, ok := findMention(r, TypeVideo, 1)
		return ok && !m.Loading && m.Content == "cached"
	})

	if fetcher.callCount() != 1 {
		t.Errorf("fetcher called %d times, want 1 (second hit served from cache)", fetcher.callCount())
	}
}

// =============================================================================
// CANDIDATE AND FILTER TESTS
// =============================================================================

func TestCandidates_OrderAndExclusion(t *testing.T) {
	author := "uploader"
	title := "named chat"
	videos := []api.Video{
		{ID: 1, Title: "video one", Author: &author},
		{ID: 2, Title: "video two"},
	}
	convs := []api.Conversation{
		{ID: 10, Title: &title, MessageCount: 4},
		{ID: 11},
	}

	r := NewResolver(&fakeFetcher{})
	r.Add(context.Background(), Item{Type: TypeVideo, ID: 2})

	items := r.Candidates(videos, convs)
	if len(items) != 3 {
		t.Fatalf("got %d candidates, want 3 (mentioned video excluded)", len(items))
	}
	if items[0].Type != TypeVideo || items[0].ID != 1 {
		t.Errorf("first candidate = %+v, want remaining video first", items[0])
	}
	if items[0].Subtitle != "uploader" {
		t.Errorf("video subtitle = %q", items[0].Subtitle)
	}
	if items[1].Title != "named chat" || items[1].Subtitle != "4 messages" {
		t.Errorf("conversation candidate = %+v", items[1])
	}
	if items[2].Title != "Dialog 11" {
		t.Errorf("untitled conversation title = %q", items[2].Title)
	}
	if items[2].Subtitle != "" {
		t.Errorf("zero-count subtitle = %q", items[2].Subtitle)
	}
}

func TestFilter(t *testing.T) {
	items := []Item{
		{Type: TypeVideo, ID: 1, Title: "Rust Tutorial", Subtitle: "alice"},
		{Type: TypeVideo, ID: 2, Title: "Go Basics", Subtitle: "bob"},
		{Type: TypeConversation, ID: 3, Title: "about rust lifetimes"},
	}

	if got := Filter(items, ""); len(got) != 3 {
		t.Errorf("blank query kept %d, want all 3", len(got))
	}
	if got := Filter(items, "  "); len(got) != 3 {
		t.Errorf("whitespace query kept %d, want all 3", len(got))
	}

	got := Filter(items, "RUST")
	if len(got) != 2 {
		t.Fatalf("case-insensitive match kept %d, want 2", len(got))
	}
	if got[0].ID != 1 || got[1].ID != 3 {
		t.Errorf("filtered order = %d, %d", got[0].ID, got[1].ID)
	}

	// Subtitle matches too.
	if got := Filter(items, "bob"); len(got) != 1 || got[0].ID != 2 {
		t.Errorf("subtitle filter = %+v", got)
	}
}

func TestFirstMatch(t *testing.T) {
	items := []Item{
		{Type: TypeVideo, ID: 1, Title: "alpha"},
		{Type: TypeVideo, ID: 2, Title: "beta"},
	}

	m, ok := FirstMatch(items, "bet")
	if !ok || m.ID != 2 {
		t.Errorf("FirstMatch = %+v, %v", m, ok)
	}
	if _, ok := FirstMatch(items, "nothing"); ok {
		t.Error("FirstMatch matched an absent query")
	}
}

// =============================================================================
// CONTEXT ASSEMBLY TESTS
// =============================================================================

func TestBuildMessage_NoMentionsPassesThrough(t *testing.T) {
	r := NewResolver(&fakeFetcher{})
	if got := r.BuildMessage("what is x?"); got != "what is x?" {
		t.Errorf("got %q", got)
	}
}

func TestBuildMessage_Template(t *testing.T) {
	fetcher := &fakeFetcher{transcripts: map[int64]string{1: "video context"}}
	r := NewResolver(fetcher)

	r.Add(context.Background(), Item{Type: TypeVideo, ID: 1, Title: "Video A"})
	eventually(t, "resolution", func() bool {
		m, ok := findMention(r, TypeVideo, 1)
		return ok && !m.Loading
	})
	// Contentless conversation mention must contribute nothing.
	r.Add(context.Background(), Item{Type: TypeConversation, ID: 2, Title: "Chat B"})

	got := r.BuildMessage("my question")
	want := "以下是引用的上下文内容:\n\n" +
		"[引用 视频: Video A]\nvideo context" +
		"\n\n---\n\n用户问题: my question"
	if got != want {
		t.Errorf("BuildMessage =\n%q\nwant\n%q", got, want)
	}
}

func TestBuildMessage_MultipleBlocksJoined(t *testing.T) {
	fetcher := &fakeFetcher{transcripts: map[int64]string{1: "ctx1", 2: "ctx2"}}
	r := NewResolver(fetcher)

	r.Add(context.Background(), Item{Type: TypeVideo, ID: 1, Title: "A"})
	r.Add(context.Background(), Item{Type: TypeVideo, ID: 2, Title: "B"})
	eventually(t, "both resolutions", func() bool {
		a, okA := findMention(r, TypeVideo, 1)
		b, okB := findMention(r, TypeVideo, 2)
		return okA && okB && !a.Loading && !b.Loading
	})

	got := r.BuildMessage("q")
	want := "以下是引用的上下文内容:\n\n" +
		"[引用 视频: A]\nctx1" +
		"\n\n---\n\n" +
		"[引用 视频: B]\nctx2" +
		"\n\n---\n\n用户问题: q"
	if got != want {
		t.Errorf("BuildMessage =\n%q\nwant\n%q", got, want)
	}
}
