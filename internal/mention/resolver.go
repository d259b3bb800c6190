// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package mention turns @-references to videos and prior conversations
// into content-bearing context blocks for the composer.
package mention

import (
	"context"
	"strings"
	"sync"

	"github.com/dgraph-io/ristretto/v2"
	"golang.org/x/text/cases"

	"github.com/jeranaias/alice-tui/internal/api"
	"github.com/jeranaias/alice-tui/internal/util"
)

// =============================================================================
// TYPES
// =============================================================================

// Type discriminates what a mention refers to.
type Type string

const (
	TypeVideo        Type = "video"
	TypeConversation Type = "conversation"
)

// transcriptBudget caps how much transcript text one mention contributes.
const transcriptBudget = 2000

// failedContent is the literal placeholder for a transcript that could not
// be loaded. It is context text, not an error surfaced to the composer.
const failedContent = "[Failed to load]"

// Item is one selectable (or selected) mention. Identity is (Type, ID).
type Item struct {
	Type     Type
	ID       int64
	Title    string
	Subtitle string

	// Content is the resolved context text; empty until loaded, and empty
	// forever for conversation mentions.
	Content string

	// Loading is true from selection until the content fetch settles.
	Loading bool
}

// TranscriptFetcher is the slice of the API client the resolver needs.
// *api.Client satisfies it.
type TranscriptFetcher interface {
	GetTranscript(ctx context.Context, id int64) (string, error)
}

// =============================================================================
// RESOLVER
// =============================================================================

// Resolver owns the active mention set of one composer.
type Resolver struct {
	mu       sync.Mutex
	fetcher  TranscriptFetcher
	cache    *ristretto.Cache[int64, string]
	mentions []Item
	notify   func()
}

// NewResolver creates a resolver over the given fetcher. Transcripts are
// cached so re-mentioning a video does not refetch megabytes of text.
func NewResolver(fetcher TranscriptFetcher) *Resolver {
	cache, _ := ristretto.NewCache(&ristretto.Config[int64, string]{
		NumCounters: 10_000,
		MaxCost:     8 << 20, // bytes of cached transcript text
		BufferItems: 64,
	})
	return &Resolver{
		fetcher: fetcher,
		cache:   cache,
	}
}

// SetNotifier installs a callback fired after every mention-set change,
// including asynchronous content resolutions.
func (r *Resolver) SetNotifier(fn func()) {
	r.mu.Lock()
	r.notify = fn
	r.mu.Unlock()
}

func (r *Resolver) notifyChanged() {
	r.mu.Lock()
	fn := r.notify
	r.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Mentions returns a snapshot of the active mention set, in selection
// order.
func (r *Resolver) Mentions() []Item {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Item(nil), r.mentions...)
}

// Add inserts the item in loading state and, for video mentions, starts
// the transcript fetch in the background. Conversation mentions settle
// immediately with no content.
func (r *Resolver) Add(ctx context.Context, item Item) {
	item.Loading = true
	item.Content = ""

	r.mu.Lock()
	r.mentions = append(r.mentions, item)
	r.mu.Unlock()
	r.notifyChanged()

	if item.Type != TypeVideo {
		r.settle(item.Type, item.ID, "")
		return
	}

	go r.loadTranscript(ctx, item.ID)
}

// Remove deletes the mention by (type, id). Idempotent.
func (r *Resolver) Remove(item Item) {
	r.mu.Lock()
	for i, m := range r.mentions {
		if m.Type == item.Type && m.ID == item.ID {
			r.mentions = append(r.mentions[:i], r.mentions[i+1:]...)
			break
		}
	}
	r.mu.Unlock()
	r.notifyChanged()
}

// Clear empties the mention set, as on send or explicit discard.
func (r *Resolver) Clear() {
	r.mu.Lock()
	r.mentions = nil
	r.mu.Unlock()
	r.notifyChanged()
}

// loadTranscript fetches and truncates a video transcript, then settles
// the owning mention.
func (r *Resolver) loadTranscript(ctx context.Context, id int64) {
	if cached, ok := r.cache.Get(id); ok {
		r.settle(TypeVideo, id, cached)
		return
	}

	text, err := r.fetcher.GetTranscript(ctx, id)
	if err != nil {
		r.settle(TypeVideo, id, failedContent)
		return
	}

	content := util.TruncateRunesNoEllipsis(text, transcriptBudget)
	r.cache.Set(id, content, int64(len(content)))
	r.settle(TypeVideo, id, content)
}

// settle marks the mention matching (typ, id) as loaded with the given
// content. A mention removed in the meantime is left removed: settling
// matches in place and never re-inserts.
func (r *Resolver) settle(typ Type, id int64, content string) {
	r.mu.Lock()
	for i, m := range r.mentions {
		if m.Type == typ && m.ID == id {
			r.mentions[i].Loading = false
			r.mentions[i].Content = content
			break
		}
	}
	r.mu.Unlock()
	r.notifyChanged()
}

// =============================================================================
// CANDIDATES AND FILTERING
// =============================================================================

// Candidates builds the pickable item list: all videos first in their
// given order, then conversations, excluding anything already mentioned.
func (r *Resolver) Candidates(videos []api.Video, conversations []api.Conversation) []Item {
	r.mu.Lock()
	taken := make(map[Type]map[int64]bool, 2)
	for _, m := range r.mentions {
		if taken[m.Type] == nil {
			taken[m.Type] = make(map[int64]bool)
		}
		taken[m.Type][m.ID] = true
	}
	r.mu.Unlock()

	items := make([]Item, 0, len(videos)+len(conversations))
	for _, v := range videos {
		if taken[TypeVideo][v.ID] {
			continue
		}
		item := Item{Type: TypeVideo, ID: v.ID, Title: v.Title}
		if v.Author != nil {
			item.Subtitle = *v.Author
		}
		items = append(items, item)
	}
	for _, c := range conversations {
		if taken[TypeConversation][c.ID] {
			continue
		}
		item := Item{Type: TypeConversation, ID: c.ID}
		if c.Title != nil && *c.Title != "" {
			item.Title = *c.Title
		} else {
			item.Title = "Dialog " + util.Int64ToString(c.ID)
		}
		if c.MessageCount > 0 {
			item.Subtitle = util.IntToString(c.MessageCount) + " messages"
		}
		items = append(items, item)
	}
	return items
}

// Filter keeps items whose title or subtitle contains the query,
// case-folded so it works across scripts. A blank query keeps everything.
func Filter(items []Item, query string) []Item {
	query = strings.TrimSpace(query)
	if query == "" {
		return items
	}

	folder := cases.Fold()
	needle := folder.String(query)

	out := make([]Item, 0, len(items))
	for _, item := range items {
		if strings.Contains(folder.String(item.Title), needle) ||
			strings.Contains(folder.String(item.Subtitle), needle) {
			out = append(out, item)
		}
	}
	return out
}

// FirstMatch returns the first filtered candidate, for select-via-Enter.
func FirstMatch(items []Item, query string) (Item, bool) {
	filtered := Filter(items, query)
	if len(filtered) == 0 {
		return Item{}, false
	}
	return filtered[0], true
}

// =============================================================================
// CONTEXT ASSEMBLY
// =============================================================================

// typeLabel is the label used inside a context block header.
func typeLabel(t Type) string {
	if t == TypeVideo {
		return "视频"
	}
	return "对话"
}

// BuildMessage prepends the resolved mention contents to the user's
// question under the context template the backend's prompt expects.
// Mentions without content contribute nothing; with no contributing
// mentions the question passes through untouched.
func (r *Resolver) BuildMessage(question string) string {
	mentions := r.Mentions()

	blocks := make([]string, 0, len(mentions))
	for _, m := range mentions {
		if m.Content == "" {
			continue
		}
		blocks = append(blocks, "[引用 "+typeLabel(m.Type)+": "+m.Title+"]\n"+m.Content)
	}
	if len(blocks) == 0 {
		return question
	}

	return "以下是引用的上下文内容:\n\n" +
		strings.Join(blocks, "\n\n---\n\n") +
		"\n\n---\n\n用户问题: " + question
}
