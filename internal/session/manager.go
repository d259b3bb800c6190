// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session manages live chat state: the conversation list, the
// selected conversation, and the in-flight streaming reply.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/alice-tui/internal/api"
	"github.com/jeranaias/alice-tui/internal/model"
)

// =============================================================================
// BACKEND INTERFACE
// =============================================================================

// Backend is the slice of the API client the manager depends on.
// *api.Client satisfies it; tests inject fakes.
type Backend interface {
	ListConversations(ctx context.Context) ([]api.Conversation, error)
	CreateConversation(ctx context.Context, title *string) (*api.Conversation, error)
	GetConversation(ctx context.Context, id int64) (*api.ConversationDetail, error)
	RenameConversation(ctx context.Context, id int64, title string) (*api.Conversation, error)
	DeleteConversation(ctx context.Context, id int64) error
	SendMessageStream(ctx context.Context, conversationID int64, content string, callback api.StreamCallback) error
}

// Notifier is invoked (never under the manager lock) after any state
// change, so the UI can pull fresh snapshots.
type Notifier func()

// =============================================================================
// MANAGER
// =============================================================================

// Manager owns all chat state behind one mutex.
//
// Concurrency invariants:
//   - conversation list entries are immutable; updates replace them
//   - current's message pointers are immutable; confirmations swap in copies
//   - owner changes only with the lock held; async results compare the
//     token they were started under and drop themselves when it is stale
type Manager struct {
	mu        sync.Mutex
	backend   Backend
	cancelMgr *cancelManager

	conversations []*model.Conversation
	current       *model.Conversation
	streaming     model.StreamingState
	owner         string
	lastError     string

	notify Notifier
}

// NewManager creates a manager over the given backend.
func NewManager(backend Backend) *Manager {
	return &Manager{
		backend:   backend,
		cancelMgr: newCancelManager(),
		owner:     uuid.NewString(),
	}
}

// SetNotifier installs the change callback.
func (m *Manager) SetNotifier(fn Notifier) {
	m.mu.Lock()
	m.notify = fn
	m.mu.Unlock()
}

func (m *Manager) notifyChanged() {
	m.mu.Lock()
	fn := m.notify
	m.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// newOwnerLocked mints a fresh ownership token, orphaning every async
// result started under the previous one. Caller holds the lock.
func (m *Manager) newOwnerLocked() string {
	m.owner = uuid.NewString()
	return m.owner
}

// =============================================================================
// SNAPSHOTS
// =============================================================================

// Conversations returns the conversation list, newest first.
func (m *Manager) Conversations() []*model.Conversation {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.Conversation, len(m.conversations))
	copy(out, m.conversations)
	return out
}

// Current returns the selected conversation, or nil for a fresh chat.
// The returned value is a snapshot safe to read without the lock.
func (m *Manager) Current() *model.Conversation {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil
	}
	c := *m.current
	c.Messages = append([]*model.Message(nil), m.current.Messages...)
	return &c
}

// Streaming returns a copy of the in-flight reply state.
func (m *Manager) Streaming() model.StreamingState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.streaming
}

// IsStreaming reports whether a reply is currently in flight.
func (m *Manager) IsStreaming() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.streaming.Active
}

// LastError returns the most recent operation error, for the status bar.
func (m *Manager) LastError() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastError
}

// ClearError discards the recorded error.
func (m *Manager) ClearError() {
	m.mu.Lock()
	m.lastError = ""
	m.mu.Unlock()
}

func (m *Manager) setError(msg string) {
	m.mu.Lock()
	m.lastError = msg
	m.mu.Unlock()
	m.notifyChanged()
}

// =============================================================================
// CONVERSATION OPERATIONS
// =============================================================================

// RefreshConversations reloads the conversation list. On failure the stale
// list is kept; the error is recorded and returned.
func (m *Manager) RefreshConversations(ctx context.Context) error {
	convs, err := m.backend.ListConversations(ctx)
	if err != nil {
		m.setError("failed to load conversations: " + err.Error())
		return err
	}

	m.mu.Lock()
	m.conversations = model.FromAPIConversations(convs)
	m.mu.Unlock()
	m.notifyChanged()
	return nil
}

// NewChat aborts any in-flight stream and switches to an unsaved fresh
// chat. The backing conversation is created lazily on first send.
func (m *Manager) NewChat() {
	m.mu.Lock()
	m.cancelMgr.cancel()
	m.newOwnerLocked()
	m.streaming.Reset()
	m.current = nil
	m.lastError = ""
	m.mu.Unlock()
	m.notifyChanged()
}

// SelectConversation aborts any in-flight stream and loads the selected
// conversation's history. A fetch that loses a race to a newer selection
// is discarded.
func (m *Manager) SelectConversation(ctx context.Context, id int64) error {
	m.mu.Lock()
	m.cancelMgr.cancel()
	tok := m.newOwnerLocked()
	m.streaming.Reset()
	m.mu.Unlock()
	m.notifyChanged()

	detail, err := m.backend.GetConversation(ctx, id)
	if err != nil {
		if ctx.Err() == nil {
			m.setError("failed to load conversation: " + err.Error())
		}
		return err
	}

	m.mu.Lock()
	if m.owner != tok {
		m.mu.Unlock()
		return nil
	}
	m.current = model.FromAPIConversationDetail(*detail)
	m.mu.Unlock()
	m.notifyChanged()
	return nil
}

// DeleteConversation removes a conversation. Deleting the selected one
// first aborts its stream and clears the view.
func (m *Manager) DeleteConversation(ctx context.Context, id int64) error {
	m.mu.Lock()
	if m.current != nil && m.current.ID == id {
		m.cancelMgr.cancel()
		m.newOwnerLocked()
		m.streaming.Reset()
		m.current = nil
	}
	m.mu.Unlock()
	m.notifyChanged()

	if err := m.backend.DeleteConversation(ctx, id); err != nil {
		m.setError("failed to delete conversation: " + err.Error())
		return err
	}

	m.mu.Lock()
	for i, c := range m.conversations {
		if c.ID == id {
			m.conversations = append(m.conversations[:i], m.conversations[i+1:]...)
			break
		}
	}
	m.mu.Unlock()
	m.notifyChanged()
	return nil
}

// RenameConversation sets a conversation title on the backend and mirrors
// it locally.
func (m *Manager) RenameConversation(ctx context.Context, id int64, title string) error {
	updated, err := m.backend.RenameConversation(ctx, id, title)
	if err != nil {
		m.setError("failed to rename conversation: " + err.Error())
		return err
	}

	m.mu.Lock()
	m.replaceListEntryLocked(model.FromAPIConversation(*updated))
	if m.current != nil && m.current.ID == id {
		m.current.SetTitle(title)
	}
	m.mu.Unlock()
	m.notifyChanged()
	return nil
}

// replaceListEntryLocked swaps the list entry matching conv's id for conv,
// or prepends it when absent. Caller holds the lock.
func (m *Manager) replaceListEntryLocked(conv *model.Conversation) {
	for i, c := range m.conversations {
		if c.ID == conv.ID {
			m.conversations[i] = conv
			return
		}
	}
	m.conversations = append([]*model.Conversation{conv}, m.conversations...)
}

// =============================================================================
// STREAMING SEND
// =============================================================================

// SendMessage sends a user message to the selected conversation (creating
// one for a fresh chat) and blocks consuming the streamed reply. Run it
// from its own goroutine; all UI-visible progress arrives via the notifier.
//
// Any previously in-flight stream is aborted first: at most one stream is
// live at a time.
func (m *Manager) SendMessage(ctx context.Context, content string) error {
	if strings.TrimSpace(content) == "" {
		return nil
	}

	m.mu.Lock()
	m.cancelMgr.cancel()
	tok := m.newOwnerLocked()
	m.streaming.Reset()
	m.streaming.Active = true
	m.lastError = ""
	cur := m.current
	// Register the cancel before the first backend call: a cancel issued
	// while the conversation is still being created must abort the whole
	// send, not just a stream that has not opened yet.
	streamCtx, cancel := context.WithCancel(ctx)
	m.cancelMgr.set(cancel)
	m.mu.Unlock()
	m.notifyChanged()

	// The send always ends with a token-guarded cleanup, so an aborted
	// or failed send can never leave the input locked.
	defer m.finishStream(tok, "")
	defer cancel()

	// Resolve the target conversation, creating one for a fresh chat.
	var convID int64
	if cur == nil {
		created, err := m.backend.CreateConversation(streamCtx, nil)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			m.finishStream(tok, "failed to create conversation: "+err.Error())
			return err
		}
		conv := model.FromAPIConversation(*created)
		conv.Messages = []*model.Message{}

		m.mu.Lock()
		if m.owner != tok {
			m.mu.Unlock()
			return nil
		}
		m.current = conv
		entry := *conv
		entry.Messages = nil
		m.replaceListEntryLocked(&entry)
		m.mu.Unlock()
		convID = conv.ID
	} else {
		convID = cur.ID
	}
	if streamCtx.Err() != nil {
		return nil
	}

	// Optimistic user message, and an optimistic title for a first send.
	m.mu.Lock()
	if m.owner != tok {
		m.mu.Unlock()
		return nil
	}
	m.streaming.ChatID = convID
	m.current.AppendMessage(model.NewPendingUserMessage(content))
	if m.current.IsUntitled() {
		m.current.SetTitle(model.OptimisticTitle(content))
		entry := *m.current
		entry.Messages = nil
		m.replaceListEntryLocked(&entry)
	}
	m.mu.Unlock()
	m.notifyChanged()

	err := m.backend.SendMessageStream(streamCtx, convID, content, func(ev api.StreamEvent) {
		m.applyEvent(tok, ev)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		m.finishStream(tok, "stream failed: "+err.Error())
		return err
	}

	// Best-effort list refresh so ordering and counts match the backend.
	if convs, lerr := m.backend.ListConversations(ctx); lerr == nil {
		m.mu.Lock()
		if m.owner == tok {
			fresh := model.FromAPIConversations(convs)
			m.conversations = fresh
		}
		m.mu.Unlock()
		m.notifyChanged()
	}
	return nil
}

// CancelStream aborts the in-flight reply, if any. The partial reply is
// discarded by the send path's cleanup.
func (m *Manager) CancelStream() {
	m.cancelMgr.cancel()
}

// applyEvent folds one stream event into state. Events carrying a stale
// token belong to an orphaned stream and are dropped.
func (m *Manager) applyEvent(tok string, ev api.StreamEvent) {
	m.mu.Lock()
	if m.owner != tok {
		m.mu.Unlock()
		return
	}

	switch ev.Type {
	case api.EventThinking:
		m.streaming.AppendReasoning(ev.Content)

	case api.EventContent:
		m.streaming.AppendContent(ev.Content)

	case api.EventDone:
		reasoning := m.streaming.Reasoning
		if ev.Reasoning != "" {
			reasoning = ev.Reasoning
		}
		msg := &model.Message{
			ID:        ev.MessageID,
			Role:      model.RoleAssistant,
			Content:   m.streaming.Content,
			CreatedAt: time.Now().Format(time.RFC3339),
			Reasoning: reasoning,
		}
		if m.current != nil {
			m.confirmPendingLocked()
			m.current.AppendMessage(msg)
		}
		m.streaming.Reset()

	case api.EventError:
		m.lastError = ev.Error
		m.streaming.Reset()
	}
	m.mu.Unlock()
	m.notifyChanged()
}

// confirmPendingLocked marks optimistic messages acknowledged, swapping in
// copies so concurrent snapshot readers never observe a mutation.
func (m *Manager) confirmPendingLocked() {
	for i, msg := range m.current.Messages {
		if msg.Pending {
			confirmed := *msg
			confirmed.Pending = false
			m.current.Messages[i] = &confirmed
		}
	}
}

// finishStream is the token-guarded cleanup run when a stream ends for any
// reason. A stale token means a newer operation owns the state; leave it
// untouched.
func (m *Manager) finishStream(tok, errMsg string) {
	m.mu.Lock()
	if m.owner != tok {
		m.mu.Unlock()
		return
	}
	m.streaming.Reset()
	if errMsg != "" {
		m.lastError = errMsg
	}
	m.mu.Unlock()
	m.notifyChanged()
}
