// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the alice backend.
package api

import (
	"context"
	"io"
	"reflect"
	"strings"
	"testing"
	"testing/iotest"
)

// =============================================================================
// STREAM READER TESTS
// =============================================================================

func collectEvents(t *testing.T, body string) []StreamEvent {
	t.Helper()

	var events []StreamEvent
	reader := NewStreamReader(strings.NewReader(body))
	err := reader.Process(context.Background(), func(ev StreamEvent) {
		events = append(events, ev)
	})
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	return events
}

func TestStreamReader_BasicSequence(t *testing.T) {
	body := `data: {"type":"thinking","content":"considering"}
data: {"type":"content","content":"Hello"}
data: {"type":"content","content":" world"}
data: {"type":"done","message_id":42,"reasoning":"thought hard"}
`

	events := collectEvents(t, body)

	if len(events) != 4 {
		t.Fatalf("got %d events, want 4", len(events))
	}
	if events[0].Type != EventThinking || events[0].Content != "considering" {
		t.Errorf("event 0 = %+v", events[0])
	}
	if events[1].Content != "Hello" || events[2].Content != " world" {
		t.Errorf("content chunks = %q, %q", events[1].Content, events[2].Content)
	}
	if events[3].Type != EventDone {
		t.Errorf("last event type = %q, want done", events[3].Type)
	}
	if events[3].MessageID != 42 {
		t.Errorf("MessageID = %d, want 42", events[3].MessageID)
	}
	if events[3].Reasoning != "thought hard" {
		t.Errorf("Reasoning = %q", events[3].Reasoning)
	}
}

func TestStreamReader_IgnoresNonDataLines(t *testing.T) {
	body := `: keep-alive

event: noise
data: {"type":"content","content":"ok"}

data: {"type":"done"}
`

	events := collectEvents(t, body)

	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Content != "ok" {
		t.Errorf("Content = %q, want 'ok'", events[0].Content)
	}
}

func TestStreamReader_MalformedJSONSkipped(t *testing.T) {
	body := `data: {"type":"content","content":"a"}
data: {not json at all
data: {"type":"content","content":"b"}
data: {"type":"done"}
`

	events := collectEvents(t, body)

	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	if events[0].Content != "a" || events[1].Content != "b" {
		t.Errorf("chunks = %q, %q", events[0].Content, events[1].Content)
	}
}

func TestStreamReader_MissingTypeSkipped(t *testing.T) {
	body := `data: {"content":"typeless"}
data: {"type":"done"}
`

	events := collectEvents(t, body)

	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Type != EventDone {
		t.Errorf("Type = %q, want done", events[0].Type)
	}
}

func TestStreamReader_TrailingLineWithoutNewline(t *testing.T) {
	body := `data: {"type":"content","content":"partial"}
data: {"type":"done","message_id":7}`

	events := collectEvents(t, body)

	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[1].Type != EventDone || events[1].MessageID != 7 {
		t.Errorf("last event = %+v", events[1])
	}
}

func TestStreamReader_CRLFLineEndings(t *testing.T) {
	body := "data: {\"type\":\"content\",\"content\":\"x\"}\r\ndata: {\"type\":\"done\"}\r\n"

	events := collectEvents(t, body)

	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Content != "x" {
		t.Errorf("Content = %q, want 'x'", events[0].Content)
	}
}

// chunkedReader serves each chunk as its own Read, so line boundaries can
// be forced to land anywhere in the body.
type chunkedReader struct {
	chunks []string
}

func (c *chunkedReader) Read(p []byte) (int, error) {
	if len(c.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(p, c.chunks[0])
	if n < len(c.chunks[0]) {
		c.chunks[0] = c.chunks[0][n:]
	} else {
		c.chunks = c.chunks[1:]
	}
	return n, nil
}

func TestStreamReader_OneByteReads(t *testing.T) {
	body := "data: {\"type\":\"thinking\",\"content\":\"hmm\"}\n" +
		"data: {\"type\":\"content\",\"content\":\"Hello\"}\n" +
		"data: {\"type\":\"content\",\"content\":\" world\"}\n" +
		"data: {\"type\":\"done\",\"message_id\":42,\"reasoning\":\"hmm\"}\n"

	want := collectEvents(t, body)

	var got []StreamEvent
	reader := NewStreamReader(iotest.OneByteReader(strings.NewReader(body)))
	err := reader.Process(context.Background(), func(ev StreamEvent) {
		got = append(got, ev)
	})
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("one-byte reads diverged:\n got %+v\nwant %+v", got, want)
	}
}

func TestStreamReader_SplitAtEveryBoundary(t *testing.T) {
	body := "data: {\"type\":\"content\",\"content\":\"Hello\"}\n" +
		"data: {\"type\":\"done\",\"message_id\":7,\"reasoning\":\"ok\"}\n"

	want := collectEvents(t, body)

	// Every split point, including mid-prefix and mid-JSON, must yield
	// the same event sequence as the unsplit body.
	for i := 0; i <= len(body); i++ {
		var got []StreamEvent
		reader := NewStreamReader(&chunkedReader{chunks: []string{body[:i], body[i:]}})
		err := reader.Process(context.Background(), func(ev StreamEvent) {
			got = append(got, ev)
		})
		if err != nil {
			t.Fatalf("split at %d: Process returned error: %v", i, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("split at %d:\n got %+v\nwant %+v", i, got, want)
		}
	}
}

func TestStreamReader_StopsAfterTerminalEvent(t *testing.T) {
	body := `data: {"type":"done"}
data: {"type":"content","content":"should not be seen"}
`

	events := collectEvents(t, body)

	if len(events) != 1 {
		t.Fatalf("got %d events, want 1 (reading must stop at done)", len(events))
	}
}

func TestStreamReader_ErrorEventIsTerminal(t *testing.T) {
	body := `data: {"type":"content","content":"a"}
data: {"type":"error","error":"model exploded"}
data: {"type":"content","content":"late"}
`

	events := collectEvents(t, body)

	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[1].Type != EventError || events[1].Error != "model exploded" {
		t.Errorf("error event = %+v", events[1])
	}
}

func TestStreamReader_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reader := NewStreamReader(strings.NewReader("data: {\"type\":\"content\",\"content\":\"x\"}\n"))
	var events []StreamEvent
	err := reader.Process(ctx, func(ev StreamEvent) {
		events = append(events, ev)
	})

	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if len(events) != 0 {
		t.Errorf("got %d events after cancellation, want 0", len(events))
	}
}

// failingReader returns data once, then an error.
type failingReader struct {
	data string
	done bool
}

func (f *failingReader) Read(p []byte) (int, error) {
	if !f.done {
		f.done = true
		n := copy(p, f.data)
		return n, nil
	}
	return 0, io.ErrUnexpectedEOF
}

func TestStreamReader_ReadErrorEmitsSyntheticError(t *testing.T) {
	reader := NewStreamReader(&failingReader{data: "data: {\"type\":\"content\",\"content\":\"a\"}\n"})

	var events []StreamEvent
	err := reader.Process(context.Background(), func(ev StreamEvent) {
		events = append(events, ev)
	})

	if err != nil {
		t.Fatalf("Process returned error: %v (read failures surface as events)", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[1].Type != EventError {
		t.Errorf("final event type = %q, want error", events[1].Type)
	}
}

func TestStreamReader_EmptyBody(t *testing.T) {
	events := collectEvents(t, "")

	if len(events) != 0 {
		t.Errorf("got %d events from empty body, want 0", len(events))
	}
}
