// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the alice backend.
package api

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/jeranaias/alice-tui/internal/util"
)

// =============================================================================
// STREAM READER
// =============================================================================

// streamLinePrefix marks event records in the streaming response body.
// Lines without this prefix (keep-alives, blank separators) are ignored.
const streamLinePrefix = "data: "

// StreamCallback is called for each event received during streaming.
type StreamCallback func(ev StreamEvent)

// StreamReader handles line-by-line parsing of the chat streaming response.
// The body is UTF-8 text; events are newline-delimited "data: <json>" lines.
// Partial lines spanning two network chunks are buffered by the underlying
// bufio.Reader and parsed only once complete. Malformed lines are dropped
// without aborting the stream.
type StreamReader struct {
	reader *bufio.Reader
}

// NewStreamReader creates a stream reader from an io.Reader.
func NewStreamReader(r io.Reader) *StreamReader {
	return &StreamReader{
		reader: bufio.NewReader(r),
	}
}

// Process reads the stream and calls the callback for each event, in arrival
// order, until the body ends, a terminal event is seen, or the context is
// cancelled. Cancellation returns ctx.Err() without emitting a synthetic
// event; an unreadable body emits one synthetic error event and returns nil.
func (s *StreamReader) Process(ctx context.Context, callback StreamCallback) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := s.reader.ReadString('\n')
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if err == io.EOF {
				// The last line may arrive without a trailing newline.
				if ev, ok := parseEventLine(line); ok {
					callback(ev)
				}
				return nil
			}
			callback(StreamEvent{Type: EventError, Error: "stream read failed: " + err.Error()})
			return nil
		}

		ev, ok := parseEventLine(line)
		if !ok {
			continue
		}
		callback(ev)
		if ev.Type == EventDone || ev.Type == EventError {
			return nil
		}
	}
}

// parseEventLine decodes one "data: <json>" line into a StreamEvent.
// Returns ok=false for non-event and malformed lines.
func parseEventLine(line string) (StreamEvent, bool) {
	line = strings.TrimRight(line, "\r\n")
	if !strings.HasPrefix(line, streamLinePrefix) {
		return StreamEvent{}, false
	}

	var ev StreamEvent
	if err := json.Unmarshal([]byte(line[len(streamLinePrefix):]), &ev); err != nil {
		// Malformed lines must never terminate the stream.
		return StreamEvent{}, false
	}
	if ev.Type == "" {
		return StreamEvent{}, false
	}
	return ev, true
}

// =============================================================================
// STREAMING CHAT
// =============================================================================

// SendMessageStream posts a message to a conversation and consumes the
// chunked streaming response, calling the callback for each event.
//
// This call deliberately targets StreamBaseURL rather than the proxied base
// URL: response buffering in a proxy would collapse the incremental events
// into one burst.
//
// A non-2xx status or an unopenable connection yields a single synthetic
// error event and a nil return; context cancellation returns ctx.Err()
// without a synthetic event. The call is restartable only as a whole (no
// mid-stream resume).
func (c *Client) SendMessageStream(ctx context.Context, conversationID int64, content string, callback StreamCallback) error {
	payload, err := json.Marshal(struct {
		Content string `json:"content"`
	}{Content: content})
	if err != nil {
		callback(StreamEvent{Type: EventError, Error: "failed to marshal request: " + err.Error()})
		return nil
	}

	url := c.config.StreamBaseURL + apiPrefix + "/conversations/" + util.Int64ToString(conversationID) + "/messages/stream"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		callback(StreamEvent{Type: EventError, Error: "failed to create request: " + err.Error()})
		return nil
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	// A dedicated client without a timeout: the stream stays open for as
	// long as the model generates, bounded only by ctx.
	streamClient := &http.Client{}

	resp, err := streamClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			return ctx.Err()
		}
		callback(StreamEvent{Type: EventError, Error: "stream connection failed: " + err.Error()})
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		callback(StreamEvent{Type: EventError, Error: "HTTP " + resp.Status})
		return nil
	}

	return NewStreamReader(resp.Body).Process(ctx, callback)
}
