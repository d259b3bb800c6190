// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the alice backend.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/jeranaias/alice-tui/internal/util"
)

// =============================================================================
// VIDEO ENDPOINTS
// =============================================================================

// VideoListOptions filters and paginates the video list. Zero values are
// omitted from the query.
type VideoListOptions struct {
	Page     int
	PageSize int
	Status   string // "pending", "processing", "done", "failed"
	Search   string
}

// ListVideos fetches a page of videos.
func (c *Client) ListVideos(ctx context.Context, opts VideoListOptions) (*PaginatedVideos, error) {
	q := url.Values{}
	if opts.Page > 0 {
		q.Set("page", util.IntToString(opts.Page))
	}
	if opts.PageSize > 0 {
		q.Set("page_size", util.IntToString(opts.PageSize))
	}
	if opts.Status != "" {
		q.Set("status", opts.Status)
	}
	if opts.Search != "" {
		q.Set("search", opts.Search)
	}

	path := "/videos"
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}

	var out PaginatedVideos
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetVideo fetches a single video record.
func (c *Client) GetVideo(ctx context.Context, id int64) (*Video, error) {
	var out Video
	if err := c.do(ctx, http.MethodGet, "/videos/"+util.Int64ToString(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetVideoStats fetches aggregate processing-status counts.
func (c *Client) GetVideoStats(ctx context.Context) (*VideoStats, error) {
	var out VideoStats
	if err := c.do(ctx, http.MethodGet, "/videos/stats/summary", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetVideoStatus fetches a single video's pipeline state.
func (c *Client) GetVideoStatus(ctx context.Context, id int64) (*VideoProcessStatus, error) {
	var out VideoProcessStatus
	if err := c.do(ctx, http.MethodGet, "/videos/"+util.Int64ToString(id)+"/status", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTranscript fetches a video's transcript text.
//
// Older backend builds return the transcript as a bare JSON string; newer
// ones wrap it in an object. Both shapes are accepted.
func (c *Client) GetTranscript(ctx context.Context, id int64) (string, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/videos/"+util.Int64ToString(id)+"/transcript", nil, &raw); err != nil {
		return "", err
	}
	return decodeTranscript(raw)
}

// decodeTranscript accepts either "..." or {"text": "..."}.
func decodeTranscript(raw json.RawMessage) (string, error) {
	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return plain, nil
	}

	var wrapped struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return "", &ClientError{
			Type:    ErrTypeInvalidResponse,
			Message: "unexpected transcript payload",
			Cause:   err,
		}
	}
	return wrapped.Text, nil
}

// ImportVideo asks the backend to import a video by its share URL or BV id.
func (c *Client) ImportVideo(ctx context.Context, req ImportRequest) (*ImportResponse, error) {
	var out ImportResponse
	if err := c.do(ctx, http.MethodPost, "/videos/import", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ProcessVideo triggers (or retries) the transcription pipeline for a video.
func (c *Client) ProcessVideo(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, "/videos/"+util.Int64ToString(id)+"/process", nil, nil)
}

// DeleteVideo removes a video and its derived artifacts.
func (c *Client) DeleteVideo(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/videos/"+util.Int64ToString(id), nil, nil)
}

// GetProcessingQueue fetches the current processing queue snapshot.
func (c *Client) GetProcessingQueue(ctx context.Context) (*ProcessingQueue, error) {
	var out ProcessingQueue
	if err := c.do(ctx, http.MethodGet, "/videos/queue/status", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListFolders fetches the watched favorites folders.
func (c *Client) ListFolders(ctx context.Context) ([]Folder, error) {
	var out []Folder
	if err := c.do(ctx, http.MethodGet, "/folders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
