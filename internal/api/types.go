// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the alice backend.
package api

// Timestamps are kept as the backend's ISO strings. The backend emits
// Python isoformat values that are not always RFC3339 (no timezone suffix),
// so decoding into time.Time would be fragile; presentation code only ever
// displays them.

// =============================================================================
// AUTH
// =============================================================================

// TokenResponse is returned by login and register.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserInfo describes the authenticated user.
type UserInfo struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	TenantID int64  `json:"tenant_id"`
}

// =============================================================================
// CONVERSATIONS
// =============================================================================

// Conversation is a list-view conversation stub.
type Conversation struct {
	ID           int64   `json:"id"`
	Title        *string `json:"title"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
	MessageCount int     `json:"message_count"`
}

// Message is one chat message as stored by the backend.
// Sources is an opaque JSON string that may encode a reasoning trace; it is
// decoded exactly once by model.ParseSources.
type Message struct {
	ID        int64   `json:"id"`
	Role      string  `json:"role"` // "user", "assistant", "system"
	Content   string  `json:"content"`
	Sources   *string `json:"sources"`
	CreatedAt string  `json:"created_at"`
}

// ConversationDetail is a conversation with its full message history.
type ConversationDetail struct {
	ID        int64     `json:"id"`
	Title     *string   `json:"title"`
	CreatedAt string    `json:"created_at"`
	UpdatedAt string    `json:"updated_at"`
	Messages  []Message `json:"messages"`
}

// =============================================================================
// STREAM EVENTS
// =============================================================================

// Stream event types emitted by the chat streaming endpoint.
const (
	EventThinking = "thinking"
	EventContent  = "content"
	EventDone     = "done"
	EventError    = "error"
)

// StreamEvent is one decoded record from the chat streaming endpoint.
type StreamEvent struct {
	Type      string `json:"type"`
	Content   string `json:"content,omitempty"`
	MessageID int64  `json:"message_id,omitempty"`
	Reasoning string `json:"reasoning,omitempty"`
	Error     string `json:"error,omitempty"`
}

// =============================================================================
// VIDEOS
// =============================================================================

// Video is a list-view video record.
type Video struct {
	ID          int64   `json:"id"`
	BVID        string  `json:"bvid"`
	Title       string  `json:"title"`
	Author      *string `json:"author"`
	Duration    *int64  `json:"duration"`
	CoverURL    *string `json:"cover_url"`
	Status      string  `json:"status"`
	Summary     *string `json:"summary"`
	CreatedAt   string  `json:"created_at"`
	ProcessedAt *string `json:"processed_at"`
}

// PaginatedVideos is the paginated video list response.
type PaginatedVideos struct {
	Total    int     `json:"total"`
	Page     int     `json:"page"`
	PageSize int     `json:"page_size"`
	Pages    int     `json:"pages"`
	Items    []Video `json:"items"`
}

// VideoStats summarizes processing status counts.
type VideoStats struct {
	Total      int `json:"total"`
	Done       int `json:"done"`
	Pending    int `json:"pending"`
	Failed     int `json:"failed"`
	Processing int `json:"processing"`
}

// VideoProcessStatus reports a single video's pipeline state.
type VideoProcessStatus struct {
	ID            int64   `json:"id"`
	Status        string  `json:"status"`
	ErrorMessage  *string `json:"error_message"`
	HasTranscript bool    `json:"has_transcript"`
	HasSummary    bool    `json:"has_summary"`
}

// ImportRequest asks the backend to import a video by URL.
type ImportRequest struct {
	URL         string `json:"url"`
	AutoProcess bool   `json:"auto_process,omitempty"`
}

// ImportResponse is the result of a video import.
type ImportResponse struct {
	ID      int64  `json:"id"`
	BVID    string `json:"bvid"`
	Title   string `json:"title"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// QueueVideo is one entry in the processing queue.
type QueueVideo struct {
	ID           int64   `json:"id"`
	BVID         string  `json:"bvid"`
	Title        string  `json:"title"`
	Status       string  `json:"status"`
	ErrorMessage *string `json:"error_message"`
	CreatedAt    *string `json:"created_at"`
	ProcessedAt  *string `json:"processed_at"`
}

// ProcessingQueue is the full queue snapshot.
type ProcessingQueue struct {
	Queue       []QueueVideo `json:"queue"`
	Failed      []QueueVideo `json:"failed"`
	RecentDone  []QueueVideo `json:"recent_done"`
	QueueCount  int          `json:"queue_count"`
	FailedCount int          `json:"failed_count"`
}

// =============================================================================
// KNOWLEDGE GRAPH
// =============================================================================

// GraphNode is a knowledge graph node (concept or video). Read-only.
type GraphNode struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Type  string  `json:"type"` // "concept" or "video"
	Size  float64 `json:"size,omitempty"`
}

// GraphEdge links two graph nodes with a weight.
type GraphEdge struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight"`
}

// GraphStats summarizes the knowledge graph.
type GraphStats struct {
	TotalConcepts int `json:"total_concepts"`
	TotalVideos   int `json:"total_videos"`
	TotalEdges    int `json:"total_edges"`
}

// KnowledgeGraph is the full graph payload.
type KnowledgeGraph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
	Stats GraphStats  `json:"stats"`
}

// =============================================================================
// SYSTEM / CONFIG
// =============================================================================

// StorageStats reports backend disk usage.
type StorageStats struct {
	TotalVideos           int     `json:"total_videos"`
	ProcessedVideos       int     `json:"processed_videos"`
	PendingVideos         int     `json:"pending_videos"`
	FailedVideos          int     `json:"failed_videos"`
	AudioFilesCount       int     `json:"audio_files_count"`
	AudioFilesSizeMB      float64 `json:"audio_files_size_mb"`
	DownloadFilesSizeMB   float64 `json:"download_files_size_mb"`
	TranscriptFilesSizeMB float64 `json:"transcript_files_size_mb"`
	TotalSizeMB           float64 `json:"total_size_mb"`
}

// CleanupResult reports freed storage after a cleanup run.
type CleanupResult struct {
	CleanedCount int     `json:"cleaned_count"`
	FreedMB      float64 `json:"freed_mb"`
}

// ASRConfig is the backend's speech-recognition configuration summary.
type ASRConfig struct {
	Provider  string `json:"provider"`
	ModelSize string `json:"model_size"`
	Device    string `json:"device"`
	HasAPIKey bool   `json:"has_api_key"`
	APIModel  string `json:"api_model,omitempty"`
}

// LLMConfig is the backend's language-model configuration summary.
type LLMConfig struct {
	Provider  string `json:"provider"`
	Model     string `json:"model"`
	BaseURL   string `json:"base_url,omitempty"`
	HasAPIKey bool   `json:"has_api_key"`
}

// BackendConfig is the backend's full configuration snapshot.
type BackendConfig struct {
	ASR ASRConfig `json:"asr"`
	LLM LLMConfig `json:"llm"`
}

// Folder describes a watched favorites folder.
type Folder struct {
	ID         int64   `json:"id"`
	FolderID   string  `json:"folder_id"`
	FolderType string  `json:"folder_type"`
	Name       string  `json:"name"`
	IsActive   bool    `json:"is_active"`
	VideoCount int     `json:"video_count"`
	LastScanAt *string `json:"last_scan_at"`
}
