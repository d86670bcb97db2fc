package syncjob

import (
	"context"
	"time"

	"readmark/internal/remote"
)

// Status enumerates the sync job states reported by the backend.
type Status string

const (
	StatusIdle        Status = "idle"
	StatusChecking    Status = "checking"
	StatusDownloading Status = "downloading"
	StatusCompleted   Status = "completed"
	StatusUpToDate    Status = "up_to_date"
	StatusError       Status = "error"
)

// active reports whether the status means a sync is still in progress.
func (s Status) active() bool {
	return s == StatusChecking || s == StatusDownloading
}

// InitiateResponse is the POST /check-and-sync payload.
type InitiateResponse struct {
	Initiated bool   `json:"initiated"`
	Message   string `json:"message"`
	Status    Status `json:"status,omitempty"`
	Error     string `json:"error,omitempty"`
}

// StatusResponse is the GET /sync-status payload.
type StatusResponse struct {
	Status      Status   `json:"status"`
	Message     string   `json:"message"`
	Progress    *float64 `json:"progress,omitempty"`
	Error       string   `json:"error,omitempty"`
	IsSyncing   bool     `json:"is_syncing"`
	NeedsReload bool     `json:"needs_reload"`
	FileSizeMB  *float64 `json:"file_size_mb,omitempty"`
}

// API is the backend surface the orchestrator polls. Implemented by [Client];
// tests substitute scripted fakes.
type API interface {
	CheckAndSync(ctx context.Context, timeout time.Duration) (*InitiateResponse, error)
	SyncStatus(ctx context.Context, timeout time.Duration) (*StatusResponse, error)
}

// Client implements [API] over a [remote.Caller].
type Client struct {
	caller *remote.Caller
}

var _ API = (*Client)(nil)

// NewClient wraps caller.
func NewClient(caller *remote.Caller) *Client {
	return &Client{caller: caller}
}

// CheckAndSync asks the backend to start a sync if one is needed.
func (c *Client) CheckAndSync(ctx context.Context, timeout time.Duration) (*InitiateResponse, error) {
	var payload InitiateResponse
	if err := c.caller.PostJSON(ctx, "/check-and-sync", nil, timeout, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// SyncStatus fetches the current job state.
func (c *Client) SyncStatus(ctx context.Context, timeout time.Duration) (*StatusResponse, error) {
	var payload StatusResponse
	if err := c.caller.GetJSON(ctx, "/sync-status", timeout, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
