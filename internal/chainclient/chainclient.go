// Package chainclient is a thin wrapper over the upstream chain SDK's
// HTTP surface: submitting world-state queries, opening the live block
// subscription, and fetching peer status/metrics (spec.md §4.1). Decode
// and transport are intentionally undifferentiated from the rest of the
// system's concerns; everything downstream only ever sees a *Client.
package chainclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// Client talks to a single peer's Torii-style HTTP API.
type Client struct {
	http    http.Client
	baseURL string
}

// New constructs a Client for the given peer base URL (e.g.
// "http://127.0.0.1:8080"). timeout bounds every individual round trip;
// callers layer their own context deadlines for retry budgets.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		http:    http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// Status is a peer's liveness document (spec.md §4.1, grounded on
// original_source/src/schema.rs's PeerStatus).
type Status struct {
	Peers         uint32        `json:"peers"`
	Block         uint64        `json:"block"`
	CommitTimeMs  uint64        `json:"commit_time_ms"`
	AvgCommitMs   uint64        `json:"avg_commit_time_ms"`
	QueueSize     uint32        `json:"queue_size"`
	UptimeSeconds uint64        `json:"uptime_seconds"`
	TxsAccepted   uint64        `json:"transactions_accepted"`
	TxsRejected   uint64        `json:"transactions_rejected"`
	ViewChanges   uint32        `json:"view_changes"`
}

func (s Status) Uptime() time.Duration { return time.Duration(s.UptimeSeconds) * time.Second }

func (c *Client) httpRequest(ctx context.Context, method, path string, body []byte) (*http.Request, error) {
	var rd io.Reader
	if len(body) > 0 {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, errors.Errorf("build request for %s %s: %v", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, classifyTransportErr(err)
	}
	return resp, nil
}

// PeerStatus fetches a single peer's liveness document (spec.md §4.1).
func (c *Client) PeerStatus(ctx context.Context) (Status, error) {
	req, err := c.httpRequest(ctx, http.MethodGet, "/status", nil)
	if err != nil {
		return Status{}, err
	}
	resp, err := c.do(req)
	if err != nil {
		return Status{}, err
	}
	defer resp.Body.Close()

	if err := expectOK(resp); err != nil {
		return Status{}, err
	}

	var s Status
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return Status{}, fmt.Errorf("%w: decode status: %v", ErrDecodeError, err)
	}
	return s, nil
}

// Metrics fetches the raw Prometheus exposition text from a peer.
func (c *Client) Metrics(ctx context.Context) (string, error) {
	req, err := c.httpRequest(ctx, http.MethodGet, "/metrics", nil)
	if err != nil {
		return "", err
	}
	resp, err := c.do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := expectOK(resp); err != nil {
		return "", err
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read metrics: %v", ErrDecodeError, err)
	}
	return string(raw), nil
}

func expectOK(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return ErrTimeout
	case http.StatusServiceUnavailable, http.StatusNotFound:
		return ErrPeerGone
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: status %s: %s", ErrProtocolMismatch, resp.Status, body)
	}
}
