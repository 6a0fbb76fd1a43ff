package chainclient

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/iroha-explorer/explorer/internal/domain"
)

// BlockStream is a long-lived subscription yielding decoded committed
// blocks in ascending height order (spec.md §4.1). The peer's wire format
// is newline-delimited JSON; each line is one block envelope.
type BlockStream struct {
	resp   *http.Response
	scan   *bufio.Scanner
	cancel context.CancelFunc
}

// SubscribeBlocks opens a subscription starting at fromHeight (any
// fromHeight >= 1 restarts the stream from that point). The returned
// BlockStream must be closed by the caller.
func (c *Client) SubscribeBlocks(ctx context.Context, fromHeight uint64) (*BlockStream, error) {
	ctx, cancel := context.WithCancel(ctx)

	req, err := c.httpRequest(ctx, http.MethodGet, fmt.Sprintf("/blocks/stream?from_height=%d", fromHeight), nil)
	if err != nil {
		cancel()
		return nil, err
	}
	// Streaming responses have no fixed deadline; the per-read timeout is
	// governed by ctx cancellation from the caller (the ingest supervisor),
	// not c.http.Timeout.
	streamClient := http.Client{Transport: c.http.Transport}
	resp, err := streamClient.Do(req)
	if err != nil {
		cancel()
		return nil, classifyTransportErr(err)
	}
	if err := expectOK(resp); err != nil {
		resp.Body.Close()
		cancel()
		return nil, err
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	return &BlockStream{resp: resp, scan: scanner, cancel: cancel}, nil
}

// Next blocks until the following committed block is available, the
// stream ends, or ctx is cancelled.
func (s *BlockStream) Next() (domain.DecodedBlock, error) {
	if !s.scan.Scan() {
		if err := s.scan.Err(); err != nil {
			return domain.DecodedBlock{}, classifyTransportErr(err)
		}
		return domain.DecodedBlock{}, ErrPeerGone
	}

	var w wireBlock
	if err := json.Unmarshal(s.scan.Bytes(), &w); err != nil {
		return domain.DecodedBlock{}, fmt.Errorf("%w: decode block: %v", ErrDecodeError, err)
	}
	return decodeBlock(w)
}

// Close releases the underlying HTTP connection and cancels the
// subscription's context.
func (s *BlockStream) Close() error {
	s.cancel()
	return s.resp.Body.Close()
}
