package chainclient

import (
	"errors"
	"net"
)

// Failure taxonomy (spec.md §4.1). All are recoverable by the ingest
// supervisor with backoff.
var (
	ErrConnectRefused   = errors.New("chainclient: connection refused")
	ErrProtocolMismatch = errors.New("chainclient: protocol mismatch")
	ErrDecodeError      = errors.New("chainclient: decode error")
	ErrTimeout          = errors.New("chainclient: timeout")
	ErrPeerGone         = errors.New("chainclient: peer gone")
)

// classifyTransportErr maps a raw net/http transport error onto the
// taxonomy above so callers can switch on sentinel errors instead of
// string-matching.
func classifyTransportErr(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if opErr.Op == "dial" {
			return ErrConnectRefused
		}
	}
	return ErrPeerGone
}
