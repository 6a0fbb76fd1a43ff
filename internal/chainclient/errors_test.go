package chainclient

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTimeoutErr struct{}

func (fakeTimeoutErr) Error() string   { return "i/o timeout" }
func (fakeTimeoutErr) Timeout() bool   { return true }
func (fakeTimeoutErr) Temporary() bool { return true }

func TestClassifyTransportErrTimeout(t *testing.T) {
	assert.ErrorIs(t, classifyTransportErr(fakeTimeoutErr{}), ErrTimeout)
}

func TestClassifyTransportErrDialRefused(t *testing.T) {
	err := &net.OpError{Op: "dial", Err: assert.AnError}
	assert.ErrorIs(t, classifyTransportErr(err), ErrConnectRefused)
}

func TestClassifyTransportErrFallsBackToPeerGone(t *testing.T) {
	assert.ErrorIs(t, classifyTransportErr(assert.AnError), ErrPeerGone)
}
