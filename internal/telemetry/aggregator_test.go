package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAggregatorPeerURLsSorted(t *testing.T) {
	agg := New([]string{"http://peer-b", "http://peer-a", "http://peer-c"}, time.Second, nil)
	assert.Equal(t, []string{"http://peer-a", "http://peer-b", "http://peer-c"}, agg.PeerURLs())
}

func TestAggregatorPeerURLsEmpty(t *testing.T) {
	agg := New(nil, time.Second, nil)
	assert.Empty(t, agg.PeerURLs())
}
