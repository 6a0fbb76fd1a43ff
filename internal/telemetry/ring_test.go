package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingBufferLatestEmpty(t *testing.T) {
	r := newRingBuffer(3)
	_, ok := r.latest()
	assert.False(t, ok)
}

func TestRingBufferLatestReturnsMostRecent(t *testing.T) {
	r := newRingBuffer(3)
	t0 := time.Now()
	r.push(Sample{Timestamp: t0, BlockHeight: 1})
	r.push(Sample{Timestamp: t0.Add(time.Second), BlockHeight: 2})

	latest, ok := r.latest()
	require.True(t, ok)
	assert.Equal(t, uint64(2), latest.BlockHeight)
}

func TestRingBufferOverwritesOldestWhenFull(t *testing.T) {
	r := newRingBuffer(2)
	t0 := time.Now()
	r.push(Sample{Timestamp: t0, BlockHeight: 1})
	r.push(Sample{Timestamp: t0.Add(time.Second), BlockHeight: 2})
	r.push(Sample{Timestamp: t0.Add(2 * time.Second), BlockHeight: 3})

	all := r.since(time.Time{})
	require.Len(t, all, 2)
	assert.Equal(t, uint64(2), all[0].BlockHeight)
	assert.Equal(t, uint64(3), all[1].BlockHeight)
}

func TestRingBufferSinceFiltersByTimestamp(t *testing.T) {
	r := newRingBuffer(5)
	t0 := time.Now()
	r.push(Sample{Timestamp: t0, BlockHeight: 1})
	r.push(Sample{Timestamp: t0.Add(time.Second), BlockHeight: 2})
	r.push(Sample{Timestamp: t0.Add(2 * time.Second), BlockHeight: 3})

	out := r.since(t0.Add(500 * time.Millisecond))
	require.Len(t, out, 2)
	assert.Equal(t, uint64(2), out[0].BlockHeight)
	assert.Equal(t, uint64(3), out[1].BlockHeight)
}
