package telemetry

import "time"

// Sample is one snapshot of a peer's liveness document (spec.md §4.5).
type Sample struct {
	Timestamp     time.Time
	PeerCount     uint32
	BlockHeight   uint64
	TxsAccepted   uint64
	TxsRejected   uint64
	ViewChanges   uint32
	UptimeSeconds uint64
	QueueDepth    uint32
	MetricsRaw    string
}
