package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iroha-explorer/explorer/internal/telemetry"
)

// sampleDTO renders a telemetry sample. Counters that may exceed 2^53
// are strings so JS clients don't lose precision (spec.md §4.6).
type sampleDTO struct {
	Timestamp     string `json:"timestamp"`
	PeerCount     uint32 `json:"peer_count"`
	BlockHeight   string `json:"block_height"`
	TxsAccepted   string `json:"txs_accepted"`
	TxsRejected   string `json:"txs_rejected"`
	ViewChanges   uint32 `json:"view_changes"`
	UptimeSeconds string `json:"uptime_seconds"`
	QueueDepth    uint32 `json:"queue_depth"`
}

func sampleToDTO(s telemetry.Sample) sampleDTO {
	return sampleDTO{
		Timestamp:     s.Timestamp.UTC().Format(timeLayout),
		PeerCount:     s.PeerCount,
		BlockHeight:   strconv.FormatUint(s.BlockHeight, 10),
		TxsAccepted:   strconv.FormatUint(s.TxsAccepted, 10),
		TxsRejected:   strconv.FormatUint(s.TxsRejected, 10),
		ViewChanges:   s.ViewChanges,
		UptimeSeconds: strconv.FormatUint(s.UptimeSeconds, 10),
		QueueDepth:    s.QueueDepth,
	}
}

type peerSnapshotDTO struct {
	URL       string     `json:"url"`
	Status    string     `json:"status"`
	Sample    *sampleDTO `json:"sample,omitempty"`
}

func peerSnapshotToDTO(p telemetry.PeerSnapshot) peerSnapshotDTO {
	dto := peerSnapshotDTO{URL: p.URL, Status: p.Status}
	if p.HasSample {
		s := sampleToDTO(p.Sample)
		dto.Sample = &s
	}
	return dto
}

type fleetSnapshotDTO struct {
	Peers          []peerSnapshotDTO `json:"peers"`
	MaxBlockHeight string            `json:"max_block_height"`
	MinBlockHeight string            `json:"min_block_height"`
	ReachableCount int               `json:"reachable_count"`
	TotalCount     int               `json:"total_count"`
}

func fleetSnapshotToDTO(f telemetry.FleetSnapshot) fleetSnapshotDTO {
	peers := make([]peerSnapshotDTO, len(f.Peers))
	for i, p := range f.Peers {
		peers[i] = peerSnapshotToDTO(p)
	}
	return fleetSnapshotDTO{
		Peers:          peers,
		MaxBlockHeight: strconv.FormatUint(f.MaxBlockHeight, 10),
		MinBlockHeight: strconv.FormatUint(f.MinBlockHeight, 10),
		ReachableCount: f.ReachableCount,
		TotalCount:     f.TotalCount,
	}
}

// telemetrySnapshot serves /api/v1/telemetry: every configured peer's
// latest sample plus fleet-wide aggregates (spec.md §4.5).
func (h *handler) telemetrySnapshot(c echo.Context) error {
	return c.JSON(http.StatusOK, fleetSnapshotToDTO(h.telemetry.Snapshot()))
}

// telemetrySamples serves /api/v1/telemetry/peers/{url}/samples?since=…
// (spec.md §4.5). url is percent-decoded the same way composite ids are.
func (h *handler) telemetrySamples(c echo.Context) error {
	url, err := unescapeParam(c, "url")
	if err != nil {
		return err
	}

	since := time.Time{}
	if raw := c.QueryParam("since"); raw != "" {
		parsed, perr := time.Parse(time.RFC3339, raw)
		if perr != nil {
			return newValidationError("since must be an RFC3339 timestamp")
		}
		since = parsed
	}

	samples, err := h.telemetry.Series(url, since)
	if err != nil {
		return newNotFoundError("peer", url)
	}

	dtos := make([]sampleDTO, len(samples))
	for i, s := range samples {
		dtos[i] = sampleToDTO(s)
	}
	return c.JSON(http.StatusOK, dtos)
}
