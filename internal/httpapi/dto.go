package httpapi

import (
	"encoding/json"

	"github.com/iroha-explorer/explorer/internal/domain"
)

// tagged renders the {t, c} sum-type envelope used throughout the wire
// format (spec.md §9).
func tagged(tag string, content any) domain.Tagged {
	return domain.Tagged{Tag: tag, Content: content}
}

// rawJSON wraps an already-serialized JSON document so it round-trips
// through json.Marshal without re-escaping (used for metadata/content
// columns stored as raw JSON text).
func rawJSON(s string) json.RawMessage {
	if s == "" {
		return json.RawMessage("null")
	}
	return json.RawMessage(s)
}
