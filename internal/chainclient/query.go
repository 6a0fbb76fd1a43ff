package chainclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// QueryResult is the page shape returned by the upstream SDK's world-state
// query endpoint: one "kind" of object per call, already paginated on the
// peer side.
type QueryResult struct {
	Items      []json.RawMessage `json:"items"`
	TotalItems *int              `json:"total_items,omitempty"`
}

// Query forwards a world-state query to the configured peer and returns
// results in the SDK's native page shape (spec.md §4.1). kind is the
// upstream query selector (e.g. "FindAllDomains"); filters are forwarded
// verbatim as query-string parameters.
func (c *Client) Query(ctx context.Context, kind string, filters map[string]string) (QueryResult, error) {
	q := url.Values{}
	q.Set("query", kind)
	for k, v := range filters {
		q.Set(k, v)
	}

	req, err := c.httpRequest(ctx, http.MethodGet, "/query?"+q.Encode(), nil)
	if err != nil {
		return QueryResult{}, err
	}
	resp, err := c.do(req)
	if err != nil {
		return QueryResult{}, err
	}
	defer resp.Body.Close()

	if err := expectOK(resp); err != nil {
		return QueryResult{}, err
	}

	var out QueryResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return QueryResult{}, fmt.Errorf("%w: decode query result: %v", ErrDecodeError, err)
	}
	return out, nil
}
