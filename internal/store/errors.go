package store

import "errors"

// ErrInvalidFilter wraps a malformed filter value (e.g. an owner= query
// param that isn't a valid composite account id). The httpapi layer maps
// this to 400 Bad Request.
var ErrInvalidFilter = errors.New("invalid filter")
