package httpapi

import "strconv"

// timeLayout renders timestamps as ISO-8601 UTC with millisecond
// precision (spec.md §4.6).
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

func parseUintParam(raw string) (uint64, error) {
	return strconv.ParseUint(raw, 10, 64)
}
