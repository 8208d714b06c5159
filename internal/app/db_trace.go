package app

import "strings"

const tracedQueryLimit = 512

// traceQueryText collapses builder output onto one line so a statement lands
// as a single span attribute, capped to keep attribute payloads small.
func traceQueryText(query string) string {
	flat := strings.Join(strings.Fields(query), " ")
	if len(flat) > tracedQueryLimit {
		return flat[:tracedQueryLimit] + "..."
	}
	return flat
}
