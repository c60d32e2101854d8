package proxy

import (
	"encoding/json"
	"net/url"
)

// skippedParams are framework-internal query parameters that must never be
// forwarded upstream. action and oh_token are routing/credential artifacts of
// this server; the __nextjs_* markers are leftovers from the previous console
// front end that some cached pages still send.
var skippedParams = map[string]bool{
	"action":                     true,
	"oh_token":                   true,
	"__nextjs_pathname":          true,
	"__nextjs_original-pathname": true,
}

// BuildQuery converts inbound query parameters into the canonical upstream
// query string (without the leading "?"). Values that are empty are dropped
// rather than forwarded as empty-valued parameters, array values become
// repeated key=value pairs, and keys listed in skip (plus the framework
// exclusion list) are omitted. The output is the sorted url.Values encoding,
// so it is deterministic.
func BuildQuery(query url.Values, skip ...string) string {
	extra := make(map[string]bool, len(skip))
	for _, k := range skip {
		extra[k] = true
	}

	out := url.Values{}
	for key, vals := range query {
		if skippedParams[key] || extra[key] {
			continue
		}
		for _, v := range vals {
			if v == "" {
				continue
			}
			out.Add(key, v)
		}
	}
	return out.Encode()
}

// StatsBody is the legacy statistics request body. Older console screens POST
// these four fields; the upstream statistics endpoints only accept GET, so the
// body is flattened into a query string and the call is dispatched as GET.
// json.Number fields tolerate callers that send numbers and callers that send
// strings.
type StatsBody struct {
	Type  string      `json:"type"`
	Day   json.Number `json:"day"`
	Month json.Number `json:"month"`
	Year  json.Number `json:"year"`
}

// Encode flattens the body into a query string using the same
// encode-if-present rule as BuildQuery.
func (b StatsBody) Encode() string {
	q := url.Values{}
	if b.Type != "" {
		q.Set("type", b.Type)
	}
	if b.Day != "" {
		q.Set("day", b.Day.String())
	}
	if b.Month != "" {
		q.Set("month", b.Month.String())
	}
	if b.Year != "" {
		q.Set("year", b.Year.String())
	}
	return q.Encode()
}
