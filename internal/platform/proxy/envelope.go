package proxy

import (
	"encoding/json"
	"fmt"
)

// Envelope is the upstream admin backend's wire contract. result is a
// string-typed boolean: result == "true" is the sole success signal — not
// error absence, not HTTP status. Fields keeps every top-level field of the
// original response so it can be spread into the outgoing JSON for older
// console screens that read upstream fields directly.
type Envelope struct {
	Result  string
	Payload json.RawMessage // one_health_msg, passed through opaquely
	Err     *EnvelopeError
	Fields  map[string]json.RawMessage
}

// EnvelopeError is the upstream's error object.
type EnvelopeError struct {
	Message string `json:"message"`
}

// ParseEnvelope decodes an upstream response body.
func ParseEnvelope(data []byte) (*Envelope, error) {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("decode upstream response: %w", err)
	}

	env := &Envelope{Fields: fields}
	if raw, ok := fields["result"]; ok {
		// result has only ever been observed as a string; a non-string
		// value is left unset and therefore treated as failure.
		_ = json.Unmarshal(raw, &env.Result)
	}
	if raw, ok := fields["one_health_msg"]; ok {
		env.Payload = raw
	}
	if raw, ok := fields["error"]; ok {
		var e EnvelopeError
		if json.Unmarshal(raw, &e) == nil {
			env.Err = &e
		}
	}
	return env, nil
}

// Succeeded reports whether the upstream accepted the request.
func (e *Envelope) Succeeded() bool {
	return e.Result == "true"
}

// ErrorMessage returns the upstream error text, or fallback when the upstream
// gave none. The text carries operator-facing meaning and is surfaced to the
// browser verbatim.
func (e *Envelope) ErrorMessage(fallback string) string {
	if e.Err != nil && e.Err.Message != "" {
		return e.Err.Message
	}
	return fallback
}

// Normalize maps the upstream envelope to the console-facing envelope:
// success derived from result, data taken from one_health_msg, message set on
// failure. The original upstream fields are spread alongside so legacy
// callers keep working.
func (e *Envelope) Normalize(failMessage string) map[string]interface{} {
	out := make(map[string]interface{}, len(e.Fields)+2)
	for k, v := range e.Fields {
		out[k] = v
	}

	if e.Succeeded() {
		out["success"] = true
		if e.Payload != nil {
			out["data"] = e.Payload
		}
		return out
	}

	out["success"] = false
	out["message"] = e.ErrorMessage(failMessage)
	return out
}
