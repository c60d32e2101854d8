package proxy

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
)

// UpstreamError carries the status and message of a failed upstream call.
// Status is zero when the failure happened before an HTTP status was
// available (connection refused, DNS failure).
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return e.Message
}

// RequestSpec describes exactly one upstream call. It is built once per
// inbound request and consumed once by the Dispatcher.
type RequestSpec struct {
	Method   string
	Path     string // resource path with query string, relative to the base URL
	Token    string
	Cookie   string
	ClientIP string
	Body     []byte
}

// Dispatcher performs HTTP calls against the upstream admin backend. It makes
// exactly one attempt per request: the console has never had a retry policy,
// and failures surface directly to the operator.
type Dispatcher struct {
	baseURL string
	client  *http.Client
}

// DispatcherOption customizes a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithHTTPClient overrides the HTTP client, mainly for tests.
func WithHTTPClient(c *http.Client) DispatcherOption {
	return func(d *Dispatcher) {
		d.client = c
	}
}

// NewDispatcher creates a Dispatcher for the given backend base URL. The
// default client sets no timeout: a stalled backend holds the inbound request
// open, matching the console's historical behavior.
func NewDispatcher(baseURL string, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Do performs the upstream call described by spec and parses the response
// envelope. Headers always set: Content-Type and the forwarded client IP.
// The inbound Cookie header is forwarded when present. A resolved credential
// is sent under both the oh_token header and Authorization: Bearer — older
// backend builds read the former, newer ones the latter, and the redundancy
// is load-bearing.
func (d *Dispatcher) Do(ctx context.Context, spec RequestSpec) (*Envelope, error) {
	var body io.Reader
	if spec.Method != http.MethodGet && len(spec.Body) > 0 {
		body = bytes.NewReader(spec.Body)
	}

	req, err := http.NewRequestWithContext(ctx, spec.Method, d.baseURL+spec.Path, body)
	if err != nil {
		return nil, &UpstreamError{Message: err.Error()}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", spec.ClientIP)
	if spec.Cookie != "" {
		req.Header.Set("Cookie", spec.Cookie)
	}
	if spec.Token != "" {
		req.Header.Set("oh_token", spec.Token)
		req.Header.Set("Authorization", "Bearer "+spec.Token)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, &UpstreamError{Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Status: resp.StatusCode, Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := http.StatusText(resp.StatusCode)
		if env, perr := ParseEnvelope(data); perr == nil {
			msg = env.ErrorMessage(msg)
		}
		return nil, &UpstreamError{Status: resp.StatusCode, Message: msg}
	}

	env, err := ParseEnvelope(data)
	if err != nil {
		return nil, &UpstreamError{Status: http.StatusInternalServerError, Message: err.Error()}
	}
	return env, nil
}
