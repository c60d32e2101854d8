package proxy

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Action describes one upstream operation a resource family exposes.
type Action struct {
	// Method forces the upstream HTTP method. Empty means the inbound
	// method is used as-is.
	Method string

	// Path is the upstream path template, relative to the backend base
	// URL. It may contain a ":id" placeholder.
	Path string

	// RequireID substitutes the inbound id parameter into the ":id"
	// placeholder. The id is excluded from the forwarded query string to
	// avoid duplication.
	RequireID bool

	// RequireToken rejects requests with no resolvable credential before
	// any upstream call is made.
	RequireToken bool

	// StatsBridge flattens the legacy POST body {type, day, month, year}
	// into a query string and dispatches the call as GET regardless of the
	// inbound method.
	StatsBridge bool

	// Transform optionally reshapes the upstream payload before it is
	// returned as data. Used by list endpoints whose screens expect a
	// paged container around a bare upstream array.
	Transform func(payload json.RawMessage) interface{}
}

// Resource groups the actions of one admin console resource family and its
// failure defaults.
type Resource struct {
	// Name is the inbound route segment, e.g. "invoice".
	Name string

	// Actions maps the closed set of action names to their upstream
	// operations. Unknown actions yield HTTP 400.
	Actions map[string]Action

	// ErrorStatus is the response status for upstream failures that carry
	// no status of their own: 401 for authentication resources, 500
	// otherwise. Zero defaults to 500.
	ErrorStatus int

	// FailMessage is surfaced when the upstream rejects a request without
	// an error message.
	FailMessage string
}

// Handler proxies /api/<resource>/:action requests to the upstream admin
// backend. Every resource family shares the same flow: resolve the
// credential, assemble the query string or body, dispatch exactly once,
// normalize the response envelope.
type Handler struct {
	res        Resource
	dispatcher *Dispatcher
	logger     zerolog.Logger
}

// NewHandler builds the proxy handler for one resource family.
func NewHandler(res Resource, d *Dispatcher, logger zerolog.Logger) *Handler {
	if res.ErrorStatus == 0 {
		res.ErrorStatus = http.StatusInternalServerError
	}
	if res.FailMessage == "" {
		res.FailMessage = fmt.Sprintf("%s request failed", res.Name)
	}
	return &Handler{res: res, dispatcher: d, logger: logger}
}

// RegisterRoutes registers the resource's dynamic action route.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.Any("/"+h.res.Name+"/:action", h.Handle)
}

// Handle serves one inbound console request.
func (h *Handler) Handle(c echo.Context) error {
	name := c.Param("action")
	act, ok := h.res.Actions[name]
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": fmt.Sprintf("unknown %s action: %s", h.res.Name, name),
		})
	}

	req := c.Request()
	query := c.QueryParams()

	token := ResolveToken(query, req.Header)
	if act.RequireToken && token == "" {
		return c.JSON(http.StatusUnauthorized, map[string]interface{}{
			"success": false,
			"message": "authentication required",
		})
	}

	method := act.Method
	if method == "" {
		method = req.Method
	}

	path := act.Path
	var skip []string
	if act.RequireID {
		id := c.QueryParam("id")
		if id == "" {
			return c.JSON(http.StatusBadRequest, map[string]interface{}{
				"success": false,
				"message": "id is required",
			})
		}
		path = strings.Replace(path, ":id", url.PathEscape(id), 1)
		skip = append(skip, "id")
	}

	var body []byte
	if act.StatsBridge {
		method = http.MethodGet
		stats, err := readStatsBody(req.Body)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]interface{}{
				"success": false,
				"message": "invalid statistics request body",
			})
		}
		if qs := stats.Encode(); qs != "" {
			path += "?" + qs
		}
	} else {
		if qs := BuildQuery(query, skip...); qs != "" {
			path += "?" + qs
		}
		if method != http.MethodGet && req.Body != nil {
			body, _ = io.ReadAll(req.Body)
		}
	}

	env, err := h.dispatcher.Do(req.Context(), RequestSpec{
		Method:   method,
		Path:     path,
		Token:    token,
		Cookie:   req.Header.Get("Cookie"),
		ClientIP: ClientIP(req.Header, req.RemoteAddr),
		Body:     body,
	})
	if err != nil {
		status := h.res.ErrorStatus
		var ue *UpstreamError
		if errors.As(err, &ue) && ue.Status != 0 {
			status = ue.Status
		}
		h.logger.Error().
			Err(err).
			Str("resource", h.res.Name).
			Str("action", name).
			Int("status", status).
			Msg("upstream request failed")
		return c.JSON(status, map[string]interface{}{
			"success": false,
			"message": err.Error(),
		})
	}

	out := env.Normalize(h.res.FailMessage)
	if !env.Succeeded() {
		return c.JSON(http.StatusBadRequest, out)
	}
	if act.Transform != nil && env.Payload != nil {
		out["data"] = act.Transform(env.Payload)
	}
	return c.JSON(http.StatusOK, out)
}

func readStatsBody(r io.Reader) (StatsBody, error) {
	var stats StatsBody
	if r == nil {
		return stats, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return stats, err
	}
	if len(data) == 0 {
		return stats, nil
	}
	if err := json.Unmarshal(data, &stats); err != nil {
		return stats, err
	}
	return stats, nil
}

// ListContainer is the paged shape list transforms produce for screens that
// expect {list, total} around a bare upstream array.
type ListContainer struct {
	List  []json.RawMessage `json:"list"`
	Total int               `json:"total"`
}

// WrapList reshapes a bare upstream array into a ListContainer. Payloads that
// are not arrays pass through untouched: the proxy does not validate the
// upstream's shape beyond this presence check.
func WrapList(payload json.RawMessage) interface{} {
	var items []json.RawMessage
	if err := json.Unmarshal(payload, &items); err != nil {
		return payload
	}
	if items == nil {
		items = []json.RawMessage{}
	}
	return ListContainer{List: items, Total: len(items)}
}
