package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/onehealth/webadmin-api/internal/platform/proxy"
)

// AuditEntry captures one mutating admin action: who-ish (client IP and
// whether a credential was attached, never the credential itself), what
// resource and action, and the outcome.
type AuditEntry struct {
	Resource   string
	Action     string
	Method     string
	Path       string
	ClientIP   string
	HasToken   bool
	RequestID  string
	StatusCode int
	Timestamp  time.Time
}

// AuditRecorder persists audit entries. Tests and future sinks implement it;
// without one the middleware falls back to structured logging only.
type AuditRecorder interface {
	RecordAction(entry AuditEntry) error
}

// AuditRecorderFunc is a function adapter for AuditRecorder.
type AuditRecorderFunc func(entry AuditEntry) error

func (f AuditRecorderFunc) RecordAction(entry AuditEntry) error {
	return f(entry)
}

// Audit logs every mutating console call under /api/. Reads are already
// covered by the request logger; this trail exists for refunds, status
// changes and the other actions an administrator can be asked about later.
func Audit(logger zerolog.Logger, recorders ...AuditRecorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Method == http.MethodGet || req.Method == http.MethodHead {
				return next(c)
			}
			if !strings.HasPrefix(req.URL.Path, "/api/") {
				return next(c)
			}

			err := next(c)

			entry := AuditEntry{
				Resource:   resourceSegment(req.URL.Path),
				Action:     c.Param("action"),
				Method:     req.Method,
				Path:       req.URL.Path,
				ClientIP:   proxy.ClientIP(req.Header, req.RemoteAddr),
				HasToken:   proxy.ResolveToken(c.QueryParams(), req.Header) != "",
				StatusCode: c.Response().Status,
				Timestamp:  time.Now().UTC(),
			}
			if rid, ok := c.Get("request_id").(string); ok {
				entry.RequestID = rid
			}

			if len(recorders) > 0 && recorders[0] != nil {
				if recErr := recorders[0].RecordAction(entry); recErr != nil {
					logger.Error().Err(recErr).
						Str("request_id", entry.RequestID).
						Msg("failed to record audit entry")
				}
			}

			logger.Info().
				Str("type", "admin_audit").
				Str("request_id", entry.RequestID).
				Str("resource", entry.Resource).
				Str("action", entry.Action).
				Str("method", entry.Method).
				Str("path", entry.Path).
				Str("client_ip", entry.ClientIP).
				Bool("has_token", entry.HasToken).
				Int("status", entry.StatusCode).
				Msg("admin_action")

			return err
		}
	}
}

// resourceSegment extracts the resource family from /api/<resource>/<action>.
func resourceSegment(path string) string {
	segments := strings.Split(strings.TrimPrefix(path, "/api/"), "/")
	if len(segments) > 0 && segments[0] != "" {
		return segments[0]
	}
	return "unknown"
}
