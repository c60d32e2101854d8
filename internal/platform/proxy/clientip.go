package proxy

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP extracts the originating client address for audit forwarding. It
// prefers the first entry of X-Forwarded-For, then the transport-level remote
// address, and falls back to "localhost". It never fails.
func ClientIP(header http.Header, remoteAddr string) string {
	if xff := header.Get("X-Forwarded-For"); xff != "" {
		if first := strings.TrimSpace(strings.SplitN(xff, ",", 2)[0]); first != "" {
			return first
		}
	}
	if remoteAddr != "" {
		if host, _, err := net.SplitHostPort(remoteAddr); err == nil && host != "" {
			return host
		}
		return remoteAddr
	}
	return "localhost"
}
