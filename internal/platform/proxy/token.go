// Package proxy implements the request-forwarding core of the admin console:
// credential resolution, query/body assembly, upstream dispatch, and response
// normalization. Every resource family (auth, invoice, cashier, ...) is a thin
// parameterization of this package.
package proxy

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

// Cookie names the console has historically stored the credential under.
const (
	authCookieName   = "webadmin_auth_token"
	legacyCookieName = "token"
)

// normalizeToken strips a single outermost wrapping quote (double or single)
// from each end and unescapes embedded \" sequences. Older console builds
// stored the credential cookie JSON-stringified, so stored values can arrive
// quoted and escaped.
func normalizeToken(tok string) string {
	if len(tok) > 0 && (tok[0] == '"' || tok[0] == '\'') {
		tok = tok[1:]
	}
	if len(tok) > 0 && (tok[len(tok)-1] == '"' || tok[len(tok)-1] == '\'') {
		tok = tok[:len(tok)-1]
	}
	return strings.ReplaceAll(tok, `\"`, `"`)
}

// cleanToken normalizes twice: unescaping can expose a second wrapping quote
// pair when the stored value was stringified twice. A clean token is a fixed
// point, so the double application is always safe.
func cleanToken(tok string) string {
	return normalizeToken(normalizeToken(tok))
}

// ResolveToken extracts the bearer credential from an inbound request, trying
// sources in a fixed priority order:
//
//  1. query parameter "oh_token" (legacy callers pass the token in the URL;
//     deliberately wins over headers for compatibility with those callers)
//  2. header "oh_token"
//  3. header "Authorization" with the exact prefix "Bearer "
//  4. cookie "webadmin_auth_token", then "token"
//
// The result is normalized per cleanToken. ResolveToken never fails; a request
// with no recognizable credential resolves to the empty string.
func ResolveToken(query url.Values, header http.Header) string {
	if tok := query.Get("oh_token"); tok != "" {
		return cleanToken(tok)
	}
	if tok := header.Get("oh_token"); tok != "" {
		return cleanToken(tok)
	}
	if auth := header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		if tok := strings.TrimPrefix(auth, "Bearer "); tok != "" {
			return cleanToken(tok)
		}
	}
	if tok := tokenFromCookie(header); tok != "" {
		return cleanToken(tok)
	}
	return ""
}

// tokenFromCookie pulls the credential from the console's auth cookies. The
// cookie value is URL-decoded, then parsed as the {"token": "..."} wrapper the
// console writes. When the value is not JSON, or is JSON without a token
// field, the whole decoded string is used as-is — the latter matches what the
// console has always done, and existing stored cookies depend on it.
func tokenFromCookie(header http.Header) string {
	req := http.Request{Header: header}
	for _, name := range []string{authCookieName, legacyCookieName} {
		for _, ck := range req.Cookies() {
			if ck.Name != name || ck.Value == "" {
				continue
			}
			decoded, err := url.QueryUnescape(ck.Value)
			if err != nil {
				decoded = ck.Value
			}
			var wrapper struct {
				Token string `json:"token"`
			}
			if err := json.Unmarshal([]byte(decoded), &wrapper); err == nil && wrapper.Token != "" {
				return wrapper.Token
			}
			return decoded
		}
	}
	return ""
}
