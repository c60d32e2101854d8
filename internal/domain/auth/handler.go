// Package auth proxies the console's session operations. Login carries no
// credential yet; logout and me require one. Upstream failures default to
// 401 rather than 500 so the console's session guard can react.
package auth

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/onehealth/webadmin-api/internal/platform/proxy"
)

func NewHandler(d *proxy.Dispatcher, logger zerolog.Logger) *proxy.Handler {
	return proxy.NewHandler(proxy.Resource{
		Name: "auth",
		Actions: map[string]proxy.Action{
			"login": {
				Method: http.MethodPost,
				Path:   "/admin/auth/login",
			},
			"logout": {
				Method:       http.MethodPost,
				Path:         "/admin/auth/logout",
				RequireToken: true,
			},
			"me": {
				Method:       http.MethodGet,
				Path:         "/admin/auth/me",
				RequireToken: true,
			},
		},
		ErrorStatus: http.StatusUnauthorized,
		FailMessage: "authentication failed",
	}, d, logger)
}
