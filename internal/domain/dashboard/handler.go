// Package dashboard proxies the home-screen statistics. The console still
// POSTs a {type, day, month, year} body from its legacy data layer; the
// statistics action bridges that body into a GET query string upstream.
package dashboard

import (
	"github.com/rs/zerolog"

	"github.com/onehealth/webadmin-api/internal/platform/proxy"
)

func NewHandler(d *proxy.Dispatcher, logger zerolog.Logger) *proxy.Handler {
	return proxy.NewHandler(proxy.Resource{
		Name: "dashboard",
		Actions: map[string]proxy.Action{
			"statistics": {
				Path:         "/admin/dashboard/statistics",
				RequireToken: true,
				StatsBridge:  true,
			},
		},
	}, d, logger)
}
