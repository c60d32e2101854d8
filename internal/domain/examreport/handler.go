// Package examreport proxies the examination report screens. The inbound
// route segment keeps the console's historical long form "examination-report".
package examreport

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/onehealth/webadmin-api/internal/platform/proxy"
)

func NewHandler(d *proxy.Dispatcher, logger zerolog.Logger) *proxy.Handler {
	return proxy.NewHandler(proxy.Resource{
		Name: "examination-report",
		Actions: map[string]proxy.Action{
			"list": {
				Method:       http.MethodGet,
				Path:         "/admin/examination-report/list",
				RequireToken: true,
			},
			"detail": {
				Method:       http.MethodGet,
				Path:         "/admin/examination-report/detail/:id",
				RequireID:    true,
				RequireToken: true,
			},
		},
	}, d, logger)
}
