// Package appointment proxies the scheduled-appointment screens under the
// console's historical "schedule-appointment" route segment.
package appointment

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/onehealth/webadmin-api/internal/platform/proxy"
)

func NewHandler(d *proxy.Dispatcher, logger zerolog.Logger) *proxy.Handler {
	return proxy.NewHandler(proxy.Resource{
		Name: "schedule-appointment",
		Actions: map[string]proxy.Action{
			"list": {
				Method:       http.MethodGet,
				Path:         "/admin/schedule-appointment/list",
				RequireToken: true,
			},
			"detail": {
				Method:       http.MethodGet,
				Path:         "/admin/schedule-appointment/detail/:id",
				RequireID:    true,
				RequireToken: true,
			},
			"update-status": {
				Method:       http.MethodPost,
				Path:         "/admin/schedule-appointment/update-status",
				RequireToken: true,
			},
		},
	}, d, logger)
}
