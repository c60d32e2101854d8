// Package invoice proxies the billing screens' invoice operations.
package invoice

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/onehealth/webadmin-api/internal/platform/proxy"
)

func NewHandler(d *proxy.Dispatcher, logger zerolog.Logger) *proxy.Handler {
	return proxy.NewHandler(proxy.Resource{
		Name: "invoice",
		Actions: map[string]proxy.Action{
			"list": {
				Method:       http.MethodGet,
				Path:         "/admin/invoice/list",
				RequireToken: true,
			},
			"detail": {
				Method:       http.MethodGet,
				Path:         "/admin/invoice/detail/:id",
				RequireID:    true,
				RequireToken: true,
			},
			"refund": {
				Method:       http.MethodPost,
				Path:         "/admin/invoice/refund",
				RequireToken: true,
			},
		},
	}, d, logger)
}
