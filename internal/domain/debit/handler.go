// Package debit proxies the outstanding-debit screens.
package debit

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/onehealth/webadmin-api/internal/platform/proxy"
)

func NewHandler(d *proxy.Dispatcher, logger zerolog.Logger) *proxy.Handler {
	return proxy.NewHandler(proxy.Resource{
		Name: "debit",
		Actions: map[string]proxy.Action{
			"list": {
				Method:       http.MethodGet,
				Path:         "/admin/debit/list",
				RequireToken: true,
			},
			"detail": {
				Method:       http.MethodGet,
				Path:         "/admin/debit/detail/:id",
				RequireID:    true,
				RequireToken: true,
			},
		},
	}, d, logger)
}
