// Package otp proxies the one-time-password audit list. The upstream returns
// a bare array; the console's table component expects a {list, total}
// container, so the list action wraps the payload.
package otp

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/onehealth/webadmin-api/internal/platform/proxy"
)

func NewHandler(d *proxy.Dispatcher, logger zerolog.Logger) *proxy.Handler {
	return proxy.NewHandler(proxy.Resource{
		Name: "otp",
		Actions: map[string]proxy.Action{
			"list": {
				Method:       http.MethodGet,
				Path:         "/admin/otp/list",
				RequireToken: true,
				Transform:    proxy.WrapList,
			},
		},
	}, d, logger)
}
