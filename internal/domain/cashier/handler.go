// Package cashier proxies the cash-desk administration operations: the
// cashier roster, its grouping views and the shift offset and type changes.
package cashier

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/onehealth/webadmin-api/internal/platform/proxy"
)

func NewHandler(d *proxy.Dispatcher, logger zerolog.Logger) *proxy.Handler {
	return proxy.NewHandler(proxy.Resource{
		Name: "cashier",
		Actions: map[string]proxy.Action{
			"list": {
				Method:       http.MethodGet,
				Path:         "/admin/cashier/list",
				RequireToken: true,
			},
			"detail": {
				Method:       http.MethodGet,
				Path:         "/admin/cashier/detail/:id",
				RequireID:    true,
				RequireToken: true,
			},
			"groups": {
				Method:       http.MethodGet,
				Path:         "/admin/cashier/groups",
				RequireToken: true,
			},
			"users": {
				Method:       http.MethodGet,
				Path:         "/admin/cashier/users",
				RequireToken: true,
			},
			"offset": {
				Method:       http.MethodPost,
				Path:         "/admin/cashier/offset",
				RequireToken: true,
			},
			"change-type": {
				Method:       http.MethodPost,
				Path:         "/admin/cashier/change-type",
				RequireToken: true,
			},
		},
	}, d, logger)
}
