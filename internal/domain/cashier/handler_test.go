package cashier

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/onehealth/webadmin-api/internal/platform/proxy"
)

func newCashierServer(t *testing.T, backend http.HandlerFunc) *echo.Echo {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)
	e := echo.New()
	h := NewHandler(proxy.NewDispatcher(srv.URL), zerolog.New(nil).Level(zerolog.Disabled))
	h.RegisterRoutes(e.Group("/api"))
	return e
}

func TestActions_MapToUpstreamPaths(t *testing.T) {
	tests := []struct {
		method, target, wantPath string
	}{
		{http.MethodGet, "/api/cashier/list?oh_token=tok", "/admin/cashier/list"},
		{http.MethodGet, "/api/cashier/groups?oh_token=tok", "/admin/cashier/groups"},
		{http.MethodGet, "/api/cashier/users?oh_token=tok", "/admin/cashier/users"},
		{http.MethodGet, "/api/cashier/detail?id=c-7&oh_token=tok", "/admin/cashier/detail/c-7"},
	}
	for _, tt := range tests {
		var gotPath string
		e := newCashierServer(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			w.Write([]byte(`{"result":"true"}`))
		})
		req := httptest.NewRequest(tt.method, tt.target, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d: %s", tt.target, rec.Code, rec.Body.String())
		}
		if gotPath != tt.wantPath {
			t.Errorf("%s: upstream path = %q, want %q", tt.target, gotPath, tt.wantPath)
		}
	}
}

func TestChangeType_ForwardsBody(t *testing.T) {
	var gotBody string
	e := newCashierServer(t, func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 256)
		n, _ := r.Body.Read(buf)
		gotBody = string(buf[:n])
		w.Write([]byte(`{"result":"true"}`))
	})

	req := httptest.NewRequest(http.MethodPost, "/api/cashier/change-type?oh_token=tok",
		strings.NewReader(`{"cashierId":"c-7","type":"senior"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if gotBody != `{"cashierId":"c-7","type":"senior"}` {
		t.Errorf("upstream body = %q", gotBody)
	}
}
