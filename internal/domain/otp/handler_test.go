package otp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/onehealth/webadmin-api/internal/platform/proxy"
)

func TestList_WrapsBareArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":"true","one_health_msg":[{"code":"111111"},{"code":"222222"}]}`))
	}))
	t.Cleanup(srv.Close)

	e := echo.New()
	h := NewHandler(proxy.NewDispatcher(srv.URL), zerolog.New(nil).Level(zerolog.Disabled))
	h.RegisterRoutes(e.Group("/api"))

	req := httptest.NewRequest(http.MethodGet, "/api/otp/list?oh_token=tok", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Data struct {
			List  []json.RawMessage `json:"list"`
			Total int               `json:"total"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Data.Total != 2 || len(out.Data.List) != 2 {
		t.Errorf("data = %+v, want 2-item container", out.Data)
	}
}
