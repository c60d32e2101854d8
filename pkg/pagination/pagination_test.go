package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestFromContext_Defaults(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	p := FromContext(c)

	if p.Page != 1 {
		t.Errorf("expected default page 1, got %d", p.Page)
	}
	if p.PageSize != DefaultPageSize {
		t.Errorf("expected default page size %d, got %d", DefaultPageSize, p.PageSize)
	}
}

func TestFromContext_CustomValues(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?page=3&pageSize=50", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	p := FromContext(c)

	if p.Page != 3 {
		t.Errorf("expected page 3, got %d", p.Page)
	}
	if p.PageSize != 50 {
		t.Errorf("expected page size 50, got %d", p.PageSize)
	}
}

func TestFromContext_LegacyLimitAlias(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?limit=25", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	p := FromContext(c)

	if p.PageSize != 25 {
		t.Errorf("expected page size 25 via limit alias, got %d", p.PageSize)
	}
}

func TestFromContext_MaxPageSize(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?pageSize=500", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	p := FromContext(c)

	if p.PageSize != MaxPageSize {
		t.Errorf("expected page size clamped to %d, got %d", MaxPageSize, p.PageSize)
	}
}

func TestBounds(t *testing.T) {
	tests := []struct {
		name   string
		page   int
		size   int
		total  int
		wantLo int
		wantHi int
	}{
		{"first page", 1, 10, 25, 0, 10},
		{"middle page", 2, 10, 25, 10, 20},
		{"last partial page", 3, 10, 25, 20, 25},
		{"page past end", 5, 10, 25, 25, 25},
		{"empty set", 1, 10, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Params{Page: tt.page, PageSize: tt.size}
			lo, hi := p.Bounds(tt.total)
			if lo != tt.wantLo || hi != tt.wantHi {
				t.Errorf("got [%d:%d], want [%d:%d]", lo, hi, tt.wantLo, tt.wantHi)
			}
		})
	}
}

func TestTotalPages(t *testing.T) {
	p := Params{Page: 1, PageSize: 10}
	if got := p.TotalPages(0); got != 0 {
		t.Errorf("expected 0 pages for empty set, got %d", got)
	}
	if got := p.TotalPages(25); got != 3 {
		t.Errorf("expected 3 pages, got %d", got)
	}
	if got := p.TotalPages(30); got != 3 {
		t.Errorf("expected 3 pages, got %d", got)
	}
}
