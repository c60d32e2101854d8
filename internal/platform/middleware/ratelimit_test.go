package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func rateLimitedRequest(t *testing.T, handler echo.HandlerFunc, forwardedFor string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/invoice/list", nil)
	if forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", forwardedFor)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := handler(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestRateLimit_RequestsWithinLimit(t *testing.T) {
	mw := RateLimit(RateLimitConfig{RequestsPerSecond: 10, BurstSize: 5})
	handler := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	for i := 0; i < 5; i++ {
		rec := rateLimitedRequest(t, handler, "10.0.0.1")
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, rec.Code)
		}
		if got := rec.Header().Get("X-RateLimit-Limit"); got != "10" {
			t.Errorf("request %d: X-RateLimit-Limit = %q, want 10", i+1, got)
		}
	}
}

func TestRateLimit_ExceedsLimit(t *testing.T) {
	mw := RateLimit(RateLimitConfig{RequestsPerSecond: 1, BurstSize: 2})
	handler := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	for i := 0; i < 2; i++ {
		if rec := rateLimitedRequest(t, handler, "10.0.0.1"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, rec.Code)
		}
	}

	rec := rateLimitedRequest(t, handler, "10.0.0.1")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"success":false`) {
		t.Errorf("rejection body = %s, want console error shape", rec.Body.String())
	}

	retryAfter := rec.Header().Get("Retry-After")
	if retryAfter == "" {
		t.Fatal("Retry-After header not set")
	}
	if v, err := strconv.Atoi(retryAfter); err != nil || v < 1 {
		t.Errorf("Retry-After = %q, want integer >= 1", retryAfter)
	}
	if got := rec.Header().Get("X-RateLimit-Remaining"); got != "0" {
		t.Errorf("X-RateLimit-Remaining = %q, want 0", got)
	}
}

func TestRateLimit_PerClientIsolation(t *testing.T) {
	mw := RateLimit(RateLimitConfig{RequestsPerSecond: 1, BurstSize: 1})
	handler := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	if rec := rateLimitedRequest(t, handler, "10.0.0.1"); rec.Code != http.StatusOK {
		t.Fatalf("first client request: status = %d", rec.Code)
	}
	if rec := rateLimitedRequest(t, handler, "10.0.0.1"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request from same client: status = %d, want 429", rec.Code)
	}
	// A different forwarded client gets its own bucket.
	if rec := rateLimitedRequest(t, handler, "10.0.0.2"); rec.Code != http.StatusOK {
		t.Fatalf("other client request: status = %d, want 200", rec.Code)
	}
}

func TestRateLimit_ZeroConfigUsesDefaults(t *testing.T) {
	mw := RateLimit(RateLimitConfig{})
	handler := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	rec := rateLimitedRequest(t, handler, "10.0.0.1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("X-RateLimit-Limit"); got != "50" {
		t.Errorf("X-RateLimit-Limit = %q, want default 50", got)
	}
}

func TestTokenBucket_RetryAfterWithZeroRate(t *testing.T) {
	b := newTokenBucket(0, 1)
	b.allow()
	if ra := b.retryAfter(); ra != 1 {
		t.Errorf("retryAfter = %d, want 1 for zero refill rate", ra)
	}
}

func TestRateLimiterStore_ReturnsSameBucketPerKey(t *testing.T) {
	store := newRateLimiterStore(RateLimitConfig{RequestsPerSecond: 10, BurstSize: 5})

	b1 := store.getBucket("key1")
	if b1 == nil {
		t.Fatal("nil bucket")
	}
	if b2 := store.getBucket("key1"); b1 != b2 {
		t.Error("same key returned a different bucket")
	}
	if b3 := store.getBucket("key2"); b1 == b3 {
		t.Error("different keys share a bucket")
	}
}
