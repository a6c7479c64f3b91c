package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})
	return r
}

func TestRequestIDKeepsIncomingHeader(t *testing.T) {
	r := newEngine(RequestID())

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Body.String() != "abc-123" || w.Header().Get("X-Request-ID") != "abc-123" {
		t.Fatalf("request id not propagated: body=%q header=%q", w.Body.String(), w.Header().Get("X-Request-ID"))
	}
}

func TestRequestIDGenerated(t *testing.T) {
	r := newEngine(RequestID())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if w.Body.String() == "" || w.Body.String() != w.Header().Get("X-Request-ID") {
		t.Fatalf("expected generated id, body=%q header=%q", w.Body.String(), w.Header().Get("X-Request-ID"))
	}
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	r := newEngine(CORS([]string{"http://dash.test"}))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://dash.test")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://dash.test" {
		t.Fatalf("allow origin: %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://evil.test")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("unknown origin should be rejected, got %d", w.Code)
	}
}
