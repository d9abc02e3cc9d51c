package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	r.ServeHTTP(w, req)

	if rid := w.Header().Get("X-Request-ID"); rid == "" {
		t.Fatalf("expected generated X-Request-ID header")
	}
}

func TestRequestID_PropagatesIncoming(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	r.ServeHTTP(w, req)

	if rid := w.Header().Get("X-Request-ID"); rid != "fixed-id" {
		t.Fatalf("X-Request-ID = %q, want fixed-id", rid)
	}
}

func TestLogger_AttachesRequestScopedLogger(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Logger())
	r.GET("/x", func(c *gin.Context) {
		if LoggerFrom(c) == nil {
			t.Error("LoggerFrom returned nil inside handler")
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestLoggerFrom_FallbackWithoutMiddleware(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if LoggerFrom(c) == nil {
		t.Fatal("LoggerFrom fallback returned nil")
	}
}

func TestRecovery_ConvertsPanicToJSON500(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct == "" {
		t.Error("missing content type on recovered response")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdef", 3); got != "abc…" {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("abc", 0); got != "abc" {
		t.Fatalf("truncate disabled = %q", got)
	}
	if got := truncate("abc", 10); got != "abc" {
		t.Fatalf("truncate within limit = %q", got)
	}
}
