package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestResolveAllowedOrigin(t *testing.T) {
	got := resolveAllowedOrigin("https://example.com", []string{"*"}, false)
	if got != "*" {
		t.Fatalf("wildcard without credentials should return *, got %s", got)
	}

	got = resolveAllowedOrigin("https://example.com", []string{"*"}, true)
	if got != "https://example.com" {
		t.Fatalf("wildcard with credentials should echo origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://a.example.com", []string{"https://a.example.com", "https://b.example.com"}, false)
	if got != "https://a.example.com" {
		t.Fatalf("allow-list should return matched origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://x.example.com", []string{"https://a.example.com"}, false)
	if got != "" {
		t.Fatalf("unmatched origin should be empty, got %s", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w2, req2)
	if strings.TrimSpace(w2.Header().Get(requestIDHeader)) == "" {
		t.Fatalf("generated request id should not be blank")
	}
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(SecurityHeadersMiddleware("debug"))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Header().Get("X-Frame-Options") != "DENY" {
		t.Fatalf("X-Frame-Options want DENY got %s", w.Header().Get("X-Frame-Options"))
	}
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatalf("X-Content-Type-Options want nosniff got %s", w.Header().Get("X-Content-Type-Options"))
	}
	if w.Header().Get("Content-Security-Policy") == "" {
		t.Fatal("CSP header missing")
	}
	if w.Header().Get("Strict-Transport-Security") != "" {
		t.Fatal("HSTS should not be set in debug mode")
	}

	release := gin.New()
	release.Use(SecurityHeadersMiddleware("release"))
	release.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w2 := httptest.NewRecorder()
	release.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/", nil))
	if w2.Header().Get("Strict-Transport-Security") == "" {
		t.Fatal("HSTS should be set in release mode")
	}
}

func newCSRFRouter() *gin.Engine {
	r := gin.New()
	r.Use(CSRFOriginMiddleware([]string{"https://blog.example.com", "http://localhost:3000"}))
	r.POST("/api/thing", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/api/thing", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestCSRFOriginMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := newCSRFRouter()

	// 允许的 Origin 放行
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/thing", nil)
	req.Header.Set("Origin", "https://blog.example.com")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("allowed origin want 200 got %d", w.Code)
	}

	// 未知 Origin 拒绝
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/thing", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("unknown origin want 403 got %d", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["error"] != "Invalid origin" {
		t.Fatalf("error message want 'Invalid origin' got %q", resp["error"])
	}

	// 没有 Origin 时退回 Referer 校验
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/thing", nil)
	req.Header.Set("Referer", "https://evil.example.com/page")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("unknown referer want 403 got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/thing", nil)
	req.Header.Set("Referer", "http://localhost:3000/post/hello")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("allowed referer want 200 got %d", w.Code)
	}

	// 两个头都缺失时放行
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/thing", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("absent headers want 200 got %d", w.Code)
	}

	// 读请求不校验
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/thing", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET request want 200 got %d", w.Code)
	}
}

func TestRefererOrigin(t *testing.T) {
	if got := refererOrigin("https://blog.example.com/post/x?y=1"); got != "https://blog.example.com" {
		t.Fatalf("referer origin want https://blog.example.com got %s", got)
	}
	if got := refererOrigin("not a url"); got != "" {
		t.Fatalf("malformed referer should be empty, got %s", got)
	}
}
