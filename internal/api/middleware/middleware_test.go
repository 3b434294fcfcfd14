package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/config"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ── Mocks ──

type mockBlacklist struct {
	revoked map[string]bool
	err     error
}

func (m *mockBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	return m.revoked[jti], m.err
}

type mockLimiter struct {
	calls int
	limit int
	err   error
}

func (m *mockLimiter) CheckRateLimit(_ context.Context, _ string, limit int, _ time.Duration) (bool, error) {
	m.calls++
	m.limit = limit
	return m.calls <= limit, m.err
}

func newManager() *jwt.Manager {
	return jwt.NewManager(&config.AuthConfig{JWTSecret: "test-secret-key-for-unit-testing", SessionTTL: time.Hour})
}

// protected 认证 + 角色链路，处理器回写当前角色
func protected(mgr *jwt.Manager, bl TokenBlacklist, roles ...string) *gin.Engine {
	r := gin.New()
	r.GET("/p", JWTAuth(mgr, bl, zap.NewNop()), RoleAuth(roles...), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextKeyRole))
	})
	return r
}

func get(r *gin.Engine, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/p", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

// ═══════════════════════════════════════════════════════════
// JWTAuth / RoleAuth
// ═══════════════════════════════════════════════════════════

func TestJWTAuth_RoleMatrix(t *testing.T) {
	mgr := newManager()
	adminTok, _, _ := mgr.GenerateSessionToken(jwt.RoleAdmin)
	trainerTok, _, _ := mgr.GenerateSessionToken(jwt.RoleTrainer)

	tests := []struct {
		name       string
		token      string
		roles      []string
		wantStatus int
	}{
		{"no token", "", []string{jwt.RoleAdmin}, http.StatusUnauthorized},
		{"garbage token", "abc.def.ghi", []string{jwt.RoleAdmin}, http.StatusUnauthorized},
		{"admin on admin route", adminTok, []string{jwt.RoleAdmin}, http.StatusOK},
		{"trainer on admin route", trainerTok, []string{jwt.RoleAdmin}, http.StatusForbidden},
		{"trainer on shared route", trainerTok, []string{jwt.RoleAdmin, jwt.RoleTrainer}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(protected(mgr, nil, tt.roles...), tt.token)
			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestJWTAuth_Blacklist(t *testing.T) {
	mgr := newManager()
	tok, claims, err := mgr.GenerateSessionToken(jwt.RoleAdmin)
	if err != nil {
		t.Fatalf("生成令牌失败: %v", err)
	}

	bl := &mockBlacklist{revoked: map[string]bool{claims.ID: true}}
	if w := get(protected(mgr, bl, jwt.RoleAdmin), tok); w.Code != http.StatusUnauthorized {
		t.Errorf("revoked session: expected 401, got %d", w.Code)
	}

	// Redis 故障时降级放行
	bl = &mockBlacklist{err: errors.New("redis down")}
	if w := get(protected(mgr, bl, jwt.RoleAdmin), tok); w.Code != http.StatusOK {
		t.Errorf("blacklist error: expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// RateLimit
// ═══════════════════════════════════════════════════════════

func TestRateLimit(t *testing.T) {
	limiter := &mockLimiter{}
	r := gin.New()
	r.POST("/login", RateLimit(limiter, 2, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })

	var codes []int
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("POST", "/login", nil))
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("unexpected status sequence %v", codes)
	}
}

func TestRateLimit_NilLimiterPasses(t *testing.T) {
	r := gin.New()
	r.POST("/login", RateLimit(nil, 1, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("POST", "/login", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, w.Code)
		}
	}
}

// ═══════════════════════════════════════════════════════════
// BodyLimit / RequestID / CORS
// ═══════════════════════════════════════════════════════════

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.POST("/x", BodyLimit(8), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/x", strings.NewReader(strings.Repeat("a", 64))))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/x", strings.NewReader("ok")))
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.GET("/x", RequestID(), func(c *gin.Context) { c.String(http.StatusOK, c.GetString(requestIDKey)) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/x", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	r.ServeHTTP(w, req)
	if w.Header().Get(requestIDHeader) != "abc-123" || w.Body.String() != "abc-123" {
		t.Errorf("expected request id to be propagated, got %q", w.Header().Get(requestIDHeader))
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/x", nil)
	req.Header.Set(requestIDHeader, strings.Repeat("x", requestIDMaxLen+1))
	r.ServeHTTP(w, req)
	if got := w.Header().Get(requestIDHeader); len(got) != 36 {
		t.Errorf("expected generated uuid, got %q", got)
	}
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173/"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest("OPTIONS", "/x", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204 for preflight, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Error("expected allowed origin to be echoed")
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("Origin", "https://evil.example")
	r.ServeHTTP(w, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("unknown origin must not be echoed")
	}
}
