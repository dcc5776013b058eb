package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healbuddy-web/internal/config"
	"healbuddy-web/pkg/logger"
)

func newTestRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(handlers...)
	return router
}

func TestRequestIDGeneratedAndPropagated(t *testing.T) {
	router := newTestRouter(RequestIDMiddleware())

	var fromContext interface{}
	router.GET("/chat", func(c *gin.Context) {
		fromContext = logger.FromContext(c.Request.Context()).Data["request_id"]
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/chat", nil))

	id := rec.Header().Get(RequestIDHeader)
	require.NotEmpty(t, id)
	assert.Len(t, id, 36)
	assert.Equal(t, id, fromContext)
}

func TestRequestIDKeepsIncomingHeader(t *testing.T) {
	router := newTestRouter(RequestIDMiddleware())
	router.GET("/chat", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/chat", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))
}

func TestSecurityHeaders(t *testing.T) {
	router := newTestRouter(SecurityHeadersMiddleware([]string{"https://cdn.tailwindcss.com"}, nil))
	router.GET("/chat", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/chat", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "https://cdn.tailwindcss.com")
	assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestRateLimitRejectsBurstOverflow(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := NewRateLimitManager(ctx)
	t.Cleanup(func() { _ = manager.Shutdown() })

	cfg := &config.Config{RateLimitRequests: 2, RateLimitWindow: 3600}
	router := newTestRouter(RateLimitMiddleware(cfg, manager))
	router.GET("/chat", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/chat", nil))
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitDisabledWithoutManager(t *testing.T) {
	cfg := &config.Config{RateLimitRequests: 1, RateLimitWindow: 3600}
	router := newTestRouter(RateLimitMiddleware(cfg, nil))
	router.GET("/chat", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/chat", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimitManagerCleanup(t *testing.T) {
	manager := NewRateLimitManager(context.Background())
	t.Cleanup(func() { _ = manager.Shutdown() })

	require.NotNil(t, manager.GetVisitor("10.0.0.1", 10, 60, 0))
	assert.Nil(t, manager.GetVisitor("10.0.0.2", 0, 60, 0))

	manager.cleanup(time.Now().Add(visitorIdleTimeout + time.Second))

	manager.visitorsMu.Lock()
	defer manager.visitorsMu.Unlock()
	assert.Empty(t, manager.visitors)
}

func TestMetricsMiddlewareRecordsRoute(t *testing.T) {
	router := newTestRouter(MetricsMiddleware())
	router.GET("/chat", func(c *gin.Context) { c.Status(http.StatusOK) })

	counter := httpRequestsTotal.WithLabelValues(http.MethodGet, "/chat", "200")
	unmatched := httpRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404")
	before := testutil.ToFloat64(counter)
	beforeUnmatched := testutil.ToFloat64(unmatched)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/chat", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
	assert.Equal(t, beforeUnmatched+1, testutil.ToFloat64(unmatched))
}

func TestRecordShellRender(t *testing.T) {
	initMetrics()
	open := shellRendersTotal.WithLabelValues("Chat", "open")
	before := testutil.ToFloat64(open)

	RecordShellRender("Chat", true)

	assert.Equal(t, before+1, testutil.ToFloat64(open))
}
