package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMiddlewareUsesRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)
	Set(zap.New(core))
	t.Cleanup(func() { Set(zap.NewNop()) })

	r := gin.New()
	r.Use(func(c *gin.Context) {
		WithGin(c, Get().With(zap.String("request_id", "req-1")))
		c.Next()
	})
	r.Use(Middleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

	entries := logs.FilterMessage("HTTP Request").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 request log, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["request_id"] != "req-1" {
		t.Errorf("request_id = %v", fields["request_id"])
	}
	if fields["status"] != int64(http.StatusTeapot) {
		t.Errorf("status = %v", fields["status"])
	}
	if fields["path"] != "/ping" {
		t.Errorf("path = %v", fields["path"])
	}
}

func TestFromGinFallsBackToGlobal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if FromGin(c) != Get() {
		t.Error("expected global logger without a request logger")
	}
}

func TestInit(t *testing.T) {
	t.Cleanup(func() { Set(zap.NewNop()) })
	if err := Init(Config{Level: "debug", Environment: "production", ServiceName: "test"}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if !Get().Core().Enabled(zap.DebugLevel) {
		t.Error("debug level not applied")
	}
}
