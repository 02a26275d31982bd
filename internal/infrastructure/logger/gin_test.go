package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// requestLog finds the completion log entry emitted by GinMiddleware
func requestLog(t *testing.T, recorded *observer.ObservedLogs) *observer.LoggedEntry {
	t.Helper()

	logs := recorded.All()
	require.NotEmpty(t, logs)
	for i := range logs {
		if logs[i].Message == "http request" {
			return &logs[i]
		}
	}
	t.Fatal("no http request log entry recorded")
	return nil
}

func serveThrough(middleware gin.HandlerFunc, method, target string, handler gin.HandlerFunc) *httptest.ResponseRecorder {
	router := gin.New()
	router.Use(middleware)
	router.Handle(method, "/api/v1/patients", handler)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, target, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestGinMiddleware(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)

	w := serveThrough(GinMiddleware(zap.New(core)), http.MethodGet, "/api/v1/patients", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	assert.Equal(t, http.StatusOK, w.Code)

	entry := requestLog(t, recorded)
	assert.Equal(t, zapcore.InfoLevel, entry.Level)
}

func TestGinMiddleware_WithRequestID(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)

	router := gin.New()
	// RequestID middleware normally sets this
	router.Use(func(c *gin.Context) {
		c.Set("request_id", "req-42")
		c.Next()
	})
	router.Use(GinMiddleware(zap.New(core)))
	router.GET("/api/v1/beds", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/beds", nil)
	router.ServeHTTP(w, req)

	entry := requestLog(t, recorded)

	found := false
	for _, field := range entry.Context {
		if field.Key == "request_id" {
			found = true
			assert.Equal(t, "req-42", field.String)
		}
	}
	assert.True(t, found, "request_id should be in log fields")
}

func TestGinMiddleware_ClientErrorLogsWarn(t *testing.T) {
	core, recorded := observer.New(zapcore.WarnLevel)

	w := serveThrough(GinMiddleware(zap.New(core)), http.MethodGet, "/api/v1/patients", func(c *gin.Context) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false})
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, zapcore.WarnLevel, requestLog(t, recorded).Level)
}

func TestGinMiddleware_ServerErrorLogsError(t *testing.T) {
	core, recorded := observer.New(zapcore.ErrorLevel)

	w := serveThrough(GinMiddleware(zap.New(core)), http.MethodGet, "/api/v1/patients", func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, zapcore.ErrorLevel, requestLog(t, recorded).Level)
}

func TestGinMiddleware_LogsQueryString(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)

	serveThrough(GinMiddleware(zap.New(core)), http.MethodGet, "/api/v1/patients?search=rahman&page=2", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	entry := requestLog(t, recorded)

	found := false
	for _, field := range entry.Context {
		if field.Key == "query" {
			found = true
			assert.Contains(t, field.String, "search=rahman")
		}
	}
	assert.True(t, found, "query should be in log fields")
}

func TestGinMiddleware_LogsExpectedFields(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)

	router := gin.New()
	router.Use(GinMiddleware(zap.New(core)))
	router.POST("/api/v1/admissions", func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"success": true})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/admissions", nil)
	req.Header.Set("User-Agent", "hms-spa/1.0")
	router.ServeHTTP(w, req)

	entry := requestLog(t, recorded)

	keys := make(map[string]bool)
	for _, field := range entry.Context {
		keys[field.Key] = true
	}
	for _, want := range []string{"status", "latency", "client_ip", "user_agent", "method", "path", "route"} {
		assert.True(t, keys[want], "expected field %q in log entry", want)
	}
}

func TestRecovery(t *testing.T) {
	core, recorded := observer.New(zapcore.ErrorLevel)

	router := gin.New()
	router.Use(Recovery(zap.New(core)))
	router.GET("/api/v1/patients", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/patients", nil)

	assert.NotPanics(t, func() {
		router.ServeHTTP(w, req)
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	logs := recorded.All()
	require.NotEmpty(t, logs)
	assert.Contains(t, logs[0].Message, "panic recovered")
}

func TestGetGinLogger(t *testing.T) {
	core, _ := observer.New(zapcore.InfoLevel)

	var retrieved *zap.Logger
	serveThrough(GinMiddleware(zap.New(core)), http.MethodGet, "/api/v1/patients", func(c *gin.Context) {
		retrieved = GetGinLogger(c)
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	assert.NotNil(t, retrieved)
}

func TestGetGinLogger_NotSet(t *testing.T) {
	var retrieved *zap.Logger

	router := gin.New()
	router.GET("/api/v1/patients", func(c *gin.Context) {
		retrieved = GetGinLogger(c)
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/patients", nil)
	router.ServeHTTP(w, req)

	// A no-op logger, never nil
	require.NotNil(t, retrieved)
	assert.NotPanics(t, func() {
		retrieved.Info("no middleware")
	})
}
