package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newSystemRouter(h *SystemHandler) *gin.Engine {
	r := gin.New()
	h.RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestSystemHandler_Health(t *testing.T) {
	r := newSystemRouter(NewSystemHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/system/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestSystemHandler_Info(t *testing.T) {
	r := newSystemRouter(NewSystemHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/system/info", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_version")
}

func TestSystemHandler_Ready(t *testing.T) {
	h := NewSystemHandler()
	h.AddReadyCheck("database", func() error { return nil })
	r := newSystemRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/system/ready", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"ok"`)
}

func TestSystemHandler_Ready_CheckFails(t *testing.T) {
	h := NewSystemHandler()
	h.AddReadyCheck("database", func() error { return errors.New("connection refused") })
	h.AddReadyCheck("cache", func() error { return nil })
	r := newSystemRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/system/ready", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")
	assert.Contains(t, w.Body.String(), `"cache":"ok"`)
}
