package handler

import (
	"github.com/gin-gonic/gin"
	reportapp "github.com/hms/backend/internal/application/report"
)

// DashboardHandler handles the home screen summary endpoint
type DashboardHandler struct {
	BaseHandler
	service *reportapp.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(service *reportapp.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Summary returns the headline counts for the dashboard
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// RegisterRoutes registers dashboard endpoints
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard/summary", h.Summary)
}
