package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	clinicalapp "github.com/hms/backend/internal/application/clinical"
	"github.com/hms/backend/internal/application/export"
	"github.com/hms/backend/internal/domain/clinical"
)

// ReportHandler handles investigation report API endpoints
type ReportHandler struct {
	BaseHandler
	service *clinicalapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(service *clinicalapp.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Create opens a new investigation report
func (h *ReportHandler) Create(c *gin.Context) {
	var req clinicalapp.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	report, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, report)
}

// GetByID retrieves an investigation report by ID
func (h *ReportHandler) GetByID(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid report ID format")
		return
	}

	report, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// List returns a filtered, paginated page of investigation reports
func (h *ReportHandler) List(c *gin.Context) {
	q, err := bindListQuery(c)
	if err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Paginated(c, result.Items, result.Pagination)
}

// Export downloads the filtered report list as a spreadsheet
func (h *ReportHandler) Export(c *gin.Context) {
	q, err := bindListQuery(c)
	if err != nil {
		h.BindingError(c, err)
		return
	}

	records, err := h.service.Filtered(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	data, err := export.Generate("Investigation Reports", reportColumns(), records)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.File(c, export.Filename("Investigation_Reports", q.Filters(), time.Now()), data)
}

func reportColumns() []export.Column[clinical.InvestigationReport] {
	return []export.Column[clinical.InvestigationReport]{
		{Header: "Title", Width: 40, Value: func(r clinical.InvestigationReport) interface{} { return r.Title }},
		{Header: "Description", Width: 50, Value: func(r clinical.InvestigationReport) interface{} { return r.Description }},
		{Header: "Report Date", Width: 20, Value: func(r clinical.InvestigationReport) interface{} { return export.FormatDate(r.ReportDate) }},
		{Header: "Status", Width: 14, Value: func(r clinical.InvestigationReport) interface{} { return string(r.Status) }},
	}
}

// Update modifies an investigation report
func (h *ReportHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid report ID format")
		return
	}

	var req clinicalapp.UpdateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	report, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// Delete removes a report and its stored attachment
func (h *ReportHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid report ID format")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers investigation report endpoints
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/clinical/reports")
	reports.GET("", h.List)
	reports.GET("/export", h.Export)
	reports.POST("", h.Create)
	reports.GET("/:id", h.GetByID)
	reports.PUT("/:id", h.Update)
	reports.DELETE("/:id", h.Delete)
}
