package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	clinicalapp "github.com/hms/backend/internal/application/clinical"
	"github.com/hms/backend/internal/application/export"
	"github.com/hms/backend/internal/domain/clinical"
)

// PrescriptionHandler handles prescription API endpoints
type PrescriptionHandler struct {
	BaseHandler
	service *clinicalapp.PrescriptionService
}

// NewPrescriptionHandler creates a new PrescriptionHandler
func NewPrescriptionHandler(service *clinicalapp.PrescriptionService) *PrescriptionHandler {
	return &PrescriptionHandler{service: service}
}

// Create writes a new prescription
func (h *PrescriptionHandler) Create(c *gin.Context) {
	var req clinicalapp.CreatePrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	prescription, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, prescription)
}

// GetByID retrieves a prescription by ID
func (h *PrescriptionHandler) GetByID(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid prescription ID format")
		return
	}

	prescription, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, prescription)
}

// List returns a filtered, paginated page of prescriptions
func (h *PrescriptionHandler) List(c *gin.Context) {
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

// Export downloads the filtered prescription list as a spreadsheet
func (h *PrescriptionHandler) Export(c *gin.Context) {
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

	data, err := export.Generate("Prescriptions", prescriptionColumns(), records)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.File(c, export.Filename("Prescriptions", q.Filters(), time.Now()), data)
}

func prescriptionColumns() []export.Column[clinical.Prescription] {
	return []export.Column[clinical.Prescription]{
		{Header: "Doctor", Width: 30, Value: func(p clinical.Prescription) interface{} { return p.DoctorName }},
		{Header: "Medicines", Width: 60, Value: func(p clinical.Prescription) interface{} {
			names := make([]string, 0, len(p.Lines))
			for _, line := range p.Lines {
				names = append(names, line.Medicine)
			}
			return strings.Join(names, ", ")
		}},
		{Header: "Prescribed Date", Width: 20, Value: func(p clinical.Prescription) interface{} { return export.FormatDate(p.PrescribedAt) }},
		{Header: "Notes", Width: 50, Value: func(p clinical.Prescription) interface{} { return p.Notes }},
	}
}

// Update modifies a prescription's header fields
func (h *PrescriptionHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid prescription ID format")
		return
	}

	var req clinicalapp.UpdatePrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	prescription, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, prescription)
}

// AddLine adds a medicine line to a prescription
func (h *PrescriptionHandler) AddLine(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid prescription ID format")
		return
	}

	var req clinicalapp.PrescriptionLineInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	prescription, err := h.service.AddLine(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, prescription)
}

// RemoveLine deletes a medicine line; the last line cannot be removed
func (h *PrescriptionHandler) RemoveLine(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid prescription ID format")
		return
	}
	lineID, err := pathID(c, "lineId")
	if err != nil {
		h.BadRequest(c, "Invalid line ID format")
		return
	}

	prescription, err := h.service.RemoveLine(c.Request.Context(), id, lineID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, prescription)
}

// Delete removes a prescription
func (h *PrescriptionHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid prescription ID format")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers prescription endpoints
func (h *PrescriptionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	prescriptions := rg.Group("/clinical/prescriptions")
	prescriptions.GET("", h.List)
	prescriptions.GET("/export", h.Export)
	prescriptions.POST("", h.Create)
	prescriptions.GET("/:id", h.GetByID)
	prescriptions.PUT("/:id", h.Update)
	prescriptions.POST("/:id/lines", h.AddLine)
	prescriptions.DELETE("/:id/lines/:lineId", h.RemoveLine)
	prescriptions.DELETE("/:id", h.Delete)
}
