package handler

import (
	"errors"
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hms/backend/internal/application/export"
	patientapp "github.com/hms/backend/internal/application/patient"
	"github.com/hms/backend/internal/domain/patient"
)

// AdmissionHandler handles IPD and OPD admission API endpoints. Both kinds
// share one record shape; the kind in the path selects the screen.
type AdmissionHandler struct {
	BaseHandler
	service *patientapp.AdmissionService
}

// NewAdmissionHandler creates a new AdmissionHandler
func NewAdmissionHandler(service *patientapp.AdmissionService) *AdmissionHandler {
	return &AdmissionHandler{service: service}
}

func admissionKind(c *gin.Context) (patient.AdmissionKind, bool) {
	switch strings.ToLower(c.Param("kind")) {
	case "ipd":
		return patient.AdmissionIPD, true
	case "opd":
		return patient.AdmissionOPD, true
	}
	return "", false
}

// Create admits a patient
func (h *AdmissionHandler) Create(c *gin.Context) {
	var req patientapp.CreateAdmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	admission, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, admission)
}

// GetByID retrieves an admission by ID
func (h *AdmissionHandler) GetByID(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid admission ID format")
		return
	}

	admission, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, admission)
}

// List returns a filtered, paginated page of admissions of one kind
func (h *AdmissionHandler) List(c *gin.Context) {
	kind, ok := admissionKind(c)
	if !ok {
		h.BadRequest(c, "Admission kind must be ipd or opd")
		return
	}

	q, err := bindListQuery(c)
	if err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.service.List(c.Request.Context(), kind, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Paginated(c, result.Items, result.Pagination)
}

// Export downloads the filtered admission list of one kind as a spreadsheet
func (h *AdmissionHandler) Export(c *gin.Context) {
	kind, ok := admissionKind(c)
	if !ok {
		h.BadRequest(c, "Admission kind must be ipd or opd")
		return
	}

	q, err := bindListQuery(c)
	if err != nil {
		h.BindingError(c, err)
		return
	}

	records, err := h.service.Filtered(c.Request.Context(), kind, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	entity := "IPD_Patients"
	sheet := "IPD Patients"
	if kind == patient.AdmissionOPD {
		entity = "OPD_Patients"
		sheet = "OPD Patients"
	}

	data, err := export.Generate(sheet, admissionColumns(), records)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.File(c, export.Filename(entity, q.Filters(), time.Now()), data)
}

func admissionColumns() []export.Column[patient.Admission] {
	return []export.Column[patient.Admission]{
		{Header: "Doctor", Width: 30, Value: func(a patient.Admission) interface{} { return a.DoctorName }},
		{Header: "Admitted Date", Width: 20, Value: func(a patient.Admission) interface{} { return export.FormatDate(a.AdmittedAt) }},
		{Header: "Discharged Date", Width: 20, Value: func(a patient.Admission) interface{} {
			if a.DischargedAt == nil {
				return ""
			}
			return export.FormatDate(*a.DischargedAt)
		}},
		{Header: "Status", Width: 14, Value: func(a patient.Admission) interface{} { return string(a.Status) }},
		{Header: "Symptoms", Width: 50, Value: func(a patient.Admission) interface{} { return a.Symptoms }},
	}
}

// Update modifies an admission's editable fields
func (h *AdmissionHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid admission ID format")
		return
	}

	var req patientapp.UpdateAdmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	admission, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, admission)
}

// Discharge closes an admission and frees its bed
func (h *AdmissionHandler) Discharge(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid admission ID format")
		return
	}

	// The discharge timestamp is optional; an empty body means "now"
	var req patientapp.DischargeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.BindingError(c, err)
		return
	}

	admission, err := h.service.Discharge(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, admission)
}

// Delete removes an admission record
func (h *AdmissionHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid admission ID format")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers admission endpoints. List screens are
// kind-scoped; record operations address the admission directly.
func (h *AdmissionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admissions := rg.Group("/admissions")
	admissions.POST("", h.Create)
	admissions.GET("/kind/:kind", h.List)
	admissions.GET("/kind/:kind/export", h.Export)
	admissions.GET("/:id", h.GetByID)
	admissions.PUT("/:id", h.Update)
	admissions.POST("/:id/discharge", h.Discharge)
	admissions.DELETE("/:id", h.Delete)
}
