package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hms/backend/internal/application/export"
	patientapp "github.com/hms/backend/internal/application/patient"
	"github.com/hms/backend/internal/domain/patient"
)

// PatientHandler handles patient API endpoints
type PatientHandler struct {
	BaseHandler
	service *patientapp.PatientService
}

// NewPatientHandler creates a new PatientHandler
func NewPatientHandler(service *patientapp.PatientService) *PatientHandler {
	return &PatientHandler{service: service}
}

// Create registers a new patient
func (h *PatientHandler) Create(c *gin.Context) {
	var req patientapp.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	p, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, p)
}

// GetByID retrieves a patient by ID
func (h *PatientHandler) GetByID(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid patient ID format")
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// List returns a filtered, paginated page of patients
func (h *PatientHandler) List(c *gin.Context) {
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

// Export downloads the filtered patient list as a spreadsheet
func (h *PatientHandler) Export(c *gin.Context) {
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

	data, err := export.Generate("Patients", patientColumns(), records)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.File(c, export.Filename("Patients", q.Filters(), time.Now()), data)
}

func patientColumns() []export.Column[patient.Patient] {
	return []export.Column[patient.Patient]{
		{Header: "Name", Width: 30, Value: func(p patient.Patient) interface{} { return p.FullName() }},
		{Header: "Email", Width: 30, Value: func(p patient.Patient) interface{} { return p.Email }},
		{Header: "Phone", Width: 18, Value: func(p patient.Patient) interface{} { return p.Phone }},
		{Header: "Gender", Width: 12, Value: func(p patient.Patient) interface{} { return string(p.Gender) }},
		{Header: "Blood Group", Width: 14, Value: func(p patient.Patient) interface{} { return p.BloodGroup }},
		{Header: "Address", Width: 50, Value: func(p patient.Patient) interface{} { return p.Address }},
		{Header: "Registered Date", Width: 20, Value: func(p patient.Patient) interface{} { return export.FormatDate(p.CreatedAt) }},
	}
}

// Update modifies a patient
func (h *PatientHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid patient ID format")
		return
	}

	var req patientapp.UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	p, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// Delete removes a patient record
func (h *PatientHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid patient ID format")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers patient endpoints
func (h *PatientHandler) RegisterRoutes(rg *gin.RouterGroup) {
	patients := rg.Group("/patients")
	patients.GET("", h.List)
	patients.GET("/export", h.Export)
	patients.POST("", h.Create)
	patients.GET("/:id", h.GetByID)
	patients.PUT("/:id", h.Update)
	patients.DELETE("/:id", h.Delete)
}
