package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hms/backend/internal/application/export"
	facilityapp "github.com/hms/backend/internal/application/facility"
	"github.com/hms/backend/internal/domain/facility"
)

// BedHandler handles bed API endpoints
type BedHandler struct {
	BaseHandler
	service *facilityapp.BedService
}

// NewBedHandler creates a new BedHandler
func NewBedHandler(service *facilityapp.BedService) *BedHandler {
	return &BedHandler{service: service}
}

// Create adds a new bed
func (h *BedHandler) Create(c *gin.Context) {
	var req facilityapp.CreateBedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	bed, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, bed)
}

// GetByID retrieves a bed by ID
func (h *BedHandler) GetByID(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid bed ID format")
		return
	}

	bed, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, bed)
}

// List returns a filtered, paginated page of beds
func (h *BedHandler) List(c *gin.Context) {
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

// Export downloads the filtered bed list as a spreadsheet
func (h *BedHandler) Export(c *gin.Context) {
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

	data, err := export.Generate("Beds", bedColumns(), records)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.File(c, export.Filename("Beds", q.Filters(), time.Now()), data)
}

func bedColumns() []export.Column[facility.Bed] {
	return []export.Column[facility.Bed]{
		{Header: "Bed Number", Width: 20, Value: func(b facility.Bed) interface{} { return b.Number }},
		{Header: "Charge Per Day", Width: 18, Value: func(b facility.Bed) interface{} { return export.FormatMoney(b.ChargePerDay) }},
		{Header: "Status", Width: 14, Value: func(b facility.Bed) interface{} { return string(b.Status()) }},
		{Header: "Description", Width: 50, Value: func(b facility.Bed) interface{} { return b.Description }},
		{Header: "Created Date", Width: 20, Value: func(b facility.Bed) interface{} { return export.FormatDate(b.CreatedAt) }},
	}
}

// Update modifies a bed
func (h *BedHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid bed ID format")
		return
	}

	var req facilityapp.UpdateBedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	bed, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, bed)
}

// Delete removes an unoccupied bed
func (h *BedHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid bed ID format")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers bed endpoints
func (h *BedHandler) RegisterRoutes(rg *gin.RouterGroup) {
	beds := rg.Group("/facility/beds")
	beds.GET("", h.List)
	beds.GET("/export", h.Export)
	beds.POST("", h.Create)
	beds.GET("/:id", h.GetByID)
	beds.PUT("/:id", h.Update)
	beds.DELETE("/:id", h.Delete)
}
