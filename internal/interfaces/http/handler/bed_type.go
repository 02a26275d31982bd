package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hms/backend/internal/application/export"
	facilityapp "github.com/hms/backend/internal/application/facility"
	"github.com/hms/backend/internal/domain/facility"
)

// BedTypeHandler handles bed type API endpoints
type BedTypeHandler struct {
	BaseHandler
	service *facilityapp.BedTypeService
}

// NewBedTypeHandler creates a new BedTypeHandler
func NewBedTypeHandler(service *facilityapp.BedTypeService) *BedTypeHandler {
	return &BedTypeHandler{service: service}
}

// Create adds a new bed type
func (h *BedTypeHandler) Create(c *gin.Context) {
	var req facilityapp.CreateBedTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	bedType, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, bedType)
}

// GetByID retrieves a bed type by ID
func (h *BedTypeHandler) GetByID(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid bed type ID format")
		return
	}

	bedType, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, bedType)
}

// List returns a filtered, paginated page of bed types
func (h *BedTypeHandler) List(c *gin.Context) {
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

// Export downloads the filtered bed type list as a spreadsheet
func (h *BedTypeHandler) Export(c *gin.Context) {
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

	data, err := export.Generate("Bed Types", bedTypeColumns(), records)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.File(c, export.Filename("Bed_Types", q.Filters(), time.Now()), data)
}

func bedTypeColumns() []export.Column[facility.BedType] {
	return []export.Column[facility.BedType]{
		{Header: "Name", Width: 30, Value: func(bt facility.BedType) interface{} { return bt.Name }},
		{Header: "Description", Width: 50, Value: func(bt facility.BedType) interface{} { return bt.Description }},
		{Header: "Created Date", Width: 20, Value: func(bt facility.BedType) interface{} { return export.FormatDate(bt.CreatedAt) }},
	}
}

// Update modifies a bed type
func (h *BedTypeHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid bed type ID format")
		return
	}

	var req facilityapp.UpdateBedTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	bedType, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, bedType)
}

// Delete removes a bed type that no bed references
func (h *BedTypeHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid bed type ID format")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers bed type endpoints
func (h *BedTypeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	bedTypes := rg.Group("/facility/bed-types")
	bedTypes.GET("", h.List)
	bedTypes.GET("/export", h.Export)
	bedTypes.POST("", h.Create)
	bedTypes.GET("/:id", h.GetByID)
	bedTypes.PUT("/:id", h.Update)
	bedTypes.DELETE("/:id", h.Delete)
}
