package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	clinicalapp "github.com/hms/backend/internal/application/clinical"
	"github.com/hms/backend/internal/application/export"
	"github.com/hms/backend/internal/domain/clinical"
)

// CategoryHandler handles pathology category API endpoints
type CategoryHandler struct {
	BaseHandler
	service *clinicalapp.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(service *clinicalapp.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// Create adds a new pathology category
func (h *CategoryHandler) Create(c *gin.Context) {
	var req clinicalapp.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	category, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, category)
}

// GetByID retrieves a pathology category by ID
func (h *CategoryHandler) GetByID(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	category, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, category)
}

// List returns a filtered, paginated page of pathology categories
func (h *CategoryHandler) List(c *gin.Context) {
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

// Export downloads the filtered category list as a spreadsheet
func (h *CategoryHandler) Export(c *gin.Context) {
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

	data, err := export.Generate("Pathology Categories", categoryColumns(), records)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.File(c, export.Filename("Pathology_Categories", q.Filters(), time.Now()), data)
}

func categoryColumns() []export.Column[clinical.PathologyCategory] {
	return []export.Column[clinical.PathologyCategory]{
		{Header: "Name", Width: 30, Value: func(pc clinical.PathologyCategory) interface{} { return pc.Name }},
		{Header: "Description", Width: 50, Value: func(pc clinical.PathologyCategory) interface{} { return pc.Description }},
		{Header: "Created Date", Width: 20, Value: func(pc clinical.PathologyCategory) interface{} { return export.FormatDate(pc.CreatedAt) }},
	}
}

// Update modifies a pathology category
func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	var req clinicalapp.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	category, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, category)
}

// Delete removes a pathology category
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers pathology category endpoints
func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	categories := rg.Group("/clinical/pathology-categories")
	categories.GET("", h.List)
	categories.GET("/export", h.Export)
	categories.POST("", h.Create)
	categories.GET("/:id", h.GetByID)
	categories.PUT("/:id", h.Update)
	categories.DELETE("/:id", h.Delete)
}
