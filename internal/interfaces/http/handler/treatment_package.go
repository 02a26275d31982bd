package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	billingapp "github.com/hms/backend/internal/application/billing"
	"github.com/hms/backend/internal/application/export"
	"github.com/hms/backend/internal/domain/billing"
)

// PackageHandler handles treatment package API endpoints
type PackageHandler struct {
	BaseHandler
	service *billingapp.PackageService
}

// NewPackageHandler creates a new PackageHandler
func NewPackageHandler(service *billingapp.PackageService) *PackageHandler {
	return &PackageHandler{service: service}
}

// Create adds a new treatment package
func (h *PackageHandler) Create(c *gin.Context) {
	var req billingapp.CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	pkg, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, pkg)
}

// GetByID retrieves a treatment package by ID
func (h *PackageHandler) GetByID(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid package ID format")
		return
	}

	pkg, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, pkg)
}

// List returns a filtered, paginated page of treatment packages
func (h *PackageHandler) List(c *gin.Context) {
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

// Export downloads the filtered package list as a spreadsheet
func (h *PackageHandler) Export(c *gin.Context) {
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

	data, err := export.Generate("Treatment Packages", packageColumns(), records)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.File(c, export.Filename("Treatment_Packages", q.Filters(), time.Now()), data)
}

func packageColumns() []export.Column[billing.TreatmentPackage] {
	return []export.Column[billing.TreatmentPackage]{
		{Header: "Name", Width: 30, Value: func(p billing.TreatmentPackage) interface{} { return p.Name }},
		{Header: "Description", Width: 50, Value: func(p billing.TreatmentPackage) interface{} { return p.Description }},
		{Header: "Amount", Width: 18, Value: func(p billing.TreatmentPackage) interface{} { return export.FormatMoney(p.Amount) }},
		{Header: "Tax", Width: 16, Value: func(p billing.TreatmentPackage) interface{} { return export.FormatMoney(p.TaxAmount) }},
		{Header: "Total", Width: 18, Value: func(p billing.TreatmentPackage) interface{} { return export.FormatMoney(p.TotalAmount) }},
		{Header: "Net Amount", Width: 18, Value: func(p billing.TreatmentPackage) interface{} { return export.FormatMoney(p.NetAmount) }},
		{Header: "Created Date", Width: 20, Value: func(p billing.TreatmentPackage) interface{} { return export.FormatDate(p.CreatedAt) }},
	}
}

// Update modifies a treatment package's details
func (h *PackageHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid package ID format")
		return
	}

	var req billingapp.UpdatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	pkg, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, pkg)
}

// AddItem adds a treatment line to a package
func (h *PackageHandler) AddItem(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid package ID format")
		return
	}

	var req billingapp.LineItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	pkg, err := h.service.AddItem(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, pkg)
}

// UpdateItem modifies a treatment line
func (h *PackageHandler) UpdateItem(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid package ID format")
		return
	}
	itemID, err := pathID(c, "itemId")
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	var req billingapp.UpdateLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	pkg, err := h.service.UpdateItem(c.Request.Context(), id, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, pkg)
}

// RemoveItem deletes a treatment line
func (h *PackageHandler) RemoveItem(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid package ID format")
		return
	}
	itemID, err := pathID(c, "itemId")
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	pkg, err := h.service.RemoveItem(c.Request.Context(), id, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, pkg)
}

// SetDiscount changes the package-level discount
func (h *PackageHandler) SetDiscount(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid package ID format")
		return
	}

	var req billingapp.SetDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	pkg, err := h.service.SetDiscount(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, pkg)
}

// Delete removes a treatment package
func (h *PackageHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid package ID format")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers treatment package endpoints
func (h *PackageHandler) RegisterRoutes(rg *gin.RouterGroup) {
	packages := rg.Group("/billing/packages")
	packages.GET("", h.List)
	packages.GET("/export", h.Export)
	packages.POST("", h.Create)
	packages.GET("/:id", h.GetByID)
	packages.PUT("/:id", h.Update)
	packages.POST("/:id/items", h.AddItem)
	packages.PUT("/:id/items/:itemId", h.UpdateItem)
	packages.DELETE("/:id/items/:itemId", h.RemoveItem)
	packages.PUT("/:id/discount", h.SetDiscount)
	packages.DELETE("/:id", h.Delete)
}
