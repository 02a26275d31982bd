package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	billingapp "github.com/hms/backend/internal/application/billing"
	"github.com/hms/backend/internal/application/export"
	"github.com/hms/backend/internal/domain/billing"
)

// InsuranceHandler handles insurance plan API endpoints
type InsuranceHandler struct {
	BaseHandler
	service *billingapp.InsuranceService
}

// NewInsuranceHandler creates a new InsuranceHandler
func NewInsuranceHandler(service *billingapp.InsuranceService) *InsuranceHandler {
	return &InsuranceHandler{service: service}
}

// Create adds a new insurance plan
func (h *InsuranceHandler) Create(c *gin.Context) {
	var req billingapp.CreateInsuranceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	insurance, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, insurance)
}

// GetByID retrieves an insurance plan by ID
func (h *InsuranceHandler) GetByID(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid insurance ID format")
		return
	}

	insurance, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, insurance)
}

// List returns a filtered, paginated page of insurance plans
func (h *InsuranceHandler) List(c *gin.Context) {
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

// Export downloads the filtered insurance list as a spreadsheet
func (h *InsuranceHandler) Export(c *gin.Context) {
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

	data, err := export.Generate("Insurances", insuranceColumns(), records)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.File(c, export.Filename("Insurances", q.Filters(), time.Now()), data)
}

func insuranceColumns() []export.Column[billing.Insurance] {
	return []export.Column[billing.Insurance]{
		{Header: "Name", Width: 30, Value: func(i billing.Insurance) interface{} { return i.Name }},
		{Header: "Provider", Width: 30, Value: func(i billing.Insurance) interface{} { return i.ProviderName }},
		{Header: "Amount", Width: 18, Value: func(i billing.Insurance) interface{} { return export.FormatMoney(i.Amount) }},
		{Header: "Tax", Width: 16, Value: func(i billing.Insurance) interface{} { return export.FormatMoney(i.TaxAmount) }},
		{Header: "Total", Width: 18, Value: func(i billing.Insurance) interface{} { return export.FormatMoney(i.TotalAmount) }},
		{Header: "Net Amount", Width: 18, Value: func(i billing.Insurance) interface{} { return export.FormatMoney(i.NetAmount) }},
		{Header: "Status", Width: 14, Value: func(i billing.Insurance) interface{} { return string(i.Status) }},
		{Header: "Created Date", Width: 20, Value: func(i billing.Insurance) interface{} { return export.FormatDate(i.CreatedAt) }},
	}
}

// Update modifies an insurance plan's details
func (h *InsuranceHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid insurance ID format")
		return
	}

	var req billingapp.UpdateInsuranceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	insurance, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, insurance)
}

// AddItem adds a covered service line to a plan
func (h *InsuranceHandler) AddItem(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid insurance ID format")
		return
	}

	var req billingapp.LineItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	insurance, err := h.service.AddItem(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, insurance)
}

// UpdateItem modifies a covered service line
func (h *InsuranceHandler) UpdateItem(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid insurance ID format")
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

	insurance, err := h.service.UpdateItem(c.Request.Context(), id, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, insurance)
}

// RemoveItem deletes a covered service line
func (h *InsuranceHandler) RemoveItem(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid insurance ID format")
		return
	}
	itemID, err := pathID(c, "itemId")
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	insurance, err := h.service.RemoveItem(c.Request.Context(), id, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, insurance)
}

// SetDiscount changes the plan-level discount
func (h *InsuranceHandler) SetDiscount(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid insurance ID format")
		return
	}

	var req billingapp.SetDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	insurance, err := h.service.SetDiscount(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, insurance)
}

// Delete removes an insurance plan
func (h *InsuranceHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid insurance ID format")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers insurance endpoints
func (h *InsuranceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	insurances := rg.Group("/billing/insurances")
	insurances.GET("", h.List)
	insurances.GET("/export", h.Export)
	insurances.POST("", h.Create)
	insurances.GET("/:id", h.GetByID)
	insurances.PUT("/:id", h.Update)
	insurances.POST("/:id/items", h.AddItem)
	insurances.PUT("/:id/items/:itemId", h.UpdateItem)
	insurances.DELETE("/:id/items/:itemId", h.RemoveItem)
	insurances.PUT("/:id/discount", h.SetDiscount)
	insurances.DELETE("/:id", h.Delete)
}
