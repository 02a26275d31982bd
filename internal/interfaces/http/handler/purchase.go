package handler

import (
	"errors"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hms/backend/internal/application/export"
	pharmacyapp "github.com/hms/backend/internal/application/pharmacy"
	"github.com/hms/backend/internal/domain/pharmacy"
)

// PurchaseHandler handles medicine purchase API endpoints
type PurchaseHandler struct {
	BaseHandler
	service *pharmacyapp.PurchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler
func NewPurchaseHandler(service *pharmacyapp.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{service: service}
}

// Create opens a purchase order
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req pharmacyapp.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	purchase, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, purchase)
}

// GetByID retrieves a purchase by ID
func (h *PurchaseHandler) GetByID(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID format")
		return
	}

	purchase, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, purchase)
}

// List returns a filtered, paginated page of purchases
func (h *PurchaseHandler) List(c *gin.Context) {
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

// Export downloads the filtered purchase list as a spreadsheet
func (h *PurchaseHandler) Export(c *gin.Context) {
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

	data, err := export.Generate("Medicine Purchases", purchaseColumns(), records)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.File(c, export.Filename("Medicine_Purchases", q.Filters(), time.Now()), data)
}

func purchaseColumns() []export.Column[pharmacy.MedicinePurchase] {
	return []export.Column[pharmacy.MedicinePurchase]{
		{Header: "Purchase Number", Width: 22, Value: func(p pharmacy.MedicinePurchase) interface{} { return p.PurchaseNumber }},
		{Header: "Supplier", Width: 30, Value: func(p pharmacy.MedicinePurchase) interface{} { return p.SupplierName }},
		{Header: "Purchase Date", Width: 20, Value: func(p pharmacy.MedicinePurchase) interface{} { return export.FormatDate(p.PurchasedAt) }},
		{Header: "Amount", Width: 18, Value: func(p pharmacy.MedicinePurchase) interface{} { return export.FormatMoney(p.Amount) }},
		{Header: "Tax", Width: 16, Value: func(p pharmacy.MedicinePurchase) interface{} { return export.FormatMoney(p.TaxAmount) }},
		{Header: "Total", Width: 18, Value: func(p pharmacy.MedicinePurchase) interface{} { return export.FormatMoney(p.TotalAmount) }},
		{Header: "Net Amount", Width: 18, Value: func(p pharmacy.MedicinePurchase) interface{} { return export.FormatMoney(p.NetAmount) }},
		{Header: "Status", Width: 14, Value: func(p pharmacy.MedicinePurchase) interface{} { return string(p.Status) }},
	}
}

// Receive marks a purchase as received and restocks its medicines
func (h *PurchaseHandler) Receive(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID format")
		return
	}

	// The receipt timestamp is optional; an empty body means "now"
	var req pharmacyapp.ReceivePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.BindingError(c, err)
		return
	}

	purchase, err := h.service.Receive(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, purchase)
}

// Delete removes a purchase that has not been received
func (h *PurchaseHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID format")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers purchase endpoints
func (h *PurchaseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	purchases := rg.Group("/pharmacy/purchases")
	purchases.GET("", h.List)
	purchases.GET("/export", h.Export)
	purchases.POST("", h.Create)
	purchases.GET("/:id", h.GetByID)
	purchases.POST("/:id/receive", h.Receive)
	purchases.DELETE("/:id", h.Delete)
}
