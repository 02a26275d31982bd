package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hms/backend/internal/application/export"
	pharmacyapp "github.com/hms/backend/internal/application/pharmacy"
	"github.com/hms/backend/internal/domain/pharmacy"
)

// MedicineHandler handles medicine API endpoints
type MedicineHandler struct {
	BaseHandler
	service *pharmacyapp.MedicineService
}

// NewMedicineHandler creates a new MedicineHandler
func NewMedicineHandler(service *pharmacyapp.MedicineService) *MedicineHandler {
	return &MedicineHandler{service: service}
}

// Create adds a new medicine
func (h *MedicineHandler) Create(c *gin.Context) {
	var req pharmacyapp.CreateMedicineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	medicine, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, medicine)
}

// GetByID retrieves a medicine by ID
func (h *MedicineHandler) GetByID(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid medicine ID format")
		return
	}

	medicine, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, medicine)
}

// List returns a filtered, paginated page of medicines
func (h *MedicineHandler) List(c *gin.Context) {
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

// Export downloads the filtered medicine list as a spreadsheet
func (h *MedicineHandler) Export(c *gin.Context) {
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

	data, err := export.Generate("Medicines", medicineColumns(), records)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.File(c, export.Filename("Medicines", q.Filters(), time.Now()), data)
}

func medicineColumns() []export.Column[pharmacy.Medicine] {
	return []export.Column[pharmacy.Medicine]{
		{Header: "Name", Width: 30, Value: func(m pharmacy.Medicine) interface{} { return m.Name }},
		{Header: "Brand", Width: 24, Value: func(m pharmacy.Medicine) interface{} { return m.Brand }},
		{Header: "Category", Width: 20, Value: func(m pharmacy.Medicine) interface{} { return m.Category }},
		{Header: "Selling Price", Width: 18, Value: func(m pharmacy.Medicine) interface{} { return export.FormatMoney(m.SellingPrice) }},
		{Header: "Stock", Width: 12, Value: func(m pharmacy.Medicine) interface{} { return m.StockQty }},
		{Header: "Expiry Date", Width: 20, Value: func(m pharmacy.Medicine) interface{} {
			if m.ExpiryDate == nil {
				return ""
			}
			return export.FormatDate(*m.ExpiryDate)
		}},
		{Header: "Status", Width: 16, Value: func(m pharmacy.Medicine) interface{} { return string(m.Status()) }},
	}
}

// Update modifies a medicine
func (h *MedicineHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid medicine ID format")
		return
	}

	var req pharmacyapp.UpdateMedicineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	medicine, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, medicine)
}

// AdjustStock applies a manual stock correction
func (h *MedicineHandler) AdjustStock(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid medicine ID format")
		return
	}

	var req pharmacyapp.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	medicine, err := h.service.AdjustStock(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, medicine)
}

// Delete removes a medicine
func (h *MedicineHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid medicine ID format")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers medicine endpoints
func (h *MedicineHandler) RegisterRoutes(rg *gin.RouterGroup) {
	medicines := rg.Group("/pharmacy/medicines")
	medicines.GET("", h.List)
	medicines.GET("/export", h.Export)
	medicines.POST("", h.Create)
	medicines.GET("/:id", h.GetByID)
	medicines.PUT("/:id", h.Update)
	medicines.POST("/:id/adjust-stock", h.AdjustStock)
	medicines.DELETE("/:id", h.Delete)
}
