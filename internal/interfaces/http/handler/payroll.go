package handler

import (
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hms/backend/internal/application/export"
	staffapp "github.com/hms/backend/internal/application/staff"
)

// PayrollHandler handles payroll API endpoints
type PayrollHandler struct {
	BaseHandler
	service *staffapp.PayrollService
}

// NewPayrollHandler creates a new PayrollHandler
func NewPayrollHandler(service *staffapp.PayrollService) *PayrollHandler {
	return &PayrollHandler{service: service}
}

// Create opens a payroll record for a staff member and period
func (h *PayrollHandler) Create(c *gin.Context) {
	var req staffapp.CreatePayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	payroll, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, payroll)
}

// GetByID retrieves a payroll by ID
func (h *PayrollHandler) GetByID(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid payroll ID format")
		return
	}

	payroll, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payroll)
}

// List returns a filtered, paginated page of payrolls
func (h *PayrollHandler) List(c *gin.Context) {
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

// Export downloads the filtered payroll list as a spreadsheet
func (h *PayrollHandler) Export(c *gin.Context) {
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

	data, err := export.Generate("Payrolls", payrollColumns(), records)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.File(c, export.Filename("Payrolls", q.Filters(), time.Now()), data)
}

func payrollColumns() []export.Column[staffapp.PayrollResponse] {
	return []export.Column[staffapp.PayrollResponse]{
		{Header: "Staff", Width: 30, Value: func(p staffapp.PayrollResponse) interface{} { return p.StaffName }},
		{Header: "Period", Width: 14, Value: func(p staffapp.PayrollResponse) interface{} {
			return strconv.Itoa(p.Month) + "/" + strconv.Itoa(p.Year)
		}},
		{Header: "Basic Salary", Width: 18, Value: func(p staffapp.PayrollResponse) interface{} { return export.FormatMoney(p.BasicSalary) }},
		{Header: "Allowance", Width: 18, Value: func(p staffapp.PayrollResponse) interface{} { return export.FormatMoney(p.Allowance) }},
		{Header: "Deduction", Width: 18, Value: func(p staffapp.PayrollResponse) interface{} { return export.FormatMoney(p.Deduction) }},
		{Header: "Net Salary", Width: 18, Value: func(p staffapp.PayrollResponse) interface{} { return export.FormatMoney(p.NetSalary) }},
		{Header: "Status", Width: 14, Value: func(p staffapp.PayrollResponse) interface{} { return p.Status }},
	}
}

// Update modifies an unpaid payroll's amounts
func (h *PayrollHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid payroll ID format")
		return
	}

	var req staffapp.UpdatePayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	payroll, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payroll)
}

// Pay settles a payroll
func (h *PayrollHandler) Pay(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid payroll ID format")
		return
	}

	// The payment timestamp is optional; an empty body means "now"
	var req staffapp.PayPayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.BindingError(c, err)
		return
	}

	payroll, err := h.service.Pay(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payroll)
}

// Delete removes a payroll record
func (h *PayrollHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid payroll ID format")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers payroll endpoints
func (h *PayrollHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payrolls := rg.Group("/payrolls")
	payrolls.GET("", h.List)
	payrolls.GET("/export", h.Export)
	payrolls.POST("", h.Create)
	payrolls.GET("/:id", h.GetByID)
	payrolls.PUT("/:id", h.Update)
	payrolls.POST("/:id/pay", h.Pay)
	payrolls.DELETE("/:id", h.Delete)
}
