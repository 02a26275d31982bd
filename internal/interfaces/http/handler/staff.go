package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hms/backend/internal/application/export"
	staffapp "github.com/hms/backend/internal/application/staff"
	"github.com/hms/backend/internal/domain/staff"
)

// StaffHandler handles staff API endpoints. Nurses, pharmacists,
// receptionists and case handlers share one record shape; the role in the
// path selects the screen.
type StaffHandler struct {
	BaseHandler
	service *staffapp.StaffService
}

// NewStaffHandler creates a new StaffHandler
func NewStaffHandler(service *staffapp.StaffService) *StaffHandler {
	return &StaffHandler{service: service}
}

func staffRole(c *gin.Context) (staff.Role, bool) {
	role := staff.Role(c.Param("role"))
	return role, role.IsValid()
}

// Create hires a new staff member
func (h *StaffHandler) Create(c *gin.Context) {
	var req staffapp.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	member, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, member)
}

// GetByID retrieves a staff member by ID
func (h *StaffHandler) GetByID(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid staff ID format")
		return
	}

	member, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, member)
}

// List returns a filtered, paginated page of staff members of one role
func (h *StaffHandler) List(c *gin.Context) {
	role, ok := staffRole(c)
	if !ok {
		h.BadRequest(c, "Unknown staff role")
		return
	}

	q, err := bindListQuery(c)
	if err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.service.List(c.Request.Context(), role, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Paginated(c, result.Items, result.Pagination)
}

// Export downloads the filtered staff list of one role as a spreadsheet
func (h *StaffHandler) Export(c *gin.Context) {
	role, ok := staffRole(c)
	if !ok {
		h.BadRequest(c, "Unknown staff role")
		return
	}

	q, err := bindListQuery(c)
	if err != nil {
		h.BindingError(c, err)
		return
	}

	records, err := h.service.Filtered(c.Request.Context(), role, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	entity := exportEntityForRole(role)
	data, err := export.Generate(entity, staffColumns(), records)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.File(c, export.Filename(entity, q.Filters(), time.Now()), data)
}

func exportEntityForRole(role staff.Role) string {
	switch role {
	case staff.RoleNurse:
		return "Nurses"
	case staff.RolePharmacist:
		return "Pharmacists"
	case staff.RoleReceptionist:
		return "Receptionists"
	case staff.RoleCaseHandler:
		return "Case_Handlers"
	}
	return "Staff"
}

func staffColumns() []export.Column[staff.StaffMember] {
	return []export.Column[staff.StaffMember]{
		{Header: "Name", Width: 30, Value: func(s staff.StaffMember) interface{} { return s.FullName() }},
		{Header: "Email", Width: 30, Value: func(s staff.StaffMember) interface{} { return s.Email }},
		{Header: "Phone", Width: 18, Value: func(s staff.StaffMember) interface{} { return s.Phone }},
		{Header: "Designation", Width: 24, Value: func(s staff.StaffMember) interface{} { return s.Designation }},
		{Header: "Qualification", Width: 30, Value: func(s staff.StaffMember) interface{} { return s.Qualification }},
		{Header: "Status", Width: 14, Value: func(s staff.StaffMember) interface{} { return string(s.Status) }},
		{Header: "Joined Date", Width: 20, Value: func(s staff.StaffMember) interface{} { return export.FormatDate(s.CreatedAt) }},
	}
}

// Update modifies a staff member
func (h *StaffHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid staff ID format")
		return
	}

	var req staffapp.UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	member, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, member)
}

// Delete removes a staff member
func (h *StaffHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid staff ID format")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers staff endpoints
func (h *StaffHandler) RegisterRoutes(rg *gin.RouterGroup) {
	staffGroup := rg.Group("/staff")
	staffGroup.POST("", h.Create)
	staffGroup.GET("/role/:role", h.List)
	staffGroup.GET("/role/:role/export", h.Export)
	staffGroup.GET("/:id", h.GetByID)
	staffGroup.PUT("/:id", h.Update)
	staffGroup.DELETE("/:id", h.Delete)
}
