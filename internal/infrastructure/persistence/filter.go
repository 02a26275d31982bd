package persistence

import (
	"gorm.io/gorm"

	"github.com/hms/backend/internal/domain/shared"
)

// applyFilter applies field filters and ordering to a query. The sort column
// is validated against the entity's whitelist before it reaches the SQL.
func applyFilter(query *gorm.DB, filter shared.Filter, allowedSortFields map[string]bool) *gorm.DB {
	query = applyFieldFilters(query, filter)

	orderBy := ValidateSortField(filter.OrderBy, allowedSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFieldFilters applies the coarse equality filters carried by the filter.
// Keys map directly to column names; repositories only put trusted keys here.
func applyFieldFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "bed_type_id", "patient_id", "staff_id", "category_id", "status", "kind", "role":
			query = query.Where(key+" = ?", value)
		}
	}
	return query
}
