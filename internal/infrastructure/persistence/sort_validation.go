package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// PatientSortFields contains allowed sort fields for patients
var PatientSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"first_name":  true,
	"last_name":   true,
	"email":       true,
	"phone":       true,
	"blood_group": true,
	"gender":      true,
}

// AdmissionSortFields contains allowed sort fields for admissions
var AdmissionSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"kind":          true,
	"doctor_name":   true,
	"admitted_at":   true,
	"discharged_at": true,
	"status":        true,
}

// BedSortFields contains allowed sort fields for beds
var BedSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"number":         true,
	"bed_type_id":    true,
	"charge_per_day": true,
	"available":      true,
}

// BedTypeSortFields contains allowed sort fields for bed types
var BedTypeSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
}

// StaffSortFields contains allowed sort fields for staff members
var StaffSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"first_name": true,
	"last_name":  true,
	"email":      true,
	"role":       true,
	"active":     true,
}

// PayrollSortFields contains allowed sort fields for payrolls
var PayrollSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"staff_id":     true,
	"month":        true,
	"year":         true,
	"basic_salary": true,
	"net_salary":   true,
	"status":       true,
	"paid_at":      true,
}

// MedicineSortFields contains allowed sort fields for medicines
var MedicineSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"name":          true,
	"brand":         true,
	"category":      true,
	"selling_price": true,
	"stock_qty":     true,
	"expiry_date":   true,
}

// PurchaseSortFields contains allowed sort fields for medicine purchases
var PurchaseSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"purchase_number": true,
	"supplier_name":   true,
	"purchased_at":    true,
	"status":          true,
	"total_amount":    true,
	"net_amount":      true,
}

// InsuranceSortFields contains allowed sort fields for insurances
var InsuranceSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"name":         true,
	"provider":     true,
	"status":       true,
	"total_amount": true,
	"net_amount":   true,
}

// PackageSortFields contains allowed sort fields for treatment packages
var PackageSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"name":         true,
	"total_amount": true,
	"net_amount":   true,
}

// PathologyCategorySortFields contains allowed sort fields for pathology categories
var PathologyCategorySortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
}

// PrescriptionSortFields contains allowed sort fields for prescriptions
var PrescriptionSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"patient_id":  true,
	"doctor_name": true,
}

// ReportSortFields contains allowed sort fields for investigation reports
var ReportSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"patient_id":  true,
	"category_id": true,
	"status":      true,
}
