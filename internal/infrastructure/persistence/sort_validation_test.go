package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string returns DESC", "", "DESC"},
		{"ASC uppercase returns ASC", "ASC", "ASC"},
		{"asc lowercase returns ASC", "asc", "ASC"},
		{"DESC uppercase returns DESC", "DESC", "DESC"},
		{"invalid value returns DESC", "INVALID", "DESC"},
		{"sql injection attempt returns DESC", "ASC; DROP TABLE patients;--", "DESC"},
		{"whitespace only returns DESC", "   ", "DESC"},
		{"whitespace around ASC returns ASC", "  asc  ", "ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortOrder(tt.input))
		})
	}
}

func TestValidateSortField(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		allowed      map[string]bool
		defaultField string
		expected     string
	}{
		{"empty string returns default", "", BedSortFields, "created_at", "created_at"},
		{"valid field returns field", "number", BedSortFields, "created_at", "number"},
		{"charge column is sortable", "charge_per_day", BedSortFields, "created_at", "charge_per_day"},
		{"invalid field returns default", "ward_name", BedSortFields, "created_at", "created_at"},
		{"sql injection attempt returns default", "number; DROP TABLE beds;--", BedSortFields, "created_at", "created_at"},
		{"case sensitive - uppercase invalid", "NUMBER", BedSortFields, "created_at", "created_at"},
		{"whitespace only returns default", "   ", BedSortFields, "created_at", "created_at"},
		{"whitespace around valid field returns field", "  number  ", BedSortFields, "created_at", "number"},
		{"field with spaces injection returns default", "number beds", BedSortFields, "created_at", "created_at"},
		{"patient email is sortable", "email", PatientSortFields, "created_at", "email"},
		{"payroll month is sortable", "month", PayrollSortFields, "created_at", "month"},
		{"empty default with invalid field", "invalid", BedSortFields, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortField(tt.input, tt.allowed, tt.defaultField))
		})
	}
}

func TestSortFieldsWhitelists(t *testing.T) {
	whitelists := map[string]map[string]bool{
		"PatientSortFields":           PatientSortFields,
		"AdmissionSortFields":         AdmissionSortFields,
		"BedSortFields":               BedSortFields,
		"BedTypeSortFields":           BedTypeSortFields,
		"StaffSortFields":             StaffSortFields,
		"PayrollSortFields":           PayrollSortFields,
		"MedicineSortFields":          MedicineSortFields,
		"PurchaseSortFields":          PurchaseSortFields,
		"InsuranceSortFields":         InsuranceSortFields,
		"PackageSortFields":           PackageSortFields,
		"PathologyCategorySortFields": PathologyCategorySortFields,
		"PrescriptionSortFields":      PrescriptionSortFields,
		"ReportSortFields":            ReportSortFields,
	}

	commonFields := []string{"id", "created_at", "updated_at"}

	for name, whitelist := range whitelists {
		t.Run(name+" contains common fields", func(t *testing.T) {
			for _, field := range commonFields {
				assert.True(t, whitelist[field], "%s should contain '%s'", name, field)
			}
		})

		t.Run(name+" is not empty", func(t *testing.T) {
			assert.Greater(t, len(whitelist), 3, "%s should have more than 3 fields", name)
		})
	}
}

func TestSQLInjectionPrevention(t *testing.T) {
	injectionPayloads := []string{
		"email; DROP TABLE patients;--",
		"email' OR '1'='1",
		"email\"; DROP TABLE patients;--",
		"email UNION SELECT * FROM staff_members",
		"email ORDER BY 1",
		"email, (SELECT email FROM staff_members)",
		"CASE WHEN 1=1 THEN email ELSE id END",
		"email/**/;DROP TABLE patients",
		"email\n; DROP TABLE patients",
		"' OR ''='",
	}

	for _, payload := range injectionPayloads {
		label := payload
		if len(label) > 30 {
			label = label[:30]
		}

		t.Run("field: "+label, func(t *testing.T) {
			assert.Equal(t, "created_at", ValidateSortField(payload, PatientSortFields, "created_at"),
				"injection payload should be rejected: %s", payload)
		})

		t.Run("order: "+label, func(t *testing.T) {
			assert.Equal(t, "DESC", ValidateSortOrder(payload),
				"injection payload should be rejected: %s", payload)
		})
	}
}
