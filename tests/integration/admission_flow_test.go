package integration

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	facilityapp "github.com/hms/backend/internal/application/facility"
	patientapp "github.com/hms/backend/internal/application/patient"
	"github.com/hms/backend/internal/application/query"
	"github.com/hms/backend/internal/domain/patient"
	"github.com/hms/backend/internal/infrastructure/persistence"
)

// Admitting a patient to a bed must mark it occupied; discharging must
// release it. Both sides go through the real database so the foreign keys
// and status columns are exercised.
func TestAdmissionFlow_BedOccupancy(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	ctx := context.Background()

	bedTypeRepo := persistence.NewGormBedTypeRepository(tdb.DB)
	bedRepo := persistence.NewGormBedRepository(tdb.DB)
	patientRepo := persistence.NewGormPatientRepository(tdb.DB)
	admissionRepo := persistence.NewGormAdmissionRepository(tdb.DB)

	bedTypeService := facilityapp.NewBedTypeService(bedTypeRepo, bedRepo)
	bedService := facilityapp.NewBedService(bedRepo, bedTypeRepo)
	patientService := patientapp.NewPatientService(patientRepo)
	admissionService := patientapp.NewAdmissionService(admissionRepo, patientRepo, bedRepo)

	bedType, err := bedTypeService.Create(ctx, facilityapp.CreateBedTypeRequest{Name: "General Ward"})
	require.NoError(t, err)

	bed, err := bedService.Create(ctx, facilityapp.CreateBedRequest{
		Number:       "GW-101",
		BedTypeID:    bedType.ID,
		ChargePerDay: decimal.NewFromInt(1500),
	})
	require.NoError(t, err)
	assert.Equal(t, "available", bed.Status)

	registered, err := patientService.Create(ctx, patientapp.CreatePatientRequest{
		FirstName: "Karim",
		Email:     "karim@example.com",
	})
	require.NoError(t, err)

	admission, err := admissionService.Create(ctx, patientapp.CreateAdmissionRequest{
		PatientID:  registered.ID,
		Kind:       "IPD",
		DoctorName: "Dr. Hasan",
		BedID:      &bed.ID,
		Symptoms:   "fever",
	})
	require.NoError(t, err)
	assert.Equal(t, "admitted", admission.Status)
	assert.Equal(t, "Karim", admission.PatientName)

	occupied, err := bedService.GetByID(ctx, bed.ID)
	require.NoError(t, err)
	assert.Equal(t, "occupied", occupied.Status)

	// A second admission cannot take the same bed
	_, err = admissionService.Create(ctx, patientapp.CreateAdmissionRequest{
		PatientID:  registered.ID,
		Kind:       "IPD",
		DoctorName: "Dr. Hasan",
		BedID:      &bed.ID,
	})
	require.Error(t, err)

	discharged, err := admissionService.Discharge(ctx, admission.ID, patientapp.DischargeRequest{})
	require.NoError(t, err)
	assert.Equal(t, "discharged", discharged.Status)
	require.NotNil(t, discharged.DischargedAt)

	released, err := bedService.GetByID(ctx, bed.ID)
	require.NoError(t, err)
	assert.Equal(t, "available", released.Status)

	// The IPD list sees the admission; the OPD list does not
	ipd, err := admissionService.List(ctx, patient.AdmissionIPD, query.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, ipd.Pagination.TotalItems)

	opd, err := admissionService.List(ctx, patient.AdmissionOPD, query.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 0, opd.Pagination.TotalItems)
}
