package patient

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hms/backend/internal/application/query"
	"github.com/hms/backend/internal/domain/facility"
	"github.com/hms/backend/internal/domain/patient"
	"github.com/hms/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPatientRepository is a mock implementation of PatientRepository
type MockPatientRepository struct {
	mock.Mock
}

func (m *MockPatientRepository) FindByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*patient.Patient), args.Error(1)
}

func (m *MockPatientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]patient.Patient, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]patient.Patient), args.Error(1)
}

func (m *MockPatientRepository) FindByEmail(ctx context.Context, email string) (*patient.Patient, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*patient.Patient), args.Error(1)
}

func (m *MockPatientRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]patient.Patient, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]patient.Patient), args.Error(1)
}

func (m *MockPatientRepository) Save(ctx context.Context, entity *patient.Patient) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockPatientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPatientRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockAdmissionRepository is a mock implementation of AdmissionRepository
type MockAdmissionRepository struct {
	mock.Mock
}

func (m *MockAdmissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*patient.Admission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*patient.Admission), args.Error(1)
}

func (m *MockAdmissionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]patient.Admission, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]patient.Admission), args.Error(1)
}

func (m *MockAdmissionRepository) FindByKind(ctx context.Context, kind patient.AdmissionKind, filter shared.Filter) ([]patient.Admission, error) {
	args := m.Called(ctx, kind, filter)
	return args.Get(0).([]patient.Admission), args.Error(1)
}

func (m *MockAdmissionRepository) CountAdmittedSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAdmissionRepository) Save(ctx context.Context, entity *patient.Admission) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockAdmissionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAdmissionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockBedRepository is a mock implementation of facility.BedRepository
type MockBedRepository struct {
	mock.Mock
}

func (m *MockBedRepository) FindByID(ctx context.Context, id uuid.UUID) (*facility.Bed, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*facility.Bed), args.Error(1)
}

func (m *MockBedRepository) FindAll(ctx context.Context, filter shared.Filter) ([]facility.Bed, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]facility.Bed), args.Error(1)
}

func (m *MockBedRepository) Save(ctx context.Context, entity *facility.Bed) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockBedRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBedRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBedRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	args := m.Called(ctx, number)
	return args.Bool(0), args.Error(1)
}

func (m *MockBedRepository) CountAvailable(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func newTestPatient(t *testing.T) *patient.Patient {
	t.Helper()
	p, err := patient.NewPatient("John", "Doe", "john@example.com")
	require.NoError(t, err)
	return p
}

func newTestBed(t *testing.T) *facility.Bed {
	t.Helper()
	bed, err := facility.NewBed("B-101", uuid.New(), decimal.NewFromInt(150))
	require.NoError(t, err)
	return bed
}

func TestAdmissionService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("IPD admission occupies the bed", func(t *testing.T) {
		admissionRepo := new(MockAdmissionRepository)
		patientRepo := new(MockPatientRepository)
		bedRepo := new(MockBedRepository)
		service := NewAdmissionService(admissionRepo, patientRepo, bedRepo)

		p := newTestPatient(t)
		bed := newTestBed(t)

		patientRepo.On("FindByID", ctx, p.ID).Return(p, nil)
		bedRepo.On("FindByID", ctx, bed.ID).Return(bed, nil)
		bedRepo.On("Save", ctx, bed).Return(nil)
		admissionRepo.On("Save", ctx, mock.AnythingOfType("*patient.Admission")).Return(nil)

		resp, err := service.Create(ctx, CreateAdmissionRequest{
			PatientID:  p.ID,
			Kind:       "IPD",
			DoctorName: "Dr. Rivera",
			BedID:      &bed.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, "John Doe", resp.PatientName)
		assert.Equal(t, "admitted", resp.Status)
		assert.False(t, bed.Available, "bed is now occupied")
	})

	t.Run("occupied bed is rejected", func(t *testing.T) {
		admissionRepo := new(MockAdmissionRepository)
		patientRepo := new(MockPatientRepository)
		bedRepo := new(MockBedRepository)
		service := NewAdmissionService(admissionRepo, patientRepo, bedRepo)

		p := newTestPatient(t)
		bed := newTestBed(t)
		require.NoError(t, bed.Occupy())

		patientRepo.On("FindByID", ctx, p.ID).Return(p, nil)
		bedRepo.On("FindByID", ctx, bed.ID).Return(bed, nil)

		_, err := service.Create(ctx, CreateAdmissionRequest{
			PatientID:  p.ID,
			Kind:       "IPD",
			DoctorName: "Dr. Rivera",
			BedID:      &bed.ID,
		})
		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "BED_OCCUPIED", domainErr.Code)
		admissionRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("OPD admission needs no bed", func(t *testing.T) {
		admissionRepo := new(MockAdmissionRepository)
		patientRepo := new(MockPatientRepository)
		bedRepo := new(MockBedRepository)
		service := NewAdmissionService(admissionRepo, patientRepo, bedRepo)

		p := newTestPatient(t)
		patientRepo.On("FindByID", ctx, p.ID).Return(p, nil)
		admissionRepo.On("Save", ctx, mock.AnythingOfType("*patient.Admission")).Return(nil)

		resp, err := service.Create(ctx, CreateAdmissionRequest{
			PatientID:  p.ID,
			Kind:       "OPD",
			DoctorName: "Dr. Rivera",
		})
		require.NoError(t, err)
		assert.Nil(t, resp.BedID)
		bedRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}

func TestAdmissionService_Discharge(t *testing.T) {
	ctx := context.Background()
	admissionRepo := new(MockAdmissionRepository)
	patientRepo := new(MockPatientRepository)
	bedRepo := new(MockBedRepository)
	service := NewAdmissionService(admissionRepo, patientRepo, bedRepo)

	p := newTestPatient(t)
	bed := newTestBed(t)
	require.NoError(t, bed.Occupy())

	admission, err := patient.NewAdmission(p.ID, patient.AdmissionIPD, "Dr. Rivera", &bed.ID, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)

	admissionRepo.On("FindByID", ctx, admission.ID).Return(admission, nil)
	bedRepo.On("FindByID", ctx, bed.ID).Return(bed, nil)
	bedRepo.On("Save", ctx, bed).Return(nil)
	admissionRepo.On("Save", ctx, admission).Return(nil)
	patientRepo.On("FindByID", ctx, p.ID).Return(p, nil)

	resp, err := service.Discharge(ctx, admission.ID, DischargeRequest{})
	require.NoError(t, err)
	assert.Equal(t, "discharged", resp.Status)
	assert.NotNil(t, resp.DischargedAt)
	assert.True(t, bed.Available, "bed released on discharge")
}

func TestAdmissionService_ListFiltersByDay(t *testing.T) {
	ctx := context.Background()
	admissionRepo := new(MockAdmissionRepository)
	patientRepo := new(MockPatientRepository)
	bedRepo := new(MockBedRepository)
	service := NewAdmissionService(admissionRepo, patientRepo, bedRepo)

	p := newTestPatient(t)
	day := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)

	var records []patient.Admission
	for _, at := range []time.Time{day, day.Add(4 * time.Hour), day.AddDate(0, 0, 1)} {
		a, err := patient.NewAdmission(p.ID, patient.AdmissionOPD, "Dr. Rivera", nil, at)
		require.NoError(t, err)
		records = append(records, *a)
	}

	admissionRepo.On("FindByKind", ctx, patient.AdmissionOPD, mock.AnythingOfType("shared.Filter")).Return(records, nil)
	patientRepo.On("FindByID", ctx, p.ID).Return(p, nil)

	start := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	result, err := service.List(ctx, patient.AdmissionOPD, query.ListQuery{DateStart: &start})
	require.NoError(t, err)
	assert.Len(t, result.Items, 2, "start without end selects that single day")
}
