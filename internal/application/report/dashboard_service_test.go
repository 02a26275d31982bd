package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hms/backend/internal/domain/facility"
	"github.com/hms/backend/internal/domain/patient"
	"github.com/hms/backend/internal/domain/pharmacy"
	"github.com/hms/backend/internal/domain/shared"
	"github.com/hms/backend/internal/domain/staff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPatientRepo struct{ mock.Mock }

func (m *mockPatientRepo) FindByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*patient.Patient), args.Error(1)
}
func (m *mockPatientRepo) FindAll(ctx context.Context, filter shared.Filter) ([]patient.Patient, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]patient.Patient), args.Error(1)
}
func (m *mockPatientRepo) FindByEmail(ctx context.Context, email string) (*patient.Patient, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*patient.Patient), args.Error(1)
}
func (m *mockPatientRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]patient.Patient, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]patient.Patient), args.Error(1)
}
func (m *mockPatientRepo) Save(ctx context.Context, entity *patient.Patient) error {
	return m.Called(ctx, entity).Error(0)
}
func (m *mockPatientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockPatientRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

type mockAdmissionRepo struct{ mock.Mock }

func (m *mockAdmissionRepo) FindByID(ctx context.Context, id uuid.UUID) (*patient.Admission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*patient.Admission), args.Error(1)
}
func (m *mockAdmissionRepo) FindAll(ctx context.Context, filter shared.Filter) ([]patient.Admission, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]patient.Admission), args.Error(1)
}
func (m *mockAdmissionRepo) FindByKind(ctx context.Context, kind patient.AdmissionKind, filter shared.Filter) ([]patient.Admission, error) {
	args := m.Called(ctx, kind, filter)
	return args.Get(0).([]patient.Admission), args.Error(1)
}
func (m *mockAdmissionRepo) CountAdmittedSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}
func (m *mockAdmissionRepo) Save(ctx context.Context, entity *patient.Admission) error {
	return m.Called(ctx, entity).Error(0)
}
func (m *mockAdmissionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockAdmissionRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

type mockBedRepo struct{ mock.Mock }

func (m *mockBedRepo) FindByID(ctx context.Context, id uuid.UUID) (*facility.Bed, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*facility.Bed), args.Error(1)
}
func (m *mockBedRepo) FindAll(ctx context.Context, filter shared.Filter) ([]facility.Bed, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]facility.Bed), args.Error(1)
}
func (m *mockBedRepo) Save(ctx context.Context, entity *facility.Bed) error {
	return m.Called(ctx, entity).Error(0)
}
func (m *mockBedRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockBedRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}
func (m *mockBedRepo) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	args := m.Called(ctx, number)
	return args.Bool(0), args.Error(1)
}
func (m *mockBedRepo) CountAvailable(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockMedicineRepo struct{ mock.Mock }

func (m *mockMedicineRepo) FindByID(ctx context.Context, id uuid.UUID) (*pharmacy.Medicine, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pharmacy.Medicine), args.Error(1)
}
func (m *mockMedicineRepo) FindAll(ctx context.Context, filter shared.Filter) ([]pharmacy.Medicine, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]pharmacy.Medicine), args.Error(1)
}
func (m *mockMedicineRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]pharmacy.Medicine, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]pharmacy.Medicine), args.Error(1)
}
func (m *mockMedicineRepo) Save(ctx context.Context, entity *pharmacy.Medicine) error {
	return m.Called(ctx, entity).Error(0)
}
func (m *mockMedicineRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockMedicineRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}
func (m *mockMedicineRepo) CountOutOfStock(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockStaffRepo struct{ mock.Mock }

func (m *mockStaffRepo) FindByID(ctx context.Context, id uuid.UUID) (*staff.StaffMember, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*staff.StaffMember), args.Error(1)
}
func (m *mockStaffRepo) FindAll(ctx context.Context, filter shared.Filter) ([]staff.StaffMember, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]staff.StaffMember), args.Error(1)
}
func (m *mockStaffRepo) FindByRole(ctx context.Context, role staff.Role, filter shared.Filter) ([]staff.StaffMember, error) {
	args := m.Called(ctx, role, filter)
	return args.Get(0).([]staff.StaffMember), args.Error(1)
}
func (m *mockStaffRepo) FindByEmail(ctx context.Context, email string) (*staff.StaffMember, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*staff.StaffMember), args.Error(1)
}
func (m *mockStaffRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]staff.StaffMember, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]staff.StaffMember), args.Error(1)
}
func (m *mockStaffRepo) Save(ctx context.Context, entity *staff.StaffMember) error {
	return m.Called(ctx, entity).Error(0)
}
func (m *mockStaffRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockStaffRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}
func (m *mockStaffRepo) CountByRole(ctx context.Context, role staff.Role) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}

func TestDashboardService_Summary(t *testing.T) {
	ctx := context.Background()
	patientRepo := new(mockPatientRepo)
	admissionRepo := new(mockAdmissionRepo)
	bedRepo := new(mockBedRepo)
	medicineRepo := new(mockMedicineRepo)
	staffRepo := new(mockStaffRepo)

	patientRepo.On("Count", ctx, mock.AnythingOfType("shared.Filter")).Return(int64(120), nil)
	bedRepo.On("CountAvailable", ctx).Return(int64(14), nil)
	admissionRepo.On("CountAdmittedSince", ctx, mock.AnythingOfType("time.Time")).Return(int64(7), nil)
	medicineRepo.On("Count", ctx, mock.AnythingOfType("shared.Filter")).Return(int64(230), nil)
	medicineRepo.On("CountOutOfStock", ctx).Return(int64(3), nil)
	staffRepo.On("CountByRole", ctx, staff.RoleNurse).Return(int64(25), nil)
	staffRepo.On("CountByRole", ctx, staff.RolePharmacist).Return(int64(4), nil)

	service := NewDashboardService(patientRepo, admissionRepo, bedRepo, medicineRepo, staffRepo)
	summary, err := service.Summary(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(120), summary.TotalPatients)
	assert.Equal(t, int64(14), summary.AvailableBeds)
	assert.Equal(t, int64(7), summary.TodaysAdmissions)
	assert.Equal(t, int64(230), summary.TotalMedicines)
	assert.Equal(t, int64(3), summary.OutOfStockMedicines)
	assert.Equal(t, int64(25), summary.TotalNurses)
	assert.Equal(t, int64(4), summary.TotalPharmacists)
}

func TestDashboardService_SummaryPropagatesError(t *testing.T) {
	ctx := context.Background()
	patientRepo := new(mockPatientRepo)
	admissionRepo := new(mockAdmissionRepo)
	bedRepo := new(mockBedRepo)
	medicineRepo := new(mockMedicineRepo)
	staffRepo := new(mockStaffRepo)

	patientRepo.On("Count", ctx, mock.AnythingOfType("shared.Filter")).Return(int64(0), shared.ErrNotFound)
	bedRepo.On("CountAvailable", ctx).Return(int64(14), nil)
	admissionRepo.On("CountAdmittedSince", ctx, mock.AnythingOfType("time.Time")).Return(int64(7), nil)
	medicineRepo.On("Count", ctx, mock.AnythingOfType("shared.Filter")).Return(int64(230), nil)
	medicineRepo.On("CountOutOfStock", ctx).Return(int64(3), nil)
	staffRepo.On("CountByRole", ctx, staff.RoleNurse).Return(int64(25), nil)
	staffRepo.On("CountByRole", ctx, staff.RolePharmacist).Return(int64(4), nil)

	service := NewDashboardService(patientRepo, admissionRepo, bedRepo, medicineRepo, staffRepo)
	_, err := service.Summary(ctx)
	assert.Error(t, err)
}
