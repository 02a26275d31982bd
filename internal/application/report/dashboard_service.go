// Package report composes the dashboard summary from the other contexts.
package report

import (
	"context"
	"sync"
	"time"

	"github.com/hms/backend/internal/domain/facility"
	"github.com/hms/backend/internal/domain/patient"
	"github.com/hms/backend/internal/domain/pharmacy"
	"github.com/hms/backend/internal/domain/shared"
	"github.com/hms/backend/internal/domain/staff"
)

// DashboardSummary is the home screen's headline counts
type DashboardSummary struct {
	TotalPatients       int64 `json:"total_patients"`
	AvailableBeds       int64 `json:"available_beds"`
	TodaysAdmissions    int64 `json:"todays_admissions"`
	TotalMedicines      int64 `json:"total_medicines"`
	OutOfStockMedicines int64 `json:"out_of_stock_medicines"`
	TotalNurses         int64 `json:"total_nurses"`
	TotalPharmacists    int64 `json:"total_pharmacists"`
}

// DashboardService gathers the summary counts. Each count is independent,
// so they are fetched concurrently; the first error wins.
type DashboardService struct {
	patientRepo   patient.PatientRepository
	admissionRepo patient.AdmissionRepository
	bedRepo       facility.BedRepository
	medicineRepo  pharmacy.MedicineRepository
	staffRepo     staff.StaffRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	patientRepo patient.PatientRepository,
	admissionRepo patient.AdmissionRepository,
	bedRepo facility.BedRepository,
	medicineRepo pharmacy.MedicineRepository,
	staffRepo staff.StaffRepository,
) *DashboardService {
	return &DashboardService{
		patientRepo:   patientRepo,
		admissionRepo: admissionRepo,
		bedRepo:       bedRepo,
		medicineRepo:  medicineRepo,
		staffRepo:     staffRepo,
	}
}

// Summary fetches all dashboard counts concurrently
func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	summary := &DashboardSummary{}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	fetch := func(target *int64, load func(context.Context) (int64, error)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := load(ctx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			*target = n
		}()
	}

	fetch(&summary.TotalPatients, func(ctx context.Context) (int64, error) {
		return s.patientRepo.Count(ctx, shared.DefaultFilter())
	})
	fetch(&summary.AvailableBeds, func(ctx context.Context) (int64, error) {
		return s.bedRepo.CountAvailable(ctx)
	})
	fetch(&summary.TodaysAdmissions, func(ctx context.Context) (int64, error) {
		return s.admissionRepo.CountAdmittedSince(ctx, startOfDay)
	})
	fetch(&summary.TotalMedicines, func(ctx context.Context) (int64, error) {
		return s.medicineRepo.Count(ctx, shared.DefaultFilter())
	})
	fetch(&summary.OutOfStockMedicines, func(ctx context.Context) (int64, error) {
		return s.medicineRepo.CountOutOfStock(ctx)
	})
	fetch(&summary.TotalNurses, func(ctx context.Context) (int64, error) {
		return s.staffRepo.CountByRole(ctx, staff.RoleNurse)
	})
	fetch(&summary.TotalPharmacists, func(ctx context.Context) (int64, error) {
		return s.staffRepo.CountByRole(ctx, staff.RolePharmacist)
	})

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return summary, nil
}
