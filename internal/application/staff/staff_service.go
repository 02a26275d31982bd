package staff

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/hms/backend/internal/application/query"
	"github.com/hms/backend/internal/domain/shared"
	"github.com/hms/backend/internal/domain/staff"
)

// ImageRemover deletes stored profile images when a record drops its image
type ImageRemover interface {
	Remove(ctx context.Context, path string) error
}

// StaffService handles rosters for all four staff roles. Each role has its
// own list screen; the role is part of the route, not the payload.
type StaffService struct {
	staffRepo staff.StaffRepository
	images    ImageRemover
}

// NewStaffService creates a new StaffService
func NewStaffService(staffRepo staff.StaffRepository) *StaffService {
	return &StaffService{staffRepo: staffRepo}
}

// SetImageRemover wires the image store for profile image cleanup
func (s *StaffService) SetImageRemover(images ImageRemover) {
	s.images = images
}

// Create hires a new staff member
func (s *StaffService) Create(ctx context.Context, req CreateStaffRequest) (*StaffResponse, error) {
	existing, err := s.staffRepo.FindByEmail(ctx, strings.ToLower(req.Email))
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Staff member with this email already exists")
	}

	member, err := staff.NewStaffMember(staff.Role(req.Role), req.FirstName, req.LastName, req.Email)
	if err != nil {
		return nil, err
	}
	if err := member.Update(req.FirstName, req.LastName, req.Phone, req.Designation, req.Qualification); err != nil {
		return nil, err
	}
	if req.ProfileImage != "" {
		member.SetProfileImage(req.ProfileImage)
	}

	if err := s.staffRepo.Save(ctx, member); err != nil {
		return nil, err
	}
	response := ToStaffResponse(member)
	return &response, nil
}

// GetByID retrieves a staff member by ID
func (s *StaffService) GetByID(ctx context.Context, id uuid.UUID) (*StaffResponse, error) {
	member, err := s.staffRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToStaffResponse(member)
	return &response, nil
}

// List returns one page of staff members of the given role after in-memory
// filtering
func (s *StaffService) List(ctx context.Context, role staff.Role, q query.ListQuery) (*query.Result[StaffResponse], error) {
	records, err := s.staffRepo.FindByRole(ctx, role, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	result := query.Run(records, StaffSource(), q)

	items := make([]StaffResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, ToStaffResponse(&result.Items[i]))
	}
	return &query.Result[StaffResponse]{Items: items, Pagination: result.Pagination}, nil
}

// Filtered returns the full filtered set for exports
func (s *StaffService) Filtered(ctx context.Context, role staff.Role, q query.ListQuery) ([]staff.StaffMember, error) {
	records, err := s.staffRepo.FindByRole(ctx, role, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	return query.Filtered(records, StaffSource(), q), nil
}

// Update updates a staff member
func (s *StaffService) Update(ctx context.Context, id uuid.UUID, req UpdateStaffRequest) (*StaffResponse, error) {
	member, err := s.staffRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := member.Update(req.FirstName, req.LastName, req.Phone, req.Designation, req.Qualification); err != nil {
		return nil, err
	}
	oldImage := member.ProfileImage
	if req.ProfileImage != oldImage {
		member.SetProfileImage(req.ProfileImage)
	}
	if req.Active != nil {
		if *req.Active {
			member.Activate()
		} else {
			member.Deactivate()
		}
	}

	if err := s.staffRepo.Save(ctx, member); err != nil {
		return nil, err
	}
	if s.images != nil && oldImage != "" && oldImage != req.ProfileImage {
		_ = s.images.Remove(ctx, oldImage)
	}

	response := ToStaffResponse(member)
	return &response, nil
}

// Delete removes a staff member and their stored profile image
func (s *StaffService) Delete(ctx context.Context, id uuid.UUID) error {
	member, err := s.staffRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.staffRepo.Delete(ctx, id); err != nil {
		return err
	}
	if s.images != nil && member.ProfileImage != "" {
		_ = s.images.Remove(ctx, member.ProfileImage)
	}
	return nil
}
