package clinical

import (
	"context"

	"github.com/google/uuid"
	"github.com/hms/backend/internal/application/query"
	"github.com/hms/backend/internal/domain/clinical"
	"github.com/hms/backend/internal/domain/shared"
)

// CategoryService handles pathology categories
type CategoryService struct {
	categoryRepo clinical.PathologyCategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo clinical.PathologyCategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// Create creates a pathology category
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	exists, err := s.categoryRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Category with this name already exists")
	}

	category, err := clinical.NewPathologyCategory(req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	response := ToCategoryResponse(category)
	return &response, nil
}

// GetByID retrieves a category by ID
func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCategoryResponse(category)
	return &response, nil
}

// List returns one page of categories after in-memory filtering
func (s *CategoryService) List(ctx context.Context, q query.ListQuery) (*query.Result[CategoryResponse], error) {
	records, err := s.categoryRepo.FindAll(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	result := query.Run(records, CategorySource(), q)

	items := make([]CategoryResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, ToCategoryResponse(&result.Items[i]))
	}
	return &query.Result[CategoryResponse]{Items: items, Pagination: result.Pagination}, nil
}

// Filtered returns the full filtered set for exports
func (s *CategoryService) Filtered(ctx context.Context, q query.ListQuery) ([]clinical.PathologyCategory, error) {
	records, err := s.categoryRepo.FindAll(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	return query.Filtered(records, CategorySource(), q), nil
}

// Update updates a category
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category.Name != req.Name {
		exists, err := s.categoryRepo.ExistsByName(ctx, req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Category with this name already exists")
		}
	}
	if err := category.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	response := ToCategoryResponse(category)
	return &response, nil
}

// Delete removes a category
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.categoryRepo.Delete(ctx, id)
}
