package services

import (
	"context"
	"strings"

	"gadget-store/models"
	"gadget-store/repositories"
)

type CategoryStore interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id int) (*models.Category, error)
	List(ctx context.Context, opts repositories.ListOptions) ([]models.Category, int, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id int) error
	CountByName(ctx context.Context, name string, excludeID int) (int, error)
}

type SubCategoryReader interface {
	CountByCategory(ctx context.Context, categoryID int) (int, error)
	ListByCategory(ctx context.Context, categoryID int, isActive *bool) ([]models.SubCategory, error)
}

type CategoryService struct {
	categories    CategoryStore
	subCategories SubCategoryReader
}

func NewCategoryService(categories CategoryStore, subCategories SubCategoryReader) *CategoryService {
	return &CategoryService{categories: categories, subCategories: subCategories}
}

func (s *CategoryService) Create(ctx context.Context, userID int, req models.CreateCategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, models.NewValidationError("Category name is required")
	}

	count, err := s.categories.CountByName(ctx, name, 0)
	if err != nil {
		return nil, storageError("Server error while creating category", err)
	}
	if count > 0 {
		return nil, models.NewConflictError("Category with this name already exists")
	}

	category := &models.Category{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		CreatedBy:   userID,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, storageError("Server error while creating category", err)
	}
	return category, nil
}

func (s *CategoryService) List(ctx context.Context, opts repositories.ListOptions) ([]models.Category, models.Pagination, error) {
	opts.Normalize()

	categories, total, err := s.categories.List(ctx, opts)
	if err != nil {
		return nil, models.Pagination{}, storageError("Server error while fetching categories", err)
	}
	return categories, models.NewPagination(opts.Page, opts.Limit, total), nil
}

// Get returns the category together with its active subcategories.
func (s *CategoryService) Get(ctx context.Context, id int) (*models.Category, []models.SubCategory, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, nil, storageError("Server error while fetching category", err)
	}
	if category == nil {
		return nil, nil, models.NewNotFoundError("Category not found")
	}

	active := true
	subCategories, err := s.subCategories.ListByCategory(ctx, id, &active)
	if err != nil {
		return nil, nil, storageError("Server error while fetching category", err)
	}
	return category, subCategories, nil
}

func (s *CategoryService) Update(ctx context.Context, id int, req models.UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, storageError("Server error while updating category", err)
	}
	if category == nil {
		return nil, models.NewNotFoundError("Category not found")
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, models.NewValidationError("Category name is required")
		}
		count, err := s.categories.CountByName(ctx, name, id)
		if err != nil {
			return nil, storageError("Server error while updating category", err)
		}
		if count > 0 {
			return nil, models.NewConflictError("Category with this name already exists")
		}
		category.Name = name
	}
	if req.Description != nil {
		category.Description = strings.TrimSpace(*req.Description)
	}
	if req.IsActive != nil {
		// Deactivation never cascades to subcategories or products.
		category.IsActive = *req.IsActive
	}

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, storageError("Server error while updating category", err)
	}
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, id int) error {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return storageError("Server error while deleting category", err)
	}
	if category == nil {
		return models.NewNotFoundError("Category not found")
	}

	// Orphan guard: any subcategory, active or not, blocks the delete.
	count, err := s.subCategories.CountByCategory(ctx, id)
	if err != nil {
		return storageError("Server error while deleting category", err)
	}
	if count > 0 {
		return models.NewConflictError("Cannot delete category with existing subcategories")
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		return storageError("Server error while deleting category", err)
	}
	return nil
}
