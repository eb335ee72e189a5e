package services

import (
	"context"
	"strings"

	"gadget-store/models"
	"gadget-store/repositories"
)

type SubCategoryStore interface {
	Create(ctx context.Context, sub *models.SubCategory) error
	GetByID(ctx context.Context, id int) (*models.SubCategory, error)
	List(ctx context.Context, opts repositories.ListOptions) ([]models.SubCategory, int, error)
	ListByCategory(ctx context.Context, categoryID int, isActive *bool) ([]models.SubCategory, error)
	Update(ctx context.Context, sub *models.SubCategory) error
	Delete(ctx context.Context, id int) error
	CountByName(ctx context.Context, name string, categoryID, excludeID int) (int, error)
}

type CategoryReader interface {
	GetByID(ctx context.Context, id int) (*models.Category, error)
}

type ProductCounter interface {
	CountBySubCategory(ctx context.Context, subCategoryID int) (int, error)
	CountActiveBySubCategory(ctx context.Context, subCategoryID int) (int, error)
}

type SubCategoryService struct {
	subCategories SubCategoryStore
	categories    CategoryReader
	products      ProductCounter
}

func NewSubCategoryService(subCategories SubCategoryStore, categories CategoryReader, products ProductCounter) *SubCategoryService {
	return &SubCategoryService{
		subCategories: subCategories,
		categories:    categories,
		products:      products,
	}
}

func (s *SubCategoryService) Create(ctx context.Context, userID int, req models.CreateSubCategoryRequest) (*models.SubCategory, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || req.CategoryID == 0 {
		return nil, models.NewValidationError("Subcategory name and category are required")
	}

	category, err := s.categories.GetByID(ctx, req.CategoryID)
	if err != nil {
		return nil, storageError("Server error while creating subcategory", err)
	}
	if category == nil {
		return nil, models.NewNotFoundError("Category not found")
	}
	if !category.IsActive {
		return nil, models.NewValidationError("Cannot create subcategory for inactive category")
	}

	count, err := s.subCategories.CountByName(ctx, name, req.CategoryID, 0)
	if err != nil {
		return nil, storageError("Server error while creating subcategory", err)
	}
	if count > 0 {
		return nil, models.NewConflictError("Subcategory with this name already exists in this category")
	}

	sub := &models.SubCategory{
		Name:         name,
		CategoryID:   req.CategoryID,
		CategoryName: category.Name,
		Description:  strings.TrimSpace(req.Description),
		CreatedBy:    userID,
	}
	if err := s.subCategories.Create(ctx, sub); err != nil {
		return nil, storageError("Server error while creating subcategory", err)
	}
	return sub, nil
}

func (s *SubCategoryService) List(ctx context.Context, opts repositories.ListOptions) ([]models.SubCategory, models.Pagination, error) {
	opts.Normalize()

	subs, total, err := s.subCategories.List(ctx, opts)
	if err != nil {
		return nil, models.Pagination{}, storageError("Server error while fetching subcategories", err)
	}
	return subs, models.NewPagination(opts.Page, opts.Limit, total), nil
}

// Get returns the subcategory together with its active product count.
func (s *SubCategoryService) Get(ctx context.Context, id int) (*models.SubCategory, int, error) {
	sub, err := s.subCategories.GetByID(ctx, id)
	if err != nil {
		return nil, 0, storageError("Server error while fetching subcategory", err)
	}
	if sub == nil {
		return nil, 0, models.NewNotFoundError("Subcategory not found")
	}

	productsCount, err := s.products.CountActiveBySubCategory(ctx, id)
	if err != nil {
		return nil, 0, storageError("Server error while fetching subcategory", err)
	}
	return sub, productsCount, nil
}

func (s *SubCategoryService) ListByCategory(ctx context.Context, categoryID int, isActive *bool) (*models.Category, []models.SubCategory, error) {
	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return nil, nil, storageError("Server error while fetching subcategories", err)
	}
	if category == nil {
		return nil, nil, models.NewNotFoundError("Category not found")
	}

	subs, err := s.subCategories.ListByCategory(ctx, categoryID, isActive)
	if err != nil {
		return nil, nil, storageError("Server error while fetching subcategories", err)
	}
	return category, subs, nil
}

func (s *SubCategoryService) Update(ctx context.Context, id int, req models.UpdateSubCategoryRequest) (*models.SubCategory, error) {
	sub, err := s.subCategories.GetByID(ctx, id)
	if err != nil {
		return nil, storageError("Server error while updating subcategory", err)
	}
	if sub == nil {
		return nil, models.NewNotFoundError("Subcategory not found")
	}

	// Moving to another category only requires that it exists. The active
	// check is a create-time rule and is intentionally not repeated here.
	if req.CategoryID != nil && *req.CategoryID != sub.CategoryID {
		category, err := s.categories.GetByID(ctx, *req.CategoryID)
		if err != nil {
			return nil, storageError("Server error while updating subcategory", err)
		}
		if category == nil {
			return nil, models.NewNotFoundError("Category not found")
		}
		sub.CategoryID = category.ID
		sub.CategoryName = category.Name
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, models.NewValidationError("Subcategory name is required")
		}
		count, err := s.subCategories.CountByName(ctx, name, sub.CategoryID, id)
		if err != nil {
			return nil, storageError("Server error while updating subcategory", err)
		}
		if count > 0 {
			return nil, models.NewConflictError("Subcategory with this name already exists in this category")
		}
		sub.Name = name
	}
	if req.Description != nil {
		sub.Description = strings.TrimSpace(*req.Description)
	}
	if req.IsActive != nil {
		sub.IsActive = *req.IsActive
	}

	if err := s.subCategories.Update(ctx, sub); err != nil {
		return nil, storageError("Server error while updating subcategory", err)
	}
	return sub, nil
}

func (s *SubCategoryService) Delete(ctx context.Context, id int) error {
	sub, err := s.subCategories.GetByID(ctx, id)
	if err != nil {
		return storageError("Server error while deleting subcategory", err)
	}
	if sub == nil {
		return models.NewNotFoundError("Subcategory not found")
	}

	count, err := s.products.CountBySubCategory(ctx, id)
	if err != nil {
		return storageError("Server error while deleting subcategory", err)
	}
	if count > 0 {
		return models.NewConflictError("Cannot delete subcategory with existing products")
	}

	if err := s.subCategories.Delete(ctx, id); err != nil {
		return storageError("Server error while deleting subcategory", err)
	}
	return nil
}
