package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"gadget-store/libs"
	"gadget-store/models"
	"gadget-store/repositories"
)

type ProductStore interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id int) (*models.Product, error)
	List(ctx context.Context, opts repositories.ListOptions) ([]models.Product, int, error)
	Search(ctx context.Context, search string, page, limit int) ([]models.Product, int, error)
	Update(ctx context.Context, product *models.Product, replaceVariants bool) error
	AddImages(ctx context.Context, productID int, images []models.ProductImage) error
	ReplaceImages(ctx context.Context, productID int, images []models.ProductImage) error
	Delete(ctx context.Context, id int) error
}

type SubCategoryResolver interface {
	GetByID(ctx context.Context, id int) (*models.SubCategory, error)
}

type ProductService struct {
	products      ProductStore
	subCategories SubCategoryResolver
	categories    CategoryReader
	images        libs.ImageStore
}

func NewProductService(products ProductStore, subCategories SubCategoryResolver, categories CategoryReader, images libs.ImageStore) *ProductService {
	return &ProductService{
		products:      products,
		subCategories: subCategories,
		categories:    categories,
		images:        images,
	}
}

// deriveCategoryFromSubCategory is the single place the denormalized product
// category comes from. Every subcategory-touching write path goes through it
// so the product's category can never drift from its subcategory's parent.
func deriveCategoryFromSubCategory(sub *models.SubCategory) int {
	return sub.CategoryID
}

// validateVariants reports every offending variant, not just the first.
func validateVariants(variants []models.Variant) []string {
	issues := []string{}
	for i, v := range variants {
		if strings.TrimSpace(v.RAM) == "" {
			issues = append(issues, fmt.Sprintf("variant %d: ram is required", i+1))
		}
		if v.Price < 0 {
			issues = append(issues, fmt.Sprintf("variant %d: price cannot be negative", i+1))
		}
		if v.Quantity < 0 {
			issues = append(issues, fmt.Sprintf("variant %d: quantity cannot be negative", i+1))
		}
	}
	return issues
}

// rollbackStaged deletes already-uploaded images after a failed write.
// Best-effort: cleanup failures are logged and never re-fail the request.
func (s *ProductService) rollbackStaged(ctx context.Context, staged []models.StagedImage) {
	for _, img := range staged {
		if err := s.images.Delete(ctx, img.PublicID); err != nil {
			log.Printf("Error deleting staged image %s from object store: %v", img.PublicID, err)
		}
	}
}

func stagedToImages(staged []models.StagedImage) []models.ProductImage {
	images := make([]models.ProductImage, 0, len(staged))
	for _, img := range staged {
		images = append(images, models.ProductImage{
			PublicID: img.PublicID,
			URL:      img.URL,
			Alt:      img.OriginalName,
		})
	}
	return images
}

func (s *ProductService) Create(ctx context.Context, userID int, req models.CreateProductRequest, staged []models.StagedImage) (*models.Product, error) {
	fail := func(err error) (*models.Product, error) {
		s.rollbackStaged(ctx, staged)
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	if title == "" || description == "" || req.SubCategoryID == 0 || len(req.Variants) == 0 {
		return fail(models.NewValidationError("Title, description, subcategory, and at least one variant are required"))
	}

	sub, err := s.subCategories.GetByID(ctx, req.SubCategoryID)
	if err != nil {
		return fail(storageError("Server error while creating product", err))
	}
	if sub == nil {
		return fail(models.NewNotFoundError("Subcategory not found"))
	}

	category, err := s.categories.GetByID(ctx, sub.CategoryID)
	if err != nil || category == nil {
		return fail(storageError("Server error while creating product", fmt.Errorf("category %d missing for subcategory %d: %v", sub.CategoryID, sub.ID, err)))
	}

	if !sub.IsActive || !category.IsActive {
		return fail(models.NewValidationError("Cannot create product for inactive subcategory or category"))
	}

	if issues := validateVariants(req.Variants); len(issues) > 0 {
		return fail(models.NewValidationError("Validation error", issues...))
	}

	product := &models.Product{
		Title:           title,
		Description:     description,
		SubCategoryID:   sub.ID,
		SubCategoryName: sub.Name,
		CategoryID:      deriveCategoryFromSubCategory(sub),
		CategoryName:    category.Name,
		Variants:        req.Variants,
		Images:          stagedToImages(staged),
		CreatedBy:       userID,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return fail(storageError("Server error while creating product", err))
	}
	return product, nil
}

func (s *ProductService) List(ctx context.Context, opts repositories.ListOptions) ([]models.Product, models.Pagination, error) {
	opts.Normalize()

	products, total, err := s.products.List(ctx, opts)
	if err != nil {
		return nil, models.Pagination{}, storageError("Server error while fetching products", err)
	}
	return products, models.NewPagination(opts.Page, opts.Limit, total), nil
}

func (s *ProductService) Get(ctx context.Context, id int) (*models.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, storageError("Server error while fetching product", err)
	}
	if product == nil {
		return nil, models.NewNotFoundError("Product not found")
	}
	return product, nil
}

// BySubCategory lists a subcategory's active products.
func (s *ProductService) BySubCategory(ctx context.Context, subCategoryID int, opts repositories.ListOptions) (*models.SubCategory, []models.Product, models.Pagination, error) {
	sub, err := s.subCategories.GetByID(ctx, subCategoryID)
	if err != nil {
		return nil, nil, models.Pagination{}, storageError("Server error while fetching products", err)
	}
	if sub == nil {
		return nil, nil, models.Pagination{}, models.NewNotFoundError("Subcategory not found")
	}

	opts.Normalize()
	opts.SubCategoryID = subCategoryID
	active := true
	opts.IsActive = &active

	products, total, err := s.products.List(ctx, opts)
	if err != nil {
		return nil, nil, models.Pagination{}, storageError("Server error while fetching products", err)
	}
	return sub, products, models.NewPagination(opts.Page, opts.Limit, total), nil
}

// Search requires a non-empty trimmed query and returns relevance-ranked
// active products.
func (s *ProductService) Search(ctx context.Context, search string, page, limit int) ([]models.Product, models.Pagination, error) {
	search = strings.TrimSpace(search)
	if search == "" {
		return nil, models.Pagination{}, models.NewValidationError("Search query is required")
	}

	opts := repositories.ListOptions{Page: page, Limit: limit}
	opts.Normalize()

	products, total, err := s.products.Search(ctx, search, opts.Page, opts.Limit)
	if err != nil {
		return nil, models.Pagination{}, storageError("Server error while searching products", err)
	}
	return products, models.NewPagination(opts.Page, opts.Limit, total), nil
}

func (s *ProductService) Update(ctx context.Context, id int, req models.UpdateProductRequest, staged []models.StagedImage) (*models.Product, error) {
	fail := func(err error) (*models.Product, error) {
		s.rollbackStaged(ctx, staged)
		return nil, err
	}

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return fail(storageError("Server error while updating product", err))
	}
	if product == nil {
		return fail(models.NewNotFoundError("Product not found"))
	}

	if req.SubCategoryID != nil && *req.SubCategoryID != product.SubCategoryID {
		sub, err := s.subCategories.GetByID(ctx, *req.SubCategoryID)
		if err != nil {
			return fail(storageError("Server error while updating product", err))
		}
		if sub == nil {
			return fail(models.NewNotFoundError("Subcategory not found"))
		}
		// Parent-active is a create-time rule only; moving a product keeps
		// the denormalized category in sync but does not re-check activity.
		product.SubCategoryID = sub.ID
		product.CategoryID = deriveCategoryFromSubCategory(sub)
	}

	replaceVariants := false
	if req.Variants != nil {
		if len(req.Variants) == 0 {
			return fail(models.NewValidationError("At least one variant is required"))
		}
		if issues := validateVariants(req.Variants); len(issues) > 0 {
			return fail(models.NewValidationError("Validation error", issues...))
		}
		// Variants replace wholesale; there is no partial variant merge.
		product.Variants = req.Variants
		replaceVariants = true
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return fail(models.NewValidationError("Product title is required"))
		}
		product.Title = title
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return fail(models.NewValidationError("Product description is required"))
		}
		product.Description = description
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := s.products.Update(ctx, product, replaceVariants); err != nil {
		return fail(storageError("Server error while updating product", err))
	}

	if len(staged) > 0 {
		newImages := stagedToImages(staged)
		if req.ReplaceImages {
			// Old images go first, best-effort; then the records swap.
			for _, img := range product.Images {
				if err := s.images.Delete(ctx, img.PublicID); err != nil {
					log.Printf("Error deleting old image %s from object store: %v", img.PublicID, err)
				}
			}
			if err := s.products.ReplaceImages(ctx, id, newImages); err != nil {
				return fail(storageError("Server error while updating product", err))
			}
		} else {
			if err := s.products.AddImages(ctx, id, newImages); err != nil {
				return fail(storageError("Server error while updating product", err))
			}
		}
	}

	updated, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, storageError("Server error while updating product", err)
	}
	return updated, nil
}

func (s *ProductService) Delete(ctx context.Context, id int) error {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return storageError("Server error while deleting product", err)
	}
	if product == nil {
		return models.NewNotFoundError("Product not found")
	}

	// Best-effort image cleanup; individual failures never block the delete.
	for _, img := range product.Images {
		if err := s.images.Delete(ctx, img.PublicID); err != nil {
			log.Printf("Error deleting image %s from object store: %v", img.PublicID, err)
		}
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return storageError("Server error while deleting product", err)
	}
	return nil
}
