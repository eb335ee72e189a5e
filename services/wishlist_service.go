package services

import (
	"context"

	"gadget-store/models"
)

type WishlistStore interface {
	List(ctx context.Context, userID, page, limit int) ([]models.Product, int, error)
	Contains(ctx context.Context, userID, productID int) (bool, error)
	Add(ctx context.Context, userID, productID int) error
	Remove(ctx context.Context, userID, productID int) error
	Clear(ctx context.Context, userID int) error
	Count(ctx context.Context, userID int) (int, error)
}

type ProductReader interface {
	GetByID(ctx context.Context, id int) (*models.Product, error)
}

type WishlistService struct {
	wishlists WishlistStore
	products  ProductReader
}

func NewWishlistService(wishlists WishlistStore, products ProductReader) *WishlistService {
	return &WishlistService{wishlists: wishlists, products: products}
}

func (s *WishlistService) List(ctx context.Context, userID, page, limit int) ([]models.Product, models.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	products, total, err := s.wishlists.List(ctx, userID, page, limit)
	if err != nil {
		return nil, models.Pagination{}, storageError("Server error while fetching wishlist", err)
	}
	return products, models.NewPagination(page, limit, total), nil
}

func (s *WishlistService) Add(ctx context.Context, userID, productID int) error {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return storageError("Server error while adding to wishlist", err)
	}
	if product == nil {
		return models.NewValidationError("Product not found")
	}
	if !product.IsActive {
		return models.NewValidationError("Cannot add inactive product to wishlist")
	}

	exists, err := s.wishlists.Contains(ctx, userID, productID)
	if err != nil {
		return storageError("Server error while adding to wishlist", err)
	}
	if exists {
		return models.NewConflictError("Product is already in wishlist")
	}

	if err := s.wishlists.Add(ctx, userID, productID); err != nil {
		return storageError("Server error while adding to wishlist", err)
	}
	return nil
}

func (s *WishlistService) Remove(ctx context.Context, userID, productID int) error {
	exists, err := s.wishlists.Contains(ctx, userID, productID)
	if err != nil {
		return storageError("Server error while removing from wishlist", err)
	}
	if !exists {
		return models.NewValidationError("Product is not in wishlist")
	}

	if err := s.wishlists.Remove(ctx, userID, productID); err != nil {
		return storageError("Server error while removing from wishlist", err)
	}
	return nil
}

// Clear empties the wishlist. Clearing an already-empty wishlist succeeds.
func (s *WishlistService) Clear(ctx context.Context, userID int) error {
	if err := s.wishlists.Clear(ctx, userID); err != nil {
		return storageError("Server error while clearing wishlist", err)
	}
	return nil
}

func (s *WishlistService) Check(ctx context.Context, userID, productID int) (bool, error) {
	exists, err := s.wishlists.Contains(ctx, userID, productID)
	if err != nil {
		return false, storageError("Server error while checking wishlist", err)
	}
	return exists, nil
}

func (s *WishlistService) Count(ctx context.Context, userID int) (int, error) {
	count, err := s.wishlists.Count(ctx, userID)
	if err != nil {
		return 0, storageError("Server error while counting wishlist", err)
	}
	return count, nil
}
