package services

import (
	"context"
	"testing"

	"gadget-store/models"
)

func newWishlistFixture() (*WishlistService, *fakeProductStore, *fakeWishlistStore) {
	products := newFakeProductStore()
	wishlists := newFakeWishlistStore(products)
	return NewWishlistService(wishlists, products), products, wishlists
}

func TestWishlistAdd(t *testing.T) {
	svc, products, _ := newWishlistFixture()
	ctx := context.Background()

	p := products.add(models.Product{Title: "Zephyr", IsActive: true})
	if err := svc.Add(ctx, 1, p.ID); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	count, err := svc.Count(ctx, 1)
	if err != nil || count != 1 {
		t.Errorf("Count = %d (%v), want 1", count, err)
	}
}

func TestWishlistAddUnknownProduct(t *testing.T) {
	svc, _, _ := newWishlistFixture()

	err := svc.Add(context.Background(), 1, 42)
	appErr, ok := err.(*models.AppError)
	if !ok || appErr.Kind != models.ErrValidation {
		t.Fatalf("want validation error, got %v", err)
	}
}

func TestWishlistAddInactiveProduct(t *testing.T) {
	svc, products, _ := newWishlistFixture()

	p := products.add(models.Product{Title: "Zephyr", IsActive: false})
	err := svc.Add(context.Background(), 1, p.ID)
	appErr, ok := err.(*models.AppError)
	if !ok || appErr.Kind != models.ErrValidation {
		t.Fatalf("want validation error, got %v", err)
	}
	if appErr.Message != "Cannot add inactive product to wishlist" {
		t.Errorf("Message = %q", appErr.Message)
	}
}

func TestWishlistAddDuplicate(t *testing.T) {
	svc, products, _ := newWishlistFixture()
	ctx := context.Background()

	p := products.add(models.Product{Title: "Zephyr", IsActive: true})
	if err := svc.Add(ctx, 1, p.ID); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	err := svc.Add(ctx, 1, p.ID)
	appErr, ok := err.(*models.AppError)
	if !ok || appErr.Kind != models.ErrConflict {
		t.Fatalf("want conflict error, got %v", err)
	}
	if appErr.Message != "Product is already in wishlist" {
		t.Errorf("Message = %q", appErr.Message)
	}
}

func TestWishlistRemoveAbsent(t *testing.T) {
	svc, products, _ := newWishlistFixture()

	p := products.add(models.Product{Title: "Zephyr", IsActive: true})
	err := svc.Remove(context.Background(), 1, p.ID)
	appErr, ok := err.(*models.AppError)
	if !ok || appErr.Kind != models.ErrValidation {
		t.Fatalf("want validation error, got %v", err)
	}
	if appErr.Message != "Product is not in wishlist" {
		t.Errorf("Message = %q", appErr.Message)
	}
}

func TestWishlistAddRemoveRestoresAdd(t *testing.T) {
	svc, products, _ := newWishlistFixture()
	ctx := context.Background()

	p := products.add(models.Product{Title: "Zephyr", IsActive: true})
	if err := svc.Add(ctx, 1, p.ID); err != nil {
		t.Fatalf("first Add failed: %v", err)
	}
	if err := svc.Remove(ctx, 1, p.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	// After removal the product can be added again.
	if err := svc.Add(ctx, 1, p.ID); err != nil {
		t.Fatalf("re-Add failed: %v", err)
	}
}

func TestWishlistClearIsIdempotent(t *testing.T) {
	svc, products, _ := newWishlistFixture()
	ctx := context.Background()

	p := products.add(models.Product{Title: "Zephyr", IsActive: true})
	if err := svc.Add(ctx, 1, p.ID); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := svc.Clear(ctx, 1); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if err := svc.Clear(ctx, 1); err != nil {
		t.Fatalf("Clear on empty wishlist failed: %v", err)
	}

	count, _ := svc.Count(ctx, 1)
	if count != 0 {
		t.Errorf("Count = %d, want 0", count)
	}
}

func TestWishlistListInsertionOrder(t *testing.T) {
	svc, products, _ := newWishlistFixture()
	ctx := context.Background()

	third := products.add(models.Product{Title: "Third", IsActive: true})
	first := products.add(models.Product{Title: "First", IsActive: true})
	second := products.add(models.Product{Title: "Second", IsActive: true})

	for _, p := range []*models.Product{first, second, third} {
		if err := svc.Add(ctx, 1, p.ID); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	list, pagination, err := svc.List(ctx, 1, 1, 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if pagination.TotalItems != 3 {
		t.Errorf("TotalItems = %d, want 3", pagination.TotalItems)
	}
	want := []string{"First", "Second", "Third"}
	for i, title := range want {
		if list[i].Title != title {
			t.Errorf("list[%d] = %q, want %q (insertion order)", i, list[i].Title, title)
		}
	}
}

func TestWishlistCheck(t *testing.T) {
	svc, products, _ := newWishlistFixture()
	ctx := context.Background()

	p := products.add(models.Product{Title: "Zephyr", IsActive: true})

	in, err := svc.Check(ctx, 1, p.ID)
	if err != nil || in {
		t.Errorf("Check before add = %v (%v), want false", in, err)
	}

	if err := svc.Add(ctx, 1, p.ID); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	in, err = svc.Check(ctx, 1, p.ID)
	if err != nil || !in {
		t.Errorf("Check after add = %v (%v), want true", in, err)
	}
}

func TestWishlistIsPerUser(t *testing.T) {
	svc, products, _ := newWishlistFixture()
	ctx := context.Background()

	p := products.add(models.Product{Title: "Zephyr", IsActive: true})
	if err := svc.Add(ctx, 1, p.ID); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	count, _ := svc.Count(ctx, 2)
	if count != 0 {
		t.Errorf("other user's Count = %d, want 0", count)
	}
	// The same product can sit in two wishlists at once.
	if err := svc.Add(ctx, 2, p.ID); err != nil {
		t.Fatalf("Add for second user failed: %v", err)
	}
}
