package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"gadget-store/models"
)

func TestStorageErrorGeneric(t *testing.T) {
	appErr := storageError("Server error while creating category", errors.New("connection reset"))

	if appErr.Kind != models.ErrStorage {
		t.Errorf("Kind = %v, want storage", appErr.Kind)
	}
	if appErr.Status() != 500 {
		t.Errorf("Status() = %d, want 500", appErr.Status())
	}
}

func TestStorageErrorUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "categories_name_unique"}

	appErr := storageError("Server error while creating category", pgErr)
	if appErr.Kind != models.ErrConflict {
		t.Fatalf("Kind = %v, want conflict", appErr.Kind)
	}
	if appErr.Status() != 400 {
		t.Errorf("Status() = %d, want 400", appErr.Status())
	}
}

func TestStorageErrorWrappedUniqueViolation(t *testing.T) {
	wrapped := fmt.Errorf("insert category: %w", &pgconn.PgError{Code: "23505"})

	if appErr := storageError("Server error while creating category", wrapped); appErr.Kind != models.ErrConflict {
		t.Errorf("Kind = %v, want conflict for a wrapped unique violation", appErr.Kind)
	}
}

func TestStorageErrorOtherPgError(t *testing.T) {
	// Only unique violations become conflicts; any other SQL failure stays a
	// server error.
	pgErr := &pgconn.PgError{Code: "23503", ConstraintName: "products_category_id_fkey"}

	if appErr := storageError("Server error while deleting category", pgErr); appErr.Kind != models.ErrStorage {
		t.Errorf("Kind = %v, want storage", appErr.Kind)
	}
}
