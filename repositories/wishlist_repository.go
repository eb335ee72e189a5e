package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"gadget-store/models"
)

// WishlistRepository stores one row per (user, product) pair. The serial id
// preserves insertion order, which is the order List returns.
type WishlistRepository struct {
	db *pgxpool.Pool
}

func NewWishlistRepository(db *pgxpool.Pool) *WishlistRepository {
	return &WishlistRepository{db: db}
}

func (r *WishlistRepository) List(ctx context.Context, userID, page, limit int) ([]models.Product, int, error) {
	opts := ListOptions{Page: page, Limit: limit}
	opts.Normalize()

	var total int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM wishlist_items WHERE user_id = $1`, userID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT p.id, p.title, p.description, p.sub_category_id, sc.name, p.category_id, c.name,
		       p.rating_average, p.rating_count, p.is_active, p.created_by, p.created_at, p.updated_at
		FROM wishlist_items w
		JOIN products p ON p.id = w.product_id
		JOIN sub_categories sc ON sc.id = p.sub_category_id
		JOIN categories c ON c.id = p.category_id
		WHERE w.user_id = $1
		ORDER BY w.id ASC
		LIMIT $2 OFFSET $3
	`, userID, opts.Limit, opts.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.SubCategoryID, &p.SubCategoryName,
			&p.CategoryID, &p.CategoryName, &p.Rating.Average, &p.Rating.Count,
			&p.IsActive, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := loadProductChildren(ctx, r.db, products); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *WishlistRepository) Contains(ctx context.Context, userID, productID int) (bool, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM wishlist_items WHERE user_id = $1 AND product_id = $2`,
		userID, productID,
	).Scan(&count)
	return count > 0, err
}

func (r *WishlistRepository) Add(ctx context.Context, userID, productID int) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO wishlist_items (user_id, product_id, created_at) VALUES ($1, $2, $3)`,
		userID, productID, time.Now())
	return err
}

func (r *WishlistRepository) Remove(ctx context.Context, userID, productID int) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2`,
		userID, productID)
	return err
}

func (r *WishlistRepository) Clear(ctx context.Context, userID int) error {
	_, err := r.db.Exec(ctx, `DELETE FROM wishlist_items WHERE user_id = $1`, userID)
	return err
}

func (r *WishlistRepository) Count(ctx context.Context, userID int) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM wishlist_items WHERE user_id = $1`, userID,
	).Scan(&count)
	return count, err
}
