package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gadget-store/models"
)

// productFTS is the text-search expression backing product search; the GIN
// index in the migration is built over the same expression.
const productFTS = `to_tsvector('english', p.title || ' ' || p.description)`

const productSelect = `
	SELECT p.id, p.title, p.description, p.sub_category_id, sc.name, p.category_id, c.name,
	       p.rating_average, p.rating_count, p.is_active, p.created_by, p.created_at, p.updated_at
	FROM products p
	JOIN sub_categories sc ON sc.id = p.sub_category_id
	JOIN categories c ON c.id = p.category_id`

type ProductRepository struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	err = tx.QueryRow(ctx, `
		INSERT INTO products (title, description, sub_category_id, category_id,
		                      rating_average, rating_count, is_active, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 0, 0, true, $5, $6, $6)
		RETURNING id, is_active, created_at, updated_at
	`, product.Title, product.Description, product.SubCategoryID, product.CategoryID,
		product.CreatedBy, now,
	).Scan(&product.ID, &product.IsActive, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return err
	}

	if err := insertVariants(ctx, tx, product.ID, product.Variants); err != nil {
		return err
	}
	if err := insertImages(ctx, tx, product.ID, product.Images); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *ProductRepository) GetByID(ctx context.Context, id int) (*models.Product, error) {
	var p models.Product
	err := r.db.QueryRow(ctx, productSelect+` WHERE p.id = $1`, id).Scan(
		&p.ID, &p.Title, &p.Description, &p.SubCategoryID, &p.SubCategoryName,
		&p.CategoryID, &p.CategoryName, &p.Rating.Average, &p.Rating.Count,
		&p.IsActive, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	products := []models.Product{p}
	if err := r.loadChildren(ctx, products); err != nil {
		return nil, err
	}
	return &products[0], nil
}

func (r *ProductRepository) List(ctx context.Context, opts ListOptions) ([]models.Product, int, error) {
	opts.Normalize()

	q := &ListQuery{}
	if opts.Search != "" {
		q.Where(productFTS+" @@ plainto_tsquery('english', $%d)", opts.Search)
	}
	if opts.IsActive != nil {
		q.Where("p.is_active = $%d", *opts.IsActive)
	}
	if opts.CategoryID != 0 {
		q.Where("p.category_id = $%d", opts.CategoryID)
	}
	if opts.SubCategoryID != 0 {
		q.Where("p.sub_category_id = $%d", opts.SubCategoryID)
	}
	if opts.MinPrice != nil && opts.MaxPrice != nil {
		q.Where("EXISTS (SELECT 1 FROM product_variants v WHERE v.product_id = p.id AND v.price >= $%d AND v.price <= $%d)",
			*opts.MinPrice, *opts.MaxPrice)
	} else if opts.MinPrice != nil {
		q.Where("EXISTS (SELECT 1 FROM product_variants v WHERE v.product_id = p.id AND v.price >= $%d)", *opts.MinPrice)
	} else if opts.MaxPrice != nil {
		q.Where("EXISTS (SELECT 1 FROM product_variants v WHERE v.product_id = p.id AND v.price <= $%d)", *opts.MaxPrice)
	}

	var total int
	countSQL := `SELECT COUNT(*) FROM products p` + q.WhereSQL()
	if err := r.db.QueryRow(ctx, countSQL, q.Args()...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listSQL := productSelect +
		q.WhereSQL() +
		orderBySQL(productSortFields, "p.created_at", opts.SortBy, opts.SortOrder) +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", q.Bind(opts.Limit), q.Bind(opts.Offset()))

	products, err := r.queryProducts(ctx, listSQL, q.Args()...)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// Search runs the relevance-ranked text search over active products. Ties in
// ts_rank fall back to the store's natural order.
func (r *ProductRepository) Search(ctx context.Context, search string, page, limit int) ([]models.Product, int, error) {
	opts := ListOptions{Page: page, Limit: limit}
	opts.Normalize()

	where := ` WHERE p.is_active = true AND ` + productFTS + ` @@ plainto_tsquery('english', $1)`

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products p`+where, search).Scan(&total); err != nil {
		return nil, 0, err
	}

	listSQL := productSelect + where +
		` ORDER BY ts_rank(` + productFTS + `, plainto_tsquery('english', $1)) DESC
		  LIMIT $2 OFFSET $3`

	products, err := r.queryProducts(ctx, listSQL, search, opts.Limit, opts.Offset())
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *ProductRepository) Update(ctx context.Context, product *models.Product, replaceVariants bool) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		UPDATE products SET title = $1, description = $2, sub_category_id = $3, category_id = $4,
		       is_active = $5, updated_at = $6
		WHERE id = $7 RETURNING updated_at
	`, product.Title, product.Description, product.SubCategoryID, product.CategoryID,
		product.IsActive, time.Now(), product.ID,
	).Scan(&product.UpdatedAt)
	if err != nil {
		return err
	}

	if replaceVariants {
		if _, err := tx.Exec(ctx, `DELETE FROM product_variants WHERE product_id = $1`, product.ID); err != nil {
			return err
		}
		if err := insertVariants(ctx, tx, product.ID, product.Variants); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *ProductRepository) AddImages(ctx context.Context, productID int, images []models.ProductImage) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := insertImages(ctx, tx, productID, images); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *ProductRepository) ReplaceImages(ctx context.Context, productID int, images []models.ProductImage) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM product_images WHERE product_id = $1`, productID); err != nil {
		return err
	}
	if err := insertImages(ctx, tx, productID, images); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *ProductRepository) Delete(ctx context.Context, id int) error {
	_, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	return err
}

// CountBySubCategory backs the orphan guard on subcategory delete.
func (r *ProductRepository) CountBySubCategory(ctx context.Context, subCategoryID int) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE sub_category_id = $1`,
		subCategoryID,
	).Scan(&count)
	return count, err
}

// CountActiveBySubCategory is the product count shown on a subcategory detail.
func (r *ProductRepository) CountActiveBySubCategory(ctx context.Context, subCategoryID int) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE sub_category_id = $1 AND is_active = true`,
		subCategoryID,
	).Scan(&count)
	return count, err
}

func (r *ProductRepository) queryProducts(ctx context.Context, sql string, args ...interface{}) ([]models.Product, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.SubCategoryID, &p.SubCategoryName,
			&p.CategoryID, &p.CategoryName, &p.Rating.Average, &p.Rating.Count,
			&p.IsActive, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadChildren(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepository) loadChildren(ctx context.Context, products []models.Product) error {
	return loadProductChildren(ctx, r.db, products)
}

// loadProductChildren fills variants and images for a page of products in two
// queries instead of 2N.
func loadProductChildren(ctx context.Context, db *pgxpool.Pool, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]int32, len(products))
	index := make(map[int]*models.Product, len(products))
	for i := range products {
		ids[i] = int32(products[i].ID)
		index[products[i].ID] = &products[i]
		products[i].Variants = []models.Variant{}
		products[i].Images = []models.ProductImage{}
	}

	rows, err := db.Query(ctx, `
		SELECT product_id, id, ram, price, quantity FROM product_variants
		WHERE product_id = ANY($1) ORDER BY position, id
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var productID int
		var v models.Variant
		if err := rows.Scan(&productID, &v.ID, &v.RAM, &v.Price, &v.Quantity); err != nil {
			return err
		}
		if p, ok := index[productID]; ok {
			p.Variants = append(p.Variants, v)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	imgRows, err := db.Query(ctx, `
		SELECT product_id, id, public_id, url, alt FROM product_images
		WHERE product_id = ANY($1) ORDER BY position, id
	`, ids)
	if err != nil {
		return err
	}
	defer imgRows.Close()
	for imgRows.Next() {
		var productID int
		var img models.ProductImage
		if err := imgRows.Scan(&productID, &img.ID, &img.PublicID, &img.URL, &img.Alt); err != nil {
			return err
		}
		if p, ok := index[productID]; ok {
			p.Images = append(p.Images, img)
		}
	}
	return imgRows.Err()
}

func insertVariants(ctx context.Context, tx pgx.Tx, productID int, variants []models.Variant) error {
	for i, v := range variants {
		err := tx.QueryRow(ctx, `
			INSERT INTO product_variants (product_id, ram, price, quantity, position)
			VALUES ($1, $2, $3, $4, $5) RETURNING id
		`, productID, v.RAM, v.Price, v.Quantity, i).Scan(&variants[i].ID)
		if err != nil {
			return err
		}
	}
	return nil
}

func insertImages(ctx context.Context, tx pgx.Tx, productID int, images []models.ProductImage) error {
	if len(images) == 0 {
		return nil
	}

	// New images append after whatever positions already exist.
	var base int
	err := tx.QueryRow(ctx,
		`SELECT COALESCE(MAX(position) + 1, 0) FROM product_images WHERE product_id = $1`,
		productID,
	).Scan(&base)
	if err != nil {
		return err
	}

	for i, img := range images {
		err := tx.QueryRow(ctx, `
			INSERT INTO product_images (product_id, public_id, url, alt, position)
			VALUES ($1, $2, $3, $4, $5) RETURNING id
		`, productID, img.PublicID, img.URL, img.Alt, base+i).Scan(&images[i].ID)
		if err != nil {
			return err
		}
	}
	return nil
}
