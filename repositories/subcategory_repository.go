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

type SubCategoryRepository struct {
	db *pgxpool.Pool
}

func NewSubCategoryRepository(db *pgxpool.Pool) *SubCategoryRepository {
	return &SubCategoryRepository{db: db}
}

func (r *SubCategoryRepository) Create(ctx context.Context, sub *models.SubCategory) error {
	query := `
		INSERT INTO sub_categories (name, category_id, description, is_active, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, true, $4, $5, $5)
		RETURNING id, is_active, created_at, updated_at
	`
	now := time.Now()
	return r.db.QueryRow(ctx, query,
		sub.Name, sub.CategoryID, sub.Description, sub.CreatedBy, now,
	).Scan(&sub.ID, &sub.IsActive, &sub.CreatedAt, &sub.UpdatedAt)
}

func (r *SubCategoryRepository) GetByID(ctx context.Context, id int) (*models.SubCategory, error) {
	query := `SELECT sc.id, sc.name, sc.category_id, c.name, sc.description, sc.is_active,
	                 sc.created_by, sc.created_at, sc.updated_at
	          FROM sub_categories sc
	          JOIN categories c ON c.id = sc.category_id
	          WHERE sc.id = $1`

	var sc models.SubCategory
	err := r.db.QueryRow(ctx, query, id).Scan(
		&sc.ID, &sc.Name, &sc.CategoryID, &sc.CategoryName, &sc.Description,
		&sc.IsActive, &sc.CreatedBy, &sc.CreatedAt, &sc.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sc, nil
}

func (r *SubCategoryRepository) List(ctx context.Context, opts ListOptions) ([]models.SubCategory, int, error) {
	opts.Normalize()

	q := &ListQuery{}
	if opts.Search != "" {
		q.Where("sc.name ILIKE $%d", "%"+opts.Search+"%")
	}
	if opts.CategoryID != 0 {
		q.Where("sc.category_id = $%d", opts.CategoryID)
	}
	if opts.IsActive != nil {
		q.Where("sc.is_active = $%d", *opts.IsActive)
	}

	var total int
	countSQL := "SELECT COUNT(*) FROM sub_categories sc" + q.WhereSQL()
	if err := r.db.QueryRow(ctx, countSQL, q.Args()...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listSQL := `SELECT sc.id, sc.name, sc.category_id, c.name, sc.description, sc.is_active,
	                   sc.created_by, sc.created_at, sc.updated_at
	            FROM sub_categories sc
	            JOIN categories c ON c.id = sc.category_id` +
		q.WhereSQL() +
		orderBySQL(subCategorySortFields, "sc.created_at", opts.SortBy, opts.SortOrder) +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", q.Bind(opts.Limit), q.Bind(opts.Offset()))

	rows, err := r.db.Query(ctx, listSQL, q.Args()...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	subs := []models.SubCategory{}
	for rows.Next() {
		var sc models.SubCategory
		if err := rows.Scan(&sc.ID, &sc.Name, &sc.CategoryID, &sc.CategoryName, &sc.Description,
			&sc.IsActive, &sc.CreatedBy, &sc.CreatedAt, &sc.UpdatedAt); err != nil {
			return nil, 0, err
		}
		subs = append(subs, sc)
	}
	return subs, total, rows.Err()
}

// ListByCategory returns a category's subcategories sorted by name, optionally
// restricted to active ones.
func (r *SubCategoryRepository) ListByCategory(ctx context.Context, categoryID int, isActive *bool) ([]models.SubCategory, error) {
	q := &ListQuery{}
	q.Where("sc.category_id = $%d", categoryID)
	if isActive != nil {
		q.Where("sc.is_active = $%d", *isActive)
	}

	query := `SELECT sc.id, sc.name, sc.category_id, c.name, sc.description, sc.is_active,
	                 sc.created_by, sc.created_at, sc.updated_at
	          FROM sub_categories sc
	          JOIN categories c ON c.id = sc.category_id` +
		q.WhereSQL() + ` ORDER BY sc.name ASC`

	rows, err := r.db.Query(ctx, query, q.Args()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := []models.SubCategory{}
	for rows.Next() {
		var sc models.SubCategory
		if err := rows.Scan(&sc.ID, &sc.Name, &sc.CategoryID, &sc.CategoryName, &sc.Description,
			&sc.IsActive, &sc.CreatedBy, &sc.CreatedAt, &sc.UpdatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, sc)
	}
	return subs, rows.Err()
}

func (r *SubCategoryRepository) Update(ctx context.Context, sub *models.SubCategory) error {
	query := `UPDATE sub_categories SET name = $1, category_id = $2, description = $3, is_active = $4, updated_at = $5
	          WHERE id = $6 RETURNING updated_at`
	return r.db.QueryRow(ctx, query,
		sub.Name, sub.CategoryID, sub.Description, sub.IsActive, time.Now(), sub.ID,
	).Scan(&sub.UpdatedAt)
}

func (r *SubCategoryRepository) Delete(ctx context.Context, id int) error {
	_, err := r.db.Exec(ctx, `DELETE FROM sub_categories WHERE id = $1`, id)
	return err
}

// CountByName checks (name, category) sibling uniqueness, case-insensitive,
// excluding the entity's own id. The compound unique index on
// (category_id, LOWER(name)) is the backstop.
func (r *SubCategoryRepository) CountByName(ctx context.Context, name string, categoryID, excludeID int) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM sub_categories
		 WHERE LOWER(name) = LOWER($1) AND category_id = $2 AND id <> $3`,
		name, categoryID, excludeID,
	).Scan(&count)
	return count, err
}

// CountByCategory backs the orphan guard: a category with any subcategory,
// active or not, cannot be deleted.
func (r *SubCategoryRepository) CountByCategory(ctx context.Context, categoryID int) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM sub_categories WHERE category_id = $1`,
		categoryID,
	).Scan(&count)
	return count, err
}
