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

type CategoryRepository struct {
	db *pgxpool.Pool
}

func NewCategoryRepository(db *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (name, description, is_active, created_by, created_at, updated_at)
		VALUES ($1, $2, true, $3, $4, $4)
		RETURNING id, is_active, created_at, updated_at
	`
	now := time.Now()
	return r.db.QueryRow(ctx, query,
		category.Name, category.Description, category.CreatedBy, now,
	).Scan(&category.ID, &category.IsActive, &category.CreatedAt, &category.UpdatedAt)
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int) (*models.Category, error) {
	query := `SELECT id, name, description, is_active, created_by, created_at, updated_at
	          FROM categories WHERE id = $1`

	var c models.Category
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Description, &c.IsActive, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepository) List(ctx context.Context, opts ListOptions) ([]models.Category, int, error) {
	opts.Normalize()

	q := &ListQuery{}
	if opts.Search != "" {
		q.Where("name ILIKE $%d", "%"+opts.Search+"%")
	}
	if opts.IsActive != nil {
		q.Where("is_active = $%d", *opts.IsActive)
	}

	var total int
	countSQL := "SELECT COUNT(*) FROM categories" + q.WhereSQL()
	if err := r.db.QueryRow(ctx, countSQL, q.Args()...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listSQL := `SELECT id, name, description, is_active, created_by, created_at, updated_at FROM categories` +
		q.WhereSQL() +
		orderBySQL(categorySortFields, "created_at", opts.SortBy, opts.SortOrder) +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", q.Bind(opts.Limit), q.Bind(opts.Offset()))

	rows, err := r.db.Query(ctx, listSQL, q.Args()...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.IsActive, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, err
		}
		categories = append(categories, c)
	}
	return categories, total, rows.Err()
}

func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) error {
	query := `UPDATE categories SET name = $1, description = $2, is_active = $3, updated_at = $4
	          WHERE id = $5 RETURNING updated_at`
	return r.db.QueryRow(ctx, query,
		category.Name, category.Description, category.IsActive, time.Now(), category.ID,
	).Scan(&category.UpdatedAt)
}

func (r *CategoryRepository) Delete(ctx context.Context, id int) error {
	_, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	return err
}

// CountByName probes for a sibling with the same name, case-insensitive exact
// match, excluding the entity's own id on update. The unique index on
// LOWER(name) remains the backstop for concurrent creates.
func (r *CategoryRepository) CountByName(ctx context.Context, name string, excludeID int) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM categories WHERE LOWER(name) = LOWER($1) AND id <> $2`,
		name, excludeID,
	).Scan(&count)
	return count, err
}
